package models

import "time"

// SelectedClass is a pending enrollment intent (a cart entry). It exists
// until the student removes it or a checkout consumes it; for a given
// (email, classId) pair at most one of SelectedClass/EnrolledClass exists
// at a time.
type SelectedClass struct {
	ID             string    `bson:"_id" json:"_id"`
	Email          string    `bson:"email" json:"email"`
	ClassID        string    `bson:"classId" json:"classId"`
	ClassName      string    `bson:"className" json:"className"`
	Image          string    `bson:"image,omitempty" json:"image,omitempty"`
	InstructorName string    `bson:"instructorName" json:"instructorName"`
	Price          int64     `bson:"price" json:"price"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}
