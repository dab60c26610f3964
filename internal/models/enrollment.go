package models

import "time"

// EnrolledClass is the materialized record of a completed enrollment,
// created only as the terminal step of the checkout workflow.
type EnrolledClass struct {
	ID             string    `bson:"_id" json:"_id"`
	Email          string    `bson:"email" json:"email"`
	ClassID        string    `bson:"classId" json:"classId"`
	ClassName      string    `bson:"className" json:"className"`
	Image          string    `bson:"image,omitempty" json:"image,omitempty"`
	InstructorName string    `bson:"instructorName" json:"instructorName"`
	Price          int64     `bson:"price" json:"price"`
	EnrolledAt     time.Time `bson:"enrolledAt" json:"enrolledAt"`
}
