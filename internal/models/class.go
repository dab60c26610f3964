package models

import "time"

// ClassStatus is the approval lifecycle state of an offering.
type ClassStatus string

const (
	ClassStatusPending  ClassStatus = "pending"
	ClassStatusApproved ClassStatus = "approved"
	ClassStatusDenied   ClassStatus = "denied"
)

// ClassOffering is an instructor-submitted class. Status is mutated only
// by admin approve/deny; the seat counters are mutated only by the
// checkout workflow and must satisfy
// availableSeats = totalSeats - enrolledCount >= 0.
type ClassOffering struct {
	ID              string      `bson:"_id" json:"_id"`
	Name            string      `bson:"name" json:"name"`
	Image           string      `bson:"image,omitempty" json:"image,omitempty"`
	InstructorName  string      `bson:"instructorName" json:"instructorName"`
	InstructorEmail string      `bson:"instructorEmail" json:"instructorEmail"`
	Price           int64       `bson:"price" json:"price"`
	TotalSeats      int         `bson:"totalSeats" json:"totalSeats"`
	AvailableSeats  int         `bson:"availableSeats" json:"availableSeats"`
	EnrolledCount   int         `bson:"enrolledCount" json:"enrolledCount"`
	Status          ClassStatus `bson:"status" json:"status"`
	Feedback        string      `bson:"feedback,omitempty" json:"feedback,omitempty"`
	CreatedAt       time.Time   `bson:"createdAt" json:"createdAt"`
}
