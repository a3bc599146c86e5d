package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Posting lifecycle. New postings start Pending and are moved by an admin.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// Tuition is a student-posted request for tutoring services.
type Tuition struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentEmail string             `bson:"studentEmail" json:"studentEmail" validate:"required,email"`
	StudentName  string             `bson:"studentName,omitempty" json:"studentName,omitempty"`
	Subject      string             `bson:"subject" json:"subject" validate:"required"`
	Class        string             `bson:"class,omitempty" json:"class,omitempty"`
	Location     string             `bson:"location,omitempty" json:"location,omitempty"`
	Salary       string             `bson:"salary,omitempty" json:"salary,omitempty"`
	DaysPerWeek  string             `bson:"daysPerWeek,omitempty" json:"daysPerWeek,omitempty"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Status       string             `bson:"status" json:"status"`
	PostedAt     time.Time          `bson:"postedAt" json:"postedAt"`
	ApprovedAt   *time.Time         `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
}
