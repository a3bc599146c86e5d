package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tutor is a tutor's self-listed profile. It shares the Tuition lifecycle
// and doubles as the tutor's application record for the /applications view.
type Tutor struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TutorEmail     string             `bson:"tutorEmail" json:"tutorEmail" validate:"required,email"`
	TutorName      string             `bson:"tutorName,omitempty" json:"tutorName,omitempty"`
	Photo          string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Qualification  string             `bson:"qualification,omitempty" json:"qualification,omitempty"`
	Experience     string             `bson:"experience,omitempty" json:"experience,omitempty"`
	Subject        string             `bson:"subject,omitempty" json:"subject,omitempty"`
	Location       string             `bson:"location,omitempty" json:"location,omitempty"`
	ExpectedSalary string             `bson:"expectedSalary,omitempty" json:"expectedSalary,omitempty"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	Status         string             `bson:"status" json:"status"`
	PostedAt       time.Time          `bson:"postedAt" json:"postedAt"`
	ApprovedAt     *time.Time         `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
}
