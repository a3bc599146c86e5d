package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment states track the hosted checkout session's outcome.
const (
	PaymentUnpaid  = "unpaid"
	PaymentPaid    = "paid"
	PaymentExpired = "expired"
)

// Payment records a checkout session created for hiring a tutor.
// Amount is in minor units (cents).
type Payment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID   string             `bson:"sessionId" json:"sessionId"`
	TutorID     string             `bson:"tutorId" json:"tutorId"`
	TutorName   string             `bson:"tutorName" json:"tutorName"`
	TutorEmail  string             `bson:"tutorEmail" json:"tutorEmail"`
	Amount      int64              `bson:"amount" json:"amount"`
	Currency    string             `bson:"currency" json:"currency"`
	Status      string             `bson:"status" json:"status"`
	CheckoutURL string             `bson:"checkoutUrl" json:"checkoutUrl"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
