package models

import "time"

// Cohost split types.
const (
	SplitTypePercentage = "percentage"
	SplitTypeFixed      = "fixed"
)

// Cohost receives a share of each booking via a Stripe Connect transfer.
// The security deposit is never part of the split.
type Cohost struct {
	ID              string    `bson:"id" json:"id"`
	DisplayName     string    `bson:"displayName,omitempty" json:"displayName,omitempty"`
	Email           string    `bson:"email,omitempty" json:"email,omitempty"`
	StripeAccountID string    `bson:"stripeAccountId" json:"stripeAccountId"`
	SplitType       string    `bson:"splitType" json:"splitType"`   // "percentage" or "fixed"
	SplitValue      float64   `bson:"splitValue" json:"splitValue"` // fraction in [0,1] or dollar amount
	Active          bool      `bson:"active" json:"active"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
}
