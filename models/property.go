package models

import "time"

// LOSDiscountTier grants a discount once a stay reaches MinNights.
// The highest qualifying tier wins.
type LOSDiscountTier struct {
	MinNights int     `bson:"minNights" json:"minNights"`
	Discount  float64 `bson:"discount" json:"discount"` // fraction, 0.10 = 10%
}

// PaymentPlanConfig controls which installment plans a property offers.
// Pay-in-full is offered unless explicitly disabled; the multi-payment
// plans are opt-in.
type PaymentPlanConfig struct {
	FullDisabled      bool `bson:"fullDisabled" json:"fullDisabled"`
	TwoEnabled        bool `bson:"twoEnabled" json:"twoEnabled"`
	TwoDepositPct     int  `bson:"twoDepositPct" json:"twoDepositPct"`         // default 50
	TwoDaysBefore     int  `bson:"twoDaysBefore" json:"twoDaysBefore"`         // second charge this many days before check-in, default 42
	FourEnabled       bool `bson:"fourEnabled" json:"fourEnabled"`
	FourDepositMinPct int  `bson:"fourDepositMinPct" json:"fourDepositMinPct"` // default 25
}

// CalendarFeed is an external iCal feed (Airbnb, VRBO) imported as blocked days.
type CalendarFeed struct {
	URL          string    `bson:"url" json:"url"`
	Source       string    `bson:"source" json:"source"` // e.g. "airbnb", "vrbo"
	LastSyncedAt time.Time `bson:"lastSyncedAt,omitempty" json:"lastSyncedAt,omitempty"`
}

// Property is a bookable short-term-rental listing.
type Property struct {
	ID              string            `bson:"id" json:"id"`
	Name            string            `bson:"name" json:"name"`
	Active          bool              `bson:"active" json:"active"`
	NightlyRate     float64           `bson:"nightlyRate" json:"nightlyRate"`
	CleaningFee     float64           `bson:"cleaningFee" json:"cleaningFee"`
	SecurityDeposit float64           `bson:"securityDeposit" json:"securityDeposit"`
	MaxGuests       int               `bson:"maxGuests" json:"maxGuests"`
	TaxRate         float64           `bson:"taxRate" json:"taxRate"` // 0 means use the global default
	LOSDiscounts    []LOSDiscountTier `bson:"losDiscounts,omitempty" json:"losDiscounts,omitempty"`
	PlanConfig      PaymentPlanConfig `bson:"planConfig" json:"planConfig"`
	Cohosts         []Cohost          `bson:"cohosts,omitempty" json:"cohosts,omitempty"`
	CalendarFeeds   []CalendarFeed    `bson:"calendarFeeds,omitempty" json:"calendarFeeds,omitempty"`
	CreatedAt       time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// EffectiveTwoDaysBefore returns the configured two-payment charge offset,
// falling back to the 42-day default.
func (c PaymentPlanConfig) EffectiveTwoDaysBefore() int {
	if c.TwoDaysBefore > 0 {
		return c.TwoDaysBefore
	}
	return 42
}

// EffectiveTwoDepositPct returns the two-payment deposit percentage, default 50.
func (c PaymentPlanConfig) EffectiveTwoDepositPct() int {
	if c.TwoDepositPct > 0 {
		return c.TwoDepositPct
	}
	return 50
}

// EffectiveFourDepositMinPct returns the four-payment minimum deposit percentage, default 25.
func (c PaymentPlanConfig) EffectiveFourDepositMinPct() int {
	if c.FourDepositMinPct > 0 {
		return c.FourDepositMinPct
	}
	return 25
}
