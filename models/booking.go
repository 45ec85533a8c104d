package models

import "time"

// Booking statuses.
const (
	BookingPending    = "pending"
	BookingConfirmed  = "confirmed"
	BookingCheckedIn  = "checked_in"
	BookingCheckedOut = "checked_out"
	BookingCancelled  = "cancelled"
	BookingRefunded   = "refunded"
)

// ActiveBookingStatuses are the statuses that occupy dates. Cancelled and
// refunded bookings never count toward availability overlap.
var ActiveBookingStatuses = []string{BookingPending, BookingConfirmed, BookingCheckedIn, BookingCheckedOut}

// Booking is a confirmed or in-flight reservation. Dates are a half-open
// interval [CheckIn, CheckOut); the checkout day itself is not occupied.
type Booking struct {
	ID              string  `bson:"id" json:"id"`
	PropertyID      string  `bson:"propertyId" json:"propertyId"`
	GuestName       string  `bson:"guestName" json:"guestName"`
	GuestEmail      string  `bson:"guestEmail" json:"guestEmail"`
	GuestPhone      string  `bson:"guestPhone,omitempty" json:"guestPhone,omitempty"`
	GuestCount      int     `bson:"guestCount" json:"guestCount"`
	CheckIn         string  `bson:"checkIn" json:"checkIn"`   // "YYYY-MM-DD"
	CheckOut        string  `bson:"checkOut" json:"checkOut"` // "YYYY-MM-DD"
	Nights          int     `bson:"nights" json:"nights"`
	NightlyRate     float64 `bson:"nightlyRate" json:"nightlyRate"`
	Subtotal        float64 `bson:"subtotal" json:"subtotal"`
	LOSDiscount     float64 `bson:"losDiscount" json:"losDiscount"`
	CleaningFee     float64 `bson:"cleaningFee" json:"cleaningFee"`
	SecurityDeposit float64 `bson:"securityDeposit" json:"securityDeposit"`
	Taxes           float64 `bson:"taxes" json:"taxes"`
	Total           float64 `bson:"total" json:"total"`
	Status          string  `bson:"status" json:"status"`

	PaymentPlan  string        `bson:"paymentPlan" json:"paymentPlan"`
	Installments []Installment `bson:"installments,omitempty" json:"installments,omitempty"`

	StripePaymentIntentID string `bson:"stripePaymentIntentId,omitempty" json:"stripePaymentIntentId,omitempty"`
	StripeChargeID        string `bson:"stripeChargeId,omitempty" json:"stripeChargeId,omitempty"`
	StripeCustomerID      string `bson:"stripeCustomerId,omitempty" json:"-"`
	StripePaymentMethodID string `bson:"stripePaymentMethodId,omitempty" json:"-"`
	TransferGroup         string `bson:"transferGroup,omitempty" json:"transferGroup,omitempty"`
	TransfersProcessed    bool   `bson:"transfersProcessed" json:"transfersProcessed"`
	DepositReleased       bool   `bson:"depositReleased" json:"depositReleased"`

	SpecialRequests string      `bson:"specialRequests,omitempty" json:"specialRequests,omitempty"`
	DailyBreakdown  []DailyRate `bson:"dailyBreakdown,omitempty" json:"dailyBreakdown,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Installment returns the installment with the given 1-based number, or nil.
func (b *Booking) Installment(number int) *Installment {
	for i := range b.Installments {
		if b.Installments[i].Number == number {
			return &b.Installments[i]
		}
	}
	return nil
}

// Metrics is the host dashboard summary. Revenue is net of security
// deposits, which are refundable and never earned.
type Metrics struct {
	ConfirmedBookings int     `json:"confirmedBookings"`
	PendingBookings   int     `json:"pendingBookings"`
	TotalRevenue      float64 `json:"totalRevenue"`
}
