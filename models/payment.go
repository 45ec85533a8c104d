package models

// Payment plan identifiers.
const (
	PlanPayInFull   = "pay_in_full"
	PlanTwoPayment  = "two_payment"
	PlanFourPayment = "four_payment"
)

// Installment statuses.
const (
	InstallmentPending = "pending"
	InstallmentPaid    = "paid"
	InstallmentFailed  = "failed"
)

// Installment is one scheduled charge of a payment plan. Installment #1 is
// always the up-front charge and is created already paid; a failed
// installment is never retried automatically.
type Installment struct {
	Number          int     `bson:"number" json:"number"` // 1-based
	Amount          float64 `bson:"amount" json:"amount"`
	DueDate         string  `bson:"dueDate" json:"dueDate"` // "YYYY-MM-DD"
	Status          string  `bson:"status" json:"status"`
	PaymentIntentID string  `bson:"paymentIntentId,omitempty" json:"paymentIntentId,omitempty"`
}

// DailyRate is one night of a pricing breakdown.
type DailyRate struct {
	Date string  `bson:"date" json:"date"`
	Rate float64 `bson:"rate" json:"rate"`
}

// PricingBreakdown is the full cost computation for a date range.
// Total = discounted subtotal + cleaning fee + taxes + security deposit,
// with every intermediate value rounded to cents.
type PricingBreakdown struct {
	Nights          int         `json:"nights"`
	NightlyRate     float64     `json:"nightlyRate"` // average per night
	NightlySubtotal float64     `json:"nightlySubtotal"`
	LOSDiscount     float64     `json:"losDiscount"`
	LOSDiscountRate float64     `json:"losDiscountRate"`
	CleaningFee     float64     `json:"cleaningFee"`
	SecurityDeposit float64     `json:"securityDeposit"`
	Taxes           float64     `json:"taxes"`
	TaxRate         float64     `json:"taxRate"`
	Total           float64     `json:"total"`
	DailyBreakdown  []DailyRate `json:"dailyBreakdown"`
}
