package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct the route
// registration consumes.
type HandlerBundle struct {
	// Guest-facing endpoints
	QuoteHandler                gin.HandlerFunc
	EligiblePlansHandler        gin.HandlerFunc
	CheckAvailabilityHandler    gin.HandlerFunc
	AvailabilityCalendarHandler gin.HandlerFunc
	CreateBookingHandler        gin.HandlerFunc
	GetBookingHandler           gin.HandlerFunc
	CalendarFeedHandler         gin.HandlerFunc

	// Stripe
	StripeWebhookHandler gin.HandlerFunc

	// Admin endpoints
	CreatePropertyHandler      gin.HandlerFunc
	GetPropertyHandler         gin.HandlerFunc
	ListPropertiesHandler      gin.HandlerFunc
	UpdatePropertyHandler      gin.HandlerFunc
	DeletePropertyHandler      gin.HandlerFunc
	AddCohostHandler           gin.HandlerFunc
	RemoveCohostHandler        gin.HandlerFunc
	SetPriceOverrideHandler    gin.HandlerFunc
	TriggerCalendarSyncHandler gin.HandlerFunc
	CancelBookingHandler       gin.HandlerFunc
	ReleaseDepositHandler      gin.HandlerFunc
	MetricsHandler             gin.HandlerFunc
}
