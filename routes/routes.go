package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"strbooking/handlers"
	"strbooking/middleware"
	"strbooking/utils"
)

// RegisterPropertyRoutes registers the guest-facing property endpoints:
// quotes, availability, plan eligibility, and the iCal export.
func RegisterPropertyRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/properties")
	{
		api.GET("/:id/quote", middleware.RateLimitMiddleware(), hb.QuoteHandler)
		api.GET("/:id/availability", hb.CheckAvailabilityHandler)
		api.GET("/:id/calendar", hb.AvailabilityCalendarHandler)
		api.GET("/:id/payment-plans", hb.EligiblePlansHandler)
		api.GET("/:id/calendar.ics", hb.CalendarFeedHandler)
	}
}

// RegisterBookingRoutes registers guest checkout and booking lookup.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.POST("", middleware.RateLimitMiddleware(), hb.CreateBookingHandler)
		api.GET("/:id", hb.GetBookingHandler)
	}
}

// RegisterWebhookRoutes registers the Stripe event receiver. No rate
// limit here; Stripe bursts on redelivery.
func RegisterWebhookRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/webhooks/stripe", hb.StripeWebhookHandler)
}

// RegisterAdminRoutes registers host/admin operations behind the static
// token middleware.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	admin := r.Group("/api/admin")
	{
		admin.Use(middleware.AdminAuthMiddleware())

		admin.POST("/properties", hb.CreatePropertyHandler)
		admin.GET("/properties", hb.ListPropertiesHandler)
		admin.GET("/properties/:id", hb.GetPropertyHandler)
		admin.PUT("/properties/:id", hb.UpdatePropertyHandler)
		admin.DELETE("/properties/:id", hb.DeletePropertyHandler)

		admin.POST("/properties/:id/cohosts", hb.AddCohostHandler)
		admin.DELETE("/properties/:id/cohosts/:cohostId", hb.RemoveCohostHandler)
		admin.PUT("/properties/:id/price-override", hb.SetPriceOverrideHandler)
		admin.POST("/properties/:id/sync", hb.TriggerCalendarSyncHandler)

		admin.DELETE("/bookings/:id", hb.CancelBookingHandler)
		admin.POST("/bookings/:id/release-deposit", hb.ReleaseDepositHandler)
		admin.GET("/metrics", hb.MetricsHandler)
	}
}

// RegisterHealthRoute registers the health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and global
// middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(utils.ErrorHandler())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterPropertyRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterWebhookRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
