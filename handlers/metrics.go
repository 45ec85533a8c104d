package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	bookingRepo "strbooking/database/repository/booking"
)

// MetricsHandler returns the host dashboard aggregates.
func MetricsHandler(repo bookingRepo.BookingRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics, err := repo.Metrics(c.Request.Context())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, metrics)
	}
}

// ReleaseDepositHandler records that the host returned the security
// deposit after checkout.
func ReleaseDepositHandler(repo bookingRepo.BookingRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := repo.SetDepositReleased(c.Request.Context(), c.Param("id")); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "deposit released"})
	}
}
