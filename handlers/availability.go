package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	availabilityRepo "strbooking/database/repository/availability"
	bookingSvc "strbooking/services/booking"
	"strbooking/utils"
)

// CheckAvailabilityHandler answers whether a date range is bookable.
func CheckAvailabilityHandler(checker bookingSvc.AvailabilityChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		propertyID := c.Param("id")
		checkIn := c.Query("checkIn")
		checkOut := c.Query("checkOut")
		if checkIn == "" || checkOut == "" {
			utils.JSONError(c, http.StatusBadRequest, "Missing dates", "checkIn and checkOut query params are required")
			return
		}

		available, err := checker.IsAvailable(c.Request.Context(), propertyID, checkIn, checkOut)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"propertyId": propertyID,
			"checkIn":    checkIn,
			"checkOut":   checkOut,
			"available":  available,
		})
	}
}

// AvailabilityCalendarHandler returns the stored per-day rows for a
// range so the frontend can paint its date picker.
func AvailabilityCalendarHandler(repo availabilityRepo.AvailabilityRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		propertyID := c.Param("id")
		from := c.Query("from")
		to := c.Query("to")
		if from == "" || to == "" {
			utils.JSONError(c, http.StatusBadRequest, "Missing range", "from and to query params are required")
			return
		}

		days, err := repo.GetDays(c.Request.Context(), propertyID, from, to)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"propertyId": propertyID, "days": days})
	}
}
