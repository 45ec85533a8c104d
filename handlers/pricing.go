package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	bookingSvc "strbooking/services/booking"
	"strbooking/services/pricing"
	"strbooking/utils"
)

// QuoteHandler prices a prospective stay without creating anything.
func QuoteHandler(engine pricing.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		propertyID := c.Param("id")
		checkIn := c.Query("checkIn")
		checkOut := c.Query("checkOut")
		if checkIn == "" || checkOut == "" {
			utils.JSONError(c, http.StatusBadRequest, "Missing dates", "checkIn and checkOut query params are required")
			return
		}
		guests, _ := strconv.Atoi(c.DefaultQuery("guests", "1"))

		quote, err := engine.Calculate(c.Request.Context(), propertyID, checkIn, checkOut, guests)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, quote)
	}
}

// EligiblePlansHandler lists the payment plans offered for a property
// and check-in date.
func EligiblePlansHandler(svc bookingSvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		propertyID := c.Param("id")
		checkIn := c.Query("checkIn")
		if checkIn == "" {
			utils.JSONError(c, http.StatusBadRequest, "Missing date", "checkIn query param is required")
			return
		}

		plans, err := svc.EligiblePlans(c.Request.Context(), propertyID, checkIn)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"plans": plans})
	}
}
