package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	bookingSvc "strbooking/services/booking"
	"strbooking/utils"
)

// CreateBookingHandler runs the full checkout: quote, availability
// check, PaymentIntent, installment schedule. The response carries the
// client secret the frontend needs to confirm the first payment.
func CreateBookingHandler(svc bookingSvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req bookingSvc.BookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid booking request", err.Error())
			return
		}

		result, err := svc.CreateBooking(c.Request.Context(), req)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}

func GetBookingHandler(svc bookingSvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		booking, err := svc.GetBooking(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, booking)
	}
}

func CancelBookingHandler(svc bookingSvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.CancelBooking(c.Request.Context(), c.Param("id")); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
	}
}
