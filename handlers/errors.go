package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	bookingSvc "strbooking/services/booking"
	"strbooking/services/payment"
	"strbooking/services/pricing"
	"strbooking/utils"
)

// respondServiceError maps service-layer errors onto HTTP statuses.
// Anything unrecognized is a 500 with a generic message so internals
// never leak to guests.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, bookingSvc.ErrInvalidDateRange),
		errors.Is(err, pricing.ErrInvalidDateRange),
		errors.Is(err, pricing.ErrInvalidNights):
		utils.JSONError(c, http.StatusBadRequest, "Invalid date range", err.Error())
	case errors.Is(err, bookingSvc.ErrUnavailable):
		utils.JSONError(c, http.StatusConflict, "Dates unavailable", err.Error())
	case errors.Is(err, bookingSvc.ErrBookingLocked):
		utils.JSONError(c, http.StatusConflict, "Booking in progress", err.Error())
	case errors.Is(err, bookingSvc.ErrPropertyInactive),
		errors.Is(err, bookingSvc.ErrTooManyGuests),
		errors.Is(err, bookingSvc.ErrPlanNotEligible),
		errors.Is(err, payment.ErrInvalidSplitConfig):
		utils.JSONError(c, http.StatusUnprocessableEntity, "Booking not allowed", err.Error())
	case errors.Is(err, mongo.ErrNoDocuments):
		utils.JSONError(c, http.StatusNotFound, "Not found", "")
	default:
		var chargeErr *payment.ChargeError
		if errors.As(err, &chargeErr) {
			utils.JSONError(c, http.StatusPaymentRequired, "Payment failed", chargeErr.Message)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Internal error", "")
	}
}
