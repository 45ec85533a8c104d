package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"

	"strbooking/config"
	bookingSvc "strbooking/services/booking"
	"strbooking/utils"
)

const webhookMaxBodyBytes = 65536

// StripeWebhookHandler verifies and routes Stripe events. Events are
// deduplicated in Redis for 24h because Stripe delivers at least once.
// Unhandled event types are acknowledged so Stripe stops resending them.
func StripeWebhookHandler(svc bookingSvc.Service, cache *redis.Client) gin.HandlerFunc {
	logger := utils.GetLogger()

	return func(c *gin.Context) {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, webhookMaxBodyBytes))
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Unreadable payload", "")
			return
		}

		event, err := webhook.ConstructEvent(body, c.GetHeader("Stripe-Signature"), config.AppConfig.StripeWebhookSecret)
		if err != nil {
			logger.Warn("stripe signature verification failed", zap.Error(err))
			utils.JSONError(c, http.StatusBadRequest, "Invalid signature", "")
			return
		}

		ctx := c.Request.Context()
		fresh, err := cache.SetNX(ctx, "stripe_event_"+event.ID, 1, 24*time.Hour).Result()
		if err != nil {
			logger.Error("webhook dedup check failed", zap.Error(err))
			// Fall through: double-processing is safe, dropping is not.
			fresh = true
		}
		if !fresh {
			c.JSON(http.StatusOK, gin.H{"status": "duplicate"})
			return
		}

		switch event.Type {
		case "payment_intent.succeeded":
			var intent stripe.PaymentIntent
			if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
				utils.JSONError(c, http.StatusBadRequest, "Malformed event", err.Error())
				return
			}
			chargeID := ""
			if intent.LatestCharge != nil {
				chargeID = intent.LatestCharge.ID
			}
			err = svc.ConfirmFromIntent(ctx, intent.ID, chargeID)

		case "payment_intent.payment_failed":
			var intent stripe.PaymentIntent
			if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
				utils.JSONError(c, http.StatusBadRequest, "Malformed event", err.Error())
				return
			}
			err = svc.FailFromIntent(ctx, intent.ID)

		case "charge.refunded":
			var charge stripe.Charge
			if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
				utils.JSONError(c, http.StatusBadRequest, "Malformed event", err.Error())
				return
			}
			err = svc.RefundFromCharge(ctx, charge.ID)

		default:
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
			return
		}

		if err != nil {
			logger.Error("webhook processing failed",
				zap.String("eventID", event.ID), zap.String("type", string(event.Type)), zap.Error(err))
			// Non-200 makes Stripe retry; clear the dedup key so the
			// retry is processed.
			cache.Del(ctx, "stripe_event_"+event.ID)
			utils.JSONError(c, http.StatusInternalServerError, "Processing failed", "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "processed"})
	}
}
