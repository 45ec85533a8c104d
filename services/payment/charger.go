package payment

import (
	"context"
	"fmt"
	"strconv"
	"time"

	bookingRepo "strbooking/database/repository/booking"
	"strbooking/models"
	"strbooking/utils"

	"go.uber.org/zap"
)

// Charger runs off-session installment charges. Charging is idempotent:
// an already-paid installment is a success no-op, and a per-installment
// lock keeps at-least-once task delivery from double-charging.
type Charger struct {
	Bookings bookingRepo.BookingRepository
	Gateway  Gateway
	Locker   utils.Locker
	Currency string
	Logger   *zap.Logger
}

// ChargeInstallment charges installment #number of a booking using the
// stored customer and payment method. On decline the installment is
// marked failed and the gateway error is returned; there is no automatic
// retry here.
func (c *Charger) ChargeInstallment(ctx context.Context, bookingID string, number int) error {
	lockKey := fmt.Sprintf("installment:%s:%d", bookingID, number)
	ok, err := c.Locker.Acquire(ctx, lockKey, 2*time.Minute)
	if err != nil {
		return fmt.Errorf("failed to acquire installment lock: %w", err)
	}
	if !ok {
		return ErrChargeInProgress
	}
	defer func() {
		if err := c.Locker.Release(context.Background(), lockKey); err != nil {
			c.Logger.Warn("failed to release installment lock", zap.String("key", lockKey), zap.Error(err))
		}
	}()

	booking, err := c.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("failed to load booking %s: %w", bookingID, err)
	}

	installment := booking.Installment(number)
	if installment == nil {
		return ErrInstallmentNotFound
	}
	if installment.Status == models.InstallmentPaid {
		c.Logger.Info("installment already paid, skipping charge",
			zap.String("bookingID", bookingID), zap.Int("installment", number))
		return nil
	}

	if booking.StripeCustomerID == "" || booking.StripePaymentMethodID == "" {
		if uerr := c.Bookings.UpdateInstallment(ctx, bookingID, number, models.InstallmentFailed, ""); uerr != nil {
			c.Logger.Error("failed to mark installment failed", zap.Error(uerr))
		}
		return ErrMissingPaymentMethod
	}

	metadata := map[string]string{
		"booking_id":         bookingID,
		"installment_number": strconv.Itoa(number),
		"source":             "strbooking",
	}

	intentID, err := c.Gateway.ChargeOffSession(ctx,
		booking.StripeCustomerID, booking.StripePaymentMethodID,
		utils.Cents(installment.Amount), c.Currency, metadata)
	if err != nil {
		if uerr := c.Bookings.UpdateInstallment(ctx, bookingID, number, models.InstallmentFailed, ""); uerr != nil {
			c.Logger.Error("failed to mark installment failed", zap.Error(uerr))
		}
		c.Logger.Warn("installment charge declined",
			zap.String("bookingID", bookingID), zap.Int("installment", number), zap.Error(err))
		return err
	}

	if err := c.Bookings.UpdateInstallment(ctx, bookingID, number, models.InstallmentPaid, intentID); err != nil {
		return fmt.Errorf("charge succeeded but status update failed: %w", err)
	}

	c.Logger.Info("installment charged",
		zap.String("bookingID", bookingID), zap.Int("installment", number),
		zap.Float64("amount", installment.Amount), zap.String("paymentIntent", intentID))
	return nil
}
