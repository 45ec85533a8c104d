package booking

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"strbooking/models"
	"strbooking/services/tasks"
)

// ConfirmFromIntent finalizes a booking after Stripe reports the initial
// PaymentIntent succeeded. Safe to call more than once for the same
// intent; Stripe redelivers webhooks.
func (s *DefaultService) ConfirmFromIntent(ctx context.Context, intentID, chargeID string) error {
	b, err := s.Bookings.GetByPaymentIntentID(ctx, intentID)
	if err != nil {
		return fmt.Errorf("no booking for payment intent %s: %w", intentID, err)
	}
	if b.Status != models.BookingPending {
		s.Logger.Debug("payment confirmation replay ignored",
			zap.String("bookingID", b.ID), zap.String("status", b.Status))
		return nil
	}

	if chargeID != "" {
		if err := s.Bookings.SetChargeID(ctx, b.ID, chargeID); err != nil {
			return err
		}
	}
	if err := s.Bookings.UpdateInstallment(ctx, b.ID, 1, models.InstallmentPaid, intentID); err != nil {
		return err
	}
	if err := s.Bookings.UpdateStatus(ctx, b.ID, models.BookingConfirmed); err != nil {
		return err
	}
	if err := s.Checker.MarkBooked(ctx, b.PropertyID, b.CheckIn, b.CheckOut, b.ID); err != nil {
		return fmt.Errorf("failed to mark dates booked: %w", err)
	}

	s.schedulePostConfirmation(b)

	property, err := s.Properties.GetByID(ctx, b.PropertyID)
	if err == nil {
		if err := s.Notifier.SendBookingConfirmation(ctx, b, property); err != nil {
			s.Logger.Warn("confirmation notification failed",
				zap.String("bookingID", b.ID), zap.Error(err))
		}
	}

	s.Logger.Info("booking confirmed",
		zap.String("bookingID", b.ID), zap.String("intentID", intentID))
	return nil
}

// schedulePostConfirmation enqueues the co-host payout run (24h after
// check-in) and the guest's pre-arrival reminder (48h before).
func (s *DefaultService) schedulePostConfirmation(b *models.Booking) {
	checkIn, err := time.Parse(dateLayout, b.CheckIn)
	if err != nil {
		s.Logger.Error("unparseable check-in on confirmed booking",
			zap.String("bookingID", b.ID), zap.String("checkIn", b.CheckIn))
		return
	}

	if task, opts, err := tasks.NewCohostTransfersTask(b.ID, b.TransferGroup, checkIn.Add(24*time.Hour)); err == nil {
		if _, err := s.Queue.Enqueue(task, opts...); err != nil {
			s.Logger.Error("failed to enqueue transfers task",
				zap.String("bookingID", b.ID), zap.Error(err))
		}
	}

	reminderAt := checkIn.Add(-48 * time.Hour)
	if reminderAt.After(time.Now()) {
		if task, opts, err := tasks.NewCheckinReminderTask(b.ID, reminderAt); err == nil {
			if _, err := s.Queue.Enqueue(task, opts...); err != nil {
				s.Logger.Error("failed to enqueue reminder task",
					zap.String("bookingID", b.ID), zap.Error(err))
			}
		}
	}
}

// FailFromIntent cancels a pending booking whose initial payment failed.
// Failed installment charges on an already-confirmed booking are handled
// by the charge worker, not here.
func (s *DefaultService) FailFromIntent(ctx context.Context, intentID string) error {
	b, err := s.Bookings.GetByPaymentIntentID(ctx, intentID)
	if err != nil {
		return fmt.Errorf("no booking for payment intent %s: %w", intentID, err)
	}
	if b.Status != models.BookingPending {
		return nil
	}

	if err := s.Bookings.UpdateStatus(ctx, b.ID, models.BookingCancelled); err != nil {
		return err
	}

	s.Logger.Info("booking cancelled after failed payment",
		zap.String("bookingID", b.ID), zap.String("intentID", intentID))
	return nil
}

// RefundFromCharge marks a booking refunded and releases its nights.
func (s *DefaultService) RefundFromCharge(ctx context.Context, chargeID string) error {
	b, err := s.Bookings.GetByChargeID(ctx, chargeID)
	if err != nil {
		return fmt.Errorf("no booking for charge %s: %w", chargeID, err)
	}
	if b.Status == models.BookingRefunded {
		return nil
	}

	if err := s.Bookings.UpdateStatus(ctx, b.ID, models.BookingRefunded); err != nil {
		return err
	}
	if err := s.Checker.MarkAvailable(ctx, b.PropertyID, b.CheckIn, b.CheckOut); err != nil {
		return fmt.Errorf("failed to release booked dates: %w", err)
	}

	property, err := s.Properties.GetByID(ctx, b.PropertyID)
	if err == nil {
		if err := s.Notifier.SendCancellation(ctx, b, property); err != nil {
			s.Logger.Warn("cancellation notification failed",
				zap.String("bookingID", b.ID), zap.Error(err))
		}
	}

	s.Logger.Info("booking refunded",
		zap.String("bookingID", b.ID), zap.String("chargeID", chargeID))
	return nil
}
