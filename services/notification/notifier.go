package notification

import (
	"context"
	"fmt"

	"strbooking/models"

	"go.uber.org/zap"
)

// DefaultNotifier sends every message by email and mirrors the short
// ones to SMS when the guest left a phone number. An SMS failure is
// logged, not surfaced; email is the system of record.
type DefaultNotifier struct {
	Email  EmailSender
	SMS    SMSSender
	Logger *zap.Logger
}

func (n *DefaultNotifier) SendBookingConfirmation(ctx context.Context, booking *models.Booking, property *models.Property) error {
	subject := fmt.Sprintf("Booking confirmed: %s", property.Name)
	body := fmt.Sprintf(
		"Hi %s,\n\nYour booking at %s is confirmed.\n\nCheck-in: %s\nCheck-out: %s\nNights: %d\nTotal: $%.2f\n\nBooking reference: %s\n",
		booking.GuestName, property.Name, booking.CheckIn, booking.CheckOut,
		booking.Nights, booking.Total, booking.ID,
	)
	if err := n.Email.Send(booking.GuestEmail, subject, body); err != nil {
		return fmt.Errorf("confirmation email failed: %w", err)
	}

	n.sendSMS(booking, fmt.Sprintf("Your booking at %s (%s to %s) is confirmed.",
		property.Name, booking.CheckIn, booking.CheckOut))
	return nil
}

func (n *DefaultNotifier) SendCheckinReminder(ctx context.Context, booking *models.Booking, property *models.Property) error {
	subject := fmt.Sprintf("Your stay at %s is coming up", property.Name)
	body := fmt.Sprintf(
		"Hi %s,\n\nJust a reminder that your stay at %s begins on %s.\n\nWe look forward to hosting you!\n",
		booking.GuestName, property.Name, booking.CheckIn,
	)
	if err := n.Email.Send(booking.GuestEmail, subject, body); err != nil {
		return fmt.Errorf("reminder email failed: %w", err)
	}

	n.sendSMS(booking, fmt.Sprintf("Reminder: your stay at %s begins on %s.", property.Name, booking.CheckIn))
	return nil
}

func (n *DefaultNotifier) SendInstallmentReceipt(ctx context.Context, booking *models.Booking, installment models.Installment) error {
	subject := "Payment received for your upcoming stay"
	body := fmt.Sprintf(
		"Hi %s,\n\nWe received your payment of $%.2f (installment %d) for booking %s.\n",
		booking.GuestName, installment.Amount, installment.Number, booking.ID,
	)
	return n.Email.Send(booking.GuestEmail, subject, body)
}

func (n *DefaultNotifier) SendInstallmentFailed(ctx context.Context, booking *models.Booking, installment models.Installment) error {
	subject := "Action needed: payment for your upcoming stay failed"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour scheduled payment of $%.2f (installment %d) for booking %s could not be processed. Please update your payment method.\n",
		booking.GuestName, installment.Amount, installment.Number, booking.ID,
	)
	if err := n.Email.Send(booking.GuestEmail, subject, body); err != nil {
		return fmt.Errorf("failed-payment email failed: %w", err)
	}

	n.sendSMS(booking, fmt.Sprintf("A scheduled payment of $%.2f for your booking failed. Please update your payment method.", installment.Amount))
	return nil
}

func (n *DefaultNotifier) SendCancellation(ctx context.Context, booking *models.Booking, property *models.Property) error {
	subject := fmt.Sprintf("Booking cancelled: %s", property.Name)
	body := fmt.Sprintf(
		"Hi %s,\n\nYour booking at %s (%s to %s) has been cancelled.\n",
		booking.GuestName, property.Name, booking.CheckIn, booking.CheckOut,
	)
	return n.Email.Send(booking.GuestEmail, subject, body)
}

func (n *DefaultNotifier) sendSMS(booking *models.Booking, message string) {
	if n.SMS == nil || booking.GuestPhone == "" {
		return
	}
	if err := n.SMS.Send(booking.GuestPhone, message); err != nil {
		n.Logger.Warn("sms send failed",
			zap.String("bookingID", booking.ID), zap.Error(err))
	}
}
