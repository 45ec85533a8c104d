package notification

import (
	"context"

	"strbooking/models"
)

// Notifier sends guest-facing messages over email and, when the guest
// left a phone number, SMS.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, booking *models.Booking, property *models.Property) error
	SendCheckinReminder(ctx context.Context, booking *models.Booking, property *models.Property) error
	SendInstallmentReceipt(ctx context.Context, booking *models.Booking, installment models.Installment) error
	SendInstallmentFailed(ctx context.Context, booking *models.Booking, installment models.Installment) error
	SendCancellation(ctx context.Context, booking *models.Booking, property *models.Property) error
}
