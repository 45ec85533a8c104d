package payment

import (
	"context"
	"fmt"

	bookingRepo "strbooking/database/repository/booking"
	propertyRepo "strbooking/database/repository/property"
	"strbooking/utils"

	"go.uber.org/zap"
)

// TransferProcessor pays co-hosts their share of a booking, 24 hours
// after check-in, using separate charges + transfers so one booking can
// fund several connected accounts.
type TransferProcessor struct {
	Bookings   bookingRepo.BookingRepository
	Properties propertyRepo.PropertyRepository
	Gateway    Gateway
	Currency   string
	Logger     *zap.Logger
}

// ProcessTransfers sends each active co-host its split of the booking.
// The transfersProcessed flag is set only when every transfer succeeded,
// so a re-run retries the failures; co-hosts without a connected account
// and zero-amount splits are skipped.
func (p *TransferProcessor) ProcessTransfers(ctx context.Context, bookingID, transferGroup string) error {
	booking, err := p.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("failed to load booking %s: %w", bookingID, err)
	}
	if booking.TransfersProcessed {
		p.Logger.Info("transfers already processed", zap.String("bookingID", bookingID))
		return nil
	}

	cohosts, err := p.Properties.ActiveCohosts(ctx, booking.PropertyID)
	if err != nil {
		return fmt.Errorf("failed to load cohosts: %w", err)
	}
	if len(cohosts) == 0 {
		return p.Bookings.SetTransfersProcessed(ctx, bookingID)
	}

	var failed []string
	for _, cohost := range cohosts {
		if cohost.StripeAccountID == "" {
			continue
		}

		amount := CalculateSplit(booking.Total, booking.SecurityDeposit, cohost)
		cents := utils.Cents(amount)
		if cents <= 0 {
			continue
		}

		metadata := map[string]string{
			"booking_id": bookingID,
			"cohost_id":  cohost.ID,
		}
		transferID, err := p.Gateway.Transfer(ctx, cents, p.Currency, cohost.StripeAccountID, transferGroup, metadata)
		if err != nil {
			p.Logger.Error("cohost transfer failed",
				zap.String("bookingID", bookingID), zap.String("cohostID", cohost.ID), zap.Error(err))
			failed = append(failed, cohost.ID)
			continue
		}

		p.Logger.Info("cohost transfer sent",
			zap.String("bookingID", bookingID), zap.String("cohostID", cohost.ID),
			zap.Float64("amount", amount), zap.String("transferID", transferID))
	}

	if len(failed) > 0 {
		return fmt.Errorf("transfers failed for cohosts %v", failed)
	}
	return p.Bookings.SetTransfersProcessed(ctx, bookingID)
}
