package booking

import (
	"context"
	"time"

	availabilityRepo "strbooking/database/repository/availability"
	bookingRepo "strbooking/database/repository/booking"
)

const dateLayout = "2006-01-02"

// AvailabilityChecker answers whether a date range is free and maintains
// the per-day availability table around the booking lifecycle.
type AvailabilityChecker interface {
	// IsAvailable reports whether every night in [checkIn, checkOut) is
	// free of blocked/booked days and overlapping active bookings.
	IsAvailable(ctx context.Context, propertyID, checkIn, checkOut string) (bool, error)
	// MarkBooked writes one booked row per night; idempotent upserts.
	MarkBooked(ctx context.Context, propertyID, checkIn, checkOut, bookingID string) error
	// MarkAvailable clears booked rows in the range. Blocked rows stay:
	// cancelling a booking must never un-block iCal-imported dates.
	MarkAvailable(ctx context.Context, propertyID, checkIn, checkOut string) error
}

// DefaultAvailabilityChecker checks the availability table and the
// booking overlap query; it has no state of its own.
type DefaultAvailabilityChecker struct {
	Availability availabilityRepo.AvailabilityRepository
	Bookings     bookingRepo.BookingRepository
}

func (c *DefaultAvailabilityChecker) IsAvailable(ctx context.Context, propertyID, checkIn, checkOut string) (bool, error) {
	if err := validateRange(checkIn, checkOut); err != nil {
		return false, err
	}

	unavailable, err := c.Availability.CountUnavailable(ctx, propertyID, checkIn, checkOut)
	if err != nil {
		return false, err
	}
	if unavailable > 0 {
		return false, nil
	}

	overlapping, err := c.Bookings.FindOverlapping(ctx, propertyID, checkIn, checkOut)
	if err != nil {
		return false, err
	}
	return len(overlapping) == 0, nil
}

func (c *DefaultAvailabilityChecker) MarkBooked(ctx context.Context, propertyID, checkIn, checkOut, bookingID string) error {
	if err := validateRange(checkIn, checkOut); err != nil {
		return err
	}
	return c.Availability.MarkBooked(ctx, propertyID, checkIn, checkOut, bookingID)
}

func (c *DefaultAvailabilityChecker) MarkAvailable(ctx context.Context, propertyID, checkIn, checkOut string) error {
	if err := validateRange(checkIn, checkOut); err != nil {
		return err
	}
	return c.Availability.ClearBooked(ctx, propertyID, checkIn, checkOut)
}

func validateRange(checkIn, checkOut string) error {
	in, errIn := time.Parse(dateLayout, checkIn)
	out, errOut := time.Parse(dateLayout, checkOut)
	if errIn != nil || errOut != nil || !out.After(in) {
		return ErrInvalidDateRange
	}
	return nil
}
