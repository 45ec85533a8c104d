package booking

import "errors"

var (
	// ErrInvalidDateRange means checkout is not after check-in or a date failed to parse.
	ErrInvalidDateRange = errors.New("invalid check-in or check-out dates")
	// ErrUnavailable means at least one night in the range is booked or blocked.
	ErrUnavailable = errors.New("selected dates are not available")
	// ErrPropertyInactive means the property is not accepting bookings.
	ErrPropertyInactive = errors.New("property is not active")
	// ErrTooManyGuests means the party exceeds the property's capacity.
	ErrTooManyGuests = errors.New("guest count exceeds property capacity")
	// ErrPlanNotEligible means the requested payment plan is not offered
	// for this property and check-in date.
	ErrPlanNotEligible = errors.New("payment plan not eligible for this booking")
	// ErrBookingLocked means another request holds the property's
	// availability lock; the caller should retry.
	ErrBookingLocked = errors.New("property is being booked by another request")
)
