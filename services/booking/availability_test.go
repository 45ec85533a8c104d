package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"strbooking/models"
)

func newChecker(avail *MockAvailabilityRepository, bookings *MockBookingRepository) *DefaultAvailabilityChecker {
	return &DefaultAvailabilityChecker{Availability: avail, Bookings: bookings}
}

func TestIsAvailable_FreeRange(t *testing.T) {
	avail := &MockAvailabilityRepository{}
	bookings := &MockBookingRepository{}

	avail.On("CountUnavailable", mock.Anything, "prop-1", "2026-06-01", "2026-06-05").Return(int64(0), nil)
	bookings.On("FindOverlapping", mock.Anything, "prop-1", "2026-06-01", "2026-06-05").Return([]models.Booking{}, nil)

	ok, err := newChecker(avail, bookings).IsAvailable(context.Background(), "prop-1", "2026-06-01", "2026-06-05")

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsAvailable_BlockedDay(t *testing.T) {
	avail := &MockAvailabilityRepository{}
	bookings := &MockBookingRepository{}

	avail.On("CountUnavailable", mock.Anything, "prop-1", "2026-06-01", "2026-06-05").Return(int64(1), nil)

	ok, err := newChecker(avail, bookings).IsAvailable(context.Background(), "prop-1", "2026-06-01", "2026-06-05")

	require.NoError(t, err)
	assert.False(t, ok)
	bookings.AssertNotCalled(t, "FindOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestIsAvailable_OverlappingBooking(t *testing.T) {
	avail := &MockAvailabilityRepository{}
	bookings := &MockBookingRepository{}

	avail.On("CountUnavailable", mock.Anything, "prop-1", "2026-06-01", "2026-06-05").Return(int64(0), nil)
	bookings.On("FindOverlapping", mock.Anything, "prop-1", "2026-06-01", "2026-06-05").
		Return([]models.Booking{{ID: "bk-1", Status: models.BookingConfirmed}}, nil)

	ok, err := newChecker(avail, bookings).IsAvailable(context.Background(), "prop-1", "2026-06-01", "2026-06-05")

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsAvailable_InvalidRange(t *testing.T) {
	checker := newChecker(&MockAvailabilityRepository{}, &MockBookingRepository{})

	_, err := checker.IsAvailable(context.Background(), "prop-1", "2026-06-05", "2026-06-01")

	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestMarkAvailable_OnlyClearsBookedRows(t *testing.T) {
	avail := &MockAvailabilityRepository{}
	bookings := &MockBookingRepository{}

	avail.On("ClearBooked", mock.Anything, "prop-1", "2026-06-01", "2026-06-05").Return(nil)

	err := newChecker(avail, bookings).MarkAvailable(context.Background(), "prop-1", "2026-06-01", "2026-06-05")

	require.NoError(t, err)
	avail.AssertExpectations(t)
	// Blocked rows from iCal imports must survive a cancellation; the
	// checker only ever touches booked rows here.
	avail.AssertNotCalled(t, "ReplaceBlockedBySource", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkBooked_DelegatesWithBookingID(t *testing.T) {
	avail := &MockAvailabilityRepository{}
	bookings := &MockBookingRepository{}

	avail.On("MarkBooked", mock.Anything, "prop-1", "2026-06-01", "2026-06-05", "bk-1").Return(nil)

	err := newChecker(avail, bookings).MarkBooked(context.Background(), "prop-1", "2026-06-01", "2026-06-05", "bk-1")

	require.NoError(t, err)
	avail.AssertExpectations(t)
}
