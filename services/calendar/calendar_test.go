package calendar

import (
	"context"
	"strings"
	"testing"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"strbooking/models"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b models.Booking) (string, error) {
	args := m.Called(ctx, b)
	return args.String(0), args.Error(1)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByChargeID(ctx context.Context, chargeID string) (*models.Booking, error) {
	args := m.Called(ctx, chargeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByPaymentIntentID(ctx context.Context, intentID string) (*models.Booking, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBookingRepository) FindOverlapping(ctx context.Context, propertyID, start, end string) ([]models.Booking, error) {
	args := m.Called(ctx, propertyID, start, end)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListForProperty(ctx context.Context, propertyID, start, end string) ([]models.Booking, error) {
	args := m.Called(ctx, propertyID, start, end)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateInstallment(ctx context.Context, bookingID string, number int, status, paymentIntentID string) error {
	args := m.Called(ctx, bookingID, number, status, paymentIntentID)
	return args.Error(0)
}

func (m *MockBookingRepository) SetChargeID(ctx context.Context, bookingID, chargeID string) error {
	args := m.Called(ctx, bookingID, chargeID)
	return args.Error(0)
}

func (m *MockBookingRepository) SetTransfersProcessed(ctx context.Context, bookingID string) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

func (m *MockBookingRepository) SetDepositReleased(ctx context.Context, bookingID string) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

func (m *MockBookingRepository) Metrics(ctx context.Context) (*models.Metrics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Metrics), args.Error(1)
}

func (m *MockBookingRepository) EnsureIndexes() error {
	args := m.Called()
	return args.Error(0)
}

func TestExport_OnlyActiveStays(t *testing.T) {
	repo := &MockBookingRepository{}
	repo.On("ListForProperty", mock.Anything, "prop-1", mock.Anything, mock.Anything).Return([]models.Booking{
		{ID: "bk-1", Status: models.BookingConfirmed, CheckIn: "2026-06-01", CheckOut: "2026-06-08"},
		{ID: "bk-2", Status: models.BookingCancelled, CheckIn: "2026-07-01", CheckOut: "2026-07-05"},
	}, nil)

	feed, err := (&DefaultExporter{Bookings: repo}).Export(context.Background(), "prop-1")
	require.NoError(t, err)

	assert.Contains(t, feed, "BEGIN:VCALENDAR")
	assert.Contains(t, feed, "booking-bk-1@strbooking")
	assert.Contains(t, feed, "DTSTART;VALUE=DATE:20260601")
	assert.Contains(t, feed, "DTEND;VALUE=DATE:20260608")
	assert.Contains(t, feed, "SUMMARY:Reserved")
	assert.NotContains(t, feed, "bk-2")
}

const airbnbFeed = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//Airbnb Inc//Hosting Calendar//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:abc123@airbnb.com\r\n" +
	"DTSTAMP:20260101T000000Z\r\n" +
	"DTSTART;VALUE=DATE:20260601\r\n" +
	"DTEND;VALUE=DATE:20260604\r\n" +
	"SUMMARY:Reserved\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:booking-bk-9@strbooking\r\n" +
	"DTSTAMP:20260101T000000Z\r\n" +
	"DTSTART;VALUE=DATE:20260610\r\n" +
	"DTEND;VALUE=DATE:20260612\r\n" +
	"SUMMARY:Reserved\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestBlockedDays_FlattensEventsAndSkipsOwnExports(t *testing.T) {
	cal, err := ics.ParseCalendar(strings.NewReader(airbnbFeed))
	require.NoError(t, err)

	importer := &DefaultImporter{Logger: zap.NewNop()}
	days := importer.blockedDays(cal, "prop-1", "ical:airbnb")

	// the foreign event covers three nights, our own export is ignored
	require.Len(t, days, 3)
	assert.Equal(t, "2026-06-01", days[0].Date)
	assert.Equal(t, "2026-06-03", days[2].Date)
	for _, d := range days {
		assert.Equal(t, models.AvailabilityBlocked, d.Status)
		assert.Equal(t, "ical:airbnb", d.Source)
		assert.Equal(t, "prop-1", d.PropertyID)
	}
}
