package booking

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/mock"

	"strbooking/models"
	"strbooking/services/payment"
)

type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) Create(ctx context.Context, p models.Property) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}

func (m *MockPropertyRepository) GetByID(ctx context.Context, id string) (*models.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *MockPropertyRepository) List(ctx context.Context, activeOnly bool) ([]models.Property, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]models.Property), args.Error(1)
}

func (m *MockPropertyRepository) Update(ctx context.Context, p models.Property) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPropertyRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPropertyRepository) AddCohost(ctx context.Context, propertyID string, cohost models.Cohost) error {
	args := m.Called(ctx, propertyID, cohost)
	return args.Error(0)
}

func (m *MockPropertyRepository) RemoveCohost(ctx context.Context, propertyID, cohostID string) error {
	args := m.Called(ctx, propertyID, cohostID)
	return args.Error(0)
}

func (m *MockPropertyRepository) ActiveCohosts(ctx context.Context, propertyID string) ([]models.Cohost, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).([]models.Cohost), args.Error(1)
}

func (m *MockPropertyRepository) SetFeedSyncedAt(ctx context.Context, propertyID, feedURL string) error {
	args := m.Called(ctx, propertyID, feedURL)
	return args.Error(0)
}

func (m *MockPropertyRepository) EnsureIndexes() error {
	args := m.Called()
	return args.Error(0)
}

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

type MockAvailabilityRepository struct {
	mock.Mock
}

func (m *MockAvailabilityRepository) CountUnavailable(ctx context.Context, propertyID, from, to string) (int64, error) {
	args := m.Called(ctx, propertyID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAvailabilityRepository) GetDays(ctx context.Context, propertyID, from, to string) ([]models.AvailabilityDay, error) {
	args := m.Called(ctx, propertyID, from, to)
	return args.Get(0).([]models.AvailabilityDay), args.Error(1)
}

func (m *MockAvailabilityRepository) PriceOverrides(ctx context.Context, propertyID, from, to string) (map[string]float64, error) {
	args := m.Called(ctx, propertyID, from, to)
	return args.Get(0).(map[string]float64), args.Error(1)
}

func (m *MockAvailabilityRepository) MarkBooked(ctx context.Context, propertyID, checkIn, checkOut, bookingID string) error {
	args := m.Called(ctx, propertyID, checkIn, checkOut, bookingID)
	return args.Error(0)
}

func (m *MockAvailabilityRepository) ClearBooked(ctx context.Context, propertyID, checkIn, checkOut string) error {
	args := m.Called(ctx, propertyID, checkIn, checkOut)
	return args.Error(0)
}

func (m *MockAvailabilityRepository) ReplaceBlockedBySource(ctx context.Context, propertyID, source string, days []models.AvailabilityDay) error {
	args := m.Called(ctx, propertyID, source, days)
	return args.Error(0)
}

func (m *MockAvailabilityRepository) SetPriceOverride(ctx context.Context, propertyID, date string, rate *float64) error {
	args := m.Called(ctx, propertyID, date, rate)
	return args.Error(0)
}

func (m *MockAvailabilityRepository) EnsureIndexes() error {
	args := m.Called()
	return args.Error(0)
}

type MockPricingEngine struct {
	mock.Mock
}

func (m *MockPricingEngine) Calculate(ctx context.Context, propertyID, checkIn, checkOut string, guests int) (*models.PricingBreakdown, error) {
	args := m.Called(ctx, propertyID, checkIn, checkOut, guests)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PricingBreakdown), args.Error(1)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateIntent(ctx context.Context, amountCents int64, currency, transferGroup string, metadata map[string]string) (*payment.IntentResult, error) {
	args := m.Called(ctx, amountCents, currency, transferGroup, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.IntentResult), args.Error(1)
}

func (m *MockGateway) ChargeOffSession(ctx context.Context, customerID, paymentMethodID string, amountCents int64, currency string, metadata map[string]string) (string, error) {
	args := m.Called(ctx, customerID, paymentMethodID, amountCents, currency, metadata)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) Transfer(ctx context.Context, amountCents int64, currency, destinationAccount, transferGroup string, metadata map[string]string) (string, error) {
	args := m.Called(ctx, amountCents, currency, destinationAccount, transferGroup, metadata)
	return args.String(0), args.Error(1)
}

type MockLocker struct {
	mock.Mock
}

func (m *MockLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockLocker) Release(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockQueue struct {
	mock.Mock
}

func (m *MockQueue) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(task, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asynq.TaskInfo), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendBookingConfirmation(ctx context.Context, booking *models.Booking, property *models.Property) error {
	args := m.Called(ctx, booking, property)
	return args.Error(0)
}

func (m *MockNotifier) SendCheckinReminder(ctx context.Context, booking *models.Booking, property *models.Property) error {
	args := m.Called(ctx, booking, property)
	return args.Error(0)
}

func (m *MockNotifier) SendInstallmentReceipt(ctx context.Context, booking *models.Booking, installment models.Installment) error {
	args := m.Called(ctx, booking, installment)
	return args.Error(0)
}

func (m *MockNotifier) SendInstallmentFailed(ctx context.Context, booking *models.Booking, installment models.Installment) error {
	args := m.Called(ctx, booking, installment)
	return args.Error(0)
}

func (m *MockNotifier) SendCancellation(ctx context.Context, booking *models.Booking, property *models.Property) error {
	args := m.Called(ctx, booking, property)
	return args.Error(0)
}
