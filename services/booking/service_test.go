package booking

import (
	"context"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"strbooking/models"
	"strbooking/services/payment"
)

type serviceMocks struct {
	properties *MockPropertyRepository
	bookings   *MockBookingRepository
	avail      *MockAvailabilityRepository
	pricing    *MockPricingEngine
	gateway    *MockGateway
	locker     *MockLocker
	queue      *MockQueue
	notifier   *MockNotifier
}

func newService() (*DefaultService, *serviceMocks) {
	m := &serviceMocks{
		properties: &MockPropertyRepository{},
		bookings:   &MockBookingRepository{},
		avail:      &MockAvailabilityRepository{},
		pricing:    &MockPricingEngine{},
		gateway:    &MockGateway{},
		locker:     &MockLocker{},
		queue:      &MockQueue{},
		notifier:   &MockNotifier{},
	}
	svc := &DefaultService{
		Properties: m.properties,
		Bookings:   m.bookings,
		Checker:    &DefaultAvailabilityChecker{Availability: m.avail, Bookings: m.bookings},
		Pricing:    m.pricing,
		Gateway:    m.gateway,
		Locker:     m.locker,
		Queue:      m.queue,
		Notifier:   m.notifier,
		Currency:   "usd",
		Logger:     zap.NewNop(),
	}
	return svc, m
}

func activeProperty() *models.Property {
	return &models.Property{
		ID:              "prop-1",
		Name:            "Lake House",
		Active:          true,
		NightlyRate:     100,
		CleaningFee:     50,
		SecurityDeposit: 200,
		MaxGuests:       6,
		PlanConfig:      models.PaymentPlanConfig{TwoEnabled: true},
	}
}

func weekQuote() *models.PricingBreakdown {
	return &models.PricingBreakdown{
		Nights:          7,
		NightlyRate:     100,
		NightlySubtotal: 700,
		LOSDiscount:     70,
		LOSDiscountRate: 0.10,
		CleaningFee:     50,
		SecurityDeposit: 200,
		Taxes:           50.40,
		TaxRate:         0.08,
		Total:           930.40,
	}
}

func futureRequest() BookingRequest {
	checkIn := time.Now().AddDate(0, 6, 0)
	return BookingRequest{
		PropertyID:            "prop-1",
		CheckIn:               checkIn.Format("2006-01-02"),
		CheckOut:              checkIn.AddDate(0, 0, 7).Format("2006-01-02"),
		GuestName:             "Ada Guest",
		GuestEmail:            "ada@example.com",
		GuestCount:            2,
		PaymentPlan:           models.PlanTwoPayment,
		StripeCustomerID:      "cus_123",
		StripePaymentMethodID: "pm_123",
	}
}

func TestCreateBooking_TwoPaymentPlan(t *testing.T) {
	svc, m := newService()
	req := futureRequest()

	m.properties.On("GetByID", mock.Anything, "prop-1").Return(activeProperty(), nil)
	m.locker.On("Acquire", mock.Anything, "availability:prop-1", mock.Anything).Return(true, nil)
	m.locker.On("Release", mock.Anything, "availability:prop-1").Return(nil)
	m.avail.On("CountUnavailable", mock.Anything, "prop-1", req.CheckIn, req.CheckOut).Return(int64(0), nil)
	m.bookings.On("FindOverlapping", mock.Anything, "prop-1", req.CheckIn, req.CheckOut).Return([]models.Booking{}, nil)
	m.pricing.On("Calculate", mock.Anything, "prop-1", req.CheckIn, req.CheckOut, 2).Return(weekQuote(), nil)

	// the up-front charge is 50% of the total
	m.gateway.On("CreateIntent", mock.Anything, int64(46520), "usd", mock.Anything, mock.Anything).
		Return(&payment.IntentResult{ID: "pi_1", ClientSecret: "pi_1_secret", Amount: 46520}, nil)

	m.bookings.On("Create", mock.Anything, mock.MatchedBy(func(b models.Booking) bool {
		return b.Status == models.BookingPending &&
			b.PaymentPlan == models.PlanTwoPayment &&
			b.Total == 930.40 &&
			len(b.Installments) == 2 &&
			b.StripePaymentIntentID == "pi_1"
	})).Return("bk-1", nil)

	// one pending installment, one scheduled charge
	m.queue.On("Enqueue", mock.Anything, mock.Anything).Return(&asynq.TaskInfo{}, nil).Once()

	result, err := svc.CreateBooking(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "pi_1_secret", result.Intent.ClientSecret)
	assert.Equal(t, 465.20, result.Booking.Installments[0].Amount)
	assert.Equal(t, models.InstallmentPaid, result.Booking.Installments[0].Status)
	assert.Equal(t, 465.20, result.Booking.Installments[1].Amount)
	assert.Equal(t, models.InstallmentPending, result.Booking.Installments[1].Status)
	m.queue.AssertExpectations(t)
	m.bookings.AssertExpectations(t)
}

func TestCreateBooking_Unavailable(t *testing.T) {
	svc, m := newService()
	req := futureRequest()

	m.properties.On("GetByID", mock.Anything, "prop-1").Return(activeProperty(), nil)
	m.locker.On("Acquire", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	m.locker.On("Release", mock.Anything, mock.Anything).Return(nil)
	m.avail.On("CountUnavailable", mock.Anything, "prop-1", req.CheckIn, req.CheckOut).Return(int64(2), nil)

	_, err := svc.CreateBooking(context.Background(), req)

	assert.ErrorIs(t, err, ErrUnavailable)
	m.gateway.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_LockContention(t *testing.T) {
	svc, m := newService()

	m.properties.On("GetByID", mock.Anything, "prop-1").Return(activeProperty(), nil)
	m.locker.On("Acquire", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)

	_, err := svc.CreateBooking(context.Background(), futureRequest())

	assert.ErrorIs(t, err, ErrBookingLocked)
}

func TestCreateBooking_InactiveProperty(t *testing.T) {
	svc, m := newService()

	property := activeProperty()
	property.Active = false
	m.properties.On("GetByID", mock.Anything, "prop-1").Return(property, nil)

	_, err := svc.CreateBooking(context.Background(), futureRequest())

	assert.ErrorIs(t, err, ErrPropertyInactive)
}

func TestCreateBooking_TooManyGuests(t *testing.T) {
	svc, m := newService()

	m.properties.On("GetByID", mock.Anything, "prop-1").Return(activeProperty(), nil)

	req := futureRequest()
	req.GuestCount = 10
	_, err := svc.CreateBooking(context.Background(), req)

	assert.ErrorIs(t, err, ErrTooManyGuests)
}

func TestCreateBooking_PlanNotEligible(t *testing.T) {
	svc, m := newService()

	m.properties.On("GetByID", mock.Anything, "prop-1").Return(activeProperty(), nil)
	m.locker.On("Acquire", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	m.locker.On("Release", mock.Anything, mock.Anything).Return(nil)

	// check-in inside the two-payment window
	checkIn := time.Now().AddDate(0, 0, 10)
	req := futureRequest()
	req.CheckIn = checkIn.Format("2006-01-02")
	req.CheckOut = checkIn.AddDate(0, 0, 7).Format("2006-01-02")

	m.avail.On("CountUnavailable", mock.Anything, "prop-1", req.CheckIn, req.CheckOut).Return(int64(0), nil)
	m.bookings.On("FindOverlapping", mock.Anything, "prop-1", req.CheckIn, req.CheckOut).Return([]models.Booking{}, nil)
	m.pricing.On("Calculate", mock.Anything, "prop-1", req.CheckIn, req.CheckOut, 2).Return(weekQuote(), nil)

	_, err := svc.CreateBooking(context.Background(), req)

	assert.ErrorIs(t, err, ErrPlanNotEligible)
	m.gateway.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func confirmedCandidate() *models.Booking {
	checkIn := time.Now().AddDate(0, 6, 0)
	return &models.Booking{
		ID:                    "bk-1",
		PropertyID:            "prop-1",
		CheckIn:               checkIn.Format("2006-01-02"),
		CheckOut:              checkIn.AddDate(0, 0, 7).Format("2006-01-02"),
		Status:                models.BookingPending,
		StripePaymentIntentID: "pi_1",
		TransferGroup:         "booking_bk-1",
		Installments: []models.Installment{
			{Number: 1, Amount: 465.20, Status: models.InstallmentPending},
			{Number: 2, Amount: 465.20, Status: models.InstallmentPending},
		},
	}
}

func TestConfirmFromIntent_ConfirmsAndSchedules(t *testing.T) {
	svc, m := newService()
	b := confirmedCandidate()

	m.bookings.On("GetByPaymentIntentID", mock.Anything, "pi_1").Return(b, nil)
	m.bookings.On("SetChargeID", mock.Anything, "bk-1", "ch_1").Return(nil)
	m.bookings.On("UpdateInstallment", mock.Anything, "bk-1", 1, models.InstallmentPaid, "pi_1").Return(nil)
	m.bookings.On("UpdateStatus", mock.Anything, "bk-1", models.BookingConfirmed).Return(nil)
	m.avail.On("MarkBooked", mock.Anything, "prop-1", b.CheckIn, b.CheckOut, "bk-1").Return(nil)
	// transfers task plus the pre-arrival reminder
	m.queue.On("Enqueue", mock.Anything, mock.Anything).Return(&asynq.TaskInfo{}, nil).Twice()
	m.properties.On("GetByID", mock.Anything, "prop-1").Return(activeProperty(), nil)
	m.notifier.On("SendBookingConfirmation", mock.Anything, b, mock.Anything).Return(nil)

	err := svc.ConfirmFromIntent(context.Background(), "pi_1", "ch_1")

	require.NoError(t, err)
	m.bookings.AssertExpectations(t)
	m.avail.AssertExpectations(t)
	m.queue.AssertExpectations(t)
	m.notifier.AssertExpectations(t)
}

func TestConfirmFromIntent_ReplayIsNoOp(t *testing.T) {
	svc, m := newService()

	b := confirmedCandidate()
	b.Status = models.BookingConfirmed
	m.bookings.On("GetByPaymentIntentID", mock.Anything, "pi_1").Return(b, nil)

	err := svc.ConfirmFromIntent(context.Background(), "pi_1", "ch_1")

	require.NoError(t, err)
	m.bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	m.avail.AssertNotCalled(t, "MarkBooked", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFailFromIntent_CancelsPendingBooking(t *testing.T) {
	svc, m := newService()

	m.bookings.On("GetByPaymentIntentID", mock.Anything, "pi_1").Return(confirmedCandidate(), nil)
	m.bookings.On("UpdateStatus", mock.Anything, "bk-1", models.BookingCancelled).Return(nil)

	err := svc.FailFromIntent(context.Background(), "pi_1")

	require.NoError(t, err)
	m.bookings.AssertExpectations(t)
}

func TestRefundFromCharge_ReleasesDates(t *testing.T) {
	svc, m := newService()

	b := confirmedCandidate()
	b.Status = models.BookingConfirmed
	b.StripeChargeID = "ch_1"

	m.bookings.On("GetByChargeID", mock.Anything, "ch_1").Return(b, nil)
	m.bookings.On("UpdateStatus", mock.Anything, "bk-1", models.BookingRefunded).Return(nil)
	m.avail.On("ClearBooked", mock.Anything, "prop-1", b.CheckIn, b.CheckOut).Return(nil)
	m.properties.On("GetByID", mock.Anything, "prop-1").Return(activeProperty(), nil)
	m.notifier.On("SendCancellation", mock.Anything, b, mock.Anything).Return(nil)

	err := svc.RefundFromCharge(context.Background(), "ch_1")

	require.NoError(t, err)
	m.bookings.AssertExpectations(t)
	m.avail.AssertExpectations(t)
}
