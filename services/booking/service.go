package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	bookingRepo "strbooking/database/repository/booking"
	propertyRepo "strbooking/database/repository/property"
	"strbooking/models"
	"strbooking/services/notification"
	"strbooking/services/payment"
	"strbooking/services/pricing"
	"strbooking/services/tasks"
	"strbooking/utils"
)

// TaskQueue is the slice of asynq.Client the booking flow uses, kept as
// an interface so tests can capture enqueued jobs.
type TaskQueue interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// BookingRequest is the guest's checkout submission.
type BookingRequest struct {
	PropertyID      string  `json:"propertyId" binding:"required"`
	CheckIn         string  `json:"checkIn" binding:"required"`
	CheckOut        string  `json:"checkOut" binding:"required"`
	GuestName       string  `json:"guestName" binding:"required"`
	GuestEmail      string  `json:"guestEmail" binding:"required,email"`
	GuestPhone      string  `json:"guestPhone"`
	GuestCount      int     `json:"guestCount"`
	SpecialRequests string  `json:"specialRequests"`
	PaymentPlan     string  `json:"paymentPlan"`
	DepositAmount   float64 `json:"depositAmount"` // optional, may raise the plan minimum

	// Stored gateway references for multi-payment plans; card data never
	// touches this service.
	StripeCustomerID      string `json:"stripeCustomerId"`
	StripePaymentMethodID string `json:"stripePaymentMethodId"`
}

// BookingResult pairs the persisted booking with the PaymentIntent the
// frontend confirms.
type BookingResult struct {
	Booking *models.Booking          `json:"booking"`
	Intent  *payment.IntentResult    `json:"paymentIntent"`
	Pricing *models.PricingBreakdown `json:"pricing"`
}

// Service is the booking lifecycle entry point.
type Service interface {
	CreateBooking(ctx context.Context, req BookingRequest) (*BookingResult, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	CancelBooking(ctx context.Context, id string) error
	EligiblePlans(ctx context.Context, propertyID, checkIn string) ([]string, error)

	ConfirmFromIntent(ctx context.Context, intentID, chargeID string) error
	FailFromIntent(ctx context.Context, intentID string) error
	RefundFromCharge(ctx context.Context, chargeID string) error
}

// DefaultService wires the pricing engine, availability checker, payment
// gateway, and task queue into the booking flow. Composition happens in
// main; nothing here reaches for globals.
type DefaultService struct {
	Properties propertyRepo.PropertyRepository
	Bookings   bookingRepo.BookingRepository
	Checker    AvailabilityChecker
	Pricing    pricing.Engine
	Gateway    payment.Gateway
	Locker     utils.Locker
	Queue      TaskQueue
	Notifier   notification.Notifier
	Currency   string
	Logger     *zap.Logger
}

// CreateBooking quotes, validates, reserves the PaymentIntent, and
// persists a pending booking with its installment schedule. The
// availability check and insert run under a per-property lock so two
// guests cannot race the same nights.
func (s *DefaultService) CreateBooking(ctx context.Context, req BookingRequest) (*BookingResult, error) {
	property, err := s.Properties.GetByID(ctx, req.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load property: %w", err)
	}
	if !property.Active {
		return nil, ErrPropertyInactive
	}
	if req.GuestCount < 1 {
		req.GuestCount = 1
	}
	if property.MaxGuests > 0 && req.GuestCount > property.MaxGuests {
		return nil, ErrTooManyGuests
	}

	lockKey := "availability:" + req.PropertyID
	locked, err := s.Locker.Acquire(ctx, lockKey, 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire availability lock: %w", err)
	}
	if !locked {
		return nil, ErrBookingLocked
	}
	defer func() {
		if err := s.Locker.Release(context.Background(), lockKey); err != nil {
			s.Logger.Warn("failed to release availability lock", zap.String("key", lockKey), zap.Error(err))
		}
	}()

	available, err := s.Checker.IsAvailable(ctx, req.PropertyID, req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, ErrUnavailable
	}

	quote, err := s.Pricing.Calculate(ctx, req.PropertyID, req.CheckIn, req.CheckOut, req.GuestCount)
	if err != nil {
		return nil, err
	}

	plan := req.PaymentPlan
	if plan == "" {
		plan = models.PlanPayInFull
	}
	checkInDt, _ := time.Parse(dateLayout, req.CheckIn)
	if plan != models.PlanPayInFull && !payment.PlanEligible(property.PlanConfig, plan, checkInDt, time.Now()) {
		return nil, ErrPlanNotEligible
	}

	deposit := s.depositFor(plan, quote.Total, property.PlanConfig, req.DepositAmount)

	bookingID := uuid.New().String()
	transferGroup := "booking_" + bookingID

	intent, err := s.Gateway.CreateIntent(ctx, utils.Cents(deposit), s.Currency, transferGroup, map[string]string{
		"booking_id":  bookingID,
		"property_id": req.PropertyID,
		"source":      "strbooking",
	})
	if err != nil {
		return nil, err
	}

	installments := payment.BuildSchedule(plan, deposit, quote.Total, checkInDt,
		property.PlanConfig.EffectiveTwoDaysBefore())

	b := models.Booking{
		ID:              bookingID,
		PropertyID:      req.PropertyID,
		GuestName:       req.GuestName,
		GuestEmail:      req.GuestEmail,
		GuestPhone:      req.GuestPhone,
		GuestCount:      req.GuestCount,
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		Nights:          quote.Nights,
		NightlyRate:     quote.NightlyRate,
		Subtotal:        quote.NightlySubtotal,
		LOSDiscount:     quote.LOSDiscount,
		CleaningFee:     quote.CleaningFee,
		SecurityDeposit: quote.SecurityDeposit,
		Taxes:           quote.Taxes,
		Total:           quote.Total,
		Status:          models.BookingPending,

		PaymentPlan:  plan,
		Installments: installments,

		StripePaymentIntentID: intent.ID,
		StripeCustomerID:      req.StripeCustomerID,
		StripePaymentMethodID: req.StripePaymentMethodID,
		TransferGroup:         transferGroup,

		SpecialRequests: req.SpecialRequests,
		DailyBreakdown:  quote.DailyBreakdown,
	}

	if _, err := s.Bookings.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	s.scheduleInstallmentCharges(bookingID, installments)

	s.Logger.Info("booking created",
		zap.String("bookingID", bookingID), zap.String("propertyID", req.PropertyID),
		zap.String("plan", plan), zap.Float64("total", quote.Total))

	return &BookingResult{Booking: &b, Intent: intent, Pricing: quote}, nil
}

// depositFor computes the up-front charge for a plan. The guest may
// volunteer a larger deposit but never less than the plan minimum, and
// never more than the total.
func (s *DefaultService) depositFor(plan string, total float64, cfg models.PaymentPlanConfig, requested float64) float64 {
	var deposit float64
	switch plan {
	case models.PlanTwoPayment:
		deposit = utils.Round2(total * float64(cfg.EffectiveTwoDepositPct()) / 100)
	case models.PlanFourPayment:
		deposit = utils.Round2(total * float64(cfg.EffectiveFourDepositMinPct()) / 100)
	default:
		return utils.Round2(total)
	}

	if requested > deposit {
		deposit = utils.Round2(requested)
	}
	if deposit > total {
		deposit = utils.Round2(total)
	}
	return deposit
}

// scheduleInstallmentCharges enqueues one deferred charge per pending
// installment. A due date already in the past is charged immediately
// rather than silently dropped, so a plan-config change between quote
// and booking cannot strand an unpaid installment.
func (s *DefaultService) scheduleInstallmentCharges(bookingID string, installments []models.Installment) {
	now := time.Now()
	for _, inst := range installments {
		if inst.Status != models.InstallmentPending {
			continue
		}

		fireAt, err := time.Parse(dateLayout, inst.DueDate)
		if err != nil || fireAt.Before(now) {
			fireAt = now
		}

		task, opts, err := tasks.NewChargeInstallmentTask(bookingID, inst.Number, fireAt)
		if err != nil {
			s.Logger.Error("failed to build charge task",
				zap.String("bookingID", bookingID), zap.Int("installment", inst.Number), zap.Error(err))
			continue
		}
		if _, err := s.Queue.Enqueue(task, opts...); err != nil {
			s.Logger.Error("failed to enqueue charge task",
				zap.String("bookingID", bookingID), zap.Int("installment", inst.Number), zap.Error(err))
		}
	}
}

func (s *DefaultService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	return s.Bookings.GetByID(ctx, id)
}

// CancelBooking releases booked nights. Blocked nights imported from
// external calendars are left exactly as they were.
func (s *DefaultService) CancelBooking(ctx context.Context, id string) error {
	b, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.Bookings.UpdateStatus(ctx, id, models.BookingCancelled); err != nil {
		return err
	}
	if err := s.Checker.MarkAvailable(ctx, b.PropertyID, b.CheckIn, b.CheckOut); err != nil {
		return fmt.Errorf("failed to release booked dates: %w", err)
	}

	s.Logger.Info("booking cancelled", zap.String("bookingID", id))
	return nil
}

func (s *DefaultService) EligiblePlans(ctx context.Context, propertyID, checkIn string) ([]string, error) {
	property, err := s.Properties.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	checkInDt, err := time.Parse(dateLayout, checkIn)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	return payment.EligiblePlans(property.PlanConfig, checkInDt, time.Now()), nil
}
