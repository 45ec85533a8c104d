package cron

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"strbooking/config"
	bookingRepo "strbooking/database/repository/booking"
	propertyRepo "strbooking/database/repository/property"
	"strbooking/models"
	"strbooking/services/calendar"
	"strbooking/services/notification"
	"strbooking/services/payment"
	"strbooking/services/tasks"
)

// Worker consumes the background queues: installment charges, co-host
// transfers, guest reminders, and calendar feed syncs.
type Worker struct {
	Charger    *payment.Charger
	Transfers  *payment.TransferProcessor
	Importer   calendar.Importer
	Bookings   bookingRepo.BookingRepository
	Properties propertyRepo.PropertyRepository
	Notifier   notification.Notifier
	Logger     *zap.Logger
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// Start runs the asynq server and the periodic calendar sync scheduler
// in the background, retrying startup a few times before giving up.
func (w *Worker) Start() {
	srv := asynq.NewServer(redisOpts(), asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"payments": 3,
			"default":  1,
		},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeChargeInstallment, w.handleChargeInstallment)
	mux.HandleFunc(tasks.TypeCohostTransfers, w.handleCohostTransfers)
	mux.HandleFunc(tasks.TypeCheckinReminder, w.handleCheckinReminder)
	mux.HandleFunc(tasks.TypeCalendarSync, w.handleCalendarSync)

	go w.monitorRedis()
	go w.startScheduler()

	go func() {
		const maxAttempts = 5
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			w.Logger.Info("starting background worker", zap.Int("attempt", attempt))
			err := srv.Run(mux)
			if err == nil {
				return
			}
			w.Logger.Error("background worker failed to start",
				zap.Int("attempt", attempt), zap.Error(err))
			if attempt == maxAttempts {
				w.Logger.Fatal("background worker exhausted startup attempts")
			}
			time.Sleep(time.Duration(attempt*2) * time.Second)
		}
	}()
}

// startScheduler registers the recurring full calendar sync.
func (w *Worker) startScheduler() {
	scheduler := asynq.NewScheduler(redisOpts(), nil)

	task, _, err := tasks.NewCalendarSyncTask("")
	if err != nil {
		w.Logger.Error("failed to build calendar sync task", zap.Error(err))
		return
	}
	if _, err := scheduler.Register(config.AppConfig.CalendarSyncInterval, task); err != nil {
		w.Logger.Error("failed to register calendar sync schedule", zap.Error(err))
		return
	}

	if err := scheduler.Run(); err != nil {
		w.Logger.Error("calendar sync scheduler stopped", zap.Error(err))
	}
}

// handleChargeInstallment runs a scheduled off-session charge. A card
// decline or a missing payment method is terminal for the task: the
// guest is notified and the host follows up manually. Infrastructure
// errors are returned so asynq redelivers.
func (w *Worker) handleChargeInstallment(ctx context.Context, task *asynq.Task) error {
	var p tasks.ChargeInstallmentPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		w.Logger.Error("invalid charge payload", zap.Error(err))
		return nil
	}

	err := w.Charger.ChargeInstallment(ctx, p.BookingID, p.Number)
	if err == nil {
		w.notifyInstallment(ctx, p.BookingID, p.Number, true)
		return nil
	}

	var chargeErr *payment.ChargeError
	if errors.As(err, &chargeErr) || errors.Is(err, payment.ErrMissingPaymentMethod) {
		w.notifyInstallment(ctx, p.BookingID, p.Number, false)
		return nil
	}
	return err
}

func (w *Worker) notifyInstallment(ctx context.Context, bookingID string, number int, paid bool) {
	booking, err := w.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		w.Logger.Warn("failed to load booking for installment notification",
			zap.String("bookingID", bookingID), zap.Error(err))
		return
	}
	installment := booking.Installment(number)
	if installment == nil {
		return
	}

	if paid {
		err = w.Notifier.SendInstallmentReceipt(ctx, booking, *installment)
	} else {
		err = w.Notifier.SendInstallmentFailed(ctx, booking, *installment)
	}
	if err != nil {
		w.Logger.Warn("installment notification failed",
			zap.String("bookingID", bookingID), zap.Int("installment", number), zap.Error(err))
	}
}

func (w *Worker) handleCohostTransfers(ctx context.Context, task *asynq.Task) error {
	var p tasks.CohostTransfersPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		w.Logger.Error("invalid transfers payload", zap.Error(err))
		return nil
	}
	return w.Transfers.ProcessTransfers(ctx, p.BookingID, p.TransferGroup)
}

func (w *Worker) handleCheckinReminder(ctx context.Context, task *asynq.Task) error {
	var p tasks.CheckinReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		w.Logger.Error("invalid reminder payload", zap.Error(err))
		return nil
	}

	booking, err := w.Bookings.GetByID(ctx, p.BookingID)
	if err != nil {
		return err
	}
	if booking.Status != models.BookingConfirmed {
		return nil
	}
	property, err := w.Properties.GetByID(ctx, booking.PropertyID)
	if err != nil {
		return err
	}
	return w.Notifier.SendCheckinReminder(ctx, booking, property)
}

func (w *Worker) handleCalendarSync(ctx context.Context, task *asynq.Task) error {
	var p tasks.CalendarSyncPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		w.Logger.Error("invalid calendar sync payload", zap.Error(err))
		return nil
	}
	if p.PropertyID != "" {
		return w.Importer.SyncProperty(ctx, p.PropertyID)
	}
	return w.Importer.SyncAll(ctx)
}

// monitorRedis pings the queue's Redis periodically to surface outages
// in the logs before tasks start piling up.
func (w *Worker) monitorRedis() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()
	for {
		if err := client.Ping(ctx).Err(); err != nil {
			w.Logger.Warn("queue redis unreachable", zap.Error(err))
		}
		time.Sleep(10 * time.Second)
	}
}
