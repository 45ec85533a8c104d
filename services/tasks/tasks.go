package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// Task type names routed by the background worker.
const (
	TypeChargeInstallment = "payments:charge_installment"
	TypeCohostTransfers   = "payments:process_transfers"
	TypeCheckinReminder   = "notifications:checkin_reminder"
	TypeCalendarSync      = "calendar:sync"
)

// ChargeInstallmentPayload identifies one scheduled installment charge.
type ChargeInstallmentPayload struct {
	BookingID string `json:"bookingId"`
	Number    int    `json:"number"`
}

// CohostTransfersPayload triggers co-host payouts for a booking.
type CohostTransfersPayload struct {
	BookingID     string `json:"bookingId"`
	TransferGroup string `json:"transferGroup"`
}

// CheckinReminderPayload triggers the pre-arrival guest notification.
type CheckinReminderPayload struct {
	BookingID string `json:"bookingId"`
}

// CalendarSyncPayload triggers an iCal feed import. An empty PropertyID
// means sync every active property.
type CalendarSyncPayload struct {
	PropertyID string `json:"propertyId,omitempty"`
}

// NewChargeInstallmentTask schedules an off-session charge at fireAt.
// The task ID makes enqueueing idempotent per (booking, installment).
func NewChargeInstallmentTask(bookingID string, number int, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(ChargeInstallmentPayload{BookingID: bookingID, Number: number})
	if err != nil {
		return nil, nil, err
	}
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(fmt.Sprintf("charge:%s:%d", bookingID, number)),
		asynq.Queue("payments"),
	}
	return asynq.NewTask(TypeChargeInstallment, b), opts, nil
}

// NewCohostTransfersTask schedules co-host payouts, normally 24h after check-in.
func NewCohostTransfersTask(bookingID, transferGroup string, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(CohostTransfersPayload{BookingID: bookingID, TransferGroup: transferGroup})
	if err != nil {
		return nil, nil, err
	}
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("transfers:" + bookingID),
		asynq.Queue("payments"),
	}
	return asynq.NewTask(TypeCohostTransfers, b), opts, nil
}

// NewCheckinReminderTask schedules the guest's pre-arrival reminder.
func NewCheckinReminderTask(bookingID string, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(CheckinReminderPayload{BookingID: bookingID})
	if err != nil {
		return nil, nil, err
	}
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("reminder:" + bookingID),
	}
	return asynq.NewTask(TypeCheckinReminder, b), opts, nil
}

// NewCalendarSyncTask triggers an immediate feed import.
func NewCalendarSyncTask(propertyID string) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(CalendarSyncPayload{PropertyID: propertyID})
	if err != nil {
		return nil, nil, err
	}
	return asynq.NewTask(TypeCalendarSync, b), nil, nil
}
