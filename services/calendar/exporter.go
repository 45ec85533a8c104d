package calendar

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	bookingRepo "strbooking/database/repository/booking"
	"strbooking/models"
)

const dateLayout = "2006-01-02"

// Export windows relative to today. OTAs only care about the near
// future; a trailing window keeps just-finished stays visible.
const (
	exportPastWindow   = 3  // months
	exportFutureWindow = 12 // months
)

// Exporter renders a property's confirmed stays as an iCal feed that
// Airbnb, Vrbo, and friends can subscribe to.
type Exporter interface {
	Export(ctx context.Context, propertyID string) (string, error)
}

type DefaultExporter struct {
	Bookings bookingRepo.BookingRepository
}

func (e *DefaultExporter) Export(ctx context.Context, propertyID string) (string, error) {
	now := time.Now().UTC()
	start := now.AddDate(0, -exportPastWindow, 0).Format(dateLayout)
	end := now.AddDate(0, exportFutureWindow, 0).Format(dateLayout)

	bookings, err := e.Bookings.ListForProperty(ctx, propertyID, start, end)
	if err != nil {
		return "", fmt.Errorf("failed to list bookings for export: %w", err)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//strbooking//booking feed//EN")
	cal.SetCalscale("GREGORIAN")

	for _, b := range bookings {
		if !exportable(b.Status) {
			continue
		}
		checkIn, errIn := time.Parse(dateLayout, b.CheckIn)
		checkOut, errOut := time.Parse(dateLayout, b.CheckOut)
		if errIn != nil || errOut != nil {
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("booking-%s@strbooking", b.ID))
		event.SetDtStampTime(now)
		event.SetAllDayStartAt(checkIn)
		// DTEND is exclusive in iCal, same as our checkout date.
		event.SetAllDayEndAt(checkOut)
		event.SetSummary("Reserved")
	}

	return cal.Serialize(), nil
}

func exportable(status string) bool {
	switch status {
	case models.BookingConfirmed, models.BookingCheckedIn, models.BookingCheckedOut:
		return true
	}
	return false
}
