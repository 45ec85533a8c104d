package calendar

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	availabilityRepo "strbooking/database/repository/availability"
	propertyRepo "strbooking/database/repository/property"
	"strbooking/models"
)

// Importer pulls external iCal feeds (Airbnb, Vrbo) and mirrors their
// events as blocked days, tagged per source so each feed replaces only
// its own rows on the next sync.
type Importer interface {
	SyncProperty(ctx context.Context, propertyID string) error
	SyncAll(ctx context.Context) error
}

type DefaultImporter struct {
	Properties   propertyRepo.PropertyRepository
	Availability availabilityRepo.AvailabilityRepository
	Client       *http.Client
	Logger       *zap.Logger
}

func NewDefaultImporter(properties propertyRepo.PropertyRepository, availability availabilityRepo.AvailabilityRepository, logger *zap.Logger) *DefaultImporter {
	return &DefaultImporter{
		Properties:   properties,
		Availability: availability,
		Client:       &http.Client{Timeout: 30 * time.Second},
		Logger:       logger,
	}
}

// SyncProperty imports every feed configured on the property. One bad
// feed does not block the others.
func (i *DefaultImporter) SyncProperty(ctx context.Context, propertyID string) error {
	property, err := i.Properties.GetByID(ctx, propertyID)
	if err != nil {
		return err
	}

	var failed []string
	for _, feed := range property.CalendarFeeds {
		if err := i.syncFeed(ctx, propertyID, feed); err != nil {
			i.Logger.Warn("calendar feed sync failed",
				zap.String("propertyID", propertyID),
				zap.String("source", feed.Source), zap.Error(err))
			failed = append(failed, feed.Source)
			continue
		}
		if err := i.Properties.SetFeedSyncedAt(ctx, propertyID, feed.URL); err != nil {
			i.Logger.Warn("failed to record feed sync time",
				zap.String("propertyID", propertyID), zap.Error(err))
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("feeds failed to sync: %s", strings.Join(failed, ", "))
	}
	return nil
}

// SyncAll runs SyncProperty for every active property, logging failures
// and moving on.
func (i *DefaultImporter) SyncAll(ctx context.Context) error {
	properties, err := i.Properties.List(ctx, true)
	if err != nil {
		return fmt.Errorf("failed to list properties for sync: %w", err)
	}

	for _, p := range properties {
		if len(p.CalendarFeeds) == 0 {
			continue
		}
		if err := i.SyncProperty(ctx, p.ID); err != nil {
			i.Logger.Warn("property calendar sync incomplete",
				zap.String("propertyID", p.ID), zap.Error(err))
		}
	}
	return nil
}

func (i *DefaultImporter) syncFeed(ctx context.Context, propertyID string, feed models.CalendarFeed) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feed.URL, nil)
	if err != nil {
		return fmt.Errorf("bad feed url: %w", err)
	}

	resp, err := i.Client.Do(req)
	if err != nil {
		return fmt.Errorf("feed fetch failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("feed fetch returned status %d", resp.StatusCode)
	}

	cal, err := ics.ParseCalendar(resp.Body)
	if err != nil {
		return fmt.Errorf("feed parse failed: %w", err)
	}

	source := "ical:" + feed.Source
	days := i.blockedDays(cal, propertyID, source)

	if err := i.Availability.ReplaceBlockedBySource(ctx, propertyID, source, days); err != nil {
		return fmt.Errorf("failed to store blocked days: %w", err)
	}

	i.Logger.Info("calendar feed synced",
		zap.String("propertyID", propertyID),
		zap.String("source", feed.Source), zap.Int("blockedDays", len(days)))
	return nil
}

// blockedDays flattens feed events into one blocked row per night.
// Events we exported ourselves are skipped so a host cross-subscribing
// feeds cannot loop bookings back in as blocks.
func (i *DefaultImporter) blockedDays(cal *ics.Calendar, propertyID, source string) []models.AvailabilityDay {
	seen := make(map[string]bool)
	var days []models.AvailabilityDay

	for _, event := range cal.Events() {
		if strings.Contains(event.Id(), "@strbooking") {
			continue
		}
		start, end, ok := eventRange(event)
		if !ok {
			continue
		}
		for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
			date := d.Format(dateLayout)
			if seen[date] {
				continue
			}
			seen[date] = true
			days = append(days, models.AvailabilityDay{
				PropertyID: propertyID,
				Date:       date,
				Status:     models.AvailabilityBlocked,
				Source:     source,
			})
		}
	}
	return days
}

// eventRange normalizes an event to half-open all-day dates. Timed
// events (rare in OTA feeds) are widened to whole days.
func eventRange(event *ics.VEvent) (time.Time, time.Time, bool) {
	start, err := event.GetAllDayStartAt()
	if err != nil {
		if start, err = event.GetStartAt(); err != nil {
			return time.Time{}, time.Time{}, false
		}
	}
	end, err := event.GetAllDayEndAt()
	if err != nil {
		if end, err = event.GetEndAt(); err != nil {
			// DTEND is optional; a bare DTSTART blocks one night.
			end = start.AddDate(0, 0, 1)
		}
	}

	start = start.Truncate(24 * time.Hour)
	end = end.Truncate(24 * time.Hour)
	if !end.After(start) {
		end = start.AddDate(0, 0, 1)
	}
	return start, end, true
}
