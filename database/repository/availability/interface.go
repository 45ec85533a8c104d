// File: database/repository/availability/interface.go
package availabilityRepo

import (
	"context"

	"strbooking/database"
	"strbooking/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AvailabilityRepository manages per-day availability rows, unique per
// (propertyId, date). Date ranges are half-open: [from, to).
type AvailabilityRepository interface {
	// CountUnavailable returns how many days in [from, to) are not available.
	CountUnavailable(ctx context.Context, propertyID, from, to string) (int64, error)
	// GetDays returns the stored rows in [from, to).
	GetDays(ctx context.Context, propertyID, from, to string) ([]models.AvailabilityDay, error)
	// PriceOverrides returns date -> override for the range [from, to).
	PriceOverrides(ctx context.Context, propertyID, from, to string) (map[string]float64, error)

	// MarkBooked upserts one booked row per night in [checkIn, checkOut).
	MarkBooked(ctx context.Context, propertyID, checkIn, checkOut, bookingID string) error
	// ClearBooked deletes booked rows in [checkIn, checkOut). Blocked rows
	// (iCal imports, manual holds) are left untouched.
	ClearBooked(ctx context.Context, propertyID, checkIn, checkOut string) error

	// ReplaceBlockedBySource swaps all blocked rows carrying the given
	// source tag for the supplied set, without touching booked rows.
	ReplaceBlockedBySource(ctx context.Context, propertyID, source string, days []models.AvailabilityDay) error

	// SetPriceOverride stores (or clears, when nil) a per-night rate.
	SetPriceOverride(ctx context.Context, propertyID, date string, rate *float64) error

	EnsureIndexes() error
}

type mongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a new MongoDB AvailabilityRepository.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	return &mongoAvailabilityRepo{
		coll: database.DB().Collection("availability"),
	}
}
