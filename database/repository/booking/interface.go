// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"

	"strbooking/database"
	"strbooking/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type BookingRepository interface {
	Create(ctx context.Context, b models.Booking) (string, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByChargeID(ctx context.Context, chargeID string) (*models.Booking, error)
	GetByPaymentIntentID(ctx context.Context, intentID string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id, status string) error

	// FindOverlapping returns active bookings whose half-open stay range
	// intersects [start, end): checkIn < end AND checkOut > start.
	FindOverlapping(ctx context.Context, propertyID, start, end string) ([]models.Booking, error)
	ListForProperty(ctx context.Context, propertyID, start, end string) ([]models.Booking, error)

	UpdateInstallment(ctx context.Context, bookingID string, number int, status, paymentIntentID string) error
	SetChargeID(ctx context.Context, bookingID, chargeID string) error
	SetTransfersProcessed(ctx context.Context, bookingID string) error
	SetDepositReleased(ctx context.Context, bookingID string) error

	Metrics(ctx context.Context) (*models.Metrics, error)

	EnsureIndexes() error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	return &mongoBookingRepo{
		coll: database.DB().Collection("bookings"),
	}
}
