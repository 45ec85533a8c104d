// File: database/repository/booking/queries.go
package bookingRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"strbooking/models"
	"strbooking/utils"
)

func (r *mongoBookingRepo) FindOverlapping(ctx context.Context, propertyID, start, end string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Open-interval overlap on half-open stay ranges.
	filter := bson.M{
		"propertyId": propertyID,
		"status":     bson.M{"$in": models.ActiveBookingStatuses},
		"checkIn":    bson.M{"$lt": end},
		"checkOut":   bson.M{"$gt": start},
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *mongoBookingRepo) ListForProperty(ctx context.Context, propertyID, start, end string) ([]models.Booking, error) {
	return r.FindOverlapping(ctx, propertyID, start, end)
}

func (r *mongoBookingRepo) Metrics(ctx context.Context) (*models.Metrics, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	earned := []string{models.BookingConfirmed, models.BookingCheckedIn, models.BookingCheckedOut}

	confirmed, err := r.coll.CountDocuments(ctx, bson.M{"status": bson.M{"$in": earned}})
	if err != nil {
		return nil, err
	}
	pending, err := r.coll.CountDocuments(ctx, bson.M{"status": models.BookingPending})
	if err != nil {
		return nil, err
	}

	// Revenue is total minus the refundable security deposit.
	pipeline := []bson.M{
		{"$match": bson.M{"status": bson.M{"$in": earned}}},
		{"$group": bson.M{
			"_id":     nil,
			"revenue": bson.M{"$sum": bson.M{"$subtract": []string{"$total", "$securityDeposit"}}},
		}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var agg []struct {
		Revenue float64 `bson:"revenue"`
	}
	if err := cursor.All(ctx, &agg); err != nil {
		return nil, err
	}

	metrics := &models.Metrics{
		ConfirmedBookings: int(confirmed),
		PendingBookings:   int(pending),
	}
	if len(agg) > 0 {
		metrics.TotalRevenue = utils.Round2(agg[0].Revenue)
	}
	return metrics, nil
}
