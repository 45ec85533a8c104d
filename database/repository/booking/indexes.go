// File: database/repository/booking/indexes.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the bookings collection.
func (r *mongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Overlap query pattern: property + status + date bounds.
		{
			Keys:    bson.D{{Key: "propertyId", Value: 1}, {Key: "status", Value: 1}, {Key: "checkIn", Value: 1}, {Key: "checkOut", Value: 1}},
			Options: options.Index().SetName("property_status_dates_idx"),
		},
		{
			Keys:    bson.D{{Key: "stripeChargeId", Value: 1}},
			Options: options.Index().SetSparse(true).SetName("stripe_charge_idx"),
		},
		{
			Keys:    bson.D{{Key: "stripePaymentIntentId", Value: 1}},
			Options: options.Index().SetSparse(true).SetName("stripe_intent_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
