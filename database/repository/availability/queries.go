// File: database/repository/availability/queries.go
package availabilityRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"strbooking/models"
)

func (r *mongoAvailabilityRepo) CountUnavailable(ctx context.Context, propertyID, from, to string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.coll.CountDocuments(ctx, bson.M{
		"propertyId": propertyID,
		"date":       bson.M{"$gte": from, "$lt": to},
		"status":     bson.M{"$ne": models.AvailabilityAvailable},
	})
}

func (r *mongoAvailabilityRepo) GetDays(ctx context.Context, propertyID, from, to string) ([]models.AvailabilityDay, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{
		"propertyId": propertyID,
		"date":       bson.M{"$gte": from, "$lt": to},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var days []models.AvailabilityDay
	if err := cursor.All(ctx, &days); err != nil {
		return nil, err
	}
	return days, nil
}

func (r *mongoAvailabilityRepo) PriceOverrides(ctx context.Context, propertyID, from, to string) (map[string]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{
		"propertyId":    propertyID,
		"date":          bson.M{"$gte": from, "$lt": to},
		"priceOverride": bson.M{"$ne": nil},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	overrides := make(map[string]float64)
	for cursor.Next(ctx) {
		var day models.AvailabilityDay
		if err := cursor.Decode(&day); err != nil {
			return nil, err
		}
		if day.PriceOverride != nil {
			overrides[day.Date] = *day.PriceOverride
		}
	}
	return overrides, cursor.Err()
}
