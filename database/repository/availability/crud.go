// File: database/repository/availability/crud.go
package availabilityRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"strbooking/models"
)

const dateLayout = "2006-01-02"

// nightsIn returns each date in the half-open range [from, to).
func nightsIn(from, to string) ([]string, error) {
	start, err := time.Parse(dateLayout, from)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(dateLayout, to)
	if err != nil {
		return nil, err
	}

	var dates []string
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(dateLayout))
	}
	return dates, nil
}

func (r *mongoAvailabilityRepo) MarkBooked(ctx context.Context, propertyID, checkIn, checkOut, bookingID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	dates, err := nightsIn(checkIn, checkOut)
	if err != nil {
		return err
	}

	for _, date := range dates {
		filter := bson.M{"propertyId": propertyID, "date": date}
		update := bson.M{"$set": bson.M{
			"status":    models.AvailabilityBooked,
			"bookingId": bookingID,
		}}
		if _, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			return err
		}
	}
	return nil
}

func (r *mongoAvailabilityRepo) ClearBooked(ctx context.Context, propertyID, checkIn, checkOut string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.DeleteMany(ctx, bson.M{
		"propertyId": propertyID,
		"date":       bson.M{"$gte": checkIn, "$lt": checkOut},
		"status":     models.AvailabilityBooked,
	})
	return err
}

func (r *mongoAvailabilityRepo) ReplaceBlockedBySource(ctx context.Context, propertyID, source string, days []models.AvailabilityDay) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.DeleteMany(ctx, bson.M{
		"propertyId": propertyID,
		"status":     models.AvailabilityBlocked,
		"source":     source,
	})
	if err != nil {
		return err
	}

	for _, day := range days {
		filter := bson.M{
			"propertyId": propertyID,
			"date":       day.Date,
			"status":     bson.M{"$ne": models.AvailabilityBooked},
		}
		update := bson.M{"$set": bson.M{
			"status": models.AvailabilityBlocked,
			"source": source,
		}}
		_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
		if err != nil {
			// A booked row already holds this date; the block is redundant.
			if mongo.IsDuplicateKeyError(err) {
				continue
			}
			return err
		}
	}
	return nil
}

func (r *mongoAvailabilityRepo) SetPriceOverride(ctx context.Context, propertyID, date string, rate *float64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"propertyId": propertyID, "date": date}

	if rate == nil {
		// Clearing the override on an otherwise-available day removes the row.
		_, err := r.coll.DeleteOne(ctx, bson.M{
			"propertyId": propertyID,
			"date":       date,
			"status":     models.AvailabilityAvailable,
		})
		if err != nil {
			return err
		}
		_, err = r.coll.UpdateOne(ctx, filter, bson.M{"$unset": bson.M{"priceOverride": ""}})
		return err
	}

	update := bson.M{
		"$set":         bson.M{"priceOverride": *rate},
		"$setOnInsert": bson.M{"status": models.AvailabilityAvailable},
	}
	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}
