// File: database/repository/property/cohosts.go
package propertyRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"strbooking/models"
)

func (r *mongoPropertyRepo) AddCohost(ctx context.Context, propertyID string, cohost models.Cohost) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if cohost.ID == "" {
		cohost.ID = uuid.New().String()
	}
	cohost.Active = true
	cohost.CreatedAt = time.Now()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": propertyID},
		bson.M{
			"$push": bson.M{"cohosts": cohost},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// RemoveCohost deactivates a co-host rather than deleting it, so past
// bookings keep a record of who was paid.
func (r *mongoPropertyRepo) RemoveCohost(ctx context.Context, propertyID, cohostID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": propertyID, "cohosts.id": cohostID},
		bson.M{
			"$set": bson.M{
				"cohosts.$.active": false,
				"updatedAt":        time.Now(),
			},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoPropertyRepo) ActiveCohosts(ctx context.Context, propertyID string) ([]models.Cohost, error) {
	p, err := r.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	var active []models.Cohost
	for _, c := range p.Cohosts {
		if c.Active {
			active = append(active, c)
		}
	}
	return active, nil
}

func (r *mongoPropertyRepo) SetFeedSyncedAt(ctx context.Context, propertyID, feedURL string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"id": propertyID, "calendarFeeds.url": feedURL},
		bson.M{"$set": bson.M{"calendarFeeds.$.lastSyncedAt": time.Now()}},
	)
	return err
}
