// File: database/repository/property/interface.go
package propertyRepo

import (
	"context"

	"strbooking/database"
	"strbooking/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type PropertyRepository interface {
	Create(ctx context.Context, p models.Property) (string, error)
	GetByID(ctx context.Context, id string) (*models.Property, error)
	List(ctx context.Context, activeOnly bool) ([]models.Property, error)
	Update(ctx context.Context, p models.Property) error
	Delete(ctx context.Context, id string) error

	AddCohost(ctx context.Context, propertyID string, cohost models.Cohost) error
	RemoveCohost(ctx context.Context, propertyID, cohostID string) error
	ActiveCohosts(ctx context.Context, propertyID string) ([]models.Cohost, error)

	SetFeedSyncedAt(ctx context.Context, propertyID, feedURL string) error

	EnsureIndexes() error
}

type mongoPropertyRepo struct {
	coll *mongo.Collection
}

// NewMongoPropertyRepo constructs a new MongoDB PropertyRepository.
func NewMongoPropertyRepo() PropertyRepository {
	return &mongoPropertyRepo{
		coll: database.DB().Collection("properties"),
	}
}
