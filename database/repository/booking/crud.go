// File: database/repository/booking/crud.go
package bookingRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"strbooking/models"
)

func (r *mongoBookingRepo) Create(ctx context.Context, b models.Booking) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		return "", err
	}
	return b.ID, nil
}

func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *mongoBookingRepo) GetByChargeID(ctx context.Context, chargeID string) (*models.Booking, error) {
	return r.findOne(ctx, bson.M{"stripeChargeId": chargeID})
}

func (r *mongoBookingRepo) GetByPaymentIntentID(ctx context.Context, intentID string) (*models.Booking, error) {
	return r.findOne(ctx, bson.M{"stripePaymentIntentId": intentID})
}

func (r *mongoBookingRepo) findOne(ctx context.Context, filter bson.M) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var b models.Booking
	if err := r.coll.FindOne(ctx, filter).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *mongoBookingRepo) UpdateStatus(ctx context.Context, id, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoBookingRepo) UpdateInstallment(ctx context.Context, bookingID string, number int, status, paymentIntentID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{
		"installments.$.status": status,
		"updatedAt":             time.Now(),
	}
	if paymentIntentID != "" {
		set["installments.$.paymentIntentId"] = paymentIntentID
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": bookingID, "installments.number": number},
		bson.M{"$set": set},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoBookingRepo) SetChargeID(ctx context.Context, bookingID, chargeID string) error {
	return r.setField(ctx, bookingID, "stripeChargeId", chargeID)
}

func (r *mongoBookingRepo) SetTransfersProcessed(ctx context.Context, bookingID string) error {
	return r.setField(ctx, bookingID, "transfersProcessed", true)
}

func (r *mongoBookingRepo) SetDepositReleased(ctx context.Context, bookingID string) error {
	return r.setField(ctx, bookingID, "depositReleased", true)
}

func (r *mongoBookingRepo) setField(ctx context.Context, bookingID, field string, value interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": bookingID},
		bson.M{"$set": bson.M{field: value, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
