package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"staybook/pkg/config"
	"staybook/pkg/model"
)

// BookingLockRepository provides operations for advisory locks
type BookingLockRepository interface {
	Create(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error)
	Delete(ctx context.Context, lockID, owner string) error
}

type mongoBookingLockRepository struct {
	collection *mongo.Collection
}

func NewBookingLockRepository(cfg *config.Config) BookingLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingLockRepository{
		collection: db.Collection("Booking_locks"),
	}
}

// Returns duplicate key error if lock already exists
func (r *mongoBookingLockRepository) Create(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error) {
	lock.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, lock)
	if err != nil {
		return nil, err
	}

	return lock, nil
}

// Delete removes an advisory lock. The owner filter keeps us from deleting a
// lock someone else acquired after ours expired via the TTL index.
func (r *mongoBookingLockRepository) Delete(ctx context.Context, lockID, owner string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID, "owner": owner})
	return err
}
