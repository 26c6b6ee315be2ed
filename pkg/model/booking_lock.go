package model

import "time"

// BookingLock is an advisory lock serializing booking creation per product.
// The _id is derived from the product, so Mongo's unique primary index
// rejects a second concurrent acquisition with a duplicate key error. A TTL
// index on expires_at reaps locks orphaned by a crashed holder.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	Owner     string    `bson:"owner" json:"owner"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
