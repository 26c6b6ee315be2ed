package middleware

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"staybook/pkg/logger"
)

// RedisIdempotencyStore shares cached responses across replicas. Redis owns
// expiry via the key TTL, so there is no cleanup goroutine to run.
type RedisIdempotencyStore struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
	log       *logger.Logger
}

func NewRedisIdempotencyStore(client *redis.Client, ttl time.Duration, log *logger.Logger) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{
		client:    client,
		ttl:       ttl,
		keyPrefix: "idempotency:",
		log:       log,
	}
}

func (s *RedisIdempotencyStore) Get(key string) (*CachedResponse, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warn("Failed to read idempotency key", "key", key, "error", err)
		}
		return nil, false
	}

	var response CachedResponse
	if err := json.Unmarshal(data, &response); err != nil {
		s.log.Warn("Corrupt cached response for idempotency key", "key", key, "error", err)
		return nil, false
	}

	return &response, true
}

func (s *RedisIdempotencyStore) Set(key string, response *CachedResponse) {
	response.CreatedAt = time.Now()

	data, err := json.Marshal(response)
	if err != nil {
		s.log.Warn("Failed to encode cached response", "key", key, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.client.Set(ctx, s.keyPrefix+key, data, s.ttl).Err(); err != nil {
		s.log.Warn("Failed to store idempotency key", "key", key, "error", err)
	}
}

func (s *RedisIdempotencyStore) Stop() {}
