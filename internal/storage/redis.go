package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

type redisStorage struct {
	redisClient *redis.Client
	keyPrefix   string
}

// NewRedisStorage returns a Storage backed by Redis. Keys are namespaced
// under prefix so multiple storefront instances can share one database.
func NewRedisStorage(redisClient *redis.Client, prefix string) Storage {
	return &redisStorage{
		redisClient: redisClient,
		keyPrefix:   prefix,
	}
}

func (s *redisStorage) Save(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize value for key %s: %w", key, err)
	}

	if err := s.redisClient.Set(ctx, s.keyPrefix+key, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to save key %s: %w", key, err)
	}
	return nil
}

func (s *redisStorage) Load(ctx context.Context, key string, dest any) (bool, error) {
	val, err := s.redisClient.Get(ctx, s.keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil // nothing saved yet
		}
		return false, fmt.Errorf("failed to load key %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		log.Warnf("Discarding undecodable value for key %s: %v", key, err)
		return false, nil
	}
	return true, nil
}

func (s *redisStorage) Remove(ctx context.Context, key string) error {
	if err := s.redisClient.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to remove key %s: %w", key, err)
	}
	return nil
}
