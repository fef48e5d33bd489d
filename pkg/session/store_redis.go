package session

import (
	"context"
	"time"

	"github.com/smartshop/webapp/pkg/cache"
)

// RedisStore persists sessions in Redis via the shared cache client.
// Requires cache.Connect() to have succeeded.
type RedisStore struct {
	ttl time.Duration
}

// NewRedisStore creates a Redis-backed store whose keys expire after ttl.
func NewRedisStore(ttl time.Duration) *RedisStore {
	return &RedisStore{ttl: ttl}
}

func redisKey(id string) string { return "smartshop:session:" + id }

func (s *RedisStore) Load(_ context.Context, id string) (map[string]interface{}, error) {
	var data map[string]interface{}
	if cache.Get(redisKey(id), &data) {
		return data, nil
	}
	return nil, nil
}

func (s *RedisStore) Save(_ context.Context, id string, data map[string]interface{}) error {
	return cache.Set(redisKey(id), data, s.ttl)
}

func (s *RedisStore) Delete(_ context.Context, id string) error {
	return cache.Del(redisKey(id))
}
