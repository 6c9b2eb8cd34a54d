package session

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps session records in a Redis hash per session id, so
// sessions survive process restarts when Redis is configured.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func key(sid string) string {
	return "user:session:" + sid
}

func (s *RedisStore) Put(ctx context.Context, rec Record, ttl time.Duration) error {
	fields := map[string]any{
		"sid":        rec.SID,
		"user_id":    rec.UserID,
		"logged_in":  strconv.FormatBool(rec.LoggedIn),
		"created_at": rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	pipe := s.rdb.Pipeline()
	pipe.HSet(ctx, key(rec.SID), fields)
	pipe.Expire(ctx, key(rec.SID), ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Get(ctx context.Context, sid string) (*Record, error) {
	data, err := s.rdb.HGetAll(ctx, key(sid)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrNotFound
	}
	rec := &Record{
		SID:      data["sid"],
		UserID:   data["user_id"],
		LoggedIn: data["logged_in"] == "true",
	}
	if t, err := time.Parse(time.RFC3339Nano, data["created_at"]); err == nil {
		rec.CreatedAt = t
	}
	return rec, nil
}

func (s *RedisStore) Delete(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, key(sid)).Err()
}

var _ Store = (*RedisStore)(nil)
