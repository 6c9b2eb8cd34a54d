package application

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"microblog/pkg/helpers"
)

const emojiCacheKey = "emoji:characters"

// EmojiService fetches the emoji catalog from the public emoji API and
// caches the characters, in Redis when available and in memory
// otherwise. With no API key configured the catalog is empty and the
// feature is effectively off.
type EmojiService struct {
	URL    string
	APIKey string
	TTL    time.Duration
	Redis  *redis.Client
	Logger *logrus.Logger
	Client *http.Client

	mu        sync.Mutex
	cached    []string
	fetchedAt time.Time
}

func NewEmojiService(url, apiKey string, ttl time.Duration, rdb *redis.Client, logger *logrus.Logger) *EmojiService {
	return &EmojiService{
		URL:    url,
		APIKey: apiKey,
		TTL:    ttl,
		Redis:  rdb,
		Logger: logger,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

// List returns the emoji characters, fetching on cache miss.
func (s *EmojiService) List(ctx context.Context) ([]string, error) {
	if s.APIKey == "" {
		return []string{}, nil
	}

	if s.Redis != nil {
		var cached []string
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, emojiCacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}

	s.mu.Lock()
	if s.cached != nil && time.Since(s.fetchedAt) < s.TTL {
		out := s.cached
		s.mu.Unlock()
		return out, nil
	}
	s.mu.Unlock()

	emojis, err := s.fetch(ctx)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("emoji fetch failed")
		}
		return nil, err
	}

	s.mu.Lock()
	s.cached = emojis
	s.fetchedAt = time.Now()
	s.mu.Unlock()

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, emojiCacheKey, emojis, s.TTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("emoji cache write failed")
		}
	}
	return emojis, nil
}

func (s *EmojiService) fetch(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL+"?access_key="+s.APIKey, nil)
	if err != nil {
		return nil, err
	}
	res, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode != http.StatusOK {
		return nil, errors.New("emoji api status " + res.Status)
	}
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	chars := gjson.GetBytes(body, "#.character")
	out := make([]string, 0, len(chars.Array()))
	for _, c := range chars.Array() {
		out = append(out, c.String())
	}
	return out, nil
}
