package marketvalue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/senseiyukisan/sports-analytics/internal/models"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent or expired
var ErrCacheMiss = errors.New("cache miss")

// Cache stores JSON-encoded values with a TTL
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// RedisCache is the shared cache used when REDIS_URL is configured
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// NewRedisCacheFromURL parses a redis:// URL and pings the server
func NewRedisCacheFromURL(ctx context.Context, url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return NewRedisCache(client), nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get cache: %w", err)
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type memoryEntry struct {
	data    []byte
	expires time.Time
}

// MemoryCache is a process-local Cache for runs without redis
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), now: time.Now}
}

func (c *MemoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entry := memoryEntry{data: data}
	if ttl > 0 {
		entry.expires = c.now().Add(ttl)
	}
	c.entries[key] = entry
	return nil
}

func (c *MemoryCache) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	entry, ok := c.entries[key]
	if ok && !entry.expires.IsZero() && !c.now().Before(entry.expires) {
		delete(c.entries, key)
		ok = false
	}
	c.mu.Unlock()

	if !ok {
		return ErrCacheMiss
	}
	if err := json.Unmarshal(entry.data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}
	return nil
}

// TokenCacheKey is the cache key of a player's raw market value token
func TokenCacheKey(playerID int64) string {
	return fmt.Sprintf("marketvalue:token:%d", playerID)
}

// CachedSource puts a Cache in front of another Source. Only found tokens are cached.
type CachedSource struct {
	next   Source
	cache  Cache
	ttl    time.Duration
	logger *logrus.Logger
}

func NewCachedSource(next Source, cache Cache, ttl time.Duration, logger *logrus.Logger) *CachedSource {
	return &CachedSource{next: next, cache: cache, ttl: ttl, logger: logger}
}

func (s *CachedSource) Name() string { return s.next.Name() + "+cache" }

func (s *CachedSource) FetchToken(ctx context.Context, player models.Player) (string, error) {
	key := TokenCacheKey(player.ID)

	var token string
	err := s.cache.Get(ctx, key, &token)
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		s.logger.WithError(err).WithField("player_id", player.ID).Warn("Market value cache read failed")
	}

	token, err = s.next.FetchToken(ctx, player)
	if err != nil {
		return "", err
	}
	if err := s.cache.Set(ctx, key, token, s.ttl); err != nil {
		s.logger.WithError(err).WithField("player_id", player.ID).Warn("Market value cache write failed")
	}
	return token, nil
}
