package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tubeshelf_cache_hits_total",
		Help: "Total Redis cache hits.",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tubeshelf_cache_misses_total",
		Help: "Total Redis cache misses.",
	})
)

// Cache TTLs. Video detail responses change on every mutation and are
// invalidated explicitly; stats tolerate a minute of staleness.
const (
	VideoCacheTTL = 5 * time.Minute
	StatsCacheTTL = time.Minute
)

// CacheService provides a Redis cache-aside layer for video and stats
// lookups, the logout token denylist, and the comment cooldown store.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a new CacheService. If redisURL is empty or the
// connection fails, it returns a CacheService with a nil client (cache
// operations become no-ops and the cooldown falls back to the database).
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetVideo retrieves a cached video response. Returns nil if not cached or
// cache is disabled.
func (c *CacheService) GetVideo(ctx context.Context, videoID int64) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, videoKey(videoID)).Bytes()
	if err == redis.Nil {
		cacheMisses.Inc()
		return nil, nil
	}
	if err == nil {
		cacheHits.Inc()
	}
	return data, err
}

// SetVideo stores a video response in cache.
func (c *CacheService) SetVideo(ctx context.Context, videoID int64, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, videoKey(videoID), b, VideoCacheTTL).Err()
}

// InvalidateVideo removes a video from cache (called after any mutation
// touching the video, its tags, comments, or ratings).
func (c *CacheService) InvalidateVideo(ctx context.Context, videoID int64) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, videoKey(videoID)).Err()
}

// GetStats retrieves the cached stats response.
func (c *CacheService) GetStats(ctx context.Context) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, "stats").Bytes()
	if err == redis.Nil {
		cacheMisses.Inc()
		return nil, nil
	}
	if err == nil {
		cacheHits.Inc()
	}
	return data, err
}

// SetStats stores the stats response in cache.
func (c *CacheService) SetStats(ctx context.Context, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, "stats", b, StatsCacheTTL).Err()
}

// RevokeToken adds a token JTI to the logout denylist until its expiry.
// Best-effort: without Redis, logout degrades to client-side token discard.
func (c *CacheService) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if c.rdb == nil || jti == "" {
		return nil
	}
	return c.rdb.Set(ctx, denylistKey(jti), 1, ttl).Err()
}

// IsRevoked reports whether a token JTI has been revoked.
func (c *CacheService) IsRevoked(ctx context.Context, jti string) bool {
	if c.rdb == nil || jti == "" {
		return false
	}
	n, err := c.rdb.Exists(ctx, denylistKey(jti)).Result()
	if err != nil {
		// Fail open: a Redis outage must not lock everyone out.
		return false
	}
	return n > 0
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func videoKey(videoID int64) string {
	return fmt.Sprintf("video:%d", videoID)
}

func denylistKey(jti string) string {
	return "denylist:" + jti
}
