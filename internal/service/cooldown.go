package service

import (
	"context"
	"log"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// CooldownGate enforces a minimum gap between qualifying actions by the
// same user. Redis is the authoritative store so the gap survives restarts
// and is shared across instances; when Redis is unavailable the gate falls
// back to a process-local map.
type CooldownGate struct {
	rdb    *redis.Client
	window time.Duration
	prefix string

	mu   sync.Mutex
	last map[int64]time.Time
	now  func() time.Time

	// seedFn, when set, supplies the last known action time for a user the
	// local map has never seen. Consulted only on the fallback path, so a
	// mid-flight Redis outage cannot void an active window.
	seedFn func(ctx context.Context, userID int64) time.Time
}

// NewCooldownGate creates a gate with the given window. rdb may be nil.
func NewCooldownGate(rdb *redis.Client, prefix string, window time.Duration) *CooldownGate {
	return &CooldownGate{
		rdb:    rdb,
		window: window,
		prefix: prefix,
		last:   make(map[int64]time.Time),
		now:    time.Now,
	}
}

// Check returns the remaining wait in whole seconds (rounded up), or 0 when
// the user is clear to act. It does NOT start a new window; call Touch after
// the action succeeds.
func (g *CooldownGate) Check(ctx context.Context, userID int64) int {
	if g.rdb != nil {
		ttl, err := g.rdb.PTTL(ctx, g.key(userID)).Result()
		if err == nil {
			if ttl > 0 {
				return int(math.Ceil(ttl.Seconds()))
			}
			return 0
		}
		log.Printf("cooldown: redis error, using in-memory fallback: %v", err)
	}
	return g.checkLocal(ctx, userID)
}

// SeedFrom installs the lookup used to prime the local fallback, typically
// the newest comment timestamp from the database.
func (g *CooldownGate) SeedFrom(fn func(ctx context.Context, userID int64) time.Time) {
	g.seedFn = fn
}

// Touch starts the user's cooldown window.
func (g *CooldownGate) Touch(ctx context.Context, userID int64) {
	if g.rdb != nil {
		if err := g.rdb.Set(ctx, g.key(userID), 1, g.window).Err(); err == nil {
			return
		}
	}
	g.mu.Lock()
	g.last[userID] = g.now()
	g.mu.Unlock()
}

// Seed records an externally known last-action time (e.g. the newest comment
// timestamp from the database) into the local fallback.
func (g *CooldownGate) Seed(userID int64, at time.Time) {
	if at.IsZero() {
		return
	}
	g.mu.Lock()
	if at.After(g.last[userID]) {
		g.last[userID] = at
	}
	g.mu.Unlock()
}

func (g *CooldownGate) checkLocal(ctx context.Context, userID int64) int {
	g.mu.Lock()
	_, seen := g.last[userID]
	g.mu.Unlock()

	if !seen && g.seedFn != nil {
		if at := g.seedFn(ctx, userID); !at.IsZero() {
			g.Seed(userID, at)
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	last, ok := g.last[userID]
	if !ok {
		return 0
	}
	elapsed := g.now().Sub(last)
	if elapsed >= g.window {
		delete(g.last, userID)
		return 0
	}
	return int(math.Ceil((g.window - elapsed).Seconds()))
}

func (g *CooldownGate) key(userID int64) string {
	return g.prefix + ":" + strconv.FormatInt(userID, 10)
}
