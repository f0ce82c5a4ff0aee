package service

import (
	"context"
	"testing"
	"time"
)

// newTestGate returns a Redis-less gate with a controllable clock.
func newTestGate(window time.Duration) (*CooldownGate, *time.Time) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	g := NewCooldownGate(nil, "comment", window)
	g.now = func() time.Time { return now }
	return g, &now
}

func TestCooldownGate_FirstActionAllowed(t *testing.T) {
	g, _ := newTestGate(30 * time.Second)

	if wait := g.Check(context.Background(), 7); wait != 0 {
		t.Errorf("first action wait = %d, want 0", wait)
	}
}

func TestCooldownGate_SecondActionBlocked(t *testing.T) {
	g, now := newTestGate(30 * time.Second)
	ctx := context.Background()

	g.Touch(ctx, 7)
	*now = now.Add(10 * time.Second)

	wait := g.Check(ctx, 7)
	if wait != 20 {
		t.Errorf("wait = %d, want 20", wait)
	}
}

func TestCooldownGate_WaitRoundsUp(t *testing.T) {
	g, now := newTestGate(30 * time.Second)
	ctx := context.Background()

	g.Touch(ctx, 7)
	*now = now.Add(29*time.Second + 500*time.Millisecond)

	// 0.5s remaining rounds up to 1, never reported as 0 while blocked
	if wait := g.Check(ctx, 7); wait != 1 {
		t.Errorf("wait = %d, want 1", wait)
	}
}

func TestCooldownGate_ClearsAfterWindow(t *testing.T) {
	g, now := newTestGate(30 * time.Second)
	ctx := context.Background()

	g.Touch(ctx, 7)
	*now = now.Add(31 * time.Second)

	if wait := g.Check(ctx, 7); wait != 0 {
		t.Errorf("wait after window = %d, want 0", wait)
	}
}

func TestCooldownGate_UsersIndependent(t *testing.T) {
	g, _ := newTestGate(30 * time.Second)
	ctx := context.Background()

	g.Touch(ctx, 7)

	if wait := g.Check(ctx, 8); wait != 0 {
		t.Errorf("other user wait = %d, want 0", wait)
	}
	if wait := g.Check(ctx, 7); wait == 0 {
		t.Error("touched user should be blocked")
	}
}

func TestCooldownGate_SeedFromDatabase(t *testing.T) {
	g, now := newTestGate(30 * time.Second)
	ctx := context.Background()

	// Simulates the fallback path after a restart: the newest comment
	// timestamp is loaded from the database.
	g.Seed(7, now.Add(-10*time.Second))

	wait := g.Check(ctx, 7)
	if wait != 20 {
		t.Errorf("wait after seed = %d, want 20", wait)
	}

	// An older timestamp must not shorten an active window.
	g.Seed(7, now.Add(-25*time.Second))
	if wait := g.Check(ctx, 7); wait != 20 {
		t.Errorf("wait after stale seed = %d, want 20", wait)
	}
}

func TestCooldownGate_FallbackSeedsOnFirstMiss(t *testing.T) {
	g, now := newTestGate(30 * time.Second)
	ctx := context.Background()

	// Simulates Redis dropping out mid-flight: the local map has never
	// seen the user, but the database remembers their newest comment.
	lookups := 0
	g.SeedFrom(func(ctx context.Context, userID int64) time.Time {
		lookups++
		return now.Add(-10 * time.Second)
	})

	if wait := g.Check(ctx, 7); wait != 20 {
		t.Errorf("wait on unseeded fallback = %d, want 20", wait)
	}
	if lookups != 1 {
		t.Errorf("seed lookups = %d, want 1", lookups)
	}

	// The map now holds the entry; no further lookups.
	g.Check(ctx, 7)
	if lookups != 1 {
		t.Errorf("seed lookups after second check = %d, want 1", lookups)
	}
}

func TestCooldownGate_SeedZeroTimeIgnored(t *testing.T) {
	g, _ := newTestGate(30 * time.Second)

	g.Seed(7, time.Time{})
	if wait := g.Check(context.Background(), 7); wait != 0 {
		t.Errorf("wait = %d, want 0 (zero seed ignored)", wait)
	}
}
