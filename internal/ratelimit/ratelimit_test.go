package ratelimit

import (
	"testing"
	"time"
)

func TestKeyedRateLimiter_Allow(t *testing.T) {
	tests := []struct {
		name     string
		rps      float64
		burst    int
		calls    int
		wantPass int
	}{
		{"burst allows initial requests", 1, 3, 3, 3},
		{"exceeding burst blocks", 1, 2, 5, 2},
		{"single token", 1, 1, 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := New(tt.rps, tt.burst)

			passed := 0
			for range tt.calls {
				if rl.Allow("test") {
					passed++
				}
			}

			if passed != tt.wantPass {
				t.Errorf("Allow() passed %d, want %d", passed, tt.wantPass)
			}
		})
	}
}

func TestKeyedRateLimiter_IndependentKeys(t *testing.T) {
	rl := New(1, 1)

	rl.Allow("key1")
	if rl.Allow("key1") {
		t.Error("key1 should be exhausted")
	}

	if !rl.Allow("key2") {
		t.Error("key2 should be independent and allowed")
	}
}

func TestKeyedRateLimiter_Refill(t *testing.T) {
	clock := time.Now()
	rl := New(1, 1)
	rl.now = func() time.Time { return clock }

	if !rl.Allow("ip") {
		t.Fatal("first request should pass")
	}
	if rl.Allow("ip") {
		t.Fatal("second request should be limited")
	}

	clock = clock.Add(1100 * time.Millisecond)
	if !rl.Allow("ip") {
		t.Error("token should have refilled after one second")
	}
}

func TestKeyedRateLimiter_SweepsIdleKeys(t *testing.T) {
	clock := time.Now()
	rl := New(1, 1)
	rl.now = func() time.Time { return clock }
	rl.lastSweep = clock

	rl.Allow("a")
	rl.Allow("b")
	if rl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", rl.Len())
	}

	clock = clock.Add(defaultIdleTTL + time.Second)
	rl.Allow("c")

	if rl.Len() != 1 {
		t.Errorf("Len() = %d after sweep, want 1", rl.Len())
	}
}

func TestPerMinute(t *testing.T) {
	rl := PerMinute(20)

	passed := 0
	for range 25 {
		if rl.Allow("ip") {
			passed++
		}
	}

	if passed != 20 {
		t.Errorf("PerMinute(20) allowed %d immediate requests, want 20", passed)
	}
}
