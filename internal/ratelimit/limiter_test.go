package ratelimit

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestLimiter() (*Limiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	cfg := DefaultConfig()
	cfg.Clock = clock
	return New(cfg), clock
}

func TestLockoutAfterMaxFailures(t *testing.T) {
	l, clock := newTestLimiter()
	defer l.Close()

	for i := 0; i < 5; i++ {
		res := l.CheckLogin("coach@example.com", "10.0.0.1")
		if !res.Allowed {
			t.Fatalf("attempt %d should be allowed: %+v", i, res)
		}
		l.RecordFailure("coach@example.com")
	}

	res := l.CheckLogin("coach@example.com", "10.0.0.1")
	if res.Allowed {
		t.Fatal("expected lockout after max failures")
	}
	if res.RetryAfter <= 0 {
		t.Errorf("expected positive RetryAfter, got %v", res.RetryAfter)
	}

	clock.advance(6 * time.Minute)
	if res := l.CheckLogin("coach@example.com", "10.0.0.1"); !res.Allowed {
		t.Fatalf("lockout should have expired: %+v", res)
	}
}

func TestSuccessClearsFailures(t *testing.T) {
	l, _ := newTestLimiter()
	defer l.Close()

	for i := 0; i < 4; i++ {
		l.CheckLogin("family@example.com", "10.0.0.2")
		l.RecordFailure("family@example.com")
	}
	l.RecordSuccess("family@example.com")

	// The counter restarts, so another run of failures is needed to lock.
	for i := 0; i < 4; i++ {
		if res := l.CheckLogin("family@example.com", "10.0.0.2"); !res.Allowed {
			t.Fatalf("attempt %d should be allowed after reset: %+v", i, res)
		}
		l.RecordFailure("family@example.com")
	}
}

func TestIPHourlyLimit(t *testing.T) {
	l, clock := newTestLimiter()
	defer l.Close()

	for i := 0; i < 30; i++ {
		if res := l.CheckLogin("anyone@example.com", "192.0.2.9"); !res.Allowed {
			t.Fatalf("attempt %d should be allowed: %+v", i, res)
		}
	}
	if res := l.CheckLogin("anyone@example.com", "192.0.2.9"); res.Allowed {
		t.Fatal("expected ip hourly limit")
	}

	clock.advance(61 * time.Minute)
	if res := l.CheckLogin("anyone@example.com", "192.0.2.9"); !res.Allowed {
		t.Fatalf("window should have rolled over: %+v", res)
	}
}

func TestAccountsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter()
	defer l.Close()

	for i := 0; i < 5; i++ {
		l.CheckLogin("locked@example.com", "10.0.0.3")
		l.RecordFailure("locked@example.com")
	}

	if res := l.CheckLogin("other@example.com", "10.0.0.4"); !res.Allowed {
		t.Fatalf("unrelated account should be unaffected: %+v", res)
	}
}
