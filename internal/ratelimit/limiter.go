// Package ratelimit provides rate limiting for login attempts.
package ratelimit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Config holds rate limit configuration.
type Config struct {
	// Max failed logins per account before lockout (default: 5)
	MaxAttempts int
	// Lockout duration after max failed attempts (default: 5m)
	Lockout time.Duration
	// Max login attempts per IP per hour (default: 30)
	MaxIPPerHour int

	// Clock for testing (nil uses real time)
	Clock Clock
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxAttempts:  5,
		Lockout:      5 * time.Minute,
		MaxIPPerHour: 30,
	}
}

// LimitResult contains the result of a rate limit check.
type LimitResult struct {
	Allowed    bool
	RetryAfter time.Duration
	Reason     string // For logging
}

// entry tracks attempt counts and timestamps.
type entry struct {
	count    int
	firstAt  time.Time
	lockedAt time.Time // zero if not locked
}

// Limiter tracks failed logins per account and attempts per client IP.
type Limiter struct {
	config *Config
	clock  Clock
	mu     sync.Mutex
	// Keyed by hash of email or IP
	byAccount map[string]*entry
	byIP      map[string]*entry

	cleanupCtx    context.Context
	cleanupCancel context.CancelFunc
	cleanupOnce   sync.Once
	cleanupWg     sync.WaitGroup
}

// New creates a new rate limiter with the given config.
func New(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = realClock{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Limiter{
		config:        cfg,
		clock:         clock,
		byAccount:     make(map[string]*entry),
		byIP:          make(map[string]*entry),
		cleanupCtx:    ctx,
		cleanupCancel: cancel,
	}
}

// Close stops the cleanup goroutine and releases resources.
func (l *Limiter) Close() {
	l.cleanupCancel()
	l.cleanupWg.Wait()
}

// CheckLogin reports whether a login attempt for the account is allowed right
// now. It records the per-IP attempt; failures must be reported separately via
// RecordFailure.
func (l *Limiter) CheckLogin(email, ip string) LimitResult {
	l.startCleanup()
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	acct := l.byAccount[hashKey(email)]
	if acct != nil && !acct.lockedAt.IsZero() {
		if remaining := l.config.Lockout - now.Sub(acct.lockedAt); remaining > 0 {
			return LimitResult{RetryAfter: remaining, Reason: "account locked"}
		}
		// Lockout expired
		delete(l.byAccount, hashKey(email))
	}

	ipEntry := l.byIP[hashKey(ip)]
	if ipEntry == nil || now.Sub(ipEntry.firstAt) > time.Hour {
		ipEntry = &entry{firstAt: now}
		l.byIP[hashKey(ip)] = ipEntry
	}
	ipEntry.count++
	if ipEntry.count > l.config.MaxIPPerHour {
		retry := time.Hour - now.Sub(ipEntry.firstAt)
		return LimitResult{RetryAfter: retry, Reason: "ip hourly limit"}
	}

	return LimitResult{Allowed: true}
}

// RecordFailure counts a failed password check against the account and starts
// a lockout once the threshold is reached.
func (l *Limiter) RecordFailure(email string) {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	key := hashKey(email)
	acct := l.byAccount[key]
	if acct == nil || now.Sub(acct.firstAt) > time.Hour {
		acct = &entry{firstAt: now}
		l.byAccount[key] = acct
	}
	acct.count++
	if acct.count >= l.config.MaxAttempts && acct.lockedAt.IsZero() {
		acct.lockedAt = now
		log.Warn().Int("attempts", acct.count).Msg("Login lockout started")
	}
}

// RecordSuccess clears the failure history for the account.
func (l *Limiter) RecordSuccess(email string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.byAccount, hashKey(email))
}

func (l *Limiter) startCleanup() {
	l.cleanupOnce.Do(func() {
		l.cleanupWg.Add(1)
		go func() {
			defer l.cleanupWg.Done()
			ticker := time.NewTicker(10 * time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-l.cleanupCtx.Done():
					return
				case <-ticker.C:
					l.cleanup()
				}
			}
		}()
	})
}

func (l *Limiter) cleanup() {
	now := l.clock.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, e := range l.byAccount {
		expired := now.Sub(e.firstAt) > time.Hour
		if !e.lockedAt.IsZero() {
			expired = now.Sub(e.lockedAt) > l.config.Lockout
		}
		if expired {
			delete(l.byAccount, key)
		}
	}
	for key, e := range l.byIP {
		if now.Sub(e.firstAt) > time.Hour {
			delete(l.byIP, key)
		}
	}
}

// hashKey avoids holding raw emails or IPs in memory longer than needed.
func hashKey(s string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(s))))
	return hex.EncodeToString(sum[:])
}

// ClientIP extracts the caller's IP, honoring X-Forwarded-For from a proxy.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
