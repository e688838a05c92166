// Package ratelimit provides a sliding-window attempt limiter keyed by
// (action, identifier). State lives behind a pluggable Store: in-memory
// for a single instance, Redis when instances share a cache. It is a
// soft deterrent, not a correctness guarantee.
package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Action classifies what is being limited.
type Action string

const (
	ActionLogin         Action = "login"
	ActionRegistration  Action = "registration"
	ActionPasswordReset Action = "password_reset"
	ActionBooking       Action = "booking"
	ActionAPI           Action = "api"
	ActionUpload        Action = "upload"
)

// Rule is the limit configuration for one action class.
type Rule struct {
	MaxAttempts int
	Window      time.Duration
	BlockFor    time.Duration
}

// DefaultRules returns the per-action limits used in production.
func DefaultRules() map[Action]Rule {
	return map[Action]Rule{
		ActionLogin:         {MaxAttempts: 5, Window: 15 * time.Minute, BlockFor: 30 * time.Minute},
		ActionRegistration:  {MaxAttempts: 3, Window: time.Hour, BlockFor: time.Hour},
		ActionPasswordReset: {MaxAttempts: 3, Window: time.Hour, BlockFor: time.Hour},
		ActionBooking:       {MaxAttempts: 10, Window: time.Hour, BlockFor: 15 * time.Minute},
		ActionAPI:           {MaxAttempts: 120, Window: time.Minute, BlockFor: 5 * time.Minute},
		ActionUpload:        {MaxAttempts: 20, Window: time.Hour, BlockFor: 30 * time.Minute},
	}
}

// Result reports the outcome of a limit check.
type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration // positive when not allowed
}

// LimitError is returned to callers when an action is blocked. The
// message is meant to be shown to the end user as-is.
type LimitError struct {
	Action     Action
	RetryAfter time.Duration
}

func (e *LimitError) Error() string {
	secs := int(e.RetryAfter.Round(time.Second).Seconds())
	if secs < 1 {
		secs = 1
	}
	return fmt.Sprintf("too many %s attempts, retry in %d seconds", e.Action, secs)
}

// Clock abstracts time for tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Store persists attempt timestamps and block marks per key.
type Store interface {
	Record(ctx context.Context, key string, now time.Time, window time.Duration) error
	Count(ctx context.Context, key string, now time.Time, window time.Duration) (int, error)
	Block(ctx context.Context, key string, until time.Time) error
	BlockedUntil(ctx context.Context, key string) (time.Time, error)
	Clear(ctx context.Context, key string) error
}

// Limiter applies per-action rules over a Store.
type Limiter struct {
	store Store
	rules map[Action]Rule
	clock Clock
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock substitutes the time source, for tests.
func WithClock(c Clock) Option {
	return func(l *Limiter) { l.clock = c }
}

// WithRules overrides the default per-action rules.
func WithRules(rules map[Action]Rule) Option {
	return func(l *Limiter) { l.rules = rules }
}

// New builds a Limiter over the given store.
func New(store Store, opts ...Option) *Limiter {
	l := &Limiter{
		store: store,
		rules: DefaultRules(),
		clock: realClock{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Limiter) rule(action Action) Rule {
	if r, ok := l.rules[action]; ok {
		return r
	}
	return l.rules[ActionAPI]
}

func key(action Action, identifier string) string {
	return string(action) + ":" + identifier
}

// Check reports whether another attempt is currently allowed. It records
// nothing; call Record once the attempt actually happens.
func (l *Limiter) Check(ctx context.Context, action Action, identifier string) (Result, error) {
	rule := l.rule(action)
	k := key(action, identifier)
	now := l.clock.Now()

	until, err := l.store.BlockedUntil(ctx, k)
	if err != nil {
		return Result{}, fmt.Errorf("ratelimit: blocked lookup: %w", err)
	}
	if until.After(now) {
		return Result{Allowed: false, RetryAfter: until.Sub(now)}, nil
	}

	n, err := l.store.Count(ctx, k, now, rule.Window)
	if err != nil {
		return Result{}, fmt.Errorf("ratelimit: count: %w", err)
	}
	if n >= rule.MaxAttempts {
		blockUntil := now.Add(rule.BlockFor)
		if err := l.store.Block(ctx, k, blockUntil); err != nil {
			return Result{}, fmt.Errorf("ratelimit: block: %w", err)
		}
		return Result{Allowed: false, RetryAfter: rule.BlockFor}, nil
	}
	return Result{Allowed: true, Remaining: rule.MaxAttempts - n}, nil
}

// Record registers one attempt for (action, identifier).
func (l *Limiter) Record(ctx context.Context, action Action, identifier string) error {
	rule := l.rule(action)
	return l.store.Record(ctx, key(action, identifier), l.clock.Now(), rule.Window)
}

// Clear wipes all attempts and any block for (action, identifier), e.g.
// after a successful login.
func (l *Limiter) Clear(ctx context.Context, action Action, identifier string) error {
	return l.store.Clear(ctx, key(action, identifier))
}

// Allow is the common check-then-record path: it returns a *LimitError
// when the action is blocked and otherwise records the attempt.
func (l *Limiter) Allow(ctx context.Context, action Action, identifier string) error {
	res, err := l.Check(ctx, action, identifier)
	if err != nil {
		return err
	}
	if !res.Allowed {
		return &LimitError{Action: action, RetryAfter: res.RetryAfter}
	}
	return l.Record(ctx, action, identifier)
}
