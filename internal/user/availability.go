package user

import (
	"context"
	"sync"
	"time"
)

// AvailabilityChecker debounces username lookups for one session. Each Check
// supersedes the pending one: the older call's wait (or in-flight lookup) is
// cancelled and it returns ErrSuperseded. Only the latest generation may
// report a result.
type AvailabilityChecker struct {
	repo  Repository
	delay time.Duration

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

func NewAvailabilityChecker(repo Repository, delay time.Duration) *AvailabilityChecker {
	return &AvailabilityChecker{repo: repo, delay: delay}
}

// Check waits out the debounce delay and reports whether username is free.
// The username is expected to be normalized and valid.
func (c *AvailabilityChecker) Check(ctx context.Context, username string) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.mu.Lock()
	c.gen++
	gen := c.gen
	if c.cancel != nil {
		c.cancel()
	}
	c.cancel = cancel
	c.mu.Unlock()

	timer := time.NewTimer(c.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		if !c.isLatest(gen) {
			return false, ErrSuperseded
		}
		return false, ctx.Err()
	case <-timer.C:
	}

	exists, err := c.repo.UsernameExists(ctx, username)
	if !c.isLatest(gen) {
		return false, ErrSuperseded
	}
	if err != nil {
		return false, err
	}
	return !exists, nil
}

func (c *AvailabilityChecker) isLatest(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen == gen
}

type checkerEntry struct {
	checker  *AvailabilityChecker
	lastSeen time.Time
}

// Checkers keeps one AvailabilityChecker per session so that a user's rapid
// keystrokes supersede each other without affecting other sessions.
type Checkers struct {
	repo  Repository
	delay time.Duration

	mu       sync.Mutex
	checkers map[string]*checkerEntry
	now      func() time.Time
}

func NewCheckers(repo Repository, delay time.Duration) *Checkers {
	return &Checkers{
		repo:     repo,
		delay:    delay,
		checkers: make(map[string]*checkerEntry),
		now:      time.Now,
	}
}

func (c *Checkers) For(session string) *AvailabilityChecker {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.checkers[session]; ok {
		e.lastSeen = c.now()
		return e.checker
	}

	ch := NewAvailabilityChecker(c.repo, c.delay)
	c.checkers[session] = &checkerEntry{checker: ch, lastSeen: c.now()}
	return ch
}

func (c *Checkers) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.checkers)
}

// Sweep forgets checkers idle for longer than maxIdle.
func (c *Checkers) Sweep(maxIdle time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	evicted := 0
	for session, e := range c.checkers {
		if c.now().Sub(e.lastSeen) > maxIdle {
			delete(c.checkers, session)
			evicted++
		}
	}
	return evicted
}
