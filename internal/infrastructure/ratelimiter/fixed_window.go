package ratelimiter

import (
	"sync"
	"time"
)

type Limiter interface {
	// Allow reports whether key may proceed and, when it may not, how long
	// until its window resets.
	Allow(key string) (bool, time.Duration)
	Close()
}

type window struct {
	count   int
	resetAt time.Time
}

// FixedWindowRateLimiter counts requests per key in fixed windows aligned to
// the window length. Expired windows are swept in the background.
type FixedWindowRateLimiter struct {
	limit   int
	window  time.Duration
	now     func() time.Time
	windows map[string]*window
	mu      sync.Mutex

	cleanupTick *time.Ticker
	done        chan struct{}
	closeOnce   sync.Once
}

func NewFixedWindowRateLimiter(limit int, frame time.Duration) *FixedWindowRateLimiter {
	return newFixedWindow(limit, frame, time.Now)
}

func newFixedWindow(limit int, frame time.Duration, now func() time.Time) *FixedWindowRateLimiter {
	if frame <= 0 {
		frame = time.Minute
	}

	rl := &FixedWindowRateLimiter{
		limit:       limit,
		window:      frame,
		now:         now,
		windows:     make(map[string]*window),
		cleanupTick: time.NewTicker(frame),
		done:        make(chan struct{}),
	}
	go rl.startCleanup()
	return rl
}

func (rl *FixedWindowRateLimiter) Allow(key string) (bool, time.Duration) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Truncate(rl.window).Add(rl.window)}
		rl.windows[key] = w
	}

	if w.count >= rl.limit {
		return false, w.resetAt.Sub(now)
	}

	w.count++
	return true, 0
}

func (rl *FixedWindowRateLimiter) startCleanup() {
	for {
		select {
		case <-rl.cleanupTick.C:
			rl.cleanup()
		case <-rl.done:
			return
		}
	}
}

func (rl *FixedWindowRateLimiter) cleanup() {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, w := range rl.windows {
		if !now.Before(w.resetAt) {
			delete(rl.windows, key)
		}
	}
}

func (rl *FixedWindowRateLimiter) Close() {
	rl.closeOnce.Do(func() {
		close(rl.done)
		rl.cleanupTick.Stop()
	})
}
