// Package limiter spaces out requests to the feed host. The next allowed
// request time is persisted to a file, so a backoff requested by the server
// survives a restart.
package limiter

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultRetryAfter is used when the server asks us to back off without
// saying for how long.
const DefaultRetryAfter = 60 * time.Second

func New(filename string, delay time.Duration) *Limiter {
	return &Limiter{
		filename: filename,
		delay:    delay,
	}
}

type Limiter struct {
	mu sync.Mutex

	filename string
	delay    time.Duration
	nextAt   time.Time
}

// Load reads a persisted backoff, if there is one.
func (lim *Limiter) Load() error {
	bs, err := os.ReadFile(lim.filename)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return fmt.Errorf("error reading limiter file '%s': %w", lim.filename, err)
	}

	nextAt, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(string(bs)))
	if err != nil {
		return fmt.Errorf("error parsing limiter file '%s': %w", lim.filename, err)
	}

	lim.mu.Lock()
	defer lim.mu.Unlock()
	lim.nextAt = nextAt
	return nil
}

// NextAt returns the earliest time the next request may be made.
func (lim *Limiter) NextAt() time.Time {
	lim.mu.Lock()
	defer lim.mu.Unlock()
	return lim.nextAt
}

// Wait blocks until a request may be made or ctx is done.
func (lim *Limiter) Wait(ctx context.Context) error {
	nextAt := lim.NextAt()
	if nextAt.IsZero() {
		return ctx.Err()
	}

	dur := time.Until(nextAt)
	if dur > time.Second {
		log.Printf("waiting %s until %s",
			dur.Truncate(time.Second),
			nextAt.Format(time.StampMilli))
	}

	if dur > 0 {
		timer := time.NewTimer(dur)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	if err := os.Remove(lim.filename); err != nil &&
		!errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error removing limiter file '%s': %w", lim.filename, err)
	}

	return nil
}

// SetNextAt arms a backoff from a Retry-After header value in seconds. An
// empty value means DefaultRetryAfter.
func (lim *Limiter) SetNextAt(secondsStr string) error {
	wait := DefaultRetryAfter
	if secondsStr != "" {
		seconds, err := strconv.ParseInt(strings.TrimSpace(secondsStr), 10, 64)
		if err != nil {
			return fmt.Errorf("error parsing retry-after '%s': %w", secondsStr, err)
		}
		wait = time.Duration(seconds) * time.Second
	}
	// one extra second of slack
	nextAt := time.Now().Add(wait + time.Second)

	lim.mu.Lock()
	lim.nextAt = nextAt
	lim.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(lim.filename), 0o755); err != nil {
		return fmt.Errorf("error creating limiter dir: %w", err)
	}
	if err := os.WriteFile(lim.filename, []byte(nextAt.Format(time.RFC3339Nano)), 0o666); err != nil {
		return fmt.Errorf("error writing limiter file '%s': %w", lim.filename, err)
	}
	return nil
}

// Delay holds off the next request by the limiter's configured spacing.
func (lim *Limiter) Delay() {
	lim.DelayBy(lim.delay)
}

func (lim *Limiter) DelayBy(d time.Duration) {
	lim.mu.Lock()
	defer lim.mu.Unlock()
	if next := time.Now().Add(d); next.After(lim.nextAt) {
		lim.nextAt = next
	}
}
