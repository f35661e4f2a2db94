// Package timeouts provides centralized deadline values for backend calls
// made from HTTP handlers.
//
// Every call to the platform API runs under context.WithTimeout using one of
// these values; centralizing them keeps handler behavior consistent and makes
// tuning a one-line change.
//
// Guidelines:
//   - Short: single-record fetches (profile, one user, one escort)
//   - Medium: paginated list queries
//   - Long: mutations and anything the backend may take its time over
package timeouts

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Defaults, used unless overridden from the environment.
const (
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
)

var mu sync.RWMutex

var (
	short  = DefaultShort
	medium = DefaultMedium
	long   = DefaultLong
)

// Short returns the deadline for single-record reads.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Medium returns the deadline for list queries.
func Medium() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return medium
}

// Long returns the deadline for mutations. It matches the backend adapter's
// own 30s ceiling so the two never disagree by default.
func Long() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return long
}

// ConfigureFromEnv reads TIMEOUT_SHORT / TIMEOUT_MEDIUM / TIMEOUT_LONG
// duration strings ("5s", "500ms") and returns how many were applied.
// Invalid or missing values keep the defaults.
func ConfigureFromEnv() int {
	mu.Lock()
	defer mu.Unlock()
	applied := 0

	for _, e := range []struct {
		name string
		dst  *time.Duration
	}{
		{"TIMEOUT_SHORT", &short},
		{"TIMEOUT_MEDIUM", &medium},
		{"TIMEOUT_LONG", &long},
	} {
		if v := os.Getenv(e.name); v != "" {
			if d, err := time.ParseDuration(v); err == nil && d > 0 {
				*e.dst = d
				applied++
			}
		}
	}
	return applied
}

// Reset restores the defaults. Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	short = DefaultShort
	medium = DefaultMedium
	long = DefaultLong
}

// WithTimeout creates a bounded context and a cancel func that logs a warning
// when the deadline was actually hit, naming the operation for the log line.
//
//	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "withdrawal list")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
