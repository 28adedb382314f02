package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

// Config holds retry configuration
type Config struct {
	InitialDelay    time.Duration
	MaxDelay        time.Duration
	BackoffFactor   float64
	MaxTotalTimeout time.Duration
}

// DefaultConfig returns the startup retry policy: exponential delays capped
// at 10s, giving up after one minute.
func DefaultConfig() Config {
	return Config{
		InitialDelay:    100 * time.Millisecond,
		MaxDelay:        10 * time.Second,
		BackoffFactor:   2.0,
		MaxTotalTimeout: 60 * time.Second,
	}
}

// Do runs fn until it succeeds, ctx is done or the total timeout elapses.
// Each failed attempt is logged with the name of the dependency.
func Do(ctx context.Context, cfg Config, name string, fn func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = cfg.InitialDelay
	b.MaxInterval = cfg.MaxDelay
	b.Multiplier = cfg.BackoffFactor
	b.MaxElapsedTime = cfg.MaxTotalTimeout

	attempt := 0
	err := backoff.RetryNotify(fn, backoff.WithContext(b, ctx), func(err error, next time.Duration) {
		attempt++
		log.Warn().
			Err(err).
			Str("dependency", name).
			Int("attempt", attempt).
			Dur("retry_in", next).
			Msg("connection attempt failed")
	})
	if err != nil {
		return fmt.Errorf("%s: giving up after %d attempts: %w", name, attempt+1, err)
	}
	return nil
}
