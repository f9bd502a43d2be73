package rewards

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RetryConfig controls claim retries.
type RetryConfig struct {
	MaxTries        uint
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryConfig returns sensible defaults for interactive use.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxTries:        4,
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     2 * time.Second,
	}
}

// ClaimWithRetry calls Claim until it succeeds, fails with an error other
// than ErrPersistenceUnavailable, or runs out of tries. Every attempt
// reuses the same claim context and therefore the same claim id.
func (s *Service) ClaimWithRetry(ctx context.Context, userID string, kind Kind, cc ClaimContext, cfg RetryConfig) ClaimResult {
	if cc.Now.IsZero() {
		// Pin the clock so a retry that crosses midnight keeps its claim id.
		cc.Now = s.now()
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = cfg.InitialInterval
	b.MaxInterval = cfg.MaxInterval

	var last ClaimResult
	attempt := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		last = s.Claim(ctx, userID, kind, cc)
		switch {
		case last.Err == nil:
			return struct{}{}, nil
		case errors.Is(last.Err, ErrPersistenceUnavailable):
			return struct{}{}, last.Err
		default:
			return struct{}{}, backoff.Permanent(last.Err)
		}
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(max(cfg.MaxTries, 1)),
		backoff.WithNotify(func(err error, d time.Duration) {
			s.log.Warn("reward claim failed, retrying",
				"user", userID, "kind", kind, "attempt", attempt, "wait", d, "err", err)
		}),
	)
	if err != nil && last.Err == nil {
		// Context cancelled before the first attempt finished.
		last.Err = err
	}
	return last
}
