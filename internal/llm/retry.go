package llm

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RetryProvider retries transient provider errors with exponential
// backoff and jitter.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps a Provider with retry logic.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	b := &hintedBackOff{next: r.exponential()}
	invalidRetried := false

	return backoff.Retry(ctx, func() (*Response, error) {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if !shouldRetry(err, &invalidRetried) {
			return nil, backoff.Permanent(err)
		}
		var rl *ErrRateLimit
		if errors.As(err, &rl) && rl.RetryAfter > 0 {
			b.hint = rl.RetryAfter
		}
		return nil, err
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(max(r.config.MaxAttempts, 1))),
	)
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

func (r *RetryProvider) exponential() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.config.InitialWait
	b.MaxInterval = r.config.MaxWait
	if r.config.Multiplier > 0 {
		b.Multiplier = r.config.Multiplier
	}
	b.RandomizationFactor = 0.2
	return b
}

// hintedBackOff prefers a server-supplied wait over the exponential
// schedule for the next attempt only.
type hintedBackOff struct {
	next backoff.BackOff
	hint time.Duration
}

func (h *hintedBackOff) NextBackOff() time.Duration {
	if h.hint > 0 {
		d := h.hint
		h.hint = 0
		return d
	}
	return h.next.NextBackOff()
}

func (h *hintedBackOff) Reset() {
	h.hint = 0
	h.next.Reset()
}

// shouldRetry reports whether err is worth another attempt. An invalid
// response is retried once.
func shouldRetry(err error, invalidRetried *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return false
	}

	var invResp *ErrInvalidResponse
	if errors.As(err, &invResp) {
		if *invalidRetried {
			return false
		}
		*invalidRetried = true
		return true
	}

	// Rate limits, outages and network errors are transient.
	return true
}
