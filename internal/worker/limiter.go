package worker

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter paces requests to the prediction service. Batch runs share a
// single limiter since all jobs target the one endpoint.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a limiter allowing requestsPerSecond sustained
// with the given burst.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 5
	}
	if burst <= 0 {
		burst = 5
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Wait blocks until a request may proceed or the context expires.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow reports whether a request may proceed right now, consuming a
// token if so.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}
