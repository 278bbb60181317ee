package pacing

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/chsmth/shopify-price-manager-cli/internal/config"
)

// Pacer spaces out consecutive API-touching items in a batch.
type Pacer interface {
	Wait(ctx context.Context) error
}

// FixedDelay pauses a constant duration between items.
type FixedDelay struct {
	Delay time.Duration
}

func (f FixedDelay) Wait(ctx context.Context) error {
	if f.Delay <= 0 {
		return nil
	}
	timer := time.NewTimer(f.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Limiter is a token-bucket pacer for callers that prefer a sustained
// request budget over a flat delay.
type Limiter struct {
	limiter *rate.Limiter
}

func NewLimiter(perMinute int) *Limiter {
	if perMinute <= 0 {
		perMinute = 120
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
	}
}

func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

func FromConfig(cfg config.PacingConfig) Pacer {
	if cfg.Mode == "rate" {
		return NewLimiter(cfg.PerMinute)
	}
	delay := cfg.Delay
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	return FixedDelay{Delay: delay}
}
