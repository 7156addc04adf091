package resilience

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// LimiterConfig controls the adaptive pacing delay.
type LimiterConfig struct {
	// InitialDelay is the pause between requests before any feedback has
	// been observed. Default: 1s.
	InitialDelay time.Duration

	// InitialAlpha is the starting EMA blend weight. The effective weight
	// for the nth update is InitialAlpha/(1+n), so early feedback moves the
	// delay sharply and later feedback only nudges it. Default: 2.0.
	InitialAlpha float64

	// MinDelay is the floor applied after every update. Default: 100ms.
	MinDelay time.Duration

	// MaxDelay is the ceiling applied after every update. Default: 30s.
	MaxDelay time.Duration
}

// DefaultLimiterConfig returns the pacing configuration used for API calls.
func DefaultLimiterConfig() LimiterConfig {
	return LimiterConfig{
		InitialDelay: time.Second,
		InitialAlpha: 2.0,
		MinDelay:     100 * time.Millisecond,
		MaxDelay:     30 * time.Second,
	}
}

// AdaptiveLimiter paces requests with a single self-tuning delay. Successful
// calls pull the delay toward 90% of its current value; rate-limited calls
// pull it toward 200%. Each update blends through an exponential moving
// average whose weight decays with the update count, so the delay swings
// hard on early feedback and converges as evidence accumulates.
type AdaptiveLimiter struct {
	mu      sync.Mutex
	cfg     LimiterConfig
	delay   float64 // seconds
	updates int
}

// NewAdaptiveLimiter creates a limiter starting at cfg.InitialDelay.
func NewAdaptiveLimiter(cfg LimiterConfig) *AdaptiveLimiter {
	cfg = applyLimiterDefaults(cfg)
	return &AdaptiveLimiter{
		cfg:   cfg,
		delay: cfg.InitialDelay.Seconds(),
	}
}

// OnSuccess records a successful call, shrinking the delay.
func (a *AdaptiveLimiter) OnSuccess() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.applyEMA(a.delay * 0.9)
}

// OnRateLimit records a throttled call, growing the delay, then sleeps for
// the new delay. The sleep returns early if ctx is cancelled.
func (a *AdaptiveLimiter) OnRateLimit(ctx context.Context) {
	a.mu.Lock()
	a.applyEMA(a.delay * 2.0)
	d := a.delayLocked()
	a.mu.Unlock()

	zap.L().Warn("rate limited (429), backing off",
		zap.Duration("delay", d),
	)
	sleep(ctx, d)
}

// Sleep pauses for the current delay without recording an outcome. Callers
// use it as the floor between consecutive paced requests.
func (a *AdaptiveLimiter) Sleep(ctx context.Context) {
	sleep(ctx, a.Delay())
}

// Delay returns the current pacing delay.
func (a *AdaptiveLimiter) Delay() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.delayLocked()
}

// Updates returns how many feedback events have been applied. The count
// only grows; it is never reset.
func (a *AdaptiveLimiter) Updates() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.updates
}

// applyEMA blends target into the delay and clamps the result to
// [MinDelay, MaxDelay]. The update counter advances first, so the nth
// update uses weight InitialAlpha/(1+n): with the default alpha of 2 the
// first update adopts its target outright. Callers must hold mu.
func (a *AdaptiveLimiter) applyEMA(target float64) {
	a.updates++
	alpha := a.cfg.InitialAlpha / float64(1+a.updates)
	d := alpha*target + (1-alpha)*a.delay
	if lo := a.cfg.MinDelay.Seconds(); d < lo {
		d = lo
	}
	if hi := a.cfg.MaxDelay.Seconds(); d > hi {
		d = hi
	}
	a.delay = d
}

func (a *AdaptiveLimiter) delayLocked() time.Duration {
	return time.Duration(a.delay * float64(time.Second))
}

func applyLimiterDefaults(cfg LimiterConfig) LimiterConfig {
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = time.Second
	}
	if cfg.InitialAlpha <= 0 {
		cfg.InitialAlpha = 2.0
	}
	if cfg.MinDelay <= 0 {
		cfg.MinDelay = 100 * time.Millisecond
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = 30 * time.Second
	}
	return cfg
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
