package booking

import (
	"strings"
	"sync"

	"medibook/internal/config"

	"golang.org/x/time/rate"
)

// createLimiter keeps one token bucket per patient so a mashed submit
// button cannot append the same request twice.
type createLimiter struct {
	limiters sync.Map
	cfg      config.LimitsConfig
}

func newCreateLimiter(cfg config.LimitsConfig) *createLimiter {
	return &createLimiter{cfg: cfg}
}

func (l *createLimiter) getLimiter(key string) *rate.Limiter {
	key = strings.ToLower(key)

	if v, ok := l.limiters.Load(key); ok {
		if lim, ok := v.(*rate.Limiter); ok {
			return lim
		}
	}

	burst := l.cfg.CreateBurst
	if burst <= 0 {
		burst = 3
	}
	rps := l.cfg.CreateRPS
	if rps <= 0 {
		rps = 1
	}

	lim := rate.NewLimiter(rate.Limit(rps), burst)
	actual, loaded := l.limiters.LoadOrStore(key, lim)
	if loaded {
		if actualLim, ok := actual.(*rate.Limiter); ok {
			return actualLim
		}
	}
	return lim
}

func (l *createLimiter) allow(key string) bool {
	return l.getLimiter(key).Allow()
}
