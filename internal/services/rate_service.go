package services

import (
	"context"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/elcoders/payment-portal/internal/metrics"
)

const (
	// BaseRate is the fixed NGN-per-USD anchor the simulated market moves
	// around.
	BaseRate        = 1890.0
	rateFluctuation = 0.02
	rateRefreshTick = 30 * time.Minute
)

// RateService supplies the display-only NGN/USD conversion rate: the base
// rate perturbed by up to ±2%, refreshed on a timer and on demand. A failed
// fetch keeps the previous rate.
type RateService struct {
	mu      sync.RWMutex
	rate    float64
	loading bool
	delay   time.Duration
	fetch   func(ctx context.Context) (float64, error)
	log     *slog.Logger
}

func NewRateService(delay time.Duration, log *slog.Logger) *RateService {
	s := &RateService{rate: BaseRate, delay: delay, log: log}
	s.fetch = s.simulateFetch
	return s
}

func (s *RateService) simulateFetch(ctx context.Context) (float64, error) {
	wait(ctx, s.delay)
	fluctuation := BaseRate * (rand.Float64()*2*rateFluctuation - rateFluctuation)
	return math.Round((BaseRate+fluctuation)*100) / 100, nil
}

func (s *RateService) Current() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rate
}

func (s *RateService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Refresh fetches a new rate. On failure the previous rate stays in place
// and the error is only logged; the current rate is always returned.
func (s *RateService) Refresh(ctx context.Context) float64 {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	rate, err := s.fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.log.Warn("exchange rate fetch failed, keeping previous rate", "err", err)
		return s.rate
	}
	s.rate = rate
	metrics.RateRefreshes.Inc()
	return s.rate
}

// Run refreshes once at startup and then every 30 minutes until ctx ends.
func (s *RateService) Run(ctx context.Context) {
	s.Refresh(ctx)
	t := time.NewTicker(rateRefreshTick)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			s.Refresh(ctx)
		case <-ctx.Done():
			return
		}
	}
}
