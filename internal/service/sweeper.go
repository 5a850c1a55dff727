package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Sweeper periodically cancels orders abandoned before payment, so
// pending/pending orders do not accumulate forever.
type Sweeper struct {
	orders   OrderService
	interval time.Duration
	ttl      time.Duration
	logger   zerolog.Logger
}

// NewSweeper creates a sweeper. A non-positive ttl disables sweeping.
func NewSweeper(orders OrderService, interval, ttl time.Duration, logger zerolog.Logger) *Sweeper {
	return &Sweeper{
		orders:   orders,
		interval: interval,
		ttl:      ttl,
		logger:   logger.With().Str("component", "order-sweeper").Logger(),
	}
}

// Run sweeps on a ticker until the context is cancelled. It is meant to be
// started in its own goroutine.
func (s *Sweeper) Run(ctx context.Context) {
	if s.ttl <= 0 {
		s.logger.Info().Msg("pending-order sweeping disabled")
		return
	}

	s.logger.Info().
		Dur("interval", s.interval).
		Dur("ttl", s.ttl).
		Msg("pending-order sweeper started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("pending-order sweeper stopped")
			return
		case <-ticker.C:
			if _, err := s.orders.SweepPending(ctx, s.ttl); err != nil {
				s.logger.Error().Err(err).Msg("sweep failed")
			}
		}
	}
}
