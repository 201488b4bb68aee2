package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// OverdueExpirer is the one booking operation the sweeper drives.
type OverdueExpirer interface {
	ExpireOverdue(ctx context.Context) (int, error)
}

// Sweeper periodically cancels pending bookings whose scheduled start has
// passed without a confirmation.
type Sweeper struct {
	bookings OverdueExpirer
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
}

func NewSweeper(bookings OverdueExpirer, interval time.Duration, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		bookings: bookings,
		interval: interval,
		logger:   logger.With(zap.String("worker", "sweeper")),
		stopChan: make(chan struct{}),
	}
}

func (s *Sweeper) Start(ctx context.Context) {
	s.logger.Info("Starting expiration sweeper", zap.Duration("interval", s.interval))
	go s.run(ctx)
}

func (s *Sweeper) Stop() {
	s.logger.Info("Stopping expiration sweeper")
	close(s.stopChan)
}

func (s *Sweeper) run(ctx context.Context) {
	// First pass right away so a restart does not leave stale bookings
	// pending for a full interval.
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.stopChan:
			s.logger.Info("Expiration sweeper stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Expiration sweeper cancelled")
			return
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	expired, err := s.bookings.ExpireOverdue(ctx)
	if err != nil {
		s.logger.Error("Sweep failed", zap.Error(err))
		return
	}

	if expired > 0 {
		s.logger.Info("Sweep completed", zap.Int("expired", expired))
	}
}
