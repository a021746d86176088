package store

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Expirer removes entries that are expired at now.
type Expirer interface {
	Sweep(ctx context.Context, now time.Time) int
}

// Sweeper periodically sweeps a registry so expired codes stop resolving
// even when no new URLs are being shortened.
type Sweeper struct {
	target   Expirer
	interval time.Duration
	now      func() time.Time
	logger   *zap.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewSweeper creates a background sweeper. A non-positive interval disables it.
func NewSweeper(target Expirer, interval time.Duration, now func() time.Time, logger *zap.Logger) *Sweeper {
	if now == nil {
		now = time.Now
	}

	return &Sweeper{
		target:   target,
		interval: interval,
		now:      now,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start launches the sweep loop. It returns immediately.
func (s *Sweeper) Start(ctx context.Context) error {
	if s.interval <= 0 {
		s.logger.Info("background sweep disabled")

		return nil
	}

	if s.cancel != nil {
		return nil
	}

	ctx, s.cancel = context.WithCancel(ctx)

	go s.loop(ctx)

	s.logger.Info("background sweep started", zap.Duration("interval", s.interval))

	return nil
}

func (s *Sweeper) loop(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := s.target.Sweep(ctx, s.now())

			s.logger.Debug("background sweep finished", zap.Int("removed", removed))
		}
	}
}

// Shutdown stops the loop and waits for an in-flight sweep to finish.
func (s *Sweeper) Shutdown() error {
	if s.cancel == nil {
		return nil
	}

	s.cancel()
	<-s.done

	return nil
}
