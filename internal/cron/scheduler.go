package cronjob

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/auth"
)

// SessionChecker is the gate operation run on each tick.
type SessionChecker interface {
	Revalidate(ctx context.Context) auth.State
}

// Scheduler runs background jobs. Jobs never overlap with themselves.
type Scheduler struct {
	c      *cron.Cron
	logger *zap.Logger
}

func NewScheduler(logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		c:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger: logger,
	}
}

// AddSessionCheck revalidates the admin session every interval. Each run is
// bounded by timeout.
func (s *Scheduler) AddSessionCheck(interval, timeout time.Duration, gate SessionChecker) error {
	if interval <= 0 {
		return fmt.Errorf("session check interval must be positive, got %s", interval)
	}

	_, err := s.c.AddFunc("@every "+interval.String(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		st := gate.Revalidate(ctx)
		s.logger.Debug("admin session rechecked", zap.Stringer("phase", st.Phase))
	})
	if err != nil {
		return fmt.Errorf("schedule session check: %w", err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.logger.Info("cron scheduler started", zap.Int("jobs", len(s.c.Entries())))
	s.c.Start()
}

// Stop halts scheduling and waits for running jobs or ctx, whichever is first.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.c.Stop().Done():
	case <-ctx.Done():
	}
}
