package scheduler

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"CoinPulse/internal/logger"
	"CoinPulse/internal/model"
	"CoinPulse/internal/reporter"
)

// Snapshotter takes one market snapshot.
type Snapshotter interface {
	Collect(ctx context.Context) *model.Snapshot
}

// Scheduler runs snapshots on demand or on a cron schedule and writes each
// one to Out.
type Scheduler struct {
	Cron      *cron.Cron
	Collector Snapshotter
	Out       io.Writer
	Log       *logrus.Entry
	Ctx       context.Context

	mu sync.Mutex // RunNow may overlap a scheduled tick
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col Snapshotter, out io.Writer, log *logrus.Entry) *Scheduler {
	if log == nil {
		log = logger.Discard().WithComponent("scheduler")
	}
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		Collector: col,
		Out:       out,
		Log:       log,
		Ctx:       ctx,
	}
}

// Register schedules the snapshot task. Both 6-field (with seconds) and
// descriptor ("@every 1m") expressions are accepted.
func (s *Scheduler) Register(expr string) error {
	if _, err := s.Cron.AddFunc(expr, func() { s.RunNow() }); err != nil {
		return fmt.Errorf("register snapshot task: %w", err)
	}
	s.Log.WithField("cron", expr).Info("snapshot task registered")
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Log.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running snapshot to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Log.Info("scheduler stopped")
}

// RunNow takes and renders one snapshot immediately. It returns nil when the
// scheduler's context is already done.
func (s *Scheduler) RunNow() *model.Snapshot {
	if err := s.Ctx.Err(); err != nil {
		s.Log.WithError(err).Debug("context done, skipping snapshot")
		return nil
	}
	snap := s.Collector.Collect(s.Ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	reporter.RenderTable(s.Out, snap)
	return snap
}
