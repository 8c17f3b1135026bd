// Package scheduler runs background jobs using gocron v2.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	slausecases "github.com/orris-inc/servicedesk/internal/application/sla/usecases"
	"github.com/orris-inc/servicedesk/internal/shared/biztime"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

const (
	DefaultSLASweepInterval = time.Minute
	slaSweepTimeout         = 2 * time.Minute
)

// SLASweeper flags SLA targets whose deadline passed unmet.
type SLASweeper interface {
	Execute(ctx context.Context) (*slausecases.SweepResult, error)
}

// BreachRecorder receives breach counts per SLA target.
type BreachRecorder interface {
	RecordSLABreaches(firstResponse, resolution int)
}

// SchedulerManager owns the single gocron scheduler of the process.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager creates a scheduler in the business timezone.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterSLASweepJob runs the breach sweep every interval. Overlapping runs
// are rescheduled rather than stacked.
func (m *SchedulerManager) RegisterSLASweepJob(sweeper SLASweeper, recorder BreachRecorder, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultSLASweepInterval
	}

	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), slaSweepTimeout)
			defer cancel()
			m.runSLASweep(ctx, sweeper, recorder)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("sla", "breach-sweep"),
		gocron.WithName("sla-breach-sweep"),
	)
	if err != nil {
		return fmt.Errorf("failed to register SLA sweep job: %w", err)
	}

	m.logger.Infow("registered SLA sweep job", "interval", interval.String())
	return nil
}

func (m *SchedulerManager) runSLASweep(ctx context.Context, sweeper SLASweeper, recorder BreachRecorder) {
	startTime := time.Now()

	result, err := sweeper.Execute(ctx)
	if err != nil {
		m.logger.Errorw("SLA sweep failed",
			"error", err,
			"duration", time.Since(startTime),
		)
	}
	if result == nil {
		return
	}

	if recorder != nil {
		recorder.RecordSLABreaches(result.FirstResponseBreaches, result.ResolutionBreaches)
	}

	m.logger.Debugw("SLA sweep completed",
		"checked", result.Checked,
		"breached", result.Breached,
		"duration", time.Since(startTime),
	)
}

// Start starts the scheduler and all registered jobs.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop waits for running jobs to complete before returning.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

// Jobs returns all registered jobs for inspection.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
