package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	slausecases "github.com/orris-inc/servicedesk/internal/application/sla/usecases"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

type stubSweeper struct {
	mu     sync.Mutex
	calls  int
	result *slausecases.SweepResult
	err    error
}

func (s *stubSweeper) Execute(ctx context.Context) (*slausecases.SweepResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.result, s.err
}

func (s *stubSweeper) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubRecorder struct {
	mu            sync.Mutex
	firstResponse int
	resolution    int
}

func (r *stubRecorder) RecordSLABreaches(fr, res int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.firstResponse += fr
	r.resolution += res
}

func TestSchedulerManager_RegisterSLASweepJob(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNop())
	require.NoError(t, err)

	sweeper := &stubSweeper{result: &slausecases.SweepResult{}}
	require.NoError(t, m.RegisterSLASweepJob(sweeper, nil, 0))

	jobs := m.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "sla-breach-sweep", jobs[0].Name())
	assert.ElementsMatch(t, []string{"sla", "breach-sweep"}, jobs[0].Tags())
}

func TestSchedulerManager_RunsSweepImmediately(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNop())
	require.NoError(t, err)

	sweeper := &stubSweeper{result: &slausecases.SweepResult{
		Checked: 3, Breached: 2, FirstResponseBreaches: 1, ResolutionBreaches: 2,
	}}
	recorder := &stubRecorder{}
	require.NoError(t, m.RegisterSLASweepJob(sweeper, recorder, time.Hour))

	m.Start()
	assert.True(t, m.IsStarted())
	assert.Eventually(t, func() bool { return sweeper.Calls() >= 1 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, m.Stop())
	assert.False(t, m.IsStarted())

	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	assert.Equal(t, 1, recorder.firstResponse)
	assert.Equal(t, 2, recorder.resolution)
}

func TestSchedulerManager_SweepErrorWithoutResult(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNop())
	require.NoError(t, err)

	recorder := &stubRecorder{}
	m.runSLASweep(context.Background(), &stubSweeper{err: errors.New("db down")}, recorder)
	assert.Zero(t, recorder.firstResponse)
	assert.Zero(t, recorder.resolution)
}

func TestSchedulerManager_StopWithoutStart(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNop())
	require.NoError(t, err)
	assert.NoError(t, m.Stop())
}
