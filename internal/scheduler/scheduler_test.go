package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"PulseBoard/internal/dashboard"
	"PulseBoard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRunner struct {
	name  model.AgentName
	calls int32
	err   error
	// block waits for ctx cancellation when set
	block bool
	panic bool
}

func (r *countingRunner) Name() model.AgentName { return r.name }

func (r *countingRunner) Run(ctx context.Context) error {
	atomic.AddInt32(&r.calls, 1)
	if r.panic {
		panic("boom")
	}
	if r.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return r.err
}

func (r *countingRunner) count() int32 { return atomic.LoadInt32(&r.calls) }

func allSpecs(spec string) map[model.AgentName]string {
	specs := make(map[model.AgentName]string)
	for _, n := range model.AgentNames {
		specs[n] = spec
	}
	return specs
}

func TestRegisterAll(t *testing.T) {
	s := NewScheduler(context.Background(),
		&countingRunner{name: model.AgentContent},
		&countingRunner{name: model.AgentAnalytics},
	)
	require.NoError(t, s.RegisterAll(allSpecs("@every 1m")))
	assert.Len(t, s.Cron.Entries(), 2)
}

func TestRegisterAll_Errors(t *testing.T) {
	s := NewScheduler(context.Background(), &countingRunner{name: model.AgentContent})
	assert.Error(t, s.RegisterAll(allSpecs("not a spec")))

	s = NewScheduler(context.Background(), &countingRunner{name: model.AgentMarketing})
	err := s.RegisterAll(map[model.AgentName]string{model.AgentContent: "@every 1m"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marketing")
}

func TestRunNow(t *testing.T) {
	fail := &countingRunner{name: model.AgentContent, err: errors.New("provider down")}
	s := NewScheduler(context.Background(), fail)

	assert.EqualError(t, s.RunNow(context.Background(), model.AgentContent), "provider down")
	assert.Equal(t, int32(1), fail.count())
	assert.ErrorIs(t, s.RunNow(context.Background(), model.AgentMarketing), dashboard.ErrUnknownAgent)

	r, ok := s.Runner(model.AgentContent)
	assert.True(t, ok)
	assert.Equal(t, model.AgentContent, r.Name())
}

func TestRunAllNow_ToleratesErrorsAndPanics(t *testing.T) {
	runners := []*countingRunner{
		{name: model.AgentContent, err: errors.New("x")},
		{name: model.AgentMarketing},
		{name: model.AgentCustomer},
		{name: model.AgentAnalytics},
	}
	s := NewScheduler(context.Background(), runners[0], runners[1], runners[2], runners[3])
	s.RunAllNow()
	for _, r := range runners {
		assert.Equal(t, int32(1), r.count(), r.name)
	}
}

func TestScheduledJobsFire(t *testing.T) {
	fast := &countingRunner{name: model.AgentAnalytics}
	crashy := &countingRunner{name: model.AgentMarketing, panic: true}
	s := NewScheduler(context.Background(), fast, crashy)
	require.NoError(t, s.RegisterAll(allSpecs("@every 1s")))
	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool { return fast.count() >= 2 && crashy.count() >= 2 },
		5*time.Second, 50*time.Millisecond, "recovered panics must not stop the schedule")
}

func TestStartupRun(t *testing.T) {
	r := &countingRunner{name: model.AgentCustomer}
	s := NewScheduler(context.Background(), r)
	s.StartupRun(10 * time.Millisecond)

	assert.Eventually(t, func() bool { return r.count() == 1 }, time.Second, 5*time.Millisecond)
	s.Stop()
}

func TestStop_CancelsStartupAndInFlightRuns(t *testing.T) {
	skipped := &countingRunner{name: model.AgentContent}
	s := NewScheduler(context.Background(), skipped)
	s.StartupRun(time.Hour)
	s.Stop()
	assert.Zero(t, skipped.count())

	blocking := &countingRunner{name: model.AgentAnalytics, block: true}
	s = NewScheduler(context.Background(), blocking)
	s.StartupRun(0)
	require.Eventually(t, func() bool { return blocking.count() == 1 }, time.Second, 5*time.Millisecond)

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return after cancelling the run")
	}
}
