package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"PulseBoard/internal/agent"
	"PulseBoard/internal/dashboard"
	"PulseBoard/internal/model"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the periodic agent jobs.
type Scheduler struct {
	Cron    *cron.Cron
	chain   cron.Chain
	runners map[model.AgentName]agent.Runner

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a Scheduler for the given runners. Jobs receive a
// context derived from ctx that is cancelled by Stop.
func NewScheduler(ctx context.Context, runners ...agent.Runner) *Scheduler {
	ctx, cancel := context.WithCancel(ctx)
	recoverer := cron.Recover(cron.PrintfLogger(log.Default()))
	s := &Scheduler{
		Cron:    cron.New(cron.WithChain(recoverer)),
		chain:   cron.NewChain(recoverer),
		runners: make(map[model.AgentName]agent.Runner, len(runners)),
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, r := range runners {
		s.runners[r.Name()] = r
	}
	return s
}

// RegisterAll registers one job per agent. Every runner needs a spec.
func (s *Scheduler) RegisterAll(specs map[model.AgentName]string) error {
	for _, name := range model.AgentNames {
		r, ok := s.runners[name]
		if !ok {
			continue
		}
		spec, ok := specs[name]
		if !ok {
			return fmt.Errorf("register %s agent: no schedule", name)
		}
		if _, err := s.Cron.AddFunc(spec, s.job(r)); err != nil {
			return fmt.Errorf("register %s agent: %w", name, err)
		}
		log.Printf("[INFO] %s agent scheduled: %s", name, spec)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop cancels in-flight runs and waits for all jobs to return.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.Cron.Stop().Done()
	s.wg.Wait()
	log.Println("[INFO] scheduler stopped")
}

// Runner returns the runner registered under name.
func (s *Scheduler) Runner(name model.AgentName) (agent.Runner, bool) {
	r, ok := s.runners[name]
	return r, ok
}

// RunNow executes one agent immediately (for manual trigger).
func (s *Scheduler) RunNow(ctx context.Context, name model.AgentName) error {
	r, ok := s.runners[name]
	if !ok {
		return dashboard.ErrUnknownAgent
	}
	return r.Run(ctx)
}

// RunAllNow runs every agent concurrently and waits for them.
func (s *Scheduler) RunAllNow() {
	var wg sync.WaitGroup
	for _, r := range s.runners {
		wg.Add(1)
		go func(r agent.Runner) {
			defer wg.Done()
			s.chain.Then(cron.FuncJob(s.job(r))).Run()
		}(r)
	}
	wg.Wait()
}

// StartupRun runs all agents once after delay, unless Stop comes first.
func (s *Scheduler) StartupRun(delay time.Duration) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		select {
		case <-s.ctx.Done():
			return
		case <-time.After(delay):
		}
		log.Println("[INFO] initial run of all agents")
		s.RunAllNow()
	}()
}

func (s *Scheduler) job(r agent.Runner) func() {
	return func() {
		if err := r.Run(s.ctx); err != nil {
			log.Printf("[ERROR] %s agent run: %v", r.Name(), err)
		}
	}
}
