package agent

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"sync"
	"time"

	"PulseBoard/internal/dashboard"
	"PulseBoard/internal/metrics"
	"PulseBoard/internal/model"
	"PulseBoard/internal/recorder"

	"github.com/google/uuid"
)

// Runner is one scheduled agent.
type Runner interface {
	Name() model.AgentName
	Run(ctx context.Context) error
}

// Rand is the random source behind every simulated figure.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRand returns a Rand safe for use by concurrent agents.
func NewRand(seed int64) Rand {
	return &lockedRand{r: rand.New(rand.NewSource(seed))}
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

// Commerce is the subset of the commerce client the agents call.
type Commerce interface {
	Name() string
	ListOrders(ctx context.Context, status string, limit int) ([]json.RawMessage, error)
	ListCustomers(ctx context.Context, limit int) ([]json.RawMessage, error)
	CreateProduct(ctx context.Context, draft model.ProductDraft) (json.RawMessage, error)
}

// Deps are the collaborators shared by all agents.
type Deps struct {
	Store    *dashboard.Store
	Commerce Commerce
	Rand     Rand
	Now      func() time.Time
	Recorder recorder.Recorder
	Metrics  *metrics.Metrics
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// base serializes invocations of one agent and handles the shared
// status lifecycle: running while work executes, then idle or error.
type base struct {
	name  model.AgentName
	deps  Deps
	runMu sync.Mutex
}

func (b *base) Name() model.AgentName { return b.name }

// execute runs work when the agent is active. An inactive agent is left
// untouched and nil is returned.
func (b *base) execute(ctx context.Context, work func(ctx context.Context) (string, error)) error {
	b.runMu.Lock()
	defer b.runMu.Unlock()

	active := false
	if _, err := b.deps.Store.UpdateStatus(b.name, func(st *model.AgentStatus) {
		if !st.Active {
			return
		}
		active = true
		st.Status = model.StateRunning
	}); err != nil {
		return err
	}
	if !active {
		log.Printf("[INFO] %s agent inactive, skipping", b.name)
		return nil
	}

	log.Printf("[INFO] running %s agent", b.name)
	started := b.deps.now()
	summary, err := work(ctx)
	finished := b.deps.now()

	outcome := model.StateIdle
	if err != nil {
		outcome = model.StateError
	}
	b.deps.Store.UpdateStatus(b.name, func(st *model.AgentStatus) {
		st.LastRun = finished
		// toggled off mid-run
		if !st.Active {
			st.Status = model.StateStopped
			return
		}
		st.Status = outcome
	})

	elapsed := finished.Sub(started)
	b.deps.Metrics.ObserveRun(string(b.name), string(outcome), elapsed)
	b.record(started, elapsed, outcome, summary, err)

	if err != nil {
		log.Printf("[ERROR] %s agent: %v", b.name, err)
		return err
	}
	log.Printf("[INFO] %s agent done: %s", b.name, summary)
	return nil
}

func (b *base) record(started time.Time, elapsed time.Duration, outcome model.AgentState, summary string, runErr error) {
	if b.deps.Recorder == nil {
		return
	}
	evt := &recorder.RunEvent{
		ID:         uuid.NewString(),
		Agent:      string(b.name),
		Status:     string(outcome),
		StartedAt:  started,
		DurationMs: elapsed.Milliseconds(),
		Summary:    summary,
	}
	if runErr != nil {
		evt.Error = runErr.Error()
	}
	if err := b.deps.Recorder.RecordRun(evt); err != nil {
		log.Printf("[ERROR] record %s run: %v", b.name, err)
	}
}
