package dashboard

import (
	"errors"
	"sync"
	"time"

	"PulseBoard/internal/calculator"
	"PulseBoard/internal/model"
)

// ErrUnknownAgent is returned for a name outside model.AgentNames.
var ErrUnknownAgent = errors.New("unknown agent")

// slot guards one agent record. Each agent has its own lock so that agents
// never contend with each other and a long run of one agent does not block
// readers of another.
type slot[T any] struct {
	mu sync.Mutex
	v  T
}

func (s *slot[T]) get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v
}

func (s *slot[T]) update(fn func(*T)) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.v)
	return s.v
}

// Store owns all mutable dashboard state: the four agent records and the
// aggregate metrics. Every accessor returns a copy.
type Store struct {
	content   slot[model.ContentStats]
	marketing slot[model.MarketingStats]
	customer  slot[model.CustomerStats]
	analytics slot[model.AnalyticsStats]

	metricsMu sync.RWMutex
	metrics   model.DashboardMetrics
}

// NewStore creates a Store seeded with demo figures. noise must return values
// in [0, 1) and is only used to shape the initial revenue chart.
func NewStore(target float64, now time.Time, noise func() float64) *Store {
	initial := model.AgentStatus{Active: true, Status: model.StateIdle, LastRun: now}

	s := &Store{
		metrics: model.DashboardMetrics{
			Revenue:        3648,
			Target:         target,
			Campaigns:      3,
			Content:        50,
			Clients:        3,
			Alerts:         3,
			ConversionRate: 1.33,
			RevenueData:    calculator.SeedRevenueSeries(now, calculator.MaxSeriesDays, noise),
			LastUpdate:     now,
		},
	}
	s.content.v.AgentStatus = initial
	s.marketing.v.AgentStatus = initial
	s.customer.v.AgentStatus = initial
	s.analytics.v.AgentStatus = initial
	return s
}

// Agents returns a copy of all agent records.
func (s *Store) Agents() model.Agents {
	return model.Agents{
		Content:   s.content.get(),
		Marketing: s.marketing.get(),
		Customer:  s.customer.get(),
		Analytics: s.analytics.get(),
	}
}

// Metrics returns a deep copy of the dashboard metrics.
func (s *Store) Metrics() model.DashboardMetrics {
	s.metricsMu.RLock()
	defer s.metricsMu.RUnlock()
	return s.metrics.Clone()
}

// UpdateMetrics applies fn under the metrics lock and returns the result.
func (s *Store) UpdateMetrics(fn func(m *model.DashboardMetrics)) model.DashboardMetrics {
	s.metricsMu.Lock()
	defer s.metricsMu.Unlock()
	fn(&s.metrics)
	return s.metrics.Clone()
}

func (s *Store) Content() model.ContentStats     { return s.content.get() }
func (s *Store) Marketing() model.MarketingStats { return s.marketing.get() }
func (s *Store) Customer() model.CustomerStats   { return s.customer.get() }
func (s *Store) Analytics() model.AnalyticsStats { return s.analytics.get() }

func (s *Store) UpdateContent(fn func(*model.ContentStats)) model.ContentStats {
	return s.content.update(fn)
}

func (s *Store) UpdateMarketing(fn func(*model.MarketingStats)) model.MarketingStats {
	return s.marketing.update(fn)
}

func (s *Store) UpdateCustomer(fn func(*model.CustomerStats)) model.CustomerStats {
	return s.customer.update(fn)
}

func (s *Store) UpdateAnalytics(fn func(*model.AnalyticsStats)) model.AnalyticsStats {
	return s.analytics.update(fn)
}

// UpdateStatus applies fn to the shared fields of the named agent.
func (s *Store) UpdateStatus(name model.AgentName, fn func(*model.AgentStatus)) (model.AgentStatus, error) {
	switch name {
	case model.AgentContent:
		return s.UpdateContent(func(c *model.ContentStats) { fn(&c.AgentStatus) }).AgentStatus, nil
	case model.AgentMarketing:
		return s.UpdateMarketing(func(m *model.MarketingStats) { fn(&m.AgentStatus) }).AgentStatus, nil
	case model.AgentCustomer:
		return s.UpdateCustomer(func(c *model.CustomerStats) { fn(&c.AgentStatus) }).AgentStatus, nil
	case model.AgentAnalytics:
		return s.UpdateAnalytics(func(a *model.AnalyticsStats) { fn(&a.AgentStatus) }).AgentStatus, nil
	}
	return model.AgentStatus{}, ErrUnknownAgent
}

// Status returns the shared fields of the named agent.
func (s *Store) Status(name model.AgentName) (model.AgentStatus, error) {
	st, ok := s.Agents().Status(name)
	if !ok {
		return model.AgentStatus{}, ErrUnknownAgent
	}
	return st, nil
}

// Toggle flips the named agent's active flag. An agent switched on becomes
// idle; one switched off becomes stopped.
func (s *Store) Toggle(name model.AgentName) (model.AgentStatus, error) {
	return s.UpdateStatus(name, func(st *model.AgentStatus) {
		st.Active = !st.Active
		if st.Active {
			st.Status = model.StateIdle
		} else {
			st.Status = model.StateStopped
		}
	})
}
