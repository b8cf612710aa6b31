package agent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"PulseBoard/internal/calculator"
	"PulseBoard/internal/commerce"
	"PulseBoard/internal/model"
	"PulseBoard/internal/notifier"
)

const orderFetchLimit = 250

// AnalyticsAgent derives revenue from commerce orders (or simulates it),
// maintains the daily revenue series and raises below-target alerts.
type AnalyticsAgent struct {
	base
	notifier notifier.Notifier

	// alerting is true while the previous run was below target. Guarded by runMu.
	alerting bool
}

// NewAnalyticsAgent creates the analytics agent. n may be nil.
func NewAnalyticsAgent(deps Deps, n notifier.Notifier) *AnalyticsAgent {
	if n == nil {
		n = notifier.Noop{}
	}
	return &AnalyticsAgent{base: base{name: model.AgentAnalytics, deps: deps}, notifier: n}
}

func (a *AnalyticsAgent) Run(ctx context.Context) error {
	return a.execute(ctx, a.analyze)
}

func (a *AnalyticsAgent) analyze(ctx context.Context) (string, error) {
	realRevenue := a.fetchRevenue(ctx)

	r := a.deps.Rand
	now := a.deps.now()
	today := calculator.DateKey(now)

	m := a.deps.Store.UpdateMetrics(func(m *model.DashboardMetrics) {
		if realRevenue > 0 {
			m.Revenue = math.Floor(realRevenue)
		} else {
			m.Revenue += float64(50 + r.Intn(150))
		}
		series, err := calculator.UpsertRevenuePoint(m.RevenueData, today, 100+r.Intn(200), calculator.MaxSeriesDays)
		if err != nil {
			log.Printf("[WARN] revenue series left unchanged: %v", err)
		}
		m.RevenueData = series
	})

	below := calculator.IsBelowTarget(m.Revenue, m.Target)
	stats := a.deps.Store.UpdateAnalytics(func(s *model.AnalyticsStats) {
		if below {
			s.Alerts++
		}
		s.Revenue = m.Revenue
	})
	m = a.deps.Store.UpdateMetrics(func(dm *model.DashboardMetrics) {
		dm.Alerts = stats.Alerts
		dm.LastUpdate = now
	})
	a.deps.Metrics.SetRevenue(m.Revenue, m.Target, m.Alerts)

	a.notify(ctx, below, &m)

	pct, _ := calculator.CalculateRevenuePercentage(m.Revenue, m.Target)
	return fmt.Sprintf("revenue %.0f (%.1f%% of target), %d alerts", m.Revenue, pct, stats.Alerts), nil
}

// fetchRevenue sums the recent order totals. Zero means the commerce source
// is unavailable or has no revenue.
func (a *AnalyticsAgent) fetchRevenue(ctx context.Context) float64 {
	if a.deps.Commerce == nil {
		return 0
	}
	orders, err := a.deps.Commerce.ListOrders(ctx, "any", orderFetchLimit)
	a.deps.Metrics.ObserveCall(a.deps.Commerce.Name(), "list_orders", err)
	if err != nil {
		if !errors.Is(err, commerce.ErrNotConfigured) {
			log.Printf("[WARN] list orders, using simulated revenue: %v", err)
		}
		return 0
	}
	return commerce.SumOrderTotals(orders)
}

// notify sends an alert when revenue first drops below target, and a
// recovery message when it climbs back.
func (a *AnalyticsAgent) notify(ctx context.Context, below bool, m *model.DashboardMetrics) {
	if below == a.alerting {
		return
	}
	a.alerting = below

	text := notifier.FormatRevenueRecovered(m)
	if below {
		text = notifier.FormatRevenueAlert(m)
	}
	if err := a.notifier.Send(ctx, text); err != nil {
		log.Printf("[ERROR] send revenue notification: %v", err)
	}
}
