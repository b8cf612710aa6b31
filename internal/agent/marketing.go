package agent

import (
	"context"
	"fmt"

	"PulseBoard/internal/model"
)

// MarketingAgent simulates campaign optimization. It makes no external calls.
type MarketingAgent struct {
	base
}

func NewMarketingAgent(deps Deps) *MarketingAgent {
	return &MarketingAgent{base: base{name: model.AgentMarketing, deps: deps}}
}

func (a *MarketingAgent) Run(ctx context.Context) error {
	return a.execute(ctx, a.optimize)
}

func (a *MarketingAgent) optimize(_ context.Context) (string, error) {
	r := a.deps.Rand
	stats := a.deps.Store.UpdateMarketing(func(m *model.MarketingStats) {
		if r.Float64() <= 0.3 {
			return
		}
		m.Campaigns++
		m.ROAS += r.Float64() * 0.5
		m.Spend += 50 + r.Intn(100)
	})
	a.deps.Store.UpdateMetrics(func(m *model.DashboardMetrics) {
		m.Campaigns = stats.Campaigns
	})
	return fmt.Sprintf("%d active campaigns, roas %.2f, spend %d", stats.Campaigns, stats.ROAS, stats.Spend), nil
}
