package agent

import (
	"context"
	"fmt"
	"log"

	"PulseBoard/internal/calculator"
	"PulseBoard/internal/model"
)

const customerFetchLimit = 50

// CustomerAgent refreshes the client count from the commerce platform and
// simulates email engagement.
type CustomerAgent struct {
	base
}

func NewCustomerAgent(deps Deps) *CustomerAgent {
	return &CustomerAgent{base: base{name: model.AgentCustomer, deps: deps}}
}

func (a *CustomerAgent) Run(ctx context.Context) error {
	return a.execute(ctx, a.engage)
}

func (a *CustomerAgent) engage(ctx context.Context) (string, error) {
	clients := -1
	if a.deps.Commerce != nil {
		customers, err := a.deps.Commerce.ListCustomers(ctx, customerFetchLimit)
		a.deps.Metrics.ObserveCall(a.deps.Commerce.Name(), "list_customers", err)
		if err != nil {
			log.Printf("[WARN] list customers, keeping previous client count: %v", err)
		} else {
			clients = len(customers)
		}
	}

	r := a.deps.Rand
	stats := a.deps.Store.UpdateCustomer(func(c *model.CustomerStats) {
		if clients >= 0 {
			c.Clients = clients
		}
		if r.Float64() > 0.4 {
			c.Emails++
			if r.Float64() > 0.7 {
				c.Conversions++
			}
		}
	})

	a.deps.Store.UpdateMetrics(func(m *model.DashboardMetrics) {
		m.Clients = stats.Clients
		if rate, err := calculator.CalculateConversionRate(stats.Conversions, stats.Emails); err == nil {
			m.ConversionRate = rate
		}
	})
	return fmt.Sprintf("%d clients, %d emails, %d conversions", stats.Clients, stats.Emails, stats.Conversions), nil
}
