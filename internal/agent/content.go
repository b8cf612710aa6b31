package agent

import (
	"context"
	"errors"
	"fmt"
	"log"

	"PulseBoard/internal/calculator"
	"PulseBoard/internal/model"
	"PulseBoard/internal/provider"
)

// productEvery is how many generated products trigger one commerce listing.
const productEvery = 5

var productCatalog = []string{
	"Gaming Mouse Pro X1",
	"Mechanical Keyboard Elite",
	"Wireless Gaming Headset",
	"RGB Gaming Mousepad",
	"Gaming Chair Supreme",
	"Ultra-wide Gaming Monitor",
}

var errNoProviders = errors.New("no content providers configured")

// ContentAgent generates product copy and social posts, and periodically
// lists a draft product on the commerce platform.
type ContentAgent struct {
	base
	providers []provider.ContentProvider
	selector  provider.Selector
}

// NewContentAgent creates the content agent. A nil selector picks uniformly
// using deps.Rand.
func NewContentAgent(deps Deps, providers []provider.ContentProvider, selector provider.Selector) *ContentAgent {
	if selector == nil {
		selector = provider.RandomSelector(deps.Rand.Float64)
	}
	return &ContentAgent{
		base:      base{name: model.AgentContent, deps: deps},
		providers: providers,
		selector:  selector,
	}
}

func (a *ContentAgent) Run(ctx context.Context) error {
	return a.execute(ctx, a.generate)
}

func (a *ContentAgent) generate(ctx context.Context) (string, error) {
	if len(a.providers) == 0 {
		return "", errNoProviders
	}
	p := a.selector(a.providers)
	content, err := p.Generate(ctx)
	a.deps.Metrics.ObserveCall(p.Name(), "generate", err)
	if err != nil {
		return "", fmt.Errorf("%s generate: %w", p.Name(), err)
	}

	stats := a.deps.Store.UpdateContent(func(c *model.ContentStats) {
		c.Products++
		c.Posts++
	})
	if stats.Products%productEvery == 0 {
		a.createProduct(ctx)
	}
	a.deps.Store.UpdateMetrics(func(m *model.DashboardMetrics) {
		m.Content = stats.Products
	})
	return fmt.Sprintf("%s generated content: %d products, %d posts", content.Provider, stats.Products, stats.Posts), nil
}

// createProduct lists a random catalog item as a draft. Failures are logged
// only and never undo the counters of the current run.
func (a *ContentAgent) createProduct(ctx context.Context) {
	if a.deps.Commerce == nil {
		return
	}
	draft := model.ProductDraft{
		Title:             productCatalog[a.deps.Rand.Intn(len(productCatalog))],
		BodyHTML:          "Professional-grade gaming gear built for demanding players who want peak performance.",
		Vendor:            "Gaming Professional",
		ProductType:       "Gaming Equipment",
		Status:            "draft",
		Price:             calculator.RoundTo(50+a.deps.Rand.Float64()*200, 2),
		InventoryQuantity: 10,
		Tags:              "gaming, professional, equipment",
	}
	_, err := a.deps.Commerce.CreateProduct(ctx, draft)
	a.deps.Metrics.ObserveCall(a.deps.Commerce.Name(), "create_product", err)
	if err != nil {
		log.Printf("[WARN] create product %q: %v", draft.Title, err)
		return
	}
	log.Printf("[INFO] product created: %s ($%.2f)", draft.Title, draft.Price)
}
