package provider

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"PulseBoard/internal/model"
)

// ContentProvider produces one product description and one social post per call.
type ContentProvider interface {
	Generate(ctx context.Context) (*model.GeneratedContent, error)
	Name() string
}

// Selector picks the provider used for a single content round. providers is never empty.
type Selector func(providers []ContentProvider) ContentProvider

// RandomSelector picks uniformly among providers using draw, which must return values in [0, 1).
func RandomSelector(draw func() float64) Selector {
	return func(providers []ContentProvider) ContentProvider {
		i := int(draw() * float64(len(providers)))
		if i >= len(providers) {
			i = len(providers) - 1
		}
		return providers[i]
	}
}

// FixedSelector always picks the provider with the given name, falling back to the first.
func FixedSelector(name string) Selector {
	return func(providers []ContentProvider) ContentProvider {
		for _, p := range providers {
			if p.Name() == name {
				return p
			}
		}
		return providers[0]
	}
}

func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   60 * time.Second,
		Transport: transport,
	}
}
