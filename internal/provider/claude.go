package provider

import (
	"context"
	"fmt"
	"strings"

	"PulseBoard/internal/model"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
)

// ClaudeProvider generates both pieces of content with one Messages API call.
type ClaudeProvider struct {
	llm   llms.Model
	model string
}

// NewClaudeProvider creates a provider backed by the Anthropic Messages API.
// baseURL may be empty to use the public endpoint.
func NewClaudeProvider(apiKey, modelName, baseURL, proxyURL string) (*ClaudeProvider, error) {
	opts := []anthropic.Option{
		anthropic.WithToken(apiKey),
		anthropic.WithModel(modelName),
		anthropic.WithHTTPClient(newHTTPClient(proxyURL)),
	}
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}
	llm, err := anthropic.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("init claude client: %w", err)
	}
	return NewClaudeProviderWithModel(llm, modelName), nil
}

// NewClaudeProviderWithModel wraps an existing langchaingo model.
func NewClaudeProviderWithModel(llm llms.Model, modelName string) *ClaudeProvider {
	return &ClaudeProvider{llm: llm, model: modelName}
}

func (p *ClaudeProvider) Name() string { return "claude" }

// Generate sends the combined prompt and splits the reply on the separator.
func (p *ClaudeProvider) Generate(ctx context.Context) (*model.GeneratedContent, error) {
	text, err := llms.GenerateFromSinglePrompt(ctx, p.llm, combinedPrompt,
		llms.WithModel(p.model), llms.WithMaxTokens(combinedMaxTokens))
	if err != nil {
		return nil, fmt.Errorf("claude generate: %w", err)
	}
	product, social := splitCombined(text)
	return &model.GeneratedContent{
		Provider:           p.Name(),
		ProductDescription: product,
		SocialPost:         social,
	}, nil
}

// splitCombined separates "<product>---<social>". A reply without the
// separator is treated as product copy only.
func splitCombined(text string) (product, social string) {
	parts := strings.SplitN(text, combinedSeparator, 2)
	product = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		social = strings.TrimSpace(parts[1])
	}
	return product, social
}
