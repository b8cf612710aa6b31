package provider

import (
	"context"
	"fmt"

	"PulseBoard/internal/model"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAIProvider generates content with two separate chat completions.
type OpenAIProvider struct {
	llm   llms.Model
	model string
}

// NewOpenAIProvider creates a provider backed by the OpenAI chat API.
// baseURL may be empty to use the public endpoint.
func NewOpenAIProvider(apiKey, modelName, baseURL, proxyURL string) (*OpenAIProvider, error) {
	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(modelName),
		openai.WithHTTPClient(newHTTPClient(proxyURL)),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("init openai client: %w", err)
	}
	return NewOpenAIProviderWithModel(llm, modelName), nil
}

// NewOpenAIProviderWithModel wraps an existing langchaingo model.
func NewOpenAIProviderWithModel(llm llms.Model, modelName string) *OpenAIProvider {
	return &OpenAIProvider{llm: llm, model: modelName}
}

func (p *OpenAIProvider) Name() string { return "openai" }

// Generate asks for the product description first, then the social post.
func (p *OpenAIProvider) Generate(ctx context.Context) (*model.GeneratedContent, error) {
	desc, err := llms.GenerateFromSinglePrompt(ctx, p.llm, productPrompt,
		llms.WithModel(p.model), llms.WithMaxTokens(productMaxTokens))
	if err != nil {
		return nil, fmt.Errorf("openai product description: %w", err)
	}
	post, err := llms.GenerateFromSinglePrompt(ctx, p.llm, socialPrompt,
		llms.WithModel(p.model), llms.WithMaxTokens(socialMaxTokens))
	if err != nil {
		return nil, fmt.Errorf("openai social post: %w", err)
	}
	return &model.GeneratedContent{
		Provider:           p.Name(),
		ProductDescription: desc,
		SocialPost:         post,
	}, nil
}
