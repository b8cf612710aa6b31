package provider

import (
	"context"

	"PulseBoard/internal/model"
)

// MockProvider returns canned content, for development without API keys and for tests.
type MockProvider struct {
	ProviderName string
	Description  string
	Post         string
	Err          error
	Calls        int
}

func (m *MockProvider) Name() string {
	if m.ProviderName != "" {
		return m.ProviderName
	}
	return "mock"
}

func (m *MockProvider) Generate(_ context.Context) (*model.GeneratedContent, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	desc, post := m.Description, m.Post
	if desc == "" {
		desc = "Pro-grade gaming mouse with a 26K DPI sensor and 70-hour battery."
	}
	if post == "" {
		post = "Level up your setup 🎮 #gaming #esports"
	}
	return &model.GeneratedContent{Provider: m.Name(), ProductDescription: desc, SocialPost: post}, nil
}
