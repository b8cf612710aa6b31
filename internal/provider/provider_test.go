package provider

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/tmc/langchaingo/llms"
)

// fakeLLM answers each prompt from a table and records the call options.
type fakeLLM struct {
	replies map[string]string
	err     error
	opts    []llms.CallOptions
}

func (f *fakeLLM) GenerateContent(_ context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	var co llms.CallOptions
	for _, o := range options {
		o(&co)
	}
	f.opts = append(f.opts, co)
	if f.err != nil {
		return nil, f.err
	}
	prompt := messages[0].Parts[0].(llms.TextContent).Text
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.replies[prompt]}}}, nil
}

func (f *fakeLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func TestOpenAIProvider_Generate(t *testing.T) {
	llm := &fakeLLM{replies: map[string]string{
		productPrompt: "A mouse.",
		socialPrompt:  "Click it 🎮",
	}}
	p := NewOpenAIProviderWithModel(llm, "gpt-4")

	out, err := p.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "openai", out.Provider)
	assert.Equal(t, "A mouse.", out.ProductDescription)
	assert.Equal(t, "Click it 🎮", out.SocialPost)

	require.Len(t, llm.opts, 2)
	assert.Equal(t, productMaxTokens, llm.opts[0].MaxTokens)
	assert.Equal(t, socialMaxTokens, llm.opts[1].MaxTokens)
	assert.Equal(t, "gpt-4", llm.opts[0].Model)
}

func TestOpenAIProvider_Error(t *testing.T) {
	llm := &fakeLLM{err: errors.New("rate limited")}
	p := NewOpenAIProviderWithModel(llm, "gpt-4")

	_, err := p.Generate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
	assert.Len(t, llm.opts, 1, "second prompt must not be sent after a failure")
}

func TestClaudeProvider_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "sk-test", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "claude-3-sonnet-20240229", gjson.GetBytes(body, "model").String())
		assert.Equal(t, int64(combinedMaxTokens), gjson.GetBytes(body, "max_tokens").Int())
		assert.Equal(t, "user", gjson.GetBytes(body, "messages.0.role").String())

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"type":        "message",
			"role":        "assistant",
			"stop_reason": "end_turn",
			"content":     []map[string]string{{"type": "text", "text": "Great headset.\n---\nGo pro 🎧"}},
		})
	}))
	defer srv.Close()

	p, err := NewClaudeProvider("sk-test", "claude-3-sonnet-20240229", srv.URL+"/", "")
	require.NoError(t, err)
	out, err := p.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "claude", out.Provider)
	assert.Equal(t, "Great headset.", out.ProductDescription)
	assert.Equal(t, "Go pro 🎧", out.SocialPost)
}

func TestClaudeProvider_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"type":"authentication_error"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	p, err := NewClaudeProvider("bad", "m", srv.URL, "")
	require.NoError(t, err)
	_, err = p.Generate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "claude generate")
	assert.Contains(t, err.Error(), "401")
}

func TestClaudeProvider_MissingText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[]}`))
	}))
	defer srv.Close()

	p, err := NewClaudeProvider("k", "m", srv.URL, "")
	require.NoError(t, err)
	_, err = p.Generate(context.Background())
	assert.Error(t, err)
}

func TestClaudeProvider_MissingKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	_, err := NewClaudeProvider("", "m", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "init claude client")
}

func TestClaudeProvider_WithModel(t *testing.T) {
	llm := &fakeLLM{replies: map[string]string{combinedPrompt: "Soft keys.---Type fast ⌨️"}}
	p := NewClaudeProviderWithModel(llm, "claude-3-haiku")

	out, err := p.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Soft keys.", out.ProductDescription)
	assert.Equal(t, "Type fast ⌨️", out.SocialPost)

	require.Len(t, llm.opts, 1)
	assert.Equal(t, combinedMaxTokens, llm.opts[0].MaxTokens)
	assert.Equal(t, "claude-3-haiku", llm.opts[0].Model)
}

func TestSplitCombined(t *testing.T) {
	product, social := splitCombined("only product copy")
	assert.Equal(t, "only product copy", product)
	assert.Empty(t, social)

	product, social = splitCombined(" a --- b --- c ")
	assert.Equal(t, "a", product)
	assert.Equal(t, "b --- c", social)
}

func TestRandomSelector(t *testing.T) {
	a := &MockProvider{ProviderName: "a"}
	b := &MockProvider{ProviderName: "b"}
	providers := []ContentProvider{a, b}

	assert.Equal(t, "a", RandomSelector(func() float64 { return 0.1 })(providers).Name())
	assert.Equal(t, "b", RandomSelector(func() float64 { return 0.7 })(providers).Name())
	assert.Equal(t, "b", RandomSelector(func() float64 { return 1.0 })(providers).Name())
	assert.Equal(t, "a", RandomSelector(func() float64 { return 0.9 })(providers[:1]).Name())
}

func TestFixedSelector(t *testing.T) {
	a := &MockProvider{ProviderName: "a"}
	b := &MockProvider{ProviderName: "b"}
	providers := []ContentProvider{a, b}

	assert.Equal(t, "b", FixedSelector("b")(providers).Name())
	assert.Equal(t, "a", FixedSelector("zzz")(providers).Name())
}

func TestMockProvider(t *testing.T) {
	m := &MockProvider{}
	out, err := m.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "mock", out.Provider)
	assert.NotEmpty(t, out.ProductDescription)
	assert.Equal(t, 1, m.Calls)

	m.Err = errors.New("down")
	_, err = m.Generate(context.Background())
	assert.EqualError(t, err, "down")
}
