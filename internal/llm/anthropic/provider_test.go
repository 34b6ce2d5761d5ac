package anthropic_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rrens/support-assistant/internal/config"
	"github.com/Rrens/support-assistant/internal/llm/anthropic"
)

func TestProvider_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		w.Write([]byte(`{"content":[{"type":"text","text":"Hi "},{"type":"text","text":"there!"}],"usage":{"input_tokens":5,"output_tokens":3}}`))
	}))
	defer srv.Close()

	p := anthropic.NewProvider(config.AnthropicConfig{APIKey: "key", BaseURL: srv.URL})

	resp, err := p.Generate(context.Background(), "Hello", "")
	require.NoError(t, err)
	assert.Equal(t, "Hi there!", resp.Text)
	assert.Equal(t, 8, resp.TokensUsed)
	assert.Equal(t, p.DefaultModel(), resp.Model)
}

func TestProvider_GenerateEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":[]}`))
	}))
	defer srv.Close()

	p := anthropic.NewProvider(config.AnthropicConfig{APIKey: "key", BaseURL: srv.URL})

	_, err := p.Generate(context.Background(), "Hello", "")
	assert.Error(t, err)
}
