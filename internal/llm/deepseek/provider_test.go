package deepseek_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rrens/support-assistant/internal/config"
	"github.com/Rrens/support-assistant/internal/llm/deepseek"
)

func TestProvider_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer ds-test", r.Header.Get("Authorization"))
		w.Write([]byte(`{"choices":[{"message":{"content":"Hello from DeepSeek"}}]}`))
	}))
	defer srv.Close()

	p := deepseek.NewProvider(config.DeepSeekConfig{APIKey: "ds-test", BaseURL: srv.URL})
	assert.Equal(t, "deepseek-chat", p.DefaultModel())

	resp, err := p.Generate(context.Background(), "PROMPT", "")
	require.NoError(t, err)
	assert.Equal(t, "Hello from DeepSeek", resp.Text)
	assert.Equal(t, "deepseek-chat", resp.Model)
}

func TestProvider_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	p := deepseek.NewProvider(config.DeepSeekConfig{APIKey: "ds-test", BaseURL: srv.URL})
	_, err := p.Generate(context.Background(), "PROMPT", "")
	assert.Error(t, err)
}
