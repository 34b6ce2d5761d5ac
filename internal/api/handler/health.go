package handler

import (
	"net/http"

	"github.com/Rrens/support-assistant/internal/api/response"
	"github.com/Rrens/support-assistant/internal/llm"
	"github.com/Rrens/support-assistant/internal/service"
)

// HealthCheck returns a simple health check response
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{
		"status": "ok",
	})
}

// ListLLMProviders returns registered LLM providers
func ListLLMProviders(router *llm.Router) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]any{
			"providers":        router.GetProvidersInfo(),
			"default_provider": router.DefaultProvider(),
		})
	}
}

// ListTopics returns the quick help topics
func ListTopics(support *service.SupportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string][]string{
			"topics": support.QuickTopics(),
		})
	}
}
