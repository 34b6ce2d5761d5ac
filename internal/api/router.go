package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/Rrens/support-assistant/internal/api/handler"
	customMiddleware "github.com/Rrens/support-assistant/internal/api/middleware"
	"github.com/Rrens/support-assistant/internal/config"
	"github.com/Rrens/support-assistant/internal/domain"
	"github.com/Rrens/support-assistant/internal/llm"
	"github.com/Rrens/support-assistant/internal/llm/anthropic"
	"github.com/Rrens/support-assistant/internal/llm/deepseek"
	"github.com/Rrens/support-assistant/internal/llm/gemini"
	"github.com/Rrens/support-assistant/internal/llm/ollama"
	"github.com/Rrens/support-assistant/internal/llm/openai"
	"github.com/Rrens/support-assistant/internal/service"
)

// NewLLMRouter registers every model client the configuration enables
func NewLLMRouter(cfg config.LLMConfig) *llm.Router {
	llmRouter := llm.NewRouter(cfg.DefaultProvider)

	log.Info().Msgf("Initializing LLM providers. Default: %s", cfg.DefaultProvider)

	// Gemini is always registered so a missing key surfaces per request
	// as the fallback reply instead of failing startup.
	if cfg.Gemini.APIKey == "" {
		log.Warn().Msg("Gemini API key is empty; replies will use the fallback message")
	}
	llmRouter.RegisterProvider(gemini.NewProvider(cfg.Gemini))

	if cfg.Ollama.Host != "" {
		log.Info().Str("host", cfg.Ollama.Host).Msg("Registering Ollama provider")
		llmRouter.RegisterProvider(ollama.NewProvider(cfg.Ollama))
	}
	if cfg.OpenAI.APIKey != "" {
		llmRouter.RegisterProvider(openai.NewProvider(cfg.OpenAI))
	}
	if cfg.Anthropic.APIKey != "" {
		llmRouter.RegisterProvider(anthropic.NewProvider(cfg.Anthropic))
	}
	if cfg.DeepSeek.APIKey != "" {
		llmRouter.RegisterProvider(deepseek.NewProvider(cfg.DeepSeek))
	}

	return llmRouter
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, sessions domain.SessionRepository, llmRouter *llm.Router) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Request-ID", "Content-Disposition"},
		MaxAge:         300,
	}))

	supportService := service.NewSupportService(llmRouter, service.SupportOptions{
		CompanyName:  cfg.Support.CompanyName,
		SupportEmail: cfg.Support.SupportEmail,
		WindowSize:   cfg.Support.WindowSize,
		QuickTopics:  cfg.Support.QuickTopics,
		Provider:     cfg.LLM.DefaultProvider,
	})

	sessionHandler := handler.NewSessionHandler(sessions, supportService, handler.ViewOptions{
		Support: handler.SupportInfo{
			CompanyName:  cfg.Support.CompanyName,
			SupportEmail: cfg.Support.SupportEmail,
			Hours:        cfg.Support.Hours,
		},
		RatingPromptAfter: cfg.Support.RatingPromptAfter,
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handler.HealthCheck)
		r.Get("/llm-providers", handler.ListLLMProviders(llmRouter))
		r.Get("/topics", handler.ListTopics(supportService))

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.Create)

			r.Route("/{sessionHandle}", func(r chi.Router) {
				r.Use(customMiddleware.SessionContext)

				r.Get("/", sessionHandler.Get)
				r.Delete("/", sessionHandler.Delete)
				r.Post("/messages", sessionHandler.SendMessage)
				r.Post("/topics", sessionHandler.StartTopic)
				r.Post("/reset", sessionHandler.Reset)
				r.Post("/rating", sessionHandler.Rate)
				r.Get("/export", sessionHandler.Export)
			})
		})
	})

	return r
}
