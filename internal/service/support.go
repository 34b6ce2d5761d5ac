package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Rrens/support-assistant/internal/domain"
	"github.com/Rrens/support-assistant/internal/llm"
)

// SupportOptions configures the support conversation
type SupportOptions struct {
	CompanyName  string
	SupportEmail string
	WindowSize   int
	QuickTopics  []string

	// Provider and Model select the model client; empty means router default
	// and the provider's default model.
	Provider string
	Model    string
}

// Reply describes the assistant message appended for one submission
type Reply struct {
	Message   domain.Message `json:"message"`
	Fallback  bool           `json:"fallback"`
	Provider  string         `json:"provider,omitempty"`
	Model     string         `json:"model,omitempty"`
	LatencyMs int64          `json:"latency_ms,omitempty"`
}

// SupportService turns customer input into model prompts and transcript entries
type SupportService struct {
	llmRouter    *llm.Router
	provider     string
	model        string
	instruction  string
	supportEmail string
	windowSize   int
	topics       []string
}

// NewSupportService creates a new support service
func NewSupportService(llmRouter *llm.Router, opts SupportOptions) *SupportService {
	windowSize := opts.WindowSize
	if windowSize <= 0 {
		windowSize = llm.DefaultWindowSize
	}
	return &SupportService{
		llmRouter:    llmRouter,
		provider:     opts.Provider,
		model:        opts.Model,
		instruction:  llm.SystemInstruction(opts.CompanyName, opts.SupportEmail),
		supportEmail: opts.SupportEmail,
		windowSize:   windowSize,
		topics:       opts.QuickTopics,
	}
}

// Instruction returns the system instruction sent ahead of every prompt
func (s *SupportService) Instruction() string {
	return s.instruction
}

// QuickTopics returns the topics accepted by StartTopic
func (s *SupportService) QuickTopics() []string {
	out := make([]string, len(s.topics))
	copy(out, s.topics)
	return out
}

// BuildPrompt assembles the windowed multi-turn prompt for transcript
func (s *SupportService) BuildPrompt(transcript []domain.Message) string {
	return llm.BuildPrompt(s.instruction, transcript, s.windowSize)
}

// RequestCompletion makes exactly one model call. Any failure, including a
// missing credential, is returned as *domain.CompletionError.
func (s *SupportService) RequestCompletion(ctx context.Context, prompt string) (*llm.Response, error) {
	name := s.providerName()
	provider, err := s.llmRouter.GetProvider(name)
	if err != nil {
		return nil, &domain.CompletionError{Provider: name, Err: err}
	}

	resp, err := provider.Generate(ctx, prompt, s.model)
	if err != nil {
		return nil, &domain.CompletionError{Provider: name, Err: err}
	}
	return resp, nil
}

// SendMessage appends the customer message, asks the model with the recent
// window of the transcript and appends the reply. It never fails; a failed
// call appends the fallback text instead.
func (s *SupportService) SendMessage(ctx context.Context, session *domain.Session, content string) Reply {
	session.Append(domain.RoleUser, content)
	return s.complete(ctx, session, s.BuildPrompt(session.Transcript))
}

// StartTopic opens a conversation from a quick topic. The prompt carries only
// the instruction and the synthetic customer line, never prior history.
func (s *SupportService) StartTopic(ctx context.Context, session *domain.Session, topic string) (Reply, error) {
	if !s.knownTopic(topic) {
		return Reply{}, domain.ErrUnknownTopic
	}

	msg := session.Append(domain.RoleUser, llm.TopicMessage(topic))
	return s.complete(ctx, session, llm.BuildTopicPrompt(s.instruction, msg.Content)), nil
}

func (s *SupportService) complete(ctx context.Context, session *domain.Session, prompt string) Reply {
	logger := log.With().Str("session_id", session.ID).Logger()

	resp, err := s.RequestCompletion(ctx, prompt)
	if err != nil {
		event := logger.Warn().Err(err)
		var cerr *domain.CompletionError
		if errors.As(err, &cerr) {
			event = event.Str("provider", cerr.Provider)
		}
		event.Bool("configuration", errors.Is(err, domain.ErrProviderNotConfigured)).
			Msg("Completion failed, replying with fallback")

		msg := session.Append(domain.RoleAssistant, llm.FallbackMessage(s.supportEmail))
		return Reply{Message: msg, Fallback: true}
	}

	logger.Info().
		Str("model", resp.Model).
		Int64("latency_ms", resp.LatencyMs).
		Int("tokens_used", resp.TokensUsed).
		Int("messages", session.MessageCount()+1).
		Msg("Completion received")

	msg := session.Append(domain.RoleAssistant, resp.Text)
	return Reply{
		Message:   msg,
		Provider:  s.providerName(),
		Model:     resp.Model,
		LatencyMs: resp.LatencyMs,
	}
}

func (s *SupportService) providerName() string {
	if s.provider != "" {
		return s.provider
	}
	return s.llmRouter.DefaultProvider()
}

func (s *SupportService) knownTopic(topic string) bool {
	for _, t := range s.topics {
		if t == topic {
			return true
		}
	}
	return false
}
