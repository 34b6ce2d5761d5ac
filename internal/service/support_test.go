package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Rrens/support-assistant/internal/config"
	"github.com/Rrens/support-assistant/internal/domain"
	"github.com/Rrens/support-assistant/internal/llm"
)

var sessionStart = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newTestService(provider llm.Provider, email string) *SupportService {
	router := llm.NewRouter("mock")
	if provider != nil {
		router.RegisterProvider(provider)
	}
	return NewSupportService(router, SupportOptions{
		CompanyName:  "TechCorp",
		SupportEmail: email,
		WindowSize:   6,
		QuickTopics:  config.DefaultQuickTopics,
	})
}

func TestSupportService_SendMessage(t *testing.T) {
	provider := newMockProvider(true)
	svc := newTestService(provider, "support@company.com")
	session := domain.NewSession(sessionStart)

	wantPrompt := svc.Instruction() + "\n\nConversation history:\nCustomer: Hello\n"
	provider.On("Generate", mock.Anything, wantPrompt, "").
		Return(&llm.Response{Text: "Hi there!", Model: "mock-1"}, nil).Once()

	reply := svc.SendMessage(context.Background(), session, "Hello")

	assert.Equal(t, []domain.Message{
		{Role: domain.RoleUser, Content: "Hello"},
		{Role: domain.RoleAssistant, Content: "Hi there!"},
	}, session.Transcript)
	assert.False(t, reply.Fallback)
	assert.Equal(t, "mock", reply.Provider)
	assert.Equal(t, "mock-1", reply.Model)
	provider.AssertExpectations(t)
}

func TestSupportService_SendMessageFallback(t *testing.T) {
	provider := newMockProvider(true)
	svc := newTestService(provider, "help@x.com")
	session := domain.NewSession(sessionStart)

	provider.On("Generate", mock.Anything, mock.Anything, "").
		Return(nil, errors.New("quota exceeded")).Once()

	reply := svc.SendMessage(context.Background(), session, "Hello")

	require.Len(t, session.Transcript, 2)
	want := "I apologize, but I'm experiencing technical difficulties. Please try again or contact help@x.com for immediate assistance."
	assert.Equal(t, domain.Message{Role: domain.RoleAssistant, Content: want}, session.Transcript[1])
	assert.True(t, reply.Fallback)
	assert.Equal(t, want, reply.Message.Content)
	provider.AssertNumberOfCalls(t, "Generate", 1)
}

func TestSupportService_SendMessageUnconfigured(t *testing.T) {
	t.Run("missing credential", func(t *testing.T) {
		provider := newMockProvider(false)
		svc := newTestService(provider, "help@x.com")
		session := domain.NewSession(sessionStart)

		for i := 0; i < 2; i++ {
			reply := svc.SendMessage(context.Background(), session, "Hello")
			assert.True(t, reply.Fallback)
		}

		assert.Len(t, session.Transcript, 4)
		provider.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no provider registered", func(t *testing.T) {
		svc := newTestService(nil, "help@x.com")
		session := domain.NewSession(sessionStart)

		reply := svc.SendMessage(context.Background(), session, "Hello")
		assert.True(t, reply.Fallback)
		assert.Equal(t, llm.FallbackMessage("help@x.com"), session.Transcript[1].Content)
	})
}

func TestSupportService_SendMessageWindow(t *testing.T) {
	provider := newMockProvider(true)
	svc := newTestService(provider, "support@company.com")
	session := domain.NewSession(sessionStart)
	for i := 0; i < 9; i++ {
		role := domain.RoleUser
		if i%2 == 1 {
			role = domain.RoleAssistant
		}
		session.Append(role, fmt.Sprintf("m%d", i))
	}

	var prompt string
	provider.On("Generate", mock.Anything, mock.Anything, "").
		Run(func(args mock.Arguments) { prompt = args.String(1) }).
		Return(&llm.Response{Text: "ok"}, nil).Once()

	svc.SendMessage(context.Background(), session, "m9")

	want := svc.Instruction() + "\n\nConversation history:\n" +
		"Customer: m4\nSupport Agent: m5\nCustomer: m6\nSupport Agent: m7\nCustomer: m8\nCustomer: m9\n"
	assert.Equal(t, want, prompt)
	assert.Len(t, session.Transcript, 11)
}

func TestSupportService_StartTopic(t *testing.T) {
	provider := newMockProvider(true)
	svc := newTestService(provider, "support@company.com")
	session := domain.NewSession(sessionStart)

	wantPrompt := svc.Instruction() + "\n\nCustomer: I need help with: Billing Questions"
	provider.On("Generate", mock.Anything, wantPrompt, "").
		Return(&llm.Response{Text: "Sure, what about billing?"}, nil).Once()

	reply, err := svc.StartTopic(context.Background(), session, "Billing Questions")
	require.NoError(t, err)

	require.Len(t, session.Transcript, 2)
	assert.Equal(t, domain.Message{Role: domain.RoleUser, Content: "I need help with: Billing Questions"}, session.Transcript[0])
	assert.Equal(t, "Sure, what about billing?", reply.Message.Content)
	provider.AssertExpectations(t)
}

func TestSupportService_StartTopicErrors(t *testing.T) {
	t.Run("unknown topic", func(t *testing.T) {
		provider := newMockProvider(true)
		svc := newTestService(provider, "support@company.com")
		session := domain.NewSession(sessionStart)

		_, err := svc.StartTopic(context.Background(), session, "Crypto Mining")

		assert.ErrorIs(t, err, domain.ErrUnknownTopic)
		assert.Empty(t, session.Transcript)
	})

	t.Run("model failure", func(t *testing.T) {
		provider := newMockProvider(true)
		svc := newTestService(provider, "help@x.com")
		session := domain.NewSession(sessionStart)
		provider.On("Generate", mock.Anything, mock.Anything, "").Return(nil, context.DeadlineExceeded).Once()

		reply, err := svc.StartTopic(context.Background(), session, "Technical Support")

		require.NoError(t, err)
		assert.True(t, reply.Fallback)
		assert.Equal(t, llm.FallbackMessage("help@x.com"), session.Transcript[1].Content)
	})
}

func TestSupportService_RequestCompletion(t *testing.T) {
	provider := newMockProvider(true)
	svc := newTestService(provider, "support@company.com")
	cause := errors.New("connection reset")
	provider.On("Generate", mock.Anything, "p", "").Return(nil, cause).Once()

	_, err := svc.RequestCompletion(context.Background(), "p")

	var cerr *domain.CompletionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "mock", cerr.Provider)
	assert.ErrorIs(t, err, cause)
}
