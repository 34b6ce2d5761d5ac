package llm_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Rrens/support-assistant/internal/domain"
	"github.com/Rrens/support-assistant/internal/llm"
)

func transcript(n int) []domain.Message {
	msgs := make([]domain.Message, 0, n)
	for i := 0; i < n; i++ {
		role := domain.RoleUser
		if i%2 == 1 {
			role = domain.RoleAssistant
		}
		msgs = append(msgs, domain.Message{Role: role, Content: fmt.Sprintf("m%d", i)})
	}
	return msgs
}

func TestBuildPrompt_Format(t *testing.T) {
	msgs := []domain.Message{
		{Role: domain.RoleUser, Content: "Hello"},
		{Role: domain.RoleAssistant, Content: "Hi there!"},
		{Role: domain.RoleUser, Content: "My order is late"},
	}

	got := llm.BuildPrompt("SYS", msgs, 6)

	want := "SYS\n\nConversation history:\n" +
		"Customer: Hello\n" +
		"Support Agent: Hi there!\n" +
		"Customer: My order is late\n"
	assert.Equal(t, want, got)
}

func TestBuildPrompt_Window(t *testing.T) {
	msgs := transcript(10)

	got := llm.BuildPrompt("SYS", msgs, 6)

	for i := 0; i < 4; i++ {
		assert.NotContains(t, got, fmt.Sprintf(": m%d\n", i))
	}
	var lines []string
	for i := 4; i < 10; i++ {
		lines = append(lines, fmt.Sprintf("%s: m%d", msgs[i].Role.PromptLabel(), i))
	}
	assert.Equal(t, "SYS\n\nConversation history:\n"+strings.Join(lines, "\n")+"\n", got)
}

func TestBuildPrompt_ShortTranscript(t *testing.T) {
	msgs := transcript(3)

	got := llm.BuildPrompt("SYS", msgs, 6)

	for i := 0; i < 3; i++ {
		assert.Contains(t, got, fmt.Sprintf(": m%d\n", i))
	}
	assert.Equal(t, 3, strings.Count(got, "\n")-3)
}

func TestBuildPrompt_Empty(t *testing.T) {
	assert.Equal(t, "SYS\n\nConversation history:\n", llm.BuildPrompt("SYS", nil, 6))
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		size  int
		first string
		count int
	}{
		{"longer than window", 10, 6, "m4", 6},
		{"exact window", 6, 6, "m0", 6},
		{"shorter than window", 2, 6, "m0", 2},
		{"zero window", 4, 0, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := llm.Window(transcript(tt.n), tt.size)
			assert.Len(t, got, tt.count)
			if tt.count > 0 {
				assert.Equal(t, tt.first, got[0].Content)
			}
		})
	}
}

func TestSystemInstruction(t *testing.T) {
	got := llm.SystemInstruction("Acme", "help@acme.io")

	assert.True(t, strings.HasPrefix(got, "You are a helpful and professional customer support agent for Acme."))
	assert.Contains(t, got, "recommend contacting help@acme.io for personalized assistance.")
}

func TestBuildTopicPrompt(t *testing.T) {
	msg := llm.TopicMessage("Billing Questions")

	assert.Equal(t, "I need help with: Billing Questions", msg)
	assert.Equal(t, "SYS\n\nCustomer: I need help with: Billing Questions", llm.BuildTopicPrompt("SYS", msg))
}

func TestFallbackMessage(t *testing.T) {
	assert.Equal(t,
		"I apologize, but I'm experiencing technical difficulties. Please try again or contact help@x.com for immediate assistance.",
		llm.FallbackMessage("help@x.com"),
	)
}
