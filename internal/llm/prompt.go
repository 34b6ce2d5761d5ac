package llm

import (
	"fmt"
	"strings"

	"github.com/Rrens/support-assistant/internal/domain"
)

// DefaultWindowSize is the number of trailing transcript entries sent on follow-ups
const DefaultWindowSize = 6

// SystemInstruction renders the fixed support-agent preamble
func SystemInstruction(companyName, supportEmail string) string {
	return fmt.Sprintf(`You are a helpful and professional customer support agent for %s. 

Your responsibilities:
- Answer customer questions clearly and concisely
- Be empathetic and understanding
- Provide step-by-step solutions for technical issues
- Offer product information and guidance
- If you cannot resolve an issue, suggest escalating to a human agent
- Always maintain a friendly, professional tone
- Ask clarifying questions when needed

Important guidelines:
- Never make promises you cannot keep
- Admit when you don't know something
- Always prioritize customer satisfaction
- Keep responses concise but thorough
- Use simple language, avoid jargon

If a customer seems frustrated or the issue is complex, recommend contacting %s for personalized assistance.
`, companyName, supportEmail)
}

// BuildPrompt assembles the multi-turn prompt from the last windowSize
// transcript entries, oldest first.
func BuildPrompt(instruction string, transcript []domain.Message, windowSize int) string {
	var b strings.Builder
	b.WriteString(instruction)
	b.WriteString("\n\nConversation history:\n")
	for _, msg := range Window(transcript, windowSize) {
		fmt.Fprintf(&b, "%s: %s\n", msg.Role.PromptLabel(), msg.Content)
	}
	return b.String()
}

// Window returns the trailing size entries of transcript, or all of them
func Window(transcript []domain.Message, size int) []domain.Message {
	if size < 0 {
		size = 0
	}
	if len(transcript) <= size {
		return transcript
	}
	return transcript[len(transcript)-size:]
}

// TopicMessage is the synthetic customer message for a quick topic
func TopicMessage(topic string) string {
	return "I need help with: " + topic
}

// BuildTopicPrompt is the first-contact prompt: the instruction followed by a
// single customer line, without the history section.
func BuildTopicPrompt(instruction, customerMessage string) string {
	return instruction + "\n\nCustomer: " + customerMessage
}

// FallbackMessage replaces the reply when the model call fails
func FallbackMessage(supportEmail string) string {
	return fmt.Sprintf("I apologize, but I'm experiencing technical difficulties. Please try again or contact %s for immediate assistance.", supportEmail)
}
