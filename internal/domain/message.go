package domain

import "fmt"

// MessageRole represents the sender of a message
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Valid reports whether r is one of the two transcript roles
func (r MessageRole) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// ExportLabel is the speaker label used in the downloadable transcript
func (r MessageRole) ExportLabel() string {
	if r == RoleUser {
		return "Customer"
	}
	return "Agent"
}

// PromptLabel is the speaker label used when the transcript is sent to the model
func (r MessageRole) PromptLabel() string {
	if r == RoleUser {
		return "Customer"
	}
	return "Support Agent"
}

// Message is a single transcript entry. It is never modified after creation.
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// NewMessage builds a message, panicking on an unknown role
func NewMessage(role MessageRole, content string) Message {
	if !role.Valid() {
		panic(fmt.Sprintf("domain: invalid message role %q", role))
	}
	return Message{Role: role, Content: content}
}
