package domain

import (
	"fmt"
	"strings"
)

const exportHeaderPrefix = "Support Chat - "

// ExportText renders the transcript as the plain-text download
func (s *Session) ExportText() string {
	var b strings.Builder
	b.WriteString(exportHeaderPrefix)
	b.WriteString(s.ID)
	b.WriteString("\n\n")
	for _, msg := range s.Transcript {
		fmt.Fprintf(&b, "%s: %s\n\n", msg.Role.ExportLabel(), msg.Content)
	}
	return b.String()
}

// ExportFilename is the name offered for the downloaded transcript
func (s *Session) ExportFilename() string {
	return fmt.Sprintf("support_chat_%s.txt", s.ID)
}
