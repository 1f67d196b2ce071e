package core

import (
	"fmt"
	"strings"

	"github.com/personafy/personafy/internal/domain"
)

// FormatConversation renders messages into the plain-text transcript fed
// to the chat prompt, one "(timestamp)[sender] text" line per message.
func FormatConversation(messages []domain.Message) string {
	var transcript strings.Builder
	for _, message := range messages {
		fmt.Fprintf(&transcript, "(%d)[%s] %s\n", message.Timestamp, message.Sender, message.Text)
	}
	return transcript.String()
}
