package core

import (
	"strings"
	"sync"

	"github.com/personafy/personafy/internal/domain"
)

// Accumulator holds the in-flight assistant reply for each conversation.
// Streamed fragments are appended to a mutable draft; once the reply is
// complete the draft is committed into an immutable message and cleared.
type Accumulator struct {
	mu     sync.Mutex
	drafts map[string]*strings.Builder
}

func NewAccumulator() *Accumulator {
	return &Accumulator{drafts: make(map[string]*strings.Builder)}
}

// Append adds a fragment to the draft reply of the given conversation,
// creating the draft if none exists yet.
func (a *Accumulator) Append(conversationID, fragment string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	draft, ok := a.drafts[conversationID]
	if !ok {
		draft = &strings.Builder{}
		a.drafts[conversationID] = draft
	}
	draft.WriteString(fragment)
}

// Text returns the draft accumulated so far for the given conversation.
func (a *Accumulator) Text(conversationID string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if draft, ok := a.drafts[conversationID]; ok {
		return draft.String()
	}
	return ""
}

// Commit finalizes the draft into an assistant message and clears it.
func (a *Accumulator) Commit(conversationID string) (message domain.Message) {
	a.mu.Lock()
	defer a.mu.Unlock()
	text := ""
	if draft, ok := a.drafts[conversationID]; ok {
		text = draft.String()
	}
	delete(a.drafts, conversationID)
	return domain.NewMessage(domain.SenderAssistant, text)
}

// Discard drops the draft without producing a message, used when a
// streamed reply fails partway through.
func (a *Accumulator) Discard(conversationID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.drafts, conversationID)
}
