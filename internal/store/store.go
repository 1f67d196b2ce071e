// Package store provides durable keyed storage for personas and
// conversations in a single local JSON document, with a capped
// per-conversation message history.
//
// Every operation reports its outcome as a value: a Status or Result with
// Success, Message and (for lookups) the value itself. Underlying I/O and
// parsing faults are caught at the operation boundary and reported the same
// way, never raised past it.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/personafy/personafy/internal/domain"
	debuglog "github.com/personafy/personafy/internal/log"
)

// MessageLimit bounds the retained history per conversation. The full
// message list is serialized into the chat prompt, so retention trades old
// context for a bounded prompt size.
const MessageLimit = 30

// Status is the outcome of a mutating operation.
type Status struct {
	Success bool
	Message string
}

// Result is the outcome of a lookup. Value is meaningful only when Success
// is true.
type Result[T any] struct {
	Success bool
	Message string
	Value   T
}

// Db owns the canonical copies of persona and conversation records.
//
// All mutations are whole-document read-modify-write cycles serialized by an
// internal mutex, so a single process never loses its own updates. Writers
// in separate processes remain last-writer-wins.
type Db struct {
	path string
	mu   sync.Mutex
}

func New(path string) *Db {
	return &Db{path: path}
}

func (o *Db) Path() string {
	return o.path
}

// AddPersona appends a persona, failing if one with the same id exists.
func (o *Db) AddPersona(persona domain.Persona) Status {
	o.mu.Lock()
	defer o.mu.Unlock()

	doc, err := o.load()
	if err != nil {
		return failure(err)
	}
	if lo.SomeBy(doc.Personas, func(p domain.Persona) bool { return p.ID == persona.ID }) {
		return Status{Message: "persona already exists"}
	}
	doc.Personas = append(doc.Personas, persona)
	if err = o.persist(doc); err != nil {
		return failure(err)
	}
	return Status{Success: true}
}

func (o *Db) GetPersona(personaID string) Result[domain.Persona] {
	o.mu.Lock()
	defer o.mu.Unlock()

	doc, err := o.load()
	if err != nil {
		return lookupFailure[domain.Persona](err)
	}
	persona, ok := lo.Find(doc.Personas, func(p domain.Persona) bool { return p.ID == personaID })
	if !ok {
		return Result[domain.Persona]{Message: fmt.Sprintf("persona %s not found", personaID)}
	}
	return Result[domain.Persona]{Success: true, Value: persona}
}

func (o *Db) GetAllPersona() Result[[]domain.Persona] {
	o.mu.Lock()
	defer o.mu.Unlock()

	doc, err := o.load()
	if err != nil {
		return lookupFailure[[]domain.Persona](err)
	}
	return Result[[]domain.Persona]{Success: true, Value: doc.Personas}
}

// DeletePersona removes the persona and cascades deletion of every
// conversation referencing it; conversations cannot outlive their persona.
func (o *Db) DeletePersona(personaID string) Status {
	o.mu.Lock()
	defer o.mu.Unlock()

	doc, err := o.load()
	if err != nil {
		return failure(err)
	}
	remaining := lo.Filter(doc.Personas, func(p domain.Persona, _ int) bool { return p.ID != personaID })
	if len(remaining) == len(doc.Personas) {
		return Status{Message: "persona not found"}
	}
	doc.Personas = remaining
	doc.Conversations = lo.Filter(doc.Conversations, func(c domain.Conversation, _ int) bool {
		return c.PersonaID != personaID
	})
	if err = o.persist(doc); err != nil {
		return failure(err)
	}
	return Status{Success: true}
}

// AddConversation appends a conversation, failing if one with the same id
// exists. The referenced persona is not checked here; referential integrity
// on insert is the caller's responsibility.
func (o *Db) AddConversation(conversation domain.Conversation) Status {
	o.mu.Lock()
	defer o.mu.Unlock()

	doc, err := o.load()
	if err != nil {
		return failure(err)
	}
	if lo.SomeBy(doc.Conversations, func(c domain.Conversation) bool { return c.ID == conversation.ID }) {
		return Status{Message: "conversation already exists"}
	}
	doc.Conversations = append(doc.Conversations, conversation)
	if err = o.persist(doc); err != nil {
		return failure(err)
	}
	return Status{Success: true}
}

func (o *Db) GetConversation(conversationID string) Result[domain.Conversation] {
	o.mu.Lock()
	defer o.mu.Unlock()

	doc, err := o.load()
	if err != nil {
		return lookupFailure[domain.Conversation](err)
	}
	conversation, ok := lo.Find(doc.Conversations, func(c domain.Conversation) bool { return c.ID == conversationID })
	if !ok {
		return Result[domain.Conversation]{Message: fmt.Sprintf("conversation %s not found", conversationID)}
	}
	return Result[domain.Conversation]{Success: true, Value: conversation}
}

func (o *Db) GetAllConversations() Result[[]domain.Conversation] {
	o.mu.Lock()
	defer o.mu.Unlock()

	doc, err := o.load()
	if err != nil {
		return lookupFailure[[]domain.Conversation](err)
	}
	return Result[[]domain.Conversation]{Success: true, Value: doc.Conversations}
}

func (o *Db) GetMessagesFromConversation(conversationID string) Result[[]domain.Message] {
	ret := o.GetConversation(conversationID)
	if !ret.Success {
		return Result[[]domain.Message]{Message: ret.Message}
	}
	return Result[[]domain.Message]{Success: true, Value: ret.Value.Messages}
}

// AddMessageToConversation appends a message. When the conversation already
// holds MessageLimit messages the oldest one is evicted first; evicted
// messages are dropped, not archived. UpdatedAt is refreshed on every
// insertion.
func (o *Db) AddMessageToConversation(message domain.Message, conversationID string) Status {
	o.mu.Lock()
	defer o.mu.Unlock()

	doc, err := o.load()
	if err != nil {
		return failure(err)
	}
	_, index, ok := lo.FindIndexOf(doc.Conversations, func(c domain.Conversation) bool { return c.ID == conversationID })
	if !ok {
		return Status{Message: "conversation not found"}
	}

	conversation := &doc.Conversations[index]
	if len(conversation.Messages) >= MessageLimit {
		debuglog.LogAt(debuglog.Detailed, "store: evicting oldest message %s from conversation %s\n",
			conversation.Messages[0].ID, conversationID)
		conversation.Messages = conversation.Messages[1:]
	}
	conversation.Messages = append(conversation.Messages, message)
	conversation.UpdatedAt = time.Now().UnixMilli()

	if err = o.persist(doc); err != nil {
		return failure(err)
	}
	return Status{Success: true}
}

type document struct {
	Personas      []domain.Persona      `json:"personas"`
	Conversations []domain.Conversation `json:"conversations"`
}

func (o *Db) load() (ret document, err error) {
	content, err := os.ReadFile(o.path)
	if err != nil {
		if os.IsNotExist(err) {
			return document{}, nil
		}
		return ret, errors.Wrap(err, "reading store document")
	}
	if err = json.Unmarshal(content, &ret); err != nil {
		return ret, errors.Wrap(err, "parsing store document")
	}
	return ret, nil
}

func (o *Db) persist(doc document) (err error) {
	var content []byte
	if content, err = json.MarshalIndent(doc, "", "  "); err != nil {
		return errors.Wrap(err, "encoding store document")
	}
	if err = os.WriteFile(o.path, content, 0o644); err != nil {
		return errors.Wrap(err, "writing store document")
	}
	return nil
}

func failure(err error) Status {
	return Status{Message: err.Error()}
}

func lookupFailure[T any](err error) Result[T] {
	return Result[T]{Message: err.Error()}
}
