package domain

import (
	"time"

	"github.com/google/uuid"
)

// Sender identifies which side of a conversation authored a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Persona is the LLM-synthesized description of an account's voice, style
// and topics. It is immutable once stored; replacing one means deleting it
// and synthesizing a new one.
type Persona struct {
	ID          string  `json:"id"`
	Handle      string  `json:"twitterHandle"`
	AvatarURL   string  `json:"twitterImgUrl"`
	LastTweetID *string `json:"lastTweetId"`
	Data        string  `json:"data"`
}

// Conversation is an ordered, bounded log of message exchanges tied to one
// persona. Timestamps are epoch milliseconds.
type Conversation struct {
	ID        string    `json:"id"`
	CreatedAt int64     `json:"createdAt"`
	UpdatedAt int64     `json:"updatedAt"`
	Messages  []Message `json:"messages"`
	PersonaID string    `json:"personaId"`
}

// Message is immutable once stored. The only sanctioned accumulation of a
// message happens before storage, in core's streaming draft.
type Message struct {
	ID        string `json:"id"`
	Sender    Sender `json:"sender"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

func NewPersona(handle, avatarURL string, lastTweetID *string, data string) Persona {
	return Persona{
		ID:          uuid.NewString(),
		Handle:      handle,
		AvatarURL:   avatarURL,
		LastTweetID: lastTweetID,
		Data:        data,
	}
}

func NewConversation(personaID string) Conversation {
	now := time.Now().UnixMilli()
	return Conversation{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  []Message{},
		PersonaID: personaID,
	}
}

func NewMessage(sender Sender, text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Sender:    sender,
		Text:      text,
		Timestamp: time.Now().UnixMilli(),
	}
}
