package core

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/personafy/personafy/internal/ai"
	"github.com/personafy/personafy/internal/cache"
	"github.com/personafy/personafy/internal/domain"
	debuglog "github.com/personafy/personafy/internal/log"
	"github.com/personafy/personafy/internal/store"
	"github.com/personafy/personafy/internal/template"
	"github.com/personafy/personafy/internal/twitter"
)

// Chatter orchestrates the persona lifecycle: synthesizing personas from
// scraped accounts, driving chat turns against the model and generating
// standalone posts.
type Chatter struct {
	db        *store.Db
	artifacts *cache.Cache
	model     *ai.Model
	drafts    *Accumulator
}

func NewChatter(db *store.Db, artifacts *cache.Cache, model *ai.Model) *Chatter {
	return &Chatter{
		db:        db,
		artifacts: artifacts,
		model:     model,
		drafts:    NewAccumulator(),
	}
}

// personaArtifact is the cached synthesis result, keyed by handle. It is
// fresh only while the account's newest tweet id matches.
type personaArtifact struct {
	Handle      string `json:"twitterHandle"`
	LastTweetID string `json:"lastTweetId"`
	Data        string `json:"data"`
}

// SynthesizePersona derives a persona document for the account, reusing
// the cached artifact when it is still fresh. The returned persona is not
// yet stored; callers decide whether to persist it.
func (o *Chatter) SynthesizePersona(ctx context.Context, account *twitter.Account, noCache bool) (ret *domain.Persona, err error) {
	newestTweetID := account.NewestTweetID()

	if !noCache {
		if data, ok := o.cachedPersonaData(account.Username, newestTweetID); ok {
			debuglog.Log("Using cached persona for %s\n", account.Username)
			persona := domain.NewPersona(account.Username, account.Profile.Avatar, &newestTweetID, data)
			return &persona, nil
		}
	}

	profile, err := json.Marshal(account)
	if err != nil {
		return nil, errors.Wrap(err, "encoding account for persona synthesis")
	}

	prompt := template.New(createPersonaTemplate).Compile(template.Data{"profile": string(profile)})
	result := o.model.GenerateText(ctx, prompt, nil)
	if !result.Success {
		return nil, errors.Errorf("synthesizing persona: %s", result.Message)
	}

	artifact := personaArtifact{Handle: account.Username, LastTweetID: newestTweetID, Data: result.Text}
	if encoded, marshalErr := json.Marshal(artifact); marshalErr == nil {
		o.artifacts.Save(account.Username, string(encoded))
	}

	persona := domain.NewPersona(account.Username, account.Profile.Avatar, &newestTweetID, result.Text)
	return &persona, nil
}

func (o *Chatter) cachedPersonaData(handle, newestTweetID string) (data string, ok bool) {
	raw, found := o.artifacts.Get(handle)
	if !found {
		return "", false
	}
	var artifact personaArtifact
	if err := json.Unmarshal([]byte(raw), &artifact); err != nil {
		debuglog.LogAt(debuglog.Detailed, "Discarding unreadable persona artifact for %s: %v\n", handle, err)
		return "", false
	}
	if artifact.Handle != handle || artifact.LastTweetID != newestTweetID {
		return "", false
	}
	return artifact.Data, true
}

// SendMessage appends the user's message to the conversation, asks the
// model to answer in persona, and records the reply as a new assistant
// message. When onText is non-nil the reply is streamed fragment by
// fragment while a draft accumulates; the draft is committed only once
// the reply completed.
func (o *Chatter) SendMessage(ctx context.Context, conversationID, text string, onText func(string)) (ret *domain.Message, err error) {
	userMessage := domain.NewMessage(domain.SenderUser, text)
	if status := o.db.AddMessageToConversation(userMessage, conversationID); !status.Success {
		return nil, errors.New(status.Message)
	}

	conversation := o.db.GetConversation(conversationID)
	if !conversation.Success {
		return nil, errors.New(conversation.Message)
	}
	persona := o.db.GetPersona(conversation.Value.PersonaID)
	if !persona.Success {
		return nil, errors.New(persona.Message)
	}

	prompt := template.New(chatTemplate).Compile(template.Data{
		"persona":      persona.Value.Data,
		"conversation": FormatConversation(conversation.Value.Messages),
	})

	var reply domain.Message
	if onText != nil {
		result := o.model.GenerateText(ctx, prompt, func(fragment string) {
			o.drafts.Append(conversationID, fragment)
			onText(fragment)
		})
		if !result.Success {
			o.drafts.Discard(conversationID)
			return nil, errors.Errorf("generating reply: %s", result.Message)
		}
		reply = o.drafts.Commit(conversationID)
	} else {
		result := o.model.GenerateText(ctx, prompt, nil)
		if !result.Success {
			return nil, errors.Errorf("generating reply: %s", result.Message)
		}
		reply = domain.NewMessage(domain.SenderAssistant, result.Text)
	}

	if status := o.db.AddMessageToConversation(reply, conversationID); !status.Success {
		return nil, errors.New(status.Message)
	}
	return &reply, nil
}

// GeneratePost analyzes the account's tweets into a post-generator
// template, then writes one new tweet from it. The analysis step uses
// structured output; a response without the expected template key is
// rejected here.
func (o *Chatter) GeneratePost(ctx context.Context, account *twitter.Account, onText func(string)) (ret string, err error) {
	profile, err := json.Marshal(account)
	if err != nil {
		return "", errors.Wrap(err, "encoding account for post generation")
	}

	analysisPrompt := template.New(postAnalysisTemplate).Compile(template.Data{"profile": string(profile)})
	analysis := o.model.GenerateObject(ctx, analysisPrompt)
	if !analysis.Success {
		return "", errors.Errorf("analyzing account: %s", analysis.Message)
	}
	if reason, found := analysis.Object["error"]; found {
		return "", errors.Errorf("analyzing account: %v", reason)
	}
	generator, found := analysis.Object["template"]
	if !found {
		return "", errors.New("analyzing account: response is missing the post generator template")
	}

	encodedGenerator, err := json.Marshal(generator)
	if err != nil {
		return "", errors.Wrap(err, "encoding post generator template")
	}

	postPrompt := template.New(generatePostTemplate).Compile(template.Data{
		"profile":  string(profile),
		"template": string(encodedGenerator),
	})
	result := o.model.GenerateText(ctx, postPrompt, onText)
	if !result.Success {
		return "", errors.Errorf("generating post: %s", result.Message)
	}
	return result.Text, nil
}
