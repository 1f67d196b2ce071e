package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/personafy/personafy/internal/domain"
)

// GenerateTextResult is the uniform outcome of a text generation. Text is
// meaningful only when Success is true; Message only when it is false.
type GenerateTextResult struct {
	Success bool
	Message string
	Text    string
}

// GenerateObjectResult is the uniform outcome of a structured generation.
// The gateway enforces no schema; callers validate Object's shape.
type GenerateObjectResult struct {
	Success bool
	Message string
	Object  map[string]any
}

// Model is an immutable handle carrying validated settings and a vendor.
// No error escapes its operations as a fault; every failure, including
// missing credentials and backend errors, becomes a failure result.
type Model struct {
	settings Settings
	vendor   Vendor
}

// NewModel wraps a vendor with settings without consulting the capability
// table. CreateModel is the validated entry point; NewModel exists for
// wiring custom vendors.
func NewModel(settings Settings, vendor Vendor) *Model {
	return &Model{settings: settings, vendor: vendor}
}

func (o *Model) Settings() Settings {
	return o.settings
}

// GenerateText invokes the backend with prompt. When onText is non-nil the
// backend streams partial fragments and each one is delivered to onText in
// arrival order before this call returns; the returned Text is always the
// concatenation of all delivered fragments. Cancelling ctx aborts an
// in-flight stream and yields a failure result.
func (o *Model) GenerateText(ctx context.Context, prompt string, onText func(string)) GenerateTextResult {
	opts := o.chatOptions()

	if onText == nil {
		text, err := o.vendor.Send(ctx, prompt, opts)
		if err != nil {
			return GenerateTextResult{Message: err.Error()}
		}
		return GenerateTextResult{Success: true, Text: text}
	}

	channel := make(chan string)
	errChan := make(chan error, 1)
	go func() {
		if streamErr := o.vendor.SendStream(ctx, prompt, opts, channel); streamErr != nil {
			errChan <- streamErr
		}
		close(errChan)
	}()

	var text strings.Builder
	for fragment := range channel {
		text.WriteString(fragment)
		onText(fragment)
	}

	if streamErr, ok := <-errChan; ok && streamErr != nil {
		return GenerateTextResult{Message: streamErr.Error()}
	}
	return GenerateTextResult{Success: true, Text: text.String()}
}

// GenerateObject asks the backend for well-formed structured data and
// returns it decoded. The object's shape is whatever the model produced.
func (o *Model) GenerateObject(ctx context.Context, prompt string) GenerateObjectResult {
	opts := o.chatOptions()
	opts.JSONOutput = true

	raw, err := o.vendor.Send(ctx, prompt, opts)
	if err != nil {
		return GenerateObjectResult{Message: err.Error()}
	}

	object := map[string]any{}
	if err = json.Unmarshal([]byte(stripFences(raw)), &object); err != nil {
		return GenerateObjectResult{Message: fmt.Sprintf("decoding structured response: %v", err)}
	}
	return GenerateObjectResult{Success: true, Object: object}
}

func (o *Model) chatOptions() *domain.ChatOptions {
	return &domain.ChatOptions{
		Model:            o.settings.Name,
		Temperature:      o.settings.Temperature,
		MaxOutputTokens:  o.settings.MaxOutputTokens,
		PresencePenalty:  o.settings.PresencePenalty,
		FrequencyPenalty: o.settings.FrequencyPenalty,
	}
}

// stripFences removes a surrounding markdown code fence, which some models
// emit around JSON despite instructions not to.
func stripFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
