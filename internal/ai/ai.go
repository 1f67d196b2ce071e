// Package ai is a uniform gateway over hosted text-generation backends.
// It validates provider/model pairs against a static capability table and
// exposes free-text generation (optionally streamed) and schema-less
// structured-object generation with uniform success/failure results.
package ai

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/personafy/personafy/internal/domain"
)

// Provider identifies a supported backend family.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"
	ProviderOllama    Provider = "ollama"
	ProviderDryRun    Provider = "dryrun"
)

// catalog is the static per-provider allow-list of model identifiers.
// Adding a provider means extending this table and vendorFor; the operation
// contracts do not change.
var catalog = map[Provider][]string{
	ProviderOpenAI:    {"gpt-4.1", "gpt-4o", "gpt-4.5"},
	ProviderAnthropic: {"claude-sonnet-4-0", "claude-3-7-sonnet-latest", "claude-3-5-haiku-latest"},
	ProviderGemini:    {"gemini-2.5-flash", "gemini-2.5-pro", "gemini-2.0-flash-001"},
	ProviderOllama:    {"llama3.2", "llama3.1", "mistral", "qwen2.5"},
	ProviderDryRun:    {"dry-run-model"},
}

// Providers lists the supported backend families in a stable order.
func Providers() []Provider {
	return []Provider{ProviderOpenAI, ProviderAnthropic, ProviderGemini, ProviderOllama}
}

func IsValidProvider(value string) bool {
	_, ok := catalog[Provider(value)]
	return ok
}

// ModelsFor returns the allow-listed model names for a provider, nil for an
// unknown one.
func ModelsFor(provider Provider) []string {
	return catalog[provider]
}

// Settings configure one model invocation. Constructed per invocation and
// never mutated afterwards.
type Settings struct {
	Provider         Provider
	Name             string
	Temperature      float64
	MaxInputTokens   int
	MaxOutputTokens  int
	PresencePenalty  float64
	FrequencyPenalty float64
}

// DefaultSettings returns the stock generation parameters for a validated
// provider/model pair.
func DefaultSettings(provider Provider, name string) Settings {
	return Settings{
		Provider:         provider,
		Name:             name,
		Temperature:      0.7,
		MaxInputTokens:   200_000,
		MaxOutputTokens:  8_000,
		PresencePenalty:  0.01,
		FrequencyPenalty: 0.01,
	}
}

// Vendor is the raw backend contract implemented per provider. SendStream
// delivers fragments on channel in production order and closes the channel
// when the stream ends, error or not.
type Vendor interface {
	GetName() string
	Send(ctx context.Context, prompt string, opts *domain.ChatOptions) (string, error)
	SendStream(ctx context.Context, prompt string, opts *domain.ChatOptions, channel chan string) error
}

// CreateModelResult reports model construction. Model is non-nil exactly
// when Success is true.
type CreateModelResult struct {
	Success bool
	Message string
	Model   *Model
}

// CreateModel validates settings against the capability table and returns a
// model handle. Validation happens here so misconfiguration fails before
// any network cost is incurred.
func CreateModel(settings Settings) CreateModelResult {
	models, ok := catalog[settings.Provider]
	if !ok {
		return CreateModelResult{Message: fmt.Sprintf("unsupported provider: %s", settings.Provider)}
	}
	if !lo.Contains(models, settings.Name) {
		return CreateModelResult{Message: fmt.Sprintf(
			"unsupported model name %s for provider %s, currently supported models: %v",
			settings.Name, settings.Provider, models)}
	}
	return CreateModelResult{Success: true, Model: NewModel(settings, vendorFor(settings.Provider))}
}
