package ai

import (
	"github.com/personafy/personafy/internal/ai/anthropic"
	"github.com/personafy/personafy/internal/ai/dryrun"
	"github.com/personafy/personafy/internal/ai/gemini"
	"github.com/personafy/personafy/internal/ai/ollama"
	"github.com/personafy/personafy/internal/ai/openai"
)

// vendorFor maps a validated provider to its backend client. Clients defer
// credential checks to the first call, so construction is free.
func vendorFor(provider Provider) Vendor {
	switch provider {
	case ProviderOpenAI:
		return openai.NewClient()
	case ProviderAnthropic:
		return anthropic.NewClient()
	case ProviderGemini:
		return gemini.NewClient()
	case ProviderOllama:
		return ollama.NewClient()
	default:
		return dryrun.NewClient()
	}
}
