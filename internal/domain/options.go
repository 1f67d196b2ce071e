package domain

// ChatOptions are the per-invocation parameters handed to an AI vendor.
// They are derived from validated model settings by the gateway; vendors
// never see unvalidated provider/model pairs.
type ChatOptions struct {
	Model            string
	Temperature      float64
	MaxOutputTokens  int
	PresencePenalty  float64
	FrequencyPenalty float64

	// JSONOutput asks the backend for well-formed structured data instead
	// of free text. Vendors without a native JSON switch ignore it; the
	// prompt is expected to carry the instruction either way.
	JSONOutput bool
}
