package embedding

import "fmt"

// Provider identifies an embedder implementation.
type Provider string

const (
	// ProviderOpenAI uses a remote OpenAI-compatible embeddings API.
	ProviderOpenAI Provider = "openai"
	// ProviderMock uses deterministic hash-derived embeddings. Test use only.
	ProviderMock Provider = "mock"
)

// Options configures embedder construction.
type Options struct {
	Provider   string
	BaseURL    string
	APIKey     string
	Model      string
	Dimensions int
	CacheSize  int
}

// NewEmbedder creates an embedder for the provider named in opts.
// Supported providers: "openai" (default), "mock".
func NewEmbedder(opts Options) (Embedder, error) {
	switch Provider(opts.Provider) {
	case ProviderOpenAI, "":
		return NewOpenAIEmbedder(opts)
	case ProviderMock:
		return NewMockEmbedder(opts.Dimensions), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s (supported: openai, mock)", opts.Provider)
	}
}
