package model

import "fmt"

// Provider identifies a hosted language model service.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"

	// ProviderFallback tags analyses produced without a model reply,
	// e.g. when credentials are missing or the transport fails.
	ProviderFallback Provider = "fallback"
)

// ParseProvider validates a user-supplied provider name.
func ParseProvider(s string) (Provider, error) {
	switch Provider(s) {
	case ProviderAnthropic, ProviderOpenAI:
		return Provider(s), nil
	default:
		return "", fmt.Errorf("unknown provider %q (want %q or %q)", s, ProviderAnthropic, ProviderOpenAI)
	}
}

func (p Provider) String() string { return string(p) }
