// Package domain defines core entities and value objects for gitme.
//
// This file holds the generative provider variants. The set is closed: adding a
// provider means adding a ProviderKind and its adapter, call sites stay as-is.
package domain

import (
	"fmt"
	"strings"
)

// ProviderKind identifies a generative text backend.
type ProviderKind string

const (
	ProviderAnthropic ProviderKind = "anthropic"
	ProviderOpenAI    ProviderKind = "openai"

	// ProviderUnknown is recorded for history entries whose provider could not be determined.
	ProviderUnknown ProviderKind = "unknown"
)

// Default model identifiers per provider.
const (
	DefaultAnthropicModel = "claude-3-7-sonnet-20250219"
	DefaultOpenAIModel    = "gpt-4o-mini"
)

// Default endpoints and credential variables per provider.
const (
	DefaultAnthropicEndpoint = "https://api.anthropic.com/v1/messages"
	DefaultOpenAIEndpoint    = "https://api.openai.com/v1/chat/completions"

	AnthropicAuthEnvVar = "ANTHROPIC_API_KEY"
	OpenAIAuthEnvVar    = "OPENAI_API_KEY"
)

// ProviderKinds lists every supported provider in display order.
func ProviderKinds() []ProviderKind {
	return []ProviderKind{ProviderAnthropic, ProviderOpenAI}
}

// ParseProviderKind resolves a user supplied provider name.
func ParseProviderKind(name string) (ProviderKind, error) {
	switch ProviderKind(strings.ToLower(strings.TrimSpace(name))) {
	case "", ProviderAnthropic:
		return ProviderAnthropic, nil
	case ProviderOpenAI:
		return ProviderOpenAI, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
}

// DefaultModel returns the model used when no override is configured.
func (k ProviderKind) DefaultModel() string {
	switch k {
	case ProviderOpenAI:
		return DefaultOpenAIModel
	default:
		return DefaultAnthropicModel
	}
}

// DefaultEndpoint returns the completion endpoint for the provider.
func (k ProviderKind) DefaultEndpoint() string {
	switch k {
	case ProviderOpenAI:
		return DefaultOpenAIEndpoint
	default:
		return DefaultAnthropicEndpoint
	}
}

// AuthEnvVar returns the environment variable holding the provider credential.
func (k ProviderKind) AuthEnvVar() string {
	switch k {
	case ProviderOpenAI:
		return OpenAIAuthEnvVar
	default:
		return AnthropicAuthEnvVar
	}
}

// ProviderSettings is everything needed to construct a provider client.
type ProviderSettings struct {
	Kind        ProviderKind
	Model       string
	Endpoint    string
	APIKey      string
	AuthEnvVar  string
	MaxTokens   int
	// Temperature is nil when unset; 0 is a valid setting.
	Temperature *float64
}

// SamplingTemperature returns Temperature or the default when unset.
func (s ProviderSettings) SamplingTemperature() float64 {
	if s.Temperature == nil {
		return DefaultTemperature
	}
	return *s.Temperature
}
