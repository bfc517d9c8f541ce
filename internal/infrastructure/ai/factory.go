// Package ai builds the message generator: a prompt builder, one HTTP
// provider per supported service, and the generator that turns any provider
// failure into a fixed fallback message.
package ai

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/doeshing/gitme-go/internal/domain"
	"github.com/doeshing/gitme-go/internal/ports"
)

// Factory creates provider clients. It maintains a single HTTP client shared across providers.
type Factory struct {
	httpClient *http.Client
	getenv     func(string) string
}

// NewFactory creates a factory whose client times out after timeout (default 60s).
func NewFactory(timeout time.Duration) *Factory {
	if timeout <= 0 {
		timeout = domain.DefaultHTTPClientTimeout
	}
	return &Factory{
		httpClient: &http.Client{Timeout: timeout},
		getenv:     os.Getenv,
	}
}

// NewFactoryWithClient is used when the caller controls transport, mainly tests.
func NewFactoryWithClient(client *http.Client, getenv func(string) string) *Factory {
	if client == nil {
		client = &http.Client{Timeout: domain.DefaultHTTPClientTimeout}
	}
	if getenv == nil {
		getenv = os.Getenv
	}
	return &Factory{httpClient: client, getenv: getenv}
}

// ForProvider resolves the credential (explicit key first, then the provider's
// environment variable) and returns a client for settings.Kind.
func (f *Factory) ForProvider(settings domain.ProviderSettings) (ports.Provider, error) {
	settings = withDefaults(settings)

	apiKey := settings.APIKey
	if apiKey == "" {
		apiKey = f.getenv(settings.AuthEnvVar)
	}
	if apiKey == "" {
		return nil, &domain.MissingCredentialError{Provider: settings.Kind, EnvVar: settings.AuthEnvVar}
	}

	switch settings.Kind {
	case domain.ProviderAnthropic:
		return newHTTPProvider(settings, apiKey, f.httpClient, anthropicAdapter()), nil
	case domain.ProviderOpenAI:
		return newHTTPProvider(settings, apiKey, f.httpClient, openaiAdapter()), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownProvider, settings.Kind)
	}
}

func withDefaults(s domain.ProviderSettings) domain.ProviderSettings {
	if s.Kind == "" {
		s.Kind = domain.ProviderAnthropic
	}
	if s.Model == "" {
		s.Model = s.Kind.DefaultModel()
	}
	if s.Endpoint == "" {
		s.Endpoint = s.Kind.DefaultEndpoint()
	}
	if s.AuthEnvVar == "" {
		s.AuthEnvVar = s.Kind.AuthEnvVar()
	}
	if s.MaxTokens <= 0 {
		s.MaxTokens = domain.DefaultMaxTokens
	}
	return s
}

var _ ports.ProviderFactory = (*Factory)(nil)
