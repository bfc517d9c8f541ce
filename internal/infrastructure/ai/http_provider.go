package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/doeshing/gitme-go/internal/domain"
	"github.com/doeshing/gitme-go/internal/ports"
)

// maxErrorBody bounds how much of a failed response is quoted in the error.
const maxErrorBody = 512

// httpProvider sends a single user message to a completion endpoint.
// The adapter owns the provider-specific request and response shapes.
type httpProvider struct {
	settings   domain.ProviderSettings
	apiKey     string
	httpClient *http.Client
	adapter    providerAdapter
}

type providerAdapter struct {
	buildRequest  func(domain.ProviderSettings, string) ([]byte, error)
	parseResponse func([]byte) (string, error)
	setHeaders    func(*http.Request, string)
}

func newHTTPProvider(settings domain.ProviderSettings, apiKey string, client *http.Client, adapter providerAdapter) ports.Provider {
	return &httpProvider{
		settings:   settings,
		apiKey:     apiKey,
		httpClient: client,
		adapter:    adapter,
	}
}

func (p *httpProvider) Name() string {
	return string(p.settings.Kind)
}

func (p *httpProvider) Model() string {
	return p.settings.Model
}

// Complete issues exactly one request; there is no retry.
func (p *httpProvider) Complete(ctx context.Context, prompt string) (string, error) {
	requestBody, err := p.adapter.buildRequest(p.settings, prompt)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.settings.Endpoint, bytes.NewReader(requestBody))
	if err != nil {
		return "", fmt.Errorf("create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	p.adapter.setHeaders(httpReq, p.apiKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("%s: HTTP %d: %s", p.Name(), resp.StatusCode, snippet(body))
	}

	content, err := p.adapter.parseResponse(body)
	if err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return "", errors.New("provider returned an empty message")
	}
	return content, nil
}

func snippet(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody] + "..."
	}
	return text
}
