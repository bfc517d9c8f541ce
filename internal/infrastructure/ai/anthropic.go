package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/doeshing/gitme-go/internal/domain"
)

const anthropicAPIVersion = "2023-06-01"

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func anthropicAdapter() providerAdapter {
	return providerAdapter{
		buildRequest:  buildAnthropicRequest,
		parseResponse: parseAnthropicResponse,
		setHeaders:    setAnthropicHeaders,
	}
}

func buildAnthropicRequest(settings domain.ProviderSettings, prompt string) ([]byte, error) {
	return json.Marshal(anthropicRequest{
		Model:       settings.Model,
		MaxTokens:   settings.MaxTokens,
		Temperature: settings.SamplingTemperature(),
		Messages:    []anthropicMessage{{Role: "user", Content: prompt}},
	})
}

func parseAnthropicResponse(body []byte) (string, error) {
	var response anthropicResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("decode anthropic response: %w", err)
	}
	if response.Error != nil {
		return "", fmt.Errorf("anthropic: %s: %s", response.Error.Type, response.Error.Message)
	}
	if len(response.Content) == 0 {
		return "", errors.New("anthropic: response has no content")
	}
	return response.Content[0].Text, nil
}

func setAnthropicHeaders(req *http.Request, apiKey string) {
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", anthropicAPIVersion)
}
