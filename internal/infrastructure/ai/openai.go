package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/doeshing/gitme-go/internal/domain"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func openaiAdapter() providerAdapter {
	return providerAdapter{
		buildRequest:  buildChatCompletionRequest,
		parseResponse: parseChatCompletionResponse,
		setHeaders:    setOpenAIHeaders,
	}
}

func buildChatCompletionRequest(settings domain.ProviderSettings, prompt string) ([]byte, error) {
	return json.Marshal(chatCompletionRequest{
		Model:       settings.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   settings.MaxTokens,
		Temperature: settings.SamplingTemperature(),
	})
}

func parseChatCompletionResponse(body []byte) (string, error) {
	var response chatCompletionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("decode chat completion: %w", err)
	}
	if response.Error != nil {
		return "", fmt.Errorf("openai: %s: %s", response.Error.Type, response.Error.Message)
	}
	if len(response.Choices) == 0 {
		return "", errors.New("openai: response has no choices")
	}
	return response.Choices[0].Message.Content, nil
}

func setOpenAIHeaders(req *http.Request, apiKey string) {
	req.Header.Set("Authorization", "Bearer "+apiKey)
}
