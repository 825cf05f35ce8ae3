package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"primoboost-be/pkg/llm"
)

// Provider talks to the hosted completion proxy, which forwards requests to
// OpenRouter. The proxy expects a bearer credential and a
// {service, action, systemPrompt, userPrompt, model, temperature} body.
type Provider struct {
	BaseURL   string
	APIKey    string
	ModelName string
	Client    *http.Client
}

var _ llm.Provider = &Provider{}

func NewProvider(baseURL, apiKey, modelName string) *Provider {
	return &Provider{
		BaseURL:   baseURL,
		APIKey:    apiKey,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type proxyRequest struct {
	Service      string  `json:"service"`
	Action       string  `json:"action"`
	SystemPrompt string  `json:"systemPrompt"`
	UserPrompt   string  `json:"userPrompt"`
	Model        string  `json:"model"`
	Temperature  float64 `json:"temperature"`
}

type proxyResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (p *Provider) ChatWithSystem(ctx context.Context, systemPrompt, userPrompt string, opts ...llm.Option) (string, error) {
	options := &llm.Options{
		Temperature: 0.4, // Default
	}
	for _, opt := range opts {
		opt(options)
	}

	model := p.ModelName
	if options.Model != "" {
		model = options.Model
	}

	reqPayload := proxyRequest{
		Service:      "openrouter",
		Action:       "chat_with_system",
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		Model:        model,
		Temperature:  options.Temperature,
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := p.BaseURL + "/functions/v1/ai-proxy"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var proxyResp proxyResponse
	if err := json.Unmarshal(bodyBytes, &proxyResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if len(proxyResp.Choices) == 0 || proxyResp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty completion")
	}

	return proxyResp.Choices[0].Message.Content, nil
}
