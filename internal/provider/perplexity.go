package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jonathan/factcheck-agent/internal/normalize"
	"github.com/jonathan/factcheck-agent/internal/prompts"
	"github.com/jonathan/factcheck-agent/internal/types"
)

const (
	perplexityAPIURL = "https://api.perplexity.ai/chat/completions"
	perplexityModel  = "sonar-pro"

	// shared generation limits for both remote providers
	maxTokens   = 800
	temperature = 0.2
)

// Perplexity calls the Perplexity chat-completions endpoint.
type Perplexity struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// chatMessage is a single turn in a chat-completion conversation.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the chat-completions request body.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

// chatResponse exposes the generated text at choices[0].message.content.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewPerplexity creates a Perplexity client.
func NewPerplexity(apiKey string, timeout time.Duration) *Perplexity {
	return &Perplexity{
		apiKey:     apiKey,
		baseURL:    perplexityAPIURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name identifies the provider in logs.
func (p *Perplexity) Name() string { return "perplexity" }

// Check submits content for a verdict. Single attempt, no retry.
func (p *Perplexity) Check(ctx context.Context, content string, reqCtx ReqContext) (*types.FactCheckResult, error) {
	systemTemplate := prompts.MustGet("factcheck.json", "perplexity-system")
	userTemplate := prompts.MustGet("factcheck.json", "perplexity-user")

	body := chatRequest{
		Model: perplexityModel,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: prompts.Format(systemTemplate, map[string]string{"ContextInfo": reqCtx.ContextInfo()}),
			},
			{
				Role: "user",
				Content: prompts.Format(userTemplate, map[string]string{
					"ContentKind": reqCtx.ContentKind(),
					"Content":     content,
				}),
			},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, &Error{Provider: p.Name(), Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, &Error{Provider: p.Name(), Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Provider: p.Name(), Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Provider: p.Name(), Message: fmt.Sprintf("API returned status %d", resp.StatusCode)}
	}

	var envelope chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, &Error{Provider: p.Name(), Message: "failed to parse response", Cause: err}
	}
	if len(envelope.Choices) == 0 {
		return nil, &Error{Provider: p.Name(), Message: "no choices in response"}
	}

	return normalize.Normalize(envelope.Choices[0].Message.Content), nil
}
