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
	anthropicAPIURL  = "https://api.anthropic.com/v1/messages"
	anthropicModel   = "claude-3-haiku-20241022"
	anthropicVersion = "2023-06-01"
)

// Anthropic calls the Anthropic messages endpoint. The instruction is
// embedded in the single user turn; the API has no system message here.
type Anthropic struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// messagesRequest is the messages-endpoint request body.
type messagesRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Messages  []chatMessage `json:"messages"`
}

// messagesResponse exposes the generated text at content[0].text.
type messagesResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// NewAnthropic creates an Anthropic client.
func NewAnthropic(apiKey string, timeout time.Duration) *Anthropic {
	return &Anthropic{
		apiKey:     apiKey,
		baseURL:    anthropicAPIURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name identifies the provider in logs.
func (a *Anthropic) Name() string { return "anthropic" }

// Check submits content for a verdict. Single attempt, no retry.
func (a *Anthropic) Check(ctx context.Context, content string, reqCtx ReqContext) (*types.FactCheckResult, error) {
	userTemplate := prompts.MustGet("factcheck.json", "anthropic-user")

	body := messagesRequest{
		Model:     anthropicModel,
		MaxTokens: maxTokens,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: prompts.Format(userTemplate, map[string]string{
					"ContextInfo": reqCtx.ContextInfo(),
					"ContentKind": reqCtx.ContentKind(),
					"Content":     content,
				}),
			},
		},
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, &Error{Provider: a.Name(), Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, &Error{Provider: a.Name(), Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Provider: a.Name(), Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Provider: a.Name(), Message: fmt.Sprintf("API returned status %d", resp.StatusCode)}
	}

	var envelope messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, &Error{Provider: a.Name(), Message: "failed to parse response", Cause: err}
	}
	if len(envelope.Content) == 0 {
		return nil, &Error{Provider: a.Name(), Message: "no content in response"}
	}

	return normalize.Normalize(envelope.Content[0].Text), nil
}
