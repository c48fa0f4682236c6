package provider

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jonathan/factcheck-agent/internal/normalize"
	"github.com/jonathan/factcheck-agent/internal/prompts"
	"github.com/jonathan/factcheck-agent/internal/types"
)

const geminiModel = "gemini-1.5-flash"

// Gemini is an optional third fallback behind the two primary providers.
// It is only placed in the chain when its API key is configured.
type Gemini struct {
	apiKey string
}

// NewGemini creates a Gemini client.
func NewGemini(apiKey string) *Gemini {
	return &Gemini{apiKey: apiKey}
}

// Name identifies the provider in logs.
func (g *Gemini) Name() string { return "gemini" }

// Check submits content for a verdict. Single attempt, no retry.
// The SDK client is created per call and closed when the call completes.
func (g *Gemini) Check(ctx context.Context, content string, reqCtx ReqContext) (*types.FactCheckResult, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return nil, &Error{Provider: g.Name(), Message: "failed to create client", Cause: err}
	}
	defer func() { _ = client.Close() }()

	userTemplate := prompts.MustGet("factcheck.json", "gemini-user")
	prompt := prompts.Format(userTemplate, map[string]string{
		"ContextInfo": reqCtx.ContextInfo(),
		"ContentKind": reqCtx.ContentKind(),
		"Content":     content,
	})

	model := client.GenerativeModel(geminiModel)
	model.SetTemperature(temperature)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, &Error{Provider: g.Name(), Message: "failed to generate content", Cause: err}
	}

	text, err := extractGeminiText(resp)
	if err != nil {
		return nil, &Error{Provider: g.Name(), Message: "empty response", Cause: err}
	}

	return normalize.Normalize(text), nil
}

// extractGeminiText pulls the text parts out of a Gemini response envelope.
func extractGeminiText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", errNoCandidates
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errNoCandidates
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", errNoCandidates
	}
	return strings.Join(parts, ""), nil
}

var errNoCandidates = &Error{Provider: "gemini", Message: "no text candidates in response"}
