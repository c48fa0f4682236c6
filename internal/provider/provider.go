// Package provider implements the fact-check provider gateway. Providers are
// interchangeable black boxes differing only in request shape and response
// envelope; the gateway holds an explicit ordered list of clients and returns
// the first successful canonical result. Each client gets exactly one attempt
// per request; there are no retries within a provider.
package provider

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/factcheck-agent/internal/config"
	"github.com/jonathan/factcheck-agent/internal/prompts"
	"github.com/jonathan/factcheck-agent/internal/types"
)

// ReqContext carries article context when the content came from a URL.
type ReqContext struct {
	SourceURL    string
	ArticleTitle string
}

// IsArticle reports whether the content was derived from an article URL.
func (rc ReqContext) IsArticle() bool {
	return rc.SourceURL != ""
}

// ContentKind names the content for prompt construction.
func (rc ReqContext) ContentKind() string {
	if rc.IsArticle() {
		return "article content"
	}
	return "claim"
}

// ContextInfo renders the prompt preamble describing what is being checked.
func (rc ReqContext) ContextInfo() string {
	if rc.IsArticle() {
		template := prompts.MustGet("factcheck.json", "context-article")
		return prompts.Format(template, map[string]string{
			"Title": rc.ArticleTitle,
			"URL":   rc.SourceURL,
		})
	}
	return prompts.MustGet("factcheck.json", "context-claim")
}

// Client is a single fact-check provider.
type Client interface {
	// Name identifies the provider in logs.
	Name() string
	// Check submits content for a verdict and returns the normalized result.
	Check(ctx context.Context, content string, reqCtx ReqContext) (*types.FactCheckResult, error)
}

// Error wraps a provider-level failure.
type Error struct {
	Provider string
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s provider error: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s provider error: %s", e.Provider, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ErrAllProvidersFailed indicates every configured provider failed;
// no partial result is ever returned alongside it.
type ErrAllProvidersFailed struct {
	Attempts int
}

func (e *ErrAllProvidersFailed) Error() string {
	return fmt.Sprintf("all %d fact-check providers failed", e.Attempts)
}

// Gateway tries each client in order and returns the first success.
type Gateway struct {
	clients []Client
}

// NewGateway builds the fallback chain from configured credentials.
// Order is fixed: Perplexity, then Anthropic, then (if enabled) Gemini.
func NewGateway(cfg *config.Config) *Gateway {
	var clients []Client
	if cfg.PerplexityAPIKey != "" {
		clients = append(clients, NewPerplexity(cfg.PerplexityAPIKey, cfg.ProviderTimeout()))
	}
	if cfg.AnthropicAPIKey != "" {
		clients = append(clients, NewAnthropic(cfg.AnthropicAPIKey, cfg.ProviderTimeout()))
	}
	if cfg.GeminiAPIKey != "" {
		clients = append(clients, NewGemini(cfg.GeminiAPIKey))
	}
	return &Gateway{clients: clients}
}

// NewGatewayWithClients builds a gateway over an explicit client list.
func NewGatewayWithClients(clients ...Client) *Gateway {
	return &Gateway{clients: clients}
}

// Check runs the fallback chain sequentially. Provider failures are logged
// and swallowed so the next client can be attempted; the first non-nil
// result wins and is annotated with the article title when one is known.
func (g *Gateway) Check(ctx context.Context, content string, reqCtx ReqContext) (*types.FactCheckResult, error) {
	for _, client := range g.clients {
		result, err := client.Check(ctx, content, reqCtx)
		if err != nil {
			log.Printf("provider %s failed: %v", client.Name(), err)
			continue
		}
		if result == nil {
			log.Printf("provider %s returned no result", client.Name())
			continue
		}
		if reqCtx.ArticleTitle != "" {
			result.ArticleTitle = reqCtx.ArticleTitle
		}
		return result, nil
	}
	return nil, &ErrAllProvidersFailed{Attempts: len(g.clients)}
}
