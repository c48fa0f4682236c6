// Package types provides type definitions for structured data used throughout the factcheck-agent system.
package types

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxClaimLength is the maximum accepted length for a free-text claim.
const MaxClaimLength = 5000

// FactCheckRequest represents the request body for /factcheck.
// Exactly one of Claim or URL must be provided.
type FactCheckRequest struct {
	Claim string `json:"claim,omitempty" validate:"omitempty,min=1,max=5000"`
	URL   string `json:"url,omitempty" validate:"omitempty,url"`
}

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// Validate checks that the request carries usable input.
func (r *FactCheckRequest) Validate() error {
	if strings.TrimSpace(r.Claim) == "" && strings.TrimSpace(r.URL) == "" {
		return &ErrValidation{Field: "claim/url", Message: "either claim or url must be provided"}
	}
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return &ErrValidation{Field: "request", Message: err.Error()}
	}
	if r.URL != "" && !IsValidURL(r.URL) {
		return &ErrValidation{Field: "url", Message: "url must be an absolute http(s) URL"}
	}
	return nil
}

// ExtractedArticle holds the readable text derived from a web page.
type ExtractedArticle struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Source represents a cited reference supporting a verdict.
// URL may be empty for citations without a locatable link.
type Source struct {
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// FactCheckResult is the canonical fact-check outcome returned to callers.
type FactCheckResult struct {
	Verdict      string   `json:"verdict"`
	Explanation  string   `json:"explanation"`
	Sources      []Source `json:"sources"`
	ArticleTitle string   `json:"articleTitle,omitempty"`
}

// FormatVerdict maps free-text provider verdicts to the canonical display labels.
// Unrecognized values fold to "Unknown".
func FormatVerdict(verdict string) string {
	switch strings.ToLower(strings.TrimSpace(verdict)) {
	case "true":
		return "True"
	case "false":
		return "False"
	case "misleading":
		return "Misleading"
	case "mixed":
		return "Mixed"
	case "unverifiable":
		return "Unverifiable"
	default:
		return "Unknown"
	}
}

// ValidateClaim reports whether a free-text claim is within accepted bounds.
func ValidateClaim(claim string) bool {
	trimmed := strings.TrimSpace(claim)
	return len(trimmed) > 0 && len(trimmed) <= MaxClaimLength
}

// IsValidURL reports whether s is a syntactically valid absolute http(s) URL.
func IsValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
