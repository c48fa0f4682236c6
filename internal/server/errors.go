// Package server provides the HTTP REST API for the factcheck agent.
package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/factcheck-agent/internal/extract"
	"github.com/jonathan/factcheck-agent/internal/provider"
	"github.com/jonathan/factcheck-agent/internal/types"
)

// Client-safe messages. Full error detail only ever goes to the server log.
const (
	msgInvalidBody      = "Invalid request body"
	msgMissingInput     = "Either claim or url must be provided"
	msgExtractionFailed = "Failed to extract article content from the provided URL"
	msgNoContent        = "No valid content to fact-check"
	msgProvidersFailed  = "All fact-check providers failed"
	msgInternal         = "Internal server error"
)

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var vErr *types.ErrValidation
	var exErr *extract.Error
	var allFailed *provider.ErrAllProvidersFailed

	switch {
	case errors.As(err, &vErr), errors.As(err, &exErr):
		return http.StatusBadRequest
	case errors.As(err, &allFailed):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// ClientMessage maps an error to the short message exposed to callers.
// Internal detail (upstream payloads, stack traces) never leaks here.
func ClientMessage(err error) string {
	var vErr *types.ErrValidation
	var exErr *extract.Error
	var allFailed *provider.ErrAllProvidersFailed

	switch {
	case errors.As(err, &vErr):
		return vErr.Message
	case errors.As(err, &exErr):
		return msgExtractionFailed
	case errors.As(err, &allFailed):
		return msgProvidersFailed
	default:
		return msgInternal
	}
}
