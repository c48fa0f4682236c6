package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/factcheck-agent/internal/extract"
	"github.com/jonathan/factcheck-agent/internal/provider"
	"github.com/jonathan/factcheck-agent/internal/types"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &types.ErrValidation{Field: "claim", Message: "missing"}, http.StatusBadRequest},
		{"extraction", &extract.Error{URL: "https://e.com", Message: "too short"}, http.StatusBadRequest},
		{"all providers failed", &provider.ErrAllProvidersFailed{Attempts: 2}, http.StatusInternalServerError},
		{"unexpected", errors.New("surprise"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestClientMessage(t *testing.T) {
	assert.Equal(t, "missing", ClientMessage(&types.ErrValidation{Field: "claim", Message: "missing"}))
	assert.Equal(t, msgExtractionFailed, ClientMessage(&extract.Error{URL: "u", Message: "internal detail"}))
	assert.Equal(t, msgProvidersFailed, ClientMessage(&provider.ErrAllProvidersFailed{Attempts: 2}))
	assert.Equal(t, msgInternal, ClientMessage(errors.New("secret internals")))
}

func TestClientMessage_NeverLeaksDetail(t *testing.T) {
	err := &extract.Error{URL: "https://internal.example", Message: "upstream payload dump"}
	msg := ClientMessage(err)
	assert.NotContains(t, msg, "internal.example")
	assert.NotContains(t, msg, "payload")
}
