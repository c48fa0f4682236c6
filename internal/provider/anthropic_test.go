package provider

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnthropic_Check(t *testing.T) {
	var gotKey, gotVersion string
	var gotBody messagesRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))

		_, _ = w.Write([]byte(`{
			"content": [{"text": "{\"verdict\": \"Misleading\", \"explanation\": \"Out of context.\", \"sources\": []}"}]
		}`))
	}))
	defer server.Close()

	client := NewAnthropic("ant-key", 5*time.Second)
	client.baseURL = server.URL

	result, err := client.Check(context.Background(), "Quoted statistic", ReqContext{})
	require.NoError(t, err)

	assert.Equal(t, "ant-key", gotKey)
	assert.Equal(t, anthropicVersion, gotVersion)
	assert.Equal(t, anthropicModel, gotBody.Model)
	assert.Equal(t, maxTokens, gotBody.MaxTokens)
	require.Len(t, gotBody.Messages, 1)
	assert.Equal(t, "user", gotBody.Messages[0].Role)
	// instruction and context both live in the single user turn
	assert.Contains(t, gotBody.Messages[0].Content, "This is a claim to fact-check.")
	assert.Contains(t, gotBody.Messages[0].Content, "Fact-check this claim: Quoted statistic")
	assert.Contains(t, gotBody.Messages[0].Content, "Format as JSON")

	assert.Equal(t, "Misleading", result.Verdict)
	assert.Equal(t, "Out of context.", result.Explanation)
	assert.Empty(t, result.Sources)
}

func TestAnthropic_ProseResponseStillNormalizes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"content": [{"text": "Verdict: False\nThere is no supporting evidence. See https://example.org/debunk"}]}`))
	}))
	defer server.Close()

	client := NewAnthropic("k", 5*time.Second)
	client.baseURL = server.URL

	result, err := client.Check(context.Background(), "claim", ReqContext{})
	require.NoError(t, err)
	assert.Equal(t, "False", result.Verdict)
	require.Len(t, result.Sources, 1)
	assert.Equal(t, "https://example.org/debunk", result.Sources[0].URL)
}

func TestAnthropic_Non200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewAnthropic("k", 5*time.Second)
	client.baseURL = server.URL

	_, err := client.Check(context.Background(), "claim", ReqContext{})
	require.Error(t, err)

	var pErr *Error
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, "anthropic", pErr.Provider)
}

func TestAnthropic_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"content": []}`))
	}))
	defer server.Close()

	client := NewAnthropic("k", 5*time.Second)
	client.baseURL = server.URL

	_, err := client.Check(context.Background(), "claim", ReqContext{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no content")
}
