package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/dishdash/backend/internal/logger"
	"github.com/pageza/dishdash/backend/internal/service"
)

func newTestLLM(t *testing.T, handler http.HandlerFunc) *service.LLMService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	llm, err := service.NewLLMService(service.LLMConfig{
		APIKey:      "test-key",
		APIURL:      server.URL,
		Model:       "mistral-large-latest",
		Temperature: 0.7,
		Timeout:     5 * time.Second,
	}, logger.Discard())
	require.NoError(t, err)
	return llm
}

func TestLLMComplete(t *testing.T) {
	llm := newTestLLM(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req service.Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "mistral-large-latest", req.Model)
		assert.Equal(t, "json_object", req.ResponseFormat["type"])
		assert.InDelta(t, 0.7, req.Temperature, 1e-9)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "be a chef", req.Messages[0].Content)
		assert.Equal(t, "user", req.Messages[1].Role)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  {\"recipes\":[]}\n"}}]}`))
	})

	content, err := llm.Complete(context.Background(), "be a chef", "eggs")
	require.NoError(t, err)
	assert.Equal(t, `{"recipes":[]}`, content)
}

func TestLLMCompleteEmptyChoices(t *testing.T) {
	llm := newTestLLM(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	content, err := llm.Complete(context.Background(), "s", "p")
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestLLMCompleteErrorStatus(t *testing.T) {
	llm := newTestLLM(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	})

	_, err := llm.Complete(context.Background(), "s", "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestNewLLMServiceValidation(t *testing.T) {
	_, err := service.NewLLMService(service.LLMConfig{Model: "m"}, logger.Discard())
	assert.Error(t, err)

	_, err = service.NewLLMService(service.LLMConfig{APIURL: "http://localhost"}, logger.Discard())
	assert.Error(t, err)
}
