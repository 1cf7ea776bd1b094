package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionService_Complete(t *testing.T) {
	var gotReq chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "Enflasyon %40 oldu."}},
			},
		})
	}))
	defer server.Close()

	s, err := NewCompletionService(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	answer, err := s.Complete(context.Background(), "Enflasyon ne kadar?")

	require.NoError(t, err)
	assert.Equal(t, "Enflasyon %40 oldu.", answer)
	assert.Equal(t, DefaultModel, gotReq.Model)
	assert.Equal(t, DefaultMaxTokens, gotReq.MaxTokens)
	assert.InDelta(t, DefaultTemperature, gotReq.Temperature, 1e-9)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
}

func TestCompletionService_Complete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "over capacity", "type": "server_error"},
		})
	}))
	defer server.Close()

	s, err := NewCompletionService(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = s.Complete(context.Background(), "soru")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "over capacity")
}

func TestNewCompletionService_RequiresAPIKey(t *testing.T) {
	_, err := NewCompletionService(Config{})
	assert.Error(t, err)
}

func TestNewCompletionService_NegativeTemperatureMeansZero(t *testing.T) {
	s, err := NewCompletionService(Config{APIKey: "k", Temperature: -1})
	require.NoError(t, err)
	assert.Zero(t, s.temperature)
}
