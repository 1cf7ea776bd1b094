package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompletionService_Defaults(t *testing.T) {
	svc := NewCompletionService(Config{})
	assert.Equal(t, DefaultModel, svc.ModelName())
}

func TestCompletionService_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.2", req.Model)
		assert.False(t, req.Stream)
		assert.Contains(t, req.Prompt, "enflasyon")

		json.NewEncoder(w).Encode(generateResponse{
			Response: "Enflasyon yıllık %42 olarak gerçekleşti.",
			Done:     true,
		})
	}))
	defer server.Close()

	svc := NewCompletionService(Config{BaseURL: server.URL})

	answer, err := svc.Complete(context.Background(), "2024 enflasyon oranı nedir?")
	require.NoError(t, err)
	assert.Equal(t, "Enflasyon yıllık %42 olarak gerçekleşti.", answer)
}

func TestCompletionService_Complete_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	svc := NewCompletionService(Config{BaseURL: server.URL})

	_, err := svc.Complete(context.Background(), "soru")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestCompletionService_Ping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := NewCompletionService(Config{BaseURL: server.URL})
	assert.NoError(t, svc.Ping(context.Background()))
}
