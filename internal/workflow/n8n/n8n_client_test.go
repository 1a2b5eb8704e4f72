package n8n

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"failfast/internal/config"
)

func TestN8NClient_Invoke(t *testing.T) {
	var gotBody map[string]interface{}
	var gotAuth, gotContentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"execution_id": "abc-123"}`))
	}))
	defer server.Close()

	client := NewN8NClient(&config.N8NConfig{APIKey: "secret-key", TimeoutSecs: 5})

	result, err := client.Invoke(context.Background(), server.URL, map[string]interface{}{
		"document_id": "doc-1",
		"status":      "pending",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Bearer secret-key", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "doc-1", gotBody["document_id"])
	assert.Equal(t, "abc-123", result["execution_id"])
}

func TestN8NClient_Invoke_NoAPIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewN8NClient(&config.N8NConfig{TimeoutSecs: 5})

	result, err := client.Invoke(context.Background(), server.URL, map[string]interface{}{"ping": true})

	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestN8NClient_Invoke_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewN8NClient(&config.N8NConfig{TimeoutSecs: 5})

	_, err := client.Invoke(context.Background(), server.URL, map[string]interface{}{})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestN8NClient_Invoke_PlainTextResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Workflow was started"))
	}))
	defer server.Close()

	client := NewN8NClient(&config.N8NConfig{TimeoutSecs: 5})

	result, err := client.Invoke(context.Background(), server.URL, map[string]interface{}{})

	assert.NoError(t, err)
	assert.Equal(t, "Workflow was started", result["raw"])
}
