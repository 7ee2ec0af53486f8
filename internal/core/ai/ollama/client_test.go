package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgpt-api/internal/infrastructure/config"
	"foodgpt-api/internal/pkg/common"
)

func newTestClient(baseURL string, timeout time.Duration) *Client {
	return NewClient(&config.OllamaConfig{
		BaseURL:     baseURL,
		Model:       "llama3.2",
		Temperature: 0.1,
		TopP:        0.9,
		Timeout:     timeout,
	})
}

func TestGenerateSuccess(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"response": `{"recipe_name": "Omelette"}`})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 5*time.Second)
	out, err := client.Generate(context.Background(), "make an omelette")
	require.NoError(t, err)

	assert.Equal(t, `{"recipe_name": "Omelette"}`, out)

	// 請求格式固定：非串流、帶取樣參數
	assert.Equal(t, "llama3.2", got.Model)
	assert.Equal(t, "make an omelette", got.Prompt)
	assert.Equal(t, 0.1, got.Temperature)
	assert.Equal(t, 0.9, got.TopP)
	assert.False(t, got.Stream)
}

func TestGenerateUpstreamErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 5*time.Second)
	_, err := client.Generate(context.Background(), "prompt")
	require.Error(t, err)

	assert.Equal(t, common.ErrCodeUpstreamError, common.ErrorCode(err))
}

func TestGenerateEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response": ""}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 5*time.Second)
	_, err := client.Generate(context.Background(), "prompt")
	require.Error(t, err)

	assert.Equal(t, common.ErrCodeUpstreamError, common.ErrorCode(err))
}

func TestGenerateTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 50*time.Millisecond)
	_, err := client.Generate(context.Background(), "prompt")
	require.Error(t, err)

	assert.Equal(t, common.ErrCodeUpstreamTimeout, common.ErrorCode(err))
}

func TestGenerateConnectionRefused(t *testing.T) {
	// 先關閉伺服器再呼叫，模擬服務不在線
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := newTestClient(srv.URL, 5*time.Second)
	_, err := client.Generate(context.Background(), "prompt")
	require.Error(t, err)

	assert.Equal(t, common.ErrCodeUpstreamUnavailable, common.ErrorCode(err))
}
