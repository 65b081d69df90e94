package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{
		APIKey:  "test-key",
		Model:   "gemini-2.0-flash",
		BaseURL: srv.URL,
	})
	require.NoError(t, err)
	return c
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(Config{})
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestGenerateContent(t *testing.T) {
	var gotPrompt string
	var gotTemp float64

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "gemini-2.0-flash:generateContent")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		gotPrompt = req.Contents[0].Parts[0].Text
		if req.GenerationConfig != nil {
			gotTemp = req.GenerationConfig.Temperature
		}

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{"parts": []map[string]string{{"text": "hello back"}}}},
			},
		})
	})

	out, err := c.GenerateContent(context.Background(), "hello", &GenerationConfig{Temperature: 0.7, MaxOutputTokens: 1000})
	require.NoError(t, err)
	assert.Equal(t, "hello back", out)
	assert.Equal(t, "hello", gotPrompt)
	assert.Equal(t, 0.7, gotTemp)
}

func TestGenerateContentHTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	})

	_, err := c.GenerateContent(context.Background(), "hello", nil)
	assert.ErrorContains(t, err, "status 403")
}

func TestGenerateContentNoCandidates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := c.GenerateContent(context.Background(), "hello", nil)
	assert.ErrorContains(t, err, "no candidates")
}
