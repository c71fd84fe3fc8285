package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ueser-furina/noote-website/internal/entity"
)

func newCompletionServer(t *testing.T, status int, content string) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		if status != http.StatusOK {
			http.Error(w, "provider exploded", status)
			return
		}

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)

	return srv, &calls
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	client, err := New(Config{BaseURL: baseURL + "/v1", Model: "test-model"}, "test-key")
	require.NoError(t, err)

	return client
}

func TestNew_MissingAPIKey(t *testing.T) {
	_, err := New(Config{}, "")
	assert.ErrorIs(t, err, entity.ErrMissingAPIKey)
}

func TestGenerate(t *testing.T) {
	srv, calls := newCompletionServer(t, http.StatusOK, "  merged document  ")
	client := newTestClient(t, srv.URL)

	text, err := client.Generate(context.Background(), "merge these")
	require.NoError(t, err)

	assert.Equal(t, "merged document", text)
	assert.EqualValues(t, 1, calls.Load())
}

func TestGenerate_ProviderError(t *testing.T) {
	srv, _ := newCompletionServer(t, http.StatusInternalServerError, "")
	client := newTestClient(t, srv.URL)

	_, err := client.Generate(context.Background(), "merge these")
	assert.ErrorIs(t, err, entity.ErrProvider)
}

func TestGenerate_EmptyResponse(t *testing.T) {
	srv, _ := newCompletionServer(t, http.StatusOK, "   ")
	client := newTestClient(t, srv.URL)

	_, err := client.Generate(context.Background(), "merge these")
	require.ErrorIs(t, err, entity.ErrProvider)
	assert.ErrorContains(t, err, "empty response")
}

func TestGenerate_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	t.Cleanup(srv.Close)

	client := newTestClient(t, srv.URL)

	_, err := client.Generate(context.Background(), "merge these")
	assert.ErrorIs(t, err, entity.ErrProvider)
}
