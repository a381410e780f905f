package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gamblelab/adapters/coach/heuristic"
	"gamblelab/domain/behavior"
	"gamblelab/domain/gamble"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGamble() gamble.MixedGamble {
	return gamble.MixedGamble{PWin: 0.5, Win: 20, PLose: 0.5, Lose: 10}
}

func TestComposeUsesModelReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req["model"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "Model coaching text."}},
			},
		})
	}))
	defer srv.Close()

	coach := New(Config{APIKey: "test-key", Model: "test-model", BaseURL: srv.URL}, heuristic.New())
	text, err := coach.Compose(context.Background(), testGamble(), behavior.DecisionReject, behavior.FlagLossAversion)
	require.NoError(t, err)
	assert.Equal(t, "Model coaching text.", text)
}

func TestComposeFallsBackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	coach := New(Config{APIKey: "test-key", Model: "test-model", BaseURL: srv.URL}, heuristic.New())
	text, err := coach.Compose(context.Background(), testGamble(), behavior.DecisionReject, behavior.FlagLossAversion)
	require.NoError(t, err)

	// Fallback is the templated composer.
	assert.Contains(t, text, "50/50 gamble")
	assert.Contains(t, text, "disproportionately salient")
}

func TestComposeFallsBackOnEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	coach := New(Config{APIKey: "test-key", Model: "test-model", BaseURL: srv.URL}, heuristic.New())
	text, err := coach.Compose(context.Background(), testGamble(), behavior.DecisionAccept, behavior.FlagNone)
	require.NoError(t, err)
	assert.Contains(t, text, "A quick check")
}
