package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civicpulse/internal/models"
)

func fakeGeminiServer(t *testing.T, handler http.HandlerFunc) *Gemini {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGemini("test-key", "test-model").WithBaseURL(srv.URL)
}

func candidateResponse(text string) []byte {
	b, _ := json.Marshal(map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"parts": []map[string]string{{"text": text}},
			}},
		},
	})
	return b
}

func TestGemini_WeeklySummary(t *testing.T) {
	t.Parallel()

	t.Run("returns candidate text", func(t *testing.T) {
		t.Parallel()
		var gotPath string
		g := fakeGeminiServer(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			var req geminiRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.NotEmpty(t, req.Contents)
			assert.Contains(t, req.Contents[0].Parts[0].Text, "Pothole on Elm")
			w.Write(candidateResponse("This week residents reported road damage."))
		})

		summary, err := g.WeeklySummary(context.Background(), []*models.Issue{
			{Title: "Pothole on Elm", Description: "Deep pothole", UpvoteCount: 4},
		})
		require.NoError(t, err)
		assert.Equal(t, "This week residents reported road damage.", summary)
		assert.Equal(t, "/models/test-model:generateContent", gotPath)
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		t.Parallel()
		g := fakeGeminiServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})
		_, err := g.WeeklySummary(context.Background(), []*models.Issue{{Title: "x"}})
		assert.Error(t, err)
	})

	t.Run("empty candidates is an error", func(t *testing.T) {
		t.Parallel()
		g := fakeGeminiServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"candidates": []}`))
		})
		_, err := g.WeeklySummary(context.Background(), []*models.Issue{{Title: "x"}})
		assert.Error(t, err)
	})

	t.Run("context cancellation propagates", func(t *testing.T) {
		t.Parallel()
		g := fakeGeminiServer(t, func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.Write(candidateResponse("too late"))
		})
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := g.WeeklySummary(ctx, []*models.Issue{{Title: "x"}})
		assert.Error(t, err)
	})
}

func TestGemini_IsDuplicate(t *testing.T) {
	t.Parallel()

	t.Run("plain verdict", func(t *testing.T) {
		t.Parallel()
		g := fakeGeminiServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Write(candidateResponse(`{"is_duplicate": true}`))
		})
		isDup, err := g.IsDuplicate(context.Background(), "Pothole on Elm", []string{"Pothole on Elm Street"})
		require.NoError(t, err)
		assert.True(t, isDup)
	})

	t.Run("fenced verdict", func(t *testing.T) {
		t.Parallel()
		g := fakeGeminiServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Write(candidateResponse("```json\n{\"is_duplicate\": false}\n```"))
		})
		isDup, err := g.IsDuplicate(context.Background(), "New thing", []string{"Other thing"})
		require.NoError(t, err)
		assert.False(t, isDup)
	})

	t.Run("unparsable verdict is an error", func(t *testing.T) {
		t.Parallel()
		g := fakeGeminiServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Write(candidateResponse("probably yes"))
		})
		_, err := g.IsDuplicate(context.Background(), "x", []string{"y"})
		assert.Error(t, err)
	})

	t.Run("no existing titles short-circuits", func(t *testing.T) {
		t.Parallel()
		g := fakeGeminiServer(t, func(http.ResponseWriter, *http.Request) {
			t.Error("no request expected")
		})
		isDup, err := g.IsDuplicate(context.Background(), "first ever issue", nil)
		require.NoError(t, err)
		assert.False(t, isDup)
	})
}
