package appraise

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/imageinsight/appraiser/internal/domain/analysis"
)

func completionWith(t *testing.T, content string) []byte {
	t.Helper()
	resp := map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "deepseek-chat",
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			},
		},
	}
	b, err := json.Marshal(resp)
	require.NoError(t, err)
	return b
}

func TestClient_Appraise(t *testing.T) {
	items := []domain.Candidate{
		{Title: "Antique Clock", Price: "$220", Source: "Auction Site", URL: "https://example.com/1", ExtractedPrice: "220"},
	}

	annotated := map[string]any{
		"results": []map[string]any{
			{
				"title": "Antique Clock", "price": "$220", "source": "Auction Site",
				"url": "https://example.com/1", "extracted_price": "220",
				"analysis": map[string]any{
					"estimated_value": "$220",
					"value_range":     "$176 - $264",
					"confidence":      "High",
					"condition":       "Good",
					"era":             "Victorian",
					"material":        "Wood",
					"style":           "Traditional",
					"description":     "A well kept antique clock.",
				},
			},
		},
	}
	content, err := json.Marshal(annotated)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer deepseek-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write(completionWith(t, string(content)))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "deepseek-chat")
	out, err := c.Appraise(context.Background(), items, "deepseek-key")

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Antique Clock", out[0].Title)
	require.NotNil(t, out[0].Analysis)
	assert.Equal(t, "$220", out[0].Analysis.EstimatedValue)
	assert.Equal(t, "High", out[0].Analysis.Confidence)
}

func TestClient_AppraiseCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(completionWith(t, `{"results":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "deepseek-chat")
	_, err := c.Appraise(context.Background(), []domain.Candidate{{Title: "Clock"}}, "k")

	assert.Error(t, err)
}

func TestClient_AppraiseMalformedContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(completionWith(t, "sorry, no json today"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "deepseek-chat")
	_, err := c.Appraise(context.Background(), []domain.Candidate{{Title: "Clock"}}, "k")

	assert.Error(t, err)
}

func TestClient_AppraiseProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "deepseek-chat")
	_, err := c.Appraise(context.Background(), []domain.Candidate{{Title: "Clock"}}, "k")

	assert.Error(t, err)
}
