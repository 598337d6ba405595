package lens

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	domain "github.com/imageinsight/appraiser/internal/domain/analysis"
)

// Client talks to the SearchAPI reverse-image endpoint. It returns raw
// candidates; filtering and truncation happen downstream.
type Client struct {
	Endpoint string
	HTTP     *http.Client
}

func NewClient(endpoint string) *Client {
	return &Client{Endpoint: endpoint, HTTP: http.DefaultClient}
}

type searchRequest struct {
	ImageURL string `json:"imageUrl"`
}

type searchResponse struct {
	Results []domain.Candidate `json:"results"`
}

func (c *Client) Search(ctx context.Context, imageURL, key string) ([]domain.Candidate, error) {
	payload, err := json.Marshal(searchRequest{ImageURL: imageURL})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+key)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("searchapi error: %s", resp.Status)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("searchapi decode error: %w", err)
	}
	return body.Results, nil
}
