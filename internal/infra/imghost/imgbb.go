package imghost

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	domain "github.com/imageinsight/appraiser/internal/domain/analysis"
)

// ImgBB uploads images to the ImgBB hosting API.
type ImgBB struct {
	Endpoint string
	HTTP     *http.Client
}

func NewImgBB(endpoint string) *ImgBB {
	return &ImgBB{Endpoint: endpoint, HTTP: http.DefaultClient}
}

type imgbbResponse struct {
	Success bool `json:"success"`
	Data    struct {
		URL       string `json:"url"`
		DeleteURL string `json:"delete_url"`
	} `json:"data"`
}

// Upload strips any data-URL prefix and posts the remaining base64 payload.
// Any transport, status or shape problem is returned as an error; the
// caller decides whether to fall back.
func (c *ImgBB) Upload(ctx context.Context, imageData, key string) (domain.HostedImage, error) {
	payload := imageData
	if i := strings.Index(payload, "base64,"); i >= 0 {
		payload = payload[i+len("base64,"):]
	}

	form := url.Values{}
	form.Set("key", key)
	form.Set("image", payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return domain.HostedImage{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return domain.HostedImage{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.HostedImage{}, fmt.Errorf("imgbb api error: %s", resp.Status)
	}

	var body imgbbResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.HostedImage{}, fmt.Errorf("imgbb decode error: %w", err)
	}
	if !body.Success || body.Data.URL == "" {
		return domain.HostedImage{}, fmt.Errorf("imgbb upload rejected")
	}

	return domain.HostedImage{URL: body.Data.URL, DeleteURL: body.Data.DeleteURL}, nil
}
