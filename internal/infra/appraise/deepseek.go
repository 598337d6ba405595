package appraise

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"

	domain "github.com/imageinsight/appraiser/internal/domain/analysis"
)

const maxTokens = 2048

// Client sends the filtered match list to the DeepSeek chat API (OpenAI
// compatible) in one batched call and parses the per-item annotations.
type Client struct {
	BaseURL string
	Model   string
}

func NewClient(baseURL, model string) *Client {
	return &Client{BaseURL: baseURL, Model: model}
}

type appraiseResponse struct {
	Results []domain.Item `json:"results"`
}

func (c *Client) Appraise(ctx context.Context, items []domain.Candidate, key string) ([]domain.Item, error) {
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}

	cfg := openai.DefaultConfig(key)
	if c.BaseURL != "" {
		cfg.BaseURL = c.BaseURL
	}
	cli := openai.NewClientWithConfig(cfg)

	resp, err := cli.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.Model,
		MaxTokens: maxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(string(itemsJSON))},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty completion response")
	}

	var body appraiseResponse
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &body); err != nil {
		return nil, fmt.Errorf("appraisal decode error: %w", err)
	}
	if len(body.Results) != len(items) {
		return nil, fmt.Errorf("appraisal returned %d entries for %d items", len(body.Results), len(items))
	}
	return body.Results, nil
}
