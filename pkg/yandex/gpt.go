package yandex

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const completionURL = "https://llm.api.cloud.yandex.net/foundationModels/v1/completion"

type GPTClient struct {
	http     *resty.Client
	baseURL  string
	apiKey   string
	folderID string
}

func NewGPTClient(apiKey, folderID string) *GPTClient {
	return &GPTClient{
		http:     resty.New().SetTimeout(60 * time.Second),
		baseURL:  completionURL,
		apiKey:   apiKey,
		folderID: folderID,
	}
}

func (c *GPTClient) Configured() bool {
	return c.apiKey != "" && c.folderID != ""
}

// SetBaseURL overrides the completion endpoint. Used by tests.
func (c *GPTClient) SetBaseURL(u string) { c.baseURL = u }

type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type completionOptions struct {
	Stream      bool    `json:"stream"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"maxTokens"`
}

type completionRequest struct {
	ModelURI          string            `json:"modelUri"`
	CompletionOptions completionOptions `json:"completionOptions"`
	Messages          []Message         `json:"messages"`
}

type completionResponse struct {
	Result struct {
		Alternatives []struct {
			Message Message `json:"message"`
		} `json:"alternatives"`
	} `json:"result"`
}

// Complete runs a non-streaming completion and returns the first
// alternative's text.
func (c *GPTClient) Complete(ctx context.Context, messages []Message, maxTokens int) (string, error) {
	req := completionRequest{
		ModelURI: fmt.Sprintf("gpt://%s/yandexgpt/latest", c.folderID),
		CompletionOptions: completionOptions{
			Stream:      false,
			Temperature: 0.7,
			MaxTokens:   maxTokens,
		},
		Messages: messages,
	}

	var out completionResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Api-Key "+c.apiKey).
		SetBody(req).
		SetResult(&out).
		Post(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("yandexgpt completion: %w", err)
	}
	if res.IsError() {
		return "", fmt.Errorf("yandexgpt completion: status %d: %s", res.StatusCode(), res.String())
	}
	if len(out.Result.Alternatives) == 0 {
		return "", fmt.Errorf("yandexgpt completion: no alternatives")
	}
	return out.Result.Alternatives[0].Message.Text, nil
}
