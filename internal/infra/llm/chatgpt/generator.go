package chatgpt

import (
	"context"
	"strings"

	"github.com/yanqian/care-moments/internal/domain/textgen"
	"github.com/yanqian/care-moments/pkg/metrics"
)

// Generator adapts the ChatGPT client to textgen.Generator.
type Generator struct {
	client *Client
	model  string
}

// NewGenerator constructs the adapter.
func NewGenerator(client *Client, model string) *Generator {
	return &Generator{client: client, model: model}
}

// Generate sends a single-turn chat completion and returns the first choice.
func (g *Generator) Generate(ctx context.Context, req textgen.Request) (string, error) {
	messages := make([]Message, 0, 2)
	if strings.TrimSpace(req.System) != "" {
		messages = append(messages, Message{Role: "system", Content: req.System})
	}
	messages = append(messages, Message{Role: "user", Content: req.Prompt})

	payload := ChatCompletionRequest{
		Model:       g.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.JSON {
		payload.ResponseFormat = JSONObject
	}

	resp, err := g.client.CreateChatCompletion(ctx, payload)
	if err != nil {
		return "", err
	}
	metrics.ObserveTokens(metrics.TokenUsage{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	})
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

var _ textgen.Generator = (*Generator)(nil)
