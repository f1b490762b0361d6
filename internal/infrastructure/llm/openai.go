package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobboard/internal/config"

	openai "github.com/sashabaranov/go-openai"
)

var (
	ErrNotConfigured = errors.New("llm api key not configured")
	ErrEmptyResponse = errors.New("llm returned no choices")
)

type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAI sends one chat completion per call: no retries, no streaming.
type OpenAI struct {
	client  chatClient
	model   string
	timeout time.Duration
}

func NewOpenAI(cfg config.LLMConfig) (*OpenAI, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil, ErrNotConfigured
	}

	oc := openai.DefaultConfig(key)
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		oc.BaseURL = base
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAI{client: openai.NewClientWithConfig(oc), model: model, timeout: cfg.Timeout}, nil
}

func (o *OpenAI) Complete(ctx context.Context, system, prompt string) (string, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
