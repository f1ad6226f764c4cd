package coach

import (
	"context"
	"errors"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const DefaultModel = openai.GPT3Dot5Turbo

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// OpenAICompleter sends prompts to the OpenAI chat completion API.
type OpenAICompleter struct {
	client *openai.Client
	model  string
	hasKey bool
}

func NewOpenAICompleter(cfg OpenAIConfig) *OpenAICompleter {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &OpenAICompleter{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
		hasKey: strings.TrimSpace(cfg.APIKey) != "",
	}
}

func (c *OpenAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if !c.hasKey {
		return "", ErrMissingCredential
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt},
		},
	})
	if err != nil {
		return "", &GenerationError{Message: remoteMessage(err), Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &GenerationError{Message: "empty response"}
	}
	return resp.Choices[0].Message.Content, nil
}

func remoteMessage(err error) string {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "Unknown OpenAI Error"
}
