package advisor

import (
	"context"
	"errors"

	"ironlog/workout-app/internal/config"
	"ironlog/workout-app/internal/domain"

	openai "github.com/sashabaranov/go-openai"
)

// ErrEmptyReply is returned when the advisory service answers without content.
var ErrEmptyReply = errors.New("advisor returned no content")

const (
	completionTemperature = 0.7
	completionMaxTokens   = 2000
)

// openAIAdvisor implements Advisor against the OpenAI chat completions API
// (or any OpenAI-compatible endpoint via a custom base URL).
type openAIAdvisor struct {
	client *openai.Client
	model  string
}

// NewOpenAIAdvisor creates an Advisor backed by the configured OpenAI model.
func NewOpenAIAdvisor(cfg config.AdvisorConfig) Advisor {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &openAIAdvisor{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}
}

// Complete sends the system instruction plus ordered messages and returns the
// assistant's text reply.
func (a *openAIAdvisor) Complete(ctx context.Context, systemPrompt string, messages []Message) (string, error) {
	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	chatMessages = append(chatMessages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, m := range messages {
		role := openai.ChatMessageRoleUser
		if m.Role == domain.ChatRoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    chatMessages,
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyReply
	}
	return resp.Choices[0].Message.Content, nil
}
