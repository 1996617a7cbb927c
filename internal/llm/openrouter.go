package llm

import (
	"context"
	"fmt"

	"github.com/revrost/go-openrouter"
)

const defaultOpenRouterModel = "anthropic/claude-3.5-sonnet"

// OpenRouterProvider backs completions with the OpenRouter chat API.
type OpenRouterProvider struct {
	client *openrouter.Client
	model  string
}

// NewOpenRouter creates a provider for the given API key. An empty model
// selects a default that handles structured output well.
func NewOpenRouter(apiKey, model string) *OpenRouterProvider {
	if model == "" {
		model = defaultOpenRouterModel
	}
	return &OpenRouterProvider{
		client: openrouter.NewClient(apiKey),
		model:  model,
	}
}

// Name implements Provider.
func (p *OpenRouterProvider) Name() string {
	return "openrouter"
}

// Complete implements Provider, returning the text of the first choice.
func (p *OpenRouterProvider) Complete(ctx context.Context, systemPrompt, userPrompt string, opts Options) (string, error) {
	var messages []openrouter.ChatCompletionMessage
	if systemPrompt != "" {
		messages = append(messages, openrouter.ChatCompletionMessage{
			Role:    openrouter.ChatMessageRoleSystem,
			Content: openrouter.Content{Text: systemPrompt},
		})
	}
	messages = append(messages, openrouter.ChatCompletionMessage{
		Role:    openrouter.ChatMessageRoleUser,
		Content: openrouter.Content{Text: userPrompt},
	})

	request := openrouter.ChatCompletionRequest{
		Model:       p.model,
		Messages:    messages,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	}

	response, err := p.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return "", fmt.Errorf("failed to create completion: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}

	return response.Choices[0].Message.Content.Text, nil
}
