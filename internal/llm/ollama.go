package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

const defaultOllamaModel = "llama3"

// OllamaProvider backs completions with a local Ollama server, so schemas can
// be generated without any hosted API credential.
type OllamaProvider struct {
	llm *ollama.LLM
}

// NewOllama creates a provider talking to the Ollama server at serverURL.
func NewOllama(serverURL, model string) (*OllamaProvider, error) {
	if model == "" {
		model = defaultOllamaModel
	}
	l, err := ollama.New(ollama.WithModel(model), ollama.WithServerURL(serverURL))
	if err != nil {
		return nil, fmt.Errorf("failed to init ollama: %w", err)
	}
	return &OllamaProvider{llm: l}, nil
}

// Name implements Provider.
func (p *OllamaProvider) Name() string {
	return "ollama"
}

// Complete implements Provider.
func (p *OllamaProvider) Complete(ctx context.Context, systemPrompt, userPrompt string, opts Options) (string, error) {
	var messages []llms.MessageContent
	if systemPrompt != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, userPrompt))

	var callOpts []llms.CallOption
	if opts.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(opts.MaxTokens))
	}
	if opts.Temperature > 0 {
		callOpts = append(callOpts, llms.WithTemperature(float64(opts.Temperature)))
	}

	response, err := p.llm.GenerateContent(ctx, messages, callOpts...)
	if err != nil {
		return "", fmt.Errorf("ollama generation failed: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}

	return response.Choices[0].Content, nil
}
