package textgen

import (
	"context"
	"fmt"
	"net/http"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

const providerOllama = "ollama"

// OllamaGenerator implements domain.TextGenerator against a local Ollama server.
type OllamaGenerator struct {
	llm   llms.Model
	model string
}

func NewOllamaGenerator(serverURL, model string, httpClient *http.Client) (*OllamaGenerator, error) {
	opts := []ollama.Option{ollama.WithServerURL(serverURL), ollama.WithModel(model)}
	if httpClient != nil {
		opts = append(opts, ollama.WithHTTPClient(httpClient))
	}
	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}
	return &OllamaGenerator{llm: llm, model: model}, nil
}

// Generate implements domain.TextGenerator
func (g *OllamaGenerator) Generate(ctx context.Context, req domain.TextRequest) (string, error) {
	messages := make([]llms.MessageContent, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, req.SystemPrompt))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, req.Prompt))

	callOpts := []llms.CallOption{llms.WithTemperature(req.Temperature)}
	if req.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(req.MaxTokens))
	}
	if req.JSON {
		callOpts = append(callOpts, llms.WithJSONMode())
	}

	resp, err := g.llm.GenerateContent(ctx, messages, callOpts...)
	if err != nil {
		logger.Get().Warn("Ollama generation failed", zap.String("model", g.model), zap.Error(err))
		return "", &domain.ServiceError{Provider: providerOllama, Kind: domain.ServiceErrorService, Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return StripThinking(resp.Choices[0].Content), nil
}
