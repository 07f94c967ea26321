package textgen

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const providerOpenAI = "openai"

// OpenAIGenerator implements domain.TextGenerator with the chat completions API.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator creates a generator. baseURL may be empty to use the public endpoint.
func NewOpenAIGenerator(apiKey, model, baseURL string, httpClient *http.Client) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key cannot be empty")
	}
	if model == "" {
		return nil, errors.New("openai model cannot be empty")
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

// Generate implements domain.TextGenerator
func (g *OpenAIGenerator) Generate(ctx context.Context, req domain.TextRequest) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.Prompt})

	chatReq := openai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    messages,
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
	}
	if req.JSON {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}
	}

	resp, err := g.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		classified := classifyOpenAIError(err)
		logger.Get().Warn("OpenAI chat completion failed",
			zap.String("model", g.model),
			zap.Error(classified))
		return "", classified
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	logger.Get().Debug("OpenAI chat completion finished",
		zap.String("model", g.model),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens))
	return resp.Choices[0].Message.Content, nil
}

func classifyOpenAIError(err error) error {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	switch status {
	case http.StatusTooManyRequests:
		return &domain.RateLimitError{Provider: providerOpenAI, Err: err}
	case http.StatusUnauthorized:
		return &domain.ServiceError{Provider: providerOpenAI, Kind: domain.ServiceErrorInvalidKey, Err: err}
	default:
		return &domain.ServiceError{Provider: providerOpenAI, Kind: domain.ServiceErrorService, Err: fmt.Errorf("status %d: %w", status, err)}
	}
}
