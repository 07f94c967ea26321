package textgen

import (
	"fmt"
	"net/http"

	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"

	"go.uber.org/zap"
)

// NewFromConfig builds the configured provider wrapped with rate-limit retries.
func NewFromConfig(llmCfg config.LLMConfig, genCfg config.GenerationConfig) (domain.TextGenerator, error) {
	httpClient := &http.Client{Timeout: llmCfg.Timeout}

	var (
		base domain.TextGenerator
		err  error
	)
	switch llmCfg.Provider {
	case providerOllama:
		logger.Get().Info("Initializing Ollama text generator",
			zap.String("server_url", llmCfg.Ollama.ServerURL),
			zap.String("model", llmCfg.Ollama.Model))
		base, err = NewOllamaGenerator(llmCfg.Ollama.ServerURL, llmCfg.Ollama.Model, httpClient)
	case providerOpenAI:
		logger.Get().Info("Initializing OpenAI text generator", zap.String("model", llmCfg.OpenAI.Model))
		base, err = NewOpenAIGenerator(llmCfg.OpenAI.APIKey, llmCfg.OpenAI.Model, llmCfg.OpenAI.BaseURL, httpClient)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", llmCfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return NewRetryingGenerator(base, genCfg.MaxRetries, genCfg.RetryDelay), nil
}
