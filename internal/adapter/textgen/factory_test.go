package textgen

import (
	"testing"
	"time"

	"quiz-forge/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromConfig(t *testing.T) {
	genCfg := config.GenerationConfig{MaxRetries: 2, RetryDelay: time.Second}

	t.Run("openai is wrapped with retries", func(t *testing.T) {
		gen, err := NewFromConfig(config.LLMConfig{
			Provider: "openai",
			Timeout:  time.Second,
			OpenAI:   config.OpenAIConfig{APIKey: "sk-test", Model: "gpt-4o-2024-08-06"},
		}, genCfg)
		require.NoError(t, err)
		r, ok := gen.(*RetryingGenerator)
		require.True(t, ok)
		assert.Equal(t, 2, r.maxRetries)
		_, isOpenAI := r.next.(*OpenAIGenerator)
		assert.True(t, isOpenAI)
	})

	t.Run("missing api key", func(t *testing.T) {
		_, err := NewFromConfig(config.LLMConfig{Provider: "openai", OpenAI: config.OpenAIConfig{Model: "gpt"}}, genCfg)
		assert.Error(t, err)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewFromConfig(config.LLMConfig{Provider: "gemini"}, genCfg)
		assert.Error(t, err)
	})
}
