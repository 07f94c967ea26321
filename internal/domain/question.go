package domain

import (
	"context"
	"time"
)

// OptionsPerQuestion is the fixed number of choices of a multiple-choice question.
const OptionsPerQuestion = 4

// Complexity is the difficulty tier requested from the generator.
type Complexity string

const (
	ComplexityLite   Complexity = "lite"
	ComplexityMedium Complexity = "medium"
	ComplexityExpert Complexity = "expert"
)

// Valid reports whether c is one of the known tiers.
func (c Complexity) Valid() bool {
	switch c {
	case ComplexityLite, ComplexityMedium, ComplexityExpert:
		return true
	}
	return false
}

// Question is one multiple-choice item.
type Question struct {
	ID            string     `json:"id"`
	QuizID        string     `json:"quizId,omitempty"`
	Position      int        `json:"position"`
	Text          string     `json:"text"`
	Options       []string   `json:"options"`
	CorrectAnswer int        `json:"correctAnswer"`
	Explanation   string     `json:"explanation,omitempty"`
	Complexity    Complexity `json:"complexity,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// GeneratedQuestion wraps a parsed question with its provenance.
type GeneratedQuestion struct {
	Question
	GeneratedAt        time.Time     `json:"generatedAt"`
	GenerationDuration time.Duration `json:"generationDuration"`
}

// GenerationConfig is the input of the question pipeline.
type GenerationConfig struct {
	Complexity Complexity
	Count      int
	Content    string
}

// GenerationResult is what a successful (possibly partial) generation returns.
type GenerationResult struct {
	Questions []GeneratedQuestion `json:"questions"`
	Rejected  []string            `json:"rejected,omitempty"`
	Cached    bool                `json:"cached"`
}

// TextRequest is one call to the text-generation service.
type TextRequest struct {
	Prompt       string
	SystemPrompt string
	Temperature  float64
	MaxTokens    int
	// JSON asks the backend for a JSON object response where supported.
	JSON bool
}

// TextGenerator is the port to the external text-generation service.
// Implementations classify failures as *RateLimitError or *ServiceError.
type TextGenerator interface {
	Generate(ctx context.Context, req TextRequest) (string, error)
}
