package dto

import "quiz-forge/internal/domain"

// GenerateRequest runs the question pipeline over raw content.
// @Description Request body for question generation
type GenerateRequest struct {
	Complexity string `json:"complexity" validate:"required,complexity"`
	Count      int    `json:"count" validate:"required,min=1"`
	Content    string `json:"content" validate:"required"`
}

// GenerateFromSourceRequest generates questions from an existing quiz or document.
// @Description Request body for generating questions for a quiz or from a document
type GenerateFromSourceRequest struct {
	Complexity string `json:"complexity" validate:"required,complexity"`
	Count      int    `json:"count" validate:"required,min=1"`
}

// GenerateForQuizRequest also carries the source material for the quiz.
// @Description Request body for generating questions into a draft quiz
type GenerateForQuizRequest struct {
	Complexity string `json:"complexity" validate:"required,complexity"`
	Count      int    `json:"count" validate:"required,min=1"`
	Content    string `json:"content" validate:"required_without=DocumentID"`
	DocumentID string `json:"documentId" validate:"omitempty,ulid"`
}

// GenerationResponse lists accepted questions and the messages of rejected blocks.
type GenerationResponse struct {
	Questions []domain.GeneratedQuestion `json:"questions"`
	Rejected  []string                   `json:"rejected"`
	Cached    bool                       `json:"cached"`
}

func NewGenerationResponse(res *domain.GenerationResult) GenerationResponse {
	resp := GenerationResponse{Questions: res.Questions, Rejected: res.Rejected, Cached: res.Cached}
	if resp.Rejected == nil {
		resp.Rejected = []string{}
	}
	return resp
}

// GenerateForQuizResponse is the quiz after generated questions were appended.
type GenerateForQuizResponse struct {
	Quiz     QuizResponse `json:"quiz"`
	Added    int          `json:"added"`
	Rejected []string     `json:"rejected"`
}
