package dto

import (
	"time"

	"quiz-forge/internal/domain"
)

// QuizSettingsRequest carries retake and pause rules.
type QuizSettingsRequest struct {
	AllowRetakes bool `json:"allowRetakes"`
	AllowPause   bool `json:"allowPause"`
	MaxAttempts  int  `json:"maxAttempts" validate:"omitempty,min=1,max=100"`
}

// ToDomain fills in MaxAttempts and applies the retake rule.
func (r QuizSettingsRequest) ToDomain() domain.QuizSettings {
	s := domain.QuizSettings{AllowRetakes: r.AllowRetakes, AllowPause: r.AllowPause, MaxAttempts: r.MaxAttempts}
	if s.MaxAttempts < 1 {
		s.MaxAttempts = 1
	}
	return s.Normalize()
}

// CreateQuizRequest represents the request body for creating a draft quiz.
// @Description Request body for creating a quiz
type CreateQuizRequest struct {
	Title          string              `json:"title" validate:"required,max=200"`
	Description    string              `json:"description" validate:"required,max=2000"`
	Duration       int                 `json:"duration" validate:"required,min=1,max=600"`
	QuestionsCount int                 `json:"questionsCount" validate:"required,min=1,max=200"`
	Settings       QuizSettingsRequest `json:"settings"`
}

// UpdateQuizRequest changes a draft quiz; omitted fields stay as they are.
// @Description Request body for updating a quiz
type UpdateQuizRequest struct {
	Title          *string              `json:"title" validate:"omitempty,min=1,max=200"`
	Description    *string              `json:"description" validate:"omitempty,min=1,max=2000"`
	Duration       *int                 `json:"duration" validate:"omitempty,min=1,max=600"`
	QuestionsCount *int                 `json:"questionsCount" validate:"omitempty,min=1,max=200"`
	Settings       *QuizSettingsRequest `json:"settings"`
}

// QuestionInput is one hand-written question.
type QuestionInput struct {
	Text          string   `json:"text" validate:"required"`
	Options       []string `json:"options" validate:"len=4,dive,required"`
	CorrectAnswer int      `json:"correctAnswer" validate:"min=0,max=3"`
	Explanation   string   `json:"explanation"`
}

// AddQuestionsRequest appends questions to a draft quiz.
// @Description Request body for adding questions
type AddQuestionsRequest struct {
	Questions []QuestionInput `json:"questions" validate:"required,min=1,dive"`
}

// AssignQuizRequest assigns a quiz to a student.
// @Description Request body for assigning a quiz
type AssignQuizRequest struct {
	StudentID string `json:"studentId" validate:"required"`
}

// QuizResponse is the admin view of a quiz, answers included.
type QuizResponse struct {
	ID             string              `json:"id"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Duration       int                 `json:"duration"`
	QuestionsCount int                 `json:"questionsCount"`
	Status         domain.QuizStatus   `json:"status"`
	Settings       domain.QuizSettings `json:"settings"`
	Questions      []domain.Question   `json:"questions,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

func NewQuizResponse(q *domain.Quiz) QuizResponse {
	return QuizResponse{
		ID:             q.ID,
		Title:          q.Title,
		Description:    q.Description,
		Duration:       q.Duration,
		QuestionsCount: q.QuestionsCount,
		Status:         q.Status,
		Settings:       q.Settings,
		Questions:      q.Questions,
		CreatedAt:      q.CreatedAt,
		UpdatedAt:      q.UpdatedAt,
	}
}

// StudentQuestion is a question without its answer or explanation.
type StudentQuestion struct {
	ID       string   `json:"id"`
	Position int      `json:"position"`
	Text     string   `json:"text"`
	Options  []string `json:"options"`
}

func NewStudentQuestions(questions []domain.Question) []StudentQuestion {
	out := make([]StudentQuestion, 0, len(questions))
	for _, q := range questions {
		out = append(out, StudentQuestion{ID: q.ID, Position: q.Position, Text: q.Text, Options: q.Options})
	}
	return out
}
