package dto

import (
	"time"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/util"
)

// AnswerRequest records one choice; choice -1 clears the answer.
// @Description Request body for answering a question
type AnswerRequest struct {
	Index  *int `json:"index" validate:"required,min=0"`
	Choice *int `json:"choice" validate:"required,min=-1,max=3"`
}

// SubmitRequest finishes an attempt.
// @Description Request body for submitting an attempt
type SubmitRequest struct {
	Confirmed bool `json:"confirmed"`
}

// AttemptResponse is an attempt with its live remaining time.
type AttemptResponse struct {
	ID            string               `json:"id"`
	QuizID        string               `json:"quizId"`
	StudentID     string               `json:"studentId"`
	Answers       []int                `json:"answers"`
	Score         *float64             `json:"score,omitempty"`
	TimeSpent     int                  `json:"timeSpent"`
	RemainingTime *int                 `json:"remainingTime"`
	Status        domain.AttemptStatus `json:"status"`
	StartedAt     time.Time            `json:"startedAt"`
	CompletedAt   *time.Time           `json:"completedAt,omitempty"`
}

func NewAttemptResponse(a *domain.QuizAttempt, now time.Time) AttemptResponse {
	resp := AttemptResponse{
		ID:          a.ID,
		QuizID:      a.QuizID,
		StudentID:   a.StudentID,
		Answers:     a.Answers,
		TimeSpent:   a.TimeSpent,
		Status:      a.Status,
		StartedAt:   a.StartedAt,
		CompletedAt: a.CompletedAt,
	}
	if a.Score != nil {
		score := util.RoundTo(*a.Score, 2)
		resp.Score = &score
	}
	if a.RemainingTime != nil {
		left := a.Remaining(now)
		resp.RemainingTime = &left
	}
	return resp
}

// StartAttemptResponse is what a student gets when entering a quiz.
type StartAttemptResponse struct {
	Attempt     AttemptResponse   `json:"attempt"`
	Questions   []StudentQuestion `json:"questions"`
	ResumeIndex int               `json:"resumeIndex"`
	Mode        string            `json:"mode"` // new, resumed or reused
}

// ResultItem is one question of a completed attempt.
type ResultItem struct {
	Index         int      `json:"index"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	Choice        int      `json:"choice"`
	CorrectAnswer int      `json:"correctAnswer"`
	Correct       bool     `json:"correct"`
	Explanation   string   `json:"explanation,omitempty"`
}

// AttemptResultResponse is the per-question breakdown of a completed attempt.
type AttemptResultResponse struct {
	Attempt   AttemptResponse `json:"attempt"`
	QuizTitle string          `json:"quizTitle"`
	Correct   int             `json:"correct"`
	Total     int             `json:"total"`
	Items     []ResultItem    `json:"items"`
}

// StudentQuizSummary is one assigned quiz on the student's dashboard.
type StudentQuizSummary struct {
	ID                string              `json:"id"`
	Title             string              `json:"title"`
	Description       string              `json:"description"`
	Duration          int                 `json:"duration"`
	QuestionsCount    int                 `json:"questionsCount"`
	Settings          domain.QuizSettings `json:"settings"`
	CompletedAttempts int                 `json:"completedAttempts"`
	BestScore         *float64            `json:"bestScore,omitempty"`
	ActiveAttempt     *AttemptResponse    `json:"activeAttempt,omitempty"`
	CanStart          bool                `json:"canStart"`
}

// StudentOverview is a student with their attempt statistics, for admins.
type StudentOverview struct {
	User              UserResponse `json:"user"`
	TotalAttempts     int          `json:"totalAttempts"`
	CompletedAttempts int          `json:"completedAttempts"`
	AverageScore      *float64     `json:"averageScore,omitempty"`
}
