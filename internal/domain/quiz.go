package domain

import (
	"strings"
	"time"
)

type QuizStatus string

const (
	QuizStatusDraft     QuizStatus = "draft"
	QuizStatusPublished QuizStatus = "published"
)

// QuizSettings controls retakes and pausing.
type QuizSettings struct {
	AllowRetakes bool `json:"allowRetakes"`
	AllowPause   bool `json:"allowPause"`
	MaxAttempts  int  `json:"maxAttempts"`
}

// Normalize forces MaxAttempts to 1 when retakes are disabled.
func (s QuizSettings) Normalize() QuizSettings {
	if !s.AllowRetakes {
		s.MaxAttempts = 1
	}
	return s
}

// AllowedAttempts is the number of completed attempts a student may hold.
func (s QuizSettings) AllowedAttempts() int {
	if !s.AllowRetakes {
		return 1
	}
	return s.MaxAttempts
}

// Quiz represents a named, timed assessment
type Quiz struct {
	ID             string       `json:"id"`
	AuthorID       string       `json:"authorId"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Duration       int          `json:"duration"` // minutes
	QuestionsCount int          `json:"questionsCount"`
	Status         QuizStatus   `json:"status"`
	Settings       QuizSettings `json:"settings"`
	Questions      []Question   `json:"questions"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// IsPublished reports whether the quiz can be taken.
func (q *Quiz) IsPublished() bool {
	return q.Status == QuizStatusPublished
}

// DurationSeconds is the attempt budget in seconds.
func (q *Quiz) DurationSeconds() int {
	return q.Duration * 60
}

// RemainingSlots is how many more questions the quiz wants.
func (q *Quiz) RemainingSlots() int {
	return q.QuestionsCount - len(q.Questions)
}

// Validate checks the quiz definition and returns every violated field.
func (q *Quiz) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(q.Title) == "" {
		errs = append(errs, NewMissingFieldError("title"))
	}
	if strings.TrimSpace(q.Description) == "" {
		errs = append(errs, NewMissingFieldError("description"))
	}
	if q.Duration < 1 {
		errs = append(errs, NewInvalidFieldError("duration", "must be at least 1 minute", q.Duration))
	}
	if q.QuestionsCount < 1 {
		errs = append(errs, NewInvalidFieldError("questionsCount", "must be at least 1", q.QuestionsCount))
	}
	if q.Settings.MaxAttempts < 1 {
		errs = append(errs, NewInvalidFieldError("settings.maxAttempts", "must be at least 1", q.Settings.MaxAttempts))
	}
	switch q.Status {
	case QuizStatusDraft, QuizStatusPublished:
	default:
		errs = append(errs, NewInvalidFieldError("status", "must be draft or published", q.Status))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Assignment links a quiz to a student who may take it.
type Assignment struct {
	QuizID     string    `json:"quizId"`
	StudentID  string    `json:"studentId"`
	AssignedAt time.Time `json:"assignedAt"`
}
