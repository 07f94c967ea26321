package domain

import (
	"math"
	"time"
)

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "in-progress"
	AttemptPaused     AttemptStatus = "paused"
	AttemptCompleted  AttemptStatus = "completed"
)

// Unanswered marks an answer slot the student has not filled.
const Unanswered = -1

// QuizAttempt is one student's run through a quiz.
//
// RemainingTime is the countdown value as of ResumedAt; while the attempt is
// in progress the live value is RemainingTime minus the time since ResumedAt.
type QuizAttempt struct {
	ID            string        `json:"id"`
	QuizID        string        `json:"quizId"`
	StudentID     string        `json:"studentId"`
	Answers       []int         `json:"answers"`
	Score         *float64      `json:"score,omitempty"`
	TimeSpent     int           `json:"timeSpent"`
	RemainingTime *int          `json:"remainingTime"`
	Status        AttemptStatus `json:"status"`
	StartedAt     time.Time     `json:"startedAt"`
	ResumedAt     time.Time     `json:"resumedAt"`
	CompletedAt   *time.Time    `json:"completedAt,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// SubmitOptions distinguishes a manual submit from the timer-driven one.
type SubmitOptions struct {
	// Auto is set when the clock ran out; it skips the unanswered check.
	Auto bool
	// Confirmed acknowledges that unanswered questions will be scored as wrong.
	Confirmed bool
}

// CheckEligibility decides whether a student may start a fresh attempt.
func CheckEligibility(quizID, studentID string, settings QuizSettings, completed int) error {
	allowed := settings.AllowedAttempts()
	if completed >= allowed {
		return &EligibilityError{
			QuizID:    quizID,
			StudentID: studentID,
			Completed: completed,
			Allowed:   allowed,
		}
	}
	return nil
}

// NewAttempt creates an in-progress attempt with every slot unanswered and a full clock.
func NewAttempt(id string, quiz *Quiz, studentID string, now time.Time) *QuizAttempt {
	answers := make([]int, len(quiz.Questions))
	for i := range answers {
		answers[i] = Unanswered
	}
	remaining := quiz.DurationSeconds()
	return &QuizAttempt{
		ID:            id,
		QuizID:        quiz.ID,
		StudentID:     studentID,
		Answers:       answers,
		RemainingTime: &remaining,
		Status:        AttemptInProgress,
		StartedAt:     now,
		ResumedAt:     now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsActive reports whether the attempt still counts against the single-active-attempt rule.
func (a *QuizAttempt) IsActive() bool {
	return a.Status == AttemptInProgress || a.Status == AttemptPaused
}

// Remaining returns the live countdown in seconds without mutating the attempt.
func (a *QuizAttempt) Remaining(now time.Time) int {
	if a.RemainingTime == nil {
		return 0
	}
	if a.Status != AttemptInProgress {
		return *a.RemainingTime
	}
	left := *a.RemainingTime - elapsedSeconds(a.ResumedAt, now)
	if left < 0 {
		return 0
	}
	return left
}

// Tick folds the elapsed whole seconds into RemainingTime and reports whether the clock hit zero.
func (a *QuizAttempt) Tick(now time.Time) bool {
	if a.Status != AttemptInProgress {
		return false
	}
	if a.RemainingTime == nil {
		zero := 0
		a.RemainingTime = &zero
		return true
	}
	elapsed := elapsedSeconds(a.ResumedAt, now)
	if elapsed > 0 {
		left := *a.RemainingTime - elapsed
		if left < 0 {
			left = 0
		}
		a.RemainingTime = &left
		a.ResumedAt = a.ResumedAt.Add(time.Duration(elapsed) * time.Second)
		a.UpdatedAt = now
	}
	return *a.RemainingTime == 0
}

// Answer records choice for the question at index; -1 clears it.
func (a *QuizAttempt) Answer(index, choice int, now time.Time) error {
	if a.Status != AttemptInProgress {
		return &InvalidTransitionError{Action: "answer", From: a.Status}
	}
	if index < 0 || index >= len(a.Answers) {
		return NewInvalidInputError("question index out of range").WithContext("index", index)
	}
	if choice < Unanswered || choice >= OptionsPerQuestion {
		return NewInvalidInputError("choice must be between 0 and 3").WithContext("choice", choice)
	}
	a.Answers[index] = choice
	a.UpdatedAt = now
	return nil
}

// Pause stops the clock and stores what is left of it.
func (a *QuizAttempt) Pause(allowPause bool, now time.Time) error {
	if a.Status != AttemptInProgress {
		return &InvalidTransitionError{Action: "pause", From: a.Status}
	}
	if !allowPause {
		return &InvalidTransitionError{Action: "pause", From: a.Status, Reason: "pausing is disabled for this quiz"}
	}
	a.Tick(now)
	a.TimeSpent = elapsedSeconds(a.StartedAt, now)
	a.Status = AttemptPaused
	a.UpdatedAt = now
	return nil
}

// Resume restarts the clock from the stored remaining time, or from
// fallbackSeconds when none was stored.
func (a *QuizAttempt) Resume(fallbackSeconds int, now time.Time) error {
	if a.Status != AttemptPaused {
		return &InvalidTransitionError{Action: "resume", From: a.Status}
	}
	if a.RemainingTime == nil {
		a.RemainingTime = &fallbackSeconds
	}
	a.Status = AttemptInProgress
	a.ResumedAt = now
	a.UpdatedAt = now
	return nil
}

// Submit freezes the answers and computes the score. It never runs twice.
func (a *QuizAttempt) Submit(questions []Question, opts SubmitOptions, now time.Time) error {
	if a.Status != AttemptInProgress {
		return &InvalidTransitionError{Action: "submit", From: a.Status}
	}
	if !opts.Auto && !opts.Confirmed {
		if n := a.Unanswered(); n > 0 {
			return &ConfirmationRequiredError{Unanswered: n}
		}
	}
	score := Score(a.Answers, questions)
	completedAt := now
	a.Score = &score
	a.TimeSpent = int(math.Round(now.Sub(a.StartedAt).Seconds()))
	a.Status = AttemptCompleted
	a.CompletedAt = &completedAt
	a.RemainingTime = nil
	a.UpdatedAt = now
	return nil
}

// Unanswered counts the slots still holding the sentinel.
func (a *QuizAttempt) Unanswered() int {
	n := 0
	for _, v := range a.Answers {
		if v == Unanswered {
			n++
		}
	}
	return n
}

// ResumeIndex is the first unanswered question, or 0 when everything is answered.
func (a *QuizAttempt) ResumeIndex() int {
	for i, v := range a.Answers {
		if v == Unanswered {
			return i
		}
	}
	return 0
}

// Score is the percentage of questions whose answer matches the correct option.
func Score(answers []int, questions []Question) float64 {
	if len(questions) == 0 {
		return 0
	}
	correct := 0
	for i, q := range questions {
		if i < len(answers) && answers[i] != Unanswered && answers[i] == q.CorrectAnswer {
			correct++
		}
	}
	return float64(correct) / float64(len(questions)) * 100
}

func elapsedSeconds(from, to time.Time) int {
	d := to.Sub(from)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}
