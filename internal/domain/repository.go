package domain

import (
	"context"
	"time"
)

// QuizRepository defines the interface for quiz persistence
type QuizRepository interface {
	// FindQuiz returns the quiz with its ordered questions, or ErrNotFound.
	FindQuiz(ctx context.Context, id string) (*Quiz, error)
	ListQuizzes(ctx context.Context) ([]*Quiz, error)
	CreateQuiz(ctx context.Context, quiz *Quiz) error
	UpdateQuiz(ctx context.Context, quiz *Quiz) error
	DeleteQuiz(ctx context.Context, id string) error

	ListQuestions(ctx context.Context, quizID string) ([]Question, error)
	AddQuestions(ctx context.Context, quizID string, questions []Question) error
	DeleteQuestion(ctx context.Context, quizID, questionID string) error

	AssignQuiz(ctx context.Context, assignment Assignment) error
	IsAssigned(ctx context.Context, quizID, studentID string) (bool, error)
	ListAssignedQuizzes(ctx context.Context, studentID string) ([]*Quiz, error)
}

// AttemptRepository defines the interface for attempt persistence
type AttemptRepository interface {
	// FindActiveAttempt returns the unique in-progress or paused attempt, or nil when there is none.
	FindActiveAttempt(ctx context.Context, quizID, studentID string) (*QuizAttempt, error)
	CountCompletedAttempts(ctx context.Context, quizID, studentID string) (int, error)
	// SaveAttempt inserts or updates the attempt by ID.
	SaveAttempt(ctx context.Context, attempt *QuizAttempt) (*QuizAttempt, error)
	FindAttempt(ctx context.Context, id string) (*QuizAttempt, error)
	ListAttemptsByStudent(ctx context.Context, studentID string) ([]*QuizAttempt, error)
	ListAttemptsByQuiz(ctx context.Context, quizID string) ([]*QuizAttempt, error)
	ListInProgressAttempts(ctx context.Context) ([]*QuizAttempt, error)
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ListUsersByRole(ctx context.Context, role Role) ([]*User, error)
}

// DocumentRepository defines the interface for document persistence
type DocumentRepository interface {
	CreateDocument(ctx context.Context, doc *Document) error
	UpdateSummary(ctx context.Context, id string, summary *DocumentSummary) error
	GetDocument(ctx context.Context, id string) (*Document, error)
	ListDocuments(ctx context.Context, ownerID string) ([]*Document, error)
}

// TransactionManager runs fn inside a single database transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher emits domain events to interested consumers.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
	Close() error
}

// Event types
const (
	EventAttemptCompleted   = "attempt.completed"
	EventQuestionsGenerated = "questions.generated"
)

// AttemptCompletedEvent is published when an attempt is scored.
type AttemptCompletedEvent struct {
	AttemptID   string    `json:"attemptId"`
	QuizID      string    `json:"quizId"`
	StudentID   string    `json:"studentId"`
	Score       float64   `json:"score"`
	Auto        bool      `json:"auto"`
	CompletedAt time.Time `json:"completedAt"`
}

// QuestionsGeneratedEvent is published after a generation run.
type QuestionsGeneratedEvent struct {
	QuizID     string     `json:"quizId,omitempty"`
	Complexity Complexity `json:"complexity"`
	Requested  int        `json:"requested"`
	Accepted   int        `json:"accepted"`
	Rejected   int        `json:"rejected"`
}
