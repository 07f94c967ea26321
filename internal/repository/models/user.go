package models

import (
	"database/sql"
	"time"
)

// User represents a user in the system.
type User struct {
	ID           string    `db:"id"` // ULID
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	PasswordHash string    `db:"password_hash"` // bcrypt
	Role         string    `db:"role"`          // admin/student
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// QuizAttempt represents a student's attempt at a quiz.
type QuizAttempt struct {
	ID            string          `db:"id"`
	QuizID        string          `db:"quiz_id"`
	StudentID     string          `db:"student_id"`
	Answers       IntSlice        `db:"answers"`        // -1 marks an unanswered slot
	Score         sql.NullFloat64 `db:"score"`          // set on completion
	TimeSpent     int             `db:"time_spent"`     // seconds
	RemainingTime sql.NullInt64   `db:"remaining_time"` // seconds, NULL once completed
	Status        string          `db:"status"`
	StartedAt     time.Time       `db:"started_at"`
	ResumedAt     time.Time       `db:"resumed_at"`
	CompletedAt   sql.NullTime    `db:"completed_at"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// Document is uploaded source text plus its generated summary (JSON).
type Document struct {
	ID        string         `db:"id"`
	OwnerID   string         `db:"owner_id"`
	Title     string         `db:"title"`
	Content   string         `db:"content"`
	Summary   sql.NullString `db:"summary"`
	WordCount int            `db:"word_count"`
	CreatedAt time.Time      `db:"created_at"`
}
