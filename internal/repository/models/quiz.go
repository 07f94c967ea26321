package models

import (
	"database/sql"
	"time"
)

// Quiz is a row of the quizzes table. Booleans are stored as 0/1.
type Quiz struct {
	ID             string    `db:"id"`
	AuthorID       string    `db:"author_id"`
	Title          string    `db:"title"`
	Description    string    `db:"description"`
	Duration       int       `db:"duration"`
	QuestionsCount int       `db:"questions_count"`
	Status         string    `db:"status"`
	AllowRetakes   int       `db:"allow_retakes"`
	AllowPause     int       `db:"allow_pause"`
	MaxAttempts    int       `db:"max_attempts"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// Question is a row of the questions table.
type Question struct {
	ID            string         `db:"id"`
	QuizID        string         `db:"quiz_id"`
	Position      int            `db:"position"`
	QuestionText  string         `db:"question_text"`
	Options       StringSlice    `db:"options"`
	CorrectAnswer int            `db:"correct_answer"`
	Explanation   sql.NullString `db:"explanation"`
	Complexity    sql.NullString `db:"complexity"`
	CreatedAt     time.Time      `db:"created_at"`
}

// Assignment is a row of the quiz_assignments table.
type Assignment struct {
	QuizID     string    `db:"quiz_id"`
	StudentID  string    `db:"student_id"`
	AssignedAt time.Time `db:"assigned_at"`
}
