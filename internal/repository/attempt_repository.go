package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/repository/models"
	"quiz-forge/internal/util"

	"github.com/jmoiron/sqlx"
)

const attemptColumns = `
		id "id",
		quiz_id "quiz_id",
		student_id "student_id",
		answers "answers",
		score "score",
		time_spent "time_spent",
		remaining_time "remaining_time",
		status "status",
		started_at "started_at",
		resumed_at "resumed_at",
		completed_at "completed_at",
		created_at "created_at",
		updated_at "updated_at"`

// sqlxAttemptRepository implements domain.AttemptRepository using sqlx.
type sqlxAttemptRepository struct {
	db *sqlx.DB
}

func NewSQLXAttemptRepository(db *sqlx.DB) domain.AttemptRepository {
	return &sqlxAttemptRepository{db: db}
}

func toDomainAttempt(m *models.QuizAttempt) *domain.QuizAttempt {
	if m == nil {
		return nil
	}
	answers := []int(m.Answers)
	if answers == nil {
		answers = []int{}
	}
	return &domain.QuizAttempt{
		ID:            m.ID,
		QuizID:        m.QuizID,
		StudentID:     m.StudentID,
		Answers:       answers,
		Score:         util.NullFloat64ToPtr(m.Score),
		TimeSpent:     m.TimeSpent,
		RemainingTime: util.NullInt64ToIntPtr(m.RemainingTime),
		Status:        domain.AttemptStatus(m.Status),
		StartedAt:     m.StartedAt,
		ResumedAt:     m.ResumedAt,
		CompletedAt:   util.NullTimeToPtr(m.CompletedAt),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func fromDomainAttempt(a *domain.QuizAttempt) *models.QuizAttempt {
	if a == nil {
		return nil
	}
	return &models.QuizAttempt{
		ID:            a.ID,
		QuizID:        a.QuizID,
		StudentID:     a.StudentID,
		Answers:       models.IntSlice(a.Answers),
		Score:         util.FloatPtrToNullFloat64(a.Score),
		TimeSpent:     a.TimeSpent,
		RemainingTime: util.IntPtrToNullInt64(a.RemainingTime),
		Status:        string(a.Status),
		StartedAt:     a.StartedAt,
		ResumedAt:     a.ResumedAt,
		CompletedAt:   util.TimePtrToNullTime(a.CompletedAt),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// FindActiveAttempt implements domain.AttemptRepository
func (r *sqlxAttemptRepository) FindActiveAttempt(ctx context.Context, quizID, studentID string) (*domain.QuizAttempt, error) {
	exec := GetExecutor(ctx, r.db)
	var m models.QuizAttempt
	query := exec.Rebind(`SELECT` + attemptColumns + `
	FROM quiz_attempts
	WHERE quiz_id = ? AND student_id = ? AND status IN (?, ?)
	ORDER BY created_at DESC`)
	err := exec.GetContext(ctx, &m, query, quizID, studentID, string(domain.AttemptInProgress), string(domain.AttemptPaused))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active attempt: %w", err)
	}
	return toDomainAttempt(&m), nil
}

// CountCompletedAttempts implements domain.AttemptRepository
func (r *sqlxAttemptRepository) CountCompletedAttempts(ctx context.Context, quizID, studentID string) (int, error) {
	exec := GetExecutor(ctx, r.db)
	var n int
	query := exec.Rebind(`SELECT COUNT(*) FROM quiz_attempts WHERE quiz_id = ? AND student_id = ? AND status = ?`)
	if err := exec.GetContext(ctx, &n, query, quizID, studentID, string(domain.AttemptCompleted)); err != nil {
		return 0, fmt.Errorf("failed to count completed attempts: %w", err)
	}
	return n, nil
}

// SaveAttempt implements domain.AttemptRepository. It updates the row by ID
// and inserts it when no row was affected.
func (r *sqlxAttemptRepository) SaveAttempt(ctx context.Context, attempt *domain.QuizAttempt) (*domain.QuizAttempt, error) {
	exec := GetExecutor(ctx, r.db)
	now := time.Now()
	if attempt.ID == "" {
		attempt.ID = util.NewULID()
	}
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = now
	}
	if attempt.UpdatedAt.IsZero() {
		attempt.UpdatedAt = now
	}
	m := fromDomainAttempt(attempt)
	answers, err := m.Answers.Value()
	if err != nil {
		return nil, fmt.Errorf("failed to encode answers: %w", err)
	}

	update := exec.Rebind(`UPDATE quiz_attempts SET
		answers = ?,
		score = ?,
		time_spent = ?,
		remaining_time = ?,
		status = ?,
		resumed_at = ?,
		completed_at = ?,
		updated_at = ?
	WHERE id = ?`)
	res, err := exec.ExecContext(ctx, update,
		answers, m.Score, m.TimeSpent, m.RemainingTime, m.Status, m.ResumedAt, m.CompletedAt, m.UpdatedAt, m.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update attempt %s: %w", m.ID, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	} else if n > 0 {
		return attempt, nil
	}

	insert := exec.Rebind(`INSERT INTO quiz_attempts (
		id, quiz_id, student_id, answers, score, time_spent, remaining_time, status,
		started_at, resumed_at, completed_at, created_at, updated_at
	) VALUES (` + placeholders(13) + `)`)
	_, err = exec.ExecContext(ctx, insert,
		m.ID, m.QuizID, m.StudentID, answers, m.Score, m.TimeSpent, m.RemainingTime, m.Status,
		m.StartedAt, m.ResumedAt, m.CompletedAt, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, fmt.Errorf("failed to insert attempt %s: %w", m.ID, err)
	}
	return attempt, nil
}

// FindAttempt implements domain.AttemptRepository
func (r *sqlxAttemptRepository) FindAttempt(ctx context.Context, id string) (*domain.QuizAttempt, error) {
	exec := GetExecutor(ctx, r.db)
	var m models.QuizAttempt
	query := exec.Rebind(`SELECT` + attemptColumns + `
	FROM quiz_attempts
	WHERE id = ?`)
	if err := exec.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get attempt %s: %w", id, err)
	}
	return toDomainAttempt(&m), nil
}

// ListAttemptsByStudent implements domain.AttemptRepository
func (r *sqlxAttemptRepository) ListAttemptsByStudent(ctx context.Context, studentID string) ([]*domain.QuizAttempt, error) {
	return r.list(ctx, `WHERE student_id = ? ORDER BY created_at DESC`, studentID)
}

// ListAttemptsByQuiz implements domain.AttemptRepository
func (r *sqlxAttemptRepository) ListAttemptsByQuiz(ctx context.Context, quizID string) ([]*domain.QuizAttempt, error) {
	return r.list(ctx, `WHERE quiz_id = ? ORDER BY created_at DESC`, quizID)
}

// ListInProgressAttempts implements domain.AttemptRepository
func (r *sqlxAttemptRepository) ListInProgressAttempts(ctx context.Context) ([]*domain.QuizAttempt, error) {
	return r.list(ctx, `WHERE status = ? ORDER BY resumed_at ASC`, string(domain.AttemptInProgress))
}

func (r *sqlxAttemptRepository) list(ctx context.Context, where string, args ...interface{}) ([]*domain.QuizAttempt, error) {
	exec := GetExecutor(ctx, r.db)
	var rows []models.QuizAttempt
	query := exec.Rebind(`SELECT` + attemptColumns + `
	FROM quiz_attempts
	` + where)
	if err := exec.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	out := make([]*domain.QuizAttempt, 0, len(rows))
	for i := range rows {
		out = append(out, toDomainAttempt(&rows[i]))
	}
	return out, nil
}
