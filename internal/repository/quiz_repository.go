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

const quizColumns = `
		q.id "id",
		q.author_id "author_id",
		q.title "title",
		q.description "description",
		q.duration "duration",
		q.questions_count "questions_count",
		q.status "status",
		q.allow_retakes "allow_retakes",
		q.allow_pause "allow_pause",
		q.max_attempts "max_attempts",
		q.created_at "created_at",
		q.updated_at "updated_at"`

const questionColumns = `
		id "id",
		quiz_id "quiz_id",
		position "position",
		question_text "question_text",
		options "options",
		correct_answer "correct_answer",
		explanation "explanation",
		complexity "complexity",
		created_at "created_at"`

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx.
type QuizDatabaseAdapter struct {
	db *sqlx.DB
}

func NewQuizDatabaseAdapter(db *sqlx.DB) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db}
}

func toDomainQuiz(m *models.Quiz) *domain.Quiz {
	if m == nil {
		return nil
	}
	return &domain.Quiz{
		ID:             m.ID,
		AuthorID:       m.AuthorID,
		Title:          m.Title,
		Description:    m.Description,
		Duration:       m.Duration,
		QuestionsCount: m.QuestionsCount,
		Status:         domain.QuizStatus(m.Status),
		Settings: domain.QuizSettings{
			AllowRetakes: m.AllowRetakes != 0,
			AllowPause:   m.AllowPause != 0,
			MaxAttempts:  m.MaxAttempts,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromDomainQuiz(q *domain.Quiz) *models.Quiz {
	if q == nil {
		return nil
	}
	return &models.Quiz{
		ID:             q.ID,
		AuthorID:       q.AuthorID,
		Title:          q.Title,
		Description:    q.Description,
		Duration:       q.Duration,
		QuestionsCount: q.QuestionsCount,
		Status:         string(q.Status),
		AllowRetakes:   util.BoolToInt(q.Settings.AllowRetakes),
		AllowPause:     util.BoolToInt(q.Settings.AllowPause),
		MaxAttempts:    q.Settings.MaxAttempts,
		CreatedAt:      q.CreatedAt,
		UpdatedAt:      q.UpdatedAt,
	}
}

func toDomainQuestion(m *models.Question) domain.Question {
	options := []string(m.Options)
	if options == nil {
		options = []string{}
	}
	return domain.Question{
		ID:            m.ID,
		QuizID:        m.QuizID,
		Position:      m.Position,
		Text:          m.QuestionText,
		Options:       options,
		CorrectAnswer: m.CorrectAnswer,
		Explanation:   m.Explanation.String,
		Complexity:    domain.Complexity(m.Complexity.String),
		CreatedAt:     m.CreatedAt,
	}
}

func fromDomainQuestion(quizID string, q domain.Question) *models.Question {
	return &models.Question{
		ID:            q.ID,
		QuizID:        quizID,
		Position:      q.Position,
		QuestionText:  q.Text,
		Options:       models.StringSlice(q.Options),
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   util.StringToNullString(q.Explanation),
		Complexity:    util.StringToNullString(string(q.Complexity)),
		CreatedAt:     q.CreatedAt,
	}
}

// FindQuiz implements domain.QuizRepository
func (a *QuizDatabaseAdapter) FindQuiz(ctx context.Context, id string) (*domain.Quiz, error) {
	exec := GetExecutor(ctx, a.db)
	var m models.Quiz
	query := exec.Rebind(`SELECT` + quizColumns + `
	FROM quizzes q
	WHERE q.id = ?`)
	if err := exec.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quiz by ID %s: %w", id, err)
	}

	quiz := toDomainQuiz(&m)
	questions, err := a.ListQuestions(ctx, id)
	if err != nil {
		return nil, err
	}
	quiz.Questions = questions
	return quiz, nil
}

// ListQuizzes implements domain.QuizRepository. Questions are not loaded.
func (a *QuizDatabaseAdapter) ListQuizzes(ctx context.Context) ([]*domain.Quiz, error) {
	exec := GetExecutor(ctx, a.db)
	var rows []models.Quiz
	query := `SELECT` + quizColumns + `
	FROM quizzes q
	ORDER BY q.created_at DESC`
	if err := exec.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	return toDomainQuizzes(rows), nil
}

func toDomainQuizzes(rows []models.Quiz) []*domain.Quiz {
	out := make([]*domain.Quiz, 0, len(rows))
	for i := range rows {
		out = append(out, toDomainQuiz(&rows[i]))
	}
	return out
}

// CreateQuiz implements domain.QuizRepository
func (a *QuizDatabaseAdapter) CreateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	exec := GetExecutor(ctx, a.db)
	now := time.Now()
	if quiz.ID == "" {
		quiz.ID = util.NewULID()
	}
	quiz.CreatedAt = now
	quiz.UpdatedAt = now
	m := fromDomainQuiz(quiz)

	query := exec.Rebind(`INSERT INTO quizzes (
		id, author_id, title, description, duration, questions_count, status,
		allow_retakes, allow_pause, max_attempts, created_at, updated_at
	) VALUES (` + placeholders(12) + `)`)

	_, err := exec.ExecContext(ctx, query,
		m.ID, m.AuthorID, m.Title, m.Description, m.Duration, m.QuestionsCount, m.Status,
		m.AllowRetakes, m.AllowPause, m.MaxAttempts, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create quiz: %w", err)
	}
	return nil
}

// UpdateQuiz implements domain.QuizRepository. Questions are saved separately.
func (a *QuizDatabaseAdapter) UpdateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	exec := GetExecutor(ctx, a.db)
	quiz.UpdatedAt = time.Now()
	m := fromDomainQuiz(quiz)

	query := exec.Rebind(`UPDATE quizzes SET
		title = ?,
		description = ?,
		duration = ?,
		questions_count = ?,
		status = ?,
		allow_retakes = ?,
		allow_pause = ?,
		max_attempts = ?,
		updated_at = ?
	WHERE id = ?`)

	res, err := exec.ExecContext(ctx, query,
		m.Title, m.Description, m.Duration, m.QuestionsCount, m.Status,
		m.AllowRetakes, m.AllowPause, m.MaxAttempts, m.UpdatedAt, m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update quiz: %w", err)
	}
	return requireAffected(res)
}

// DeleteQuiz implements domain.QuizRepository. It removes the quiz with its questions and assignments.
func (a *QuizDatabaseAdapter) DeleteQuiz(ctx context.Context, id string) error {
	exec := GetExecutor(ctx, a.db)
	for _, q := range []string{
		`DELETE FROM questions WHERE quiz_id = ?`,
		`DELETE FROM quiz_assignments WHERE quiz_id = ?`,
	} {
		if _, err := exec.ExecContext(ctx, exec.Rebind(q), id); err != nil {
			return fmt.Errorf("failed to delete quiz %s: %w", id, err)
		}
	}
	res, err := exec.ExecContext(ctx, exec.Rebind(`DELETE FROM quizzes WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete quiz %s: %w", id, err)
	}
	return requireAffected(res)
}

// ListQuestions implements domain.QuizRepository
func (a *QuizDatabaseAdapter) ListQuestions(ctx context.Context, quizID string) ([]domain.Question, error) {
	exec := GetExecutor(ctx, a.db)
	var rows []models.Question
	query := exec.Rebind(`SELECT` + questionColumns + `
	FROM questions
	WHERE quiz_id = ?
	ORDER BY position ASC`)
	if err := exec.SelectContext(ctx, &rows, query, quizID); err != nil {
		return nil, fmt.Errorf("failed to list questions for quiz %s: %w", quizID, err)
	}
	out := make([]domain.Question, 0, len(rows))
	for i := range rows {
		out = append(out, toDomainQuestion(&rows[i]))
	}
	return out, nil
}

// AddQuestions implements domain.QuizRepository. Positions are taken from the questions as given.
func (a *QuizDatabaseAdapter) AddQuestions(ctx context.Context, quizID string, questions []domain.Question) error {
	exec := GetExecutor(ctx, a.db)
	query := exec.Rebind(`INSERT INTO questions (
		id, quiz_id, position, question_text, options, correct_answer, explanation, complexity, created_at
	) VALUES (` + placeholders(9) + `)`)

	now := time.Now()
	for i := range questions {
		if questions[i].ID == "" {
			questions[i].ID = util.NewULID()
		}
		if questions[i].CreatedAt.IsZero() {
			questions[i].CreatedAt = now
		}
		questions[i].QuizID = quizID
		m := fromDomainQuestion(quizID, questions[i])
		options, err := m.Options.Value()
		if err != nil {
			return fmt.Errorf("failed to encode options: %w", err)
		}
		_, err = exec.ExecContext(ctx, query,
			m.ID, m.QuizID, m.Position, m.QuestionText, options, m.CorrectAnswer, m.Explanation, m.Complexity, m.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to add question to quiz %s: %w", quizID, err)
		}
	}
	return nil
}

// DeleteQuestion implements domain.QuizRepository
func (a *QuizDatabaseAdapter) DeleteQuestion(ctx context.Context, quizID, questionID string) error {
	exec := GetExecutor(ctx, a.db)
	res, err := exec.ExecContext(ctx, exec.Rebind(`DELETE FROM questions WHERE id = ? AND quiz_id = ?`), questionID, quizID)
	if err != nil {
		return fmt.Errorf("failed to delete question %s: %w", questionID, err)
	}
	return requireAffected(res)
}

// AssignQuiz implements domain.QuizRepository
func (a *QuizDatabaseAdapter) AssignQuiz(ctx context.Context, assignment domain.Assignment) error {
	exec := GetExecutor(ctx, a.db)
	if assignment.AssignedAt.IsZero() {
		assignment.AssignedAt = time.Now()
	}
	query := exec.Rebind(`INSERT INTO quiz_assignments (quiz_id, student_id, assigned_at) VALUES (?, ?, ?)`)
	if _, err := exec.ExecContext(ctx, query, assignment.QuizID, assignment.StudentID, assignment.AssignedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("failed to assign quiz %s: %w", assignment.QuizID, err)
	}
	return nil
}

// IsAssigned implements domain.QuizRepository
func (a *QuizDatabaseAdapter) IsAssigned(ctx context.Context, quizID, studentID string) (bool, error) {
	exec := GetExecutor(ctx, a.db)
	var n int
	query := exec.Rebind(`SELECT COUNT(*) FROM quiz_assignments WHERE quiz_id = ? AND student_id = ?`)
	if err := exec.GetContext(ctx, &n, query, quizID, studentID); err != nil {
		return false, fmt.Errorf("failed to check assignment: %w", err)
	}
	return n > 0, nil
}

// ListAssignedQuizzes implements domain.QuizRepository. Questions are not loaded.
func (a *QuizDatabaseAdapter) ListAssignedQuizzes(ctx context.Context, studentID string) ([]*domain.Quiz, error) {
	exec := GetExecutor(ctx, a.db)
	var rows []models.Quiz
	query := exec.Rebind(`SELECT` + quizColumns + `
	FROM quizzes q
	JOIN quiz_assignments qa ON qa.quiz_id = q.id
	WHERE qa.student_id = ?
	ORDER BY qa.assigned_at DESC`)
	if err := exec.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("failed to list quizzes assigned to %s: %w", studentID, err)
	}
	return toDomainQuizzes(rows), nil
}
