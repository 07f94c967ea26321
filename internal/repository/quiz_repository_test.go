package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quizRowColumns = []string{
	"id", "author_id", "title", "description", "duration", "questions_count", "status",
	"allow_retakes", "allow_pause", "max_attempts", "created_at", "updated_at",
}

var questionRowColumns = []string{
	"id", "quiz_id", "position", "question_text", "options", "correct_answer", "explanation", "complexity", "created_at",
}

func TestQuizConverters(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	q := &domain.Quiz{
		ID: "q1", AuthorID: "u1", Title: "Cells", Description: "Biology basics",
		Duration: 10, QuestionsCount: 5, Status: domain.QuizStatusDraft,
		Settings:  domain.QuizSettings{AllowRetakes: true, AllowPause: false, MaxAttempts: 3},
		CreatedAt: now, UpdatedAt: now,
	}
	m := fromDomainQuiz(q)
	assert.Equal(t, 1, m.AllowRetakes)
	assert.Equal(t, 0, m.AllowPause)
	assert.Equal(t, "draft", m.Status)

	back := toDomainQuiz(m)
	assert.Equal(t, q.Settings, back.Settings)
	assert.Equal(t, q.Title, back.Title)

	qm := &models.Question{
		ID: "x", QuizID: "q1", QuestionText: "What is the powerhouse of the cell?",
		Options: models.StringSlice{"a", "b", "c", "d"}, CorrectAnswer: 2,
		Explanation: sql.NullString{},
	}
	dq := toDomainQuestion(qm)
	assert.Equal(t, "", dq.Explanation)
	assert.Equal(t, []string{"a", "b", "c", "d"}, dq.Options)

	assert.Nil(t, toDomainQuiz(nil))
	assert.Nil(t, fromDomainQuiz(nil))
}

func TestQuizDatabaseAdapter_FindQuiz(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizDatabaseAdapter(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("with questions", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM quizzes q WHERE q.id = \?`).
			WithArgs("q1").
			WillReturnRows(sqlmock.NewRows(quizRowColumns).
				AddRow("q1", "u1", "Cells", "Biology", 10, 2, "published", 1, 1, 2, now, now))
		mock.ExpectQuery(`SELECT .* FROM questions WHERE quiz_id = \? ORDER BY position ASC`).
			WithArgs("q1").
			WillReturnRows(sqlmock.NewRows(questionRowColumns).
				AddRow("x1", "q1", 0, "First question text?", `["a","b","c","d"]`, 1, "Because it is the first.", "lite", now).
				AddRow("x2", "q1", 1, "Second question text?", `["e","f","g","h"]`, 3, nil, nil, now))

		quiz, err := repo.FindQuiz(ctx, "q1")
		require.NoError(t, err)
		assert.True(t, quiz.IsPublished())
		assert.True(t, quiz.Settings.AllowPause)
		require.Len(t, quiz.Questions, 2)
		assert.Equal(t, 3, quiz.Questions[1].CorrectAnswer)
		assert.Equal(t, domain.ComplexityLite, quiz.Questions[0].Complexity)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM quizzes q WHERE q.id = \?`).
			WithArgs("nope").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindQuiz(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizDatabaseAdapter_CreateAndUpdate(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizDatabaseAdapter(db)
	ctx := context.Background()

	quiz := &domain.Quiz{
		AuthorID: "u1", Title: "Cells", Description: "Biology", Duration: 10, QuestionsCount: 5,
		Status: domain.QuizStatusDraft, Settings: domain.QuizSettings{MaxAttempts: 1},
	}

	mock.ExpectExec(`INSERT INTO quizzes`).
		WithArgs(sqlmock.AnyArg(), "u1", "Cells", "Biology", 10, 5, "draft", 0, 0, 1, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.CreateQuiz(ctx, quiz))
	assert.Len(t, quiz.ID, 26)

	mock.ExpectExec(`UPDATE quizzes SET .* WHERE id = \?`).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdateQuiz(ctx, &domain.Quiz{ID: "gone"}), domain.ErrNotFound)

	mock.ExpectExec(`UPDATE quizzes SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	quiz.Status = domain.QuizStatusPublished
	assert.NoError(t, repo.UpdateQuiz(ctx, quiz))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizDatabaseAdapter_Questions(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizDatabaseAdapter(db)
	ctx := context.Background()

	questions := []domain.Question{
		{Position: 0, Text: "What is two plus two?", Options: []string{"1", "2", "3", "4"}, CorrectAnswer: 3},
		{ID: "keep-me", Position: 1, Text: "What is three plus three?", Options: []string{"6", "7", "8", "9"}},
	}
	mock.ExpectExec(`INSERT INTO questions`).
		WithArgs(sqlmock.AnyArg(), "q1", 0, "What is two plus two?", `["1","2","3","4"]`, 3, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO questions`).
		WithArgs("keep-me", "q1", 1, sqlmock.AnyArg(), sqlmock.AnyArg(), 0, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.AddQuestions(ctx, "q1", questions))
	assert.NotEmpty(t, questions[0].ID)
	assert.Equal(t, "q1", questions[1].QuizID)

	mock.ExpectExec(`DELETE FROM questions WHERE id = \? AND quiz_id = \?`).
		WithArgs("x9", "q1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.DeleteQuestion(ctx, "q1", "x9"), domain.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizDatabaseAdapter_DeleteQuiz(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizDatabaseAdapter(db)

	mock.ExpectExec(`DELETE FROM questions WHERE quiz_id = \?`).WithArgs("q1").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM quiz_assignments WHERE quiz_id = \?`).WithArgs("q1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM quizzes WHERE id = \?`).WithArgs("q1").WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.DeleteQuiz(context.Background(), "q1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizDatabaseAdapter_Assignments(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizDatabaseAdapter(db)
	ctx := context.Background()
	now := time.Now()

	mock.ExpectExec(`INSERT INTO quiz_assignments \(quiz_id, student_id, assigned_at\) VALUES \(\?, \?, \?\)`).
		WithArgs("q1", "s1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.AssignQuiz(ctx, domain.Assignment{QuizID: "q1", StudentID: "s1"}))

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM quiz_assignments WHERE quiz_id = \? AND student_id = \?`).
		WithArgs("q1", "s1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	ok, err := repo.IsAssigned(ctx, "q1", "s1")
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectQuery(`SELECT .* FROM quizzes q JOIN quiz_assignments qa ON qa.quiz_id = q.id WHERE qa.student_id = \?`).
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows(quizRowColumns).
			AddRow("q1", "u1", "Cells", "Biology", 10, 2, "published", 0, 0, 1, now, now))
	quizzes, err := repo.ListAssignedQuizzes(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, quizzes, 1)
	assert.Equal(t, 1, quizzes[0].Settings.AllowedAttempts())

	assert.NoError(t, mock.ExpectationsWereMet())
}
