package service

import (
	"context"
	"errors"
	"testing"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type quizFixture struct {
	quizRepo    *MockQuizRepository
	attemptRepo *MockAttemptRepository
	userRepo    *MockUserRepository
	svc         QuizService
}

func newQuizFixture() *quizFixture {
	f := &quizFixture{
		quizRepo:    new(MockQuizRepository),
		attemptRepo: new(MockAttemptRepository),
		userRepo:    new(MockUserRepository),
	}
	f.svc = NewQuizService(f.quizRepo, f.attemptRepo, f.userRepo, &MockTransactionManager{}, newFakeClock())
	return f
}

func requireCode(t *testing.T, err error, code domain.ErrorCode) {
	t.Helper()
	var de *domain.DomainError
	require.True(t, errors.As(err, &de), "expected DomainError, got %v", err)
	assert.Equal(t, code, de.Code)
}

func TestQuizService_CreateQuiz(t *testing.T) {
	f := newQuizFixture()
	f.quizRepo.On("CreateQuiz", mock.Anything, mock.AnythingOfType("*domain.Quiz")).Return(nil)

	resp, err := f.svc.CreateQuiz(context.Background(), "admin-1", dto.CreateQuizRequest{
		Title:          " Go basics ",
		Description:    "Intro",
		Duration:       15,
		QuestionsCount: 5,
		Settings:       dto.QuizSettingsRequest{AllowRetakes: false, MaxAttempts: 4},
	})

	require.NoError(t, err)
	assert.Equal(t, "Go basics", resp.Title)
	assert.Equal(t, domain.QuizStatusDraft, resp.Status)
	assert.Equal(t, 1, resp.Settings.MaxAttempts, "retakes disabled forces a single attempt")
	assert.NotEmpty(t, resp.ID)
}

func TestQuizService_DraftOnlyOperations(t *testing.T) {
	published := func() *domain.Quiz { return testQuiz(domain.QuizSettings{MaxAttempts: 1}) }
	title := "New title"

	tests := []struct {
		name string
		call func(svc QuizService) error
	}{
		{"delete", func(svc QuizService) error { return svc.DeleteQuiz(context.Background(), testQuizID) }},
		{"update", func(svc QuizService) error {
			_, err := svc.UpdateQuiz(context.Background(), testQuizID, dto.UpdateQuizRequest{Title: &title})
			return err
		}},
		{"delete question", func(svc QuizService) error {
			return svc.DeleteQuestion(context.Background(), testQuizID, "q1")
		}},
		{"add questions", func(svc QuizService) error {
			_, err := svc.AddQuestions(context.Background(), testQuizID, dto.AddQuestionsRequest{Questions: []dto.QuestionInput{{
				Text: "Which is a channel?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 0,
			}}})
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newQuizFixture()
			f.quizRepo.On("FindQuiz", mock.Anything, testQuizID).Return(published(), nil)

			err := tt.call(f.svc)

			requireCode(t, err, domain.CodeQuizPublished)
			f.quizRepo.AssertNotCalled(t, "DeleteQuiz", mock.Anything, mock.Anything)
			f.quizRepo.AssertNotCalled(t, "UpdateQuiz", mock.Anything, mock.Anything)
		})
	}
}

func TestQuizService_PublishQuiz(t *testing.T) {
	t.Run("needs questions", func(t *testing.T) {
		f := newQuizFixture()
		quiz := testQuiz(domain.QuizSettings{MaxAttempts: 1})
		quiz.Status = domain.QuizStatusDraft
		quiz.Questions = nil
		f.quizRepo.On("FindQuiz", mock.Anything, testQuizID).Return(quiz, nil)

		_, err := f.svc.PublishQuiz(context.Background(), testQuizID)

		requireCode(t, err, domain.CodeInvalidInput)
	})

	t.Run("draft becomes published", func(t *testing.T) {
		f := newQuizFixture()
		quiz := testQuiz(domain.QuizSettings{MaxAttempts: 1})
		quiz.Status = domain.QuizStatusDraft
		f.quizRepo.On("FindQuiz", mock.Anything, testQuizID).Return(quiz, nil)
		f.quizRepo.On("UpdateQuiz", mock.Anything, mock.MatchedBy(func(q *domain.Quiz) bool {
			return q.Status == domain.QuizStatusPublished
		})).Return(nil)

		resp, err := f.svc.PublishQuiz(context.Background(), testQuizID)

		require.NoError(t, err)
		assert.Equal(t, domain.QuizStatusPublished, resp.Status)
	})

	t.Run("already published", func(t *testing.T) {
		f := newQuizFixture()
		f.quizRepo.On("FindQuiz", mock.Anything, testQuizID).Return(testQuiz(domain.QuizSettings{MaxAttempts: 1}), nil)

		_, err := f.svc.PublishQuiz(context.Background(), testQuizID)

		requireCode(t, err, domain.CodeConflict)
	})
}

func TestQuizService_AddQuestions(t *testing.T) {
	draft := func() *domain.Quiz {
		q := testQuiz(domain.QuizSettings{MaxAttempts: 1})
		q.Status = domain.QuizStatusDraft
		q.QuestionsCount = 4
		return q
	}

	t.Run("appends sanitized questions after existing ones", func(t *testing.T) {
		f := newQuizFixture()
		f.quizRepo.On("FindQuiz", mock.Anything, testQuizID).Return(draft(), nil)
		f.quizRepo.On("AddQuestions", mock.Anything, testQuizID, mock.MatchedBy(func(qs []domain.Question) bool {
			return len(qs) == 1 && qs[0].Position == 2 && qs[0].Text == `Which "keyword" declares a constant?`
		})).Return(nil)

		resp, err := f.svc.AddQuestions(context.Background(), testQuizID, dto.AddQuestionsRequest{Questions: []dto.QuestionInput{{
			Text:          "Which “keyword”   declares a constant?",
			Options:       []string{"var", "const", "let", "def"},
			CorrectAnswer: 1,
		}}})

		require.NoError(t, err)
		assert.Len(t, resp.Questions, 3)
	})

	t.Run("rejects invalid questions with field errors", func(t *testing.T) {
		f := newQuizFixture()

		_, err := f.svc.AddQuestions(context.Background(), testQuizID, dto.AddQuestionsRequest{Questions: []dto.QuestionInput{{
			Text:          "Short?",
			Options:       []string{"a", "a", "b", "c"},
			CorrectAnswer: 0,
			Explanation:   "tiny",
		}}})

		var verrs domain.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		require.Len(t, verrs, 1)
		assert.Equal(t, "questions[0]", verrs[0].Field)
		assert.Contains(t, verrs[0].Message, "All options must be unique")
		assert.Contains(t, verrs[0].Message, "Explanation must be at least 10 characters long")
		f.quizRepo.AssertNotCalled(t, "FindQuiz", mock.Anything, mock.Anything)
	})

	t.Run("rejects more questions than the quiz wants", func(t *testing.T) {
		f := newQuizFixture()
		quiz := draft()
		quiz.QuestionsCount = 2
		f.quizRepo.On("FindQuiz", mock.Anything, testQuizID).Return(quiz, nil)

		_, err := f.svc.AddQuestions(context.Background(), testQuizID, dto.AddQuestionsRequest{Questions: []dto.QuestionInput{{
			Text: "Which keyword declares a constant?", Options: []string{"var", "const", "let", "def"}, CorrectAnswer: 1,
		}}})

		requireCode(t, err, domain.CodeInvalidInput)
		f.quizRepo.AssertNotCalled(t, "AddQuestions", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestQuizService_AssignQuiz(t *testing.T) {
	tests := []struct {
		name     string
		user     *domain.User
		userErr  error
		assigned bool
		wantCode domain.ErrorCode
	}{
		{name: "assigns a student", user: &domain.User{ID: testStudentID, Role: domain.RoleStudent}},
		{name: "unknown student", userErr: domain.ErrNotFound, wantCode: domain.CodeNotFound},
		{name: "admins cannot be assigned", user: &domain.User{ID: testStudentID, Role: domain.RoleAdmin}, wantCode: domain.CodeInvalidInput},
		{name: "already assigned", user: &domain.User{ID: testStudentID, Role: domain.RoleStudent}, assigned: true, wantCode: domain.CodeConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newQuizFixture()
			f.quizRepo.On("FindQuiz", mock.Anything, testQuizID).Return(testQuiz(domain.QuizSettings{MaxAttempts: 1}), nil)
			if tt.user != nil {
				f.userRepo.On("GetUserByID", mock.Anything, testStudentID).Return(tt.user, nil)
			} else {
				f.userRepo.On("GetUserByID", mock.Anything, testStudentID).Return(nil, tt.userErr)
			}
			f.quizRepo.On("IsAssigned", mock.Anything, testQuizID, testStudentID).Return(tt.assigned, nil)
			f.quizRepo.On("AssignQuiz", mock.Anything, mock.MatchedBy(func(a domain.Assignment) bool {
				return a.QuizID == testQuizID && a.StudentID == testStudentID && !a.AssignedAt.IsZero()
			})).Return(nil)

			err := f.svc.AssignQuiz(context.Background(), testQuizID, dto.AssignQuizRequest{StudentID: testStudentID})

			if tt.wantCode == "" {
				require.NoError(t, err)
				f.quizRepo.AssertCalled(t, "AssignQuiz", mock.Anything, mock.Anything)
				return
			}
			requireCode(t, err, tt.wantCode)
		})
	}
}

func TestQuizService_ListStudentQuizzes(t *testing.T) {
	f := newQuizFixture()
	clock := newFakeClock()
	single := testQuiz(domain.QuizSettings{MaxAttempts: 1})
	retake := testQuiz(domain.QuizSettings{AllowRetakes: true, MaxAttempts: 3})
	retake.ID = "01HQZQUIZ0000000000000000B"
	draft := testQuiz(domain.QuizSettings{MaxAttempts: 1})
	draft.ID = "01HQZQUIZ0000000000000000C"
	draft.Status = domain.QuizStatusDraft

	score60, score80 := 60.0, 80.0
	attempts := []*domain.QuizAttempt{
		{ID: "a1", QuizID: single.ID, Status: domain.AttemptCompleted, Score: &score60},
		{ID: "a2", QuizID: retake.ID, Status: domain.AttemptCompleted, Score: &score60},
		{ID: "a3", QuizID: retake.ID, Status: domain.AttemptCompleted, Score: &score80},
		inProgressAttempt(clock.Now(), 300),
	}
	attempts[3].QuizID = retake.ID

	f.quizRepo.On("ListAssignedQuizzes", mock.Anything, testStudentID).Return([]*domain.Quiz{single, retake, draft}, nil)
	f.attemptRepo.On("ListAttemptsByStudent", mock.Anything, testStudentID).Return(attempts, nil)

	out, err := f.svc.ListStudentQuizzes(context.Background(), testStudentID)

	require.NoError(t, err)
	require.Len(t, out, 2, "drafts are not listed")
	assert.Equal(t, 1, out[0].CompletedAttempts)
	assert.False(t, out[0].CanStart)
	assert.Equal(t, 2, out[1].CompletedAttempts)
	require.NotNil(t, out[1].BestScore)
	assert.Equal(t, 80.0, *out[1].BestScore)
	assert.NotNil(t, out[1].ActiveAttempt)
	assert.True(t, out[1].CanStart)
}

func TestQuizService_ListStudents(t *testing.T) {
	f := newQuizFixture()
	s1, s2 := 50.0, 100.0
	f.userRepo.On("ListUsersByRole", mock.Anything, domain.RoleStudent).Return([]*domain.User{{ID: "s1", Role: domain.RoleStudent}}, nil)
	f.attemptRepo.On("ListAttemptsByStudent", mock.Anything, "s1").Return([]*domain.QuizAttempt{
		{Status: domain.AttemptCompleted, Score: &s1},
		{Status: domain.AttemptCompleted, Score: &s2},
		{Status: domain.AttemptPaused},
	}, nil)

	out, err := f.svc.ListStudents(context.Background())

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 3, out[0].TotalAttempts)
	assert.Equal(t, 2, out[0].CompletedAttempts)
	require.NotNil(t, out[0].AverageScore)
	assert.Equal(t, 75.0, *out[0].AverageScore)
}
