package handler_test

import (
	"context"
	"errors"
	"time"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
)

// --- Manual Mocks ---

// MockAuthService accepts "admin-token" and "student-token".
type MockAuthService struct {
	RegisterFunc func(ctx context.Context, req dto.RegisterRequest) (*dto.TokenResponse, error)
	LoginFunc    func(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error)
	MeFunc       func(ctx context.Context, userID string) (*dto.UserResponse, error)
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.TokenResponse, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	panic("MockAuthService.RegisterFunc not implemented")
}
func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	panic("MockAuthService.LoginFunc not implemented")
}
func (m *MockAuthService) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	if m.MeFunc != nil {
		return m.MeFunc(ctx, userID)
	}
	panic("MockAuthService.MeFunc not implemented")
}
func (m *MockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	switch tokenString {
	case "admin-token":
		return &dto.AuthClaims{UserID: adminID, Role: domain.RoleAdmin, TokenType: "access"}, nil
	case "student-token":
		return &dto.AuthClaims{UserID: studentID, Role: domain.RoleStudent, TokenType: "access"}, nil
	}
	return nil, errors.New("invalid token")
}
func (m *MockAuthService) CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration) (string, time.Time, error) {
	panic("MockAuthService.CreateJWT not implemented")
}

// MockQuizService
type MockQuizService struct {
	CreateQuizFunc         func(ctx context.Context, authorID string, req dto.CreateQuizRequest) (*dto.QuizResponse, error)
	ListQuizzesFunc        func(ctx context.Context) ([]dto.QuizResponse, error)
	GetQuizFunc            func(ctx context.Context, id string) (*dto.QuizResponse, error)
	UpdateQuizFunc         func(ctx context.Context, id string, req dto.UpdateQuizRequest) (*dto.QuizResponse, error)
	DeleteQuizFunc         func(ctx context.Context, id string) error
	PublishQuizFunc        func(ctx context.Context, id string) (*dto.QuizResponse, error)
	AddQuestionsFunc       func(ctx context.Context, quizID string, req dto.AddQuestionsRequest) (*dto.QuizResponse, error)
	DeleteQuestionFunc     func(ctx context.Context, quizID, questionID string) error
	AssignQuizFunc         func(ctx context.Context, quizID string, req dto.AssignQuizRequest) error
	ListStudentsFunc       func(ctx context.Context) ([]dto.StudentOverview, error)
	ListQuizAttemptsFunc   func(ctx context.Context, quizID string) ([]dto.AttemptResponse, error)
	ListStudentQuizzesFunc func(ctx context.Context, studentID string) ([]dto.StudentQuizSummary, error)
}

func (m *MockQuizService) CreateQuiz(ctx context.Context, authorID string, req dto.CreateQuizRequest) (*dto.QuizResponse, error) {
	if m.CreateQuizFunc != nil {
		return m.CreateQuizFunc(ctx, authorID, req)
	}
	panic("MockQuizService.CreateQuizFunc not implemented")
}
func (m *MockQuizService) ListQuizzes(ctx context.Context) ([]dto.QuizResponse, error) {
	if m.ListQuizzesFunc != nil {
		return m.ListQuizzesFunc(ctx)
	}
	panic("MockQuizService.ListQuizzesFunc not implemented")
}
func (m *MockQuizService) GetQuiz(ctx context.Context, id string) (*dto.QuizResponse, error) {
	if m.GetQuizFunc != nil {
		return m.GetQuizFunc(ctx, id)
	}
	panic("MockQuizService.GetQuizFunc not implemented")
}
func (m *MockQuizService) UpdateQuiz(ctx context.Context, id string, req dto.UpdateQuizRequest) (*dto.QuizResponse, error) {
	if m.UpdateQuizFunc != nil {
		return m.UpdateQuizFunc(ctx, id, req)
	}
	panic("MockQuizService.UpdateQuizFunc not implemented")
}
func (m *MockQuizService) DeleteQuiz(ctx context.Context, id string) error {
	if m.DeleteQuizFunc != nil {
		return m.DeleteQuizFunc(ctx, id)
	}
	panic("MockQuizService.DeleteQuizFunc not implemented")
}
func (m *MockQuizService) PublishQuiz(ctx context.Context, id string) (*dto.QuizResponse, error) {
	if m.PublishQuizFunc != nil {
		return m.PublishQuizFunc(ctx, id)
	}
	panic("MockQuizService.PublishQuizFunc not implemented")
}
func (m *MockQuizService) AddQuestions(ctx context.Context, quizID string, req dto.AddQuestionsRequest) (*dto.QuizResponse, error) {
	if m.AddQuestionsFunc != nil {
		return m.AddQuestionsFunc(ctx, quizID, req)
	}
	panic("MockQuizService.AddQuestionsFunc not implemented")
}
func (m *MockQuizService) DeleteQuestion(ctx context.Context, quizID, questionID string) error {
	if m.DeleteQuestionFunc != nil {
		return m.DeleteQuestionFunc(ctx, quizID, questionID)
	}
	panic("MockQuizService.DeleteQuestionFunc not implemented")
}
func (m *MockQuizService) AssignQuiz(ctx context.Context, quizID string, req dto.AssignQuizRequest) error {
	if m.AssignQuizFunc != nil {
		return m.AssignQuizFunc(ctx, quizID, req)
	}
	panic("MockQuizService.AssignQuizFunc not implemented")
}
func (m *MockQuizService) ListStudents(ctx context.Context) ([]dto.StudentOverview, error) {
	if m.ListStudentsFunc != nil {
		return m.ListStudentsFunc(ctx)
	}
	panic("MockQuizService.ListStudentsFunc not implemented")
}
func (m *MockQuizService) ListQuizAttempts(ctx context.Context, quizID string) ([]dto.AttemptResponse, error) {
	if m.ListQuizAttemptsFunc != nil {
		return m.ListQuizAttemptsFunc(ctx, quizID)
	}
	panic("MockQuizService.ListQuizAttemptsFunc not implemented")
}
func (m *MockQuizService) ListStudentQuizzes(ctx context.Context, studentID string) ([]dto.StudentQuizSummary, error) {
	if m.ListStudentQuizzesFunc != nil {
		return m.ListStudentQuizzesFunc(ctx, studentID)
	}
	panic("MockQuizService.ListStudentQuizzesFunc not implemented")
}

// MockAttemptService
type MockAttemptService struct {
	StartFunc    func(ctx context.Context, quizID, studentID string) (*dto.StartAttemptResponse, error)
	AnswerFunc   func(ctx context.Context, attemptID, studentID string, req dto.AnswerRequest) (*dto.AttemptResponse, error)
	PauseFunc    func(ctx context.Context, attemptID, studentID string) (*dto.AttemptResponse, error)
	ResumeFunc   func(ctx context.Context, attemptID, studentID string) (*dto.AttemptResponse, error)
	SubmitFunc   func(ctx context.Context, attemptID, studentID string, req dto.SubmitRequest) (*dto.AttemptResponse, error)
	GetFunc      func(ctx context.Context, attemptID, studentID string) (*dto.AttemptResponse, error)
	ListMineFunc func(ctx context.Context, studentID string) ([]dto.AttemptResponse, error)
	ResultFunc   func(ctx context.Context, attemptID, studentID string) (*dto.AttemptResultResponse, error)
}

func (m *MockAttemptService) Start(ctx context.Context, quizID, studentID string) (*dto.StartAttemptResponse, error) {
	if m.StartFunc != nil {
		return m.StartFunc(ctx, quizID, studentID)
	}
	panic("MockAttemptService.StartFunc not implemented")
}
func (m *MockAttemptService) Answer(ctx context.Context, attemptID, studentID string, req dto.AnswerRequest) (*dto.AttemptResponse, error) {
	if m.AnswerFunc != nil {
		return m.AnswerFunc(ctx, attemptID, studentID, req)
	}
	panic("MockAttemptService.AnswerFunc not implemented")
}
func (m *MockAttemptService) Pause(ctx context.Context, attemptID, studentID string) (*dto.AttemptResponse, error) {
	if m.PauseFunc != nil {
		return m.PauseFunc(ctx, attemptID, studentID)
	}
	panic("MockAttemptService.PauseFunc not implemented")
}
func (m *MockAttemptService) Resume(ctx context.Context, attemptID, studentID string) (*dto.AttemptResponse, error) {
	if m.ResumeFunc != nil {
		return m.ResumeFunc(ctx, attemptID, studentID)
	}
	panic("MockAttemptService.ResumeFunc not implemented")
}
func (m *MockAttemptService) Submit(ctx context.Context, attemptID, studentID string, req dto.SubmitRequest) (*dto.AttemptResponse, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, attemptID, studentID, req)
	}
	panic("MockAttemptService.SubmitFunc not implemented")
}
func (m *MockAttemptService) Get(ctx context.Context, attemptID, studentID string) (*dto.AttemptResponse, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, attemptID, studentID)
	}
	panic("MockAttemptService.GetFunc not implemented")
}
func (m *MockAttemptService) ListMine(ctx context.Context, studentID string) ([]dto.AttemptResponse, error) {
	if m.ListMineFunc != nil {
		return m.ListMineFunc(ctx, studentID)
	}
	panic("MockAttemptService.ListMineFunc not implemented")
}
func (m *MockAttemptService) Result(ctx context.Context, attemptID, studentID string) (*dto.AttemptResultResponse, error) {
	if m.ResultFunc != nil {
		return m.ResultFunc(ctx, attemptID, studentID)
	}
	panic("MockAttemptService.ResultFunc not implemented")
}
func (m *MockAttemptService) Expire(ctx context.Context, attemptID string) error { return nil }
func (m *MockAttemptService) ExpireOverdue(ctx context.Context) (int, error)    { return 0, nil }
func (m *MockAttemptService) RestoreTimers(ctx context.Context) error            { return nil }
func (m *MockAttemptService) Shutdown()                                          {}

// MockGenerationService
type MockGenerationService struct {
	GenerateFunc             func(ctx context.Context, cfg domain.GenerationConfig) (*domain.GenerationResult, error)
	GenerateForQuizFunc      func(ctx context.Context, quizID string, req dto.GenerateForQuizRequest) (*dto.GenerateForQuizResponse, error)
	GenerateFromDocumentFunc func(ctx context.Context, documentID string, req dto.GenerateFromSourceRequest) (*domain.GenerationResult, error)
}

func (m *MockGenerationService) Generate(ctx context.Context, cfg domain.GenerationConfig) (*domain.GenerationResult, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, cfg)
	}
	panic("MockGenerationService.GenerateFunc not implemented")
}
func (m *MockGenerationService) GenerateForQuiz(ctx context.Context, quizID string, req dto.GenerateForQuizRequest) (*dto.GenerateForQuizResponse, error) {
	if m.GenerateForQuizFunc != nil {
		return m.GenerateForQuizFunc(ctx, quizID, req)
	}
	panic("MockGenerationService.GenerateForQuizFunc not implemented")
}
func (m *MockGenerationService) GenerateFromDocument(ctx context.Context, documentID string, req dto.GenerateFromSourceRequest) (*domain.GenerationResult, error) {
	if m.GenerateFromDocumentFunc != nil {
		return m.GenerateFromDocumentFunc(ctx, documentID, req)
	}
	panic("MockGenerationService.GenerateFromDocumentFunc not implemented")
}

// MockDocumentService
type MockDocumentService struct {
	UploadFunc         func(ctx context.Context, ownerID, filename string, data []byte) (*dto.DocumentResponse, error)
	CreateFromTextFunc func(ctx context.Context, ownerID string, req dto.CreateDocumentRequest) (*dto.DocumentResponse, error)
	ListFunc           func(ctx context.Context, ownerID string) ([]dto.DocumentResponse, error)
	GetFunc            func(ctx context.Context, id string) (*dto.DocumentResponse, error)
}

func (m *MockDocumentService) Upload(ctx context.Context, ownerID, filename string, data []byte) (*dto.DocumentResponse, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, ownerID, filename, data)
	}
	panic("MockDocumentService.UploadFunc not implemented")
}
func (m *MockDocumentService) CreateFromText(ctx context.Context, ownerID string, req dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	if m.CreateFromTextFunc != nil {
		return m.CreateFromTextFunc(ctx, ownerID, req)
	}
	panic("MockDocumentService.CreateFromTextFunc not implemented")
}
func (m *MockDocumentService) List(ctx context.Context, ownerID string) ([]dto.DocumentResponse, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ownerID)
	}
	panic("MockDocumentService.ListFunc not implemented")
}
func (m *MockDocumentService) Get(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	panic("MockDocumentService.GetFunc not implemented")
}

// fakePinger stands in for the database in health checks.
type fakePinger struct{ err error }

func (p fakePinger) PingContext(ctx context.Context) error { return p.err }

// fakeCache only answers Ping.
type fakeCache struct{ err error }

func (c fakeCache) Get(ctx context.Context, key string) (string, error) { return "", domain.ErrCacheMiss }
func (c fakeCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return nil
}
func (c fakeCache) Delete(ctx context.Context, key string) error { return nil }
func (c fakeCache) Ping(ctx context.Context) error               { return c.err }
