package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/quizgen"
	"quiz-forge/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QuizService defines the interface for quiz management and the student dashboard.
type QuizService interface {
	CreateQuiz(ctx context.Context, authorID string, req dto.CreateQuizRequest) (*dto.QuizResponse, error)
	ListQuizzes(ctx context.Context) ([]dto.QuizResponse, error)
	GetQuiz(ctx context.Context, id string) (*dto.QuizResponse, error)
	UpdateQuiz(ctx context.Context, id string, req dto.UpdateQuizRequest) (*dto.QuizResponse, error)
	DeleteQuiz(ctx context.Context, id string) error
	PublishQuiz(ctx context.Context, id string) (*dto.QuizResponse, error)

	AddQuestions(ctx context.Context, quizID string, req dto.AddQuestionsRequest) (*dto.QuizResponse, error)
	DeleteQuestion(ctx context.Context, quizID, questionID string) error

	AssignQuiz(ctx context.Context, quizID string, req dto.AssignQuizRequest) error
	ListStudents(ctx context.Context) ([]dto.StudentOverview, error)
	ListQuizAttempts(ctx context.Context, quizID string) ([]dto.AttemptResponse, error)
	ListStudentQuizzes(ctx context.Context, studentID string) ([]dto.StudentQuizSummary, error)
}

type quizService struct {
	quizRepo    domain.QuizRepository
	attemptRepo domain.AttemptRepository
	userRepo    domain.UserRepository
	txManager   domain.TransactionManager
	clock       Clock
}

// NewQuizService creates a new instance of quizService
func NewQuizService(
	quizRepo domain.QuizRepository,
	attemptRepo domain.AttemptRepository,
	userRepo domain.UserRepository,
	txManager domain.TransactionManager,
	clock Clock,
) QuizService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &quizService{
		quizRepo:    quizRepo,
		attemptRepo: attemptRepo,
		userRepo:    userRepo,
		txManager:   txManager,
		clock:       clock,
	}
}

// loadQuiz maps a missing row to a QUIZ_NOT_FOUND error.
func loadQuiz(ctx context.Context, repo domain.QuizRepository, id string) (*domain.Quiz, error) {
	quiz, err := repo.FindQuiz(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewQuizNotFoundError(id)
		}
		return nil, domain.NewInternalError("failed to load quiz", err)
	}
	return quiz, nil
}

func (s *quizService) CreateQuiz(ctx context.Context, authorID string, req dto.CreateQuizRequest) (*dto.QuizResponse, error) {
	quiz := &domain.Quiz{
		ID:             util.NewULID(),
		AuthorID:       authorID,
		Title:          strings.TrimSpace(req.Title),
		Description:    strings.TrimSpace(req.Description),
		Duration:       req.Duration,
		QuestionsCount: req.QuestionsCount,
		Status:         domain.QuizStatusDraft,
		Settings:       req.Settings.ToDomain(),
	}
	if err := quiz.Validate(); err != nil {
		return nil, err
	}
	if err := s.quizRepo.CreateQuiz(ctx, quiz); err != nil {
		return nil, domain.NewInternalError("failed to create quiz", err)
	}
	logger.Get().Info("Quiz created", zap.String("quiz_id", quiz.ID), zap.String("author_id", authorID))
	resp := dto.NewQuizResponse(quiz)
	return &resp, nil
}

func (s *quizService) ListQuizzes(ctx context.Context) ([]dto.QuizResponse, error) {
	quizzes, err := s.quizRepo.ListQuizzes(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to list quizzes", err)
	}
	out := make([]dto.QuizResponse, 0, len(quizzes))
	for _, q := range quizzes {
		out = append(out, dto.NewQuizResponse(q))
	}
	return out, nil
}

func (s *quizService) GetQuiz(ctx context.Context, id string) (*dto.QuizResponse, error) {
	quiz, err := loadQuiz(ctx, s.quizRepo, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewQuizResponse(quiz)
	return &resp, nil
}

func (s *quizService) UpdateQuiz(ctx context.Context, id string, req dto.UpdateQuizRequest) (*dto.QuizResponse, error) {
	var quiz *domain.Quiz
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		quiz, err = loadQuiz(ctx, s.quizRepo, id)
		if err != nil {
			return err
		}
		if quiz.IsPublished() {
			return domain.NewQuizPublishedError(id)
		}
		if req.Title != nil {
			quiz.Title = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			quiz.Description = strings.TrimSpace(*req.Description)
		}
		if req.Duration != nil {
			quiz.Duration = *req.Duration
		}
		if req.QuestionsCount != nil {
			if *req.QuestionsCount < len(quiz.Questions) {
				return domain.ValidationErrors{domain.NewInvalidFieldError("questionsCount",
					fmt.Sprintf("quiz already has %d questions", len(quiz.Questions)), *req.QuestionsCount)}
			}
			quiz.QuestionsCount = *req.QuestionsCount
		}
		if req.Settings != nil {
			quiz.Settings = req.Settings.ToDomain()
		}
		if err := quiz.Validate(); err != nil {
			return err
		}
		if err := s.quizRepo.UpdateQuiz(ctx, quiz); err != nil {
			return domain.NewInternalError("failed to update quiz", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := dto.NewQuizResponse(quiz)
	return &resp, nil
}

func (s *quizService) DeleteQuiz(ctx context.Context, id string) error {
	return s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		quiz, err := loadQuiz(ctx, s.quizRepo, id)
		if err != nil {
			return err
		}
		if quiz.IsPublished() {
			return domain.NewQuizPublishedError(id)
		}
		if err := s.quizRepo.DeleteQuiz(ctx, id); err != nil {
			return domain.NewInternalError("failed to delete quiz", err)
		}
		logger.Get().Info("Quiz deleted", zap.String("quiz_id", id))
		return nil
	})
}

func (s *quizService) PublishQuiz(ctx context.Context, id string) (*dto.QuizResponse, error) {
	var quiz *domain.Quiz
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		quiz, err = loadQuiz(ctx, s.quizRepo, id)
		if err != nil {
			return err
		}
		if quiz.IsPublished() {
			return domain.NewConflictError("quiz is already published").WithContext("quiz_id", id)
		}
		if len(quiz.Questions) == 0 {
			return domain.NewInvalidInputError("a quiz needs at least one question to be published").
				WithContext("quiz_id", id)
		}
		quiz.Status = domain.QuizStatusPublished
		if err := s.quizRepo.UpdateQuiz(ctx, quiz); err != nil {
			return domain.NewInternalError("failed to publish quiz", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Get().Info("Quiz published", zap.String("quiz_id", id), zap.Int("questions", len(quiz.Questions)))
	resp := dto.NewQuizResponse(quiz)
	return &resp, nil
}

// toQuestion sanitizes a hand-written question and checks it against the question rules.
func toQuestion(in dto.QuestionInput) (domain.Question, []string) {
	options := make([]string, len(in.Options))
	for i, o := range in.Options {
		options[i] = quizgen.Sanitize(o)
	}
	q := domain.Question{
		ID:            uuid.NewString(),
		Text:          quizgen.Sanitize(in.Text),
		Options:       options,
		CorrectAnswer: in.CorrectAnswer,
		Explanation:   quizgen.Sanitize(in.Explanation),
	}
	return q, quizgen.Violations(q, false)
}

func (s *quizService) AddQuestions(ctx context.Context, quizID string, req dto.AddQuestionsRequest) (*dto.QuizResponse, error) {
	questions := make([]domain.Question, 0, len(req.Questions))
	var verrs domain.ValidationErrors
	for i, in := range req.Questions {
		q, problems := toQuestion(in)
		if len(problems) > 0 {
			verrs = append(verrs, domain.NewInvalidFieldError(fmt.Sprintf("questions[%d]", i), strings.Join(problems, "; "), nil))
			continue
		}
		questions = append(questions, q)
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	var quiz *domain.Quiz
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		quiz, _, err = appendQuestions(ctx, s.quizRepo, quizID, questions, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := dto.NewQuizResponse(quiz)
	return &resp, nil
}

// appendQuestions adds questions after the existing ones of a draft quiz.
// With truncate set, questions beyond the remaining slots are dropped instead of rejected.
func appendQuestions(ctx context.Context, repo domain.QuizRepository, quizID string, questions []domain.Question, truncate bool) (*domain.Quiz, int, error) {
	quiz, err := loadQuiz(ctx, repo, quizID)
	if err != nil {
		return nil, 0, err
	}
	if quiz.IsPublished() {
		return nil, 0, domain.NewQuizPublishedError(quizID)
	}
	slots := quiz.RemainingSlots()
	if len(questions) > slots {
		if !truncate {
			return nil, 0, domain.NewInvalidInputError(fmt.Sprintf("quiz has room for %d more question(s)", max(slots, 0))).
				WithContext("quiz_id", quizID)
		}
		questions = questions[:max(slots, 0)]
	}
	next := len(quiz.Questions)
	for i := range questions {
		questions[i].Position = next + i
	}
	if len(questions) == 0 {
		return quiz, 0, nil
	}
	if err := repo.AddQuestions(ctx, quizID, questions); err != nil {
		return nil, 0, domain.NewInternalError("failed to add questions", err)
	}
	quiz.Questions = append(quiz.Questions, questions...)
	logger.Get().Info("Questions added to quiz", zap.String("quiz_id", quizID), zap.Int("added", len(questions)))
	return quiz, len(questions), nil
}

func (s *quizService) DeleteQuestion(ctx context.Context, quizID, questionID string) error {
	return s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		quiz, err := loadQuiz(ctx, s.quizRepo, quizID)
		if err != nil {
			return err
		}
		if quiz.IsPublished() {
			return domain.NewQuizPublishedError(quizID)
		}
		if err := s.quizRepo.DeleteQuestion(ctx, quizID, questionID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.NewNotFoundError("question not found").WithContext("question_id", questionID)
			}
			return domain.NewInternalError("failed to delete question", err)
		}
		return nil
	})
}

func (s *quizService) AssignQuiz(ctx context.Context, quizID string, req dto.AssignQuizRequest) error {
	return s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := loadQuiz(ctx, s.quizRepo, quizID); err != nil {
			return err
		}
		student, err := s.userRepo.GetUserByID(ctx, req.StudentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.NewNotFoundError("student not found").WithContext("student_id", req.StudentID)
			}
			return domain.NewInternalError("failed to load student", err)
		}
		if student.Role != domain.RoleStudent {
			return domain.NewInvalidInputError("quizzes can only be assigned to students").
				WithContext("user_id", student.ID)
		}
		assigned, err := s.quizRepo.IsAssigned(ctx, quizID, student.ID)
		if err != nil {
			return domain.NewInternalError("failed to check assignment", err)
		}
		if assigned {
			return domain.NewConflictError("quiz is already assigned to this student").
				WithContext("quiz_id", quizID).WithContext("student_id", student.ID)
		}
		err = s.quizRepo.AssignQuiz(ctx, domain.Assignment{QuizID: quizID, StudentID: student.ID, AssignedAt: s.clock.Now()})
		if errors.Is(err, domain.ErrDuplicate) {
			return domain.NewConflictError("quiz is already assigned to this student").WithContext("quiz_id", quizID)
		}
		if err != nil {
			return domain.NewInternalError("failed to assign quiz", err)
		}
		logger.Get().Info("Quiz assigned", zap.String("quiz_id", quizID), zap.String("student_id", student.ID))
		return nil
	})
}

func (s *quizService) ListStudents(ctx context.Context) ([]dto.StudentOverview, error) {
	students, err := s.userRepo.ListUsersByRole(ctx, domain.RoleStudent)
	if err != nil {
		return nil, domain.NewInternalError("failed to list students", err)
	}
	out := make([]dto.StudentOverview, 0, len(students))
	for _, st := range students {
		attempts, err := s.attemptRepo.ListAttemptsByStudent(ctx, st.ID)
		if err != nil {
			return nil, domain.NewInternalError("failed to list attempts", err)
		}
		overview := dto.StudentOverview{User: dto.NewUserResponse(st), TotalAttempts: len(attempts)}
		var sum float64
		for _, a := range attempts {
			if a.Status == domain.AttemptCompleted && a.Score != nil {
				overview.CompletedAttempts++
				sum += *a.Score
			}
		}
		if overview.CompletedAttempts > 0 {
			avg := util.RoundTo(sum/float64(overview.CompletedAttempts), 2)
			overview.AverageScore = &avg
		}
		out = append(out, overview)
	}
	return out, nil
}

func (s *quizService) ListQuizAttempts(ctx context.Context, quizID string) ([]dto.AttemptResponse, error) {
	if _, err := loadQuiz(ctx, s.quizRepo, quizID); err != nil {
		return nil, err
	}
	attempts, err := s.attemptRepo.ListAttemptsByQuiz(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list attempts", err)
	}
	now := s.clock.Now()
	out := make([]dto.AttemptResponse, 0, len(attempts))
	for _, a := range attempts {
		out = append(out, dto.NewAttemptResponse(a, now))
	}
	return out, nil
}

func (s *quizService) ListStudentQuizzes(ctx context.Context, studentID string) ([]dto.StudentQuizSummary, error) {
	quizzes, err := s.quizRepo.ListAssignedQuizzes(ctx, studentID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list assigned quizzes", err)
	}
	attempts, err := s.attemptRepo.ListAttemptsByStudent(ctx, studentID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list attempts", err)
	}
	byQuiz := make(map[string][]*domain.QuizAttempt)
	for _, a := range attempts {
		byQuiz[a.QuizID] = append(byQuiz[a.QuizID], a)
	}

	now := s.clock.Now()
	out := make([]dto.StudentQuizSummary, 0, len(quizzes))
	for _, q := range quizzes {
		if !q.IsPublished() {
			continue
		}
		summary := dto.StudentQuizSummary{
			ID:             q.ID,
			Title:          q.Title,
			Description:    q.Description,
			Duration:       q.Duration,
			QuestionsCount: q.QuestionsCount,
			Settings:       q.Settings,
		}
		for _, a := range byQuiz[q.ID] {
			switch {
			case a.IsActive():
				resp := dto.NewAttemptResponse(a, now)
				summary.ActiveAttempt = &resp
			case a.Score != nil:
				summary.CompletedAttempts++
				if summary.BestScore == nil || *a.Score > *summary.BestScore {
					best := util.RoundTo(*a.Score, 2)
					summary.BestScore = &best
				}
			}
		}
		summary.CanStart = summary.ActiveAttempt != nil ||
			domain.CheckEligibility(q.ID, studentID, q.Settings, summary.CompletedAttempts) == nil
		out = append(out, summary)
	}
	return out, nil
}
