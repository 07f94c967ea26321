package service

import (
	"context"
	"errors"
	"time"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/metrics"
	"quiz-forge/internal/util"

	"go.uber.org/zap"
)

// AttemptService drives the quiz-taking state machine for students.
type AttemptService interface {
	Start(ctx context.Context, quizID, studentID string) (*dto.StartAttemptResponse, error)
	Answer(ctx context.Context, attemptID, studentID string, req dto.AnswerRequest) (*dto.AttemptResponse, error)
	Pause(ctx context.Context, attemptID, studentID string) (*dto.AttemptResponse, error)
	Resume(ctx context.Context, attemptID, studentID string) (*dto.AttemptResponse, error)
	Submit(ctx context.Context, attemptID, studentID string, req dto.SubmitRequest) (*dto.AttemptResponse, error)
	Get(ctx context.Context, attemptID, studentID string) (*dto.AttemptResponse, error)
	ListMine(ctx context.Context, studentID string) ([]dto.AttemptResponse, error)
	Result(ctx context.Context, attemptID, studentID string) (*dto.AttemptResultResponse, error)

	// Expire auto-submits the attempt if it is still in progress and its clock ran out.
	Expire(ctx context.Context, attemptID string) error
	// ExpireOverdue sweeps every in-progress attempt and returns how many were auto-submitted.
	ExpireOverdue(ctx context.Context) (int, error)
	// RestoreTimers arms expiry timers for attempts left in progress by a previous process.
	RestoreTimers(ctx context.Context) error
	Shutdown()
}

type attemptService struct {
	quizRepo    domain.QuizRepository
	attemptRepo domain.AttemptRepository
	txManager   domain.TransactionManager
	publisher   domain.EventPublisher
	timers      *AttemptTimers
	locks       *keyedMutex
	clock       Clock
	// expireTimeout bounds a timer-driven Expire call
	expireTimeout time.Duration
}

// NewAttemptService creates a new instance of attemptService
func NewAttemptService(
	quizRepo domain.QuizRepository,
	attemptRepo domain.AttemptRepository,
	txManager domain.TransactionManager,
	publisher domain.EventPublisher,
	timers *AttemptTimers,
	clock Clock,
) AttemptService {
	if timers == nil {
		timers = NewAttemptTimers()
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &attemptService{
		quizRepo:      quizRepo,
		attemptRepo:   attemptRepo,
		txManager:     txManager,
		publisher:     publisher,
		timers:        timers,
		locks:         newKeyedMutex(),
		clock:         clock,
		expireTimeout: 30 * time.Second,
	}
}

func lockKey(quizID, studentID string) string {
	return quizID + ":" + studentID
}

func (s *attemptService) Start(ctx context.Context, quizID, studentID string) (*dto.StartAttemptResponse, error) {
	unlock := s.locks.Lock(lockKey(quizID, studentID))
	defer unlock()

	var (
		quiz    *domain.Quiz
		attempt *domain.QuizAttempt
		expired *domain.QuizAttempt
		mode    string
		// returned after commit so an expiry submitted on the way is kept
		postErr error
	)
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		quiz, err = loadQuiz(ctx, s.quizRepo, quizID)
		if err != nil {
			return err
		}
		if !quiz.IsPublished() {
			return domain.NewQuizNotFoundError(quizID)
		}
		assigned, err := s.quizRepo.IsAssigned(ctx, quizID, studentID)
		if err != nil {
			return domain.NewInternalError("failed to check assignment", err)
		}
		if !assigned {
			return domain.NewError(domain.CodeQuizNotAssigned, "quiz is not assigned to this student", nil).
				WithContext("quiz_id", quizID)
		}

		now := s.clock.Now()
		active, err := s.attemptRepo.FindActiveAttempt(ctx, quizID, studentID)
		if err != nil {
			return domain.NewInternalError("failed to load active attempt", err)
		}
		if active != nil {
			switch active.Status {
			case domain.AttemptPaused:
				if err := active.Resume(quiz.DurationSeconds(), now); err != nil {
					return err
				}
				attempt, mode = active, metrics.StartResumed
				return s.save(ctx, attempt)
			case domain.AttemptInProgress:
				if !active.Tick(now) {
					attempt, mode = active, metrics.StartReused
					return s.save(ctx, attempt)
				}
				if err := active.Submit(quiz.Questions, domain.SubmitOptions{Auto: true}, now); err != nil {
					return err
				}
				if err := s.save(ctx, active); err != nil {
					return err
				}
				expired = active
			}
		}

		completed, err := s.attemptRepo.CountCompletedAttempts(ctx, quizID, studentID)
		if err != nil {
			return domain.NewInternalError("failed to count attempts", err)
		}
		if err := domain.CheckEligibility(quizID, studentID, quiz.Settings, completed); err != nil {
			postErr = err
			return nil
		}
		attempt, mode = domain.NewAttempt(util.NewULID(), quiz, studentID, now), metrics.StartNew
		return s.save(ctx, attempt)
	})
	if err != nil {
		return nil, err
	}
	if expired != nil {
		s.afterSave(ctx, expired, metrics.TriggerAuto)
	}
	if postErr != nil {
		return nil, postErr
	}

	s.afterSave(ctx, attempt, "")
	metrics.AttemptsStarted.WithLabelValues(mode).Inc()
	logger.Get().Info("Attempt started",
		zap.String("attempt_id", attempt.ID),
		zap.String("quiz_id", quizID),
		zap.String("student_id", studentID),
		zap.String("mode", mode))

	return &dto.StartAttemptResponse{
		Attempt:     dto.NewAttemptResponse(attempt, s.clock.Now()),
		Questions:   dto.NewStudentQuestions(quiz.Questions),
		ResumeIndex: attempt.ResumeIndex(),
		Mode:        mode,
	}, nil
}

// save maps a lost race on the active-attempt index to a conflict.
func (s *attemptService) save(ctx context.Context, a *domain.QuizAttempt) error {
	if _, err := s.attemptRepo.SaveAttempt(ctx, a); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return domain.NewConflictError("an active attempt already exists for this quiz").
				WithContext("quiz_id", a.QuizID)
		}
		return domain.NewInternalError("failed to save attempt", err)
	}
	return nil
}

// findOwned loads an attempt and hides attempts of other students.
func (s *attemptService) findOwned(ctx context.Context, attemptID, studentID string) (*domain.QuizAttempt, error) {
	a, err := s.attemptRepo.FindAttempt(ctx, attemptID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewAttemptNotFoundError(attemptID)
		}
		return nil, domain.NewInternalError("failed to load attempt", err)
	}
	if a.StudentID != studentID {
		return nil, domain.NewAttemptNotFoundError(attemptID)
	}
	return a, nil
}

// mutate applies fn to the attempt under its lock and transaction. An
// in-progress attempt whose clock ran out is auto-submitted first and the
// action is refused.
func (s *attemptService) mutate(ctx context.Context, attemptID, studentID, action string,
	fn func(quiz *domain.Quiz, a *domain.QuizAttempt, now time.Time) error,
) (*domain.QuizAttempt, error) {
	owned, err := s.findOwned(ctx, attemptID, studentID)
	if err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(lockKey(owned.QuizID, studentID))
	defer unlock()

	var (
		attempt *domain.QuizAttempt
		trigger = metrics.TriggerManual
		postErr error
	)
	err = s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		a, err := s.findOwned(ctx, attemptID, studentID)
		if err != nil {
			return err
		}
		quiz, err := loadQuiz(ctx, s.quizRepo, a.QuizID)
		if err != nil {
			return err
		}
		now := s.clock.Now()
		if a.Tick(now) {
			if err := a.Submit(quiz.Questions, domain.SubmitOptions{Auto: true}, now); err != nil {
				return err
			}
			attempt, trigger = a, metrics.TriggerAuto
			postErr = &domain.InvalidTransitionError{
				Action: action,
				From:   domain.AttemptInProgress,
				Reason: "time ran out and the attempt was submitted automatically",
			}
			return s.save(ctx, a)
		}
		if err := fn(quiz, a, now); err != nil {
			return err
		}
		attempt = a
		return s.save(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	s.afterSave(ctx, attempt, trigger)
	if postErr != nil {
		return nil, postErr
	}
	return attempt, nil
}

// afterSave runs the side effects of a committed state: timers, metrics and events.
func (s *attemptService) afterSave(ctx context.Context, a *domain.QuizAttempt, trigger string) {
	switch a.Status {
	case domain.AttemptInProgress:
		s.arm(a)
	case domain.AttemptPaused:
		s.timers.Cancel(a.ID)
	case domain.AttemptCompleted:
		s.timers.Cancel(a.ID)
		if trigger == "" {
			return
		}
		metrics.AttemptsCompleted.WithLabelValues(trigger).Inc()
		var score float64
		if a.Score != nil {
			score = *a.Score
		}
		logger.Get().Info("Attempt completed",
			zap.String("attempt_id", a.ID),
			zap.String("quiz_id", a.QuizID),
			zap.String("student_id", a.StudentID),
			zap.Float64("score", score),
			zap.String("trigger", trigger))
		if s.publisher == nil {
			return
		}
		event := domain.AttemptCompletedEvent{
			AttemptID:   a.ID,
			QuizID:      a.QuizID,
			StudentID:   a.StudentID,
			Score:       score,
			Auto:        trigger == metrics.TriggerAuto,
			CompletedAt: *a.CompletedAt,
		}
		if err := s.publisher.Publish(ctx, domain.EventAttemptCompleted, event); err != nil {
			logger.Get().Warn("Failed to publish event",
				zap.String("event", domain.EventAttemptCompleted),
				zap.String("attempt_id", a.ID),
				zap.Error(err))
		}
	}
}

// arm schedules the expiry of an in-progress attempt at its live remaining time.
func (s *attemptService) arm(a *domain.QuizAttempt) {
	id := a.ID
	d := time.Duration(a.Remaining(s.clock.Now())) * time.Second
	s.timers.Schedule(id, d, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.expireTimeout)
		defer cancel()
		if err := s.Expire(ctx, id); err != nil {
			logger.Get().Error("Timed attempt expiry failed", zap.String("attempt_id", id), zap.Error(err))
		}
	})
}

func (s *attemptService) Answer(ctx context.Context, attemptID, studentID string, req dto.AnswerRequest) (*dto.AttemptResponse, error) {
	if req.Index == nil || req.Choice == nil {
		return nil, domain.NewInvalidInputError("index and choice are required")
	}
	a, err := s.mutate(ctx, attemptID, studentID, "answer", func(_ *domain.Quiz, a *domain.QuizAttempt, now time.Time) error {
		return a.Answer(*req.Index, *req.Choice, now)
	})
	if err != nil {
		return nil, err
	}
	resp := dto.NewAttemptResponse(a, s.clock.Now())
	return &resp, nil
}

func (s *attemptService) Pause(ctx context.Context, attemptID, studentID string) (*dto.AttemptResponse, error) {
	a, err := s.mutate(ctx, attemptID, studentID, "pause", func(quiz *domain.Quiz, a *domain.QuizAttempt, now time.Time) error {
		return a.Pause(quiz.Settings.AllowPause, now)
	})
	if err != nil {
		return nil, err
	}
	logger.Get().Info("Attempt paused", zap.String("attempt_id", a.ID), zap.Int("remaining", a.Remaining(s.clock.Now())))
	resp := dto.NewAttemptResponse(a, s.clock.Now())
	return &resp, nil
}

func (s *attemptService) Resume(ctx context.Context, attemptID, studentID string) (*dto.AttemptResponse, error) {
	a, err := s.mutate(ctx, attemptID, studentID, "resume", func(quiz *domain.Quiz, a *domain.QuizAttempt, now time.Time) error {
		return a.Resume(quiz.DurationSeconds(), now)
	})
	if err != nil {
		return nil, err
	}
	resp := dto.NewAttemptResponse(a, s.clock.Now())
	return &resp, nil
}

func (s *attemptService) Submit(ctx context.Context, attemptID, studentID string, req dto.SubmitRequest) (*dto.AttemptResponse, error) {
	a, err := s.mutate(ctx, attemptID, studentID, "submit", func(quiz *domain.Quiz, a *domain.QuizAttempt, now time.Time) error {
		return a.Submit(quiz.Questions, domain.SubmitOptions{Confirmed: req.Confirmed}, now)
	})
	if err != nil {
		return nil, err
	}
	resp := dto.NewAttemptResponse(a, s.clock.Now())
	return &resp, nil
}

func (s *attemptService) Get(ctx context.Context, attemptID, studentID string) (*dto.AttemptResponse, error) {
	a, err := s.findOwned(ctx, attemptID, studentID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewAttemptResponse(a, s.clock.Now())
	return &resp, nil
}

func (s *attemptService) ListMine(ctx context.Context, studentID string) ([]dto.AttemptResponse, error) {
	attempts, err := s.attemptRepo.ListAttemptsByStudent(ctx, studentID)
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

func (s *attemptService) Result(ctx context.Context, attemptID, studentID string) (*dto.AttemptResultResponse, error) {
	a, err := s.findOwned(ctx, attemptID, studentID)
	if err != nil {
		return nil, err
	}
	if a.Status != domain.AttemptCompleted {
		return nil, &domain.InvalidTransitionError{Action: "view the result of", From: a.Status, Reason: "the attempt is not completed"}
	}
	quiz, err := loadQuiz(ctx, s.quizRepo, a.QuizID)
	if err != nil {
		return nil, err
	}

	resp := &dto.AttemptResultResponse{
		Attempt:   dto.NewAttemptResponse(a, s.clock.Now()),
		QuizTitle: quiz.Title,
		Total:     len(quiz.Questions),
		Items:     make([]dto.ResultItem, 0, len(quiz.Questions)),
	}
	for i, q := range quiz.Questions {
		choice := domain.Unanswered
		if i < len(a.Answers) {
			choice = a.Answers[i]
		}
		correct := choice != domain.Unanswered && choice == q.CorrectAnswer
		if correct {
			resp.Correct++
		}
		resp.Items = append(resp.Items, dto.ResultItem{
			Index:         i,
			Text:          q.Text,
			Options:       q.Options,
			Choice:        choice,
			CorrectAnswer: q.CorrectAnswer,
			Correct:       correct,
			Explanation:   q.Explanation,
		})
	}
	return resp, nil
}

func (s *attemptService) Expire(ctx context.Context, attemptID string) error {
	_, err := s.expire(ctx, attemptID)
	return err
}

// expire reports whether the attempt was auto-submitted by this call.
func (s *attemptService) expire(ctx context.Context, attemptID string) (bool, error) {
	found, err := s.attemptRepo.FindAttempt(ctx, attemptID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	unlock := s.locks.Lock(lockKey(found.QuizID, found.StudentID))
	defer unlock()

	var submitted, running *domain.QuizAttempt
	err = s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		a, err := s.attemptRepo.FindAttempt(ctx, attemptID)
		if err != nil {
			return err
		}
		now := s.clock.Now()
		if !a.Tick(now) {
			if a.Status == domain.AttemptInProgress {
				running = a
			}
			return nil
		}
		quiz, err := loadQuiz(ctx, s.quizRepo, a.QuizID)
		if err != nil {
			return err
		}
		if err := a.Submit(quiz.Questions, domain.SubmitOptions{Auto: true}, now); err != nil {
			return err
		}
		submitted = a
		return s.save(ctx, a)
	})
	if err != nil {
		return false, err
	}
	switch {
	case submitted != nil:
		s.afterSave(ctx, submitted, metrics.TriggerAuto)
		return true, nil
	case running != nil && !s.timers.Pending(attemptID):
		// clock has time left and nothing is armed for it
		s.arm(running)
	}
	return false, nil
}

func (s *attemptService) ExpireOverdue(ctx context.Context) (int, error) {
	attempts, err := s.attemptRepo.ListInProgressAttempts(ctx)
	if err != nil {
		return 0, domain.NewInternalError("failed to list in-progress attempts", err)
	}
	now := s.clock.Now()
	expired := 0
	for _, a := range attempts {
		if a.Remaining(now) > 0 {
			continue
		}
		ok, err := s.expire(ctx, a.ID)
		if err != nil {
			logger.Get().Error("Failed to expire attempt", zap.String("attempt_id", a.ID), zap.Error(err))
			continue
		}
		if ok {
			expired++
		}
	}
	return expired, nil
}

func (s *attemptService) RestoreTimers(ctx context.Context) error {
	attempts, err := s.attemptRepo.ListInProgressAttempts(ctx)
	if err != nil {
		return domain.NewInternalError("failed to list in-progress attempts", err)
	}
	for _, a := range attempts {
		s.arm(a)
	}
	logger.Get().Info("Attempt timers restored", zap.Int("count", len(attempts)))
	return nil
}

func (s *attemptService) Shutdown() {
	s.timers.StopAll()
}
