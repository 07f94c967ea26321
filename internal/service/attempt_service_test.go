package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testQuizID    = "01HQZQUIZ0000000000000000A"
	testStudentID = "01HQZSTUDENT00000000000000"
	testAttemptID = "01HQZATTEMPT00000000000000"
)

func testQuiz(settings domain.QuizSettings) *domain.Quiz {
	return &domain.Quiz{
		ID:             testQuizID,
		Title:          "Go basics",
		Description:    "Channels and goroutines",
		Duration:       10,
		QuestionsCount: 2,
		Status:         domain.QuizStatusPublished,
		Settings:       settings,
		Questions: []domain.Question{
			{ID: "q1", Position: 0, Text: "What does go do?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 1, Explanation: "It starts a goroutine."},
			{ID: "q2", Position: 1, Text: "What does chan mean?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 2, Explanation: "It declares a channel."},
		},
	}
}

type attemptFixture struct {
	quizRepo    *MockQuizRepository
	attemptRepo *MockAttemptRepository
	publisher   *recordingPublisher
	clock       *fakeClock
	svc         AttemptService
}

func newAttemptFixture(t *testing.T) *attemptFixture {
	f := &attemptFixture{
		quizRepo:    new(MockQuizRepository),
		attemptRepo: new(MockAttemptRepository),
		publisher:   &recordingPublisher{},
		clock:       newFakeClock(),
	}
	f.svc = NewAttemptService(f.quizRepo, f.attemptRepo, &MockTransactionManager{}, f.publisher, NewAttemptTimers(), f.clock)
	t.Cleanup(f.svc.Shutdown)
	return f
}

func (f *attemptFixture) expectSave() {
	f.attemptRepo.On("SaveAttempt", mock.Anything, mock.AnythingOfType("*domain.QuizAttempt")).
		Return(&domain.QuizAttempt{}, nil)
}

func inProgressAttempt(now time.Time, remaining int) *domain.QuizAttempt {
	return &domain.QuizAttempt{
		ID:            testAttemptID,
		QuizID:        testQuizID,
		StudentID:     testStudentID,
		Answers:       []int{-1, -1},
		RemainingTime: &remaining,
		Status:        domain.AttemptInProgress,
		StartedAt:     now,
		ResumedAt:     now,
	}
}

func TestAttemptService_Start(t *testing.T) {
	noRetakes := domain.QuizSettings{AllowPause: true, MaxAttempts: 1}
	retakes := domain.QuizSettings{AllowRetakes: true, AllowPause: true, MaxAttempts: 3}

	tests := []struct {
		name      string
		quiz      func() *domain.Quiz
		assigned  bool
		active    func(now time.Time) *domain.QuizAttempt
		completed int
		wantMode  string
		wantErr   func(t *testing.T, err error)
		wantSaved int
	}{
		{
			name:      "fresh attempt",
			quiz:      func() *domain.Quiz { return testQuiz(noRetakes) },
			assigned:  true,
			wantMode:  "new",
			wantSaved: 1,
		},
		{
			name: "draft quiz is hidden",
			quiz: func() *domain.Quiz {
				q := testQuiz(noRetakes)
				q.Status = domain.QuizStatusDraft
				return q
			},
			wantErr: func(t *testing.T, err error) {
				var de *domain.DomainError
				require.True(t, errors.As(err, &de))
				assert.Equal(t, domain.CodeQuizNotFound, de.Code)
			},
		},
		{
			name:     "not assigned",
			quiz:     func() *domain.Quiz { return testQuiz(noRetakes) },
			assigned: false,
			wantErr: func(t *testing.T, err error) {
				var de *domain.DomainError
				require.True(t, errors.As(err, &de))
				assert.Equal(t, domain.CodeQuizNotAssigned, de.Code)
			},
		},
		{
			name:      "no attempts left",
			quiz:      func() *domain.Quiz { return testQuiz(noRetakes) },
			assigned:  true,
			completed: 1,
			wantErr: func(t *testing.T, err error) {
				var ee *domain.EligibilityError
				require.True(t, errors.As(err, &ee))
				assert.Equal(t, 1, ee.Allowed)
			},
		},
		{
			name:     "paused attempt is resumed without eligibility check",
			quiz:     func() *domain.Quiz { return testQuiz(noRetakes) },
			assigned: true,
			active: func(now time.Time) *domain.QuizAttempt {
				a := inProgressAttempt(now.Add(-time.Minute), 300)
				a.Status = domain.AttemptPaused
				return a
			},
			wantMode:  "resumed",
			wantSaved: 1,
		},
		{
			name:     "running attempt is reused",
			quiz:     func() *domain.Quiz { return testQuiz(noRetakes) },
			assigned: true,
			active: func(now time.Time) *domain.QuizAttempt {
				return inProgressAttempt(now.Add(-2*time.Minute), 600)
			},
			wantMode:  "reused",
			wantSaved: 1,
		},
		{
			name:     "expired attempt is submitted and a new one starts",
			quiz:     func() *domain.Quiz { return testQuiz(retakes) },
			assigned: true,
			active: func(now time.Time) *domain.QuizAttempt {
				return inProgressAttempt(now.Add(-11*time.Minute), 600)
			},
			completed: 1,
			wantMode:  "new",
			wantSaved: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAttemptFixture(t)
			now := f.clock.Now()
			f.quizRepo.On("FindQuiz", mock.Anything, testQuizID).Return(tt.quiz(), nil)
			f.quizRepo.On("IsAssigned", mock.Anything, testQuizID, testStudentID).Return(tt.assigned, nil)
			var active *domain.QuizAttempt
			if tt.active != nil {
				active = tt.active(now)
				f.attemptRepo.On("FindActiveAttempt", mock.Anything, testQuizID, testStudentID).Return(active, nil)
			} else {
				f.attemptRepo.On("FindActiveAttempt", mock.Anything, testQuizID, testStudentID).Return(nil, nil)
			}
			f.attemptRepo.On("CountCompletedAttempts", mock.Anything, testQuizID, testStudentID).Return(tt.completed, nil)
			f.expectSave()

			resp, err := f.svc.Start(context.Background(), testQuizID, testStudentID)

			if tt.wantErr != nil {
				require.Error(t, err)
				tt.wantErr(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, resp.Mode)
			assert.Equal(t, domain.AttemptInProgress, resp.Attempt.Status)
			assert.Len(t, resp.Questions, 2)
			f.attemptRepo.AssertNumberOfCalls(t, "SaveAttempt", tt.wantSaved)
			if tt.wantMode == "resumed" {
				f.attemptRepo.AssertNotCalled(t, "CountCompletedAttempts", mock.Anything, mock.Anything, mock.Anything)
				require.NotNil(t, resp.Attempt.RemainingTime)
				assert.Equal(t, 300, *resp.Attempt.RemainingTime)
			}
			if tt.wantMode == "new" {
				assert.Equal(t, []int{-1, -1}, resp.Attempt.Answers)
				require.NotNil(t, resp.Attempt.RemainingTime)
				assert.Equal(t, 600, *resp.Attempt.RemainingTime)
			}
			if active != nil && tt.wantSaved == 2 {
				assert.Equal(t, domain.AttemptCompleted, active.Status)
				events := f.publisher.Events()
				require.Len(t, events, 1)
				assert.Equal(t, domain.EventAttemptCompleted, events[0].Type)
				assert.True(t, events[0].Payload.(domain.AttemptCompletedEvent).Auto)
			}
		})
	}
}

func TestAttemptService_AnswerPauseResumeSubmit(t *testing.T) {
	f := newAttemptFixture(t)
	quiz := testQuiz(domain.QuizSettings{AllowPause: true, MaxAttempts: 1})
	attempt := inProgressAttempt(f.clock.Now(), 600)
	f.quizRepo.On("FindQuiz", mock.Anything, testQuizID).Return(quiz, nil)
	f.attemptRepo.On("FindAttempt", mock.Anything, testAttemptID).Return(attempt, nil)
	f.expectSave()
	ctx := context.Background()

	idx, choice := 0, 1
	resp, err := f.svc.Answer(ctx, testAttemptID, testStudentID, dto.AnswerRequest{Index: &idx, Choice: &choice})
	require.NoError(t, err)
	assert.Equal(t, []int{1, -1}, resp.Answers)

	f.clock.Advance(90 * time.Second)
	resp, err = f.svc.Pause(ctx, testAttemptID, testStudentID)
	require.NoError(t, err)
	assert.Equal(t, domain.AttemptPaused, resp.Status)
	assert.Equal(t, 90, resp.TimeSpent)
	assert.Equal(t, 510, *resp.RemainingTime)

	// paused time does not count
	f.clock.Advance(time.Hour)
	resp, err = f.svc.Resume(ctx, testAttemptID, testStudentID)
	require.NoError(t, err)
	assert.Equal(t, domain.AttemptInProgress, resp.Status)
	assert.Equal(t, 510, *resp.RemainingTime)

	_, err = f.svc.Submit(ctx, testAttemptID, testStudentID, dto.SubmitRequest{})
	var confirm *domain.ConfirmationRequiredError
	require.True(t, errors.As(err, &confirm))
	assert.Equal(t, 1, confirm.Unanswered)

	resp, err = f.svc.Submit(ctx, testAttemptID, testStudentID, dto.SubmitRequest{Confirmed: true})
	require.NoError(t, err)
	assert.Equal(t, domain.AttemptCompleted, resp.Status)
	require.NotNil(t, resp.Score)
	assert.Equal(t, 50.0, *resp.Score)
	assert.Nil(t, resp.RemainingTime)

	_, err = f.svc.Submit(ctx, testAttemptID, testStudentID, dto.SubmitRequest{Confirmed: true})
	var transition *domain.InvalidTransitionError
	assert.True(t, errors.As(err, &transition))

	events := f.publisher.Events()
	require.Len(t, events, 1)
	assert.False(t, events[0].Payload.(domain.AttemptCompletedEvent).Auto)
}

func TestAttemptService_PauseDisabled(t *testing.T) {
	f := newAttemptFixture(t)
	f.quizRepo.On("FindQuiz", mock.Anything, testQuizID).Return(testQuiz(domain.QuizSettings{MaxAttempts: 1}), nil)
	f.attemptRepo.On("FindAttempt", mock.Anything, testAttemptID).Return(inProgressAttempt(f.clock.Now(), 600), nil)

	_, err := f.svc.Pause(context.Background(), testAttemptID, testStudentID)

	var transition *domain.InvalidTransitionError
	require.True(t, errors.As(err, &transition))
	f.attemptRepo.AssertNotCalled(t, "SaveAttempt", mock.Anything, mock.Anything)
}

func TestAttemptService_ExpiredAttemptRefusesActions(t *testing.T) {
	f := newAttemptFixture(t)
	attempt := inProgressAttempt(f.clock.Now(), 600)
	f.quizRepo.On("FindQuiz", mock.Anything, testQuizID).Return(testQuiz(domain.QuizSettings{MaxAttempts: 1}), nil)
	f.attemptRepo.On("FindAttempt", mock.Anything, testAttemptID).Return(attempt, nil)
	f.expectSave()
	f.clock.Advance(10*time.Minute + time.Second)

	idx, choice := 0, 1
	_, err := f.svc.Answer(context.Background(), testAttemptID, testStudentID, dto.AnswerRequest{Index: &idx, Choice: &choice})

	var transition *domain.InvalidTransitionError
	require.True(t, errors.As(err, &transition))
	assert.Equal(t, "answer", transition.Action)
	assert.Equal(t, domain.AttemptCompleted, attempt.Status)
	assert.Equal(t, []int{-1, -1}, attempt.Answers)
	f.attemptRepo.AssertNumberOfCalls(t, "SaveAttempt", 1)
}

func TestAttemptService_OtherStudentsAttemptIsHidden(t *testing.T) {
	f := newAttemptFixture(t)
	f.attemptRepo.On("FindAttempt", mock.Anything, testAttemptID).Return(inProgressAttempt(f.clock.Now(), 600), nil)

	_, err := f.svc.Get(context.Background(), testAttemptID, "someone-else")

	var de *domain.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, domain.CodeAttemptNotFound, de.Code)
}

func TestAttemptService_Result(t *testing.T) {
	f := newAttemptFixture(t)
	score := 50.0
	completedAt := f.clock.Now()
	attempt := &domain.QuizAttempt{
		ID: testAttemptID, QuizID: testQuizID, StudentID: testStudentID,
		Answers: []int{1, -1}, Score: &score, Status: domain.AttemptCompleted, CompletedAt: &completedAt,
	}
	f.attemptRepo.On("FindAttempt", mock.Anything, testAttemptID).Return(attempt, nil)
	f.quizRepo.On("FindQuiz", mock.Anything, testQuizID).Return(testQuiz(domain.QuizSettings{MaxAttempts: 1}), nil)

	res, err := f.svc.Result(context.Background(), testAttemptID, testStudentID)

	require.NoError(t, err)
	assert.Equal(t, 1, res.Correct)
	assert.Equal(t, 2, res.Total)
	require.Len(t, res.Items, 2)
	assert.True(t, res.Items[0].Correct)
	assert.False(t, res.Items[1].Correct)
	assert.Equal(t, -1, res.Items[1].Choice)
	assert.Equal(t, "It declares a channel.", res.Items[1].Explanation)
}

func TestAttemptService_ResultRequiresCompletion(t *testing.T) {
	f := newAttemptFixture(t)
	f.attemptRepo.On("FindAttempt", mock.Anything, testAttemptID).Return(inProgressAttempt(f.clock.Now(), 600), nil)

	_, err := f.svc.Result(context.Background(), testAttemptID, testStudentID)

	var transition *domain.InvalidTransitionError
	assert.True(t, errors.As(err, &transition))
}

func TestAttemptService_ExpireOverdue(t *testing.T) {
	f := newAttemptFixture(t)
	now := f.clock.Now()
	overdue := inProgressAttempt(now.Add(-20*time.Minute), 600)
	running := inProgressAttempt(now.Add(-time.Minute), 600)
	running.ID = "01HQZATTEMPT00000000000001"

	f.attemptRepo.On("ListInProgressAttempts", mock.Anything).Return([]*domain.QuizAttempt{overdue, running}, nil)
	f.attemptRepo.On("FindAttempt", mock.Anything, testAttemptID).Return(overdue, nil)
	f.quizRepo.On("FindQuiz", mock.Anything, testQuizID).Return(testQuiz(domain.QuizSettings{MaxAttempts: 1}), nil)
	f.expectSave()

	n, err := f.svc.ExpireOverdue(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, domain.AttemptCompleted, overdue.Status)
	require.NotNil(t, overdue.Score)
	assert.Equal(t, 0.0, *overdue.Score)
	assert.Equal(t, domain.AttemptInProgress, running.Status)
	f.attemptRepo.AssertNotCalled(t, "FindAttempt", mock.Anything, running.ID)
}

func TestAttemptService_ExpireIgnoresPausedAttempt(t *testing.T) {
	f := newAttemptFixture(t)
	paused := inProgressAttempt(f.clock.Now().Add(-time.Hour), 120)
	paused.Status = domain.AttemptPaused
	f.attemptRepo.On("FindAttempt", mock.Anything, testAttemptID).Return(paused, nil)

	require.NoError(t, f.svc.Expire(context.Background(), testAttemptID))

	assert.Equal(t, domain.AttemptPaused, paused.Status)
	f.attemptRepo.AssertNotCalled(t, "SaveAttempt", mock.Anything, mock.Anything)
}
