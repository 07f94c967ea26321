package handler

import (
	"quiz-forge/internal/dto"
	"quiz-forge/internal/metrics"
	"quiz-forge/internal/middleware"
	"quiz-forge/internal/service"
	"quiz-forge/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AttemptHandler serves the student side: assigned quizzes and the attempt lifecycle.
type AttemptHandler struct {
	attemptService service.AttemptService
	quizService    service.QuizService
	validator      *validation.Validator
}

func NewAttemptHandler(attemptService service.AttemptService, quizService service.QuizService, validator *validation.Validator) *AttemptHandler {
	return &AttemptHandler{
		attemptService: attemptService,
		quizService:    quizService,
		validator:      validator,
	}
}

// MyQuizzes godoc
// @Summary Assigned quizzes
// @Description Published quizzes assigned to the caller with attempt summary and eligibility
// @Tags student
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} dto.StudentQuizSummary
// @Router /me/quizzes [get]
func (h *AttemptHandler) MyQuizzes(c *fiber.Ctx) error {
	quizzes, err := h.quizService.ListStudentQuizzes(c.UserContext(), middleware.CurrentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(quizzes)
}

// MyAttempts godoc
// @Summary Own attempts
// @Tags student
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} dto.AttemptResponse
// @Router /me/attempts [get]
func (h *AttemptHandler) MyAttempts(c *fiber.Ctx) error {
	attempts, err := h.attemptService.ListMine(c.UserContext(), middleware.CurrentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(attempts)
}

// Start godoc
// @Summary Start or resume an attempt
// @Description Returns the active attempt when one exists, otherwise creates a new attempt if the student is eligible
// @Tags attempts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.StartAttemptResponse
// @Success 201 {object} dto.StartAttemptResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/attempts [post]
func (h *AttemptHandler) Start(c *fiber.Ctx) error {
	resp, err := h.attemptService.Start(c.UserContext(), c.Params("id"), middleware.CurrentUserID(c))
	if err != nil {
		return err
	}
	status := fiber.StatusOK
	if resp.Mode == metrics.StartNew {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(resp)
}

// Answer godoc
// @Summary Record an answer
// @Description Sets the choice for one question. A choice of -1 clears the answer.
// @Tags attempts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Attempt ID"
// @Param request body dto.AnswerRequest true "Answer"
// @Success 200 {object} dto.AttemptResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /attempts/{id}/answers [put]
func (h *AttemptHandler) Answer(c *fiber.Ctx) error {
	var req dto.AnswerRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return err
	}
	resp, err := h.attemptService.Answer(c.UserContext(), c.Params("id"), middleware.CurrentUserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Pause godoc
// @Summary Pause an attempt
// @Tags attempts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /attempts/{id}/pause [post]
func (h *AttemptHandler) Pause(c *fiber.Ctx) error {
	resp, err := h.attemptService.Pause(c.UserContext(), c.Params("id"), middleware.CurrentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Resume godoc
// @Summary Resume a paused attempt
// @Tags attempts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /attempts/{id}/resume [post]
func (h *AttemptHandler) Resume(c *fiber.Ctx) error {
	resp, err := h.attemptService.Resume(c.UserContext(), c.Params("id"), middleware.CurrentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Submit godoc
// @Summary Submit an attempt
// @Description Scores the attempt. Unanswered questions require confirmed=true.
// @Tags attempts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Attempt ID"
// @Param request body dto.SubmitRequest false "Confirmation"
// @Success 200 {object} dto.AttemptResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /attempts/{id}/submit [post]
func (h *AttemptHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitRequest
	if len(c.Body()) > 0 {
		if err := bindAndValidate(c, h.validator, &req); err != nil {
			return err
		}
	}
	resp, err := h.attemptService.Submit(c.UserContext(), c.Params("id"), middleware.CurrentUserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetAttempt godoc
// @Summary Get an attempt
// @Tags attempts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /attempts/{id} [get]
func (h *AttemptHandler) GetAttempt(c *fiber.Ctx) error {
	resp, err := h.attemptService.Get(c.UserContext(), c.Params("id"), middleware.CurrentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Result godoc
// @Summary Attempt result
// @Description Per-question review of a completed attempt
// @Tags attempts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptResultResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /attempts/{id}/result [get]
func (h *AttemptHandler) Result(c *fiber.Ctx) error {
	resp, err := h.attemptService.Result(c.UserContext(), c.Params("id"), middleware.CurrentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
