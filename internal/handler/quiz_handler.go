package handler

import (
	"quiz-forge/internal/dto"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/middleware"
	"quiz-forge/internal/service"
	"quiz-forge/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles the admin quiz management routes
type QuizHandler struct {
	quizService       service.QuizService
	generationService service.GenerationService
	validator         *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(quizService service.QuizService, generationService service.GenerationService, validator *validation.Validator) *QuizHandler {
	return &QuizHandler{
		quizService:       quizService,
		generationService: generationService,
		validator:         validator,
	}
}

// CreateQuiz godoc
// @Summary Create a quiz
// @Description Creates a draft quiz owned by the caller
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateQuizRequest true "Quiz"
// @Success 201 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /quizzes [post]
func (h *QuizHandler) CreateQuiz(c *fiber.Ctx) error {
	var req dto.CreateQuizRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return err
	}
	quiz, err := h.quizService.CreateQuiz(c.UserContext(), middleware.CurrentUserID(c), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(quiz)
}

// ListQuizzes godoc
// @Summary List quizzes
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} dto.QuizResponse
// @Router /quizzes [get]
func (h *QuizHandler) ListQuizzes(c *fiber.Ctx) error {
	quizzes, err := h.quizService.ListQuizzes(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(quizzes)
}

// GetQuiz godoc
// @Summary Get a quiz
// @Description Returns a quiz with its questions and answer key
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	quiz, err := h.quizService.GetQuiz(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// UpdateQuiz godoc
// @Summary Update a draft quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Quiz ID"
// @Param request body dto.UpdateQuizRequest true "Changed fields"
// @Success 200 {object} dto.QuizResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id} [put]
func (h *QuizHandler) UpdateQuiz(c *fiber.Ctx) error {
	var req dto.UpdateQuizRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return err
	}
	quiz, err := h.quizService.UpdateQuiz(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// DeleteQuiz godoc
// @Summary Delete a draft quiz
// @Tags quizzes
// @Security ApiKeyAuth
// @Param id path string true "Quiz ID"
// @Success 204
// @Failure 403 {object} middleware.ErrorResponse
// @Router /quizzes/{id} [delete]
func (h *QuizHandler) DeleteQuiz(c *fiber.Ctx) error {
	if err := h.quizService.DeleteQuiz(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PublishQuiz godoc
// @Summary Publish a quiz
// @Description Makes a draft quiz available to assigned students. Published quizzes are immutable.
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/publish [post]
func (h *QuizHandler) PublishQuiz(c *fiber.Ctx) error {
	quiz, err := h.quizService.PublishQuiz(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// AddQuestions godoc
// @Summary Add hand-written questions
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Quiz ID"
// @Param request body dto.AddQuestionsRequest true "Questions"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/questions [post]
func (h *QuizHandler) AddQuestions(c *fiber.Ctx) error {
	var req dto.AddQuestionsRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return err
	}
	quiz, err := h.quizService.AddQuestions(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// DeleteQuestion godoc
// @Summary Remove a question from a draft quiz
// @Tags quizzes
// @Security ApiKeyAuth
// @Param id path string true "Quiz ID"
// @Param questionId path string true "Question ID"
// @Success 204
// @Router /quizzes/{id}/questions/{questionId} [delete]
func (h *QuizHandler) DeleteQuestion(c *fiber.Ctx) error {
	if err := h.quizService.DeleteQuestion(c.UserContext(), c.Params("id"), c.Params("questionId")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GenerateQuestions godoc
// @Summary Generate questions into a draft quiz
// @Description Runs the generation pipeline over the given content or document and appends the accepted questions
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Quiz ID"
// @Param request body dto.GenerateForQuizRequest true "Generation parameters"
// @Success 200 {object} dto.GenerateForQuizResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 429 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/generate [post]
func (h *QuizHandler) GenerateQuestions(c *fiber.Ctx) error {
	var req dto.GenerateForQuizRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return err
	}
	resp, err := h.generationService.GenerateForQuiz(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	logger.Get().Info("Questions generated for quiz",
		zap.String("quiz_id", c.Params("id")),
		zap.Int("added", resp.Added),
		zap.Int("rejected", len(resp.Rejected)))
	return c.JSON(resp)
}

// AssignQuiz godoc
// @Summary Assign a quiz to a student
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Quiz ID"
// @Param request body dto.AssignQuizRequest true "Student"
// @Success 201 {object} dto.MessageResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/assignments [post]
func (h *QuizHandler) AssignQuiz(c *fiber.Ctx) error {
	var req dto.AssignQuizRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return err
	}
	if err := h.quizService.AssignQuiz(c.UserContext(), c.Params("id"), req); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "quiz assigned"})
}

// ListQuizAttempts godoc
// @Summary List attempts of a quiz
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Quiz ID"
// @Success 200 {array} dto.AttemptResponse
// @Router /quizzes/{id}/attempts [get]
func (h *QuizHandler) ListQuizAttempts(c *fiber.Ctx) error {
	attempts, err := h.quizService.ListQuizAttempts(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(attempts)
}

// ListStudents godoc
// @Summary List students
// @Description Returns every student with an attempt summary
// @Tags students
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} dto.StudentOverview
// @Router /students [get]
func (h *QuizHandler) ListStudents(c *fiber.Ctx) error {
	students, err := h.quizService.ListStudents(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(students)
}
