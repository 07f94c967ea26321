package handler

import (
	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/service"
	"quiz-forge/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type GenerationHandler struct {
	generationService service.GenerationService
	validator         *validation.Validator
}

func NewGenerationHandler(generationService service.GenerationService, validator *validation.Validator) *GenerationHandler {
	return &GenerationHandler{generationService: generationService, validator: validator}
}

// Generate godoc
// @Summary Generate questions
// @Description Generates multiple-choice questions from raw content. Partial results list the rejected blocks.
// @Tags generation
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.GenerateRequest true "Generation parameters"
// @Success 200 {object} dto.GenerationResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 429 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /generate [post]
func (h *GenerationHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return err
	}
	res, err := h.generationService.Generate(c.UserContext(), domain.GenerationConfig{
		Complexity: domain.Complexity(req.Complexity),
		Count:      req.Count,
		Content:    req.Content,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewGenerationResponse(res))
}
