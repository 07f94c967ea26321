package handler

import (
	"io"
	"strings"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/middleware"
	"quiz-forge/internal/service"
	"quiz-forge/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// DocumentHandler handles source document upload and generation from documents.
type DocumentHandler struct {
	documentService   service.DocumentService
	generationService service.GenerationService
	validator         *validation.Validator
}

func NewDocumentHandler(documentService service.DocumentService, generationService service.GenerationService, validator *validation.Validator) *DocumentHandler {
	return &DocumentHandler{
		documentService:   documentService,
		generationService: generationService,
		validator:         validator,
	}
}

// CreateDocument godoc
// @Summary Upload a document
// @Description Accepts a multipart file (.txt, .md, .pdf) or a JSON body with title and content, then stores a summary when one can be generated
// @Tags documents
// @Accept mpfd
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file false "Document file"
// @Param request body dto.CreateDocumentRequest false "Inline document"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /documents [post]
func (h *DocumentHandler) CreateDocument(c *fiber.Ctx) error {
	ownerID := middleware.CurrentUserID(c)

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		if err != nil {
			return domain.ValidationErrors{domain.NewMissingFieldError("file")}
		}
		f, err := fh.Open()
		if err != nil {
			return domain.NewInvalidInputError("uploaded file could not be read")
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return domain.NewInvalidInputError("uploaded file could not be read")
		}
		doc, err := h.documentService.Upload(c.UserContext(), ownerID, fh.Filename, data)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}

	var req dto.CreateDocumentRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return err
	}
	doc, err := h.documentService.CreateFromText(c.UserContext(), ownerID, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

// ListDocuments godoc
// @Summary List own documents
// @Tags documents
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} dto.DocumentResponse
// @Router /documents [get]
func (h *DocumentHandler) ListDocuments(c *fiber.Ctx) error {
	docs, err := h.documentService.List(c.UserContext(), middleware.CurrentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(docs)
}

// GetDocument godoc
// @Summary Get a document
// @Tags documents
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /documents/{id} [get]
func (h *DocumentHandler) GetDocument(c *fiber.Ctx) error {
	doc, err := h.documentService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(doc)
}

// GenerateQuestions godoc
// @Summary Generate questions from a document
// @Description Runs the generation pipeline over the document content without persisting the questions
// @Tags documents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Document ID"
// @Param request body dto.GenerateFromSourceRequest true "Generation parameters"
// @Success 200 {object} dto.GenerationResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Router /documents/{id}/questions [post]
func (h *DocumentHandler) GenerateQuestions(c *fiber.Ctx) error {
	var req dto.GenerateFromSourceRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return err
	}
	res, err := h.generationService.GenerateFromDocument(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewGenerationResponse(res))
}
