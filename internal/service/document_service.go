package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"quiz-forge/internal/adapter/textgen"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/quizgen"
	"quiz-forge/internal/util"

	"go.uber.org/zap"
)

const (
	summaryTemperature = 0.3
	summaryMaxTokens   = 1024
)

// DocumentService stores source documents and their summaries.
type DocumentService interface {
	Upload(ctx context.Context, ownerID, filename string, data []byte) (*dto.DocumentResponse, error)
	CreateFromText(ctx context.Context, ownerID string, req dto.CreateDocumentRequest) (*dto.DocumentResponse, error)
	List(ctx context.Context, ownerID string) ([]dto.DocumentResponse, error)
	Get(ctx context.Context, id string) (*dto.DocumentResponse, error)
}

type documentService struct {
	repo            domain.DocumentRepository
	extractor       domain.TextExtractor
	generator       domain.TextGenerator
	maxContentChars int
	clock           Clock
}

// NewDocumentService creates a new instance of documentService
func NewDocumentService(
	repo domain.DocumentRepository,
	extractor domain.TextExtractor,
	generator domain.TextGenerator,
	maxContentChars int,
	clock Clock,
) DocumentService {
	if maxContentChars <= 0 {
		maxContentChars = 8000
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &documentService{
		repo:            repo,
		extractor:       extractor,
		generator:       generator,
		maxContentChars: maxContentChars,
		clock:           clock,
	}
}

func (s *documentService) Upload(ctx context.Context, ownerID, filename string, data []byte) (*dto.DocumentResponse, error) {
	text, err := s.extractor.Extract(ctx, filename, data)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return s.store(ctx, ownerID, title, text)
}

func (s *documentService) CreateFromText(ctx context.Context, ownerID string, req dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, domain.NewInvalidInputError("content is required")
	}
	return s.store(ctx, ownerID, strings.TrimSpace(req.Title), strings.TrimSpace(req.Content))
}

func (s *documentService) store(ctx context.Context, ownerID, title, content string) (*dto.DocumentResponse, error) {
	doc := &domain.Document{
		ID:        util.NewULID(),
		OwnerID:   ownerID,
		Title:     title,
		Content:   content,
		WordCount: len(strings.Fields(content)),
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.CreateDocument(ctx, doc); err != nil {
		return nil, domain.NewInternalError("failed to store document", err)
	}
	log := logger.Get().With(zap.String("document_id", doc.ID))
	log.Info("Document stored", zap.Int("words", doc.WordCount))

	// a document without a summary is still usable for generation
	summary, err := s.summarize(ctx, content)
	if err != nil {
		log.Warn("Document summary generation failed", zap.Error(err))
	} else if err := s.repo.UpdateSummary(ctx, doc.ID, summary); err != nil {
		log.Error("Failed to store document summary", zap.Error(err))
	} else {
		doc.Summary = summary
	}

	resp := dto.NewDocumentResponse(doc)
	return &resp, nil
}

func (s *documentService) summarize(ctx context.Context, content string) (*domain.DocumentSummary, error) {
	if s.generator == nil {
		return nil, errors.New("no text generator configured")
	}
	raw, err := s.generator.Generate(ctx, domain.TextRequest{
		Prompt:       quizgen.SummaryPrompt + "\n\nDocument:\n" + selectContent(content, s.maxContentChars),
		SystemPrompt: quizgen.SummarySystemPrompt,
		Temperature:  summaryTemperature,
		MaxTokens:    summaryMaxTokens,
		JSON:         true,
	})
	if err != nil {
		return nil, err
	}
	obj, err := textgen.ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}
	var summary domain.DocumentSummary
	if err := json.Unmarshal([]byte(obj), &summary); err != nil {
		return nil, fmt.Errorf("failed to decode document summary: %w", err)
	}
	if summary.WordCount <= 0 {
		summary.WordCount = len(strings.Fields(content))
	}
	return &summary, nil
}

func (s *documentService) List(ctx context.Context, ownerID string) ([]dto.DocumentResponse, error) {
	docs, err := s.repo.ListDocuments(ctx, ownerID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list documents", err)
	}
	out := make([]dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, dto.NewDocumentResponse(d))
	}
	return out, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	doc, err := s.repo.GetDocument(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFoundError("document not found").WithContext("document_id", id)
		}
		return nil, domain.NewInternalError("failed to load document", err)
	}
	resp := dto.NewDocumentResponse(doc)
	return &resp, nil
}
