package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"quiz-forge/internal/cache"
	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/metrics"
	"quiz-forge/internal/quizgen"

	"github.com/tmc/langchaingo/textsplitter"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// GenerationService turns source text into validated multiple-choice questions.
type GenerationService interface {
	Generate(ctx context.Context, cfg domain.GenerationConfig) (*domain.GenerationResult, error)
	GenerateForQuiz(ctx context.Context, quizID string, req dto.GenerateForQuizRequest) (*dto.GenerateForQuizResponse, error)
	GenerateFromDocument(ctx context.Context, documentID string, req dto.GenerateFromSourceRequest) (*domain.GenerationResult, error)
}

type generationService struct {
	generator domain.TextGenerator
	cache     domain.Cache // optional
	quizRepo  domain.QuizRepository
	docRepo   domain.DocumentRepository
	txManager domain.TransactionManager
	publisher domain.EventPublisher
	cfg       config.GenerationConfig
	clock     Clock
	group     singleflight.Group
}

// NewGenerationService wires the question pipeline. cache may be nil.
func NewGenerationService(
	generator domain.TextGenerator,
	cache domain.Cache,
	quizRepo domain.QuizRepository,
	docRepo domain.DocumentRepository,
	txManager domain.TransactionManager,
	publisher domain.EventPublisher,
	cfg config.GenerationConfig,
	clock Clock,
) GenerationService {
	if cfg.MaxContentChars <= 0 {
		cfg.MaxContentChars = 8000
	}
	if cfg.MaxQuestions <= 0 {
		cfg.MaxQuestions = 50
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 4096
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &generationService{
		generator: generator,
		cache:     cache,
		quizRepo:  quizRepo,
		docRepo:   docRepo,
		txManager: txManager,
		publisher: publisher,
		cfg:       cfg,
		clock:     clock,
	}
}

func (s *generationService) validateConfig(cfg domain.GenerationConfig) error {
	if !cfg.Complexity.Valid() {
		return domain.NewInvalidInputError("complexity must be one of lite, medium, expert").
			WithContext("complexity", cfg.Complexity)
	}
	if cfg.Count < 1 || cfg.Count > s.cfg.MaxQuestions {
		return domain.NewInvalidInputError(fmt.Sprintf("count must be between 1 and %d", s.cfg.MaxQuestions)).
			WithContext("count", cfg.Count)
	}
	if strings.TrimSpace(cfg.Content) == "" {
		return domain.NewInvalidInputError("content is required")
	}
	return nil
}

// selectContent keeps the leading chunk of content that fits the prompt budget,
// cut on paragraph or sentence boundaries where possible.
func selectContent(content string, maxChars int) string {
	content = strings.TrimSpace(content)
	if utf8.RuneCountInString(content) <= maxChars {
		return content
	}
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(maxChars),
		textsplitter.WithChunkOverlap(0),
	)
	chunks, err := splitter.SplitText(content)
	if err != nil || len(chunks) == 0 {
		return string([]rune(content)[:maxChars])
	}
	return chunks[0]
}

func (s *generationService) Generate(ctx context.Context, cfg domain.GenerationConfig) (*domain.GenerationResult, error) {
	res, err := s.generate(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s.publishGenerated(ctx, "", cfg, res)
	return res, nil
}

func (s *generationService) generate(ctx context.Context, cfg domain.GenerationConfig) (*domain.GenerationResult, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	cfg.Content = selectContent(cfg.Content, s.cfg.MaxContentChars)
	key := cache.GeneratedQuestionsKey(cfg.Content, string(cfg.Complexity), cfg.Count)
	log := logger.Get().With(zap.String("complexity", string(cfg.Complexity)), zap.Int("count", cfg.Count))

	if res, ok := s.fromCache(ctx, key); ok {
		log.Debug("Generated questions served from cache")
		metrics.GenerationRequests.WithLabelValues(string(cfg.Complexity), metrics.OutcomeCached).Inc()
		return res, nil
	}

	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		return s.runPipeline(ctx, cfg, key)
	})
	if err != nil {
		metrics.GenerationRequests.WithLabelValues(string(cfg.Complexity), metrics.OutcomeFailed).Inc()
		log.Warn("Question generation failed", zap.Error(err))
		return nil, err
	}
	if shared {
		log.Debug("Joined an in-flight generation")
	}
	metrics.GenerationRequests.WithLabelValues(string(cfg.Complexity), metrics.OutcomeSuccess).Inc()
	return v.(*domain.GenerationResult), nil
}

func (s *generationService) fromCache(ctx context.Context, key string) (*domain.GenerationResult, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Generation cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var res domain.GenerationResult
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		logger.Get().Warn("Discarding malformed generation cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	res.Cached = true
	return &res, true
}

func (s *generationService) runPipeline(ctx context.Context, cfg domain.GenerationConfig, key string) (*domain.GenerationResult, error) {
	log := logger.Get().With(zap.String("complexity", string(cfg.Complexity)))
	start := s.clock.Now()

	raw, err := s.generator.Generate(ctx, domain.TextRequest{
		Prompt:       quizgen.BuildPrompt(cfg.Complexity, cfg.Count, cfg.Content),
		SystemPrompt: quizgen.SystemPrompt,
		Temperature:  s.cfg.Temperature,
		MaxTokens:    s.cfg.MaxTokens,
	})
	elapsed := s.clock.Now().Sub(start)
	metrics.GenerationDuration.WithLabelValues(string(cfg.Complexity)).Observe(elapsed.Seconds())
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(raw) == "" {
		return nil, &domain.GenerationError{Message: "empty response"}
	}

	batch := quizgen.Parse(raw, cfg.Complexity, cfg.Count)
	for _, verr := range batch.Errors {
		log.Warn("Rejected generated question block",
			zap.Int("block", verr.Block),
			zap.String("stage", string(verr.Stage)),
			zap.Strings("problems", verr.Problems))
	}
	metrics.GeneratedQuestions.WithLabelValues("accepted").Add(float64(len(batch.Questions)))
	metrics.GeneratedQuestions.WithLabelValues("rejected").Add(float64(len(batch.Errors)))

	if len(batch.Questions) == 0 {
		return nil, &domain.GenerationError{Message: "no valid questions", Causes: batch.Messages()}
	}

	generatedAt := s.clock.Now()
	res := &domain.GenerationResult{
		Questions: make([]domain.GeneratedQuestion, 0, len(batch.Questions)),
		Rejected:  batch.Messages(),
	}
	for i, q := range batch.Questions {
		q.Position = i
		q.CreatedAt = generatedAt
		res.Questions = append(res.Questions, domain.GeneratedQuestion{
			Question:           q,
			GeneratedAt:        generatedAt,
			GenerationDuration: elapsed,
		})
	}
	log.Info("Questions generated",
		zap.Int("requested", cfg.Count),
		zap.Int("accepted", len(res.Questions)),
		zap.Int("rejected", len(res.Rejected)),
		zap.Duration("duration", elapsed))

	s.toCache(ctx, key, res)
	return res, nil
}

func (s *generationService) toCache(ctx context.Context, key string, res *domain.GenerationResult) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(res)
	if err != nil {
		logger.Get().Warn("Failed to encode generation result for cache", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(payload), s.cfg.CacheTTL); err != nil {
		logger.Get().Warn("Generation cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *generationService) publishGenerated(ctx context.Context, quizID string, cfg domain.GenerationConfig, res *domain.GenerationResult) {
	if s.publisher == nil || res.Cached {
		return
	}
	event := domain.QuestionsGeneratedEvent{
		QuizID:     quizID,
		Complexity: cfg.Complexity,
		Requested:  cfg.Count,
		Accepted:   len(res.Questions),
		Rejected:   len(res.Rejected),
	}
	if err := s.publisher.Publish(ctx, domain.EventQuestionsGenerated, event); err != nil {
		logger.Get().Warn("Failed to publish event", zap.String("event", domain.EventQuestionsGenerated), zap.Error(err))
	}
}

func (s *generationService) loadDocument(ctx context.Context, id string) (*domain.Document, error) {
	doc, err := s.docRepo.GetDocument(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFoundError("document not found").WithContext("document_id", id)
		}
		return nil, domain.NewInternalError("failed to load document", err)
	}
	return doc, nil
}

func (s *generationService) GenerateForQuiz(ctx context.Context, quizID string, req dto.GenerateForQuizRequest) (*dto.GenerateForQuizResponse, error) {
	quiz, err := loadQuiz(ctx, s.quizRepo, quizID)
	if err != nil {
		return nil, err
	}
	if quiz.IsPublished() {
		return nil, domain.NewQuizPublishedError(quizID)
	}
	slots := quiz.RemainingSlots()
	if slots <= 0 {
		return nil, domain.NewInvalidInputError("quiz already has all of its questions").WithContext("quiz_id", quizID)
	}

	content := req.Content
	if req.DocumentID != "" {
		doc, err := s.loadDocument(ctx, req.DocumentID)
		if err != nil {
			return nil, err
		}
		content = doc.Content
	}
	cfg := domain.GenerationConfig{
		Complexity: domain.Complexity(req.Complexity),
		Count:      min(req.Count, slots),
		Content:    content,
	}
	res, err := s.generate(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// res may be shared with concurrent callers; copy before assigning positions.
	questions := make([]domain.Question, len(res.Questions))
	for i, gq := range res.Questions {
		questions[i] = gq.Question
		questions[i].Options = append([]string(nil), gq.Options...)
	}
	added := 0
	err = s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		updated, n, err := appendQuestions(ctx, s.quizRepo, quizID, questions, true)
		if err != nil {
			return err
		}
		quiz, added = updated, n
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publishGenerated(ctx, quizID, cfg, res)

	rejected := res.Rejected
	if rejected == nil {
		rejected = []string{}
	}
	return &dto.GenerateForQuizResponse{Quiz: dto.NewQuizResponse(quiz), Added: added, Rejected: rejected}, nil
}

func (s *generationService) GenerateFromDocument(ctx context.Context, documentID string, req dto.GenerateFromSourceRequest) (*domain.GenerationResult, error) {
	doc, err := s.loadDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	cfg := domain.GenerationConfig{
		Complexity: domain.Complexity(req.Complexity),
		Count:      req.Count,
		Content:    doc.Content,
	}
	res, err := s.generate(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s.publishGenerated(ctx, "", cfg, res)
	return res, nil
}

