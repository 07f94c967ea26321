// Command batch_add_questions fills draft quizzes with generated questions from
// local source files, one quiz per file.
//
// Usage:
//
//	batch_add_questions -complexity medium -count 5 QUIZ_ID=notes/sql.md [QUIZ_ID=other.pdf ...]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"quiz-forge/internal/adapter"
	"quiz-forge/internal/adapter/document"
	"quiz-forge/internal/adapter/event"
	"quiz-forge/internal/adapter/textgen"
	"quiz-forge/internal/cache"
	"quiz-forge/internal/config"
	"quiz-forge/internal/database"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/repository"
	"quiz-forge/internal/service"

	"go.uber.org/zap"
)

func main() {
	complexity := flag.String("complexity", string(domain.ComplexityMedium), "lite, medium or expert")
	count := flag.Int("count", 5, "questions to request per quiz")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		// Logger might not be initialized yet, so use fmt for this critical error
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	jobs, err := parseJobs(flag.Args())
	if err != nil || len(jobs) == 0 {
		fmt.Fprintln(os.Stderr, "usage: batch_add_questions [-complexity c] [-count n] QUIZ_ID=path ...")
		os.Exit(2)
	}
	log.Info("Batch process starting up...", zap.Int("quizzes", len(jobs)))

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	var cacheAdapter domain.Cache
	if redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis); err != nil {
		log.Warn("Redis cache is not available. Running without cache.", zap.Error(err))
	} else {
		defer redisClient.Close()
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
	}

	generator, err := textgen.NewFromConfig(cfg.LLM, cfg.Generation)
	if err != nil {
		log.Fatal("Failed to initialize text generator", zap.Error(err))
	}

	quizRepo := repository.NewQuizDatabaseAdapter(db)
	generationSvc := service.NewGenerationService(generator, cacheAdapter, quizRepo,
		repository.NewSQLXDocumentRepository(db), repository.NewTransactionManagerAdapter(db),
		event.NoopPublisher{}, cfg.Generation, service.SystemClock{})
	extractor := document.NewExtractor()

	ctx := context.Background()
	failed := 0
	for _, j := range jobs {
		if err := runJob(ctx, extractor, generationSvc, j, *complexity, *count); err != nil {
			failed++
			log.Error("Batch item failed", zap.String("quiz_id", j.quizID), zap.String("file", j.path), zap.Error(err))
		}
	}
	if failed > 0 {
		log.Fatal("Batch process finished with failures", zap.Int("failed", failed), zap.Int("total", len(jobs)))
	}
	log.Info("Batch process completed successfully.")
}

type batchJob struct {
	quizID string
	path   string
}

func parseJobs(args []string) ([]batchJob, error) {
	jobs := make([]batchJob, 0, len(args))
	for _, arg := range args {
		quizID, path, ok := strings.Cut(arg, "=")
		if !ok || quizID == "" || path == "" {
			return nil, fmt.Errorf("invalid argument %q", arg)
		}
		jobs = append(jobs, batchJob{quizID: quizID, path: filepath.Clean(path)})
	}
	return jobs, nil
}

func runJob(ctx context.Context, extractor domain.TextExtractor, svc service.GenerationService, j batchJob, complexity string, count int) error {
	data, err := os.ReadFile(j.path)
	if err != nil {
		return err
	}
	text, err := extractor.Extract(ctx, j.path, data)
	if err != nil {
		return err
	}
	resp, err := svc.GenerateForQuiz(ctx, j.quizID, dto.GenerateForQuizRequest{
		Complexity: complexity,
		Count:      count,
		Content:    text,
	})
	if err != nil {
		return err
	}
	logger.Get().Info("Questions added",
		zap.String("quiz_id", j.quizID),
		zap.Int("added", resp.Added),
		zap.Int("rejected", len(resp.Rejected)))
	return nil
}
