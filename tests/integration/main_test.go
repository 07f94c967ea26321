package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"quiz-forge/internal/adapter/document"
	"quiz-forge/internal/adapter/event"
	"quiz-forge/internal/config"
	"quiz-forge/internal/database"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/handler"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/middleware"
	"quiz-forge/internal/repository"
	"quiz-forge/internal/service"
	"quiz-forge/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const generatedBlocks = `Question: Which keyword starts a goroutine in Go?
A) go
B) defer
C) chan
D) select
Correct Answer: 0
Explanation: The go keyword starts a function call in a new goroutine.

Question: Which statement waits on several channel operations?
A) switch
B) select
C) for
D) range
Correct Answer: B
Explanation: select blocks until one of its cases can proceed.`

var (
	app       *fiber.App
	db        *sqlx.DB
	generator = &stubGenerator{response: generatedBlocks}
)

// stubGenerator stands in for the LLM provider so the suite runs offline.
type stubGenerator struct {
	mu       sync.Mutex
	response string
	calls    int
}

func (g *stubGenerator) Generate(ctx context.Context, req domain.TextRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	return g.response, nil
}

func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	if err := logger.Initialize(config.LoggerConfig{Env: "test", Level: "warn"}); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()
	log := logger.Get()

	dir, err := os.MkdirTemp("", "quiz-forge-integration")
	if err != nil {
		log.Fatal("Failed to create temp dir", zap.Error(err))
	}
	defer os.RemoveAll(dir)

	db, err = database.NewSQLXSQLiteDB(filepath.Join(dir, "quiz_forge.db"))
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()
	if err := database.Migrate(db.DB, database.DriverSQLite, "../../database/migrations"); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	app = newTestApp()
	log.Info("Starting integration tests")
	return m.Run()
}

func newTestApp() *fiber.App {
	quizRepo := repository.NewQuizDatabaseAdapter(db)
	attemptRepo := repository.NewSQLXAttemptRepository(db)
	userRepo := repository.NewSQLXUserRepository(db)
	docRepo := repository.NewSQLXDocumentRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)
	publisher := event.NoopPublisher{}
	clock := service.SystemClock{}

	authService, err := service.NewAuthService(userRepo, config.JWTConfig{
		SecretKey:      "integration-secret",
		AccessTokenTTL: time.Hour,
	})
	if err != nil {
		panic(err)
	}
	genCfg := config.GenerationConfig{MaxContentChars: 8000, MaxQuestions: 50, Temperature: 0.7, MaxTokens: 4096}
	generationService := service.NewGenerationService(generator, nil, quizRepo, docRepo, txManager, publisher, genCfg, clock)
	quizService := service.NewQuizService(quizRepo, attemptRepo, userRepo, txManager, clock)
	attemptService := service.NewAttemptService(quizRepo, attemptRepo, txManager, publisher, service.NewAttemptTimers(), clock)
	documentService := service.NewDocumentService(docRepo, document.NewExtractor(), generator, genCfg.MaxContentChars, clock)

	v := validation.NewValidator()
	fiberApp := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	handler.RegisterRoutes(fiberApp, handler.Handlers{
		Auth:       handler.NewAuthHandler(authService, v),
		Quiz:       handler.NewQuizHandler(quizService, generationService, v),
		Attempt:    handler.NewAttemptHandler(attemptService, quizService, v),
		Document:   handler.NewDocumentHandler(documentService, generationService, v),
		Generation: handler.NewGenerationHandler(generationService, v),
		Health:     handler.NewHealthHandler(db, nil),
	}, authService, config.RateLimitConfig{Max: 1000, Window: time.Minute})
	return fiberApp
}

// doJSON sends body as JSON with an optional bearer token and returns the response.
func doJSON(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func requireStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode == want {
		return
	}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	t.Fatalf("expected status %d, got %d: %s", want, resp.StatusCode, raw)
}
