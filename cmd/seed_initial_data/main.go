package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"quiz-forge/cmd/seed_initial_data/internal/seedmodels"
	"quiz-forge/internal/config"
	"quiz-forge/internal/database"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/repository"
	"quiz-forge/internal/service"

	"go.uber.org/zap"
)

const defaultSeedFilePath = "configs/seed_data/initial_quizzes.json"

func main() {
	seedFilePath := flag.String("file", defaultSeedFilePath, "path of the JSON seed file")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		// If logger is not initialized yet, use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting initial data seeding process...")
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	if err := database.Migrate(db.DB, cfg.DB.Driver, cfg.DB.MigrationsDir); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	byteValue, err := os.ReadFile(*seedFilePath)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", *seedFilePath), zap.Error(err))
	}
	var seed seedmodels.SeedFile
	if err := json.Unmarshal(byteValue, &seed); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}
	log.Info("Loaded seed data", zap.Int("users", len(seed.Users)), zap.Int("quizzes", len(seed.Quizzes)))

	userRepo := repository.NewSQLXUserRepository(db)
	quizRepo := repository.NewQuizDatabaseAdapter(db)
	attemptRepo := repository.NewSQLXAttemptRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	authService, err := service.NewAuthService(userRepo, cfg.JWT)
	if err != nil {
		log.Fatal("Failed to create AuthService", zap.Error(err))
	}
	quizService := service.NewQuizService(quizRepo, attemptRepo, userRepo, txManager, service.SystemClock{})

	userIDs := make(map[string]string, len(seed.Users))
	for _, u := range seed.Users {
		id, err := seedUser(ctx, authService, userRepo, u)
		if err != nil {
			log.Error("Error seeding user", zap.String("email", u.Email), zap.Error(err))
			continue
		}
		userIDs[u.Email] = id
	}

	for _, q := range seed.Quizzes {
		if err := seedQuiz(ctx, quizService, userIDs, q); err != nil {
			log.Error("Error seeding quiz", zap.String("title", q.Title), zap.Error(err))
		}
	}
	log.Info("Initial data seeding process completed.")
}

// seedUser registers u, or returns the existing account with the same email.
func seedUser(ctx context.Context, auth service.AuthService, users domain.UserRepository, u seedmodels.SeedUser) (string, error) {
	resp, err := auth.Register(ctx, dto.RegisterRequest{Email: u.Email, Password: u.Password, Name: u.Name, Role: u.Role})
	if err == nil {
		logger.Get().Info("Seeded user", zap.String("email", u.Email), zap.String("role", u.Role))
		return resp.User.ID, nil
	}
	var de *domain.DomainError
	if errors.As(err, &de) && de.Code == domain.CodeConflict {
		existing, lookupErr := users.GetUserByEmail(ctx, u.Email)
		if lookupErr != nil {
			return "", lookupErr
		}
		return existing.ID, nil
	}
	return "", err
}

func seedQuiz(ctx context.Context, quizzes service.QuizService, userIDs map[string]string, sq seedmodels.SeedQuiz) error {
	authorID, ok := userIDs[sq.Author]
	if !ok {
		return fmt.Errorf("unknown author %q", sq.Author)
	}
	quiz, err := quizzes.CreateQuiz(ctx, authorID, dto.CreateQuizRequest{
		Title:          sq.Title,
		Description:    sq.Description,
		Duration:       sq.Duration,
		QuestionsCount: sq.QuestionsCount,
		Settings: dto.QuizSettingsRequest{
			AllowRetakes: sq.AllowRetakes,
			AllowPause:   sq.AllowPause,
			MaxAttempts:  sq.MaxAttempts,
		},
	})
	if err != nil {
		return err
	}

	inputs := make([]dto.QuestionInput, 0, len(sq.Questions))
	for _, q := range sq.Questions {
		inputs = append(inputs, dto.QuestionInput{
			Text:          q.Text,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		})
	}
	if len(inputs) > 0 {
		if _, err := quizzes.AddQuestions(ctx, quiz.ID, dto.AddQuestionsRequest{Questions: inputs}); err != nil {
			return fmt.Errorf("adding questions: %w", err)
		}
	}
	if sq.Publish {
		if _, err := quizzes.PublishQuiz(ctx, quiz.ID); err != nil {
			return fmt.Errorf("publishing: %w", err)
		}
	}
	for _, email := range sq.AssignTo {
		studentID, ok := userIDs[email]
		if !ok {
			logger.Get().Warn("Skipping assignment to unknown student", zap.String("email", email))
			continue
		}
		if err := quizzes.AssignQuiz(ctx, quiz.ID, dto.AssignQuizRequest{StudentID: studentID}); err != nil {
			return fmt.Errorf("assigning to %s: %w", email, err)
		}
	}
	logger.Get().Info("Seeded quiz",
		zap.String("quiz_id", quiz.ID),
		zap.String("title", sq.Title),
		zap.Int("questions", len(inputs)),
		zap.Bool("published", sq.Publish))
	return nil
}
