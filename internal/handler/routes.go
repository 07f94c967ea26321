package handler

import (
	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/middleware"
	"quiz-forge/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles every HTTP handler mounted under /api.
type Handlers struct {
	Auth       *AuthHandler
	Quiz       *QuizHandler
	Attempt    *AttemptHandler
	Document   *DocumentHandler
	Generation *GenerationHandler
	Health     *HealthHandler
}

// RegisterRoutes mounts the API. Role checks are attached per route because
// admins and students share the /quizzes prefix.
func RegisterRoutes(app *fiber.App, h Handlers, authService service.AuthService, rateLimit config.RateLimitConfig) {
	protected := middleware.Protected(authService)
	admin := middleware.RequireRole(domain.RoleAdmin)
	student := middleware.RequireRole(domain.RoleStudent)
	limited := middleware.RateLimit(rateLimit)
	validID := middleware.ValidateULIDParams("id")

	api := app.Group("/api")
	api.Get("/health", h.Health.Health)

	// Auth routes
	api.Post("/auth/register", h.Auth.Register)
	api.Post("/auth/login", h.Auth.Login)
	api.Get("/users/me", protected, h.Auth.Me)

	// Quiz management (admin)
	api.Post("/quizzes", protected, admin, h.Quiz.CreateQuiz)
	api.Get("/quizzes", protected, admin, h.Quiz.ListQuizzes)
	api.Get("/quizzes/:id", protected, admin, validID, h.Quiz.GetQuiz)
	api.Put("/quizzes/:id", protected, admin, validID, h.Quiz.UpdateQuiz)
	api.Delete("/quizzes/:id", protected, admin, validID, h.Quiz.DeleteQuiz)
	api.Post("/quizzes/:id/publish", protected, admin, validID, h.Quiz.PublishQuiz)
	api.Post("/quizzes/:id/questions", protected, admin, validID, h.Quiz.AddQuestions)
	api.Delete("/quizzes/:id/questions/:questionId", protected, admin, validID, h.Quiz.DeleteQuestion)
	api.Post("/quizzes/:id/generate", protected, admin, validID, limited, h.Quiz.GenerateQuestions)
	api.Post("/quizzes/:id/assignments", protected, admin, validID, h.Quiz.AssignQuiz)
	api.Get("/quizzes/:id/attempts", protected, admin, validID, h.Quiz.ListQuizAttempts)
	api.Get("/students", protected, admin, h.Quiz.ListStudents)

	// Student surface
	api.Get("/me/quizzes", protected, student, h.Attempt.MyQuizzes)
	api.Get("/me/attempts", protected, student, h.Attempt.MyAttempts)
	api.Post("/quizzes/:id/attempts", protected, student, validID, h.Attempt.Start)

	api.Get("/attempts/:id", protected, student, validID, h.Attempt.GetAttempt)
	api.Get("/attempts/:id/result", protected, student, validID, h.Attempt.Result)
	api.Put("/attempts/:id/answers", protected, student, validID, h.Attempt.Answer)
	api.Post("/attempts/:id/pause", protected, student, validID, h.Attempt.Pause)
	api.Post("/attempts/:id/resume", protected, student, validID, h.Attempt.Resume)
	api.Post("/attempts/:id/submit", protected, student, validID, h.Attempt.Submit)

	// Documents and raw generation (admin)
	api.Post("/documents", protected, admin, h.Document.CreateDocument)
	api.Get("/documents", protected, admin, h.Document.ListDocuments)
	api.Get("/documents/:id", protected, admin, validID, h.Document.GetDocument)
	api.Post("/documents/:id/questions", protected, admin, validID, limited, h.Document.GenerateQuestions)
	api.Post("/generate", protected, admin, limited, h.Generation.Generate)
}
