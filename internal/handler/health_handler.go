package handler

import (
	"context"
	"time"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// DBPinger is satisfied by *sqlx.DB and *sql.DB.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse reports the status of the service and each dependency.
type HealthResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
}

type HealthHandler struct {
	db    DBPinger
	cache domain.Cache // optional
}

func NewHealthHandler(db DBPinger, cache domain.Cache) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Health godoc
// @Summary Health check
// @Description Pings the database and Redis
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
	defer cancel()

	resp := HealthResponse{Status: "ok", Dependencies: map[string]string{}}
	check := func(name string, ping func(context.Context) error) {
		if err := ping(ctx); err != nil {
			logger.Get().Warn("Health check failed", zap.String("dependency", name), zap.Error(err))
			resp.Dependencies[name] = "down"
			resp.Status = "degraded"
			return
		}
		resp.Dependencies[name] = "up"
	}

	check("database", h.db.PingContext)
	if h.cache != nil {
		check("redis", h.cache.Ping)
	} else {
		resp.Dependencies["redis"] = "disabled"
	}

	status := fiber.StatusOK
	if resp.Status != "ok" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(resp)
}
