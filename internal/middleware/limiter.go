package middleware

import (
	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"
)

// RateLimit throttles expensive routes per client. Authenticated callers are
// keyed by user ID, everyone else by IP.
func RateLimit(cfg config.RateLimitConfig) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        cfg.Max,
		Expiration: cfg.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if id := CurrentUserID(c); id != "" {
				return "user:" + id
			}
			return "ip:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			logger.Get().Warn("Rate limit reached",
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()))
			return c.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse{
				Code:    string(domain.CodeRateLimited),
				Message: "Too many requests, try again later",
				Status:  fiber.StatusTooManyRequests,
			})
		},
	})
}
