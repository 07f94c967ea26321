package middleware

import (
	"strings"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	UserIDKey           = "userID"   // Key for storing UserID in fiber.Ctx locals
	UserRoleKey         = "userRole" // Key for storing the caller's role in fiber.Ctx locals
)

// Protected is a middleware function that protects routes by requiring a valid JWT.
// It validates the token using the provided AuthService and sets the userID and userRole locals.
func Protected(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return unauthorized(c, "MISSING_AUTH_HEADER", "Authorization header is missing")
		}
		if !strings.HasPrefix(authHeader, BearerSchema) {
			return unauthorized(c, "INVALID_AUTH_SCHEME", "Authorization scheme is not Bearer")
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema))
		if tokenString == "" {
			return unauthorized(c, "EMPTY_TOKEN", "Token is empty")
		}

		claims, err := authService.ValidateJWT(c.UserContext(), tokenString)
		if err != nil {
			logger.Get().Debug("JWT validation failed", zap.Error(err), zap.String("path", c.Path()))
			return unauthorized(c, "INVALID_TOKEN", "Token is invalid or expired")
		}

		c.Locals(UserIDKey, claims.UserID)
		c.Locals(UserRoleKey, claims.Role)
		return c.Next()
	}
}

// RequireRole rejects callers whose token carries a different role. It must run after Protected.
func RequireRole(role domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentRole(c) != role {
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
				Code:    string(domain.CodeForbidden),
				Message: "This action requires the " + string(role) + " role",
				Status:  fiber.StatusForbidden,
			})
		}
		return c.Next()
	}
}

// CurrentUserID returns the authenticated user's ID, or "" outside Protected routes.
func CurrentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDKey).(string)
	return id
}

func CurrentRole(c *fiber.Ctx) domain.Role {
	role, _ := c.Locals(UserRoleKey).(domain.Role)
	return role
}

func unauthorized(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Code:    code,
		Message: message,
		Status:  fiber.StatusUnauthorized,
	})
}
