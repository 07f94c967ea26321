package middleware

import (
	"quiz-forge/internal/domain"
	"quiz-forge/internal/util"

	"github.com/gofiber/fiber/v2"
)

// ValidateULIDParams rejects requests whose named path parameters are not ULIDs,
// so malformed IDs never reach the database.
func ValidateULIDParams(params ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var errs domain.ValidationErrors
		for _, name := range params {
			value := c.Params(name)
			if !util.IsULID(value) {
				errs = append(errs, domain.NewInvalidFieldError(name, "must be a valid ULID", value))
			}
		}
		if len(errs) > 0 {
			return errs // This will be handled by ErrorHandler middleware
		}
		return c.Next()
	}
}
