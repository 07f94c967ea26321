// Package handler holds the fiber HTTP handlers of the API.
package handler

import (
	"quiz-forge/internal/domain"
	"quiz-forge/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// bindAndValidate decodes the JSON body into out and runs the struct validation tags.
func bindAndValidate(c *fiber.Ctx, v *validation.Validator, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return domain.NewInvalidInputError("request body could not be parsed").WithContext("error", err.Error())
	}
	return v.Struct(out)
}
