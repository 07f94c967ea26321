package middleware

import (
	"errors"
	"net/http"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Status  int                    `json:"status"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorHandler is a centralized error handling middleware
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		resp := toErrorResponse(err)
		log := logger.Get().With(
			zap.String("path", c.Path()),
			zap.String("code", resp.Code),
			zap.Int("status", resp.Status),
		)
		if resp.Status >= http.StatusInternalServerError {
			log.Error("Request failed", zap.Error(err))
		} else {
			log.Warn("Request rejected", zap.Error(err))
		}
		return c.Status(resp.Status).JSON(resp)
	}
}

func toErrorResponse(err error) ErrorResponse {
	var (
		validationErrs domain.ValidationErrors
		domainErr      *domain.DomainError
		eligibility    *domain.EligibilityError
		transition     *domain.InvalidTransitionError
		confirmation   *domain.ConfirmationRequiredError
		generation     *domain.GenerationError
		rateLimit      *domain.RateLimitError
		serviceErr     *domain.ServiceError
		fiberErr       *fiber.Error
	)

	switch {
	case errors.As(err, &validationErrs):
		return ErrorResponse{
			Code:    string(domain.CodeValidation),
			Message: "Request validation failed",
			Status:  http.StatusBadRequest,
			Details: map[string]interface{}{"errors": []domain.FieldError(validationErrs)},
		}

	case errors.As(err, &domainErr):
		resp := ErrorResponse{
			Code:    string(domainErr.Code),
			Message: domainErr.Message,
			Status:  mapDomainErrorToHTTPStatus(domainErr),
		}
		if len(domainErr.Context) > 0 {
			resp.Details = domainErr.Context
		}
		return resp

	case errors.As(err, &eligibility):
		return ErrorResponse{
			Code:    string(domain.CodeNotEligible),
			Message: eligibility.Error(),
			Status:  http.StatusConflict,
			Details: map[string]interface{}{
				"quiz_id":   eligibility.QuizID,
				"completed": eligibility.Completed,
				"allowed":   eligibility.Allowed,
			},
		}

	case errors.As(err, &transition):
		return ErrorResponse{
			Code:    string(domain.CodeInvalidTransition),
			Message: transition.Error(),
			Status:  http.StatusConflict,
			Details: map[string]interface{}{"action": transition.Action, "status": transition.From},
		}

	case errors.As(err, &confirmation):
		return ErrorResponse{
			Code:    string(domain.CodeConfirmationRequired),
			Message: confirmation.Error(),
			Status:  http.StatusConflict,
			Details: map[string]interface{}{"unanswered": confirmation.Unanswered},
		}

	case errors.As(err, &generation):
		resp := ErrorResponse{
			Code:    string(domain.CodeGeneration),
			Message: generation.Error(),
			Status:  http.StatusUnprocessableEntity,
		}
		if len(generation.Causes) > 0 {
			resp.Details = map[string]interface{}{"causes": generation.Causes}
		}
		return resp

	case errors.As(err, &rateLimit):
		return ErrorResponse{
			Code:    string(domain.CodeRateLimited),
			Message: "The text generation service is rate limiting requests, try again later",
			Status:  http.StatusTooManyRequests,
		}

	case errors.As(err, &serviceErr):
		if serviceErr.Kind == domain.ServiceErrorInvalidKey {
			return ErrorResponse{
				Code:    string(domain.CodeInvalidAPIKey),
				Message: "The text generation service rejected the configured API key",
				Status:  http.StatusServiceUnavailable,
			}
		}
		return ErrorResponse{
			Code:    string(domain.CodeLLMServiceError),
			Message: "The text generation service failed",
			Status:  http.StatusBadGateway,
		}

	case errors.As(err, &fiberErr):
		return ErrorResponse{
			Code:    "HTTP_ERROR",
			Message: fiberErr.Message,
			Status:  fiberErr.Code,
		}
	}

	return ErrorResponse{
		Code:    string(domain.CodeInternal),
		Message: "Internal server error",
		Status:  http.StatusInternalServerError,
	}
}

// mapDomainErrorToHTTPStatus maps domain errors to HTTP status codes
func mapDomainErrorToHTTPStatus(err *domain.DomainError) int {
	switch err.Code {
	case domain.CodeNotFound, domain.CodeQuizNotFound, domain.CodeAttemptNotFound:
		return http.StatusNotFound
	case domain.CodeInvalidInput, domain.CodeValidation:
		return http.StatusBadRequest
	case domain.CodeUnauthorized:
		return http.StatusUnauthorized
	case domain.CodeForbidden, domain.CodeQuizPublished, domain.CodeQuizNotAssigned:
		return http.StatusForbidden
	case domain.CodeConflict, domain.CodeNotEligible, domain.CodeInvalidTransition, domain.CodeConfirmationRequired:
		return http.StatusConflict
	case domain.CodeGeneration:
		return http.StatusUnprocessableEntity
	case domain.CodeRateLimited:
		return http.StatusTooManyRequests
	case domain.CodeInvalidAPIKey:
		return http.StatusServiceUnavailable
	case domain.CodeLLMServiceError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
