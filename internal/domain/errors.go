package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeValidation   ErrorCode = "VALIDATION_ERROR"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeConflict     ErrorCode = "CONFLICT"

	// Quiz specific errors
	CodeQuizNotFound    ErrorCode = "QUIZ_NOT_FOUND"
	CodeQuizPublished   ErrorCode = "QUIZ_PUBLISHED"
	CodeQuizNotAssigned ErrorCode = "QUIZ_NOT_ASSIGNED"
	CodeAttemptNotFound ErrorCode = "ATTEMPT_NOT_FOUND"

	// Attempt state machine
	CodeNotEligible          ErrorCode = "NOT_ELIGIBLE"
	CodeInvalidTransition    ErrorCode = "INVALID_TRANSITION"
	CodeConfirmationRequired ErrorCode = "CONFIRMATION_REQUIRED"

	// Generation pipeline
	CodeGeneration      ErrorCode = "GENERATION_ERROR"
	CodeRateLimited     ErrorCode = "RATE_LIMITED"
	CodeLLMServiceError ErrorCode = "LLM_SERVICE_ERROR"
	CodeInvalidAPIKey   ErrorCode = "INVALID_API_KEY"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"details,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details,omitempty"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
		Details: e.Context,
	})
}

// WithContext attaches a detail entry that is returned to API clients.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewForbiddenError(message string) *DomainError {
	return NewError(CodeForbidden, message, nil)
}

func NewConflictError(message string) *DomainError {
	return NewError(CodeConflict, message, nil)
}

func NewQuizNotFoundError(quizID string) *DomainError {
	return NewError(CodeQuizNotFound, fmt.Sprintf("Quiz not found with ID: %s", quizID), nil)
}

func NewAttemptNotFoundError(attemptID string) *DomainError {
	return NewError(CodeAttemptNotFound, fmt.Sprintf("Attempt not found with ID: %s", attemptID), nil)
}

func NewQuizPublishedError(quizID string) *DomainError {
	return NewError(CodeQuizPublished, "Published quizzes cannot be modified or deleted", nil).
		WithContext("quiz_id", quizID)
}

// ErrNotFound is returned by repositories when a row does not exist.
var ErrNotFound = NewNotFoundError("record not found")

// ErrDuplicate is returned by repositories when a unique constraint rejects a write.
var ErrDuplicate = NewConflictError("record already exists")

// GenerationError is a batch-level failure of the question pipeline.
type GenerationError struct {
	Message string
	Causes  []string
	Err     error
}

func (e *GenerationError) Error() string {
	if len(e.Causes) == 0 {
		return "generation failed: " + e.Message
	}
	return fmt.Sprintf("generation failed: %s (%s)", e.Message, strings.Join(e.Causes, " | "))
}

func (e *GenerationError) Unwrap() error { return e.Err }

// RateLimitError signals that the text-generation service throttled the request.
type RateLimitError struct {
	Provider string
	Err      error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s: rate limited: %v", e.Provider, e.Err)
}

func (e *RateLimitError) Unwrap() error { return e.Err }

type ServiceErrorKind string

const (
	ServiceErrorInvalidKey ServiceErrorKind = "invalid_key"
	ServiceErrorService    ServiceErrorKind = "service"
)

// ServiceError is a non-retryable failure of the text-generation service.
type ServiceError struct {
	Provider string
	Kind     ServiceErrorKind
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s error: %v", e.Provider, e.Kind, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// EligibilityError is returned when a student has used all permitted attempts.
type EligibilityError struct {
	QuizID    string
	StudentID string
	Completed int
	Allowed   int
}

func (e *EligibilityError) Error() string {
	return fmt.Sprintf("student %s has used %d of %d allowed attempts for quiz %s",
		e.StudentID, e.Completed, e.Allowed, e.QuizID)
}

// InvalidTransitionError is returned when an action is not allowed in the attempt's current state.
type InvalidTransitionError struct {
	Action string
	From   AttemptStatus
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot %s attempt in status %q: %s", e.Action, e.From, e.Reason)
	}
	return fmt.Sprintf("cannot %s attempt in status %q", e.Action, e.From)
}

// ConfirmationRequiredError is returned by a manual submit that leaves questions unanswered.
type ConfirmationRequiredError struct {
	Unanswered int
}

func (e *ConfirmationRequiredError) Error() string {
	return fmt.Sprintf("%d question(s) unanswered; submit again with confirmation", e.Unanswered)
}

// FieldError describes one invalid request field.
type FieldError struct {
	Field   string      `json:"field"`
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidationErrors aggregates request field errors.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, fe := range v {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func NewMissingFieldError(field string) FieldError {
	return FieldError{Field: field, Code: CodeValidation, Message: "field is required"}
}

func NewInvalidFieldError(field, message string, value interface{}) FieldError {
	return FieldError{Field: field, Code: CodeValidation, Message: message, Value: value}
}
