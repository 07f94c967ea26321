package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/util"

	"github.com/go-playground/validator/v10"
)

// Validator provides request validation functionality
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator that reports JSON field names.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("ulid", func(fl validator.FieldLevel) bool {
		return util.IsULID(fl.Field().String())
	})
	_ = v.RegisterValidation("complexity", func(fl validator.FieldLevel) bool {
		return domain.Complexity(fl.Field().String()).Valid()
	})
	return &Validator{validate: v}
}

// Struct validates s and converts failures to domain.ValidationErrors.
// It returns nil when s is valid.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.NewInvalidInputError(err.Error())
	}
	out := make(domain.ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		field := fieldPath(fe)
		if fe.Tag() == "required" {
			out = append(out, domain.NewMissingFieldError(field))
			continue
		}
		out = append(out, domain.NewInvalidFieldError(field, message(fe), fe.Value()))
	}
	return out
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return "must be one of: " + fe.Param()
	case "len":
		return fmt.Sprintf("must have exactly %s items", fe.Param())
	case "ulid":
		return "must be a valid ULID"
	case "complexity":
		return "must be one of: lite medium expert"
	}
	return fmt.Sprintf("failed %q validation", fe.Tag())
}
