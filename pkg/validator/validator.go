package validator

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Param string `json:"param"`
}

// Message renders a human-readable description of the failure.
func (e ValidationError) Message() string {
	field := strings.ToLower(strings.ReplaceAll(e.Field, "_", " "))
	switch e.Tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, e.Param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, e.Param)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param)
	default:
		if e.Param != "" {
			return fmt.Sprintf("%s failed validation: %s=%s", field, e.Tag, e.Param)
		}
		return fmt.Sprintf("%s failed validation: %s", field, e.Tag)
	}
}

// ValidationErrors collects multiple validation failures.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	return strings.Join(v.Messages(), "; ")
}

// Messages returns one rendered message per failed field.
func (v ValidationErrors) Messages() []string {
	messages := make([]string, len(v))
	for i, err := range v {
		messages[i] = err.Message()
	}
	return messages
}

// ValidateStruct validates a struct using registered rules. Failures are
// returned as ValidationErrors; any other error means the input could not be
// validated at all.
func ValidateStruct(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	if ve, ok := err.(validator.ValidationErrors); ok {
		failures := make(ValidationErrors, 0, len(ve))
		for _, fe := range ve {
			failures = append(failures, ValidationError{
				Field: fe.Field(),
				Tag:   fe.Tag(),
				Param: fe.Param(),
			})
		}
		return failures
	}

	return err
}

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		// Report JSON field names so API clients see the names they sent.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := fld.Tag.Get("json")
			if name == "" {
				return fld.Name
			}

			if comma := strings.Index(name, ","); comma != -1 {
				name = name[:comma]
			}

			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}
