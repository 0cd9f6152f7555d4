package validator

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	ierr "github.com/invoiceai/invoiceai/internal/errors"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func NewValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		// report json names so messages match what clients and the model send
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

func GetValidator() *validator.Validate {
	return validate
}

// ValidateRequest validates req and marks failures as ErrValidation with
// one readable message per field in the `errors` list.
func ValidateRequest(req interface{}) error {
	return validateWith(req, "Request validation failed", ierr.ErrValidation)
}

// ValidateStruct is ValidateRequest with a caller-chosen hint and sentinel
func ValidateStruct(req interface{}, hint string, mark error) error {
	return validateWith(req, hint, mark)
}

func validateWith(req interface{}, hint string, mark error) error {
	if validate == nil {
		return ierr.NewError("validator not initialized").
			WithHint("Validator must be initialized before using it").
			Mark(ierr.ErrSystem)
	}

	if err := validate.Struct(req); err != nil {
		var messages []string
		var validateErrs validator.ValidationErrors
		if ierr.As(err, &validateErrs) {
			for _, fe := range validateErrs {
				messages = append(messages, FieldErrorMessage(fe))
			}
		} else {
			messages = append(messages, err.Error())
		}
		return ierr.WithError(err).
			WithHint(hint).
			WithValidationErrors(messages).
			Mark(mark)
	}
	return nil
}

// FieldErrorMessage renders a field error as "path: reason"
func FieldErrorMessage(fe validator.FieldError) string {
	path := fe.Namespace()
	// drop the root struct name
	if i := strings.Index(path, "."); i >= 0 {
		path = path[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s: is required", path)
	case "gt":
		return fmt.Sprintf("%s: must be greater than %s", path, fe.Param())
	case "min":
		return fmt.Sprintf("%s: must contain at least %s", path, fe.Param())
	case "email":
		return fmt.Sprintf("%s: must be a valid email address", path)
	case "oneof":
		return fmt.Sprintf("%s: must be one of [%s]", path, fe.Param())
	case "max":
		return fmt.Sprintf("%s: must be at most %s", path, fe.Param())
	case "lte":
		return fmt.Sprintf("%s: must be at most %s", path, fe.Param())
	case "len":
		return fmt.Sprintf("%s: must be exactly %s characters", path, fe.Param())
	case "alpha":
		return fmt.Sprintf("%s: must contain only letters", path)
	default:
		return fmt.Sprintf("%s: failed %s validation", path, fe.Tag())
	}
}
