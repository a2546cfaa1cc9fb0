package validator

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

const (
	ErrInvalidFormat      = "Invalid format"
	ErrFieldRequired      = "Field is required"
	ErrFieldExceedsMaxLen = "Field exceeds maximum length"
	ErrFieldBelowMinLen   = "Field is below minimum length"
	ErrFieldExceedsMaxVal = "Field exceeds maximum value"
	ErrFieldBelowMinVal   = "Field is below minimum value"
	ErrUnknownValidation  = "Unknown validation error"
)

var (
	once   sync.Once
	global *validator.Validate
)

func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

func Validator() *validator.Validate {
	once.Do(func() { global = New() })
	return global
}

// Validate returns the first failing field as a readable error, or nil.
func Validate(ctx context.Context, structure any) error {
	return parseValidationErrors(Validator().StructCtx(ctx, structure))
}

func parseValidationErrors(err error) error {
	if err == nil {
		return nil
	}
	var vErrors validator.ValidationErrors
	if !errors.As(err, &vErrors) || len(vErrors) == 0 {
		return err
	}
	ve := vErrors[0]
	var msg string
	switch ve.Tag() {
	case "required", "required_if", "required_with":
		msg = ErrFieldRequired
	case "max":
		msg = ErrFieldExceedsMaxLen
	case "min":
		msg = ErrFieldBelowMinLen
	case "lt", "lte":
		msg = ErrFieldExceedsMaxVal
	case "gt", "gte":
		msg = ErrFieldBelowMinVal
	case "url", "http_url", "email", "uuid", "oneof":
		msg = ErrInvalidFormat
	case "gtfield":
		msg = fmt.Sprintf("Field must be after %s", ve.Param())
	default:
		msg = ErrUnknownValidation
	}
	return errors.New(msg + ": " + ve.Field())
}

// EchoValidator adapts the shared validator to echo's Validator interface.
type EchoValidator struct{}

func (EchoValidator) Validate(i any) error {
	return Validate(context.Background(), i)
}
