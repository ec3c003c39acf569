package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrValidation = errors.New("validation failed")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("order_status", func(fl validator.FieldLevel) bool {
		return OrderStatus(fl.Field().String()).Valid()
	})

	return v
}

// Validate checks the struct tags of an entity and reports every failing field in a single
// error wrapping ErrValidation.
func Validate(entity any) error {
	err := validate.Struct(entity)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		messages = append(messages, fmt.Sprintf("%s: %s validation failed", fieldError.Namespace(), fieldError.Tag()))
	}

	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(messages, ", "))
}
