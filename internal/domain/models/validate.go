package models

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidDocument marks a document that does not conform to its declared
// shape. Callers must treat it as fatal for that document.
var ErrInvalidDocument = errors.New("invalid document")

var validate = validator.New()

// Validate checks a document against its declared field rules. The returned
// error wraps ErrInvalidDocument so callers can match it with errors.Is.
func Validate(doc any) error {
	if err := validate.Struct(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return nil
}
