package models

import (
	"errors"
	"fmt"

	"github.com/gookit/validate"
)

var ErrInvalidRecord = errors.New("invalid record")

// Validate checks a record against its struct tags.
func Validate(record any) error {
	v := validate.Struct(record)
	if !v.Validate() {
		return fmt.Errorf("%w: %s", ErrInvalidRecord, v.Errors.One())
	}
	return nil
}
