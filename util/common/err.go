package common

import (
	"errors"
)

// Combine merges multiple errors into one, skipping nils.
func Combine(errs ...error) error {
	errText := ""
	for _, err := range errs {
		if err != nil {
			if errText != "" {
				errText += ", "
			}
			errText += err.Error()
		}
	}
	if errText != "" {
		return errors.New(errText)
	}
	return nil
}
