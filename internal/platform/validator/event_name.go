package validator

import (
	"errors"
	"regexp"
)

// MaxEventNameLength is the longest name accepted from external triggers.
const MaxEventNameLength = 128

// Event name validation errors
var (
	ErrInvalidEventNameFormat = errors.New("event name must be lowercase letters and digits separated by single '.', '_' or '-'")
	ErrEventNameEmpty         = errors.New("event name cannot be empty")
	ErrEventNameTooLong       = errors.New("event name is too long")
)

// Compile regex patterns once at package level for performance
var eventNameRegex = regexp.MustCompile(`^[a-z0-9]+([._-][a-z0-9]+)*$`)

// ValidateEventName checks names supplied by external producers such as the HTTP trigger.
// The bus itself accepts any string.
func ValidateEventName(name string, maxLength int) error {
	if name == "" {
		return ErrEventNameEmpty
	}

	if len(name) > maxLength {
		return ErrEventNameTooLong
	}

	if !eventNameRegex.MatchString(name) {
		return ErrInvalidEventNameFormat
	}

	return nil
}
