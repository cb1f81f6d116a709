package validator_test

import (
	"strings"
	"testing"

	"github.com/philly/emitter/internal/platform/validator"
	"github.com/stretchr/testify/assert"
)

func TestValidateEventName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"simple", "greet", nil},
		{"dotted", "file.changed", nil},
		{"mixed separators", "app_v2.started-now", nil},
		{"digits", "42", nil},
		{"empty", "", validator.ErrEventNameEmpty},
		{"too long", strings.Repeat("a", validator.MaxEventNameLength+1), validator.ErrEventNameTooLong},
		{"uppercase", "Greet", validator.ErrInvalidEventNameFormat},
		{"leading dot", ".greet", validator.ErrInvalidEventNameFormat},
		{"trailing separator", "greet-", validator.ErrInvalidEventNameFormat},
		{"double separator", "file..changed", validator.ErrInvalidEventNameFormat},
		{"space", "say hello", validator.ErrInvalidEventNameFormat},
		{"slash", "a/b", validator.ErrInvalidEventNameFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validator.ValidateEventName(tt.input, validator.MaxEventNameLength))
		})
	}
}
