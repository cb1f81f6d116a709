package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/philly/emitter/internal/platform/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeInvalidEventName,
		"invalid event name",
		http.StatusBadRequest,
	)

	assert.Equal(t, apperror.CodeValidationFailed, err.Code)
	assert.Equal(t, apperror.BusinessCodeInvalidEventName, err.BusinessCode)
	assert.Equal(t, "invalid event name", err.Error())
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
	assert.Nil(t, err.Inner)
	assert.Nil(t, err.Details)
}

func TestWrap(t *testing.T) {
	inner := errors.New("listener exploded")

	err := apperror.Wrap(
		inner,
		apperror.CodeInternalError,
		apperror.BusinessCodeListenerFault,
		"event listener failed",
		http.StatusInternalServerError,
	)

	assert.Same(t, inner, err.Unwrap())
	assert.True(t, errors.Is(err, inner))
}

func TestWithDetailsReturnsSameInstance(t *testing.T) {
	err := apperror.New(apperror.CodeNotFound, apperror.BusinessCodeGeneral, "missing", http.StatusNotFound)

	withDetails := err.WithDetails(map[string]string{"event": "greet"})

	assert.Same(t, err, withDetails)
	assert.Equal(t, map[string]string{"event": "greet"}, err.Details)
}

func TestIs(t *testing.T) {
	fault := apperror.New(apperror.CodeInternalError, apperror.BusinessCodeListenerFault, "a", 0)

	tests := []struct {
		name   string
		target error
		want   bool
	}{
		{
			name:   "same codes match regardless of message",
			target: apperror.New(apperror.CodeInternalError, apperror.BusinessCodeListenerFault, "b", 500),
			want:   true,
		},
		{
			name:   "different business code",
			target: apperror.New(apperror.CodeInternalError, apperror.BusinessCodeEmitDepthExceeded, "a", 0),
			want:   false,
		},
		{
			name:   "different error code",
			target: apperror.New(apperror.CodeValidationFailed, apperror.BusinessCodeListenerFault, "a", 0),
			want:   false,
		},
		{
			name:   "plain error",
			target: errors.New("a"),
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Is(fault, tt.target))
		})
	}
}

func TestAsAndHasBusinessCode(t *testing.T) {
	appErr := apperror.New(apperror.CodeInternalError, apperror.BusinessCodeListenerFault, "fault", 0)
	wrapped := fmt.Errorf("dispatch: %w", appErr)

	got, ok := apperror.As(wrapped)
	require.True(t, ok)
	assert.Same(t, appErr, got)

	assert.True(t, apperror.HasBusinessCode(wrapped, apperror.BusinessCodeListenerFault))
	assert.False(t, apperror.HasBusinessCode(wrapped, apperror.BusinessCodeInvalidPayload))

	_, ok = apperror.As(errors.New("plain"))
	assert.False(t, ok)

	// An inner AppError is found behind an outer one.
	outer := apperror.Wrap(
		apperror.New(apperror.CodeValidationFailed, apperror.BusinessCodeInvalidPayload, "bad", 0),
		apperror.CodeInternalError, apperror.BusinessCodeListenerFault, "fault", 0,
	)
	assert.True(t, apperror.HasBusinessCode(outer, apperror.BusinessCodeInvalidPayload))
	assert.True(t, apperror.HasBusinessCode(outer, apperror.BusinessCodeListenerFault))
}

func TestFormat(t *testing.T) {
	err := apperror.Wrap(
		errors.New("boom"),
		apperror.CodeInternalError,
		apperror.BusinessCodeListenerFault,
		"event listener failed",
		http.StatusInternalServerError,
	).WithDetails(map[string]string{"event": "greet"})

	assert.Equal(t, "event listener failed", fmt.Sprintf("%s", err))
	assert.Equal(t, "event listener failed", fmt.Sprintf("%v", err))

	verbose := fmt.Sprintf("%+v", err)
	assert.Contains(t, verbose, "Code: INTERNAL_ERROR")
	assert.Contains(t, verbose, "BusinessCode: LISTENER_FAULT")
	assert.Contains(t, verbose, "HTTPStatus: 500")
	assert.Contains(t, verbose, "Caused by: boom")
	assert.Contains(t, verbose, "Details: map[event:greet]")
}

func TestFormat_NoInnerNoDetails(t *testing.T) {
	err := apperror.New(apperror.CodeNotFound, apperror.BusinessCodeGeneral, "not found", http.StatusNotFound)

	verbose := fmt.Sprintf("%+v", err)
	assert.NotContains(t, verbose, "Caused by:")
	assert.NotContains(t, verbose, "Details:")
}
