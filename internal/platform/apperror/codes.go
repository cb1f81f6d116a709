package apperror

// ErrorCode is the general, system-level category of an error.
type ErrorCode string

const (
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	CodeUnavailable      ErrorCode = "UNAVAILABLE"
	CodeInternalError    ErrorCode = "INTERNAL_ERROR"
)

// BusinessCode is the specific reason behind an error.
type BusinessCode string

const (
	BusinessCodeGeneral BusinessCode = "GENERAL"

	// Event bus
	BusinessCodeListenerFault     BusinessCode = "LISTENER_FAULT"
	BusinessCodeEmitDepthExceeded BusinessCode = "EMIT_DEPTH_EXCEEDED"

	// Triggers and listeners
	BusinessCodeInvalidEventName BusinessCode = "INVALID_EVENT_NAME"
	BusinessCodeInvalidPayload   BusinessCode = "INVALID_PAYLOAD"

	// Journal
	BusinessCodeJournalUnavailable BusinessCode = "JOURNAL_UNAVAILABLE"
)
