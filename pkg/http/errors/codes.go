package errors

// Error codes for standardized error responses
const (
	// Request errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeMissingParameter = "missing_parameter"
	ErrCodeTooManyIDs       = "too_many_ids"

	// Resource errors
	ErrCodeNotFound      = "not_found"
	ErrCodeDeckNotFound  = "deck_not_found"
	ErrCodeSetNotFound   = "mcq_set_not_found"
	ErrCodeAlreadyExists = "already_exists"

	// Access errors
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeServiceUnavailable = "service_unavailable"
)
