package types

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code"`
	Detail string `json:"detail,omitempty"`
}

// Error code constants
const (
	ErrCodeNotAuthenticated     = "NOT_AUTHENTICATED"
	ErrCodeValidationFailed     = "VALIDATION_FAILED"
	ErrCodeRecipeNotFound       = "RECIPE_NOT_FOUND"
	ErrCodeNotSaved             = "NOT_SAVED"
	ErrCodeAlreadySaved         = "ALREADY_SAVED"
	ErrCodeConflict             = "CONFLICT"
	ErrCodeNoResults            = "NO_RESULTS"
	ErrCodeGeneratorUnavailable = "GENERATOR_UNAVAILABLE"
	ErrCodeInternalServer       = "INTERNAL_SERVER_ERROR"
	ErrCodeDatabaseUnavailable  = "DATABASE_UNAVAILABLE"
	ErrCodeNotFound             = "NOT_FOUND"
)

// NewErrorResponse creates a new error body with the given code and message
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{Error: message, Code: code}
}
