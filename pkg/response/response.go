// Package response defines the JSON error envelope shared by handlers
// and middleware.
package response

import "github.com/go-playground/validator/v10"

const StatusError = "error"

// ValidationError represents an individual request validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

// Error constructs an ErrorResponse with the given message.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status:  StatusError,
		Message: msg,
	}
}

// Predefined error responses for common scenarios.
var (
	EmptyRequestBodyResponse    = Error("empty request body")
	InvalidRequestBodyResponse  = Error("invalid request body")
	URLNotFoundResponse         = Error("url not found")
	ServerErrorResponse         = Error("an internal server error occurred, please try again later")
	UnauthorizedResponse        = Error("invalid token or insufficient permissions")
	ServerMisconfiguredResponse = Error("admin token is not configured")
	RateLimitExceededResponse   = Error("rate limit exceeded")
)

// messageForTag returns a user-friendly message based on the validation tag.
func messageForTag(tag string) string {
	switch tag {
	case "required":
		return "this field is required"
	case "url":
		return "invalid url"
	case "max":
		return "value is too long"
	default:
		return "invalid value"
	}
}

func getValidationErrors(err error) []ValidationError {
	var validationErrs []ValidationError

	errs, ok := err.(validator.ValidationErrors)
	if ok {
		for _, e := range errs {
			validationErrs = append(validationErrs, ValidationError{
				Field:   e.Field(),
				Message: messageForTag(e.Tag()),
			})
		}
	}

	return validationErrs
}

// ValidationErrorResponse constructs an ErrorResponse for request validation errors.
func ValidationErrorResponse(err error) ErrorResponse {
	return ErrorResponse{
		Status:  StatusError,
		Message: "validation error",
		Errors:  getValidationErrors(err),
	}
}
