package errors

import (
	"errors"
	"net/http"
)

// Kind classifies a domain error for the HTTP boundary.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindNotFound
	KindConflict
)

// DomainError is a failure the API reports to the caller as-is.
type DomainError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func newError(kind Kind, code, message string) *DomainError {
	return &DomainError{Kind: kind, Code: code, Message: message}
}

var (
	// ErrInvalidEmail is returned when an email has no "@".
	ErrInvalidEmail = newError(KindValidation, "INVALID_EMAIL", "Invalid email format")
	// ErrPasswordTooShort is returned when a password has fewer than 8 characters (not bytes).
	ErrPasswordTooShort = newError(KindValidation, "PASSWORD_TOO_SHORT", "Password must be at least 8 characters long")
	// ErrPasswordTooLong is returned when a password exceeds 72 bytes.
	ErrPasswordTooLong = newError(KindValidation, "PASSWORD_TOO_LONG", "Password must be at most 72 bytes long")
	// ErrTitleRequired is returned when a post is created without a title.
	ErrTitleRequired = newError(KindValidation, "TITLE_REQUIRED", "Blog title is required")
	// ErrContentRequired is returned when a post is created without content.
	ErrContentRequired = newError(KindValidation, "CONTENT_REQUIRED", "Content is required")
	// ErrCommentIndexOutOfRange is returned when a positional delete misses the comment list.
	ErrCommentIndexOutOfRange = newError(KindValidation, "COMMENT_INDEX_OUT_OF_RANGE", "Comment index out of range")

	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = newError(KindUnauthorized, "INVALID_CREDENTIALS", "Incorrect email or password")
	// ErrInvalidToken is returned when the bearer credential is missing, expired or revoked.
	ErrInvalidToken = newError(KindUnauthorized, "INVALID_TOKEN", "invalid or missing access token")

	// ErrPostNotFound is returned when no post has the requested id.
	ErrPostNotFound = newError(KindNotFound, "POST_NOT_FOUND", "Post not found")
	// ErrEmailNotFound is returned by login when no user has the given email.
	ErrEmailNotFound = newError(KindNotFound, "EMAIL_NOT_FOUND", "email not found")
	// ErrUsernameNotFound is returned by login when no user has the given username.
	ErrUsernameNotFound = newError(KindNotFound, "USERNAME_NOT_FOUND", "username not found")
	// ErrUserNotFound is returned when the caller's user record no longer exists.
	ErrUserNotFound = newError(KindNotFound, "USER_NOT_FOUND", "user not found")

	// ErrEmailTaken is returned on registration with an existing email.
	ErrEmailTaken = newError(KindConflict, "EMAIL_TAKEN", "Email already in use")
	// ErrUsernameTaken is returned on registration with an existing username.
	ErrUsernameTaken = newError(KindConflict, "USERNAME_TAKEN", "Username already in use")
)

// Validation builds an ad-hoc validation error, e.g. for malformed request bodies.
func Validation(message string) *DomainError {
	return newError(KindValidation, "VALIDATION_ERROR", message)
}

// KindOf reports the kind of err, KindInternal when err is not a DomainError.
func KindOf(err error) Kind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Success: false,
		Message: e.Message,
		Code:    e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unclassified is a 500
// carrying the underlying message.
func MapErrorToHTTP(err error) *HTTPError {
	var de *DomainError
	if !errors.As(err, &de) {
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
	}
	switch de.Kind {
	case KindValidation:
		return NewHTTPError(http.StatusBadRequest, de.Message, de.Code)
	case KindUnauthorized:
		return NewHTTPError(http.StatusUnauthorized, de.Message, de.Code)
	case KindNotFound:
		return NewHTTPError(http.StatusNotFound, de.Message, de.Code)
	case KindConflict:
		return NewHTTPError(http.StatusConflict, de.Message, de.Code)
	default:
		return NewHTTPError(http.StatusInternalServerError, de.Message, de.Code)
	}
}
