package errors

import "fmt"

var (
	// JWT and tokens
	ErrInvalidSigningMethod = fmt.Errorf("unexpected token signing method")
	ErrInvalidToken         = fmt.Errorf("invalid token")
	ErrTokenExpired         = fmt.Errorf("token has expired")
	ErrTokenNotYetValid     = fmt.Errorf("token is not valid yet")
	ErrTokenIsNotRefresh    = fmt.Errorf("token is not a refresh token")
	ErrTokenIsNotAccess     = fmt.Errorf("token is not an access token")

	// Authentication / authorization
	ErrEmptyAuthHeader    = fmt.Errorf("authorization header is missing")
	ErrInvalidAuthHeader  = fmt.Errorf("malformed authorization header")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrTooManyAttempts    = fmt.Errorf("too many login attempts, try again later")
	ErrUnauthorized       = fmt.Errorf("unauthorized")
	ErrForbidden          = fmt.Errorf("forbidden")

	// Request context
	ErrUserIDNotFoundInContext = fmt.Errorf("user id not found in request context")

	// Domain
	ErrNotFound          = fmt.Errorf("record not found")
	ErrUserNotFound      = fmt.Errorf("user not found")
	ErrBadgeNotFound     = fmt.Errorf("no user registered for that RFID badge")
	ErrOwnershipMismatch = fmt.Errorf("this RFID badge belongs to a different user")
	ErrEmailTaken        = fmt.Errorf("a user with that email already exists")
	ErrRfidTaken         = fmt.Errorf("that RFID badge is already assigned to another user")
	ErrBadRequest        = fmt.Errorf("bad request")

	// Store availability, kept separate from validation failures so
	// callers can tell a retryable error from a user mistake.
	ErrStoreUnavailable = fmt.Errorf("the data store is temporarily unavailable")
)

// InvalidInputError marks input that was rejected before any store call.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// HttpError carries an HTTP status alongside the underlying cause. It is
// what controllers hand to utils.ErrorResponse.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}
