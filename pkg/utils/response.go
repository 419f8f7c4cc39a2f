package utils

import (
	"errors"
	"net/http"

	apperrors "compuscan/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HttpResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
	Total   *uint64     `json:"total,omitempty"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int, total ...uint64) error {
	response := &HttpResponse{
		Status:  true,
		Body:    body,
		Message: message,
	}
	if len(total) > 0 {
		response.Total = &total[0]
	}
	return ctx.JSON(code, response)
}

// statusByError maps sentinel errors to HTTP statuses. OwnershipMismatch
// and badge-not-found are recoverable: the user retries with the right
// badge. Store unavailability is the only 5xx in the domain taxonomy.
var statusByError = []struct {
	err  error
	code int
}{
	{apperrors.ErrNotFound, http.StatusNotFound},
	{apperrors.ErrUserNotFound, http.StatusNotFound},
	{apperrors.ErrBadgeNotFound, http.StatusNotFound},
	{apperrors.ErrOwnershipMismatch, http.StatusForbidden},
	{apperrors.ErrForbidden, http.StatusForbidden},
	{apperrors.ErrEmailTaken, http.StatusConflict},
	{apperrors.ErrRfidTaken, http.StatusConflict},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized},
	{apperrors.ErrEmptyAuthHeader, http.StatusUnauthorized},
	{apperrors.ErrInvalidAuthHeader, http.StatusUnauthorized},
	{apperrors.ErrInvalidToken, http.StatusUnauthorized},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized},
	{apperrors.ErrTokenNotYetValid, http.StatusUnauthorized},
	{apperrors.ErrTokenIsNotAccess, http.StatusUnauthorized},
	{apperrors.ErrTokenIsNotRefresh, http.StatusUnauthorized},
	{apperrors.ErrTooManyAttempts, http.StatusTooManyRequests},
	{apperrors.ErrBadRequest, http.StatusBadRequest},
	{apperrors.ErrStoreUnavailable, http.StatusServiceUnavailable},
}

func ErrorResponse(ctx echo.Context, err error, logger *zap.Logger) error {
	code := http.StatusInternalServerError
	message := "internal server error"
	var body interface{} = struct{}{}

	var httpErr *apperrors.HttpError
	var inputErr *apperrors.InvalidInputError
	var validationErrs validator.ValidationErrors

	switch {
	case errors.As(err, &httpErr):
		code = httpErr.Code
		message = httpErr.Message
		if httpErr.Details != nil {
			body = httpErr.Details
		}
	case errors.As(err, &validationErrs):
		code = http.StatusBadRequest
		message = "validation failed"
		fields := make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			fields[fe.Field()] = fe.Tag()
		}
		body = fields
	case errors.As(err, &inputErr):
		code = http.StatusBadRequest
		message = inputErr.Message
	default:
		for _, entry := range statusByError {
			if errors.Is(err, entry.err) {
				code = entry.code
				message = entry.err.Error()
				break
			}
		}
	}

	if code >= http.StatusInternalServerError && logger != nil {
		logger.Error("request failed", zap.Int("status", code), zap.Error(err))
	}

	return ctx.JSON(code, &HttpResponse{
		Status:  false,
		Body:    body,
		Message: message,
	})
}
