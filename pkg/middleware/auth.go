package middleware

import (
	"context"
	"strings"

	"compuscan/pkg/contextkeys"
	apperrors "compuscan/pkg/errors"
	"compuscan/pkg/service"
	"compuscan/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AdminChecker answers whether a user id belongs to the admins collection.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

type AuthMiddleware struct {
	jwtService   service.JWTService
	adminChecker AdminChecker
	logger       *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, adminChecker AdminChecker, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:   jwtSvc,
		adminChecker: adminChecker,
		logger:       logger,
	}
}

// Auth validates the bearer token and stores the caller's identity in the
// request context.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("token validation failed", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		if claims.IsRefreshToken {
			return utils.ErrorResponse(c, apperrors.ErrTokenIsNotAccess, m.logger)
		}

		isAdmin, err := m.adminChecker.IsAdmin(c.Request().Context(), claims.UserID)
		if err != nil {
			// Admin status is a convenience flag here; RequireAdmin does
			// its own hard check.
			m.logger.Warn("admin lookup failed", zap.String("userID", claims.UserID), zap.Error(err))
			isAdmin = false
		}

		ctx := c.Request().Context()
		ctx = context.WithValue(ctx, contextkeys.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, contextkeys.IsAdminKey, isAdmin)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// RequireAdmin gates admin-only routes. It must run after Auth.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := utils.GetUserIDFromCtx(c.Request().Context())
		if err != nil {
			return utils.ErrorResponse(c, apperrors.ErrUnauthorized, m.logger)
		}

		isAdmin, err := m.adminChecker.IsAdmin(c.Request().Context(), userID)
		if err != nil {
			m.logger.Error("admin lookup failed", zap.String("userID", userID), zap.Error(err))
			return utils.ErrorResponse(c, apperrors.ErrStoreUnavailable, m.logger)
		}
		if !isAdmin {
			m.logger.Warn("non-admin tried an admin route", zap.String("userID", userID))
			return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
		}

		return next(c)
	}
}
