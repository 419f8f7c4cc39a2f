package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"compuscan/internal/repositories"
)

// AuthAdminService answers "is this user an administrator" with a short
// redis cache in front of the admins table, so the auth middleware does
// not hit the store on every request.
type AuthAdminService struct {
	adminRepo repositories.AdminRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	cacheTTL  time.Duration
	logger    *zap.Logger
}

func NewAuthAdminService(
	adminRepo repositories.AdminRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *AuthAdminService {
	return &AuthAdminService{
		adminRepo: adminRepo,
		cacheRepo: cacheRepo,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

func (s *AuthAdminService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	key := fmt.Sprintf("admin:%s", userID)

	if cached, err := s.cacheRepo.Get(ctx, key); err == nil {
		return cached == "1", nil
	}

	isAdmin, err := s.adminRepo.IsAdmin(ctx, userID)
	if err != nil {
		return false, err
	}

	value := "0"
	if isAdmin {
		value = "1"
	}
	if err := s.cacheRepo.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache admin flag", zap.String("userID", userID), zap.Error(err))
	}

	return isAdmin, nil
}
