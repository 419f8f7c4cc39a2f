package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"compuscan/internal/dto"
	"compuscan/internal/entities"
	"compuscan/internal/repositories"
	"compuscan/pkg/config"
	apperrors "compuscan/pkg/errors"
	"compuscan/pkg/service"
	"compuscan/pkg/utils"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, payload dto.RegisterDTO) (*dto.SessionDTO, error)
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.SessionDTO, error)
	Refresh(ctx context.Context, payload dto.RefreshDTO) (*dto.TokenPairDTO, error)
	Me(ctx context.Context) (*dto.SessionDTO, error)
}

type AuthService struct {
	userRepo  repositories.UserRepositoryInterface
	adminRepo repositories.AdminRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	jwtSvc    service.JWTService
	cfg       *config.AuthConfig
	logger    *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	adminRepo repositories.AdminRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtSvc service.JWTService,
	cfg *config.AuthConfig,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:  userRepo,
		adminRepo: adminRepo,
		cacheRepo: cacheRepo,
		jwtSvc:    jwtSvc,
		cfg:       cfg,
		logger:    logger,
	}
}

func (s *AuthService) Register(ctx context.Context, payload dto.RegisterDTO) (*dto.SessionDTO, error) {
	email := strings.ToLower(strings.TrimSpace(payload.Email))

	if _, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		return nil, apperrors.ErrEmailTaken
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	if payload.CarnetRfid.Valid {
		if _, err := s.userRepo.FindUserByRfid(ctx, payload.CarnetRfid.String); err == nil {
			return nil, apperrors.ErrRfidTaken
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entities.Usuario{
		ID:           uuid.NewString(),
		Nombre:       payload.Nombre,
		Apellido:     payload.Apellido,
		Email:        email,
		CarnetRfid:   payload.CarnetRfid,
		Rol:          payload.Rol,
		PasswordHash: string(hash),
		Activo:       true,
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	s.logger.Info("user registered", zap.String("usuarioID", user.ID), zap.String("rol", user.Rol))

	return s.buildSession(user, false)
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.SessionDTO, error) {
	email := strings.ToLower(strings.TrimSpace(payload.Email))
	lockoutKey := fmt.Sprintf("login_attempts:%s", email)

	attemptsStr, _ := s.cacheRepo.Get(ctx, lockoutKey)
	if attempts, _ := strconv.Atoi(attemptsStr); attempts >= s.cfg.MaxLoginAttempts {
		s.logger.Warn("login locked out", zap.String("email", email))
		return nil, apperrors.NewHttpError(
			http.StatusTooManyRequests,
			fmt.Sprintf("too many login attempts, try again in %.0f minutes", s.cfg.LockoutDuration.Minutes()),
			apperrors.ErrTooManyAttempts,
			nil,
		)
	}

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.registerFailedAttempt(ctx, lockoutKey)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		s.registerFailedAttempt(ctx, lockoutKey)
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.Activo {
		return nil, apperrors.NewHttpError(http.StatusForbidden, "account is disabled", apperrors.ErrForbidden, nil)
	}

	s.cacheRepo.Del(ctx, lockoutKey)

	isAdmin, err := s.adminRepo.IsAdmin(ctx, user.ID)
	if err != nil {
		s.logger.Warn("admin lookup failed during login", zap.Error(err))
		isAdmin = false
	}

	return s.buildSession(user, isAdmin)
}

func (s *AuthService) registerFailedAttempt(ctx context.Context, key string) {
	if _, err := s.cacheRepo.Incr(ctx, key); err != nil {
		s.logger.Warn("failed to record login attempt", zap.Error(err))
		return
	}
	s.cacheRepo.Expire(ctx, key, s.cfg.LockoutDuration)
}

func (s *AuthService) Refresh(ctx context.Context, payload dto.RefreshDTO) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtSvc.ValidateToken(payload.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	// Make sure the subject still exists and is active before minting.
	user, err := s.userRepo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	if !user.Activo {
		return nil, apperrors.ErrForbidden
	}

	access, refresh, err := s.jwtSvc.GenerateTokens(user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.TokenPairDTO{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) Me(ctx context.Context) (*dto.SessionDTO, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	return &dto.SessionDTO{
		Usuario: dto.NewUserDTO(user),
		EsAdmin: utils.GetIsAdminFromCtx(ctx),
	}, nil
}

func (s *AuthService) buildSession(user *entities.Usuario, isAdmin bool) (*dto.SessionDTO, error) {
	access, refresh, err := s.jwtSvc.GenerateTokens(user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.SessionDTO{
		Usuario: dto.NewUserDTO(user),
		EsAdmin: isAdmin,
		Tokens:  dto.TokenPairDTO{AccessToken: access, RefreshToken: refresh},
	}, nil
}
