package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"compuscan/internal/dto"
	"compuscan/internal/repositories"
	apperrors "compuscan/pkg/errors"
	"compuscan/pkg/filestorage"
	"compuscan/pkg/types"
	"compuscan/pkg/utils"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserDTO, uint64, error)
	FindUser(ctx context.Context, id string) (*dto.UserDTO, error)
	FindUserByRfid(ctx context.Context, carnetRfid string) (*dto.UserDTO, error)
	UpdateUser(ctx context.Context, id string, payload dto.UpdateUserDTO) (*dto.UserDTO, error)
	DeleteUser(ctx context.Context, id string) error
	SetProfilePhoto(ctx context.Context, id string, file io.Reader, fileName string) (*dto.UserDTO, error)
}

type UserService struct {
	userRepo    repositories.UserRepositoryInterface
	fileStorage filestorage.FileStorageInterface
	logger      *zap.Logger
}

func NewUserService(
	userRepo repositories.UserRepositoryInterface,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) UserServiceInterface {
	return &UserService{
		userRepo:    userRepo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// canTouch allows the owner and administrators through.
func canTouch(ctx context.Context, targetID string) error {
	actorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return err
	}
	if actorID != targetID && !utils.GetIsAdminFromCtx(ctx) {
		return apperrors.ErrForbidden
	}
	return nil
}

func (s *UserService) GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserDTO, uint64, error) {
	users, total, err := s.userRepo.GetUsers(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	return dto.NewUserDTOs(users), total, nil
}

func (s *UserService) FindUser(ctx context.Context, id string) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	return dto.NewUserDTO(user), nil
}

func (s *UserService) FindUserByRfid(ctx context.Context, carnetRfid string) (*dto.UserDTO, error) {
	if carnetRfid == "" {
		return nil, apperrors.NewInvalidInputError("RFID badge is required")
	}

	user, err := s.userRepo.FindUserByRfid(ctx, carnetRfid)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrBadgeNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	return dto.NewUserDTO(user), nil
}

func (s *UserService) UpdateUser(ctx context.Context, id string, payload dto.UpdateUserDTO) (*dto.UserDTO, error) {
	if err := canTouch(ctx, id); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	if payload.Nombre.Valid {
		user.Nombre = payload.Nombre.String
	}
	if payload.Apellido.Valid {
		user.Apellido = payload.Apellido.String
	}

	if payload.CarnetRfid.Valid && payload.CarnetRfid.String != user.CarnetRfid.String {
		// The badge id is globally unique when present.
		if other, err := s.userRepo.FindUserByRfid(ctx, payload.CarnetRfid.String); err == nil && other.ID != user.ID {
			return nil, apperrors.ErrRfidTaken
		} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
		}
		user.CarnetRfid = payload.CarnetRfid
	}

	// Role and active-flag changes are administrative.
	if payload.Rol.Valid || payload.Activo.Valid {
		if !utils.GetIsAdminFromCtx(ctx) {
			return nil, apperrors.ErrForbidden
		}
		if payload.Rol.Valid {
			user.Rol = payload.Rol.String
		}
		if payload.Activo.Valid {
			user.Activo = payload.Activo.Bool
		}
	}

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	s.logger.Info("user updated", zap.String("usuarioID", user.ID))
	return dto.NewUserDTO(user), nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if !utils.GetIsAdminFromCtx(ctx) {
		return apperrors.ErrForbidden
	}

	if err := s.userRepo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	s.logger.Info("user deleted", zap.String("usuarioID", id))
	return nil
}

func (s *UserService) SetProfilePhoto(ctx context.Context, id string, file io.Reader, fileName string) (*dto.UserDTO, error) {
	if err := canTouch(ctx, id); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	savedPath, err := s.fileStorage.Save(file, fileName, "perfiles")
	if err != nil {
		return nil, err
	}

	oldURL := user.FotoURL.String
	user.FotoURL.SetValid("/uploads/" + savedPath)

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	if oldURL != "" {
		if err := s.fileStorage.Delete(oldURL); err != nil {
			s.logger.Warn("failed to delete previous profile photo", zap.String("url", oldURL), zap.Error(err))
		}
	}

	return dto.NewUserDTO(user), nil
}
