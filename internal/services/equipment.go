package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"compuscan/internal/dto"
	"compuscan/internal/entities"
	"compuscan/internal/repositories"
	apperrors "compuscan/pkg/errors"
	"compuscan/pkg/types"
	"compuscan/pkg/utils"
)

type EquipmentServiceInterface interface {
	CreateEquipo(ctx context.Context, payload dto.CreateEquipoDTO) (*dto.EquipoDTO, error)
	FindEquipo(ctx context.Context, id string) (*dto.EquipoDTO, error)
	GetEquipos(ctx context.Context, filter types.Filter) ([]dto.EquipoDTO, uint64, error)
	GetEquiposByUsuario(ctx context.Context, usuarioID string) ([]dto.EquipoDTO, error)
	UpdateEquipo(ctx context.Context, id string, payload dto.UpdateEquipoDTO) (*dto.EquipoDTO, error)
	DeleteEquipo(ctx context.Context, id string) error
}

type EquipmentService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	userRepo      repositories.UserRepositoryInterface
	logger        *zap.Logger
}

func NewEquipmentService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{
		equipmentRepo: equipmentRepo,
		userRepo:      userRepo,
		logger:        logger,
	}
}

func (s *EquipmentService) CreateEquipo(ctx context.Context, payload dto.CreateEquipoDTO) (*dto.EquipoDTO, error) {
	actorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	ownerID := actorID
	if payload.UsuarioID != "" && payload.UsuarioID != actorID {
		if !utils.GetIsAdminFromCtx(ctx) {
			return nil, apperrors.ErrForbidden
		}
		ownerID = payload.UsuarioID
	}

	if _, err := s.userRepo.FindUserByID(ctx, ownerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	equipo := &entities.Equipo{
		ID:          uuid.NewString(),
		UsuarioID:   ownerID,
		Marca:       payload.Marca,
		Modelo:      payload.Modelo,
		Serial:      payload.Serial,
		Tipo:        payload.Tipo,
		Color:       payload.Color,
		Descripcion: payload.Descripcion,
		Estado:      entities.EstadoActivo,
	}

	if err := s.equipmentRepo.CreateEquipo(ctx, equipo); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	s.logger.Info("equipment registered",
		zap.String("equipoID", equipo.ID),
		zap.String("usuarioID", ownerID),
		zap.String("tipo", equipo.Tipo),
	)

	return dto.NewEquipoDTO(equipo), nil
}

func (s *EquipmentService) FindEquipo(ctx context.Context, id string) (*dto.EquipoDTO, error) {
	equipo, err := s.findOwned(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewEquipoDTO(equipo), nil
}

func (s *EquipmentService) GetEquipos(ctx context.Context, filter types.Filter) ([]dto.EquipoDTO, uint64, error) {
	// The unfiltered listing is an admin view; everyone else gets their
	// own equipment through GetEquiposByUsuario.
	if !utils.GetIsAdminFromCtx(ctx) {
		return nil, 0, apperrors.ErrForbidden
	}

	equipos, total, err := s.equipmentRepo.GetEquipos(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	return dto.NewEquipoDTOs(equipos), total, nil
}

func (s *EquipmentService) GetEquiposByUsuario(ctx context.Context, usuarioID string) ([]dto.EquipoDTO, error) {
	if err := canTouch(ctx, usuarioID); err != nil {
		return nil, err
	}

	equipos, err := s.equipmentRepo.GetEquiposByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	return dto.NewEquipoDTOs(equipos), nil
}

func (s *EquipmentService) UpdateEquipo(ctx context.Context, id string, payload dto.UpdateEquipoDTO) (*dto.EquipoDTO, error) {
	equipo, err := s.findOwned(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Marca.Valid {
		equipo.Marca = payload.Marca.String
	}
	if payload.Modelo.Valid {
		equipo.Modelo = payload.Modelo.String
	}
	if payload.Serial.Valid {
		equipo.Serial = payload.Serial.String
	}
	if payload.Tipo.Valid {
		equipo.Tipo = payload.Tipo.String
	}
	if payload.Color.Valid {
		equipo.Color = payload.Color.String
	}
	if payload.Descripcion.Valid {
		equipo.Descripcion = payload.Descripcion
	}
	if payload.Estado.Valid {
		equipo.Estado = payload.Estado.String
	}

	if err := s.equipmentRepo.UpdateEquipo(ctx, equipo); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	return dto.NewEquipoDTO(equipo), nil
}

func (s *EquipmentService) DeleteEquipo(ctx context.Context, id string) error {
	if _, err := s.findOwned(ctx, id); err != nil {
		return err
	}

	if err := s.equipmentRepo.DeleteEquipo(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	s.logger.Info("equipment deleted", zap.String("equipoID", id))
	return nil
}

// findOwned loads the equipment and checks the caller may touch it.
func (s *EquipmentService) findOwned(ctx context.Context, id string) (*entities.Equipo, error) {
	equipo, err := s.equipmentRepo.FindEquipo(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	if err := canTouch(ctx, equipo.UsuarioID); err != nil {
		return nil, err
	}

	return equipo, nil
}
