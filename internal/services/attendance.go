package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"compuscan/internal/dto"
	"compuscan/internal/entities"
	"compuscan/internal/repositories"
	apperrors "compuscan/pkg/errors"
)

// The attendance ledger. Events are appended, never rewritten; everything
// else (current status, suggested next action, aggregate counts) is a
// projection recomputed from the events.

type AttendanceServiceInterface interface {
	RecordEntry(ctx context.Context, usuarioID, carnetRfid string) (*dto.AsistenciaDTO, error)
	RecordExit(ctx context.Context, usuarioID, carnetRfid string) (*dto.AsistenciaDTO, error)
	LastEventFor(ctx context.Context, usuarioID string) (*dto.UltimaAsistenciaDTO, error)
	EventsFor(ctx context.Context, usuarioID string) ([]dto.AsistenciaDTO, error)
	EventsInRange(ctx context.Context, desde, hasta time.Time) ([]dto.AsistenciaDTO, error)
}

type AttendanceService struct {
	attendanceRepo repositories.AttendanceRepositoryInterface
	userRepo       repositories.UserRepositoryInterface
	logger         *zap.Logger
}

func NewAttendanceService(
	attendanceRepo repositories.AttendanceRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	logger *zap.Logger,
) AttendanceServiceInterface {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

// DeriveStatus projects the activo/inactivo label from a user's events.
// Returns "" when the user has never badged. The stored estado column is
// never consulted: the ledger is the only source of truth.
func DeriveStatus(eventos []entities.Asistencia) string {
	if len(eventos) == 0 {
		return ""
	}
	last := eventos[0]
	for _, e := range eventos[1:] {
		if e.Fecha.After(last.Fecha) {
			last = e
		}
	}
	if last.Tipo == entities.TipoEntrada {
		return entities.EstadoActivo
	}
	return entities.EstadoInactivo
}

// SuggestNextAction returns the complement of the last event's kind, so
// the client can preselect the likely action. Defaults to entrada for a
// user who has never badged.
func SuggestNextAction(ultima *entities.Asistencia) string {
	if ultima == nil || ultima.Tipo == entities.TipoSalida {
		return entities.TipoEntrada
	}
	return entities.TipoSalida
}

// SortEventsDesc orders events newest-first. The store cannot combine the
// per-user filter with ordering, so every per-user listing passes through
// here; this is a required step, not an optimization.
func SortEventsDesc(eventos []entities.Asistencia) {
	sort.SliceStable(eventos, func(i, j int) bool {
		return eventos[i].Fecha.After(eventos[j].Fecha)
	})
}

func estadoForTipo(tipo string) string {
	if tipo == entities.TipoEntrada {
		return entities.EstadoActivo
	}
	return entities.EstadoInactivo
}

func (s *AttendanceService) RecordEntry(ctx context.Context, usuarioID, carnetRfid string) (*dto.AsistenciaDTO, error) {
	return s.recordEvent(ctx, usuarioID, carnetRfid, entities.TipoEntrada)
}

func (s *AttendanceService) RecordExit(ctx context.Context, usuarioID, carnetRfid string) (*dto.AsistenciaDTO, error) {
	return s.recordEvent(ctx, usuarioID, carnetRfid, entities.TipoSalida)
}

func (s *AttendanceService) recordEvent(ctx context.Context, usuarioID, carnetRfid, tipo string) (*dto.AsistenciaDTO, error) {
	if usuarioID == "" {
		return nil, apperrors.NewInvalidInputError("user id is required")
	}
	if carnetRfid == "" {
		return nil, apperrors.NewInvalidInputError("RFID badge is required")
	}

	// The badge must resolve to the caller: you cannot badge in as
	// someone else. Nothing is written when this fails.
	owner, err := s.userRepo.FindUserByRfid(ctx, carnetRfid)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrBadgeNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	if owner.ID != usuarioID {
		s.logger.Warn("badge does not belong to the caller",
			zap.String("usuarioID", usuarioID),
			zap.String("badgeOwner", owner.ID),
		)
		return nil, apperrors.ErrOwnershipMismatch
	}

	asistencia := &entities.Asistencia{
		ID:         uuid.NewString(),
		UsuarioID:  usuarioID,
		CarnetRfid: carnetRfid,
		Tipo:       tipo,
		Estado:     estadoForTipo(tipo),
	}

	// A second entrada while already activo is accepted: the business has
	// no "already checked in" rule, and the ledger records what happened.
	if err := s.attendanceRepo.Append(ctx, asistencia); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	s.logger.Info("attendance event recorded",
		zap.String("usuarioID", usuarioID),
		zap.String("tipo", tipo),
		zap.Time("fecha", asistencia.Fecha),
	)

	return dto.NewAsistenciaDTO(asistencia), nil
}

func (s *AttendanceService) LastEventFor(ctx context.Context, usuarioID string) (*dto.UltimaAsistenciaDTO, error) {
	if usuarioID == "" {
		return nil, apperrors.NewInvalidInputError("user id is required")
	}

	ultima, err := s.attendanceRepo.LastByUser(ctx, usuarioID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &dto.UltimaAsistenciaDTO{
				AccionSugerida: SuggestNextAction(nil),
			}, nil
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	return &dto.UltimaAsistenciaDTO{
		Ultima:         dto.NewAsistenciaDTO(ultima),
		AccionSugerida: SuggestNextAction(ultima),
		EstadoDerivado: DeriveStatus([]entities.Asistencia{*ultima}),
	}, nil
}

func (s *AttendanceService) EventsFor(ctx context.Context, usuarioID string) ([]dto.AsistenciaDTO, error) {
	if usuarioID == "" {
		return nil, apperrors.NewInvalidInputError("user id is required")
	}

	eventos, err := s.attendanceRepo.ListByUser(ctx, usuarioID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	SortEventsDesc(eventos)

	return dto.NewAsistenciaDTOs(eventos), nil
}

func (s *AttendanceService) EventsInRange(ctx context.Context, desde, hasta time.Time) ([]dto.AsistenciaDTO, error) {
	var (
		eventos []entities.Asistencia
		err     error
	)

	if desde.IsZero() && hasta.IsZero() {
		// No range given: return the 50 most recent events.
		eventos, err = s.attendanceRepo.ListLatest(ctx, 50)
	} else {
		if hasta.IsZero() {
			// An open upper bound runs up to the present.
			hasta = time.Now()
		}
		if hasta.Before(desde) {
			return nil, apperrors.NewInvalidInputError("range end precedes range start")
		}
		eventos, err = s.attendanceRepo.ListInRange(ctx, desde, hasta)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	return dto.NewAsistenciaDTOs(eventos), nil
}
