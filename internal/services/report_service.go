package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"compuscan/internal/dto"
	"compuscan/internal/entities"
	"compuscan/internal/repositories"
	apperrors "compuscan/pkg/errors"
	"compuscan/pkg/types"
)

type ReportServiceInterface interface {
	AttendanceReport(ctx context.Context, desde, hasta time.Time) ([]dto.ReportItemDTO, error)
}

// ReportService joins ledger events with user profiles at export time so
// the spreadsheet carries names instead of ids.
type ReportService struct {
	attendanceRepo repositories.AttendanceRepositoryInterface
	userRepo       repositories.UserRepositoryInterface
	logger         *zap.Logger
}

func NewReportService(
	attendanceRepo repositories.AttendanceRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	logger *zap.Logger,
) ReportServiceInterface {
	return &ReportService{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

func (s *ReportService) AttendanceReport(ctx context.Context, desde, hasta time.Time) ([]dto.ReportItemDTO, error) {
	var (
		eventos []entities.Asistencia
		err     error
	)

	if desde.IsZero() && hasta.IsZero() {
		eventos, err = s.attendanceRepo.ListAll(ctx)
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

	SortEventsDesc(eventos)

	users, _, err := s.userRepo.GetUsers(ctx, types.Filter{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	byID := make(map[string]entities.Usuario, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	items := make([]dto.ReportItemDTO, 0, len(eventos))
	for _, e := range eventos {
		u := byID[e.UsuarioID]
		items = append(items, dto.ReportItemDTO{
			Fecha:      e.Fecha.Format("2006-01-02 15:04:05"),
			Nombre:     u.Nombre,
			Apellido:   u.Apellido,
			Email:      u.Email,
			CarnetRfid: e.CarnetRfid,
			Tipo:       e.Tipo,
			Estado:     e.Estado,
		})
	}

	s.logger.Info("attendance report built", zap.Int("rows", len(items)))
	return items, nil
}
