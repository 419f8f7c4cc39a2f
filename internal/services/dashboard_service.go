package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"compuscan/internal/dto"
	"compuscan/internal/entities"
	"compuscan/internal/repositories"
	apperrors "compuscan/pkg/errors"
	"compuscan/pkg/types"
	"compuscan/pkg/utils"
)

// DashboardService computes role-scoped statistics. Every figure is a
// projection over the full tables, reduced in application code; the data
// volume of a single institution makes that the simpler trade.

type DashboardServiceInterface interface {
	StatsFor(ctx context.Context) (*dto.RoleStatsDTO, error)
}

type DashboardService struct {
	userRepo       repositories.UserRepositoryInterface
	equipmentRepo  repositories.EquipmentRepositoryInterface
	attendanceRepo repositories.AttendanceRepositoryInterface
	logger         *zap.Logger
}

func NewDashboardService(
	userRepo repositories.UserRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	attendanceRepo repositories.AttendanceRepositoryInterface,
	logger *zap.Logger,
) DashboardServiceInterface {
	return &DashboardService{
		userRepo:       userRepo,
		equipmentRepo:  equipmentRepo,
		attendanceRepo: attendanceRepo,
		logger:         logger,
	}
}

// startOfDay truncates to local midnight.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the most recent Sunday at local midnight. Weeks run
// Sunday to Saturday.
func startOfWeek(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, -int(t.Weekday()))
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func (s *DashboardService) StatsFor(ctx context.Context) (*dto.RoleStatsDTO, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	if utils.GetIsAdminFromCtx(ctx) {
		stats, err := s.adminStats(ctx)
		if err != nil {
			return nil, err
		}
		return &dto.RoleStatsDTO{Rol: "admin", Admin: stats}, nil
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	switch user.Rol {
	case entities.RolInstructor:
		stats, err := s.instructorStats(ctx)
		if err != nil {
			return nil, err
		}
		return &dto.RoleStatsDTO{Rol: entities.RolInstructor, Instructor: stats}, nil
	case entities.RolAprendiz:
		stats, err := s.learnerStats(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		return &dto.RoleStatsDTO{Rol: entities.RolAprendiz, Aprendiz: stats}, nil
	default:
		// No recognized role assigned yet: an empty shell, not an error.
		return &dto.RoleStatsDTO{}, nil
	}
}

func (s *DashboardService) adminStats(ctx context.Context) (*dto.AdminStatsDTO, error) {
	users, _, err := s.userRepo.GetUsers(ctx, types.Filter{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	eventos, err := s.attendanceRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	equipos, err := s.equipmentRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	ultimas, err := s.attendanceRepo.ListLatest(ctx, 10)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	nameByID := make(map[string]string, len(users))
	counts := dto.UserCountsDTO{Total: len(users)}
	for _, u := range users {
		nameByID[u.ID] = u.NombreCompleto()
		switch u.Rol {
		case entities.RolAprendiz:
			counts.Aprendices++
		case entities.RolInstructor:
			counts.Instructores++
		}
	}

	totals := dto.AttendanceTotalsDTO{}
	porUsuario := make(map[string]dto.AttendanceTotalsDTO)
	for _, e := range eventos {
		totals.Total++
		key := nameByID[e.UsuarioID]
		if key == "" {
			key = e.UsuarioID
		}
		per := porUsuario[key]
		per.Total++
		if e.Tipo == entities.TipoEntrada {
			totals.Entradas++
			per.Entradas++
		} else {
			totals.Salidas++
			per.Salidas++
		}
		porUsuario[key] = per
	}

	return &dto.AdminStatsDTO{
		Usuarios:    counts,
		Asistencias: totals,
		PorUsuario:  porUsuario,
		Equipos:     reduceEquipmentStats(equipos),
		Ultimas:     dto.NewAsistenciaDTOs(ultimas),
	}, nil
}

func (s *DashboardService) instructorStats(ctx context.Context) (*dto.InstructorStatsDTO, error) {
	now := time.Now()
	hoy, err := s.attendanceRepo.ListInRange(ctx, startOfDay(now), now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	users, _, err := s.userRepo.GetUsers(ctx, types.Filter{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	equipos, err := s.equipmentRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	rolByID := make(map[string]string, len(users))
	totalAprendices := 0
	for _, u := range users {
		rolByID[u.ID] = u.Rol
		if u.Rol == entities.RolAprendiz {
			totalAprendices++
		}
	}

	presentes := 0
	for uid := range presenceSet(hoy) {
		if rolByID[uid] == entities.RolAprendiz {
			presentes++
		}
	}

	return &dto.InstructorStatsDTO{
		AsistenciasHoy:      len(hoy),
		AprendicesPresentes: presentes,
		TotalAprendices:     totalAprendices,
		Equipos:             reduceEquipmentStats(equipos),
	}, nil
}

func (s *DashboardService) learnerStats(ctx context.Context, usuarioID string) (*dto.LearnerStatsDTO, error) {
	eventos, err := s.attendanceRepo.ListByUser(ctx, usuarioID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	equipos, err := s.equipmentRepo.GetEquiposByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	now := time.Now()
	mesDesde := startOfMonth(now)
	semanaDesde := startOfWeek(now)

	stats := &dto.LearnerStatsDTO{
		Total:      len(eventos),
		MisEquipos: dto.NewEquipoDTOs(equipos),
	}
	for _, e := range eventos {
		if !e.Fecha.Before(mesDesde) {
			stats.Mes++
		}
		if !e.Fecha.Before(semanaDesde) {
			stats.Semana++
		}
	}

	return stats, nil
}

// presenceSet replays the day's events in timestamp order: an entrada puts
// the user in the building, a salida takes them out. Whoever remains is
// currently present.
func presenceSet(eventos []entities.Asistencia) map[string]struct{} {
	ordered := make([]entities.Asistencia, len(eventos))
	copy(ordered, eventos)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Fecha.Before(ordered[j].Fecha)
	})

	present := make(map[string]struct{})
	for _, e := range ordered {
		if e.Tipo == entities.TipoEntrada {
			present[e.UsuarioID] = struct{}{}
		} else {
			delete(present, e.UsuarioID)
		}
	}
	return present
}

func reduceEquipmentStats(equipos []entities.Equipo) dto.EquipmentStatsDTO {
	stats := dto.EquipmentStatsDTO{
		Total:    len(equipos),
		PorTipo:  make(map[string]int),
		PorMarca: make(map[string]int),
	}
	for _, e := range equipos {
		if e.Estado == entities.EstadoActivo {
			stats.Activos++
		} else {
			stats.Inactivos++
		}
		stats.PorTipo[e.Tipo]++
		if e.Marca != "" {
			stats.PorMarca[e.Marca]++
		}
	}
	return stats
}
