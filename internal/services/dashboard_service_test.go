package services

import (
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"compuscan/internal/entities"
)

func dashboardFixture() (DashboardServiceInterface, *fakeUserRepo, *fakeEquipmentRepo, *fakeAttendanceRepo) {
	userRepo := newFakeUserRepo(
		&entities.Usuario{ID: "u-admin", Nombre: "Admin", Apellido: "CompuScan", Email: "admin@example.com", Rol: entities.RolInstructor, Activo: true},
		&entities.Usuario{ID: "u-marta", Nombre: "Marta", Apellido: "Rodríguez", Email: "marta@example.com", Rol: entities.RolInstructor, Activo: true},
		&entities.Usuario{ID: "u-laura", Nombre: "Laura", Apellido: "Gómez", Email: "laura@example.com", CarnetRfid: null.StringFrom("04:A3:22:B1"), Rol: entities.RolAprendiz, Activo: true},
		&entities.Usuario{ID: "u-carlos", Nombre: "Carlos", Apellido: "Pérez", Email: "carlos@example.com", CarnetRfid: null.StringFrom("04:7F:10:C9"), Rol: entities.RolAprendiz, Activo: true},
	)
	equipmentRepo := newFakeEquipmentRepo(
		&entities.Equipo{ID: "eq1", UsuarioID: "u-laura", Marca: "Lenovo", Tipo: entities.TipoPortatil, Estado: entities.EstadoActivo},
		&entities.Equipo{ID: "eq2", UsuarioID: "u-carlos", Marca: "HP", Tipo: entities.TipoPortatil, Estado: entities.EstadoInactivo},
		&entities.Equipo{ID: "eq3", UsuarioID: "u-carlos", Marca: "Samsung", Tipo: entities.TipoTablet, Estado: entities.EstadoActivo},
	)
	attendanceRepo := newFakeAttendanceRepo()
	svc := NewDashboardService(userRepo, equipmentRepo, attendanceRepo, zap.NewNop())
	return svc, userRepo, equipmentRepo, attendanceRepo
}

func TestStatsFor_AdminAggregation(t *testing.T) {
	svc, _, _, attendanceRepo := dashboardFixture()

	base := time.Now().Add(-2 * time.Hour)
	attendanceRepo.events = []entities.Asistencia{
		{ID: "a1", UsuarioID: "u-laura", Tipo: entities.TipoEntrada, Fecha: base},
		{ID: "a2", UsuarioID: "u-laura", Tipo: entities.TipoSalida, Fecha: base.Add(time.Hour)},
		{ID: "a3", UsuarioID: "u-carlos", Tipo: entities.TipoEntrada, Fecha: base.Add(30 * time.Minute)},
	}

	stats, err := svc.StatsFor(ctxAs("u-admin", true))
	require.NoError(t, err)

	require.Equal(t, "admin", stats.Rol)
	require.NotNil(t, stats.Admin)
	assert.Nil(t, stats.Instructor)
	assert.Nil(t, stats.Aprendiz)

	admin := stats.Admin
	assert.Equal(t, 4, admin.Usuarios.Total)
	assert.Equal(t, 2, admin.Usuarios.Aprendices)
	assert.Equal(t, 2, admin.Usuarios.Instructores)

	assert.Equal(t, 3, admin.Asistencias.Total)
	assert.Equal(t, 2, admin.Asistencias.Entradas)
	assert.Equal(t, 1, admin.Asistencias.Salidas)

	laura := admin.PorUsuario["Laura Gómez"]
	assert.Equal(t, 2, laura.Total)
	assert.Equal(t, 1, laura.Entradas)
	assert.Equal(t, 1, laura.Salidas)

	assert.Equal(t, 3, admin.Equipos.Total)
	assert.Equal(t, 2, admin.Equipos.Activos)
	assert.Equal(t, 1, admin.Equipos.Inactivos)
	assert.Equal(t, 2, admin.Equipos.PorTipo[entities.TipoPortatil])
	assert.Equal(t, 1, admin.Equipos.PorMarca["Lenovo"])

	require.Len(t, admin.Ultimas, 3)
	assert.Equal(t, "a2", admin.Ultimas[0].ID)
}

func TestStatsFor_InstructorPresence(t *testing.T) {
	svc, _, _, attendanceRepo := dashboardFixture()

	// Today: Laura enters and leaves, Carlos enters and stays.
	now := time.Now()
	base := now.Add(-3 * time.Minute)
	if base.Before(startOfDay(now)) {
		base = startOfDay(now)
	}
	attendanceRepo.events = []entities.Asistencia{
		{ID: "a1", UsuarioID: "u-laura", Tipo: entities.TipoEntrada, Fecha: base},
		{ID: "a2", UsuarioID: "u-carlos", Tipo: entities.TipoEntrada, Fecha: base.Add(time.Second)},
		{ID: "a3", UsuarioID: "u-laura", Tipo: entities.TipoSalida, Fecha: base.Add(2 * time.Second)},
	}

	stats, err := svc.StatsFor(ctxAs("u-marta", false))
	require.NoError(t, err)

	require.Equal(t, entities.RolInstructor, stats.Rol)
	require.NotNil(t, stats.Instructor)

	instructor := stats.Instructor
	assert.Equal(t, 3, instructor.AsistenciasHoy)
	assert.Equal(t, 1, instructor.AprendicesPresentes)
	assert.Equal(t, 2, instructor.TotalAprendices)
	assert.Equal(t, 3, instructor.Equipos.Total)
}

func TestStatsFor_LearnerBuckets(t *testing.T) {
	svc, _, _, attendanceRepo := dashboardFixture()

	now := time.Now()
	attendanceRepo.events = []entities.Asistencia{
		{ID: "recent", UsuarioID: "u-laura", Tipo: entities.TipoEntrada, Fecha: now},
		{ID: "ancient", UsuarioID: "u-laura", Tipo: entities.TipoSalida, Fecha: now.AddDate(0, -3, 0)},
		{ID: "foreign", UsuarioID: "u-carlos", Tipo: entities.TipoEntrada, Fecha: now},
	}

	stats, err := svc.StatsFor(ctxAs("u-laura", false))
	require.NoError(t, err)

	require.Equal(t, entities.RolAprendiz, stats.Rol)
	require.NotNil(t, stats.Aprendiz)

	learner := stats.Aprendiz
	assert.Equal(t, 2, learner.Total)
	assert.Equal(t, 1, learner.Mes)
	assert.Equal(t, 1, learner.Semana)
	require.Len(t, learner.MisEquipos, 1)
	assert.Equal(t, "eq1", learner.MisEquipos[0].ID)
}

func TestStatsFor_UnassignedRole(t *testing.T) {
	svc, userRepo, _, _ := dashboardFixture()
	userRepo.users["u-nuevo"] = &entities.Usuario{ID: "u-nuevo", Email: "nuevo@example.com", Activo: true}

	stats, err := svc.StatsFor(ctxAs("u-nuevo", false))
	require.NoError(t, err)

	assert.Empty(t, stats.Rol)
	assert.Nil(t, stats.Admin)
	assert.Nil(t, stats.Instructor)
	assert.Nil(t, stats.Aprendiz)
}

func TestPresenceSet_ReplaysInOrder(t *testing.T) {
	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.Local)

	// Deliberately out of order: replay must sort before reducing.
	eventos := []entities.Asistencia{
		{UsuarioID: "A", Tipo: entities.TipoSalida, Fecha: base.Add(2 * time.Minute)},
		{UsuarioID: "A", Tipo: entities.TipoEntrada, Fecha: base},
		{UsuarioID: "B", Tipo: entities.TipoEntrada, Fecha: base.Add(time.Minute)},
	}

	present := presenceSet(eventos)
	assert.Len(t, present, 1)
	_, ok := present["B"]
	assert.True(t, ok)
}

func TestWeekStartsOnSunday(t *testing.T) {
	// Wednesday 2026-03-04 -> Sunday 2026-03-01 00:00 local.
	wed := time.Date(2026, 3, 4, 15, 30, 0, 0, time.Local)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local), startOfWeek(wed))

	// A Sunday is its own week start.
	sun := time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local), startOfWeek(sun))
}

func TestStartOfMonth(t *testing.T) {
	d := time.Date(2026, 3, 15, 23, 59, 0, 0, time.Local)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local), startOfMonth(d))
}
