package services

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"compuscan/internal/entities"
	apperrors "compuscan/pkg/errors"
)

func newAttendanceFixture(t *testing.T, events ...entities.Asistencia) (AttendanceServiceInterface, *fakeAttendanceRepo, *fakeUserRepo) {
	t.Helper()

	userRepo := newFakeUserRepo(
		&entities.Usuario{
			ID:         "u-laura",
			Nombre:     "Laura",
			Apellido:   "Gómez",
			Email:      "laura@example.com",
			CarnetRfid: null.StringFrom("04:A3:22:B1"),
			Rol:        entities.RolAprendiz,
			Activo:     true,
		},
		&entities.Usuario{
			ID:         "u-carlos",
			Nombre:     "Carlos",
			Apellido:   "Pérez",
			Email:      "carlos@example.com",
			CarnetRfid: null.StringFrom("04:7F:10:C9"),
			Rol:        entities.RolAprendiz,
			Activo:     true,
		},
	)
	attendanceRepo := newFakeAttendanceRepo(events...)
	svc := NewAttendanceService(attendanceRepo, userRepo, zap.NewNop())
	return svc, attendanceRepo, userRepo
}

func TestRecordEntry_AppendsEvent(t *testing.T) {
	svc, repo, _ := newAttendanceFixture(t)

	got, err := svc.RecordEntry(context.Background(), "u-laura", "04:A3:22:B1")
	require.NoError(t, err)

	assert.Equal(t, entities.TipoEntrada, got.Tipo)
	assert.Equal(t, entities.EstadoActivo, got.Estado)
	assert.Equal(t, "u-laura", got.UsuarioID)
	assert.NotEmpty(t, got.Fecha)
	assert.Equal(t, 1, repo.count())
}

func TestRecordEntry_ForeignBadgeWritesNothing(t *testing.T) {
	svc, repo, _ := newAttendanceFixture(t)

	// Laura scans Carlos's badge.
	_, err := svc.RecordEntry(context.Background(), "u-laura", "04:7F:10:C9")
	assert.ErrorIs(t, err, apperrors.ErrOwnershipMismatch)
	assert.Equal(t, 0, repo.count())
}

func TestRecordEntry_UnknownBadge(t *testing.T) {
	svc, repo, _ := newAttendanceFixture(t)

	_, err := svc.RecordEntry(context.Background(), "u-laura", "FF:FF:FF:FF")
	assert.ErrorIs(t, err, apperrors.ErrBadgeNotFound)
	assert.Equal(t, 0, repo.count())
}

func TestRecordEntry_EmptyInputs(t *testing.T) {
	svc, _, _ := newAttendanceFixture(t)

	var invalid *apperrors.InvalidInputError
	_, err := svc.RecordEntry(context.Background(), "", "04:A3:22:B1")
	assert.ErrorAs(t, err, &invalid)

	_, err = svc.RecordEntry(context.Background(), "u-laura", "")
	assert.ErrorAs(t, err, &invalid)
}

func TestRecordEntry_DoubleEntradaAccepted(t *testing.T) {
	svc, repo, _ := newAttendanceFixture(t)

	_, err := svc.RecordEntry(context.Background(), "u-laura", "04:A3:22:B1")
	require.NoError(t, err)
	_, err = svc.RecordEntry(context.Background(), "u-laura", "04:A3:22:B1")
	require.NoError(t, err)

	assert.Equal(t, 2, repo.count())
}

func TestEntryExitCycle(t *testing.T) {
	svc, _, _ := newAttendanceFixture(t)
	ctx := context.Background()

	_, err := svc.RecordEntry(ctx, "u-laura", "04:A3:22:B1")
	require.NoError(t, err)

	ultima, err := svc.LastEventFor(ctx, "u-laura")
	require.NoError(t, err)
	assert.Equal(t, entities.TipoSalida, ultima.AccionSugerida)
	assert.Equal(t, entities.EstadoActivo, ultima.EstadoDerivado)

	_, err = svc.RecordExit(ctx, "u-laura", "04:A3:22:B1")
	require.NoError(t, err)

	ultima, err = svc.LastEventFor(ctx, "u-laura")
	require.NoError(t, err)
	assert.Equal(t, entities.TipoEntrada, ultima.AccionSugerida)
	assert.Equal(t, entities.EstadoInactivo, ultima.EstadoDerivado)
}

func TestLastEventFor_NeverBadged(t *testing.T) {
	svc, _, _ := newAttendanceFixture(t)

	ultima, err := svc.LastEventFor(context.Background(), "u-laura")
	require.NoError(t, err)
	assert.Nil(t, ultima.Ultima)
	assert.Equal(t, entities.TipoEntrada, ultima.AccionSugerida)
	assert.Empty(t, ultima.EstadoDerivado)
}

func TestEventsFor_SortsStoreOrder(t *testing.T) {
	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.Local)

	// The store hands events back unordered; the service must not rely on
	// any incidental ordering.
	shuffled := []entities.Asistencia{
		{ID: "e2", UsuarioID: "u-laura", Tipo: entities.TipoSalida, Fecha: base.Add(2 * time.Hour)},
		{ID: "e4", UsuarioID: "u-laura", Tipo: entities.TipoSalida, Fecha: base.Add(8 * time.Hour)},
		{ID: "e1", UsuarioID: "u-laura", Tipo: entities.TipoEntrada, Fecha: base},
		{ID: "e3", UsuarioID: "u-laura", Tipo: entities.TipoEntrada, Fecha: base.Add(6 * time.Hour)},
		{ID: "other", UsuarioID: "u-carlos", Tipo: entities.TipoEntrada, Fecha: base.Add(3 * time.Hour)},
	}
	svc, _, _ := newAttendanceFixture(t, shuffled...)

	eventos, err := svc.EventsFor(context.Background(), "u-laura")
	require.NoError(t, err)

	require.Len(t, eventos, 4)
	assert.Equal(t, []string{"e4", "e3", "e2", "e1"}, []string{
		eventos[0].ID, eventos[1].ID, eventos[2].ID, eventos[3].ID,
	})
}

func TestEventsInRange_InvertedRange(t *testing.T) {
	svc, _, _ := newAttendanceFixture(t)

	desde := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	hasta := desde.Add(-24 * time.Hour)

	var invalid *apperrors.InvalidInputError
	_, err := svc.EventsInRange(context.Background(), desde, hasta)
	assert.ErrorAs(t, err, &invalid)
}

func TestEventsInRange_OpenEndedUpperBound(t *testing.T) {
	now := time.Now()
	svc, _, _ := newAttendanceFixture(t,
		entities.Asistencia{ID: "viejo", UsuarioID: "u-laura", Tipo: entities.TipoEntrada, Fecha: now.Add(-72 * time.Hour)},
		entities.Asistencia{ID: "reciente", UsuarioID: "u-laura", Tipo: entities.TipoSalida, Fecha: now.Add(-2 * time.Hour)},
	)

	// Only desde given: the range runs up to the present.
	eventos, err := svc.EventsInRange(context.Background(), now.Add(-24*time.Hour), time.Time{})
	require.NoError(t, err)
	require.Len(t, eventos, 1)
	assert.Equal(t, "reciente", eventos[0].ID)
}

func TestEventsInRange_NoRangeReturnsLatest(t *testing.T) {
	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.Local)
	svc, _, _ := newAttendanceFixture(t,
		entities.Asistencia{ID: "old", UsuarioID: "u-laura", Tipo: entities.TipoEntrada, Fecha: base},
		entities.Asistencia{ID: "new", UsuarioID: "u-laura", Tipo: entities.TipoSalida, Fecha: base.Add(time.Hour)},
	)

	eventos, err := svc.EventsInRange(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, eventos, 2)
	assert.Equal(t, "new", eventos[0].ID)
}

func TestDeriveStatus(t *testing.T) {
	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.Local)

	assert.Empty(t, DeriveStatus(nil))

	eventos := []entities.Asistencia{
		{Tipo: entities.TipoSalida, Fecha: base.Add(time.Hour)},
		{Tipo: entities.TipoEntrada, Fecha: base.Add(2 * time.Hour)},
		{Tipo: entities.TipoEntrada, Fecha: base},
	}
	assert.Equal(t, entities.EstadoActivo, DeriveStatus(eventos))

	eventos = append(eventos, entities.Asistencia{Tipo: entities.TipoSalida, Fecha: base.Add(3 * time.Hour)})
	assert.Equal(t, entities.EstadoInactivo, DeriveStatus(eventos))
}

func TestSuggestNextAction(t *testing.T) {
	assert.Equal(t, entities.TipoEntrada, SuggestNextAction(nil))
	assert.Equal(t, entities.TipoSalida, SuggestNextAction(&entities.Asistencia{Tipo: entities.TipoEntrada}))
	assert.Equal(t, entities.TipoEntrada, SuggestNextAction(&entities.Asistencia{Tipo: entities.TipoSalida}))
}
