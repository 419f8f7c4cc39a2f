package services

import (
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"compuscan/internal/dto"
	"compuscan/internal/entities"
	apperrors "compuscan/pkg/errors"
	"compuscan/pkg/types"
)

func equipmentFixture() (EquipmentServiceInterface, *fakeEquipmentRepo, *fakeUserRepo) {
	userRepo := newFakeUserRepo(
		&entities.Usuario{ID: "u-laura", Nombre: "Laura", Apellido: "Gómez", Email: "laura@example.com", Rol: entities.RolAprendiz, Activo: true},
		&entities.Usuario{ID: "u-carlos", Nombre: "Carlos", Apellido: "Pérez", Email: "carlos@example.com", Rol: entities.RolAprendiz, Activo: true},
	)
	equipmentRepo := newFakeEquipmentRepo()
	svc := NewEquipmentService(equipmentRepo, userRepo, zap.NewNop())
	return svc, equipmentRepo, userRepo
}

func TestCreateEquipo_DefaultsToCaller(t *testing.T) {
	svc, _, _ := equipmentFixture()

	equipo, err := svc.CreateEquipo(ctxAs("u-laura", false), dto.CreateEquipoDTO{
		Marca:  "Lenovo",
		Modelo: "ThinkPad E14",
		Serial: "LNV-883412",
		Tipo:   entities.TipoPortatil,
		Color:  "negro",
	})
	require.NoError(t, err)

	assert.Equal(t, "u-laura", equipo.UsuarioID)
	assert.Equal(t, entities.EstadoActivo, equipo.Estado)
	assert.NotEmpty(t, equipo.ID)
}

func TestCreateEquipo_ForAnotherUserNeedsAdmin(t *testing.T) {
	svc, _, _ := equipmentFixture()

	payload := dto.CreateEquipoDTO{
		UsuarioID: "u-carlos",
		Marca:     "HP",
		Modelo:    "Pavilion 15",
		Serial:    "HP-115590",
		Tipo:      entities.TipoPortatil,
		Color:     "plata",
	}

	_, err := svc.CreateEquipo(ctxAs("u-laura", false), payload)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	equipo, err := svc.CreateEquipo(ctxAs("u-admin", true), payload)
	require.NoError(t, err)
	assert.Equal(t, "u-carlos", equipo.UsuarioID)
}

func TestCreateEquipo_UnknownOwner(t *testing.T) {
	svc, _, _ := equipmentFixture()

	_, err := svc.CreateEquipo(ctxAs("u-admin", true), dto.CreateEquipoDTO{
		UsuarioID: "u-nadie",
		Marca:     "HP",
		Modelo:    "Pavilion 15",
		Serial:    "HP-115590",
		Tipo:      entities.TipoPortatil,
		Color:     "plata",
	})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestCreateEquipo_DuplicateSerialAllowed(t *testing.T) {
	svc, repo, _ := equipmentFixture()
	ctx := ctxAs("u-laura", false)

	payload := dto.CreateEquipoDTO{
		Marca:  "Lenovo",
		Modelo: "ThinkPad E14",
		Serial: "LNV-883412",
		Tipo:   entities.TipoPortatil,
		Color:  "negro",
	}

	_, err := svc.CreateEquipo(ctx, payload)
	require.NoError(t, err)
	_, err = svc.CreateEquipo(ctx, payload)
	require.NoError(t, err)

	assert.Len(t, repo.equipos, 2)
}

func TestFindEquipo_OwnerOrAdminOnly(t *testing.T) {
	svc, _, _ := equipmentFixture()

	created, err := svc.CreateEquipo(ctxAs("u-laura", false), dto.CreateEquipoDTO{
		Marca:  "Lenovo",
		Modelo: "ThinkPad E14",
		Serial: "LNV-883412",
		Tipo:   entities.TipoPortatil,
		Color:  "negro",
	})
	require.NoError(t, err)

	_, err = svc.FindEquipo(ctxAs("u-carlos", false), created.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	got, err := svc.FindEquipo(ctxAs("u-laura", false), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	got, err = svc.FindEquipo(ctxAs("u-admin", true), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestGetEquipos_AdminOnly(t *testing.T) {
	svc, _, _ := equipmentFixture()

	_, _, err := svc.GetEquipos(ctxAs("u-laura", false), types.Filter{})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, _, err = svc.GetEquipos(ctxAs("u-admin", true), types.Filter{})
	assert.NoError(t, err)
}

func TestUpdateEquipo_AppliesPartialFields(t *testing.T) {
	svc, _, _ := equipmentFixture()
	ctx := ctxAs("u-laura", false)

	created, err := svc.CreateEquipo(ctx, dto.CreateEquipoDTO{
		Marca:  "Lenovo",
		Modelo: "ThinkPad E14",
		Serial: "LNV-883412",
		Tipo:   entities.TipoPortatil,
		Color:  "negro",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateEquipo(ctx, created.ID, dto.UpdateEquipoDTO{
		Color:  null.StringFrom("gris"),
		Estado: null.StringFrom(entities.EstadoInactivo),
	})
	require.NoError(t, err)

	assert.Equal(t, "gris", updated.Color)
	assert.Equal(t, entities.EstadoInactivo, updated.Estado)
	// Untouched fields keep their values.
	assert.Equal(t, "Lenovo", updated.Marca)
	assert.Equal(t, "LNV-883412", updated.Serial)
}

func TestDeleteEquipo_OwnerOrAdminOnly(t *testing.T) {
	svc, repo, _ := equipmentFixture()

	created, err := svc.CreateEquipo(ctxAs("u-laura", false), dto.CreateEquipoDTO{
		Marca:  "Lenovo",
		Modelo: "ThinkPad E14",
		Serial: "LNV-883412",
		Tipo:   entities.TipoPortatil,
		Color:  "negro",
	})
	require.NoError(t, err)

	err = svc.DeleteEquipo(ctxAs("u-carlos", false), created.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.Len(t, repo.equipos, 1)

	err = svc.DeleteEquipo(ctxAs("u-laura", false), created.ID)
	require.NoError(t, err)
	assert.Empty(t, repo.equipos)
}
