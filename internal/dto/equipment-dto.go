package dto

import (
	"time"

	"github.com/aarondl/null/v8"

	"compuscan/internal/entities"
)

type CreateEquipoDTO struct {
	// UsuarioID may only be set by administrators; everyone else registers
	// equipment against their own account.
	UsuarioID   string      `json:"usuarioId" validate:"omitempty"`
	Marca       string      `json:"marca" validate:"required"`
	Modelo      string      `json:"modelo" validate:"required"`
	Serial      string      `json:"serial" validate:"required"`
	Tipo        string      `json:"tipo" validate:"required,oneof=portatil computador tablet celular otro"`
	Color       string      `json:"color" validate:"required"`
	Descripcion null.String `json:"descripcion"`
}

type UpdateEquipoDTO struct {
	Marca       null.String `json:"marca" validate:"omitempty,min=1"`
	Modelo      null.String `json:"modelo" validate:"omitempty,min=1"`
	Serial      null.String `json:"serial" validate:"omitempty,min=1"`
	Tipo        null.String `json:"tipo" validate:"omitempty,oneof=portatil computador tablet celular otro"`
	Color       null.String `json:"color" validate:"omitempty,min=1"`
	Descripcion null.String `json:"descripcion"`
	Estado      null.String `json:"estado" validate:"omitempty,oneof=activo inactivo"`
}

type EquipoDTO struct {
	ID          string `json:"id"`
	UsuarioID   string `json:"usuarioId"`
	Marca       string `json:"marca"`
	Modelo      string `json:"modelo"`
	Serial      string `json:"serial"`
	Tipo        string `json:"tipo"`
	Color       string `json:"color"`
	Descripcion string `json:"descripcion,omitempty"`
	Estado      string `json:"estado"`
	CreatedAt   string `json:"fechaRegistro"`
	UpdatedAt   string `json:"fechaActualizacion"`
}

func NewEquipoDTO(e *entities.Equipo) *EquipoDTO {
	return &EquipoDTO{
		ID:          e.ID,
		UsuarioID:   e.UsuarioID,
		Marca:       e.Marca,
		Modelo:      e.Modelo,
		Serial:      e.Serial,
		Tipo:        e.Tipo,
		Color:       e.Color,
		Descripcion: e.Descripcion.String,
		Estado:      e.Estado,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   e.UpdatedAt.Format(time.RFC3339),
	}
}

func NewEquipoDTOs(equipos []entities.Equipo) []EquipoDTO {
	dtos := make([]EquipoDTO, len(equipos))
	for i := range equipos {
		dtos[i] = *NewEquipoDTO(&equipos[i])
	}
	return dtos
}
