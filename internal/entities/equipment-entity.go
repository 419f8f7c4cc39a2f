package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

const (
	TipoPortatil   = "portatil"
	TipoComputador = "computador"
	TipoTablet     = "tablet"
	TipoCelular    = "celular"
	TipoOtro       = "otro"
)

type Equipo struct {
	ID        string `json:"id" db:"id"`
	UsuarioID string `json:"usuarioId" db:"usuario_id"`
	Marca     string `json:"marca" db:"marca"`
	Modelo    string `json:"modelo" db:"modelo"`

	// Serial is not unique server-side; collisions are an operator
	// problem, matching the registration desk's workflow.
	Serial string `json:"serial" db:"serial"`

	Tipo        string      `json:"tipo" db:"tipo"`
	Color       string      `json:"color" db:"color"`
	Descripcion null.String `json:"descripcion,omitempty" db:"descripcion"`
	Estado      string      `json:"estado" db:"estado"`

	CreatedAt time.Time `json:"fechaRegistro" db:"created_at"`
	UpdatedAt time.Time `json:"fechaActualizacion" db:"updated_at"`
}
