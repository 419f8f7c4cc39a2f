package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

const (
	RolAprendiz   = "Aprendiz"
	RolInstructor = "Instructor"
)

type Usuario struct {
	ID         string      `json:"id" db:"id"`
	Nombre     string      `json:"nombre" db:"nombre"`
	Apellido   string      `json:"apellido" db:"apellido"`
	Email      string      `json:"email" db:"email"`
	CarnetRfid null.String `json:"carnetRfid,omitempty" db:"carnet_rfid"`
	Rol        string      `json:"rol" db:"rol"`
	FotoURL    null.String `json:"fotoUrl,omitempty" db:"foto_url"`

	PasswordHash string `json:"-" db:"password_hash"`

	Activo    bool      `json:"activo" db:"activo"`
	CreatedAt time.Time `json:"fechaCreacion" db:"created_at"`
	UpdatedAt time.Time `json:"fechaActualizacion" db:"updated_at"`
}

func (u *Usuario) NombreCompleto() string {
	return u.Nombre + " " + u.Apellido
}
