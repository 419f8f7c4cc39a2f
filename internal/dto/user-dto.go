package dto

import (
	"time"

	"github.com/aarondl/null/v8"

	"compuscan/internal/entities"
)

type UserDTO struct {
	ID         string `json:"id"`
	Nombre     string `json:"nombre"`
	Apellido   string `json:"apellido"`
	Email      string `json:"email"`
	CarnetRfid string `json:"carnetRfid,omitempty"`
	Rol        string `json:"rol"`
	FotoURL    string `json:"fotoUrl,omitempty"`
	Activo     bool   `json:"activo"`
	CreatedAt  string `json:"fechaCreacion"`
	UpdatedAt  string `json:"fechaActualizacion"`
}

type UpdateUserDTO struct {
	Nombre     null.String `json:"nombre" validate:"omitempty,min=1"`
	Apellido   null.String `json:"apellido" validate:"omitempty,min=1"`
	CarnetRfid null.String `json:"carnetRfid" validate:"omitempty,rfid"`
	Rol        null.String `json:"rol" validate:"omitempty,oneof=Aprendiz Instructor"`
	Activo     null.Bool   `json:"activo"`
}

func NewUserDTO(u *entities.Usuario) *UserDTO {
	return &UserDTO{
		ID:         u.ID,
		Nombre:     u.Nombre,
		Apellido:   u.Apellido,
		Email:      u.Email,
		CarnetRfid: u.CarnetRfid.String,
		Rol:        u.Rol,
		FotoURL:    u.FotoURL.String,
		Activo:     u.Activo,
		CreatedAt:  u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  u.UpdatedAt.Format(time.RFC3339),
	}
}

func NewUserDTOs(users []entities.Usuario) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i := range users {
		dtos[i] = *NewUserDTO(&users[i])
	}
	return dtos
}
