package dto

import "github.com/aarondl/null/v8"

type RegisterDTO struct {
	Nombre     string      `json:"nombre" validate:"required"`
	Apellido   string      `json:"apellido" validate:"required"`
	Email      string      `json:"email" validate:"required,email"`
	Password   string      `json:"password" validate:"required,min=6"`
	Rol        string      `json:"rol" validate:"required,oneof=Aprendiz Instructor"`
	CarnetRfid null.String `json:"carnetRfid" validate:"omitempty,rfid"`
}

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type TokenPairDTO struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type SessionDTO struct {
	Usuario *UserDTO     `json:"usuario"`
	EsAdmin bool         `json:"esAdmin"`
	Tokens  TokenPairDTO `json:"tokens"`
}
