package dto

import (
	"time"

	"compuscan/internal/entities"
)

// RegistrarAsistenciaDTO is the scan payload. The user id comes from the
// authenticated context, never from the body.
type RegistrarAsistenciaDTO struct {
	CarnetRfid string `json:"carnetRfid" validate:"required,rfid"`
}

type AsistenciaDTO struct {
	ID         string `json:"id"`
	UsuarioID  string `json:"usuarioId"`
	CarnetRfid string `json:"carnetRfid"`
	Tipo       string `json:"tipo"`
	Fecha      string `json:"fecha"`
	Estado     string `json:"estado"`
}

// UltimaAsistenciaDTO reports the newest ledger event plus the action the
// client should offer next (the complement of the last kind).
type UltimaAsistenciaDTO struct {
	Ultima         *AsistenciaDTO `json:"ultima"`
	AccionSugerida string         `json:"accionSugerida"`
	EstadoDerivado string         `json:"estadoDerivado,omitempty"`
}

func NewAsistenciaDTO(a *entities.Asistencia) *AsistenciaDTO {
	return &AsistenciaDTO{
		ID:         a.ID,
		UsuarioID:  a.UsuarioID,
		CarnetRfid: a.CarnetRfid,
		Tipo:       a.Tipo,
		Fecha:      a.Fecha.Format(time.RFC3339),
		Estado:     a.Estado,
	}
}

func NewAsistenciaDTOs(asistencias []entities.Asistencia) []AsistenciaDTO {
	dtos := make([]AsistenciaDTO, len(asistencias))
	for i := range asistencias {
		dtos[i] = *NewAsistenciaDTO(&asistencias[i])
	}
	return dtos
}
