package entities

import "time"

const (
	TipoEntrada = "entrada"
	TipoSalida  = "salida"

	EstadoActivo   = "activo"
	EstadoInactivo = "inactivo"
)

// Asistencia is one row of the append-only attendance ledger. Rows are
// never updated or deleted; Fecha is assigned by the store at insert time.
type Asistencia struct {
	ID         string    `json:"id" db:"id"`
	UsuarioID  string    `json:"usuarioId" db:"usuario_id"`
	CarnetRfid string    `json:"carnetRfid" db:"carnet_rfid"`
	Tipo       string    `json:"tipo" db:"tipo"`
	Fecha      time.Time `json:"fecha" db:"fecha"`
	Estado     string    `json:"estado" db:"estado"`
}
