package entities

import "time"

// Admin mirrors the admins collection: membership alone grants the
// administrator role.
type Admin struct {
	UID       string    `json:"uid" db:"uid"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"fechaCreacion" db:"created_at"`
}
