package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type demoUser struct {
	nombre   string
	apellido string
	email    string
	carnet   string
	rol      string
}

type demoEquipo struct {
	ownerEmail string
	marca      string
	modelo     string
	serial     string
	tipo       string
	color      string
}

var demoUsers = []demoUser{
	{"Laura", "Gómez", "laura.gomez@example.com", "04:A3:22:B1", "Aprendiz"},
	{"Carlos", "Pérez", "carlos.perez@example.com", "04:7F:10:C9", "Aprendiz"},
	{"Marta", "Rodríguez", "marta.rodriguez@example.com", "04:55:8E:D0", "Instructor"},
}

var demoEquipos = []demoEquipo{
	{"laura.gomez@example.com", "Lenovo", "ThinkPad E14", "LNV-883412", "portatil", "negro"},
	{"carlos.perez@example.com", "HP", "Pavilion 15", "HP-115590", "portatil", "plata"},
	{"carlos.perez@example.com", "Samsung", "Galaxy Tab A8", "SM-X200-77", "tablet", "gris"},
}

func seedDemoUsers(ctx context.Context, db *pgxpool.Pool) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("demo12345"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	idByEmail := make(map[string]string, len(demoUsers))

	for _, u := range demoUsers {
		var id string
		err := db.QueryRow(ctx, "SELECT id FROM usuarios WHERE email = $1", u.email).Scan(&id)
		if err == nil {
			idByEmail[u.email] = id
			continue
		}

		id = uuid.NewString()
		_, err = db.Exec(ctx, `
			INSERT INTO usuarios (id, nombre, apellido, email, carnet_rfid, rol, password_hash, activo)
			VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
		`, id, u.nombre, u.apellido, u.email, u.carnet, u.rol, string(hash))
		if err != nil {
			return fmt.Errorf("demo user %s: %w", u.email, err)
		}
		idByEmail[u.email] = id
		log.Printf("  created demo user %s (%s)", u.email, u.rol)
	}

	for _, e := range demoEquipos {
		ownerID, ok := idByEmail[e.ownerEmail]
		if !ok {
			continue
		}

		var exists bool
		err := db.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM equipos WHERE usuario_id = $1 AND serial = $2)",
			ownerID, e.serial,
		).Scan(&exists)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		_, err = db.Exec(ctx, `
			INSERT INTO equipos (id, usuario_id, marca, modelo, serial, tipo, color, estado)
			VALUES ($1, $2, $3, $4, $5, $6, $7, 'activo')
		`, uuid.NewString(), ownerID, e.marca, e.modelo, e.serial, e.tipo, e.color)
		if err != nil {
			return fmt.Errorf("demo equipment %s: %w", e.serial, err)
		}
		log.Printf("  registered demo equipment %s %s", e.marca, e.modelo)
	}

	return nil
}
