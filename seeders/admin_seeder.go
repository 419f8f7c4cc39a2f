package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"compuscan/pkg/config"
)

func seedAdminAccount(ctx context.Context, db *pgxpool.Pool, cfg config.AdminConfig) error {
	email := cfg.Email
	password := cfg.Password
	if password == "" {
		password = "admin12345"
		log.Println("  ADMIN_PASSWORD not set, using the default development password")
	}

	var userID string
	err := db.QueryRow(ctx, "SELECT id FROM usuarios WHERE email = $1", email).Scan(&userID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("admin existence check: %w", err)
	}

	if userID == "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		userID = uuid.NewString()
		_, err = db.Exec(ctx, `
			INSERT INTO usuarios (id, nombre, apellido, email, rol, password_hash, activo)
			VALUES ($1, 'Administrador', 'CompuScan', $2, 'Instructor', $3, TRUE)
		`, userID, email, string(hash))
		if err != nil {
			return fmt.Errorf("admin user insert: %w", err)
		}
		log.Printf("  created admin user %s", email)
	} else {
		log.Printf("  admin user %s already exists", email)
	}

	_, err = db.Exec(ctx, `
		INSERT INTO admins (uid, email)
		VALUES ($1, $2)
		ON CONFLICT (uid) DO NOTHING
	`, userID, email)
	if err != nil {
		return fmt.Errorf("admins insert: %w", err)
	}

	return nil
}
