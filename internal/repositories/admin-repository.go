package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"compuscan/internal/entities"
)

type AdminRepositoryInterface interface {
	IsAdmin(ctx context.Context, uid string) (bool, error)
	CreateAdmin(ctx context.Context, admin *entities.Admin) error
}

type AdminRepository struct {
	storage *pgxpool.Pool
}

func NewAdminRepository(storage *pgxpool.Pool) AdminRepositoryInterface {
	return &AdminRepository{storage: storage}
}

// IsAdmin checks membership in the admins table. Existence of the row is
// the whole authorization model.
func (r *AdminRepository) IsAdmin(ctx context.Context, uid string) (bool, error) {
	var exists bool
	err := r.storage.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM admins WHERE uid = $1)", uid).Scan(&exists)
	return exists, err
}

func (r *AdminRepository) CreateAdmin(ctx context.Context, admin *entities.Admin) error {
	query := `
		INSERT INTO admins (uid, email)
		VALUES ($1, $2)
		ON CONFLICT (uid) DO NOTHING
	`
	_, err := r.storage.Exec(ctx, query, admin.UID, admin.Email)
	return err
}
