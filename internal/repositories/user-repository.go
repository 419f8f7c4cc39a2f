package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"compuscan/internal/entities"
	apperrors "compuscan/pkg/errors"
	"compuscan/pkg/types"
)

const usuarioFields = "id, nombre, apellido, email, carnet_rfid, rol, foto_url, password_hash, activo, created_at, updated_at"

type UserRepositoryInterface interface {
	CreateUser(ctx context.Context, user *entities.Usuario) error
	FindUserByID(ctx context.Context, id string) (*entities.Usuario, error)
	FindUserByEmail(ctx context.Context, email string) (*entities.Usuario, error)
	FindUserByRfid(ctx context.Context, carnetRfid string) (*entities.Usuario, error)
	GetUsers(ctx context.Context, filter types.Filter) ([]entities.Usuario, uint64, error)
	UpdateUser(ctx context.Context, user *entities.Usuario) error
	DeleteUser(ctx context.Context, id string) error
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func scanUsuario(row pgx.Row) (*entities.Usuario, error) {
	var u entities.Usuario
	err := row.Scan(
		&u.ID,
		&u.Nombre,
		&u.Apellido,
		&u.Email,
		&u.CarnetRfid,
		&u.Rol,
		&u.FotoURL,
		&u.PasswordHash,
		&u.Activo,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user *entities.Usuario) error {
	query := `
		INSERT INTO usuarios (id, nombre, apellido, email, carnet_rfid, rol, foto_url, password_hash, activo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`
	return r.storage.QueryRow(ctx, query,
		user.ID,
		user.Nombre,
		user.Apellido,
		user.Email,
		user.CarnetRfid,
		user.Rol,
		user.FotoURL,
		user.PasswordHash,
		user.Activo,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *UserRepository) FindUserByID(ctx context.Context, id string) (*entities.Usuario, error) {
	query := fmt.Sprintf("SELECT %s FROM usuarios WHERE id = $1", usuarioFields)
	return scanUsuario(r.storage.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*entities.Usuario, error) {
	query := fmt.Sprintf("SELECT %s FROM usuarios WHERE email = $1", usuarioFields)
	return scanUsuario(r.storage.QueryRow(ctx, query, email))
}

func (r *UserRepository) FindUserByRfid(ctx context.Context, carnetRfid string) (*entities.Usuario, error) {
	query := fmt.Sprintf("SELECT %s FROM usuarios WHERE carnet_rfid = $1", usuarioFields)
	return scanUsuario(r.storage.QueryRow(ctx, query, carnetRfid))
}

func (r *UserRepository) GetUsers(ctx context.Context, filter types.Filter) ([]entities.Usuario, uint64, error) {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	sel := builder.Select(usuarioFields).From("usuarios")
	count := builder.Select("COUNT(*)").From("usuarios")

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		cond := sq.Or{
			sq.ILike{"nombre": like},
			sq.ILike{"apellido": like},
			sq.ILike{"email": like},
			sq.ILike{"carnet_rfid": like},
		}
		sel = sel.Where(cond)
		count = count.Where(cond)
	}

	if filter.Limit > 0 {
		sel = sel.Limit(filter.Limit).Offset(filter.Offset)
	}

	query, args, err := sel.OrderBy("created_at DESC").ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []entities.Usuario
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := count.ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, user *entities.Usuario) error {
	query := `
		UPDATE usuarios
		SET nombre = $1, apellido = $2, carnet_rfid = $3, rol = $4, foto_url = $5,
		    activo = $6, password_hash = $7, updated_at = CURRENT_TIMESTAMP
		WHERE id = $8
	`
	result, err := r.storage.Exec(ctx, query,
		user.Nombre,
		user.Apellido,
		user.CarnetRfid,
		user.Rol,
		user.FotoURL,
		user.Activo,
		user.PasswordHash,
		user.ID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, id string) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM usuarios WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
