package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"compuscan/internal/entities"
	apperrors "compuscan/pkg/errors"
	"compuscan/pkg/types"
)

const equipoFields = "id, usuario_id, marca, modelo, serial, tipo, color, descripcion, estado, created_at, updated_at"

type EquipmentRepositoryInterface interface {
	CreateEquipo(ctx context.Context, equipo *entities.Equipo) error
	FindEquipo(ctx context.Context, id string) (*entities.Equipo, error)
	GetEquipos(ctx context.Context, filter types.Filter) ([]entities.Equipo, uint64, error)
	GetEquiposByUsuario(ctx context.Context, usuarioID string) ([]entities.Equipo, error)
	ListAll(ctx context.Context) ([]entities.Equipo, error)
	UpdateEquipo(ctx context.Context, equipo *entities.Equipo) error
	DeleteEquipo(ctx context.Context, id string) error
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentRepository(storage *pgxpool.Pool) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage}
}

func scanEquipo(row pgx.Row) (*entities.Equipo, error) {
	var e entities.Equipo
	err := row.Scan(
		&e.ID,
		&e.UsuarioID,
		&e.Marca,
		&e.Modelo,
		&e.Serial,
		&e.Tipo,
		&e.Color,
		&e.Descripcion,
		&e.Estado,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EquipmentRepository) collectEquipos(ctx context.Context, query string, args ...interface{}) ([]entities.Equipo, error) {
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var equipos []entities.Equipo
	for rows.Next() {
		e, err := scanEquipo(rows)
		if err != nil {
			return nil, err
		}
		equipos = append(equipos, *e)
	}
	return equipos, rows.Err()
}

func (r *EquipmentRepository) CreateEquipo(ctx context.Context, equipo *entities.Equipo) error {
	query := `
		INSERT INTO equipos (id, usuario_id, marca, modelo, serial, tipo, color, descripcion, estado)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`
	return r.storage.QueryRow(ctx, query,
		equipo.ID,
		equipo.UsuarioID,
		equipo.Marca,
		equipo.Modelo,
		equipo.Serial,
		equipo.Tipo,
		equipo.Color,
		equipo.Descripcion,
		equipo.Estado,
	).Scan(&equipo.CreatedAt, &equipo.UpdatedAt)
}

func (r *EquipmentRepository) FindEquipo(ctx context.Context, id string) (*entities.Equipo, error) {
	query := fmt.Sprintf("SELECT %s FROM equipos WHERE id = $1", equipoFields)
	return scanEquipo(r.storage.QueryRow(ctx, query, id))
}

func (r *EquipmentRepository) GetEquipos(ctx context.Context, filter types.Filter) ([]entities.Equipo, uint64, error) {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	sel := builder.Select(equipoFields).From("equipos")
	count := builder.Select("COUNT(*)").From("equipos")

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		cond := sq.Or{
			sq.ILike{"marca": like},
			sq.ILike{"modelo": like},
			sq.ILike{"serial": like},
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

	equipos, err := r.collectEquipos(ctx, query, args...)
	if err != nil {
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

	return equipos, total, nil
}

func (r *EquipmentRepository) GetEquiposByUsuario(ctx context.Context, usuarioID string) ([]entities.Equipo, error) {
	query := fmt.Sprintf("SELECT %s FROM equipos WHERE usuario_id = $1 ORDER BY created_at DESC", equipoFields)
	return r.collectEquipos(ctx, query, usuarioID)
}

func (r *EquipmentRepository) ListAll(ctx context.Context) ([]entities.Equipo, error) {
	query := fmt.Sprintf("SELECT %s FROM equipos", equipoFields)
	return r.collectEquipos(ctx, query)
}

func (r *EquipmentRepository) UpdateEquipo(ctx context.Context, equipo *entities.Equipo) error {
	query := `
		UPDATE equipos
		SET marca = $1, modelo = $2, serial = $3, tipo = $4, color = $5,
		    descripcion = $6, estado = $7, updated_at = CURRENT_TIMESTAMP
		WHERE id = $8
	`
	result, err := r.storage.Exec(ctx, query,
		equipo.Marca,
		equipo.Modelo,
		equipo.Serial,
		equipo.Tipo,
		equipo.Color,
		equipo.Descripcion,
		equipo.Estado,
		equipo.ID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) DeleteEquipo(ctx context.Context, id string) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM equipos WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
