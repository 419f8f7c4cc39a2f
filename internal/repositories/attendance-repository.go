package repositories

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"compuscan/internal/entities"
	apperrors "compuscan/pkg/errors"
)

const asistenciaFields = "id, usuario_id, carnet_rfid, tipo, fecha, estado"

// AttendanceRepositoryInterface is the append-only ledger. There is no
// update or delete: events are immutable once written.
type AttendanceRepositoryInterface interface {
	Append(ctx context.Context, asistencia *entities.Asistencia) error
	// ListByUser returns the user's events in whatever order the store
	// produces them; ordering is the caller's job.
	ListByUser(ctx context.Context, usuarioID string) ([]entities.Asistencia, error)
	LastByUser(ctx context.Context, usuarioID string) (*entities.Asistencia, error)
	ListInRange(ctx context.Context, desde, hasta time.Time) ([]entities.Asistencia, error)
	ListLatest(ctx context.Context, limit uint64) ([]entities.Asistencia, error)
	ListAll(ctx context.Context) ([]entities.Asistencia, error)
}

type AttendanceRepository struct {
	storage *pgxpool.Pool
}

func NewAttendanceRepository(storage *pgxpool.Pool) AttendanceRepositoryInterface {
	return &AttendanceRepository{storage: storage}
}

func scanAsistencia(row pgx.Row) (*entities.Asistencia, error) {
	var a entities.Asistencia
	err := row.Scan(
		&a.ID,
		&a.UsuarioID,
		&a.CarnetRfid,
		&a.Tipo,
		&a.Fecha,
		&a.Estado,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AttendanceRepository) collect(ctx context.Context, query string, args ...interface{}) ([]entities.Asistencia, error) {
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var asistencias []entities.Asistencia
	for rows.Next() {
		a, err := scanAsistencia(rows)
		if err != nil {
			return nil, err
		}
		asistencias = append(asistencias, *a)
	}
	return asistencias, rows.Err()
}

// Append inserts one immutable event. Fecha is assigned by the store
// (column default) and read back, so two racing scans get store-ordered
// timestamps regardless of client clocks.
func (r *AttendanceRepository) Append(ctx context.Context, asistencia *entities.Asistencia) error {
	query := `
		INSERT INTO asistencias (id, usuario_id, carnet_rfid, tipo, estado)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING fecha
	`
	return r.storage.QueryRow(ctx, query,
		asistencia.ID,
		asistencia.UsuarioID,
		asistencia.CarnetRfid,
		asistencia.Tipo,
		asistencia.Estado,
	).Scan(&asistencia.Fecha)
}

func (r *AttendanceRepository) ListByUser(ctx context.Context, usuarioID string) ([]entities.Asistencia, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(asistenciaFields).
		From("asistencias").
		Where(sq.Eq{"usuario_id": usuarioID}).
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, query, args...)
}

func (r *AttendanceRepository) LastByUser(ctx context.Context, usuarioID string) (*entities.Asistencia, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(asistenciaFields).
		From("asistencias").
		Where(sq.Eq{"usuario_id": usuarioID}).
		OrderBy("fecha DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanAsistencia(r.storage.QueryRow(ctx, query, args...))
}

func (r *AttendanceRepository) ListInRange(ctx context.Context, desde, hasta time.Time) ([]entities.Asistencia, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(asistenciaFields).
		From("asistencias").
		Where(sq.GtOrEq{"fecha": desde}).
		Where(sq.LtOrEq{"fecha": hasta}).
		OrderBy("fecha DESC").
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, query, args...)
}

func (r *AttendanceRepository) ListLatest(ctx context.Context, limit uint64) ([]entities.Asistencia, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(asistenciaFields).
		From("asistencias").
		OrderBy("fecha DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, query, args...)
}

// ListAll feeds the admin aggregation, which reduces in application code.
// A full scan is fine at a single institution's volume.
func (r *AttendanceRepository) ListAll(ctx context.Context) ([]entities.Asistencia, error) {
	query, _, err := sq.Select(asistenciaFields).From("asistencias").ToSql()
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, query)
}
