package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/salon-pro/internal/domain"
	"github.com/tu-usuario/salon-pro/internal/domain/entity"
	"github.com/tu-usuario/salon-pro/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación de LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

func (r *LocationRepo) Create(ctx context.Context, location *entity.Location) error {
	query := `
		INSERT INTO locations (id, name, address, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		location.ID, location.Name, location.Address, location.Active,
		location.CreatedAt, location.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	query := `
		SELECT id, name, address, active, created_at, updated_at
		FROM locations WHERE id = $1`
	var l entity.Location
	err := r.q.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.Name, &l.Address, &l.Active, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// GetActiveByIDs devuelve solo las sedes activas entre los IDs dados.
func (r *LocationRepo) GetActiveByIDs(ctx context.Context, ids []string) ([]*entity.Location, error) {
	query := `
		SELECT id, name, address, active, created_at, updated_at
		FROM locations WHERE id = ANY($1) AND active`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get locations by ids: %w", err)
	}
	defer rows.Close()
	return scanLocations(rows)
}

func (r *LocationRepo) ListActive(ctx context.Context) ([]*entity.Location, error) {
	query := `
		SELECT id, name, address, active, created_at, updated_at
		FROM locations WHERE active ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active locations: %w", err)
	}
	defer rows.Close()
	return scanLocations(rows)
}

// ListQualifying sedes activas con al menos una fila de stock registrada.
// Las sedes recién creadas sin historial quedan fuera del bulk add.
func (r *LocationRepo) ListQualifying(ctx context.Context) ([]*entity.Location, error) {
	query := `
		SELECT l.id, l.name, l.address, l.active, l.created_at, l.updated_at
		FROM locations l
		WHERE l.active
		  AND EXISTS (SELECT 1 FROM stock s WHERE s.location_id = l.id)
		ORDER BY l.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list qualifying locations: %w", err)
	}
	defer rows.Close()
	return scanLocations(rows)
}

func (r *LocationRepo) List(ctx context.Context, limit, offset int) ([]*entity.Location, error) {
	query := `
		SELECT id, name, address, active, created_at, updated_at
		FROM locations ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	return scanLocations(rows)
}

func (r *LocationRepo) Update(ctx context.Context, location *entity.Location) error {
	query := `
		UPDATE locations
		SET name = $2, address = $3, active = $4, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, location.ID, location.Name, location.Address, location.Active)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LocationRepo) Deactivate(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `UPDATE locations SET active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanLocations(rows pgx.Rows) ([]*entity.Location, error) {
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Address, &l.Active, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
