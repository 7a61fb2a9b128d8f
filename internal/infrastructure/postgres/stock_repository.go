package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/salon-pro/internal/domain/entity"
	"github.com/tu-usuario/salon-pro/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un producto en una sede.
// Si el par nunca ha tenido stock devuelve una fila sintética con cantidad 0.
func (r *StockRepo) Get(ctx context.Context, productID, locationID string) (*entity.Stock, error) {
	query := `
		SELECT product_id, location_id, quantity, updated_at
		FROM stock WHERE product_id = $1 AND location_id = $2`
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, productID, locationID).Scan(
		&s.ProductID, &s.LocationID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ProductID: productID, LocationID: locationID, Quantity: 0}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate materializa la fila si no existe (cantidad 0) y la bloquea
// (SELECT FOR UPDATE). Crear antes de bloquear es obligatorio: FOR UPDATE sobre
// una fila ausente no bloquea nada y dos primeros ajustes concurrentes del
// mismo par leerían ambos cantidad 0, perdiéndose uno al hacer upsert.
func (r *StockRepo) GetForUpdate(ctx context.Context, productID, locationID string) (*entity.Stock, error) {
	insert := `
		INSERT INTO stock (product_id, location_id, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (product_id, location_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, insert, productID, locationID); err != nil {
		return nil, fmt.Errorf("ensure stock row: %w", err)
	}
	query := `
		SELECT product_id, location_id, quantity, updated_at
		FROM stock WHERE product_id = $1 AND location_id = $2
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, productID, locationID).Scan(
		&s.ProductID, &s.LocationID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad en stock (por producto y sede).
func (r *StockRepo) Upsert(ctx context.Context, stock *entity.Stock) error {
	query := `
		INSERT INTO stock (product_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(ctx, query, stock.ProductID, stock.LocationID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// UpsertBatch aplica todos los upserts en un solo round-trip (pgx.Batch).
func (r *StockRepo) UpsertBatch(ctx context.Context, stocks []*entity.Stock) error {
	if len(stocks) == 0 {
		return nil
	}
	query := `
		INSERT INTO stock (product_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	batch := &pgx.Batch{}
	for _, s := range stocks {
		batch.Queue(query, s.ProductID, s.LocationID, s.Quantity)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range stocks {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("upsert stock batch: %w", err)
		}
	}
	return nil
}

// ListByProductsAndLocations carga las filas existentes para los conjuntos dados en una consulta.
func (r *StockRepo) ListByProductsAndLocations(ctx context.Context, productIDs, locationIDs []string) ([]*entity.Stock, error) {
	query := `
		SELECT product_id, location_id, quantity, updated_at
		FROM stock WHERE product_id = ANY($1) AND location_id = ANY($2)`
	rows, err := r.q.Query(ctx, query, productIDs, locationIDs)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ProductID, &s.LocationID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// SummaryByLocation agrega el stock por sede activa: unidades totales, conteo de
// productos retail/professional con fila de stock y valor retail (quantity * price).
func (r *StockRepo) SummaryByLocation(ctx context.Context) ([]*repository.LocationStockSummary, error) {
	query := `
		SELECT l.id, l.name,
			COALESCE(SUM(s.quantity), 0),
			COUNT(*) FILTER (WHERE p.type = 'retail'),
			COUNT(*) FILTER (WHERE p.type = 'professional'),
			COALESCE(SUM(s.quantity * p.price) FILTER (WHERE p.type = 'retail'), 0)
		FROM locations l
		LEFT JOIN stock s ON s.location_id = l.id
		LEFT JOIN products p ON p.id = s.product_id
		WHERE l.active
		GROUP BY l.id, l.name
		ORDER BY l.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("summary by location: %w", err)
	}
	defer rows.Close()
	var list []*repository.LocationStockSummary
	for rows.Next() {
		var row repository.LocationStockSummary
		if err := rows.Scan(&row.LocationID, &row.LocationName, &row.TotalUnits,
			&row.RetailProducts, &row.ProfessionalProducts, &row.RetailValue); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

// ListLinesByLocation filas de stock con datos del producto para el reporte de una sede.
func (r *StockRepo) ListLinesByLocation(ctx context.Context, locationID string) ([]*repository.StockLine, error) {
	query := `
		SELECT p.sku, p.name, p.type, s.quantity, p.price
		FROM stock s
		JOIN products p ON p.id = s.product_id
		WHERE s.location_id = $1
		ORDER BY p.name`
	rows, err := r.q.Query(ctx, query, locationID)
	if err != nil {
		return nil, fmt.Errorf("list stock lines: %w", err)
	}
	defer rows.Close()
	var list []*repository.StockLine
	for rows.Next() {
		var line repository.StockLine
		if err := rows.Scan(&line.SKU, &line.ProductName, &line.ProductType, &line.Quantity, &line.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan stock line: %w", err)
		}
		list = append(list, &line)
	}
	return list, rows.Err()
}
