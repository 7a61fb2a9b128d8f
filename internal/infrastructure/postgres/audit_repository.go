package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/salon-pro/internal/domain/entity"
	"github.com/tu-usuario/salon-pro/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo implementación de AuditRepository sobre PostgreSQL.
// El libro de auditoría es append-only: no hay updates ni deletes.
type AuditRepo struct {
	q Querier
}

func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

const insertAuditSQL = `
	INSERT INTO stock_audit (id, product_id, location_id, adjustment_type, quantity,
		previous_stock, new_stock, reason, notes, created_by, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

// Create inserta un registro de auditoría.
func (r *AuditRepo) Create(ctx context.Context, record *entity.AuditRecord) error {
	_, err := r.q.Exec(ctx, insertAuditSQL,
		record.ID, record.ProductID, record.LocationID, record.AdjustmentType,
		record.Quantity, record.PreviousStock, record.NewStock,
		record.Reason, record.Notes, record.CreatedBy, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit: %w", err)
	}
	return nil
}

// CreateBatch inserta todos los registros en un solo round-trip (camino bulk).
func (r *AuditRepo) CreateBatch(ctx context.Context, records []*entity.AuditRecord) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(insertAuditSQL,
			rec.ID, rec.ProductID, rec.LocationID, rec.AdjustmentType,
			rec.Quantity, rec.PreviousStock, rec.NewStock,
			rec.Reason, rec.Notes, rec.CreatedBy, rec.CreatedAt,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range records {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert audit batch: %w", err)
		}
	}
	return nil
}

// List devuelve registros más recientes primero. Filtros vacíos no filtran.
func (r *AuditRepo) List(ctx context.Context, productID, locationID string, limit, offset int) ([]*entity.AuditRecord, error) {
	query := `
		SELECT id, product_id, location_id, adjustment_type, quantity,
			previous_stock, new_stock, reason, notes, created_by, created_at
		FROM stock_audit
		WHERE ($1 = '' OR product_id = $1)
		  AND ($2 = '' OR location_id = $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, productID, locationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditRecord
	for rows.Next() {
		var rec entity.AuditRecord
		if err := rows.Scan(&rec.ID, &rec.ProductID, &rec.LocationID, &rec.AdjustmentType,
			&rec.Quantity, &rec.PreviousStock, &rec.NewStock,
			&rec.Reason, &rec.Notes, &rec.CreatedBy, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}
