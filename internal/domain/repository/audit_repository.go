package repository

import (
	"context"

	"github.com/tu-usuario/salon-pro/internal/domain/entity"
)

// AuditRepository puerto del libro de auditoría de stock (append-only).
type AuditRepository interface {
	Create(ctx context.Context, record *entity.AuditRecord) error
	// CreateBatch inserta todos los registros en un solo batch (camino bulk).
	CreateBatch(ctx context.Context, records []*entity.AuditRecord) error
	// List devuelve registros más recientes primero; productID y locationID vacíos no filtran.
	List(ctx context.Context, productID, locationID string, limit, offset int) ([]*entity.AuditRecord, error)
}
