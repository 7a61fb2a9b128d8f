package repository

import (
	"context"

	"github.com/tu-usuario/salon-pro/internal/domain/entity"
)

// LocationRepository puerto de persistencia para sedes.
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	// GetActiveByIDs devuelve solo las sedes activas entre los IDs dados.
	// El caller compara contra su lista para detectar faltantes.
	GetActiveByIDs(ctx context.Context, ids []string) ([]*entity.Location, error)
	ListActive(ctx context.Context) ([]*entity.Location, error)
	// ListQualifying devuelve las sedes activas que ya tienen al menos una fila de stock.
	// Excluye sedes recién creadas sin historial (política del bulk add).
	ListQualifying(ctx context.Context) ([]*entity.Location, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Location, error)
	Update(ctx context.Context, location *entity.Location) error
	Deactivate(ctx context.Context, id string) error
}
