package repository

import (
	"context"

	"github.com/tu-usuario/salon-pro/internal/domain/entity"
)

// ProductRepository puerto de persistencia para productos del catálogo.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// ListActive devuelve todos los productos activos (sin paginar; lo usa el bulk).
	ListActive(ctx context.Context) ([]*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	// Deactivate marca el producto como inactivo (soft delete; el stock y la auditoría se conservan).
	Deactivate(ctx context.Context, id string) error
}
