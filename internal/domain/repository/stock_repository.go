package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/salon-pro/internal/domain/entity"
)

// LocationStockSummary fila agregada de stock por sede (observabilidad).
type LocationStockSummary struct {
	LocationID           string
	LocationName         string
	TotalUnits           int
	RetailProducts       int
	ProfessionalProducts int
	RetailValue          decimal.Decimal // sum(quantity * price) de productos retail
}

// StockLine fila de stock con datos del producto (reportes por sede).
type StockLine struct {
	SKU         string
	ProductName string
	ProductType string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// StockRepository puerto de persistencia para el stock por producto y sede.
type StockRepository interface {
	Get(ctx context.Context, productID, locationID string) (*entity.Stock, error)
	// GetForUpdate crea la fila con cantidad 0 si el par nunca tuvo stock y la
	// bloquea (SELECT ... FOR UPDATE). La creación previa al bloqueo cierra la
	// carrera entre dos primeros ajustes concurrentes del mismo par.
	GetForUpdate(ctx context.Context, productID, locationID string) (*entity.Stock, error)
	Upsert(ctx context.Context, stock *entity.Stock) error
	// UpsertBatch aplica todos los upserts en un solo batch (camino bulk).
	UpsertBatch(ctx context.Context, stocks []*entity.Stock) error
	// ListByProductsAndLocations carga en una sola consulta las filas existentes
	// para los conjuntos dados (evita N+1 en el bulk).
	ListByProductsAndLocations(ctx context.Context, productIDs, locationIDs []string) ([]*entity.Stock, error)
	SummaryByLocation(ctx context.Context) ([]*LocationStockSummary, error)
	ListLinesByLocation(ctx context.Context, locationID string) ([]*StockLine, error)
}
