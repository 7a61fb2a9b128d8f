package inventory

import (
	"context"

	"github.com/tu-usuario/salon-pro/internal/application/dto"
	"github.com/tu-usuario/salon-pro/internal/domain/repository"
	"github.com/tu-usuario/salon-pro/pkg/money"
)

// StockQueryUseCase lecturas de stock y auditoría (sin transacción; van directo al pool).
type StockQueryUseCase struct {
	stockRepo repository.StockRepository
	auditRepo repository.AuditRepository
	formatter *money.Formatter
}

// NewStockQueryUseCase construye el caso de uso de consultas.
func NewStockQueryUseCase(stockRepo repository.StockRepository, auditRepo repository.AuditRepository, formatter *money.Formatter) *StockQueryUseCase {
	return &StockQueryUseCase{stockRepo: stockRepo, auditRepo: auditRepo, formatter: formatter}
}

// LocationSummaries resumen de stock por sede activa: unidades totales,
// conteo de productos retail/professional y valor retail formateado.
func (uc *StockQueryUseCase) LocationSummaries(ctx context.Context) (*dto.StockSummaryResponse, error) {
	rows, err := uc.stockRepo.SummaryByLocation(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationStockSummaryDTO, 0, len(rows))
	for _, row := range rows {
		item := dto.LocationStockSummaryDTO{
			LocationID:           row.LocationID,
			LocationName:         row.LocationName,
			TotalUnits:           row.TotalUnits,
			RetailProducts:       row.RetailProducts,
			ProfessionalProducts: row.ProfessionalProducts,
			RetailValue:          row.RetailValue,
		}
		if uc.formatter != nil {
			item.RetailValueFormatted = uc.formatter.Format(row.RetailValue)
		}
		items = append(items, item)
	}
	return &dto.StockSummaryResponse{Success: true, Locations: items}, nil
}

// ListAudit devuelve el libro de auditoría filtrado por producto y/o sede,
// más reciente primero.
func (uc *StockQueryUseCase) ListAudit(ctx context.Context, productID, locationID string, limit, offset int) (*dto.AuditListResponse, error) {
	records, err := uc.auditRepo.List(ctx, productID, locationID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuditRecordDTO, 0, len(records))
	for _, r := range records {
		items = append(items, dto.AuditRecordDTO{
			ID:             r.ID,
			ProductID:      r.ProductID,
			LocationID:     r.LocationID,
			AdjustmentType: r.AdjustmentType,
			Quantity:       r.Quantity,
			PreviousStock:  r.PreviousStock,
			NewStock:       r.NewStock,
			Reason:         r.Reason,
			Notes:          r.Notes,
			CreatedBy:      r.CreatedBy,
			CreatedAt:      r.CreatedAt,
		})
	}
	return &dto.AuditListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}
