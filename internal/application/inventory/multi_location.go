package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/salon-pro/internal/application/dto"
	"github.com/tu-usuario/salon-pro/internal/domain"
	"github.com/tu-usuario/salon-pro/internal/domain/entity"
	"github.com/tu-usuario/salon-pro/internal/domain/repository"
)

// AdjustMultiLocation fija el stock de un producto en una lista explícita de sedes.
// A diferencia de Adjust, cada entrada trae un valor objetivo (newStock), no un delta.
// Todo o nada: si cualquier sede falla, ninguna escritura queda visible.
func (uc *AdjustStockUseCase) AdjustMultiLocation(ctx context.Context, userID string, in dto.MultiLocationAdjustmentRequest) (*dto.MultiLocationAdjustmentResponse, error) {
	var missing []string
	if in.ProductID == "" {
		missing = append(missing, "productId")
	}
	if len(in.Adjustments) == 0 {
		missing = append(missing, "adjustments")
	}
	if in.Reason == "" {
		missing = append(missing, "reason")
	}
	if len(missing) > 0 {
		return nil, domain.NewValidationError(missing...)
	}
	for i, entry := range in.Adjustments {
		switch {
		case entry.LocationID == "":
			return nil, domain.NewValidationError(fmt.Sprintf("adjustments[%d].locationId", i))
		case entry.NewStock == nil || *entry.NewStock < 0:
			return nil, domain.NewValidationError(fmt.Sprintf("adjustments[%d].newStock", i))
		case entry.Operation != entity.AdjustmentTypeAdd &&
			entry.Operation != entity.AdjustmentTypeRemove &&
			entry.Operation != entity.AdjustmentTypeSet:
			return nil, domain.NewValidationError(fmt.Sprintf("adjustments[%d].operation", i))
		}
	}

	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.NotFoundError{Resource: "product", IDs: []string{in.ProductID}}
	}

	// Todas las sedes referenciadas deben existir y estar activas; cualquier
	// faltante rechaza el lote completo antes de escribir nada.
	ids := make([]string, 0, len(in.Adjustments))
	for _, entry := range in.Adjustments {
		ids = append(ids, entry.LocationID)
	}
	locations, err := uc.locationRepo.GetActiveByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Location, len(locations))
	for _, loc := range locations {
		byID[loc.ID] = loc
	}
	var notFound []string
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			notFound = append(notFound, id)
		}
	}
	if len(notFound) > 0 {
		return nil, &domain.NotFoundError{Resource: "location", IDs: notFound}
	}

	now := time.Now()
	results := make([]dto.LocationAdjustmentResult, 0, len(in.Adjustments))
	var summary dto.MultiLocationSummary

	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		auditRepo repository.AuditRepository,
		_ repository.LocationRepository,
	) error {
		for _, entry := range in.Adjustments {
			stock, err := stockRepo.GetForUpdate(ctx, in.ProductID, entry.LocationID)
			if err != nil {
				return err
			}
			previous := stock.Quantity
			target := *entry.NewStock

			stock.Quantity = target
			stock.UpdatedAt = now
			if err := stockRepo.Upsert(ctx, stock); err != nil {
				return err
			}
			change := target - previous
			magnitude := change
			if magnitude < 0 {
				magnitude = -magnitude
			}
			if err := auditRepo.Create(ctx, &entity.AuditRecord{
				ID:             uuid.New().String(),
				ProductID:      in.ProductID,
				LocationID:     entry.LocationID,
				AdjustmentType: entry.Operation,
				Quantity:       magnitude,
				PreviousStock:  previous,
				NewStock:       target,
				Reason:         in.Reason,
				Notes:          in.Notes,
				CreatedBy:      userID,
				CreatedAt:      now,
			}); err != nil {
				return err
			}

			results = append(results, dto.LocationAdjustmentResult{
				LocationID:    entry.LocationID,
				LocationName:  byID[entry.LocationID].Name,
				PreviousStock: previous,
				NewStock:      target,
				Change:        change,
				Operation:     entry.Operation,
			})
			summary.TotalPreviousStock += previous
			summary.TotalNewStock += target
			summary.TotalChange += change
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.MultiLocationAdjustmentResponse{
		Success:     true,
		Message:     fmt.Sprintf("stock ajustado en %d sedes", len(results)),
		Adjustments: results,
		Summary:     summary,
	}, nil
}
