package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/salon-pro/internal/application/dto"
	"github.com/tu-usuario/salon-pro/internal/domain"
	"github.com/tu-usuario/salon-pro/internal/domain/entity"
	"github.com/tu-usuario/salon-pro/internal/domain/repository"
)

// BulkAddStock suma stockToAdd a todos los productos activos en todas las sedes
// calificadas (activas y con al menos una fila de stock previa). Es el camino más
// pesado (productos x sedes filas tocadas), por eso la transacción corre con timeout
// explícito y las escrituras van en batch.
func (uc *AdjustStockUseCase) BulkAddStock(ctx context.Context, userID string, stockToAdd int) (*dto.BulkAddStockResult, error) {
	if stockToAdd <= 0 {
		return nil, domain.NewValidationError("stockToAdd")
	}

	locations, err := uc.locationRepo.ListQualifying(ctx)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(locations) == 0 || len(products) == 0 {
		return &dto.BulkAddStockResult{Updates: []dto.BulkUpdateEntry{}, Locations: []string{}}, nil
	}

	locationIDs := make([]string, 0, len(locations))
	locationNames := make([]string, 0, len(locations))
	for _, loc := range locations {
		locationIDs = append(locationIDs, loc.ID)
		locationNames = append(locationNames, loc.Name)
	}
	productIDs := make([]string, 0, len(products))
	for _, p := range products {
		productIDs = append(productIDs, p.ID)
	}

	ctx, cancel := context.WithTimeout(ctx, uc.policy.BulkTimeout)
	defer cancel()

	now := time.Now()
	updates := make([]dto.BulkUpdateEntry, 0, len(products)*len(locations))

	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		auditRepo repository.AuditRepository,
		locationRepo repository.LocationRepository,
	) error {
		// Revalida dentro de la transacción: una sede pudo desactivarse entre
		// la consulta inicial y este punto.
		stillActive, err := locationRepo.GetActiveByIDs(ctx, locationIDs)
		if err != nil {
			return err
		}
		activeSet := make(map[string]bool, len(stillActive))
		for _, loc := range stillActive {
			activeSet[loc.ID] = true
		}
		var vanished []string
		for _, id := range locationIDs {
			if !activeSet[id] {
				vanished = append(vanished, id)
			}
		}
		if len(vanished) > 0 {
			return &domain.ConsistencyError{LocationIDs: vanished}
		}

		// Una sola consulta para todas las filas existentes (evita N+1)
		existing, err := stockRepo.ListByProductsAndLocations(ctx, productIDs, locationIDs)
		if err != nil {
			return err
		}
		current := make(map[string]int, len(existing))
		for _, s := range existing {
			current[s.ProductID+"|"+s.LocationID] = s.Quantity
		}

		stocks := make([]*entity.Stock, 0, len(products)*len(locations))
		records := make([]*entity.AuditRecord, 0, len(products)*len(locations))
		for _, p := range products {
			for _, loc := range locations {
				previous := current[p.ID+"|"+loc.ID]
				next := previous + stockToAdd
				stocks = append(stocks, &entity.Stock{
					ProductID:  p.ID,
					LocationID: loc.ID,
					Quantity:   next,
					UpdatedAt:  now,
				})
				records = append(records, &entity.AuditRecord{
					ID:             uuid.New().String(),
					ProductID:      p.ID,
					LocationID:     loc.ID,
					AdjustmentType: entity.AdjustmentTypeAdd,
					Quantity:       stockToAdd,
					PreviousStock:  previous,
					NewStock:       next,
					Reason:         "bulk add stock",
					CreatedBy:      userID,
					CreatedAt:      now,
				})
				updates = append(updates, dto.BulkUpdateEntry{
					ProductID:     p.ID,
					ProductName:   p.Name,
					LocationID:    loc.ID,
					LocationName:  loc.Name,
					PreviousStock: previous,
					NewStock:      next,
					StockAdded:    stockToAdd,
				})
			}
		}

		if err := stockRepo.UpsertBatch(ctx, stocks); err != nil {
			return err
		}
		return auditRepo.CreateBatch(ctx, records)
	})
	if err != nil {
		return nil, err
	}

	return &dto.BulkAddStockResult{
		ProductsUpdated:  len(products),
		LocationsUpdated: len(locations),
		TotalUpdates:     len(updates),
		Updates:          updates,
		Locations:        locationNames,
	}, nil
}
