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

// Policy políticas del motor de ajustes.
type Policy struct {
	// AllowNegativeStock permite persistir stock negativo en un "remove".
	// Con false (por defecto) el ajuste se rechaza con InsufficientStockError.
	AllowNegativeStock bool
	// BulkTimeout acota la transacción del bulk add.
	BulkTimeout time.Duration
}

// AdjustStockUseCase aplica ajustes de stock por sede de forma transaccional:
// bloqueo de fila (SELECT FOR UPDATE), upsert del stock y registro de auditoría
// en la misma transacción (Commit o Rollback conjuntos).
type AdjustStockUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	policy       Policy
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	policy Policy,
) *AdjustStockUseCase {
	if policy.BulkTimeout <= 0 {
		policy.BulkTimeout = 30 * time.Second
	}
	return &AdjustStockUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		policy:       policy,
	}
}

// Adjust aplica un ajuste add/remove sobre un par (producto, sede).
// Valida todo antes de abrir la transacción: una petición inválida jamás
// escribe stock ni auditoría, sin importar cuántas veces se reintente.
func (uc *AdjustStockUseCase) Adjust(ctx context.Context, userID string, in dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	var missing []string
	if in.ProductID == "" {
		missing = append(missing, "productId")
	}
	if in.LocationID == "" {
		missing = append(missing, "locationId")
	}
	if in.Quantity == nil {
		missing = append(missing, "quantity")
	}
	if in.AdjustmentType == "" {
		missing = append(missing, "adjustmentType")
	}
	if in.Reason == "" {
		missing = append(missing, "reason")
	}
	if len(missing) > 0 {
		return nil, domain.NewValidationError(missing...)
	}
	if in.AdjustmentType != entity.AdjustmentTypeAdd && in.AdjustmentType != entity.AdjustmentTypeRemove {
		return nil, domain.NewValidationError("adjustmentType")
	}
	quantity := *in.Quantity
	if quantity <= 0 {
		return nil, domain.NewValidationError("quantity")
	}

	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.NotFoundError{Resource: "product", IDs: []string{in.ProductID}}
	}
	location, err := uc.locationRepo.GetByID(ctx, in.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, &domain.NotFoundError{Resource: "location", IDs: []string{in.LocationID}}
	}

	now := time.Now()
	var previous, next int

	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		auditRepo repository.AuditRepository,
		_ repository.LocationRepository,
	) error {
		// Bloquea la fila para cerrar la carrera read-modify-write entre ajustes concurrentes
		stock, err := stockRepo.GetForUpdate(ctx, in.ProductID, in.LocationID)
		if err != nil {
			return err
		}
		previous = stock.Quantity
		if in.AdjustmentType == entity.AdjustmentTypeAdd {
			next = previous + quantity
		} else {
			next = previous - quantity
		}
		if next < 0 && !uc.policy.AllowNegativeStock {
			return &domain.InsufficientStockError{CurrentStock: previous, RequestedQuantity: quantity}
		}

		stock.Quantity = next
		stock.UpdatedAt = now
		if err := stockRepo.Upsert(ctx, stock); err != nil {
			return err
		}
		return auditRepo.Create(ctx, &entity.AuditRecord{
			ID:             uuid.New().String(),
			ProductID:      in.ProductID,
			LocationID:     in.LocationID,
			AdjustmentType: in.AdjustmentType,
			Quantity:       quantity,
			PreviousStock:  previous,
			NewStock:       next,
			Reason:         in.Reason,
			Notes:          in.Notes,
			CreatedBy:      userID,
			CreatedAt:      now,
		})
	})
	if err != nil {
		return nil, err
	}

	return &dto.AdjustStockResponse{
		Success:       true,
		Message:       "ajuste de stock aplicado",
		PreviousStock: previous,
		NewStock:      next,
		Adjustment:    next - previous,
		AuditTrail:    true,
	}, nil
}
