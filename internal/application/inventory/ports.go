package inventory

import (
	"context"

	"github.com/tu-usuario/salon-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad: el stock y su registro de auditoría se
// confirman juntos o se revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		auditRepo repository.AuditRepository,
		locationRepo repository.LocationRepository,
	) error) error
}
