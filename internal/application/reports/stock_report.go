package reports

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/salon-pro/internal/domain"
	"github.com/tu-usuario/salon-pro/internal/domain/entity"
	"github.com/tu-usuario/salon-pro/internal/domain/repository"
	"github.com/tu-usuario/salon-pro/pkg/money"
)

// StockReportData datos listos para renderizar el reporte de una sede.
type StockReportData struct {
	Location       *entity.Location
	Lines          []*repository.StockLine
	TotalUnits     int
	TotalValue     decimal.Decimal
	FormattedTotal string
	FormatValue    func(decimal.Decimal) string
}

// StockReportGenerator puerto de renderizado del reporte (implementado con Maroto).
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, data *StockReportData) ([]byte, error)
}

// StockReportUseCase arma el reporte PDF de stock de una sede.
type StockReportUseCase struct {
	locationRepo repository.LocationRepository
	stockRepo    repository.StockRepository
	generator    StockReportGenerator
	formatter    *money.Formatter
}

// NewStockReportUseCase construye el caso de uso.
func NewStockReportUseCase(
	locationRepo repository.LocationRepository,
	stockRepo repository.StockRepository,
	generator StockReportGenerator,
	formatter *money.Formatter,
) *StockReportUseCase {
	return &StockReportUseCase{
		locationRepo: locationRepo,
		stockRepo:    stockRepo,
		generator:    generator,
		formatter:    formatter,
	}
}

// Generate produce el PDF con el stock actual de la sede y su valoración.
func (uc *StockReportUseCase) Generate(ctx context.Context, locationID string) ([]byte, error) {
	location, err := uc.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, &domain.NotFoundError{Resource: "location", IDs: []string{locationID}}
	}
	lines, err := uc.stockRepo.ListLinesByLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}

	data := &StockReportData{
		Location:   location,
		Lines:      lines,
		TotalValue: decimal.Zero,
	}
	for _, line := range lines {
		data.TotalUnits += line.Quantity
		data.TotalValue = data.TotalValue.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	if uc.formatter != nil {
		data.FormattedTotal = uc.formatter.Format(data.TotalValue)
		data.FormatValue = uc.formatter.Format
	}
	return uc.generator.GenerateStockReport(ctx, data)
}
