package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/salon-pro/internal/application/auth"
	"github.com/tu-usuario/salon-pro/internal/application/inventory"
	"github.com/tu-usuario/salon-pro/internal/application/reports"
	"github.com/tu-usuario/salon-pro/internal/application/usecase"
	"github.com/tu-usuario/salon-pro/internal/domain/entity"
	"github.com/tu-usuario/salon-pro/internal/infrastructure/cache"
	"github.com/tu-usuario/salon-pro/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC         *usecase.ProductUseCase
	LocationUC        *usecase.LocationUseCase
	AdjustUC          *inventory.AdjustStockUseCase
	QueryUC           *inventory.StockQueryUseCase
	ReportUC          *reports.StockReportUseCase
	AuthUC            *auth.AuthUseCase
	SummaryCache      *cache.SummaryCache
	JWTSecret         string
	DefaultStockToAdd int
	Log               *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Escrituras de catálogo y stock: solo admin y manager
	canWrite := RequireRole(entity.RoleAdmin, entity.RoleManager)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Log)
	products.Post("/", canWrite, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", canWrite, productHandler.Update)
	products.Delete("/:id", canWrite, productHandler.Deactivate)

	// Locations (protegido)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC, deps.Log)
	locations.Post("/", canWrite, locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", canWrite, locationHandler.Update)
	locations.Delete("/:id", canWrite, locationHandler.Deactivate)

	// Inventory (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.AdjustUC, deps.QueryUC, deps.ReportUC, deps.SummaryCache, deps.DefaultStockToAdd, deps.Log)
	invGroup.Get("/adjust", inventoryHandler.AdjustInfo)
	invGroup.Post("/adjust", canWrite, inventoryHandler.Adjust)
	invGroup.Get("/adjust-multi-location", inventoryHandler.AdjustMultiLocationInfo)
	invGroup.Post("/adjust-multi-location", canWrite, inventoryHandler.AdjustMultiLocation)
	invGroup.Get("/add-stock-all-locations", inventoryHandler.StockSummary)
	// Bulk add toca todos los productos en todas las sedes: solo admin
	invGroup.Post("/add-stock-all-locations", RequireRole(entity.RoleAdmin), inventoryHandler.BulkAddStock)
	invGroup.Get("/audit", inventoryHandler.ListAudit)
	invGroup.Get("/locations/:id/report", inventoryHandler.StockReportPDF)
}
