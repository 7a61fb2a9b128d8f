package inventory_test

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/salon-pro/internal/application/inventory"
	"github.com/tu-usuario/salon-pro/internal/domain/entity"
	"github.com/tu-usuario/salon-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria — replican la semántica de los adaptadores de PostgreSQL
// (fila de stock ausente = cantidad 0, rollback total si el callback falla)
// ──────────────────────────────────────────────────────────────────────────────

type stockKey struct{ productID, locationID string }

// memStore estado compartido de los fakes: stock, auditoría, catálogo y sedes.
type memStore struct {
	stocks    map[stockKey]int
	audit     []*entity.AuditRecord
	products  map[string]*entity.Product
	locations map[string]*entity.Location

	// failAuditAfter > 0 hace fallar el N-ésimo insert de auditoría (inyección de fallos).
	failAuditAfter int
	auditInserts   int
}

func newMemStore() *memStore {
	return &memStore{
		stocks:    make(map[stockKey]int),
		products:  make(map[string]*entity.Product),
		locations: make(map[string]*entity.Location),
	}
}

func (s *memStore) addProduct(id, name, productType string, price int64) {
	s.products[id] = &entity.Product{
		ID: id, SKU: "SKU-" + id, Name: name, Type: productType,
		Price: decimal.NewFromInt(price), Active: true,
	}
}

func (s *memStore) addLocation(id, name string) {
	s.locations[id] = &entity.Location{ID: id, Name: name, Active: true}
}

func (s *memStore) setStock(productID, locationID string, quantity int) {
	s.stocks[stockKey{productID, locationID}] = quantity
}

func (s *memStore) stock(productID, locationID string) int {
	return s.stocks[stockKey{productID, locationID}]
}

func (s *memStore) totalStock() int {
	total := 0
	for _, q := range s.stocks {
		total += q
	}
	return total
}

// snapshot copia el estado mutable para poder simular rollback.
func (s *memStore) snapshot() (map[stockKey]int, []*entity.AuditRecord) {
	stocks := make(map[stockKey]int, len(s.stocks))
	for k, v := range s.stocks {
		stocks[k] = v
	}
	audit := make([]*entity.AuditRecord, len(s.audit))
	copy(audit, s.audit)
	return stocks, audit
}

// ── StockRepository ───────────────────────────────────────────────────────────

type fakeStockRepo struct{ store *memStore }

var _ repository.StockRepository = (*fakeStockRepo)(nil)

func (r *fakeStockRepo) Get(_ context.Context, productID, locationID string) (*entity.Stock, error) {
	return &entity.Stock{
		ProductID: productID, LocationID: locationID,
		Quantity: r.store.stock(productID, locationID),
	}, nil
}

// GetForUpdate materializa la fila con cantidad 0 igual que el adaptador real.
func (r *fakeStockRepo) GetForUpdate(ctx context.Context, productID, locationID string) (*entity.Stock, error) {
	key := stockKey{productID, locationID}
	if _, ok := r.store.stocks[key]; !ok {
		r.store.stocks[key] = 0
	}
	return r.Get(ctx, productID, locationID)
}

func (r *fakeStockRepo) Upsert(_ context.Context, stock *entity.Stock) error {
	r.store.setStock(stock.ProductID, stock.LocationID, stock.Quantity)
	return nil
}

func (r *fakeStockRepo) UpsertBatch(ctx context.Context, stocks []*entity.Stock) error {
	for _, s := range stocks {
		if err := r.Upsert(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeStockRepo) ListByProductsAndLocations(_ context.Context, productIDs, locationIDs []string) ([]*entity.Stock, error) {
	var list []*entity.Stock
	for _, p := range productIDs {
		for _, l := range locationIDs {
			if q, ok := r.store.stocks[stockKey{p, l}]; ok {
				list = append(list, &entity.Stock{ProductID: p, LocationID: l, Quantity: q})
			}
		}
	}
	return list, nil
}

func (r *fakeStockRepo) SummaryByLocation(_ context.Context) ([]*repository.LocationStockSummary, error) {
	byLocation := make(map[string]*repository.LocationStockSummary)
	for key, quantity := range r.store.stocks {
		loc := r.store.locations[key.locationID]
		if loc == nil || !loc.Active {
			continue
		}
		row, ok := byLocation[key.locationID]
		if !ok {
			row = &repository.LocationStockSummary{LocationID: loc.ID, LocationName: loc.Name}
			byLocation[key.locationID] = row
		}
		row.TotalUnits += quantity
		if p := r.store.products[key.productID]; p != nil {
			if p.Type == entity.ProductTypeRetail {
				row.RetailProducts++
				row.RetailValue = row.RetailValue.Add(p.Price.Mul(decimal.NewFromInt(int64(quantity))))
			} else {
				row.ProfessionalProducts++
			}
		}
	}
	list := make([]*repository.LocationStockSummary, 0, len(byLocation))
	for _, row := range byLocation {
		list = append(list, row)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].LocationName < list[j].LocationName })
	return list, nil
}

func (r *fakeStockRepo) ListLinesByLocation(_ context.Context, locationID string) ([]*repository.StockLine, error) {
	var list []*repository.StockLine
	for key, quantity := range r.store.stocks {
		if key.locationID != locationID {
			continue
		}
		p := r.store.products[key.productID]
		if p == nil {
			continue
		}
		list = append(list, &repository.StockLine{
			SKU: p.SKU, ProductName: p.Name, ProductType: p.Type,
			Quantity: quantity, UnitPrice: p.Price,
		})
	}
	return list, nil
}

// ── AuditRepository ───────────────────────────────────────────────────────────

type fakeAuditRepo struct{ store *memStore }

var _ repository.AuditRepository = (*fakeAuditRepo)(nil)

func (r *fakeAuditRepo) Create(_ context.Context, record *entity.AuditRecord) error {
	r.store.auditInserts++
	if r.store.failAuditAfter > 0 && r.store.auditInserts >= r.store.failAuditAfter {
		return errors.New("auditoría: fallo inyectado")
	}
	r.store.audit = append(r.store.audit, record)
	return nil
}

func (r *fakeAuditRepo) CreateBatch(ctx context.Context, records []*entity.AuditRecord) error {
	for _, rec := range records {
		if err := r.Create(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeAuditRepo) List(_ context.Context, productID, locationID string, limit, offset int) ([]*entity.AuditRecord, error) {
	var filtered []*entity.AuditRecord
	for _, rec := range r.store.audit {
		if productID != "" && rec.ProductID != productID {
			continue
		}
		if locationID != "" && rec.LocationID != locationID {
			continue
		}
		filtered = append(filtered, rec)
	}
	// Más recientes primero (los fakes insertan en orden cronológico)
	for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
		filtered[i], filtered[j] = filtered[j], filtered[i]
	}
	if offset >= len(filtered) {
		return nil, nil
	}
	filtered = filtered[offset:]
	if limit > 0 && limit < len(filtered) {
		filtered = filtered[:limit]
	}
	return filtered, nil
}

// ── LocationRepository ────────────────────────────────────────────────────────

type fakeLocationRepo struct{ store *memStore }

var _ repository.LocationRepository = (*fakeLocationRepo)(nil)

func (r *fakeLocationRepo) Create(_ context.Context, location *entity.Location) error {
	r.store.locations[location.ID] = location
	return nil
}

func (r *fakeLocationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	return r.store.locations[id], nil
}

func (r *fakeLocationRepo) GetActiveByIDs(_ context.Context, ids []string) ([]*entity.Location, error) {
	var list []*entity.Location
	for _, id := range ids {
		if loc := r.store.locations[id]; loc != nil && loc.Active {
			list = append(list, loc)
		}
	}
	return list, nil
}

func (r *fakeLocationRepo) ListActive(_ context.Context) ([]*entity.Location, error) {
	var list []*entity.Location
	for _, loc := range r.store.locations {
		if loc.Active {
			list = append(list, loc)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *fakeLocationRepo) ListQualifying(_ context.Context) ([]*entity.Location, error) {
	active, _ := r.ListActive(context.Background())
	var list []*entity.Location
	for _, loc := range active {
		for key := range r.store.stocks {
			if key.locationID == loc.ID {
				list = append(list, loc)
				break
			}
		}
	}
	return list, nil
}

func (r *fakeLocationRepo) List(ctx context.Context, _, _ int) ([]*entity.Location, error) {
	return r.ListActive(ctx)
}

func (r *fakeLocationRepo) Update(_ context.Context, location *entity.Location) error {
	r.store.locations[location.ID] = location
	return nil
}

func (r *fakeLocationRepo) Deactivate(_ context.Context, id string) error {
	if loc := r.store.locations[id]; loc != nil {
		loc.Active = false
	}
	return nil
}

// ── ProductRepository ─────────────────────────────────────────────────────────

type fakeProductRepo struct{ store *memStore }

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.store.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.store.products[id], nil
}

func (r *fakeProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range r.store.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.store.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) ListActive(_ context.Context) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.store.products {
		if p.Active {
			list = append(list, p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *fakeProductRepo) List(ctx context.Context, _, _ int) ([]*entity.Product, error) {
	return r.ListActive(ctx)
}

func (r *fakeProductRepo) Deactivate(_ context.Context, id string) error {
	if p := r.store.products[id]; p != nil {
		p.Active = false
	}
	return nil
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

// fakeTxRunner emula la semántica transaccional: si el callback falla, el estado
// de stock y auditoría vuelve al snapshot previo (equivalente al Rollback real).
type fakeTxRunner struct{ store *memStore }

var _ inventory.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	auditRepo repository.AuditRepository,
	locationRepo repository.LocationRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stocks, audit := r.store.snapshot()
	err := fn(&fakeStockRepo{r.store}, &fakeAuditRepo{r.store}, &fakeLocationRepo{r.store})
	if err != nil {
		r.store.stocks = stocks
		r.store.audit = audit
		return err
	}
	return nil
}

// ── armado común ──────────────────────────────────────────────────────────────

func newTestUseCase(store *memStore, policy inventory.Policy) *inventory.AdjustStockUseCase {
	if policy.BulkTimeout == 0 {
		policy.BulkTimeout = 5 * time.Second
	}
	return inventory.NewAdjustStockUseCase(
		&fakeTxRunner{store},
		&fakeProductRepo{store},
		&fakeLocationRepo{store},
		policy,
	)
}
