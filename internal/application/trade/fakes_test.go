package trade

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockmaster/backend/internal/domain/catalog"
	"github.com/stockmaster/backend/internal/domain/inventory"
	"github.com/stockmaster/backend/internal/domain/shared"
	"github.com/stockmaster/backend/internal/domain/trade"
	"github.com/stockmaster/backend/internal/domain/warehouse"
)

// In-memory fakes mirroring the persistence contracts, with copy semantics
// so failed workflows cannot leak partial mutations.

func stockKey(productID, warehouseID, locationID uuid.UUID) string {
	return productID.String() + "|" + warehouseID.String() + "|" + locationID.String()
}

type fakeStockRepo struct {
	mu     sync.Mutex
	stocks map[string]inventory.Stock
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{stocks: make(map[string]inventory.Stock)}
}

func (r *fakeStockRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Stock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.stocks {
		if s.ID == id {
			cp := s
			return &cp, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeStockRepo) FindByKey(_ context.Context, productID, warehouseID, locationID uuid.UUID) (*inventory.Stock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stocks[stockKey(productID, warehouseID, locationID)]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := s
	return &cp, nil
}

func (r *fakeStockRepo) FindByKeyForUpdate(ctx context.Context, productID, warehouseID, locationID uuid.UUID) (*inventory.Stock, error) {
	return r.FindByKey(ctx, productID, warehouseID, locationID)
}

func (r *fakeStockRepo) FindAll(_ context.Context, _ shared.Filter) ([]inventory.Stock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]inventory.Stock, 0, len(r.stocks))
	for _, s := range r.stocks {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeStockRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.stocks)), nil
}

func (r *fakeStockRepo) Save(_ context.Context, stock *inventory.Stock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stocks[stockKey(stock.ProductID, stock.WarehouseID, stock.LocationID)] = *stock
	return nil
}

func (r *fakeStockRepo) Upsert(ctx context.Context, stock *inventory.Stock) error {
	return r.Save(ctx, stock)
}

func (r *fakeStockRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, s := range r.stocks {
		if s.ID == id {
			delete(r.stocks, k)
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *fakeStockRepo) Summary(_ context.Context, _ *uuid.UUID) (*inventory.StockSummary, error) {
	return &inventory.StockSummary{}, nil
}

func (r *fakeStockRepo) LowStock(_ context.Context) ([]inventory.LowStockProduct, error) {
	return nil, nil
}

func (r *fakeStockRepo) HasNonZeroByProduct(_ context.Context, _ uuid.UUID) (bool, error) {
	return false, nil
}

func (r *fakeStockRepo) HasNonZeroByWarehouse(_ context.Context, _ uuid.UUID) (bool, error) {
	return false, nil
}

func (r *fakeStockRepo) HasNonZeroByLocation(_ context.Context, _ uuid.UUID) (bool, error) {
	return false, nil
}

func (r *fakeStockRepo) mustQuantity(productID, warehouseID, locationID uuid.UUID) decimal.Decimal {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stocks[stockKey(productID, warehouseID, locationID)]
	if !ok {
		return decimal.Zero
	}
	return s.Quantity
}

type fakeLedgerRepo struct {
	mu      sync.Mutex
	entries []inventory.LedgerEntry
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{}
}

func (r *fakeLedgerRepo) Append(_ context.Context, entries ...*inventory.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range entries {
		r.entries = append(r.entries, *e)
	}
	return nil
}

func (r *fakeLedgerRepo) FindAll(_ context.Context, _ inventory.LedgerFilter) ([]inventory.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]inventory.LedgerEntry, len(r.entries))
	copy(out, r.entries)
	return out, nil
}

func (r *fakeLedgerRepo) Count(_ context.Context, _ inventory.LedgerFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.entries)), nil
}

type fakeReceiptRepo struct {
	mu       sync.Mutex
	receipts map[uuid.UUID]trade.Receipt
}

func newFakeReceiptRepo() *fakeReceiptRepo {
	return &fakeReceiptRepo{receipts: make(map[uuid.UUID]trade.Receipt)}
}

func (r *fakeReceiptRepo) FindByID(_ context.Context, id uuid.UUID) (*trade.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.receipts[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := rec
	cp.Items = append([]trade.ReceiptItem(nil), rec.Items...)
	return &cp, nil
}

func (r *fakeReceiptRepo) FindByNumber(_ context.Context, number string) (*trade.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.receipts {
		if rec.ReceiptNumber == number {
			cp := rec
			return &cp, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeReceiptRepo) FindAll(_ context.Context, _ shared.Filter) ([]trade.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]trade.Receipt, 0, len(r.receipts))
	for _, rec := range r.receipts {
		out = append(out, rec)
	}
	return out, nil
}

func (r *fakeReceiptRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.receipts)), nil
}

func (r *fakeReceiptRepo) Save(_ context.Context, receipt *trade.Receipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *receipt
	cp.Items = append([]trade.ReceiptItem(nil), receipt.Items...)
	r.receipts[receipt.ID] = cp
	return nil
}

func (r *fakeReceiptRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.receipts[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.receipts, id)
	return nil
}

type fakeDeliveryRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]trade.DeliveryOrder
}

func newFakeDeliveryRepo() *fakeDeliveryRepo {
	return &fakeDeliveryRepo{orders: make(map[uuid.UUID]trade.DeliveryOrder)}
}

func (r *fakeDeliveryRepo) FindByID(_ context.Context, id uuid.UUID) (*trade.DeliveryOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := o
	cp.Items = append([]trade.DeliveryItem(nil), o.Items...)
	return &cp, nil
}

func (r *fakeDeliveryRepo) FindByNumber(_ context.Context, number string) (*trade.DeliveryOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.DeliveryNumber == number {
			cp := o
			return &cp, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeDeliveryRepo) FindAll(_ context.Context, _ shared.Filter) ([]trade.DeliveryOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]trade.DeliveryOrder, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	return out, nil
}

func (r *fakeDeliveryRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.orders)), nil
}

func (r *fakeDeliveryRepo) Save(_ context.Context, order *trade.DeliveryOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *order
	cp.Items = append([]trade.DeliveryItem(nil), order.Items...)
	r.orders[order.ID] = cp
	return nil
}

func (r *fakeDeliveryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]catalog.Product
}

func newFakeProductRepo(products ...*catalog.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[uuid.UUID]catalog.Product)}
	for _, p := range products {
		r.products[p.ID] = *p
	}
	return r
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (r *fakeProductRepo) FindBySKU(_ context.Context, _ string) (*catalog.Product, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	out := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Product, error) {
	out := make([]catalog.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *fakeProductRepo) ExistsBySKU(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (r *fakeProductRepo) Save(_ context.Context, product *catalog.Product) error {
	r.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

type fakeWarehouseRepo struct {
	warehouses map[uuid.UUID]warehouse.Warehouse
}

func newFakeWarehouseRepo(warehouses ...*warehouse.Warehouse) *fakeWarehouseRepo {
	r := &fakeWarehouseRepo{warehouses: make(map[uuid.UUID]warehouse.Warehouse)}
	for _, w := range warehouses {
		r.warehouses[w.ID] = *w
	}
	return r
}

func (r *fakeWarehouseRepo) FindByID(_ context.Context, id uuid.UUID) (*warehouse.Warehouse, error) {
	w, ok := r.warehouses[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := w
	return &cp, nil
}

func (r *fakeWarehouseRepo) FindByCode(_ context.Context, _ string) (*warehouse.Warehouse, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeWarehouseRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]warehouse.Warehouse, error) {
	out := make([]warehouse.Warehouse, 0, len(ids))
	for _, id := range ids {
		if w, ok := r.warehouses[id]; ok {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *fakeWarehouseRepo) FindAll(_ context.Context, _ shared.Filter) ([]warehouse.Warehouse, error) {
	out := make([]warehouse.Warehouse, 0, len(r.warehouses))
	for _, w := range r.warehouses {
		out = append(out, w)
	}
	return out, nil
}

func (r *fakeWarehouseRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.warehouses)), nil
}

func (r *fakeWarehouseRepo) ExistsByCode(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (r *fakeWarehouseRepo) Save(_ context.Context, w *warehouse.Warehouse) error {
	r.warehouses[w.ID] = *w
	return nil
}

func (r *fakeWarehouseRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.warehouses, id)
	return nil
}

type fakeLocationRepo struct {
	locations map[uuid.UUID]warehouse.Location
}

func newFakeLocationRepo(locations ...*warehouse.Location) *fakeLocationRepo {
	r := &fakeLocationRepo{locations: make(map[uuid.UUID]warehouse.Location)}
	for _, l := range locations {
		r.locations[l.ID] = *l
	}
	return r
}

func (r *fakeLocationRepo) FindByID(_ context.Context, id uuid.UUID) (*warehouse.Location, error) {
	l, ok := r.locations[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := l
	return &cp, nil
}

func (r *fakeLocationRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]warehouse.Location, error) {
	out := make([]warehouse.Location, 0, len(ids))
	for _, id := range ids {
		if l, ok := r.locations[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLocationRepo) FindByWarehouse(_ context.Context, warehouseID uuid.UUID, _ shared.Filter) ([]warehouse.Location, error) {
	out := make([]warehouse.Location, 0)
	for _, l := range r.locations {
		if l.WarehouseID == warehouseID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLocationRepo) CountByWarehouse(_ context.Context, warehouseID uuid.UUID) (int64, error) {
	var n int64
	for _, l := range r.locations {
		if l.WarehouseID == warehouseID {
			n++
		}
	}
	return n, nil
}

func (r *fakeLocationRepo) ExistsByCode(_ context.Context, _ uuid.UUID, _ string) (bool, error) {
	return false, nil
}

func (r *fakeLocationRepo) Save(_ context.Context, location *warehouse.Location) error {
	r.locations[location.ID] = *location
	return nil
}

func (r *fakeLocationRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.locations, id)
	return nil
}

type fakeNumberGenerator struct {
	mu       sync.Mutex
	counters map[string]int
}

func newFakeNumberGenerator() *fakeNumberGenerator {
	return &fakeNumberGenerator{counters: make(map[string]int)}
}

func (g *fakeNumberGenerator) Next(_ context.Context, prefix string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counters[prefix]++
	return fmt.Sprintf("%s202601%04d", prefix, g.counters[prefix]), nil
}
