package trade

import (
	"context"
	"errors"

	"github.com/google/uuid"
	invapp "github.com/stockmaster/backend/internal/application/inventory"
	"github.com/stockmaster/backend/internal/domain/catalog"
	"github.com/stockmaster/backend/internal/domain/inventory"
	"github.com/stockmaster/backend/internal/domain/shared"
	"github.com/stockmaster/backend/internal/domain/trade"
	"github.com/stockmaster/backend/internal/domain/warehouse"
)

// ReceiptNumberPrefix prefixes receipt document numbers
const ReceiptNumberPrefix = "RCP"

// ReceiptService handles the inbound receipt workflow. Validation is the
// terminal transition that books every line into stock and the ledger.
type ReceiptService struct {
	receiptRepo   trade.ReceiptRepository
	warehouseRepo warehouse.WarehouseRepository
	locationRepo  warehouse.LocationRepository
	productRepo   catalog.ProductRepository
	numbers       shared.DocumentNumberGenerator
	scope         invapp.TransactionScope
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(
	receiptRepo trade.ReceiptRepository,
	warehouseRepo warehouse.WarehouseRepository,
	locationRepo warehouse.LocationRepository,
	productRepo catalog.ProductRepository,
	numbers shared.DocumentNumberGenerator,
	scope invapp.TransactionScope,
) *ReceiptService {
	return &ReceiptService{
		receiptRepo:   receiptRepo,
		warehouseRepo: warehouseRepo,
		locationRepo:  locationRepo,
		productRepo:   productRepo,
		numbers:       numbers,
		scope:         scope,
	}
}

// Create creates a draft receipt after validating the warehouse, every
// product and that each item location belongs to the receipt's warehouse
func (s *ReceiptService) Create(ctx context.Context, req CreateReceiptRequest) (*ReceiptResponse, error) {
	if _, err := s.warehouseRepo.FindByID(ctx, req.WarehouseID); err != nil {
		return nil, err
	}
	if err := s.validateItems(ctx, req.WarehouseID, req.Items); err != nil {
		return nil, err
	}

	number, err := s.numbers.Next(ctx, ReceiptNumberPrefix)
	if err != nil {
		return nil, err
	}

	receipt, err := trade.NewReceipt(number, req.SupplierName, req.WarehouseID)
	if err != nil {
		return nil, err
	}
	receipt.SupplierReference = req.SupplierReference
	for _, item := range req.Items {
		if err := receipt.AddItem(item.ProductID, item.LocationID, item.Quantity, item.UnitPrice); err != nil {
			return nil, err
		}
	}

	if err := s.receiptRepo.Save(ctx, receipt); err != nil {
		return nil, err
	}

	response := ToReceiptResponse(receipt)
	return &response, nil
}

// Update replaces the supplier fields and items of an editable receipt
func (s *ReceiptService) Update(ctx context.Context, id uuid.UUID, req UpdateReceiptRequest) (*ReceiptResponse, error) {
	receipt, err := s.receiptRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !receipt.CanUpdate() {
		return nil, shared.ErrInvalidState
	}
	if err := s.validateItems(ctx, receipt.WarehouseID, req.Items); err != nil {
		return nil, err
	}

	receipt.SupplierName = req.SupplierName
	receipt.SupplierReference = req.SupplierReference
	receipt.Items = receipt.Items[:0]
	for _, item := range req.Items {
		if err := receipt.AddItem(item.ProductID, item.LocationID, item.Quantity, item.UnitPrice); err != nil {
			return nil, err
		}
	}
	receipt.Touch()

	if err := s.receiptRepo.Save(ctx, receipt); err != nil {
		return nil, err
	}

	response := ToReceiptResponse(receipt)
	return &response, nil
}

// GetByID returns one receipt
func (s *ReceiptService) GetByID(ctx context.Context, id uuid.UUID) (*ReceiptResponse, error) {
	receipt, err := s.receiptRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToReceiptResponse(receipt)
	return &response, nil
}

// List returns receipts with the total count
func (s *ReceiptService) List(ctx context.Context, filter shared.Filter) ([]ReceiptResponse, int64, error) {
	receipts, err := s.receiptRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.receiptRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ReceiptResponse, 0, len(receipts))
	for i := range receipts {
		responses = append(responses, ToReceiptResponse(&receipts[i]))
	}
	return responses, total, nil
}

// Submit moves a draft receipt to waiting
func (s *ReceiptService) Submit(ctx context.Context, id uuid.UUID) (*ReceiptResponse, error) {
	return s.transition(ctx, id, func(r *trade.Receipt) error { return r.Submit() })
}

// MarkReady moves a waiting receipt to ready
func (s *ReceiptService) MarkReady(ctx context.Context, id uuid.UUID) (*ReceiptResponse, error) {
	return s.transition(ctx, id, func(r *trade.Receipt) error { return r.MarkReady() })
}

// Cancel aborts a receipt that has not been validated
func (s *ReceiptService) Cancel(ctx context.Context, id uuid.UUID) (*ReceiptResponse, error) {
	return s.transition(ctx, id, func(r *trade.Receipt) error { return r.Cancel() })
}

// Validate books the receipt into stock: per item the stock record at the
// (product, warehouse, location) triple is created or incremented and a
// ledger entry written, all inside one transaction. Every item is checked
// before the first stock mutation, so a receipt with a foreign location
// fails without touching any stock.
func (s *ReceiptService) Validate(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*ReceiptResponse, error) {
	if actor == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Validating requires an actor")
	}

	var response ReceiptResponse
	err := s.scope.Execute(ctx, func(repos invapp.TransactionalRepositories) error {
		receipt, err := repos.ReceiptRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if receipt.Status != trade.ReceiptStatusWaiting && receipt.Status != trade.ReceiptStatusReady {
			return shared.ErrInvalidState
		}

		items := make([]ReceiptItemRequest, 0, len(receipt.Items))
		for i := range receipt.Items {
			items = append(items, ReceiptItemRequest{
				ProductID:  receipt.Items[i].ProductID,
				LocationID: receipt.Items[i].LocationID,
				Quantity:   receipt.Items[i].Quantity,
			})
		}
		if err := s.validateItems(ctx, receipt.WarehouseID, items); err != nil {
			return err
		}

		entries := make([]*inventory.LedgerEntry, 0, len(receipt.Items))
		for i := range receipt.Items {
			item := &receipt.Items[i]

			stock, err := repos.StockRepo().FindByKeyForUpdate(ctx,
				item.ProductID, receipt.WarehouseID, item.LocationID)
			if err != nil {
				if !errors.Is(err, shared.ErrNotFound) {
					return err
				}
				stock, err = inventory.NewStock(item.ProductID, receipt.WarehouseID, item.LocationID)
				if err != nil {
					return err
				}
			}
			if err := stock.Receive(item.Quantity); err != nil {
				return err
			}
			if err := repos.StockRepo().Upsert(ctx, stock); err != nil {
				return err
			}

			entry, err := inventory.NewLedgerEntry(inventory.TransactionTypeReceipt,
				item.ProductID, receipt.WarehouseID, item.LocationID,
				item.Quantity, stock.Quantity, receipt.ReceiptNumber, actor)
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}

		if err := repos.LedgerRepo().Append(ctx, entries...); err != nil {
			return err
		}

		if err := receipt.Validate(actor); err != nil {
			return err
		}
		if err := repos.ReceiptRepo().Save(ctx, receipt); err != nil {
			return err
		}

		response = ToReceiptResponse(receipt)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Delete removes a receipt that has not been validated
func (s *ReceiptService) Delete(ctx context.Context, id uuid.UUID) error {
	receipt, err := s.receiptRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !receipt.CanDelete() {
		return shared.ErrInvalidState
	}
	return s.receiptRepo.Delete(ctx, id)
}

func (s *ReceiptService) transition(ctx context.Context, id uuid.UUID, fn func(*trade.Receipt) error) (*ReceiptResponse, error) {
	receipt, err := s.receiptRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(receipt); err != nil {
		return nil, err
	}
	if err := s.receiptRepo.Save(ctx, receipt); err != nil {
		return nil, err
	}
	response := ToReceiptResponse(receipt)
	return &response, nil
}

// validateItems checks that every product exists and every target location
// belongs to the given warehouse
func (s *ReceiptService) validateItems(ctx context.Context, warehouseID uuid.UUID, items []ReceiptItemRequest) error {
	productIDs := make([]uuid.UUID, 0, len(items))
	locationIDs := make([]uuid.UUID, 0, len(items))
	seenProducts := make(map[uuid.UUID]bool)
	seenLocations := make(map[uuid.UUID]bool)
	for _, item := range items {
		if !seenProducts[item.ProductID] {
			seenProducts[item.ProductID] = true
			productIDs = append(productIDs, item.ProductID)
		}
		if !seenLocations[item.LocationID] {
			seenLocations[item.LocationID] = true
			locationIDs = append(locationIDs, item.LocationID)
		}
	}

	products, err := s.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return err
	}
	if len(products) != len(productIDs) {
		return shared.ErrNotFound
	}

	locations, err := s.locationRepo.FindByIDs(ctx, locationIDs)
	if err != nil {
		return err
	}
	if len(locations) != len(locationIDs) {
		return shared.ErrNotFound
	}
	for i := range locations {
		if !locations[i].BelongsTo(warehouseID) {
			return shared.NewDomainError("LOCATION_MISMATCH", "Item location does not belong to the receipt warehouse")
		}
	}
	return nil
}
