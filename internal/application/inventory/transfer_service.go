package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockmaster/backend/internal/domain/catalog"
	"github.com/stockmaster/backend/internal/domain/inventory"
	"github.com/stockmaster/backend/internal/domain/shared"
	"github.com/stockmaster/backend/internal/domain/warehouse"
)

// TransferNumberPrefix prefixes internal transfer document numbers
const TransferNumberPrefix = "TRF"

// TransferService handles internal transfers between warehouse locations
type TransferService struct {
	transferRepo inventory.TransferRepository
	locationRepo warehouse.LocationRepository
	productRepo  catalog.ProductRepository
	numbers      shared.DocumentNumberGenerator
	scope        TransactionScope
}

// NewTransferService creates a new TransferService
func NewTransferService(
	transferRepo inventory.TransferRepository,
	locationRepo warehouse.LocationRepository,
	productRepo catalog.ProductRepository,
	numbers shared.DocumentNumberGenerator,
	scope TransactionScope,
) *TransferService {
	return &TransferService{
		transferRepo: transferRepo,
		locationRepo: locationRepo,
		productRepo:  productRepo,
		numbers:      numbers,
		scope:        scope,
	}
}

// Create creates a draft transfer after validating that both locations exist,
// belong to the stated warehouses and all referenced products exist
func (s *TransferService) Create(ctx context.Context, req CreateTransferRequest) (*TransferResponse, error) {
	source, err := s.locationRepo.FindByID(ctx, req.SourceLocationID)
	if err != nil {
		return nil, err
	}
	if !source.BelongsTo(req.SourceWarehouseID) {
		return nil, shared.NewDomainError("LOCATION_MISMATCH", "Source location does not belong to the source warehouse")
	}
	destination, err := s.locationRepo.FindByID(ctx, req.DestinationLocationID)
	if err != nil {
		return nil, err
	}
	if !destination.BelongsTo(req.DestinationWarehouseID) {
		return nil, shared.NewDomainError("LOCATION_MISMATCH", "Destination location does not belong to the destination warehouse")
	}

	if err := s.ensureProductsExist(ctx, req.Items); err != nil {
		return nil, err
	}

	number, err := s.numbers.Next(ctx, TransferNumberPrefix)
	if err != nil {
		return nil, err
	}

	transfer, err := inventory.NewInternalTransfer(number,
		req.SourceWarehouseID, req.SourceLocationID,
		req.DestinationWarehouseID, req.DestinationLocationID)
	if err != nil {
		return nil, err
	}
	transfer.Notes = req.Notes
	for _, item := range req.Items {
		if err := transfer.AddItem(item.ProductID, item.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.transferRepo.Save(ctx, transfer); err != nil {
		return nil, err
	}

	response := ToTransferResponse(transfer)
	return &response, nil
}

// GetByID returns one transfer
func (s *TransferService) GetByID(ctx context.Context, id uuid.UUID) (*TransferResponse, error) {
	transfer, err := s.transferRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToTransferResponse(transfer)
	return &response, nil
}

// List returns transfers with the total count
func (s *TransferService) List(ctx context.Context, filter shared.Filter) ([]TransferResponse, int64, error) {
	transfers, err := s.transferRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.transferRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TransferResponse, 0, len(transfers))
	for i := range transfers {
		responses = append(responses, ToTransferResponse(&transfers[i]))
	}
	return responses, total, nil
}

// Submit moves a draft transfer to pending
func (s *TransferService) Submit(ctx context.Context, id uuid.UUID) (*TransferResponse, error) {
	transfer, err := s.transferRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := transfer.Submit(); err != nil {
		return nil, err
	}
	if err := s.transferRepo.Save(ctx, transfer); err != nil {
		return nil, err
	}
	response := ToTransferResponse(transfer)
	return &response, nil
}

// Complete executes a pending transfer: every item is deducted from the
// source location and added at the destination, with a ledger entry pair per
// product. Items that repeat a product are combined, so the availability
// check and both movements see the total requested quantity. All source
// stocks are checked before the first mutation; the whole operation runs in
// one transaction.
func (s *TransferService) Complete(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*TransferResponse, error) {
	if actor == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Completing requires an actor")
	}

	var response TransferResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		transfer, err := repos.TransferRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if transfer.Status != inventory.TransferStatusPending {
			return shared.ErrInvalidState
		}

		products, requested := combineTransferItems(transfer.Items)

		// Lock and validate every source stock against the combined
		// requested quantity before mutating anything.
		sources := make(map[uuid.UUID]*inventory.Stock, len(products))
		for _, productID := range products {
			stock, err := repos.StockRepo().FindByKeyForUpdate(ctx,
				productID, transfer.SourceWarehouseID, transfer.SourceLocationID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.ErrInsufficientStock
				}
				return err
			}
			if !stock.CanFulfill(requested[productID]) {
				return shared.ErrInsufficientStock
			}
			sources[productID] = stock
		}

		entries := make([]*inventory.LedgerEntry, 0, len(products)*2)
		for _, productID := range products {
			quantity := requested[productID]

			source := sources[productID]
			if err := source.Deduct(quantity); err != nil {
				return err
			}
			if err := repos.StockRepo().Save(ctx, source); err != nil {
				return err
			}
			out, err := inventory.NewLedgerEntry(inventory.TransactionTypeTransfer,
				productID, transfer.SourceWarehouseID, transfer.SourceLocationID,
				quantity.Neg(), source.Quantity, transfer.TransferNumber, actor)
			if err != nil {
				return err
			}
			entries = append(entries, out)

			destination, err := repos.StockRepo().FindByKeyForUpdate(ctx,
				productID, transfer.DestinationWarehouseID, transfer.DestinationLocationID)
			if err != nil {
				if !errors.Is(err, shared.ErrNotFound) {
					return err
				}
				destination, err = inventory.NewStock(productID,
					transfer.DestinationWarehouseID, transfer.DestinationLocationID)
				if err != nil {
					return err
				}
			}
			if err := destination.Receive(quantity); err != nil {
				return err
			}
			if err := repos.StockRepo().Upsert(ctx, destination); err != nil {
				return err
			}
			in, err := inventory.NewLedgerEntry(inventory.TransactionTypeTransfer,
				productID, transfer.DestinationWarehouseID, transfer.DestinationLocationID,
				quantity, destination.Quantity, transfer.TransferNumber, actor)
			if err != nil {
				return err
			}
			entries = append(entries, in)
		}

		if err := repos.LedgerRepo().Append(ctx, entries...); err != nil {
			return err
		}

		if err := transfer.Complete(actor); err != nil {
			return err
		}
		if err := repos.TransferRepo().Save(ctx, transfer); err != nil {
			return err
		}

		response = ToTransferResponse(transfer)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Cancel aborts a draft or pending transfer
func (s *TransferService) Cancel(ctx context.Context, id uuid.UUID) (*TransferResponse, error) {
	transfer, err := s.transferRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := transfer.Cancel(); err != nil {
		return nil, err
	}
	if err := s.transferRepo.Save(ctx, transfer); err != nil {
		return nil, err
	}
	response := ToTransferResponse(transfer)
	return &response, nil
}

// Delete removes a transfer that has not moved stock yet
func (s *TransferService) Delete(ctx context.Context, id uuid.UUID) error {
	transfer, err := s.transferRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if transfer.Status == inventory.TransferStatusCompleted {
		return shared.ErrInvalidState
	}
	return s.transferRepo.Delete(ctx, id)
}

// combineTransferItems totals the requested quantity per product, preserving
// the order in which products first appear on the document
func combineTransferItems(items []inventory.TransferItem) ([]uuid.UUID, map[uuid.UUID]decimal.Decimal) {
	products := make([]uuid.UUID, 0, len(items))
	requested := make(map[uuid.UUID]decimal.Decimal, len(items))
	for i := range items {
		item := &items[i]
		if _, seen := requested[item.ProductID]; !seen {
			products = append(products, item.ProductID)
		}
		requested[item.ProductID] = requested[item.ProductID].Add(item.Quantity)
	}
	return products, requested
}

func (s *TransferService) ensureProductsExist(ctx context.Context, items []TransferItemRequest) error {
	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]bool)
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(products) != len(ids) {
		return shared.ErrNotFound
	}
	return nil
}
