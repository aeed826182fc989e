package trade

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	invapp "github.com/stockmaster/backend/internal/application/inventory"
	"github.com/stockmaster/backend/internal/domain/catalog"
	"github.com/stockmaster/backend/internal/domain/inventory"
	"github.com/stockmaster/backend/internal/domain/shared"
	"github.com/stockmaster/backend/internal/domain/trade"
	"github.com/stockmaster/backend/internal/domain/warehouse"
)

// DeliveryNumberPrefix prefixes delivery order document numbers
const DeliveryNumberPrefix = "DLV"

// DeliveryService handles the outbound delivery workflow: picking and
// packing progress plus the completing transition that deducts stock.
type DeliveryService struct {
	deliveryRepo trade.DeliveryOrderRepository
	locationRepo warehouse.LocationRepository
	productRepo  catalog.ProductRepository
	numbers      shared.DocumentNumberGenerator
	scope        invapp.TransactionScope
}

// NewDeliveryService creates a new DeliveryService
func NewDeliveryService(
	deliveryRepo trade.DeliveryOrderRepository,
	locationRepo warehouse.LocationRepository,
	productRepo catalog.ProductRepository,
	numbers shared.DocumentNumberGenerator,
	scope invapp.TransactionScope,
) *DeliveryService {
	return &DeliveryService{
		deliveryRepo: deliveryRepo,
		locationRepo: locationRepo,
		productRepo:  productRepo,
		numbers:      numbers,
		scope:        scope,
	}
}

// Create creates a draft delivery order after validating every product
func (s *DeliveryService) Create(ctx context.Context, req CreateDeliveryRequest) (*DeliveryResponse, error) {
	if err := s.ensureProductsExist(ctx, req.Items); err != nil {
		return nil, err
	}

	number, err := s.numbers.Next(ctx, DeliveryNumberPrefix)
	if err != nil {
		return nil, err
	}

	order, err := trade.NewDeliveryOrder(number, req.CustomerName)
	if err != nil {
		return nil, err
	}
	order.CustomerAddress = req.CustomerAddress
	for _, item := range req.Items {
		if err := order.AddItem(item.ProductID, item.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.deliveryRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToDeliveryResponse(order)
	return &response, nil
}

// Update replaces the customer fields and items of an order that has not
// shipped. The order returns to draft; recorded picking or packing progress
// is discarded with the replaced lines.
func (s *DeliveryService) Update(ctx context.Context, id uuid.UUID, req UpdateDeliveryRequest) (*DeliveryResponse, error) {
	order, err := s.deliveryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureProductsExist(ctx, req.Items); err != nil {
		return nil, err
	}

	if err := order.Reopen(); err != nil {
		return nil, err
	}
	order.CustomerName = req.CustomerName
	order.CustomerAddress = req.CustomerAddress
	order.Items = order.Items[:0]
	for _, item := range req.Items {
		if err := order.AddItem(item.ProductID, item.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.deliveryRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToDeliveryResponse(order)
	return &response, nil
}

// GetByID returns one delivery order
func (s *DeliveryService) GetByID(ctx context.Context, id uuid.UUID) (*DeliveryResponse, error) {
	order, err := s.deliveryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToDeliveryResponse(order)
	return &response, nil
}

// List returns delivery orders with the total count
func (s *DeliveryService) List(ctx context.Context, filter shared.Filter) ([]DeliveryResponse, int64, error) {
	orders, err := s.deliveryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.deliveryRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]DeliveryResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToDeliveryResponse(&orders[i]))
	}
	return responses, total, nil
}

// UpdatePicking records picked quantities; the order advances to picking and
// then packing as lines fill up
func (s *DeliveryService) UpdatePicking(ctx context.Context, id uuid.UUID, req DeliveryProgressRequest) (*DeliveryResponse, error) {
	order, err := s.deliveryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.UpdatePicking(progressMap(req)); err != nil {
		return nil, err
	}
	if err := s.deliveryRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	response := ToDeliveryResponse(order)
	return &response, nil
}

// UpdatePacking records packed quantities; the order advances to ready when
// every line is packed
func (s *DeliveryService) UpdatePacking(ctx context.Context, id uuid.UUID, req DeliveryProgressRequest) (*DeliveryResponse, error) {
	order, err := s.deliveryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.UpdatePacking(progressMap(req)); err != nil {
		return nil, err
	}
	if err := s.deliveryRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	response := ToDeliveryResponse(order)
	return &response, nil
}

// Complete ships a ready order from the given warehouse location: every line
// is deducted from stock with a ledger entry, all inside one transaction.
// Lines that repeat a product are combined, so the availability check and
// the deduction both see the total requested quantity. All stock records are
// checked before the first deduction; an order that cannot be fully served
// changes nothing. A second Complete fails with an invalid-state error.
func (s *DeliveryService) Complete(ctx context.Context, id uuid.UUID, req CompleteDeliveryRequest, actor uuid.UUID) (*DeliveryResponse, error) {
	if actor == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Completing requires an actor")
	}

	location, err := s.locationRepo.FindByID(ctx, req.LocationID)
	if err != nil {
		return nil, err
	}
	if !location.BelongsTo(req.WarehouseID) {
		return nil, shared.NewDomainError("LOCATION_MISMATCH", "Location does not belong to the given warehouse")
	}

	var response DeliveryResponse
	err = s.scope.Execute(ctx, func(repos invapp.TransactionalRepositories) error {
		order, err := repos.DeliveryRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if order.Status != trade.DeliveryStatusReady {
			return shared.ErrInvalidState
		}

		products, requested := combineItems(order.Items)

		// Lock and validate every stock record against the combined
		// requested quantity before mutating anything.
		stocks := make(map[uuid.UUID]*inventory.Stock, len(products))
		for _, productID := range products {
			stock, err := repos.StockRepo().FindByKeyForUpdate(ctx,
				productID, req.WarehouseID, req.LocationID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.ErrInsufficientStock
				}
				return err
			}
			if !stock.CanFulfill(requested[productID]) {
				return shared.ErrInsufficientStock
			}
			stocks[productID] = stock
		}

		entries := make([]*inventory.LedgerEntry, 0, len(products))
		for _, productID := range products {
			stock := stocks[productID]
			quantity := requested[productID]

			if err := stock.Deduct(quantity); err != nil {
				return err
			}
			if err := repos.StockRepo().Save(ctx, stock); err != nil {
				return err
			}

			entry, err := inventory.NewLedgerEntry(inventory.TransactionTypeDelivery,
				productID, req.WarehouseID, req.LocationID,
				quantity.Neg(), stock.Quantity, order.DeliveryNumber, actor)
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}

		if err := repos.LedgerRepo().Append(ctx, entries...); err != nil {
			return err
		}

		if err := order.Complete(actor); err != nil {
			return err
		}
		if err := repos.DeliveryRepo().Save(ctx, order); err != nil {
			return err
		}

		response = ToDeliveryResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Delete removes a delivery order that has not shipped
func (s *DeliveryService) Delete(ctx context.Context, id uuid.UUID) error {
	order, err := s.deliveryRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if order.Status == trade.DeliveryStatusDone {
		return shared.ErrInvalidState
	}
	return s.deliveryRepo.Delete(ctx, id)
}

func (s *DeliveryService) ensureProductsExist(ctx context.Context, items []DeliveryItemRequest) error {
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

// combineItems totals the requested quantity per product, preserving the
// order in which products first appear on the document
func combineItems(items []trade.DeliveryItem) ([]uuid.UUID, map[uuid.UUID]decimal.Decimal) {
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

func progressMap(req DeliveryProgressRequest) map[uuid.UUID]decimal.Decimal {
	progress := make(map[uuid.UUID]decimal.Decimal, len(req.Items))
	for _, item := range req.Items {
		progress[item.ProductID] = item.Quantity
	}
	return progress
}
