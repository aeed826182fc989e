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

// AdjustmentNumberPrefix prefixes stock adjustment document numbers
const AdjustmentNumberPrefix = "ADJ"

// AdjustmentService handles the stock adjustment workflow. An adjustment
// freezes the recorded quantity at creation time; approval sets the stock to
// the counted value and writes the signed difference to the ledger.
type AdjustmentService struct {
	adjustmentRepo inventory.AdjustmentRepository
	stockRepo      inventory.StockRepository
	productRepo    catalog.ProductRepository
	locationRepo   warehouse.LocationRepository
	numbers        shared.DocumentNumberGenerator
	scope          TransactionScope
}

// NewAdjustmentService creates a new AdjustmentService
func NewAdjustmentService(
	adjustmentRepo inventory.AdjustmentRepository,
	stockRepo inventory.StockRepository,
	productRepo catalog.ProductRepository,
	locationRepo warehouse.LocationRepository,
	numbers shared.DocumentNumberGenerator,
	scope TransactionScope,
) *AdjustmentService {
	return &AdjustmentService{
		adjustmentRepo: adjustmentRepo,
		stockRepo:      stockRepo,
		productRepo:    productRepo,
		locationRepo:   locationRepo,
		numbers:        numbers,
		scope:          scope,
	}
}

// Create opens a pending adjustment. The recorded quantity is read from the
// current stock record at the (product, location) pair; a missing record
// counts as zero.
func (s *AdjustmentService) Create(ctx context.Context, req CreateAdjustmentRequest) (*AdjustmentResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		return nil, err
	}
	location, err := s.locationRepo.FindByID(ctx, req.LocationID)
	if err != nil {
		return nil, err
	}

	recorded := decimal.Zero
	stock, err := s.stockRepo.FindByKey(ctx, req.ProductID, location.WarehouseID, req.LocationID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	} else {
		recorded = stock.Quantity
	}

	number, err := s.numbers.Next(ctx, AdjustmentNumberPrefix)
	if err != nil {
		return nil, err
	}

	adjustment, err := inventory.NewStockAdjustment(number, req.ProductID, req.LocationID,
		recorded, req.CountedQuantity, req.Reason)
	if err != nil {
		return nil, err
	}

	if err := s.adjustmentRepo.Save(ctx, adjustment); err != nil {
		return nil, err
	}

	response := ToAdjustmentResponse(adjustment)
	return &response, nil
}

// Update revises the counted quantity and reason of a pending adjustment
func (s *AdjustmentService) Update(ctx context.Context, id uuid.UUID, req UpdateAdjustmentRequest) (*AdjustmentResponse, error) {
	adjustment, err := s.adjustmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := adjustment.Revise(req.CountedQuantity, req.Reason); err != nil {
		return nil, err
	}
	if err := s.adjustmentRepo.Save(ctx, adjustment); err != nil {
		return nil, err
	}
	response := ToAdjustmentResponse(adjustment)
	return &response, nil
}

// GetByID returns one adjustment
func (s *AdjustmentService) GetByID(ctx context.Context, id uuid.UUID) (*AdjustmentResponse, error) {
	adjustment, err := s.adjustmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToAdjustmentResponse(adjustment)
	return &response, nil
}

// List returns adjustments with the total count
func (s *AdjustmentService) List(ctx context.Context, filter shared.Filter) ([]AdjustmentResponse, int64, error) {
	adjustments, err := s.adjustmentRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.adjustmentRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]AdjustmentResponse, 0, len(adjustments))
	for i := range adjustments {
		responses = append(responses, ToAdjustmentResponse(&adjustments[i]))
	}
	return responses, total, nil
}

// Approve applies a pending adjustment: the stock quantity is set to the
// counted value and the difference lands in the ledger, all in one
// transaction. A second approve fails with an invalid-state error and
// leaves stock and ledger untouched.
func (s *AdjustmentService) Approve(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*AdjustmentResponse, error) {
	if actor == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Approving requires an actor")
	}

	var response AdjustmentResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		adjustment, err := repos.AdjustmentRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if adjustment.Status != inventory.AdjustmentStatusPending {
			return shared.ErrInvalidState
		}

		location, err := s.locationRepo.FindByID(ctx, adjustment.LocationID)
		if err != nil {
			return err
		}

		stock, err := repos.StockRepo().FindByKeyForUpdate(ctx,
			adjustment.ProductID, location.WarehouseID, adjustment.LocationID)
		if err != nil {
			if !errors.Is(err, shared.ErrNotFound) {
				return err
			}
			stock, err = inventory.NewStock(adjustment.ProductID, location.WarehouseID, adjustment.LocationID)
			if err != nil {
				return err
			}
		}

		if err := stock.SetQuantity(adjustment.CountedQuantity); err != nil {
			return err
		}
		if err := repos.StockRepo().Upsert(ctx, stock); err != nil {
			return err
		}

		// A zero difference still approves the document but writes no
		// ledger entry; the ledger records movements only.
		if difference := adjustment.Difference(); !difference.IsZero() {
			entry, err := inventory.NewLedgerEntry(inventory.TransactionTypeAdjustment,
				adjustment.ProductID, location.WarehouseID, adjustment.LocationID,
				difference, adjustment.CountedQuantity, adjustment.AdjustmentNumber, actor)
			if err != nil {
				return err
			}
			if err := repos.LedgerRepo().Append(ctx, entry); err != nil {
				return err
			}
		}

		if err := adjustment.Approve(actor); err != nil {
			return err
		}
		if err := repos.AdjustmentRepo().Save(ctx, adjustment); err != nil {
			return err
		}

		response = ToAdjustmentResponse(adjustment)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Reject closes a pending adjustment with no stock or ledger effect
func (s *AdjustmentService) Reject(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*AdjustmentResponse, error) {
	adjustment, err := s.adjustmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := adjustment.Reject(actor); err != nil {
		return nil, err
	}
	if err := s.adjustmentRepo.Save(ctx, adjustment); err != nil {
		return nil, err
	}
	response := ToAdjustmentResponse(adjustment)
	return &response, nil
}

// Delete removes an adjustment that has not touched stock. Approved
// adjustments stay for the audit trail; pending and rejected ones can go.
func (s *AdjustmentService) Delete(ctx context.Context, id uuid.UUID) error {
	adjustment, err := s.adjustmentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if adjustment.Status == inventory.AdjustmentStatusApproved {
		return shared.ErrInvalidState
	}
	return s.adjustmentRepo.Delete(ctx, id)
}
