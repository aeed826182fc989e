package inventory

import (
	"context"

	"github.com/stockmaster/backend/internal/domain/inventory"
	"github.com/stockmaster/backend/internal/domain/trade"
)

// TransactionScope runs a function with repositories bound to a single
// database transaction. Stock-moving workflows (receipt validation, delivery
// completion, transfers, adjustment approval) run their document update,
// stock mutations and ledger appends through one scope so they commit or
// roll back together.
type TransactionScope interface {
	// Execute runs fn inside a transaction. A returned error rolls the
	// transaction back; nil commits it.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories bound to the current
// transaction. All of them share one underlying connection.
type TransactionalRepositories interface {
	StockRepo() inventory.StockRepository
	LedgerRepo() inventory.LedgerRepository
	TransferRepo() inventory.TransferRepository
	AdjustmentRepo() inventory.AdjustmentRepository
	ReceiptRepo() trade.ReceiptRepository
	DeliveryRepo() trade.DeliveryOrderRepository
}

// NoOpTransactionScope runs the function against plain repositories without
// a real transaction. Used in tests.
type NoOpTransactionScope struct {
	stockRepo      inventory.StockRepository
	ledgerRepo     inventory.LedgerRepository
	transferRepo   inventory.TransferRepository
	adjustmentRepo inventory.AdjustmentRepository
	receiptRepo    trade.ReceiptRepository
	deliveryRepo   trade.DeliveryOrderRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given
// repositories. Repositories a test does not need may be nil.
func NewNoOpTransactionScope(
	stockRepo inventory.StockRepository,
	ledgerRepo inventory.LedgerRepository,
	transferRepo inventory.TransferRepository,
	adjustmentRepo inventory.AdjustmentRepository,
	receiptRepo trade.ReceiptRepository,
	deliveryRepo trade.DeliveryOrderRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		stockRepo:      stockRepo,
		ledgerRepo:     ledgerRepo,
		transferRepo:   transferRepo,
		adjustmentRepo: adjustmentRepo,
		receiptRepo:    receiptRepo,
		deliveryRepo:   deliveryRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) StockRepo() inventory.StockRepository {
	return s.stockRepo
}

func (s *NoOpTransactionScope) LedgerRepo() inventory.LedgerRepository {
	return s.ledgerRepo
}

func (s *NoOpTransactionScope) TransferRepo() inventory.TransferRepository {
	return s.transferRepo
}

func (s *NoOpTransactionScope) AdjustmentRepo() inventory.AdjustmentRepository {
	return s.adjustmentRepo
}

func (s *NoOpTransactionScope) ReceiptRepo() trade.ReceiptRepository {
	return s.receiptRepo
}

func (s *NoOpTransactionScope) DeliveryRepo() trade.DeliveryOrderRepository {
	return s.deliveryRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
