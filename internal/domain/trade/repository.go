package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockmaster/backend/internal/domain/shared"
)

// ReceiptRepository defines persistence operations for receipts
type ReceiptRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Receipt, error)
	FindByNumber(ctx context.Context, number string) (*Receipt, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Receipt, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, receipt *Receipt) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DeliveryOrderRepository defines persistence operations for delivery orders
type DeliveryOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*DeliveryOrder, error)
	FindByNumber(ctx context.Context, number string) (*DeliveryOrder, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]DeliveryOrder, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, order *DeliveryOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
}
