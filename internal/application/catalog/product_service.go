package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockmaster/backend/internal/domain/catalog"
	"github.com/stockmaster/backend/internal/domain/inventory"
	"github.com/stockmaster/backend/internal/domain/shared"
)

// ProductService handles product master data
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	stockRepo    inventory.StockRepository
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	stockRepo inventory.StockRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		stockRepo:    stockRepo,
	}
}

// Create creates a product with a unique SKU
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsBySKU(ctx, req.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists
	}

	product, err := catalog.NewProduct(req.SKU, req.Name, req.Unit)
	if err != nil {
		return nil, err
	}
	product.Description = req.Description

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		product.SetCategory(req.CategoryID)
	}
	if err := applyProductPricing(product, req.CostPrice, req.SellingPrice, req.ReorderPoint, req.ReorderQuantity); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Update updates product fields; the SKU is immutable
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.Rename(req.Name); err != nil {
		return nil, err
	}
	product.Description = req.Description

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}
	product.SetCategory(req.CategoryID)

	if err := applyProductPricing(product, req.CostPrice, req.SellingPrice, req.ReorderPoint, req.ReorderQuantity); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID returns one product
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List returns products matching the filter with the total count
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := shared.NewFilter()
	domainFilter.Search = filter.Search
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.CategoryID != nil {
		domainFilter = domainFilter.WithFilter("category_id", *filter.CategoryID)
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	return responses, total, nil
}

// Delete removes a product unless non-zero stock exists for it
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}

	hasStock, err := s.stockRepo.HasNonZeroByProduct(ctx, id)
	if err != nil {
		return err
	}
	if hasStock {
		return shared.NewDomainError("PRODUCT_IN_USE", "Product still has stock and cannot be deleted")
	}

	return s.productRepo.Delete(ctx, id)
}

// applyProductPricing applies the optional price and reorder fields, keeping
// the current value where a field is absent
func applyProductPricing(product *catalog.Product, costPrice, sellingPrice, reorderPoint, reorderQuantity *decimal.Decimal) error {
	if costPrice != nil || sellingPrice != nil {
		cost := product.CostPrice
		selling := product.SellingPrice
		if costPrice != nil {
			cost = *costPrice
		}
		if sellingPrice != nil {
			selling = *sellingPrice
		}
		if err := product.SetPrices(cost, selling); err != nil {
			return err
		}
	}
	if reorderPoint != nil || reorderQuantity != nil {
		point := product.ReorderPoint
		quantity := product.ReorderQuantity
		if reorderPoint != nil {
			point = *reorderPoint
		}
		if reorderQuantity != nil {
			quantity = *reorderQuantity
		}
		if err := product.SetReorderLevels(point, quantity); err != nil {
			return err
		}
	}
	return nil
}
