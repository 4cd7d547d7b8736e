package services

import (
	"context"

	"github.com/shopspring/decimal"

	"odoo-inventory-api/internal/models"
)

// InventoryService exposes the Odoo-backed inventory operations
type InventoryService interface {
	// ListProducts lists or searches stockable products with pagination
	ListProducts(ctx context.Context, query *ProductQuery) (*models.ProductListResponse, error)

	// ListTags lists or searches product tags with pagination
	ListTags(ctx context.Context, query *TagQuery) (*models.TagListResponse, error)

	// CreateTag creates a new product tag
	CreateTag(ctx context.Context, req *CreateTagRequest) (*models.Tag, error)

	// CreateProduct creates a new sellable, stockable product
	CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.CreatedProduct, error)

	// UpdateProductPrice updates a product's sale price, located by name
	UpdateProductPrice(ctx context.Context, req *UpdatePriceRequest) (*models.PriceUpdate, error)
}

// ProductQuery holds the filters for a product listing
type ProductQuery struct {
	SearchTerm string
	CategoryID string
	Limit      int
	Offset     int
	// Method is the HTTP method the query arrived with, echoed back in
	// the filters_applied block.
	Method string
}

// TagQuery holds the filters for a tag listing
type TagQuery struct {
	SearchTerm string
	Limit      int
	Offset     int
	Method     string
}

// CreateTagRequest is the payload for tag creation
type CreateTagRequest struct {
	Name  string `json:"name" validate:"required"`
	Color int64  `json:"color"`
}

// CreateProductRequest is the payload for product creation. The legacy
// cost field is accepted as an alias for price.
type CreateProductRequest struct {
	Name      string           `json:"name" validate:"required"`
	Price     *decimal.Decimal `json:"price"`
	Cost      *decimal.Decimal `json:"cost"`
	CostPrice *decimal.Decimal `json:"cost_price"`
	TagIDs    []int64          `json:"tag_ids"`
}

// SalePrice returns the requested sale price, preferring price over the
// legacy cost alias.
func (r *CreateProductRequest) SalePrice() *decimal.Decimal {
	if r.Price != nil {
		return r.Price
	}
	return r.Cost
}

// UpdatePriceRequest is the payload for a price update
type UpdatePriceRequest struct {
	ProductName     string           `json:"product_name" validate:"required"`
	Price           *decimal.Decimal `json:"price" validate:"required"`
	UpdateCostPrice bool             `json:"update_cost_price"`
}

// DefaultListLimit is applied when a listing request carries no limit
const DefaultListLimit = 100
