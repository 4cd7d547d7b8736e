package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"odoo-inventory-api/internal/models"
	"odoo-inventory-api/internal/odoo"
)

// productFields are the product.product fields this API exposes
var productFields = []string{
	"id",
	"name",
	"list_price",
	"standard_price",
	"currency_id",
	"product_tag_ids",
}

// tagFields are the product.tag fields this API exposes
var tagFields = []string{"id", "name", "color"}

// inventoryService implements InventoryService over the Odoo external API
type inventoryService struct {
	odoo      odoo.Executor
	validator *validator.Validate
}

// NewInventoryService creates a new inventory service instance
func NewInventoryService(executor odoo.Executor) InventoryService {
	return &inventoryService{
		odoo:      executor,
		validator: validator.New(),
	}
}

// ListProducts lists or searches stockable products with pagination
func (s *inventoryService) ListProducts(ctx context.Context, query *ProductQuery) (*models.ProductListResponse, error) {
	if query == nil {
		return nil, fmt.Errorf("product query cannot be nil")
	}
	normalizeWindow(&query.Limit, &query.Offset)

	// Only stockable products are part of the inventory
	domain := odoo.NewDomain(odoo.Cond("type", "=", "product"))

	if query.SearchTerm != "" {
		domain = domain.Append(
			odoo.Or,
			odoo.Cond("name", "ilike", query.SearchTerm),
			odoo.Cond("default_code", "ilike", query.SearchTerm),
		)
	}

	if query.CategoryID != "" {
		categoryID, err := strconv.ParseInt(query.CategoryID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid category_id %q: must be an integer", query.CategoryID)
		}
		domain = domain.Append(odoo.Cond("categ_id", "=", categoryID))
	}

	response := &models.ProductListResponse{
		Success: true,
		Data:    []models.Product{},
		Pagination: models.Pagination{
			Limit:  query.Limit,
			Offset: query.Offset,
		},
		FiltersApplied: models.ProductFilters{
			SearchTerm:   query.SearchTerm,
			CategoryID:   query.CategoryID,
			SearchMethod: query.Method,
		},
	}

	searchResult, err := s.odoo.ExecuteKw(ctx, odoo.ModelProduct, "search", domain.AsArgs(), map[string]interface{}{
		"limit":  query.Limit,
		"offset": query.Offset,
		"order":  "name",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	productIDs := odoo.IDs(searchResult)
	if len(productIDs) == 0 {
		response.Message = emptyProductsMessage(query.SearchTerm)
		return response, nil
	}

	readResult, err := s.odoo.ExecuteKw(ctx, odoo.ModelProduct, "read", []interface{}{productIDs, productFields}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	records, err := odoo.Records(readResult)
	if err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	countResult, err := s.odoo.ExecuteKw(ctx, odoo.ModelProduct, "search_count", domain.AsArgs(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	totalCount := odoo.Count(countResult)

	tagsByID, err := s.resolveTags(ctx, records)
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(records))
	for _, record := range records {
		products = append(products, odoo.DecodeProduct(record, tagsByID))
	}

	logrus.WithFields(logrus.Fields{
		"count":       len(products),
		"total_count": totalCount,
		"search_term": query.SearchTerm,
	}).Info("Retrieved products from Odoo")

	response.Found = true
	response.Data = products
	response.Pagination.TotalCount = totalCount
	response.Pagination.HasMore = int64(query.Offset+query.Limit) < totalCount
	response.Message = fmt.Sprintf("Found %d product(s)", len(products))

	return response, nil
}

// resolveTags batch-reads every tag referenced by the given product records
func (s *inventoryService) resolveTags(ctx context.Context, records []map[string]interface{}) (map[int64]models.Tag, error) {
	seen := make(map[int64]bool)
	uniqueIDs := make([]int64, 0)
	for _, record := range records {
		for _, tagID := range odoo.IDList(record["product_tag_ids"]) {
			if !seen[tagID] {
				seen[tagID] = true
				uniqueIDs = append(uniqueIDs, tagID)
			}
		}
	}

	tagsByID := make(map[int64]models.Tag)
	if len(uniqueIDs) == 0 {
		return tagsByID, nil
	}

	readResult, err := s.odoo.ExecuteKw(ctx, odoo.ModelTag, "read", []interface{}{uniqueIDs, tagFields}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read product tags: %w", err)
	}
	tagRecords, err := odoo.Records(readResult)
	if err != nil {
		return nil, fmt.Errorf("failed to decode product tags: %w", err)
	}

	for _, record := range tagRecords {
		tag := odoo.DecodeTag(record)
		tagsByID[tag.ID] = tag
	}
	return tagsByID, nil
}

// ListTags lists or searches product tags with pagination
func (s *inventoryService) ListTags(ctx context.Context, query *TagQuery) (*models.TagListResponse, error) {
	if query == nil {
		return nil, fmt.Errorf("tag query cannot be nil")
	}
	normalizeWindow(&query.Limit, &query.Offset)

	domain := odoo.NewDomain()
	if query.SearchTerm != "" {
		domain = domain.Append(odoo.Cond("name", "ilike", query.SearchTerm))
	}

	response := &models.TagListResponse{
		Success: true,
		Data:    []models.Tag{},
		Pagination: models.Pagination{
			Limit:  query.Limit,
			Offset: query.Offset,
		},
		FiltersApplied: models.TagFilters{
			SearchTerm:   query.SearchTerm,
			SearchMethod: query.Method,
		},
	}

	searchResult, err := s.odoo.ExecuteKw(ctx, odoo.ModelTag, "search", domain.AsArgs(), map[string]interface{}{
		"limit":  query.Limit,
		"offset": query.Offset,
		"order":  "name",
	})
	if err != nil {
		return nil, fmt.Errorf("could not retrieve tags: %w", err)
	}

	tagIDs := odoo.IDs(searchResult)
	if len(tagIDs) == 0 {
		return response, nil
	}

	readResult, err := s.odoo.ExecuteKw(ctx, odoo.ModelTag, "read", []interface{}{tagIDs, tagFields}, nil)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve tags: %w", err)
	}
	records, err := odoo.Records(readResult)
	if err != nil {
		return nil, fmt.Errorf("could not decode tags: %w", err)
	}

	countResult, err := s.odoo.ExecuteKw(ctx, odoo.ModelTag, "search_count", domain.AsArgs(), nil)
	if err != nil {
		return nil, fmt.Errorf("could not count tags: %w", err)
	}
	totalCount := odoo.Count(countResult)

	logrus.WithFields(logrus.Fields{
		"count":       len(records),
		"search_term": query.SearchTerm,
	}).Info("Retrieved tags from Odoo")

	response.Data = odoo.DecodeTags(records)
	response.Pagination.TotalCount = totalCount
	response.Pagination.HasMore = int64(query.Offset+query.Limit) < totalCount

	return response, nil
}

// CreateTag creates a new product tag
func (s *inventoryService) CreateTag(ctx context.Context, req *CreateTagRequest) (*models.Tag, error) {
	if req == nil {
		return nil, fmt.Errorf("create tag request cannot be nil")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("tag name cannot be empty")
	}

	existing, err := s.odoo.ExecuteKw(ctx, odoo.ModelTag, "search",
		odoo.NewDomain(odoo.Cond("name", "=", name)).AsArgs(), nil)
	if err != nil {
		return nil, fmt.Errorf("could not create tag: %w", err)
	}
	if len(odoo.IDs(existing)) > 0 {
		return nil, fmt.Errorf("tag %q already exists", name)
	}

	createResult, err := s.odoo.ExecuteKw(ctx, odoo.ModelTag, "create", []interface{}{
		map[string]interface{}{
			"name":  name,
			"color": req.Color,
		},
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create tag: %w", err)
	}

	tagID := odoo.CreatedID(createResult)
	logrus.WithFields(logrus.Fields{
		"tag_id": tagID,
		"name":   name,
	}).Info("Created tag in Odoo")

	return &models.Tag{
		ID:    tagID,
		Name:  name,
		Color: req.Color,
	}, nil
}

// CreateProduct creates a new sellable, stockable product
func (s *inventoryService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.CreatedProduct, error) {
	if req == nil {
		return nil, fmt.Errorf("create product request cannot be nil")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("product name cannot be empty")
	}

	salePrice := req.SalePrice()
	if salePrice == nil {
		return nil, fmt.Errorf("price is required (or use legacy \"cost\" field)")
	}
	if salePrice.IsNegative() {
		return nil, fmt.Errorf("price must be a positive number")
	}
	if req.CostPrice != nil && req.CostPrice.IsNegative() {
		return nil, fmt.Errorf("cost price must be a positive number")
	}

	if len(req.TagIDs) > 0 {
		existing, err := s.odoo.ExecuteKw(ctx, odoo.ModelTag, "search",
			odoo.NewDomain(odoo.Cond("id", "in", req.TagIDs)).AsArgs(), nil)
		if err != nil {
			return nil, fmt.Errorf("could not create product: %w", err)
		}
		if len(odoo.IDs(existing)) != len(req.TagIDs) {
			return nil, fmt.Errorf("invalid tag_ids: one or more tag IDs do not exist")
		}
	}

	existing, err := s.odoo.ExecuteKw(ctx, odoo.ModelProduct, "search",
		odoo.NewDomain(odoo.Cond("name", "=", name)).AsArgs(), nil)
	if err != nil {
		return nil, fmt.Errorf("could not create product: %w", err)
	}
	if len(odoo.IDs(existing)) > 0 {
		return nil, fmt.Errorf("product %q already exists", name)
	}

	price, _ := salePrice.Float64()
	productData := map[string]interface{}{
		"name":        name,
		"list_price":  price,
		"type":        "product",
		"sale_ok":     true,
		"purchase_ok": false,
	}
	if len(req.TagIDs) > 0 {
		// (6, 0, ids) replaces the tag set with the given ids
		productData["product_tag_ids"] = []interface{}{[]interface{}{6, 0, req.TagIDs}}
	}
	if req.CostPrice != nil {
		costPrice, _ := req.CostPrice.Float64()
		productData["standard_price"] = costPrice
	}

	createResult, err := s.odoo.ExecuteKw(ctx, odoo.ModelProduct, "create", []interface{}{productData}, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create product: %w", err)
	}
	productID := odoo.CreatedID(createResult)

	record, err := s.readProduct(ctx, productID, []string{"id", "name", "standard_price", "list_price", "product_tag_ids"})
	if err != nil {
		return nil, fmt.Errorf("could not read created product: %w", err)
	}

	tags, err := s.readTagsFor(ctx, record)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"product_id": productID,
		"name":       name,
	}).Info("Created product in Odoo")

	return &models.CreatedProduct{
		ID:             productID,
		Name:           odoo.Str(record["name"]),
		CostPrice:      odoo.Float(record["standard_price"]),
		SalePrice:      odoo.Float(record["list_price"]),
		Tags:           tags,
		CanBeSold:      true,
		CanBePurchased: false,
	}, nil
}

// UpdateProductPrice updates a product's sale price, located by name
func (s *inventoryService) UpdateProductPrice(ctx context.Context, req *UpdatePriceRequest) (*models.PriceUpdate, error) {
	if req == nil {
		return nil, fmt.Errorf("update price request cannot be nil")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	name := strings.TrimSpace(req.ProductName)
	if name == "" {
		return nil, fmt.Errorf("product name cannot be empty")
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("price must be a positive number")
	}

	productIDs, err := s.findByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if len(productIDs) == 0 {
		return nil, fmt.Errorf("product not found: %s", name)
	}

	if len(productIDs) > 1 {
		matches, err := s.readRefs(ctx, productIDs)
		if err != nil {
			return nil, err
		}
		return nil, &MultipleMatchesError{Name: name, Matches: matches}
	}

	productID := productIDs[0]

	current, err := s.readProduct(ctx, productID, []string{"id", "name", "list_price", "standard_price"})
	if err != nil {
		return nil, fmt.Errorf("could not read product: %w", err)
	}
	previousPrice := odoo.Float(current["list_price"])

	newPrice, _ := req.Price.Float64()
	updateData := map[string]interface{}{"list_price": newPrice}
	if req.UpdateCostPrice {
		updateData["standard_price"] = newPrice
	}

	if _, err := s.odoo.ExecuteKw(ctx, odoo.ModelProduct, "write",
		[]interface{}{[]int64{productID}, updateData}, nil); err != nil {
		return nil, fmt.Errorf("could not update product: %w", err)
	}

	updated, err := s.readProduct(ctx, productID, []string{"id", "name", "list_price", "standard_price", "product_tag_ids"})
	if err != nil {
		return nil, fmt.Errorf("could not read updated product: %w", err)
	}

	tags, err := s.readTagsFor(ctx, updated)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"product_id":     productID,
		"name":           name,
		"previous_price": previousPrice,
		"new_price":      newPrice,
	}).Info("Updated product price in Odoo")

	return &models.PriceUpdate{
		ID:               odoo.Int(updated["id"]),
		Name:             odoo.Str(updated["name"]),
		PreviousPrice:    previousPrice,
		NewPrice:         odoo.Float(updated["list_price"]),
		CostPrice:        odoo.Float(updated["standard_price"]),
		CostPriceUpdated: req.UpdateCostPrice,
		Tags:             tags,
	}, nil
}

// findByName looks a product up by exact name, falling back to a
// case-insensitive partial match.
func (s *inventoryService) findByName(ctx context.Context, name string) ([]int64, error) {
	exact, err := s.odoo.ExecuteKw(ctx, odoo.ModelProduct, "search",
		odoo.NewDomain(odoo.Cond("name", "=", name)).AsArgs(), nil)
	if err != nil {
		return nil, fmt.Errorf("could not search products: %w", err)
	}
	if ids := odoo.IDs(exact); len(ids) > 0 {
		return ids, nil
	}

	partial, err := s.odoo.ExecuteKw(ctx, odoo.ModelProduct, "search",
		odoo.NewDomain(odoo.Cond("name", "ilike", name)).AsArgs(), nil)
	if err != nil {
		return nil, fmt.Errorf("could not search products: %w", err)
	}
	return odoo.IDs(partial), nil
}

// readProduct reads a single product record with the given fields
func (s *inventoryService) readProduct(ctx context.Context, id int64, fields []string) (map[string]interface{}, error) {
	readResult, err := s.odoo.ExecuteKw(ctx, odoo.ModelProduct, "read", []interface{}{[]int64{id}, fields}, nil)
	if err != nil {
		return nil, err
	}
	records, err := odoo.Records(readResult)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("product %d not found", id)
	}
	return records[0], nil
}

// readRefs reads id/name pairs for a set of products
func (s *inventoryService) readRefs(ctx context.Context, ids []int64) ([]models.ProductRef, error) {
	readResult, err := s.odoo.ExecuteKw(ctx, odoo.ModelProduct, "read",
		[]interface{}{ids, []string{"id", "name"}}, nil)
	if err != nil {
		return nil, fmt.Errorf("could not read products: %w", err)
	}
	records, err := odoo.Records(readResult)
	if err != nil {
		return nil, fmt.Errorf("could not decode products: %w", err)
	}

	refs := make([]models.ProductRef, 0, len(records))
	for _, record := range records {
		refs = append(refs, models.ProductRef{
			ID:   odoo.Int(record["id"]),
			Name: odoo.Str(record["name"]),
		})
	}
	return refs, nil
}

// readTagsFor reads tag details for the tags referenced by a record
func (s *inventoryService) readTagsFor(ctx context.Context, record map[string]interface{}) ([]models.Tag, error) {
	tagIDs := odoo.IDList(record["product_tag_ids"])
	if len(tagIDs) == 0 {
		return []models.Tag{}, nil
	}

	readResult, err := s.odoo.ExecuteKw(ctx, odoo.ModelTag, "read", []interface{}{tagIDs, tagFields}, nil)
	if err != nil {
		return nil, fmt.Errorf("could not read product tags: %w", err)
	}
	records, err := odoo.Records(readResult)
	if err != nil {
		return nil, fmt.Errorf("could not decode product tags: %w", err)
	}
	return odoo.DecodeTags(records), nil
}

// normalizeWindow applies listing defaults in place
func normalizeWindow(limit, offset *int) {
	if *limit <= 0 {
		*limit = DefaultListLimit
	}
	if *offset < 0 {
		*offset = 0
	}
}

func emptyProductsMessage(searchTerm string) string {
	if searchTerm != "" {
		return fmt.Sprintf("No products found matching: %s", searchTerm)
	}
	return "No products found"
}
