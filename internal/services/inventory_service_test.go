package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"odoo-inventory-api/internal/odoo"
)

// fakeCall records one ExecuteKw invocation
type fakeCall struct {
	model   string
	method  string
	args    []interface{}
	options map[string]interface{}
}

// scripted is one expected invocation and its canned result
type scripted struct {
	model  string
	method string
	result interface{}
	err    error
}

// fakeExecutor plays back a script of Odoo responses in order
type fakeExecutor struct {
	t      *testing.T
	script []scripted
	calls  []fakeCall
}

func (f *fakeExecutor) ExecuteKw(ctx context.Context, model, method string, args []interface{}, options map[string]interface{}) (interface{}, error) {
	f.t.Helper()
	f.calls = append(f.calls, fakeCall{model: model, method: method, args: args, options: options})

	if len(f.script) == 0 {
		f.t.Fatalf("unexpected call %s.%s", model, method)
	}
	next := f.script[0]
	f.script = f.script[1:]

	if next.model != model || next.method != method {
		f.t.Fatalf("call %s.%s, script expected %s.%s", model, method, next.model, next.method)
	}
	return next.result, next.err
}

func dec(value float64) *decimal.Decimal {
	d := decimal.NewFromFloat(value)
	return &d
}

func productRecord(id int64, name string, price, cost float64, tagIDs interface{}) map[string]interface{} {
	return map[string]interface{}{
		"id":              id,
		"name":            name,
		"list_price":      price,
		"standard_price":  cost,
		"currency_id":     []interface{}{int64(1), "USD"},
		"product_tag_ids": tagIDs,
	}
}

func TestListProducts(t *testing.T) {
	executor := &fakeExecutor{t: t, script: []scripted{
		{model: "product.product", method: "search", result: []interface{}{int64(7)}},
		{model: "product.product", method: "read", result: []interface{}{
			productRecord(7, "Croissant", 3.5, 1.2, []interface{}{int64(4)}),
		}},
		{model: "product.product", method: "search_count", result: int64(1)},
		{model: "product.tag", method: "read", result: []interface{}{
			map[string]interface{}{"id": int64(4), "name": "Organic", "color": int64(2)},
		}},
	}}
	service := NewInventoryService(executor)

	response, err := service.ListProducts(context.Background(), &ProductQuery{
		SearchTerm: "crois",
		Method:     "GET",
	})
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}

	if !response.Success || !response.Found {
		t.Errorf("response flags = (%v, %v), want (true, true)", response.Success, response.Found)
	}
	if len(response.Data) != 1 {
		t.Fatalf("got %d products, want 1", len(response.Data))
	}

	product := response.Data[0]
	if product.Name != "Croissant" || product.Price != 3.5 {
		t.Errorf("product = %+v", product)
	}
	if len(product.Tags) != 1 || product.Tags[0].Name != "Organic" {
		t.Errorf("product tags = %+v", product.Tags)
	}

	if response.Pagination.TotalCount != 1 || response.Pagination.Limit != DefaultListLimit {
		t.Errorf("pagination = %+v", response.Pagination)
	}
	if response.Pagination.HasMore {
		t.Error("pagination.HasMore = true, want false")
	}
	if response.Message != "Found 1 product(s)" {
		t.Errorf("message = %q", response.Message)
	}

	// The search domain restricts to stockable products and ORs the name
	// and internal reference conditions.
	domain := executor.calls[0].args[0].([]interface{})
	if len(domain) != 4 {
		t.Fatalf("search domain has %d entries, want 4", len(domain))
	}
	if domain[1] != "|" {
		t.Errorf("domain[1] = %v, want |", domain[1])
	}
	if executor.calls[0].options["order"] != "name" {
		t.Errorf("search order = %v, want name", executor.calls[0].options["order"])
	}
}

func TestListProductsEmpty(t *testing.T) {
	executor := &fakeExecutor{t: t, script: []scripted{
		{model: "product.product", method: "search", result: []interface{}{}},
	}}
	service := NewInventoryService(executor)

	response, err := service.ListProducts(context.Background(), &ProductQuery{
		SearchTerm: "nothing",
		Method:     "POST",
	})
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}

	if response.Found {
		t.Error("Found = true, want false")
	}
	if len(response.Data) != 0 {
		t.Errorf("got %d products, want 0", len(response.Data))
	}
	if response.Message != "No products found matching: nothing" {
		t.Errorf("message = %q", response.Message)
	}
	if response.FiltersApplied.SearchMethod != "POST" {
		t.Errorf("search method = %q, want POST", response.FiltersApplied.SearchMethod)
	}
}

func TestListProductsInvalidCategory(t *testing.T) {
	service := NewInventoryService(&fakeExecutor{t: t})

	_, err := service.ListProducts(context.Background(), &ProductQuery{CategoryID: "pastry"})
	if err == nil {
		t.Fatal("expected error for non-integer category_id")
	}
	if !strings.Contains(err.Error(), "invalid category_id") {
		t.Errorf("error = %v", err)
	}
}

func TestListProductsUpstreamErrorStaysUpstream(t *testing.T) {
	executor := &fakeExecutor{t: t, script: []scripted{
		{model: "product.product", method: "search", err: &odoo.UpstreamError{
			Op:  "authenticate",
			Err: errors.New("invalid credentials"),
		}},
	}}
	service := NewInventoryService(executor)

	_, err := service.ListProducts(context.Background(), &ProductQuery{Method: "GET"})
	if err == nil {
		t.Fatal("expected error")
	}
	// The wrapping must preserve the upstream classification so the
	// handler does not mistake the message text for a validation error.
	if !odoo.IsUpstream(err) {
		t.Errorf("error lost upstream classification: %v", err)
	}
}

func TestListTags(t *testing.T) {
	executor := &fakeExecutor{t: t, script: []scripted{
		{model: "product.tag", method: "search", result: []interface{}{int64(4), int64(5)}},
		{model: "product.tag", method: "read", result: []interface{}{
			map[string]interface{}{"id": int64(4), "name": "Organic", "color": int64(2)},
			map[string]interface{}{"id": int64(5), "name": "Seasonal", "color": int64(0)},
		}},
		{model: "product.tag", method: "search_count", result: int64(12)},
	}}
	service := NewInventoryService(executor)

	response, err := service.ListTags(context.Background(), &TagQuery{Limit: 2, Method: "GET"})
	if err != nil {
		t.Fatalf("ListTags() error = %v", err)
	}

	if len(response.Data) != 2 {
		t.Fatalf("got %d tags, want 2", len(response.Data))
	}
	if response.Pagination.TotalCount != 12 || !response.Pagination.HasMore {
		t.Errorf("pagination = %+v", response.Pagination)
	}
}

func TestCreateTagDuplicate(t *testing.T) {
	executor := &fakeExecutor{t: t, script: []scripted{
		{model: "product.tag", method: "search", result: []interface{}{int64(4)}},
	}}
	service := NewInventoryService(executor)

	_, err := service.CreateTag(context.Background(), &CreateTagRequest{Name: "Organic"})
	if err == nil {
		t.Fatal("expected duplicate error")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("error = %v", err)
	}
}

func TestCreateTag(t *testing.T) {
	executor := &fakeExecutor{t: t, script: []scripted{
		{model: "product.tag", method: "search", result: []interface{}{}},
		{model: "product.tag", method: "create", result: int64(12)},
	}}
	service := NewInventoryService(executor)

	tag, err := service.CreateTag(context.Background(), &CreateTagRequest{Name: "  Gluten Free ", Color: 3})
	if err != nil {
		t.Fatalf("CreateTag() error = %v", err)
	}

	if tag.ID != 12 || tag.Name != "Gluten Free" || tag.Color != 3 {
		t.Errorf("tag = %+v", tag)
	}
}

func TestCreateTagEmptyName(t *testing.T) {
	service := NewInventoryService(&fakeExecutor{t: t})

	_, err := service.CreateTag(context.Background(), &CreateTagRequest{Name: "   "})
	if err == nil || !strings.Contains(err.Error(), "cannot be empty") {
		t.Errorf("error = %v", err)
	}
}

func TestCreateProductValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     *CreateProductRequest
		wantErr string
	}{
		{
			name:    "missing name",
			req:     &CreateProductRequest{Price: dec(5)},
			wantErr: "validation failed",
		},
		{
			name:    "missing price",
			req:     &CreateProductRequest{Name: "Sourdough"},
			wantErr: "price is required",
		},
		{
			name:    "negative price",
			req:     &CreateProductRequest{Name: "Sourdough", Price: dec(-1)},
			wantErr: "must be a positive number",
		},
		{
			name:    "negative cost price",
			req:     &CreateProductRequest{Name: "Sourdough", Price: dec(5), CostPrice: dec(-2)},
			wantErr: "must be a positive number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewInventoryService(&fakeExecutor{t: t})
			_, err := service.CreateProduct(context.Background(), tt.req)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestCreateProductLegacyCostField(t *testing.T) {
	executor := &fakeExecutor{t: t, script: []scripted{
		{model: "product.product", method: "search", result: []interface{}{}},
		{model: "product.product", method: "create", result: int64(21)},
		{model: "product.product", method: "read", result: []interface{}{
			productRecord(21, "Rye Loaf", 6.0, 0, false),
		}},
	}}
	service := NewInventoryService(executor)

	product, err := service.CreateProduct(context.Background(), &CreateProductRequest{
		Name: "Rye Loaf",
		Cost: dec(6.0),
	})
	if err != nil {
		t.Fatalf("CreateProduct() error = %v", err)
	}

	if product.ID != 21 || product.SalePrice != 6.0 {
		t.Errorf("product = %+v", product)
	}
	if !product.CanBeSold || product.CanBePurchased {
		t.Errorf("flags = (%v, %v), want (true, false)", product.CanBeSold, product.CanBePurchased)
	}

	created := executor.calls[1].args[0].(map[string]interface{})
	if created["type"] != "product" || created["sale_ok"] != true || created["purchase_ok"] != false {
		t.Errorf("create payload = %+v", created)
	}
}

func TestCreateProductUnknownTags(t *testing.T) {
	executor := &fakeExecutor{t: t, script: []scripted{
		{model: "product.tag", method: "search", result: []interface{}{int64(4)}},
	}}
	service := NewInventoryService(executor)

	_, err := service.CreateProduct(context.Background(), &CreateProductRequest{
		Name:   "Sourdough",
		Price:  dec(5),
		TagIDs: []int64{4, 99},
	})
	if err == nil || !strings.Contains(err.Error(), "do not exist") {
		t.Errorf("error = %v", err)
	}
}

func TestCreateProductDuplicate(t *testing.T) {
	executor := &fakeExecutor{t: t, script: []scripted{
		{model: "product.product", method: "search", result: []interface{}{int64(3)}},
	}}
	service := NewInventoryService(executor)

	_, err := service.CreateProduct(context.Background(), &CreateProductRequest{
		Name:  "Croissant",
		Price: dec(3.5),
	})
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("error = %v", err)
	}
}

func TestUpdateProductPriceNotFound(t *testing.T) {
	executor := &fakeExecutor{t: t, script: []scripted{
		{model: "product.product", method: "search", result: []interface{}{}},
		{model: "product.product", method: "search", result: []interface{}{}},
	}}
	service := NewInventoryService(executor)

	_, err := service.UpdateProductPrice(context.Background(), &UpdatePriceRequest{
		ProductName: "Ghost Bread",
		Price:       dec(2),
	})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %v", err)
	}
}

func TestUpdateProductPriceMultipleMatches(t *testing.T) {
	executor := &fakeExecutor{t: t, script: []scripted{
		{model: "product.product", method: "search", result: []interface{}{}},
		{model: "product.product", method: "search", result: []interface{}{int64(1), int64(2)}},
		{model: "product.product", method: "read", result: []interface{}{
			map[string]interface{}{"id": int64(1), "name": "Bread Small"},
			map[string]interface{}{"id": int64(2), "name": "Bread Large"},
		}},
	}}
	service := NewInventoryService(executor)

	_, err := service.UpdateProductPrice(context.Background(), &UpdatePriceRequest{
		ProductName: "Bread",
		Price:       dec(2),
	})

	var multiple *MultipleMatchesError
	if !errors.As(err, &multiple) {
		t.Fatalf("error = %v, want MultipleMatchesError", err)
	}
	if len(multiple.Matches) != 2 || multiple.Matches[1].Name != "Bread Large" {
		t.Errorf("matches = %+v", multiple.Matches)
	}
}

func TestUpdateProductPrice(t *testing.T) {
	executor := &fakeExecutor{t: t, script: []scripted{
		{model: "product.product", method: "search", result: []interface{}{int64(5)}},
		{model: "product.product", method: "read", result: []interface{}{
			productRecord(5, "Croissant", 2.0, 1.0, false),
		}},
		{model: "product.product", method: "write", result: true},
		{model: "product.product", method: "read", result: []interface{}{
			productRecord(5, "Croissant", 3.0, 3.0, false),
		}},
	}}
	service := NewInventoryService(executor)

	update, err := service.UpdateProductPrice(context.Background(), &UpdatePriceRequest{
		ProductName:     "Croissant",
		Price:           dec(3.0),
		UpdateCostPrice: true,
	})
	if err != nil {
		t.Fatalf("UpdateProductPrice() error = %v", err)
	}

	if update.PreviousPrice != 2.0 || update.NewPrice != 3.0 {
		t.Errorf("prices = (%v, %v)", update.PreviousPrice, update.NewPrice)
	}
	if !update.CostPriceUpdated {
		t.Error("CostPriceUpdated = false, want true")
	}

	written := executor.calls[2].args[1].(map[string]interface{})
	if _, ok := written["standard_price"]; !ok {
		t.Errorf("write payload = %+v, want standard_price set", written)
	}
}

func TestUpdateProductPriceNegative(t *testing.T) {
	service := NewInventoryService(&fakeExecutor{t: t})

	_, err := service.UpdateProductPrice(context.Background(), &UpdatePriceRequest{
		ProductName: "Croissant",
		Price:       dec(-3),
	})
	if err == nil || !strings.Contains(err.Error(), "positive") {
		t.Errorf("error = %v", err)
	}
}
