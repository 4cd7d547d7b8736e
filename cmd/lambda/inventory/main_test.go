package main

import (
	"context"
	"encoding/base64"
	"net/http"
	"reflect"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"odoo-inventory-api/internal/models"
	"odoo-inventory-api/internal/services"
	"odoo-inventory-api/pkg/lambda"
)

// noopService satisfies the service interface for routing tests
type noopService struct{}

func (noopService) ListProducts(ctx context.Context, query *services.ProductQuery) (*models.ProductListResponse, error) {
	return &models.ProductListResponse{Success: true}, nil
}

func (noopService) ListTags(ctx context.Context, query *services.TagQuery) (*models.TagListResponse, error) {
	return &models.TagListResponse{Success: true}, nil
}

func (noopService) CreateTag(ctx context.Context, req *services.CreateTagRequest) (*models.Tag, error) {
	return &models.Tag{ID: 1, Name: "Organic"}, nil
}

func (noopService) CreateProduct(ctx context.Context, req *services.CreateProductRequest) (*models.CreatedProduct, error) {
	return &models.CreatedProduct{ID: 1}, nil
}

func (noopService) UpdateProductPrice(ctx context.Context, req *services.UpdatePriceRequest) (*models.PriceUpdate, error) {
	return &models.PriceUpdate{ID: 1}, nil
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"/", []string{}},
		{"", []string{}},
		{"/tags", []string{"tags"}},
		{"/tags/", []string{"tags"}},
		{"//products", []string{"products"}},
		{"/a/b/c", []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		if got := splitPath(tt.path); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestRoute(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"list products", http.MethodGet, "/", "", http.StatusOK},
		{"search products", http.MethodPost, "/", `{"product_name": "bread"}`, http.StatusOK},
		{"search endpoint", http.MethodPost, "/search", `{"product_name": "bread"}`, http.StatusOK},
		{"search rejects GET", http.MethodGet, "/search", "", http.StatusMethodNotAllowed},
		{"list tags", http.MethodGet, "/tags", "", http.StatusOK},
		{"post tags", http.MethodPost, "/tags", `{"name": "Organic"}`, http.StatusCreated},
		{"tags reject PUT", http.MethodPut, "/tags", "", http.StatusMethodNotAllowed},
		{"create product", http.MethodPost, "/products", `{"name": "Rye", "price": 6.0}`, http.StatusCreated},
		{"update price", http.MethodPut, "/products", `{"product_name": "Rye", "price": 7.0}`, http.StatusOK},
		{"products reject GET", http.MethodGet, "/products", "", http.StatusMethodNotAllowed},
		{"listing rejects DELETE", http.MethodDelete, "/", "", http.StatusMethodNotAllowed},
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"unknown path", http.MethodGet, "/nowhere", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &lambda.Request{
				Method: tt.method,
				Path:   tt.path,
				Body:   []byte(tt.body),
			}

			resp, err := route(context.Background(), noopService{}, req)
			if err != nil {
				t.Fatalf("route() error = %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d, body %s", resp.StatusCode, tt.wantStatus, resp.Body)
			}
		})
	}
}

func TestDecodeBody(t *testing.T) {
	plain := events.LambdaFunctionURLRequest{Body: `{"name": "x"}`}
	if got := decodeBody(plain); string(got) != `{"name": "x"}` {
		t.Errorf("decodeBody(plain) = %s", got)
	}

	encoded := events.LambdaFunctionURLRequest{
		Body:            base64.StdEncoding.EncodeToString([]byte(`{"name": "x"}`)),
		IsBase64Encoded: true,
	}
	if got := decodeBody(encoded); string(got) != `{"name": "x"}` {
		t.Errorf("decodeBody(base64) = %s", got)
	}

	empty := events.LambdaFunctionURLRequest{}
	if got := decodeBody(empty); got != nil {
		t.Errorf("decodeBody(empty) = %v, want nil", got)
	}
}

func TestRespondMergesCORSHeaders(t *testing.T) {
	resp := respond(lambda.JSON(http.StatusOK, map[string]string{"ok": "yes"}))

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Headers["Access-Control-Allow-Origin"] != "*" {
		t.Errorf("missing CORS origin header: %+v", resp.Headers)
	}
	if resp.Headers["Content-Type"] != "application/json" {
		t.Errorf("missing content type: %+v", resp.Headers)
	}
}
