package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"odoo-inventory-api/internal/models"
	"odoo-inventory-api/internal/services"
	"odoo-inventory-api/pkg/lambda"
)

// ProductHandler handles product creation and price update requests
type ProductHandler struct {
	inventoryService services.InventoryService
}

// NewProductHandler creates a new product handler
func NewProductHandler(inventoryService services.InventoryService) *ProductHandler {
	return &ProductHandler{
		inventoryService: inventoryService,
	}
}

// multipleMatchesResponse reports an ambiguous name-based product lookup
type multipleMatchesResponse struct {
	Error      string              `json:"error"`
	Matches    []models.ProductRef `json:"matches"`
	Suggestion string              `json:"suggestion"`
}

// notFoundResponse reports a failed name-based product lookup
type notFoundResponse struct {
	Error      string `json:"error"`
	Suggestion string `json:"suggestion"`
}

// @Summary Create a product or update a price
// @Description A body with name/price creates a product; a body with product_name/price updates its price
// @Tags products
// @Accept json
// @Produce json
// @Success 200 {object} models.UpdateResponse
// @Success 201 {object} models.CreateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products [post]
func (h *ProductHandler) PostProducts(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Request body is required",
		})
		return
	}

	status, payload := h.dispatchPost(c.Request.Context(), body)
	c.JSON(status, payload)
}

// @Summary Update a product's price
// @Description Update a product's sale price, locating the product by name
// @Tags products
// @Accept json
// @Produce json
// @Param update body services.UpdatePriceRequest true "Price update"
// @Success 200 {object} models.UpdateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products [put]
func (h *ProductHandler) UpdatePrice(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Request body is required",
		})
		return
	}

	status, payload := h.update(c.Request.Context(), body)
	c.JSON(status, payload)
}

// HandlePostProducts handles product create/update dispatch for Lambda
func (h *ProductHandler) HandlePostProducts(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	if len(req.Body) == 0 {
		return lambda.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Request body is required",
		}), nil
	}

	status, payload := h.dispatchPost(ctx, req.Body)
	return lambda.JSON(status, payload), nil
}

// HandleUpdatePrice handles product price update for Lambda
func (h *ProductHandler) HandleUpdatePrice(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	if len(req.Body) == 0 {
		return lambda.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Request body is required",
		}), nil
	}

	status, payload := h.update(ctx, req.Body)
	return lambda.JSON(status, payload), nil
}

// dispatchPost routes a POST /products body to create or update based on
// its keys: product_name+price is an update, name+price (or legacy cost)
// is a create.
func (h *ProductHandler) dispatchPost(ctx context.Context, body []byte) (int, interface{}) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return http.StatusBadRequest, ErrorResponse{
			Error: "Invalid JSON in request body",
		}
	}

	_, hasProductName := probe["product_name"]
	_, hasPrice := probe["price"]
	_, hasName := probe["name"]
	_, hasCost := probe["cost"]

	switch {
	case hasProductName && hasPrice:
		return h.update(ctx, body)
	case hasName && (hasPrice || hasCost):
		return h.create(ctx, body)
	default:
		return http.StatusBadRequest, ErrorResponse{
			Error: `Invalid request body. For create: use "name" and "price" (or legacy "cost"). For update: use "product_name" and "price"`,
		}
	}
}

// create runs the product creation and maps service errors to status codes
func (h *ProductHandler) create(ctx context.Context, body []byte) (int, interface{}) {
	var req services.CreateProductRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return http.StatusBadRequest, ErrorResponse{
			Error: "Invalid JSON in request body",
		}
	}

	product, err := h.inventoryService.CreateProduct(ctx, &req)
	if err != nil {
		if isUpstreamError(err) {
			return http.StatusInternalServerError, ErrorResponse{
				Error:   "Could not create product",
				Message: upstreamMessage(err),
			}
		}
		if isDuplicateError(err) {
			return http.StatusConflict, ErrorResponse{
				Error: err.Error(),
			}
		}
		if isValidationError(err) {
			return http.StatusBadRequest, ErrorResponse{
				Error:   "Validation failed",
				Message: err.Error(),
			}
		}
		return http.StatusInternalServerError, ErrorResponse{
			Error:   "Could not create product",
			Message: err.Error(),
		}
	}

	return http.StatusCreated, models.CreateResponse{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	}
}

// update runs the price update and maps service errors to status codes
func (h *ProductHandler) update(ctx context.Context, body []byte) (int, interface{}) {
	var req services.UpdatePriceRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return http.StatusBadRequest, ErrorResponse{
			Error: "Invalid JSON in request body",
		}
	}

	update, err := h.inventoryService.UpdateProductPrice(ctx, &req)
	if err != nil {
		var multiple *services.MultipleMatchesError
		if errors.As(err, &multiple) {
			return http.StatusBadRequest, multipleMatchesResponse{
				Error:      err.Error(),
				Matches:    multiple.Matches,
				Suggestion: "Please use the exact product name",
			}
		}
		if isUpstreamError(err) {
			return http.StatusInternalServerError, ErrorResponse{
				Error:   "Could not update product",
				Message: upstreamMessage(err),
			}
		}
		if isNotFoundError(err) {
			return http.StatusNotFound, notFoundResponse{
				Error:      err.Error(),
				Suggestion: "Try using the search API to find the exact product name",
			}
		}
		if isValidationError(err) {
			return http.StatusBadRequest, ErrorResponse{
				Error:   "Validation failed",
				Message: err.Error(),
			}
		}
		return http.StatusInternalServerError, ErrorResponse{
			Error:   "Could not update product",
			Message: err.Error(),
		}
	}

	return http.StatusOK, models.UpdateResponse{
		Success: true,
		Message: "Product price updated successfully",
		Data:    update,
	}
}
