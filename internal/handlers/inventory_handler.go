package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"odoo-inventory-api/internal/services"
	"odoo-inventory-api/pkg/lambda"
)

// InventoryHandler handles product listing and search requests
type InventoryHandler struct {
	inventoryService services.InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryService services.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
	}
}

// productSearchBody is the JSON body accepted by POST / and POST /search.
// category_id is accepted as either a number or a string.
type productSearchBody struct {
	ProductName string      `json:"product_name"`
	Limit       int         `json:"limit"`
	Offset      int         `json:"offset"`
	CategoryID  interface{} `json:"category_id"`
}

// @Summary List inventory products
// @Description List stockable products with optional name/reference search and category filter
// @Tags inventory
// @Produce json
// @Param limit query int false "Limit number of results" default(100)
// @Param offset query int false "Offset for pagination" default(0)
// @Param search query string false "Match against product name or internal reference"
// @Param category_id query int false "Filter by category ID"
// @Success 200 {object} models.ProductListResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router / [get]
func (h *InventoryHandler) ListProducts(c *gin.Context) {
	query := &services.ProductQuery{
		SearchTerm: c.Query("search"),
		CategoryID: c.Query("category_id"),
		Method:     http.MethodGet,
	}

	if limit := c.Query("limit"); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil && val > 0 {
			query.Limit = val
		}
	}
	if offset := c.Query("offset"); offset != "" {
		if val, err := strconv.Atoi(offset); err == nil && val >= 0 {
			query.Offset = val
		}
	}

	status, payload := h.list(c.Request.Context(), query)
	c.JSON(status, payload)
}

// @Summary Search inventory products
// @Description Search stockable products by name using a JSON body
// @Tags inventory
// @Accept json
// @Produce json
// @Param query body productSearchBody true "Search parameters"
// @Success 200 {object} models.ProductListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /search [post]
func (h *InventoryHandler) SearchProducts(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Request body is required for POST search",
		})
		return
	}

	query, parseErr := parseProductSearch(body)
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid JSON in request body",
		})
		return
	}

	status, payload := h.list(c.Request.Context(), query)
	c.JSON(status, payload)
}

// HandleList handles product listing for Lambda
func (h *InventoryHandler) HandleList(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	query := &services.ProductQuery{
		SearchTerm: req.Query("search"),
		CategoryID: req.Query("category_id"),
		Method:     http.MethodGet,
	}

	if limit := req.Query("limit"); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil && val > 0 {
			query.Limit = val
		}
	}
	if offset := req.Query("offset"); offset != "" {
		if val, err := strconv.Atoi(offset); err == nil && val >= 0 {
			query.Offset = val
		}
	}

	status, payload := h.list(ctx, query)
	return lambda.JSON(status, payload), nil
}

// HandleSearch handles product search for Lambda
func (h *InventoryHandler) HandleSearch(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	if len(req.Body) == 0 {
		return lambda.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Request body is required for POST search",
		}), nil
	}

	query, err := parseProductSearch(req.Body)
	if err != nil {
		return lambda.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid JSON in request body",
		}), nil
	}

	status, payload := h.list(ctx, query)
	return lambda.JSON(status, payload), nil
}

// list runs the product listing and maps service errors to status codes
func (h *InventoryHandler) list(ctx context.Context, query *services.ProductQuery) (int, interface{}) {
	response, err := h.inventoryService.ListProducts(ctx, query)
	if err != nil {
		if isUpstreamError(err) {
			return http.StatusInternalServerError, ErrorResponse{
				Error:   "Failed to list products",
				Message: upstreamMessage(err),
			}
		}
		if isValidationError(err) {
			return http.StatusBadRequest, ErrorResponse{
				Error:   "Invalid search parameters",
				Message: err.Error(),
			}
		}
		return http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to list products",
			Message: err.Error(),
		}
	}
	return http.StatusOK, response
}

// parseProductSearch decodes a POST search body into a product query
func parseProductSearch(body []byte) (*services.ProductQuery, error) {
	var search productSearchBody
	if err := json.Unmarshal(body, &search); err != nil {
		return nil, err
	}

	return &services.ProductQuery{
		SearchTerm: search.ProductName,
		CategoryID: paramString(search.CategoryID),
		Limit:      search.Limit,
		Offset:     search.Offset,
		Method:     http.MethodPost,
	}, nil
}

// paramString renders a JSON value that may be a number or a string
func paramString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	}
	return ""
}
