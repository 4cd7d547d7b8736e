package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"odoo-inventory-api/internal/models"
	"odoo-inventory-api/internal/services"
	"odoo-inventory-api/pkg/lambda"
)

// TagHandler handles product tag requests
type TagHandler struct {
	inventoryService services.InventoryService
}

// NewTagHandler creates a new tag handler
func NewTagHandler(inventoryService services.InventoryService) *TagHandler {
	return &TagHandler{
		inventoryService: inventoryService,
	}
}

// tagSearchBody is the JSON body accepted by a POST /tags search request
type tagSearchBody struct {
	TagName string `json:"tag_name"`
	Search  string `json:"search"`
	Limit   int    `json:"limit"`
	Offset  int    `json:"offset"`
}

func (b *tagSearchBody) term() string {
	if b.TagName != "" {
		return b.TagName
	}
	return b.Search
}

// @Summary List product tags
// @Description List product tags with optional name search
// @Tags tags
// @Produce json
// @Param limit query int false "Limit number of results" default(100)
// @Param offset query int false "Offset for pagination" default(0)
// @Param search query string false "Match against tag name"
// @Success 200 {object} models.TagListResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /tags [get]
func (h *TagHandler) ListTags(c *gin.Context) {
	query := &services.TagQuery{
		SearchTerm: c.Query("search"),
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

// @Summary Search or create a product tag
// @Description A body with tag_name/search performs a search; a body with name creates a tag
// @Tags tags
// @Accept json
// @Produce json
// @Success 200 {object} models.TagListResponse
// @Success 201 {object} models.CreateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /tags [post]
func (h *TagHandler) PostTags(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Request body is required for POST requests",
		})
		return
	}

	status, payload := h.dispatchPost(c.Request.Context(), body)
	c.JSON(status, payload)
}

// HandleListTags handles tag listing for Lambda
func (h *TagHandler) HandleListTags(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	query := &services.TagQuery{
		SearchTerm: req.Query("search"),
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

// HandlePostTags handles tag search/create dispatch for Lambda
func (h *TagHandler) HandlePostTags(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	if len(req.Body) == 0 {
		return lambda.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Request body is required for POST requests",
		}), nil
	}

	status, payload := h.dispatchPost(ctx, req.Body)
	return lambda.JSON(status, payload), nil
}

// dispatchPost routes a POST /tags body to search or create based on its keys
func (h *TagHandler) dispatchPost(ctx context.Context, body []byte) (int, interface{}) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return http.StatusBadRequest, ErrorResponse{
			Error: "Invalid JSON in request body",
		}
	}

	if _, hasTagName := probe["tag_name"]; hasTagName {
		return h.search(ctx, body)
	}
	if _, hasSearch := probe["search"]; hasSearch {
		return h.search(ctx, body)
	}
	if _, hasName := probe["name"]; hasName {
		return h.create(ctx, body)
	}

	return http.StatusBadRequest, ErrorResponse{
		Error: `Invalid request body. For search: use "tag_name" or "search". For create: use "name"`,
	}
}

// search runs a body-driven tag search
func (h *TagHandler) search(ctx context.Context, body []byte) (int, interface{}) {
	var search tagSearchBody
	if err := json.Unmarshal(body, &search); err != nil {
		return http.StatusBadRequest, ErrorResponse{
			Error: "Invalid JSON in request body",
		}
	}

	return h.list(ctx, &services.TagQuery{
		SearchTerm: search.term(),
		Limit:      search.Limit,
		Offset:     search.Offset,
		Method:     http.MethodPost,
	})
}

// list runs the tag listing and maps service errors to status codes
func (h *TagHandler) list(ctx context.Context, query *services.TagQuery) (int, interface{}) {
	response, err := h.inventoryService.ListTags(ctx, query)
	if err != nil {
		if isUpstreamError(err) {
			return http.StatusInternalServerError, ErrorResponse{
				Error:   "Could not retrieve tags",
				Message: upstreamMessage(err),
			}
		}
		return http.StatusInternalServerError, ErrorResponse{
			Error:   "Could not retrieve tags",
			Message: err.Error(),
		}
	}
	return http.StatusOK, response
}

// create runs the tag creation and maps service errors to status codes
func (h *TagHandler) create(ctx context.Context, body []byte) (int, interface{}) {
	var req services.CreateTagRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return http.StatusBadRequest, ErrorResponse{
			Error: "Invalid JSON in request body",
		}
	}

	tag, err := h.inventoryService.CreateTag(ctx, &req)
	if err != nil {
		if isUpstreamError(err) {
			return http.StatusInternalServerError, ErrorResponse{
				Error:   "Could not create tag",
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
			Error:   "Could not create tag",
			Message: err.Error(),
		}
	}

	return http.StatusCreated, models.CreateResponse{
		Success: true,
		Message: "Tag created successfully",
		Data:    tag,
	}
}
