package models

// Pagination describes the window of a list response
type Pagination struct {
	TotalCount int64 `json:"total_count"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	HasMore    bool  `json:"has_more"`
}

// ProductFilters echoes back the filters that produced a product listing
type ProductFilters struct {
	SearchTerm   string `json:"search_term"`
	CategoryID   string `json:"category_id"`
	SearchMethod string `json:"search_method"`
}

// TagFilters echoes back the filters that produced a tag listing
type TagFilters struct {
	SearchTerm   string `json:"search_term"`
	SearchMethod string `json:"search_method"`
}

// ProductListResponse is the envelope for product listing and search
type ProductListResponse struct {
	Success        bool           `json:"success"`
	Found          bool           `json:"found"`
	Data           []Product      `json:"data"`
	Pagination     Pagination     `json:"pagination"`
	FiltersApplied ProductFilters `json:"filters_applied"`
	Message        string         `json:"message"`
}

// TagListResponse is the envelope for tag listing and search
type TagListResponse struct {
	Success        bool       `json:"success"`
	Data           []Tag      `json:"data"`
	Pagination     Pagination `json:"pagination"`
	FiltersApplied TagFilters `json:"filters_applied"`
}

// CreateResponse wraps a successfully created record
type CreateResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// UpdateResponse wraps a successfully updated record
type UpdateResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}
