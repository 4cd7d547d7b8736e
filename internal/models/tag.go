package models

// Tag is the API view of an Odoo product.tag record
type Tag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color int64  `json:"color"`
}
