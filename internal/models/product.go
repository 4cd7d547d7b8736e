package models

// Currency is the many2one currency reference attached to a product
type Currency struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
}

// Product is the API view of an Odoo product.product record. The record is
// owned by Odoo; nothing here has a local lifecycle.
type Product struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	CostPrice float64  `json:"cost_price"`
	Currency  Currency `json:"currency"`
	Tags      []Tag    `json:"tags"`
}

// CreatedProduct is the shape returned after a successful product creation
type CreatedProduct struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	CostPrice      float64 `json:"cost_price"`
	SalePrice      float64 `json:"sale_price"`
	Tags           []Tag   `json:"tags"`
	CanBeSold      bool    `json:"can_be_sold"`
	CanBePurchased bool    `json:"can_be_purchased"`
}

// PriceUpdate is the shape returned after a successful price update
type PriceUpdate struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	PreviousPrice    float64 `json:"previous_price"`
	NewPrice         float64 `json:"new_price"`
	CostPrice        float64 `json:"cost_price"`
	CostPriceUpdated bool    `json:"cost_price_updated"`
	Tags             []Tag   `json:"tags"`
}

// ProductRef identifies a product when an ambiguous name matches several
type ProductRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
