package odoo

import (
	"fmt"

	"odoo-inventory-api/internal/models"
)

// Odoo serializes absent scalar fields as boolean false and many2one
// references as [id, display_name] pairs. The helpers below absorb both
// conventions when mapping execute_kw results onto typed records.

// asInt64 coerces an XML-RPC scalar to int64, returning 0 for anything else
func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}

// asFloat coerces an XML-RPC scalar to float64
func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

// asString coerces an XML-RPC scalar to string, mapping false to ""
func asString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// Int coerces an XML-RPC scalar to int64
func Int(v interface{}) int64 { return asInt64(v) }

// Float coerces an XML-RPC scalar to float64
func Float(v interface{}) float64 { return asFloat(v) }

// Str coerces an XML-RPC scalar to string, mapping false to ""
func Str(v interface{}) string { return asString(v) }

// Records converts an execute_kw read result into a list of field maps
func Records(v interface{}) ([]map[string]interface{}, error) {
	list, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected result type %T, expected record list", v)
	}

	records := make([]map[string]interface{}, 0, len(list))
	for _, item := range list {
		record, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("unexpected record type %T, expected field map", item)
		}
		records = append(records, record)
	}
	return records, nil
}

// IDs converts a search result into a list of record ids
func IDs(v interface{}) []int64 {
	list, ok := v.([]interface{})
	if !ok {
		return nil
	}

	ids := make([]int64, 0, len(list))
	for _, item := range list {
		ids = append(ids, asInt64(item))
	}
	return ids
}

// Count converts a search_count result into an integer
func Count(v interface{}) int64 {
	return asInt64(v)
}

// CreatedID converts a create result into the new record id
func CreatedID(v interface{}) int64 {
	return asInt64(v)
}

// Many2One unpacks an [id, display_name] reference. Absent references
// come back as false and yield (nil, "").
func Many2One(v interface{}) (*int64, string) {
	pair, ok := v.([]interface{})
	if !ok || len(pair) < 2 {
		return nil, ""
	}
	id := asInt64(pair[0])
	return &id, asString(pair[1])
}

// IDList unpacks a one2many/many2many id list, which is false when empty
func IDList(v interface{}) []int64 {
	return IDs(v)
}

// DecodeTag maps a product.tag record onto the API tag model
func DecodeTag(record map[string]interface{}) models.Tag {
	return models.Tag{
		ID:    asInt64(record["id"]),
		Name:  asString(record["name"]),
		Color: asInt64(record["color"]),
	}
}

// DecodeTags maps a list of product.tag records
func DecodeTags(records []map[string]interface{}) []models.Tag {
	tags := make([]models.Tag, 0, len(records))
	for _, record := range records {
		tags = append(tags, DecodeTag(record))
	}
	return tags
}

// DecodeProduct maps a product.product record onto the API product model.
// Tag references are left for the caller to resolve against a tag read.
func DecodeProduct(record map[string]interface{}, tagsByID map[int64]models.Tag) models.Product {
	currencyID, currencyName := Many2One(record["currency_id"])

	tags := make([]models.Tag, 0)
	for _, tagID := range IDList(record["product_tag_ids"]) {
		if tag, ok := tagsByID[tagID]; ok {
			tags = append(tags, tag)
		}
	}

	return models.Product{
		ID:        asInt64(record["id"]),
		Name:      asString(record["name"]),
		Price:     asFloat(record["list_price"]),
		CostPrice: asFloat(record["standard_price"]),
		Currency: models.Currency{
			ID:   currencyID,
			Name: currencyName,
		},
		Tags: tags,
	}
}
