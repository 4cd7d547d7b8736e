package services

import (
	"fmt"

	"odoo-inventory-api/internal/models"
)

// MultipleMatchesError is returned when a name-based product lookup is
// ambiguous. It carries the candidates so the caller can report them.
type MultipleMatchesError struct {
	Name    string
	Matches []models.ProductRef
}

func (e *MultipleMatchesError) Error() string {
	return fmt.Sprintf("multiple products found matching %q", e.Name)
}
