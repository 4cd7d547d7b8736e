package server

import (
	"fmt"

	"odoo-inventory-api/internal/config"
	"odoo-inventory-api/internal/odoo"
	"odoo-inventory-api/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config           *config.Config
	InventoryService services.InventoryService

	odooClient *odoo.Client
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	odooClient, err := odoo.NewClient(cfg.Odoo)
	if err != nil {
		return nil, fmt.Errorf("failed to create odoo client: %w", err)
	}

	return &Container{
		Config:           cfg,
		InventoryService: services.NewInventoryService(odooClient),
		odooClient:       odooClient,
	}, nil
}

// Close cleans up all resources. The Odoo client is plain HTTP with no
// session to tear down.
func (c *Container) Close() error {
	return nil
}
