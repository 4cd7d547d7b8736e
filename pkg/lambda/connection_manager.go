package lambda

import (
	"fmt"
	"sync"
	"time"

	"odoo-inventory-api/internal/config"
	"odoo-inventory-api/pkg/server"
)

// ConnectionManager caches the dependency container across warm Lambda
// invocations so the Odoo session is not re-established on every request.
type ConnectionManager struct {
	container   *server.Container
	lastUsed    time.Time
	mu          sync.RWMutex
	initialized bool
	config      *config.Config
}

var (
	globalConnectionManager *ConnectionManager
	connectionManagerOnce   sync.Once
)

// GetConnectionManager returns the global connection manager instance
func GetConnectionManager() *ConnectionManager {
	connectionManagerOnce.Do(func() {
		globalConnectionManager = &ConnectionManager{}
	})
	return globalConnectionManager
}

// GetContainer returns the cached container, creating it on the first
// (cold start) invocation.
func (cm *ConnectionManager) GetContainer(cfg *config.Config) (*server.Container, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.initialized {
		cm.lastUsed = time.Now()
		return cm.container, nil
	}

	container, err := server.NewContainer(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize container: %w", err)
	}

	cm.container = container
	cm.config = cfg
	cm.initialized = true
	cm.lastUsed = time.Now()

	return container, nil
}

// Reset drops the cached container so the next invocation rebuilds it
func (cm *ConnectionManager) Reset() {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container != nil {
		_ = cm.container.Close()
	}
	cm.container = nil
	cm.initialized = false
}
