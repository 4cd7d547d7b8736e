package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"odoo-inventory-api/internal/config"
)

// Credential header names expected from callers
const (
	HeaderClientID     = "x-client-id"
	HeaderClientSecret = "x-client-secret"
)

// ValidCredentials compares the received header pair against the configured
// shared secret. When no credentials are configured the check passes.
func ValidCredentials(cfg *config.Config, clientID, clientSecret string) bool {
	if !cfg.AuthEnabled() {
		return true
	}
	return clientID == cfg.Client.ID && clientSecret == cfg.Client.Secret
}

// ClientAuth middleware enforces the shared-secret header check
func ClientAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ValidCredentials(cfg, c.GetHeader(HeaderClientID), c.GetHeader(HeaderClientSecret)) {
			logrus.WithFields(logrus.Fields{
				"path":      c.Request.URL.Path,
				"client_ip": c.ClientIP(),
			}).Warn("Authentication failed: invalid client ID or secret")

			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Unauthorized",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
