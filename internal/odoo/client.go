package odoo

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/kolo/xmlrpc"
	"github.com/sirupsen/logrus"

	"odoo-inventory-api/internal/config"
)

// Odoo model names used by this service
const (
	ModelProduct = "product.product"
	ModelTag     = "product.tag"
)

// Executor is the subset of the Odoo external API the services depend on.
// It exists so the service layer can be tested without a live instance.
type Executor interface {
	// ExecuteKw invokes a method on an Odoo model via the object endpoint.
	ExecuteKw(ctx context.Context, model, method string, args []interface{}, options map[string]interface{}) (interface{}, error)
}

// Client talks to an Odoo instance over the XML-RPC external API
type Client struct {
	cfg config.OdooConfig

	common *xmlrpc.Client
	object *xmlrpc.Client

	mu  sync.Mutex
	uid int64
}

// NewClient creates a client for the configured Odoo instance. The uid is
// resolved lazily on the first call and cached for the connection lifetime.
func NewClient(cfg config.OdooConfig) (*Client, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("odoo host cannot be empty")
	}

	var transport http.RoundTripper
	if !cfg.VerifySSL {
		logrus.Warn("SSL verification disabled - not recommended for production")
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	common, err := xmlrpc.NewClient(fmt.Sprintf("https://%s/xmlrpc/2/common", cfg.Host), transport)
	if err != nil {
		return nil, fmt.Errorf("failed to create common endpoint client: %w", err)
	}

	object, err := xmlrpc.NewClient(fmt.Sprintf("https://%s/xmlrpc/2/object", cfg.Host), transport)
	if err != nil {
		return nil, fmt.Errorf("failed to create object endpoint client: %w", err)
	}

	return &Client{
		cfg:    cfg,
		common: common,
		object: object,
	}, nil
}

// Authenticate resolves the numeric user id for the configured credentials.
// Odoo answers false (decoded as zero) for bad credentials.
func (c *Client) Authenticate(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.uid != 0 {
		return c.uid, nil
	}

	var result interface{}
	args := []interface{}{c.cfg.Database, c.cfg.Username, c.cfg.Password, map[string]interface{}{}}
	if err := c.common.Call("authenticate", args, &result); err != nil {
		return 0, &UpstreamError{Op: "authenticate", Err: err}
	}

	uid := asInt64(result)
	if uid == 0 {
		return 0, &UpstreamError{Op: "authenticate", Err: errors.New("invalid credentials")}
	}

	c.uid = uid
	logrus.WithFields(logrus.Fields{
		"host": c.cfg.Host,
		"db":   c.cfg.Database,
		"uid":  uid,
	}).Debug("Authenticated with Odoo")

	return uid, nil
}

// ExecuteKw invokes a method on an Odoo model via the object endpoint
func (c *Client) ExecuteKw(ctx context.Context, model, method string, args []interface{}, options map[string]interface{}) (interface{}, error) {
	uid, err := c.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	if options == nil {
		options = map[string]interface{}{}
	}

	params := []interface{}{c.cfg.Database, uid, c.cfg.Password, model, method, args, options}

	var result interface{}
	if err := c.object.Call("execute_kw", params, &result); err != nil {
		return nil, &UpstreamError{Op: model + "." + method, Err: err}
	}

	return result, nil
}
