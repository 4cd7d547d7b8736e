package odoo

import (
	"errors"
	"fmt"

	"github.com/kolo/xmlrpc"
)

// UpstreamError wraps a failure raised by the Odoo instance or the
// transport beneath it. The service's own validation and lookup errors
// are never wrapped in it, so callers can map the two classes to
// different status codes.
type UpstreamError struct {
	// Op identifies the failing call, e.g. "authenticate" or
	// "product.product.search".
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("odoo %s failed: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsUpstream reports whether the error originated in the Odoo call path
func IsUpstream(err error) bool {
	var upstream *UpstreamError
	return errors.As(err, &upstream)
}

// FaultMessage extracts the upstream fault string from an XML-RPC error,
// falling back to the full error text.
func FaultMessage(err error) string {
	var fault xmlrpc.FaultError
	if errors.As(err, &fault) {
		return fault.String
	}
	return err.Error()
}
