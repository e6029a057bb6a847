package middleware

import (
	"crypto/subtle"

	"github.com/m1z23r/drift/pkg/drift"
)

const ServiceKeyHeader = "X-Service-Key"

// ServiceKey guards endpoints reserved for the identity collaborator.
// An empty configured key disables these endpoints entirely.
func ServiceKey(key string) drift.HandlerFunc {
	return func(c *drift.Context) {
		if key == "" {
			c.Unauthorized("service access is not configured")
			return
		}

		provided := c.GetHeader(ServiceKeyHeader)
		if provided == "" {
			c.Unauthorized("missing service key")
			return
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			c.Unauthorized("invalid service key")
			return
		}

		c.Next()
	}
}
