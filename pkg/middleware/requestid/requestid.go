// Package requestid tags every request with an id so log lines from one
// request can be correlated. Inbound X-Request-ID headers are trusted and
// propagated; otherwise a fresh id is minted.
package requestid

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// Header carries the id on the wire, both inbound and in the response.
	Header = "X-Request-ID"

	contextKey = "request_id"
)

// Middleware ensures every request carries an id and echoes it back.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(Header)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(contextKey, id)
		c.Writer.Header().Set(Header, id)
		c.Next()
	}
}

// Value returns the request id for the current request, or "".
func Value(c *gin.Context) string {
	if v, ok := c.Get(contextKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
