package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DefaultBodyLimit accommodates base64-encoded avatar images.
const DefaultBodyLimit = 10 << 20 // 10 MiB

// BodyLimit caps the request body size. Reads beyond the limit fail inside
// the handler's bind call, which reports the payload as invalid.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = DefaultBodyLimit
	}
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
