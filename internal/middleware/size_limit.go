package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SizeLimit caps request bodies at maxBodyBytes. Reads past the cap fail with
// *http.MaxBytesError, which handlers report as a bad request.
func SizeLimit(maxBodyBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
		}
		c.Next()
	}
}
