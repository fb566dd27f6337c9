package middleware

import "github.com/gin-gonic/gin"

var baseSecurityHeaders = map[string]string{
	"X-Content-Type-Options": "nosniff",
	"X-Frame-Options":        "DENY",
	"Referrer-Policy":        "no-referrer",
	// Responses may carry the identity cookie or per-user data
	"Cache-Control": "no-store",
}

// SafeHeader adds security-related headers to each response.
// Strict-Transport-Security is only sent when hsts is true.
func SafeHeader(hsts bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		for k, v := range baseSecurityHeaders {
			c.Header(k, v)
		}
		if hsts {
			c.Header("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		}

		c.Next()
	}
}
