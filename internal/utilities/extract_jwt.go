package utilities

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// ErrNoToken is returned when the request carries no token cookie
var ErrNoToken = errors.New("no token cookie")

// ExtractCookieToken reads the named cookie from the request.
func ExtractCookieToken(c *gin.Context, name string) (string, error) {
	token, err := c.Cookie(name)
	if err != nil || token == "" {
		return "", ErrNoToken
	}
	return token, nil
}
