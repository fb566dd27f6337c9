// Package utilities contain utility code that use across the package
package utilities

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// IdentityKey is the context key under which the auth middleware stores the caller's email
const IdentityKey = "identity"

// ErrorResponse type for swagger docs
type ErrorResponse struct {
	Error string `json:"error"`
}

// ExtractIdentity returns the authenticated email stored by the auth middleware.
func ExtractIdentity(c *gin.Context) (string, error) {
	v, ok := c.Get(IdentityKey)
	if !ok || v == nil {
		return "", errors.New("identity not provided")
	}

	email, ok := v.(string)
	if !ok || email == "" {
		return "", errors.New("failed to assert identity type")
	}
	return email, nil
}

// BindErrorStatus maps a request body binding error to a status code.
// Bodies cut off by the size limit are reported as 413, everything else as 400.
func BindErrorStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}
