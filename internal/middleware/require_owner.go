package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rar34/explore-job-server/internal/utilities"
)

// RequireOwner rejects with 403 unless the authenticated email equals the
// path parameter named param. Must run after RequireAuth.
func RequireOwner(param string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		email, err := utilities.ExtractIdentity(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: "unauthorized access",
			})
			return
		}

		if err := EnforceOwnership(email, ctx.Param(param)); err != nil {
			ctx.AbortWithStatusJSON(http.StatusForbidden, utilities.ErrorResponse{
				Error: err.Error(),
			})
			return
		}

		ctx.Next()
	}
}

// ErrForbidden is returned when a caller asks for someone else's records
var ErrForbidden = errors.New("forbidden access")

// EnforceOwnership returns ErrForbidden when identity and requested differ.
func EnforceOwnership(identity string, requested string) error {
	if identity == "" || identity != requested {
		return ErrForbidden
	}
	return nil
}
