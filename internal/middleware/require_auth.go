// Package middleware contain utilities middleware code
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/rar34/explore-job-server/internal/auth"
	"github.com/rar34/explore-job-server/internal/utilities"
)

// RequireAuth validates the token cookie and stores the caller's email in the context.
// Every failure is answered with 401.
func RequireAuth(tm *auth.TokenManager) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := utilities.ExtractCookieToken(ctx, auth.CookieName)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: "unauthorized access",
			})
			return
		}

		claims, err := tm.ValidatedToken(tokenString)
		if err != nil {
			msg := "unauthorized access"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "unauthorized access: token expired"
			}
			auth.LogAuthAttempt("warning", "Verify", "Fail", "", err.Error())
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: msg,
			})
			return
		}

		ctx.Set(utilities.IdentityKey, claims.Email)
		ctx.Next()
	}
}
