package auth

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rar34/explore-job-server/internal/utilities"
)

// CookieName is the cookie carrying the signed identity token
const CookieName = "token"

// TokenController issues and clears the identity cookie
type TokenController struct {
	Tokens *TokenManager
}

// NewTokenController creates a new instance of TokenController
func NewTokenController(tm *TokenManager) *TokenController {
	return &TokenController{
		Tokens: tm,
	}
}

// SuccessResponse is returned by /jwt and /logout
type SuccessResponse struct {
	Success bool `json:"success"`
}

// IssueHandler signs the posted identity and stores it in the token cookie.
// @Summary Issue identity cookie
// @Description The identity payload is trusted as-is
// @Tags Auth
// @Accept json
// @Produce json
// @Param identity body Identity true "Identity of the caller"
// @Success 200 {object} SuccessResponse "Cookie set"
// @Failure 400 {object} utilities.ErrorResponse "Invalid identity payload"
// @Failure 413 {object} utilities.ErrorResponse "Request body too large"
// @Failure 500 {object} utilities.ErrorResponse "Failed to sign token"
// @Router /jwt [post]
func (tc *TokenController) IssueHandler(c *gin.Context) {
	var identity Identity
	if err := c.ShouldBindJSON(&identity); err != nil {
		LogAuthAttempt("warning", "Issue", "Fail", "", "invalid payload")
		c.JSON(utilities.BindErrorStatus(err), utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	token, err := tc.Tokens.Issue(identity)
	if err != nil {
		LogAuthAttempt("error", "Issue", "Fail", identity.Email, err.Error())
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	setTokenCookie(c, token, int(tc.Tokens.TTL().Seconds()))
	LogAuthAttempt("info", "Issue", "Success", identity.Email, "")

	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// LogoutHandler clears the token cookie. The token itself stays valid until it expires.
// @Summary Clear identity cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} SuccessResponse "Cookie cleared"
// @Router /logout [post]
func (tc *TokenController) LogoutHandler(c *gin.Context) {
	setTokenCookie(c, "", -1)
	LogAuthAttempt("info", "Revoke", "Success", "", "")

	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

func setTokenCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(CookieName, value, maxAge, "/", "", true, true)
}
