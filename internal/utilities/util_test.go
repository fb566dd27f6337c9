package utilities

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, err := ExtractIdentity(c)
	assert.Error(t, err)

	c.Set(IdentityKey, 42)
	_, err = ExtractIdentity(c)
	assert.Error(t, err)

	c.Set(IdentityKey, "a@x.com")
	email, err := ExtractIdentity(c)
	assert.NoError(t, err)
	assert.Equal(t, "a@x.com", email)
}

func TestExtractCookieToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request, _ = http.NewRequest(http.MethodGet, "/", nil)

	_, err := ExtractCookieToken(c, "token")
	assert.ErrorIs(t, err, ErrNoToken)

	c.Request.AddCookie(&http.Cookie{Name: "token", Value: "abc"})
	token, err := ExtractCookieToken(c, "token")
	assert.NoError(t, err)
	assert.Equal(t, "abc", token)
}

func TestBindErrorStatus(t *testing.T) {
	body := http.MaxBytesReader(httptest.NewRecorder(), io.NopCloser(strings.NewReader(strings.Repeat("x", 32))), 8)
	_, err := io.ReadAll(body)
	require.Error(t, err)

	assert.Equal(t, http.StatusRequestEntityTooLarge, BindErrorStatus(err))
	assert.Equal(t, http.StatusRequestEntityTooLarge, BindErrorStatus(fmt.Errorf("decode: %w", err)))
	assert.Equal(t, http.StatusBadRequest, BindErrorStatus(errors.New("missing field")))
}
