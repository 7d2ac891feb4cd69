package authorization_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratafin/condo_service/authorization"
)

func TestTokenRoundtrip(t *testing.T) {
	auth := authorization.New("secret")

	token, err := auth.GenerateToken(42, []authorization.Capability{authorization.CapWrite}, time.Hour)
	require.NoError(t, err)

	claims, err := auth.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.True(t, claims.Allows(authorization.CapWrite))
	assert.False(t, claims.Allows(authorization.CapAdmin))
}

func TestAdminImpliesAll(t *testing.T) {
	claims := &authorization.Claims{
		Capabilities: []authorization.Capability{authorization.CapAdmin},
	}

	assert.True(t, claims.Allows(authorization.CapRead))
	assert.True(t, claims.Allows(authorization.CapWrite))
	assert.True(t, claims.Allows(authorization.CapAdmin))
}

func TestParseRejectsForeignSecret(t *testing.T) {
	token, err := authorization.New("secret-a").
		GenerateToken(1, []authorization.Capability{authorization.CapRead}, time.Hour)
	require.NoError(t, err)

	_, err = authorization.New("secret-b").Parse(token)
	assert.ErrorIs(t, err, authorization.ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	auth := authorization.New("secret")
	token, err := auth.GenerateToken(1, []authorization.Capability{authorization.CapRead}, time.Millisecond)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	_, err = auth.Parse(token)
	assert.ErrorIs(t, err, authorization.ErrInvalidToken)
}

func TestRequireMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := authorization.New("secret")

	r := gin.New()
	r.GET("/guarded", auth.Require(authorization.CapWrite), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": authorization.UserID(c)})
	})

	get := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusUnauthorized, get("").Code)
	assert.Equal(t, http.StatusUnauthorized, get("Bearer garbage").Code)

	readOnly, err := auth.GenerateToken(7, []authorization.Capability{authorization.CapRead}, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, get("Bearer "+readOnly).Code)

	writer, err := auth.GenerateToken(7, []authorization.Capability{authorization.CapWrite}, time.Hour)
	require.NoError(t, err)
	w := get("Bearer " + writer)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id": 7}`, w.Body.String())
}
