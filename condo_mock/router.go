package condo_mock

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/stratafin/condo_service/authorization"
)

const TestSecret = "test-secret"

type RouteService interface {
	Register(rg *gin.RouterGroup)
}

// NewTestRouter mounts the given services under /api/v1 the way the
// real register handler does.
func NewTestRouter(t *testing.T, services ...RouteService) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	rg := r.Group("/api/v1")
	for _, svc := range services {
		svc.Register(rg)
	}
	return r
}

func NewTestAuth() *authorization.Authorization {
	return authorization.New(TestSecret)
}

// BearerToken issues a short-lived token for test requests.
func BearerToken(t *testing.T, auth *authorization.Authorization, userID uint, caps ...authorization.Capability) string {
	t.Helper()

	token, err := auth.GenerateToken(userID, caps, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

// DoJSON performs one authenticated JSON request against the router and
// decodes the response body into out when non-nil.
func DoJSON(t *testing.T, r *gin.Engine, method, path, bearer string, body interface{}, out interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if out != nil && w.Code < http.StatusMultipleChoices {
		err := json.Unmarshal(w.Body.Bytes(), out)
		require.NoError(t, err)
	}

	return w
}
