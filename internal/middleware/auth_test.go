package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"motelhub/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func newAuthRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", RequireRole(testSecret, roles...), func(c *gin.Context) {
		id, role, ok := CurrentUser(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id.String(), "role": role})
	})
	return r
}

func doRequest(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireRole(t *testing.T) {
	userID := uuid.New()
	landlord, err := auth.IssueToken(testSecret, userID, "landlord", time.Hour)
	require.NoError(t, err)
	tenant, err := auth.IssueToken(testSecret, uuid.New(), "tenant", time.Hour)
	require.NoError(t, err)

	r := newAuthRouter("admin", "landlord")

	w := doRequest(r, landlord)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())

	assert.Equal(t, http.StatusForbidden, doRequest(r, tenant).Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "garbage").Code)

	other, err := auth.IssueToken([]byte("other-secret"), userID, "admin", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, other).Code)

	expired, err := auth.IssueToken(testSecret, userID, "admin", -time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, expired).Code)
}

func TestRequireRoleAnyAuthenticated(t *testing.T) {
	token, err := auth.IssueToken(testSecret, uuid.New(), "tenant", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, doRequest(newAuthRouter(), token).Code)
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/cb", RateLimit(2), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/cb", nil)
		req.RemoteAddr = "10.1.1.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
