package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/tallergestion/workshop-api/internal/authz"
)

func performWithRole(t *testing.T, role string, action authz.Action, entity authz.Entity) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	called := false
	r := gin.New()
	r.GET("/resource",
		func(c *gin.Context) {
			if role != "" {
				c.Set(ContextUserRole, role)
			}
		},
		Authorize(action, entity),
		func(c *gin.Context) {
			called = true
			c.Status(http.StatusOK)
		},
	)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	r.ServeHTTP(rec, req)
	return rec, called
}

func TestAuthorizeAllows(t *testing.T) {
	rec, called := performWithRole(t, "manager", authz.ActionCreate, authz.EntityClient)
	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthorizeForbids(t *testing.T) {
	rec, called := performWithRole(t, "mechanic", authz.ActionDelete, authz.EntityService)
	require.False(t, called, "handler must not run on denied action")
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "permission_denied")
}

func TestAuthorizeMissingRoleFailsClosed(t *testing.T) {
	rec, called := performWithRole(t, "", authz.ActionRead, authz.EntityService)
	require.False(t, called)
	require.Equal(t, http.StatusForbidden, rec.Code)
}
