package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/tallergestion/workshop-api/internal/authz"
	"github.com/tallergestion/workshop-api/internal/httperr"
)

// Authorize consulta la matriz de permisos para cada request; la
// decisión no se cachea entre requests. Corre después de AuthMiddleware.
func Authorize(action authz.Action, entity authz.Entity) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ContextUserRole)
		roleStr, ok := role.(string)

		if !ok || !authz.Permit(authz.Role(roleStr), action, entity) {
			httperr.Forbidden(c, httperr.CodePermissionDenied,
				"El rol no tiene permiso para esta operación.")
			c.Abort()
			return
		}

		c.Next()
	}
}
