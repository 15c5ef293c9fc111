package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tallergestion/workshop-api/internal/authz"
	"github.com/tallergestion/workshop-api/internal/httperr"
	"github.com/tallergestion/workshop-api/internal/middleware"
	"github.com/tallergestion/workshop-api/internal/models"
)

func actingRole(c *gin.Context) authz.Role {
	role, _ := c.MustGet(middleware.ContextUserRole).(string)
	return authz.Role(role)
}

func actingUserID(c *gin.Context) uint {
	id, _ := c.MustGet(middleware.ContextUserID).(uint)
	return id
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

// currentEmployee resuelve la ficha de empleado de la cuenta
// autenticada. El vínculo es por correo: cmd/createuser escribe usuario
// y empleado con la misma dirección. Escribe la respuesta de error y
// devuelve false si no hay ficha.
func currentEmployee(c *gin.Context, db *gorm.DB) (*models.Employee, bool) {
	var user models.User
	if err := db.First(&user, actingUserID(c)).Error; err != nil {
		httperr.Internal(c, "failed_to_get_user", "Error al obtener usuario.")
		return nil, false
	}

	var employee models.Employee
	if err := db.Where("email = ?", user.Email).First(&employee).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.BadRequest(c, "employee_profile_missing", "La cuenta no tiene perfil de empleado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_employee", "Error al obtener empleado.")
		return nil, false
	}

	return &employee, true
}

// writeBusiness traduce un BusinessError a su status HTTP estable:
// denegado → 403, entidad referenciada ausente o entrada mala → 400,
// recurso pedido ausente → 404.
func writeBusiness(c *gin.Context, err error) bool {
	code := httperr.BusinessCode(err)
	if code == "" {
		return false
	}

	switch code {
	case httperr.CodePermissionDenied:
		httperr.Forbidden(c, code, "El rol no tiene permiso para esta operación.")
	case "appointment_not_found", "repair_not_found":
		httperr.NotFound(c, code, "Recurso no encontrado.")
	default:
		httperr.BadRequest(c, code, "Solicitud inválida.")
	}
	return true
}
