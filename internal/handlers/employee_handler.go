package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tallergestion/workshop-api/internal/audit"
	"github.com/tallergestion/workshop-api/internal/authz"
	"github.com/tallergestion/workshop-api/internal/httperr"
	"github.com/tallergestion/workshop-api/internal/httpresp"
	"github.com/tallergestion/workshop-api/internal/models"
)

type EmployeeHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewEmployeeHandler(db *gorm.DB, audit *audit.Dispatcher) *EmployeeHandler {
	return &EmployeeHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateEmployeeRequest struct {
	Name  string `json:"name" binding:"required"`
	Role  string `json:"role" binding:"required"`
	Phone string `json:"phone"`
	Email string `json:"email" binding:"required,email"`
}

type UpdateEmployeeRequest struct {
	Name  *string `json:"name,omitempty"`
	Role  *string `json:"role,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty" binding:"omitempty,email"`
}

// --------- Handlers ---------

func (h *EmployeeHandler) List(c *gin.Context) {
	var employees []models.Employee
	if err := h.db.
		Order("name ASC").
		Find(&employees).Error; err != nil {

		httperr.Internal(c, "failed_to_list_employees", "Error al listar empleados.")
		return
	}

	httpresp.List(c, employees)
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var employee models.Employee
	if err := h.db.First(&employee, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "employee_not_found", "Empleado no encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_employee", "Error al obtener empleado.")
		return
	}

	httpresp.OK(c, employee)
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	role := strings.ToLower(strings.TrimSpace(req.Role))
	if !authz.ValidRole(role) {
		httperr.BadRequest(c, "invalid_role", "Rol desconocido.")
		return
	}

	employee := models.Employee{
		Name:  req.Name,
		Role:  role,
		Phone: req.Phone,
		Email: strings.ToLower(strings.TrimSpace(req.Email)),
	}

	if err := h.db.Create(&employee).Error; err != nil {
		httperr.Internal(c, "failed_to_create_employee", "Error al crear empleado.")
		return
	}

	userID := actingUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "employee_created",
		Entity:   "employee",
		EntityID: &employee.ID,
	})

	httpresp.Created(c, employee)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var employee models.Employee
	if err := h.db.First(&employee, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "employee_not_found", "Empleado no encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_employee", "Error al obtener empleado.")
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.Role != nil {
		role := strings.ToLower(strings.TrimSpace(*req.Role))
		if !authz.ValidRole(role) {
			httperr.BadRequest(c, "invalid_role", "Rol desconocido.")
			return
		}
		employee.Role = role
	}
	if req.Phone != nil {
		employee.Phone = *req.Phone
	}
	if req.Email != nil {
		employee.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}

	if err := h.db.Save(&employee).Error; err != nil {
		httperr.Internal(c, "failed_to_update_employee", "Error al actualizar empleado.")
		return
	}

	userID := actingUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "employee_updated",
		Entity:   "employee",
		EntityID: &employee.ID,
	})

	httpresp.OK(c, employee)
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var employee models.Employee
	if err := h.db.First(&employee, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "employee_not_found", "Empleado no encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_employee", "Error al obtener empleado.")
		return
	}

	if err := h.db.Delete(&employee).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_employee", "Error al eliminar empleado.")
		return
	}

	userID := actingUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "employee_deleted",
		Entity:   "employee",
		EntityID: &employee.ID,
	})

	httpresp.NoContent(c)
}
