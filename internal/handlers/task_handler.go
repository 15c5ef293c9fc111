package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tallergestion/workshop-api/internal/audit"
	"github.com/tallergestion/workshop-api/internal/authz"
	taskdomain "github.com/tallergestion/workshop-api/internal/domain/task"
	"github.com/tallergestion/workshop-api/internal/httperr"
	"github.com/tallergestion/workshop-api/internal/httpresp"
	"github.com/tallergestion/workshop-api/internal/models"
	"github.com/tallergestion/workshop-api/internal/timezone"
)

type TaskHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewTaskHandler(db *gorm.DB, audit *audit.Dispatcher) *TaskHandler {
	return &TaskHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Label       string `json:"label"`
	AssigneeID  *uint  `json:"assignee_id"`
	RepairID    *uint  `json:"repair_id"`
	DueDate     string `json:"due_date"` // 2006-01-02
}

type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Label       *string `json:"label,omitempty"`
	AssigneeID  *uint   `json:"assignee_id,omitempty"`
	RepairID    *uint   `json:"repair_id,omitempty"`
	DueDate     *string `json:"due_date,omitempty"` // 2006-01-02, "" limpia
}

// --------- Handlers ---------

// List filtra por estado, asignado y reparación. El mecánico solo ve
// su propio tablero.
func (h *TaskHandler) List(c *gin.Context) {
	q := h.db.
		Preload("Assignee").
		Order("created_at DESC")

	if actingRole(c) == authz.RoleMechanic {
		employee, ok := currentEmployee(c, h.db)
		if !ok {
			return
		}
		q = q.Where("assignee_id = ?", employee.ID)
	} else if assigneeID := c.Query("assignee_id"); assigneeID != "" {
		q = q.Where("assignee_id = ?", assigneeID)
	}

	if status := c.Query("status"); status != "" {
		if !taskdomain.ValidStatus(status) {
			httperr.BadRequest(c, "invalid_status", "Estado de tarea desconocido.")
			return
		}
		q = q.Where("status = ?", status)
	}
	if repairID := c.Query("repair_id"); repairID != "" {
		q = q.Where("repair_id = ?", repairID)
	}

	var tasks []models.Task
	if err := q.Find(&tasks).Error; err != nil {
		httperr.Internal(c, "failed_to_list_tasks", "Error al listar tareas.")
		return
	}

	httpresp.List(c, tasks)
}

func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var task models.Task
	if err := h.db.
		Preload("Assignee").
		Preload("Repair").
		First(&task, id).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "task_not_found", "Tarea no encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_task", "Error al obtener tarea.")
		return
	}

	if actingRole(c) == authz.RoleMechanic {
		employee, ok := currentEmployee(c, h.db)
		if !ok {
			return
		}
		if task.AssigneeID == nil || *task.AssigneeID != employee.ID {
			httperr.Forbidden(c, httperr.CodePermissionDenied, "La tarea no está asignada a esta cuenta.")
			return
		}
	}

	httpresp.OK(c, task)
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	priority := string(taskdomain.PriorityMedium)
	if req.Priority != "" {
		if !taskdomain.ValidPriority(req.Priority) {
			httperr.BadRequest(c, "invalid_priority", "Prioridad desconocida.")
			return
		}
		priority = req.Priority
	}

	if req.AssigneeID != nil {
		var assignee models.Employee
		if err := h.db.First(&assignee, *req.AssigneeID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				httperr.BadRequest(c, "employee_not_found", "El empleado indicado no existe.")
				return
			}
			httperr.Internal(c, "failed_to_get_employee", "Error al obtener empleado.")
			return
		}
	}
	if req.RepairID != nil {
		var repair models.Repair
		if err := h.db.First(&repair, *req.RepairID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				httperr.BadRequest(c, "repair_not_found", "La reparación indicada no existe.")
				return
			}
			httperr.Internal(c, "failed_to_get_repair", "Error al obtener reparación.")
			return
		}
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.DueDate,
			timezone.Location(timezone.DefaultTimezone))
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Fecha límite inválida.")
			return
		}
		dueDate = &parsed
	}

	task := models.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      string(taskdomain.InitialStatus()),
		Priority:    priority,
		Label:       req.Label,
		AssigneeID:  req.AssigneeID,
		RepairID:    req.RepairID,
		DueDate:     dueDate,
		CreatedByID: actingUserID(c),
	}

	if err := h.db.Create(&task).Error; err != nil {
		httperr.Internal(c, "failed_to_create_task", "Error al crear tarea.")
		return
	}

	userID := actingUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "task_created",
		Entity:   "task",
		EntityID: &task.ID,
	})

	httpresp.Created(c, task)
}

func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var task models.Task
	if err := h.db.First(&task, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "task_not_found", "Tarea no encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_task", "Error al obtener tarea.")
		return
	}

	// El mecánico solo puede tocar tareas asignadas a él.
	if actingRole(c) == authz.RoleMechanic {
		employee, ok := currentEmployee(c, h.db)
		if !ok {
			return
		}
		if task.AssigneeID == nil || *task.AssigneeID != employee.ID {
			httperr.Forbidden(c, httperr.CodePermissionDenied, "La tarea no está asignada a esta cuenta.")
			return
		}
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	statusChanged := false
	previousStatus := task.Status

	if req.Status != nil {
		if !taskdomain.ValidStatus(*req.Status) {
			httperr.BadRequest(c, "invalid_status", "Estado de tarea desconocido.")
			return
		}
		next := taskdomain.Status(*req.Status)
		if next != taskdomain.Status(task.Status) {
			if err := taskdomain.CanTransition(taskdomain.Status(task.Status), next); err != nil {
				writeBusiness(c, err)
				return
			}
			task.Status = string(next)
			statusChanged = true
		}
	}
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		if !taskdomain.ValidPriority(*req.Priority) {
			httperr.BadRequest(c, "invalid_priority", "Prioridad desconocida.")
			return
		}
		task.Priority = *req.Priority
	}
	if req.Label != nil {
		task.Label = *req.Label
	}
	if req.AssigneeID != nil {
		var assignee models.Employee
		if err := h.db.First(&assignee, *req.AssigneeID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				httperr.BadRequest(c, "employee_not_found", "El empleado indicado no existe.")
				return
			}
			httperr.Internal(c, "failed_to_get_employee", "Error al obtener empleado.")
			return
		}
		task.AssigneeID = req.AssigneeID
	}
	if req.RepairID != nil {
		var repair models.Repair
		if err := h.db.First(&repair, *req.RepairID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				httperr.BadRequest(c, "repair_not_found", "La reparación indicada no existe.")
				return
			}
			httperr.Internal(c, "failed_to_get_repair", "Error al obtener reparación.")
			return
		}
		task.RepairID = req.RepairID
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			task.DueDate = nil
		} else {
			parsed, err := time.ParseInLocation("2006-01-02", *req.DueDate,
				timezone.Location(timezone.DefaultTimezone))
			if err != nil {
				httperr.BadRequest(c, "invalid_date", "Fecha límite inválida.")
				return
			}
			task.DueDate = &parsed
		}
	}

	if err := h.db.Omit("Assignee", "Repair").Save(&task).Error; err != nil {
		httperr.Internal(c, "failed_to_update_task", "Error al actualizar tarea.")
		return
	}

	userID := actingUserID(c)
	if statusChanged {
		// El cambio de estado queda con su antes y después: es el
		// historial consultable de la tarea.
		h.audit.Dispatch(audit.Event{
			UserID:   &userID,
			Action:   "task_status_changed",
			Entity:   "task",
			EntityID: &task.ID,
			Metadata: map[string]any{
				"from": previousStatus,
				"to":   task.Status,
			},
		})
	} else {
		h.audit.Dispatch(audit.Event{
			UserID:   &userID,
			Action:   "task_updated",
			Entity:   "task",
			EntityID: &task.ID,
		})
	}

	httpresp.OK(c, task)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var task models.Task
	if err := h.db.First(&task, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "task_not_found", "Tarea no encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_task", "Error al obtener tarea.")
		return
	}

	if err := h.db.Delete(&task).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_task", "Error al eliminar tarea.")
		return
	}

	userID := actingUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "task_deleted",
		Entity:   "task",
		EntityID: &task.ID,
	})

	httpresp.NoContent(c)
}
