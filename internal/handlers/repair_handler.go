package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tallergestion/workshop-api/internal/audit"
	repairdomain "github.com/tallergestion/workshop-api/internal/domain/repair"
	"github.com/tallergestion/workshop-api/internal/httperr"
	"github.com/tallergestion/workshop-api/internal/httpresp"
	"github.com/tallergestion/workshop-api/internal/models"
)

type RepairHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewRepairHandler(db *gorm.DB, audit *audit.Dispatcher) *RepairHandler {
	return &RepairHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateRepairRequest struct {
	VehicleID uint   `json:"vehicle_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Condition string `json:"condition"`
	Notes     string `json:"notes"`
}

type UpdateRepairRequest struct {
	Status    *string `json:"status,omitempty"`
	Condition *string `json:"condition,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// --------- Handlers ---------

func (h *RepairHandler) List(c *gin.Context) {
	q := h.db.
		Preload("Vehicle").
		Preload("Vehicle.Client").
		Preload("Service").
		Preload("Mechanic").
		Order("checked_in_at DESC")

	if status := c.Query("status"); status != "" {
		if !repairdomain.ValidStatus(status) {
			httperr.BadRequest(c, "invalid_status", "Estado de reparación desconocido.")
			return
		}
		q = q.Where("status = ?", status)
	}
	if mechanicID := c.Query("mechanic_id"); mechanicID != "" {
		q = q.Where("mechanic_id = ?", mechanicID)
	}

	var repairs []models.Repair
	if err := q.Find(&repairs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_repairs", "Error al listar reparaciones.")
		return
	}

	httpresp.List(c, repairs)
}

// ListAvailable devuelve las reparaciones pendientes sin mecánico,
// el tablero desde el que un mecánico elige trabajo.
func (h *RepairHandler) ListAvailable(c *gin.Context) {
	var repairs []models.Repair
	if err := h.db.
		Preload("Vehicle").
		Preload("Vehicle.Client").
		Preload("Service").
		Where("status = ? AND mechanic_id IS NULL", repairdomain.StatusPending).
		Order("checked_in_at ASC").
		Find(&repairs).Error; err != nil {

		httperr.Internal(c, "failed_to_list_repairs", "Error al listar reparaciones.")
		return
	}

	httpresp.List(c, repairs)
}

func (h *RepairHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var repair models.Repair
	if err := h.db.
		Preload("Vehicle").
		Preload("Vehicle.Client").
		Preload("Service").
		Preload("Mechanic").
		First(&repair, id).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "repair_not_found", "Reparación no encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_repair", "Error al obtener reparación.")
		return
	}

	httpresp.OK(c, repair)
}

func (h *RepairHandler) Create(c *gin.Context) {
	var req CreateRepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	condition := string(repairdomain.ConditionFair)
	if req.Condition != "" {
		if !repairdomain.ValidCondition(req.Condition) {
			httperr.BadRequest(c, "invalid_condition", "Condición desconocida.")
			return
		}
		condition = req.Condition
	}

	var vehicle models.Vehicle
	if err := h.db.First(&vehicle, req.VehicleID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.BadRequest(c, "vehicle_not_found", "El vehículo indicado no existe.")
			return
		}
		httperr.Internal(c, "failed_to_get_vehicle", "Error al obtener vehículo.")
		return
	}

	var service models.Service
	if err := h.db.First(&service, req.ServiceID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.BadRequest(c, "service_not_found", "El servicio indicado no existe.")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "Error al obtener servicio.")
		return
	}

	repair := models.Repair{
		VehicleID: req.VehicleID,
		ServiceID: req.ServiceID,
		Status:    string(repairdomain.InitialStatus()),
		Condition: condition,
		Notes:     req.Notes,
	}

	if err := h.db.Create(&repair).Error; err != nil {
		httperr.Internal(c, "failed_to_create_repair", "Error al crear reparación.")
		return
	}
	repair.Vehicle = vehicle
	repair.Service = service

	userID := actingUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "repair_created",
		Entity:   "repair",
		EntityID: &repair.ID,
	})

	httpresp.Created(c, repair)
}

// Take asigna la reparación al mecánico autenticado. Solo una
// reparación pendiente y sin asignar puede tomarse.
func (h *RepairHandler) Take(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	userID := actingUserID(c)

	mechanic, ok := currentEmployee(c, h.db)
	if !ok {
		return
	}

	var repair models.Repair
	err := h.db.Transaction(func(tx *gorm.DB) error {
		// SELECT FOR UPDATE: dos mecánicos no pueden tomar la misma
		// reparación, el segundo espera y ve la fila ya asignada.
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&repair, id).Error; err != nil {

			if err == gorm.ErrRecordNotFound {
				return httperr.ErrBusiness("repair_not_found")
			}
			return err
		}

		if err := repairdomain.CanTake(repairdomain.Status(repair.Status), repair.MechanicID != nil); err != nil {
			return err
		}

		repair.MechanicID = &mechanic.ID
		repair.Status = string(repairdomain.StatusInProgress)
		return tx.Omit("Vehicle", "Service", "Mechanic").Save(&repair).Error
	})
	if err != nil {
		if writeBusiness(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_take_repair", "Error al tomar reparación.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "repair_taken",
		Entity:   "repair",
		EntityID: &repair.ID,
	})

	httpresp.OK(c, repair)
}

func (h *RepairHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var repair models.Repair
	if err := h.db.First(&repair, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "repair_not_found", "Reparación no encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_repair", "Error al obtener reparación.")
		return
	}

	var req UpdateRepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Status != nil {
		if !repairdomain.ValidStatus(*req.Status) {
			httperr.BadRequest(c, "invalid_status", "Estado de reparación desconocido.")
			return
		}
		next := repairdomain.Status(*req.Status)
		if err := repairdomain.CanTransition(repairdomain.Status(repair.Status), next); err != nil {
			writeBusiness(c, err)
			return
		}
		repair.Status = string(next)
		if next == repairdomain.StatusCompleted {
			now := time.Now()
			repair.CheckedOutAt = &now
		}
	}
	if req.Condition != nil {
		if !repairdomain.ValidCondition(*req.Condition) {
			httperr.BadRequest(c, "invalid_condition", "Condición desconocida.")
			return
		}
		repair.Condition = *req.Condition
	}
	if req.Notes != nil {
		repair.Notes = *req.Notes
	}

	if err := h.db.Omit("Vehicle", "Service", "Mechanic").Save(&repair).Error; err != nil {
		httperr.Internal(c, "failed_to_update_repair", "Error al actualizar reparación.")
		return
	}

	userID := actingUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "repair_updated",
		Entity:   "repair",
		EntityID: &repair.ID,
	})

	httpresp.OK(c, repair)
}

func (h *RepairHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var repair models.Repair
	if err := h.db.First(&repair, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "repair_not_found", "Reparación no encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_repair", "Error al obtener reparación.")
		return
	}

	if err := h.db.Delete(&repair).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_repair", "Error al eliminar reparación.")
		return
	}

	userID := actingUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "repair_deleted",
		Entity:   "repair",
		EntityID: &repair.ID,
	})

	httpresp.NoContent(c)
}
