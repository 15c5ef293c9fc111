package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tallergestion/workshop-api/internal/audit"
	"github.com/tallergestion/workshop-api/internal/httperr"
	"github.com/tallergestion/workshop-api/internal/httpresp"
	"github.com/tallergestion/workshop-api/internal/models"
)

type VehicleHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewVehicleHandler(db *gorm.DB, audit *audit.Dispatcher) *VehicleHandler {
	return &VehicleHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateVehicleRequest struct {
	ClientID uint   `json:"client_id" binding:"required"`
	Make     string `json:"make" binding:"required"`
	Model    string `json:"model" binding:"required"`
	Year     int    `json:"year" binding:"omitempty,min=1900"`
	Plate    string `json:"plate" binding:"required"`
}

type UpdateVehicleRequest struct {
	ClientID *uint   `json:"client_id,omitempty"`
	Make     *string `json:"make,omitempty"`
	Model    *string `json:"model,omitempty"`
	Year     *int    `json:"year,omitempty" binding:"omitempty,min=1900"`
	Plate    *string `json:"plate,omitempty"`
}

// --------- Handlers ---------

func (h *VehicleHandler) List(c *gin.Context) {
	q := h.db.Preload("Client").Order("created_at DESC")

	if clientID := c.Query("client_id"); clientID != "" {
		q = q.Where("client_id = ?", clientID)
	}
	if plate := strings.ToUpper(strings.TrimSpace(c.Query("plate"))); plate != "" {
		q = q.Where("UPPER(plate) LIKE ?", "%"+plate+"%")
	}

	var vehicles []models.Vehicle
	if err := q.Find(&vehicles).Error; err != nil {
		httperr.Internal(c, "failed_to_list_vehicles", "Error al listar vehículos.")
		return
	}

	httpresp.List(c, vehicles)
}

func (h *VehicleHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var vehicle models.Vehicle
	if err := h.db.Preload("Client").First(&vehicle, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "vehicle_not_found", "Vehículo no encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_vehicle", "Error al obtener vehículo.")
		return
	}

	httpresp.OK(c, vehicle)
}

func (h *VehicleHandler) Create(c *gin.Context) {
	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var client models.Client
	if err := h.db.First(&client, req.ClientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.BadRequest(c, "client_not_found", "El cliente indicado no existe.")
			return
		}
		httperr.Internal(c, "failed_to_get_client", "Error al obtener cliente.")
		return
	}

	vehicle := models.Vehicle{
		ClientID: req.ClientID,
		Make:     req.Make,
		Model:    req.Model,
		Year:     req.Year,
		Plate:    strings.ToUpper(strings.TrimSpace(req.Plate)),
	}

	if err := h.db.Create(&vehicle).Error; err != nil {
		httperr.Internal(c, "failed_to_create_vehicle", "Error al crear vehículo.")
		return
	}
	vehicle.Client = client

	userID := actingUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "vehicle_created",
		Entity:   "vehicle",
		EntityID: &vehicle.ID,
	})

	httpresp.Created(c, vehicle)
}

func (h *VehicleHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var vehicle models.Vehicle
	if err := h.db.First(&vehicle, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "vehicle_not_found", "Vehículo no encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_vehicle", "Error al obtener vehículo.")
		return
	}

	var req UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.ClientID != nil {
		var client models.Client
		if err := h.db.First(&client, *req.ClientID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				httperr.BadRequest(c, "client_not_found", "El cliente indicado no existe.")
				return
			}
			httperr.Internal(c, "failed_to_get_client", "Error al obtener cliente.")
			return
		}
		vehicle.ClientID = *req.ClientID
	}
	if req.Make != nil {
		vehicle.Make = *req.Make
	}
	if req.Model != nil {
		vehicle.Model = *req.Model
	}
	if req.Year != nil {
		vehicle.Year = *req.Year
	}
	if req.Plate != nil {
		vehicle.Plate = strings.ToUpper(strings.TrimSpace(*req.Plate))
	}

	if err := h.db.Omit("Client").Save(&vehicle).Error; err != nil {
		httperr.Internal(c, "failed_to_update_vehicle", "Error al actualizar vehículo.")
		return
	}

	userID := actingUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "vehicle_updated",
		Entity:   "vehicle",
		EntityID: &vehicle.ID,
	})

	httpresp.OK(c, vehicle)
}

func (h *VehicleHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var vehicle models.Vehicle
	if err := h.db.First(&vehicle, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "vehicle_not_found", "Vehículo no encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_vehicle", "Error al obtener vehículo.")
		return
	}

	if err := h.db.Delete(&vehicle).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_vehicle", "Error al eliminar vehículo.")
		return
	}

	userID := actingUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "vehicle_deleted",
		Entity:   "vehicle",
		EntityID: &vehicle.ID,
	})

	httpresp.NoContent(c)
}
