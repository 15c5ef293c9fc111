package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tallergestion/workshop-api/internal/audit"
	domain "github.com/tallergestion/workshop-api/internal/domain/appointment"
	"github.com/tallergestion/workshop-api/internal/httperr"
	"github.com/tallergestion/workshop-api/internal/httpresp"
	appointmentuc "github.com/tallergestion/workshop-api/internal/usecase/appointment"
)

type AppointmentHandler struct {
	schedule   *appointmentuc.Schedule
	cancel     *appointmentuc.Cancel
	complete   *appointmentuc.Complete
	listByDate *appointmentuc.ListByDate

	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAppointmentHandler(
	schedule *appointmentuc.Schedule,
	cancel *appointmentuc.Cancel,
	complete *appointmentuc.Complete,
	listByDate *appointmentuc.ListByDate,
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AppointmentHandler {
	return &AppointmentHandler{
		schedule:   schedule,
		cancel:     cancel,
		complete:   complete,
		listByDate: listByDate,
		repo:       repo,
		audit:      audit,
	}
}

// --------- Requests ---------

type CreateAppointmentRequest struct {
	ClientID   uint   `json:"client_id" binding:"required"`
	ServiceIDs []uint `json:"service_ids" binding:"required"`
	Date       string `json:"date" binding:"required"` // 2006-01-02
	Time       string `json:"time" binding:"required"` // 15:04
	Notes      string `json:"notes"`
}

// --------- Handlers ---------

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	ap, err := h.schedule.Execute(c.Request.Context(), appointmentuc.ScheduleInput{
		Role:       actingRole(c),
		UserID:     actingUserID(c),
		ClientID:   req.ClientID,
		ServiceIDs: req.ServiceIDs,
		Date:       req.Date,
		Time:       req.Time,
		Notes:      req.Notes,
	})
	if err != nil {
		if writeBusiness(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_schedule", "Error al agendar la cita.")
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) List(c *gin.Context) {
	appointments, err := h.listByDate.Execute(
		c.Request.Context(),
		actingRole(c),
		c.Query("date"),
	)
	if err != nil {
		if writeBusiness(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_list_appointments", "Error al listar citas.")
		return
	}

	httpresp.List(c, appointments)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := h.repo.GetAppointmentByID(c.Request.Context(), id)
	if err != nil {
		if writeBusiness(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_get_appointment", "Error al obtener la cita.")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), actingRole(c), actingUserID(c), id)
	if err != nil {
		if writeBusiness(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_cancel", "Error al cancelar la cita.")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), actingRole(c), actingUserID(c), id)
	if err != nil {
		if writeBusiness(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_complete", "Error al completar la cita.")
		return
	}

	httpresp.OK(c, ap)
}

// Delete elimina la cita y sus filas de asociación. Es borrado físico,
// no hay papelera de citas.
func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := h.repo.GetAppointmentByID(c.Request.Context(), id)
	if err != nil {
		if writeBusiness(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_get_appointment", "Error al obtener la cita.")
		return
	}

	if err := h.repo.DeleteAppointment(c.Request.Context(), ap); err != nil {
		httperr.Internal(c, "failed_to_delete_appointment", "Error al eliminar la cita.")
		return
	}

	userID := actingUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	httpresp.NoContent(c)
}
