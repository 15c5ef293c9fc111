package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	appointmentdomain "github.com/tallergestion/workshop-api/internal/domain/appointment"
	repairdomain "github.com/tallergestion/workshop-api/internal/domain/repair"
	"github.com/tallergestion/workshop-api/internal/httperr"
	"github.com/tallergestion/workshop-api/internal/httpresp"
	"github.com/tallergestion/workshop-api/internal/models"
	"github.com/tallergestion/workshop-api/internal/timezone"
)

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

type dashboardTotals struct {
	Clients      int64 `json:"clients"`
	Employees    int64 `json:"employees"`
	Services     int64 `json:"services"`
	Vehicles     int64 `json:"vehicles"`
	Appointments int64 `json:"appointments"`
	Repairs      int64 `json:"repairs"`
}

type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// Summary arma el panel principal: totales por entidad, reparaciones
// agrupadas por estado y las próximas citas agendadas.
func (h *DashboardHandler) Summary(c *gin.Context) {
	var totals dashboardTotals

	counts := []struct {
		model any
		dst   *int64
	}{
		{&models.Client{}, &totals.Clients},
		{&models.Employee{}, &totals.Employees},
		{&models.Service{}, &totals.Services},
		{&models.Vehicle{}, &totals.Vehicles},
		{&models.Appointment{}, &totals.Appointments},
		{&models.Repair{}, &totals.Repairs},
	}
	for _, ct := range counts {
		if err := h.db.Model(ct.model).Count(ct.dst).Error; err != nil {
			httperr.Internal(c, "failed_to_build_dashboard", "Error al armar el panel.")
			return
		}
	}

	var repairsByStatus []statusCount
	if err := h.db.Model(&models.Repair{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&repairsByStatus).Error; err != nil {

		httperr.Internal(c, "failed_to_build_dashboard", "Error al armar el panel.")
		return
	}

	var pendingRepairs int64
	if err := h.db.Model(&models.Repair{}).
		Where("status = ? AND mechanic_id IS NULL", repairdomain.StatusPending).
		Count(&pendingRepairs).Error; err != nil {

		httperr.Internal(c, "failed_to_build_dashboard", "Error al armar el panel.")
		return
	}

	var upcoming []models.Appointment
	if err := h.db.
		Preload("Client").
		Preload("Services").
		Where("status = ? AND scheduled_at >= ?", appointmentdomain.StatusScheduled, timezone.Now()).
		Order("scheduled_at ASC").
		Limit(5).
		Find(&upcoming).Error; err != nil {

		httperr.Internal(c, "failed_to_build_dashboard", "Error al armar el panel.")
		return
	}

	httpresp.OK(c, gin.H{
		"totals":                totals,
		"repairs_by_status":     repairsByStatus,
		"unassigned_repairs":    pendingRepairs,
		"upcoming_appointments": upcoming,
	})
}
