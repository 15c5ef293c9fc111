package appointment

import (
	"context"
	"time"

	"github.com/tallergestion/workshop-api/internal/models"
)

type Repository interface {
	// -------- Client --------
	GetClientByID(
		ctx context.Context,
		id uint,
	) (*models.Client, error)

	// -------- Service --------
	// GetServicesByIDs devuelve exactamente los servicios pedidos;
	// si algún id no existe, error de negocio service_not_found.
	GetServicesByIDs(
		ctx context.Context,
		ids []uint,
	) ([]models.Service, error)

	// -------- Appointment (schedule) --------
	// CreateScheduled persiste la cita y sus filas de asociación
	// cita-servicio en una sola transacción: o se escriben todas
	// o ninguna.
	CreateScheduled(
		ctx context.Context,
		ap *models.Appointment,
		services []models.Service,
	) error

	// -------- Appointment (state change) --------
	// GetAppointmentByID devuelve error de negocio appointment_not_found
	// si la cita no existe; cualquier otro error es falla del store.
	GetAppointmentByID(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listing --------
	ListAppointmentsForPeriod(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
