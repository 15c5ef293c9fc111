package appointment

import (
	"context"
	"time"

	"github.com/tallergestion/workshop-api/internal/audit"
	"github.com/tallergestion/workshop-api/internal/authz"
	domain "github.com/tallergestion/workshop-api/internal/domain/appointment"
	"github.com/tallergestion/workshop-api/internal/httperr"
	"github.com/tallergestion/workshop-api/internal/models"
	"github.com/tallergestion/workshop-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type ScheduleInput struct {
	Role   authz.Role
	UserID uint

	ClientID   uint
	ServiceIDs []uint

	Date  string // 2006-01-02
	Time  string // 15:04
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type Schedule struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSchedule(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *Schedule {
	return &Schedule{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Schedule) Execute(
	ctx context.Context,
	in ScheduleInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Permiso, verificado en el momento de la operación
	// --------------------------------------------------
	if !authz.Permit(in.Role, authz.ActionCreate, authz.EntityAppointment) {
		return nil, httperr.ErrBusiness(httperr.CodePermissionDenied)
	}

	// --------------------------------------------------
	// 2. Al menos un servicio
	// --------------------------------------------------
	if len(in.ServiceIDs) == 0 {
		return nil, httperr.ErrBusiness(httperr.CodeEmptyServices)
	}

	// --------------------------------------------------
	// 3. Fecha y hora en el huso del taller
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(timezone.DefaultTimezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}

	// --------------------------------------------------
	// 4. Cliente
	// --------------------------------------------------
	client, err := uc.repo.GetClientByID(ctx, in.ClientID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeClientNotFound)
	}

	// --------------------------------------------------
	// 5. Todos los servicios deben existir
	// --------------------------------------------------
	services, err := uc.repo.GetServicesByIDs(ctx, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6. Creación atómica: cita + filas cita-servicio
	// --------------------------------------------------
	ap := &models.Appointment{
		ClientID:    client.ID,
		ScheduledAt: start,
		Status:      string(domain.InitialStatus()),
		Notes:       in.Notes,
		CreatedByID: in.UserID,
	}

	if err := uc.repo.CreateScheduled(ctx, ap, services); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 7. Auditoría
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "appointment_scheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"client_id":   client.ID,
			"service_ids": in.ServiceIDs,
		},
	})

	return ap, nil
}
