package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tallergestion/workshop-api/internal/authz"
	domain "github.com/tallergestion/workshop-api/internal/domain/appointment"
	"github.com/tallergestion/workshop-api/internal/httperr"
	"github.com/tallergestion/workshop-api/internal/models"
)

// fakeRepo simula el repositorio gorm: CreateScheduled es atómico,
// igual que la implementación real, así que contamos filas escritas.
type fakeRepo struct {
	clients  map[uint]models.Client
	services map[uint]models.Service

	appointments    []models.Appointment
	associationRows int
	nextID          uint

	// getErr simula una falla del store en las lecturas de citas.
	getErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		clients: map[uint]models.Client{
			5: {ID: 5, FirstName: "María", LastName: "Rojas", Email: "maria@cliente.local"},
		},
		services: map[uint]models.Service{
			2: {ID: 2, Name: "Cambio de aceite", Price: 150000},
			3: {ID: 3, Name: "Alineación", Price: 220000},
		},
		nextID: 1,
	}
}

func (f *fakeRepo) GetClientByID(_ context.Context, id uint) (*models.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeClientNotFound)
	}
	return &c, nil
}

func (f *fakeRepo) GetServicesByIDs(_ context.Context, ids []uint) ([]models.Service, error) {
	out := make([]models.Service, 0, len(ids))
	for _, id := range ids {
		s, ok := f.services[id]
		if !ok {
			return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeRepo) CreateScheduled(_ context.Context, ap *models.Appointment, services []models.Service) error {
	ap.ID = f.nextID
	f.nextID++
	ap.Services = services
	f.appointments = append(f.appointments, *ap)
	f.associationRows += len(services)
	return nil
}

func (f *fakeRepo) GetAppointmentByID(_ context.Context, id uint) (*models.Appointment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for i := range f.appointments {
		if f.appointments[i].ID == id {
			return &f.appointments[i], nil
		}
	}
	return nil, httperr.ErrBusiness("appointment_not_found")
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	for i := range f.appointments {
		if f.appointments[i].ID == ap.ID {
			f.appointments[i] = *ap
			return nil
		}
	}
	return httperr.ErrBusiness("appointment_not_found")
}

func (f *fakeRepo) DeleteAppointment(_ context.Context, ap *models.Appointment) error {
	for i := range f.appointments {
		if f.appointments[i].ID == ap.ID {
			f.appointments = append(f.appointments[:i], f.appointments[i+1:]...)
			return nil
		}
	}
	return httperr.ErrBusiness("appointment_not_found")
}

func (f *fakeRepo) ListAppointmentsForPeriod(_ context.Context, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if !ap.ScheduledAt.Before(start) && ap.ScheduledAt.Before(end) {
			out = append(out, ap)
		}
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// --------------------------------------------------

func validInput() ScheduleInput {
	return ScheduleInput{
		Role:       authz.RoleManager,
		UserID:     7,
		ClientID:   5,
		ServiceIDs: []uint{2, 3},
		Date:       "2026-09-15",
		Time:       "10:30",
	}
}

func TestScheduleCreatesAppointmentWithServices(t *testing.T) {
	repo := newFakeRepo()
	uc := NewSchedule(repo, nil)

	ap, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)
	require.NotNil(t, ap)

	require.Len(t, repo.appointments, 1)
	require.Equal(t, 2, repo.associationRows)
	require.Equal(t, uint(5), ap.ClientID)
	require.Len(t, ap.Services, 2)
	require.Equal(t, "scheduled", ap.Status)
	require.Equal(t, uint(7), ap.CreatedByID)
}

func TestScheduleEmptyServiceSet(t *testing.T) {
	repo := newFakeRepo()
	uc := NewSchedule(repo, nil)

	in := validInput()
	in.ServiceIDs = nil

	_, err := uc.Execute(context.Background(), in)
	require.True(t, httperr.IsBusiness(err, httperr.CodeEmptyServices))
	require.Empty(t, repo.appointments)
	require.Zero(t, repo.associationRows)
}

func TestScheduleUnknownServiceIsAtomic(t *testing.T) {
	repo := newFakeRepo()
	uc := NewSchedule(repo, nil)

	in := validInput()
	in.ServiceIDs = []uint{2, 99}

	_, err := uc.Execute(context.Background(), in)
	require.True(t, httperr.IsBusiness(err, httperr.CodeServiceNotFound))
	require.Empty(t, repo.appointments, "no partial appointment rows")
	require.Zero(t, repo.associationRows, "no orphan association rows")
}

func TestScheduleUnknownClient(t *testing.T) {
	repo := newFakeRepo()
	uc := NewSchedule(repo, nil)

	in := validInput()
	in.ClientID = 404

	_, err := uc.Execute(context.Background(), in)
	require.True(t, httperr.IsBusiness(err, httperr.CodeClientNotFound))
	require.Empty(t, repo.appointments)
}

func TestScheduleDeniedRoles(t *testing.T) {
	t.Run("mechanic", func(t *testing.T) {
		repo := newFakeRepo()
		uc := NewSchedule(repo, nil)

		in := validInput()
		in.Role = authz.RoleMechanic

		_, err := uc.Execute(context.Background(), in)
		require.True(t, httperr.IsBusiness(err, httperr.CodePermissionDenied))
		require.Empty(t, repo.appointments)
	})

	t.Run("unknown role fails closed", func(t *testing.T) {
		repo := newFakeRepo()
		uc := NewSchedule(repo, nil)

		in := validInput()
		in.Role = authz.Role("guest")

		_, err := uc.Execute(context.Background(), in)
		require.True(t, httperr.IsBusiness(err, httperr.CodePermissionDenied))
	})
}

func TestScheduleInvalidDate(t *testing.T) {
	repo := newFakeRepo()
	uc := NewSchedule(repo, nil)

	in := validInput()
	in.Date = "15/09/2026"

	_, err := uc.Execute(context.Background(), in)
	require.True(t, httperr.IsBusiness(err, httperr.CodeInvalidDateOrTime))
}

func TestCancelLifecycle(t *testing.T) {
	repo := newFakeRepo()
	sched := NewSchedule(repo, nil)
	cancel := NewCancel(repo, nil)

	ap, err := sched.Execute(context.Background(), validInput())
	require.NoError(t, err)

	t.Run("manager cannot cancel", func(t *testing.T) {
		_, err := cancel.Execute(context.Background(), authz.RoleManager, 7, ap.ID)
		require.True(t, httperr.IsBusiness(err, httperr.CodePermissionDenied))
	})

	t.Run("owner cancels once", func(t *testing.T) {
		got, err := cancel.Execute(context.Background(), authz.RoleOwner, 1, ap.ID)
		require.NoError(t, err)
		require.Equal(t, "cancelled", got.Status)
		require.NotNil(t, got.CancelledAt)

		_, err = cancel.Execute(context.Background(), authz.RoleOwner, 1, ap.ID)
		require.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
	})
}

func TestCancelStoreErrorIsNotBusiness(t *testing.T) {
	repo := newFakeRepo()
	sched := NewSchedule(repo, nil)
	cancel := NewCancel(repo, nil)

	ap, err := sched.Execute(context.Background(), validInput())
	require.NoError(t, err)

	repo.getErr = errors.New("conexión perdida")

	_, err = cancel.Execute(context.Background(), authz.RoleOwner, 1, ap.ID)
	require.ErrorIs(t, err, repo.getErr)
	require.Empty(t, httperr.BusinessCode(err))
}

func TestCancelMissingAppointment(t *testing.T) {
	repo := newFakeRepo()
	cancel := NewCancel(repo, nil)

	_, err := cancel.Execute(context.Background(), authz.RoleOwner, 1, 999)
	require.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestCompleteLifecycle(t *testing.T) {
	repo := newFakeRepo()
	sched := NewSchedule(repo, nil)
	complete := NewComplete(repo, nil)

	ap, err := sched.Execute(context.Background(), validInput())
	require.NoError(t, err)

	got, err := complete.Execute(context.Background(), authz.RoleOwner, 1, ap.ID)
	require.NoError(t, err)
	require.Equal(t, "completed", got.Status)
	require.NotNil(t, got.CompletedAt)
}

func TestListByDate(t *testing.T) {
	repo := newFakeRepo()
	sched := NewSchedule(repo, nil)
	list := NewListByDate(repo)

	_, err := sched.Execute(context.Background(), validInput())
	require.NoError(t, err)

	t.Run("mechanic may read", func(t *testing.T) {
		apps, err := list.Execute(context.Background(), authz.RoleMechanic, "2026-09-15")
		require.NoError(t, err)
		require.Len(t, apps, 1)
	})

	t.Run("other day is empty", func(t *testing.T) {
		apps, err := list.Execute(context.Background(), authz.RoleOwner, "2026-09-16")
		require.NoError(t, err)
		require.Empty(t, apps)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := list.Execute(context.Background(), authz.RoleOwner, "ayer")
		require.True(t, httperr.IsBusiness(err, httperr.CodeInvalidDateOrTime))
	})
}
