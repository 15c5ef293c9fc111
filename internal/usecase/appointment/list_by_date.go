package appointment

import (
	"context"
	"time"

	"github.com/tallergestion/workshop-api/internal/authz"
	domain "github.com/tallergestion/workshop-api/internal/domain/appointment"
	"github.com/tallergestion/workshop-api/internal/httperr"
	"github.com/tallergestion/workshop-api/internal/models"
	"github.com/tallergestion/workshop-api/internal/timezone"
)

type ListByDate struct {
	repo domain.Repository
}

func NewListByDate(repo domain.Repository) *ListByDate {
	return &ListByDate{repo: repo}
}

// Execute lista las citas de un día. date vacío = hoy.
func (uc *ListByDate) Execute(
	ctx context.Context,
	role authz.Role,
	date string,
) ([]models.Appointment, error) {

	if !authz.Permit(role, authz.ActionRead, authz.EntityAppointment) {
		return nil, httperr.ErrBusiness(httperr.CodePermissionDenied)
	}

	loc := timezone.Location(timezone.DefaultTimezone)

	var day time.Time
	if date == "" {
		now := timezone.Now()
		day = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	} else {
		parsed, err := time.ParseInLocation("2006-01-02", date, loc)
		if err != nil {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
		}
		day = parsed
	}

	return uc.repo.ListAppointmentsForPeriod(ctx, day, day.AddDate(0, 0, 1))
}
