package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ListForRangeInput struct {
	ProfessionalID *uint
	Statuses       []domain.Status
	Start          time.Time
	End            time.Time
}

type ListForRange struct {
	repo domain.Repository
}

func NewListForRange(repo domain.Repository) *ListForRange {
	return &ListForRange{repo: repo}
}

// Execute devolve os agendamentos que cruzam [Start,End), por início.
func (uc *ListForRange) Execute(
	ctx context.Context,
	sess auth.Session,
	in ListForRangeInput,
) ([]models.Appointment, error) {

	if !in.Start.Before(in.End) {
		return nil, httperr.ErrBusinessf(httperr.CodeInvalidInput, "range end must be after start")
	}
	for _, st := range in.Statuses {
		if !st.Known() {
			return nil, httperr.ErrBusinessf(httperr.CodeInvalidInput, "unknown status %q", st)
		}
	}

	apps, err := uc.repo.ListAppointments(ctx, domain.RangeFilter{
		SalonID:        sess.SalonID,
		ProfessionalID: in.ProfessionalID,
		Statuses:       in.Statuses,
		Start:          in.Start,
		End:            in.End,
	})
	if err != nil {
		return nil, httperr.Store("list appointments", err)
	}

	if apps == nil {
		apps = []models.Appointment{}
	}
	return apps, nil
}
