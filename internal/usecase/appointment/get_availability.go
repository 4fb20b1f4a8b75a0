package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type AvailabilityInput struct {
	ProfessionalID uint
	ServiceIDs     []uint
	// Date no formato YYYY-MM-DD, no fuso do salão.
	Date string
}

type GetAvailability struct {
	repo domain.Repository
	step time.Duration
}

func NewGetAvailability(repo domain.Repository, granularityMin int) *GetAvailability {
	if granularityMin <= 0 {
		granularityMin = 15
	}
	return &GetAvailability{
		repo: repo,
		step: time.Duration(granularityMin) * time.Minute,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	sess auth.Session,
	in AvailabilityInput,
) ([]domain.TimeSlot, error) {

	salon, err := uc.repo.GetSalon(ctx, sess.SalonID)
	if err != nil {
		return nil, lookup("get salon", "salon", err)
	}

	date, err := timezone.ParseDate(salon.Timezone, in.Date)
	if err != nil {
		return nil, httperr.ErrBusinessf(httperr.CodeInvalidInput, "invalid date %q", in.Date)
	}

	pro, err := uc.repo.GetProfessional(ctx, sess.SalonID, in.ProfessionalID)
	if err != nil {
		return nil, lookup("get professional", "professional", err)
	}

	_, duration, err := resolveServices(ctx, uc.repo, sess.SalonID, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	wh, err := domain.FromModels(pro.WorkingIntervals)
	if err != nil {
		return nil, err
	}

	// ListAppointments filtra por interseção: um agendamento que começa na
	// véspera e invade o dia também bloqueia slots.
	dayStart := timezone.StartOfDay(date)
	profID := pro.ID
	busy, err := uc.repo.ListAppointments(ctx, domain.RangeFilter{
		SalonID:        sess.SalonID,
		ProfessionalID: &profID,
		Statuses:       domain.ActiveStatuses,
		Start:          dayStart,
		End:            dayStart.AddDate(0, 0, 1),
	})
	if err != nil {
		return nil, httperr.Store("list appointments", err)
	}

	return domain.FreeSlots(wh, dayStart, duration, uc.step, busy), nil
}
