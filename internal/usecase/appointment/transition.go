package appointment

import (
	"context"
	"strconv"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type TransitionInput struct {
	ID     uint
	Target string
}

// TransitionAppointment cobre confirmar, cancelar e concluir.
type TransitionAppointment struct {
	Deps
}

func NewTransitionAppointment(deps Deps) *TransitionAppointment {
	return &TransitionAppointment{Deps: deps}
}

func (uc *TransitionAppointment) Execute(
	ctx context.Context,
	sess auth.Session,
	in TransitionInput,
) (*models.Appointment, error) {

	target, err := domain.ParseStatus(in.Target)
	if err != nil {
		return nil, err
	}

	var ap *models.Appointment
	var from string

	err = uc.Repo.Atomic(ctx, func(tx domain.Repository) error {
		var err error

		ap, err = tx.GetAppointment(ctx, sess.SalonID, in.ID)
		if err != nil {
			return lookup("get appointment", "appointment", err)
		}

		from = ap.Status
		if err := domain.Transition(ap, target, uc.now()); err != nil {
			return err
		}

		if err := tx.UpdateAppointment(ctx, ap, false); err != nil {
			return httperr.Store("update appointment", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.afterWrite(ctx, string(target), audit.Event{
		SalonID:  sess.SalonID,
		UserID:   userID(sess.UserID),
		Action:   audit.ActionAppointmentTransition,
		Entity:   "appointment",
		EntityID: strconv.FormatUint(uint64(ap.ID), 10),
		Metadata: map[string]string{
			"from": from,
			"to":   ap.Status,
		},
	})

	return ap, nil
}
