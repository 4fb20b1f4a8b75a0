package appointment

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type RescheduleInput struct {
	ID    uint
	Start time.Time
	// ServiceIDs nil mantém os serviços atuais.
	ServiceIDs []uint
}

type RescheduleAppointment struct {
	Deps
}

func NewRescheduleAppointment(deps Deps) *RescheduleAppointment {
	return &RescheduleAppointment{Deps: deps}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	sess auth.Session,
	in RescheduleInput,
) (*models.Appointment, error) {

	var ap *models.Appointment
	var end time.Time
	var previous time.Time

	err := uc.Repo.Atomic(ctx, func(tx domain.Repository) error {
		var err error

		ap, err = tx.GetAppointment(ctx, sess.SalonID, in.ID)
		if err != nil {
			return lookup("get appointment", "appointment", err)
		}
		if !domain.Reschedulable(ap) {
			return httperr.ErrBusinessf(
				httperr.CodeInvalidTransition,
				"appointment %d is %s", ap.ID, ap.Status,
			)
		}

		salon, err := tx.GetSalon(ctx, sess.SalonID)
		if err != nil {
			return lookup("get salon", "salon", err)
		}
		pro, err := tx.GetProfessional(ctx, sess.SalonID, ap.ProfessionalID)
		if err != nil {
			return lookup("get professional", "professional", err)
		}

		// --------------------------------------------------
		// Duração: serviços novos ou os já congelados
		// --------------------------------------------------
		replace := in.ServiceIDs != nil
		var total time.Duration
		var items []models.AppointmentService

		if replace {
			services, d, err := resolveServices(ctx, tx, sess.SalonID, in.ServiceIDs)
			if err != nil {
				return err
			}
			total = d
			items = domain.LineItems(services)
		} else {
			for _, li := range ap.Services {
				total += time.Duration(li.DurationMin) * time.Minute
			}
			if total <= 0 {
				return httperr.ErrBusinessf(httperr.CodeInvalidInput, "appointment %d has no services", ap.ID)
			}
		}
		end = in.Start.Add(total)

		if err := checkSlot(ctx, tx, salon, pro, in.Start, end, ap.ID); err != nil {
			return err
		}

		previous = ap.StartTime
		ap.StartTime = in.Start
		ap.EndTime = end
		if replace {
			ap.Services = items
		}

		if err := tx.UpdateAppointment(ctx, ap, replace); err != nil {
			if httperr.IsExclusionConflict(err) {
				return errExclusion
			}
			return httperr.Store("update appointment", err)
		}
		return nil
	})

	if errors.Is(err, errExclusion) {
		return nil, lateConflict(ctx, uc.Repo, ap.ProfessionalID, in.Start, end, ap.ID)
	}
	if err != nil {
		return nil, err
	}

	uc.afterWrite(ctx, "reschedule", audit.Event{
		SalonID:  sess.SalonID,
		UserID:   userID(sess.UserID),
		Action:   audit.ActionAppointmentRescheduled,
		Entity:   "appointment",
		EntityID: strconv.FormatUint(uint64(ap.ID), 10),
		Metadata: map[string]any{
			"from": previous,
			"to":   ap.StartTime,
		},
	})

	return ap, nil
}
