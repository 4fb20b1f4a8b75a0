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

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID       uint
	ProfessionalID uint
	Start          time.Time
	ServiceIDs     []uint
	Notes          string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	Deps
}

func NewCreateAppointment(deps Deps) *CreateAppointment {
	return &CreateAppointment{Deps: deps}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	sess auth.Session,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	var ap *models.Appointment
	var end time.Time

	err := uc.Repo.Atomic(ctx, func(tx domain.Repository) error {

		// --------------------------------------------------
		// 1️⃣ Salão, cliente e profissional
		// --------------------------------------------------
		salon, err := tx.GetSalon(ctx, sess.SalonID)
		if err != nil {
			return lookup("get salon", "salon", err)
		}

		if _, err := tx.GetClient(ctx, sess.SalonID, in.ClientID); err != nil {
			return lookup("get client", "client", err)
		}

		pro, err := tx.GetProfessional(ctx, sess.SalonID, in.ProfessionalID)
		if err != nil {
			return lookup("get professional", "professional", err)
		}

		// --------------------------------------------------
		// 2️⃣ Serviços → duração
		// --------------------------------------------------
		services, total, err := resolveServices(ctx, tx, sess.SalonID, in.ServiceIDs)
		if err != nil {
			return err
		}
		end = in.Start.Add(total)

		// --------------------------------------------------
		// 3️⃣ Expediente + conflito
		// --------------------------------------------------
		if err := checkSlot(ctx, tx, salon, pro, in.Start, end, 0); err != nil {
			return err
		}

		// --------------------------------------------------
		// 4️⃣ Criação (status inicial centralizado)
		// --------------------------------------------------
		ap = &models.Appointment{
			SalonID:        sess.SalonID,
			ProfessionalID: pro.ID,
			ClientID:       in.ClientID,
			StartTime:      in.Start,
			EndTime:        end,
			Status:         string(domain.InitialStatus()),
			Notes:          in.Notes,
			Services:       domain.LineItems(services),
		}

		if err := tx.CreateAppointment(ctx, ap); err != nil {
			if httperr.IsExclusionConflict(err) {
				return errExclusion
			}
			return httperr.Store("create appointment", err)
		}
		return nil
	})

	if errors.Is(err, errExclusion) {
		return nil, lateConflict(ctx, uc.Repo, in.ProfessionalID, in.Start, end, 0)
	}
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Auditoria + cache
	// --------------------------------------------------
	uc.afterWrite(ctx, "create", audit.Event{
		SalonID:  sess.SalonID,
		UserID:   userID(sess.UserID),
		Action:   audit.ActionAppointmentCreated,
		Entity:   "appointment",
		EntityID: strconv.FormatUint(uint64(ap.ID), 10),
		Metadata: map[string]any{
			"professional_id": ap.ProfessionalID,
			"start":           ap.StartTime,
			"end":             ap.EndTime,
		},
	})

	return ap, nil
}
