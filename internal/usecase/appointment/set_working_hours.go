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

// SetWorkingHours troca o expediente inteiro do profissional. Agendamentos
// já marcados não são revalidados.
type SetWorkingHours struct {
	Deps
}

func NewSetWorkingHours(deps Deps) *SetWorkingHours {
	return &SetWorkingHours{Deps: deps}
}

func (uc *SetWorkingHours) Execute(
	ctx context.Context,
	sess auth.Session,
	professionalID uint,
	rows []models.WorkingInterval,
) ([]models.WorkingInterval, error) {

	if _, err := domain.FromModels(rows); err != nil {
		return nil, err
	}

	err := uc.Repo.Atomic(ctx, func(tx domain.Repository) error {
		if _, err := tx.GetProfessional(ctx, sess.SalonID, professionalID); err != nil {
			return lookup("get professional", "professional", err)
		}
		if err := tx.ReplaceWorkingIntervals(ctx, professionalID, rows); err != nil {
			return httperr.Store("replace working intervals", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.Audit != nil {
		uc.Audit.Dispatch(audit.Event{
			SalonID:  sess.SalonID,
			UserID:   userID(sess.UserID),
			Action:   audit.ActionWorkingHoursUpdated,
			Entity:   "professional",
			EntityID: strconv.FormatUint(uint64(professionalID), 10),
			Metadata: map[string]int{"intervals": len(rows)},
		})
	}

	return rows, nil
}
