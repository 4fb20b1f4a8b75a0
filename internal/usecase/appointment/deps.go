package appointment

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/store"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// errExclusion sinaliza, de dentro da transação, que o banco recusou o
// horário; o conflito é resolvido depois do rollback.
var errExclusion = errors.New("appointment exclusion constraint")

type Auditor interface {
	Dispatch(ev audit.Event)
}

// Invalidator é o lado de escrita do cache do calendário.
type Invalidator interface {
	InvalidateAll(ctx context.Context) error
}

// Deps reúne o que todo use case de agendamento recebe.
type Deps struct {
	Repo     domain.Repository
	Audit    Auditor
	Calendar Invalidator
	Metrics  *metrics.Metrics
	Log      *zap.Logger
	Now      func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// afterWrite roda depois do commit: auditoria, métricas e cache.
// Falha ao invalidar o cache é logada, nunca devolvida.
func (d Deps) afterWrite(ctx context.Context, op string, ev audit.Event) {
	if d.Audit != nil {
		d.Audit.Dispatch(ev)
	}
	d.Metrics.Appointment(op)

	if d.Calendar == nil {
		return
	}
	if err := d.Calendar.InvalidateAll(ctx); err != nil && d.Log != nil {
		d.Log.Warn("calendar cache invalidation failed",
			zap.String("operation", op),
			zap.Error(err),
		)
	}
}

// lookup traduz store.ErrNotFound em not_found e embrulha o resto como falha de store.
func lookup(op, what string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return httperr.ErrBusinessf(httperr.CodeNotFound, "%s not found", what)
	}
	return httperr.Store(op, err)
}

// resolveServices carrega os serviços pedidos e devolve a duração total.
func resolveServices(
	ctx context.Context,
	repo domain.Repository,
	salonID uint,
	ids []uint,
) ([]models.Service, time.Duration, error) {

	if len(ids) == 0 {
		return nil, 0, httperr.ErrBusinessf(httperr.CodeInvalidInput, "at least one service is required")
	}

	services, err := repo.GetServices(ctx, salonID, ids)
	if err != nil {
		return nil, 0, lookup("get services", "service", err)
	}

	total := domain.TotalDuration(services)
	if total <= 0 {
		return nil, 0, httperr.ErrBusinessf(httperr.CodeInvalidInput, "services have no duration")
	}
	return services, total, nil
}

// checkSlot aplica, nessa ordem, expediente e sobreposição. Deve rodar
// dentro de Atomic: FindOverlapping trava as linhas lidas.
func checkSlot(
	ctx context.Context,
	tx domain.Repository,
	salon *models.Salon,
	pro *models.Professional,
	start time.Time,
	end time.Time,
	excludeID uint,
) error {

	wh, err := domain.FromModels(pro.WorkingIntervals)
	if err != nil {
		return err
	}

	if !wh.Contains(start, end, timezone.Location(salon.Timezone)) {
		return httperr.ErrBusinessf(
			httperr.CodeOutOfWorkingHours,
			"%s-%s outside professional %d hours",
			start.Format(time.RFC3339), end.Format(time.RFC3339), pro.ID,
		)
	}

	existing, err := tx.FindOverlapping(ctx, pro.ID, start, end, excludeID)
	if err != nil {
		return httperr.Store("find overlapping", err)
	}
	if c := domain.FirstConflict(existing, start, end, excludeID); c != nil {
		return httperr.ErrSlotConflict(c.ID)
	}
	return nil
}

// lateConflict converte a violação da constraint EXCLUDE em slot_conflict,
// buscando o agendamento que venceu a corrida.
func lateConflict(
	ctx context.Context,
	repo domain.Repository,
	professionalID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) error {

	var conflictID uint
	existing, err := repo.FindOverlapping(ctx, professionalID, start, end, excludeID)
	if err == nil {
		if c := domain.FirstConflict(existing, start, end, excludeID); c != nil {
			conflictID = c.ID
		}
	}
	return httperr.ErrSlotConflict(conflictID)
}

func userID(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}
