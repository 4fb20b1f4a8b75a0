package calendar

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/store"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	ucappointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

type Lister interface {
	Execute(ctx context.Context, sess auth.Session, in ucappointment.ListForRangeInput) ([]models.Appointment, error)
}

type SalonGetter interface {
	GetSalon(ctx context.Context, salonID uint) (*models.Salon, error)
}

type MonthView struct {
	Month  Month `json:"month"`
	Prev   Month `json:"prev"`
	Next   Month `json:"next"`
	Days   []Day `json:"days"`
	Total  int   `json:"total"`
	Cached bool  `json:"cached"`
}

type Service struct {
	list    Lister
	salons  SalonGetter
	cache   Cache
	metrics *metrics.Metrics
	log     *zap.Logger
	now     func() time.Time
}

func NewService(list Lister, salons SalonGetter, cache Cache, m *metrics.Metrics, log *zap.Logger) *Service {
	return &Service{
		list:    list,
		salons:  salons,
		cache:   cache,
		metrics: m,
		log:     log.Named("calendar"),
		now:     time.Now,
	}
}

// Month carrega o mês do cache ou do agendador. Erro de cache nunca
// derruba a consulta: vira miss e é logado.
func (s *Service) Month(ctx context.Context, sess auth.Session, key Key) (*MonthView, error) {
	key.SalonID = sess.SalonID

	statuses := make([]domain.Status, 0, len(key.Statuses))
	for _, raw := range key.Statuses {
		st, err := domain.ParseStatus(raw)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, st)
	}

	salon, err := s.salons.GetSalon(ctx, sess.SalonID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, httperr.ErrBusinessf(httperr.CodeNotFound, "salon not found")
		}
		return nil, httperr.Store("get salon", err)
	}
	loc := timezone.Location(salon.Timezone)

	// Sem mês informado abre o mês corrente do salão
	if key.Month == (Month{}) {
		key.Month = Today(s.now(), loc)
	}

	lookup, err := s.cache.Get(ctx, key)
	cacheOK := err == nil
	if !cacheOK {
		s.log.Warn("calendar cache read failed", zap.Error(err))
		lookup = Lookup{}
	}
	events, hit := lookup.Events, lookup.Hit
	s.metrics.CalendarCache(hit)

	if !hit {
		start, end := key.Month.Range(loc)
		apps, err := s.list.Execute(ctx, sess, ucappointment.ListForRangeInput{
			ProfessionalID: key.ProfessionalID,
			Statuses:       statuses,
			Start:          start,
			End:            end,
		})
		if err != nil {
			return nil, err
		}

		events = Project(apps)
		// sem a época lida não dá para gravar com segurança
		if cacheOK {
			if err := s.cache.Set(ctx, key, lookup.Epoch, events); err != nil {
				s.log.Warn("calendar cache write failed", zap.Error(err))
			}
		}
	}

	return &MonthView{
		Month:  key.Month,
		Prev:   key.Month.Previous(),
		Next:   key.Month.Next(),
		Days:   GroupByDay(events, loc),
		Total:  len(events),
		Cached: hit,
	}, nil
}

func (s *Service) InvalidateAll(ctx context.Context) error {
	return s.cache.InvalidateAll(ctx)
}

// Invalidate apaga um mês do salão da sessão, com os mesmos filtros usados
// na consulta.
func (s *Service) Invalidate(ctx context.Context, sess auth.Session, key Key) error {
	key.SalonID = sess.SalonID
	return s.cache.Invalidate(ctx, key)
}
