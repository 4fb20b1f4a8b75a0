package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/store"
)

// fakeRepo guarda tudo em memória; Atomic só serializa.
type fakeRepo struct {
	mu sync.Mutex

	salons        map[uint]models.Salon
	clients       map[uint]models.Client
	professionals map[uint]models.Professional
	services      map[uint]models.Service
	appointments  map[uint]models.Appointment
	nextID        uint

	// createErr força erro no próximo CreateAppointment
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		salons:        map[uint]models.Salon{},
		clients:       map[uint]models.Client{},
		professionals: map[uint]models.Professional{},
		services:      map[uint]models.Service{},
		appointments:  map[uint]models.Appointment{},
		nextID:        100,
	}
}

func (r *fakeRepo) Atomic(ctx context.Context, fn func(tx domain.Repository) error) error {
	return fn(r)
}

func (r *fakeRepo) GetSalon(ctx context.Context, salonID uint) (*models.Salon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.salons[salonID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &s, nil
}

func (r *fakeRepo) GetClient(ctx context.Context, salonID, clientID uint) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[clientID]
	if !ok || c.SalonID != salonID {
		return nil, store.ErrNotFound
	}
	return &c, nil
}

func (r *fakeRepo) GetProfessional(ctx context.Context, salonID, professionalID uint) (*models.Professional, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.professionals[professionalID]
	if !ok || p.SalonID != salonID {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (r *fakeRepo) GetServices(ctx context.Context, salonID uint, ids []uint) ([]models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Service, 0, len(ids))
	for _, id := range ids {
		s, ok := r.services[id]
		if !ok || s.SalonID != salonID {
			return nil, store.ErrNotFound
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeRepo) GetAppointment(ctx context.Context, salonID, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[id]
	if !ok || ap.SalonID != salonID {
		return nil, store.ErrNotFound
	}
	ap.Services = append([]models.AppointmentService(nil), ap.Services...)
	return &ap, nil
}

func (r *fakeRepo) FindOverlapping(ctx context.Context, professionalID uint, start, end time.Time, excludeID uint) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.ProfessionalID != professionalID || ap.ID == excludeID {
			continue
		}
		if ap.Status == string(domain.StatusCancelled) {
			continue
		}
		if domain.Overlaps(start, end, ap.StartTime, ap.EndTime) {
			out = append(out, ap)
		}
	}
	sortApps(out)
	return out, nil
}

func (r *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		err := r.createErr
		r.createErr = nil
		return err
	}
	r.nextID++
	ap.ID = r.nextID
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment, replaceServices bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[ap.ID]; !ok {
		return store.ErrNotFound
	}
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *fakeRepo) ListAppointments(ctx context.Context, f domain.RangeFilter) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.SalonID != f.SalonID {
			continue
		}
		if f.ProfessionalID != nil && ap.ProfessionalID != *f.ProfessionalID {
			continue
		}
		if len(f.Statuses) > 0 && !hasStatus(f.Statuses, ap.Status) {
			continue
		}
		if ap.StartTime.Before(f.End) && ap.EndTime.After(f.Start) {
			out = append(out, ap)
		}
	}
	sortApps(out)
	return out, nil
}

func (r *fakeRepo) ReplaceWorkingIntervals(ctx context.Context, professionalID uint, rows []models.WorkingInterval) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.professionals[professionalID]
	p.WorkingIntervals = rows
	r.professionals[professionalID] = p
	return nil
}

func hasStatus(list []domain.Status, s string) bool {
	for _, st := range list {
		if string(st) == s {
			return true
		}
	}
	return false
}

func sortApps(apps []models.Appointment) {
	sort.Slice(apps, func(i, j int) bool {
		if apps[i].StartTime.Equal(apps[j].StartTime) {
			return apps[i].ID < apps[j].ID
		}
		return apps[i].StartTime.Before(apps[j].StartTime)
	})
}

// ------------------------------------------------------
// fixtures
// ------------------------------------------------------

type recordingAudit struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *recordingAudit) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

type countingCache struct {
	mu    sync.Mutex
	calls int
}

func (c *countingCache) InvalidateAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return nil
}

var sess = auth.Session{UserID: 1, SalonID: 1, Role: auth.RoleOwner}

var saoPaulo = func() *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		return time.FixedZone("BRT", -3*60*60)
	}
	return loc
}()

// 2026-03-02 é segunda-feira.
func at(h, m int) time.Time {
	return time.Date(2026, 3, 2, h, m, 0, 0, saoPaulo)
}

type fixture struct {
	repo  *fakeRepo
	audit *recordingAudit
	cache *countingCache
	deps  Deps
}

// newFixture: profissional 10 atende segunda 09:00-12:00 e 13:00-18:00;
// serviço 20 dura 30 min, serviço 21 dura 60 min.
func newFixture() *fixture {
	repo := newFakeRepo()
	repo.salons[1] = models.Salon{ID: 1, Timezone: "America/Sao_Paulo"}
	repo.salons[2] = models.Salon{ID: 2, Timezone: "America/Sao_Paulo"}
	repo.clients[5] = models.Client{ID: 5, SalonID: 1, Name: "Ana"}
	repo.professionals[10] = models.Professional{
		ID:      10,
		SalonID: 1,
		Name:    "Bia",
		WorkingIntervals: []models.WorkingInterval{
			{Weekday: int(time.Monday), StartTime: "09:00", EndTime: "12:00"},
			{Weekday: int(time.Monday), StartTime: "13:00", EndTime: "18:00"},
		},
	}
	repo.services[20] = models.Service{ID: 20, SalonID: 1, Name: "Corte", DurationMin: 30, Price: decimal.NewFromInt(50)}
	repo.services[21] = models.Service{ID: 21, SalonID: 1, Name: "Escova", DurationMin: 60, Price: decimal.NewFromInt(80)}

	f := &fixture{
		repo:  repo,
		audit: &recordingAudit{},
		cache: &countingCache{},
	}
	f.deps = Deps{
		Repo:     repo,
		Audit:    f.audit,
		Calendar: f.cache,
		Now:      func() time.Time { return at(20, 0) },
	}
	return f
}

func (f *fixture) seed(id uint, start, end time.Time, status domain.Status) {
	f.repo.appointments[id] = models.Appointment{
		ID:             id,
		SalonID:        1,
		ProfessionalID: 10,
		ClientID:       5,
		StartTime:      start,
		EndTime:        end,
		Status:         string(status),
		Services: []models.AppointmentService{
			{ServiceID: 20, Name: "Corte", DurationMin: int(end.Sub(start) / time.Minute)},
		},
	}
}
