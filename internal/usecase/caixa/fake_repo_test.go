package caixa

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/caixa"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/store"
)

// fakeRepo imita o índice parcial: dois caixas abertos no mesmo salão
// violam 23505.
type fakeRepo struct {
	mu        sync.Mutex
	sessions  map[uuid.UUID]models.CashSession
	movements []models.CashMovement

	// comandas existentes por salão
	comandas map[uint]uint

	// hideOpen faz FindOpen não enxergar caixas abertos (simula a corrida)
	hideOpen bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{sessions: map[uuid.UUID]models.CashSession{}}
}

func (r *fakeRepo) Atomic(ctx context.Context, fn func(tx domain.Repository) error) error {
	return fn(r)
}

func (r *fakeRepo) FindOpen(ctx context.Context, salonID uint) (*models.CashSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hideOpen {
		return nil, store.ErrNotFound
	}
	for _, s := range r.sessions {
		if s.SalonID == salonID && s.Status == string(domain.StatusOpen) {
			return &s, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r *fakeRepo) GetSession(ctx context.Context, salonID uint, id uuid.UUID, lock bool) (*models.CashSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || s.SalonID != salonID {
		return nil, store.ErrNotFound
	}
	return &s, nil
}

func (r *fakeRepo) CreateSession(ctx context.Context, s *models.CashSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.sessions {
		if other.SalonID == s.SalonID && other.Status == string(domain.StatusOpen) {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sessions[s.ID] = *s
	return nil
}

func (r *fakeRepo) UpdateSession(ctx context.Context, s *models.CashSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = *s
	return nil
}

func (r *fakeRepo) AppendMovement(ctx context.Context, m *models.CashMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movements = append(r.movements, *m)
	return nil
}

func (r *fakeRepo) ListMovements(ctx context.Context, sessionID uuid.UUID) ([]models.CashMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.CashMovement
	for _, m := range r.movements {
		if m.SessionID == sessionID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeRepo) ComandaExists(ctx context.Context, salonID uint, comandaID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	owner, ok := r.comandas[comandaID]
	return ok && owner == salonID, nil
}

type recordingAudit struct {
	events []audit.Event
}

func (a *recordingAudit) Dispatch(ev audit.Event) {
	a.events = append(a.events, ev)
}

type recordingArchive struct {
	sessions []models.CashSession
}

func (a *recordingArchive) SessionClosed(s models.CashSession, _ []models.CashMovement) {
	a.sessions = append(a.sessions, s)
}

var sess = auth.Session{UserID: 3, SalonID: 1, Role: auth.RoleReception}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fixture struct {
	repo    *fakeRepo
	audit   *recordingAudit
	archive *recordingArchive
	deps    Deps
}

func newFixture() *fixture {
	f := &fixture{
		repo:    newFakeRepo(),
		audit:   &recordingAudit{},
		archive: &recordingArchive{},
	}
	f.deps = Deps{
		Repo:       f.repo,
		Audit:      f.audit,
		Archive:    f.archive,
		Thresholds: domain.Thresholds{Warning: dec("5"), Critical: dec("50")},
		Now:        func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) },
	}
	return f
}
