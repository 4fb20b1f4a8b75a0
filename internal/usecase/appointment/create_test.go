package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func TestCreateAppointment_ConflictReferencesFirst(t *testing.T) {
	f := newFixture()
	uc := NewCreateAppointment(f.deps)
	ctx := context.Background()

	first, err := uc.Execute(ctx, sess, CreateAppointmentInput{
		ClientID:       5,
		ProfessionalID: 10,
		Start:          at(10, 0),
		ServiceIDs:     []uint{21},
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), first.Status)
	assert.True(t, at(11, 0).Equal(first.EndTime))
	require.Len(t, first.Services, 1)
	assert.Equal(t, "Escova", first.Services[0].Name)

	_, err = uc.Execute(ctx, sess, CreateAppointmentInput{
		ClientID:       5,
		ProfessionalID: 10,
		Start:          at(10, 30),
		ServiceIDs:     []uint{21},
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotConflict))
	id, ok := httperr.ConflictingID(err)
	require.True(t, ok)
	assert.Equal(t, first.ID, id)

	assert.Len(t, f.audit.events, 1)
	assert.Equal(t, 1, f.cache.calls)
}

func TestCreateAppointment_OutOfWorkingHours(t *testing.T) {
	f := newFixture()
	uc := NewCreateAppointment(f.deps)

	tests := []struct {
		name  string
		start time.Time
		ids   []uint
	}{
		{name: "before opening", start: at(8, 0), ids: []uint{21}},
		{name: "crosses lunch", start: at(11, 30), ids: []uint{21}},
		{name: "after closing", start: at(17, 45), ids: []uint{20}},
		{name: "sunday", start: at(10, 0).AddDate(0, 0, -1), ids: []uint{20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), sess, CreateAppointmentInput{
				ClientID:       5,
				ProfessionalID: 10,
				Start:          tt.start,
				ServiceIDs:     tt.ids,
			})
			assert.True(t, httperr.IsBusiness(err, httperr.CodeOutOfWorkingHours), "got %v", err)
		})
	}

	assert.Empty(t, f.repo.appointments)
	assert.Zero(t, f.cache.calls)
}

func TestCreateAppointment_Validation(t *testing.T) {
	f := newFixture()
	uc := NewCreateAppointment(f.deps)
	ctx := context.Background()

	_, err := uc.Execute(ctx, sess, CreateAppointmentInput{ClientID: 5, ProfessionalID: 10, Start: at(10, 0)})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidInput))

	_, err = uc.Execute(ctx, sess, CreateAppointmentInput{ClientID: 99, ProfessionalID: 10, Start: at(10, 0), ServiceIDs: []uint{20}})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))

	_, err = uc.Execute(ctx, sess, CreateAppointmentInput{ClientID: 5, ProfessionalID: 10, Start: at(10, 0), ServiceIDs: []uint{20, 77}})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))

	// outro salão não enxerga o profissional
	other := sess
	other.SalonID = 2
	_, err = uc.Execute(ctx, other, CreateAppointmentInput{ClientID: 5, ProfessionalID: 10, Start: at(10, 0), ServiceIDs: []uint{20}})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}

func TestCreateAppointment_MultipleServicesSumDuration(t *testing.T) {
	f := newFixture()
	uc := NewCreateAppointment(f.deps)

	ap, err := uc.Execute(context.Background(), sess, CreateAppointmentInput{
		ClientID:       5,
		ProfessionalID: 10,
		Start:          at(9, 0),
		ServiceIDs:     []uint{20, 21},
	})
	require.NoError(t, err)
	assert.True(t, at(10, 30).Equal(ap.EndTime))
	assert.Len(t, ap.Services, 2)
}

func TestCreateAppointment_CancelledDoesNotBlock(t *testing.T) {
	f := newFixture()
	f.seed(1, at(10, 0), at(11, 0), domain.StatusCancelled)
	uc := NewCreateAppointment(f.deps)

	_, err := uc.Execute(context.Background(), sess, CreateAppointmentInput{
		ClientID:       5,
		ProfessionalID: 10,
		Start:          at(10, 0),
		ServiceIDs:     []uint{21},
	})
	assert.NoError(t, err)
}

func TestCreateAppointment_ExclusionViolationIsSlotConflict(t *testing.T) {
	f := newFixture()
	f.repo.createErr = &pgconn.PgError{Code: "23P01"}
	uc := NewCreateAppointment(f.deps)

	_, err := uc.Execute(context.Background(), sess, CreateAppointmentInput{
		ClientID:       5,
		ProfessionalID: 10,
		Start:          at(10, 0),
		ServiceIDs:     []uint{21},
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotConflict))
	assert.Zero(t, f.cache.calls)
}

// Qualquer sequência de criações mantém a agenda sem sobreposição e dentro
// do expediente.
func TestCreateAppointment_Invariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		f := newFixture()
		uc := NewCreateAppointment(f.deps)

		n := rapid.IntRange(1, 30).Draw(t, "n")
		for i := 0; i < n; i++ {
			slot := rapid.IntRange(0, 11*4).Draw(t, "slot")
			start := at(7, 0).Add(time.Duration(slot) * 15 * time.Minute)
			svc := rapid.SampledFrom([]uint{20, 21}).Draw(t, "service")

			_, _ = uc.Execute(context.Background(), sess, CreateAppointmentInput{
				ClientID:       5,
				ProfessionalID: 10,
				Start:          start,
				ServiceIDs:     []uint{svc},
			})
		}

		wh, err := domain.FromModels(f.repo.professionals[10].WorkingIntervals)
		if err != nil {
			t.Fatal(err)
		}

		var all []models.Appointment
		for _, ap := range f.repo.appointments {
			all = append(all, ap)
		}
		for i, a := range all {
			if !wh.Contains(a.StartTime, a.EndTime, saoPaulo) {
				t.Fatalf("appointment %d outside working hours", a.ID)
			}
			for _, b := range all[i+1:] {
				if domain.Overlaps(a.StartTime, a.EndTime, b.StartTime, b.EndTime) {
					t.Fatalf("appointments %d and %d overlap", a.ID, b.ID)
				}
			}
		}
	})
}
