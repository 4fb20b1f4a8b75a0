package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func TestListForRange(t *testing.T) {
	f := newFixture()
	f.seed(3, at(15, 0), at(16, 0), domain.StatusPending)
	f.seed(1, at(9, 0), at(9, 30), domain.StatusConfirmed)
	f.seed(2, at(11, 30), at(12, 0), domain.StatusCancelled)
	uc := NewListForRange(f.repo)
	ctx := context.Background()

	apps, err := uc.Execute(ctx, sess, ListForRangeInput{Start: at(9, 15), End: at(15, 0)})
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, uint(1), apps[0].ID)
	assert.Equal(t, uint(2), apps[1].ID)

	apps, err = uc.Execute(ctx, sess, ListForRangeInput{
		Start:    at(0, 0),
		End:      at(23, 59),
		Statuses: []domain.Status{domain.StatusPending, domain.StatusConfirmed},
	})
	require.NoError(t, err)
	assert.Len(t, apps, 2)

	other := uint(77)
	apps, err = uc.Execute(ctx, sess, ListForRangeInput{Start: at(0, 0), End: at(23, 0), ProfessionalID: &other})
	require.NoError(t, err)
	assert.NotNil(t, apps)
	assert.Empty(t, apps)

	_, err = uc.Execute(ctx, sess, ListForRangeInput{Start: at(10, 0), End: at(10, 0)})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidInput))
}

func TestGetAvailability(t *testing.T) {
	f := newFixture()
	f.seed(1, at(9, 30), at(10, 30), domain.StatusPending)
	f.seed(2, at(14, 0), at(18, 0), domain.StatusCancelled)
	uc := NewGetAvailability(f.repo, 30)

	slots, err := uc.Execute(context.Background(), sess, AvailabilityInput{
		ProfessionalID: 10,
		ServiceIDs:     []uint{21},
		Date:           "2026-03-02",
	})
	require.NoError(t, err)

	// manhã: 10:30, 11:00; tarde: 13:00 .. 17:00 (cancelado não bloqueia)
	require.NotEmpty(t, slots)
	assert.True(t, at(10, 30).Equal(slots[0].Start))
	assert.True(t, at(11, 0).Equal(slots[1].Start))
	assert.True(t, at(13, 0).Equal(slots[2].Start))
	assert.True(t, at(17, 0).Equal(slots[len(slots)-1].Start))
	assert.Len(t, slots, 2+9)

	_, err = uc.Execute(context.Background(), sess, AvailabilityInput{ProfessionalID: 10, ServiceIDs: []uint{21}, Date: "02/03/2026"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidInput))
}

func TestSetWorkingHours(t *testing.T) {
	f := newFixture()
	uc := NewSetWorkingHours(f.deps)
	ctx := context.Background()

	rows, err := uc.Execute(ctx, sess, 10, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Empty(t, f.repo.professionals[10].WorkingIntervals)

	_, err = uc.Execute(ctx, sess, 10, []models.WorkingInterval{
		{Weekday: 1, StartTime: "10:00", EndTime: "09:00"},
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidInput))

	_, err = uc.Execute(ctx, sess, 404, nil)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}
