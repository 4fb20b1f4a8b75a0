package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

func TestTransition_ConcludedToConfirmedFails(t *testing.T) {
	f := newFixture()
	f.seed(1, at(9, 0), at(9, 30), domain.StatusConcluded)
	uc := NewTransitionAppointment(f.deps)

	_, err := uc.Execute(context.Background(), sess, TransitionInput{ID: 1, Target: "confirmed"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))
	assert.Equal(t, string(domain.StatusConcluded), f.repo.appointments[1].Status)
	assert.Zero(t, f.cache.calls)
}

func TestTransition_Lifecycle(t *testing.T) {
	f := newFixture()
	f.seed(1, at(9, 0), at(9, 30), domain.StatusPending)
	uc := NewTransitionAppointment(f.deps)
	ctx := context.Background()

	ap, err := uc.Execute(ctx, sess, TransitionInput{ID: 1, Target: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", ap.Status)

	ap, err = uc.Execute(ctx, sess, TransitionInput{ID: 1, Target: "concluded"})
	require.NoError(t, err)
	require.NotNil(t, ap.ConcludedAt)
	assert.True(t, at(20, 0).Equal(*ap.ConcludedAt))

	_, err = uc.Execute(ctx, sess, TransitionInput{ID: 1, Target: "cancelled"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))

	assert.Equal(t, 2, f.cache.calls)
	assert.Len(t, f.audit.events, 2)
}

func TestTransition_Cancel(t *testing.T) {
	f := newFixture()
	f.seed(1, at(9, 0), at(9, 30), domain.StatusPending)
	uc := NewTransitionAppointment(f.deps)

	ap, err := uc.Execute(context.Background(), sess, TransitionInput{ID: 1, Target: "cancelled"})
	require.NoError(t, err)
	assert.NotNil(t, ap.CancelledAt)
}

func TestTransition_BadInput(t *testing.T) {
	f := newFixture()
	f.seed(1, at(9, 0), at(9, 30), domain.StatusPending)
	uc := NewTransitionAppointment(f.deps)
	ctx := context.Background()

	_, err := uc.Execute(ctx, sess, TransitionInput{ID: 1, Target: "done"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidInput))

	_, err = uc.Execute(ctx, sess, TransitionInput{ID: 1, Target: "pending"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))

	_, err = uc.Execute(ctx, sess, TransitionInput{ID: 9, Target: "confirmed"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}
