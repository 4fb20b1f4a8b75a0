package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func TestCanTransition(t *testing.T) {
	allowed := map[[2]Status]bool{
		{StatusPending, StatusConfirmed}:   true,
		{StatusPending, StatusCancelled}:   true,
		{StatusPending, StatusConcluded}:   true,
		{StatusConfirmed, StatusCancelled}: true,
		{StatusConfirmed, StatusConcluded}: true,
	}

	for _, from := range AllStatuses {
		for _, to := range AllStatuses {
			err := CanTransition(from, to)
			if allowed[[2]Status{from, to}] {
				assert.NoError(t, err, "%s -> %s", from, to)
			} else {
				assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition), "%s -> %s", from, to)
			}
		}
	}
}

func TestLabelsAndColorsCoverEveryStatus(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range AllStatuses {
		assert.NotEmpty(t, s.Label(), s)
		assert.NotEmpty(t, s.Color(), s)
		assert.False(t, seen[s.Label()], "duplicate label %s", s.Label())
		seen[s.Label()] = true
	}

	assert.Empty(t, Status("no_show").Label())
	assert.Empty(t, Status("no_show").Color())
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, s)

	_, err = ParseStatus("CONFIRMED")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidInput))
}

func TestTransitionStampsTimes(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusPending)}
	require.NoError(t, Transition(ap, StatusConcluded, now))
	assert.Equal(t, string(StatusConcluded), ap.Status)
	require.NotNil(t, ap.ConcludedAt)
	assert.Nil(t, ap.CancelledAt)

	err := Transition(ap, StatusConfirmed, now)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))
	assert.Equal(t, string(StatusConcluded), ap.Status)
}

// Nenhuma sequência de transições sai do conjunto de status conhecidos, e
// nada é aceito depois de um estado terminal.
func TestStateMachineClosure(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ap := &models.Appointment{Status: string(InitialStatus())}
		now := time.Now()

		steps := rapid.SliceOfN(rapid.SampledFrom(AllStatuses), 0, 12).Draw(t, "steps")
		terminalReached := false

		for _, target := range steps {
			before := Status(ap.Status)
			err := Transition(ap, target, now)

			if terminalReached && err == nil {
				t.Fatalf("transition %s -> %s accepted after terminal state", before, target)
			}
			if err != nil && Status(ap.Status) != before {
				t.Fatalf("rejected transition mutated status")
			}
			if !Status(ap.Status).Known() {
				t.Fatalf("reached unknown status %q", ap.Status)
			}
			if Status(ap.Status).IsTerminal() {
				terminalReached = true
			}
		}
	})
}
