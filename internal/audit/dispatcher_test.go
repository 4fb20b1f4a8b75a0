package audit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memorySink struct {
	mu     sync.Mutex
	events []Event
	block  chan struct{}
}

func (s *memorySink) Log(ctx context.Context, ev Event) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func (s *memorySink) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func TestDispatcherDeliversAndDrains(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink, zap.NewNop())

	for i := 0; i < 10; i++ {
		d.Dispatch(Event{SalonID: 1, Action: ActionAppointmentCreated})
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))

	assert.Equal(t, 10, sink.len())
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	sink := &memorySink{block: make(chan struct{})}
	d := NewDispatcher(sink, zap.NewNop())

	// worker preso no primeiro evento; fila enche com queueSize e o resto cai
	for i := 0; i < queueSize+10; i++ {
		d.Dispatch(Event{SalonID: 1, Action: ActionCashMovement})
	}
	close(sink.block)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))

	assert.LessOrEqual(t, sink.len(), queueSize+1)
	assert.GreaterOrEqual(t, sink.len(), queueSize)
}

func TestDispatchAfterCloseIsDropped(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))

	assert.NotPanics(t, func() {
		d.Dispatch(Event{SalonID: 1, Action: ActionCashClosed})
	})
	require.NoError(t, d.Close(ctx))
	assert.Zero(t, sink.len())
}

// Handlers ainda ativos durante o shutdown disputam com Close.
func TestDispatchConcurrentWithClose(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				d.Dispatch(Event{SalonID: 1, Action: ActionAppointmentCreated})
			}
		}()
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))
	wg.Wait()

	assert.LessOrEqual(t, sink.len(), 8*50)
}

func TestEventRow(t *testing.T) {
	uid := uint(7)
	row, err := Event{
		SalonID:  3,
		UserID:   &uid,
		Action:   ActionCashClosed,
		Entity:   "cash_session",
		EntityID: "abc",
		Metadata: map[string]string{"difference": "-5.00"},
	}.Row()
	require.NoError(t, err)

	assert.Equal(t, uint(3), row.SalonID)
	assert.Equal(t, "abc", row.EntityID)
	assert.JSONEq(t, `{"difference":"-5.00"}`, row.Metadata)

	_, err = Event{Metadata: make(chan int)}.Row()
	assert.Error(t, err)
}
