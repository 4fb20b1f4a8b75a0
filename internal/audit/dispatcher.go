package audit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Event struct {
	SalonID  uint
	UserID   *uint
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

// Ações registradas pelos use cases
const (
	ActionAppointmentCreated     = "appointment_created"
	ActionAppointmentRescheduled = "appointment_rescheduled"
	ActionAppointmentTransition  = "appointment_status_changed"
	ActionWorkingHoursUpdated    = "working_hours_updated"
	ActionCashOpened             = "cash_session_opened"
	ActionCashMovement           = "cash_movement_recorded"
	ActionCashClosed             = "cash_session_closed"
	ActionComandaCreated         = "comanda_created"
	ActionComandaPaid            = "comanda_paid"
)

const queueSize = 100

type Dispatcher struct {
	sink  Sink
	log   *zap.Logger
	queue chan Event

	// mu protege closed e o envio na fila: Dispatch nunca envia
	// num canal fechado, mesmo com handlers ainda rodando no shutdown.
	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(sink Sink, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		log:   log.Named("audit"),
		queue: make(chan Event, queueSize),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.sink.Log(ctx, ev); err != nil {
			d.log.Error("audit write failed",
				zap.String("action", ev.Action),
				zap.Uint("salon_id", ev.SalonID),
				zap.Error(err),
			)
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("audit dispatcher closed, dropping event",
			zap.String("action", ev.Action),
			zap.String("entity_id", ev.EntityID),
		)
		return
	}

	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos audit (nunca quebrar API)
		d.log.Warn("audit queue full, dropping event",
			zap.String("action", ev.Action),
			zap.String("entity_id", ev.EntityID),
		)
	}
}

// Close para de aceitar eventos e espera a fila esvaziar ou ctx expirar.
// Dispatch depois de Close descarta o evento.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
