package appointment

import "github.com/BruksfildServices01/salon-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusConcluded Status = "concluded"
)

var AllStatuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
	StatusConcluded,
}

// ActiveStatuses são os status que ocupam a agenda.
var ActiveStatuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusConcluded,
}

// Arestas permitidas da máquina de estados. PENDING→CONCLUDED existe para
// atendimento sem hora marcada (walk-in).
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusConcluded},
	StatusConfirmed: {StatusCancelled, StatusConcluded},
}

func InitialStatus() Status {
	return StatusPending
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Known() {
		return "", httperr.ErrBusinessf(httperr.CodeInvalidInput, "unknown status %q", s)
	}
	return st, nil
}

func (s Status) Known() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusConcluded:
		return true
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusConcluded
}

// Active indica se o agendamento ocupa a agenda do profissional.
func (s Status) Active() bool {
	return s != StatusCancelled
}

// CanTransition valida from→to contra a máquina de estados.
func CanTransition(from, to Status) error {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return httperr.ErrBusinessf(httperr.CodeInvalidTransition, "%s -> %s", from, to)
}

// Label e Color cobrem todos os status explicitamente; status desconhecido
// devolve vazio em vez de cair num padrão silencioso.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pendente"
	case StatusConfirmed:
		return "Confirmado"
	case StatusCancelled:
		return "Cancelado"
	case StatusConcluded:
		return "Concluído"
	}
	return ""
}

func (s Status) Color() string {
	switch s {
	case StatusPending:
		return "#F59E0B"
	case StatusConfirmed:
		return "#3B82F6"
	case StatusCancelled:
		return "#EF4444"
	case StatusConcluded:
		return "#10B981"
	}
	return ""
}
