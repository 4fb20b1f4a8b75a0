package caixa

import "github.com/BruksfildServices01/salon-scheduler/internal/httperr"

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

type MovementType string

const (
	MovementEntrada MovementType = "entrada"
	MovementSaida   MovementType = "saida"
	MovementSangria MovementType = "sangria"
	MovementReforco MovementType = "reforco"
)

var AllMovementTypes = []MovementType{
	MovementEntrada,
	MovementSaida,
	MovementSangria,
	MovementReforco,
}

func ParseMovementType(s string) (MovementType, error) {
	switch t := MovementType(s); t {
	case MovementEntrada, MovementSaida, MovementSangria, MovementReforco:
		return t, nil
	}
	return "", httperr.ErrBusinessf(httperr.CodeInvalidInput, "unknown movement type %q", s)
}

// Inflow: entrada e reforço somam ao saldo; saída e sangria subtraem.
func (t MovementType) Inflow() bool {
	switch t {
	case MovementEntrada, MovementReforco:
		return true
	case MovementSaida, MovementSangria:
		return false
	}
	return false
}

func (t MovementType) Label() string {
	switch t {
	case MovementEntrada:
		return "Entrada"
	case MovementSaida:
		return "Saída"
	case MovementSangria:
		return "Sangria"
	case MovementReforco:
		return "Reforço"
	}
	return ""
}

type DiscrepancyLevel string

const (
	DiscrepancyOK       DiscrepancyLevel = "ok"
	DiscrepancyWarning  DiscrepancyLevel = "warning"
	DiscrepancyCritical DiscrepancyLevel = "critical"
)
