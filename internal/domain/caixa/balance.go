package caixa

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Colunas de dinheiro são decimal(12,2): valor com mais casas seria
// arredondado pelo banco e o saldo gravado deixaria de bater com o livro.
const MoneyScale = 2

// ValidateScale rejeita valores com mais de duas casas decimais.
func ValidateScale(what string, amount decimal.Decimal) error {
	if !amount.Equal(amount.Round(MoneyScale)) {
		return httperr.ErrBusinessf(httperr.CodeInvalidAmount, "%s %s has more than %d decimal places", what, amount, MoneyScale)
	}
	return nil
}

func ValidateOpeningBalance(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return httperr.ErrBusinessf(httperr.CodeInvalidAmount, "opening balance %s is negative", amount)
	}
	return ValidateScale("opening balance", amount)
}

func ValidateMovementAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return httperr.ErrBusinessf(httperr.CodeInvalidAmount, "movement amount %s must be positive", amount)
	}
	return ValidateScale("movement amount", amount)
}

// Signed devolve o efeito do movimento sobre o saldo.
func Signed(t MovementType, amount decimal.Decimal) decimal.Decimal {
	if t.Inflow() {
		return amount
	}
	return amount.Neg()
}

// Apply é o passo incremental usado a cada movimento registrado.
func Apply(balance decimal.Decimal, t MovementType, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidateMovementAmount(amount); err != nil {
		return balance, err
	}
	return balance.Add(Signed(t, amount)), nil
}

type Summary struct {
	Opening  decimal.Decimal `json:"opening"`
	Inflows  decimal.Decimal `json:"inflows"`
	Outflows decimal.Decimal `json:"outflows"`
	Balance  decimal.Decimal `json:"balance"`
	Count    int             `json:"count"`
}

// Recompute refaz o saldo do zero a partir do livro-caixa.
func Recompute(opening decimal.Decimal, movements []models.CashMovement) Summary {
	s := Summary{
		Opening:  opening,
		Inflows:  decimal.Zero,
		Outflows: decimal.Zero,
		Count:    len(movements),
	}

	for _, m := range movements {
		if MovementType(m.Type).Inflow() {
			s.Inflows = s.Inflows.Add(m.Amount)
		} else {
			s.Outflows = s.Outflows.Add(m.Amount)
		}
	}

	s.Balance = opening.Add(s.Inflows).Sub(s.Outflows)
	return s
}
