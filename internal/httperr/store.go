package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATEs usados como guarda definitiva no banco.
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

// StoreError marca falhas inesperadas do armazenamento (rede, timeout, etc).
// A UI trata como falha que pode ser repetida.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return "store: " + e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Store embrulha err como StoreError, exceto erros de domínio que passam intactos.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	var be BusinessError
	if errors.As(err, &be) {
		return err
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

func IsStore(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

// IsExclusionConflict detecta a violação da constraint EXCLUDE de agendamentos.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation
}

// IsUniqueViolation detecta a violação de índice único (ex.: um caixa aberto por salão).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
