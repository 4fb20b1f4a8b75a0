package httperr

import (
	"errors"
	"fmt"
)

// Códigos estáveis de erro de domínio. A UI traduz cada um em mensagem.
const (
	CodeOutOfWorkingHours  = "out_of_working_hours"
	CodeSlotConflict       = "slot_conflict"
	CodeInvalidTransition  = "invalid_transition"
	CodeNotFound           = "not_found"
	CodeInvalidAmount      = "invalid_amount"
	CodeSessionAlreadyOpen = "session_already_open"
	CodeSessionNotOpen     = "session_not_open"
	CodeInvalidInput       = "invalid_input"
)

type BusinessError struct {
	Code string
	// ConflictingID só é preenchido em slot_conflict.
	ConflictingID uint
	Detail        string
}

func (e BusinessError) Error() string {
	if e.Detail != "" {
		return e.Code + ": " + e.Detail
	}
	if e.Code == CodeSlotConflict && e.ConflictingID != 0 {
		return fmt.Sprintf("%s: appointment %d", e.Code, e.ConflictingID)
	}
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrBusinessf(code, format string, args ...any) error {
	return BusinessError{Code: code, Detail: fmt.Sprintf(format, args...)}
}

func ErrSlotConflict(conflictingID uint) error {
	return BusinessError{Code: CodeSlotConflict, ConflictingID: conflictingID}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// Code devolve o código de negócio de err, ou "" quando não é erro de domínio.
func Code(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// ConflictingID devolve o agendamento conflitante carregado por um slot_conflict.
func ConflictingID(err error) (uint, bool) {
	var be BusinessError
	if errors.As(err, &be) && be.Code == CodeSlotConflict {
		return be.ConflictingID, true
	}
	return 0, false
}
