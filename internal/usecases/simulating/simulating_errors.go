package simulating

import (
	"errors"
	"fmt"
)

var (
	// ErrValueInvalid indica um parâmetro fora do domínio aceito
	ErrValueInvalid = errors.New("value invalid")
	// ErrDivisionUndefined indica um custo de aquisição igual a zero
	ErrDivisionUndefined = errors.New("division undefined")
	// ErrRangeInvalid indica um período com fim anterior ao início ou longo demais
	ErrRangeInvalid = errors.New("range invalid")
)

// SimulationError é um erro com o parâmetro que causou a rejeição
type SimulationError struct {
	Err     error  // Erro base
	Field   string // Parâmetro rejeitado (quando aplicável)
	Details string
}

func (e *SimulationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Err.Error(), e.Field, e.Details)
	}
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *SimulationError) Unwrap() error {
	return e.Err
}

func newValueInvalid(field, format string, args ...any) *SimulationError {
	return &SimulationError{
		Err:     ErrValueInvalid,
		Field:   field,
		Details: fmt.Sprintf(format, args...),
	}
}

func newRangeInvalid(format string, args ...any) *SimulationError {
	return &SimulationError{
		Err:     ErrRangeInvalid,
		Details: fmt.Sprintf(format, args...),
	}
}
