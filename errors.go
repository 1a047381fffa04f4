package automaton

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedTable is returned when a table has a missing cell, a symbol outside the alphabet,
	// a destination outside the state set, or a don't-care cell where a total machine is required.
	ErrMalformedTable = errors.New("automaton: malformed transition table")

	// ErrInvalidInitialState is returned when the configured initial state is not a declared state.
	ErrInvalidInitialState = errors.New("automaton: invalid initial state")

	// ErrAmbiguousDefault is returned by ToMoore when a state is never reached by any transition
	// and no default output is configured.
	ErrAmbiguousDefault = errors.New("automaton: ambiguous default output")

	// ErrUnknownState is returned when a lookup names a state the machine does not have.
	ErrUnknownState = errors.New("automaton: unknown state")

	// ErrUnknownSymbol is returned when a simulated input symbol is not in the alphabet.
	ErrUnknownSymbol = errors.New("automaton: unknown input symbol")

	// ErrUndefinedTransition is returned when a simulation reaches a don't-care destination.
	ErrUndefinedTransition = errors.New("automaton: undefined transition")

	// ErrInvalidCovering is returned by ValidateCovering.
	ErrInvalidCovering = errors.New("automaton: invalid covering")

	// ErrAlphabetMismatch is returned when two machines are compared over different alphabets.
	ErrAlphabetMismatch = errors.New("automaton: alphabet mismatch")
)

// TableError carries the state and symbol an error is about. Unwrap returns one of the sentinels above.
type TableError struct {
	Err    error
	State  State
	Symbol Symbol
	Detail string
}

func newTableError(err error, state State, symbol Symbol, format string, args ...any) *TableError {
	return &TableError{
		Err:    err,
		State:  state,
		Symbol: symbol,
		Detail: fmt.Sprintf(format, args...),
	}
}

func (e *TableError) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	if e.State != "" {
		fmt.Fprintf(&b, ": state %q", string(e.State))
	}
	if e.Symbol != "" {
		fmt.Fprintf(&b, ": symbol %q", string(e.Symbol))
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *TableError) Unwrap() error {
	return e.Err
}
