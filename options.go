package automaton

import (
	"fmt"
	"log/slog"
)

// DefaultMooreName joins a Mealy state and the output it is reached with, e.g. "1,x".
func DefaultMooreName(s State, out Symbol) string {
	return fmt.Sprintf("%s,%s", s, out)
}

type cellKey struct {
	state  State
	symbol Symbol
}

type options struct {
	logger           *slog.Logger
	defaultOutput    Symbol
	hasDefault       bool
	corrections      map[cellKey]Symbol
	naming           func(State, Symbol) string
	pruneUnreachable bool
}

// Option configures Minimize, ToMoore, ComputeCompatibility, MaximalBlocks and Cover. Options that
// do not apply to an operation are ignored by it.
type Option func(*options)

func newOptions(opts ...Option) *options {
	o := &options{
		logger: slog.New(slog.DiscardHandler),
		naming: DefaultMooreName,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sends debug records of every algorithm step to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithDefaultOutput sets the output assigned to states that no transition reaches, and the preferred
// output of the initial Moore state.
func WithDefaultOutput(out Symbol) Option {
	return func(o *options) {
		o.defaultOutput = out
		o.hasDefault = true
	}
}

// WithCorrection overrides the output of the Mealy cell (state, symbol) during Moore conversion.
func WithCorrection(state State, symbol Symbol, out Symbol) Option {
	return func(o *options) {
		if o.corrections == nil {
			o.corrections = make(map[cellKey]Symbol)
		}
		o.corrections[cellKey{state: state, symbol: symbol}] = out
	}
}

// WithMooreNaming replaces DefaultMooreName.
func WithMooreNaming(naming func(State, Symbol) string) Option {
	return func(o *options) {
		if naming != nil {
			o.naming = naming
		}
	}
}

// WithPruneUnreachable makes Minimize drop states unreachable from the initial state first.
func WithPruneUnreachable() Option {
	return func(o *options) {
		o.pruneUnreachable = true
	}
}

type tableOptions struct {
	initial    State
	hasInitial bool
}

// TableOption configures table construction.
type TableOption func(*tableOptions)

func newTableOptions(opts ...TableOption) *tableOptions {
	o := &tableOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithInitialState sets the initial state. Without it the smallest state in natural order is initial.
func WithInitialState(s State) TableOption {
	return func(o *tableOptions) {
		o.initial = s
		o.hasInitial = true
	}
}
