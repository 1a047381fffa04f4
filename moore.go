package automaton

import (
	"fmt"
	"slices"
	"strings"
)

// MooreState is a Mealy state paired with the output it is entered with. The output is the Moore
// state's own output.
type MooreState struct {
	Mealy  State
	Output Symbol
	Name   string
}

// MooreMachine is the result of ToMoore.
type MooreMachine struct {
	states      []MooreState
	nameIndex   map[string]int
	alphabet    []Symbol
	symbolIndex map[Symbol]int

	// next[s*len(alphabet)+a] is the index of the successor of state s on symbol a.
	next []int

	initial int
}

type mooreKey struct {
	state int
	out   Symbol
}

// ToMoore converts a completely specified Mealy machine, normally a minimized one, into a Moore
// machine with one state per (state, output it is reached with) pair.
func ToMoore(t *Table, opts ...Option) (*MooreMachine, error) {
	if err := t.requireTotal(); err != nil {
		return nil, err
	}
	options := newOptions(opts...)
	logger := options.logger

	keys := make([]cellKey, 0, len(options.corrections))
	for key := range options.corrections {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(x, y cellKey) int {
		if c := CompareStates(x.state, y.state); c != 0 {
			return c
		}
		return strings.Compare(string(x.symbol), string(y.symbol))
	})
	if options.hasDefault && options.defaultOutput == "" {
		return nil, newTableError(ErrMalformedTable, "", "", "empty default output")
	}
	for _, key := range keys {
		if options.corrections[key] == "" {
			return nil, newTableError(ErrMalformedTable, key.state, key.symbol, "correction has an empty output")
		}
		if !t.HasState(key.state) {
			return nil, newTableError(ErrMalformedTable, key.state, key.symbol, "correction names an unknown state")
		}
		if _, ok := t.symbolIndex[key.symbol]; !ok {
			return nil, newTableError(ErrMalformedTable, key.state, key.symbol, "correction names an unknown symbol")
		}
	}
	output := func(s, a int) Symbol {
		if out, ok := options.corrections[cellKey{state: t.states[s], symbol: t.alphabet[a]}]; ok {
			return out
		}
		return t.outputs[t.out(s, a)]
	}

	reach := make([][]Symbol, len(t.states))
	for s := range t.states {
		for a := range t.alphabet {
			d, out := t.dest(s, a), output(s, a)
			if !slices.Contains(reach[d], out) {
				reach[d] = append(reach[d], out)
			}
		}
	}
	for s := range t.states {
		if len(reach[s]) == 0 {
			if !options.hasDefault {
				return nil, newTableError(ErrAmbiguousDefault, t.states[s], "", "state is never entered and no default output is configured")
			}
			reach[s] = []Symbol{options.defaultOutput}
			logger.Debug("default output assigned", "state", t.states[s], "output", options.defaultOutput)
		}
		slices.SortFunc(reach[s], CompareSymbols)
	}

	m := &MooreMachine{
		nameIndex:   make(map[string]int),
		alphabet:    slices.Clone(t.alphabet),
		symbolIndex: t.symbolIndex,
	}
	index := make(map[mooreKey]int)
	for s, name := range t.states {
		for _, out := range reach[s] {
			ms := MooreState{Mealy: name, Output: out, Name: options.naming(name, out)}
			if _, dup := m.nameIndex[ms.Name]; dup {
				return nil, newTableError(ErrMalformedTable, name, "", "Moore state name %q is not unique", ms.Name)
			}
			index[mooreKey{state: s, out: out}] = len(m.states)
			m.nameIndex[ms.Name] = len(m.states)
			m.states = append(m.states, ms)
			logger.Debug("Moore state created", "name", ms.Name, "mealy", name, "output", out)
		}
	}

	m.next = make([]int, 0, len(m.states)*len(t.alphabet))
	for _, ms := range m.states {
		q := t.stateIndex[ms.Mealy]
		for a := range t.alphabet {
			// The output ms was entered with does not affect where it goes.
			m.next = append(m.next, index[mooreKey{state: t.dest(q, a), out: output(q, a)}])
		}
	}

	initial := reach[t.initial][0]
	if options.hasDefault && slices.Contains(reach[t.initial], options.defaultOutput) {
		initial = options.defaultOutput
	}
	m.initial = index[mooreKey{state: t.initial, out: initial}]
	logger.Debug("Moore machine built", "mealy_states", len(t.states), "moore_states", len(m.states),
		"initial", m.states[m.initial].Name)
	return m, nil
}

// States returns the Moore states ordered by Mealy state, then output.
func (m *MooreMachine) States() []MooreState {
	return slices.Clone(m.states)
}

func (m *MooreMachine) Alphabet() []Symbol {
	return slices.Clone(m.alphabet)
}

func (m *MooreMachine) GetNumStates() int {
	return len(m.states)
}

func (m *MooreMachine) Initial() MooreState {
	return m.states[m.initial]
}

// State looks a state up by name.
func (m *MooreMachine) State(name string) (MooreState, bool) {
	i, ok := m.nameIndex[name]
	if !ok {
		return MooreState{}, false
	}
	return m.states[i], true
}

// Output returns the output of the named state.
func (m *MooreMachine) Output(name string) (Symbol, bool) {
	s, ok := m.State(name)
	return s.Output, ok
}

// Next returns the successor of the named state on symbol a.
func (m *MooreMachine) Next(name string, a Symbol) (MooreState, error) {
	i, ok := m.nameIndex[name]
	if !ok {
		return MooreState{}, newTableError(ErrUnknownState, State(name), a, "no such Moore state")
	}
	ai, ok := m.symbolIndex[a]
	if !ok {
		return MooreState{}, newTableError(ErrUnknownSymbol, State(name), a, "")
	}
	return m.states[m.step(i, ai)], nil
}

func (m *MooreMachine) step(state, a int) int {
	return m.next[state*len(m.alphabet)+a]
}

// String renders one line per state: name, output, then the successor on each symbol.
func (m *MooreMachine) String() string {
	var b strings.Builder
	for i, s := range m.states {
		if i == m.initial {
			b.WriteString("->")
		}
		fmt.Fprintf(&b, "%s (%s):", s.Name, s.Output)
		for a, sym := range m.alphabet {
			fmt.Fprintf(&b, " %s -> %s", sym, m.states[m.step(i, a)].Name)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
