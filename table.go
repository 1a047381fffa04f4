package automaton

import (
	"slices"
	"strings"
)

// Table is an immutable transition table of a Mealy machine, total or partial. States, input symbols
// and outputs are interned to indices once at construction; every algorithm in this package works on
// the indices and only maps back to names when it emits results.
type Table struct {
	states     []State
	stateIndex map[State]int

	alphabet    []Symbol
	symbolIndex map[Symbol]int

	// Every output symbol used by some cell, in natural order.
	outputs     []Symbol
	outputIndex map[Symbol]int

	// Holds dest, out for each (state, symbol) pair, row-major by state. -1 marks a don't-care.
	cells []int

	initial int

	// True if no cell has a don't-care field.
	total bool
}

// NewTable builds a table from nested rows: rows[state][symbol] = transition. The declared state set
// is the set of row keys; a destination outside it is a MalformedTable error.
func NewTable(alphabet []Symbol, rows map[State]map[Symbol]Transition, opts ...TableOption) (*Table, error) {
	b := NewBuilder(alphabet...)

	sources := make([]State, 0, len(rows))
	for s := range rows {
		sources = append(sources, s)
	}
	SortStates(sources)

	for _, s := range sources {
		if err := b.AddState(s); err != nil {
			return nil, err
		}
		row := rows[s]
		symbols := make([]Symbol, 0, len(row))
		for a := range row {
			symbols = append(symbols, a)
		}
		slices.Sort(symbols)
		for _, a := range symbols {
			if err := b.SetTransition(s, a, row[a]); err != nil {
				return nil, err
			}
		}
	}
	return b.Build(opts...)
}

// GetNumStates How many states this table has.
func (t *Table) GetNumStates() int {
	return len(t.states)
}

// GetNumSymbols How many input symbols this table has.
func (t *Table) GetNumSymbols() int {
	return len(t.alphabet)
}

// States returns the states in natural order.
func (t *Table) States() []State {
	return slices.Clone(t.states)
}

// Alphabet returns the input symbols in declaration order.
func (t *Table) Alphabet() []Symbol {
	return slices.Clone(t.alphabet)
}

// Outputs returns every output symbol used by the table, in natural order.
func (t *Table) Outputs() []Symbol {
	return slices.Clone(t.outputs)
}

// Initial returns the initial state.
func (t *Table) Initial() State {
	return t.states[t.initial]
}

// IsTotal Returns true if no cell of this table has a don't-care field.
func (t *Table) IsTotal() bool {
	return t.total
}

// HasState reports whether s is a declared state.
func (t *Table) HasState(s State) bool {
	_, ok := t.stateIndex[s]
	return ok
}

// Transition returns the cell for (s, a); ok is false if either is unknown.
func (t *Table) Transition(s State, a Symbol) (Transition, bool) {
	si, ok := t.stateIndex[s]
	if !ok {
		return Transition{}, false
	}
	ai, ok := t.symbolIndex[a]
	if !ok {
		return Transition{}, false
	}
	return t.transitionAt(si, ai), true
}

func (t *Table) transitionAt(s, a int) Transition {
	tr := Transition{}
	if d := t.dest(s, a); d != -1 {
		tr.dest, tr.hasDest = t.states[d], true
	}
	if o := t.out(s, a); o != -1 {
		tr.out, tr.hasOut = t.outputs[o], true
	}
	return tr
}

func (t *Table) dest(s, a int) int {
	return t.cells[2*(s*len(t.alphabet)+a)]
}

func (t *Table) out(s, a int) int {
	return t.cells[2*(s*len(t.alphabet)+a)+1]
}

// firstDontCare returns the first cell with a don't-care field, scanning states then symbols.
func (t *Table) firstDontCare() (int, int, bool) {
	for s := range t.states {
		for a := range t.alphabet {
			if t.dest(s, a) == -1 || t.out(s, a) == -1 {
				return s, a, true
			}
		}
	}
	return 0, 0, false
}

// requireTotal fails with ErrMalformedTable naming the first don't-care cell.
func (t *Table) requireTotal() error {
	if s, a, found := t.firstDontCare(); found {
		return newTableError(ErrMalformedTable, t.states[s], t.alphabet[a],
			"don't-care cell %s in a machine that must be completely specified", t.transitionAt(s, a))
	}
	return nil
}

// String renders the table one state per line, e.g. "1	4/x	7/y". The initial state is marked with "->".
func (t *Table) String() string {
	var b strings.Builder
	b.WriteString("State")
	for _, a := range t.alphabet {
		b.WriteByte('\t')
		b.WriteString(string(a))
	}
	b.WriteByte('\n')
	for s, name := range t.states {
		if s == t.initial {
			b.WriteString("->")
		}
		b.WriteString(string(name))
		for a := range t.alphabet {
			b.WriteByte('\t')
			b.WriteString(t.transitionAt(s, a).String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Builder collects states and cells and validates them all at once in Build. Unlike the table it
// produces, a Builder is mutable and not safe for concurrent use.
type Builder struct {
	alphabet []Symbol
	states   []State
	rows     map[State]map[Symbol]Transition
}

// NewBuilder returns a builder for a machine over the given alphabet. The alphabet order is kept.
func NewBuilder(alphabet ...Symbol) *Builder {
	return &Builder{
		alphabet: slices.Clone(alphabet),
		rows:     make(map[State]map[Symbol]Transition),
	}
}

// AddState declares a state. Declaring a state twice is a no-op.
func (b *Builder) AddState(s State) error {
	if s == "" {
		return newTableError(ErrMalformedTable, "", "", "empty state id")
	}
	if _, ok := b.rows[s]; ok {
		return nil
	}
	b.states = append(b.states, s)
	b.rows[s] = make(map[Symbol]Transition, len(b.alphabet))
	return nil
}

// SetTransition sets the cell (source, symbol), declaring source if needed. Each cell may be set once.
func (b *Builder) SetTransition(source State, symbol Symbol, t Transition) error {
	if !slices.Contains(b.alphabet, symbol) {
		return newTableError(ErrMalformedTable, source, symbol, "symbol is not in the alphabet")
	}
	if err := b.AddState(source); err != nil {
		return err
	}
	if _, ok := b.rows[source][symbol]; ok {
		return newTableError(ErrMalformedTable, source, symbol, "cell already has a transition")
	}
	b.rows[source][symbol] = t
	return nil
}

// Build validates the collected cells and returns the table.
func (b *Builder) Build(opts ...TableOption) (*Table, error) {
	options := newTableOptions(opts...)

	if len(b.alphabet) == 0 {
		return nil, newTableError(ErrMalformedTable, "", "", "empty alphabet")
	}
	symbolIndex := make(map[Symbol]int, len(b.alphabet))
	for i, a := range b.alphabet {
		if a == "" {
			return nil, newTableError(ErrMalformedTable, "", "", "empty symbol in alphabet")
		}
		if _, ok := symbolIndex[a]; ok {
			return nil, newTableError(ErrMalformedTable, "", a, "duplicate symbol in alphabet")
		}
		symbolIndex[a] = i
	}
	if len(b.states) == 0 {
		return nil, newTableError(ErrMalformedTable, "", "", "no states")
	}

	states := SortStates(slices.Clone(b.states))
	stateIndex := make(map[State]int, len(states))
	for i, s := range states {
		stateIndex[s] = i
	}

	// Collect outputs first so cells can refer to them by index.
	outputSet := make(map[Symbol]struct{})
	for _, s := range states {
		for _, a := range b.alphabet {
			tr, ok := b.rows[s][a]
			if !ok {
				return nil, newTableError(ErrMalformedTable, s, a, "missing cell")
			}
			if d, ok := tr.Dest(); ok {
				if _, declared := stateIndex[d]; !declared {
					return nil, newTableError(ErrMalformedTable, s, a, "destination %q is not a declared state", string(d))
				}
			}
			if o, ok := tr.Output(); ok {
				if o == "" {
					return nil, newTableError(ErrMalformedTable, s, a, "empty output symbol")
				}
				outputSet[o] = struct{}{}
			}
		}
	}
	outputs := make([]Symbol, 0, len(outputSet))
	for o := range outputSet {
		outputs = append(outputs, o)
	}
	slices.SortFunc(outputs, CompareSymbols)
	outputIndex := make(map[Symbol]int, len(outputs))
	for i, o := range outputs {
		outputIndex[o] = i
	}

	t := &Table{
		states:      states,
		stateIndex:  stateIndex,
		alphabet:    slices.Clone(b.alphabet),
		symbolIndex: symbolIndex,
		outputs:     outputs,
		outputIndex: outputIndex,
		cells:       make([]int, 0, 2*len(states)*len(b.alphabet)),
		total:       true,
	}
	for _, s := range states {
		for _, a := range b.alphabet {
			tr := b.rows[s][a]
			dest, out := -1, -1
			if d, ok := tr.Dest(); ok {
				dest = stateIndex[d]
			}
			if o, ok := tr.Output(); ok {
				out = outputIndex[o]
			}
			if dest == -1 || out == -1 {
				t.total = false
			}
			t.cells = append(t.cells, dest, out)
		}
	}

	if options.hasInitial {
		i, ok := stateIndex[options.initial]
		if !ok {
			return nil, newTableError(ErrInvalidInitialState, options.initial, "", "not a declared state")
		}
		t.initial = i
	}
	return t, nil
}

// deriveTable assembles a total table from cells taken out of an already validated table. It is used to
// emit derived machines (minimized, pruned) without a second round of validation.
func deriveTable(states []State, alphabet []Symbol, initial int, cell func(s, a int) (dest State, out Symbol)) *Table {
	b := NewBuilder(alphabet...)
	for _, s := range states {
		_ = b.AddState(s)
	}
	for i, s := range states {
		for a, sym := range alphabet {
			d, o := cell(i, a)
			_ = b.SetTransition(s, sym, Defined(d, o))
		}
	}
	t, err := b.Build(WithInitialState(states[initial]))
	if err != nil {
		// The caller derived every cell from a validated table.
		panic(err)
	}
	return t
}
