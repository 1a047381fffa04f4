package automaton

// Step is one move of a simulated Mealy machine.
type Step struct {
	From   State
	Symbol Symbol
	To     State
	Output Symbol
}

// Run feeds input to the machine from its initial state and returns the output word and the state it
// stops in.
func (t *Table) Run(input []Symbol) ([]Symbol, State, error) {
	steps, err := t.Trace(input)
	if err != nil {
		return nil, "", err
	}
	outputs := make([]Symbol, len(steps))
	for i, st := range steps {
		outputs[i] = st.Output
	}
	final := t.Initial()
	if len(steps) > 0 {
		final = steps[len(steps)-1].To
	}
	return outputs, final, nil
}

// Trace is Run with every step recorded. On a partial machine it fails with ErrUndefinedTransition at
// the first don't-care destination; a don't-care output is reported as an empty symbol.
func (t *Table) Trace(input []Symbol) ([]Step, error) {
	steps := make([]Step, 0, len(input))
	state := t.initial
	for _, sym := range input {
		a, ok := t.symbolIndex[sym]
		if !ok {
			return nil, newTableError(ErrUnknownSymbol, t.states[state], sym, "")
		}
		nextState := t.dest(state, a)
		if nextState == -1 {
			return nil, newTableError(ErrUndefinedTransition, t.states[state], sym, "")
		}
		st := Step{From: t.states[state], Symbol: sym, To: t.states[nextState]}
		if o := t.out(state, a); o != -1 {
			st.Output = t.outputs[o]
		}
		steps = append(steps, st)
		state = nextState
	}
	return steps, nil
}

// Run feeds input to the Moore machine and returns the outputs of every state visited, starting with
// the initial state, so the result is one symbol longer than input.
func (m *MooreMachine) Run(input []Symbol) ([]Symbol, error) {
	state := m.initial
	outputs := make([]Symbol, 0, len(input)+1)
	outputs = append(outputs, m.states[state].Output)
	for _, sym := range input {
		a, ok := m.symbolIndex[sym]
		if !ok {
			return nil, newTableError(ErrUnknownSymbol, State(m.states[state].Name), sym, "")
		}
		state = m.step(state, a)
		outputs = append(outputs, m.states[state].Output)
	}
	return outputs, nil
}
