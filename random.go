package automaton

import (
	"math/rand"
	"strconv"
)

// RandomTable builds a machine with states "1".."numStates" over alphabet. Every destination and every
// output is drawn from rng and independently left as a don't-care with probability dontCare, so a
// dontCare of 0 yields a total machine. State 1 is initial. The same seed always yields the same table.
func RandomTable(rng *rand.Rand, numStates int, alphabet, outputs []Symbol, dontCare float64) (*Table, error) {
	if numStates < 1 {
		return nil, newTableError(ErrMalformedTable, "", "", "random machine needs at least one state, got %d", numStates)
	}
	if len(outputs) == 0 {
		return nil, newTableError(ErrMalformedTable, "", "", "random machine needs at least one output symbol")
	}

	states := make([]State, numStates)
	for i := range states {
		states[i] = State(strconv.Itoa(i + 1))
	}

	b := NewBuilder(alphabet...)
	for _, s := range states {
		if err := b.AddState(s); err != nil {
			return nil, err
		}
	}
	for _, s := range states {
		for _, a := range alphabet {
			dest := states[rng.Intn(numStates)]
			out := outputs[rng.Intn(len(outputs))]
			keepDest := rng.Float64() >= dontCare
			keepOut := rng.Float64() >= dontCare

			var tr Transition
			switch {
			case keepDest && keepOut:
				tr = Defined(dest, out)
			case keepDest:
				tr = DestOnly(dest)
			case keepOut:
				tr = OutputOnly(out)
			default:
				tr = DontCare()
			}
			if err := b.SetTransition(s, a, tr); err != nil {
				return nil, err
			}
		}
	}
	return b.Build(WithInitialState(states[0]))
}
