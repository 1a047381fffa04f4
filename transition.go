package automaton

// Transition is one cell of a transition table. Destination and output are optional independently;
// an absent field is a don't-care.
type Transition struct {
	dest    State
	out     Symbol
	hasDest bool
	hasOut  bool
}

// Defined returns a fully specified transition.
func Defined(dest State, out Symbol) Transition {
	return Transition{dest: dest, out: out, hasDest: true, hasOut: true}
}

// DestOnly returns a transition whose output is a don't-care.
func DestOnly(dest State) Transition {
	return Transition{dest: dest, hasDest: true}
}

// OutputOnly returns a transition whose destination is a don't-care.
func OutputOnly(out Symbol) Transition {
	return Transition{out: out, hasOut: true}
}

// DontCare returns a transition with neither destination nor output.
func DontCare() Transition {
	return Transition{}
}

// Dest returns the destination and whether it is specified.
func (t Transition) Dest() (State, bool) {
	return t.dest, t.hasDest
}

// Output returns the output and whether it is specified.
func (t Transition) Output() (Symbol, bool) {
	return t.out, t.hasOut
}

// IsDefined reports whether both fields are specified.
func (t Transition) IsDefined() bool {
	return t.hasDest && t.hasOut
}

// String renders the cell as "dest/out" with "-" for a don't-care field.
func (t Transition) String() string {
	dest, out := "-", "-"
	if t.hasDest {
		dest = string(t.dest)
	}
	if t.hasOut {
		out = string(t.out)
	}
	return dest + "/" + out
}
