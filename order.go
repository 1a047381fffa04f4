package automaton

import (
	"cmp"
	"slices"
	"strconv"
)

// Symbol is an input or output letter. The empty string is not a valid symbol.
type Symbol string

// State is an opaque state identifier.
type State string

// naturalCompare orders ids numerically when both parse as integers, puts numeric ids before
// the others, and falls back to plain string order.
func naturalCompare(a, b string) int {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		if c := cmp.Compare(na, nb); c != 0 {
			return c
		}
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return cmp.Compare(a, b)
}

// CompareStates is the total order used for representatives, tie-breaking and output.
func CompareStates(a, b State) int {
	return naturalCompare(string(a), string(b))
}

// CompareSymbols orders output symbols the same way states are ordered.
func CompareSymbols(a, b Symbol) int {
	return naturalCompare(string(a), string(b))
}

// SortStates sorts in place and returns its argument.
func SortStates(states []State) []State {
	slices.SortFunc(states, CompareStates)
	return states
}
