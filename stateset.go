package automaton

import (
	"github.com/bits-and-blooms/bitset"
)

var _ Hashable = &StateSet{}

// StateSet is a set of state indices of one table, backed by a bitset sized to the table.
type StateSet struct {
	bits        *bitset.BitSet
	hashUpdated bool
	hashCode    uint64
}

// NewStateSet returns an empty set over a universe of n states.
func NewStateSet(n int) *StateSet {
	return &StateSet{
		bits: bitset.New(uint(n)),
	}
}

func newStateSetOf(n int, states ...int) *StateSet {
	s := NewStateSet(n)
	for _, state := range states {
		s.Add(state)
	}
	return s
}

func (s *StateSet) keyChanged() {
	s.hashUpdated = false
	s.hashCode = 0
}

func (s *StateSet) Add(state int) {
	s.bits.Set(uint(state))
	s.keyChanged()
}

func (s *StateSet) Remove(state int) {
	s.bits.Clear(uint(state))
	s.keyChanged()
}

func (s *StateSet) Contains(state int) bool {
	return s.bits.Test(uint(state))
}

func (s *StateSet) Size() int {
	return int(s.bits.Count())
}

// GetArray returns the members in ascending index order.
func (s *StateSet) GetArray() []int {
	values := make([]int, 0, s.bits.Count())
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		values = append(values, int(i))
	}
	return values
}

func (s *StateSet) Clone() *StateSet {
	return &StateSet{
		bits:        s.bits.Clone(),
		hashUpdated: s.hashUpdated,
		hashCode:    s.hashCode,
	}
}

// InPlaceUnion adds every member of other.
func (s *StateSet) InPlaceUnion(other *StateSet) {
	s.bits.InPlaceUnion(other.bits)
	s.keyChanged()
}

// IsSubsetOf reports whether every member of s is in other.
func (s *StateSet) IsSubsetOf(other *StateSet) bool {
	return other.bits.IsSuperSet(s.bits)
}

// Hash is the set size plus the mixed members, so it does not depend on the bitset length.
func (s *StateSet) Hash() uint64 {
	if s.hashUpdated {
		return s.hashCode
	}
	s.hashCode = uint64(s.bits.Count())
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		s.hashCode += uint64(mix(int(i)))
	}
	s.hashUpdated = true
	return s.hashCode
}

func (s *StateSet) Equals(other Hashable) bool {
	o, ok := other.(*StateSet)
	if !ok || o == nil {
		return false
	}
	return s.bits.Count() == o.bits.Count() && s.bits.IsSuperSet(o.bits)
}
