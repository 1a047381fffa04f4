package automaton

import (
	"bytes"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// referenceCompatibility computes the relation as a greatest fixpoint: start from every pair without an
// output conflict and drop pairs with a dropped successor pair until nothing changes.
func referenceCompatibility(t *Table) [][]bool {
	n := len(t.states)
	rel := make([][]bool, n)
	for p := range rel {
		rel[p] = make([]bool, n)
		for q := range rel[p] {
			rel[p][q] = true
			for a := range t.alphabet {
				op, oq := t.out(p, a), t.out(q, a)
				if op != -1 && oq != -1 && op != oq {
					rel[p][q] = false
				}
			}
		}
	}
	for changed := true; changed; {
		changed = false
		for p := 0; p < n; p++ {
			for q := 0; q < n; q++ {
				if !rel[p][q] {
					continue
				}
				for a := range t.alphabet {
					dp, dq := t.dest(p, a), t.dest(q, a)
					if dp != -1 && dq != -1 && !rel[dp][dq] {
						rel[p][q] = false
						changed = true
						break
					}
				}
			}
		}
	}
	return rel
}

func TestComputeCompatibility(t *testing.T) {
	c, err := ComputeCompatibility(loadTable(t, "covering"))
	require.NoError(t, err)

	assert.Equal(t, []State{"1", "2", "3", "4"}, c.States())
	assert.Equal(t, []Pair{
		{P: "1", Q: "2", Compatible: true},
		{P: "1", Q: "3", Compatible: false},
		{P: "1", Q: "4", Compatible: false},
		{P: "2", Q: "3", Compatible: true},
		{P: "2", Q: "4", Compatible: false},
		{P: "3", Q: "4", Compatible: true},
	}, c.Pairs())
	assert.Equal(t, []State{"1", "3"}, c.Neighbors("2"))
	assert.Nil(t, c.Neighbors("9"))

	assert.True(t, c.Compatible("2", "2"))
	assert.True(t, c.Compatible("3", "2"))
	assert.False(t, c.Compatible("1", "9"))
	assert.Equal(t, [][]bool{
		{true, true, false, false},
		{true, true, true, false},
		{false, true, true, true},
		{false, false, true, true},
	}, c.Matrix())
}

func TestCompatibilityCycle(t *testing.T) {
	c, err := ComputeCompatibility(loadTable(t, "cycle"))
	require.NoError(t, err)
	assert.True(t, c.Compatible("3", "5"))
}

func TestCompatibilityRetractsAssumption(t *testing.T) {
	// (1,2) is queried first. While it is open, (3,4) holds only by assuming (1,2), which then fails
	// on (5,6). The answer for (3,4) must not survive that failure.
	c, err := ComputeCompatibility(loadTable(t, "retract"))
	require.NoError(t, err)

	assert.False(t, c.Compatible("5", "6"))
	assert.False(t, c.Compatible("1", "2"))
	assert.False(t, c.Compatible("3", "4"))
	assert.True(t, c.Compatible("1", "3"))
	assert.True(t, c.Compatible("2", "4"))
	assert.Empty(t, c.Neighbors("6"))
}

func TestCompatibilityTotalMachine(t *testing.T) {
	// On a total machine compatibility is plain equivalence.
	table := loadTable(t, "lab1")
	c, err := ComputeCompatibility(table)
	require.NoError(t, err)
	m, err := Minimize(table)
	require.NoError(t, err)

	for _, p := range c.Pairs() {
		same := m.Representatives[p.P] == m.Representatives[p.Q]
		assert.Equalf(t, same, p.Compatible, "pair (%s, %s)", p.P, p.Q)
	}
}

func TestCompatibilityMatchesFixpoint(t *testing.T) {
	alphabet := []Symbol{"a", "b"}
	for seed := int64(1); seed <= 60; seed++ {
		rng := rand.New(rand.NewSource(seed))
		table, err := RandomTable(rng, 2+rng.Intn(7), alphabet, []Symbol{"x", "y"}, 0.45)
		require.NoError(t, err)

		c, err := ComputeCompatibility(table)
		require.NoError(t, err)
		want := referenceCompatibility(table)
		got := c.Matrix()
		assert.Equalf(t, want, got, "seed %d\n%s", seed, table)

		for p := range got {
			for q := range got {
				assert.Equal(t, got[p][q], got[q][p])
			}
		}
	}
}

func TestCompatibilityLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := ComputeCompatibility(loadTable(t, "retract"), WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "outputs differ")
	assert.Contains(t, buf.String(), "successor pair incompatible")
	assert.Contains(t, buf.String(), "pair already under verification")
}
