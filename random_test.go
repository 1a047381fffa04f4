package automaton

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomTable(t *testing.T) {
	alphabet := []Symbol{"a", "b"}
	outputs := []Symbol{"x", "y"}

	t.Run("Deterministic", func(t *testing.T) {
		first, err := RandomTable(rand.New(rand.NewSource(42)), 6, alphabet, outputs, 0.3)
		require.NoError(t, err)
		second, err := RandomTable(rand.New(rand.NewSource(42)), 6, alphabet, outputs, 0.3)
		require.NoError(t, err)
		assert.Equal(t, first.String(), second.String())
	})

	t.Run("Total", func(t *testing.T) {
		table, err := RandomTable(rand.New(rand.NewSource(7)), 10, alphabet, outputs, 0)
		require.NoError(t, err)
		assert.True(t, table.IsTotal())
		assert.Equal(t, 10, table.GetNumStates())
		assert.Equal(t, State("1"), table.Initial())
		assert.Equal(t, State("10"), table.States()[9])
	})

	t.Run("AllDontCare", func(t *testing.T) {
		table, err := RandomTable(rand.New(rand.NewSource(7)), 3, alphabet, outputs, 1)
		require.NoError(t, err)
		assert.False(t, table.IsTotal())
		assert.Empty(t, table.Outputs())
	})

	t.Run("Invalid", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		_, err := RandomTable(rng, 0, alphabet, outputs, 0)
		assert.ErrorIs(t, err, ErrMalformedTable)
		_, err = RandomTable(rng, 3, alphabet, nil, 0)
		assert.ErrorIs(t, err, ErrMalformedTable)
		_, err = RandomTable(rng, 3, nil, outputs, 0)
		assert.ErrorIs(t, err, ErrMalformedTable)
	})
}
