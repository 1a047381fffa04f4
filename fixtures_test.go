package automaton

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// tableFixture is a machine stored under testdata. Each row lists one cell per alphabet symbol as
// "dest,output"; either field may be "-", and a lone "-" is a full don't-care.
type tableFixture struct {
	Description string              `yaml:"description"`
	Alphabet    []string            `yaml:"alphabet"`
	Initial     string              `yaml:"initial"`
	Rows        map[string][]string `yaml:"rows"`
}

func loadTable(t *testing.T, name string) *Table {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("testdata", name+".yaml"))
	require.NoError(t, err)

	var fx tableFixture
	require.NoError(t, yaml.Unmarshal(raw, &fx))

	alphabet := make([]Symbol, len(fx.Alphabet))
	for i, a := range fx.Alphabet {
		alphabet[i] = Symbol(a)
	}
	rows := make(map[State]map[Symbol]Transition, len(fx.Rows))
	for s, cells := range fx.Rows {
		require.Len(t, cells, len(alphabet), "row %s", s)
		row := make(map[Symbol]Transition, len(cells))
		for i, cell := range cells {
			row[alphabet[i]] = parseCell(t, cell)
		}
		rows[State(s)] = row
	}

	var opts []TableOption
	if fx.Initial != "" {
		opts = append(opts, WithInitialState(State(fx.Initial)))
	}
	table, err := NewTable(alphabet, rows, opts...)
	require.NoError(t, err, fx.Description)
	return table
}

func parseCell(t *testing.T, cell string) Transition {
	t.Helper()
	if cell == "-" {
		return DontCare()
	}
	dest, out, ok := strings.Cut(cell, ",")
	require.True(t, ok, "cell %q", cell)
	switch {
	case dest != "-" && out != "-":
		return Defined(State(dest), Symbol(out))
	case dest != "-":
		return DestOnly(State(dest))
	case out != "-":
		return OutputOnly(Symbol(out))
	}
	return DontCare()
}

// wordOf splits s into one-letter symbols; the empty string is the empty word.
func wordOf(s string) []Symbol {
	parts := strings.Split(s, "")
	word := make([]Symbol, len(parts))
	for i, p := range parts {
		word[i] = Symbol(p)
	}
	return word
}

func blockList(groups ...string) []Block {
	out := make([]Block, len(groups))
	for i, g := range groups {
		for _, s := range strings.Split(g, ",") {
			out[i] = append(out[i], State(s))
		}
	}
	return out
}
