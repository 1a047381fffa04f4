package automaton_test

import (
	"fmt"

	"github.com/Maxim2710/automaton"
)

func ExampleMinimize() {
	b := automaton.NewBuilder("a", "b")
	_ = b.SetTransition("1", "a", automaton.Defined("2", "x"))
	_ = b.SetTransition("1", "b", automaton.Defined("3", "y"))
	_ = b.SetTransition("2", "a", automaton.Defined("1", "x"))
	_ = b.SetTransition("2", "b", automaton.Defined("3", "y"))
	_ = b.SetTransition("3", "a", automaton.Defined("3", "y"))
	_ = b.SetTransition("3", "b", automaton.Defined("1", "x"))
	table, err := b.Build()
	if err != nil {
		fmt.Println(err)
		return
	}

	m, err := automaton.Minimize(table)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(m.Final)
	fmt.Print(m.Table)
	// Output:
	// {1,2} {3}
	// State	a	b
	// ->1	1/x	3/y
	// 3	3/y	1/x
}

func ExampleToMoore() {
	b := automaton.NewBuilder("a")
	_ = b.SetTransition("1", "a", automaton.Defined("2", "0"))
	_ = b.SetTransition("2", "a", automaton.Defined("1", "1"))
	table, _ := b.Build()

	m, err := automaton.ToMoore(table)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(m)
	out, _ := m.Run([]automaton.Symbol{"a", "a", "a"})
	fmt.Println(out)
	// Output:
	// ->1,1 (1): a -> 2,0
	// 2,0 (0): a -> 1,1
	// [1 0 1 0]
}

func ExampleCover() {
	b := automaton.NewBuilder("a", "b")
	_ = b.SetTransition("1", "a", automaton.OutputOnly("x"))
	_ = b.SetTransition("1", "b", automaton.OutputOnly("x"))
	_ = b.SetTransition("2", "a", automaton.OutputOnly("x"))
	_ = b.SetTransition("2", "b", automaton.DontCare())
	_ = b.SetTransition("3", "a", automaton.DontCare())
	_ = b.SetTransition("3", "b", automaton.OutputOnly("y"))
	_ = b.SetTransition("4", "a", automaton.OutputOnly("y"))
	_ = b.SetTransition("4", "b", automaton.OutputOnly("y"))
	table, _ := b.Build()

	cov, err := automaton.Cover(table)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(cov.Maximal)
	fmt.Println(cov.Minimum)
	fmt.Printf("%+v\n", cov.Stats())
	// Output:
	// [{1,2} {2,3} {3,4}]
	// [{1,2} {3,4}]
	// {States:4 MaximalBlocks:3 MinimumBlocks:2}
}
