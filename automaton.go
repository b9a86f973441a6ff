package dfa

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// ErrInvalidAutomaton is wrapped by every error reporting a malformed DFA: non-positive
// state or letter counts, a missing transition, or a state index out of range.
var ErrInvalidAutomaton = errors.New("invalid automaton")

// DFA Represents a deterministic finite automaton over the letters 0..NumLetters()-1. States
// are integers and must be created using CreateState. Mark a state as an accept state using
// SetAccept. Add transitions using AddTransition; a DFA handed to Minimize must have exactly
// one transition for every (state, letter) pair. State 0 is the initial state unless
// SetInitial says otherwise.
type DFA struct {
	numLetters int

	// Holds the destination of each (state, letter) pair at state*numLetters+letter, or -1
	// if that transition has not been added yet.
	transitions []int

	isAccept *bitset.BitSet

	initial int
}

func NewDFA(numLetters int) *DFA {
	return NewDFAWithCapacity(numLetters, 2)
}

func NewDFAWithCapacity(numLetters, numStates int) *DFA {
	return &DFA{
		numLetters:  numLetters,
		transitions: make([]int, 0, numStates*max(numLetters, 0)),
		isAccept:    bitset.New(uint(numStates)),
	}
}

// NewDFAFromTable builds a DFA from a transition table indexed by [state][letter]. Every
// row must have the same length, which becomes the alphabet size.
func NewDFAFromTable(delta [][]int, accepting []int, initial int) (*DFA, error) {
	if len(delta) == 0 {
		return nil, fmt.Errorf("%w: no states", ErrInvalidAutomaton)
	}
	numLetters := len(delta[0])
	a := NewDFAWithCapacity(numLetters, len(delta))
	for range delta {
		a.CreateState()
	}
	for s, row := range delta {
		if len(row) != numLetters {
			return nil, fmt.Errorf("%w: state %d has %d transitions, want %d",
				ErrInvalidAutomaton, s, len(row), numLetters)
		}
		for x, dest := range row {
			if err := a.AddTransition(s, dest, x); err != nil {
				return nil, err
			}
		}
	}
	for _, s := range accepting {
		if s < 0 || s >= a.NumStates() {
			return nil, fmt.Errorf("%w: accept state %d out of range", ErrInvalidAutomaton, s)
		}
		a.SetAccept(s, true)
	}
	a.SetInitial(initial)
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// CreateState Create a new state with no transitions.
func (a *DFA) CreateState() int {
	state := a.NumStates()
	for i := 0; i < a.numLetters; i++ {
		a.transitions = append(a.transitions, -1)
	}
	if a.numLetters <= 0 {
		// Keep counting states even over an empty alphabet; Validate rejects it later.
		a.transitions = append(a.transitions, -1)
	}
	return state
}

// SetAccept Set or clear this state as an accept state.
func (a *DFA) SetAccept(state int, accept bool) {
	a.isAccept.SetTo(uint(state), accept)
}

func (a *DFA) SetInitial(state int) {
	a.initial = state
}

// AddTransition Add the transition source --letter--> dest. Each (source, letter) pair
// can be set only once.
func (a *DFA) AddTransition(source, dest, letter int) error {
	numStates := a.NumStates()
	if source < 0 || source >= numStates {
		return fmt.Errorf("%w: source state %d out of range [0, %d)", ErrInvalidAutomaton, source, numStates)
	}
	if dest < 0 || dest >= numStates {
		return fmt.Errorf("%w: dest state %d out of range [0, %d)", ErrInvalidAutomaton, dest, numStates)
	}
	if letter < 0 || letter >= a.numLetters {
		return fmt.Errorf("%w: letter %d out of range [0, %d)", ErrInvalidAutomaton, letter, a.numLetters)
	}
	i := source*a.numLetters + letter
	if a.transitions[i] != -1 {
		return fmt.Errorf("state %d already has a transition on letter %d", source, letter)
	}
	a.transitions[i] = dest
	return nil
}

// NumStates How many states this automaton has.
func (a *DFA) NumStates() int {
	if a.numLetters <= 0 {
		return len(a.transitions)
	}
	return len(a.transitions) / a.numLetters
}

// NumLetters Size of the alphabet.
func (a *DFA) NumLetters() int {
	return a.numLetters
}

func (a *DFA) Initial() int {
	return a.initial
}

// IsAccept Returns true if this state is an accept state.
func (a *DFA) IsAccept(state int) bool {
	return a.isAccept.Test(uint(state))
}

// NumAccept How many accept states this automaton has.
func (a *DFA) NumAccept() int {
	return int(a.isAccept.Count())
}

// AcceptStates Returns a copy of the accept states. If the bit is set then that state is an
// accept state.
func (a *DFA) AcceptStates() *bitset.BitSet {
	return a.isAccept.Clone()
}

// Step Returns the destination of state under letter, or -1 if the letter is outside the
// alphabet or the transition was never added.
func (a *DFA) Step(state, letter int) int {
	if letter < 0 || letter >= a.numLetters {
		return -1
	}
	return a.transitions[state*a.numLetters+letter]
}

// Validate checks that the automaton is complete and every index is in range.
func (a *DFA) Validate() error {
	if a.numLetters <= 0 {
		return fmt.Errorf("%w: alphabet size %d", ErrInvalidAutomaton, a.numLetters)
	}
	numStates := a.NumStates()
	if numStates == 0 {
		return fmt.Errorf("%w: no states", ErrInvalidAutomaton)
	}
	if a.initial < 0 || a.initial >= numStates {
		return fmt.Errorf("%w: initial state %d out of range [0, %d)", ErrInvalidAutomaton, a.initial, numStates)
	}
	if last, ok := a.lastAccept(); ok && last >= uint(numStates) {
		return fmt.Errorf("%w: accept state %d out of range [0, %d)", ErrInvalidAutomaton, last, numStates)
	}
	for i, dest := range a.transitions {
		if dest == -1 {
			return fmt.Errorf("%w: state %d has no transition on letter %d",
				ErrInvalidAutomaton, i/a.numLetters, i%a.numLetters)
		}
		if dest < 0 || dest >= numStates {
			return fmt.Errorf("%w: state %d goes to %d on letter %d",
				ErrInvalidAutomaton, i/a.numLetters, dest, i%a.numLetters)
		}
	}
	return nil
}

func (a *DFA) lastAccept() (uint, bool) {
	if a.isAccept.None() {
		return 0, false
	}
	last := uint(0)
	for i, ok := a.isAccept.NextSet(0); ok; i, ok = a.isAccept.NextSet(i + 1) {
		last = i
	}
	return last, true
}

// Clone Returns a deep copy that shares no storage with a.
func (a *DFA) Clone() *DFA {
	transitions := make([]int, len(a.transitions))
	copy(transitions, a.transitions)
	return &DFA{
		numLetters:  a.numLetters,
		transitions: transitions,
		isAccept:    a.isAccept.Clone(),
		initial:     a.initial,
	}
}

// ToDot Returns the automaton in Graphviz dot format.
func (a *DFA) ToDot() string {
	b := new(strings.Builder)
	b.WriteString("digraph Automaton {\n")
	b.WriteString("  rankdir = LR\n")
	b.WriteString("  node [width=0.2, height=0.2, fontsize=8]\n")
	b.WriteString("  initial [shape=plaintext,label=\"\"]\n")
	fmt.Fprintf(b, "  initial -> %d\n", a.initial)

	numStates := a.NumStates()
	for s := 0; s < numStates; s++ {
		shape := "circle"
		if a.IsAccept(s) {
			shape = "doublecircle"
		}
		fmt.Fprintf(b, "  %d [shape=%s,label=\"%d\"]\n", s, shape, s)
		for x := 0; x < a.numLetters; x++ {
			if dest := a.Step(s, x); dest != -1 {
				fmt.Fprintf(b, "  %d -> %d [label=\"%d\"]\n", s, dest, x)
			}
		}
	}
	b.WriteString("}\n")
	return b.String()
}

func (a *DFA) String() string {
	return fmt.Sprintf("DFA{states: %d, letters: %d, accept: %d, initial: %d}",
		a.NumStates(), a.numLetters, a.NumAccept(), a.initial)
}
