package dfa

import "fmt"

type Automata struct {
}

var defaultAutomata = &Automata{}

// MakeEmpty
// Returns a new automaton over numLetters letters with the empty language: a single
// rejecting state looping on every letter.
func (*Automata) MakeEmpty(numLetters int) *DFA {
	a := NewDFAWithCapacity(numLetters, 1)
	s := a.CreateState()
	a.loop(s)
	return a
}

// MakeEmptyString
// Returns a new automaton that accepts only the empty string.
func (*Automata) MakeEmptyString(numLetters int) *DFA {
	a := NewDFAWithCapacity(numLetters, 2)
	s := a.CreateState()
	sink := a.CreateState()
	a.SetAccept(s, true)
	a.fill(s, sink)
	a.loop(sink)
	return a
}

// MakeAnyString
// Returns a new automaton that accepts all strings.
func (*Automata) MakeAnyString(numLetters int) *DFA {
	a := NewDFAWithCapacity(numLetters, 1)
	s := a.CreateState()
	a.SetAccept(s, true)
	a.loop(s)
	return a
}

// MakeString
// Returns a new automaton that accepts only word.
func (*Automata) MakeString(numLetters int, word []int) (*DFA, error) {
	a := NewDFAWithCapacity(numLetters, len(word)+2)
	for range len(word) + 1 {
		a.CreateState()
	}
	sink := a.CreateState()
	for i, x := range word {
		if x < 0 || x >= numLetters {
			return nil, fmt.Errorf("%w: letter %d out of range [0, %d)", ErrInvalidAutomaton, x, numLetters)
		}
		if err := a.AddTransition(i, i+1, x); err != nil {
			return nil, err
		}
		a.fill(i, sink)
	}
	a.SetAccept(len(word), true)
	a.fill(len(word), sink)
	a.loop(sink)
	return a, nil
}

// Sends every missing transition of state to dest.
func (a *DFA) fill(state, dest int) {
	for x := 0; x < a.numLetters; x++ {
		if a.transitions[state*a.numLetters+x] == -1 {
			a.transitions[state*a.numLetters+x] = dest
		}
	}
}

func (a *DFA) loop(state int) {
	a.fill(state, state)
}
