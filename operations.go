package dfa

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Totalize
// Returns a complete copy of a: every missing transition goes to a new rejecting sink state.
// If a is already complete the copy has the same states. Transitions and the initial state
// that are set must be in range.
func Totalize(a *DFA) (*DFA, error) {
	if a.NumLetters() <= 0 {
		return nil, fmt.Errorf("%w: alphabet size %d", ErrInvalidAutomaton, a.NumLetters())
	}
	result := a.Clone()
	if result.NumStates() == 0 {
		// An empty automaton becomes the lone sink, which is also its initial state.
		result.SetInitial(0)
	}

	deadState := -1
	for i, dest := range result.transitions {
		if dest != -1 {
			continue
		}
		if deadState == -1 {
			deadState = result.CreateState()
			result.loop(deadState)
		}
		result.transitions[i] = deadState
	}
	if result.NumStates() == 0 {
		result.loop(result.CreateState())
	}

	if err := result.Validate(); err != nil {
		return nil, err
	}
	return result, nil
}

// RemoveUnreachable
// Returns a copy of a holding only the states reachable from the initial state, numbered in
// breadth-first order so the initial state becomes 0.
func RemoveUnreachable(a *DFA) (*DFA, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	order := reachableStates(a)
	mp := make([]int, a.NumStates())
	for i, s := range order {
		mp[s] = i
	}

	result := NewDFAWithCapacity(a.NumLetters(), len(order))
	for _, s := range order {
		result.SetAccept(result.CreateState(), a.IsAccept(s))
	}
	for _, s := range order {
		for x := 0; x < a.NumLetters(); x++ {
			if err := result.AddTransition(mp[s], mp[a.Step(s, x)], x); err != nil {
				return nil, err
			}
		}
	}
	result.SetInitial(0)
	return result, nil
}

// Returns the states reachable from the initial state in breadth-first order. Missing
// transitions are skipped.
func reachableStates(a *DFA) []int {
	seen := bitset.New(uint(a.NumStates()))
	workList := []int{a.Initial()}
	seen.Set(uint(a.Initial()))

	for i := 0; i < len(workList); i++ {
		state := workList[i]
		for x := 0; x < a.NumLetters(); x++ {
			dest := a.Step(state, x)
			if dest != -1 && !seen.Test(uint(dest)) {
				seen.Set(uint(dest))
				workList = append(workList, dest)
			}
		}
	}
	return workList
}

// IsEmpty
// Returns true if the given automaton accepts no strings.
func IsEmpty(a *DFA) bool {
	if a.NumStates() == 0 || a.NumAccept() == 0 {
		// Common case: nothing to reach
		return true
	}
	if a.IsAccept(a.Initial()) {
		return false
	}
	for _, s := range reachableStates(a) {
		if a.IsAccept(s) {
			return false
		}
	}
	return true
}

// IsTotal
// Returns true if the given automaton accepts all strings: every reachable state accepts and
// has a transition on every letter.
func IsTotal(a *DFA) bool {
	if a.NumStates() == 0 {
		return false
	}
	for _, s := range reachableStates(a) {
		if !a.IsAccept(s) {
			return false
		}
		for x := 0; x < a.NumLetters(); x++ {
			if a.Step(s, x) == -1 {
				return false
			}
		}
	}
	return true
}

// Isomorphic
// Returns true if a and b are the same automaton up to a renaming of their states. Both
// are walked in lockstep from their initial states, so states unreachable in either are
// ignored.
func Isomorphic(a, b *DFA) bool {
	if a.NumLetters() != b.NumLetters() {
		return false
	}
	if a.NumStates() == 0 || b.NumStates() == 0 {
		return a.NumStates() == b.NumStates()
	}

	aToB := make(map[int]int)
	bSeen := bitset.New(uint(b.NumStates()))
	aToB[a.Initial()] = b.Initial()
	bSeen.Set(uint(b.Initial()))

	workList := []int{a.Initial()}
	for len(workList) > 0 {
		sa := workList[0]
		workList = workList[1:]
		sb := aToB[sa]

		if a.IsAccept(sa) != b.IsAccept(sb) {
			return false
		}
		for x := 0; x < a.NumLetters(); x++ {
			da, db := a.Step(sa, x), b.Step(sb, x)
			if da == -1 || db == -1 {
				if da != db {
					return false
				}
				continue
			}
			if mapped, ok := aToB[da]; ok {
				if mapped != db {
					return false
				}
				continue
			}
			if bSeen.Test(uint(db)) {
				// db is already the image of another state of a.
				return false
			}
			aToB[da] = db
			bSeen.Set(uint(db))
			workList = append(workList, da)
		}
	}
	return true
}
