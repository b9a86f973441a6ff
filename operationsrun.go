package dfa

// Run Returns true if a accepts word, reading it from the initial state.
func Run(a *DFA, word []int) bool {
	state := a.Initial()
	for _, x := range word {
		nextState := a.Step(state, x)
		if nextState == -1 {
			return false
		}
		state = nextState
	}
	return a.IsAccept(state)
}
