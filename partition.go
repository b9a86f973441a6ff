package dfa

// partition Holds an equivalence relation ~h over the states of a DFA while it is refined
// towards the Myhill-Nerode equivalence.
//
// Invariant: ordered is a permutation of the states in which the states of each class
// occupy one contiguous block. Blocks are not necessarily laid out by class id.
type partition struct {
	a *DFA

	// Class id of each state, dense in [0, numClasses).
	classes []int

	// All states, grouped by class.
	ordered []int

	numClasses int
}

// newPartition Splits the states into non-accepting and accepting. When one side is empty
// there is a single class 0, so class ids stay dense.
func newPartition(a *DFA) *partition {
	n := a.NumStates()
	numAccept := a.NumAccept()

	p := &partition{
		a:          a,
		classes:    make([]int, n),
		ordered:    make([]int, n),
		numClasses: 2,
	}

	acceptClass := 1
	if numAccept == 0 || numAccept == n {
		p.numClasses = 1
		acceptClass = 0
	}

	// Non-accepting states first, then accepting ones, each in increasing order.
	nonAcceptUpto := 0
	acceptUpto := n - numAccept
	for q := 0; q < n; q++ {
		if a.IsAccept(q) {
			p.ordered[acceptUpto] = q
			p.classes[q] = acceptClass
			acceptUpto++
		} else {
			p.ordered[nonAcceptUpto] = q
			nonAcceptUpto++
		}
	}
	return p
}

// destinationClass Returns the current class reached from q by reading x.
func (p *partition) destinationClass(q, x int) int {
	return p.classes[p.a.transitions[q*p.a.numLetters+x]]
}

// discriminate Returns true if q and r fall in different classes of ~h+1, that is if they
// are already apart or some letter leads them into different classes of ~h.
func (p *partition) discriminate(q, r int) bool {
	if p.classes[q] != p.classes[r] {
		return true
	}
	for x := 0; x < p.a.numLetters; x++ {
		if p.destinationClass(q, x) != p.destinationClass(r, x) {
			return true
		}
	}
	return false
}

// histogram Returns, for each class c, how many states reach c by reading x.
func (p *partition) histogram(x int) []int {
	counts := make([]int, p.numClasses)
	for _, q := range p.ordered {
		counts[p.destinationClass(q, x)]++
	}
	return counts
}

// exclusivePrefixSum Replaces every value with the sum of the values before it.
func exclusivePrefixSum(values []int) {
	sum := 0
	for i, v := range values {
		values[i] = sum
		sum += v
	}
}

// sortByTransition Stably sorts ordered by the class reached on letter x. States with the
// same destination class keep their relative order. The sorted permutation is written to a
// fresh buffer which then replaces the old one.
func (p *partition) sortByTransition(x int) {
	offsets := p.histogram(x)
	exclusivePrefixSum(offsets)

	ordered := make([]int, len(p.ordered))
	for _, q := range p.ordered {
		c := p.destinationClass(q, x)
		ordered[offsets[c]] = q
		offsets[c]++
	}
	p.ordered = ordered
}

// step Refines ~h into ~h+1. Returns true if the number of classes grew.
func (p *partition) step() bool {
	// One stable pass per letter is a radix sort on the full transition signature. The
	// pre-round order was grouped by old class, so equal signatures with equal old classes
	// end up adjacent.
	for x := 0; x < p.a.numLetters; x++ {
		p.sortByTransition(x)
	}

	// discriminate reads p.classes, so the new labels go to a separate buffer.
	classes := make([]int, len(p.classes))
	current := 0
	prev := p.ordered[0]
	classes[prev] = 0
	for _, q := range p.ordered[1:] {
		if p.discriminate(q, prev) {
			current++
		}
		classes[q] = current
		prev = q
	}

	grew := current+1 > p.numClasses
	p.classes = classes
	p.numClasses = current + 1
	return grew
}

// refine Runs rounds until the partition is stable. Returns the number of rounds, the last
// one included.
func (p *partition) refine(onRound func(round, numClasses int)) int {
	rounds := 0
	for {
		rounds++
		grew := p.step()
		if onRound != nil {
			onRound(rounds, p.numClasses)
		}
		if !grew {
			return rounds
		}
	}
}

// quotient Builds the automaton whose states are the classes of the partition. The first
// state of each block of ordered stands for its class; any other member would give the same
// result once the partition is stable.
func (p *partition) quotient() *DFA {
	src := p.a
	numLetters := src.numLetters

	b := NewDFAWithCapacity(numLetters, p.numClasses)
	for c := 0; c < p.numClasses; c++ {
		b.CreateState()
	}

	prevClass := -1
	for _, q := range p.ordered {
		c := p.classes[q]
		if c == prevClass {
			continue
		}
		prevClass = c

		b.SetAccept(c, src.IsAccept(q))
		for x := 0; x < numLetters; x++ {
			b.transitions[c*numLetters+x] = p.destinationClass(q, x)
		}
	}
	b.SetInitial(p.classes[src.initial])
	return b
}
