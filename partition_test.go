package dfa

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Builds a random complete DFA with n states over p letters.
func randomDFA(r *rand.Rand, n, p int) *DFA {
	a := NewDFAWithCapacity(p, n)
	for i := 0; i < n; i++ {
		a.CreateState()
		a.SetAccept(i, r.IntN(3) == 0)
	}
	for s := 0; s < n; s++ {
		for x := 0; x < p; x++ {
			_ = a.AddTransition(s, r.IntN(n), x)
		}
	}
	a.SetInitial(r.IntN(n))
	return a
}

// Counts the Myhill-Nerode classes of a by pairwise comparison of all states each round.
func naiveClassCount(a *DFA) int {
	p := newPartition(a)
	n := a.NumStates()
	for {
		classes := make([]int, n)
		for i := range classes {
			classes[i] = -1
		}
		next := 0
		for s1 := 0; s1 < n; s1++ {
			if classes[s1] >= 0 {
				continue
			}
			for s2 := s1; s2 < n; s2++ {
				if classes[s2] < 0 && !p.discriminate(s1, s2) {
					classes[s2] = next
				}
			}
			next++
		}
		grew := next > p.numClasses
		p.classes = classes
		p.numClasses = next
		if !grew {
			return next
		}
	}
}

func assertGrouped(t *testing.T, p *partition) {
	t.Helper()
	n := p.a.NumStates()
	require.Len(t, p.ordered, n)
	require.Len(t, p.classes, n)

	seenState := make([]bool, n)
	seenClass := make([]bool, p.numClasses)
	prev := -1
	for _, q := range p.ordered {
		assert.False(t, seenState[q], "state %d appears twice", q)
		seenState[q] = true

		c := p.classes[q]
		require.True(t, c >= 0 && c < p.numClasses, "class %d out of range", c)
		if c != prev {
			assert.False(t, seenClass[c], "class %d is not contiguous in %v", c, p.ordered)
			seenClass[c] = true
			prev = c
		}
	}
	for c, seen := range seenClass {
		assert.True(t, seen, "class %d is empty", c)
	}
}

func Test_newPartition(t *testing.T) {
	t.Run("accepting and rejecting", func(t *testing.T) {
		a, err := NewDFAFromTable([][]int{{1}, {2}, {3}, {0}}, []int{1, 3}, 0)
		require.NoError(t, err)

		p := newPartition(a)
		assert.Equal(t, 2, p.numClasses)
		assert.Equal(t, []int{0, 1, 0, 1}, p.classes)
		assert.Equal(t, []int{0, 2, 1, 3}, p.ordered)
		assertGrouped(t, p)
	})

	t.Run("all accepting", func(t *testing.T) {
		a, err := NewDFAFromTable([][]int{{1}, {2}, {0}}, []int{0, 1, 2}, 0)
		require.NoError(t, err)

		p := newPartition(a)
		assert.Equal(t, 1, p.numClasses)
		assert.Equal(t, []int{0, 0, 0}, p.classes)
		assert.Equal(t, []int{0, 1, 2}, p.ordered)
		assertGrouped(t, p)
	})

	t.Run("none accepting", func(t *testing.T) {
		a, err := NewDFAFromTable([][]int{{1}, {0}}, nil, 1)
		require.NoError(t, err)

		p := newPartition(a)
		assert.Equal(t, 1, p.numClasses)
		assert.Equal(t, []int{0, 0}, p.classes)
		assertGrouped(t, p)
	})
}

func Test_discriminate(t *testing.T) {
	// 0 -> 1 -> 2 -> 2, only 2 accepts.
	a, err := NewDFAFromTable([][]int{{1}, {2}, {2}}, []int{2}, 0)
	require.NoError(t, err)
	p := newPartition(a)

	assert.True(t, p.discriminate(0, 2), "different classes")
	assert.True(t, p.discriminate(0, 1), "successors in different classes")
	assert.False(t, p.discriminate(0, 0))
	assert.False(t, p.discriminate(2, 2))
}

func Test_exclusivePrefixSum(t *testing.T) {
	values := []int{3, 0, 2, 1}
	exclusivePrefixSum(values)
	assert.Equal(t, []int{0, 3, 3, 5}, values)

	empty := []int{}
	exclusivePrefixSum(empty)
	assert.Empty(t, empty)
}

func Test_sortByTransition(t *testing.T) {
	// Only state 3 accepts; states 1 and 3 move into it.
	a, err := NewDFAFromTable([][]int{{4}, {3}, {4}, {3}, {4}}, []int{3}, 0)
	require.NoError(t, err)
	p := newPartition(a)
	require.Equal(t, []int{0, 1, 2, 4, 3}, p.ordered)

	assert.Equal(t, []int{3, 2}, p.histogram(0))

	old := p.ordered
	p.sortByTransition(0)
	assert.Equal(t, []int{0, 2, 4, 1, 3}, p.ordered)
	assert.Equal(t, []int{0, 1, 2, 4, 3}, old, "previous buffer must not be rewritten")
}

func Test_step(t *testing.T) {
	a, err := NewDFAFromTable([][]int{{1}, {2}, {2}}, []int{2}, 0)
	require.NoError(t, err)
	p := newPartition(a)

	assert.True(t, p.step())
	assert.Equal(t, 3, p.numClasses)
	assertGrouped(t, p)

	assert.False(t, p.step())
	assert.Equal(t, 3, p.numClasses)
	assertGrouped(t, p)
}

func Test_refine(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 200; i++ {
		a := randomDFA(r, 1+r.IntN(15), 1+r.IntN(3))
		p := newPartition(a)

		var seen []int
		rounds := p.refine(func(round, numClasses int) {
			seen = append(seen, numClasses)
			assert.Equal(t, len(seen), round)
		})

		assert.Len(t, seen, rounds)
		assert.LessOrEqual(t, rounds, a.NumStates())
		assert.Equal(t, naiveClassCount(a), p.numClasses)
		assertGrouped(t, p)
	}
}

func Test_quotient(t *testing.T) {
	a, err := NewDFAFromTable([][]int{{2}, {2}, {2}, {3}}, []int{2, 3}, 0)
	require.NoError(t, err)
	p := newPartition(a)
	p.refine(nil)

	q := p.quotient()
	require.NoError(t, q.Validate())
	assert.Equal(t, 2, q.NumStates())
	assert.Equal(t, 0, q.Initial())
	assert.False(t, q.IsAccept(0))
	assert.True(t, q.IsAccept(1))
	assert.Equal(t, 1, q.Step(0, 0))
	assert.Equal(t, 1, q.Step(1, 0))
}
