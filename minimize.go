package dfa

import (
	"log/slog"
)

// Stats Describes one Minimize run.
type Stats struct {
	// Number of refinement rounds, including the final one that found the partition stable.
	Rounds int

	// Classes of the initial accepting/non-accepting split: 1 or 2.
	InitialClasses int

	// States of the minimized automaton.
	FinalClasses int
}

type options struct {
	logger *slog.Logger
	stats  *Stats
}

type Option func(*options)

// WithLogger Logs each refinement round at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithStats Fills stats once minimization succeeds.
func WithStats(stats *Stats) Option {
	return func(o *options) {
		o.stats = stats
	}
}

func newOptions(opts ...Option) *options {
	o := &options{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Minimize
// Returns the minimal DFA recognizing the same language as a, using Moore's partition
// refinement. Each round is a stable counting sort of the states per letter, so a round costs
// O(n*p) for n states and p letters. a must be complete; otherwise an error wrapping
// ErrInvalidAutomaton is returned. a is not modified and the result shares no storage with
// it.
//
// States unreachable from the initial state are merged with equivalent states but not
// removed; use RemoveUnreachable first for that.
func Minimize(a *DFA, opts ...Option) (*DFA, error) {
	o := newOptions(opts...)

	if err := a.Validate(); err != nil {
		return nil, err
	}

	p := newPartition(a)
	initialClasses := p.numClasses
	rounds := p.refine(func(round, numClasses int) {
		o.logger.Debug("refinement round", slog.Int("round", round), slog.Int("classes", numClasses))
	})
	result := p.quotient()

	o.logger.Debug("minimized automaton",
		slog.Int("states", a.NumStates()),
		slog.Int("minimized", result.NumStates()),
		slog.Int("rounds", rounds))

	if o.stats != nil {
		*o.stats = Stats{
			Rounds:         rounds,
			InitialClasses: initialClasses,
			FinalClasses:   result.NumStates(),
		}
	}
	return result, nil
}
