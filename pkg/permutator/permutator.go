// Package permutator reorders one finite sequence.
//
// A Permutator is initialised with a sequence, then iterated like any seqkit.Iterator,
// each value being one ordering of that sequence.
// The sequence is copied on Initialize, and never modified afterwards.
package permutator

import (
	"math"
	"slices"
	"strings"

	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/port/option"

	"go.llib.dev/seqgen/pkg/randkit"
	"go.llib.dev/seqgen/pkg/seqkit"
)

const ErrUnknownStrategy errorkit.Error = "unknown permutator strategy"

type Strategy string

const (
	// TRIVIAL yields the sequence unchanged, once.
	TRIVIAL Strategy = "TRIVIAL"
	// RANDOM yields one uniformly random shuffle of the sequence.
	RANDOM Strategy = "RANDOM"
	// EXHAUSTIVE yields every ordering of the sequence positions, n! in total.
	EXHAUSTIVE Strategy = "EXHAUSTIVE"
)

func Strategies() []Strategy {
	return []Strategy{TRIVIAL, RANDOM, EXHAUSTIVE}
}

// ParseStrategy looks up a strategy by its case-insensitive name.
func ParseStrategy(name string) (Strategy, error) {
	s := Strategy(strings.ToUpper(strings.TrimSpace(name)))
	if slices.Contains(Strategies(), s) {
		return s, nil
	}
	return "", ErrUnknownStrategy.F("%q", name)
}

func (s Strategy) String() string { return string(s) }

type Option interface {
	option.Option[Config]
}

type Config struct {
	// Source is used by the RANDOM strategy.
	// When it is nil, the permutator gets a private, freshly seeded source.
	Source randkit.Source
}

func WithSource(src randkit.Source) Option {
	return option.Func[Config](func(c *Config) { c.Source = src })
}

type Permutator[T any] struct {
	strategy Strategy
	source   []T
	state    state
	ready    bool
	hasValue bool
}

type state interface{ isState() }

type trivialState struct{}

type randomState struct {
	src     randkit.Source
	shuffle []int
}

// exhaustiveState walks the orderings of the positions in lexicographic order.
type exhaustiveState struct {
	order []int
}

func (*trivialState) isState()    {}
func (*randomState) isState()     {}
func (*exhaustiveState) isState() {}

// New makes a Permutator.
// It has no value until it is given a sequence with Initialize.
func New[T any](strategy Strategy, opts ...Option) (*Permutator[T], error) {
	c := option.ToConfig[Config](opts)
	var st state
	switch strategy {
	case TRIVIAL:
		st = &trivialState{}
	case RANDOM:
		src := c.Source
		if src == nil {
			src = randkit.Fresh()
		}
		st = &randomState{src: src}
	case EXHAUSTIVE:
		st = &exhaustiveState{}
	default:
		return nil, ErrUnknownStrategy.F("%q", strategy)
	}
	return &Permutator[T]{strategy: strategy, state: st}, nil
}

func (p *Permutator[T]) Strategy() Strategy { return p.strategy }

// Initialize sets the sequence to permute, and starts a new traversal.
func (p *Permutator[T]) Initialize(vs []T) {
	p.source = slices.Clone(vs)
	p.ready = true
	p.Init()
}

func (p *Permutator[T]) Init() {
	p.hasValue = p.ready
	if !p.ready {
		return
	}
	switch st := p.state.(type) {
	case *trivialState:
	case *randomState:
		st.shuffle = identity(len(p.source))
		randkit.Shuffle(st.src, st.shuffle)
	case *exhaustiveState:
		st.order = identity(len(p.source))
	}
}

func (p *Permutator[T]) HasValue() bool { return p.hasValue }

// Value returns the current ordering as a new slice.
func (p *Permutator[T]) Value() []T {
	if !p.hasValue {
		seqkit.Exhausted(p, "Value")
	}
	switch st := p.state.(type) {
	case *randomState:
		return p.pick(st.shuffle)
	case *exhaustiveState:
		return p.pick(st.order)
	default:
		return slices.Clone(p.source)
	}
}

func (p *Permutator[T]) pick(order []int) []T {
	vs := make([]T, len(order))
	for i, j := range order {
		vs[i] = p.source[j]
	}
	return vs
}

func (p *Permutator[T]) Next() {
	if !p.hasValue {
		seqkit.Exhausted(p, "Next")
	}
	switch st := p.state.(type) {
	case *exhaustiveState:
		p.hasValue = nextPermutation(st.order)
	default:
		p.hasValue = false
	}
}

// Size is the number of orderings one traversal yields.
// It saturates at math.MaxInt for sequences longer than 20 elements.
func (p *Permutator[T]) Size() int {
	if !p.ready {
		return 0
	}
	if _, ok := p.state.(*exhaustiveState); ok {
		return factorial(len(p.source))
	}
	return 1
}

func identity(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

// nextPermutation rearranges order into its lexicographic successor.
// It reports false when order was the last permutation.
func nextPermutation(order []int) bool {
	i := len(order) - 2
	for 0 <= i && order[i] >= order[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(order) - 1
	for order[j] <= order[i] {
		j--
	}
	order[i], order[j] = order[j], order[i]
	slices.Reverse(order[i+1:])
	return true
}

func factorial(n int) int {
	f := 1
	for i := 2; i <= n; i++ {
		if math.MaxInt/i < f {
			return math.MaxInt
		}
		f *= i
	}
	return f
}
