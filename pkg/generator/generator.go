// Package generator assembles the enumeration strategies into a block generator.
//
// A block has one source per item, each source yielding alternative sub-sequences for its item.
// The Generator walks the sources with a combinator,
// merges every combination of sub-sequences into one sequence with a compositor,
// and finally lets a permutator reorder that sequence.
// Every ordering the permutator yields is one generated sequence.
//
// Strategies are selected by name, so they can come from configuration files.
package generator

import (
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/port/option"

	"go.llib.dev/seqgen/pkg/combinator"
	"go.llib.dev/seqgen/pkg/compositor"
	"go.llib.dev/seqgen/pkg/permutator"
	"go.llib.dev/seqgen/pkg/randkit"
	"go.llib.dev/seqgen/pkg/seqkit"
)

const ErrInvalidConfig errorkit.Error = "invalid generator configuration"

const (
	DefaultCombinator = combinator.DIAGONAL
	DefaultCompositor = compositor.CATENATION
	DefaultPermutator = permutator.TRIVIAL
)

// Config selects the strategies of a generator by name.
// Empty names fall back to the defaults.
type Config struct {
	Combinator string
	Compositor string
	Permutator string
	// Percentage is passed to the compositor, see compositor.WithPercentage.
	Percentage *int
	// Seed makes the random strategies reproducible,
	// unless a source is given with WithSource.
	Seed *uint64
}

type Strategies struct {
	Combinator combinator.Strategy
	Compositor compositor.Strategy
	Permutator permutator.Strategy
}

// Strategies resolves the strategy names of the configuration.
func (c Config) Strategies() (Strategies, error) {
	var (
		s   = Strategies{DefaultCombinator, DefaultCompositor, DefaultPermutator}
		err error
	)
	if c.Combinator != "" {
		if s.Combinator, err = combinator.ParseStrategy(c.Combinator); err != nil {
			return s, ErrInvalidConfig.Wrap(err)
		}
	}
	if c.Compositor != "" {
		if s.Compositor, err = compositor.ParseStrategy(c.Compositor); err != nil {
			return s, ErrInvalidConfig.Wrap(err)
		}
	}
	if c.Permutator != "" {
		if s.Permutator, err = permutator.ParseStrategy(c.Permutator); err != nil {
			return s, ErrInvalidConfig.Wrap(err)
		}
	}
	if c.Percentage != nil && (*c.Percentage < 0 || 100 < *c.Percentage) {
		return s, ErrInvalidConfig.Wrap(compositor.ErrInvalidPercentage.F("%d", *c.Percentage))
	}
	return s, nil
}

// NewCombinator makes a combinator by its strategy name.
func NewCombinator[T any](name string, its []seqkit.Iterator[T], src randkit.Source) (*combinator.Combinator[T], error) {
	s, err := combinator.ParseStrategy(name)
	if err != nil {
		return nil, err
	}
	return combinator.New(s, its, combinator.WithSource(src))
}

// NewCompositor makes a compositor by its strategy name.
func NewCompositor[T any](name string, its []seqkit.Iterator[T], src randkit.Source) (*compositor.Compositor[T], error) {
	s, err := compositor.ParseStrategy(name)
	if err != nil {
		return nil, err
	}
	return compositor.New(s, its, compositor.WithSource(src))
}

// NewPermutator makes a permutator by its strategy name.
func NewPermutator[T any](name string, src randkit.Source) (*permutator.Permutator[T], error) {
	s, err := permutator.ParseStrategy(name)
	if err != nil {
		return nil, err
	}
	return permutator.New[T](s, permutator.WithSource(src))
}

type Option interface {
	option.Option[options]
}

type options struct {
	Source  randkit.Source
	Metrics *Metrics
}

// WithSource sets the randomness shared by the strategies of the generator.
func WithSource(src randkit.Source) Option {
	return option.Func[options](func(o *options) { o.Source = src })
}

// WithMetrics makes the generator count what it yields.
func WithMetrics(m *Metrics) Option {
	return option.Func[options](func(o *options) { o.Metrics = m })
}

// Generator is a seqkit.Iterator of generated sequences.
type Generator[T any] struct {
	strategies Strategies
	comb       *combinator.Combinator[[]T]
	comp       *compositor.Compositor[T]
	perm       *permutator.Permutator[T]
	counters   *counters
	hasValue   bool
	// length of the sequence the permutator reorders
	length int
}

// New makes a generator over one source per block item and initialises it.
func New[T any](cfg Config, sources []seqkit.Iterator[[]T], opts ...Option) (*Generator[T], error) {
	o := option.ToConfig[options](opts)
	strategies, err := cfg.Strategies()
	if err != nil {
		return nil, err
	}
	src := o.Source
	if src == nil && cfg.Seed != nil {
		src = randkit.New(*cfg.Seed)
	}

	comb, err := combinator.New(strategies.Combinator, sources, combinator.WithSource(src))
	if err != nil {
		return nil, err
	}
	compOpts := []compositor.Option{compositor.WithSource(src)}
	if cfg.Percentage != nil {
		compOpts = append(compOpts, compositor.WithPercentage(*cfg.Percentage))
	}
	comp, err := compositor.New[T](strategies.Compositor, nil, compOpts...)
	if err != nil {
		return nil, err
	}
	perm, err := permutator.New[T](strategies.Permutator, permutator.WithSource(src))
	if err != nil {
		return nil, err
	}

	g := &Generator[T]{
		strategies: strategies,
		comb:       comb,
		comp:       comp,
		perm:       perm,
	}
	if o.Metrics != nil {
		c := o.Metrics.counters(strategies)
		g.counters = &c
	}
	g.Init()
	return g, nil
}

func (g *Generator[T]) Strategies() Strategies { return g.strategies }

func (g *Generator[T]) Init() {
	g.comb.Init()
	g.load()
}

func (g *Generator[T]) HasValue() bool { return g.hasValue }

// Value returns the current sequence as a new slice.
func (g *Generator[T]) Value() []T {
	if !g.hasValue {
		seqkit.Exhausted(g, "Value")
	}
	return g.perm.Value()
}

func (g *Generator[T]) Next() {
	if !g.hasValue {
		seqkit.Exhausted(g, "Next")
	}
	g.perm.Next()
	if g.perm.HasValue() {
		g.counters.record(g.length)
		return
	}
	g.comb.Next()
	g.load()
}

// load composes the current combination and hands it over to the permutator.
func (g *Generator[T]) load() {
	g.hasValue = g.comb.HasValue()
	if !g.hasValue {
		return
	}
	parts := g.comb.Value()
	its := make([]seqkit.Iterator[T], len(parts))
	for i, part := range parts {
		its[i] = seqkit.FromSlice(part)
	}
	if err := g.comp.SetIterators(its); err != nil {
		// slice iterators satisfy every compositor strategy
		panic(err)
	}
	seq := seqkit.Collect[T](g.comp)
	g.perm.Initialize(seq)
	g.length = len(seq)
	g.hasValue = g.perm.HasValue()
	if g.hasValue {
		g.counters.record(g.length)
	}
}
