// Package compositor merges sequential iterators of the same element type into one stream.
//
// Whatever the strategy, one full traversal of a Compositor yields
// every value of every sub-iterator exactly once.
// Strategies only differ in the order they interleave the sub-iterators:
//
//   - CATENATION drains the sub-iterators one after the other.
//   - ROTATION draws one value from each live sub-iterator in turn.
//   - RANDOM picks the next sub-iterator randomly, weighted by the sub-iterator sizes.
//   - OVERLAPPING starts the next sub-iterator when the previous one reaches its point,
//     and rotates between the ones that are live at the same time.
//   - NESTING starts the next sub-iterator when the current one reaches its point,
//     and drains it before the current one resumes.
package compositor

import (
	"fmt"
	"strings"

	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/port/option"

	"go.llib.dev/seqgen/pkg/randkit"
	"go.llib.dev/seqgen/pkg/seqkit"
)

const (
	ErrUnknownStrategy   errorkit.Error = "unknown compositor strategy"
	ErrInvalidPercentage errorkit.Error = "percentage is out of the [0,100] range"
	ErrEntryOverrun      errorkit.Error = "sub-iterator yielded more values than its size"
)

type Strategy string

const (
	CATENATION  Strategy = "CATENATION"
	ROTATION    Strategy = "ROTATION"
	RANDOM      Strategy = "RANDOM"
	OVERLAPPING Strategy = "OVERLAPPING"
	NESTING     Strategy = "NESTING"
)

// DefaultOverlapPercentage is where OVERLAPPING starts the next sub-iterator
// when no percentage is configured.
const DefaultOverlapPercentage = 50

func Strategies() []Strategy {
	return []Strategy{CATENATION, ROTATION, RANDOM, OVERLAPPING, NESTING}
}

// ParseStrategy looks up a strategy by its case-insensitive name.
func ParseStrategy(name string) (Strategy, error) {
	s := Strategy(strings.ToUpper(strings.TrimSpace(name)))
	for _, known := range Strategies() {
		if s == known {
			return s, nil
		}
	}
	return "", ErrUnknownStrategy.F("%q", name)
}

func (s Strategy) String() string { return string(s) }

// RequiresBounded reports whether the strategy can only work with sub-iterators that know their size.
func (s Strategy) RequiresBounded() bool {
	return s == OVERLAPPING || s == NESTING
}

type Option interface {
	option.Option[Config]
}

type Config struct {
	// Source is used by the RANDOM and NESTING strategies.
	// When it is nil, the compositor gets a private, freshly seeded source.
	Source randkit.Source
	// Percentage sets the point of every entry for OVERLAPPING and NESTING.
	// OVERLAPPING defaults to DefaultOverlapPercentage,
	// NESTING draws a random percentage for each entry.
	Percentage *int
}

func WithSource(src randkit.Source) Option {
	return option.Func[Config](func(c *Config) { c.Source = src })
}

func WithPercentage(p int) Option {
	return option.Func[Config](func(c *Config) { c.Percentage = &p })
}

// Compositor is a seqkit.Iterator that draws each value from one of its sub-iterators.
type Compositor[T any] struct {
	strategy  Strategy
	iterators []seqkit.Iterator[T]
	bounded   []seqkit.Bounded[T]
	// staged replaces the sub-iterators on the next Init.
	staged  *subIterators[T]
	state   state[T]
	current seqkit.Iterator[T]
}

type subIterators[T any] struct {
	iterators []seqkit.Iterator[T]
	bounded   []seqkit.Bounded[T]
}

// state is the strategy specific bookkeeping of a Compositor.
type state[T any] interface{ isState() }

type catenationState[T any] struct{ i int }

type rotationState[T any] struct{ i int }

type randomState[T any] struct {
	src  randkit.Source
	dist *randkit.Distribution
}

type overlappingState[T any] struct {
	percentage int
	overlap    []*Entry[T]
	// n is the number of sub-iterators activated so far.
	n int
	// k is the position in overlap of the entry the current value is drawn from.
	k int
	// i is the position in overlap where the next search starts.
	i int
}

type nestingState[T any] struct {
	src        randkit.Source
	percentage *int
	stack      []*Entry[T]
	n          int
}

func (*catenationState[T]) isState()  {}
func (*rotationState[T]) isState()    {}
func (*randomState[T]) isState()      {}
func (*overlappingState[T]) isState() {}
func (*nestingState[T]) isState()     {}

// New makes a compositor over the given sub-iterators and initialises it.
//
// OVERLAPPING and NESTING need every sub-iterator to be seqkit.Bounded.
// RANDOM needs either all or none of them to be bounded,
// since sizes are only meaningful as weights when every sub-iterator has one.
// Violations fail with seqkit.ErrNotBounded.
func New[T any](strategy Strategy, iterators []seqkit.Iterator[T], opts ...Option) (*Compositor[T], error) {
	c := option.ToConfig[Config](opts)
	if c.Percentage != nil && (*c.Percentage < 0 || 100 < *c.Percentage) {
		return nil, ErrInvalidPercentage.F("%d", *c.Percentage)
	}
	src := c.Source
	if src == nil && (strategy == RANDOM || strategy == NESTING) {
		src = randkit.Fresh()
	}
	var st state[T]
	switch strategy {
	case CATENATION:
		st = &catenationState[T]{}
	case ROTATION:
		st = &rotationState[T]{}
	case RANDOM:
		st = &randomState[T]{src: src}
	case OVERLAPPING:
		pct := DefaultOverlapPercentage
		if c.Percentage != nil {
			pct = *c.Percentage
		}
		st = &overlappingState[T]{percentage: pct}
	case NESTING:
		st = &nestingState[T]{src: src, percentage: c.Percentage}
	default:
		return nil, ErrUnknownStrategy.F("%q", strategy)
	}
	comp := &Compositor[T]{strategy: strategy, state: st}
	if err := comp.SetIterators(iterators); err != nil {
		return nil, err
	}
	comp.Init()
	return comp, nil
}

func (c *Compositor[T]) Strategy() Strategy { return c.strategy }

// Len returns the number of sub-iterators, counting the ones staged for the next Init.
func (c *Compositor[T]) Len() int { return len(c.latest().iterators) }

// AddIterator appends a sub-iterator.
// It takes part in the composition from the next Init,
// a traversal already in progress is not affected.
func (c *Compositor[T]) AddIterator(it seqkit.Iterator[T]) error {
	its := append(append([]seqkit.Iterator[T](nil), c.latest().iterators...), it)
	return c.SetIterators(its)
}

// SetIterators replaces every sub-iterator.
// The new sub-iterators take part in the composition from the next Init,
// a traversal already in progress is not affected.
func (c *Compositor[T]) SetIterators(its []seqkit.Iterator[T]) error {
	bounded, err := c.check(its)
	if err != nil {
		return err
	}
	c.staged = &subIterators[T]{
		iterators: append([]seqkit.Iterator[T](nil), its...),
		bounded:   bounded,
	}
	return nil
}

// latest returns the sub-iterators the next Init composes.
func (c *Compositor[T]) latest() subIterators[T] {
	if c.staged != nil {
		return *c.staged
	}
	return subIterators[T]{iterators: c.iterators, bounded: c.bounded}
}

func (c *Compositor[T]) check(its []seqkit.Iterator[T]) ([]seqkit.Bounded[T], error) {
	if err := seqkit.CheckNotNil(its...); err != nil {
		return nil, err
	}
	bounded, err := seqkit.AllBounded(its)
	if err == nil {
		return bounded, nil
	}
	switch {
	case c.strategy.RequiresBounded():
		return nil, fmt.Errorf("%s compositor requires sized sub-iterators: %w", c.strategy, err)
	case c.strategy == RANDOM:
		for i, it := range its {
			if seqkit.IsBounded(it) {
				return nil, seqkit.ErrNotBounded.F("%s compositor got sized and unsized sub-iterators mixed, #%d is sized", c.strategy, i)
			}
		}
	}
	return nil, nil
}

func (c *Compositor[T]) Init() {
	if c.staged != nil {
		c.iterators, c.bounded = c.staged.iterators, c.staged.bounded
		c.staged = nil
	}
	for _, it := range c.iterators {
		it.Init()
	}
	switch st := c.state.(type) {
	case *catenationState[T]:
		st.i = 0
	case *rotationState[T]:
		st.i = 0
	case *randomState[T]:
		st.dist = c.weights()
	case *overlappingState[T]:
		st.overlap, st.n, st.k, st.i = nil, 0, 0, 0
		if 0 < len(c.iterators) {
			c.activate(st)
		}
	case *nestingState[T]:
		st.stack, st.n = nil, 0
		if 0 < len(c.iterators) {
			c.push(st)
		}
	}
	c.current = c.choose()
}

func (c *Compositor[T]) HasValue() bool { return c.current != nil }

func (c *Compositor[T]) Value() T {
	if c.current == nil {
		seqkit.Exhausted(c, "Value")
	}
	return c.current.Value()
}

func (c *Compositor[T]) Next() {
	if c.current == nil {
		seqkit.Exhausted(c, "Next")
	}
	c.current.Next()
	c.onNext()
	c.current = c.choose()
}

func (c *Compositor[T]) onNext() {
	switch st := c.state.(type) {
	case *overlappingState[T]:
		st.overlap[st.k].Advance()
	case *nestingState[T]:
		st.stack[len(st.stack)-1].Advance()
	}
}

// choose returns the sub-iterator the next value is drawn from,
// or nil when every sub-iterator is exhausted.
func (c *Compositor[T]) choose() seqkit.Iterator[T] {
	switch st := c.state.(type) {
	case *catenationState[T]:
		for ; st.i < len(c.iterators); st.i++ {
			if it := c.iterators[st.i]; it.HasValue() {
				return it
			}
		}
	case *rotationState[T]:
		n := len(c.iterators)
		for j := 0; j < n; j++ {
			k := (st.i + j) % n
			if it := c.iterators[k]; it.HasValue() {
				st.i = k + 1
				return it
			}
		}
	case *randomState[T]:
		for {
			k, ok := st.dist.Choose(st.src)
			if !ok {
				return nil
			}
			if it := c.iterators[k]; it.HasValue() {
				return it
			}
			st.dist.Zero(k)
		}
	case *overlappingState[T]:
		return c.chooseOverlapping(st)
	case *nestingState[T]:
		return c.chooseNesting(st)
	}
	return nil
}

// weights are the sub-iterator sizes when every sub-iterator has one, otherwise uniform.
func (c *Compositor[T]) weights() *randkit.Distribution {
	if c.bounded == nil {
		return randkit.Uniform(len(c.iterators))
	}
	sizes := make([]int, len(c.bounded))
	for i, b := range c.bounded {
		sizes[i] = b.Size()
	}
	dist, err := randkit.NewDistribution(sizes...)
	if err != nil {
		panic(err)
	}
	return dist
}

func (c *Compositor[T]) chooseOverlapping(st *overlappingState[T]) seqkit.Iterator[T] {
	for 0 < len(st.overlap) || st.n < len(c.iterators) {
		if len(st.overlap) == 0 {
			c.activate(st)
		}
		for 0 < len(st.overlap) {
			pos := st.i % len(st.overlap)
			e := st.overlap[pos]
			if e.AtPoint() && !e.Done() && st.n < len(c.iterators) {
				e.MarkDone()
				c.activate(st)
				st.i = pos + 1
				continue
			}
			if e.Iterator().HasValue() {
				st.k, st.i = pos, pos+1
				return e.Iterator()
			}
			st.overlap = append(st.overlap[:pos], st.overlap[pos+1:]...)
			st.i = pos
		}
	}
	return nil
}

func (c *Compositor[T]) activate(st *overlappingState[T]) {
	st.overlap = append(st.overlap, c.entry(st.n, st.percentage))
	st.n++
}

func (c *Compositor[T]) chooseNesting(st *nestingState[T]) seqkit.Iterator[T] {
	for 0 < len(st.stack) || st.n < len(c.iterators) {
		if len(st.stack) == 0 {
			c.push(st)
			continue
		}
		top := st.stack[len(st.stack)-1]
		if top.AtPoint() && !top.Done() && st.n < len(c.iterators) {
			top.MarkDone()
			c.push(st)
			continue
		}
		if top.Iterator().HasValue() {
			return top.Iterator()
		}
		st.stack = st.stack[:len(st.stack)-1]
	}
	return nil
}

func (c *Compositor[T]) push(st *nestingState[T]) {
	pct := randkit.Percentage(st.src)
	if st.percentage != nil {
		pct = *st.percentage
	}
	st.stack = append(st.stack, c.entry(st.n, pct))
	st.n++
}

// entry makes the Entry of sub-iterator i.
// The percentage is validated on construction, and sizes on SetIterators.
func (c *Compositor[T]) entry(i, percentage int) *Entry[T] {
	e, err := NewEntry(c.bounded[i], percentage)
	if err != nil {
		panic(err)
	}
	return e
}

// Sized returns the bounded view of the compositor, its size is the sum of the sub-iterator sizes.
// It fails with seqkit.ErrNotBounded when a sub-iterator has no size.
//
// The size is taken from the sub-iterators the next Init composes, when Sized is called.
// After SetIterators or AddIterator the view is stale, and a new one has to be taken.
func (c *Compositor[T]) Sized() (seqkit.Bounded[T], error) {
	bs, err := seqkit.AllBounded(c.latest().iterators)
	if err != nil {
		return nil, err
	}
	var n int
	for _, b := range bs {
		n += b.Size()
	}
	return sized[T]{Compositor: c, size: n}, nil
}

type sized[T any] struct {
	*Compositor[T]
	size int
}

func (s sized[T]) Size() int { return s.size }
