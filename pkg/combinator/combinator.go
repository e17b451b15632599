// Package combinator combines parallel iterators, one per slot, into an iterator of tuples.
//
// Each tuple holds the current value of every slot.
// The strategy decides which slots move between two tuples:
//
//   - PRODUCT walks the Cartesian product like an odometer, the last slot rolls over first.
//   - DIAGONAL moves every slot in lock-step until each of them has wrapped around at least once.
//   - RANDOM moves a random subset of the slots until each of them has wrapped around at least once.
package combinator

import (
	"strings"

	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/port/option"

	"go.llib.dev/seqgen/pkg/randkit"
	"go.llib.dev/seqgen/pkg/seqkit"
)

const ErrUnknownStrategy errorkit.Error = "unknown combinator strategy"

type Strategy string

const (
	PRODUCT  Strategy = "PRODUCT"
	DIAGONAL Strategy = "DIAGONAL"
	RANDOM   Strategy = "RANDOM"
)

func Strategies() []Strategy {
	return []Strategy{PRODUCT, DIAGONAL, RANDOM}
}

// ParseStrategy looks up a strategy by its case-insensitive name.
func ParseStrategy(name string) (Strategy, error) {
	s := Strategy(strings.ToUpper(strings.TrimSpace(name)))
	switch s {
	case PRODUCT, DIAGONAL, RANDOM:
		return s, nil
	default:
		return "", ErrUnknownStrategy.F("%q", name)
	}
}

func (s Strategy) String() string { return string(s) }

type Option interface {
	option.Option[Config]
}

type Config struct {
	// Source is used by the RANDOM strategy.
	// When it is nil, the combinator gets a private, freshly seeded source.
	Source randkit.Source
}

func WithSource(src randkit.Source) Option {
	return option.Func[Config](func(c *Config) { c.Source = src })
}

// Combinator is an iterator of tuples.
// It is a seqkit.Iterator[[]T] where every Value is a new slice,
// ordered like the sub-iterators.
type Combinator[T any] struct {
	strategy  Strategy
	iterators []seqkit.Iterator[T]
	state     state
	hasValue  bool
}

// state is the strategy specific bookkeeping of a Combinator.
type state interface{ isState() }

type productState struct{}

// wrapState tracks which slots have run out at least once.
type wrapState struct {
	src     randkit.Source
	wrapped []bool
	left    int
}

type (
	diagonalState struct{ wrapState }
	randomState   struct{ wrapState }
)

func (*productState) isState()  {}
func (*diagonalState) isState() {}
func (*randomState) isState()   {}

// New makes a combinator over the given slots and initialises it.
// A combinator without slots is exhausted right away.
func New[T any](strategy Strategy, iterators []seqkit.Iterator[T], opts ...Option) (*Combinator[T], error) {
	if err := seqkit.CheckNotNil(iterators...); err != nil {
		return nil, err
	}
	c := option.ToConfig[Config](opts)
	var st state
	switch strategy {
	case PRODUCT:
		st = &productState{}
	case DIAGONAL:
		st = &diagonalState{}
	case RANDOM:
		src := c.Source
		if src == nil {
			src = randkit.Fresh()
		}
		st = &randomState{wrapState{src: src}}
	default:
		return nil, ErrUnknownStrategy.F("%q", strategy)
	}
	comb := &Combinator[T]{
		strategy:  strategy,
		iterators: append([]seqkit.Iterator[T](nil), iterators...),
		state:     st,
	}
	comb.Init()
	return comb, nil
}

func (c *Combinator[T]) Strategy() Strategy { return c.strategy }

// Len returns the number of slots.
func (c *Combinator[T]) Len() int { return len(c.iterators) }

func (c *Combinator[T]) Init() {
	c.hasValue = 0 < len(c.iterators)
	for _, it := range c.iterators {
		it.Init()
		if !it.HasValue() {
			c.hasValue = false
		}
	}
	switch st := c.state.(type) {
	case *productState:
	case *diagonalState:
		st.reset(len(c.iterators))
	case *randomState:
		st.reset(len(c.iterators))
	}
}

func (c *Combinator[T]) HasValue() bool { return c.hasValue }

// Value returns the current tuple.
func (c *Combinator[T]) Value() []T {
	if !c.hasValue {
		seqkit.Exhausted(c, "Value")
	}
	tuple := make([]T, len(c.iterators))
	for i, it := range c.iterators {
		tuple[i] = it.Value()
	}
	return tuple
}

// ValueAt returns the current value of slot i.
func (c *Combinator[T]) ValueAt(i int) T {
	if !c.hasValue {
		seqkit.Exhausted(c, "ValueAt")
	}
	return c.iterators[i].Value()
}

func (c *Combinator[T]) Next() {
	if !c.hasValue {
		seqkit.Exhausted(c, "Next")
	}
	switch st := c.state.(type) {
	case *productState:
		c.hasValue = c.nextProduct()
	case *diagonalState:
		c.hasValue = c.nextWrapping(&st.wrapState, c.allSlots)
	case *randomState:
		c.hasValue = c.nextWrapping(&st.wrapState, st.randomSlots)
	}
}

// nextProduct scans from the last slot leftwards.
// The first slot that still has a value after its step ends the scan,
// the ones that ran out are restarted on the way.
func (c *Combinator[T]) nextProduct() bool {
	for j := len(c.iterators) - 1; 0 <= j; j-- {
		it := c.iterators[j]
		it.Next()
		if it.HasValue() {
			return true
		}
		if j == 0 {
			return false
		}
		it.Init()
		if !it.HasValue() {
			return false
		}
	}
	return false
}

func (c *Combinator[T]) allSlots() []int {
	slots := make([]int, len(c.iterators))
	for i := range slots {
		slots[i] = i
	}
	return slots
}

func (c *Combinator[T]) nextWrapping(st *wrapState, slots func() []int) bool {
	for _, k := range slots() {
		it := c.iterators[k]
		it.Next()
		if it.HasValue() {
			continue
		}
		if !st.wrapped[k] {
			st.wrapped[k] = true
			st.left--
		}
		it.Init()
		if !it.HasValue() {
			return false
		}
	}
	return 0 < st.left
}

func (st *wrapState) reset(n int) {
	st.wrapped = make([]bool, n)
	st.left = n
}

// randomSlots picks one slot that has not wrapped yet, so every step gets closer to the end,
// and then adds each other slot with a chance of one half.
func (st *wrapState) randomSlots() []int {
	var pending []int
	for k, w := range st.wrapped {
		if !w {
			pending = append(pending, k)
		}
	}
	must := pending[st.src.IntN(len(pending))]
	slots := make([]int, 0, len(st.wrapped))
	for k := range st.wrapped {
		if k == must || st.src.IntN(2) == 1 {
			slots = append(slots, k)
		}
	}
	return slots
}

// Sized returns the bounded view of the combinator.
// It fails with seqkit.ErrNotBounded when a slot has no size,
// or when the strategy has no predictable length.
func (c *Combinator[T]) Sized() (seqkit.Bounded[[]T], error) {
	bs, err := seqkit.AllBounded(c.iterators)
	if err != nil {
		return nil, err
	}
	var size func() int
	switch c.state.(type) {
	case *productState:
		size = func() int { return productSize(bs) }
	case *diagonalState:
		size = func() int { return diagonalSize(bs) }
	default:
		return nil, seqkit.ErrNotBounded.F("%s combinator has no predictable length", c.strategy)
	}
	return &sized[T]{Combinator: c, size: size}, nil
}

type sized[T any] struct {
	*Combinator[T]
	size func() int
}

func (s *sized[T]) Size() int { return s.size() }

func productSize[T any](bs []seqkit.Bounded[T]) int {
	if len(bs) == 0 {
		return 0
	}
	n := 1
	for _, b := range bs {
		n *= b.Size()
	}
	return n
}

func diagonalSize[T any](bs []seqkit.Bounded[T]) int {
	var n int
	for _, b := range bs {
		s := b.Size()
		if s == 0 {
			return 0
		}
		n = max(n, s)
	}
	return n
}
