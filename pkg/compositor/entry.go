package compositor

import (
	"go.llib.dev/seqgen/pkg/seqkit"
)

// Entry is the bookkeeping a compositor keeps about one active sub-iterator.
//
// The point is the position, derived from a percentage of the sub-iterator size,
// where the compositor fires its composition event for the entry,
// for example starting the next sub-iterator.
type Entry[T any] struct {
	it    seqkit.Bounded[T]
	index int
	point int
	count int
	done  bool
}

// NewEntry makes an Entry for a bounded sub-iterator.
// The percentage must be within [0,100].
func NewEntry[T any](it seqkit.Bounded[T], percentage int) (*Entry[T], error) {
	if it == nil {
		return nil, seqkit.ErrNilIterator
	}
	if percentage < 0 || 100 < percentage {
		return nil, ErrInvalidPercentage.F("%d", percentage)
	}
	count := it.Size()
	return &Entry[T]{
		it:    it,
		point: percentage * count / 100,
		count: count,
	}, nil
}

// Index is the number of values drawn from the sub-iterator so far.
func (e *Entry[T]) Index() int { return e.index }

func (e *Entry[T]) Point() int { return e.point }

// Count is the size of the sub-iterator, taken when the entry was made.
func (e *Entry[T]) Count() int { return e.count }

// Done reports whether the composition event has already fired.
func (e *Entry[T]) Done() bool { return e.done }

func (e *Entry[T]) Iterator() seqkit.Bounded[T] { return e.it }

func (e *Entry[T]) AtPoint() bool { return e.index == e.point }

// Advance records that one value was drawn.
// Drawing more values than the size taken on NewEntry panics with ErrEntryOverrun.
func (e *Entry[T]) Advance() {
	if e.index == e.count {
		panic(ErrEntryOverrun.F("%d values drawn from a sub-iterator of size %d", e.index+1, e.count))
	}
	e.index++
}

func (e *Entry[T]) MarkDone() { e.done = true }
