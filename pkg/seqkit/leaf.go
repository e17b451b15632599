package seqkit

import "iter"

// Single returns a Bounded iterator that produces v exactly once per traversal.
func Single[T any](v T) *SingleIter[T] {
	i := &SingleIter[T]{V: v}
	i.Init()
	return i
}

type SingleIter[T any] struct {
	V T

	done bool
}

func (i *SingleIter[T]) Init() { i.done = false }

func (i *SingleIter[T]) HasValue() bool { return !i.done }

func (i *SingleIter[T]) Value() T {
	if i.done {
		Exhausted(i, "Value")
	}
	return i.V
}

func (i *SingleIter[T]) Next() {
	if i.done {
		Exhausted(i, "Next")
	}
	i.done = true
}

func (i *SingleIter[T]) Size() int { return 1 }

// Slice returns a Bounded iterator over the given values in their order.
func Slice[T any](vs ...T) *SliceIter[T] {
	return FromSlice(vs)
}

// FromSlice returns a Bounded iterator over the backing slice.
// The slice is not copied, so it must not be modified during traversal.
func FromSlice[T any](vs []T) *SliceIter[T] {
	return &SliceIter[T]{Slice: vs}
}

type SliceIter[T any] struct {
	Slice []T

	index int
}

func (i *SliceIter[T]) Init() { i.index = 0 }

func (i *SliceIter[T]) HasValue() bool { return i.index < len(i.Slice) }

func (i *SliceIter[T]) Value() T {
	if !i.HasValue() {
		Exhausted(i, "Value")
	}
	return i.Slice[i.index]
}

func (i *SliceIter[T]) Next() {
	if !i.HasValue() {
		Exhausted(i, "Next")
	}
	i.index++
}

func (i *SliceIter[T]) Size() int { return len(i.Slice) }

// Collection is a finite container that can be walked from the start as many times as needed.
type Collection[T any] interface {
	Len() int
	All() iter.Seq[T]
}

// FromCollection returns a Bounded iterator over a Collection.
// The size is taken when the iterator is created,
// and the collection must not be mutated while it is iterated.
func FromCollection[T any](c Collection[T]) *CollectionIter[T] {
	i := &CollectionIter[T]{Collection: c, size: c.Len()}
	i.Init()
	return i
}

type CollectionIter[T any] struct {
	Collection Collection[T]

	size  int
	next  func() (T, bool)
	stop  func()
	value T
	ok    bool
}

func (i *CollectionIter[T]) Init() {
	i.Stop()
	i.next, i.stop = iter.Pull(i.Collection.All())
	i.pull()
}

func (i *CollectionIter[T]) pull() {
	i.value, i.ok = i.next()
	if !i.ok {
		i.Stop()
	}
}

// Stop releases the pull iterator of an unfinished traversal.
// The iterator is exhausted afterwards until the next Init.
func (i *CollectionIter[T]) Stop() {
	if i.stop != nil {
		i.stop()
	}
	i.stop, i.ok = nil, false
}

func (i *CollectionIter[T]) HasValue() bool { return i.ok }

func (i *CollectionIter[T]) Value() T {
	if !i.ok {
		Exhausted(i, "Value")
	}
	return i.value
}

func (i *CollectionIter[T]) Next() {
	if !i.ok {
		Exhausted(i, "Next")
	}
	i.pull()
}

func (i *CollectionIter[T]) Size() int { return i.size }
