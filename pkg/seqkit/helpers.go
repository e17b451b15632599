package seqkit

import "iter"

// Repeat returns an unbounded iterator that produces v forever.
// Use Limit to bound it.
func Repeat[T any](v T) *RepeatIter[T] {
	return &RepeatIter[T]{V: v}
}

type RepeatIter[T any] struct{ V T }

func (i *RepeatIter[T]) Init() {}

func (i *RepeatIter[T]) HasValue() bool { return true }

func (i *RepeatIter[T]) Value() T { return i.V }

func (i *RepeatIter[T]) Next() {}

// Limit cuts the traversal of an iterator after n values.
// The result is not Bounded, since the length of the source is unknown.
func Limit[T any](it Iterator[T], n int) *LimitIter[T] {
	l := &LimitIter[T]{Source: it, N: n}
	l.Init()
	return l
}

type LimitIter[T any] struct {
	Source Iterator[T]
	N      int

	taken int
}

func (i *LimitIter[T]) Init() {
	i.taken = 0
	i.Source.Init()
}

func (i *LimitIter[T]) HasValue() bool {
	return i.taken < i.N && i.Source.HasValue()
}

func (i *LimitIter[T]) Value() T {
	if !i.HasValue() {
		Exhausted(i, "Value")
	}
	return i.Source.Value()
}

func (i *LimitIter[T]) Next() {
	if !i.HasValue() {
		Exhausted(i, "Next")
	}
	i.taken++
	if i.taken < i.N {
		i.Source.Next()
	}
}

// Map transforms every value of an iterator.
// When the source is Bounded, the result is Bounded as well.
func Map[To, From any](it Iterator[From], transform func(From) To) Iterator[To] {
	m := &MapIter[To, From]{Source: it, Transform: transform}
	if b, ok := it.(Bounded[From]); ok {
		return &boundedMapIter[To, From]{MapIter: m, size: b.Size}
	}
	return m
}

type MapIter[To, From any] struct {
	Source    Iterator[From]
	Transform func(From) To
}

func (i *MapIter[To, From]) Init() { i.Source.Init() }

func (i *MapIter[To, From]) HasValue() bool { return i.Source.HasValue() }

func (i *MapIter[To, From]) Value() To { return i.Transform(i.Source.Value()) }

func (i *MapIter[To, From]) Next() { i.Source.Next() }

type boundedMapIter[To, From any] struct {
	*MapIter[To, From]
	size func() int
}

func (i *boundedMapIter[To, From]) Size() int { return i.size() }

// Collect restarts the iterator and gathers every value of one full traversal.
// It never returns for unbounded iterators.
func Collect[T any](it Iterator[T]) []T {
	var vs []T
	for it.Init(); it.HasValue(); it.Next() {
		vs = append(vs, it.Value())
	}
	return vs
}

// Count restarts the iterator and counts the values of one full traversal, without reading them.
func Count[T any](it Iterator[T]) int {
	var n int
	for it.Init(); it.HasValue(); it.Next() {
		n++
	}
	return n
}

// Seq restarts the iterator and exposes one traversal as an iter.Seq.
func Seq[T any](it Iterator[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for it.Init(); it.HasValue(); it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}
