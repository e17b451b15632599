// Package seqkit defines the restartable pull iterator that every enumeration
// strategy of seqgen is built on, together with its leaf implementations.
//
// # Summary
//
// An Iterator is a cursor over a lazy, possibly infinite sequence of values.
// Unlike iter.Seq, the cursor is owned by the caller:
// it can be restarted with Init any number of times,
// and composite iterators drive their sub-iterators step by step.
//
//	for it.Init(); it.HasValue(); it.Next() {
//		v := it.Value()
//		// ...
//	}
//
// A Bounded iterator also knows its size upfront.
// Strategies that need relative weights or fixed positions require this capability,
// and they check for it once, when they are constructed.
package seqkit

import (
	"go.llib.dev/frameless/pkg/errorkit"
)

const (
	// ErrExhausted is the panic cause when Value or Next is called on an exhausted iterator.
	ErrExhausted errorkit.Error = "iterator is exhausted"
	// ErrNotBounded is returned when a composition needs the size of an iterator that does not report one.
	ErrNotBounded errorkit.Error = "iterator is not bounded"
	// ErrNilIterator is returned when a composition receives a nil iterator.
	ErrNilIterator errorkit.Error = "nil iterator"
)

// Iterator is a restartable pull based cursor over a sequence of T values.
type Iterator[T any] interface {
	// Init resets the cursor to the first element.
	// Init always succeeds; on an empty source the iterator is immediately exhausted.
	Init()
	// HasValue reports whether the iterator is positioned on a value.
	HasValue() bool
	// Value returns the current value.
	// Calling Value on an exhausted iterator is a contract violation and panics with ErrExhausted.
	Value() T
	// Next moves the cursor to the next value or exhausts the iterator.
	// Calling Next on an exhausted iterator is a contract violation and panics with ErrExhausted.
	Next()
}

// Bounded is an Iterator that knows the number of values
// it produces during one full traversal after Init.
// Size must stay the same for the whole lifetime of the iterator.
type Bounded[T any] interface {
	Iterator[T]
	Size() int
}

// AsBounded returns the Bounded capability of an iterator,
// or an ErrNotBounded error when the iterator can't report its size.
func AsBounded[T any](it Iterator[T]) (Bounded[T], error) {
	if it == nil {
		return nil, ErrNilIterator
	}
	b, ok := it.(Bounded[T])
	if !ok {
		return nil, ErrNotBounded.F("%T has no Size", it)
	}
	return b, nil
}

// IsBounded reports whether the iterator implements Bounded.
func IsBounded[T any](it Iterator[T]) bool {
	_, ok := it.(Bounded[T])
	return ok
}

// AllBounded returns the Bounded view of every iterator,
// or the first capability error.
func AllBounded[T any](its []Iterator[T]) ([]Bounded[T], error) {
	out := make([]Bounded[T], 0, len(its))
	for i, it := range its {
		if it == nil {
			return nil, ErrNilIterator.F("sub-iterator #%d", i)
		}
		b, ok := it.(Bounded[T])
		if !ok {
			return nil, ErrNotBounded.F("sub-iterator #%d (%T) has no Size", i, it)
		}
		out = append(out, b)
	}
	return out, nil
}

// CheckNotNil returns ErrNilIterator if any of the iterators is nil.
func CheckNotNil[T any](its ...Iterator[T]) error {
	for i, it := range its {
		if it == nil {
			return ErrNilIterator.F("sub-iterator #%d", i)
		}
	}
	return nil
}

// Exhausted panics with ErrExhausted.
// Implementations call it when Value or Next is used without a current value.
func Exhausted(it any, method string) {
	panic(ErrExhausted.F("%T.%s called without a current value", it, method))
}
