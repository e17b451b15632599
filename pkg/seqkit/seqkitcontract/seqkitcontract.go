// Package seqkitcontract holds the behavioural contract of seqkit.Iterator implementations.
package seqkitcontract

import (
	"testing"

	"go.llib.dev/frameless/port/contract"
	"go.llib.dev/frameless/port/option"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"

	"go.llib.dev/seqgen/pkg/seqkit"
)

type Option interface {
	option.Option[Config]
}

type Config struct {
	// Deterministic marks a subject that yields the same values in the same order on every traversal.
	// Random strategies leave it false.
	Deterministic bool
}

func (c Config) Configure(t *Config) { *t = c }

// Iterator is the contract of a finite seqkit.Iterator.
func Iterator[T any](mk func(testing.TB) seqkit.Iterator[T], opts ...Option) contract.Contract {
	s := testcase.NewSpec(nil)
	c := option.ToConfig[Config](opts)

	subject := testcase.Let(s, func(t *testcase.T) seqkit.Iterator[T] {
		return mk(t)
	})

	s.Test("a full traversal reaches exhaustion", func(t *testcase.T) {
		it := subject.Get(t)
		it.Init()
		for it.HasValue() {
			it.Next()
		}
		assert.False(t, it.HasValue())
	})

	s.Test("HasValue has no side effect", func(t *testcase.T) {
		it := subject.Get(t)
		it.Init()
		exp := it.HasValue()
		for i := 0; i < 3; i++ {
			assert.Equal(t, exp, it.HasValue())
		}
	})

	s.Test("Value and Next panic with ErrExhausted on an exhausted iterator", func(t *testcase.T) {
		it := subject.Get(t)
		seqkit.Count(it)

		for _, blk := range []func(){func() { it.Value() }, func() { it.Next() }} {
			out := assert.Panic(t, blk)
			err, ok := out.(error)
			assert.True(t, ok, assert.Message("panic value is expected to be an error"))
			assert.ErrorIs(t, err, seqkit.ErrExhausted)
		}
	})

	s.Test("Init restarts the iterator after a full traversal", func(t *testcase.T) {
		it := subject.Get(t)
		seqkit.Count(it)
		it.Init()
		for it.HasValue() {
			it.Value()
			it.Next()
		}
		assert.False(t, it.HasValue())
	})

	if c.Deterministic {
		s.Test("every traversal has the same length", func(t *testcase.T) {
			it := subject.Get(t)
			assert.Equal(t, seqkit.Count(it), seqkit.Count(it))
		})

		s.Test("every traversal yields the same values in the same order", func(t *testcase.T) {
			it := subject.Get(t)
			assert.Equal(t, seqkit.Collect(it), seqkit.Collect(it))
		})

		s.Test("Init in the middle of a traversal restarts it", func(t *testcase.T) {
			it := subject.Get(t)
			exp := seqkit.Collect(it)

			it.Init()
			steps := t.Random.IntBetween(0, len(exp))
			for i := 0; i < steps && it.HasValue(); i++ {
				it.Next()
			}
			assert.Equal(t, exp, seqkit.Collect(it))
		})
	}

	return s.AsSuite("seqkit.Iterator")
}

// Bounded is the contract of a seqkit.Bounded iterator.
// It includes the Iterator contract.
func Bounded[T any](mk func(testing.TB) seqkit.Bounded[T], opts ...Option) contract.Contract {
	s := testcase.NewSpec(nil)

	testcase.RunSuite(s, Iterator[T](func(tb testing.TB) seqkit.Iterator[T] {
		return mk(tb)
	}, opts...))

	subject := testcase.Let(s, func(t *testcase.T) seqkit.Bounded[T] {
		return mk(t)
	})

	s.Test("Size equals the number of values of a full traversal", func(t *testcase.T) {
		it := subject.Get(t)
		assert.Equal(t, it.Size(), seqkit.Count(it))
	})

	s.Test("Size stays the same during traversal", func(t *testcase.T) {
		it := subject.Get(t)
		exp := it.Size()
		for it.Init(); it.HasValue(); it.Next() {
			assert.Equal(t, exp, it.Size())
		}
		assert.Equal(t, exp, it.Size())
	})

	return s.AsSuite("seqkit.Bounded")
}
