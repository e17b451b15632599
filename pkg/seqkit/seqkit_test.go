package seqkit_test

import (
	"iter"
	"slices"
	"testing"

	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
	"go.llib.dev/testcase/random"

	"go.llib.dev/seqgen/pkg/seqkit"
	"go.llib.dev/seqgen/pkg/seqkit/seqkitcontract"
)

var deterministic = seqkitcontract.Config{Deterministic: true}

func TestSingle(t *testing.T) {
	seqkitcontract.Bounded[string](func(tb testing.TB) seqkit.Bounded[string] {
		return seqkit.Single(testcase.ToT(&tb).Random.String())
	}, deterministic).Test(t)

	it := seqkit.Single(42)
	assert.Equal(t, []int{42}, seqkit.Collect[int](it))
	assert.Equal(t, 1, it.Size())
}

func TestSlice(t *testing.T) {
	seqkitcontract.Bounded[int](func(tb testing.TB) seqkit.Bounded[int] {
		t := testcase.ToT(&tb)
		return seqkit.FromSlice(random.Slice(t.Random.IntBetween(0, 7), t.Random.Int))
	}, deterministic).Test(t)

	s := testcase.NewSpec(t)

	s.Test("values are produced in the order of the backing slice", func(t *testcase.T) {
		vs := random.Slice(t.Random.IntBetween(1, 7), t.Random.String)
		assert.Equal(t, vs, seqkit.Collect[string](seqkit.Slice(vs...)))
	})

	s.Test("an empty slice is exhausted right after Init", func(t *testcase.T) {
		it := seqkit.Slice[int]()
		it.Init()
		assert.False(t, it.HasValue())
		assert.Equal(t, 0, it.Size())
	})
}

type sortedSet []int

func (s sortedSet) Len() int { return len(s) }

func (s sortedSet) All() iter.Seq[int] { return slices.Values(s) }

func TestFromCollection(t *testing.T) {
	seqkitcontract.Bounded[int](func(tb testing.TB) seqkit.Bounded[int] {
		t := testcase.ToT(&tb)
		set := sortedSet(random.Slice(t.Random.IntBetween(0, 7), t.Random.Int))
		slices.Sort(set)
		return seqkit.FromCollection[int](set)
	}, deterministic).Test(t)

	s := testcase.NewSpec(t)

	s.Test("an abandoned traversal can be stopped and restarted", func(t *testcase.T) {
		set := sortedSet{1, 2, 3}
		it := seqkit.FromCollection[int](set)
		it.Init()
		it.Next()
		it.Stop()
		assert.False(t, it.HasValue())
		assert.Equal(t, []int{1, 2, 3}, seqkit.Collect[int](it))
	})
}

func TestRepeat(t *testing.T) {
	v := random.New(random.CryptoSeed{}).String()
	it := seqkit.Repeat(v)
	assert.False(t, seqkit.IsBounded[string](it))

	it.Init()
	for i := 0; i < 100; i++ {
		assert.True(t, it.HasValue())
		assert.Equal(t, v, it.Value())
		it.Next()
	}
}

func TestLimit(t *testing.T) {
	seqkitcontract.Iterator[int](func(tb testing.TB) seqkit.Iterator[int] {
		t := testcase.ToT(&tb)
		return seqkit.Limit[int](seqkit.Repeat(t.Random.Int()), t.Random.IntBetween(0, 12))
	}, deterministic).Test(t)

	s := testcase.NewSpec(t)

	s.Test("the source is never advanced past the limit", func(t *testcase.T) {
		src := seqkit.Slice(1, 2, 3, 4)
		it := seqkit.Limit[int](src, 2)
		assert.Equal(t, []int{1, 2}, seqkit.Collect[int](it))
		assert.Equal(t, 2, src.Value())
	})

	s.Test("a limit larger than the source ends with the source", func(t *testcase.T) {
		it := seqkit.Limit[int](seqkit.Slice(1, 2), 5)
		assert.Equal(t, []int{1, 2}, seqkit.Collect[int](it))
	})
}

func TestMap(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Test("bounded sources stay bounded", func(t *testcase.T) {
		it := seqkit.Map[string, int](seqkit.Slice(1, 2, 3), func(v int) string {
			return string(rune('a' + v - 1))
		})
		b, err := seqkit.AsBounded(it)
		assert.NoError(t, err)
		assert.Equal(t, 3, b.Size())
		assert.Equal(t, []string{"a", "b", "c"}, seqkit.Collect(it))
	})

	s.Test("unbounded sources stay unbounded", func(t *testcase.T) {
		it := seqkit.Map[int, int](seqkit.Repeat(1), func(v int) int { return v * 2 })
		assert.False(t, seqkit.IsBounded(it))
		it.Init()
		assert.Equal(t, 2, it.Value())
	})
}

func TestAsBounded(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Test("nil iterator", func(t *testcase.T) {
		_, err := seqkit.AsBounded[int](nil)
		assert.ErrorIs(t, err, seqkit.ErrNilIterator)
	})

	s.Test("iterator without size", func(t *testcase.T) {
		_, err := seqkit.AsBounded[int](seqkit.Repeat(1))
		assert.ErrorIs(t, err, seqkit.ErrNotBounded)
	})

	s.Test("bounded iterator", func(t *testcase.T) {
		b, err := seqkit.AsBounded[int](seqkit.Slice(1, 2))
		assert.NoError(t, err)
		assert.Equal(t, 2, b.Size())
	})
}

func TestAllBounded(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Test("every iterator is bounded", func(t *testcase.T) {
		bs, err := seqkit.AllBounded([]seqkit.Iterator[int]{seqkit.Slice(1), seqkit.Single(2)})
		assert.NoError(t, err)
		assert.Equal(t, 2, len(bs))
	})

	s.Test("one of the iterators is unbounded", func(t *testcase.T) {
		_, err := seqkit.AllBounded([]seqkit.Iterator[int]{seqkit.Slice(1), seqkit.Repeat(2)})
		assert.ErrorIs(t, err, seqkit.ErrNotBounded)
	})

	s.Test("one of the iterators is nil", func(t *testcase.T) {
		_, err := seqkit.AllBounded([]seqkit.Iterator[int]{nil})
		assert.ErrorIs(t, err, seqkit.ErrNilIterator)
		assert.ErrorIs(t, seqkit.CheckNotNil[int](seqkit.Slice(1), nil), seqkit.ErrNilIterator)
	})
}

func TestSeq(t *testing.T) {
	var got []int
	for v := range seqkit.Seq[int](seqkit.Slice(1, 2, 3, 4)) {
		if v == 3 {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 2}, got)
}
