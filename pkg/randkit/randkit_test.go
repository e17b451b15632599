package randkit_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"go.llib.dev/testcase/random"

	"go.llib.dev/seqgen/pkg/randkit"
)

var _ randkit.Source = randkit.New(0)
var _ randkit.Source = random.New(random.CryptoSeed{})

func TestNew_sameSeedSameSequence(t *testing.T) {
	a, b := randkit.New(42), randkit.New(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}

func TestFresh_independentSources(t *testing.T) {
	a, b := randkit.Fresh(), randkit.Fresh()
	var diff bool
	for i := 0; i < 100 && !diff; i++ {
		diff = a.Uint64() != b.Uint64()
	}
	require.True(t, diff)
}

func TestShuffle(t *testing.T) {
	src := randkit.New(7)
	for _, n := range []int{0, 1, 2, 10, 50} {
		vs := make([]int, n)
		for i := range vs {
			vs[i] = i
		}
		shuffled := slices.Clone(vs)
		randkit.Shuffle(src, shuffled)

		sorted := slices.Clone(shuffled)
		slices.Sort(sorted)
		require.Equal(t, vs, sorted, "shuffle must keep the multiset")
	}
}

func TestShuffle_changesOrderEventually(t *testing.T) {
	src := randkit.New(1)
	vs := []int{1, 2, 3, 4, 5}
	for i := 0; i < 10; i++ {
		got := slices.Clone(vs)
		randkit.Shuffle(src, got)
		if !slices.Equal(vs, got) {
			return
		}
	}
	t.Fatal("ten shuffles of five elements kept the original order")
}

func TestPercentage(t *testing.T) {
	src := randkit.New(3)
	for i := 0; i < 1000; i++ {
		p := randkit.Percentage(src)
		require.GreaterOrEqual(t, p, 0)
		require.LessOrEqual(t, p, 100)
	}
}

func TestNewDistribution_negativeWeight(t *testing.T) {
	_, err := randkit.NewDistribution(1, -1)
	require.ErrorIs(t, err, randkit.ErrNegativeWeight)
}

func TestDistribution_Choose(t *testing.T) {
	d, err := randkit.NewDistribution(0, 3, 0, 1)
	require.NoError(t, err)
	require.Equal(t, 4, d.Total())
	require.Equal(t, 4, d.Len())

	src := randkit.New(11)
	counts := make([]int, d.Len())
	for i := 0; i < 4000; i++ {
		idx, ok := d.Choose(src)
		require.True(t, ok)
		counts[idx]++
	}
	require.Zero(t, counts[0])
	require.Zero(t, counts[2])
	require.Greater(t, counts[1], counts[3], "heavier candidates are picked more often")
}

func TestDistribution_Zero(t *testing.T) {
	d, err := randkit.NewDistribution(2, 5)
	require.NoError(t, err)

	d.Zero(1)
	require.Equal(t, 0, d.Weight(1))
	require.Equal(t, 2, d.Total())

	src := randkit.New(5)
	for i := 0; i < 100; i++ {
		idx, ok := d.Choose(src)
		require.True(t, ok)
		require.Equal(t, 0, idx)
	}

	d.Zero(0)
	_, ok := d.Choose(src)
	require.False(t, ok)
}

func TestUniform(t *testing.T) {
	d := randkit.Uniform(3)
	require.Equal(t, 3, d.Total())
	for i := 0; i < d.Len(); i++ {
		require.Equal(t, 1, d.Weight(i))
	}

	empty := randkit.Uniform(0)
	_, ok := empty.Choose(randkit.New(0))
	require.False(t, ok)
}
