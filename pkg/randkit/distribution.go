package randkit

import (
	"go.llib.dev/frameless/pkg/errorkit"
)

const ErrNegativeWeight errorkit.Error = "negative weight"

// Distribution is a weighted choice over candidates identified by their index.
// A candidate is picked with a probability proportional to its weight.
// Zeroing a weight excludes a candidate without resizing the distribution.
type Distribution struct {
	weights []int
	total   int
}

func NewDistribution(weights ...int) (*Distribution, error) {
	d := &Distribution{weights: make([]int, len(weights))}
	for i, w := range weights {
		if w < 0 {
			return nil, ErrNegativeWeight.F("candidate #%d has weight %d", i, w)
		}
		d.weights[i] = w
		d.total += w
	}
	return d, nil
}

// Uniform returns a Distribution where each of the n candidates has weight 1.
func Uniform(n int) *Distribution {
	d := &Distribution{weights: make([]int, n), total: n}
	for i := range d.weights {
		d.weights[i] = 1
	}
	return d
}

func (d *Distribution) Len() int { return len(d.weights) }

func (d *Distribution) Total() int { return d.total }

func (d *Distribution) Weight(i int) int { return d.weights[i] }

// Zero permanently excludes candidate i.
func (d *Distribution) Zero(i int) {
	d.total -= d.weights[i]
	d.weights[i] = 0
}

// Choose picks a candidate index.
// It reports false when every weight is zero.
func (d *Distribution) Choose(src Source) (int, bool) {
	if d.total <= 0 {
		return 0, false
	}
	n := src.IntN(d.total)
	for i, w := range d.weights {
		if n < w {
			return i, true
		}
		n -= w
	}
	// unreachable while total equals the sum of weights
	return 0, false
}
