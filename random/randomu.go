package random

import (
	"fmt"
	"time"

	idl "github.com/SebastiaanKlippert/go-idl"
)

// Options select the distribution of RandomU. Without Binomial or Poisson
// the values are uniform in [0, 1).
type Options struct {
	Binomial []float64 // [n, p]
	Poisson  *float64  // mean
	Double   bool      // uniform values with 53 instead of 24 bits
}

// RandomU returns random values with the given dimensions, a scalar when
// there are none, plus the updated seed to pass to the next call.
// A nil seed is seeded from the clock.
func RandomU(seed []uint32, opts Options, dims ...int) (idl.Array, []uint32, error) {
	if seed == nil {
		seed = []uint32{uint32(time.Now().UnixNano())}
	}
	g, err := NewFromSeed(seed)
	if err != nil {
		return idl.Array{}, nil, err
	}

	n := 1
	for _, d := range dims {
		if d < 1 {
			return idl.Array{}, nil, fmt.Errorf("%w: dimension %d", idl.ErrShape, d)
		}
		n *= d
	}

	draw, err := g.sampler(opts)
	if err != nil {
		return idl.Array{}, nil, err
	}
	data := make([]float64, n)
	for i := range data {
		if data[i], err = draw(); err != nil {
			return idl.Array{}, nil, err
		}
	}
	out, err := idl.NewArray(data, dims...)
	if err != nil {
		return idl.Array{}, nil, err
	}
	return out, g.State(), nil
}

func (g *Generator) sampler(opts Options) (func() (float64, error), error) {
	switch {
	case opts.Binomial != nil:
		if len(opts.Binomial) != 2 {
			return nil, ErrBinomial
		}
		n, p := int(opts.Binomial[0]), opts.Binomial[1]
		if n < 0 || !(p >= 0 && p <= 1) {
			return nil, fmt.Errorf("%w: n=%d p=%v", ErrParam, n, p)
		}
		return func() (float64, error) {
			k, err := g.Binomial(n, p)
			return float64(k), err
		}, nil
	case opts.Poisson != nil:
		lambda := *opts.Poisson
		return func() (float64, error) {
			k, err := g.Poisson(lambda)
			return float64(k), err
		}, nil
	case opts.Double:
		return func() (float64, error) { return g.Float64(), nil }, nil
	default:
		return func() (float64, error) { return float64(g.Float32()), nil }, nil
	}
}
