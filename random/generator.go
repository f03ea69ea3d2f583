// Package random draws the numbers of the IDL RANDOMU function from a 32-bit
// Mersenne Twister whose state travels in the 628 word seed array IDL uses.
package random

import (
	"fmt"
	"math"
)

// SeedLen is the number of words in an IDL seed array.
// Word 1 holds the position in the key, words 2 to 625 the key itself.
const SeedLen = stateSize + 4

var (
	ErrSeed     = fmt.Errorf("Invalid seed")                       //Returned for a seed array of the IDL length with a bad position
	ErrBinomial = fmt.Errorf("Must input [n, p] to binomial")      //Returned when the binomial parameters are not exactly n and p
	ErrParam    = fmt.Errorf("Distribution parameter out of range") //Returned for p outside [0, 1], negative n or lambda
)

// Generator is a Mersenne Twister. The zero value is not seeded, use one of
// the constructors. A Generator is not safe for concurrent use.
type Generator struct {
	mt mt19937
}

// New returns a Generator seeded with init_genrand(seed).
func New(seed uint32) *Generator {
	g := new(Generator)
	g.mt.seed(seed)
	return g
}

// NewFromArray returns a Generator seeded with init_by_array(key).
func NewFromArray(key []uint32) *Generator {
	g := new(Generator)
	if len(key) == 0 {
		g.mt.seed(defaultSeed)
		return g
	}
	g.mt.seedArray(key)
	return g
}

// NewFromSeed interprets a seed the way RANDOMU does: a full SeedLen array
// restores a saved state, anything else seeds with its first word.
// An empty seed uses the reference seed 5489.
func NewFromSeed(seed []uint32) (*Generator, error) {
	g := new(Generator)
	switch len(seed) {
	case 0:
		g.mt.seed(defaultSeed)
	case SeedLen:
		if err := g.SetState(seed); err != nil {
			return nil, err
		}
	default:
		g.mt.seed(seed[0])
	}
	return g, nil
}

// State returns the state as an IDL seed array.
func (g *Generator) State() []uint32 {
	s := make([]uint32, SeedLen)
	s[1] = uint32(g.mt.pos)
	copy(s[2:], g.mt.key[:])
	return s
}

// SetState restores a state returned by State.
func (g *Generator) SetState(seed []uint32) error {
	if len(seed) != SeedLen {
		return fmt.Errorf("%w: want %d words, have %d", ErrSeed, SeedLen, len(seed))
	}
	if seed[1] > stateSize {
		return fmt.Errorf("%w: position %d", ErrSeed, seed[1])
	}
	copy(g.mt.key[:], seed[2:2+stateSize])
	g.mt.pos = int(seed[1])
	return nil
}

// Uint32 returns the next raw output.
func (g *Generator) Uint32() uint32 {
	return g.mt.uint32()
}

// Float64 returns a uniform value in [0, 1) with 53 bits of resolution.
func (g *Generator) Float64() float64 {
	a := g.mt.uint32() >> 5
	b := g.mt.uint32() >> 6
	return (float64(a)*67108864 + float64(b)) / 9007199254740992
}

// Float32 returns a uniform value in [0, 1) with 24 bits of resolution.
func (g *Generator) Float32() float32 {
	return float32(g.mt.uint32()>>8) * (1.0 / 16777216.0)
}

// Binomial returns the number of successes in n trials of probability p.
// Small means are drawn by inversion, larger ones trial by trial.
func (g *Generator) Binomial(n int, p float64) (int, error) {
	if n < 0 || !(p >= 0 && p <= 1) {
		return 0, fmt.Errorf("%w: n=%d p=%v", ErrParam, n, p)
	}
	if n == 0 || p == 0 {
		return 0, nil
	}
	if p == 1 {
		return n, nil
	}
	q := math.Min(p, 1-p)
	var k int
	if float64(n)*q < 30 {
		k = g.binomialInversion(n, q)
	} else {
		for i := 0; i < n; i++ {
			if g.Float64() < q {
				k++
			}
		}
	}
	if q != p {
		k = n - k
	}
	return k, nil
}

func (g *Generator) binomialInversion(n int, p float64) int {
	q := 1 - p
	qn := math.Exp(float64(n) * math.Log(q))
	np := float64(n) * p
	bound := int(math.Min(float64(n), np+10*math.Sqrt(np*q+1)))

	for {
		x := 0
		px := qn
		u := g.Float64()
		for u > px {
			x++
			if x > bound {
				break
			}
			u -= px
			px = ((float64(n-x+1) * p) / (float64(x) * q)) * px
		}
		if x <= bound {
			return x
		}
	}
}

// Poisson returns a Poisson distributed count with mean lambda.
// Means below 10 multiply uniforms, larger ones use the PTRS rejection
// method of Hörmann.
func (g *Generator) Poisson(lambda float64) (int, error) {
	if !(lambda >= 0) || math.IsInf(lambda, 1) {
		return 0, fmt.Errorf("%w: lambda=%v", ErrParam, lambda)
	}
	if lambda == 0 {
		return 0, nil
	}
	if lambda < 10 {
		limit := math.Exp(-lambda)
		k := 0
		for prod := g.Float64(); prod > limit; prod *= g.Float64() {
			k++
		}
		return k, nil
	}
	return g.poissonPTRS(lambda), nil
}

func (g *Generator) poissonPTRS(lambda float64) int {
	slam := math.Sqrt(lambda)
	loglam := math.Log(lambda)
	b := 0.931 + 2.53*slam
	a := -0.059 + 0.02483*b
	invalpha := 1.1239 + 1.1328/(b-3.4)
	vr := 0.9277 - 3.6224/(b-2)

	for {
		u := g.Float64() - 0.5
		v := g.Float64()
		us := 0.5 - math.Abs(u)
		k := math.Floor((2*a/us+b)*u + lambda + 0.43)
		if us >= 0.07 && v <= vr {
			return int(k)
		}
		if k < 0 || (us < 0.013 && v > us) {
			continue
		}
		lg, _ := math.Lgamma(k + 1)
		if math.Log(v)+math.Log(invalpha)-math.Log(a/(us*us)+b) <= -lambda+k*loglam-lg {
			return int(k)
		}
	}
}
