package idl

import (
	"fmt"
	"math"
)

//Array is a numeric argument or result. It holds the values flattened in
//row-major order plus the shape they had. A nil shape is a scalar.
type Array struct {
	data  []float64
	shape []int
}

//Scalar returns a scalar Array
func Scalar(v float64) Array {
	return Array{data: []float64{v}}
}

//Vector returns a one dimensional Array
func Vector(v ...float64) Array {
	data := make([]float64, len(v))
	copy(data, v)
	return Array{data: data, shape: []int{len(v)}}
}

//IntVector returns a one dimensional Array from ints
func IntVector(v ...int) Array {
	data := make([]float64, len(v))
	for i := range v {
		data[i] = float64(v[i])
	}
	return Array{data: data, shape: []int{len(v)}}
}

//NewArray returns an Array with the given shape, the product of the shape
//must equal the number of values
func NewArray(data []float64, shape ...int) (Array, error) {
	if len(shape) == 0 {
		if len(data) != 1 {
			return Array{}, fmt.Errorf("%w: scalar needs exactly one value, have %d", ErrShape, len(data))
		}
		return Scalar(data[0]), nil
	}
	n := 1
	for _, s := range shape {
		if s < 0 {
			return Array{}, fmt.Errorf("%w: negative dimension %d", ErrShape, s)
		}
		n *= s
	}
	if n != len(data) {
		return Array{}, fmt.Errorf("%w: shape %v needs %d values, have %d", ErrShape, shape, n, len(data))
	}
	a := Array{data: make([]float64, len(data)), shape: append([]int(nil), shape...)}
	copy(a.data, data)
	return a, nil
}

//Reshape returns the same values with a new shape
func (a Array) Reshape(shape ...int) (Array, error) {
	return NewArray(a.data, shape...)
}

//IsScalar reports if the Array has no dimensions
func (a Array) IsScalar() bool {
	return a.shape == nil
}

//Len returns the number of values
func (a Array) Len() int {
	return len(a.data)
}

//Shape returns a copy of the dimensions, nil for a scalar
func (a Array) Shape() []int {
	if a.shape == nil {
		return nil
	}
	return append([]int(nil), a.shape...)
}

//At returns the value at flat index i
func (a Array) At(i int) float64 {
	return a.data[i]
}

//Float64s returns a copy of the flattened values
func (a Array) Float64s() []float64 {
	out := make([]float64, len(a.data))
	copy(out, a.data)
	return out
}

//Ints returns the flattened values truncated to ints
func (a Array) Ints() []int {
	out := make([]int, len(a.data))
	for i, v := range a.data {
		out[i] = int(v)
	}
	return out
}

//Min returns the smallest value, NaN for an empty Array
func (a Array) Min() float64 {
	if len(a.data) == 0 {
		return math.NaN()
	}
	m := a.data[0]
	for _, v := range a.data[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

//Max returns the largest value, NaN for an empty Array
func (a Array) Max() float64 {
	if len(a.data) == 0 {
		return math.NaN()
	}
	m := a.data[0]
	for _, v := range a.data[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

//broadcast applies the legacy IDL dimension rule to a set of arguments:
//the non-scalar argument with the fewest elements decides the element count
//and the result shape (the first one wins a tie), longer arrays are
//truncated to that count and scalars are repeated. This truncates instead of
//rejecting mismatched lengths, which is what IDL code relies on.
//If every argument is a scalar the result shape is nil. A zero Array, which
//is neither a scalar value nor an array, is an ErrShape.
type broadcast struct {
	n     int
	shape []int
	args  []Array
}

func newBroadcast(args ...Array) (broadcast, error) {
	b := broadcast{n: 1, args: args}
	found := false
	for i, a := range args {
		if a.IsScalar() {
			if len(a.data) == 0 {
				return broadcast{}, fmt.Errorf("%w: argument %d holds no value", ErrShape, i+1)
			}
			continue
		}
		if !found || a.Len() < b.n {
			b.n = a.Len()
			b.shape = a.Shape()
			found = true
		}
	}
	return b, nil
}

//value returns argument arg at element i
func (b broadcast) value(arg, i int) float64 {
	a := b.args[arg]
	if a.IsScalar() {
		return a.data[0]
	}
	return a.data[i]
}

//column returns argument arg expanded to the broadcast length
func (b broadcast) column(arg int) []float64 {
	out := make([]float64, b.n)
	for i := range out {
		out[i] = b.value(arg, i)
	}
	return out
}

//result wraps values computed per element into the broadcast shape
func (b broadcast) result(data []float64) Array {
	return Array{data: data, shape: b.shape}
}
