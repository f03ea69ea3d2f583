package idl

import (
	"fmt"
)

// This file contains helper casting functions for loosely typed values, for example values coming
// from a script or decoded JSON, into Arrays.

// ToArray converts numbers, slices of numbers and nested slices into an Array.
// Nested slices must be rectangular, their shape becomes the Array shape.
func ToArray(in interface{}) (Array, error) {
	if a, ok := in.(Array); ok {
		return a, nil
	}
	if v, ok := toFloat64(in); ok {
		return Scalar(v), nil
	}
	var data []float64
	shape, err := flatten(in, 0, &data)
	if err != nil {
		return Array{}, err
	}
	return Array{data: data, shape: shape}, nil
}

// MustArray is ToArray that panics on error
func MustArray(in interface{}) Array {
	a, err := ToArray(in)
	if err != nil {
		panic(err)
	}
	return a
}

// ToFloat64 always returns a float64, 0 for values that are not numbers
func ToFloat64(in interface{}) float64 {
	if f, ok := toFloat64(in); ok {
		return f
	}
	return 0.0
}

// ToInt always returns an int, 0 for values that are not numbers
func ToInt(in interface{}) int {
	if f, ok := toFloat64(in); ok {
		return int(f)
	}
	return 0
}

func toFloat64(in interface{}) (float64, bool) {
	switch v := in.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}

// flatten appends the values of in to data and returns the shape of in
func flatten(in interface{}, depth int, data *[]float64) ([]int, error) {
	switch v := in.(type) {
	case []float64:
		*data = append(*data, v...)
		return []int{len(v)}, nil
	case []int:
		for _, x := range v {
			*data = append(*data, float64(x))
		}
		return []int{len(v)}, nil
	case []int32:
		for _, x := range v {
			*data = append(*data, float64(x))
		}
		return []int{len(v)}, nil
	case []int64:
		for _, x := range v {
			*data = append(*data, float64(x))
		}
		return []int{len(v)}, nil
	case []float32:
		for _, x := range v {
			*data = append(*data, float64(x))
		}
		return []int{len(v)}, nil
	case []interface{}:
		var inner []int
		for i, x := range v {
			var shape []int
			if f, ok := toFloat64(x); ok {
				*data = append(*data, f)
			} else {
				var err error
				if shape, err = flatten(x, depth+1, data); err != nil {
					return nil, err
				}
			}
			if i == 0 {
				inner = shape
			} else if !sameShape(inner, shape) {
				return nil, fmt.Errorf("%w: ragged nesting at depth %d", ErrShape, depth)
			}
		}
		return append([]int{len(v)}, inner...), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrArgType, in)
}

func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
