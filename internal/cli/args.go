package cli

import (
	"strconv"
	"strings"

	idl "github.com/SebastiaanKlippert/go-idl"
)

// parseArray reads "v" as a scalar and "v1,v2,..." as a vector
func parseArray(name, s string) (idl.Array, error) {
	parts := strings.Split(s, ",")
	vals := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return idl.Array{}, argError("%s: %q is not a number", name, p)
		}
		vals[i] = v
	}
	if len(vals) == 1 {
		return idl.Scalar(vals[0]), nil
	}
	return idl.Vector(vals...), nil
}

// parseArrays parses positional arguments in order, missing trailing ones
// become Scalar(0)
func parseArrays(names []string, args []string) ([]idl.Array, error) {
	out := make([]idl.Array, len(names))
	for i, name := range names {
		if i >= len(args) {
			out[i] = idl.Scalar(0)
			continue
		}
		a, err := parseArray(name, args[i])
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}

// flattenArgs turns "1,2" "3" into one vector, or a scalar for a single value
func flattenArgs(name string, args []string) (idl.Array, error) {
	var vals []float64
	for _, a := range args {
		arr, err := parseArray(name, a)
		if err != nil {
			return idl.Array{}, err
		}
		vals = append(vals, arr.Float64s()...)
	}
	if len(vals) == 1 {
		return idl.Scalar(vals[0]), nil
	}
	return idl.Vector(vals...), nil
}
