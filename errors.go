package idl

import (
	"errors"
	"fmt"
)

var (
	ErrShape   = fmt.Errorf("Invalid shape")         //Returned when values do not fit the requested dimensions
	ErrArgType = fmt.Errorf("Unsupported argument")  //Returned by ToArray for values that are not numbers or slices of numbers
	ErrNoDates = fmt.Errorf("No dates")              //Returned when a date list holds no rows
	ErrSyntax  = fmt.Errorf("Invalid date notation") //Returned when a date list row can not be parsed
)

//RangeError is returned when an input component is outside its documented
//bounds. The whole call fails, there are never partial results.
type RangeError struct {
	Op    string  //Operation, e.g. "julday"
	Field string  //Offending component, e.g. "year"
	Value float64 //First offending value
	Min   float64 //Lower bound, inclusive
	Max   float64 //Upper bound, inclusive
	Msg   string  //Optional explanation replacing the bounds in the message
}

func (e *RangeError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s %v: %s", e.Op, e.Field, e.Value, e.Msg)
	}
	return fmt.Sprintf("%s: %s %v out of allowed range [%v, %v]", e.Op, e.Field, e.Value, e.Min, e.Max)
}

//IsRangeError reports if err is, or wraps, a *RangeError
func IsRangeError(err error) bool {
	var re *RangeError
	return errors.As(err, &re)
}

//checkRange returns a RangeError for the first value of vals outside [min, max]
func checkRange(op, field string, vals []float64, min, max float64) error {
	for _, v := range vals {
		if !(v >= min && v <= max) {
			return &RangeError{Op: op, Field: field, Value: v, Min: min, Max: max}
		}
	}
	return nil
}
