//Package idl provides Go versions of the IDL time built-ins JULDAY, CALDAT and
//MAKE_TIME. All functions are vectorized over Array arguments and are safe for
//concurrent use, they keep no state.
package idl

import (
	"fmt"
	"math"
	"strings"

	"github.com/SebastiaanKlippert/go-idl/jd"
)

//Mode selects the calendar used on both sides of a conversion.
//An encode/decode pair only round trips when both use the same Mode.
type Mode int

const (
	//Hybrid uses the Julian calendar up to 1582-10-04 and the Gregorian
	//calendar from 1582-10-15 on. The days in between do not exist.
	Hybrid Mode = iota
	//ProlepticGregorian extends the Gregorian calendar backwards
	ProlepticGregorian
)

func (m Mode) String() string {
	switch m {
	case Hybrid:
		return "hybrid"
	case ProlepticGregorian:
		return "proleptic"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

//ParseMode parses "hybrid" or "proleptic" (case insensitive)
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "hybrid", "julian_gregorian_hybrid":
		return Hybrid, nil
	case "proleptic", "proleptic_gregorian", "gregorian":
		return ProlepticGregorian, nil
	}
	return Hybrid, fmt.Errorf("Unknown calendar mode %q", s)
}

const (
	MinYear = -4801   //Smallest year accepted by Encode
	MaxYear = 5000000 //Largest year accepted by Encode

	machEps = 0x1p-52 //float64 machine epsilon
)

//Encode returns the Julian Day Numbers of calendar dates, the IDL JULDAY with
//three arguments. The values are whole numbers, a day number starts at noon.
//
//Arguments are scalars or arrays of any shape. When arrays are mixed the
//smallest array decides the result: its element count and shape are used and
//longer arrays are truncated. The result is a scalar if all arguments are.
//
//Years use the civil convention, -1 is 1 BCE and there is no year zero.
//A *RangeError is returned for year 0 or a year outside [MinYear, MaxYear].
func Encode(year, month, day Array, mode Mode) (Array, error) {
	return encode(mode, false, year, month, day)
}

//EncodeTime is Encode with a time of day, the IDL JULDAY with six arguments.
//The result is a fractional Julian day. Hour and minute are truncated to
//integers, pass Scalar(0) for components that are not known.
func EncodeTime(year, month, day, hour, minute, second Array, mode Mode) (Array, error) {
	return encode(mode, true, year, month, day, hour, minute, second)
}

//JulDay is Encode for a single date
func JulDay(year, month, day int, mode Mode) (int, error) {
	res, err := Encode(Scalar(float64(year)), Scalar(float64(month)), Scalar(float64(day)), mode)
	if err != nil {
		return 0, err
	}
	return int(res.At(0)), nil
}

//JulDayTime is EncodeTime for a single date and time
func JulDayTime(year, month, day, hour, minute int, second float64, mode Mode) (float64, error) {
	res, err := EncodeTime(Scalar(float64(year)), Scalar(float64(month)), Scalar(float64(day)),
		Scalar(float64(hour)), Scalar(float64(minute)), Scalar(second), mode)
	if err != nil {
		return 0, err
	}
	return res.At(0), nil
}

func encode(mode Mode, withTime bool, args ...Array) (Array, error) {
	b, err := newBroadcast(args...)
	if err != nil {
		return Array{}, err
	}

	years := b.column(0)
	for i := range years {
		years[i] = math.Trunc(years[i])
	}
	if err := checkRange("julday", "year", years, MinYear, MaxYear); err != nil {
		return Array{}, err
	}
	for _, y := range years {
		if y == 0 {
			return Array{}, &RangeError{Op: "julday", Field: "year", Value: y, Msg: "there is no year zero in the civil calendar"}
		}
	}

	proleptic := mode == ProlepticGregorian
	out := make([]float64, b.n)
	for i := range out {
		jul := float64(jd.YMD2J(int(years[i]), int(b.value(1, i)), int(b.value(2, i)), proleptic))
		if !withTime {
			out[i] = jul
			continue
		}
		hour := math.Trunc(b.value(3, i))
		minute := math.Trunc(b.value(4, i))
		second := b.value(5, i)
		//a small offset proportional to the day number so CALDAT recovers
		//the same hour, minute and second after rounding
		eps := math.Max(machEps*math.Abs(jul), machEps)
		out[i] = jul + ((hour/24 - 0.5) + minute/1440 + second/86400 + eps)
	}
	return b.result(out), nil
}
