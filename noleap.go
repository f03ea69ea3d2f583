package idl

import (
	"github.com/SebastiaanKlippert/go-idl/jd"
)

//EncodeNoLeap returns Julian day numbers on a calendar where every year has
//365 days, as used by some climate datasets. The month and day are placed in
//the non-leap year 2001 and 365 days are added per year from there.
//February 29 does not exist on this calendar and returns a *RangeError, as do
//months outside 1..12 and days outside 1..31.
//The argument order follows IDL: month, day, year.
func EncodeNoLeap(month, day, year Array) (Array, error) {
	b, err := newBroadcast(month, day, year)
	if err != nil {
		return Array{}, err
	}
	months, days, years := b.column(0), b.column(1), b.column(2)
	for i := range months {
		if int(months[i]) == 2 && int(days[i]) == 29 {
			return Array{}, &RangeError{Op: "julday_no_leap", Field: "day", Value: days[i], Msg: "February 29 not permitted"}
		}
	}
	if err := checkRange("julday_no_leap", "month", months, 1, 12); err != nil {
		return Array{}, err
	}
	if err := checkRange("julday_no_leap", "day", days, 1, 31); err != nil {
		return Array{}, err
	}

	out := make([]float64, b.n)
	for i := range out {
		out[i] = float64(jd.NoLeapYMD2J(int(years[i]), int(months[i]), int(days[i])))
	}
	return b.result(out), nil
}

//DecodeNoLeap is the inverse of EncodeNoLeap. The time of day is recovered
//from the fraction the same way as Decode does.
func DecodeNoLeap(julian Array) (*Calendar, error) {
	return decode("caldat_no_leap", julian, jd.NoLeapJ2YMD)
}
