package idl

import (
	"fmt"
	"math"

	"github.com/SebastiaanKlippert/go-idl/jd"
)

const (
	MinJulian = -31776     //Smallest Julian day accepted by Decode
	MaxJulian = 1827933925 //Largest Julian day accepted by Decode
)

//CivilDate is one calendar date with its time of day.
//Years use the civil convention, -1 is 1 BCE.
type CivilDate struct {
	Year        int
	Month       int
	Day         int
	Hour        int
	Minute      int
	Second      int
	Microsecond int
}

//Seconds returns the seconds including the fraction
func (d CivilDate) Seconds() float64 {
	return float64(d.Second) + float64(d.Microsecond)/1e6
}

func (d CivilDate) String() string {
	return fmt.Sprintf("%d-%02d-%02d %02d:%02d:%09.6f", d.Year, d.Month, d.Day, d.Hour, d.Minute, d.Seconds())
}

//Calendar holds the dates decoded from an Array of Julian days. It has the
//shape of the decoded Array, element i belongs to input element i.
type Calendar struct {
	shape []int
	dates []CivilDate
}

//Len returns the number of dates
func (c *Calendar) Len() int {
	return len(c.dates)
}

//Shape returns the dimensions of the input, nil for a scalar
func (c *Calendar) Shape() []int {
	if c.shape == nil {
		return nil
	}
	return append([]int(nil), c.shape...)
}

//At returns the date at flat index i
func (c *Calendar) At(i int) CivilDate {
	return c.dates[i]
}

//Dates returns all dates in flat order
func (c *Calendar) Dates() []CivilDate {
	return append([]CivilDate(nil), c.dates...)
}

func (c *Calendar) component(f func(CivilDate) float64) Array {
	data := make([]float64, len(c.dates))
	for i, d := range c.dates {
		data[i] = f(d)
	}
	return Array{data: data, shape: c.Shape()}
}

//Years returns the year of every date, shaped like the input
func (c *Calendar) Years() Array {
	return c.component(func(d CivilDate) float64 { return float64(d.Year) })
}

//Months returns the month of every date, shaped like the input
func (c *Calendar) Months() Array {
	return c.component(func(d CivilDate) float64 { return float64(d.Month) })
}

//Days returns the day of every date, shaped like the input
func (c *Calendar) Days() Array {
	return c.component(func(d CivilDate) float64 { return float64(d.Day) })
}

//Hours returns the hour of every date, shaped like the input
func (c *Calendar) Hours() Array {
	return c.component(func(d CivilDate) float64 { return float64(d.Hour) })
}

//Minutes returns the minute of every date, shaped like the input
func (c *Calendar) Minutes() Array {
	return c.component(func(d CivilDate) float64 { return float64(d.Minute) })
}

//Seconds returns the seconds, including fractions, shaped like the input
func (c *Calendar) Seconds() Array {
	return c.component(CivilDate.Seconds)
}

//Decode returns the calendar dates of Julian days, the IDL CALDAT.
//Values are rounded to the nearest day for the date, the remainder gives the
//time of day: a whole Julian day number decodes to 12:00.
//A *RangeError is returned if any value is outside [MinJulian, MaxJulian].
//In Hybrid mode every value is classified on its own, day numbers from
//2299161 (1582-10-15) on are Gregorian, earlier ones Julian.
func Decode(julian Array, mode Mode) (*Calendar, error) {
	return decode("caldat", julian, func(jdn int) (int, int, int) {
		return jd.J2YMD(jdn, mode == ProlepticGregorian)
	})
}

//CalDat is Decode for a single Julian day
func CalDat(julian float64, mode Mode) (CivilDate, error) {
	c, err := Decode(Scalar(julian), mode)
	if err != nil {
		return CivilDate{}, err
	}
	return c.At(0), nil
}

func decode(op string, julian Array, ymd func(int) (int, int, int)) (*Calendar, error) {
	if err := checkRange(op, "julian day", julian.data, MinJulian, MaxJulian); err != nil {
		return nil, err
	}
	dates := make([]CivilDate, julian.Len())
	for i, j := range julian.data {
		jdn := math.Floor(j + 0.5)
		d := CivilDate{}
		d.Year, d.Month, d.Day = ymd(int(jdn))
		d.Hour, d.Minute, d.Second, d.Microsecond = timeOfDay(j+0.5-jdn, jdn)
		dates[i] = d
	}
	return &Calendar{shape: julian.Shape(), dates: dates}, nil
}

//timeOfDay splits a day fraction, counted from midnight, into its parts.
//The epsilon grows with the day number to undo the rounding error of the
//fraction; hour and minute are clipped so drift never carries into the next
//unit.
func timeOfDay(fraction, jdn float64) (hour, minute, second, micro int) {
	eps := math.Max(1e-12*math.Abs(jdn), 1e-12)
	h := clip(math.Floor(fraction*24+eps), 0, 23)
	fraction -= h / 24
	m := clip(math.Floor(fraction*1440+eps), 0, 59)
	s := math.Max((fraction-m/1440)*86400, 0)
	micro = int((s - math.Floor(s)) * 1e6)
	return int(h), int(m), int(s), micro
}

func clip(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
