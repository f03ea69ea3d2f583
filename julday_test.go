package idl

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func mustJulDay(t *testing.T, y, m, d int, mode Mode) int {
	t.Helper()
	j, err := JulDay(y, m, d, mode)
	if err != nil {
		t.Fatalf("JulDay(%d, %d, %d): %s", y, m, d, err)
	}
	return j
}

func TestJulDayEpoch(t *testing.T) {
	j, err := JulDayTime(2000, 1, 1, 12, 0, 0, Hybrid)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(j-2451545.0) > 1e-8 {
		t.Errorf("Want %f, have %.10f", 2451545.0, j)
	}
	if have := mustJulDay(t, 2000, 1, 1, Hybrid); have != 2451545 {
		t.Errorf("Want %d, have %d", 2451545, have)
	}
}

func TestJulDayKnownDates(t *testing.T) {
	cases := []struct {
		y, m, d int
		mode    Mode
		want    int
	}{
		{1970, 1, 1, Hybrid, 2440588},
		{2006, 1, 2, Hybrid, 2453738},
		{1582, 10, 15, Hybrid, 2299161},
		{1582, 10, 4, Hybrid, 2299160},
		{1582, 10, 4, ProlepticGregorian, 2299150},
		{1, 1, 1, Hybrid, 1721424},
		{1, 1, 1, ProlepticGregorian, 1721426},
		{-4713, 1, 1, Hybrid, 0},
		{-4714, 11, 24, ProlepticGregorian, 0},
	}
	for _, c := range cases {
		if have := mustJulDay(t, c.y, c.m, c.d, c.mode); have != c.want {
			t.Errorf("%d-%02d-%02d (%s): want %d, have %d", c.y, c.m, c.d, c.mode, c.want, have)
		}
	}
}

func TestGregorianCutoverContinuity(t *testing.T) {
	before := mustJulDay(t, 1582, 10, 4, Hybrid)
	after := mustJulDay(t, 1582, 10, 15, Hybrid)
	if after-before != 1 {
		t.Errorf("Want 1 day between 1582-10-04 and 1582-10-15, have %d", after-before)
	}
}

func TestNoYearZero(t *testing.T) {
	_, err := JulDay(0, 1, 1, Hybrid)
	var re *RangeError
	if !errors.As(err, &re) {
		t.Fatalf("Want RangeError, have %v", err)
	}
	if re.Field != "year" {
		t.Errorf("Want field year, have %s", re.Field)
	}
	if _, err := Encode(Vector(1999, 0, 2001), Scalar(1), Scalar(1), ProlepticGregorian); !IsRangeError(err) {
		t.Errorf("Want RangeError for a batch holding year 0, have %v", err)
	}

	//1 BCE directly precedes 1 CE
	lastBCE := mustJulDay(t, -1, 12, 31, Hybrid)
	firstCE := mustJulDay(t, 1, 1, 1, Hybrid)
	if firstCE-lastBCE != 1 {
		t.Errorf("Want 1 day between -1-12-31 and 1-01-01, have %d", firstCE-lastBCE)
	}
	//1 BCE is a leap year in the Julian calendar
	if d := firstCE - mustJulDay(t, -1, 1, 1, Hybrid); d != 366 {
		t.Errorf("Want 366 days in 1 BCE, have %d", d)
	}
}

func TestYearRange(t *testing.T) {
	for _, y := range []int{MinYear - 1, MaxYear + 1} {
		if _, err := JulDay(y, 1, 1, Hybrid); !IsRangeError(err) {
			t.Errorf("Year %d: want RangeError, have %v", y, err)
		}
	}
	for _, y := range []int{MinYear, MaxYear} {
		if _, err := JulDay(y, 6, 1, Hybrid); err != nil {
			t.Errorf("Year %d: %s", y, err)
		}
	}
}

func TestLeapDays(t *testing.T) {
	cases := []struct {
		y    int
		mode Mode
		leap bool
	}{
		{1900, Hybrid, false},
		{2000, Hybrid, true},
		{2024, Hybrid, true},
		{1500, Hybrid, true},
		{1500, ProlepticGregorian, false},
		{-5, Hybrid, true}, //4 BCE
	}
	for _, c := range cases {
		d := mustJulDay(t, c.y, 3, 1, c.mode) - mustJulDay(t, c.y, 2, 28, c.mode)
		if (d == 2) != c.leap {
			t.Errorf("Year %d (%s): want leap=%v, have %d days from Feb 28 to Mar 1", c.y, c.mode, c.leap, d)
		}
	}
}

func TestEncodeSmallestArrayWins(t *testing.T) {
	res, err := Encode(Vector(2000, 2001, 2002), Scalar(1), IntVector(1, 2), Hybrid)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(res.Shape(), []int{2}) {
		t.Errorf("Want shape [2], have %v", res.Shape())
	}
	if want := []int{2451545, 2451912}; !reflect.DeepEqual(res.Ints(), want) {
		t.Errorf("Want %v, have %v", want, res.Ints())
	}

	years, err := NewArray([]float64{2000, 2000, 2000, 2001, 2001, 2001}, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	res, err = Encode(years, Scalar(3), IntVector(1, 2, 3, 4, 5, 6, 7, 8, 9, 10), Hybrid)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(res.Shape(), []int{2, 3}) {
		t.Errorf("Want shape [2 3], have %v", res.Shape())
	}
	if have := res.At(5) - res.At(0); have != 365+5 {
		t.Errorf("Want %d days between 2000-03-01 and 2001-03-06, have %v", 370, have)
	}

	res, err = Encode(Scalar(2000), Scalar(1), Scalar(1), Hybrid)
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsScalar() {
		t.Errorf("Want a scalar result, have shape %v", res.Shape())
	}
}

func TestEncodeTimeTruncatesHourAndMinute(t *testing.T) {
	a, err := JulDayTime(2000, 1, 1, 6, 30, 0, Hybrid)
	if err != nil {
		t.Fatal(err)
	}
	b, err := EncodeTime(Scalar(2000), Scalar(1), Scalar(1), Scalar(6.9), Scalar(30.7), Scalar(0), Hybrid)
	if err != nil {
		t.Fatal(err)
	}
	if b.At(0) != a {
		t.Errorf("Want %f, have %f", a, b.At(0))
	}
}

func TestMonotonic(t *testing.T) {
	for _, mode := range []Mode{Hybrid, ProlepticGregorian} {
		prev := math.Inf(-1)
		for y := -4000; y <= 4000; y += 7 {
			if y == 0 {
				continue
			}
			for m := 1; m <= 12; m++ {
				for _, d := range []int{1, 15, 28} {
					for _, h := range []int{0, 13} {
						j, err := JulDayTime(y, m, d, h, 59, 59.5, mode)
						if err != nil {
							t.Fatal(err)
						}
						if j <= prev {
							t.Fatalf("%s: %d-%02d-%02d %02d:59:59.5 = %f is not after %f", mode, y, m, d, h, j, prev)
						}
						prev = j
					}
				}
			}
		}
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"":                    Hybrid,
		"hybrid":              Hybrid,
		"Proleptic":           ProlepticGregorian,
		"PROLEPTIC_GREGORIAN": ProlepticGregorian,
	}
	for in, want := range cases {
		have, err := ParseMode(in)
		if err != nil {
			t.Errorf("ParseMode(%q): %s", in, err)
		}
		if have != want {
			t.Errorf("ParseMode(%q): want %s, have %s", in, want, have)
		}
	}
	if _, err := ParseMode("mayan"); err == nil {
		t.Error("Want an error for an unknown mode")
	}
}
