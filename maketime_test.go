package idl

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestMakeTime(t *testing.T) {
	times, err := MakeTime(Scalar(2000), Scalar(1), IntVector(1, 2), Scalar(12), Scalar(0), Vector(0, 30.5), false)
	if err != nil {
		t.Fatal(err)
	}
	if len(times) != 2 {
		t.Fatalf("Want 2 times, have %d", len(times))
	}
	if times[0].JDay != 2451545 || times[0].Seconds != 43200 {
		t.Errorf("Want {2451545 43200}, have %+v", times[0])
	}
	if have := times[1].Sub(times[0]); have != SecondsPerDay+30.5 {
		t.Errorf("Want %v seconds, have %v", SecondsPerDay+30.5, have)
	}
	d, err := times[1].Date()
	if err != nil {
		t.Fatal(err)
	}
	if want := (CivilDate{Year: 2000, Month: 1, Day: 2, Hour: 12, Second: 30, Microsecond: 500000}); d != want {
		t.Errorf("Want %v, have %v", want, d)
	}
}

func TestMakeTimeRejects(t *testing.T) {
	cases := []struct {
		name                        string
		month, day, hour, min, sec float64
	}{
		{"month", 13, 1, 0, 0, 0},
		{"day", 1, 32, 0, 0, 0},
		{"hour", 1, 1, 24, 0, 0},
		{"minute", 1, 1, 0, 60, 0},
		{"second", 1, 1, 0, 0, 60},
		{"second", 1, 1, 0, 0, -0.5},
	}
	for _, c := range cases {
		_, err := MakeTime(Scalar(2000), Scalar(c.month), Scalar(c.day), Scalar(c.hour), Scalar(c.min), Scalar(c.sec), false)
		var re *RangeError
		if !errors.As(err, &re) {
			t.Errorf("%s: want RangeError, have %v", c.name, err)
			continue
		}
		if re.Field != c.name {
			t.Errorf("Want field %s, have %s", c.name, re.Field)
		}
	}
	if _, err := MakeTime(Scalar(2000), Scalar(2), Scalar(29), Scalar(0), Scalar(0), Scalar(0), true); !IsRangeError(err) {
		t.Errorf("Want RangeError for February 29 without leap years, have %v", err)
	}
}

func TestMakeTimeNoLeap(t *testing.T) {
	times, err := MakeTime(Scalar(2001), Scalar(3), Scalar(1), Scalar(6), Scalar(0), Scalar(0), true)
	if err != nil {
		t.Fatal(err)
	}
	if times[0].JDay != 2451911+59 || !times[0].NoLeap {
		t.Errorf("Want no-leap day %d, have %+v", 2451911+59, times[0])
	}
	d, err := times[0].Date()
	if err != nil {
		t.Fatal(err)
	}
	if d.Year != 2001 || d.Month != 3 || d.Day != 1 || d.Hour != 6 {
		t.Errorf("Want 2001-03-01 06:00, have %v", d)
	}
	if _, err := times[0].ToTime(); !errors.Is(err, ErrNoLeapTime) {
		t.Errorf("Want ErrNoLeapTime, have %v", err)
	}
}

func TestTimesFromJulian(t *testing.T) {
	times, err := TimesFromJulian(IntVector(2451545, 2451546), Scalar(3600), false)
	if err != nil {
		t.Fatal(err)
	}
	if len(times) != 2 || times[1].JDay != 2451546 || times[1].Seconds != 3600 {
		t.Errorf("Unexpected times %+v", times)
	}
	for _, s := range []float64{-1, SecondsPerDay} {
		if _, err := TimesFromJulian(Scalar(2451545), Scalar(s), false); !IsRangeError(err) {
			t.Errorf("Seconds %v: want RangeError, have %v", s, err)
		}
	}
}

func TestTimeAdd(t *testing.T) {
	noon := Time{JDay: 2451545, Seconds: 43200}
	cases := []struct {
		add  float64
		want Time
	}{
		{0, noon},
		{43200, Time{JDay: 2451546, Seconds: 0}},
		{-43201, Time{JDay: 2451544, Seconds: 86399}},
		{10 * SecondsPerDay, Time{JDay: 2451555, Seconds: 43200}},
	}
	for _, c := range cases {
		if have := noon.Add(c.add); have != c.want {
			t.Errorf("Add(%v): want %+v, have %+v", c.add, c.want, have)
		}
		if have := noon.Add(c.add).Sub(noon); have != c.add {
			t.Errorf("Add(%v).Sub: have %v", c.add, have)
		}
	}
	d, err := noon.Add(-43201).Date()
	if err != nil {
		t.Fatal(err)
	}
	if want := (CivilDate{Year: 1999, Month: 12, Day: 31, Hour: 23, Minute: 59, Second: 59}); d != want {
		t.Errorf("Want %v, have %v", want, d)
	}
}

func TestGoTimeConversion(t *testing.T) {
	tm := time.Date(2000, 1, 1, 6, 0, 0, 250000000, time.UTC)
	v := FromTime(tm)
	if v.JDay != 2451545 || math.Abs(v.Seconds-21600.25) > 1e-9 {
		t.Errorf("Want {2451545 21600.25}, have %+v", v)
	}
	back, err := v.ToTime()
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(tm) {
		t.Errorf("Want %s, have %s", tm, back)
	}

	//Go counts a year zero, which is 1 BCE
	zero := FromTime(time.Date(0, 3, 1, 0, 0, 0, 0, time.UTC))
	if want := mustJulDay(t, -1, 3, 1, ProlepticGregorian); zero.JDay != want {
		t.Errorf("Want day %d, have %d", want, zero.JDay)
	}
	back, err = zero.ToTime()
	if err != nil {
		t.Fatal(err)
	}
	if back.Year() != 0 || back.Month() != time.March || back.Day() != 1 {
		t.Errorf("Want year 0 March 1, have %s", back)
	}

	local := time.Date(2000, 1, 1, 1, 0, 0, 0, time.FixedZone("UTC+2", 2*3600))
	if v := FromTime(local); v.JDay != 2451544 || v.Seconds != 23*3600 {
		t.Errorf("Want {2451544 82800}, have %+v", v)
	}
}
