package idl

import (
	"fmt"
	"math"
	"time"

	"github.com/SebastiaanKlippert/go-idl/jd"
)

const SecondsPerDay = 86400

var ErrNoLeapTime = fmt.Errorf("No-leap time has no time.Time equivalent") //Returned by Time.ToTime for no-leap values

//Time is a date as a Julian day number plus the seconds since midnight,
//the JTIME structure of MAKE_TIME. NoLeap marks day numbers on the 365 day
//calendar of EncodeNoLeap.
type Time struct {
	JDay    int
	Seconds float64
	NoLeap  bool
}

//MakeTime builds Times from calendar dates. The arguments broadcast like
//Encode. Month must be in 1..12, day in 1..31, hour in 0..23, minute in 0..59
//and second in [0, 60), otherwise a *RangeError is returned.
func MakeTime(year, month, day, hour, minute, second Array, noLeap bool) ([]Time, error) {
	b, err := newBroadcast(year, month, day, hour, minute, second)
	if err != nil {
		return nil, err
	}
	years, months, days := b.column(0), b.column(1), b.column(2)
	hours, minutes, seconds := b.column(3), b.column(4), b.column(5)

	if err := checkRange("make_time", "month", months, 1, 12); err != nil {
		return nil, err
	}
	if err := checkRange("make_time", "day", days, 1, 31); err != nil {
		return nil, err
	}
	if err := checkRange("make_time", "hour", hours, 0, 23); err != nil {
		return nil, err
	}
	if err := checkRange("make_time", "minute", minutes, 0, 59); err != nil {
		return nil, err
	}
	for _, s := range seconds {
		if !(s >= 0 && s < 60) {
			return nil, &RangeError{Op: "make_time", Field: "second", Value: s, Min: 0, Max: 60, Msg: "must be in [0, 60)"}
		}
	}

	var jdays Array
	if noLeap {
		jdays, err = EncodeNoLeap(Vector(months...), Vector(days...), Vector(years...))
	} else {
		jdays, err = Encode(Vector(years...), Vector(months...), Vector(days...), Hybrid)
	}
	if err != nil {
		return nil, err
	}

	times := make([]Time, b.n)
	for i := range times {
		times[i] = Time{
			JDay:    int(jdays.At(i)),
			Seconds: 3600*math.Trunc(hours[i]) + 60*math.Trunc(minutes[i]) + seconds[i],
			NoLeap:  noLeap,
		}
	}
	return times, nil
}

//TimesFromJulian builds Times from day numbers and seconds of the day.
//Seconds outside [0, 86400) return a *RangeError.
func TimesFromJulian(jday, seconds Array, noLeap bool) ([]Time, error) {
	b, err := newBroadcast(jday, seconds)
	if err != nil {
		return nil, err
	}
	secs := b.column(1)
	for _, s := range secs {
		if !(s >= 0 && s < SecondsPerDay) {
			return nil, &RangeError{Op: "make_time", Field: "seconds", Value: s, Min: 0, Max: SecondsPerDay, Msg: "must be in [0, 86400)"}
		}
	}
	times := make([]Time, b.n)
	for i := range times {
		times[i] = Time{JDay: int(b.value(0, i)), Seconds: secs[i], NoLeap: noLeap}
	}
	return times, nil
}

//Sub returns t-u in seconds
func (t Time) Sub(u Time) float64 {
	return SecondsPerDay*float64(t.JDay-u.JDay) + (t.Seconds - u.Seconds)
}

//Add returns t moved by sec seconds, normalizing the seconds into the day
func (t Time) Add(sec float64) Time {
	total := t.Seconds + sec
	days := math.Floor(total / SecondsPerDay)
	t.JDay += int(days)
	t.Seconds = total - days*SecondsPerDay
	return t
}

//Date returns the calendar date of t. Regular Times use the Hybrid calendar,
//so dates before 1582-10-15 are Julian calendar dates.
func (t Time) Date() (CivilDate, error) {
	if t.JDay < MinJulian || t.JDay > MaxJulian {
		return CivilDate{}, &RangeError{Op: "make_time", Field: "julian day", Value: float64(t.JDay), Min: MinJulian, Max: MaxJulian}
	}
	d := CivilDate{}
	if t.NoLeap {
		d.Year, d.Month, d.Day = jd.NoLeapJ2YMD(t.JDay)
	} else {
		d.Year, d.Month, d.Day = jd.J2YMD(t.JDay, false)
	}
	d.Hour, d.Minute, d.Second, d.Microsecond = splitSeconds(t.Seconds)
	return d, nil
}

//FromTime converts a time.Time, taken in UTC. Go dates are proleptic
//Gregorian and count a year zero, both are accounted for.
func FromTime(tm time.Time) Time {
	tm = tm.UTC()
	y, m, d := tm.Date()
	if y <= 0 {
		y--
	}
	sec := float64(tm.Hour()*3600+tm.Minute()*60+tm.Second()) + float64(tm.Nanosecond())/1e9
	return Time{JDay: jd.YMD2J(y, int(m), d, true), Seconds: sec}
}

//ToTime converts t to a UTC time.Time
func (t Time) ToTime() (time.Time, error) {
	if t.NoLeap {
		return time.Time{}, ErrNoLeapTime
	}
	y, m, d := jd.J2YMD(t.JDay, true)
	if y < 0 {
		y++
	}
	whole := math.Floor(t.Seconds)
	ns := int(math.Round((t.Seconds - whole) * 1e9))
	return time.Date(y, time.Month(m), d, 0, 0, int(whole), ns, time.UTC), nil
}

func splitSeconds(sec float64) (hour, minute, second, micro int) {
	whole := math.Floor(sec)
	micro = int(math.Round((sec - whole) * 1e6))
	if micro == 1000000 {
		whole++
		micro = 0
	}
	s := int(whole)
	return s / 3600, s % 3600 / 60, s % 60, micro
}
