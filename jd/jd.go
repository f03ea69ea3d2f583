// Package jd holds the scalar integer kernels for Julian day numbers.
// All divisions are floor divisions so the formulas hold for BCE years.
package jd

const (
	// GregorianCutover is the uncorrected day count of 1582-10-15. Dates whose
	// Julian-calendar count reaches it are Gregorian in hybrid mode.
	GregorianCutover = 2299171

	// GregorianStart is the Julian day number of 1582-10-15 (Gregorian).
	GregorianStart = 2299161

	epochShift = 32083 // 4800 BC epoch
)

// FloorDiv divides rounding towards negative infinity.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// FloorMod is the remainder matching FloorDiv, always with the sign of b.
func FloorMod(a, b int) int {
	return a - FloorDiv(a, b)*b
}

// YMD2J converts a civil date to a Julian day number.
// Years follow the civil convention without a year zero: -1 is 1 BCE.
// The caller is responsible for rejecting year 0.
// If proleptic is false the Julian calendar is used before 1582-10-15.
// jd.YMD2J(2006, 1, 2, false) == 2453738 //=> true
func YMD2J(year, month, day int, proleptic bool) int {
	if year < 0 {
		year++
	}
	janFeb := 0
	if month <= 2 {
		janFeb = 1
	}
	jy := year - janFeb + 4800
	jm := month + 12*janFeb - 3

	jul := 365*jy + FloorDiv(jy, 4) + FloorDiv(153*jm+2, 5) + day - epochShift
	if proleptic || jul >= GregorianCutover {
		jul += 38 - FloorDiv(jy, 100) + FloorDiv(jy, 400)
	}
	return jul
}

// J2YMD converts a Julian day number to a year, month and day.
// y, m, d := jd.J2YMD(2453738, false);
// y==2006 && m==1 && d==2 //=> true
func J2YMD(jdn int, proleptic bool) (int, int, int) {
	shift := jdn + epochShift - 1

	year := 0
	deltaC := shift
	if proleptic || jdn >= GregorianStart {
		shift -= 38
		g400 := FloorDiv(shift, 146097)
		deltaG := FloorMod(shift, 146097)
		c100 := (deltaG/36524 + 1) * 3 / 4
		deltaC = deltaG - c100*36524
		year = g400*400 + c100*100
	}

	b4 := FloorDiv(deltaC, 1461)
	deltaB := FloorMod(deltaC, 1461)
	a := (deltaB/365 + 1) * 3 / 4
	deltaA := deltaB - 365*a

	year += b4*4 + a
	month := (5*deltaA + 308) / 153
	day := deltaA - (month+2)*153/5 + 123

	year = year - 4800 + month/12
	if year <= 0 {
		year--
	}
	month = month%12 + 1
	return year, month, day
}

// cumulative day of year at the start of each month on a 365 day year
var noLeapDOY = [13]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365}

// noLeapEpoch is YMD2J(2001, 1, 1, false).
const noLeapEpoch = 2451911

// NoLeapYMD2J converts a date on a 365 day calendar. February 29 is not
// representable, the caller must reject it.
func NoLeapYMD2J(year, month, day int) int {
	return YMD2J(2001, month, day, false) + 365*(year-2001)
}

// NoLeapJ2YMD is the inverse of NoLeapYMD2J.
func NoLeapJ2YMD(jdn int) (int, int, int) {
	delta := jdn - noLeapEpoch
	year := 2001 + FloorDiv(delta, 365)
	doy := FloorMod(delta, 365)
	month := 1
	for doy >= noLeapDOY[month] {
		month++
	}
	return year, month, doy - noLeapDOY[month-1] + 1
}
