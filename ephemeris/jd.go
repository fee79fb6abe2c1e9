// Package ephemeris implements the core astronomical engine: Julian day
// conversion, solar and lunar position theory, ayanamsa, and sunrise/sunset
// timing. The calendrical layer in package astronomy builds on top of it.
package ephemeris

import "math"

// GregorianToJD converts a proleptic Gregorian calendar date with a
// fractional day (UT) to a Julian Day number. Meeus, Astronomical Algorithms, ch. 7.
func GregorianToJD(year, month int, day float64) float64 {
	y, m := year, month
	if m <= 2 {
		y--
		m += 12
	}
	a := math.Floor(float64(y) / 100)
	b := 2 - a + math.Floor(a/4)
	return math.Floor(365.25*float64(y+4716)) + math.Floor(30.6001*float64(m+1)) + day + b - 1524.5
}

// JulDay combines a calendar date with an hour-of-day into a Julian Day.
func JulDay(year, month, day int, hour float64) float64 {
	return GregorianToJD(year, month, float64(day)+hour/24.0)
}

// RevJul splits a Julian Day back into Gregorian (or Julian calendar, before
// the 1582 reform) year, month, day and fractional hour.
func RevJul(jd float64) (year, month, day int, hour float64) {
	jdp := jd + 0.5
	z := math.Floor(jdp)
	f := jdp - z

	var a float64
	if z < 2299161 {
		a = z
	} else {
		alpha := math.Floor((z - 1867216.25) / 36524.25)
		a = z + 1 + alpha - math.Floor(alpha/4)
	}

	b := a + 1524
	c := math.Floor((b - 122.1) / 365.25)
	d := math.Floor(365.25 * c)
	e := math.Floor((b - d) / 30.6001)

	dayFloat := b - d - math.Floor(30.6001*e) + f
	day = int(math.Floor(dayFloat))
	hour = (dayFloat - math.Floor(dayFloat)) * 24.0

	if e < 14 {
		month = int(e - 1)
	} else {
		month = int(e - 13)
	}
	if month > 2 {
		year = int(c - 4716)
	} else {
		year = int(c - 4715)
	}
	return year, month, day, hour
}

// JDToGregorian is an alias for RevJul kept for readability at call sites
// that only care about the calendar date, not the Julian-reform switch.
func JDToGregorian(jd float64) (year, month, day int, hour float64) {
	return RevJul(jd)
}

// DayOfWeek returns 0 (Monday) through 6 (Sunday) for the given JD.
func DayOfWeek(jd float64) int {
	d := int64(math.Floor(jd - 2433282.0 - 1.5))
	return int(((d % 7) + 7) % 7)
}
