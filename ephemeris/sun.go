package ephemeris

import "math"

const (
	deg2rad = math.Pi / 180.0
	rad2deg = 180.0 / math.Pi
	j2000   = 2451545.0
)

// SunState holds the precomputed obliquity/nutation values for a single
// evaluation of the low-precision solar theory at a given JD-UT; it exists
// so calendrical callers never pay for repeated trig on the same instant.
type SunState struct {
	jdUT  float64
	jdTT  float64
	t     float64
	dpsi  float64 // nutation in longitude, degrees
	deps  float64 // nutation in obliquity, degrees
	eps0  float64 // mean obliquity, degrees
	l     float64 // apparent geocentric ecliptic longitude, degrees
	valid bool
}

// NewSunState evaluates the solar theory once for jdUT and caches the
// shared terms (obliquity, nutation, longitude) used by RA/declination.
func NewSunState(jdUT float64) *SunState {
	s := &SunState{jdUT: jdUT}
	s.jdTT = JDUTToTT(jdUT)
	s.t = (s.jdTT - j2000) / 36525.0
	s.eps0 = MeanObliquity(s.jdTT)
	s.dpsi, s.deps = nutation(s.t)
	s.l = apparentLongitude(s.t, s.dpsi)
	s.valid = true
	return s
}

// DeltaTDays returns the TT-UT difference, in days, as a piecewise
// polynomial approximation of historical and modern ΔT (Espenak/Meeus).
func DeltaTDays(jdUT float64) float64 {
	_, month, day, hour := RevJul(jdUT)
	year, _, _, _ := RevJul(jdUT)
	yearFrac := float64(year) + (float64(dayOfYearApprox(month, day)) / 365.25)
	_ = hour

	var dt float64
	switch {
	case yearFrac < 948.0:
		u := yearFrac / 100.0
		dt = 2177.0 + 497.0*u + 44.1*u*u
	case yearFrac < 1620.0:
		u := (yearFrac - 1000.0) / 100.0
		dt = 102.0 + 102.0*u + 25.3*u*u
	case yearFrac < 2005.0:
		t := yearFrac - 2000.0
		dt = 63.86 + 0.3345*t - 0.060374*t*t + 0.0017275*t*t*t +
			0.000651814*t*t*t*t + 0.00002373599*t*t*t*t*t
	case yearFrac < 2050.0:
		t := yearFrac - 2000.0
		dt = 62.92 + 0.32217*t + 0.005589*t*t
	default:
		u := (yearFrac - 1820.0) / 100.0
		dt = -20.0 + 32.0*u*u
	}
	return dt / 86400.0
}

func dayOfYearApprox(month, day int) int {
	cum := []int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}
	return cum[month-1] + day
}

// JDUTToTT converts Universal Time JD to Terrestrial Time JD.
func JDUTToTT(jdUT float64) float64 {
	return jdUT + DeltaTDays(jdUT)
}

// MeanObliquity implements the IAU-1976 10-term polynomial for the mean
// obliquity of the ecliptic, in u = T/100 (T in Julian centuries from J2000).
func MeanObliquity(jdTT float64) float64 {
	t := (jdTT - j2000) / 36525.0
	u := t / 100.0
	eps := 23.0 + 26.0/60.0 + 21.448/3600.0
	eps += -4680.93/3600.0*u -
		1.55/3600.0*u*u +
		1999.25/3600.0*u*u*u -
		51.38/3600.0*math.Pow(u, 4) -
		249.67/3600.0*math.Pow(u, 5) -
		39.05/3600.0*math.Pow(u, 6) +
		7.12/3600.0*math.Pow(u, 7) +
		27.87/3600.0*math.Pow(u, 8) +
		5.79/3600.0*math.Pow(u, 9) +
		2.45/3600.0*math.Pow(u, 10)
	return eps
}

type nutationTerm struct {
	d, m, mp, f, omega float64 // multipliers of the fundamental arguments
	sinCoef, sinT      float64 // coefficients for dpsi, in 0.0001"
	cosCoef, cosT      float64 // coefficients for deps, in 0.0001"
}

// iau1980Terms is the dominant subset (~30 terms) of the full 106-term
// IAU-1980 nutation series, sufficient to match the apparent solar position
// to within a few arcseconds.
var iau1980Terms = []nutationTerm{
	{0, 0, 0, 0, 1, -171996, -174.2, 92025, 8.9},
	{-2, 0, 0, 2, 2, -13187, -1.6, 5736, -3.1},
	{0, 0, 0, 2, 2, -2274, -0.2, 977, -0.5},
	{0, 0, 0, 0, 2, 2062, 0.2, -895, 0.5},
	{0, 1, 0, 0, 0, 1426, -3.4, 54, -0.1},
	{0, 0, 1, 0, 0, 712, 0.1, -7, 0},
	{-2, 1, 0, 2, 2, -517, 1.2, 224, -0.6},
	{0, 0, 0, 2, 1, -386, -0.4, 200, 0},
	{0, 0, 1, 2, 2, -301, 0, 129, -0.1},
	{-2, -1, 0, 2, 2, 217, -0.5, -95, 0.3},
	{-2, 0, 1, 0, 0, -158, 0, 0, 0},
	{-2, 0, 0, 2, 1, 129, 0.1, -70, 0},
	{0, 0, -1, 2, 2, 123, 0, -53, 0},
	{2, 0, 0, 0, 0, 63, 0, 0, 0},
	{0, 0, 1, 0, 1, 63, 0.1, -33, 0},
	{2, 0, -1, 2, 2, -59, 0, 26, 0},
	{0, 0, -1, 0, 1, -58, -0.1, 32, 0},
	{0, 0, 1, 2, 1, -51, 0, 27, 0},
	{-2, 0, 2, 0, 0, 48, 0, 0, 0},
	{0, 0, -2, 2, 1, 46, 0, -24, 0},
	{2, 0, 0, 2, 2, -38, 0, 16, 0},
	{0, 0, 2, 2, 2, -31, 0, 13, 0},
	{0, 0, 2, 0, 0, 29, 0, 0, 0},
	{-2, 0, 1, 2, 2, 29, 0, -12, 0},
	{0, 0, 0, 2, 0, 26, 0, 0, 0},
	{-2, 0, 0, 2, 0, -22, 0, 0, 0},
	{0, 0, -1, 2, 1, 21, 0, -10, 0},
	{0, 2, 0, 0, 0, 17, -0.1, 0, 0},
	{2, 0, -1, 0, 1, 16, 0, -8, 0},
	{-2, 2, 0, 2, 2, -16, 0.1, 7, 0},
}

// nutation returns (dpsi, deps), the nutation in longitude and obliquity
// in degrees, for Julian centuries T from J2000 (IAU-1980 series).
func nutation(t float64) (dpsi, deps float64) {
	// Fundamental arguments, degrees (Meeus 22.1-22.4).
	d := 297.85036 + 445267.111480*t - 0.0019142*t*t + t*t*t/189474.0
	m := 357.52772 + 35999.050340*t - 0.0001603*t*t - t*t*t/300000.0
	mp := 134.96298 + 477198.867398*t + 0.0086972*t*t + t*t*t/56250.0
	f := 93.27191 + 483202.017538*t - 0.0036825*t*t + t*t*t/327270.0
	omega := 125.04452 - 1934.136261*t + 0.0020708*t*t + t*t*t/450000.0

	var sumPsi, sumEps float64
	for _, term := range iau1980Terms {
		arg := (term.d*d + term.m*m + term.mp*mp + term.f*f + term.omega*omega) * deg2rad
		sumPsi += (term.sinCoef + term.sinT*t) * math.Sin(arg)
		sumEps += (term.cosCoef + term.cosT*t) * math.Cos(arg)
	}
	dpsi = sumPsi * 0.0001 / 3600.0
	deps = sumEps * 0.0001 / 3600.0
	return dpsi, deps
}

// NutationLongitude returns nutation in longitude, in degrees, for JD-UT.
func NutationLongitude(jdUT float64) float64 {
	jdTT := JDUTToTT(jdUT)
	t := (jdTT - j2000) / 36525.0
	dpsi, _ := nutation(t)
	return dpsi
}

// apparentLongitude computes the Sun's apparent geocentric ecliptic
// longitude (tropical, of date) from the truncated Meeus low-precision
// series: mean longitude plus the equation of center, nutation, and the
// constant aberration term.
func apparentLongitude(t, dpsi float64) float64 {
	l0 := 280.46646 + 36000.76983*t + 0.0003032*t*t
	m := 357.52911 + 35999.05029*t - 0.0001537*t*t
	mRad := m * deg2rad

	c := (1.914602-0.004817*t-0.000014*t*t)*math.Sin(mRad) +
		(0.019993-0.000101*t)*math.Sin(2*mRad) +
		0.000289*math.Sin(3*mRad)

	trueLong := l0 + c
	omega := 125.04 - 1934.136*t
	lambda := trueLong - 0.00569 - 0.00478*math.Sin(omega*deg2rad)
	lambda += dpsi

	lambda = math.Mod(lambda, 360.0)
	if lambda < 0 {
		lambda += 360.0
	}
	return lambda
}

// SolarLongitude returns the Sun's apparent geocentric tropical ecliptic
// longitude in degrees, normalized to [0,360).
func SolarLongitude(jdUT float64) float64 {
	return NewSunState(jdUT).l
}

// apparentObliquity is the mean obliquity corrected for nutation.
func (s *SunState) apparentObliquity() float64 {
	return s.eps0 + s.deps
}

// SolarRA returns the Sun's apparent right ascension in degrees, [0,360).
func SolarRA(jdUT float64) float64 {
	s := NewSunState(jdUT)
	eps := s.apparentObliquity() * deg2rad
	lRad := s.l * deg2rad
	ra := math.Atan2(math.Cos(eps)*math.Sin(lRad), math.Cos(lRad)) * rad2deg
	if ra < 0 {
		ra += 360.0
	}
	return ra
}

// SolarDeclination returns the Sun's apparent declination in degrees.
func SolarDeclination(jdUT float64) float64 {
	s := NewSunState(jdUT)
	eps := s.apparentObliquity() * deg2rad
	lRad := s.l * deg2rad
	return math.Asin(math.Sin(eps)*math.Sin(lRad)) * rad2deg
}
