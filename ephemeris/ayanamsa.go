package ephemeris

import "math"

const (
	lahiriT0     = 2435553.5
	lahiriAyanT0 = 23.245524743
)

// precessionAngles returns the IAU-1976 precession angles (zBig, z, theta)
// in radians for Julian centuries T from J2000.
func precessionAngles(t float64) (zBig, z, theta float64) {
	zBig = ((0.017998*t+0.30188)*t+2306.2181) * t * deg2rad / 3600.0
	z = ((0.018203*t+1.09468)*t+2306.2181) * t * deg2rad / 3600.0
	theta = ((-0.041833*t-0.42665)*t+2004.3109) * t * deg2rad / 3600.0
	return zBig, z, theta
}

// precessEquatorial rotates a Cartesian equatorial unit vector between
// epoch j and J2000. direction > 0 precesses from j to J2000; direction < 0
// precesses from J2000 to j.
func precessEquatorial(x *[3]float64, j float64, direction int) {
	if j == j2000 {
		return
	}
	t := (j - j2000) / 36525.0
	zBig, z, theta := precessionAngles(t)

	costh, sinth := math.Cos(theta), math.Sin(theta)
	cosZ, sinZ := math.Cos(zBig), math.Sin(zBig)
	cosz, sinz := math.Cos(z), math.Sin(z)
	a := cosZ * costh
	b := sinZ * costh

	var r [3]float64
	if direction > 0 {
		r[0] = (a*cosz-sinZ*sinz)*x[0] + (a*sinz+sinZ*cosz)*x[1] + cosZ*sinth*x[2]
		r[1] = -(b*cosz+cosZ*sinz)*x[0] - (b*sinz-cosZ*cosz)*x[1] - sinZ*sinth*x[2]
		r[2] = -sinth*cosz*x[0] - sinth*sinz*x[1] + costh*x[2]
	} else {
		r[0] = (a*cosz-sinZ*sinz)*x[0] - (b*cosz+cosZ*sinz)*x[1] - sinth*cosz*x[2]
		r[1] = (a*sinz+sinZ*cosz)*x[0] - (b*sinz-cosZ*cosz)*x[1] - sinth*sinz*x[2]
		r[2] = cosZ*sinth*x[0] - sinZ*sinth*x[1] + costh*x[2]
	}
	*x = r
}

func equatorialToEcliptic(x *[3]float64, eps float64) {
	c, s := math.Cos(eps), math.Sin(eps)
	y1 := c*x[1] + s*x[2]
	z1 := -s*x[1] + c*x[2]
	x[1] = y1
	x[2] = z1
}

// Ayanamsa returns the mean Lahiri (Chitrapaksha) ayanamsa in degrees,
// without nutation, for the given JD-UT.
func Ayanamsa(jdUT float64) float64 {
	jdTT := JDUTToTT(jdUT)

	x := [3]float64{1.0, 0.0, 0.0}

	precessEquatorial(&x, jdTT, 1)
	precessEquatorial(&x, lahiriT0, -1)

	epsT0 := MeanObliquity(lahiriT0)
	equatorialToEcliptic(&x, epsT0*deg2rad)

	lon := math.Atan2(x[1], x[0]) * rad2deg

	ayan := -lon + lahiriAyanT0
	ayan = math.Mod(ayan, 360.0)
	if ayan < 0.0 {
		ayan += 360.0
	}
	return ayan
}

// SiderealSolarLongitude returns the Sun's sidereal (Lahiri) longitude in
// degrees [0,360).
func SiderealSolarLongitude(jdUT float64) float64 {
	lon := SolarLongitude(jdUT) - Ayanamsa(jdUT)
	lon = math.Mod(lon, 360.0)
	if lon < 0 {
		lon += 360.0
	}
	return lon
}
