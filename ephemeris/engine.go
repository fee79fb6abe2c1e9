package ephemeris

import "math"

// Location describes the observer position used for sunrise/sunset and
// civil-day assignment: geographic coordinates plus a fixed UTC offset in
// hours (the engine does not consult a timezone database).
type Location struct {
	Latitude  float64
	Longitude float64
	Altitude  float64
	UTCOffset float64
}

// NewDelhi is the default reference location used by callers that don't
// supply their own (matches the panchang tradition's usual reference city).
var NewDelhi = Location{Latitude: 28.6139, Longitude: 77.2090, Altitude: 0.0, UTCOffset: 5.5}

// Engine is the facade over the solar/lunar theory: it owns the Moshier
// lunar computation's mutable scratch state so repeated calls don't
// reallocate the sine/cosine recurrence tables.
type Engine struct {
	moon *MoonState
}

// NewEngine constructs a ready-to-use ephemeris engine.
func NewEngine() *Engine {
	return &Engine{moon: NewMoonState()}
}

func (e *Engine) GregorianToJD(year, month, day int) float64 {
	return GregorianToJD(year, month, float64(day))
}

func (e *Engine) JDToGregorian(jd float64) (year, month, day int) {
	year, month, day, _ = JDToGregorian(jd)
	return year, month, day
}

func (e *Engine) DayOfWeek(jd float64) int {
	return DayOfWeek(jd)
}

func (e *Engine) SolarLongitude(jdUT float64) float64 {
	return SolarLongitude(jdUT)
}

func (e *Engine) LunarLongitude(jdUT float64) float64 {
	return e.moon.LunarLongitude(jdUT)
}

// SolarLongitudeSidereal returns the Lahiri nirayana (sidereal) solar
// longitude in degrees [0,360).
func (e *Engine) SolarLongitudeSidereal(jdUT float64) float64 {
	sayana := e.SolarLongitude(jdUT)
	ayan := Ayanamsa(jdUT)
	nirayana := math.Mod(sayana-ayan, 360.0)
	if nirayana < 0.0 {
		nirayana += 360.0
	}
	return nirayana
}

// LunarLongitudeSidereal returns the Lahiri nirayana lunar longitude in
// degrees [0,360).
func (e *Engine) LunarLongitudeSidereal(jdUT float64) float64 {
	sayana := e.LunarLongitude(jdUT)
	ayan := Ayanamsa(jdUT)
	nirayana := math.Mod(sayana-ayan, 360.0)
	if nirayana < 0.0 {
		nirayana += 360.0
	}
	return nirayana
}

func (e *Engine) Ayanamsa(jdUT float64) float64 {
	return Ayanamsa(jdUT)
}

// SunriseJD returns the sunrise JD-UT for the calendar day containing jdUT
// at loc, adjusting for loc's UTC offset so the "day" boundary matches the
// observer's civil date rather than the UT date.
func (e *Engine) SunriseJD(jdUT float64, loc Location) float64 {
	return SunriseJD(jdUT-loc.UTCOffset/24.0, loc.Longitude, loc.Latitude, loc.Altitude)
}

func (e *Engine) SunsetJD(jdUT float64, loc Location) float64 {
	return SunsetJD(jdUT-loc.UTCOffset/24.0, loc.Longitude, loc.Latitude, loc.Altitude)
}

func (e *Engine) SolarDeclination(jdUT float64) float64 {
	return SolarDeclination(jdUT)
}

func (e *Engine) SolarRA(jdUT float64) float64 {
	return SolarRA(jdUT)
}

func (e *Engine) NutationLongitude(jdUT float64) float64 {
	return NutationLongitude(jdUT)
}
