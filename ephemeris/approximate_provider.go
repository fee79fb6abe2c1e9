package ephemeris

import (
	"context"
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vedic-go/panchangam/observability"
)

// ApproximateProvider is the fallback tier: a single-pass, low-order
// approximation of the solar and lunar longitude series and a
// non-iterative sunrise/sunset formula, used only when MoshierProvider is
// unavailable. It trades a few arcminutes of accuracy for having no
// dependency on the iterative Newton solver or the full perturbation
// tables, so it degrades independently of whatever might be wrong with
// the primary provider.
type ApproximateProvider struct {
	observer observability.ObserverInterface
}

func NewApproximateProvider() *ApproximateProvider {
	return &ApproximateProvider{observer: observability.Observer()}
}

func (p *ApproximateProvider) SolarLongitude(ctx context.Context, jdUT float64) (float64, error) {
	_, span := p.observer.CreateSpan(ctx, "approximate.SolarLongitude")
	defer span.End()

	t := jdUT - j2000
	l := math.Mod(280.4664567+0.9856235*t, 360.0)
	m := math.Mod(357.5291092+0.9856002585*t, 360.0)
	mRad := m * deg2rad
	c := 1.9148*math.Sin(mRad) + 0.0200*math.Sin(2*mRad) + 0.0003*math.Sin(3*mRad)
	lambda := math.Mod(l+c+360.0, 360.0)

	span.SetAttributes(attribute.Float64("longitude", lambda))
	return lambda, nil
}

func (p *ApproximateProvider) LunarLongitude(ctx context.Context, jdUT float64) (float64, error) {
	_, span := p.observer.CreateSpan(ctx, "approximate.LunarLongitude")
	defer span.End()

	t := jdUT - j2000
	l := math.Mod(218.3164477+13.17639648*t, 360.0)
	mMoon := math.Mod(134.9633964+13.06499295*t, 360.0)
	mSun := math.Mod(357.5291092+0.9856002585*t, 360.0)
	d := math.Mod(297.8501921+12.19074912*t, 360.0)
	// Mean argument of latitude (F) feeds the ecliptic-latitude series, not
	// longitude, so it has no term here.

	mRad := mMoon * deg2rad
	mpRad := mSun * deg2rad
	dRad := d * deg2rad

	deltaL := 6.289*math.Sin(mRad) + 1.274*math.Sin(2*dRad-mRad) + 0.658*math.Sin(2*dRad) -
		0.186*math.Sin(mpRad) - 0.059*math.Sin(2*mRad-2*dRad) - 0.057*math.Sin(mRad-2*dRad+mpRad)

	lambda := math.Mod(l+deltaL+360.0, 360.0)
	span.SetAttributes(attribute.Float64("longitude", lambda))
	return lambda, nil
}

func (p *ApproximateProvider) Ayanamsa(ctx context.Context, jdUT float64) (float64, error) {
	_, span := p.observer.CreateSpan(ctx, "approximate.Ayanamsa")
	defer span.End()

	year, _, _, _ := RevJul(jdUT)
	// Linear Lahiri approximation: about 50.3"/year of precession drift
	// from the Chitrapaksha zero epoch, adequate as a coarse fallback.
	ayan := 22.460148 + 0.0139756*float64(year-1900)
	span.SetAttributes(attribute.Float64("ayanamsa", ayan))
	return ayan, nil
}

func (p *ApproximateProvider) sunDeclination(jdUT float64) float64 {
	lambda, _ := p.SolarLongitude(context.Background(), jdUT)
	const obliquity = 23.439281
	return math.Asin(math.Sin(obliquity*deg2rad)*math.Sin(lambda*deg2rad)) * rad2deg
}

// riseSetApprox is the classical one-shot hour-angle formula (no iterative
// refinement): it estimates local mean noon from the day's Julian Day
// and offsets by the hour angle of sunrise/sunset for the given latitude.
func (p *ApproximateProvider) riseSetApprox(jdUT, lon, lat float64, isRise bool) float64 {
	yr, mo, dy, _ := RevJul(jdUT)
	jd0h := JulDay(yr, mo, dy, 0.0)

	decl := p.sunDeclination(jd0h+0.5) * deg2rad
	phi := lat * deg2rad

	cosH := -math.Tan(phi) * math.Tan(decl)
	if cosH < -1.0 || cosH > 1.0 {
		return 0.0 // circumpolar at this latitude/date
	}
	h := math.Acos(cosH) * rad2deg

	// Local solar noon in UT, from the longitude offset only (no equation
	// of time correction — this is the coarser tier).
	noon := jd0h + 0.5 - lon/360.0
	if isRise {
		return noon - h/360.0
	}
	return noon + h/360.0
}

func (p *ApproximateProvider) SunriseJD(ctx context.Context, jdUT float64, loc Location) (float64, error) {
	_, span := p.observer.CreateSpan(ctx, "approximate.SunriseJD")
	defer span.End()
	return p.riseSetApprox(jdUT-loc.UTCOffset/24.0, loc.Longitude, loc.Latitude, true), nil
}

func (p *ApproximateProvider) SunsetJD(ctx context.Context, jdUT float64, loc Location) (float64, error) {
	_, span := p.observer.CreateSpan(ctx, "approximate.SunsetJD")
	defer span.End()
	return p.riseSetApprox(jdUT-loc.UTCOffset/24.0, loc.Longitude, loc.Latitude, false), nil
}

func (p *ApproximateProvider) IsAvailable(ctx context.Context) bool {
	return true
}

func (p *ApproximateProvider) GetHealthStatus(ctx context.Context) (*HealthStatus, error) {
	return &HealthStatus{Available: true, LastCheck: time.Now(), Source: p.Name()}, nil
}

func (p *ApproximateProvider) Name() string {
	return "approximate-vsop-lite"
}

func (p *ApproximateProvider) Close() error {
	return nil
}
