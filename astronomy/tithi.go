package astronomy

import (
	"context"
	"fmt"
	"time"

	"github.com/vedic-go/panchangam/ephemeris"
	"github.com/vedic-go/panchangam/observability"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TithiType represents the categorization of Tithi
type TithiType string

const (
	TithiTypeNanda  TithiType = "Nanda"  // 1, 6, 11 (Joyful)
	TithiTypeBhadra TithiType = "Bhadra" // 2, 7, 12 (Auspicious)
	TithiTypeJaya   TithiType = "Jaya"   // 3, 8, 13 (Victorious)
	TithiTypeRikta  TithiType = "Rikta"  // 4, 9, 14 (Empty)
	TithiTypePurna  TithiType = "Purna"  // 5, 10, 15 (Full/Complete)
)

// TithiInfo represents a Tithi with its properties
type TithiInfo struct {
	Number          int       `json:"number"`           // 1-30, the same under Purnimanta and Amanta
	Name            string    `json:"name"`             // Standard Sanskrit name of the Tithi
	Type            TithiType `json:"type"`             // Category (Nanda, Bhadra, Jaya, Rikta, Purna)
	StartTime       time.Time `json:"start_time"`       // When this Tithi begins (exact, from boundary bisection)
	EndTime         time.Time `json:"end_time"`         // When this Tithi ends (exact, from boundary bisection)
	Duration        float64   `json:"duration"`         // Duration in hours
	IsShukla        bool      `json:"is_shukla"`        // true for Shukla Paksha, false for Krishna Paksha
	Paksha          string    `json:"paksha"`           // "Shukla" or "Krishna"
	PakshaDay       int       `json:"paksha_day"`       // 1-15 within the paksha
	TraditionalName string    `json:"traditional_name"` // Traditional Sanskrit name (Dvithiya, Thuthiya, etc.)
	MoonSunDiff     float64   `json:"moon_sun_diff"`    // Moon longitude - Sun longitude in degrees, at sunrise
	CalendarSystem  string    `json:"calendar_system"`  // "Purnimanta" or "Amanta"
	IsKshaya        bool      `json:"is_kshaya"`        // true when this Tithi is skipped between consecutive sunrises
	JDEnd           float64   `json:"-"`                // raw Julian Day of EndTime, pre-rounding, for sub-second comparisons
}

// TithiCalculator handles Tithi calculations
type TithiCalculator struct {
	ephemerisManager *ephemeris.Manager
	observer         observability.ObserverInterface
}

// NewTithiCalculator creates a new TithiCalculator
func NewTithiCalculator(ephemerisManager *ephemeris.Manager) *TithiCalculator {
	return &TithiCalculator{
		ephemerisManager: ephemerisManager,
		observer:         observability.Observer(),
	}
}

// TithiNames maps Tithi numbers to their standard Sanskrit names
var TithiNames = map[int]string{
	1: "Pratipada", 2: "Dwitiya", 3: "Tritiya", 4: "Chaturthi", 5: "Panchami",
	6: "Shashthi", 7: "Saptami", 8: "Ashtami", 9: "Navami", 10: "Dashami",
	11: "Ekadashi", 12: "Dwadashi", 13: "Trayodashi", 14: "Chaturdashi", 15: "Purnima",
	16: "Pratipada", 17: "Dwitiya", 18: "Tritiya", 19: "Chaturthi", 20: "Panchami",
	21: "Shashthi", 22: "Saptami", 23: "Ashtami", 24: "Navami", 25: "Dashami",
	26: "Ekadashi", 27: "Dwadashi", 28: "Trayodashi", 29: "Chaturdashi", 30: "Amavasya",
}

// TraditionalTithiNames maps Tithi numbers to traditional Sanskrit names with preferred spellings
var TraditionalTithiNames = map[int]string{
	1: "Pratipada", 2: "Dvithiya", 3: "Thuthiya", 4: "Chathurthi", 5: "Panchami",
	6: "Shashthi", 7: "Sapthami", 8: "Ashtami", 9: "Navami", 10: "Dashami",
	11: "Ekadashi", 12: "Dvadashi", 13: "Thrayodashi", 14: "Chathurdashi", 15: "Pournima",
	16: "Pratipada", 17: "Dvithiya", 18: "Thuthiya", 19: "Chathurthi", 20: "Panchami",
	21: "Shashthi", 22: "Sapthami", 23: "Ashtami", 24: "Navami", 25: "Dashami",
	26: "Ekadashi", 27: "Dvadashi", 28: "Thrayodashi", 29: "Chathurdashi", 30: "Amavasya",
}

// PakshaNames maps paksha day numbers (1-15) to their traditional names
var PakshaNames = map[int]string{
	1: "Pratipada", 2: "Dvithiya", 3: "Thuthiya", 4: "Chathurthi", 5: "Panchami",
	6: "Shashthi", 7: "Sapthami", 8: "Ashtami", 9: "Navami", 10: "Dashami",
	11: "Ekadashi", 12: "Dvadashi", 13: "Thrayodashi", 14: "Chathurdashi", 15: "Pournima",
}

// lunarPhase returns the Moon-minus-Sun tropical longitude difference,
// normalized to [0, 360), at the given instant.
func (tc *TithiCalculator) lunarPhase(ctx context.Context, jdUT float64) (float64, error) {
	return lunarPhaseAt(ctx, tc.ephemerisManager, jdUT)
}

// lunarPhaseAt is the shared Moon-minus-Sun phase computation used by the
// tithi, masa, and solar calculators.
func lunarPhaseAt(ctx context.Context, m *ephemeris.Manager, jdUT float64) (float64, error) {
	moon, err := m.LunarLongitude(ctx, jdUT)
	if err != nil {
		return 0, fmt.Errorf("lunar longitude: %w", err)
	}
	sun, err := m.SolarLongitude(ctx, jdUT)
	if err != nil {
		return 0, fmt.Errorf("solar longitude: %w", err)
	}
	return phaseMod(moon - sun), nil
}

func phaseMod(phase float64) float64 {
	phase = phase - 360.0*float64(int(phase/360.0))
	if phase < 0 {
		phase += 360.0
	}
	return phase
}

// tithiAtMoment returns the Tithi number (1-30) prevailing at the given instant.
func (tc *TithiCalculator) tithiAtMoment(ctx context.Context, jdUT float64) (int, error) {
	return tithiAtMomentAt(ctx, tc.ephemerisManager, jdUT)
}

// tithiAtMomentAt is the shared Tithi-number computation used by the tithi
// and masa calculators.
func tithiAtMomentAt(ctx context.Context, m *ephemeris.Manager, jdUT float64) (int, error) {
	phase, err := lunarPhaseAt(ctx, m, jdUT)
	if err != nil {
		return 0, err
	}
	t := int(phase/12.0) + 1
	if t > 30 {
		t = 30
	}
	return t, nil
}

// findTithiBoundary locates, by bisection, the instant within [jdStart, jdEnd]
// at which the Moon-Sun phase crosses into targetTithi. Fifty iterations
// halve the bracket to well under a second of time.
func (tc *TithiCalculator) findTithiBoundary(ctx context.Context, jdStart, jdEnd float64, targetTithi int) (float64, error) {
	targetPhase := float64(targetTithi-1) * 12.0
	lo, hi := jdStart, jdEnd

	for i := 0; i < 50; i++ {
		mid := (lo + hi) / 2.0
		phase, err := tc.lunarPhase(ctx, mid)
		if err != nil {
			return 0, err
		}
		diff := phase - targetPhase
		if diff > 180.0 {
			diff -= 360.0
		}
		if diff < -180.0 {
			diff += 360.0
		}
		if diff >= 0.0 {
			hi = mid
		} else {
			lo = mid
		}
	}
	return (lo + hi) / 2.0, nil
}

// GetTithiForDate calculates the Tithi prevailing at sunrise for a given date
// and location, using the default Purnimanta calendar system.
func (tc *TithiCalculator) GetTithiForDate(ctx context.Context, date time.Time, loc ephemeris.Location) (*TithiInfo, error) {
	return tc.GetTithiForDateWithCalendarSystem(ctx, date, loc, "Purnimanta")
}

// GetTithiForDateWithCalendarSystem calculates the Tithi prevailing at
// sunrise on the given date, anchoring to sunrise per the sunrise-to-sunrise
// civil day convention, and locates its exact start/end boundaries by
// bisection on the lunar phase.
func (tc *TithiCalculator) GetTithiForDateWithCalendarSystem(ctx context.Context, date time.Time, loc ephemeris.Location, calendarSystem string) (*TithiInfo, error) {
	ctx, span := tc.observer.CreateSpan(ctx, "TithiCalculator.GetTithiForDateWithCalendarSystem")
	defer span.End()

	span.SetAttributes(
		attribute.String("date", date.Format("2006-01-02")),
		attribute.String("calendar_system", calendarSystem),
		attribute.Float64("latitude", loc.Latitude),
		attribute.Float64("longitude", loc.Longitude),
	)

	jd := ephemeris.GregorianToJD(date.Year(), int(date.Month()), float64(date.Day()))

	jdRise, err := tc.ephemerisManager.SunriseJD(ctx, jd, loc)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get sunrise: %w", err)
	}
	if jdRise <= 0.0 {
		jdRise = jd + 0.5 - loc.UTCOffset/24.0
	}

	sunLong, err := tc.ephemerisManager.SolarLongitude(ctx, jdRise)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get solar longitude: %w", err)
	}
	moonLong, err := tc.ephemerisManager.LunarLongitude(ctx, jdRise)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get lunar longitude: %w", err)
	}

	t, err := tc.tithiAtMoment(ctx, jdRise)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to determine tithi at sunrise: %w", err)
	}

	jdStart, err := tc.findTithiBoundary(ctx, jdRise-2.0, jdRise, t)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to locate tithi start boundary: %w", err)
	}
	nextTithi := (t % 30) + 1
	jdEnd, err := tc.findTithiBoundary(ctx, jdRise, jdRise+2.0, nextTithi)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to locate tithi end boundary: %w", err)
	}

	isKshaya, err := tc.detectKshaya(ctx, jd, loc, t)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to check kshaya tithi: %w", err)
	}

	tithi := tc.buildTithiInfo(t, jdStart, jdEnd, phaseMod(moonLong-sunLong), calendarSystem, isKshaya)

	span.SetAttributes(
		attribute.Int("tithi_number", tithi.Number),
		attribute.String("tithi_name", tithi.Name),
		attribute.String("paksha", tithi.Paksha),
		attribute.Int("paksha_day", tithi.PakshaDay),
		attribute.String("traditional_name", tithi.TraditionalName),
		attribute.String("tithi_type", string(tithi.Type)),
		attribute.Bool("is_shukla", tithi.IsShukla),
		attribute.Float64("moon_sun_diff", tithi.MoonSunDiff),
		attribute.String("calendar_system", tithi.CalendarSystem),
		attribute.Bool("is_kshaya", tithi.IsKshaya),
	)
	span.AddEvent("Tithi calculated", trace.WithAttributes(
		attribute.Int("tithi_number", tithi.Number),
		attribute.String("tithi_name", tithi.Name),
		attribute.String("paksha", tithi.Paksha),
	))

	return tithi, nil
}

// detectKshaya reports whether tomorrow's sunrise Tithi is more than one
// step past today's — i.e. a Tithi begins and ends wholly between the two
// consecutive sunrises and so is skipped in the civil reckoning.
func (tc *TithiCalculator) detectKshaya(ctx context.Context, jd float64, loc ephemeris.Location, t int) (bool, error) {
	jdRiseTomorrow, err := tc.ephemerisManager.SunriseJD(ctx, jd+1.0, loc)
	if err != nil || jdRiseTomorrow <= 0.0 {
		return false, nil
	}
	tTomorrow, err := tc.tithiAtMoment(ctx, jdRiseTomorrow)
	if err != nil {
		return false, err
	}
	diff := ((tTomorrow - t) + 30) % 30
	return diff > 1, nil
}

// buildTithiInfo assembles a TithiInfo from a resolved Tithi number and its
// exact JD boundaries, applying the Amanta/Purnimanta paksha-day convention.
func (tc *TithiCalculator) buildTithiInfo(baseTithiNumber int, jdStart, jdEnd, moonSunDiff float64, calendarSystem string, isKshaya bool) *TithiInfo {
	var tithiNumber, pakshaDay int
	var paksha string
	var isShukla bool
	var traditionalName string

	if calendarSystem == "Amanta" {
		if baseTithiNumber <= 15 {
			isShukla = true
			paksha = "Shukla"
			pakshaDay = baseTithiNumber
		} else {
			isShukla = false
			paksha = "Krishna"
			pakshaDay = baseTithiNumber - 15
		}
		tithiNumber = baseTithiNumber
		if pakshaDay == 15 && !isShukla {
			traditionalName = "Amavasya"
		} else {
			traditionalName = PakshaNames[pakshaDay]
		}
	} else {
		if baseTithiNumber <= 15 {
			isShukla = true
			paksha = "Shukla"
			pakshaDay = baseTithiNumber
		} else {
			isShukla = false
			paksha = "Krishna"
			pakshaDay = baseTithiNumber - 15
		}
		tithiNumber = baseTithiNumber
		traditionalName = TraditionalTithiNames[baseTithiNumber]
	}

	tithiName := TithiNames[baseTithiNumber]
	tithiType := getTithiType(pakshaDay)
	startTime := jdToTime(jdStart)
	endTime := jdToTime(jdEnd)

	return &TithiInfo{
		Number:          tithiNumber,
		Name:            tithiName,
		Type:            tithiType,
		StartTime:       startTime,
		EndTime:         endTime,
		Duration:        endTime.Sub(startTime).Hours(),
		IsShukla:        isShukla,
		Paksha:          paksha,
		PakshaDay:       pakshaDay,
		TraditionalName: traditionalName,
		MoonSunDiff:     moonSunDiff,
		CalendarSystem:  calendarSystem,
		IsKshaya:        isKshaya,
		JDEnd:           jdEnd,
	}
}

// jdToTime converts a UT Julian Day to a UTC time.Time.
func jdToTime(jd float64) time.Time {
	year, month, day, hour := ephemeris.JDToGregorian(jd)
	h := int(hour)
	frac := (hour - float64(h)) * 60.0
	min := int(frac)
	sec := int((frac - float64(min)) * 60.0)
	return time.Date(year, time.Month(month), day, h, min, sec, 0, time.UTC)
}

// getTithiType returns the type/category of a Tithi
func getTithiType(tithiNumber int) TithiType {
	normalizedTithi := tithiNumber
	if normalizedTithi > 15 {
		normalizedTithi = normalizedTithi - 15
	}

	switch normalizedTithi {
	case 1, 6, 11:
		return TithiTypeNanda
	case 2, 7, 12:
		return TithiTypeBhadra
	case 3, 8, 13:
		return TithiTypeJaya
	case 4, 9, 14:
		return TithiTypeRikta
	case 5, 10, 15:
		return TithiTypePurna
	default:
		return TithiTypeNanda
	}
}

// GetTithiFromLongitudes computes Tithi bookkeeping directly from already
// known longitudes, without boundary bisection, useful when a caller already
// has both positions (e.g. from a cached PanchangDay) and only needs naming.
func (tc *TithiCalculator) GetTithiFromLongitudes(ctx context.Context, sunLong, moonLong float64, calendarSystem string) *TithiInfo {
	moonSunDiff := phaseMod(moonLong - sunLong)
	baseTithiNumber := int(moonSunDiff/12.0) + 1
	if baseTithiNumber > 30 {
		baseTithiNumber = 30
	}
	if baseTithiNumber < 1 {
		baseTithiNumber = 1
	}
	return tc.buildTithiInfo(baseTithiNumber, 0, 0, moonSunDiff, calendarSystem, false)
}

// GetTithiTypeDescription returns a description of the Tithi type
func GetTithiTypeDescription(tithiType TithiType) string {
	switch tithiType {
	case TithiTypeNanda:
		return "Joyful, good for celebrations and new beginnings"
	case TithiTypeBhadra:
		return "Auspicious, good for all activities"
	case TithiTypeJaya:
		return "Victorious, good for achieving success"
	case TithiTypeRikta:
		return "Empty, avoid starting new ventures"
	case TithiTypePurna:
		return "Complete, excellent for completion of tasks"
	default:
		return "Unknown Tithi type"
	}
}

// ValidateTithiCalculation validates a Tithi calculation result
func ValidateTithiCalculation(tithi *TithiInfo) error {
	if tithi == nil {
		return fmt.Errorf("tithi cannot be nil")
	}

	if tithi.Number < 1 || tithi.Number > 30 {
		return fmt.Errorf("invalid tithi number: %d, must be between 1 and 30", tithi.Number)
	}

	if tithi.PakshaDay < 1 || tithi.PakshaDay > 15 {
		return fmt.Errorf("invalid paksha day: %d, must be between 1 and 15", tithi.PakshaDay)
	}

	if tithi.Paksha != "Shukla" && tithi.Paksha != "Krishna" {
		return fmt.Errorf("invalid paksha: %s, must be Shukla or Krishna", tithi.Paksha)
	}

	if tithi.CalendarSystem != "Purnimanta" && tithi.CalendarSystem != "Amanta" {
		return fmt.Errorf("invalid calendar system: %s, must be Purnimanta or Amanta", tithi.CalendarSystem)
	}

	if tithi.MoonSunDiff < 0 || tithi.MoonSunDiff >= 360 {
		return fmt.Errorf("invalid moon-sun difference: %f, must be between 0 and 360 degrees", tithi.MoonSunDiff)
	}

	if tithi.EndTime.Before(tithi.StartTime) {
		return fmt.Errorf("tithi end time cannot be before start time")
	}

	if tithi.Name == "" || tithi.TraditionalName == "" {
		return fmt.Errorf("tithi names cannot be empty")
	}

	return nil
}
