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

// YogaQuality represents the auspicious nature of a Yoga
type YogaQuality string

const (
	YogaQualityAuspicious   YogaQuality = "Auspicious"
	YogaQualityInauspicious YogaQuality = "Inauspicious"
	YogaQualityMixed        YogaQuality = "Mixed"
	YogaQualityNeutral      YogaQuality = "Neutral"
)

// YogaInfo represents a Yoga with its properties
type YogaInfo struct {
	Number        int         `json:"number"`         // 1-27
	Name          string      `json:"name"`           // Sanskrit name
	Quality       YogaQuality `json:"quality"`        // Auspicious nature
	Description   string      `json:"description"`    // Meaning and effects
	StartTime     time.Time   `json:"start_time"`     // When this Yoga begins
	EndTime       time.Time   `json:"end_time"`       // When this Yoga ends
	Duration      float64     `json:"duration"`       // Duration in hours
	SunLongitude  float64     `json:"sun_longitude"`  // Sun's sidereal longitude in degrees
	MoonLongitude float64     `json:"moon_longitude"` // Moon's sidereal longitude in degrees
	CombinedValue float64     `json:"combined_value"` // Sum of Sun and Moon sidereal longitudes, mod 360
}

// YogaCalculator handles Yoga calculations
type YogaCalculator struct {
	ephemerisManager *ephemeris.Manager
	observer         observability.ObserverInterface
}

// NewYogaCalculator creates a new YogaCalculator
func NewYogaCalculator(ephemerisManager *ephemeris.Manager) *YogaCalculator {
	return &YogaCalculator{
		ephemerisManager: ephemerisManager,
		observer:         observability.Observer(),
	}
}

// YogaData contains detailed information about each Yoga
// Sources:
// - "Brihat Parashara Hora Shastra" by Sage Parashara
// - "Muhurta Chintamani" by Daivagya Ramachandra
// - "Hindu Astronomy" by W.E. van Wijk (1930)
// - "Surya Siddhanta" - Ancient Sanskrit astronomical text
var YogaData = map[int]struct {
	Name        string
	Quality     YogaQuality
	Description string
}{
	1:  {"Vishkambha", YogaQualityInauspicious, "Obstructive, delays and obstacles"},
	2:  {"Priti", YogaQualityAuspicious, "Love and affection, good for relationships"},
	3:  {"Ayushman", YogaQualityAuspicious, "Longevity, health and vitality"},
	4:  {"Saubhagya", YogaQualityAuspicious, "Good fortune, prosperity and happiness"},
	5:  {"Shobhana", YogaQualityAuspicious, "Beauty, auspicious for ceremonies"},
	6:  {"Atiganda", YogaQualityInauspicious, "Great danger, avoid important work"},
	7:  {"Sukarma", YogaQualityAuspicious, "Good deeds, meritorious actions"},
	8:  {"Dhriti", YogaQualityAuspicious, "Determination, steadfastness"},
	9:  {"Shula", YogaQualityInauspicious, "Pain and suffering, inauspicious"},
	10: {"Ganda", YogaQualityInauspicious, "Danger, avoid travel and new ventures"},
	11: {"Vriddhi", YogaQualityAuspicious, "Growth and prosperity"},
	12: {"Dhruva", YogaQualityAuspicious, "Stability, permanent gains"},
	13: {"Vyaghata", YogaQualityInauspicious, "Destruction, avoid important work"},
	14: {"Harshana", YogaQualityAuspicious, "Joy and happiness"},
	15: {"Vajra", YogaQualityMixed, "Diamond-like strength, can be harsh"},
	16: {"Siddhi", YogaQualityAuspicious, "Success and achievement"},
	17: {"Vyatipata", YogaQualityInauspicious, "Great calamity, very inauspicious"},
	18: {"Variyana", YogaQualityMixed, "Choice and selection, mixed results"},
	19: {"Parigha", YogaQualityInauspicious, "Iron rod, obstacles and delays"},
	20: {"Shiva", YogaQualityAuspicious, "Auspicious, beneficial for all activities"},
	21: {"Siddha", YogaQualityAuspicious, "Accomplished, success assured"},
	22: {"Sadhya", YogaQualityAuspicious, "Achievable, goals can be accomplished"},
	23: {"Shubha", YogaQualityAuspicious, "Pure and auspicious"},
	24: {"Shukla", YogaQualityAuspicious, "Bright and pure"},
	25: {"Brahma", YogaQualityAuspicious, "Divine, highly auspicious"},
	26: {"Indra", YogaQualityAuspicious, "Royal, powerful and prosperous"},
	27: {"Vaidhriti", YogaQualityInauspicious, "Separation, avoid joint ventures"},
}

const yogaSpan = 360.0 / 27.0

// siderealCombinedLongitude returns (Sun sidereal, Moon sidereal, sum mod 360).
func (yc *YogaCalculator) siderealCombinedLongitude(ctx context.Context, jdUT float64) (float64, float64, float64, error) {
	sunTropical, err := yc.ephemerisManager.SolarLongitude(ctx, jdUT)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("solar longitude: %w", err)
	}
	moonTropical, err := yc.ephemerisManager.LunarLongitude(ctx, jdUT)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("lunar longitude: %w", err)
	}
	ayan, err := yc.ephemerisManager.Ayanamsa(ctx, jdUT)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("ayanamsa: %w", err)
	}
	sunSid := phaseMod(sunTropical - ayan)
	moonSid := phaseMod(moonTropical - ayan)
	return sunSid, moonSid, phaseMod(sunSid + moonSid), nil
}

// findYogaBoundary locates, by bisection, the instant at which the combined
// Sun+Moon sidereal longitude crosses into targetYoga.
func (yc *YogaCalculator) findYogaBoundary(ctx context.Context, jdStart, jdEnd float64, targetYoga int) (float64, error) {
	targetLong := float64(targetYoga-1) * yogaSpan
	lo, hi := jdStart, jdEnd

	for i := 0; i < 50; i++ {
		mid := (lo + hi) / 2.0
		_, _, combined, err := yc.siderealCombinedLongitude(ctx, mid)
		if err != nil {
			return 0, err
		}
		diff := combined - targetLong
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

// GetYogaForDate calculates the Yoga prevailing at noon on the given date.
func (yc *YogaCalculator) GetYogaForDate(ctx context.Context, date time.Time) (*YogaInfo, error) {
	ctx, span := yc.observer.CreateSpan(ctx, "YogaCalculator.GetYogaForDate")
	defer span.End()

	span.SetAttributes(attribute.String("date", date.Format("2006-01-02")))

	jd := ephemeris.JulDay(date.Year(), int(date.Month()), date.Day(), 12.0)

	sunLong, moonLong, combined, err := yc.siderealCombinedLongitude(ctx, jd)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get positions: %w", err)
	}

	yoga, err := yc.calculateYogaFromLongitudes(ctx, jd, sunLong, moonLong, combined)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("yoga_number", yoga.Number),
		attribute.String("yoga_name", yoga.Name),
		attribute.String("yoga_quality", string(yoga.Quality)),
		attribute.Float64("combined_value", yoga.CombinedValue),
	)
	span.AddEvent("Yoga calculated", trace.WithAttributes(
		attribute.Int("yoga_number", yoga.Number),
		attribute.String("yoga_name", yoga.Name),
		attribute.String("yoga_quality", string(yoga.Quality)),
	))

	return yoga, nil
}

// calculateYogaFromLongitudes builds a YogaInfo, locating exact boundaries
// by bisection on the combined sidereal longitude.
func (yc *YogaCalculator) calculateYogaFromLongitudes(ctx context.Context, jdUT, sunLong, moonLong, combinedValue float64) (*YogaInfo, error) {
	yogaFloat := combinedValue / yogaSpan
	yogaNumber := int(yogaFloat) + 1
	if yogaNumber > 27 {
		yogaNumber = 27
	}
	if yogaNumber < 1 {
		yogaNumber = 1
	}

	yogaDetails := YogaData[yogaNumber]

	jdStart, err := yc.findYogaBoundary(ctx, jdUT-2.0, jdUT, yogaNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to locate yoga start: %w", err)
	}
	nextYoga := (yogaNumber % 27) + 1
	jdEnd, err := yc.findYogaBoundary(ctx, jdUT, jdUT+2.0, nextYoga)
	if err != nil {
		return nil, fmt.Errorf("failed to locate yoga end: %w", err)
	}

	startTime := jdToTime(jdStart)
	endTime := jdToTime(jdEnd)

	return &YogaInfo{
		Number:        yogaNumber,
		Name:          yogaDetails.Name,
		Quality:       yogaDetails.Quality,
		Description:   yogaDetails.Description,
		StartTime:     startTime,
		EndTime:       endTime,
		Duration:      endTime.Sub(startTime).Hours(),
		SunLongitude:  sunLong,
		MoonLongitude: moonLong,
		CombinedValue: combinedValue,
	}, nil
}

// GetYogaFromLongitudes is a convenience function for direct sidereal
// longitude input, without boundary bisection.
func (yc *YogaCalculator) GetYogaFromLongitudes(sunLong, moonLong float64) *YogaInfo {
	sunSid := phaseMod(sunLong)
	moonSid := phaseMod(moonLong)
	combined := phaseMod(sunSid + moonSid)
	yogaNumber := int(combined/yogaSpan) + 1
	if yogaNumber > 27 {
		yogaNumber = 27
	}
	if yogaNumber < 1 {
		yogaNumber = 1
	}
	details := YogaData[yogaNumber]
	return &YogaInfo{
		Number:        yogaNumber,
		Name:          details.Name,
		Quality:       details.Quality,
		Description:   details.Description,
		SunLongitude:  sunSid,
		MoonLongitude: moonSid,
		CombinedValue: combined,
	}
}

// IsAuspiciousYoga returns true if the Yoga is considered auspicious
func IsAuspiciousYoga(yoga *YogaInfo) bool {
	return yoga.Quality == YogaQualityAuspicious
}

// IsInauspiciousYoga returns true if the Yoga is considered inauspicious
func IsInauspiciousYoga(yoga *YogaInfo) bool {
	return yoga.Quality == YogaQualityInauspicious
}

// GetYogaQualityDescription returns a detailed description of the Yoga quality
func GetYogaQualityDescription(quality YogaQuality) string {
	switch quality {
	case YogaQualityAuspicious:
		return "Favorable for all activities, brings good fortune and success"
	case YogaQualityInauspicious:
		return "Unfavorable, avoid important activities and new ventures"
	case YogaQualityMixed:
		return "Mixed results, proceed with caution and careful planning"
	case YogaQualityNeutral:
		return "Neutral influence, neither particularly favorable nor unfavorable"
	default:
		return "Unknown yoga quality"
	}
}

// ValidateYogaCalculation validates a Yoga calculation result
func ValidateYogaCalculation(yoga *YogaInfo) error {
	if yoga == nil {
		return fmt.Errorf("yoga cannot be nil")
	}

	if yoga.Number < 1 || yoga.Number > 27 {
		return fmt.Errorf("invalid yoga number: %d, must be between 1 and 27", yoga.Number)
	}

	if yoga.SunLongitude < 0 || yoga.SunLongitude >= 360 {
		return fmt.Errorf("invalid sun longitude: %f, must be between 0 and 360 degrees", yoga.SunLongitude)
	}

	if yoga.MoonLongitude < 0 || yoga.MoonLongitude >= 360 {
		return fmt.Errorf("invalid moon longitude: %f, must be between 0 and 360 degrees", yoga.MoonLongitude)
	}

	if yoga.CombinedValue < 0 || yoga.CombinedValue >= 360 {
		return fmt.Errorf("invalid combined value: %f, must be between 0 and 360 degrees", yoga.CombinedValue)
	}

	if yoga.Name == "" {
		return fmt.Errorf("yoga name cannot be empty")
	}

	switch yoga.Quality {
	case YogaQualityAuspicious, YogaQualityInauspicious, YogaQualityMixed, YogaQualityNeutral:
	default:
		return fmt.Errorf("invalid yoga quality: %s", yoga.Quality)
	}

	return nil
}
