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

// NakshatraInfo represents a Nakshatra with its properties
type NakshatraInfo struct {
	Number        int       `json:"number"`         // 1-27
	Name          string    `json:"name"`           // Sanskrit name
	Deity         string    `json:"deity"`          // Ruling deity
	PlanetaryLord string    `json:"planetary_lord"` // Ruling planet
	Symbol        string    `json:"symbol"`         // Traditional symbol
	Pada          int       `json:"pada"`           // Current pada (1-4)
	StartTime     time.Time `json:"start_time"`     // When this Nakshatra begins
	EndTime       time.Time `json:"end_time"`       // When this Nakshatra ends
	Duration      float64   `json:"duration"`       // Duration in hours
	MoonLongitude float64   `json:"moon_longitude"` // Moon's sidereal (nirayana) longitude in degrees
}

// NakshatraCalculator handles Nakshatra calculations
type NakshatraCalculator struct {
	ephemerisManager *ephemeris.Manager
	observer         observability.ObserverInterface
}

// NewNakshatraCalculator creates a new NakshatraCalculator
func NewNakshatraCalculator(ephemerisManager *ephemeris.Manager) *NakshatraCalculator {
	return &NakshatraCalculator{
		ephemerisManager: ephemerisManager,
		observer:         observability.Observer(),
	}
}

const nakshatraSpan = 360.0 / 27.0 // 13.333... degrees
const padaSpan = nakshatraSpan / 4.0

// NakshatraData contains detailed information about each Nakshatra
// Sources:
// - "Hindu Astronomy" by W.E. van Wijk (1930)
// - "Surya Siddhanta" - Ancient Sanskrit astronomical text
// - "Brihat Parashara Hora Shastra" by Sage Parashara
// - "Muhurta Chintamani" by Daivagya Ramachandra
var NakshatraData = map[int]struct {
	Name          string
	Deity         string
	PlanetaryLord string
	Symbol        string
}{
	1:  {"Ashwini", "Ashwini Kumaras", "Ketu", "Horse's Head"},
	2:  {"Bharani", "Yama", "Venus", "Yoni (Vagina)"},
	3:  {"Krittika", "Agni", "Sun", "Razor/Knife"},
	4:  {"Rohini", "Brahma", "Moon", "Cart/Chariot"},
	5:  {"Mrigashira", "Soma", "Mars", "Deer's Head"},
	6:  {"Ardra", "Rudra", "Rahu", "Teardrop/Diamond"},
	7:  {"Punarvasu", "Aditi", "Jupiter", "Bow and Quiver"},
	8:  {"Pushya", "Brihaspati", "Saturn", "Cow's Udder"},
	9:  {"Ashlesha", "Nagas", "Mercury", "Serpent"},
	10: {"Magha", "Pitrs (Ancestors)", "Ketu", "Throne"},
	11: {"Purva Phalguni", "Bhaga", "Venus", "Front Legs of Bed"},
	12: {"Uttara Phalguni", "Aryaman", "Sun", "Back Legs of Bed"},
	13: {"Hasta", "Savitar", "Moon", "Hand"},
	14: {"Chitra", "Tvashtar", "Mars", "Bright Jewel"},
	15: {"Swati", "Vayu", "Rahu", "Young Shoot of Plant"},
	16: {"Vishakha", "Indra-Agni", "Jupiter", "Triumphal Arch"},
	17: {"Anuradha", "Mitra", "Saturn", "Lotus"},
	18: {"Jyeshtha", "Indra", "Mercury", "Circular Amulet"},
	19: {"Mula", "Nirriti", "Ketu", "Bunch of Roots"},
	20: {"Purva Ashadha", "Apas", "Venus", "Elephant Tusk"},
	21: {"Uttara Ashadha", "Vishve Devas", "Sun", "Elephant Tusk"},
	22: {"Shravana", "Vishnu", "Moon", "Ear/Three Footprints"},
	23: {"Dhanishta", "Vasus", "Mars", "Drum"},
	24: {"Shatabhisha", "Varuna", "Rahu", "Empty Circle"},
	25: {"Purva Bhadrapada", "Aja Ekapada", "Jupiter", "Front Legs of Funeral Cot"},
	26: {"Uttara Bhadrapada", "Ahir Budhnya", "Saturn", "Back Legs of Funeral Cot"},
	27: {"Revati", "Pushan", "Mercury", "Fish/Pair of Fish"},
}

// siderealMoonLongitude returns the Moon's nirayana (sidereal) longitude at
// jdUT: tropical longitude minus the Lahiri ayanamsa.
func (nc *NakshatraCalculator) siderealMoonLongitude(ctx context.Context, jdUT float64) (float64, error) {
	tropical, err := nc.ephemerisManager.LunarLongitude(ctx, jdUT)
	if err != nil {
		return 0, fmt.Errorf("lunar longitude: %w", err)
	}
	ayan, err := nc.ephemerisManager.Ayanamsa(ctx, jdUT)
	if err != nil {
		return 0, fmt.Errorf("ayanamsa: %w", err)
	}
	return phaseMod(tropical - ayan), nil
}

// findNakshatraBoundary locates, by bisection, the instant in [jdStart, jdEnd]
// at which the Moon's sidereal longitude crosses into targetNakshatra.
func (nc *NakshatraCalculator) findNakshatraBoundary(ctx context.Context, jdStart, jdEnd float64, targetNakshatra int) (float64, error) {
	targetLong := float64(targetNakshatra-1) * nakshatraSpan
	lo, hi := jdStart, jdEnd

	for i := 0; i < 50; i++ {
		mid := (lo + hi) / 2.0
		long, err := nc.siderealMoonLongitude(ctx, mid)
		if err != nil {
			return 0, err
		}
		diff := long - targetLong
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

// GetNakshatraForDate calculates the Nakshatra prevailing at noon on the
// given date.
func (nc *NakshatraCalculator) GetNakshatraForDate(ctx context.Context, date time.Time) (*NakshatraInfo, error) {
	ctx, span := nc.observer.CreateSpan(ctx, "NakshatraCalculator.GetNakshatraForDate")
	defer span.End()

	span.SetAttributes(attribute.String("date", date.Format("2006-01-02")))

	jd := ephemeris.JulDay(date.Year(), int(date.Month()), date.Day(), 12.0)

	moonLong, err := nc.siderealMoonLongitude(ctx, jd)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get moon longitude: %w", err)
	}

	nakshatra, err := nc.calculateNakshatraFromLongitude(ctx, jd, moonLong)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("nakshatra_number", nakshatra.Number),
		attribute.String("nakshatra_name", nakshatra.Name),
		attribute.String("deity", nakshatra.Deity),
		attribute.String("planetary_lord", nakshatra.PlanetaryLord),
		attribute.Int("pada", nakshatra.Pada),
		attribute.Float64("moon_longitude", nakshatra.MoonLongitude),
	)
	span.AddEvent("Nakshatra calculated", trace.WithAttributes(
		attribute.Int("nakshatra_number", nakshatra.Number),
		attribute.String("nakshatra_name", nakshatra.Name),
		attribute.Int("pada", nakshatra.Pada),
	))

	return nakshatra, nil
}

// calculateNakshatraFromLongitude builds a NakshatraInfo from the Moon's
// sidereal longitude at jdUT, locating exact boundaries by bisection.
func (nc *NakshatraCalculator) calculateNakshatraFromLongitude(ctx context.Context, jdUT, moonLong float64) (*NakshatraInfo, error) {
	normalizedLong := phaseMod(moonLong)

	nakshatraFloat := normalizedLong / nakshatraSpan
	nakshatraNumber := int(nakshatraFloat) + 1
	if nakshatraNumber > 27 {
		nakshatraNumber = 27
	}
	if nakshatraNumber < 1 {
		nakshatraNumber = 1
	}

	positionInNakshatra := normalizedLong - float64(nakshatraNumber-1)*nakshatraSpan
	pada := int(positionInNakshatra/padaSpan) + 1
	if pada > 4 {
		pada = 4
	}
	if pada < 1 {
		pada = 1
	}

	nakshatraDetails := NakshatraData[nakshatraNumber]

	jdStart, err := nc.findNakshatraBoundary(ctx, jdUT-2.0, jdUT, nakshatraNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to locate nakshatra start: %w", err)
	}
	nextNakshatra := (nakshatraNumber % 27) + 1
	jdEnd, err := nc.findNakshatraBoundary(ctx, jdUT, jdUT+2.0, nextNakshatra)
	if err != nil {
		return nil, fmt.Errorf("failed to locate nakshatra end: %w", err)
	}

	startTime := jdToTime(jdStart)
	endTime := jdToTime(jdEnd)

	return &NakshatraInfo{
		Number:        nakshatraNumber,
		Name:          nakshatraDetails.Name,
		Deity:         nakshatraDetails.Deity,
		PlanetaryLord: nakshatraDetails.PlanetaryLord,
		Symbol:        nakshatraDetails.Symbol,
		Pada:          pada,
		StartTime:     startTime,
		EndTime:       endTime,
		Duration:      endTime.Sub(startTime).Hours(),
		MoonLongitude: normalizedLong,
	}, nil
}

// GetNakshatraFromLongitude is a convenience function for direct sidereal
// longitude input, without boundary bisection.
func (nc *NakshatraCalculator) GetNakshatraFromLongitude(moonLong float64) *NakshatraInfo {
	normalizedLong := phaseMod(moonLong)
	nakshatraFloat := normalizedLong / nakshatraSpan
	nakshatraNumber := int(nakshatraFloat) + 1
	if nakshatraNumber > 27 {
		nakshatraNumber = 27
	}
	positionInNakshatra := normalizedLong - float64(nakshatraNumber-1)*nakshatraSpan
	pada := int(positionInNakshatra/padaSpan) + 1
	if pada > 4 {
		pada = 4
	}
	details := NakshatraData[nakshatraNumber]
	return &NakshatraInfo{
		Number:        nakshatraNumber,
		Name:          details.Name,
		Deity:         details.Deity,
		PlanetaryLord: details.PlanetaryLord,
		Symbol:        details.Symbol,
		Pada:          pada,
		MoonLongitude: normalizedLong,
	}
}

// GetPadaDescription returns a description of the Pada
func GetPadaDescription(nakshatraNumber, pada int) string {
	switch pada {
	case 1:
		return "First pada - represents new beginnings and initiation"
	case 2:
		return "Second pada - represents growth and development"
	case 3:
		return "Third pada - represents maturity and stability"
	case 4:
		return "Fourth pada - represents completion and transformation"
	default:
		return "Unknown pada"
	}
}

// ValidateNakshatraCalculation validates a Nakshatra calculation result
func ValidateNakshatraCalculation(nakshatra *NakshatraInfo) error {
	if nakshatra == nil {
		return fmt.Errorf("nakshatra cannot be nil")
	}

	if nakshatra.Number < 1 || nakshatra.Number > 27 {
		return fmt.Errorf("invalid nakshatra number: %d, must be between 1 and 27", nakshatra.Number)
	}

	if nakshatra.Pada < 1 || nakshatra.Pada > 4 {
		return fmt.Errorf("invalid pada: %d, must be between 1 and 4", nakshatra.Pada)
	}

	if nakshatra.MoonLongitude < 0 || nakshatra.MoonLongitude >= 360 {
		return fmt.Errorf("invalid moon longitude: %f, must be between 0 and 360 degrees", nakshatra.MoonLongitude)
	}

	if nakshatra.Name == "" {
		return fmt.Errorf("nakshatra name cannot be empty")
	}

	return nil
}
