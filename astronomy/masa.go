package astronomy

import (
	"context"
	"fmt"
	"time"

	"github.com/vedic-go/panchangam/ephemeris"
	"github.com/vedic-go/panchangam/observability"
	"go.opentelemetry.io/otel/attribute"
)

// MasaName identifies one of the 12 lunar months by number, Chaitra=1
// through Phalguna=12.
type MasaName int

const (
	Chaitra MasaName = iota + 1
	Vaishakha
	Jyeshtha
	Ashadha
	Shravana
	Bhadrapada
	Ashvina
	Kartika
	Margashirsha
	Pausha
	Magha
	Phalguna
)

// MasaNames maps a MasaName to its display name.
var MasaNames = map[MasaName]string{
	Chaitra:      "Chaitra",
	Vaishakha:    "Vaishakha",
	Jyeshtha:     "Jyeshtha",
	Ashadha:      "Ashadha",
	Shravana:     "Shravana",
	Bhadrapada:   "Bhadrapada",
	Ashvina:      "Ashvina",
	Kartika:      "Kartika",
	Margashirsha: "Margashirsha",
	Pausha:       "Pausha",
	Magha:        "Magha",
	Phalguna:     "Phalguna",
}

// MasaNameFromNumber converts a 1-12 month number to its MasaName, defaulting
// to Chaitra for out-of-range input.
func MasaNameFromNumber(n int) MasaName {
	if n < 1 || n > 12 {
		return Chaitra
	}
	return MasaName(n)
}

func (m MasaName) String() string {
	if name, ok := MasaNames[m]; ok {
		return name
	}
	return "Unknown"
}

// MasaInfo describes the lunar month (masa) containing a given date.
type MasaInfo struct {
	Name       MasaName  `json:"name"`
	MasaNumber int       `json:"masa_number"`
	IsAdhika   bool       `json:"is_adhika"` // true when this is an intercalary (leap) month
	YearSaka   int       `json:"year_saka"`
	YearVikram int       `json:"year_vikram"`
	StartTime  time.Time `json:"start_time"` // new moon beginning the masa
	EndTime    time.Time `json:"end_time"`   // new moon ending the masa
}

// MasaCalculator handles lunar-month (masa) calculations.
type MasaCalculator struct {
	ephemerisManager *ephemeris.Manager
	observer         observability.ObserverInterface
}

// NewMasaCalculator creates a new MasaCalculator.
func NewMasaCalculator(ephemerisManager *ephemeris.Manager) *MasaCalculator {
	return &MasaCalculator{
		ephemerisManager: ephemerisManager,
		observer:         observability.Observer(),
	}
}

// inverseLagrange performs Lagrange interpolation of x as a function of y,
// evaluated at ya, over n sample points.
func inverseLagrange(x, y []float64, ya float64) float64 {
	n := len(x)
	total := 0.0
	for i := 0; i < n; i++ {
		numer := 1.0
		denom := 1.0
		for j := 0; j < n; j++ {
			if j != i {
				numer *= ya - y[j]
				denom *= y[i] - y[j]
			}
		}
		total += numer * x[i] / denom
	}
	return total
}

// unwrapAngles adds 360 to each sample that dips below its predecessor, so a
// wrapping phase series becomes monotonic for interpolation.
func unwrapAngles(angles []float64) {
	for i := 1; i < len(angles); i++ {
		if angles[i] < angles[i-1] {
			angles[i] += 360.0
		}
	}
}

// sampleLunarPhase samples the lunar phase at 17 points spanning [start-2, start+2]
// in quarter-day steps, for inverse-Lagrange new-moon bracketing.
func (mc *MasaCalculator) sampleLunarPhase(ctx context.Context, start float64) ([17]float64, [17]float64, error) {
	var x, y [17]float64
	for i := 0; i < 17; i++ {
		x[i] = -2.0 + float64(i)*0.25
		phase, err := lunarPhaseAt(ctx, mc.ephemerisManager, start+x[i])
		if err != nil {
			return x, y, err
		}
		y[i] = phase
	}
	unwrapAngles(y[:])
	return x, y, nil
}

// newMoonBefore locates the new moon preceding jdUT, given the Tithi
// prevailing at jdUT as a hint for how far back to search.
func (mc *MasaCalculator) newMoonBefore(ctx context.Context, jdUT float64, tithiHint int) (float64, error) {
	start := jdUT - float64(tithiHint)
	x, y, err := mc.sampleLunarPhase(ctx, start)
	if err != nil {
		return 0, err
	}
	y0 := inverseLagrange(x[:], y[:], 360.0)
	return start + y0, nil
}

// newMoonAfter locates the new moon following jdUT.
func (mc *MasaCalculator) newMoonAfter(ctx context.Context, jdUT float64, tithiHint int) (float64, error) {
	start := jdUT + float64(30-tithiHint)
	x, y, err := mc.sampleLunarPhase(ctx, start)
	if err != nil {
		return 0, err
	}
	y0 := inverseLagrange(x[:], y[:], 360.0)
	return start + y0, nil
}

// solarRashi returns the 1-12 sidereal zodiac sign (rashi) occupied by the
// Sun at jdUT.
func (mc *MasaCalculator) solarRashi(ctx context.Context, jdUT float64) (int, error) {
	tropical, err := mc.ephemerisManager.SolarLongitude(ctx, jdUT)
	if err != nil {
		return 0, fmt.Errorf("solar longitude: %w", err)
	}
	ayan, err := mc.ephemerisManager.Ayanamsa(ctx, jdUT)
	if err != nil {
		return 0, fmt.Errorf("ayanamsa: %w", err)
	}
	nirayana := phaseMod(tropical - ayan)
	rashi := int(ceilDiv30(nirayana))
	if rashi <= 0 {
		rashi = 12
	}
	if rashi > 12 {
		rashi = rashi % 12
	}
	if rashi == 0 {
		rashi = 12
	}
	return rashi, nil
}

func ceilDiv30(x float64) float64 {
	q := x / 30.0
	if q == float64(int(q)) {
		return q
	}
	return float64(int(q)) + 1
}

// GetMasaForDate calculates the lunar month (masa) containing the given
// date, anchored to sunrise, following the adhika-masa test: if the Sun's
// rashi is unchanged between the preceding and following new moons, the
// masa bracketed by them is intercalary.
func (mc *MasaCalculator) GetMasaForDate(ctx context.Context, date time.Time, loc ephemeris.Location) (*MasaInfo, error) {
	ctx, span := mc.observer.CreateSpan(ctx, "MasaCalculator.GetMasaForDate")
	defer span.End()

	span.SetAttributes(attribute.String("date", date.Format("2006-01-02")))

	jd := ephemeris.GregorianToJD(date.Year(), int(date.Month()), float64(date.Day()))

	jdRise, err := mc.ephemerisManager.SunriseJD(ctx, jd, loc)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get sunrise: %w", err)
	}
	if jdRise <= 0.0 {
		jdRise = jd + 0.5 - loc.UTCOffset/24.0
	}

	t, err := tithiAtMomentAt(ctx, mc.ephemerisManager, jdRise)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to determine tithi at sunrise: %w", err)
	}

	lastNM, err := mc.newMoonBefore(ctx, jdRise, t)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to locate preceding new moon: %w", err)
	}
	nextNM, err := mc.newMoonAfter(ctx, jdRise, t)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to locate following new moon: %w", err)
	}

	rashiLast, err := mc.solarRashi(ctx, lastNM)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get rashi at preceding new moon: %w", err)
	}
	rashiNext, err := mc.solarRashi(ctx, nextNM)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get rashi at following new moon: %w", err)
	}

	isAdhika := rashiLast == rashiNext

	masaNum := rashiLast + 1
	if masaNum > 12 {
		masaNum -= 12
	}
	name := MasaNameFromNumber(masaNum)

	yearSaka, err := mc.hinduYearSaka(jdRise, masaNum)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	yearVikram := hinduYearVikram(yearSaka)

	info := &MasaInfo{
		Name:       name,
		MasaNumber: masaNum,
		IsAdhika:   isAdhika,
		YearSaka:   yearSaka,
		YearVikram: yearVikram,
		StartTime:  jdToTime(lastNM),
		EndTime:    jdToTime(nextNM),
	}

	span.SetAttributes(
		attribute.String("masa_name", info.Name.String()),
		attribute.Bool("is_adhika", info.IsAdhika),
		attribute.Int("year_saka", info.YearSaka),
		attribute.Int("year_vikram", info.YearVikram),
	)

	return info, nil
}

// hinduYearSaka computes the Saka era year from the ahargana (day count
// since the Kali Yuga epoch) and the current masa number.
func (mc *MasaCalculator) hinduYearSaka(jdUT float64, masaNum int) (int, error) {
	const siderealYear = 365.25636
	ahar := jdUT - 588465.5
	kali := int((ahar + float64(4-masaNum)*30.0) / siderealYear)
	return kali - 3179, nil
}

// hinduYearVikram converts a Saka year to the corresponding Vikram Samvat year.
func hinduYearVikram(sakaYear int) int {
	return sakaYear + 135
}

// ValidateMasaCalculation validates a MasaInfo result.
func ValidateMasaCalculation(masa *MasaInfo) error {
	if masa == nil {
		return fmt.Errorf("masa cannot be nil")
	}
	if masa.MasaNumber < 1 || masa.MasaNumber > 12 {
		return fmt.Errorf("invalid masa number: %d, must be between 1 and 12", masa.MasaNumber)
	}
	if masa.EndTime.Before(masa.StartTime) {
		return fmt.Errorf("masa end time cannot be before start time")
	}
	return nil
}
