package astronomy

import (
	"context"
	"fmt"
	"time"

	"github.com/vedic-go/panchangam/ephemeris"
	"github.com/vedic-go/panchangam/observability"
	"go.opentelemetry.io/otel/attribute"
)

// SolarCalendarType identifies one of the four regional solar calendars
// this package supports.
type SolarCalendarType int

const (
	Tamil SolarCalendarType = iota
	Bengali
	Odia
	Malayalam
)

func (c SolarCalendarType) String() string {
	switch c {
	case Tamil:
		return "Tamil"
	case Bengali:
		return "Bengali"
	case Odia:
		return "Odia"
	case Malayalam:
		return "Malayalam"
	default:
		return "Unknown"
	}
}

// RashiNames holds the 12 sidereal zodiac sign names, index 1-12 (index 0 unused).
var RashiNames = [13]string{
	"", "Mesha", "Vrishabha", "Mithuna", "Karka", "Simha", "Kanya",
	"Tula", "Vrishchika", "Dhanu", "Makara", "Kumbha", "Meena",
}

var bengaliMonths = [13]string{
	"", "Boishakh", "Joishtho", "Asharh", "Srabon", "Bhadro", "Ashshin",
	"Kartik", "Ogrohaeon", "Poush", "Magh", "Falgun", "Choitro",
}

var tamilMonths = [13]string{
	"", "Chithirai", "Vaikaasi", "Aani", "Aadi", "Aavani", "Purattaasi",
	"Aippasi", "Karthikai", "Maargazhi", "Thai", "Maasi", "Panguni",
}

var odiaMonths = [13]string{
	"", "Baisakha", "Jyeshtha", "Ashadha", "Shravana", "Bhadrapada", "Ashvina",
	"Kartika", "Margashirsha", "Pausha", "Magha", "Phalguna", "Chaitra",
}

var malayalamMonths = [13]string{
	"", "Chingam", "Kanni", "Thulam", "Vrishchikam", "Dhanu", "Makaram",
	"Kumbham", "Meenam", "Medam", "Edavam", "Mithunam", "Karkadakam",
}

// solarCalendarConfig captures the per-calendar constants that parameterize
// sankranti-to-civil-day conversion and era numbering.
type solarCalendarConfig struct {
	firstRashi     int
	gyOffsetOn     int
	gyOffsetBefore int
	months         *[13]string
	eraName        string
}

var solarConfigs = map[SolarCalendarType]solarCalendarConfig{
	Tamil:     {firstRashi: 1, gyOffsetOn: 78, gyOffsetBefore: 79, months: &tamilMonths, eraName: "Saka"},
	Bengali:   {firstRashi: 1, gyOffsetOn: 593, gyOffsetBefore: 594, months: &bengaliMonths, eraName: "Bangabda"},
	Odia:      {firstRashi: 1, gyOffsetOn: 78, gyOffsetBefore: 79, months: &odiaMonths, eraName: "Saka"},
	Malayalam: {firstRashi: 5, gyOffsetOn: 824, gyOffsetBefore: 825, months: &malayalamMonths, eraName: "Kollam"},
}

// SolarDate describes a date in one of the regional solar calendars.
type SolarDate struct {
	Year         int    `json:"year"`
	Month        int    `json:"month"`
	Day          int    `json:"day"`
	Rashi        int    `json:"rashi"`
	MonthName    string `json:"month_name"`
	EraName      string `json:"era_name"`
	JDSankranti  float64 `json:"-"`
}

// SolarCalculator computes regional solar-calendar dates via sankranti
// (solar ingress into a sidereal zodiac sign) tracking.
type SolarCalculator struct {
	ephemerisManager *ephemeris.Manager
	tithiCalculator  *TithiCalculator
	observer         observability.ObserverInterface
}

// NewSolarCalculator creates a new SolarCalculator.
func NewSolarCalculator(ephemerisManager *ephemeris.Manager) *SolarCalculator {
	return &SolarCalculator{
		ephemerisManager: ephemerisManager,
		tithiCalculator:  NewTithiCalculator(ephemerisManager),
		observer:         observability.Observer(),
	}
}

// siderealSolarLongitude returns the Sun's sidereal (nirayana) longitude at jdUT.
func (sc *SolarCalculator) siderealSolarLongitude(ctx context.Context, jdUT float64) (float64, error) {
	tropical, err := sc.ephemerisManager.SolarLongitude(ctx, jdUT)
	if err != nil {
		return 0, fmt.Errorf("solar longitude: %w", err)
	}
	ayan, err := sc.ephemerisManager.Ayanamsa(ctx, jdUT)
	if err != nil {
		return 0, fmt.Errorf("ayanamsa: %w", err)
	}
	return phaseMod(tropical - ayan), nil
}

// criticalTimeJD returns the calendar-specific moment of day used to decide
// which civil day a sankranti belongs to.
func (sc *SolarCalculator) criticalTimeJD(ctx context.Context, jdMidnightUT float64, loc ephemeris.Location, calType SolarCalendarType) (float64, error) {
	switch calType {
	case Tamil:
		ss, err := sc.ephemerisManager.SunsetJD(ctx, jdMidnightUT, loc)
		if err != nil {
			return 0, err
		}
		return ss - 8.0/(24.0*60.0), nil
	case Bengali:
		return jdMidnightUT - loc.UTCOffset/24.0 + 24.0/(24.0*60.0), nil
	case Odia:
		return jdMidnightUT + 16.7/24.0, nil
	case Malayalam:
		sr, err := sc.ephemerisManager.SunriseJD(ctx, jdMidnightUT, loc)
		if err != nil {
			return 0, err
		}
		ss, err := sc.ephemerisManager.SunsetJD(ctx, jdMidnightUT, loc)
		if err != nil {
			return 0, err
		}
		return sr + 0.6*(ss-sr) - 9.5/(24.0*60.0), nil
	default:
		return 0, fmt.Errorf("unknown solar calendar type: %v", calType)
	}
}

// sankrantiJD locates, by bracket-then-bisect, the exact moment the Sun's
// sidereal longitude crosses targetLongitude near jdApprox.
func (sc *SolarCalculator) sankrantiJD(ctx context.Context, jdApprox, targetLongitude float64) (float64, error) {
	lo := jdApprox - 20.0
	hi := jdApprox + 20.0

	lonLo, err := sc.siderealSolarLongitude(ctx, lo)
	if err != nil {
		return 0, err
	}
	diffLo := lonLo - targetLongitude
	if diffLo > 180.0 {
		diffLo -= 360.0
	}
	if diffLo < -180.0 {
		diffLo += 360.0
	}
	if diffLo >= 0.0 {
		lo -= 30.0
	}

	for i := 0; i < 50; i++ {
		mid := (lo + hi) / 2.0
		lon, err := sc.siderealSolarLongitude(ctx, mid)
		if err != nil {
			return 0, err
		}
		diff := lon - targetLongitude
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

// sankrantiToCivilDay resolves which Gregorian civil day a sankranti belongs
// to, applying the Bengali tithi-based override: a sankranti landing after a
// day's critical time normally rolls to the next civil day, but Bengali also
// pushes a sankranti at or before the critical time forward a day when it is
// into Makara, or when the preceding day's tithi has already ended by the
// sankranti moment; a sankranti into Karka is never pushed.
func (sc *SolarCalculator) sankrantiToCivilDay(ctx context.Context, jdSankranti float64, loc ephemeris.Location, calType SolarCalendarType, rashi int) (int, int, int, error) {
	localJD := jdSankranti + loc.UTCOffset/24.0 + 0.5
	sy, sm, sd, _ := ephemeris.JDToGregorian(floorJD(localJD))

	jdDay := ephemeris.GregorianToJD(sy, sm, float64(sd))
	crit, err := sc.criticalTimeJD(ctx, jdDay, loc, calType)
	if err != nil {
		return 0, 0, 0, err
	}

	if jdSankranti <= crit {
		if calType == Bengali && rashi != 4 {
			pushNext := rashi == 10
			if !pushNext {
				py, pm, pd, _ := ephemeris.JDToGregorian(jdDay - 1.0)
				prevDate := dateFromYMD(py, pm, pd)
				ti, err := sc.tithiCalculator.GetTithiForDateWithCalendarSystem(ctx, prevDate, loc, "Purnimanta")
				if err != nil {
					return 0, 0, 0, fmt.Errorf("bengali override tithi check: %w", err)
				}
				pushNext = ti.JDEnd <= jdSankranti
			}
			if pushNext {
				ny, nm, nd, _ := ephemeris.JDToGregorian(jdDay + 1.0)
				return ny, nm, nd, nil
			}
		}
		return sy, sm, sd, nil
	}

	ny, nm, nd, _ := ephemeris.JDToGregorian(jdDay + 1.0)
	return ny, nm, nd, nil
}

func rashiToRegionalMonth(rashi int, calType SolarCalendarType) int {
	cfg := solarConfigs[calType]
	m := rashi - cfg.firstRashi + 1
	if m <= 0 {
		m += 12
	}
	return m
}

// solarYear computes the era-adjusted year for a solar-calendar date.
func (sc *SolarCalculator) solarYear(ctx context.Context, jdUT float64, loc ephemeris.Location, jdGregDate float64, calType SolarCalendarType) (int, error) {
	cfg := solarConfigs[calType]
	gy, _, _, _ := ephemeris.JDToGregorian(jdUT)

	targetLong := float64(cfg.firstRashi-1) * 30.0
	approxGregMonth := 3 + cfg.firstRashi
	if approxGregMonth > 12 {
		approxGregMonth -= 12
	}

	jdYearStartEst := ephemeris.GregorianToJD(gy, approxGregMonth, 14)
	jdYearStart, err := sc.sankrantiJD(ctx, jdYearStartEst, targetLong)
	if err != nil {
		return 0, err
	}

	ysy, ysm, ysd, err := sc.sankrantiToCivilDay(ctx, jdYearStart, loc, calType, cfg.firstRashi)
	if err != nil {
		return 0, err
	}
	jdYearCivil := ephemeris.GregorianToJD(ysy, ysm, float64(ysd))

	if jdGregDate >= jdYearCivil {
		return gy - cfg.gyOffsetOn, nil
	}
	return gy - cfg.gyOffsetBefore, nil
}

// GregorianToSolar converts a Gregorian date to the given regional solar
// calendar's date, including a rashi-boundary correction for dates that fall
// before the sankranti begins the computed solar month.
func (sc *SolarCalculator) GregorianToSolar(ctx context.Context, year, month, day int, loc ephemeris.Location, calType SolarCalendarType) (*SolarDate, error) {
	ctx, span := sc.observer.CreateSpan(ctx, "SolarCalculator.GregorianToSolar")
	defer span.End()

	span.SetAttributes(
		attribute.String("calendar_type", calType.String()),
		attribute.Int("year", year), attribute.Int("month", month), attribute.Int("day", day),
	)

	jd := ephemeris.GregorianToJD(year, month, float64(day))
	jdCrit, err := sc.criticalTimeJD(ctx, jd, loc, calType)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	lon, err := sc.siderealSolarLongitude(ctx, jdCrit)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	rashi := int(lon/30.0) + 1
	if rashi > 12 {
		rashi = 12
	}
	if rashi < 1 {
		rashi = 1
	}

	target := float64(rashi-1) * 30.0
	degreesPast := lon - target
	if degreesPast < 0.0 {
		degreesPast += 360.0
	}
	jdEst := jdCrit - degreesPast
	jdSankranti, err := sc.sankrantiJD(ctx, jdEst, target)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	sy, sm, sDay, err := sc.sankrantiToCivilDay(ctx, jdSankranti, loc, calType, rashi)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	jdMonthStart := ephemeris.GregorianToJD(sy, sm, float64(sDay))
	sdDay := int(jd-jdMonthStart) + 1

	if sdDay <= 0 {
		newRashi := rashi - 1
		if rashi == 1 {
			newRashi = 12
		}
		prevTarget := float64(newRashi-1) * 30.0
		newJDSankranti, err := sc.sankrantiJD(ctx, jdSankranti-28.0, prevTarget)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		sy2, sm2, sd2, err := sc.sankrantiToCivilDay(ctx, newJDSankranti, loc, calType, newRashi)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		jdMs := ephemeris.GregorianToJD(sy2, sm2, float64(sd2))
		sdDay = int(jd-jdMs) + 1
		rashi = newRashi
		jdSankranti = newJDSankranti
	}

	regMonth := rashiToRegionalMonth(rashi, calType)
	yearVal, err := sc.solarYear(ctx, jdCrit, loc, jd, calType)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	date := &SolarDate{
		Year:        yearVal,
		Month:       regMonth,
		Day:         sdDay,
		Rashi:       rashi,
		MonthName:   SolarMonthName(regMonth, calType),
		EraName:     SolarEraName(calType),
		JDSankranti: jdSankranti,
	}

	span.SetAttributes(
		attribute.Int("solar_year", date.Year),
		attribute.String("solar_month", date.MonthName),
		attribute.Int("solar_day", date.Day),
		attribute.Int("rashi", date.Rashi),
	)

	return date, nil
}

// SolarMonthName returns the regional display name for a 1-12 month number.
func SolarMonthName(month int, calType SolarCalendarType) string {
	if month < 1 || month > 12 {
		return "???"
	}
	return solarConfigs[calType].months[month]
}

// SolarEraName returns the era name used by the given regional calendar.
func SolarEraName(calType SolarCalendarType) string {
	return solarConfigs[calType].eraName
}

func floorJD(jd float64) float64 {
	return float64(int(jd))
}

func dateFromYMD(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
