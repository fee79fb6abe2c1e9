package astronomy

import (
	"context"
	"fmt"
	"time"

	"github.com/vedic-go/panchangam/ephemeris"
	"github.com/vedic-go/panchangam/observability"
	"go.opentelemetry.io/otel/attribute"
)

// HinduDate is the civil-day summary of a Gregorian date in the Hindu
// lunisolar calendar: which masa it falls in, the paksha/tithi prevailing
// at sunrise, and whether either the masa or the tithi is intercalary.
type HinduDate struct {
	Masa         MasaName `json:"masa"`
	IsAdhikaMasa bool     `json:"is_adhika_masa"`
	YearSaka     int      `json:"year_saka"`
	YearVikram   int      `json:"year_vikram"`
	Paksha       string   `json:"paksha"`
	Tithi        int      `json:"tithi"` // paksha-relative, 1-15
	IsAdhikaTithi bool    `json:"is_adhika_tithi"`
}

// PanchangDay bundles the full panchang (five-anga composition plus Hindu
// date) computed for a single Gregorian civil day.
type PanchangDay struct {
	GregYear  int       `json:"greg_year"`
	GregMonth int       `json:"greg_month"`
	GregDay   int       `json:"greg_day"`
	JDSunrise float64   `json:"-"`
	JDSunset  float64   `json:"-"`
	Sunrise   time.Time `json:"sunrise"`
	Sunset    time.Time `json:"sunset"`
	HinduDate HinduDate `json:"hindu_date"`
	Tithi     *TithiInfo     `json:"tithi"`
	Nakshatra *NakshatraInfo `json:"nakshatra"`
	Yoga      *YogaInfo      `json:"yoga"`
	Karana    *KaranaInfo    `json:"karana"`
	Vara      *VaraInfo      `json:"vara"`
}

// PanchangCalculator composes the individual anga calculators into the full
// day-level and month-level panchang views.
type PanchangCalculator struct {
	ephemerisManager *ephemeris.Manager
	tithiCalculator      *TithiCalculator
	masaCalculator       *MasaCalculator
	nakshatraCalculator  *NakshatraCalculator
	yogaCalculator       *YogaCalculator
	karanaCalculator     *KaranaCalculator
	varaCalculator       *VaraCalculator
	observer             observability.ObserverInterface
}

// NewPanchangCalculator creates a new PanchangCalculator wired to all five
// anga calculators and the masa calculator, sharing one ephemeris.Manager.
func NewPanchangCalculator(ephemerisManager *ephemeris.Manager) *PanchangCalculator {
	return &PanchangCalculator{
		ephemerisManager:    ephemerisManager,
		tithiCalculator:     NewTithiCalculator(ephemerisManager),
		masaCalculator:      NewMasaCalculator(ephemerisManager),
		nakshatraCalculator: NewNakshatraCalculator(ephemerisManager),
		yogaCalculator:      NewYogaCalculator(ephemerisManager),
		karanaCalculator:    NewKaranaCalculator(ephemerisManager),
		varaCalculator:      NewVaraCalculator(ephemerisManager),
		observer:            observability.Observer(),
	}
}

// daysInGregorianMonth returns the number of days in the given Gregorian
// year/month, honoring the standard leap-year rule.
func daysInGregorianMonth(year, month int) int {
	mdays := [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	if month == 2 && ((year%4 == 0 && year%100 != 0) || year%400 == 0) {
		return 29
	}
	if month < 1 || month > 12 {
		return 30
	}
	return mdays[month]
}

// GregorianToHindu computes the Hindu civil-day summary for a Gregorian date,
// including the adhika-tithi test (the same paksha tithi number as the
// previous day indicates a skipped-then-repeated tithi instant).
func (pc *PanchangCalculator) GregorianToHindu(ctx context.Context, year, month, day int, loc ephemeris.Location) (*HinduDate, error) {
	ctx, span := pc.observer.CreateSpan(ctx, "PanchangCalculator.GregorianToHindu")
	defer span.End()

	date := dateFromYMD(year, month, day)

	ti, err := pc.tithiCalculator.GetTithiForDateWithCalendarSystem(ctx, date, loc, "Purnimanta")
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to compute tithi: %w", err)
	}
	mi, err := pc.masaCalculator.GetMasaForDate(ctx, date, loc)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to compute masa: %w", err)
	}

	isAdhikaTithi := false
	if day > 1 {
		prevDate := dateFromYMD(year, month, day-1)
		tiPrev, err := pc.tithiCalculator.GetTithiForDateWithCalendarSystem(ctx, prevDate, loc, "Purnimanta")
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to compute previous day's tithi: %w", err)
		}
		isAdhikaTithi = ti.Number == tiPrev.Number
	}

	hd := &HinduDate{
		Masa:          mi.Name,
		IsAdhikaMasa:  mi.IsAdhika,
		YearSaka:      mi.YearSaka,
		YearVikram:    mi.YearVikram,
		Paksha:        ti.Paksha,
		Tithi:         ti.PakshaDay,
		IsAdhikaTithi: isAdhikaTithi,
	}

	span.SetAttributes(
		attribute.String("masa", hd.Masa.String()),
		attribute.Bool("is_adhika_masa", hd.IsAdhikaMasa),
		attribute.Bool("is_adhika_tithi", hd.IsAdhikaTithi),
		attribute.Int("year_saka", hd.YearSaka),
	)

	return hd, nil
}

// GetPanchangForDate computes the full five-anga panchang plus Hindu date
// for a single Gregorian civil day.
func (pc *PanchangCalculator) GetPanchangForDate(ctx context.Context, year, month, day int, loc ephemeris.Location) (*PanchangDay, error) {
	ctx, span := pc.observer.CreateSpan(ctx, "PanchangCalculator.GetPanchangForDate")
	defer span.End()

	date := dateFromYMD(year, month, day)
	jd := ephemeris.GregorianToJD(year, month, float64(day))

	jdSunrise, err := pc.ephemerisManager.SunriseJD(ctx, jd, loc)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get sunrise: %w", err)
	}
	if jdSunrise <= 0.0 {
		jdSunrise = jd + 0.5 - loc.UTCOffset/24.0
	}
	jdSunset, err := pc.ephemerisManager.SunsetJD(ctx, jd, loc)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get sunset: %w", err)
	}

	ti, err := pc.tithiCalculator.GetTithiForDateWithCalendarSystem(ctx, date, loc, "Purnimanta")
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to compute tithi: %w", err)
	}
	hd, err := pc.GregorianToHindu(ctx, year, month, day, loc)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	nk, err := pc.nakshatraCalculator.GetNakshatraForDate(ctx, date)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to compute nakshatra: %w", err)
	}
	yg, err := pc.yogaCalculator.GetYogaForDate(ctx, date)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to compute yoga: %w", err)
	}
	ka, err := pc.karanaCalculator.GetKaranaForDate(ctx, date, loc)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to compute karana: %w", err)
	}
	va, err := pc.varaCalculator.GetVaraForDate(ctx, date, loc)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to compute vara: %w", err)
	}

	pd := &PanchangDay{
		GregYear:  year,
		GregMonth: month,
		GregDay:   day,
		JDSunrise: jdSunrise,
		JDSunset:  jdSunset,
		Sunrise:   jdToTime(jdSunrise),
		Sunset:    jdToTime(jdSunset),
		HinduDate: *hd,
		Tithi:     ti,
		Nakshatra: nk,
		Yoga:      yg,
		Karana:    ka,
		Vara:      va,
	}

	span.SetAttributes(
		attribute.String("date", date.Format("2006-01-02")),
		attribute.Int("tithi_number", ti.Number),
	)

	return pd, nil
}

// TithiForCalendarSystem recomputes the sunrise tithi under an explicit
// calendar system (Amanta vs Purnimanta day numbering), for callers that
// need a system other than the one baked into GetPanchangForDate's result.
func (pc *PanchangCalculator) TithiForCalendarSystem(ctx context.Context, date time.Time, loc ephemeris.Location, calendarSystem string) (*TithiInfo, error) {
	return pc.tithiCalculator.GetTithiForDateWithCalendarSystem(ctx, date, loc, calendarSystem)
}

// GenerateMonthPanchang computes the panchang for every civil day in a
// Gregorian month.
func (pc *PanchangCalculator) GenerateMonthPanchang(ctx context.Context, year, month int, loc ephemeris.Location) ([]*PanchangDay, error) {
	ctx, span := pc.observer.CreateSpan(ctx, "PanchangCalculator.GenerateMonthPanchang")
	defer span.End()

	span.SetAttributes(attribute.Int("year", year), attribute.Int("month", month))

	ndays := daysInGregorianMonth(year, month)
	days := make([]*PanchangDay, 0, ndays)

	for d := 1; d <= ndays; d++ {
		pd, err := pc.GetPanchangForDate(ctx, year, month, d, loc)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to compute panchang for day %d: %w", d, err)
		}
		days = append(days, pd)
	}

	return days, nil
}
