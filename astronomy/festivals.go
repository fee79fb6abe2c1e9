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

// Festival represents a Hindu festival with its details
type Festival struct {
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`        // "major", "minor", "national", "regional", "seasonal"
	Significance string   `json:"significance"`
	Observances []string  `json:"observances"`
}

// FestivalCalendar contains festival detection logic
type FestivalCalendar struct {
	// Fixed date festivals (Gregorian calendar based)
	fixedFestivals map[string]Festival
	// Lunar festivals (based on Tithi)
	lunarFestivals map[int][]Festival
	// Regional solar-calendar festivals, keyed by (calendar type, regional month, day)
	solarFestivals map[solarFestivalKey]Festival

	ephemerisManager *ephemeris.Manager
	tithiCalculator  *TithiCalculator
}

type solarFestivalKey struct {
	calType SolarCalendarType
	month   int
	day     int
}

// NewFestivalCalendar creates a new festival calendar. ephemerisManager may
// be nil, in which case GetUpcomingFestivals falls back to an approximate
// Tithi numbering instead of the full sunrise-anchored calculation.
func NewFestivalCalendar(ephemerisManager *ephemeris.Manager) *FestivalCalendar {
	fc := &FestivalCalendar{
		fixedFestivals:   make(map[string]Festival),
		lunarFestivals:   make(map[int][]Festival),
		solarFestivals:   make(map[solarFestivalKey]Festival),
		ephemerisManager: ephemerisManager,
	}
	if ephemerisManager != nil {
		fc.tithiCalculator = NewTithiCalculator(ephemerisManager)
	}

	fc.initializeFixedFestivals()
	fc.initializeLunarFestivals()
	fc.initializeSolarFestivals()

	return fc
}

// initializeSolarFestivals sets up festivals pinned to a day of a regional
// solar month, rather than the Gregorian calendar or a Tithi: these recur on
// the same solar-calendar day every year by definition, since sankranti
// tracks the sidereal year.
func (fc *FestivalCalendar) initializeSolarFestivals() {
	fc.solarFestivals[solarFestivalKey{Tamil, 1, 1}] = Festival{
		Name:         "Puthandu",
		Type:         "regional",
		Significance: "Tamil New Year, start of the Chithirai month",
		Observances:  []string{"Kanni viewing", "Mango-neem pachadi", "Temple visits"},
	}
	fc.solarFestivals[solarFestivalKey{Tamil, 10, 1}] = Festival{
		Name:         "Thai Pongal",
		Type:         "regional",
		Significance: "Harvest festival marking the Sun's entry into Makara rashi (Thai month)",
		Observances:  []string{"Pongal dish preparation", "Sun worship", "Cattle decoration"},
	}
	fc.solarFestivals[solarFestivalKey{Malayalam, 9, 1}] = Festival{
		Name:         "Vishu",
		Type:         "regional",
		Significance: "Kerala New Year, start of the Chingam-counted Medam month",
		Observances:  []string{"Vishukkani viewing", "Firecrackers", "Vishu kaineetam"},
	}
	fc.solarFestivals[solarFestivalKey{Bengali, 1, 1}] = Festival{
		Name:         "Pohela Boishakh",
		Type:         "regional",
		Significance: "Bengali New Year, start of the Boishakh month",
		Observances:  []string{"Mangal Shobhajatra", "New account books", "Family feasts"},
	}
}

// GetSolarFestivalsForDate returns any regional solar-calendar festivals
// landing on the given regional month/day.
func (fc *FestivalCalendar) GetSolarFestivalsForDate(calType SolarCalendarType, month, day int, gregDate time.Time) []Festival {
	var festivals []Festival
	if f, ok := fc.solarFestivals[solarFestivalKey{calType, month, day}]; ok {
		f.Date = gregDate
		festivals = append(festivals, f)
	}
	return festivals
}

// initializeFixedFestivals sets up Gregorian calendar-based festivals
func (fc *FestivalCalendar) initializeFixedFestivals() {
	// Major fixed festivals
	fc.fixedFestivals["01-26"] = Festival{
		Name:        "Republic Day",
		Type:        "national",
		Significance: "India's Constitution came into effect",
		Observances: []string{"Flag hoisting", "Parades", "Cultural programs"},
	}
	
	fc.fixedFestivals["08-15"] = Festival{
		Name:        "Independence Day",
		Type:        "national",
		Significance: "India's independence from British rule",
		Observances: []string{"Flag hoisting", "Patriotic ceremonies"},
	}
	
	fc.fixedFestivals["10-02"] = Festival{
		Name:        "Gandhi Jayanti",
		Type:        "national",
		Significance: "Birthday of Mahatma Gandhi",
		Observances: []string{"Prayer meetings", "Spinning wheel ceremonies"},
	}
}

// initializeLunarFestivals sets up Tithi-based festivals
func (fc *FestivalCalendar) initializeLunarFestivals() {
	// Ekadashi (11th lunar day) - occurs twice per month
	ekadashi := Festival{
		Name:        "Ekadashi",
		Type:        "major",
		Significance: "Sacred to Lord Vishnu, fasting day",
		Observances: []string{"Fasting", "Prayer", "Meditation", "Charity"},
	}
	fc.lunarFestivals[11] = append(fc.lunarFestivals[11], ekadashi)
	fc.lunarFestivals[26] = append(fc.lunarFestivals[26], ekadashi)
	
	// Amavasya (New Moon - 30th Tithi)
	amavasya := Festival{
		Name:        "Amavasya",
		Type:        "minor",
		Significance: "New moon day, ancestor worship",
		Observances: []string{"Ancestral prayers", "Charity", "Meditation"},
	}
	fc.lunarFestivals[30] = append(fc.lunarFestivals[30], amavasya)
	
	// Purnima (Full Moon - 15th Tithi)
	purnima := Festival{
		Name:        "Purnima",
		Type:        "minor",
		Significance: "Full moon day, auspicious for prayers",
		Observances: []string{"Prayers", "Meditation", "Charity", "Fasting"},
	}
	fc.lunarFestivals[15] = append(fc.lunarFestivals[15], purnima)
	
	// Chaturthi (4th Tithi) - Ganesh Chaturthi varies by month
	chaturthi := Festival{
		Name:        "Chaturthi",
		Type:        "minor",
		Significance: "Sacred to Lord Ganesha",
		Observances: []string{"Ganesha prayers", "Offerings", "Modak preparation"},
	}
	fc.lunarFestivals[4] = append(fc.lunarFestivals[4], chaturthi)
	
	// Navami (9th Tithi) - Sacred to Devi
	navami := Festival{
		Name:        "Navami",
		Type:        "minor",
		Significance: "Sacred to Divine Mother",
		Observances: []string{"Devi prayers", "Fasting", "Scripture reading"},
	}
	fc.lunarFestivals[9] = append(fc.lunarFestivals[9], navami)
}

// GetFestivalsForDate returns festivals for a specific date
func (fc *FestivalCalendar) GetFestivalsForDate(ctx context.Context, date time.Time, tithiNumber int) ([]Festival, error) {
	observer := observability.Observer()
	_, span := observer.CreateSpan(ctx, "GetFestivalsForDate")
	defer span.End()
	
	span.SetAttributes(
		attribute.String("date", date.Format("2006-01-02")),
		attribute.Int("tithi_number", tithiNumber),
	)
	
	var festivals []Festival
	
	// Check fixed festivals (Gregorian calendar)
	monthDay := date.Format("01-02")
	if festival, exists := fc.fixedFestivals[monthDay]; exists {
		festival.Date = date
		festivals = append(festivals, festival)
		span.AddEvent("Fixed festival found", trace.WithAttributes(
			attribute.String("festival_name", festival.Name),
			attribute.String("festival_type", festival.Type),
		))
	}
	
	// Check lunar festivals (Tithi-based)
	if lunarFestivals, exists := fc.lunarFestivals[tithiNumber]; exists {
		for _, festival := range lunarFestivals {
			festival.Date = date
			
			// Add month-specific naming for certain festivals
			festival.Name = fc.getMonthSpecificName(festival.Name, date, tithiNumber)
			festivals = append(festivals, festival)
			
			span.AddEvent("Lunar festival found", trace.WithAttributes(
				attribute.String("festival_name", festival.Name),
				attribute.String("festival_type", festival.Type),
				attribute.Int("tithi", tithiNumber),
			))
		}
	}
	
	// Add seasonal festivals based on month
	seasonalFestivals := fc.getSeasonalFestivals(date)
	festivals = append(festivals, seasonalFestivals...)
	
	span.SetAttributes(
		attribute.Int("total_festivals", len(festivals)),
	)
	
	return festivals, nil
}

// getMonthSpecificName returns month-specific festival names
func (fc *FestivalCalendar) getMonthSpecificName(baseName string, date time.Time, tithiNumber int) string {
	month := date.Month()
	
	switch baseName {
	case "Ekadashi":
		// Different Ekadashi names based on month
		ekadashiNames := map[time.Month]string{
			time.January:   "Pausha Putrada Ekadashi",
			time.February:  "Magha Shattila Ekadashi", 
			time.March:     "Phalguna Vijaya Ekadashi",
			time.April:     "Chaitra Kamada Ekadashi",
			time.May:       "Vaishakha Mohini Ekadashi",
			time.June:      "Jyeshtha Nirjala Ekadashi",
			time.July:      "Ashadha Yogini Ekadashi",
			time.August:    "Shravana Kamika Ekadashi",
			time.September: "Bhadrapada Aja Ekadashi",
			time.October:   "Ashwin Indira Ekadashi",
			time.November:  "Kartik Rama Ekadashi",
			time.December:  "Margashirsha Mokshada Ekadashi",
		}
		if name, exists := ekadashiNames[month]; exists {
			return name
		}
		
	case "Purnima":
		// Different Purnima names based on month
		purnimaNames := map[time.Month]string{
			time.January:   "Pausha Purnima",
			time.February:  "Magha Purnima",
			time.March:     "Holi Purnima",
			time.April:     "Chaitra Purnima",
			time.May:       "Buddha Purnima",
			time.June:      "Vat Purnima",
			time.July:      "Guru Purnima",
			time.August:    "Raksha Bandhan",
			time.September: "Bhadrapada Purnima",
			time.October:   "Sharad Purnima",
			time.November:  "Kartik Purnima",
			time.December:  "Margashirsha Purnima",
		}
		if name, exists := purnimaNames[month]; exists {
			return name
		}
		
	case "Amavasya":
		// Different Amavasya names based on month
		amavasyas := map[time.Month]string{
			time.October:  "Diwali Amavasya",
			time.November: "Kartik Amavasya",
		}
		if name, exists := amavasyas[month]; exists {
			return name
		}
	}
	
	return baseName
}

// getSeasonalFestivals returns seasonal festivals for specific months
func (fc *FestivalCalendar) getSeasonalFestivals(date time.Time) []Festival {
	var festivals []Festival
	month := date.Month()
	
	switch month {
	case time.March:
		if date.Day() >= 20 && date.Day() <= 22 {
			festivals = append(festivals, Festival{
				Name:        "Spring Equinox",
				Date:        date,
				Type:        "seasonal",
				Significance: "Beginning of spring season",
				Observances: []string{"Nature worship", "Spring cleaning", "New plantings"},
			})
		}
		
	case time.June:
		if date.Day() >= 20 && date.Day() <= 22 {
			festivals = append(festivals, Festival{
				Name:        "Summer Solstice",
				Date:        date,
				Type:        "seasonal", 
				Significance: "Longest day of the year",
				Observances: []string{"Sun worship", "Early morning prayers"},
			})
		}
		
	case time.September:
		if date.Day() >= 22 && date.Day() <= 24 {
			festivals = append(festivals, Festival{
				Name:        "Autumn Equinox",
				Date:        date,
				Type:        "seasonal",
				Significance: "Beginning of autumn season",
				Observances: []string{"Harvest celebrations", "Ancestor worship"},
			})
		}
		
	case time.December:
		if date.Day() >= 20 && date.Day() <= 22 {
			festivals = append(festivals, Festival{
				Name:        "Winter Solstice",
				Date:        date,
				Type:        "seasonal",
				Significance: "Longest night of the year",
				Observances: []string{"Light festivals", "Fire rituals"},
			})
		}
	}
	
	return festivals
}

// GetUpcomingFestivals returns festivals in the next N days
func (fc *FestivalCalendar) GetUpcomingFestivals(ctx context.Context, startDate time.Time, days int) ([]Festival, error) {
	observer := observability.Observer()
	ctx, span := observer.CreateSpan(ctx, "GetUpcomingFestivals")
	defer span.End()
	
	span.SetAttributes(
		attribute.String("start_date", startDate.Format("2006-01-02")),
		attribute.Int("days", days),
	)
	
	var allFestivals []Festival

	for i := 0; i < days; i++ {
		currentDate := startDate.AddDate(0, 0, i)

		tithiNumber, err := fc.tithiNumberForDate(ctx, currentDate)
		if err != nil {
			span.RecordError(err)
			continue
		}

		festivals, err := fc.GetFestivalsForDate(ctx, currentDate, tithiNumber)
		if err != nil {
			span.RecordError(err)
			continue
		}

		allFestivals = append(allFestivals, festivals...)
	}
	
	span.SetAttributes(
		attribute.Int("total_upcoming_festivals", len(allFestivals)),
	)
	
	return allFestivals, nil
}

// tithiNumberForDate resolves the prevailing Tithi number (1-30) for
// currentDate, using the real sunrise-anchored calculator when wired, and
// falling back to a coarse day-of-month approximation otherwise.
func (fc *FestivalCalendar) tithiNumberForDate(ctx context.Context, currentDate time.Time) (int, error) {
	if fc.tithiCalculator == nil {
		return (currentDate.Day() % 30) + 1, nil
	}
	ti, err := fc.tithiCalculator.GetTithiForDate(ctx, currentDate, ephemeris.NewDelhi)
	if err != nil {
		return 0, fmt.Errorf("failed to compute tithi: %w", err)
	}
	return ti.Number, nil
}

// GetFestivalNamesForDate is a convenience wrapper returning just festival
// names for the given date and tithi number.
func GetFestivalNamesForDate(ctx context.Context, date time.Time, tithiNumber int) ([]string, error) {
	fc := NewFestivalCalendar(nil)
	festivals, err := fc.GetFestivalsForDate(ctx, date, tithiNumber)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, festival := range festivals {
		names = append(names, festival.Name)
	}

	return names, nil
}

// DaylightMuhurta is one of the inauspicious or auspicious periods derived
// by dividing the daylight span between sunrise and sunset.
type DaylightMuhurta struct {
	Name        string    `json:"name"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Auspicious  bool      `json:"auspicious"`
	Description string    `json:"description"`
}

// rahuKalamPart, yamagandamPart, gulikaKalamPart give the 1-8 eighth-of-day
// segment ruled by each graha, indexed by traditional Vara number (Sunday=1).
var rahuKalamPart = [8]int{0, 7, 1, 6, 4, 3, 2, 5}
var yamagandamPart = [8]int{0, 4, 7, 2, 5, 8, 6, 3}
var gulikaKalamPart = [8]int{0, 6, 8, 4, 7, 2, 5, 1}

// DaylightMuhurtas computes Rahu Kalam, Yamagandam, Gulika Kalam, and Abhijit
// Muhurta for a Gregorian civil day by dividing the sunrise-to-sunset span
// into eighths (for the three inauspicious periods) and thirtieths (for
// Abhijit Muhurta), following the traditional weekday-indexed segment rule.
func DaylightMuhurtas(ctx context.Context, ephemerisManager *ephemeris.Manager, date time.Time, loc ephemeris.Location) ([]*DaylightMuhurta, error) {
	observer := observability.Observer()
	ctx, span := observer.CreateSpan(ctx, "DaylightMuhurtas")
	defer span.End()

	jd := ephemeris.GregorianToJD(date.Year(), int(date.Month()), float64(date.Day()))
	jdRise, err := ephemerisManager.SunriseJD(ctx, jd, loc)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get sunrise: %w", err)
	}
	jdSet, err := ephemerisManager.SunsetJD(ctx, jd, loc)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get sunset: %w", err)
	}

	sunrise := jdToTime(jdRise)
	sunset := jdToTime(jdSet)
	dayLength := sunset.Sub(sunrise)

	vara := varaNumberFromJD(jd) // 1=Sunday .. 7=Saturday

	eighth := dayLength / 8
	segment := func(part int) (time.Time, time.Time) {
		return sunrise.Add(time.Duration(part-1) * eighth), sunrise.Add(time.Duration(part) * eighth)
	}

	rahuStart, rahuEnd := segment(rahuKalamPart[vara])
	yamaStart, yamaEnd := segment(yamagandamPart[vara])
	gulikaStart, gulikaEnd := segment(gulikaKalamPart[vara])

	muhurtaDuration := dayLength / 30
	abhijitStart := sunrise.Add(7 * muhurtaDuration)
	abhijitEnd := sunrise.Add(8 * muhurtaDuration)
	midday := time.Date(sunrise.Year(), sunrise.Month(), sunrise.Day(), 12, 30, 0, 0, sunrise.Location())
	abhijitValid := !abhijitStart.After(midday)

	result := []*DaylightMuhurta{
		{Name: "Rahu Kalam", Start: rahuStart, End: rahuEnd, Auspicious: false, Description: "Inauspicious period ruled by Rahu"},
		{Name: "Yamagandam", Start: yamaStart, End: yamaEnd, Auspicious: false, Description: "Inauspicious period ruled by Yama"},
		{Name: "Gulika Kalam", Start: gulikaStart, End: gulikaEnd, Auspicious: false, Description: "Inauspicious period ruled by Gulika"},
		{Name: "Abhijit Muhurta", Start: abhijitStart, End: abhijitEnd, Auspicious: abhijitValid, Description: "Most auspicious period of the day"},
	}

	span.SetAttributes(
		attribute.String("date", date.Format("2006-01-02")),
		attribute.Int("vara", vara),
		attribute.Bool("abhijit_valid", abhijitValid),
	)

	return result, nil
}