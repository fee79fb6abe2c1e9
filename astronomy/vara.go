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

// VaraInfo represents a Vara (weekday) with its properties
type VaraInfo struct {
	Number        int       `json:"number"`         // 1-7 (Sunday=1, Monday=2, etc.)
	Name          string    `json:"name"`           // Sanskrit name
	PlanetaryLord string    `json:"planetary_lord"` // Ruling planet
	Quality       string    `json:"quality"`        // General quality/nature
	Color         string    `json:"color"`          // Associated color
	Deity         string    `json:"deity"`          // Presiding deity
	StartTime     time.Time `json:"start_time"`     // Sunrise time when Vara begins
	EndTime       time.Time `json:"end_time"`       // Next sunrise when Vara ends
	Duration      float64   `json:"duration"`       // Duration in hours
	GregorianDay  string    `json:"gregorian_day"`  // English weekday name
	IsAuspicious  bool      `json:"is_auspicious"`  // General auspiciousness
	CurrentHora   int       `json:"current_hora"`   // Current hora (1-24)
	HoraPlanet    string    `json:"hora_planet"`    // Planet ruling current hora
}

// VaraCalculator handles Vara calculations
type VaraCalculator struct {
	ephemerisManager *ephemeris.Manager
	observer         observability.ObserverInterface
}

// NewVaraCalculator creates a new VaraCalculator
func NewVaraCalculator(ephemerisManager *ephemeris.Manager) *VaraCalculator {
	return &VaraCalculator{
		ephemerisManager: ephemerisManager,
		observer:         observability.Observer(),
	}
}

// VaraData contains detailed information about each Vara
// Sources:
// - "Brihat Parashara Hora Shastra" by Sage Parashara
// - "Muhurta Chintamani" by Daivagya Ramachandra
// - "Hindu Astronomy" by W.E. van Wijk (1930)
// - "Surya Siddhanta" - Ancient Sanskrit astronomical text
//
// Number follows ephemeris.DayOfWeek's Monday-indexed convention (0=Monday)
// shifted to the traditional 1-7 Vara numbering starting from Sunday=1.
var VaraData = map[int]struct {
	Name          string
	PlanetaryLord string
	Quality       string
	Color         string
	Deity         string
	GregorianDay  string
	IsAuspicious  bool
}{
	1: {"Ravivara", "Sun", "Fierce and authoritative", "Red", "Surya", "Sunday", true},
	2: {"Somavara", "Moon", "Gentle and nurturing", "White", "Chandra", "Monday", true},
	3: {"Mangalavara", "Mars", "Energetic and aggressive", "Red", "Mangala", "Tuesday", false},
	4: {"Budhavara", "Mercury", "Intellectual and communicative", "Green", "Budha", "Wednesday", true},
	5: {"Guruvara", "Jupiter", "Wise and benevolent", "Yellow", "Brihaspati", "Thursday", true},
	6: {"Shukravara", "Venus", "Artistic and luxurious", "White", "Shukra", "Friday", true},
	7: {"Shanivara", "Saturn", "Disciplined and restrictive", "Black", "Shani", "Saturday", false},
}

// HoraPlanets defines the sequence of planets ruling each hora
var HoraPlanets = []string{"Sun", "Venus", "Mercury", "Moon", "Saturn", "Jupiter", "Mars"}

// varaNumberFromJD converts a Monday-indexed ephemeris.DayOfWeek (0=Monday)
// into the traditional Sunday=1 Vara numbering.
func varaNumberFromJD(jd float64) int {
	dow := ephemeris.DayOfWeek(jd) // 0=Monday .. 6=Sunday
	return ((dow+1)%7 + 1)
}

// GetVaraForDate calculates the Vara for a given date and location, anchored
// to sunrise-to-sunrise per the Hindu civil day convention.
func (vc *VaraCalculator) GetVaraForDate(ctx context.Context, date time.Time, loc ephemeris.Location) (*VaraInfo, error) {
	ctx, span := vc.observer.CreateSpan(ctx, "VaraCalculator.GetVaraForDate")
	defer span.End()

	span.SetAttributes(
		attribute.String("date", date.Format("2006-01-02")),
		attribute.Float64("location.latitude", loc.Latitude),
		attribute.Float64("location.longitude", loc.Longitude),
	)

	jd := ephemeris.GregorianToJD(date.Year(), int(date.Month()), float64(date.Day()))

	jdSunrise, err := vc.ephemerisManager.SunriseJD(ctx, jd, loc)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to calculate current day sunrise: %w", err)
	}
	if jdSunrise <= 0.0 {
		jdSunrise = jd + 0.5 - loc.UTCOffset/24.0
	}

	jdNextSunrise, err := vc.ephemerisManager.SunriseJD(ctx, jd+1.0, loc)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to calculate next day sunrise: %w", err)
	}
	if jdNextSunrise <= 0.0 {
		jdNextSunrise = jd + 1.5 - loc.UTCOffset/24.0
	}

	currentSunrise := jdToTime(jdSunrise)
	nextSunrise := jdToTime(jdNextSunrise)

	vara, err := vc.calculateVaraFromSunrise(ctx, jdSunrise, currentSunrise, nextSunrise, currentSunrise)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("vara_number", vara.Number),
		attribute.String("vara_name", vara.Name),
		attribute.String("planetary_lord", vara.PlanetaryLord),
		attribute.String("gregorian_day", vara.GregorianDay),
		attribute.Bool("is_auspicious", vara.IsAuspicious),
		attribute.Int("current_hora", vara.CurrentHora),
		attribute.String("hora_planet", vara.HoraPlanet),
	)
	span.AddEvent("Vara calculated", trace.WithAttributes(
		attribute.Int("vara_number", vara.Number),
		attribute.String("vara_name", vara.Name),
		attribute.String("planetary_lord", vara.PlanetaryLord),
	))

	return vara, nil
}

// calculateVaraFromSunrise builds a VaraInfo from the sunrise JD (used for
// weekday determination) and the two bracketing sunrise instants.
func (vc *VaraCalculator) calculateVaraFromSunrise(ctx context.Context, jdSunrise float64, currentSunrise, nextSunrise, referenceTime time.Time) (*VaraInfo, error) {
	_, span := vc.observer.CreateSpan(ctx, "VaraCalculator.calculateVaraFromSunrise")
	defer span.End()

	varaNumber := varaNumberFromJD(jdSunrise)
	span.SetAttributes(attribute.Int("vara_number", varaNumber))

	varaDetails := VaraData[varaNumber]

	currentHora, horaPlanet := vc.calculateCurrentHora(ctx, currentSunrise, nextSunrise, referenceTime, varaNumber)

	span.SetAttributes(
		attribute.String("vara_name", varaDetails.Name),
		attribute.String("planetary_lord", varaDetails.PlanetaryLord),
		attribute.Int("current_hora", currentHora),
		attribute.String("hora_planet", horaPlanet),
	)

	duration := nextSunrise.Sub(currentSunrise).Hours()

	vara := &VaraInfo{
		Number:        varaNumber,
		Name:          varaDetails.Name,
		PlanetaryLord: varaDetails.PlanetaryLord,
		Quality:       varaDetails.Quality,
		Color:         varaDetails.Color,
		Deity:         varaDetails.Deity,
		StartTime:     currentSunrise,
		EndTime:       nextSunrise,
		Duration:      duration,
		GregorianDay:  varaDetails.GregorianDay,
		IsAuspicious:  varaDetails.IsAuspicious,
		CurrentHora:   currentHora,
		HoraPlanet:    horaPlanet,
	}

	span.AddEvent("Vara calculation completed", trace.WithAttributes(
		attribute.Int("vara_number", varaNumber),
		attribute.String("vara_name", varaDetails.Name),
		attribute.Float64("duration_hours", duration),
	))

	return vara, nil
}

// calculateCurrentHora calculates the current hora and its ruling planet
func (vc *VaraCalculator) calculateCurrentHora(ctx context.Context, currentSunrise, nextSunrise time.Time, referenceTime time.Time, varaNumber int) (int, string) {
	_, span := vc.observer.CreateSpan(ctx, "VaraCalculator.calculateCurrentHora")
	defer span.End()

	totalDuration := nextSunrise.Sub(currentSunrise)
	horaDuration := totalDuration / 24

	var timeFromSunrise time.Duration
	switch {
	case referenceTime.After(currentSunrise) && referenceTime.Before(nextSunrise):
		timeFromSunrise = referenceTime.Sub(currentSunrise)
	case referenceTime.Before(currentSunrise):
		timeFromSunrise = 0
	default:
		timeFromSunrise = totalDuration
	}

	horaNumber := int(timeFromSunrise/horaDuration) + 1
	if horaNumber > 24 {
		horaNumber = 24
	}
	if horaNumber < 1 {
		horaNumber = 1
	}

	dayPlanetIndex := getPlanetIndex(VaraData[varaNumber].PlanetaryLord)
	horaPlanetIndex := (dayPlanetIndex + horaNumber - 1) % 7
	horaPlanet := HoraPlanets[horaPlanetIndex]

	span.SetAttributes(
		attribute.Float64("total_duration_hours", totalDuration.Hours()),
		attribute.Int("hora_number", horaNumber),
		attribute.String("hora_planet", horaPlanet),
	)

	return horaNumber, horaPlanet
}

// getPlanetIndex returns the index of a planet in the hora sequence
func getPlanetIndex(planet string) int {
	for i, p := range HoraPlanets {
		if p == planet {
			return i
		}
	}
	return 0
}

// GetHoraForTime calculates the hora for a specific time within a Vara
func (vc *VaraCalculator) GetHoraForTime(ctx context.Context, specificTime time.Time, currentSunrise, nextSunrise time.Time, varaNumber int) (int, string, error) {
	if varaNumber < 1 || varaNumber > 7 {
		return 0, "", fmt.Errorf("invalid vara number: %d, must be between 1 and 7", varaNumber)
	}
	horaNumber, horaPlanet := vc.calculateCurrentHora(ctx, currentSunrise, nextSunrise, specificTime, varaNumber)
	return horaNumber, horaPlanet, nil
}

// IsAuspiciousVara returns true if the Vara is generally considered auspicious
func IsAuspiciousVara(vara *VaraInfo) bool {
	return vara.IsAuspicious
}

// GetVaraRecommendations returns recommendations based on the Vara
func GetVaraRecommendations(vara *VaraInfo) string {
	switch vara.Name {
	case "Ravivara":
		return "Good for spiritual practices, government work, and leadership activities. Avoid starting new ventures."
	case "Somavara":
		return "Excellent for new beginnings, travel, and emotional healing. Good for all auspicious activities."
	case "Mangalavara":
		return "Avoid important activities. Not favorable for marriages, new ventures, or peaceful activities."
	case "Budhavara":
		return "Good for education, communication, business, and intellectual pursuits."
	case "Guruvara":
		return "Most auspicious day. Excellent for all important activities, ceremonies, and new beginnings."
	case "Shukravara":
		return "Good for artistic pursuits, relationships, luxury items, and social activities."
	case "Shanivara":
		return "Avoid important activities. Good for discipline, hard work, and dealing with obstacles."
	default:
		return "General vara with moderate influence."
	}
}

// GetHoraPlanetRecommendations returns recommendations based on the current hora planet
func GetHoraPlanetRecommendations(planet string) string {
	switch planet {
	case "Sun":
		return "Good for government work, leadership, and spiritual practices."
	case "Moon":
		return "Favorable for emotional matters, travel, and water-related activities."
	case "Mars":
		return "Good for physical activities, sports, and dealing with conflicts. Avoid peace negotiations."
	case "Mercury":
		return "Excellent for communication, education, business, and intellectual work."
	case "Jupiter":
		return "Most auspicious. Good for all activities, especially religious and educational."
	case "Venus":
		return "Good for artistic work, relationships, luxury, and social activities."
	case "Saturn":
		return "Good for discipline, hard work, and routine tasks. Avoid festivities."
	default:
		return "General planetary influence."
	}
}

// ValidateVaraCalculation validates a Vara calculation result
func ValidateVaraCalculation(vara *VaraInfo) error {
	if vara == nil {
		return fmt.Errorf("vara cannot be nil")
	}

	if vara.Number < 1 || vara.Number > 7 {
		return fmt.Errorf("invalid vara number: %d, must be between 1 and 7", vara.Number)
	}

	if vara.CurrentHora < 1 || vara.CurrentHora > 24 {
		return fmt.Errorf("invalid hora number: %d, must be between 1 and 24", vara.CurrentHora)
	}

	if vara.EndTime.Before(vara.StartTime) {
		return fmt.Errorf("vara end time cannot be before start time")
	}

	if vara.Name == "" {
		return fmt.Errorf("vara name cannot be empty")
	}

	if vara.PlanetaryLord == "" {
		return fmt.Errorf("planetary lord cannot be empty")
	}

	if vara.HoraPlanet == "" {
		return fmt.Errorf("hora planet cannot be empty")
	}

	validPlanet := false
	for _, planet := range HoraPlanets {
		if vara.HoraPlanet == planet {
			validPlanet = true
			break
		}
	}
	if !validPlanet {
		return fmt.Errorf("invalid hora planet: %s", vara.HoraPlanet)
	}

	return nil
}
