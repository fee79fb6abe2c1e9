// service.go
package panchangam

import (
	"context"
	"fmt"
	"time"

	"github.com/vedic-go/panchangam/astronomy"
	"github.com/vedic-go/panchangam/ephemeris"
	"github.com/vedic-go/panchangam/log"
	"github.com/vedic-go/panchangam/observability"
	ppb "github.com/vedic-go/panchangam/proto"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var logger = log.Logger()

// calendarSystemByRegion maps regions to their traditional calendar system.
// Amanta: month starts at new moon (Tamil Nadu, Kerala, Karnataka, Gujarat).
// Purnimanta: month starts at full moon (most of North India).
var calendarSystemByRegion = map[string]string{
	"Tamil Nadu":     "Amanta",
	"Kerala":         "Amanta",
	"Gujarat":        "Amanta",
	"Karnataka":      "Amanta",
	"Andhra Pradesh": "Purnimanta",
	"Telangana":      "Purnimanta",
	"Maharashtra":    "Purnimanta",
	"Uttar Pradesh":  "Purnimanta",
	"Bihar":          "Purnimanta",
	"West Bengal":    "Purnimanta",
	"Rajasthan":      "Purnimanta",
	"Madhya Pradesh": "Purnimanta",
	"Punjab":         "Purnimanta",
	"Odisha":         "Purnimanta",
	"Hyderabad":      "Purnimanta",
	"Chennai":        "Amanta",
	"Bangalore":      "Amanta",
	"Mumbai":         "Purnimanta",
	"Delhi":          "Purnimanta",
	"New York":       "Purnimanta",
	"Texas":          "Purnimanta",
	"New Jersey":     "Purnimanta",
	"California":     "Purnimanta",
}

// PanchangamServer implements ppb.PanchangamServer over the real ephemeris
// engine and calendrical layer.
type PanchangamServer struct {
	config           Config
	observer         observability.ObserverInterface
	ephemerisManager *ephemeris.Manager
	panchangCalc     *astronomy.PanchangCalculator
	festivalCalendar *astronomy.FestivalCalendar
	ppb.UnimplementedPanchangamServer
}

// NewPanchangamServer creates a new server instance with the provided dependencies.
func NewPanchangamServer(manager *ephemeris.Manager, config Config) *PanchangamServer {
	return &PanchangamServer{
		config:           config,
		observer:         observability.Observer(),
		ephemerisManager: manager,
		panchangCalc:     astronomy.NewPanchangCalculator(manager),
		festivalCalendar: astronomy.NewFestivalCalendar(manager),
	}
}

func traceAttribute(key, value string) attribute.KeyValue {
	return attribute.String(key, value)
}

func traceAttributes(keyValues ...string) []trace.EventOption {
	if len(keyValues)%2 != 0 {
		return nil
	}
	attrs := make([]attribute.KeyValue, 0, len(keyValues)/2)
	for i := 0; i < len(keyValues); i += 2 {
		attrs = append(attrs, attribute.String(keyValues[i], keyValues[i+1]))
	}
	return []trace.EventOption{trace.WithAttributes(attrs...)}
}

func (s *PanchangamServer) Get(ctx context.Context, req *ppb.GetPanchangamRequest) (*ppb.GetPanchangamResponse, error) {
	ctx, span := s.observer.CreateSpan(ctx, "Get")
	defer span.End()

	if req == nil {
		err := status.Error(codes.InvalidArgument, "request cannot be nil")
		span.RecordError(err)
		return nil, err
	}

	logger.InfoContext(ctx, "Panchangam request received",
		"operation", "Get",
		"date", req.Date,
		"latitude", req.Latitude,
		"longitude", req.Longitude,
		"timezone", req.Timezone,
		"region", req.Region,
		"calculation_method", req.CalculationMethod,
		"locale", req.Locale,
	)

	span.SetAttributes(
		traceAttribute("request.date", req.Date),
		traceAttribute("request.latitude", fmt.Sprintf("%.4f", req.Latitude)),
		traceAttribute("request.longitude", fmt.Sprintf("%.4f", req.Longitude)),
		traceAttribute("request.timezone", req.Timezone),
		traceAttribute("request.region", req.Region),
		traceAttribute("request.calculation_method", req.CalculationMethod),
		traceAttribute("request.locale", req.Locale),
	)

	if req.Date == "" {
		err := status.Error(codes.InvalidArgument, "date parameter is required")
		observability.RecordValidationFailure(ctx, "date", req.Date, "date parameter cannot be empty")
		span.RecordError(err)
		return nil, err
	}
	if req.Latitude < -90 || req.Latitude > 90 {
		err := status.Error(codes.InvalidArgument, "latitude must be between -90 and 90")
		observability.RecordValidationFailure(ctx, "latitude", req.Latitude, "latitude must be between -90 and 90 degrees")
		span.RecordError(err)
		return nil, err
	}
	if req.Longitude < -180 || req.Longitude > 180 {
		err := status.Error(codes.InvalidArgument, "longitude must be between -180 and 180")
		observability.RecordValidationFailure(ctx, "longitude", req.Longitude, "longitude must be between -180 and 180 degrees")
		span.RecordError(err)
		return nil, err
	}

	d, err := s.fetchPanchangamData(ctx, req)
	if err != nil {
		observability.RecordError(ctx, err, observability.ErrorContext{
			Severity:  observability.SeverityHigh,
			Category:  observability.CategoryInternal,
			Operation: "fetchPanchangamData",
			Component: "panchangam_service",
			Additional: map[string]interface{}{
				"request_date": req.Date,
			},
			Retryable:   true,
			ExpectedErr: false,
		})
		logger.ErrorContext(ctx, "Failed to fetch panchangam data", "error", err)
		span.RecordError(err)
		return nil, err
	}

	response := &ppb.GetPanchangamResponse{PanchangamData: d}

	logger.InfoContext(ctx, "Panchangam response prepared successfully",
		"date", d.Date, "tithi", d.Tithi, "nakshatra", d.Nakshatra,
		"yoga", d.Yoga, "karana", d.Karana,
		"sunrise", d.SunriseTime, "sunset", d.SunsetTime,
		"events_count", len(d.Events))

	span.AddEvent("Response prepared", traceAttributes(
		"response.date", d.Date,
		"response.events_count", fmt.Sprintf("%d", len(d.Events)),
	)...)

	return response, nil
}

func (s *PanchangamServer) fetchPanchangamData(ctx context.Context, req *ppb.GetPanchangamRequest) (*ppb.PanchangamData, error) {
	ctx, span := s.observer.CreateSpan(ctx, "fetchPanchangamData")
	defer span.End()

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		grpcErr := status.Error(codes.InvalidArgument, fmt.Sprintf("invalid date format: %v", err))
		span.RecordError(grpcErr)
		return nil, grpcErr
	}

	tzParser := NewTimezoneParser()
	tzString := req.Timezone
	if tzString == "" {
		tzString = "UTC"
	}
	loc, err := tzParser.ParseTimezone(tzString)
	if err != nil {
		grpcErr := status.Error(codes.InvalidArgument, fmt.Sprintf("invalid timezone: %v", err))
		span.RecordError(grpcErr)
		return nil, grpcErr
	}

	if isValid, warning := tzParser.ValidateTimezoneForLocation(loc, req.Latitude, req.Longitude); !isValid {
		span.AddEvent("Timezone validation warning", traceAttributes("warning", warning)...)
	}

	_, offsetSeconds := date.In(loc).Zone()
	utcOffsetHours := float64(offsetSeconds) / 3600.0

	location := ephemeris.Location{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		UTCOffset: utcOffsetHours,
	}

	calendarSystem := getCalendarSystemForRegion(req.Region)

	pd, err := s.panchangCalc.GetPanchangForDate(ctx, date.Year(), int(date.Month()), date.Day(), location)
	if err != nil {
		grpcErr := status.Error(codes.Internal, fmt.Sprintf("failed to calculate panchangam: %v", err))
		span.RecordError(grpcErr)
		return nil, grpcErr
	}

	// Re-derive tithi under the requested calendar system (the composed
	// panchang always reports Purnimanta day numbering internally).
	tithi := pd.Tithi
	if calendarSystem == "Amanta" {
		if t, err := s.panchangCalc.TithiForCalendarSystem(ctx, date, location, calendarSystem); err == nil {
			tithi = t
		}
	}

	localSunrise := pd.Sunrise.In(loc)
	localSunset := pd.Sunset.In(loc)

	events := []*ppb.PanchangamEvent{
		{Name: "Sunrise", Time: localSunrise.Format("15:04:05"), EventType: "SUNRISE"},
		{Name: fmt.Sprintf("Tithi: %s (%s Paksha)", tithi.TraditionalName, tithi.Paksha), Time: tithi.StartTime.Format("15:04:05"), EventType: "TITHI"},
		{Name: fmt.Sprintf("Nakshatra: %s", pd.Nakshatra.Name), Time: pd.Nakshatra.StartTime.Format("15:04:05"), EventType: "NAKSHATRA"},
		{Name: fmt.Sprintf("Yoga: %s", pd.Yoga.Name), Time: pd.Yoga.StartTime.Format("15:04:05"), EventType: "YOGA"},
		{Name: fmt.Sprintf("Karana: %s", pd.Karana.Name), Time: localSunrise.Format("15:04:05"), EventType: "KARANA"},
		{Name: fmt.Sprintf("Vara: %s", pd.Vara.Name), Time: localSunrise.Format("15:04:05"), EventType: "VARA"},
	}

	muhurtas, err := astronomy.DaylightMuhurtas(ctx, s.ephemerisManager, date, location)
	if err != nil {
		logger.WarnContext(ctx, "Failed to calculate daylight muhurtas", "error", err)
	} else {
		for _, m := range muhurtas {
			if !m.Auspicious && m.Name == "Abhijit Muhurta" {
				continue
			}
			events = append(events, &ppb.PanchangamEvent{
				Name:      m.Name,
				Time:      m.Start.In(loc).Format("15:04:05"),
				EventType: muhurtaEventType(m.Name),
			})
		}
	}

	festivals, err := s.festivalCalendar.GetFestivalsForDate(ctx, date, tithi.Number)
	if err != nil {
		logger.WarnContext(ctx, "Failed to calculate festivals", "error", err)
	}
	for _, f := range festivals {
		events = append(events, &ppb.PanchangamEvent{
			Name:      fmt.Sprintf("Festival: %s", f.Name),
			Time:      "00:00:00",
			EventType: "FESTIVAL",
		})
	}

	tzInfo := tzParser.GetTimezoneInfo(loc, date)

	data := &ppb.PanchangamData{
		Date:           req.Date,
		Tithi:          fmt.Sprintf("%s - %s Paksha Day %d (%s)", tithi.TraditionalName, tithi.Paksha, tithi.PakshaDay, calendarSystem),
		Nakshatra:      fmt.Sprintf("%s (%d)", pd.Nakshatra.Name, pd.Nakshatra.Number),
		Yoga:           fmt.Sprintf("%s (%d)", pd.Yoga.Name, pd.Yoga.Number),
		Karana:         fmt.Sprintf("%s (%d)", pd.Karana.Name, pd.Karana.Number),
		SunriseTime:    localSunrise.Format("15:04:05"),
		SunsetTime:     localSunset.Format("15:04:05"),
		Events:         events,
		Timezone:       loc.String(),
		TimezoneOffset: tzInfo.Formatted,
		IsDst:          tzInfo.IsDST,
	}

	span.AddEvent("Data fetch completed", traceAttributes(
		"success", "true",
		"events_count", fmt.Sprintf("%d", len(data.Events)),
	)...)

	return data, nil
}

func muhurtaEventType(name string) string {
	switch name {
	case "Rahu Kalam":
		return "RAHU_KALAM"
	case "Yamagandam":
		return "YAMAGANDAM"
	case "Gulika Kalam":
		return "GULIKA_KALAM"
	case "Abhijit Muhurta":
		return "ABHIJIT_MUHURTA"
	default:
		return "MUHURTA"
	}
}

// getCalendarSystemForRegion returns the appropriate calendar system for a given region.
func getCalendarSystemForRegion(region string) string {
	if system, exists := calendarSystemByRegion[region]; exists {
		return system
	}
	return "Purnimanta"
}
