package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"gopkg.in/yaml.v3"

	"github.com/vedic-go/panchangam/astronomy"
	"github.com/vedic-go/panchangam/ephemeris"
	ppb "github.com/vedic-go/panchangam/proto"
)

// newCLIEphemerisManager builds the ephemeris stack the local (non-gRPC)
// commands use to compute Tithi, Nakshatra, Yoga, Karana, sun times, and
// events directly rather than through the gRPC server.
func newCLIEphemerisManager() *ephemeris.Manager {
	return ephemeris.NewManager(
		ephemeris.NewMoshierProvider(),
		ephemeris.NewApproximateProvider(),
		ephemeris.NewLRUCache(256),
	)
}

// jdToUTCTime converts a Julian Day (UT) into a UTC time.Time.
func jdToUTCTime(jd float64) time.Time {
	year, month, day, hour := ephemeris.JDToGregorian(jd)
	h := int(hour)
	minFloat := (hour - float64(h)) * 60
	m := int(minFloat)
	s := int((minFloat - float64(m)) * 60)
	return time.Date(year, time.Month(month), day, h, m, s, 0, time.UTC)
}

// resolveLocationAndDate applies a predefined location preset (if given),
// parses the date and timezone, and returns the local civil date, the
// ephemeris Location derived from it, and the *time.Location for formatting.
func resolveLocationAndDate(date string, lat, lon float64, tz, location, defaultTZ string) (time.Time, ephemeris.Location, *time.Location, error) {
	if location != "" {
		preset, exists := locationPresets[location]
		if !exists {
			return time.Time{}, ephemeris.Location{}, nil, fmt.Errorf("unknown location: %s", location)
		}
		lat = preset.Lat
		lon = preset.Lon
		if tz == defaultTZ {
			tz = preset.TZ
		}
	}

	parsedDate, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, ephemeris.Location{}, nil, fmt.Errorf("invalid date format: %v", err)
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Time{}, ephemeris.Location{}, nil, fmt.Errorf("invalid timezone: %v", err)
	}

	dateInTZ := time.Date(parsedDate.Year(), parsedDate.Month(), parsedDate.Day(), 0, 0, 0, 0, loc)
	_, offsetSeconds := dateInTZ.Zone()
	ephLoc := ephemeris.Location{
		Latitude:  lat,
		Longitude: lon,
		UTCOffset: float64(offsetSeconds) / 3600.0,
	}

	return dateInTZ, ephLoc, loc, nil
}

var (
	serverAddress string
	outputFormat  string
	timeout       time.Duration
	verbose       bool
	debug         bool
)

// Location presets
var locationPresets = map[string]struct {
	Lat  float64
	Lon  float64
	TZ   string
	Name string
}{
	"nyc":        {40.7128, -74.0060, "America/New_York", "New York, USA"},
	"london":     {51.5074, -0.1278, "Europe/London", "London, UK"},
	"tokyo":      {35.6762, 139.6503, "Asia/Tokyo", "Tokyo, Japan"},
	"sydney":     {-33.8688, 151.2093, "Australia/Sydney", "Sydney, Australia"},
	"mumbai":     {19.0760, 72.8777, "Asia/Kolkata", "Mumbai, India"},
	"capetown":   {-33.9249, 18.4241, "Africa/Johannesburg", "Cape Town, South Africa"},
	"paris":      {48.8566, 2.3522, "Europe/Paris", "Paris, France"},
	"moscow":     {55.7558, 37.6176, "Europe/Moscow", "Moscow, Russia"},
	"beijing":    {39.9042, 116.4074, "Asia/Shanghai", "Beijing, China"},
	"cairo":      {30.0444, 31.2357, "Africa/Cairo", "Cairo, Egypt"},
	"rio":        {-22.9068, -43.1729, "America/Sao_Paulo", "Rio de Janeiro, Brazil"},
	"losangeles": {34.0522, -118.2437, "America/Los_Angeles", "Los Angeles, USA"},
}

func main() {
	var rootCmd = &cobra.Command{
		Use:   "panchangam-cli",
		Short: "Comprehensive CLI for Panchangam astronomical calculations",
		Long: `Panchangam CLI - A comprehensive astronomical calculation tool for Hindu calendar systems.

This CLI provides access to various astronomical calculations including:
  • Tithi (lunar day) calculations with timing and characteristics
  • Nakshatra (lunar mansion) information with pada and deity details
  • Yoga calculations based on combined Sun and Moon positions
  • Karana (half-tithi) calculations
  • Detailed sunrise/sunset times with solar noon and day length
  • Ephemeris data for planetary positions
  • Festival and event calculations with regional variations
  • Muhurta (auspicious timing) calculations
  • Multi-day Panchangam data calculations

Features:
  • Support for multiple output formats (table, json, yaml)
  • Predefined location presets for major cities worldwide
  • Custom coordinate input with timezone support
  • Detailed mode for comprehensive information display
  • Health monitoring and service status checks
  • Regional variations (Tamil Nadu, Kerala, Bengal, etc.)

Examples:
  # Get today's Tithi for Mumbai
  panchangam-cli tithi -l mumbai

  # Get detailed sun times for Tokyo
  panchangam-cli sun -l tokyo --detailed

  # Get Panchangam data in JSON format
  panchangam-cli get -l london -o json

  # Use custom coordinates
  panchangam-cli tithi --lat 19.0760 --lon 72.8777 --tz "Asia/Kolkata"

  # Check service health
  panchangam-cli health

For more information on a specific command, use:
  panchangam-cli [command] --help`,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&serverAddress, "server", "s", "localhost:50051", "gRPC server address")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "Output format (table, json, yaml); any other value prints the table")
	rootCmd.PersistentFlags().DurationVarP(&timeout, "timeout", "t", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output")

	// Add subcommands
	rootCmd.AddCommand(createGetCommand())
	rootCmd.AddCommand(createTithiCommand())
	rootCmd.AddCommand(createNakshatraCommand())
	rootCmd.AddCommand(createYogaCommand())
	rootCmd.AddCommand(createKaranaCommand())
	rootCmd.AddCommand(createSunTimesCommand())
	rootCmd.AddCommand(createEphemerisCommand())
	rootCmd.AddCommand(createDateRangeCommand())
	rootCmd.AddCommand(createEventsCommand())
	rootCmd.AddCommand(createMuhurtaCommand())
	rootCmd.AddCommand(createLocationsCommand())
	rootCmd.AddCommand(createValidateCommand())
	rootCmd.AddCommand(createBenchmarkCommand())
	rootCmd.AddCommand(createVersionCommand())
	rootCmd.AddCommand(createHealthCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func createGetCommand() *cobra.Command {
	var (
		date      string
		latitude  float64
		longitude float64
		timezone  string
		location  string
		region    string
		method    string
		locale    string
	)

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get panchangam data for a specific date and location",
		Long:  `Retrieve sunrise/sunset times and other panchangam data for a given date and location.`,
		Example: `  # Get data for today in New York
  panchangam-cli get -l nyc

  # Get data for specific date in London
  panchangam-cli get -l london -d 2024-06-21

  # Get data for custom coordinates
  panchangam-cli get --lat 37.7749 --lon -122.4194 --tz "America/Los_Angeles"

  # Get data with JSON output
  panchangam-cli get -l tokyo -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGetCommand(date, latitude, longitude, timezone, location, region, method, locale)
		},
	}

	today := time.Now().Format("2006-01-02")
	cmd.Flags().StringVarP(&date, "date", "d", today, "Date in YYYY-MM-DD format")
	cmd.Flags().Float64Var(&latitude, "lat", 40.7128, "Latitude (-90 to 90)")
	cmd.Flags().Float64Var(&longitude, "lon", -74.0060, "Longitude (-180 to 180)")
	cmd.Flags().StringVar(&timezone, "tz", "", "Timezone (e.g., America/New_York)")
	cmd.Flags().StringVarP(&location, "location", "l", "", "Predefined location (use 'locations' command to see available)")
	cmd.Flags().StringVar(&region, "region", "", "Regional system (e.g., Tamil Nadu, Kerala)")
	cmd.Flags().StringVar(&method, "method", "", "Calculation method (e.g., Drik, Vakya)")
	cmd.Flags().StringVar(&locale, "locale", "", "Language/locale (e.g., en, ta)")

	return cmd
}

func createLocationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locations",
		Short: "List available predefined locations",
		Long:  `Display all available predefined locations with their coordinates and timezones.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocationsCommand()
		},
	}

	return cmd
}

func createValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate server connectivity and basic functionality",
		Long:  `Test the connection to the gRPC server and validate basic functionality.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidateCommand()
		},
	}

	return cmd
}

func createBenchmarkCommand() *cobra.Command {
	var (
		requests int
		workers  int
	)

	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Benchmark server performance",
		Long:  `Run performance benchmarks against the gRPC server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBenchmarkCommand(requests, workers)
		},
	}

	cmd.Flags().IntVarP(&requests, "requests", "n", 100, "Number of requests to make")
	cmd.Flags().IntVarP(&workers, "workers", "w", 10, "Number of workers (reported only; requests are sent one at a time)")

	return cmd
}

func runGetCommand(date string, lat, lon float64, tz, location, region, method, locale string) error {
	// Handle predefined locations
	if location != "" {
		preset, exists := locationPresets[location]
		if !exists {
			return fmt.Errorf("unknown location: %s. Use 'locations' command to see available locations", location)
		}
		lat = preset.Lat
		lon = preset.Lon
		if tz == "" {
			tz = preset.TZ
		}
		fmt.Printf("📍 Using preset location: %s\n", preset.Name)
	}

	// Connect to server
	conn, err := grpc.NewClient(serverAddress, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("failed to connect to server: %v", err)
	}
	defer conn.Close()

	client := ppb.NewPanchangamClient(conn)

	// Create request
	req := &ppb.GetPanchangamRequest{
		Date:              date,
		Latitude:          lat,
		Longitude:         lon,
		Timezone:          tz,
		Region:            region,
		CalculationMethod: method,
		Locale:            locale,
	}

	// Make request
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.Get(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to get panchangam data: %v", err)
	}

	// Output results
	switch outputFormat {
	case "json":
		return outputJSON(resp)
	case "yaml":
		return outputYAML(resp)
	default:
		return outputTable(resp, req)
	}
}

func runLocationsCommand() error {
	fmt.Println("📍 Available Predefined Locations:")
	fmt.Println("═══════════════════════════════════════")
	fmt.Printf("%-12s %-25s %-15s %-20s\n", "CODE", "NAME", "COORDINATES", "TIMEZONE")
	fmt.Println("───────────────────────────────────────────────────────────────────────────")

	for code, preset := range locationPresets {
		coords := fmt.Sprintf("%.4f,%.4f", preset.Lat, preset.Lon)
		fmt.Printf("%-12s %-25s %-15s %-20s\n", code, preset.Name, coords, preset.TZ)
	}

	fmt.Println("\n💡 Usage: panchangam-cli get -l <code>")
	fmt.Println("   Example: panchangam-cli get -l london")
	return nil
}

func runValidateCommand() error {
	fmt.Printf("🔍 Validating connection to %s...\n", serverAddress)

	conn, err := grpc.NewClient(serverAddress, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("❌ Failed to connect: %v", err)
	}
	defer conn.Close()

	client := ppb.NewPanchangamClient(conn)

	// Test basic functionality
	req := &ppb.GetPanchangamRequest{
		Date:      time.Now().Format("2006-01-02"),
		Latitude:  40.7128,
		Longitude: -74.0060,
		Timezone:  "America/New_York",
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.Get(ctx, req)
	if err != nil {
		return fmt.Errorf("❌ Request failed: %v", err)
	}

	fmt.Println("✅ Connection successful!")
	fmt.Printf("✅ Server responded with data for %s\n", resp.PanchangamData.Date)
	fmt.Printf("✅ Sunrise time: %s\n", resp.PanchangamData.SunriseTime)
	fmt.Printf("✅ Sunset time: %s\n", resp.PanchangamData.SunsetTime)
	fmt.Println("✅ Basic validation passed!")

	return nil
}

func runBenchmarkCommand(requests, workers int) error {
	fmt.Printf("🚀 Benchmarking %s with %d requests using %d workers...\n", serverAddress, requests, workers)

	conn, err := grpc.NewClient(serverAddress, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("failed to connect: %v", err)
	}
	defer conn.Close()

	client := ppb.NewPanchangamClient(conn)

	// Create request
	req := &ppb.GetPanchangamRequest{
		Date:      time.Now().Format("2006-01-02"),
		Latitude:  40.7128,
		Longitude: -74.0060,
		Timezone:  "America/New_York",
	}

	// Run benchmark
	start := time.Now()
	errors := 0

	for i := 0; i < requests; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		_, err := client.Get(ctx, req)
		cancel()

		if err != nil {
			errors++
		}

		if i%10 == 0 {
			fmt.Printf(".")
		}
	}

	duration := time.Since(start)
	fmt.Printf("\n\n📊 Benchmark Results:\n")
	fmt.Printf("═══════════════════════\n")
	fmt.Printf("Total requests: %d\n", requests)
	fmt.Printf("Successful: %d\n", requests-errors)
	fmt.Printf("Errors: %d\n", errors)
	fmt.Printf("Duration: %v\n", duration)
	fmt.Printf("Requests/sec: %.2f\n", float64(requests)/duration.Seconds())
	fmt.Printf("Average latency: %v\n", duration/time.Duration(requests))

	return nil
}

func outputTable(resp *ppb.GetPanchangamResponse, req *ppb.GetPanchangamRequest) error {
	data := resp.PanchangamData

	fmt.Printf("\n🌅 Panchangam Data\n")
	fmt.Printf("═══════════════════════════════════════\n")
	fmt.Printf("📅 Date: %s\n", data.Date)
	fmt.Printf("📍 Location: %.4f°N, %.4f°E\n", req.Latitude, req.Longitude)
	if req.Timezone != "" {
		fmt.Printf("🌐 Timezone: %s\n", req.Timezone)
	}
	fmt.Printf("═══════════════════════════════════════\n")

	fmt.Printf("\n📊 Sunrise/Sunset Times (local time):\n")
	fmt.Printf("┌─────────────────────────────────┐\n")
	fmt.Printf("│ 🌅 Sunrise: %-18s │\n", data.SunriseTime)
	fmt.Printf("│ 🌇 Sunset:  %-18s │\n", data.SunsetTime)
	fmt.Printf("└─────────────────────────────────┘\n")

	// Calculate day length
	sunrise, err := time.Parse("15:04:05", data.SunriseTime)
	if err == nil {
		sunset, err := time.Parse("15:04:05", data.SunsetTime)
		if err == nil {
			dayLength := sunset.Sub(sunrise)
			if dayLength < 0 {
				dayLength += 24 * time.Hour
			}
			fmt.Printf("☀️  Day Length: %v\n", dayLength)
		}
	}

	fmt.Printf("\n📜 Traditional Panchangam:\n")
	fmt.Printf("• Tithi: %s\n", data.Tithi)
	fmt.Printf("• Nakshatra: %s\n", data.Nakshatra)
	fmt.Printf("• Yoga: %s\n", data.Yoga)
	fmt.Printf("• Karana: %s\n", data.Karana)

	if len(data.Events) > 0 {
		fmt.Printf("\n📅 Events:\n")
		for _, event := range data.Events {
			fmt.Printf("• %s at %s", event.Name, event.Time)
			if event.EventType != "" {
				fmt.Printf(" (%s)", event.EventType)
			}
			fmt.Println()
		}
	}

	return nil
}

func outputJSON(resp *ppb.GetPanchangamResponse) error {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func outputYAML(resp *ppb.GetPanchangamResponse) error {
	// Simple YAML-like output
	data := resp.PanchangamData
	fmt.Printf("panchangam_data:\n")
	fmt.Printf("  date: %s\n", data.Date)
	fmt.Printf("  sunrise_time: %s\n", data.SunriseTime)
	fmt.Printf("  sunset_time: %s\n", data.SunsetTime)
	fmt.Printf("  tithi: %s\n", data.Tithi)
	fmt.Printf("  nakshatra: %s\n", data.Nakshatra)
	fmt.Printf("  yoga: %s\n", data.Yoga)
	fmt.Printf("  karana: %s\n", data.Karana)

	if len(data.Events) > 0 {
		fmt.Printf("  events:\n")
		for _, event := range data.Events {
			fmt.Printf("    - name: %s\n", event.Name)
			fmt.Printf("      time: %s\n", event.Time)
			if event.EventType != "" {
				fmt.Printf("      type: %s\n", event.EventType)
			}
		}
	}

	return nil
}

// ============================================================================
// NEW COMMANDS FOR ENHANCED FUNCTIONALITY
// ============================================================================

func createTithiCommand() *cobra.Command {
	var (
		date      string
		latitude  float64
		longitude float64
		timezone  string
		location  string
		detailed  bool
	)

	cmd := &cobra.Command{
		Use:   "tithi",
		Short: "Calculate Tithi (lunar day) for a specific date and location",
		Long:  `Calculate detailed Tithi information including timing and characteristics.`,
		Example: `  # Get Tithi for today in Mumbai
  panchangam-cli tithi -l mumbai

  # Get detailed Tithi for specific date
  panchangam-cli tithi -d 2024-06-21 --lat 19.0760 --lon 72.8777 --detailed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTithiCommand(date, latitude, longitude, timezone, location, detailed)
		},
	}

	today := time.Now().Format("2006-01-02")
	cmd.Flags().StringVarP(&date, "date", "d", today, "Date in YYYY-MM-DD format")
	cmd.Flags().Float64Var(&latitude, "lat", 19.0760, "Latitude (-90 to 90)")
	cmd.Flags().Float64Var(&longitude, "lon", 72.8777, "Longitude (-180 to 180)")
	cmd.Flags().StringVar(&timezone, "tz", "Asia/Kolkata", "Timezone")
	cmd.Flags().StringVarP(&location, "location", "l", "", "Predefined location")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "Show detailed Tithi information")

	return cmd
}

func createNakshatraCommand() *cobra.Command {
	var (
		date      string
		latitude  float64
		longitude float64
		timezone  string
		location  string
		detailed  bool
	)

	cmd := &cobra.Command{
		Use:   "nakshatra",
		Short: "Calculate Nakshatra (lunar mansion) for a specific date and location",
		Long:  `Calculate detailed Nakshatra information including timing, pada, deity, and characteristics.`,
		Example: `  # Get Nakshatra for today in Delhi
  panchangam-cli nakshatra

  # Get detailed Nakshatra for specific date
  panchangam-cli nakshatra -d 2024-06-21 --lat 28.6139 --lon 77.2090 --detailed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNakshatraCommand(date, latitude, longitude, timezone, location, detailed)
		},
	}

	today := time.Now().Format("2006-01-02")
	cmd.Flags().StringVarP(&date, "date", "d", today, "Date in YYYY-MM-DD format")
	cmd.Flags().Float64Var(&latitude, "lat", 28.6139, "Latitude (-90 to 90)")
	cmd.Flags().Float64Var(&longitude, "lon", 77.2090, "Longitude (-180 to 180)")
	cmd.Flags().StringVar(&timezone, "tz", "Asia/Kolkata", "Timezone")
	cmd.Flags().StringVarP(&location, "location", "l", "", "Predefined location")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "Show detailed Nakshatra information")

	return cmd
}

func createYogaCommand() *cobra.Command {
	var (
		date      string
		latitude  float64
		longitude float64
		timezone  string
		location  string
		detailed  bool
	)

	cmd := &cobra.Command{
		Use:   "yoga",
		Short: "Calculate Yoga for a specific date and location",
		Long:  `Calculate Yoga information based on combined Sun and Moon positions.`,
		Example: `  # Get Yoga for today
  panchangam-cli yoga -l mumbai

  # Get detailed Yoga information
  panchangam-cli yoga -d 2024-06-21 --detailed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runYogaCommand(date, latitude, longitude, timezone, location, detailed)
		},
	}

	today := time.Now().Format("2006-01-02")
	cmd.Flags().StringVarP(&date, "date", "d", today, "Date in YYYY-MM-DD format")
	cmd.Flags().Float64Var(&latitude, "lat", 19.0760, "Latitude (-90 to 90)")
	cmd.Flags().Float64Var(&longitude, "lon", 72.8777, "Longitude (-180 to 180)")
	cmd.Flags().StringVar(&timezone, "tz", "Asia/Kolkata", "Timezone")
	cmd.Flags().StringVarP(&location, "location", "l", "", "Predefined location")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "Show detailed Yoga information")

	return cmd
}

func createKaranaCommand() *cobra.Command {
	var (
		date      string
		latitude  float64
		longitude float64
		timezone  string
		location  string
		detailed  bool
	)

	cmd := &cobra.Command{
		Use:   "karana",
		Short: "Calculate Karana (half-tithi) for a specific date and location",
		Long:  `Calculate Karana information which represents half of a tithi period.`,
		Example: `  # Get Karana for today
  panchangam-cli karana -l mumbai

  # Get detailed Karana information
  panchangam-cli karana -d 2024-06-21 --detailed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKaranaCommand(date, latitude, longitude, timezone, location, detailed)
		},
	}

	today := time.Now().Format("2006-01-02")
	cmd.Flags().StringVarP(&date, "date", "d", today, "Date in YYYY-MM-DD format")
	cmd.Flags().Float64Var(&latitude, "lat", 19.0760, "Latitude (-90 to 90)")
	cmd.Flags().Float64Var(&longitude, "lon", 72.8777, "Longitude (-180 to 180)")
	cmd.Flags().StringVar(&timezone, "tz", "Asia/Kolkata", "Timezone")
	cmd.Flags().StringVarP(&location, "location", "l", "", "Predefined location")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "Show detailed Karana information")

	return cmd
}

func createSunTimesCommand() *cobra.Command {
	var (
		date      string
		latitude  float64
		longitude float64
		timezone  string
		location  string
		detailed  bool
	)

	cmd := &cobra.Command{
		Use:   "sun",
		Short: "Calculate detailed sun timing information",
		Long:  `Calculate comprehensive sun timing information including sunrise, sunset, solar noon, and day length.`,
		Example: `  # Get sun times for today
  panchangam-cli sun -l tokyo

  # Get detailed sun information
  panchangam-cli sun -d 2024-06-21 --lat 35.6762 --lon 139.6503 --detailed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSunTimesCommand(date, latitude, longitude, timezone, location, detailed)
		},
	}

	today := time.Now().Format("2006-01-02")
	cmd.Flags().StringVarP(&date, "date", "d", today, "Date in YYYY-MM-DD format")
	cmd.Flags().Float64Var(&latitude, "lat", 35.6762, "Latitude (-90 to 90)")
	cmd.Flags().Float64Var(&longitude, "lon", 139.6503, "Longitude (-180 to 180)")
	cmd.Flags().StringVar(&timezone, "tz", "Asia/Tokyo", "Timezone")
	cmd.Flags().StringVarP(&location, "location", "l", "", "Predefined location")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "Show detailed sun information")

	return cmd
}

func createEphemerisCommand() *cobra.Command {
	var (
		date     string
		planet   string
		provider string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "ephemeris",
		Short: "Get planetary position data from ephemeris",
		Long:  `Show the Sun's and Moon's tropical and sidereal longitudes and the Lahiri ayanamsa from the local ephemeris providers. Other planets are not computed.`,
		Example: `  # Get all planetary positions for today
  panchangam-cli ephemeris

  # Get specific planet position
  panchangam-cli ephemeris --planet sun -d 2024-06-21

  # Use specific provider
  panchangam-cli ephemeris --provider jpl --detailed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEphemerisCommand(date, planet, provider, detailed)
		},
	}

	today := time.Now().Format("2006-01-02")
	cmd.Flags().StringVarP(&date, "date", "d", today, "Date in YYYY-MM-DD format")
	cmd.Flags().StringVarP(&planet, "planet", "p", "all", "Planet name (sun, moon, mars, mercury, jupiter, venus, saturn, all)")
	cmd.Flags().StringVar(&provider, "provider", "swiss", "Ephemeris provider (swiss, jpl); not used, positions always come from the local Moshier provider with its approximate fallback")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "Show detailed ephemeris information")

	return cmd
}

func createDateRangeCommand() *cobra.Command {
	var (
		startDate string
		endDate   string
		latitude  float64
		longitude float64
		timezone  string
		location  string
		method    string
		region    string
	)

	cmd := &cobra.Command{
		Use:   "range",
		Short: "Get Panchangam data for a date range",
		Long:  `Calculate Panchangam data for multiple consecutive dates.`,
		Example: `  # Get data for next 7 days
  panchangam-cli range --start 2024-06-21 --end 2024-06-28 -l mumbai

  # Get data for a month with specific calculation method
  panchangam-cli range --start 2024-06-01 --end 2024-06-30 --method drik`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDateRangeCommand(startDate, endDate, latitude, longitude, timezone, location, method, region)
		},
	}

	today := time.Now().Format("2006-01-02")
	tomorrow := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	cmd.Flags().StringVar(&startDate, "start", today, "Start date in YYYY-MM-DD format")
	cmd.Flags().StringVar(&endDate, "end", tomorrow, "End date in YYYY-MM-DD format")
	cmd.Flags().Float64Var(&latitude, "lat", 19.0760, "Latitude (-90 to 90)")
	cmd.Flags().Float64Var(&longitude, "lon", 72.8777, "Longitude (-180 to 180)")
	cmd.Flags().StringVar(&timezone, "tz", "Asia/Kolkata", "Timezone")
	cmd.Flags().StringVarP(&location, "location", "l", "", "Predefined location")
	cmd.Flags().StringVar(&method, "method", "drik", "Calculation method (drik, vakya); not used by the local computation")
	cmd.Flags().StringVar(&region, "region", "", "Regional variation (tamil_nadu, kerala, bengal); not used by the local computation")

	return cmd
}

func createEventsCommand() *cobra.Command {
	var (
		date      string
		latitude  float64
		longitude float64
		timezone  string
		location  string
		eventType string
		region    string
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Get festivals, events, and special occasions",
		Long:  `Calculate festivals, religious events, and special astronomical occurrences.`,
		Example: `  # Get all events for today
  panchangam-cli events -l mumbai

  # Get specific type of events
  panchangam-cli events --type major -d 2024-06-21

  # Get regional events
  panchangam-cli events --region tamil_nadu`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEventsCommand(date, latitude, longitude, timezone, location, eventType, region)
		},
	}

	today := time.Now().Format("2006-01-02")
	cmd.Flags().StringVarP(&date, "date", "d", today, "Date in YYYY-MM-DD format")
	cmd.Flags().Float64Var(&latitude, "lat", 19.0760, "Latitude (-90 to 90)")
	cmd.Flags().Float64Var(&longitude, "lon", 72.8777, "Longitude (-180 to 180)")
	cmd.Flags().StringVar(&timezone, "tz", "Asia/Kolkata", "Timezone")
	cmd.Flags().StringVarP(&location, "location", "l", "", "Predefined location")
	cmd.Flags().StringVar(&eventType, "type", "all", "Event type (major, minor, national, regional, seasonal, all)")
	cmd.Flags().StringVar(&region, "region", "", "Regional variation (tamil_nadu, kerala, bengal); not used by the local festival lookup")

	return cmd
}

func createMuhurtaCommand() *cobra.Command {
	var (
		date      string
		latitude  float64
		longitude float64
		timezone  string
		location  string
		purpose   string
		quality   string
	)

	cmd := &cobra.Command{
		Use:   "muhurta",
		Short: "Calculate auspicious time periods (muhurtas)",
		Long:  `Calculate auspicious and inauspicious time periods for various activities.`,
		Example: `  # Get all muhurtas for today
  panchangam-cli muhurta -l mumbai

  # Get muhurtas for specific purpose
  panchangam-cli muhurta --purpose marriage -d 2024-06-21

  # Get only auspicious muhurtas
  panchangam-cli muhurta --quality auspicious`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMuhurtaCommand(date, latitude, longitude, timezone, location, purpose, quality)
		},
	}

	today := time.Now().Format("2006-01-02")
	cmd.Flags().StringVarP(&date, "date", "d", today, "Date in YYYY-MM-DD format")
	cmd.Flags().Float64Var(&latitude, "lat", 19.0760, "Latitude (-90 to 90)")
	cmd.Flags().Float64Var(&longitude, "lon", 72.8777, "Longitude (-180 to 180)")
	cmd.Flags().StringVar(&timezone, "tz", "Asia/Kolkata", "Timezone")
	cmd.Flags().StringVarP(&location, "location", "l", "", "Predefined location")
	cmd.Flags().StringVar(&purpose, "purpose", "all", "Purpose (marriage, business, travel, all); shown in the header, the list is not filtered by it")
	cmd.Flags().StringVar(&quality, "quality", "all", "Quality filter (auspicious, inauspicious, all)")

	return cmd
}

func createVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version information for the CLI and service.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersionCommand()
		},
	}
	return cmd
}

func createHealthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check ephemeris provider health",
		Long:  `Check the health of the local ephemeris providers. The gRPC server is not contacted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHealthCommand()
		},
	}
	return cmd
}

// ============================================================================
// COMMAND IMPLEMENTATIONS
// ============================================================================

func runTithiCommand(date string, lat, lon float64, tz, location string, detailed bool) error {
	dateInTZ, ephLoc, _, err := resolveLocationAndDate(date, lat, lon, tz, location, "Asia/Kolkata")
	if err != nil {
		return err
	}

	manager := newCLIEphemerisManager()
	defer manager.Close()

	ctx := context.Background()
	tithiInfo, err := astronomy.NewTithiCalculator(manager).GetTithiForDate(ctx, dateInTZ, ephLoc)
	if err != nil {
		return fmt.Errorf("failed to calculate tithi: %v", err)
	}

	switch outputFormat {
	case "json":
		return outputTithiJSON(tithiInfo)
	case "yaml":
		return outputTithiYAML(tithiInfo)
	default:
		return outputTithiTable(tithiInfo, detailed)
	}
}

func runVersionCommand() error {
	version := map[string]interface{}{
		"cli_version": "1.0.0",
		"api_version": "1.0.0",
		"build_date":  time.Now().Format("2006-01-02"),
		"go_version":  "1.21+",
		"supported_features": []string{
			"tithi_calculation",
			"nakshatra_calculation",
			"yoga_calculation",
			"karana_calculation",
			"sunrise_sunset",
			"ephemeris_data",
			"regional_variations",
			"event_calculations",
		},
	}

	switch outputFormat {
	case "json":
		data, _ := json.MarshalIndent(version, "", "  ")
		fmt.Println(string(data))
	case "yaml":
		data, _ := yaml.Marshal(version)
		fmt.Print(string(data))
	default:
		fmt.Println("🚀 Panchangam CLI")
		fmt.Println("═══════════════════")
		fmt.Printf("CLI Version: %s\n", version["cli_version"])
		fmt.Printf("API Version: %s\n", version["api_version"])
		fmt.Printf("Build Date: %s\n", version["build_date"])
		fmt.Printf("Go Version: %s\n", version["go_version"])
		fmt.Println("\n✨ Supported Features:")
		for _, feature := range version["supported_features"].([]string) {
			fmt.Printf("  • %s\n", strings.ReplaceAll(feature, "_", " "))
		}
	}
	return nil
}

func runHealthCommand() error {
	manager := newCLIEphemerisManager()
	defer manager.Close()

	statuses := manager.GetHealthStatus(context.Background())
	providers := make(map[string]string, len(statuses))
	allAvailable := true
	for name, s := range statuses {
		if s.Available {
			providers[name] = "available"
		} else {
			providers[name] = "unavailable: " + s.ErrorMessage
			allAvailable = false
		}
	}

	ephemerisStatus := "healthy"
	if !allAvailable {
		ephemerisStatus = "degraded"
	}

	health := map[string]interface{}{
		"timestamp":        time.Now().Format(time.RFC3339),
		"cli_status":       "healthy",
		"ephemeris_status": ephemerisStatus,
		"providers":        providers,
	}

	switch outputFormat {
	case "json":
		data, _ := json.MarshalIndent(health, "", "  ")
		fmt.Println(string(data))
	case "yaml":
		data, _ := yaml.Marshal(health)
		fmt.Print(string(data))
	default:
		fmt.Println("🏥 Service Health Check")
		fmt.Println("═══════════════════════")
		fmt.Printf("Timestamp: %s\n", health["timestamp"])
		fmt.Printf("CLI Status: %s\n", health["cli_status"])
		fmt.Printf("Ephemeris Status: %s\n", health["ephemeris_status"])
		fmt.Println("\n📦 Providers:")
		providers := health["providers"].(map[string]string)
		for name, status := range providers {
			fmt.Printf("  • %s: %s\n", strings.ReplaceAll(name, "_", " "), status)
		}
	}
	return nil
}

func runSunTimesCommand(date string, lat, lon float64, tz, location string, detailed bool) error {
	dateInTZ, ephLoc, _, err := resolveLocationAndDate(date, lat, lon, tz, location, "Asia/Tokyo")
	if err != nil {
		return err
	}

	manager := newCLIEphemerisManager()
	defer manager.Close()

	ctx := context.Background()
	jd := ephemeris.GregorianToJD(dateInTZ.Year(), int(dateInTZ.Month()), float64(dateInTZ.Day()))

	jdRise, err := manager.SunriseJD(ctx, jd, ephLoc)
	if err != nil {
		return fmt.Errorf("failed to calculate sunrise: %v", err)
	}
	jdSet, err := manager.SunsetJD(ctx, jd, ephLoc)
	if err != nil {
		return fmt.Errorf("failed to calculate sunset: %v", err)
	}

	sunrise := jdToUTCTime(jdRise)
	sunset := jdToUTCTime(jdSet)

	switch outputFormat {
	case "json":
		return outputSunTimesJSON(sunrise, sunset, ephLoc, dateInTZ)
	case "yaml":
		return outputSunTimesYAML(sunrise, sunset, ephLoc, dateInTZ)
	default:
		return outputSunTimesTable(sunrise, sunset, ephLoc, dateInTZ, detailed)
	}
}

// Helper output functions for new commands
func outputTithiTable(tithi *astronomy.TithiInfo, detailed bool) error {
	fmt.Printf("🌙 Tithi Information\n")
	fmt.Printf("═══════════════════════\n")
	fmt.Printf("Number: %d\n", tithi.Number)
	fmt.Printf("Name: %s\n", tithi.Name)
	fmt.Printf("Type: %s\n", tithi.Type)
	fmt.Printf("Paksha: %s\n", map[bool]string{true: "Shukla (Waxing)", false: "Krishna (Waning)"}[tithi.IsShukla])

	if detailed {
		fmt.Printf("Start Time: %s\n", tithi.StartTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("End Time: %s\n", tithi.EndTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Duration: %.2f hours\n", tithi.Duration)
		fmt.Printf("Moon-Sun Difference: %.2f°\n", tithi.MoonSunDiff)
	}
	return nil
}

func outputTithiJSON(tithi *astronomy.TithiInfo) error {
	data, err := json.MarshalIndent(tithi, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func outputTithiYAML(tithi *astronomy.TithiInfo) error {
	data, err := yaml.Marshal(tithi)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

func outputSunTimesTable(sunrise, sunset time.Time, location ephemeris.Location, date time.Time, detailed bool) error {
	fmt.Printf("🌅 Sun Times Information\n")
	fmt.Printf("═══════════════════════════\n")
	fmt.Printf("Date: %s\n", date.Format("2006-01-02"))
	fmt.Printf("Location: %.4f°N, %.4f°E\n", location.Latitude, location.Longitude)
	fmt.Printf("Timezone: %s\n", date.Location().String())
	fmt.Printf("───────────────────────────\n")
	fmt.Printf("Sunrise: %s UTC\n", sunrise.Format("15:04:05"))
	fmt.Printf("Sunset: %s UTC\n", sunset.Format("15:04:05"))

	dayLength := sunset.Sub(sunrise)
	if dayLength < 0 {
		dayLength += 24 * time.Hour
	}
	fmt.Printf("Day Length: %v\n", dayLength)

	if detailed {
		solarNoon := sunrise.Add(dayLength / 2)
		fmt.Printf("Solar Noon: %s UTC\n", solarNoon.Format("15:04:05"))
		fmt.Printf("Night Length: %v\n", 24*time.Hour-dayLength)
	}
	return nil
}

func outputSunTimesJSON(sunrise, sunset time.Time, location ephemeris.Location, date time.Time) error {
	data := map[string]interface{}{
		"date":       date.Format("2006-01-02"),
		"location":   map[string]float64{"latitude": location.Latitude, "longitude": location.Longitude},
		"timezone":   date.Location().String(),
		"sunrise":    sunrise.Format("15:04:05") + "Z",
		"sunset":     sunset.Format("15:04:05") + "Z",
		"day_length": sunset.Sub(sunrise).String(),
	}
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(jsonData))
	return nil
}

func outputSunTimesYAML(sunrise, sunset time.Time, location ephemeris.Location, date time.Time) error {
	data := map[string]interface{}{
		"date":       date.Format("2006-01-02"),
		"location":   map[string]float64{"latitude": location.Latitude, "longitude": location.Longitude},
		"timezone":   date.Location().String(),
		"sunrise":    sunrise.Format("15:04:05") + "Z",
		"sunset":     sunset.Format("15:04:05") + "Z",
		"day_length": sunset.Sub(sunrise).String(),
	}
	yamlData, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	fmt.Print(string(yamlData))
	return nil
}

func runNakshatraCommand(date string, lat, lon float64, tz, location string, detailed bool) error {
	dateInTZ, _, _, err := resolveLocationAndDate(date, lat, lon, tz, location, "Asia/Kolkata")
	if err != nil {
		return err
	}

	manager := newCLIEphemerisManager()
	defer manager.Close()

	ctx := context.Background()
	nk, err := astronomy.NewNakshatraCalculator(manager).GetNakshatraForDate(ctx, dateInTZ)
	if err != nil {
		return fmt.Errorf("failed to calculate nakshatra: %v", err)
	}

	switch outputFormat {
	case "json":
		return printJSON(nk)
	case "yaml":
		return printYAML(nk)
	default:
		fmt.Printf("🌟 Nakshatra Information\n")
		fmt.Printf("═══════════════════════════\n")
		fmt.Printf("Number: %d\n", nk.Number)
		fmt.Printf("Name: %s\n", nk.Name)
		fmt.Printf("Pada: %d\n", nk.Pada)
		fmt.Printf("Deity: %s\n", nk.Deity)
		fmt.Printf("Planetary Lord: %s\n", nk.PlanetaryLord)
		if detailed {
			fmt.Printf("Symbol: %s\n", nk.Symbol)
			fmt.Printf("Start Time: %s\n", nk.StartTime.Format("2006-01-02 15:04:05"))
			fmt.Printf("End Time: %s\n", nk.EndTime.Format("2006-01-02 15:04:05"))
			fmt.Printf("Duration: %.2f hours\n", nk.Duration)
			fmt.Printf("Moon Longitude: %.2f°\n", nk.MoonLongitude)
		}
		return nil
	}
}

func runYogaCommand(date string, lat, lon float64, tz, location string, detailed bool) error {
	dateInTZ, _, _, err := resolveLocationAndDate(date, lat, lon, tz, location, "Asia/Kolkata")
	if err != nil {
		return err
	}

	manager := newCLIEphemerisManager()
	defer manager.Close()

	ctx := context.Background()
	yg, err := astronomy.NewYogaCalculator(manager).GetYogaForDate(ctx, dateInTZ)
	if err != nil {
		return fmt.Errorf("failed to calculate yoga: %v", err)
	}

	switch outputFormat {
	case "json":
		return printJSON(yg)
	case "yaml":
		return printYAML(yg)
	default:
		fmt.Printf("🧘 Yoga Information\n")
		fmt.Printf("═══════════════════\n")
		fmt.Printf("Number: %d\n", yg.Number)
		fmt.Printf("Name: %s\n", yg.Name)
		fmt.Printf("Quality: %s\n", yg.Quality)
		if detailed {
			fmt.Printf("Description: %s\n", yg.Description)
			fmt.Printf("Start Time: %s\n", yg.StartTime.Format("2006-01-02 15:04:05"))
			fmt.Printf("End Time: %s\n", yg.EndTime.Format("2006-01-02 15:04:05"))
			fmt.Printf("Duration: %.2f hours\n", yg.Duration)
			fmt.Printf("Combined Longitude: %.2f°\n", yg.CombinedValue)
		}
		return nil
	}
}

func runKaranaCommand(date string, lat, lon float64, tz, location string, detailed bool) error {
	dateInTZ, ephLoc, _, err := resolveLocationAndDate(date, lat, lon, tz, location, "Asia/Kolkata")
	if err != nil {
		return err
	}

	manager := newCLIEphemerisManager()
	defer manager.Close()

	ctx := context.Background()
	ka, err := astronomy.NewKaranaCalculator(manager).GetKaranaForDate(ctx, dateInTZ, ephLoc)
	if err != nil {
		return fmt.Errorf("failed to calculate karana: %v", err)
	}

	switch outputFormat {
	case "json":
		return printJSON(ka)
	case "yaml":
		return printYAML(ka)
	default:
		fmt.Printf("⚡ Karana Information\n")
		fmt.Printf("═════════════════════\n")
		fmt.Printf("Number: %d\n", ka.Number)
		fmt.Printf("Name: %s\n", ka.Name)
		fmt.Printf("Type: %s\n", ka.Type)
		fmt.Printf("Vishti: %v\n", ka.IsVishti)
		if detailed {
			fmt.Printf("Description: %s\n", ka.Description)
			fmt.Printf("Start Time: %s\n", ka.StartTime.Format("2006-01-02 15:04:05"))
			fmt.Printf("End Time: %s\n", ka.EndTime.Format("2006-01-02 15:04:05"))
			fmt.Printf("Duration: %.2f hours\n", ka.Duration)
			fmt.Printf("Parent Tithi: %d (half %d)\n", ka.TithiNumber, ka.HalfTithi)
		}
		return nil
	}
}

func runEphemerisCommand(date, planet, provider string, detailed bool) error {
	parsedDate, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("invalid date format: %v", err)
	}

	manager := newCLIEphemerisManager()
	defer manager.Close()

	ctx := context.Background()
	jd := ephemeris.GregorianToJD(parsedDate.Year(), int(parsedDate.Month()), float64(parsedDate.Day()))

	sunLong, err := manager.SolarLongitude(ctx, jd)
	if err != nil {
		return fmt.Errorf("failed to compute solar longitude: %v", err)
	}
	moonLong, err := manager.LunarLongitude(ctx, jd)
	if err != nil {
		return fmt.Errorf("failed to compute lunar longitude: %v", err)
	}
	ayanamsa, err := manager.Ayanamsa(ctx, jd)
	if err != nil {
		return fmt.Errorf("failed to compute ayanamsa: %v", err)
	}

	positions := map[string]interface{}{
		"date":                date,
		"sun_longitude_trop":  sunLong,
		"moon_longitude_trop": moonLong,
		"ayanamsa":            ayanamsa,
		"sun_longitude_sid":   phaseMod360(sunLong - ayanamsa),
		"moon_longitude_sid":  phaseMod360(moonLong - ayanamsa),
	}

	switch outputFormat {
	case "json":
		return printJSON(positions)
	case "yaml":
		return printYAML(positions)
	default:
		fmt.Printf("🪐 Ephemeris Data (%s)\n", date)
		fmt.Printf("═══════════════════════════\n")
		fmt.Printf("Ayanamsa: %.4f°\n", ayanamsa)
		fmt.Printf("Sun:  tropical %.4f°  sidereal %.4f°\n", sunLong, phaseMod360(sunLong-ayanamsa))
		fmt.Printf("Moon: tropical %.4f°  sidereal %.4f°\n", moonLong, phaseMod360(moonLong-ayanamsa))
		if detailed && planet != "all" && planet != "sun" && planet != "moon" {
			fmt.Printf("\nNote: %s is not yet covered by the local ephemeris providers; only Sun and Moon positions are available without a server connection.\n", planet)
		}
		return nil
	}
}

func phaseMod360(deg float64) float64 {
	m := deg - 360.0*float64(int(deg/360.0))
	if m < 0 {
		m += 360.0
	}
	return m
}

func runDateRangeCommand(startDate, endDate string, lat, lon float64, tz, location, method, region string) error {
	_, ephLoc, _, err := resolveLocationAndDate(startDate, lat, lon, tz, location, "Asia/Kolkata")
	if err != nil {
		return err
	}

	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return fmt.Errorf("invalid start date: %v", err)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return fmt.Errorf("invalid end date: %v", err)
	}
	if end.Before(start) {
		return fmt.Errorf("end date %s is before start date %s", endDate, startDate)
	}

	manager := newCLIEphemerisManager()
	defer manager.Close()
	panchangCalc := astronomy.NewPanchangCalculator(manager)

	ctx := context.Background()
	fmt.Printf("📅 Panchangam for %s to %s\n", startDate, endDate)
	fmt.Printf("═══════════════════════════════════════\n")

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		pd, err := panchangCalc.GetPanchangForDate(ctx, d.Year(), int(d.Month()), d.Day(), ephLoc)
		if err != nil {
			return fmt.Errorf("failed to compute panchangam for %s: %v", d.Format("2006-01-02"), err)
		}
		fmt.Printf("%s  Tithi %-22s Nakshatra %-16s Yoga %-16s Karana %s\n",
			d.Format("2006-01-02"),
			fmt.Sprintf("%s (%s)", pd.Tithi.Name, pd.Tithi.Paksha),
			pd.Nakshatra.Name,
			pd.Yoga.Name,
			pd.Karana.Name,
		)
	}

	return nil
}

func runEventsCommand(date string, lat, lon float64, tz, location, eventType, region string) error {
	dateInTZ, ephLoc, _, err := resolveLocationAndDate(date, lat, lon, tz, location, "Asia/Kolkata")
	if err != nil {
		return err
	}

	manager := newCLIEphemerisManager()
	defer manager.Close()

	ctx := context.Background()
	tithiInfo, err := astronomy.NewTithiCalculator(manager).GetTithiForDate(ctx, dateInTZ, ephLoc)
	if err != nil {
		return fmt.Errorf("failed to compute tithi for event lookup: %v", err)
	}

	festivals, err := astronomy.NewFestivalCalendar(manager).GetFestivalsForDate(ctx, dateInTZ, tithiInfo.Number)
	if err != nil {
		return fmt.Errorf("failed to look up festivals: %v", err)
	}

	if eventType != "" && eventType != "all" {
		filtered := festivals[:0]
		for _, f := range festivals {
			if strings.EqualFold(f.Type, eventType) {
				filtered = append(filtered, f)
			}
		}
		festivals = filtered
	}

	switch outputFormat {
	case "json":
		return printJSON(festivals)
	case "yaml":
		return printYAML(festivals)
	default:
		fmt.Printf("🎉 Events for %s\n", date)
		fmt.Printf("═══════════════════════\n")
		if len(festivals) == 0 {
			fmt.Println("No festivals or special events on this date.")
			return nil
		}
		for _, f := range festivals {
			fmt.Printf("• %s (%s): %s\n", f.Name, f.Type, f.Significance)
		}
		return nil
	}
}

func runMuhurtaCommand(date string, lat, lon float64, tz, location, purpose, quality string) error {
	dateInTZ, ephLoc, _, err := resolveLocationAndDate(date, lat, lon, tz, location, "Asia/Kolkata")
	if err != nil {
		return err
	}

	manager := newCLIEphemerisManager()
	defer manager.Close()

	ctx := context.Background()
	muhurtas, err := astronomy.DaylightMuhurtas(ctx, manager, dateInTZ, ephLoc)
	if err != nil {
		return fmt.Errorf("failed to compute muhurtas: %v", err)
	}

	if quality == "auspicious" || quality == "inauspicious" {
		wantAuspicious := quality == "auspicious"
		filtered := muhurtas[:0]
		for _, m := range muhurtas {
			if m.Auspicious == wantAuspicious {
				filtered = append(filtered, m)
			}
		}
		muhurtas = filtered
	}

	switch outputFormat {
	case "json":
		return printJSON(muhurtas)
	case "yaml":
		return printYAML(muhurtas)
	default:
		fmt.Printf("🕐 Daylight Muhurtas for %s\n", date)
		if purpose != "" && purpose != "all" {
			fmt.Printf("(purpose: %s)\n", purpose)
		}
		fmt.Printf("═══════════════════════════════════\n")
		for _, m := range muhurtas {
			marker := "⚠️ inauspicious"
			if m.Auspicious {
				marker = "✅ auspicious"
			}
			fmt.Printf("• %-16s %s - %s  %s\n", m.Name, m.Start.Format("15:04:05"), m.End.Format("15:04:05"), marker)
		}
		return nil
	}
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func printYAML(v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
