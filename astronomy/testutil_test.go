package astronomy

import (
	"github.com/vedic-go/panchangam/ephemeris"
)

// newTestEphemerisManager builds a Manager backed by the real Moshier
// provider with the approximate series as fallback, the same pairing the
// CLI and gRPC service use, so package tests exercise the actual numeric
// core rather than a mock.
func newTestEphemerisManager() *ephemeris.Manager {
	return ephemeris.NewManager(
		ephemeris.NewMoshierProvider(),
		ephemeris.NewApproximateProvider(),
		ephemeris.NewLRUCache(64),
	)
}

var testBangalore = ephemeris.Location{
	Latitude:  12.9716,
	Longitude: 77.5946,
	Altitude:  920,
	UTCOffset: 5.5,
}
