package ephemeris

import (
	"context"
	"time"

	"github.com/vedic-go/panchangam/observability"
)

// MoshierProvider is the primary Provider: the DE-404-fitted analytical
// lunar theory plus the Meeus low-precision solar theory implemented in
// this package, accurate to within a few arcseconds over the historical
// and modern range the panchang calculations need.
type MoshierProvider struct {
	engine   *Engine
	observer observability.ObserverInterface
}

// NewMoshierProvider constructs the primary provider.
func NewMoshierProvider() *MoshierProvider {
	return &MoshierProvider{engine: NewEngine(), observer: observability.Observer()}
}

func (p *MoshierProvider) SolarLongitude(ctx context.Context, jdUT float64) (float64, error) {
	return p.engine.SolarLongitude(jdUT), nil
}

func (p *MoshierProvider) LunarLongitude(ctx context.Context, jdUT float64) (float64, error) {
	// A fresh MoonState per call: one provider is shared across goroutines.
	return LunarLongitude(jdUT), nil
}

func (p *MoshierProvider) Ayanamsa(ctx context.Context, jdUT float64) (float64, error) {
	return p.engine.Ayanamsa(jdUT), nil
}

func (p *MoshierProvider) SunriseJD(ctx context.Context, jdUT float64, loc Location) (float64, error) {
	return p.engine.SunriseJD(jdUT, loc), nil
}

func (p *MoshierProvider) SunsetJD(ctx context.Context, jdUT float64, loc Location) (float64, error) {
	return p.engine.SunsetJD(jdUT, loc), nil
}

func (p *MoshierProvider) IsAvailable(ctx context.Context) bool {
	return true
}

func (p *MoshierProvider) GetHealthStatus(ctx context.Context) (*HealthStatus, error) {
	return &HealthStatus{Available: true, LastCheck: time.Now(), Source: p.Name()}, nil
}

func (p *MoshierProvider) Name() string {
	return "moshier-de404"
}

func (p *MoshierProvider) Close() error {
	return nil
}
