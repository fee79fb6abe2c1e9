package ephemeris

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vedic-go/panchangam/observability"
)

// Provider computes the angles and events the calendrical layer needs from
// a bare Julian Day: tropical solar/lunar longitude, ayanamsa, and local
// sunrise/sunset. Two implementations exist — MoshierProvider (the real
// DE-404 engine) and ApproximateProvider (a deliberately coarser fallback)
// — so the Manager always has a second opinion to reach for.
type Provider interface {
	SolarLongitude(ctx context.Context, jdUT float64) (float64, error)
	LunarLongitude(ctx context.Context, jdUT float64) (float64, error)
	Ayanamsa(ctx context.Context, jdUT float64) (float64, error)
	SunriseJD(ctx context.Context, jdUT float64, loc Location) (float64, error)
	SunsetJD(ctx context.Context, jdUT float64, loc Location) (float64, error)

	IsAvailable(ctx context.Context) bool
	GetHealthStatus(ctx context.Context) (*HealthStatus, error)
	Name() string
	Close() error
}

// Manager wraps a primary Provider with a fallback and a result cache.
type Manager struct {
	primary       Provider
	fallback      Provider
	cache         Cache
	observer      observability.ObserverInterface
	healthChecker *HealthChecker
}

// NewManager builds a Manager. fallback may be nil, in which case a primary
// failure is returned to the caller instead of retried.
func NewManager(primary, fallback Provider, cache Cache) *Manager {
	m := &Manager{
		primary:  primary,
		fallback: fallback,
		cache:    cache,
		observer: observability.Observer(),
	}
	m.healthChecker = NewHealthChecker([]Provider{primary, fallback})
	return m
}

func (m *Manager) tryProvider(ctx context.Context, p Provider, kind string, op func(Provider) (float64, error)) (float64, error) {
	if p == nil {
		return 0, fmt.Errorf("%s provider is nil", kind)
	}
	ctx, span := m.observer.CreateSpan(ctx, fmt.Sprintf("ephemeris.try_%s_provider", kind))
	defer span.End()

	span.SetAttributes(attribute.String("provider_name", p.Name()))

	start := time.Now()
	result, err := op(p)
	span.SetAttributes(
		attribute.Int64("response_time_ms", time.Since(start).Milliseconds()),
		attribute.Bool("success", err == nil),
	)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	return result, nil
}

func (m *Manager) compute(ctx context.Context, spanName, cacheKey string, op func(Provider) (float64, error)) (float64, error) {
	ctx, span := m.observer.CreateSpan(ctx, spanName)
	defer span.End()

	if cached, found := m.cache.Get(ctx, cacheKey); found {
		span.SetAttributes(attribute.Bool("cache_hit", true))
		return cached, nil
	}
	span.SetAttributes(attribute.Bool("cache_hit", false))

	value, err := m.tryProvider(ctx, m.primary, "primary", op)
	if err != nil {
		span.AddEvent("primary provider failed, trying fallback")
		value, err = m.tryProvider(ctx, m.fallback, "fallback", op)
	}
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("%s: all providers failed: %w", spanName, err)
	}

	m.cache.Set(ctx, cacheKey, value, time.Hour)
	return value, nil
}

func (m *Manager) SolarLongitude(ctx context.Context, jdUT float64) (float64, error) {
	return m.compute(ctx, "ephemeris.Manager.SolarLongitude", fmt.Sprintf("sun_%f", jdUT), func(p Provider) (float64, error) {
		return p.SolarLongitude(ctx, jdUT)
	})
}

func (m *Manager) LunarLongitude(ctx context.Context, jdUT float64) (float64, error) {
	return m.compute(ctx, "ephemeris.Manager.LunarLongitude", fmt.Sprintf("moon_%f", jdUT), func(p Provider) (float64, error) {
		return p.LunarLongitude(ctx, jdUT)
	})
}

func (m *Manager) Ayanamsa(ctx context.Context, jdUT float64) (float64, error) {
	return m.compute(ctx, "ephemeris.Manager.Ayanamsa", fmt.Sprintf("ayanamsa_%f", jdUT), func(p Provider) (float64, error) {
		return p.Ayanamsa(ctx, jdUT)
	})
}

func (m *Manager) SunriseJD(ctx context.Context, jdUT float64, loc Location) (float64, error) {
	key := fmt.Sprintf("sunrise_%f_%f_%f", jdUT, loc.Latitude, loc.Longitude)
	return m.compute(ctx, "ephemeris.Manager.SunriseJD", key, func(p Provider) (float64, error) {
		return p.SunriseJD(ctx, jdUT, loc)
	})
}

func (m *Manager) SunsetJD(ctx context.Context, jdUT float64, loc Location) (float64, error) {
	key := fmt.Sprintf("sunset_%f_%f_%f", jdUT, loc.Latitude, loc.Longitude)
	return m.compute(ctx, "ephemeris.Manager.SunsetJD", key, func(p Provider) (float64, error) {
		return p.SunsetJD(ctx, jdUT, loc)
	})
}

// GetHealthStatus asks each configured provider for its current health and
// returns the answers keyed "primary"/"fallback".
func (m *Manager) GetHealthStatus(ctx context.Context) map[string]*HealthStatus {
	status := make(map[string]*HealthStatus)
	if m.primary != nil {
		if h, err := m.primary.GetHealthStatus(ctx); err == nil {
			status["primary"] = h
		}
	}
	if m.fallback != nil {
		if h, err := m.fallback.GetHealthStatus(ctx); err == nil {
			status["fallback"] = h
		}
	}
	return status
}

func (m *Manager) Close() error {
	var errs []error
	if m.primary != nil {
		if err := m.primary.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if m.fallback != nil {
		if err := m.fallback.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if m.cache != nil {
		if err := m.cache.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if m.healthChecker != nil {
		m.healthChecker.Stop()
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors during close: %v", errs)
	}
	return nil
}
