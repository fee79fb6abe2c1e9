package ephemeris

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vedic-go/panchangam/observability"
)

// HealthStatus reports whether a Provider is currently usable.
type HealthStatus struct {
	Available    bool          `json:"available"`
	LastCheck    time.Time     `json:"last_check"`
	ResponseTime time.Duration `json:"response_time"`
	ErrorMessage string        `json:"error_message,omitempty"`
	Source       string        `json:"source,omitempty"`
}

// HealthChecker periodically polls a set of providers and keeps their last
// observed HealthStatus, independent of whether the Manager has recently
// needed to fall back to them.
type HealthChecker struct {
	providers []Provider
	statuses  map[string]*HealthStatus
	mutex     sync.RWMutex
	observer  observability.ObserverInterface
	ticker    *time.Ticker
	stopChan  chan struct{}
	interval  time.Duration
	isRunning bool
}

// NewHealthChecker creates a checker over the given providers, nil entries
// ignored (a Manager with no configured fallback passes nil there).
func NewHealthChecker(providers []Provider) *HealthChecker {
	return &HealthChecker{
		providers: providers,
		statuses:  make(map[string]*HealthStatus),
		observer:  observability.Observer(),
		interval:  30 * time.Second,
		stopChan:  make(chan struct{}),
	}
}

func (h *HealthChecker) Start() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if h.isRunning {
		return
	}
	h.isRunning = true
	h.ticker = time.NewTicker(h.interval)
	go h.checkHealth()
	go h.run()
}

func (h *HealthChecker) Stop() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if !h.isRunning {
		return
	}
	h.isRunning = false
	select {
	case <-h.stopChan:
	default:
		close(h.stopChan)
	}
	if h.ticker != nil {
		h.ticker.Stop()
	}
}

func (h *HealthChecker) run() {
	for {
		select {
		case <-h.ticker.C:
			h.checkHealth()
		case <-h.stopChan:
			return
		}
	}
}

func (h *HealthChecker) checkHealth() {
	ctx, span := h.observer.CreateSpan(context.Background(), "ephemeris.HealthChecker.checkHealth")
	defer span.End()

	for _, p := range h.providers {
		if p == nil {
			continue
		}
		start := time.Now()
		status, err := p.GetHealthStatus(ctx)
		elapsed := time.Since(start)
		if err != nil {
			status = &HealthStatus{Available: false, ErrorMessage: err.Error()}
		}
		status.LastCheck = time.Now()
		status.ResponseTime = elapsed

		h.mutex.Lock()
		h.statuses[p.Name()] = status
		h.mutex.Unlock()

		span.SetAttributes(
			attribute.String("provider", p.Name()),
			attribute.Bool("available", status.Available),
		)
	}
}

func (h *HealthChecker) GetStatus(providerName string) (*HealthStatus, bool) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	status, exists := h.statuses[providerName]
	return status, exists
}

func (h *HealthChecker) GetAllStatuses() map[string]*HealthStatus {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	out := make(map[string]*HealthStatus, len(h.statuses))
	for k, v := range h.statuses {
		out[k] = v
	}
	return out
}
