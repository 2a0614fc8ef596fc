package metrics

import (
	"fmt"
	"log/slog"
	"time"

	"politix/app/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/do"
)

const namespace = "politix"

// Route names reported for a processed turn.
const (
	RouteQA       = "qa"
	RouteIntent   = "intent"
	RouteContext  = "context"
	RouteDefault  = "default"
	RouteFarewell = "farewell"
)

var _ do.Shutdownable = (*Service)(nil)

// Service counts turns and model calls for one process and writes them as a Prometheus
// textfile on shutdown.
type Service struct {
	textfile string
	registry *prometheus.Registry

	turnsTotal        *prometheus.CounterVec
	modelCallsTotal   *prometheus.CounterVec
	modelCallDuration *prometheus.HistogramVec
	capabilityEnabled *prometheus.GaugeVec
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)
	return NewService(cfg.Metrics.Textfile), nil
}

func NewService(textfile string) *Service {
	s := &Service{
		textfile: textfile,
		registry: prometheus.NewRegistry(),
		turnsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "turns_total",
				Help:      "Processed user turns by response route",
			},
			[]string{"route"},
		),
		modelCallsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "model_calls_total",
				Help:      "External model calls by capability and status",
			},
			[]string{"capability", "status"},
		),
		modelCallDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "model_call_duration_seconds",
				Help:      "External model call duration in seconds",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"capability"},
		),
		capabilityEnabled: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "capability_enabled",
				Help:      "1 when the optional model capability is available",
			},
			[]string{"capability"},
		),
	}

	s.registry.MustRegister(s.turnsTotal, s.modelCallsTotal, s.modelCallDuration, s.capabilityEnabled)

	return s
}

func (s *Service) ObserveTurn(route string) {
	s.turnsTotal.WithLabelValues(route).Inc()
}

func (s *Service) ObserveModelCall(capability string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	s.modelCallsTotal.WithLabelValues(capability, status).Inc()
	s.modelCallDuration.WithLabelValues(capability).Observe(time.Since(start).Seconds())
}

func (s *Service) SetCapability(capability string, enabled bool) {
	value := 0.0
	if enabled {
		value = 1
	}

	s.capabilityEnabled.WithLabelValues(capability).Set(value)
}

func (s *Service) Registry() *prometheus.Registry {
	return s.registry
}

// Shutdown writes the textfile when one is configured.
func (s *Service) Shutdown() error {
	if s.textfile == "" {
		return nil
	}

	if err := prometheus.WriteToTextfile(s.textfile, s.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}

	slog.Debug("Metrics written", "path", s.textfile)

	return nil
}
