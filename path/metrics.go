package path

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records what the manager holds. A nil *Metrics records nothing.
type Metrics struct {
	added        *prometheus.CounterVec
	trajectories prometheus.Gauge
}

// NewMetrics registers the path metrics against reg, defaulting to the global Prometheus
// registry when nil. Registering twice against the same registry reuses the first collectors.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	added, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "path_trajectories_added_total",
		Help: "Total number of trajectories added to the path manager, labeled by type.",
	}, []string{"type"}), "path_trajectories_added_total")
	if err != nil {
		return nil, err
	}

	trajectories, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "path_trajectories",
		Help: "Current number of trajectories held by the path manager.",
	}), "path_trajectories")
	if err != nil {
		return nil, err
	}

	return &Metrics{added: added, trajectories: trajectories}, nil
}

func (m *Metrics) recordAdd(kind string, total int) {
	if m == nil {
		return
	}
	m.added.WithLabelValues(kind).Inc()
	m.trajectories.Set(float64(total))
}

func (m *Metrics) setTotal(total int) {
	if m == nil {
		return
	}
	m.trajectories.Set(float64(total))
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, errors.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, errors.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
