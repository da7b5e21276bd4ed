package metrics

import (
	"fmt"
	"net/http"

	"github.com/cgxeiji/weather"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "weather"

// Metrics exports station readings.
type Metrics struct {
	average   prometheus.Gauge
	sample    prometheus.Gauge
	saturated prometheus.Gauge
	samples   prometheus.Counter
	errors    prometheus.Counter
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		average: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "average_centikelvin",
			Help:      "Rolling average of the temperature samples, in centikelvin.",
		}),
		sample: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sample_centikelvin",
			Help:      "Last temperature sample, in centikelvin.",
		}),
		saturated: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "saturated",
			Help:      "1 once the rolling average window is full.",
		}),
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_total",
			Help:      "Number of samples added to the rolling average.",
		}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sensor_errors_total",
			Help:      "Number of polls that did not produce a sample.",
		}),
	}

	for _, c := range []prometheus.Collector{m.average, m.sample, m.saturated, m.samples, m.errors} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("metrics: could not register collector: %w", err)
		}
	}

	return m, nil
}

// Observe records a reading.
func (m *Metrics) Observe(r weather.Reading) {
	if r.Saturated {
		m.saturated.Set(1)
	} else {
		m.saturated.Set(0)
	}
	if r.Err != nil {
		m.errors.Inc()
		return
	}
	m.samples.Inc()
	m.sample.Set(float64(r.Sample))
	m.average.Set(float64(r.Average))
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
