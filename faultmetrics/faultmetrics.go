// Package faultmetrics exports fault translation counters to Prometheus.
package faultmetrics

import (
	"github.com/prometheus/client_golang/prometheus"

	xgxfault "github.com/xgx-io/xgx-fault"
)

// Collector counts translated faults by kind and trap code, and goroutines
// that installed translation. It implements prometheus.Collector.
type Collector struct {
	faults   *prometheus.CounterVec
	installs prometheus.Counter
}

// NewCollector builds an unregistered Collector under namespace.
func NewCollector(namespace string) *Collector {
	return &Collector{
		faults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "faults_translated_total",
			Help:      "Hardware faults translated into errors, by kind and trap code.",
		}, []string{"kind", "trap"}),
		installs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fault_threads_installed_total",
			Help:      "Goroutines that installed fault translation.",
		}),
	}
}

// Observe counts the first fault in err's chain. Errors without a fault are
// ignored.
func (c *Collector) Observe(err error) {
	f, ok := xgxfault.AsFault(err)
	if !ok {
		return
	}
	c.faults.WithLabelValues(f.Kind().String(), f.TrapCode().String()).Inc()
}

// ObserveInstall counts one goroutine installing translation.
func (c *Collector) ObserveInstall() { c.installs.Inc() }

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.faults.Describe(ch)
	c.installs.Describe(ch)
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.faults.Collect(ch)
	c.installs.Collect(ch)
}

var _ prometheus.Collector = (*Collector)(nil)
