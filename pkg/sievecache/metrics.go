package sievecache

// metrics.go is a thin abstraction over Prometheus so the cache works with
// or without metrics wired in. Passing a *prometheus.Registry via
// WithMetrics switches the sink from a no-op to Prometheus counters/gauges;
// otherwise the hot path does not pay for metric updates. Adapted from the
// teacher's pkg/metrics.go, relabeled for SIEVE (no arena byte counters;
// adds a hand-position gauge).
//
// ┌────────────────────────────┬───────┐
// │ Metric                     │ Type  │
// ├─────────────────────────────┼───────┤
// │ sievecache_hits_total       │ Ctr   │
// │ sievecache_misses_total     │ Ctr   │
// │ sievecache_evictions_total  │ Ctr   │
// │ sievecache_len              │ Gauge │
// │ sievecache_hand_position    │ Gauge │
// └────────────────────────────┴───────┘
//
// © 2025 sievecache authors. MIT License.

import "github.com/prometheus/client_golang/prometheus"

// metricsSink abstracts the concrete backend (Prometheus vs. no-op); Cache
// and ConcurrentCache only ever talk to this interface.
type metricsSink interface {
	incHit()
	incMiss()
	incEvict()
	setLen(n int)
	setHand(h int)
}

type noopMetrics struct{}

func (noopMetrics) incHit()    {}
func (noopMetrics) incMiss()   {}
func (noopMetrics) incEvict()  {}
func (noopMetrics) setLen(int) {}
func (noopMetrics) setHand(int) {}

type promMetrics struct {
	hits      prometheus.Counter
	misses    prometheus.Counter
	evictions prometheus.Counter
	length    prometheus.Gauge
	hand      prometheus.Gauge
}

func newPromMetrics(reg *prometheus.Registry) *promMetrics {
	pm := &promMetrics{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sievecache",
			Name:      "hits_total",
			Help:      "Number of cache hits.",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sievecache",
			Name:      "misses_total",
			Help:      "Number of cache misses.",
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sievecache",
			Name:      "evictions_total",
			Help:      "Number of items evicted by SIEVE.",
		}),
		length: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sievecache",
			Name:      "len",
			Help:      "Current number of occupied slots.",
		}),
		hand: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sievecache",
			Name:      "hand_position",
			Help:      "Current SIEVE hand cursor position.",
		}),
	}
	reg.MustRegister(pm.hits, pm.misses, pm.evictions, pm.length, pm.hand)
	return pm
}

func (m *promMetrics) incHit()     { m.hits.Inc() }
func (m *promMetrics) incMiss()    { m.misses.Inc() }
func (m *promMetrics) incEvict()   { m.evictions.Inc() }
func (m *promMetrics) setLen(n int) { m.length.Set(float64(n)) }
func (m *promMetrics) setHand(h int) { m.hand.Set(float64(h)) }

func newMetricsSink(reg *prometheus.Registry) metricsSink {
	if reg == nil {
		return noopMetrics{}
	}
	return newPromMetrics(reg)
}
