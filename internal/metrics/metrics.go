// Package metrics holds the domain Prometheus collectors for uploads and the
// login lockout. Methods are nil-safe so components can run without metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the domain counters.
type Metrics struct {
	uploadRejections *prometheus.CounterVec
	uploadStored     *prometheus.CounterVec
	storageFallbacks prometheus.Counter
	loginFailures    prometheus.Counter
	lockouts         *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		uploadRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "upload_rejections_total",
			Help: "Uploads rejected by validation, by rejection code.",
		}, []string{"code"}),
		uploadStored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "upload_stored_total",
			Help: "Attachments stored, by backend (remote or local).",
		}, []string{"backend"}),
		storageFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storage_fallbacks_total",
			Help: "Remote storage failures that fell back to local disk.",
		}),
		loginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "login_failures_total",
			Help: "Failed authentication attempts registered by the lockout manager.",
		}),
		lockouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "login_lockouts_total",
			Help: "Client identities blocked, by progressive block level.",
		}, []string{"level"}),
	}

	for _, c := range []prometheus.Collector{m.uploadRejections, m.uploadStored, m.storageFallbacks, m.loginFailures, m.lockouts} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) UploadRejected(code string) {
	if m == nil {
		return
	}
	m.uploadRejections.WithLabelValues(code).Inc()
}

func (m *Metrics) UploadStored(backend string) {
	if m == nil {
		return
	}
	m.uploadStored.WithLabelValues(backend).Inc()
}

func (m *Metrics) StorageFallback() {
	if m == nil {
		return
	}
	m.storageFallbacks.Inc()
}

func (m *Metrics) LoginFailed() {
	if m == nil {
		return
	}
	m.loginFailures.Inc()
}

// Lockout records a block at the given level (1 for the first block).
func (m *Metrics) Lockout(level string) {
	if m == nil {
		return
	}
	m.lockouts.WithLabelValues(level).Inc()
}
