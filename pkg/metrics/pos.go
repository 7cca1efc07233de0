package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// POSMetrics records checkout and scan activity for the terminal API.
type POSMetrics struct {
	salesCommitted  *prometheus.CounterVec
	commitFailures  *prometheus.CounterVec
	scanResolutions *prometheus.CounterVec
	commitDuration  *prometheus.HistogramVec
}

// NewPOSMetrics registers the POS metrics on the provided registerer.
func NewPOSMetrics(reg prometheus.Registerer) *POSMetrics {
	if reg == nil {
		return &POSMetrics{}
	}
	salesCommitted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_sales_committed_total",
		Help: "Committed checkouts.",
	}, []string{"mode"})
	commitFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_commit_failures_total",
		Help: "Checkout commits rejected or failed.",
	}, []string{"reason"})
	scanResolutions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_scan_resolutions_total",
		Help: "Scan resolver lookups by outcome tier.",
	}, []string{"tier"})
	commitDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pos_commit_duration_seconds",
		Help:    "Duration of checkout commits in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"mode"})
	reg.MustRegister(salesCommitted, commitFailures, scanResolutions, commitDuration)
	return &POSMetrics{
		salesCommitted:  salesCommitted,
		commitFailures:  commitFailures,
		scanResolutions: scanResolutions,
		commitDuration:  commitDuration,
	}
}

// IncSaleCommitted increments the committed sale counter for the given mode.
func (p *POSMetrics) IncSaleCommitted(mode string) {
	if p == nil || p.salesCommitted == nil {
		return
	}
	p.salesCommitted.WithLabelValues(normalizeLabel(mode)).Inc()
}

// IncCommitFailure increments the failed commit counter for the given reason.
func (p *POSMetrics) IncCommitFailure(reason string) {
	if p == nil || p.commitFailures == nil {
		return
	}
	p.commitFailures.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncScanResolution increments the scan counter for the matching tier.
func (p *POSMetrics) IncScanResolution(tier string) {
	if p == nil || p.scanResolutions == nil {
		return
	}
	p.scanResolutions.WithLabelValues(normalizeLabel(tier)).Inc()
}

// ObserveCommitDuration records how long a commit took.
func (p *POSMetrics) ObserveCommitDuration(mode string, duration time.Duration) {
	if p == nil || p.commitDuration == nil {
		return
	}
	p.commitDuration.WithLabelValues(normalizeLabel(mode)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
