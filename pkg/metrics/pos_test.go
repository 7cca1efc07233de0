package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestPOSMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewPOSMetrics(reg)
	metrics.IncSaleCommitted("durable")
	metrics.IncCommitFailure("empty_cart")
	metrics.IncScanResolution("barcode_exact")
	metrics.ObserveCommitDuration("durable", 120*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "pos_sales_committed_total", "mode", "durable"); err != nil {
		t.Fatalf("fetch sales: %v", err)
	} else if got != 1 {
		t.Fatalf("expected sales=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "pos_commit_failures_total", "reason", "empty_cart"); err != nil {
		t.Fatalf("fetch failures: %v", err)
	} else if got != 1 {
		t.Fatalf("expected failures=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "pos_scan_resolutions_total", "tier", "barcode_exact"); err != nil {
		t.Fatalf("fetch scans: %v", err)
	} else if got != 1 {
		t.Fatalf("expected scans=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "pos_commit_duration_seconds", "mode", "durable"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestPOSMetricsNilReceiverSafe(t *testing.T) {
	var metrics *POSMetrics
	metrics.IncSaleCommitted("durable")
	metrics.IncCommitFailure("x")
	metrics.IncScanResolution("y")
	metrics.ObserveCommitDuration("durable", time.Second)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
