package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for the scan pipeline. The scan-event insert and the capture
// submission are best-effort relative to the redirect, so these counters are
// the operator's only view of silent loss.
var (
	Redirects = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zinescan_redirects_total",
		Help: "Scan redirect requests by outcome.",
	}, []string{"outcome"}) // resolved, not_found, error

	ScansRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "zinescan_scan_events_recorded_total",
		Help: "Scan events durably persisted.",
	})

	ScanRecordFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "zinescan_scan_event_failures_total",
		Help: "Scan event inserts that failed; the redirect still proceeded.",
	})

	CaptureFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "zinescan_capture_failures_total",
		Help: "Submissions to the external analytics sink that failed or timed out.",
	})
)
