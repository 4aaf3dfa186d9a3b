// Package metrics provides the Prometheus metrics of the dispatch pipeline.
//
// HTTP metrics live with the HTTP handlers; this package covers platform calls,
// file staging and the history ledger. All metrics are registered with the
// Prometheus default registry and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "line-dispatch/internal/observability/metrics"
//
//	start := time.Now()
//	// ... push message ...
//	metrics.RecordDispatch("send", "text", metrics.ResultSuccess, time.Since(start))
package metrics
