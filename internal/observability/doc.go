// Package observability provides the observability infrastructure of the
// dispatch service: structured logging, Prometheus metrics and OpenTelemetry tracing.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus metrics for platform calls, file staging and history writes
//   - tracing: OpenTelemetry tracer, HTTP middleware and exporter setup
//
// Example usage:
//
//	import (
//	    "line-dispatch/internal/observability/logging"
//	    "line-dispatch/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started")
//
//	    metrics.RecordHistoryWrite(true)
//	}
package observability
