// Package tracing provides OpenTelemetry tracing integration.
//
// It exposes the application tracer, an HTTP server middleware that starts one
// span per request, and Setup, which installs a stdout or noop TracerProvider
// according to TRACE_EXPORTER.
//
// Example usage:
//
//	import "line-dispatch/internal/observability/tracing"
//
//	func main() {
//	    shutdown, err := tracing.Setup(ctx, "stdout")
//	    if err != nil { ... }
//	    defer shutdown(context.Background())
//	}
package tracing
