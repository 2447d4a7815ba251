/*
Package tracing provides lightweight request tracing.

# Overview

This package implements minimal request tracing for debugging production
issues. It follows OpenTelemetry concepts without pulling in the full SDK:
spans with parent-child relationships, trace context propagation via HTTP
headers, and structured log output.

# Usage

	// Create tracer
	tracer := tracing.New("businesstime", logger)

	// HTTP middleware
	router.Use(tracing.HTTPMiddleware(tracer))

	// Manual span creation
	span, ctx := tracer.StartSpan(ctx, "operation")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()

	span.SetTag("key", "value")

# Trace Format

Traces use standard HTTP headers for propagation:
  - X-Trace-ID: Unique identifier for entire request flow
  - X-Span-ID: Identifier for current operation

# Performance

The tracing system is designed for minimal overhead: spans are buffered
(1000 entries) and processed asynchronously into the structured log.
*/
package tracing
