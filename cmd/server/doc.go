// Package main is the entry point for the business time backend server.
//
// The service answers business-time calculations over the Colombian working
// calendar (America/Bogota, 08:00-12:00 and 13:00-17:00) backed by a
// resilient holiday data provider with caching, retries, a circuit breaker
// and an embedded fallback dataset.
//
// The server provides:
//   - REST API for business-time calculations
//   - Holiday dataset and provider diagnostics endpoints
//   - Prometheus metrics
//   - Rate limiting and CORS
//
// Configuration:
//   - Environment variables (12-factor)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	PORT=8080 HOLIDAY_SOURCE_URL=https://content.capta.co ./server
//
//	# Development mode (colored logs, debug level)
//	LOG_DEV=true LOG_LEVEL=debug ./server
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
