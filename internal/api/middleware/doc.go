// Package middleware provides production-ready HTTP middleware for the
// business time API.
//
// Middleware stack includes:
//   - CORS: Cross-origin resource sharing with configurable origins
//   - RateLimit: Per-IP token bucket rate limiting
//   - RequestID: Correlation ID assignment and propagation
//
// CORS Configuration:
//   - AllowOrigins: Permitted origin domains
//   - AllowMethods: HTTP methods (the API is read-only, GET/OPTIONS)
//   - ExposeHeaders: Provenance headers readable by browsers
//   - MaxAge: Preflight cache duration
//
// Rate Limiting:
//   - Per-IP tracking
//   - Token bucket algorithm
//   - Configurable RPS and burst capacity
//   - Global rate limiting option
//
// Example Usage:
//
//	router.Use(middleware.RequestID())
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
