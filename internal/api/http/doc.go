// Package http provides the HTTP handlers for the business time API.
//
// Endpoints:
//   - GET /            - Service banner
//   - GET /health      - Health check with holiday provider status
//   - GET /calculate   - Business-time calculation (days, hours, date)
//   - GET /holidays    - Current holiday dataset with provenance
//   - GET /status      - Holiday provider diagnostics
//
// The /calculate response carries provenance headers describing where the
// holiday data behind the answer came from:
//   - X-Holiday-Status: HEALTHY, DEGRADED or FAILED
//   - X-Holiday-Source: API, CACHE or FALLBACK
//   - X-Holiday-Last-Updated: RFC 3339 instant of the last successful fetch
package http
