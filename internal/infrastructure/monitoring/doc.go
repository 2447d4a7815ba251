/*
Package monitoring provides performance monitoring and metrics collection.

# Overview

This package implements Prometheus-based metrics collection for the
business-time service, tracking HTTP requests, calculation volume, holiday
provider health, and system metrics.

# Features

- HTTP request metrics (latency, throughput, size)
- Business-time calculation volume
- Holiday provider metrics (data source, fetch attempts, fallback use)
- Circuit breaker state and cache age gauges
- System metrics (uptime)

# Usage

	// Create metrics collector
	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Record custom metrics
	metrics.RecordCalculation()
	metrics.RecordHolidayResult("CACHE", "HEALTHY")

# Metrics Endpoint

Expose metrics via the standard Prometheus endpoint:

	import "github.com/prometheus/client_golang/prometheus/promhttp"
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
*/
package monitoring
