package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/habiltime/backend/internal/api/middleware"
	"github.com/habiltime/backend/internal/domain/calendar"
	"github.com/habiltime/backend/internal/domain/engine"
	"github.com/habiltime/backend/internal/infrastructure/monitoring"
	"github.com/habiltime/backend/internal/providers/holidays"
)

// HolidayService is the holiday data dependency of the handlers.
type HolidayService interface {
	GetHolidays(ctx context.Context, location string) holidays.Result
	Status() holidays.ServiceStatus
}

// Calculator resolves business-time calculations.
type Calculator interface {
	Calculate(req engine.Request, set calendar.HolidaySet) time.Time
}

// Handlers contains all HTTP handlers
type Handlers struct {
	provider HolidayService
	engine   Calculator
	location string
	logger   *zap.Logger
	metrics  *monitoring.Metrics
}

// NewHandlers creates a new handler set
func NewHandlers(provider HolidayService, engine Calculator, location string, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		provider: provider,
		engine:   engine,
		location: location,
		logger:   logger,
	}
}

// WithMetrics attaches a metrics collector.
func (h *Handlers) WithMetrics(metrics *monitoring.Metrics) *Handlers {
	h.metrics = metrics
	return h
}

// Root handles the service banner
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "Business Time Service (Go)",
		"version": "1.0.0",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	status := h.provider.Status()

	body := gin.H{
		"status":   status.Status,
		"holidays": statusBody(status),
	}
	if h.metrics != nil {
		snap := h.metrics.Snapshot()
		avgDuration := 0.0
		if snap.RequestCount > 0 {
			avgDuration = snap.TotalDuration / float64(snap.RequestCount)
		}
		body["requests"] = gin.H{
			"total":                snap.TotalRequests,
			"errors":               snap.TotalErrors,
			"avg_duration_seconds": avgDuration,
		}
	}

	c.JSON(http.StatusOK, body)
}

// Calculate resolves a business-time calculation from query parameters
func (h *Handlers) Calculate(c *gin.Context) {
	req, err := parseCalculateQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "InvalidParameters",
			"message": err.Error(),
		})
		return
	}

	result := h.provider.GetHolidays(c.Request.Context(), h.location)
	setProvenanceHeaders(c, result)

	date := h.engine.Calculate(req, result.Set)
	if h.metrics != nil {
		h.metrics.RecordCalculation()
	}

	h.logger.Debug("calculation resolved",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.Int("days", req.Days),
		zap.Int("hours", req.Hours),
		zap.Time("date", date),
		zap.Stringer("holiday_source", result.Source),
	)

	c.JSON(http.StatusOK, gin.H{
		"date": date.UTC().Format(time.RFC3339),
	})
}

// Holidays returns the current holiday dataset with provenance, optionally
// filtered to a year range
func (h *Handlers) Holidays(c *gin.Context) {
	result := h.provider.GetHolidays(c.Request.Context(), h.location)
	setProvenanceHeaders(c, result)

	dates := result.Set.Strings()
	if raw, ok := c.GetQuery("years"); ok {
		start, end, err := parseYearRange(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "InvalidParameters",
				"message": err.Error(),
			})
			return
		}
		filtered := make([]string, 0, len(dates))
		for _, d := range result.Set.Dates() {
			if d.Year >= start && d.Year <= end {
				filtered = append(filtered, d.String())
			}
		}
		dates = filtered
	}

	body := gin.H{
		"holidays": dates,
		"count":    len(dates),
		"status":   result.Status,
		"source":   result.Source,
	}
	if result.LastUpdated != nil {
		body["last_updated"] = result.LastUpdated.UTC().Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, body)
}

// Status returns holiday provider diagnostics
func (h *Handlers) Status(c *gin.Context) {
	c.JSON(http.StatusOK, statusBody(h.provider.Status()))
}

func statusBody(status holidays.ServiceStatus) gin.H {
	body := gin.H{
		"status": status.Status,
		"circuit": gin.H{
			"state":                status.CircuitPhase,
			"consecutive_failures": status.Failures,
		},
	}
	if status.LastFetch != nil {
		body["last_fetch"] = status.LastFetch.UTC().Format(time.RFC3339)
		body["cache_age_seconds"] = int64(status.CacheAge.Seconds())
	}
	return body
}

func setProvenanceHeaders(c *gin.Context, result holidays.Result) {
	c.Header("X-Holiday-Status", result.Status.String())
	c.Header("X-Holiday-Source", result.Source.String())
	if result.LastUpdated != nil {
		c.Header("X-Holiday-Last-Updated", result.LastUpdated.UTC().Format(time.RFC3339))
	}
}
