package http

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/habiltime/backend/internal/domain/engine"
)

// parseCalculateQuery validates the calculate query parameters. At least one
// of days or hours must be present; both must be non-negative integers; date,
// when present, must be an RFC 3339 UTC instant with a Z suffix.
func parseCalculateQuery(c *gin.Context) (engine.Request, error) {
	var req engine.Request

	daysRaw, hasDays := c.GetQuery("days")
	hoursRaw, hasHours := c.GetQuery("hours")
	if !hasDays && !hasHours {
		return req, fmt.Errorf("at least one of days or hours is required")
	}

	if hasDays {
		days, err := parseNonNegativeInt("days", daysRaw)
		if err != nil {
			return req, err
		}
		req.Days = days
	}
	if hasHours {
		hours, err := parseNonNegativeInt("hours", hoursRaw)
		if err != nil {
			return req, err
		}
		req.Hours = hours
	}

	if dateRaw, ok := c.GetQuery("date"); ok {
		start, err := parseUTCInstant(dateRaw)
		if err != nil {
			return req, err
		}
		req.Start = &start
	}

	return req, nil
}

// parseNonNegativeInt parses a query value as an integer >= 0.
func parseNonNegativeInt(name, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s must not be negative", name)
	}
	return n, nil
}

// parseYearRange parses a "YYYY" or "YYYY-YYYY" holiday filter.
func parseYearRange(raw string) (int, int, error) {
	parse := func(s string) (int, error) {
		year, err := strconv.Atoi(s)
		if err != nil || len(s) != 4 || year < 1 {
			return 0, fmt.Errorf("years must be YYYY or YYYY-YYYY")
		}
		return year, nil
	}

	from, to, ok := strings.Cut(raw, "-")
	start, err := parse(from)
	if err != nil {
		return 0, 0, err
	}
	if !ok {
		return start, start, nil
	}
	end, err := parse(to)
	if err != nil {
		return 0, 0, err
	}
	if end < start {
		return 0, 0, fmt.Errorf("years range must not be descending")
	}
	return start, end, nil
}

// parseUTCInstant parses an RFC 3339 instant that must be expressed in UTC
// with a Z suffix. Offsets are rejected.
func parseUTCInstant(raw string) (time.Time, error) {
	if !strings.HasSuffix(raw, "Z") {
		return time.Time{}, fmt.Errorf("date must be a UTC instant with a Z suffix")
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be a valid RFC 3339 instant")
	}
	return t.UTC(), nil
}
