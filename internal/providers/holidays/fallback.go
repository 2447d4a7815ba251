package holidays

import (
	"strconv"

	"github.com/habiltime/backend/internal/domain/calendar"
)

// fallbackDates is the embedded last-resort holiday table, hand maintained
// from the official Colombian civil calendar (including the Monday-moved
// holidays of Law 51 of 1983). Ordered chronologically.
var fallbackDates = []string{
	// 2024
	"2024-01-01",
	"2024-01-08",
	"2024-03-25",
	"2024-03-28",
	"2024-03-29",
	"2024-05-01",
	"2024-05-13",
	"2024-06-03",
	"2024-06-10",
	"2024-07-01",
	"2024-07-20",
	"2024-08-07",
	"2024-08-19",
	"2024-10-14",
	"2024-11-04",
	"2024-11-11",
	"2024-12-08",
	"2024-12-25",
	// 2025
	"2025-01-01",
	"2025-01-06",
	"2025-03-24",
	"2025-04-17",
	"2025-04-18",
	"2025-05-01",
	"2025-06-02",
	"2025-06-23",
	"2025-06-30",
	"2025-07-20",
	"2025-08-07",
	"2025-08-18",
	"2025-10-13",
	"2025-11-03",
	"2025-11-17",
	"2025-12-08",
	"2025-12-25",
	// 2026
	"2026-01-01",
	"2026-01-12",
	"2026-03-23",
	"2026-04-02",
	"2026-04-03",
	"2026-05-01",
	"2026-05-18",
	"2026-06-08",
	"2026-06-15",
	"2026-06-29",
	"2026-07-20",
	"2026-08-07",
	"2026-08-17",
	"2026-10-12",
	"2026-11-02",
	"2026-11-16",
	"2026-12-08",
	"2026-12-25",
}

// FallbackDates returns the embedded holiday dates whose year lies in the
// inclusive [startYear, endYear] range, preserving order. A zero bound is
// unbounded on that side.
func FallbackDates(startYear, endYear int) []string {
	out := make([]string, 0, len(fallbackDates))
	for _, s := range fallbackDates {
		year, err := strconv.Atoi(s[:4])
		if err != nil {
			continue
		}
		if startYear != 0 && year < startYear {
			continue
		}
		if endYear != 0 && year > endYear {
			continue
		}
		out = append(out, s)
	}
	return out
}

// FallbackSet returns the filtered fallback dates as a holiday set.
func FallbackSet(startYear, endYear int) calendar.HolidaySet {
	set, err := calendar.ParseHolidaySet(FallbackDates(startYear, endYear))
	if err != nil {
		panic(err) // the embedded table is statically well formed
	}
	return set
}
