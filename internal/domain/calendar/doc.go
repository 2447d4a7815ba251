/*
Package calendar provides business-calendar arithmetic for the Colombian
working-hours schedule.

# Overview

All rules are evaluated in civil time for the fixed-offset America/Bogota
timezone (UTC-5). The package is pure: every function is a computation over
its inputs with no I/O and no shared mutable state, so it is safe to call
concurrently without coordination.

# Working hours

The working day runs 8:00-17:00 with a lunch break 12:00-13:00. A business
day is Monday through Friday excluding dates in the holiday set. Holidays
are additive to weekend exclusion, never a substitute for it.

# Operations

- IsBusinessDay / IsWithinWorkingHours / IsHoliday: predicates
- AdjustToPrevBusinessTime: snap an instant backward to the nearest valid
  business time (idempotent)
- AddBusinessDays: step forward whole business days, preserving time-of-day
- AddBusinessHours: consume working minutes, skipping lunch, weekends and
  holidays
*/
package calendar
