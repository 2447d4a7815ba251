/*
Package engine orchestrates business-time calculations.

A calculation clamps the start instant into business time, advances by the
requested business days, then by the requested business hours, and converts
the result back to UTC. Days are always applied before hours.
*/
package engine
