package domain

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// filter keeps the records matching keep, in their original order.
func filter(quakes []Earthquake, keep func(Earthquake) bool) []Earthquake {
	out := make([]Earthquake, 0, len(quakes))
	for _, q := range quakes {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out
}

// ByDateRange keeps records whose calendar day falls in [start, end].
// Records with an unreadable date never match. Only the date part of the
// bounds is used.
func ByDateRange(quakes []Earthquake, start, end time.Time) []Earthquake {
	from := truncateDay(start)
	to := truncateDay(end)
	return filter(quakes, func(q Earthquake) bool {
		day, err := q.Day()
		if err != nil {
			return false
		}
		return !day.Before(from) && !day.After(to)
	})
}

// ByMagnitude keeps records with min <= magnitude <= max.
func ByMagnitude(quakes []Earthquake, minMag, maxMag float64) []Earthquake {
	return filter(quakes, func(q Earthquake) bool {
		return q.Magnitude >= minMag && q.Magnitude <= maxMag
	})
}

// ByLocation keeps records whose location contains query, ignoring case.
// Matching uses Unicode case folding so Turkish place names compare sanely.
func ByLocation(quakes []Earthquake, query string) []Earthquake {
	needle := fold(query)
	return filter(quakes, func(q Earthquake) bool {
		return strings.Contains(fold(q.Location), needle)
	})
}

// WithinRadius keeps records whose epicenter is at most radiusKm from center.
func WithinRadius(quakes []Earthquake, center Geo, radiusKm float64) []Earthquake {
	return filter(quakes, func(q Earthquake) bool {
		return DistanceKm(center, q.Position()) <= radiusKm
	})
}

// Latest returns the first n records in published order (newest first).
// It does not re-sort by timestamp.
func Latest(quakes []Earthquake, n int) []Earthquake {
	if n <= 0 {
		return []Earthquake{}
	}
	if n > len(quakes) {
		n = len(quakes)
	}
	out := make([]Earthquake, n)
	copy(out, quakes[:n])
	return out
}

// fold builds a fresh Caser per call; Casers keep state and are not safe to share.
func fold(s string) string {
	return cases.Fold().String(s)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
