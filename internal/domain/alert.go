package domain

import (
	"math"
	"strings"
	"time"
)

// Default alert thresholds.
const (
	DefaultSignificantMin   = 4.0
	DefaultRecentMin        = 3.0
	DefaultRecentHours      = 24
	DefaultDamagingMin      = 4.5
	DefaultDamagingMaxDepth = 10.0
)

// DefaultCriticalRegions lists the cities and fault systems that flag an event
// as alert-worthy when they appear in its location.
var DefaultCriticalRegions = []string{
	"ISTANBUL",
	"IZMIR",
	"ANKARA",
	"ANTALYA",
	"BURSA",
	"ADANA",
	"NORTH ANATOLIAN FAULT",
	"EAST ANATOLIAN FAULT",
}

// Significant keeps records with magnitude >= minMag.
func Significant(quakes []Earthquake, minMag float64) []Earthquake {
	return filter(quakes, func(q Earthquake) bool {
		return q.Magnitude >= minMag
	})
}

// InCriticalRegions keeps records whose location contains any of regions, ignoring case.
func InCriticalRegions(quakes []Earthquake, regions []string) []Earthquake {
	needles := make([]string, 0, len(regions))
	for _, r := range regions {
		if r = strings.TrimSpace(r); r != "" {
			needles = append(needles, fold(r))
		}
	}
	return filter(quakes, func(q Earthquake) bool {
		loc := fold(q.Location)
		for _, n := range needles {
			if strings.Contains(loc, n) {
				return true
			}
		}
		return false
	})
}

// maxWindowHours is the largest hour count a time.Duration can hold.
const maxWindowHours = math.MaxInt64 / int64(time.Hour)

// RecentWindow converts an hour count into a look-back window, saturating at
// the largest representable duration instead of wrapping negative.
func RecentWindow(hours int) time.Duration {
	if int64(hours) > maxWindowHours {
		return time.Duration(maxWindowHours) * time.Hour
	}
	return time.Duration(hours) * time.Hour
}

// RecentSignificant keeps records with magnitude >= minMag that occurred no
// earlier than window before now. Timestamps are read in loc; records whose
// date or time cannot be read are skipped.
func RecentSignificant(quakes []Earthquake, minMag float64, window time.Duration, loc *time.Location) []Earthquake {
	cutoff := clock.Now().Add(-window)
	return filter(quakes, func(q Earthquake) bool {
		if q.Magnitude < minMag {
			return false
		}
		at, err := q.OccurredAt(loc)
		if err != nil {
			return false
		}
		return !at.Before(cutoff)
	})
}

// PotentiallyDamaging keeps shallow, strong events: magnitude >= minMag and depth <= maxDepth.
func PotentiallyDamaging(quakes []Earthquake, minMag, maxDepth float64) []Earthquake {
	return filter(quakes, func(q Earthquake) bool {
		return q.Magnitude >= minMag && q.Depth <= maxDepth
	})
}
