package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a date string matches none of the accepted layouts.
var ErrInvalidDate = errors.New("invalid date")

// Accepted date layouts. The short form is the documented one; the long form
// is what the live feed currently publishes.
const (
	shortDateLayout = "02.01.06"
	longDateLayout  = "2006.01.02"
	clockLayout     = "15:04:05"
)

// Earthquake is one parsed row of the KOERI listing.
type Earthquake struct {
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Depth     float64 `json:"depth"`
	Magnitude float64 `json:"magnitude"`
	Location  string  `json:"location"`
}

// Day returns the record's calendar date at midnight UTC.
func (e Earthquake) Day() (time.Time, error) {
	return ParseDate(e.Date)
}

// OccurredAt reconstructs the event timestamp from Date and Time in loc.
func (e Earthquake) OccurredAt(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	day, err := ParseDate(e.Date)
	if err != nil {
		return time.Time{}, err
	}
	hms, err := time.Parse(clockLayout, strings.TrimSpace(e.Time))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", e.Time, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		hms.Hour(), hms.Minute(), hms.Second(), 0, loc), nil
}

// Region is the trailing hyphen-delimited segment of Location, trimmed.
// "KUCUKKOY-AYVACIK (CANAKKALE)" -> "AYVACIK (CANAKKALE)".
func (e Earthquake) Region() string {
	idx := strings.LastIndex(e.Location, "-")
	return strings.TrimSpace(e.Location[idx+1:])
}

// ParseDate reads "DD.MM.YY" (year 2000+YY) or "YYYY.MM.DD" into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	switch len(s) {
	case len(shortDateLayout):
		t, err := time.Parse(shortDateLayout, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		// Go maps 69-99 to the 1900s; the feed only ever means 20YY.
		if t.Year() < 2000 {
			t = t.AddDate(100, 0, 0)
		}
		return t, nil
	case len(longDateLayout):
		t, err := time.Parse(longDateLayout, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		return t, nil
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
}
