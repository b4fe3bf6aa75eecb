package http

import (
	"math"
	"net/http"
	"strconv"
	"strings"
)

// floatParam returns the named query parameter as a finite float, or def when
// it is absent or malformed.
func floatParam(r *http.Request, name string, def float64) float64 {
	v, ok := parseFloatParam(r, name)
	if !ok {
		return def
	}
	return v
}

// parseFloatParam reports whether the named parameter holds a finite number.
func parseFloatParam(r *http.Request, name string) (float64, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// intParam returns the named query parameter as an int, or def when it is
// absent or malformed.
func intParam(r *http.Request, name string, def int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
