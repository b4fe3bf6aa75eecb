package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	// headerLines is the fixed legend at the top of the <pre> block.
	headerLines = 7
	// minFields is date, time, lat, lon, depth, magnitude. Location may be empty.
	minFields = 6
)

var (
	// ErrTooFewFields marks a line with fewer than six whitespace-separated tokens.
	ErrTooFewFields = errors.New("too few fields")
	// ErrMalformedNumber marks a line whose numeric columns are not finite numbers.
	ErrMalformedNumber = errors.New("malformed number")
)

// ParseStats counts what happened to each body line of a listing.
type ParseStats struct {
	Lines           int `json:"lines"`
	Parsed          int `json:"parsed"`
	TooFewFields    int `json:"too_few_fields"`
	MalformedNumber int `json:"malformed_number"`
}

// Dropped is the number of body lines that did not produce a record.
func (s ParseStats) Dropped() int {
	return s.TooFewFields + s.MalformedNumber
}

// ParseResult holds the records of one listing in source order.
type ParseResult struct {
	Earthquakes []Earthquake
	Stats       ParseStats
}

// ParsePage extracts the <pre> listing from an HTML page and parses it.
func ParsePage(page string) (ParseResult, error) {
	listing, err := ExtractListing(page)
	if err != nil {
		return ParseResult{Earthquakes: []Earthquake{}}, err
	}
	return ParseListing(listing), nil
}

// ExtractListing returns the text content of every <pre> element in document
// order, concatenated. The observatory publishes exactly one.
func ExtractListing(page string) (string, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var b strings.Builder
	var walk func(n *html.Node, inPre bool)
	walk = func(n *html.Node, inPre bool) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Pre {
			inPre = true
		}
		if inPre && n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inPre)
		}
	}
	walk(doc, false)

	return b.String(), nil
}

// ParseListing skips the header and parses every remaining line.
// Blank lines are ignored. Other lines that cannot form a complete record
// are counted and dropped.
func ParseListing(listing string) ParseResult {
	lines := strings.Split(listing, "\n")
	if len(lines) <= headerLines {
		return ParseResult{Earthquakes: []Earthquake{}}
	}
	body := lines[headerLines:]

	result := ParseResult{
		Earthquakes: make([]Earthquake, 0, len(body)),
	}
	for _, line := range body {
		if strings.TrimSpace(line) == "" {
			continue
		}
		result.Stats.Lines++
		quake, err := ParseRow(line)
		switch {
		case err == nil:
			result.Earthquakes = append(result.Earthquakes, quake)
			result.Stats.Parsed++
		case errors.Is(err, ErrTooFewFields):
			result.Stats.TooFewFields++
		default:
			result.Stats.MalformedNumber++
		}
	}
	return result
}

// ParseRow maps one whitespace-aligned line onto an Earthquake.
func ParseRow(line string) (Earthquake, error) {
	fields := strings.Fields(line)
	if len(fields) < minFields {
		return Earthquake{}, fmt.Errorf("%w: got %d", ErrTooFewFields, len(fields))
	}

	var nums [4]float64
	for i, raw := range fields[2:minFields] {
		v, err := parseFinite(raw)
		if err != nil {
			return Earthquake{}, err
		}
		nums[i] = v
	}

	return Earthquake{
		Date:      fields[0],
		Time:      fields[1],
		Latitude:  nums[0],
		Longitude: nums[1],
		Depth:     nums[2],
		Magnitude: nums[3],
		Location:  strings.Join(fields[minFields:], " "),
	}, nil
}

// parseFinite rejects anything strconv accepts that JSON cannot carry (NaN, Inf).
func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, s)
	}
	return v, nil
}
