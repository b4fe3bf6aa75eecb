package domain

import (
	"math"
	"sort"
)

// Bucket is the count of records falling in one fixed range.
type Bucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// RegionCount is the number of records sharing a derived region.
type RegionCount struct {
	Region string `json:"region"`
	Count  int    `json:"count"`
}

// Summary holds headline figures for a record set.
type Summary struct {
	TotalEarthquakes int     `json:"total_earthquakes"`
	MaxMagnitude     float64 `json:"max_magnitude"`
	AvgMagnitude     float64 `json:"avg_magnitude"`
	AvgDepth         float64 `json:"avg_depth"`
}

// bucketRange is a half-open interval [min, max).
type bucketRange struct {
	label    string
	min, max float64
}

var magnitudeRanges = []bucketRange{
	{"0-2", 0, 2},
	{"2-3", 2, 3},
	{"3-4", 3, 4},
	{"4-5", 4, 5},
	{"5-6", 5, 6},
	{"6+", 6, math.Inf(1)},
}

var depthRanges = []bucketRange{
	{"0-5 km", 0, 5},
	{"5-10 km", 5, 10},
	{"10-20 km", 10, 20},
	{"20-50 km", 20, 50},
	{"50-100 km", 50, 100},
	{"100+ km", 100, math.Inf(1)},
}

// DailyCounts maps each date string, as published, to its number of records.
func DailyCounts(quakes []Earthquake) map[string]int {
	counts := make(map[string]int)
	for _, q := range quakes {
		if q.Date != "" {
			counts[q.Date]++
		}
	}
	return counts
}

// MagnitudeDistribution counts records per magnitude bucket.
// Negative magnitudes fall outside every bucket.
func MagnitudeDistribution(quakes []Earthquake) []Bucket {
	return distribute(quakes, magnitudeRanges, func(q Earthquake) float64 { return q.Magnitude })
}

// DepthDistribution counts records per depth bucket in kilometers.
func DepthDistribution(quakes []Earthquake) []Bucket {
	return distribute(quakes, depthRanges, func(q Earthquake) float64 { return q.Depth })
}

// RegionDistribution groups records by Region, most frequent first.
// Regions with equal counts keep the order in which they were first seen.
func RegionDistribution(quakes []Earthquake) []RegionCount {
	index := make(map[string]int)
	out := make([]RegionCount, 0)
	for _, q := range quakes {
		region := q.Region()
		i, ok := index[region]
		if !ok {
			i = len(out)
			index[region] = i
			out = append(out, RegionCount{Region: region})
		}
		out[i].Count++
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Count > out[b].Count
	})
	return out
}

// Summarize computes totals and means. An empty set yields all zeros.
func Summarize(quakes []Earthquake) Summary {
	if len(quakes) == 0 {
		return Summary{}
	}

	var maxMag, sumMag, sumDepth float64
	for _, q := range quakes {
		maxMag = math.Max(maxMag, q.Magnitude)
		sumMag += q.Magnitude
		sumDepth += q.Depth
	}
	n := float64(len(quakes))

	return Summary{
		TotalEarthquakes: len(quakes),
		MaxMagnitude:     maxMag,
		AvgMagnitude:     round2(sumMag / n),
		AvgDepth:         round2(sumDepth / n),
	}
}

func distribute(quakes []Earthquake, ranges []bucketRange, value func(Earthquake) float64) []Bucket {
	out := make([]Bucket, len(ranges))
	for i, r := range ranges {
		out[i].Range = r.label
	}
	for _, q := range quakes {
		v := value(q)
		for i, r := range ranges {
			if v >= r.min && v < r.max {
				out[i].Count++
				break
			}
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
