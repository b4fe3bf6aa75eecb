package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sumBuckets(buckets []Bucket) int {
	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	return total
}

// spreadQuakes covers every bucket edge for magnitude and depth.
func spreadQuakes() []Earthquake {
	values := []float64{0, 1.9, 2, 2.99, 3, 4, 4.99, 5, 5.5, 6, 7.8, 9.99}
	depths := []float64{0, 4.9, 5, 9.9, 10, 19.9, 20, 49, 50, 99.9, 100, 650}
	out := make([]Earthquake, len(values))
	for i := range values {
		out[i] = Earthquake{Date: "24.01.15", Magnitude: values[i], Depth: depths[i], Location: "A-B"}
	}
	return out
}

func TestDailyCounts(t *testing.T) {
	quakes := append(exampleQuakes(), Earthquake{Date: "24.01.15"})

	assert.Equal(t, map[string]int{"24.01.15": 2, "24.01.16": 1}, DailyCounts(quakes))
	assert.Empty(t, DailyCounts(nil))
	assert.NotNil(t, DailyCounts(nil))
}

func TestMagnitudeDistribution(t *testing.T) {
	got := MagnitudeDistribution(spreadQuakes())

	assert.Equal(t, []Bucket{
		{Range: "0-2", Count: 2},
		{Range: "2-3", Count: 2},
		{Range: "3-4", Count: 1},
		{Range: "4-5", Count: 2},
		{Range: "5-6", Count: 2},
		{Range: "6+", Count: 3},
	}, got)
	assert.Equal(t, len(spreadQuakes()), sumBuckets(got))
}

func TestMagnitudeDistribution_OutOfRange(t *testing.T) {
	got := MagnitudeDistribution([]Earthquake{{Magnitude: -0.5}, {Magnitude: 12}})
	assert.Equal(t, 1, sumBuckets(got), "negative magnitudes fall outside every bucket")
	assert.Equal(t, 1, got[len(got)-1].Count)
}

func TestDepthDistribution(t *testing.T) {
	got := DepthDistribution(spreadQuakes())

	assert.Equal(t, []Bucket{
		{Range: "0-5 km", Count: 2},
		{Range: "5-10 km", Count: 2},
		{Range: "10-20 km", Count: 2},
		{Range: "20-50 km", Count: 2},
		{Range: "50-100 km", Count: 2},
		{Range: "100+ km", Count: 2},
	}, got)
	assert.Equal(t, len(spreadQuakes()), sumBuckets(got))
}

func TestDistributions_Empty(t *testing.T) {
	mags := MagnitudeDistribution(nil)
	require.Len(t, mags, 6)
	assert.Zero(t, sumBuckets(mags))

	depths := DepthDistribution(nil)
	require.Len(t, depths, 6)
	assert.Zero(t, sumBuckets(depths))
}

func TestRegionDistribution(t *testing.T) {
	quakes := []Earthquake{
		{Location: "KOY-AYVACIK (CANAKKALE)"},
		{Location: "EGE DENIZI"},
		{Location: "SAHIL-AYVACIK (CANAKKALE)"},
		{Location: "MARMARA DENIZI"},
		{Location: "X- EGE DENIZI"},
		{Location: "MARMARA DENIZI"},
		{Location: "AKDENIZ"},
	}

	got := RegionDistribution(quakes)

	assert.Equal(t, []RegionCount{
		{Region: "AYVACIK (CANAKKALE)", Count: 2},
		{Region: "EGE DENIZI", Count: 2},
		{Region: "MARMARA DENIZI", Count: 2},
		{Region: "AKDENIZ", Count: 1},
	}, got)

	total := 0
	for i, rc := range got {
		total += rc.Count
		if i > 0 {
			assert.GreaterOrEqual(t, got[i-1].Count, rc.Count)
		}
	}
	assert.Equal(t, len(quakes), total)
}

func TestRegionDistribution_Empty(t *testing.T) {
	got := RegionDistribution(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSummarize(t *testing.T) {
	got := Summarize(exampleQuakes())

	assert.Equal(t, Summary{
		TotalEarthquakes: 2,
		MaxMagnitude:     4.2,
		AvgMagnitude:     3.65,
		AvgDepth:         11.5,
	}, got)
}

func TestSummarize_Rounding(t *testing.T) {
	got := Summarize([]Earthquake{{Magnitude: 1, Depth: 1}, {Magnitude: 1, Depth: 1}, {Magnitude: 2, Depth: 2}})
	assert.Equal(t, 1.33, got.AvgMagnitude)
	assert.Equal(t, 1.33, got.AvgDepth)
	assert.Equal(t, 2.0, got.MaxMagnitude)
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil)

	assert.Equal(t, Summary{}, got)
	assert.False(t, math.IsNaN(got.AvgMagnitude))
	assert.False(t, math.IsNaN(got.AvgDepth))
}
