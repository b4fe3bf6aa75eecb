package domain

import (
	"math"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIstanbul = "X-ISTANBUL"
	testIzmir    = "Y-IZMIR"
)

// exampleQuakes is the two-record dataset used throughout the API contract.
func exampleQuakes() []Earthquake {
	return []Earthquake{
		{Date: "24.01.15", Time: "10:00:00", Latitude: 41.01, Longitude: 28.97, Depth: 8, Magnitude: 4.2, Location: testIstanbul},
		{Date: "24.01.16", Time: "11:30:00", Latitude: 38.42, Longitude: 27.14, Depth: 15, Magnitude: 3.1, Location: testIzmir},
	}
}

func locations(quakes []Earthquake) []string {
	out := make([]string, 0, len(quakes))
	for _, q := range quakes {
		out = append(out, q.Location)
	}
	return out
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected time.Time
	}{
		{"short form", "24.01.15", time.Date(2015, time.January, 24, 0, 0, 0, 0, time.UTC)},
		{"short form late century", "01.02.99", time.Date(2099, time.February, 1, 0, 0, 0, 0, time.UTC)},
		{"long form", "2024.01.15", time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)},
		{"surrounding space", " 2024.01.15 ", time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	for _, bad := range []string{"", "2024-01-15", "32.01.15", "1.1.15", "tomorrow"} {
		t.Run("invalid "+bad, func(t *testing.T) {
			_, err := ParseDate(bad)
			assert.ErrorIs(t, err, ErrInvalidDate)
		})
	}
}

func TestEarthquake_Region(t *testing.T) {
	tests := []struct {
		location string
		expected string
	}{
		{"KUCUKKOY-AYVACIK (CANAKKALE)", "AYVACIK (CANAKKALE)"},
		{"A-B-C", "C"},
		{"EGE DENIZI", "EGE DENIZI"},
		{"TRAILING- ", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Earthquake{Location: tt.location}.Region(), tt.location)
	}
}

func TestByDateRange(t *testing.T) {
	quakes := exampleQuakes()

	t.Run("inclusive bounds", func(t *testing.T) {
		got := ByDateRange(quakes, mustDate(t, "24.01.15"), mustDate(t, "24.01.16"))
		assert.Equal(t, []string{testIstanbul, testIzmir}, locations(got))
	})

	t.Run("single day", func(t *testing.T) {
		got := ByDateRange(quakes, mustDate(t, "24.01.16"), mustDate(t, "24.01.16"))
		assert.Equal(t, []string{testIzmir}, locations(got))
	})

	t.Run("start after end is empty", func(t *testing.T) {
		got := ByDateRange(quakes, mustDate(t, "24.01.16"), mustDate(t, "24.01.15"))
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("calendar order across months", func(t *testing.T) {
		// Lexically "01.02.15" < "24.01.15", but February comes after January.
		feb := []Earthquake{{Date: "01.02.15", Location: "FEB"}}
		got := ByDateRange(feb, mustDate(t, "24.01.15"), mustDate(t, "28.02.15"))
		assert.Equal(t, []string{"FEB"}, locations(got))
	})

	t.Run("mixed layouts", func(t *testing.T) {
		// "24.01.15" is 24 January 2015.
		got := ByDateRange(quakes, mustDate(t, "2015.01.16"), mustDate(t, "2015.01.31"))
		assert.Equal(t, []string{testIstanbul}, locations(got))
	})

	t.Run("unreadable record dates skipped", func(t *testing.T) {
		odd := []Earthquake{{Date: "??", Location: "BAD"}}
		assert.Empty(t, ByDateRange(odd, mustDate(t, "01.01.00"), mustDate(t, "31.12.99")))
	})
}

func TestByMagnitude(t *testing.T) {
	quakes := exampleQuakes()

	assert.Equal(t, []string{testIstanbul}, locations(ByMagnitude(quakes, 4, 5)))
	assert.Equal(t, quakes, ByMagnitude(quakes, 0, 10), "default range keeps everything")
	assert.Equal(t, []string{testIzmir}, locations(ByMagnitude(quakes, 3.1, 3.1)))
	assert.Empty(t, ByMagnitude(quakes, 5, 4))
}

func TestByLocation(t *testing.T) {
	quakes := append(exampleQuakes(), Earthquake{Location: "ÇAY-İZMİR"})

	assert.Equal(t, []string{testIstanbul}, locations(ByLocation(quakes, "istanbul")))
	assert.Equal(t, []string{testIzmir}, locations(ByLocation(quakes, "y-iz")))
	assert.Equal(t, []string{"ÇAY-İZMİR"}, locations(ByLocation(quakes, "çay")))
	assert.Empty(t, ByLocation(quakes, "ankara"))
}

func TestWithinRadius(t *testing.T) {
	quakes := exampleQuakes()
	istanbul := Geo{Lat: 41.01, Lon: 28.97}

	t.Run("zero radius matches exact coordinates only", func(t *testing.T) {
		assert.Equal(t, []string{testIstanbul}, locations(WithinRadius(quakes, istanbul, 0)))
	})

	t.Run("default radius", func(t *testing.T) {
		assert.Equal(t, []string{testIstanbul}, locations(WithinRadius(quakes, istanbul, 100)))
	})

	t.Run("wide radius", func(t *testing.T) {
		// Istanbul to Izmir is roughly 330 km.
		assert.Len(t, WithinRadius(quakes, istanbul, 400), 2)
	})

	t.Run("negative radius", func(t *testing.T) {
		assert.Empty(t, WithinRadius(quakes, istanbul, -1))
	})
}

func TestDistanceKm(t *testing.T) {
	istanbul := Geo{Lat: 41.0082, Lon: 28.9784}
	ankara := Geo{Lat: 39.9334, Lon: 32.8597}

	assert.InDelta(t, 350, DistanceKm(istanbul, ankara), 5)
	assert.InDelta(t, DistanceKm(istanbul, ankara), DistanceKm(ankara, istanbul), 1e-9)
	assert.Zero(t, DistanceKm(istanbul, istanbul))
	// A quarter of the equator.
	assert.InDelta(t, EarthRadiusKm*3.141592653589793/2, DistanceKm(Geo{}, Geo{Lon: 90}), 1e-6)
}

func TestLatest(t *testing.T) {
	quakes := exampleQuakes()

	assert.Equal(t, []string{testIstanbul}, locations(Latest(quakes, 1)))
	assert.Len(t, Latest(quakes, 10), 2)
	assert.Empty(t, Latest(quakes, 0))
	assert.Empty(t, Latest(quakes, -3))

	got := Latest(quakes, 2)
	got[0].Location = "mutated"
	assert.Equal(t, testIstanbul, quakes[0].Location, "result must not alias input")
}

func TestSignificant(t *testing.T) {
	got := Significant(exampleQuakes(), DefaultSignificantMin)
	assert.Equal(t, []string{testIstanbul}, locations(got))
}

func TestInCriticalRegions(t *testing.T) {
	quakes := append(exampleQuakes(),
		Earthquake{Location: "EGE DENIZI"},
		Earthquake{Location: "north anatolian fault zone"},
	)

	got := InCriticalRegions(quakes, DefaultCriticalRegions)
	assert.Equal(t, []string{testIstanbul, testIzmir, "north anatolian fault zone"}, locations(got))

	assert.Empty(t, InCriticalRegions(quakes, nil))
	assert.Empty(t, InCriticalRegions(quakes, []string{"", "  "}), "blank regions never match")
}

func TestRecentSignificant(t *testing.T) {
	istanbulTZ := time.FixedZone("TRT", 3*60*60)
	fakeClock := clockwork.NewFakeClockAt(time.Date(2024, time.January, 16, 12, 0, 0, 0, istanbulTZ))
	SetClock(fakeClock)
	t.Cleanup(func() { SetClock(nil) })

	quakes := []Earthquake{
		{Date: "2024.01.16", Time: "11:00:00", Magnitude: 3.5, Location: "ONE_HOUR_AGO"},
		{Date: "2024.01.16", Time: "10:00:00", Magnitude: 2.0, Location: "TOO_WEAK"},
		{Date: "15.01.24", Time: "12:00:00", Magnitude: 4.0, Location: "EXACTLY_24H"},
		{Date: "15.01.24", Time: "11:59:59", Magnitude: 5.0, Location: "JUST_OUTSIDE"},
		{Date: "2024.01.16", Time: "bad", Magnitude: 6.0, Location: "BAD_TIME"},
	}

	got := RecentSignificant(quakes, DefaultRecentMin, 24*time.Hour, istanbulTZ)
	assert.Equal(t, []string{"ONE_HOUR_AGO", "EXACTLY_24H"}, locations(got))

	got = RecentSignificant(quakes, DefaultRecentMin, 2*time.Hour, istanbulTZ)
	assert.Equal(t, []string{"ONE_HOUR_AGO"}, locations(got))

	// Read as UTC the same wall clock is three hours later, pulling JUST_OUTSIDE in.
	got = RecentSignificant(quakes, DefaultRecentMin, 24*time.Hour, time.UTC)
	assert.Contains(t, locations(got), "JUST_OUTSIDE")
}

func TestRecentWindow(t *testing.T) {
	assert.Equal(t, 24*time.Hour, RecentWindow(24))
	assert.Equal(t, time.Duration(0), RecentWindow(0))

	longest := RecentWindow(math.MaxInt)
	assert.Positive(t, longest)
	assert.Equal(t, longest, RecentWindow(3_000_000))
	assert.Greater(t, longest, RecentWindow(2_000_000))
}

func TestPotentiallyDamaging(t *testing.T) {
	quakes := []Earthquake{
		{Magnitude: 4.5, Depth: 10, Location: "EDGE"},
		{Magnitude: 5.0, Depth: 10.1, Location: "TOO_DEEP"},
		{Magnitude: 4.4, Depth: 2, Location: "TOO_WEAK"},
		{Magnitude: 6.1, Depth: 5, Location: "SHALLOW_STRONG"},
	}

	got := PotentiallyDamaging(quakes, DefaultDamagingMin, DefaultDamagingMaxDepth)
	assert.Equal(t, []string{"EDGE", "SHALLOW_STRONG"}, locations(got))
}
