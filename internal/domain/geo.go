package domain

import "math"

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// Geo is a WGS-84 latitude/longitude pair in decimal degrees.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// DistanceKm returns the haversine great-circle distance between a and b.
func DistanceKm(a, b Geo) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Position returns the epicenter as a Geo.
func (e Earthquake) Position() Geo {
	return Geo{Lat: e.Latitude, Lon: e.Longitude}
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
