package geocache

import "math"

// earthRadiusKM is the sphere radius used for the Haversine surface
// distance, expressed in kilometers.
const earthRadiusKM = 6371.0

// Distance computes the reference implementation's geo distance
// between two points: a Haversine great-circle surface distance in
// kilometers, combined with the raw elevation delta (in the point's
// native units, unconverted) via the Pythagorean hypotenuse.
//
// This deliberately reproduces a unit mismatch present in the source
// system: surface is kilometers, elevDelta is whatever unit elevation
// was recorded in (meters, in every example in this spec), and the
// two are combined as if they were the same unit. The result is not a
// metric distance — see DESIGN.md's Open Questions — but cross-language
// parity requires reproducing it bit-for-bit rather than "fixing" it.
func Distance(a, b Point) float64 {
	lat1 := radians(float64(a.Latitude))
	lat2 := radians(float64(b.Latitude))
	dLat := radians(float64(b.Latitude - a.Latitude))
	dLon := radians(float64(b.Longitude - a.Longitude))

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	surface := earthRadiusKM * c

	elevDelta := float64(b.Elevation - a.Elevation)
	return math.Sqrt(surface*surface + elevDelta*elevDelta)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
