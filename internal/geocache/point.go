// Package geocache implements the (collection, name) -> GeoPoint
// store backed by a 3D spatial index over (longitude, latitude,
// elevation). It generalizes the flat map + container/list shape the
// sibling stringcache package uses for its own two data structures:
// here the "index" is an R-tree instead of a recency list, kept in
// lockstep with the point map under the same composite key.
package geocache

import "github.com/mmcloughlin/geohash"

// geohashPrecision is the geohash "precision 12" the spec calls for,
// expressed as the bit count mmcloughlin/geohash's integer encoder
// takes: 12 base32 characters carry 5 bits each, so 60 bits is the
// standard interpretation of "precision 12" for an integer encoding
// (see DESIGN.md's Open Questions for this call).
const geohashPrecision = 60

// Point is an immutable geo-tagged location. name is the inner key
// within a collection; geoHash is derived once at construction from
// (latitude, longitude) and never recomputed.
type Point struct {
	Name      string
	Latitude  float32
	Longitude float32
	Elevation float32
	GeoHash   uint64
}

// NewPoint constructs a Point, deriving its geohash from latitude and
// longitude at the fixed precision the spec mandates.
func NewPoint(name string, lat, lon, elevation float32) Point {
	return Point{
		Name:      name,
		Latitude:  lat,
		Longitude: lon,
		Elevation: elevation,
		GeoHash:   geohash.EncodeIntWithPrecision(float64(lat), float64(lon), geohashPrecision),
	}
}
