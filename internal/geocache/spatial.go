package geocache

import "github.com/dhconnelly/rtreego"

// spatialDims is the dimensionality of the index: (longitude,
// latitude, elevation), per the spec's "3D point" requirement.
const spatialDims = 3

// epsilon is the side length used for a point's degenerate bounding
// box. rtreego represents every entry as a Rect, so a single point is
// modeled as a box whose min and max corners coincide to within a
// vanishingly small tolerance rather than literally zero, which
// rtreego's NewRect rejects.
const epsilon = 1e-9

// entry is the Spatial stored in the R-tree: a composite id (the
// spec's "<collection>:<name>") tagged with its bounding box.
type entry struct {
	id   string
	rect rtreego.Rect
}

func (e *entry) Bounds() rtreego.Rect { return e.rect }

// boxFor builds the degenerate 3D bounding box for a point's
// (longitude, latitude, elevation) coordinates.
func boxFor(p Point) (rtreego.Rect, error) {
	origin := rtreego.Point{float64(p.Longitude), float64(p.Latitude), float64(p.Elevation)}
	lengths := []float64{epsilon, epsilon, epsilon}
	return rtreego.NewRect(origin, lengths)
}
