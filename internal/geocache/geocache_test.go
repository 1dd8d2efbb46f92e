package geocache

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSetAndGetGeoPoint is scenario S4 from the spec: GEOSET then
// GEOGET returns the point that was stored.
func TestSetAndGetGeoPoint(t *testing.T) {
	c := New(0, nil)

	paris := NewPoint("Paris", 48.8566, 2.3522, 35.0)
	require.NoError(t, c.SetGeoPoint("city", paris))

	got, ok := c.GetGeoPoint("city", "Paris")
	require.True(t, ok)
	assert.Equal(t, paris, got)
}

func TestGetGeoPointMissingCollectionOrName(t *testing.T) {
	c := New(0, nil)
	require.NoError(t, c.SetGeoPoint("city", NewPoint("Paris", 48.8566, 2.3522, 35.0)))

	_, ok := c.GetGeoPoint("missing-collection", "Paris")
	assert.False(t, ok)

	_, ok = c.GetGeoPoint("city", "missing-name")
	assert.False(t, ok)
}

// TestSetGeoPointReplacesSpatialEntry asserts invariant 2: after
// overwriting a point, exactly one spatial-index entry remains tagged
// with the composite id, carrying the new coordinates.
func TestSetGeoPointReplacesSpatialEntry(t *testing.T) {
	c := New(0, nil)
	key := Key{Collection: "city", Name: "Paris"}

	require.NoError(t, c.SetGeoPoint("city", NewPoint("Paris", 48.8566, 2.3522, 35.0)))
	first := c.spatials[key]
	require.NotNil(t, first)

	require.NoError(t, c.SetGeoPoint("city", NewPoint("Paris", 1, 1, 1)))
	second := c.spatials[key]
	require.NotNil(t, second)

	assert.NotSame(t, first, second)
	assert.Equal(t, 1, len(c.spatials))
	assert.Equal(t, key.compositeID(), second.id)

	wantRect, err := boxFor(NewPoint("Paris", 1, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, wantRect, second.rect)
}

// TestGetGeoDistanceParisLondon is scenario S4's distance half: the
// Paris-London great-circle distance is close to 343.5km.
func TestGetGeoDistanceParisLondon(t *testing.T) {
	c := New(0, nil)
	require.NoError(t, c.SetGeoPoint("city", NewPoint("Paris", 48.8566, 2.3522, 35.0)))
	require.NoError(t, c.SetGeoPoint("city", NewPoint("London", 51.5074, -0.1278, 11.0)))

	dist, ok := c.GetGeoDistance("city", "Paris", "London")
	require.True(t, ok)

	want := 343.5
	assert.InDelta(t, want, dist, want*0.02)
}

// TestDistanceSymmetryAndIdentity is invariant 8.
func TestDistanceSymmetryAndIdentity(t *testing.T) {
	a := NewPoint("a", 48.8566, 2.3522, 35.0)
	b := NewPoint("b", 51.5074, -0.1278, 11.0)

	assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-9)
	assert.InDelta(t, 0, Distance(a, a), 1e-9)
}

func TestGetGeoDistanceMissingPoint(t *testing.T) {
	c := New(0, nil)
	require.NoError(t, c.SetGeoPoint("city", NewPoint("Paris", 48.8566, 2.3522, 35.0)))

	_, ok := c.GetGeoDistance("city", "Paris", "Atlantis")
	assert.False(t, ok)
}

// TestGetGeoPath is scenario S8: a round trip Paris->London->Paris is
// twice the one-way distance.
func TestGetGeoPath(t *testing.T) {
	c := New(0, nil)
	require.NoError(t, c.SetGeoPoint("city", NewPoint("Paris", 48.8566, 2.3522, 35.0)))
	require.NoError(t, c.SetGeoPoint("city", NewPoint("London", 51.5074, -0.1278, 11.0)))

	oneWay, ok := c.GetGeoDistance("city", "Paris", "London")
	require.True(t, ok)

	path, ok := c.GetGeoPath("city", []string{"Paris", "London", "Paris"})
	require.True(t, ok)
	assert.InDelta(t, 2*oneWay, path, 1e-6)
}

func TestGetGeoPathRequiresAtLeastTwoNames(t *testing.T) {
	c := New(0, nil)
	require.NoError(t, c.SetGeoPoint("city", NewPoint("Paris", 48.8566, 2.3522, 35.0)))

	_, ok := c.GetGeoPath("city", []string{"Paris"})
	assert.False(t, ok)
}

func TestDistanceUnitMixIsIntentional(t *testing.T) {
	// Same lat/lon, 1000 native-unit elevation delta: the surface
	// distance is ~0km, so the result collapses to the raw elevation
	// delta, unconverted — the documented unit-mixed behavior.
	a := NewPoint("a", 10, 10, 0)
	b := NewPoint("b", 10, 10, 1000)
	assert.InDelta(t, 1000, Distance(a, b), 0.5)
	assert.False(t, math.IsNaN(Distance(a, b)))
}
