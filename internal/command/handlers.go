package command

import (
	"time"

	"github.com/memify-io/memify/internal/geocache"
	"github.com/memify-io/memify/internal/mesp"
	"github.com/memify-io/memify/internal/timeseries"
)

// handleSet implements [SET, key:Bulk, value:Bulk, ttlSec:Integer?].
// ttlSec is optional; a missing slot means ttl 0 (immediately
// expired, per stringcache's zero-TTL semantics).
func (d *Dispatcher) handleSet(args []mesp.Value) (mesp.Value, string) {
	if len(args) < 2 || len(args) > 3 {
		return mesp.BulkFromString(errInvalidCommandFormat), "error"
	}
	key, ok := bulkString(args, 0)
	if !ok {
		return mesp.BulkFromString(errInvalidCommandFormat), "error"
	}
	value, ok := bulkString(args, 1)
	if !ok {
		return mesp.BulkFromString(errInvalidCommandFormat), "error"
	}

	var ttl int64
	if len(args) == 3 {
		if args[2].Type != mesp.Integer {
			return mesp.BulkFromString(errInvalidDuration), "error"
		}
		ttl = args[2].Int
	}

	d.strings.Set(key, []byte(value), time.Duration(ttl)*time.Second)

	return mesp.Arr(
		mesp.BulkFromString(key),
		mesp.BulkFromString(value),
		mesp.Int64(ttl),
	), "ok"
}

// handleGet implements [GET, key:Bulk].
func (d *Dispatcher) handleGet(args []mesp.Value) (mesp.Value, string) {
	key, ok := bulkString(args, 0)
	if !ok || len(args) != 1 {
		return mesp.BulkFromString(errInvalidCommandFormat), "error"
	}

	value, found := d.strings.Get(key)
	if !found {
		return mesp.BulkFromString(errNotFound), "ok"
	}
	return mesp.Bulk(value), "ok"
}

// handleDelete implements [DELETE, key:Bulk].
func (d *Dispatcher) handleDelete(args []mesp.Value) (mesp.Value, string) {
	key, ok := bulkString(args, 0)
	if !ok || len(args) != 1 {
		return mesp.BulkFromString(errInvalidCommandFormat), "error"
	}

	if _, found := d.strings.Get(key); !found {
		return mesp.BulkFromString(errNotFound), "ok"
	}
	d.strings.Delete(key)
	return mesp.BulkFromString(successSuccess), "ok"
}

// handleGeoSet implements [GEOSET, coll:Bulk, name:Bulk, lat:Float, lon:Float, elev:Float?].
func (d *Dispatcher) handleGeoSet(args []mesp.Value) (mesp.Value, string) {
	if len(args) < 4 || len(args) > 5 {
		return mesp.BulkFromString(errInvalidCommandFormat), "error"
	}
	coll, ok := bulkString(args, 0)
	if !ok {
		return mesp.BulkFromString(errInvalidCommandFormat), "error"
	}
	name, ok := bulkString(args, 1)
	if !ok {
		return mesp.BulkFromString(errInvalidCommandFormat), "error"
	}
	lat, ok := floatArg(args, 2)
	if !ok {
		return mesp.BulkFromString(errInvalidGeoPoint), "error"
	}
	lon, ok := floatArg(args, 3)
	if !ok {
		return mesp.BulkFromString(errInvalidGeoPoint), "error"
	}

	var elev float32
	if len(args) == 5 {
		elev, ok = floatArg(args, 4)
		if !ok {
			return mesp.BulkFromString(errInvalidGeoPoint), "error"
		}
	}

	p := geocache.NewPoint(name, lat, lon, elev)
	if err := d.geo.SetGeoPoint(coll, p); err != nil {
		return mesp.BulkFromString(dispatchError(err.Error())), "error"
	}

	return mesp.Arr(
		mesp.BulkFromString(name),
		mesp.Float32(lat),
		mesp.Float32(lon),
		mesp.Float32(elev),
	), "ok"
}

// handleGeoGet implements [GEOGET, coll:Bulk, name:Bulk].
func (d *Dispatcher) handleGeoGet(args []mesp.Value) (mesp.Value, string) {
	if len(args) != 2 {
		return mesp.BulkFromString(errInvalidCommandFormat), "error"
	}
	coll, ok := bulkString(args, 0)
	if !ok {
		return mesp.BulkFromString(errInvalidCommandFormat), "error"
	}
	name, ok := bulkString(args, 1)
	if !ok {
		return mesp.BulkFromString(errInvalidCommandFormat), "error"
	}

	p, found := d.geo.GetGeoPoint(coll, name)
	if !found {
		return mesp.BulkFromString(errNotFoundLocation), "ok"
	}

	return mesp.Arr(
		mesp.BulkFromString(p.Name),
		mesp.Float32(p.Latitude),
		mesp.Float32(p.Longitude),
		mesp.Float32(p.Elevation),
	), "ok"
}

// handleGeoDistance implements [GEODISTANCE, coll:Bulk, name1:Bulk, name2:Bulk].
func (d *Dispatcher) handleGeoDistance(args []mesp.Value) (mesp.Value, string) {
	if len(args) != 3 {
		return mesp.BulkFromString(errInvalidCommandFormat), "error"
	}
	coll, ok := bulkString(args, 0)
	if !ok {
		return mesp.BulkFromString(errInvalidCommandFormat), "error"
	}
	nameA, ok := bulkString(args, 1)
	if !ok {
		return mesp.BulkFromString(errInvalidCommandFormat), "error"
	}
	nameB, ok := bulkString(args, 2)
	if !ok {
		return mesp.BulkFromString(errInvalidCommandFormat), "error"
	}

	dist, found := d.geo.GetGeoDistance(coll, nameA, nameB)
	if !found {
		return mesp.BulkFromString(errNotFoundLocation), "ok"
	}
	return mesp.Float32(float32(dist)), "ok"
}

// handleTSAdd implements [TSADD, series:Bulk, timestamp:Bulk, value:Float].
func (d *Dispatcher) handleTSAdd(args []mesp.Value) (mesp.Value, string) {
	if len(args) != 3 {
		return mesp.BulkFromString(errInvalidCommandFormat), "error"
	}
	series, ok := bulkString(args, 0)
	if !ok {
		return mesp.BulkFromString(errInvalidCommandFormat), "error"
	}
	ts, ok := bulkString(args, 1)
	if !ok {
		return mesp.BulkFromString(errInvalidCommandFormat), "error"
	}
	value, ok := floatArg(args, 2)
	if !ok {
		return mesp.BulkFromString(errInvalidCommandFormat), "error"
	}

	d.series.AddTimePoint(series, timeseries.Point{Timestamp: ts, Value: float64(value)})
	if d.metrics != nil {
		d.metrics.TimeSeriesAppend()
	}

	return mesp.Simple(successOK), "ok"
}

// handleTSRange implements [TSRANGE, series:Bulk].
func (d *Dispatcher) handleTSRange(args []mesp.Value) (mesp.Value, string) {
	series, ok := bulkString(args, 0)
	if !ok || len(args) != 1 {
		return mesp.BulkFromString(errInvalidCommandFormat), "error"
	}

	points, found := d.series.GetTimeSeries(series)
	if !found {
		return mesp.BulkFromString(errNotFound), "ok"
	}

	pairs := make([]mesp.Value, len(points))
	for i, p := range points {
		pairs[i] = mesp.Arr(mesp.BulkFromString(p.Timestamp), mesp.Float32(float32(p.Value)))
	}
	return mesp.Arr(pairs...), "ok"
}

// handleGeoPath implements [GEOPATH, coll:Bulk, *names:Bulk] (≥2 names).
func (d *Dispatcher) handleGeoPath(args []mesp.Value) (mesp.Value, string) {
	if len(args) < 3 {
		return mesp.BulkFromString(errInvalidCommandFormat), "error"
	}
	coll, ok := bulkString(args, 0)
	if !ok {
		return mesp.BulkFromString(errInvalidCommandFormat), "error"
	}

	names := make([]string, 0, len(args)-1)
	for i := 1; i < len(args); i++ {
		name, ok := bulkString(args, i)
		if !ok {
			return mesp.BulkFromString(errInvalidCommandFormat), "error"
		}
		names = append(names, name)
	}

	dist, found := d.geo.GetGeoPath(coll, names)
	if !found {
		return mesp.BulkFromString(errNotFoundLocation), "ok"
	}
	return mesp.Float32(float32(dist)), "ok"
}
