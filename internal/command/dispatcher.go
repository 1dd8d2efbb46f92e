// Package command implements the MESP command dispatcher: it turns a
// parsed mesp.Value into a store operation against the string cache,
// geo cache, or time-series store, and turns the result back into a
// mesp.Value response.
package command

import (
	"fmt"
	"time"

	"github.com/memify-io/memify/internal/geocache"
	"github.com/memify-io/memify/internal/logging"
	"github.com/memify-io/memify/internal/mesp"
	"github.com/memify-io/memify/internal/metrics"
	"github.com/memify-io/memify/internal/stringcache"
	"github.com/memify-io/memify/internal/timeseries"
)

// Dispatcher routes MESP requests to the three stores. A single
// instance is shared by every connection handler.
type Dispatcher struct {
	strings *stringcache.Cache
	geo     *geocache.Cache
	series  *timeseries.Store
	metrics *metrics.Registry
	log     *logging.Logger
}

// New builds a Dispatcher over the three already-constructed stores.
// metrics and log may be nil in tests; both are checked before use.
func New(strings *stringcache.Cache, geo *geocache.Cache, series *timeseries.Store, m *metrics.Registry, log *logging.Logger) *Dispatcher {
	return &Dispatcher{strings: strings, geo: geo, series: series, metrics: m, log: log}
}

// Dispatch processes one parsed request value and returns the
// response value to serialize back to the client. It never returns an
// error — every failure mode is represented as a BulkString response
// value, per spec.md §4.6/§7.
func (d *Dispatcher) Dispatch(v mesp.Value) (resp mesp.Value) {
	start := time.Now()
	verb := "UNKNOWN"

	defer func() {
		if r := recover(); r != nil {
			resp = mesp.BulkFromString(dispatchError(fmt.Sprint(r)))
			d.observe(verb, "error", start)
			if d.log != nil {
				d.log.Error().Interface("panic", r).Str("verb", verb).Msg("recovered in dispatch")
			}
		}
	}()

	switch v.Type {
	case mesp.SimpleString:
		verb = "PING"
		resp = mesp.BulkFromString(successPong)
		d.observe(verb, "ok", start)
		return resp

	case mesp.Array:
		if len(v.Array) == 0 || !v.Array[0].IsString() {
			resp = mesp.BulkFromString(errInvalidCommand)
			d.observe(verb, "error", start)
			return resp
		}
		verb = string(v.Array[0].Bulk)
		args := v.Array[1:]

		var outcome string
		resp, outcome = d.dispatchArray(verb, args)
		d.observe(verb, outcome, start)
		return resp

	default:
		resp = mesp.BulkFromString(errInvalidMESPType)
		d.observe(verb, "error", start)
		return resp
	}
}

func (d *Dispatcher) dispatchArray(verb string, args []mesp.Value) (mesp.Value, string) {
	switch verb {
	case "SET":
		return d.handleSet(args)
	case "GET":
		return d.handleGet(args)
	case "DELETE":
		return d.handleDelete(args)
	case "GEOSET":
		return d.handleGeoSet(args)
	case "GEOGET":
		return d.handleGeoGet(args)
	case "GEODISTANCE":
		return d.handleGeoDistance(args)
	case "TSADD":
		return d.handleTSAdd(args)
	case "TSRANGE":
		return d.handleTSRange(args)
	case "GEOPATH":
		return d.handleGeoPath(args)
	default:
		return mesp.BulkFromString(errInvalidCommand), "error"
	}
}

func (d *Dispatcher) observe(verb, outcome string, start time.Time) {
	if d.metrics == nil {
		return
	}
	d.metrics.CommandObserved(verb, outcome, time.Since(start).Seconds())
}

// bulkString extracts args[i] as a non-nil BulkString payload. ok is
// false on out-of-range index or wrong/nil type.
func bulkString(args []mesp.Value, i int) (string, bool) {
	if i < 0 || i >= len(args) || !args[i].IsString() {
		return "", false
	}
	return string(args[i].Bulk), true
}

func floatArg(args []mesp.Value, i int) (float32, bool) {
	if i < 0 || i >= len(args) || args[i].Type != mesp.Float {
		return 0, false
	}
	return args[i].Float, true
}
