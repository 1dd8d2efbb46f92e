package geocache

// Recorder mirrors geo-cache activity out to an external metrics sink,
// the same small-interface shape stringcache.Recorder uses so neither
// cache package imports a metrics client directly.
type Recorder interface {
	GeoSet()
	GeoGet(hit bool)
}

type noopRecorder struct{}

func (noopRecorder) GeoSet()        {}
func (noopRecorder) GeoGet(_ bool) {}
