package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordersIncrementUnderlyingCounters(t *testing.T) {
	reg := New()

	reg.StringCache().CacheHit()
	reg.StringCache().CacheMiss()
	reg.StringCache().CacheEviction()
	reg.GeoCache().GeoSet()
	reg.GeoCache().GeoGet(true)
	reg.GeoCache().GeoGet(false)
	reg.TimeSeriesAppend()
	reg.CommandObserved("GET", "ok", 0.001)
	reg.ConnectionOpened()
	reg.AuthFailure()

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	reg.Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "memify_stringcache_hits_total 1")
	assert.Contains(t, body, "memify_geocache_sets_total 1")
	assert.Contains(t, body, "memify_timeseries_appends_total 1")
	assert.Contains(t, body, "memify_connection_auth_failures_total 1")
	assert.True(t, strings.Contains(body, `memify_command_total{outcome="ok",verb="GET"} 1`))
}
