// Command memifyd runs the Memify-style in-memory data service: a
// length-prefixed, HMAC-authenticated TCP server multiplexing a
// TTL-bounded LRU string cache, a geo spatial index, and an
// append-only time-series store behind the MESP command protocol.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/memify-io/memify/internal/command"
	"github.com/memify-io/memify/internal/config"
	"github.com/memify-io/memify/internal/connection"
	"github.com/memify-io/memify/internal/geocache"
	"github.com/memify-io/memify/internal/logging"
	"github.com/memify-io/memify/internal/metrics"
	"github.com/memify-io/memify/internal/server"
	"github.com/memify-io/memify/internal/stringcache"
	"github.com/memify-io/memify/internal/timeseries"
)

const (
	configPath         = "../config.ini"
	stringCacheMaxKeys = 10000
	geoCacheMaxPoints  = 10000
	seriesMaxPoints    = 1000
	sweepInterval      = 60 * time.Second
)

func main() {
	log := logging.New(zerolog.InfoLevel, logging.NewConsoleWriter(os.Stdout))

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Error().Err(err).Str("path", configPath).Msg("failed to load config, using defaults")
	}

	reg := metrics.New()

	strings := stringcache.New(
		stringcache.WithCleanupInterval(sweepInterval),
		stringcache.WithMaxEntries(stringCacheMaxKeys),
		stringcache.WithRecorder(reg.StringCache()),
	)
	defer strings.Stop()

	geo := geocache.New(geoCacheMaxPoints, reg.GeoCache())
	series := timeseries.New(seriesMaxPoints)

	dispatcher := command.New(strings, geo, series, reg, log.With("command"))
	handler := connection.New(cfg.SecretKey, dispatcher, reg, log.With("connection"))

	addr := fmt.Sprintf(":%d", cfg.Port)
	metricsAddr := fmt.Sprintf(":%d", cfg.MetricsPort)
	srv := server.New(addr, metricsAddr, handler, reg, log.With("server"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Int("port", cfg.Port).Int("metrics_port", cfg.MetricsPort).Msg("memifyd starting")

	if err := srv.Run(ctx); err != nil {
		log.Error().Err(err).Msg("memifyd exiting on error")
		os.Exit(1)
	}

	log.Info().Msg("memifyd shut down cleanly")
}
