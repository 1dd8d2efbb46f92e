// Package server wires the TCP listener and the metrics HTTP endpoint
// under one errgroup.Group so a single context cancellation
// (SIGINT/SIGTERM in cmd/memifyd) tears down both exactly once. Cache
// sweepers are not managed here; their owners stop them.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/memify-io/memify/internal/connection"
	"github.com/memify-io/memify/internal/logging"
	"github.com/memify-io/memify/internal/metrics"
)

// Server owns the two listening surfaces: the MESP TCP port and the
// Prometheus metrics HTTP port.
type Server struct {
	addr        string
	metricsAddr string
	handler     *connection.Handler
	metrics     *metrics.Registry
	log         *logging.Logger
}

// New builds a Server. addr and metricsAddr are "host:port" or ":port"
// listen addresses.
func New(addr, metricsAddr string, handler *connection.Handler, m *metrics.Registry, log *logging.Logger) *Server {
	return &Server{addr: addr, metricsAddr: metricsAddr, handler: handler, metrics: m, log: log}
}

// Run starts the TCP acceptor and the metrics HTTP server under a
// shared errgroup and blocks until ctx is cancelled or either unit
// fails. It returns the first non-nil error, or nil on clean shutdown.
func (s *Server) Run(ctx context.Context) error {
	lc := net.ListenConfig{}
	listener, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.addr, err)
	}

	httpServer := &http.Server{Addr: s.metricsAddr, Handler: s.metrics.Handler()}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.acceptLoop(gctx, listener)
	})

	g.Go(func() error {
		<-gctx.Done()
		return listener.Close()
	})

	g.Go(func() error {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server: metrics listener: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return httpServer.Close()
	})

	return g.Wait()
}

func (s *Server) acceptLoop(ctx context.Context, listener net.Listener) error {
	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("server: accept: %w", err)
		}

		go s.handler.Serve(conn)
	}
}
