package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/KilimcininKorOglu/hierbit/internal/bitmap"
	"github.com/KilimcininKorOglu/hierbit/internal/chain"
	"github.com/KilimcininKorOglu/hierbit/internal/config"
	"github.com/KilimcininKorOglu/hierbit/internal/gc"
	"github.com/KilimcininKorOglu/hierbit/internal/logging"
	"github.com/KilimcininKorOglu/hierbit/internal/metrics"
	"github.com/KilimcininKorOglu/hierbit/internal/oracle"
	"github.com/KilimcininKorOglu/hierbit/internal/source"
)

// serveCmd runs a controller under a continuous insert load, exposing
// its Prometheus metrics over HTTP until interrupted.
func serveCmd(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	address := fs.String("address", ":9090", "Listen address for the metrics endpoint")
	width := fs.Int("width", config.DefaultWidth, "Bitmap width in bytes, must be even")
	fanout := fs.Int("fanout", config.DefaultFanout, "Versions per reference group")
	reclaimInterval := fs.Duration("reclaim-interval", gc.DefaultInterval, "Interval between background reclaim cycles")
	logLevel := fs.String("log-level", "info", "Log level: debug, info, warn, error")
	help := fs.Bool("h", false, "Show help message")
	helpLong := fs.Bool("help", false, "Show help message")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if *help || *helpLong {
		printServeUsage(os.Stdout)
		return 0
	}

	cfg := config.Config{Width: *width, Fanout: *fanout}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		return 1
	}

	controller, err := chain.NewController(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create controller: %v\n", err)
		return 1
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	controller.SetMetrics(m)

	baseLog := logging.New(logging.Config{Level: *logLevel, Format: "text", Output: "stderr"})
	log := baseLog.WithComponent(logging.ComponentServe)
	controller.SetLogger(baseLog)

	tracker := oracle.New()
	reclaimer := gc.NewWithConfig(controller, tracker, gc.Config{Interval: *reclaimInterval})
	reclaimer.SetLogger(baseLog)
	if err := reclaimer.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start reclaimer: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	go runInsertLoop(ctx, controller, tracker, cfg, m, log)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: *address, Handler: mux}

	serverErr := make(chan error, 1)
	go func() { serverErr <- server.ListenAndServe() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	log.Info("serving metrics", logging.FieldAddress, *address)

	select {
	case sig := <-sigCh:
		log.Info("received signal, shutting down", logging.FieldSignal, sig.String())
	case err := <-serverErr:
		if err != nil && err != http.ErrServerClosed {
			log.Error("server error", logging.FieldError, err.Error())
		}
	}

	cancel()
	_ = reclaimer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Shutdown error: %v\n", err)
		return 1
	}
	return 0
}

// runInsertLoop continuously inserts new versions until ctx is
// canceled, giving the metrics endpoint something to report.
func runInsertLoop(ctx context.Context, controller *chain.Controller, tracker *oracle.Tracker, cfg config.Config, m *metrics.Metrics, log logging.Logger) {
	gen := source.New(cfg, time.Now().UnixNano())
	cur := gen.Seed()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			next, err := gen.Flip(cur, 1)
			if err != nil {
				continue
			}
			cur = bitmap.Bitmap(next)

			csn := tracker.Advance()
			g, n, err := controller.Reserve(csn, cur)
			if err != nil {
				log.Warn("reserve failed", logging.FieldCSN, csn, logging.FieldError, err.Error())
				continue
			}
			if err := controller.Finalize(g, n, cur); err != nil {
				log.Warn("finalize failed", logging.FieldCSN, csn, logging.FieldError, err.Error())
				continue
			}
			m.ActiveReaders.Set(float64(tracker.ActiveReaders()))
		}
	}
}
