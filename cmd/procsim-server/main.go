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

	"github.com/me/procsim/internal/config"
	"github.com/me/procsim/internal/logging"
	"github.com/me/procsim/internal/server"
	"github.com/me/procsim/internal/store"
	"github.com/me/procsim/internal/tracing"
)

func main() {
	configFile := flag.String("config", "", "Path to a YAML config file")
	addr := flag.String("addr", "", "Listen address (overrides config, default :8080)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	logFormat := flag.String("log-format", "", "Log format (text, json)")
	dbPath := flag.String("db", "", "Database path (default ~/.procsim/procsim.db)")
	policy := flag.String("policy", "", "Default scheduling policy for submitted runs")
	ioWait := flag.Duration("io-wait", -1, "Default blocked release delay for submitted runs")
	maxTicks := flag.Int("max-ticks", -1, "Default tick limit for submitted runs (0 means no limit)")
	traceFile := flag.String("trace-file", "", "Write OpenTelemetry spans for every run to this file")
	debug := flag.Bool("debug", false, "Shorthand for --log-level=debug")

	flag.Parse()

	file, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, simCfg := file.Server, file.Simulation
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *logFormat != "" {
		cfg.LogFormat = *logFormat
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *debug {
		cfg.LogLevel = "debug"
	}
	if *policy != "" {
		simCfg.Policy = *policy
	}
	if *ioWait >= 0 {
		simCfg.IOWait = *ioWait
	}
	if *maxTicks >= 0 {
		simCfg.MaxTicks = *maxTicks
	}
	// runs are served synchronously
	simCfg.PaceUnit = 0
	if err := simCfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid simulation settings: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	path, err := store.ResolvePath(cfg.DBPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Open store and run migrations.
	st, err := store.NewSQLiteStore(path, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.Migrate(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "migrate database: %v\n", err)
		os.Exit(1)
	}
	logger.Info("database ready", "path", path)

	if *traceFile != "" {
		f, err := os.Create(*traceFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "create trace file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		shutdown, err := tracing.Init("procsim-server", server.Version, f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "init tracing: %v\n", err)
			os.Exit(1)
		}
		defer shutdown(context.Background())
		logger.Info("tracing enabled", "file", *traceFile)
	}

	srv := server.New(cfg, st, logger, server.WithSimConfig(simCfg))

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Handler(),
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", "addr", cfg.Addr, "policy", simCfg.Policy, "io_wait", simCfg.IOWait)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
