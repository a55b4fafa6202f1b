package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"terracity.io/internal/gen/pipeline"
	"terracity.io/internal/persistence/eventlog"
	"terracity.io/internal/transport/preview"
	"terracity.io/internal/tuning"
)

func main() {
	var (
		addr          = flag.String("addr", ":8080", "http listen address")
		seed          = flag.Int64("seed", 42, "world seed")
		configPath    = flag.String("config", "./configs/worldgen.yaml", "path to worldgen.yaml (defaults are used when the file does not exist)")
		dataDir       = flag.String("data", "./data", "runtime data directory")
		disableEvents = flag.Bool("disable_events", false, "disable the served-tile event log")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	tun, err := loadTuning(*configPath, logger)
	if err != nil {
		logger.Fatalf("load tuning: %v", err)
	}
	for _, m := range tun.UnknownMaterials() {
		logger.Printf("tuning: unknown material %s, using fallback", m)
	}
	logger.Printf("tuning: %s", tun.Summary())
	gen := pipeline.New(tun.Resolve())

	cfg := preview.Config{
		Seed:         *seed,
		TuningDigest: tun.Digest(),
	}
	if !*disableEvents {
		tiles := eventlog.NewTileLogger(*dataDir)
		defer func() {
			if err := tiles.Close(); err != nil {
				logger.Printf("close tile log: %v", err)
			}
		}()
		cfg.Tiles = tiles
	}
	previewSrv := preview.NewServer(gen, cfg, log.New(os.Stdout, "[preview] ", log.LstdFlags|log.Lmicroseconds))

	ctx, cancel := signalContext()
	defer cancel()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(200)
		_, _ = rw.Write([]byte("ok"))
	})
	mux.HandleFunc("/metrics", func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "text/plain; version=0.0.4")

		// Minimal Prometheus exposition format.
		fmt.Fprintf(rw, "# HELP terracity_preview_sessions Open preview WebSocket sessions.\n")
		fmt.Fprintf(rw, "# TYPE terracity_preview_sessions gauge\n")
		fmt.Fprintf(rw, "terracity_preview_sessions{seed=\"%d\"} %d\n", *seed, previewSrv.ActiveSessions())

		fmt.Fprintf(rw, "# HELP terracity_tuning_info Active tuning digest.\n")
		fmt.Fprintf(rw, "# TYPE terracity_tuning_info gauge\n")
		fmt.Fprintf(rw, "terracity_tuning_info{seed=\"%d\",digest=%q} 1\n", *seed, cfg.TuningDigest)
	})
	if envBool("TC_ENABLE_PPROF_HTTP", false) {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	} else {
		logger.Printf("pprof endpoints disabled (TC_ENABLE_PPROF_HTTP=false)")
	}
	mux.HandleFunc("/v1/bootstrap", previewSrv.BootstrapHandler())
	mux.HandleFunc("/v1/ws", previewSrv.WSHandler())

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()
		_ = srv.Shutdown(ctx2)
	}()

	logger.Printf("listening on %s (seed=%d)", *addr, *seed)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("ListenAndServe: %v", err)
	}
}

func loadTuning(path string, logger *log.Logger) (tuning.Tuning, error) {
	path = strings.TrimSpace(path)
	if path != "" {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			logger.Printf("tuning: %s not found, using defaults", path)
			path = ""
		}
	}
	return tuning.Load(path)
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}

func envBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
