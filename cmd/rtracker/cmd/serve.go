package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/rtracker/journal"
	"github.com/rustyeddy/rtracker/metrics"
	"github.com/rustyeddy/rtracker/tracker"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve journal statistics as Prometheus metrics",
	Long: `Expose the journal statistics on /metrics in the Prometheus text
format. Statistics are recomputed from the journal on every scrape.
With a sqlite journal, trades recorded by other rtracker processes are
picked up as the database file changes (disable with --watch=false).

Example:
  rtracker serve --addr :9464`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var (
	serveAddr  string
	serveWatch bool
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", true, "reload when the sqlite journal changes")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := serveAddr
	if addr == "" {
		addr = cfg.Metrics.Addr
	}

	reg, m := newServeRegistry()
	t, err := openTracker(tracker.WithMetrics(m))
	if err != nil {
		return err
	}
	defer t.Close()
	reg.MustRegister(metrics.NewCollector(metrics.DefaultNamespace, t))

	mux := newServeMux(reg)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if serveWatch && cfg.Journal.Type != "memory" {
		if err := watchJournal(ctx, t, cfg.Journal.DBPath); err != nil {
			return err
		}
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("serving metrics on /metrics")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info().Msg("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func watchJournal(ctx context.Context, t *tracker.Tracker, path string) error {
	w, err := journal.NewWatcher(path, time.Second)
	if err != nil {
		return err
	}
	go func() {
		err := w.Run(ctx, func() {
			if err := t.Reload(); err != nil {
				logger.Warn().Err(err).Msg("reload journal")
				return
			}
			logger.Debug().Msg("journal reloaded")
		})
		if err != nil {
			logger.Error().Err(err).Msg("journal watcher stopped")
		}
	}()
	return nil
}

// newServeRegistry returns a registry carrying the Go and process collectors
// plus the tracker activity counters.
func newServeRegistry() (*prometheus.Registry, *metrics.Metrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg, metrics.New(metrics.DefaultNamespace, reg)
}

func newServeMux(reg *prometheus.Registry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	return mux
}
