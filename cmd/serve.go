package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/civic-tools/district-cli/internal/enrich"
	"github.com/civic-tools/district-cli/internal/model"
	"github.com/civic-tools/district-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve district lookups over HTTP",
	Long: `Starts an HTTP server exposing single-address lookups, run history,
and a health check. Lookups share the same cache and adaptive pacing as
batch enrichment.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return eris.Wrap(err, "serve: init store")
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "serve: migrate store")
		}

		resolver := newResolver(st, model.DefaultChambers(), false)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      buildRouter(st, resolver),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
		}

		g, gctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			zap.L().Info("serve: listening", zap.Int("port", port))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return eris.Wrap(err, "serve: listen")
			}
			return nil
		})

		g.Go(func() error {
			<-gctx.Done()
			zap.L().Info("serve: shutting down")
			shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutCtx)
		})

		g.Go(func() error {
			return cacheJanitor(gctx, st)
		})

		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// buildRouter assembles the HTTP API. Lookups are serialized through one
// mutex so the adaptive pacing state stays coherent under concurrent
// requests.
func buildRouter(st store.Store, resolver *enrich.Resolver) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	var mu sync.Mutex
	r.Get("/lookup", func(w http.ResponseWriter, req *http.Request) {
		row, err := model.NewRow(req.URL.Query().Get("address"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "address is required"})
			return
		}

		mu.Lock()
		districts, cached, err := resolver.Resolve(req.Context(), row.Address)
		mu.Unlock()
		if err != nil {
			zap.L().Error("serve: lookup failed", zap.String("address", row.Address), zap.Error(err))
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "lookup failed"})
			return
		}

		writeJSON(w, http.StatusOK, lookupResponse{
			Row:    row.WithDistricts(districts, resolver.Chambers()),
			Cached: cached,
		})
	})

	r.Get("/runs", func(w http.ResponseWriter, req *http.Request) {
		limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
		runs, err := st.ListRuns(req.Context(), store.RunFilter{
			Status: model.RunStatus(req.URL.Query().Get("status")),
			Limit:  limit,
		})
		if err != nil {
			zap.L().Error("serve: list runs failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "list runs failed"})
			return
		}
		writeJSON(w, http.StatusOK, runs)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// cacheJanitor purges expired cache entries hourly until ctx is done.
func cacheJanitor(ctx context.Context, st store.Store) error {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			deleted, err := st.DeleteExpiredLookups(ctx)
			if err != nil {
				zap.L().Warn("serve: cache purge failed", zap.Error(err))
				continue
			}
			if deleted > 0 {
				zap.L().Info("serve: purged expired lookups", zap.Int("deleted", deleted))
			}
		}
	}
}
