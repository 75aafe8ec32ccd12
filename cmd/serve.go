package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/teman-edu/advisor-cli/internal/engine"
	"github.com/teman-edu/advisor-cli/internal/export"
	"github.com/teman-edu/advisor-cli/internal/model"
	"github.com/teman-edu/advisor-cli/internal/plan"
	"github.com/teman-edu/advisor-cli/internal/store"
)

var servePort int

// serverEnv holds the shared evaluation inputs of the HTTP API. The snapshot
// and catalog are immutable, so handlers evaluate concurrently without locks.
type serverEnv struct {
	snapshot *model.RuleSnapshot
	catalog  *model.Catalog
	params   engine.Params
	store    store.Store
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the recommendation API server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		params, err := cfg.EngineParams()
		if err != nil {
			return err
		}

		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		snapshot, err := s.LoadSnapshot(ctx)
		if err != nil {
			return eris.Wrap(err, "serve: load rule snapshot")
		}
		catalog, err := s.LoadCatalog(ctx)
		if err != nil {
			catalog = model.NewCatalog(nil)
		}

		env := &serverEnv{snapshot: snapshot, catalog: catalog, params: params, store: s}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           newRouter(env),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server",
			zap.Int("port", port),
			zap.String("rule_version", snapshot.Version()),
			zap.Int("rules", snapshot.Len()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func newRouter(env *serverEnv) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.Server.AllowOrigins},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(rateLimit(rate.Limit(cfg.Server.RatePerSec), cfg.Server.RateBurst))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/evaluate", env.handleEvaluate)
		r.Get("/rules", env.handleRules)
		r.Get("/runs", env.handleListRuns)
		r.Get("/runs/{id}", env.handleGetRun)
	})

	return r
}

// rateLimit applies one shared token bucket across all clients.
func rateLimit(limit rate.Limit, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(limit, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (env *serverEnv) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var profile model.ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := engine.Evaluate(env.snapshot, env.catalog, profile.Profile(), env.params)

	runID := uuid.NewString()
	report := export.NewReport(runID, env.snapshot.Version(), profile, result,
		plan.BuildAction(profile, result),
		plan.BuildRecovery(result, env.snapshot),
	)

	if env.store != nil {
		raw, err := json.Marshal(result)
		if err == nil {
			run := &model.Run{
				ID:          runID,
				RuleVersion: env.snapshot.Version(),
				Profile:     profile,
				Result:      raw,
				CreatedAt:   time.Now().UTC(),
			}
			if err := env.store.SaveRun(r.Context(), run); err != nil {
				zap.L().Error("save run failed", zap.String("run_id", runID), zap.Error(err))
			}
		}
	}

	zap.L().Info("evaluation served",
		zap.String("run_id", runID),
		zap.Bool("no_match", result.NoMatch),
		zap.Int("recommendations", len(result.Recommendations)),
	)
	writeJSON(w, http.StatusOK, report)
}

func (env *serverEnv) handleRules(w http.ResponseWriter, _ *http.Request) {
	type ruleSummary struct {
		RuleID      string            `json:"rule_id"`
		PathwayName string            `json:"pathway_name"`
		Selectivity model.Selectivity `json:"selectivity"`
		Priority    int               `json:"priority"`
		Conditions  int               `json:"conditions"`
	}

	summaries := make([]ruleSummary, 0, env.snapshot.Len())
	for _, rule := range env.snapshot.Rules() {
		summaries = append(summaries, ruleSummary{
			RuleID:      rule.RuleID,
			PathwayName: rule.PathwayName,
			Selectivity: rule.Selectivity,
			Priority:    rule.Priority,
			Conditions:  len(rule.Conditions),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"version": env.snapshot.Version(),
		"rules":   summaries,
	})
}

func (env *serverEnv) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	runs, err := env.store.ListRuns(r.Context(), limit)
	if err != nil {
		zap.L().Error("list runs failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "list runs failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (env *serverEnv) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	run, err := env.store.GetRun(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
