package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/geosignal/quakescope/internal/catalog"
	"github.com/geosignal/quakescope/internal/config"
	"github.com/geosignal/quakescope/internal/logger"
	"github.com/geosignal/quakescope/internal/models"
	"github.com/geosignal/quakescope/internal/pipeline"
)

func main() {
	log := logger.New("api")
	cfg, err := config.LoadAPI()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	client := catalog.New(cfg.CatalogURL, cfg.CatalogTimeout, cfg.MaxRecords, log)
	srv := &server{log: log, cfg: cfg, runner: pipeline.New(client, log)}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", srv.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/v1/query", srv.handleQuery)

	httpServer := &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// query handlers wait on the upstream catalog, so the write window
		// must outlast its timeout
		WriteTimeout: cfg.CatalogTimeout + 15*time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		log.Info("api server starting", slog.String("addr", cfg.BindAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", slog.Any("err", err))
	}
}

type server struct {
	log    *slog.Logger
	cfg    *config.API
	runner *pipeline.Runner
}

type errorResponse struct {
	Error string `json:"error"`
}

type queryRequest struct {
	Start        string          `json:"start"`
	End          string          `json:"end"`
	MinMagnitude float64         `json:"minMagnitude"`
	MaxMagnitude float64         `json:"maxMagnitude"`
	OrderBy      string          `json:"orderBy"`
	AlertLevel   string          `json:"alertLevel"`
	Regions      []models.Region `json:"regions"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleQuery(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.CatalogTimeout+5*time.Second)
	defer cancel()

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	criteria, err := req.toCriteria()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := s.runner.Run(ctx, criteria)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, catalog.ErrTransport) || errors.Is(err, catalog.ErrDecode) {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (q queryRequest) toCriteria() (models.Criteria, error) {
	start, err := parseDate(q.Start)
	if err != nil {
		return models.Criteria{}, fmt.Errorf("start: %w", err)
	}
	end, err := parseDate(q.End)
	if err != nil {
		return models.Criteria{}, fmt.Errorf("end: %w", err)
	}
	orderBy, err := models.ParseOrderBy(strings.TrimSpace(q.OrderBy))
	if err != nil {
		return models.Criteria{}, err
	}
	alert, err := models.ParseAlertLevel(strings.ToLower(strings.TrimSpace(q.AlertLevel)))
	if err != nil {
		return models.Criteria{}, err
	}

	c := models.Criteria{
		Start:        start,
		End:          end,
		MinMagnitude: q.MinMagnitude,
		MaxMagnitude: q.MaxMagnitude,
		OrderBy:      orderBy,
		AlertLevel:   alert,
		Regions:      q.Regions,
	}
	if err := c.Validate(); err != nil {
		return models.Criteria{}, err
	}

	return c, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	ts, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", raw)
	}
	return ts, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// nothing better to do
	}
}
