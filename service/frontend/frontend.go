/*
	frontend package implements the HTTP serving surface of the search
	engine. The query API is a single endpoint: GET /{query} answers with
	the ranked results as JSON. While no snapshot has been published yet
	the API responds with 503 so load balancers keep probing until the
	first build pass completes.
*/

package frontend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/webintel/wikisearch/queryengine"
	"github.com/webintel/wikisearch/service"
	"github.com/webintel/wikisearch/snapshot"
)

// Compile-time check for ensuring Service implements service.Service.
var _ service.Service = (*Service)(nil)

// Service represents the front-end service of the application.
type Service struct {
	cfg    Config
	router *chi.Mux
}

// New creates and returns a fully configured front-end service instance.
func New(cfg Config) (*Service, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf(
			"frontend service: config validation failed: %w", err,
		)
	}

	svc := &Service{
		cfg:    cfg,
		router: chi.NewRouter(),
	}

	svc.router.Get("/healthz", svc.serveHealth)
	svc.router.Handle("/metrics", cfg.Metrics.Handler())
	svc.router.Get("/", svc.serveSearch)
	svc.router.Get("/{query}", svc.serveSearch)

	return svc, nil
}

// Name returns the name of the service.
func (svc *Service) Name() string { return "frontend" }

// Run executes the service and blocks until the context gets cancelled or an
// error occurs.
func (svc *Service) Run(ctx context.Context) error {
	l, err := net.Listen("tcp", svc.cfg.ListenAddr)
	if err != nil {
		return err
	}
	defer func() { _ = l.Close() }()

	srv := &http.Server{
		Addr:    svc.cfg.ListenAddr,
		Handler: svc.router,
	}

	go func() {
		<-ctx.Done()

		_ = srv.Close()
	}()

	svc.cfg.Logger.WithField("addr", svc.cfg.ListenAddr).Info(
		"started service",
	)

	if err = srv.Serve(l); err == http.ErrServerClosed {
		// Server closed gracefully.
		err = nil
	}

	return err
}

// Handler exposes the service router so tests can drive it without a
// listening socket.
func (svc *Service) Handler() http.Handler { return svc.router }

// searchResponse is the wire form of one answered query.
type searchResponse struct {
	DurationMs float64           `json:"durationMs"`
	HitCount   int               `json:"hitCount"`
	Results    []queryengine.Hit `json:"results"`
}

func (svc *Service) serveSearch(w http.ResponseWriter, r *http.Request) {
	snap, err := svc.cfg.Handle.Get()
	if err != nil {
		if errors.Is(err, snapshot.ErrNotPublished) {
			svc.writeError(
				w, http.StatusServiceUnavailable,
				"index is not available yet; try again shortly",
			)

			return
		}

		svc.cfg.Logger.WithField("err", err).Error(
			"could not read published snapshot",
		)
		svc.writeError(w, http.StatusInternalServerError, "internal error")

		return
	}

	queryText := chi.URLParam(r, "query")
	if decoded, err := url.PathUnescape(queryText); err == nil {
		queryText = decoded
	}

	result := svc.cfg.Engine.Search(snap, queryText)

	svc.cfg.Metrics.QueriesTotal.Inc()
	svc.cfg.Metrics.QueryDuration.Observe(result.Duration.Seconds())
	svc.cfg.Metrics.QueryHits.Observe(float64(result.HitCount))

	svc.cfg.Logger.WithFields(logrus.Fields{
		"query":    queryText,
		"hits":     result.HitCount,
		"duration": result.Duration.String(),
	}).Debug("answered query")

	hits := result.Hits
	if hits == nil {
		hits = []queryengine.Hit{}
	}

	svc.writeJSON(w, http.StatusOK, searchResponse{
		DurationMs: float64(result.Duration) / float64(time.Millisecond),
		HitCount:   result.HitCount,
		Results:    hits,
	})
}

func (svc *Service) serveHealth(w http.ResponseWriter, _ *http.Request) {
	snap, err := svc.cfg.Handle.Get()
	if err != nil {
		svc.writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status": "building",
		})

		return
	}

	svc.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"snapshotId": snap.ID,
		"builtAt":    snap.BuiltAt,
		"documents":  snap.Store.Count(),
	})
}

func (svc *Service) writeError(w http.ResponseWriter, status int, msg string) {
	svc.writeJSON(w, status, map[string]string{"error": msg})
}

func (svc *Service) writeJSON(
	w http.ResponseWriter, status int, payload interface{},
) {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		svc.cfg.Logger.WithField("err", err).Error(
			"could not write response payload",
		)
	}
}
