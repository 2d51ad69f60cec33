// Package pipeline sequences one catalog query: region parsing, bounds
// derivation, fetch, normalization, containment filtering, summary.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/geosignal/quakescope/internal/catalog"
	"github.com/geosignal/quakescope/internal/geo"
	"github.com/geosignal/quakescope/internal/metrics"
	"github.com/geosignal/quakescope/internal/models"
	"github.com/geosignal/quakescope/internal/normalize"
	"github.com/geosignal/quakescope/internal/stats"
)

type searcher interface {
	Search(ctx context.Context, q catalog.Query) (*catalog.FeatureCollection, error)
}

// Runner executes queries against a catalog searcher. Stateless: concurrent
// runs share nothing beyond the remote service itself.
type Runner struct {
	catalog searcher
	log     *slog.Logger
}

// New builds a Runner around the given catalog client.
func New(catalog searcher, log *slog.Logger) *Runner {
	return &Runner{catalog: catalog, log: log}
}

// Result is what one query execution hands back to callers.
type Result struct {
	Events          []models.Event      `json:"events"`
	Summary         stats.Summary       `json:"summary"`
	BoundingBox     *models.BoundingBox `json:"boundingBox,omitempty"`
	SkippedRegions  int                 `json:"skippedRegions"`
	DroppedFeatures int                 `json:"droppedFeatures"`
}

// Run executes the criteria end to end. A catalog failure short-circuits and
// is returned as is; malformed regions and features only shrink the result,
// they never fail the query.
func (r *Runner) Run(ctx context.Context, c models.Criteria) (*Result, error) {
	log := r.log.With(slog.String("query_id", uuid.NewString()))

	shapes, skippedRegions := geo.ParseRegions(c.Regions)
	if skippedRegions > 0 {
		log.Warn("skipping malformed regions",
			slog.Int("skipped", skippedRegions),
			slog.Int("total", len(c.Regions)),
		)
	}

	box := geo.Bounds(shapes)

	fc, err := r.catalog.Search(ctx, catalog.Query{
		Start:        c.Start,
		End:          c.End,
		MinMagnitude: c.MinMagnitude,
		MaxMagnitude: c.MaxMagnitude,
		OrderBy:      c.OrderBy,
		AlertLevel:   c.AlertLevel,
		Box:          box,
	})
	if err != nil {
		metrics.QueriesTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("search catalog: %w", err)
	}

	metrics.EventsFetched.Add(float64(len(fc.Features)))

	events, droppedFeatures := normalize.Normalize(fc)
	if droppedFeatures > 0 {
		log.Warn("dropping malformed features", slog.Int("dropped", droppedFeatures))
	}

	if len(c.Regions) > 0 {
		events = geo.Filter(events, shapes)
	}

	metrics.QueriesTotal.WithLabelValues("ok").Inc()
	metrics.EventsReturned.Add(float64(len(events)))

	log.Info("query completed",
		slog.Int("fetched", len(fc.Features)),
		slog.Int("returned", len(events)),
		slog.Bool("narrowed", box != nil),
	)

	return &Result{
		Events:          events,
		Summary:         stats.Summarize(events),
		BoundingBox:     box,
		SkippedRegions:  skippedRegions,
		DroppedFeatures: droppedFeatures,
	}, nil
}
