// Package normalize flattens raw catalog features into tabular event records.
package normalize

import (
	"time"

	"github.com/geosignal/quakescope/internal/catalog"
	"github.com/geosignal/quakescope/internal/models"
)

// Normalize converts a decoded feature collection into events, preserving
// feature order. Features without a timestamp or with fewer than two
// coordinate elements are dropped; the second return value counts them.
// Pure transformation, no I/O.
func Normalize(fc *catalog.FeatureCollection) ([]models.Event, int) {
	if fc == nil || len(fc.Features) == 0 {
		return []models.Event{}, 0
	}

	events := make([]models.Event, 0, len(fc.Features))
	dropped := 0

	for _, f := range fc.Features {
		if f.Properties.Time == nil || len(f.Geometry.Coordinates) < 2 {
			dropped++
			continue
		}

		ev := models.Event{
			TimeUTC:    time.UnixMilli(*f.Properties.Time).UTC(),
			Magnitude:  f.Properties.Mag,
			Place:      f.Properties.Place,
			Longitude:  f.Geometry.Coordinates[0],
			Latitude:   f.Geometry.Coordinates[1],
			AlertLevel: f.Properties.Alert,
			URL:        f.Properties.URL,
		}
		if len(f.Geometry.Coordinates) > 2 {
			depth := f.Geometry.Coordinates[2]
			ev.DepthKm = &depth
		}

		events = append(events, ev)
	}

	return events, dropped
}
