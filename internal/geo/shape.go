// Package geo implements the geometric half of the pipeline: decoding
// caller-supplied regions, deriving a narrowing bounding box, and exact
// point-in-polygon filtering.
package geo

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"github.com/geosignal/quakescope/internal/models"
)

// Shape is a decoded region geometry ready for containment tests.
type Shape struct {
	geom orb.Geometry
}

// ParseRegions decodes each region's GeoJSON independently. Entries with a
// missing geometry key, undecodable JSON, a non-areal type, or no rings are
// skipped and counted in the second return value; a bad region never aborts
// the rest. Surviving shapes keep their input order.
func ParseRegions(regions []models.Region) ([]Shape, int) {
	shapes := make([]Shape, 0, len(regions))
	skipped := 0

	for _, r := range regions {
		shape, err := parseRegion(r)
		if err != nil {
			skipped++
			continue
		}
		shapes = append(shapes, shape)
	}

	return shapes, skipped
}

func parseRegion(r models.Region) (Shape, error) {
	if len(r.Geometry) == 0 {
		return Shape{}, fmt.Errorf("region %q has no geometry", r.Name)
	}

	g, err := geojson.UnmarshalGeometry(r.Geometry)
	if err != nil {
		return Shape{}, fmt.Errorf("decode geometry: %w", err)
	}

	switch geom := g.Geometry().(type) {
	case orb.Polygon:
		if len(geom) == 0 || len(geom[0]) == 0 {
			return Shape{}, fmt.Errorf("polygon has no outer ring")
		}
		return Shape{geom: geom}, nil
	case orb.MultiPolygon:
		if len(geom) == 0 {
			return Shape{}, fmt.Errorf("multipolygon is empty")
		}
		for _, sub := range geom {
			if len(sub) == 0 || len(sub[0]) == 0 {
				return Shape{}, fmt.Errorf("multipolygon has an empty sub-polygon")
			}
		}
		return Shape{geom: geom}, nil
	default:
		return Shape{}, fmt.Errorf("unsupported geometry type %q", g.Type)
	}
}

// Contains reports whether the point at (lon, lat) falls inside the shape.
// Containment is planar over the full ring structure: inside the outer ring
// and outside every hole. A point exactly on the outer ring counts as
// inside; a point on a hole's ring belongs to the hole and is excluded.
func (s Shape) Contains(lon, lat float64) bool {
	pt := orb.Point{lon, lat}

	switch geom := s.geom.(type) {
	case orb.Polygon:
		return planar.PolygonContains(geom, pt)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(geom, pt)
	}
	return false
}
