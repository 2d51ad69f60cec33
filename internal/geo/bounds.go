package geo

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/geosignal/quakescope/internal/models"
)

// Bounds returns the single box covering the outer boundary of every shape,
// or nil when there are no shapes. Only ring 0 of a polygon, and ring 0 of
// each sub-polygon of a multipolygon, contributes: holes narrow interior
// area, not the enclosing extent.
func Bounds(shapes []Shape) *models.BoundingBox {
	var box *models.BoundingBox

	for _, s := range shapes {
		switch geom := s.geom.(type) {
		case orb.Polygon:
			box = extend(box, geom[0])
		case orb.MultiPolygon:
			for _, sub := range geom {
				box = extend(box, sub[0])
			}
		}
	}

	return box
}

func extend(box *models.BoundingBox, ring orb.Ring) *models.BoundingBox {
	for _, pt := range ring {
		lon, lat := pt.X(), pt.Y()
		if box == nil {
			box = &models.BoundingBox{MinLat: lat, MaxLat: lat, MinLon: lon, MaxLon: lon}
			continue
		}
		box.MinLat = math.Min(box.MinLat, lat)
		box.MaxLat = math.Max(box.MaxLat, lat)
		box.MinLon = math.Min(box.MinLon, lon)
		box.MaxLon = math.Max(box.MaxLon, lon)
	}
	return box
}
