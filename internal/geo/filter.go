package geo

import (
	"github.com/dhconnelly/rtreego"

	"github.com/geosignal/quakescope/internal/models"
)

// rectTolerance pads zero-area rectangles so the index accepts them. Padding
// only widens the candidate set; the exact containment test still decides.
const rectTolerance = 1e-9

type shapeItem struct {
	shape Shape
	rect  *rtreego.Rect
}

func (si *shapeItem) Bounds() *rtreego.Rect { return si.rect }

// Filter keeps the events whose (lon, lat) point lies inside at least one
// shape, preserving event order. With zero shapes nothing passes; callers
// that want no region filtering skip the call instead.
//
// Shapes go into an R-tree keyed by their bounding rectangles and each event
// probes it first, so the exact test only runs against nearby candidates.
// The index lives for one call, nothing is shared.
func Filter(events []models.Event, shapes []Shape) []models.Event {
	if len(events) == 0 {
		return events
	}

	kept := make([]models.Event, 0, len(events))
	if len(shapes) == 0 {
		return kept
	}

	tree := rtreego.NewTree(2, 25, 50)
	for _, s := range shapes {
		tree.Insert(&shapeItem{shape: s, rect: shapeRect(s)})
	}

	for _, ev := range events {
		probe := rtreego.Point{ev.Longitude, ev.Latitude}.ToRect(rectTolerance)
		for _, candidate := range tree.SearchIntersect(probe) {
			if candidate.(*shapeItem).shape.Contains(ev.Longitude, ev.Latitude) {
				kept = append(kept, ev)
				break
			}
		}
	}

	return kept
}

func shapeRect(s Shape) *rtreego.Rect {
	b := s.geom.Bound()

	lengths := []float64{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1]}
	for i, l := range lengths {
		if l <= 0 {
			lengths[i] = rectTolerance
		}
	}

	rect, err := rtreego.NewRect(rtreego.Point{b.Min[0], b.Min[1]}, lengths)
	if err != nil {
		return rtreego.Point{b.Min[0], b.Min[1]}.ToRect(rectTolerance)
	}
	return rect
}
