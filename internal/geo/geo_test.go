package geo_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geosignal/quakescope/internal/geo"
	"github.com/geosignal/quakescope/internal/models"
)

func region(geom string) models.Region {
	return models.Region{Geometry: json.RawMessage(geom)}
}

func eventAt(lon, lat float64) models.Event {
	return models.Event{Longitude: lon, Latitude: lat}
}

const unitSquare = `{"type":"Polygon","coordinates":[[[0,0],[0,1],[1,1],[1,0],[0,0]]]}`

func TestParseRegionsSkipsMalformedEntries(t *testing.T) {
	tests := []struct {
		name        string
		regions     []models.Region
		wantShapes  int
		wantSkipped int
	}{
		{name: "nil input", regions: nil, wantShapes: 0, wantSkipped: 0},
		{name: "missing geometry key", regions: []models.Region{{Name: "drawn"}}, wantShapes: 0, wantSkipped: 1},
		{name: "null geometry", regions: []models.Region{region(`null`)}, wantShapes: 0, wantSkipped: 1},
		{name: "garbage json", regions: []models.Region{region(`{"type":`)}, wantShapes: 0, wantSkipped: 1},
		{name: "unsupported type", regions: []models.Region{region(`{"type":"Point","coordinates":[1,2]}`)}, wantShapes: 0, wantSkipped: 1},
		{name: "empty polygon", regions: []models.Region{region(`{"type":"Polygon","coordinates":[]}`)}, wantShapes: 0, wantSkipped: 1},
		{name: "valid survives neighbours", regions: []models.Region{
			region(unitSquare),
			region(`{"type":"LineString","coordinates":[[0,0],[1,1]]}`),
			region(unitSquare),
		}, wantShapes: 2, wantSkipped: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shapes, skipped := geo.ParseRegions(tt.regions)
			require.Len(t, shapes, tt.wantShapes)
			require.Equal(t, tt.wantSkipped, skipped)
		})
	}
}

func TestBoundsEmpty(t *testing.T) {
	require.Nil(t, geo.Bounds(nil))

	shapes, _ := geo.ParseRegions(nil)
	require.Nil(t, geo.Bounds(shapes))
}

func TestBoundsUnitSquare(t *testing.T) {
	shapes, skipped := geo.ParseRegions([]models.Region{region(unitSquare)})
	require.Equal(t, 0, skipped)

	box := geo.Bounds(shapes)
	require.NotNil(t, box)
	require.Equal(t, 0.0, box.MinLat)
	require.Equal(t, 1.0, box.MaxLat)
	require.Equal(t, 0.0, box.MinLon)
	require.Equal(t, 1.0, box.MaxLon)
}

func TestBoundsIgnoresInvalidEntry(t *testing.T) {
	shapes, skipped := geo.ParseRegions([]models.Region{
		region(unitSquare),
		region(`{"type":"Banana","coordinates":[]}`),
	})
	require.Equal(t, 1, skipped)

	box := geo.Bounds(shapes)
	require.NotNil(t, box)
	require.Equal(t, &models.BoundingBox{MinLat: 0, MaxLat: 1, MinLon: 0, MaxLon: 1}, box)
}

func TestBoundsUsesOuterRingOnly(t *testing.T) {
	// the second ring reaches lon 20 but rings after the first never widen
	// the box
	withHole := `{"type":"Polygon","coordinates":[
		[[0,0],[10,0],[10,10],[0,10],[0,0]],
		[[4,4],[20,4],[20,6],[4,6],[4,4]]
	]}`
	shapes, skipped := geo.ParseRegions([]models.Region{region(withHole)})
	require.Equal(t, 0, skipped)

	box := geo.Bounds(shapes)
	require.NotNil(t, box)
	require.Equal(t, 10.0, box.MaxLon)
	require.Equal(t, 10.0, box.MaxLat)
}

func TestBoundsUnionsMultiPolygon(t *testing.T) {
	multi := `{"type":"MultiPolygon","coordinates":[
		[[[0,0],[2,0],[2,2],[0,2],[0,0]]],
		[[[30,40],[34,40],[34,44],[30,44],[30,40]]]
	]}`
	shapes, skipped := geo.ParseRegions([]models.Region{region(multi)})
	require.Equal(t, 0, skipped)

	box := geo.Bounds(shapes)
	require.NotNil(t, box)
	require.Equal(t, &models.BoundingBox{MinLat: 0, MaxLat: 44, MinLon: 0, MaxLon: 34}, box)
}

func TestFilterTriangle(t *testing.T) {
	triangle := `{"type":"Polygon","coordinates":[[[0,0],[4,0],[0,4],[0,0]]]}`
	shapes, skipped := geo.ParseRegions([]models.Region{region(triangle)})
	require.Equal(t, 0, skipped)

	inside := eventAt(1, 1)
	outside := eventAt(3, 3)

	kept := geo.Filter([]models.Event{inside, outside}, shapes)
	require.Len(t, kept, 1)
	require.Equal(t, inside, kept[0])
}

func TestFilterKeepsOrderAndIsSubsequence(t *testing.T) {
	shapes, _ := geo.ParseRegions([]models.Region{region(unitSquare)})

	events := []models.Event{
		eventAt(0.1, 0.1),
		eventAt(5, 5),
		eventAt(0.5, 0.5),
		eventAt(-1, 0.5),
		eventAt(0.9, 0.2),
	}

	kept := geo.Filter(events, shapes)
	require.Equal(t, []models.Event{events[0], events[2], events[4]}, kept)
	for _, ev := range kept {
		require.True(t, shapes[0].Contains(ev.Longitude, ev.Latitude))
	}
}

func TestFilterMatchesAnyShape(t *testing.T) {
	east := `{"type":"Polygon","coordinates":[[[10,10],[12,10],[12,12],[10,12],[10,10]]]}`
	shapes, _ := geo.ParseRegions([]models.Region{region(unitSquare), region(east)})

	events := []models.Event{
		eventAt(0.5, 0.5),
		eventAt(11, 11),
		eventAt(5, 5),
	}

	kept := geo.Filter(events, shapes)
	require.Len(t, kept, 2)
	require.Equal(t, events[0], kept[0])
	require.Equal(t, events[1], kept[1])
}

func TestFilterRespectsHoles(t *testing.T) {
	donut := `{"type":"Polygon","coordinates":[
		[[0,0],[10,0],[10,10],[0,10],[0,0]],
		[[4,4],[6,4],[6,6],[4,6],[4,4]]
	]}`
	shapes, skipped := geo.ParseRegions([]models.Region{region(donut)})
	require.Equal(t, 0, skipped)

	kept := geo.Filter([]models.Event{eventAt(5, 5), eventAt(2, 2)}, shapes)
	require.Len(t, kept, 1)
	require.Equal(t, 2.0, kept[0].Longitude)
}

func TestFilterMultiPolygon(t *testing.T) {
	multi := `{"type":"MultiPolygon","coordinates":[
		[[[0,0],[2,0],[2,2],[0,2],[0,0]]],
		[[[30,40],[34,40],[34,44],[30,44],[30,40]]]
	]}`
	shapes, _ := geo.ParseRegions([]models.Region{region(multi)})

	events := []models.Event{
		eventAt(1, 1),
		eventAt(32, 42),
		eventAt(16, 20),
	}

	kept := geo.Filter(events, shapes)
	require.Len(t, kept, 2)
}

func TestFilterBoundaryPoints(t *testing.T) {
	shapes, _ := geo.ParseRegions([]models.Region{region(unitSquare)})

	// on the outer ring counts as inside
	onEdge := eventAt(0, 0.5)
	kept := geo.Filter([]models.Event{onEdge}, shapes)
	require.Len(t, kept, 1)

	// on a hole's ring counts as part of the hole
	donut := `{"type":"Polygon","coordinates":[
		[[0,0],[10,0],[10,10],[0,10],[0,0]],
		[[4,4],[6,4],[6,6],[4,6],[4,4]]
	]}`
	holed, _ := geo.ParseRegions([]models.Region{region(donut)})
	onHoleEdge := eventAt(4, 5)
	require.Empty(t, geo.Filter([]models.Event{onHoleEdge}, holed))
}

func TestFilterNoShapesKeepsNothing(t *testing.T) {
	events := []models.Event{eventAt(1, 1)}

	kept := geo.Filter(events, nil)
	require.NotNil(t, kept)
	require.Empty(t, kept)
}

func TestFilterEmptyEvents(t *testing.T) {
	shapes, _ := geo.ParseRegions([]models.Region{region(unitSquare)})
	require.Empty(t, geo.Filter(nil, shapes))
}
