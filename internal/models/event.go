package models

import "time"

// Event is one normalized seismic event record. Pointer fields stay nil when
// the catalog omitted the value.
type Event struct {
	TimeUTC    time.Time `json:"timeUtc"`
	Magnitude  *float64  `json:"magnitude"`
	Place      *string   `json:"place"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	DepthKm    *float64  `json:"depthKm"`
	AlertLevel *string   `json:"alertLevel"`
	URL        *string   `json:"url"`
}

// BoundingBox is the smallest axis-aligned lat/lon rectangle around a set of
// vertices. It narrows the remote query; it is never the exact filter.
type BoundingBox struct {
	MinLat float64 `json:"minLatitude"`
	MaxLat float64 `json:"maxLatitude"`
	MinLon float64 `json:"minLongitude"`
	MaxLon float64 `json:"maxLongitude"`
}
