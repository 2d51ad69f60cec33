package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// OrderBy selects the catalog result ordering. The values are the tokens the
// remote service understands.
type OrderBy string

const (
	OrderTimeDesc      OrderBy = "time"
	OrderTimeAsc       OrderBy = "time-asc"
	OrderMagnitudeDesc OrderBy = "magnitude"
	OrderMagnitudeAsc  OrderBy = "magnitude-asc"
)

// ParseOrderBy maps a raw token to an OrderBy. Empty means newest first.
func ParseOrderBy(raw string) (OrderBy, error) {
	switch OrderBy(raw) {
	case "":
		return OrderTimeDesc, nil
	case OrderTimeDesc, OrderTimeAsc, OrderMagnitudeDesc, OrderMagnitudeAsc:
		return OrderBy(raw), nil
	}
	return "", fmt.Errorf("unknown ordering %q", raw)
}

// AlertLevel is the PAGER alert classification of an event.
type AlertLevel string

const (
	AlertGreen  AlertLevel = "green"
	AlertYellow AlertLevel = "yellow"
	AlertOrange AlertLevel = "orange"
	AlertRed    AlertLevel = "red"
)

// ParseAlertLevel maps a raw token to an AlertLevel. Empty means unfiltered.
func ParseAlertLevel(raw string) (AlertLevel, error) {
	switch AlertLevel(raw) {
	case "", AlertGreen, AlertYellow, AlertOrange, AlertRed:
		return AlertLevel(raw), nil
	}
	return "", fmt.Errorf("unknown alert level %q", raw)
}

// Region is one caller-supplied polygonal area. Geometry holds raw GeoJSON
// (Polygon or MultiPolygon) and stays undecoded here so a malformed entry can
// be skipped later without failing the whole query.
type Region struct {
	Name     string          `json:"name,omitempty"`
	Geometry json.RawMessage `json:"geometry,omitempty"`
}

// Criteria is everything one query execution needs. Built once per query and
// never mutated by the pipeline. Start <= End and MinMagnitude <=
// MaxMagnitude are not enforced here; the remote service answers inverted
// ranges with an empty set.
type Criteria struct {
	Start        time.Time
	End          time.Time
	MinMagnitude float64
	MaxMagnitude float64
	OrderBy      OrderBy
	AlertLevel   AlertLevel
	Regions      []Region
}

// Validate rejects criteria the remote service could never serve.
func (c Criteria) Validate() error {
	if c.Start.IsZero() || c.End.IsZero() {
		return fmt.Errorf("start and end dates are required")
	}
	if _, err := ParseOrderBy(string(c.OrderBy)); err != nil {
		return err
	}
	if _, err := ParseAlertLevel(string(c.AlertLevel)); err != nil {
		return err
	}
	return nil
}
