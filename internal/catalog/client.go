// Package catalog talks to the remote FDSN event service and returns its
// GeoJSON payload decoded but otherwise untouched.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/geosignal/quakescope/internal/metrics"
	"github.com/geosignal/quakescope/internal/models"
)

// Failure kinds surfaced to callers, matched with errors.Is. The wrapped
// text carries the human-readable cause.
var (
	ErrTransport = errors.New("catalog transport failure")
	ErrDecode    = errors.New("catalog decode failure")
)

// FeatureCollection is the top-level catalog response.
type FeatureCollection struct {
	Features []Feature `json:"features"`
}

// Feature is one raw event record.
type Feature struct {
	Properties Properties `json:"properties"`
	Geometry   Geometry   `json:"geometry"`
}

// Properties carries the event attributes. Any of them can be absent
// upstream, hence the pointers.
type Properties struct {
	Time  *int64   `json:"time"`
	Mag   *float64 `json:"mag"`
	Place *string  `json:"place"`
	Alert *string  `json:"alert"`
	URL   *string  `json:"url"`
}

// Geometry keeps coordinates as a flat slice so the optional third element
// (depth in km) survives decoding.
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// Query names the parameters of one catalog request.
type Query struct {
	Start        time.Time
	End          time.Time
	MinMagnitude float64
	MaxMagnitude float64
	OrderBy      models.OrderBy
	AlertLevel   models.AlertLevel
	Box          *models.BoundingBox
}

// Client wraps net/http with helpers tailored to the event endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	maxRecords int
	log        *slog.Logger
}

// New instantiates the catalog client. timeout bounds the whole request,
// maxRecords caps the result set asked of the remote.
func New(baseURL string, timeout time.Duration, maxRecords int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		maxRecords: maxRecords,
		log:        logger,
	}
}

// Search issues a single GET against the catalog. One attempt, no retries;
// the caller decides whether to re-invoke.
func (c *Client) Search(ctx context.Context, q Query) (*FeatureCollection, error) {
	if q.OrderBy == "" {
		q.OrderBy = models.OrderTimeDesc
	}

	reqURL := c.baseURL + "?" + c.buildParams(q).Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveCatalogRequest("error", time.Since(started))
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	metrics.ObserveCatalogRequest(strconv.Itoa(resp.StatusCode), time.Since(started))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: %s: %s", ErrTransport, resp.Status, strings.TrimSpace(string(body)))
	}

	var fc FeatureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	c.log.Debug("catalog search completed",
		slog.Int("features", len(fc.Features)),
		slog.Duration("took", time.Since(started)),
	)

	return &fc, nil
}

func (c *Client) buildParams(q Query) url.Values {
	params := url.Values{}
	params.Set("format", "geojson")
	params.Set("starttime", q.Start.Format("2006-01-02"))
	params.Set("endtime", q.End.Format("2006-01-02"))
	params.Set("minmagnitude", formatFloat(q.MinMagnitude))
	params.Set("maxmagnitude", formatFloat(q.MaxMagnitude))
	params.Set("orderby", string(q.OrderBy))
	params.Set("limit", strconv.Itoa(c.maxRecords))

	if q.AlertLevel != "" {
		params.Set("alertlevel", string(q.AlertLevel))
	}
	if q.Box != nil {
		params.Set("minlatitude", formatFloat(q.Box.MinLat))
		params.Set("maxlatitude", formatFloat(q.Box.MaxLat))
		params.Set("minlongitude", formatFloat(q.Box.MinLon))
		params.Set("maxlongitude", formatFloat(q.Box.MaxLon))
	}

	return params
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
