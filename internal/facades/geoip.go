package facades

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sylesh7/medinnovate/internal/logger"
)

const defaultGeoIPURL = "http://ip-api.com/json"

// GeoIPFacade resolves an approximate coordinate for the dispatching host
// from its external IP. Resolution is best-effort: any failure reports
// ok=false, never an error, and the caller degrades gracefully.
type GeoIPFacade struct {
	url    string
	client *http.Client
}

// GeoIPOpt configures a GeoIPFacade.
type GeoIPOpt func(*GeoIPFacade)

// WithGeoIPURL overrides the lookup endpoint.
func WithGeoIPURL(u string) GeoIPOpt {
	return func(f *GeoIPFacade) { f.url = u }
}

// WithGeoIPHTTPClient overrides the HTTP client.
func WithGeoIPHTTPClient(c *http.Client) GeoIPOpt {
	return func(f *GeoIPFacade) { f.client = c }
}

// NewGeoIPFacade creates a facade against an ip-api style endpoint.
func NewGeoIPFacade(opts ...GeoIPOpt) *GeoIPFacade {
	f := &GeoIPFacade{
		url:    defaultGeoIPURL,
		client: &http.Client{Timeout: 5 * time.Second},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type geoIPResponse struct {
	Status string  `json:"status"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

// Resolve returns the host coordinate, or ok=false when the lookup fails
// or reports no usable coordinate.
func (f *GeoIPFacade) Resolve(ctx context.Context) (lat, lon float64, ok bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return 0, 0, false
	}

	res, err := f.client.Do(req)
	if err != nil {
		logger.Log.Warnw("geoip lookup failed", "error", err)
		return 0, 0, false
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		logger.Log.Warnw("geoip lookup rejected", "status", res.StatusCode)
		return 0, 0, false
	}

	var body geoIPResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		logger.Log.Warnw("geoip response malformed", "error", err)
		return 0, 0, false
	}
	if body.Status != "success" {
		return 0, 0, false
	}

	return body.Lat, body.Lon, true
}
