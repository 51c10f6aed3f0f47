// Package geo talks to the OpenStreetMap services used for restaurant
// discovery (Overpass) and address geocoding (Nominatim).
//
// Both lookups are best effort: every failure is logged, counted and answered
// with fixed data, so callers never see an error.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"foodieride-api/logger"
	"foodieride-api/metrics"
)

// MaxRestaurants caps the discovery result.
const MaxRestaurants = 10

// DefaultLat and DefaultLon are central Hyderabad.
const (
	DefaultLat = 17.3850
	DefaultLon = 78.4867
)

type Restaurant struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

var fallbackRestaurants = []Restaurant{
	{Name: "Paradise Biryani", Lat: 17.3850, Lon: 78.4867},
	{Name: "Bawarchi", Lat: 17.4012, Lon: 78.4778},
	{Name: "Jewel of Nizam", Lat: 17.4167, Lon: 78.4381},
}

// FallbackRestaurants returns a copy of the fixed list served when discovery
// fails or finds nothing.
func FallbackRestaurants() []Restaurant {
	out := make([]Restaurant, len(fallbackRestaurants))
	copy(out, fallbackRestaurants)
	return out
}

//go:generate mockgen -destination=mock_geo/provider_mock.go -package=mock_geo foodieride-api/geo Provider

// Provider is the surface the order service needs from this package.
type Provider interface {
	DiscoverRestaurants(ctx context.Context, lat, lon float64) []Restaurant
	ResolveAddress(ctx context.Context, address string) (lat, lon float64)
	DefaultLocation() (lat, lon float64)
}

type Options struct {
	OverpassURL  string
	NominatimURL string
	UserAgent    string
	Timeout      time.Duration
	RadiusMeters int
	DefaultLat   float64
	DefaultLon   float64
}

type Client struct {
	http *http.Client
	opts Options
}

var _ Provider = (*Client)(nil)

func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RadiusMeters <= 0 {
		opts.RadiusMeters = 5000
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "FoodieRide"
	}
	if opts.DefaultLat == 0 && opts.DefaultLon == 0 {
		opts.DefaultLat, opts.DefaultLon = DefaultLat, DefaultLon
	}
	return &Client{
		http: &http.Client{Timeout: opts.Timeout},
		opts: opts,
	}
}

func (c *Client) DefaultLocation() (float64, float64) {
	return c.opts.DefaultLat, c.opts.DefaultLon
}

type overpassResponse struct {
	Elements []struct {
		ID   int64             `json:"id"`
		Lat  float64           `json:"lat"`
		Lon  float64           `json:"lon"`
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

// DiscoverRestaurants lists up to MaxRestaurants restaurants around the point.
func (c *Client) DiscoverRestaurants(ctx context.Context, lat, lon float64) []Restaurant {
	log := logger.Get()

	restaurants, err := c.queryOverpass(ctx, lat, lon)
	if err != nil {
		log.Warn().Err(err).Msg("overpass lookup failed, using fallback restaurants")
		metrics.GeoFallbackTotal.WithLabelValues("overpass").Inc()
		return FallbackRestaurants()
	}
	if len(restaurants) == 0 {
		log.Debug().Float64("lat", lat).Float64("lon", lon).Msg("overpass returned no restaurants, using fallback")
		metrics.GeoFallbackTotal.WithLabelValues("overpass").Inc()
		return FallbackRestaurants()
	}
	return restaurants
}

func (c *Client) queryOverpass(ctx context.Context, lat, lon float64) ([]Restaurant, error) {
	query := fmt.Sprintf("[out:json];node['amenity'='restaurant'](around:%d,%s,%s);out body;",
		c.opts.RadiusMeters, formatCoord(lat), formatCoord(lon))
	form := url.Values{"data": {query}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.OverpassURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build overpass request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.opts.UserAgent)

	var body overpassResponse
	if err := c.doJSON(req, &body); err != nil {
		return nil, fmt.Errorf("overpass: %w", err)
	}

	restaurants := make([]Restaurant, 0, min(len(body.Elements), MaxRestaurants))
	for _, el := range body.Elements {
		if len(restaurants) == MaxRestaurants {
			break
		}
		name := el.Tags["name"]
		if name == "" {
			name = "Rest_" + strconv.FormatInt(el.ID, 10)
		}
		restaurants = append(restaurants, Restaurant{Name: name, Lat: el.Lat, Lon: el.Lon})
	}
	return restaurants, nil
}

type nominatimHit struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// ResolveAddress geocodes a free-text address, falling back to the default
// location.
func (c *Client) ResolveAddress(ctx context.Context, address string) (float64, float64) {
	log := logger.Get()

	lat, lon, found, err := c.queryNominatim(ctx, address)
	switch {
	case err != nil:
		log.Warn().Err(err).Str("address", address).Msg("nominatim lookup failed, using default coordinates")
	case !found:
		log.Debug().Str("address", address).Msg("no coordinates found, using default")
	default:
		return lat, lon
	}
	metrics.GeoFallbackTotal.WithLabelValues("nominatim").Inc()
	return c.DefaultLocation()
}

func (c *Client) queryNominatim(ctx context.Context, address string) (float64, float64, bool, error) {
	u, err := url.Parse(c.opts.NominatimURL)
	if err != nil {
		return 0, 0, false, fmt.Errorf("nominatim url: %w", err)
	}
	q := u.Query()
	q.Set("q", address)
	q.Set("format", "json")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, 0, false, fmt.Errorf("build nominatim request: %w", err)
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	var hits []nominatimHit
	if err := c.doJSON(req, &hits); err != nil {
		return 0, 0, false, fmt.Errorf("nominatim: %w", err)
	}
	if len(hits) == 0 {
		return 0, 0, false, nil
	}

	lat, err := strconv.ParseFloat(hits[0].Lat, 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("nominatim lat %q: %w", hits[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(hits[0].Lon, 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("nominatim lon %q: %w", hits[0].Lon, err)
	}
	return lat, lon, true, nil
}

func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
