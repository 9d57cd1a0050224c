// Package directions turns a pair of coordinates into a drivable route
// overlay via an openrouteservice-compatible HTTP API.
package directions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"geolink/internal/config"
	"geolink/internal/model"
	"geolink/internal/util"

	"github.com/redis/go-redis/v9"
)

// RoutingError is any failure to produce a route: transport errors, an
// explicit error object in the response, or a response with no routes.
// Surfaced to the user as a dismissable alert; never retried here.
type RoutingError struct {
	Message string
	Err     error
}

func (e *RoutingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("routing: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("routing: %s", e.Message)
}

func (e *RoutingError) Unwrap() error {
	return e.Err
}

// Client calls the routing API. A single request/response cycle per
// call, no retry. Decoded routes are cached in Redis for a short TTL
// when a cache client is provided; cache failures are logged and
// ignored.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      *redis.Client
}

// NewClient creates a directions client. cache may be nil to disable
// route caching.
func NewClient(baseURL, apiKey string, cache *redis.Client) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: config.DirectionsTimeout},
		cache:      cache,
	}
}

// routeResponse is the subset of the routing API response this client
// reads. Distance in the summary is meters.
type routeResponse struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
		} `json:"summary"`
		Geometry string `json:"geometry"`
	} `json:"routes"`
}

// GetDirections requests a driving route from start to dest and decodes
// it into a renderable overlay. The request body carries coordinates as
// [lng, lat] pairs, the axis order the routing API expects.
func (c *Client) GetDirections(ctx context.Context, startLat, startLng, destLat, destLng float64) (*model.RouteOverlay, error) {
	cacheKey := fmt.Sprintf("route:%.5f,%.5f:%.5f,%.5f", startLat, startLng, destLat, destLng)

	if cached := c.cacheGet(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	body, err := json.Marshal(map[string][][2]float64{
		"coordinates": {
			{startLng, startLat},
			{destLng, destLat},
		},
	})
	if err != nil {
		return nil, &RoutingError{Message: "failed to encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, &RoutingError{Message: "failed to build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RoutingError{Message: "failed to reach routing service", Err: err}
	}
	defer resp.Body.Close()

	var parsed routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &RoutingError{Message: "failed to parse routing response", Err: err}
	}

	if parsed.Error != nil {
		return nil, &RoutingError{Message: parsed.Error.Message}
	}

	if len(parsed.Routes) == 0 {
		return nil, &RoutingError{Message: "no route available"}
	}

	route := parsed.Routes[0]
	overlay := &model.RouteOverlay{
		Coordinates: util.DecodePolyline(route.Geometry),
		DistanceKm:  route.Summary.Distance / 1000,
	}

	c.cacheSet(ctx, cacheKey, overlay)

	return overlay, nil
}

func (c *Client) cacheGet(ctx context.Context, key string) *model.RouteOverlay {
	if c.cache == nil {
		return nil
	}

	data, err := c.cache.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Route cache read failed: %v", err)
		}
		return nil
	}

	var overlay model.RouteOverlay
	if err := json.Unmarshal([]byte(data), &overlay); err != nil {
		return nil
	}
	return &overlay
}

func (c *Client) cacheSet(ctx context.Context, key string, overlay *model.RouteOverlay) {
	if c.cache == nil {
		return
	}

	data, err := json.Marshal(overlay)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, data, config.RouteCacheTTL).Err(); err != nil {
		log.Printf("Route cache write failed: %v", err)
	}
}
