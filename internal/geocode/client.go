// Package geocode resolves coordinates to human-readable addresses.
// Strictly best-effort: every failure degrades to a placeholder string
// and is never surfaced to the user.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"geolink/internal/config"
)

// PlaceholderAddress is returned whenever the lookup fails.
const PlaceholderAddress = "Address unavailable"

// Client calls a Nominatim-style reverse geocoding endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: config.GeocoderTimeout},
	}
}

// ReverseGeocode returns the address at the given coordinates, or the
// placeholder when the lookup fails for any reason.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) string {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("lat", fmt.Sprintf("%.6f", lat))
	params.Set("lon", fmt.Sprintf("%.6f", lon))

	reqURL := fmt.Sprintf("%s/reverse?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		log.Printf("Reverse geocode request build failed: %v", err)
		return PlaceholderAddress
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("Reverse geocode failed: %v", err)
		return PlaceholderAddress
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Reverse geocode returned status %d", resp.StatusCode)
		return PlaceholderAddress
	}

	var parsed struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		log.Printf("Reverse geocode parse failed: %v", err)
		return PlaceholderAddress
	}

	if parsed.DisplayName == "" {
		return PlaceholderAddress
	}

	return parsed.DisplayName
}
