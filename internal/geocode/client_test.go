package geocode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestReverseGeocodeSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			t.Errorf("expected /reverse path, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("format") != "json" {
			t.Errorf("expected format=json, got %q", r.URL.Query().Get("format"))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"display_name": "1 Tràng Tiền, Hoàn Kiếm, Hà Nội, Vietnam",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	address := client.ReverseGeocode(context.Background(), 21.0245, 105.8412)
	if address != "1 Tràng Tiền, Hoàn Kiếm, Hà Nội, Vietnam" {
		t.Errorf("unexpected address: %q", address)
	}
}

func TestReverseGeocodeDegradesToPlaceholder(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
		},
		{
			name: "empty result",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewClient(server.URL)

			if address := client.ReverseGeocode(context.Background(), 1, 2); address != PlaceholderAddress {
				t.Errorf("expected placeholder address, got %q", address)
			}
		})
	}
}

func TestReverseGeocodeUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL)

	if address := client.ReverseGeocode(context.Background(), 1, 2); address != PlaceholderAddress {
		t.Errorf("expected placeholder address for unreachable service, got %q", address)
	}
}
