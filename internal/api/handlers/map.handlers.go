package routes

import (
	"errors"
	"log"
	"strconv"

	"geolink/internal/directions"
	"geolink/internal/geocode"
	syncsvc "geolink/internal/service/sync"
	"geolink/internal/service/tracker"

	"github.com/gin-gonic/gin"
)

// SetupMapHandlers registers the map state endpoints: the observable
// session state, the peer list and directory, peer selection, and
// routing to the selected peer.
func SetupMapHandlers(router *gin.RouterGroup, t *tracker.TrackerService, s *syncsvc.SyncService, g *geocode.Client) {
	router.GET("/state", func(c *gin.Context) {
		c.JSON(200, t.Snapshot())
	})

	router.GET("/peers", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"peers": t.Snapshot().Peers,
		})
	})

	router.GET("/users", func(c *gin.Context) {
		users, err := s.ListUsers(c.Request.Context())
		if err != nil {
			log.Printf("User directory fetch failed: %v", err)
			c.JSON(502, gin.H{"error": "failed to fetch users"})
			return
		}
		c.JSON(200, gin.H{"users": users})
	})

	router.POST("/peers/:id/select", func(c *gin.Context) {
		if err := t.SelectPeer(c.Param("id")); err != nil {
			c.JSON(404, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"status": "success"})
	})

	// Clearing the selection discards the route overlay with it.
	router.DELETE("/selection", func(c *gin.Context) {
		t.ClearSelection()
		c.JSON(200, gin.H{"status": "success"})
	})

	router.POST("/selection/route", func(c *gin.Context) {
		overlay, err := t.RequestRoute(c.Request.Context())
		if err != nil {
			var routingErr *directions.RoutingError
			switch {
			case errors.Is(err, tracker.ErrNoSelection):
				c.JSON(400, gin.H{"error": err.Error()})
			case errors.As(err, &routingErr):
				c.JSON(502, gin.H{"error": routingErr.Message})
			default:
				c.JSON(500, gin.H{"error": "failed to get directions"})
			}
			return
		}

		resp := gin.H{
			"coordinates": overlay.Coordinates,
			"distance_km": overlay.DistanceKm,
		}
		if bound, ok := overlay.ViewportBound(); ok {
			resp["bound"] = bound
		}
		c.JSON(200, resp)
	})

	// Best-effort reverse geocode; always answers 200, with the
	// placeholder address when the lookup fails.
	router.GET("/address", func(c *gin.Context) {
		lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
		lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
		if latErr != nil || lonErr != nil {
			c.JSON(400, gin.H{"error": "lat and lon query parameters are required"})
			return
		}
		c.JSON(200, gin.H{
			"address": g.ReverseGeocode(c.Request.Context(), lat, lon),
		})
	})
}
