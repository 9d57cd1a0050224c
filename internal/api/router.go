package api

import (
	routes "geolink/internal/api/handlers"
	"geolink/internal/geocode"
	syncsvc "geolink/internal/service/sync"
	"geolink/internal/service/tracker"

	"github.com/gin-gonic/gin"
)

// SetupRouter initializes all application routes
func SetupRouter(r *gin.Engine, t *tracker.TrackerService, s *syncsvc.SyncService, g *geocode.Client) {
	// API group
	api := r.Group("/api")

	// Setup main handlers
	routes.SetupMainHandlers(r.Group(""))

	// Setup map state handlers
	routes.SetupMapHandlers(api, t, s, g)
}
