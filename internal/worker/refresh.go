package worker

import (
	"context"
	"log"
	"time"

	"geolink/internal/config"
	"geolink/internal/service/tracker"
)

// StartRefreshWorker starts the worker that periodically re-pulls the
// peer list. Change notifications are best-effort, so a missed one is
// repaired by the next scheduled refresh.
func StartRefreshWorker(trackerService *tracker.TrackerService) {
	ticker := time.NewTicker(config.RefreshWorkerInterval)
	go func() {
		for range ticker.C {
			trackerService.RefreshPeers(context.Background())
		}
	}()

	log.Println("Refresh worker started with interval:", config.RefreshWorkerInterval)
}
