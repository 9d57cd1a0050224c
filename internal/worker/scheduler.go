package worker

import (
	"log"

	"geolink/internal/service/tracker"
)

// StartAllWorkers initializes and starts all background workers
func StartAllWorkers(trackerService *tracker.TrackerService) {
	log.Println("Starting all workers...")

	StartRefreshWorker(trackerService)

	log.Println("All workers started")
}
