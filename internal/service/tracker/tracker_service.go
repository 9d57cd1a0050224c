// Package tracker holds the observable session state the map surface
// renders: the local position, the peer list, the current selection
// and its route overlay. It composes the location provider, the sync
// service, the realtime bus and the directions client; all of them are
// injected, none reached through ambient globals.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"geolink/internal/config"
	"geolink/internal/location"
	"geolink/internal/model"
	"geolink/internal/realtime"
	"geolink/internal/service/storage"
	"geolink/internal/util"
)

// ErrNoSelection is returned when a route is requested with no peer
// selected.
var ErrNoSelection = errors.New("no peer selected")

// Syncer is the slice of the sync service the tracker drives.
type Syncer interface {
	PushOwnLocation(ctx context.Context, userID string, pos model.Position) error
	PullOtherUsers(ctx context.Context, excludeUserID string) ([]model.PeerView, error)
}

// Router requests a route overlay between two coordinates.
type Router interface {
	GetDirections(ctx context.Context, startLat, startLng, destLat, destLng float64) (*model.RouteOverlay, error)
}

// MapState is a point-in-time copy of the observable state. RouteBound
// is the viewport rectangle to fit the map to whenever a route overlay
// is active.
type MapState struct {
	MyPosition     *model.Position     `json:"my_position"`
	Peers          []model.PeerView    `json:"peers"`
	SelectedPeerID string              `json:"selected_peer_id"`
	ActiveRoute    *model.RouteOverlay `json:"active_route"`
	RouteBound     *model.RouteBound   `json:"route_bound,omitempty"`
	Error          string              `json:"error,omitempty"`
}

// TrackerService is the screen-level state holder. Three event sources
// mutate it: the watch callback, the realtime bus, and explicit user
// actions through the API. All mutation is serialized behind one
// mutex; every update is a wholesale replace of one piece of state.
type TrackerService struct {
	userID   string
	provider location.Provider
	syncer   Syncer
	bus      realtime.Bus
	router   Router

	mu             sync.RWMutex
	myPosition     *model.Position
	selectedPeerID string
	activeRoute    *model.RouteOverlay
	errMsg         string
	started        bool

	peers storage.Storage[string, model.PeerView]

	watchSub *location.Subscription
	busSub   *realtime.Subscription
}

func NewTrackerService(userID string, provider location.Provider, syncer Syncer, bus realtime.Bus, router Router) *TrackerService {
	return &TrackerService{
		userID:   userID,
		provider: provider,
		syncer:   syncer,
		bus:      bus,
		router:   router,
		peers:    storage.NewMemoryStorage[string, model.PeerView](),
	}
}

// Start runs the session init flow: permission, first fix, first push,
// initial pull, then the continuous watch and the realtime
// subscription. A permission refusal halts the pipeline for the whole
// session; nothing is retried.
func (s *TrackerService) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.mu.Unlock()

	if err := s.provider.RequestPermission(); err != nil {
		s.setError(location.ErrPermissionDenied.Error())
		return location.ErrPermissionDenied
	}

	pos, err := s.provider.CurrentPosition(ctx)
	if err != nil {
		s.setError(err.Error())
		return fmt.Errorf("failed to resolve initial position: %w", err)
	}

	s.mu.Lock()
	p := pos
	s.myPosition = &p
	s.mu.Unlock()

	if err := s.syncer.PushOwnLocation(ctx, s.userID, pos); err != nil {
		log.Printf("Initial location push failed: %v", err)
	}

	s.RefreshPeers(ctx)

	watchSub, err := s.provider.Watch(location.WatchOptions{
		MinInterval:       config.WatchMinInterval,
		MinDistanceMeters: config.WatchMinDistanceMeters,
	}, s.onFix)
	if err != nil {
		return fmt.Errorf("failed to start position watch: %w", err)
	}

	busSub, err := s.bus.Subscribe(ctx, model.UserLocation{}.TableName(), func() {
		s.RefreshPeers(context.Background())
	})
	if err != nil {
		watchSub.Cancel()
		return fmt.Errorf("failed to subscribe to location changes: %w", err)
	}

	s.mu.Lock()
	s.watchSub = watchSub
	s.busSub = busSub
	s.mu.Unlock()

	log.Printf("Tracker session started for user %s", s.userID)
	return nil
}

// Stop tears down the watch and the realtime subscription. Idempotent;
// required on teardown so neither channel keeps invoking callbacks
// against a defunct consumer.
func (s *TrackerService) Stop() {
	s.mu.Lock()
	watchSub := s.watchSub
	busSub := s.busSub
	s.watchSub = nil
	s.busSub = nil
	s.mu.Unlock()

	if watchSub != nil {
		watchSub.Cancel()
	}
	if busSub != nil {
		if err := busSub.Unsubscribe(); err != nil {
			log.Printf("Failed to unsubscribe from location changes: %v", err)
		}
	}
}

// onFix handles one delivered sensor fix: the local position is
// replaced and the push runs fire-and-forget, so a slow or failing
// store never blocks the sensor stream. Push failures are logged and
// superseded by the next fix.
func (s *TrackerService) onFix(pos model.Position) {
	s.mu.Lock()
	p := pos
	s.myPosition = &p
	s.mu.Unlock()

	go func() {
		if err := s.syncer.PushOwnLocation(context.Background(), s.userID, pos); err != nil {
			log.Printf("Location push failed: %v", err)
		}
	}()
}

// RefreshPeers pulls the peer list and replaces the previous snapshot
// wholesale. Pull failures leave the previous list in place.
func (s *TrackerService) RefreshPeers(ctx context.Context) {
	peers, err := s.syncer.PullOtherUsers(ctx, s.userID)
	if err != nil {
		log.Printf("Peer pull failed: %v", err)
		return
	}

	items := make(map[string]model.PeerView, len(peers))
	for _, peer := range peers {
		items[peer.UserID] = peer
	}
	s.peers.ReplaceAll(items)
}

// SelectPeer marks a peer as selected. Any route overlay belonging to
// the previous selection is discarded in the same transition.
func (s *TrackerService) SelectPeer(peerID string) error {
	if _, ok := s.peers.Get(peerID); !ok {
		return fmt.Errorf("unknown peer %q", peerID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedPeerID = peerID
	s.activeRoute = nil
	return nil
}

// ClearSelection resets the selection and the route overlay together;
// a route is never left displayed without its selected peer.
func (s *TrackerService) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedPeerID = ""
	s.activeRoute = nil
}

// RequestRoute asks the directions client for a route from the local
// position to the selected peer. On success the overlay becomes the
// active route; on failure the previous overlay is left untouched and
// the error is returned for the caller to surface.
func (s *TrackerService) RequestRoute(ctx context.Context) (*model.RouteOverlay, error) {
	s.mu.RLock()
	myPos := s.myPosition
	peerID := s.selectedPeerID
	s.mu.RUnlock()

	if peerID == "" {
		return nil, ErrNoSelection
	}
	if myPos == nil {
		return nil, errors.New("own position not resolved yet")
	}

	peer, ok := s.peers.Get(peerID)
	if !ok {
		return nil, fmt.Errorf("unknown peer %q", peerID)
	}

	peerPos := peer.Position()
	overlay, err := s.router.GetDirections(ctx, myPos.Latitude, myPos.Longitude, peerPos.Latitude, peerPos.Longitude)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	// The selection may have changed while the request was in flight;
	// only the current selection owns the overlay.
	if s.selectedPeerID == peerID {
		s.activeRoute = overlay
	}
	s.mu.Unlock()

	return overlay, nil
}

// Snapshot returns a copy of the observable state. Peers carry their
// current distance from the local position and are ordered
// nearest-first.
func (s *TrackerService) Snapshot() MapState {
	s.mu.RLock()
	state := MapState{
		SelectedPeerID: s.selectedPeerID,
		ActiveRoute:    s.activeRoute,
		Error:          s.errMsg,
	}
	if s.myPosition != nil {
		p := *s.myPosition
		state.MyPosition = &p
	}
	s.mu.RUnlock()

	if state.ActiveRoute != nil {
		state.RouteBound, _ = state.ActiveRoute.ViewportBound()
	}

	peers := s.peers.GetAllValues()
	if state.MyPosition != nil {
		for i := range peers {
			peers[i].DistanceKm = util.HaversineDistanceKm(
				state.MyPosition.Latitude, state.MyPosition.Longitude,
				peers[i].Latitude, peers[i].Longitude,
			)
		}
		sort.Slice(peers, func(i, j int) bool {
			return peers[i].DistanceKm < peers[j].DistanceKm
		})
	} else {
		sort.Slice(peers, func(i, j int) bool {
			return peers[i].UserID < peers[j].UserID
		})
	}
	state.Peers = peers

	return state
}

func (s *TrackerService) setError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = msg
}
