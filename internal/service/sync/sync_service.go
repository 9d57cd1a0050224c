// Package sync reads and writes the shared position store. It is the
// sole writer of the local user's own location row; peer rows are
// read-only projections refreshed by pull.
package sync

import (
	"context"
	"fmt"
	"log"
	"time"

	"geolink/internal/model"
	"geolink/internal/realtime"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BackendError wraps any failure from the shared store. Callers log it
// and degrade: the peer list goes stale, a failed push is superseded by
// the next fix.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend %s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// SyncService pushes the local user's position and pulls everyone
// else's. Dependencies are injected; there is no ambient store handle.
type SyncService struct {
	db  *gorm.DB
	bus realtime.Bus
}

func NewSyncService(db *gorm.DB, bus realtime.Bus) *SyncService {
	return &SyncService{db: db, bus: bus}
}

// PushOwnLocation upserts the user's location row keyed by user_id,
// stamping updated_at with the call time. Concurrent pushes for the
// same user are last-write-wins by updated_at. After a successful
// write a change notification is published; publish failures are
// logged only, the next pull cycle self-corrects.
func (s *SyncService) PushOwnLocation(ctx context.Context, userID string, pos model.Position) error {
	row := model.UserLocation{
		UserID:    userID,
		Latitude:  pos.Latitude,
		Longitude: pos.Longitude,
		UpdatedAt: time.Now(),
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"latitude", "longitude", "updated_at"}),
	}).Create(&row)

	if result.Error != nil {
		return &BackendError{Op: "push location", Err: result.Error}
	}

	if err := s.bus.Publish(ctx, model.UserLocation{}.TableName()); err != nil {
		log.Printf("Failed to publish location change: %v", err)
	}

	return nil
}

// peerRow is the shape of one joined location+profile row as it comes
// back from the store.
type peerRow struct {
	UserID    string
	Latitude  float64
	Longitude float64
	UpdatedAt time.Time
	FullName  *string
	AvatarURL *string
}

// PullOtherUsers fetches every other user's location joined with
// profile display data, reduced to one row per user (the one with the
// maximum updated_at). With no authenticated identity it silently
// returns an empty list rather than failing.
func (s *SyncService) PullOtherUsers(ctx context.Context, excludeUserID string) ([]model.PeerView, error) {
	if excludeUserID == "" {
		return []model.PeerView{}, nil
	}

	var rows []peerRow
	result := s.db.WithContext(ctx).
		Table("user_locations").
		Select("user_locations.user_id, user_locations.latitude, user_locations.longitude, user_locations.updated_at, profiles.full_name, profiles.avatar_url").
		Joins("LEFT JOIN profiles ON profiles.id = user_locations.user_id").
		Where("user_locations.user_id <> ?", excludeUserID).
		Order("user_locations.updated_at DESC").
		Scan(&rows)

	if result.Error != nil {
		return nil, &BackendError{Op: "pull locations", Err: result.Error}
	}

	return reduceLatest(rows), nil
}

// reduceLatest keeps the first row seen per user. Rows arrive ordered
// by updated_at descending, so the survivor is the most recent one
// even if the store returns historical rows for a user.
func reduceLatest(rows []peerRow) []model.PeerView {
	peers := make([]model.PeerView, 0, len(rows))
	seen := make(map[string]bool, len(rows))

	for _, row := range rows {
		if seen[row.UserID] {
			continue
		}
		seen[row.UserID] = true
		peers = append(peers, model.PeerView{
			UserID:    row.UserID,
			Latitude:  row.Latitude,
			Longitude: row.Longitude,
			UpdatedAt: row.UpdatedAt,
			FullName:  row.FullName,
			AvatarURL: row.AvatarURL,
		})
	}

	return peers
}

// ListUsers returns the full directory: every profile ordered by name,
// each with its latest known location or none.
func (s *SyncService) ListUsers(ctx context.Context) ([]model.UserInfo, error) {
	var profiles []model.Profile
	result := s.db.WithContext(ctx).Order("full_name").Find(&profiles)
	if result.Error != nil {
		return nil, &BackendError{Op: "list profiles", Err: result.Error}
	}

	var locations []model.UserLocation
	result = s.db.WithContext(ctx).Find(&locations)
	if result.Error != nil {
		return nil, &BackendError{Op: "list locations", Err: result.Error}
	}

	latest := make(map[string]model.UserLocation, len(locations))
	for _, loc := range locations {
		if existing, ok := latest[loc.UserID]; !ok || loc.UpdatedAt.After(existing.UpdatedAt) {
			latest[loc.UserID] = loc
		}
	}

	users := make([]model.UserInfo, 0, len(profiles))
	for _, p := range profiles {
		info := model.UserInfo{
			ID:        p.ID,
			FullName:  p.FullName,
			Phone:     p.Phone,
			AvatarURL: p.AvatarURL,
		}
		if loc, ok := latest[p.ID]; ok {
			l := loc
			info.Location = &l
		}
		users = append(users, info)
	}

	return users, nil
}
