package model

import (
	"time"
)

// Position is a WGS84 coordinate pair. Values are passed through
// uninterpreted; callers do not validate ranges.
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// UserLocation is the persisted last-known position of a user.
// One row per user, keyed by UserID; concurrent writes are
// last-write-wins by UpdatedAt.
type UserLocation struct {
	UserID    string    `json:"user_id" gorm:"primaryKey;size:64"`
	Latitude  float64   `json:"latitude" gorm:"not null"`
	Longitude float64   `json:"longitude" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;index"`
}

// TableName keeps the table name aligned with the realtime channel name.
func (UserLocation) TableName() string {
	return "user_locations"
}

// Profile holds the display data owned by the account entity.
// Nullable columns map to pointers.
type Profile struct {
	ID        string  `json:"id" gorm:"primaryKey;size:64"`
	FullName  *string `json:"full_name" gorm:"size:255"`
	Phone     *string `json:"phone" gorm:"size:32"`
	AvatarURL *string `json:"avatar_url" gorm:"type:text"`
}

func (Profile) TableName() string {
	return "profiles"
}

// PeerView is a location row joined with profile display data,
// produced on every pull cycle and never cached beyond the current
// in-memory list.
type PeerView struct {
	UserID    string    `json:"user_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	UpdatedAt time.Time `json:"updated_at"`
	FullName  *string   `json:"full_name"`
	AvatarURL *string   `json:"avatar_url"`

	// DistanceKm from the local user's position, filled in for display.
	DistanceKm float64 `json:"distance_km"`
}

// Position returns the peer's coordinates as a Position.
func (p *PeerView) Position() Position {
	return Position{Latitude: p.Latitude, Longitude: p.Longitude}
}

// UserInfo is a directory entry: a profile with its latest known
// location, if any.
type UserInfo struct {
	ID        string        `json:"id"`
	FullName  *string       `json:"full_name"`
	Phone     *string       `json:"phone"`
	AvatarURL *string       `json:"avatar_url"`
	Location  *UserLocation `json:"location"`
}
