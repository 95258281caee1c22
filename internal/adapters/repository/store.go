// Package repository stores itineraries shared to the community board.
package repository

import (
	"context"
	"time"
)

// Share limits applied when an itinerary is published.
const (
	MaxSharedInterests   = 5
	MaxSharedGoals       = 3
	MaxSharedSessionsDay = 3
	DefaultRecentLimit   = 10
)

// SharedSession is the public part of one itinerary slot.
type SharedSession struct {
	Title string `json:"title"`
	Time  string `json:"time"`
}

// SharedDay is one day of a shared itinerary.
type SharedDay struct {
	Day      string          `json:"day"`
	Sessions []SharedSession `json:"sessions"`
}

// Share is a published itinerary.
type Share struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Bio         string      `json:"bio,omitempty"`
	Proficiency string      `json:"proficiency"`
	Interests   []string    `json:"interests"`
	Goals       []string    `json:"goals"`
	Days        []SharedDay `json:"days"`
	SharedAt    time.Time   `json:"shared_at"`
}

// Store provides read/write access to shared itineraries.
type Store interface {
	// Save publishes a share. Returns ErrDuplicateID if the id is taken.
	Save(ctx context.Context, s Share) error

	// Get returns a share by id.
	// Returns ErrNotFound if the id is unknown.
	Get(ctx context.Context, id string) (Share, error)

	// Recent returns up to n shares newest first, keeping only those whose
	// proficiency equals the filter case-insensitively when it is not empty.
	Recent(ctx context.Context, n int, proficiency string) ([]Share, error)

	// Count returns the number of stored shares.
	Count(ctx context.Context) int

	Close() error
}
