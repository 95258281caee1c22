// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers a YAML file and environment variables on top of the defaults.
// - Errors are wrapped with this package's sentinels.
package config

import (
	"context"
	"fmt"
	"time"
)

// GoalRule configures an extra keyword rule for a goal.
type GoalRule struct {
	Name        string   `koanf:"name"`
	Goal        string   `koanf:"goal"`
	Keywords    []string `koanf:"keywords"`
	Score       float64  `koanf:"score"`
	Side        float64  `koanf:"side"`
	Accumulator string   `koanf:"accumulator"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// ShutdownTimeout bounds graceful HTTP shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// CatalogPath points at an event catalog JSON file. Empty uses the bundled catalog.
	CatalogPath string `koanf:"catalog_path"`

	// CommunityDBPath stores shared itineraries in SQLite. Empty keeps them in memory.
	CommunityDBPath string `koanf:"community_db_path"`

	// CommunityMaxEntries caps the in-memory community board.
	CommunityMaxEntries int `koanf:"community_max_entries"`

	// CommunityListLimit is the default page size of GET /v1/community.
	CommunityListLimit int `koanf:"community_list_limit"`

	// MaxCommunityLimit caps GET /v1/community?limit.
	MaxCommunityLimit int `koanf:"max_community_limit"`

	// ShareDedupeSize bounds the number of remembered Idempotency-Key values.
	ShareDedupeSize int `koanf:"share_dedupe_size"`

	// ItineraryLimit is the number of sessions kept per day.
	ItineraryLimit int `koanf:"itinerary_limit"`

	// MaxBatchProfiles caps POST /v1/itinerary/batch.
	MaxBatchProfiles int `koanf:"max_batch_profiles"`

	// BatchConcurrency bounds parallel itinerary generation in a batch.
	BatchConcurrency int `koanf:"batch_concurrency"`

	// SpeakerBonus is the flat bonus for sessions with speakers.
	SpeakerBonus float64 `koanf:"speaker_bonus"`

	// FuzzyTopicMatch enables substring topic overlap scoring.
	FuzzyTopicMatch bool `koanf:"fuzzy_topic_match"`

	// VIPStructuralRule flags advanced sessions with speakers as VIP.
	VIPStructuralRule bool `koanf:"vip_structural_rule"`

	// GoalRules adds keyword rules for goals beyond networking and learning.
	GoalRules []GoalRule `koanf:"goal_rules"`
}

// New creates a Config with defaults. The context is reserved for loaders
// that need it and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":9080",
		ShutdownTimeout:     30 * time.Second,
		CommunityMaxEntries: 10_000,
		CommunityListLimit:  10,
		MaxCommunityLimit:   100,
		ShareDedupeSize:     10_000,
		ItineraryLimit:      5,
		MaxBatchProfiles:    50,
		BatchConcurrency:    8,
		SpeakerBonus:        1.5,
		FuzzyTopicMatch:     false,
		VIPStructuralRule:   true,
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: log_format must be text or json", ErrInvalidConfig)
	case c.ItineraryLimit <= 0:
		return fmt.Errorf("%w: itinerary_limit must be positive", ErrInvalidConfig)
	case c.CommunityListLimit <= 0 || c.MaxCommunityLimit < c.CommunityListLimit:
		return fmt.Errorf("%w: community_list_limit must be positive and at most max_community_limit", ErrInvalidConfig)
	case c.MaxBatchProfiles <= 0:
		return fmt.Errorf("%w: max_batch_profiles must be positive", ErrInvalidConfig)
	case c.BatchConcurrency <= 0:
		return fmt.Errorf("%w: batch_concurrency must be positive", ErrInvalidConfig)
	case c.SpeakerBonus < 0:
		return fmt.Errorf("%w: speaker_bonus must not be negative", ErrInvalidConfig)
	}
	for i, r := range c.GoalRules {
		if r.Goal == "" || len(r.Keywords) == 0 {
			return fmt.Errorf("%w: goal_rules[%d] needs a goal and keywords", ErrInvalidConfig, i)
		}
	}
	return nil
}
