// Package model contains domain models passed between layers.
package model

import "slices"

// Level is a session difficulty or an attendee proficiency.
type Level string

// Known levels. LevelAll only applies to sessions.
const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelAll          Level = "all"
)

// Session is a catalog record. It is source truth and never written by the engine.
type Session struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description"`
	Topics      []string `json:"topics,omitempty" yaml:"topics"`
	Speakers    []string `json:"speakers,omitempty" yaml:"speakers"`
	Level       Level    `json:"level,omitempty" yaml:"level"`
	Time        string   `json:"time,omitempty" yaml:"time"`
	Venue       string   `json:"venue,omitempty" yaml:"venue"`
	Hall        string   `json:"hall,omitempty" yaml:"hall"`
}

// EffectiveLevel returns the session level, defaulting to LevelAll.
func (s Session) EffectiveLevel() Level {
	if s.Level == "" {
		return LevelAll
	}
	return s.Level
}

// Clone returns a deep copy so callers can annotate it freely.
func (s Session) Clone() Session {
	s.Topics = slices.Clone(s.Topics)
	s.Speakers = slices.Clone(s.Speakers)
	return s
}

// ScoredSession is a copy of a Session annotated with fields derived for one profile.
type ScoredSession struct {
	Session

	Score         float64 `json:"score"`
	IsVIP         bool    `json:"is_vip"`
	NetworkingROI float64 `json:"networking_roi"`
	LearningValue float64 `json:"learning_value"`
	PMRelevance   float64 `json:"pm_relevance"`
	TechRelevance float64 `json:"tech_relevance"`

	// Day the session was scored under.
	Date    string `json:"date,omitempty"`
	DayName string `json:"day_name,omitempty"`
	Theme   string `json:"theme,omitempty"`
}

// Day groups the sessions of one conference day.
type Day struct {
	ID       string
	Name     string
	Theme    string
	Sessions []Session
}
