package model

import "slices"

// Profile is a frozen attendee profile handed to the engine.
type Profile struct {
	Name        string   `json:"name" yaml:"name"`
	Bio         string   `json:"bio,omitempty" yaml:"bio"`
	Role        string   `json:"role,omitempty" yaml:"role"`
	Proficiency Level    `json:"proficiency,omitempty" yaml:"proficiency"`
	Interests   []string `json:"interests,omitempty" yaml:"interests"`
	Goals       []string `json:"goals,omitempty" yaml:"goals"`
	Days        []string `json:"days,omitempty" yaml:"days"`
}

// EffectiveProficiency returns the proficiency, defaulting to LevelIntermediate.
func (p Profile) EffectiveProficiency() Level {
	if p.Proficiency == "" {
		return LevelIntermediate
	}
	return p.Proficiency
}

// HasGoal reports whether goal is among the profile goals.
func (p Profile) HasGoal(goal string) bool {
	return slices.Contains(p.Goals, goal)
}

// InterestSet returns the interests as a set.
func (p Profile) InterestSet() map[string]struct{} {
	set := make(map[string]struct{}, len(p.Interests))
	for _, in := range p.Interests {
		set[in] = struct{}{}
	}
	return set
}
