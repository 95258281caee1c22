// Package profile turns a multi-step intake into a frozen model.Profile.
package profile

import (
	"slices"
	"strings"

	"github.com/okian/summit/internal/domain/model"
	"github.com/okian/summit/internal/domain/registry"
)

// Step is a stage of the intake flow.
type Step int

// Intake steps in order.
const (
	StepAbout Step = iota
	StepInterests
	StepDays
	StepDone
)

func (s Step) String() string {
	switch s {
	case StepAbout:
		return "about"
	case StepInterests:
		return "interests"
	case StepDays:
		return "days"
	case StepDone:
		return "done"
	default:
		return "unknown"
	}
}

// About holds the first intake step.
type About struct {
	Name        string
	Bio         string
	Role        string
	Proficiency model.Level
}

// Builder accumulates intake answers. It is owned by one caller and not safe
// for concurrent use.
type Builder struct {
	step       Step
	about      About
	categories []string
	interests  []string
	goals      []string
	days       []string
}

// NewBuilder starts an intake at StepAbout.
func NewBuilder() *Builder {
	return &Builder{step: StepAbout}
}

// Step returns the current step.
func (b *Builder) Step() Step { return b.step }

// SetAbout records the attendee and moves to StepInterests.
func (b *Builder) SetAbout(a About) error {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return ErrNameRequired
	}
	b.about = a
	b.advance(StepInterests)
	return nil
}

// SetInterests records interest categories, extra tags and goals and moves to StepDays.
func (b *Builder) SetInterests(categories, tags, goals []string) error {
	if b.step < StepInterests {
		return ErrStepOrder
	}
	b.categories = slices.Clone(categories)
	b.interests = slices.Clone(tags)
	b.goals = slices.Clone(goals)
	b.advance(StepDays)
	return nil
}

// SetDays records attendance days and moves to StepDone.
func (b *Builder) SetDays(days []string) error {
	if b.step < StepDays {
		return ErrStepOrder
	}
	b.days = slices.Clone(days)
	b.advance(StepDone)
	return nil
}

// Back returns to the previous step keeping the answers given so far.
func (b *Builder) Back() {
	if b.step > StepAbout {
		b.step--
	}
}

// Reset discards all answers.
func (b *Builder) Reset() {
	*b = Builder{step: StepAbout}
}

// Build freezes the answers into a Profile with defaults applied.
func (b *Builder) Build() (model.Profile, error) {
	if b.step != StepDone {
		return model.Profile{}, ErrIncomplete
	}
	interests := append(registry.FlattenInterests(b.categories), b.interests...)
	return Normalize(model.Profile{
		Name:        b.about.Name,
		Bio:         b.about.Bio,
		Role:        b.about.Role,
		Proficiency: b.about.Proficiency,
		Interests:   interests,
		Goals:       b.goals,
		Days:        b.days,
	}), nil
}

func (b *Builder) advance(to Step) {
	if to > b.step {
		b.step = to
	}
}

// Normalize returns a copy of p with sentinel defaults for empty selections
// and duplicates removed.
func Normalize(p model.Profile) model.Profile {
	p.Name = strings.TrimSpace(p.Name)
	if p.Proficiency == "" {
		p.Proficiency = model.LevelIntermediate
	}
	p.Proficiency = model.Level(strings.ToLower(string(p.Proficiency)))

	p.Interests = uniq(p.Interests)
	if len(p.Interests) == 0 {
		p.Interests = []string{registry.GeneralInterest}
	}
	p.Goals = uniq(p.Goals)
	if len(p.Goals) == 0 {
		p.Goals = []string{registry.GoalLearning}
	}
	p.Days = uniq(p.Days)
	if len(p.Days) == 0 {
		p.Days = registry.DayIDs()
	}
	return p
}

func uniq(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
