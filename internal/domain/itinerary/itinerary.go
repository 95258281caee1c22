// Package itinerary assembles ranked, capped daily plans from scored sessions.
package itinerary

import (
	"slices"

	"github.com/okian/summit/internal/domain/model"
)

// DefaultLimit is the number of sessions kept per day.
const DefaultLimit = 5

// Catalog supplies the sessions of each day.
type Catalog interface {
	// Day returns the sessions of one day; ok is false for unknown days.
	Day(id string) (model.Day, bool)
	// DayIDs returns every day in catalog order.
	DayIDs() []string
}

// Scorer scores one session for a profile.
type Scorer interface {
	Score(session model.Session, profile model.Profile) model.ScoredSession
}

// Option applies a configuration option to the Planner.
type Option func(*Planner)

// WithLimit sets how many sessions are kept per day.
func WithLimit(k int) Option {
	return func(p *Planner) {
		if k > 0 {
			p.limit = k
		}
	}
}

// Planner builds itineraries. It is stateless between calls.
type Planner struct {
	catalog Catalog
	scorer  Scorer
	limit   int
}

// New creates a Planner over a catalog and scorer.
func New(catalog Catalog, scorer Scorer, opts ...Option) *Planner {
	p := &Planner{catalog: catalog, scorer: scorer, limit: DefaultLimit}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Generate is a shorthand for New(catalog, scorer).Generate(profile).
func Generate(catalog Catalog, scorer Scorer, profile model.Profile) model.Itinerary {
	return New(catalog, scorer).Generate(profile)
}

// Limit returns the per-day cap.
func (p *Planner) Limit() int { return p.limit }

// Generate scores the requested days and keeps the top sessions of each.
// Unknown days yield an empty plan.
func (p *Planner) Generate(profile model.Profile) model.Itinerary {
	days := p.requestedDays(profile)
	it := model.Itinerary{Days: make([]model.DayPlan, 0, len(days))}
	for _, id := range days {
		it.Days = append(it.Days, p.planDay(id, profile))
	}
	return it
}

// PlanDay ranks a single day.
func (p *Planner) PlanDay(id string, profile model.Profile) model.DayPlan {
	return p.planDay(id, profile)
}

func (p *Planner) planDay(id string, profile model.Profile) model.DayPlan {
	plan := model.DayPlan{Day: id, Sessions: []model.ScoredSession{}}
	day, ok := p.catalog.Day(id)
	if !ok {
		return plan
	}
	plan.DayName = day.Name
	plan.Theme = day.Theme

	scored := make([]model.ScoredSession, 0, len(day.Sessions))
	for _, s := range day.Sessions {
		out := p.scorer.Score(s, profile)
		out.Date = id
		out.DayName = day.Name
		out.Theme = day.Theme
		scored = append(scored, out)
	}

	// Stable so equal scores keep catalog order.
	slices.SortStableFunc(scored, func(a, b model.ScoredSession) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	if len(scored) > p.limit {
		scored = scored[:p.limit]
	}
	plan.Sessions = scored
	return plan
}

func (p *Planner) requestedDays(profile model.Profile) []string {
	days := profile.Days
	if len(days) == 0 {
		days = p.catalog.DayIDs()
	}
	seen := make(map[string]struct{}, len(days))
	out := make([]string, 0, len(days))
	for _, d := range days {
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}
