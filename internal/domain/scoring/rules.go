package scoring

import (
	"fmt"
	"strings"

	"github.com/okian/summit/internal/domain/model"
	"github.com/okian/summit/internal/domain/registry"
)

// Accumulator names a side-channel field a keyword rule feeds.
type Accumulator string

// Known accumulators. AccumulatorNone only adds to the score.
const (
	AccumulatorNone       Accumulator = ""
	AccumulatorNetworking Accumulator = "networking_roi"
	AccumulatorLearning   Accumulator = "learning_value"
	AccumulatorPM         Accumulator = "pm_relevance"
	AccumulatorTech       Accumulator = "tech_relevance"
)

// ParseAccumulator maps a configuration string to an Accumulator.
func ParseAccumulator(v string) (Accumulator, error) {
	switch a := Accumulator(strings.ToLower(strings.TrimSpace(v))); a {
	case AccumulatorNone, AccumulatorNetworking, AccumulatorLearning, AccumulatorPM, AccumulatorTech:
		return a, nil
	default:
		return AccumulatorNone, fmt.Errorf("%w: %q", ErrUnknownAccumulator, v)
	}
}

// KeywordRule adds ScoreDelta to the score and SideDelta to Accumulator for
// every keyword found in a session's title and description.
type KeywordRule struct {
	Name        string
	Goal        string
	Keywords    []string
	ScoreDelta  float64
	SideDelta   float64
	Accumulator Accumulator
}

// DefaultGoalRules returns the built-in networking and learning rules.
func DefaultGoalRules() []KeywordRule {
	return []KeywordRule{
		{
			Name:        "networking",
			Goal:        registry.GoalNetworking,
			Keywords:    []string{"networking", "leaders", "ceo", "roundtable", "connect", "meet"},
			ScoreDelta:  keywordPoints,
			SideDelta:   3.0,
			Accumulator: AccumulatorNetworking,
		},
		{
			Name:        "learning",
			Goal:        registry.GoalLearning,
			Keywords:    []string{"workshop", "tutorial", "deep-dive", "technical", "hands-on"},
			ScoreDelta:  keywordPoints,
			SideDelta:   2.0,
			Accumulator: AccumulatorLearning,
		},
	}
}

func roleRule(role registry.Role) KeywordRule {
	r := KeywordRule{
		Name:       "role:" + role.ID,
		Keywords:   lowerAll(role.Keywords),
		ScoreDelta: keywordPoints,
		SideDelta:  keywordPoints,
	}
	switch role.Category {
	case registry.CategoryProduct:
		r.Accumulator = AccumulatorPM
	case registry.CategoryTechnical:
		r.Accumulator = AccumulatorTech
	default:
		r.SideDelta = 0
	}
	return r
}

// apply folds the rule over text, which must already be lower-cased.
func (r KeywordRule) apply(out *model.ScoredSession, text string) {
	for _, kw := range r.Keywords {
		if kw == "" || !strings.Contains(text, kw) {
			continue
		}
		out.Score += r.ScoreDelta
		switch r.Accumulator {
		case AccumulatorNetworking:
			out.NetworkingROI += r.SideDelta
		case AccumulatorLearning:
			out.LearningValue += r.SideDelta
		case AccumulatorPM:
			out.PMRelevance += r.SideDelta
		case AccumulatorTech:
			out.TechRelevance += r.SideDelta
		case AccumulatorNone:
		}
	}
}
