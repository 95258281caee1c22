// Package scoring computes the relevance of a conference session for an attendee profile.
//
// Scores are additive and never normalized. Every term only adds, so a match can
// never lower a score.
package scoring

import (
	"strings"

	"github.com/okian/summit/internal/domain/model"
	"github.com/okian/summit/internal/domain/registry"
)

// Default scoring constants.
const (
	levelAllPoints        = 3.0
	levelExactPoints      = 5.0
	levelIntermediateBase = 2.0
	levelAdjacentPoints   = 3.0

	topicExactPoints   = 4.0
	topicExactLearning = 2.0
	topicFuzzyPoints   = 1.5
	topicFuzzyLearning = 1.0

	keywordPoints = 2.0

	defaultSpeakerBonus = 1.5
	speakerPresenceROI  = 2.0
	celebrityPoints     = 5.0
	celebrityROI        = 5.0
	structuralVIPPoints = 3.0
)

// DefaultCelebrities are the keynote names that mark a session VIP.
var DefaultCelebrities = []string{"sundar", "sam altman", "jensen", "demis", "yann", "dario", "satya"}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithFuzzyTopics enables substring overlap between topics and interests.
func WithFuzzyTopics(enabled bool) Option {
	return func(s *Scorer) { s.fuzzyTopics = enabled }
}

// WithStructuralVIP toggles the advanced-with-speakers VIP rule.
func WithStructuralVIP(enabled bool) Option {
	return func(s *Scorer) { s.structuralVIP = enabled }
}

// WithSpeakerBonus sets the flat bonus for sessions with at least one speaker.
func WithSpeakerBonus(bonus float64) Option {
	return func(s *Scorer) {
		if bonus >= 0 {
			s.speakerBonus = bonus
		}
	}
}

// WithCelebrities replaces the keynote allow-list.
func WithCelebrities(names []string) Option {
	return func(s *Scorer) {
		s.celebrities = lowerAll(names)
	}
}

// WithRoles replaces the role table used for role keyword rules.
func WithRoles(roles []registry.Role) Option {
	return func(s *Scorer) {
		s.roles = make(map[string]registry.Role, len(roles))
		for _, r := range roles {
			s.roles[r.ID] = r
		}
	}
}

// WithGoalRules appends goal rules to the default ones.
func WithGoalRules(rules ...KeywordRule) Option {
	return func(s *Scorer) {
		for _, r := range rules {
			r.Keywords = lowerAll(r.Keywords)
			s.goalRules = append(s.goalRules, r)
		}
	}
}

// Scorer scores sessions against profiles. It holds no mutable state after
// construction and is safe for concurrent use.
type Scorer struct {
	goalRules     []KeywordRule
	roles         map[string]registry.Role
	celebrities   []string
	speakerBonus  float64
	fuzzyTopics   bool
	structuralVIP bool
}

// New creates a Scorer with the default rule table.
func New(opts ...Option) *Scorer {
	s := &Scorer{
		goalRules:     DefaultGoalRules(),
		celebrities:   lowerAll(DefaultCelebrities),
		speakerBonus:  defaultSpeakerBonus,
		structuralVIP: true,
	}
	WithRoles(registry.Roles())(s)

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score returns an annotated copy of the session. The input session is not modified.
func (s *Scorer) Score(session model.Session, profile model.Profile) model.ScoredSession {
	out := model.ScoredSession{Session: session.Clone()}

	out.Score += levelPoints(out.EffectiveLevel(), profile.EffectiveProficiency())
	s.scoreTopics(&out, profile)

	text := strings.ToLower(out.Title + " " + out.Description)
	for _, rule := range s.rulesFor(profile) {
		rule.apply(&out, text)
	}

	s.scoreSpeakers(&out)

	if s.structuralVIP && out.EffectiveLevel() == model.LevelAdvanced && len(out.Speakers) > 0 {
		out.IsVIP = true
		out.Score += structuralVIPPoints
	}
	return out
}

func levelPoints(level, proficiency model.Level) float64 {
	switch {
	case level == model.LevelAll:
		return levelAllPoints
	case level == proficiency:
		return levelExactPoints
	case proficiency == model.LevelIntermediate:
		return levelIntermediateBase
	case proficiency == model.LevelAdvanced && level == model.LevelIntermediate:
		return levelAdjacentPoints
	default:
		return 0
	}
}

func (s *Scorer) scoreTopics(out *model.ScoredSession, profile model.Profile) {
	interests := profile.InterestSet()
	seen := make(map[string]struct{}, len(out.Topics))
	for _, topic := range out.Topics {
		if _, dup := seen[topic]; dup {
			continue
		}
		seen[topic] = struct{}{}
		if _, ok := interests[topic]; ok {
			out.Score += topicExactPoints
			out.LearningValue += topicExactLearning
			continue
		}
		if !s.fuzzyTopics {
			continue
		}
		t := strings.ToLower(topic)
		for interest := range interests {
			in := strings.ToLower(interest)
			if t == "" || in == "" {
				continue
			}
			if strings.Contains(t, in) || strings.Contains(in, t) {
				out.Score += topicFuzzyPoints
				out.LearningValue += topicFuzzyLearning
			}
		}
	}
}

func (s *Scorer) scoreSpeakers(out *model.ScoredSession) {
	if len(out.Speakers) == 0 {
		return
	}
	out.Score += s.speakerBonus
	out.NetworkingROI += speakerPresenceROI

	for _, speaker := range out.Speakers {
		name := strings.ToLower(speaker)
		for _, celeb := range s.celebrities {
			if celeb != "" && strings.Contains(name, celeb) {
				out.Score += celebrityPoints
				out.NetworkingROI += celebrityROI
				out.IsVIP = true
				break
			}
		}
	}
}

// rulesFor selects the goal rules the profile opted into plus its role rule.
func (s *Scorer) rulesFor(profile model.Profile) []KeywordRule {
	rules := make([]KeywordRule, 0, len(s.goalRules)+1)
	for _, r := range s.goalRules {
		if profile.HasGoal(r.Goal) {
			rules = append(rules, r)
		}
	}
	if role, ok := s.roles[profile.Role]; ok {
		rules = append(rules, roleRule(role))
	}
	return rules
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		out = append(out, strings.ToLower(strings.TrimSpace(v)))
	}
	return out
}
