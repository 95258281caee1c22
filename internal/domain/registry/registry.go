// Package registry holds the closed vocabularies used during profile intake:
// event days, attendee roles, interest categories and goals.
package registry

import "slices"

// DayInfo describes one event day.
type DayInfo struct {
	ID    string `json:"id"`
	Short string `json:"short"`
	Name  string `json:"name"`
	Theme string `json:"theme"`
}

// RoleCategory decides which relevance accumulator a role's keywords feed.
type RoleCategory string

// Role categories.
const (
	CategoryProduct   RoleCategory = "product"
	CategoryTechnical RoleCategory = "technical"
	CategoryGeneral   RoleCategory = "general"
)

// Role is an attendee role with the keywords that mark a session as relevant to it.
type Role struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Category RoleCategory `json:"category"`
	Keywords []string     `json:"keywords"`
}

// InterestCategory groups topic tags under a display name.
type InterestCategory struct {
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

// Goal is an attendee goal.
type Goal struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Goal identifiers with scoring rules attached.
const (
	GoalNetworking = "networking"
	GoalLearning   = "learning"
)

// GeneralInterest is the sentinel interest used when none is selected.
const GeneralInterest = "general"

var days = []DayInfo{
	{ID: "2026-02-16", Short: "Feb 16", Name: "Monday", Theme: "Expo Launch & Inauguration"},
	{ID: "2026-02-17", Short: "Feb 17", Name: "Tuesday", Theme: "Sectoral Deep Dives"},
	{ID: "2026-02-18", Short: "Feb 18", Name: "Wednesday", Theme: "Research & Innovation"},
	{ID: "2026-02-19", Short: "Feb 19", Name: "Thursday", Theme: "Summit Opening & CEOs"},
	{ID: "2026-02-20", Short: "Feb 20", Name: "Friday", Theme: "Global Cooperation"},
}

var roles = []Role{
	{ID: "engineer", Name: "Tech Professional / Engineer", Category: CategoryTechnical,
		Keywords: []string{"engineering", "architecture", "infrastructure", "open-source", "code", "deployment"}},
	{ID: "founder", Name: "Startup Founder / Entrepreneur", Category: CategoryProduct,
		Keywords: []string{"startup", "founder", "funding", "scale", "product", "market"}},
	{ID: "researcher", Name: "Researcher / Academic", Category: CategoryTechnical,
		Keywords: []string{"research", "paper", "benchmark", "model", "science", "frontier"}},
	{ID: "policy", Name: "Policy Maker / Government", Category: CategoryGeneral,
		Keywords: []string{"policy", "governance", "regulation", "public", "sovereign", "framework"}},
	{ID: "investor", Name: "Investor / VC", Category: CategoryProduct,
		Keywords: []string{"investment", "funding", "venture", "pitch", "startup", "capital"}},
	{ID: "student", Name: "Student / Early Career", Category: CategoryTechnical,
		Keywords: []string{"career", "skills", "hackathon", "beginner", "mentorship", "tutorial"}},
	{ID: "executive", Name: "Business Executive / Leader", Category: CategoryProduct,
		Keywords: []string{"enterprise", "strategy", "transformation", "adoption", "roi", "leadership"}},
	{ID: "product-manager", Name: "Product Manager", Category: CategoryProduct,
		Keywords: []string{"product", "roadmap", "user", "adoption", "design", "launch"}},
	{ID: "consultant", Name: "Consultant / Advisor", Category: CategoryGeneral,
		Keywords: []string{"strategy", "case study", "industry", "adoption", "transformation"}},
}

var interests = []InterestCategory{
	{Name: "Generative AI & LLMs", Tags: []string{"genai", "llm", "foundation-models", "chatgpt"}},
	{Name: "AI Safety & Ethics", Tags: []string{"ai-safety", "alignment", "responsible-ai", "ethics"}},
	{Name: "Healthcare AI", Tags: []string{"healthcare", "diagnostics", "drug-discovery", "health-equity"}},
	{Name: "Enterprise AI", Tags: []string{"enterprise", "automation", "productivity", "business"}},
	{Name: "Policy & Governance", Tags: []string{"policy", "governance", "regulation", "law"}},
	{Name: "Research & Science", Tags: []string{"research", "academic", "papers", "science"}},
	{Name: "Startups & Innovation", Tags: []string{"startups", "entrepreneurship", "demos", "funding"}},
	{Name: "Education & Skills", Tags: []string{"education", "skills", "learning", "career"}},
	{Name: "Climate & Sustainability", Tags: []string{"climate", "sustainability", "energy", "environment"}},
	{Name: "Hardware & Infrastructure", Tags: []string{"computing", "hardware", "gpu", "infrastructure"}},
}

var goals = []Goal{
	{ID: GoalNetworking, Name: "Maximize Networking Opportunities", Description: "Meet industry leaders and peers"},
	{ID: GoalLearning, Name: "Deep Learning & Skill Building", Description: "Attend technical sessions and workshops"},
	{ID: "strategy", Name: "Strategy & Leadership", Description: "Shape your organization's AI roadmap"},
	{ID: "hiring", Name: "Hiring & Talent", Description: "Find people to grow your team"},
	{ID: "business", Name: "Business & Investment Insights", Description: "Explore partnerships and funding"},
	{ID: "investment", Name: "Investment", Description: "Meet founders and co-investors"},
	{ID: "partnerships", Name: "Partnerships", Description: "Find collaborators across industry and government"},
	{ID: "policy", Name: "Policy & Governance Updates", Description: "Understand regulatory landscape"},
	{ID: "inspiration", Name: "Get Inspired by Innovators", Description: "Hear from visionary speakers"},
	{ID: "demos", Name: "See Cutting-Edge Demos", Description: "Experience latest AI applications"},
}

// Days returns the event days in calendar order.
func Days() []DayInfo { return slices.Clone(days) }

// DayIDs returns the identifiers of all event days in calendar order.
func DayIDs() []string {
	ids := make([]string, len(days))
	for i, d := range days {
		ids[i] = d.ID
	}
	return ids
}

// LookupDay returns the info of a day.
func LookupDay(id string) (DayInfo, bool) {
	i := slices.IndexFunc(days, func(d DayInfo) bool { return d.ID == id })
	if i < 0 {
		return DayInfo{}, false
	}
	return days[i], true
}

// Roles returns the role registry.
func Roles() []Role { return slices.Clone(roles) }

// LookupRole returns a role by id.
func LookupRole(id string) (Role, bool) {
	i := slices.IndexFunc(roles, func(r Role) bool { return r.ID == id })
	if i < 0 {
		return Role{}, false
	}
	return roles[i], true
}

// Interests returns the interest categories in display order.
func Interests() []InterestCategory { return slices.Clone(interests) }

// LookupInterest returns an interest category by display name.
func LookupInterest(name string) (InterestCategory, bool) {
	i := slices.IndexFunc(interests, func(c InterestCategory) bool { return c.Name == name })
	if i < 0 {
		return InterestCategory{}, false
	}
	return interests[i], true
}

// FlattenInterests expands category names into their tags. Unknown categories
// are skipped and duplicate tags collapse to their first occurrence.
func FlattenInterests(categories []string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(categories)*4)
	for _, name := range categories {
		c, ok := LookupInterest(name)
		if !ok {
			continue
		}
		for _, tag := range c.Tags {
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}

// Goals returns the goal vocabulary.
func Goals() []Goal { return slices.Clone(goals) }

// IsGoal reports whether id is a known goal.
func IsGoal(id string) bool {
	return slices.ContainsFunc(goals, func(g Goal) bool { return g.ID == id })
}
