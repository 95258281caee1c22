package model

// DayPlan is the ranked, capped session list for one day.
type DayPlan struct {
	Day      string          `json:"day"`
	DayName  string          `json:"day_name,omitempty"`
	Theme    string          `json:"theme,omitempty"`
	Sessions []ScoredSession `json:"sessions"`
}

// Itinerary holds one DayPlan per requested day in request order.
type Itinerary struct {
	Days []DayPlan `json:"days"`
}

// Day returns the sessions planned for day, or an empty slice when the day is absent.
func (it Itinerary) Day(day string) []ScoredSession {
	for _, d := range it.Days {
		if d.Day == day {
			return d.Sessions
		}
	}
	return []ScoredSession{}
}

// SessionCount returns the number of sessions over all days.
func (it Itinerary) SessionCount() int {
	n := 0
	for _, d := range it.Days {
		n += len(d.Sessions)
	}
	return n
}
