// Package types contains response shapes and presentation hints shared by the
// HTTP layer and the CLI.
package types

import (
	"math"

	"github.com/okian/summit/internal/domain/model"
)

// MatchTier buckets a score for display.
type MatchTier string

// Match tiers.
const (
	TierHigh     MatchTier = "high"
	TierGood     MatchTier = "good"
	TierRelevant MatchTier = "relevant"
)

const (
	highTierAbove       = 12.0
	goodTierAbove       = 6.0
	highROIAbove        = 3.0
	progressFullAtScore = 20.0
)

// Tier returns the match tier of a score.
func Tier(score float64) MatchTier {
	switch {
	case score > highTierAbove:
		return TierHigh
	case score > goodTierAbove:
		return TierGood
	default:
		return TierRelevant
	}
}

// Progress maps a score onto [0, 1] for progress bars.
func Progress(score float64) float64 {
	return math.Max(0, math.Min(score/progressFullAtScore, 1))
}

// SessionView is a scored session with display hints.
type SessionView struct {
	model.ScoredSession

	MatchTier         MatchTier `json:"match_tier"`
	HighNetworkingROI bool      `json:"high_networking_roi"`
	Progress          float64   `json:"progress"`
}

// NewSessionView annotates a scored session.
func NewSessionView(s model.ScoredSession) SessionView {
	return SessionView{
		ScoredSession:     s,
		MatchTier:         Tier(s.Score),
		HighNetworkingROI: s.NetworkingROI > highROIAbove,
		Progress:          Progress(s.Score),
	}
}

// DayView is one day of an itinerary response.
type DayView struct {
	Day      string        `json:"day"`
	DayName  string        `json:"day_name,omitempty"`
	Theme    string        `json:"theme,omitempty"`
	Sessions []SessionView `json:"sessions"`
}

// ItineraryResponse is returned by the itinerary endpoints.
type ItineraryResponse struct {
	Name         string    `json:"name,omitempty"`
	Days         []DayView `json:"days"`
	SessionCount int       `json:"session_count"`
	VIPCount     int       `json:"vip_count"`
}

// NewItineraryResponse builds the response for an itinerary.
func NewItineraryResponse(name string, it model.Itinerary) ItineraryResponse {
	resp := ItineraryResponse{Name: name, Days: make([]DayView, 0, len(it.Days))}
	for _, d := range it.Days {
		view := DayView{Day: d.Day, DayName: d.DayName, Theme: d.Theme, Sessions: make([]SessionView, 0, len(d.Sessions))}
		for _, s := range d.Sessions {
			view.Sessions = append(view.Sessions, NewSessionView(s))
			if s.IsVIP {
				resp.VIPCount++
			}
		}
		resp.SessionCount += len(d.Sessions)
		resp.Days = append(resp.Days, view)
	}
	return resp
}

// DaySummary lists a catalog day.
type DaySummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Theme        string `json:"theme"`
	SessionCount int    `json:"session_count"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
