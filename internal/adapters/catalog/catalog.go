// Package catalog loads the static event catalog and serves it read-only.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/goccy/go-json"

	"github.com/okian/summit/internal/domain/model"
)

//go:embed default_catalog.json
var defaultCatalog []byte

// Speaker is a featured speaker.
type Speaker struct {
	Name    string   `json:"name"`
	Title   string   `json:"title"`
	Company string   `json:"company"`
	Topics  []string `json:"topics,omitempty"`
}

// Pavilion is an expo pavilion.
type Pavilion struct {
	Name  string   `json:"name"`
	Focus []string `json:"focus"`
}

type fileDay struct {
	Day      string          `json:"day"`
	Theme    string          `json:"theme"`
	Sessions []model.Session `json:"sessions"`
}

type file struct {
	DailySchedule map[string]fileDay `json:"daily_schedule"`
	Speakers      []Speaker          `json:"speakers"`
	Pavilions     []Pavilion         `json:"expo_pavilions"`
}

// Catalog is an immutable event catalog. It is safe for concurrent readers.
type Catalog struct {
	order     []string
	days      map[string]model.Day
	speakers  []Speaker
	pavilions []Pavilion
}

// Default returns the catalog bundled with the binary.
func Default() (*Catalog, error) {
	return Read(bytes.NewReader(defaultCatalog))
}

// Load reads a catalog file. An empty path loads the bundled catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadCatalog, err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes a catalog document.
func Read(r io.Reader) (*Catalog, error) {
	var doc file
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrLoadCatalog, err)
	}

	c := &Catalog{
		days:      make(map[string]model.Day, len(doc.DailySchedule)),
		speakers:  doc.Speakers,
		pavilions: doc.Pavilions,
	}
	for id, d := range doc.DailySchedule {
		sessions := make([]model.Session, 0, len(d.Sessions))
		for i, s := range d.Sessions {
			ns, err := NormalizeSession(s)
			if err != nil {
				return nil, fmt.Errorf("%w: %s[%d]: %w", ErrLoadCatalog, id, i, err)
			}
			sessions = append(sessions, ns)
		}
		c.days[id] = model.Day{ID: id, Name: d.Day, Theme: d.Theme, Sessions: sessions}
		c.order = append(c.order, id)
	}
	// ISO dates sort chronologically.
	slices.Sort(c.order)
	return c, nil
}

// NormalizeSession trims the title, lowercases the level (defaulting to all)
// and drops repeated topics. It fails with ErrInvalidSession when the title
// is blank or the level is unknown.
func NormalizeSession(s model.Session) (model.Session, error) {
	s.Title = strings.TrimSpace(s.Title)
	if s.Title == "" {
		return s, fmt.Errorf("%w: missing title", ErrInvalidSession)
	}
	s.Level = model.Level(strings.ToLower(strings.TrimSpace(string(s.Level))))
	switch s.Level {
	case "":
		s.Level = model.LevelAll
	case model.LevelAll, model.LevelBeginner, model.LevelIntermediate, model.LevelAdvanced:
	default:
		return s, fmt.Errorf("%w: %q has unknown level %q", ErrInvalidSession, s.Title, s.Level)
	}
	if len(s.Topics) > 0 {
		topics := make([]string, 0, len(s.Topics))
		for _, t := range s.Topics {
			if !slices.Contains(topics, t) {
				topics = append(topics, t)
			}
		}
		s.Topics = topics
	}
	return s, nil
}

// Day returns one day. The sessions slice is a copy.
func (c *Catalog) Day(id string) (model.Day, bool) {
	d, ok := c.days[id]
	if !ok {
		return model.Day{}, false
	}
	d.Sessions = slices.Clone(d.Sessions)
	return d, true
}

// DayIDs returns every day in chronological order.
func (c *Catalog) DayIDs() []string { return slices.Clone(c.order) }

// Days returns every day in chronological order.
func (c *Catalog) Days() []model.Day {
	out := make([]model.Day, 0, len(c.order))
	for _, id := range c.order {
		d, _ := c.Day(id)
		out = append(out, d)
	}
	return out
}

// SessionCount returns the number of sessions across all days.
func (c *Catalog) SessionCount() int {
	n := 0
	for _, d := range c.days {
		n += len(d.Sessions)
	}
	return n
}

// Speakers returns the featured speakers.
func (c *Catalog) Speakers() []Speaker { return slices.Clone(c.speakers) }

// Pavilions returns the expo pavilions.
func (c *Catalog) Pavilions() []Pavilion { return slices.Clone(c.pavilions) }
