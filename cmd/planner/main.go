// Command planner prints a conference itinerary for a YAML profile without
// running the HTTP server.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/okian/summit/internal/adapters/catalog"
	"github.com/okian/summit/internal/domain/itinerary"
	"github.com/okian/summit/internal/domain/profile"
	"github.com/okian/summit/internal/domain/scoring"
	"github.com/okian/summit/internal/domain/types"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		os.Stderr.WriteString("planner: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("planner", flag.ContinueOnError)
	var (
		profilePath  = fs.String("profile", "-", "YAML profile file, - reads stdin")
		catalogPath  = fs.String("catalog", "", "Event catalog JSON (default: bundled catalog)")
		limit        = fs.Int("limit", itinerary.DefaultLimit, "Sessions kept per day")
		fuzzy        = fs.Bool("fuzzy", false, "Match topics by substring")
		speakerBonus = fs.Float64("speaker-bonus", 1.5, "Bonus for sessions with speakers")
	)
	fs.SetOutput(stdout)
	if err := fs.Parse(args); err != nil {
		return err
	}

	req, err := readProfile(*profilePath, stdin)
	if err != nil {
		return err
	}
	p, err := req.Profile()
	if err != nil {
		return err
	}

	cat, err := catalog.Load(*catalogPath)
	if err != nil {
		return err
	}
	scorer := scoring.New(scoring.WithFuzzyTopics(*fuzzy), scoring.WithSpeakerBonus(*speakerBonus))
	it := itinerary.New(cat, scorer, itinerary.WithLimit(*limit)).Generate(p)

	return render(stdout, string(p.EffectiveProficiency()), types.NewItineraryResponse(p.Name, it))
}

func readProfile(path string, stdin io.Reader) (profile.Request, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return profile.Request{}, fmt.Errorf("open profile: %w", err)
		}
		defer f.Close()
		r = f
	}

	var req profile.Request
	if err := yaml.NewDecoder(r).Decode(&req); err != nil && err != io.EOF {
		return profile.Request{}, fmt.Errorf("decode profile: %w", err)
	}
	return req, nil
}

func render(w io.Writer, proficiency string, resp types.ItineraryResponse) error {
	var b strings.Builder
	name := resp.Name
	if name == "" {
		name = "attendee"
	}
	fmt.Fprintf(&b, "Itinerary for %s (%s): %d sessions, %d VIP\n", name, proficiency, resp.SessionCount, resp.VIPCount)

	for _, d := range resp.Days {
		fmt.Fprintf(&b, "\n%s %s", d.Day, d.DayName)
		if d.Theme != "" {
			fmt.Fprintf(&b, " - %s", d.Theme)
		}
		b.WriteString("\n")
		if len(d.Sessions) == 0 {
			b.WriteString("  no sessions\n")
			continue
		}
		for i, s := range d.Sessions {
			fmt.Fprintf(&b, "  %d. %-42s %6.1f  %s", i+1, s.Title, s.Score, s.MatchTier)
			if s.IsVIP {
				b.WriteString("  VIP")
			}
			b.WriteString("\n")
			fmt.Fprintf(&b, "     %s", s.Time)
			if s.Venue != "" {
				fmt.Fprintf(&b, " at %s", s.Venue)
			}
			if len(s.Speakers) > 0 {
				fmt.Fprintf(&b, " with %s", strings.Join(s.Speakers, ", "))
			}
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
