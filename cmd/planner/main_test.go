package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/summit/internal/domain/profile"
)

const researcherProfile = `
name: Kabir
role: researcher
proficiency: advanced
interest_categories: ["Research & Science", "AI Safety & Ethics"]
goals: [learning]
days: ["2026-02-18"]
`

func TestRun(t *testing.T) {
	convey.Convey("Given a researcher profile on stdin", t, func() {
		var out bytes.Buffer
		err := run([]string{"-limit", "2"}, strings.NewReader(researcherProfile), &out)

		convey.Convey("Then the itinerary is printed with the top session first", func() {
			convey.So(err, convey.ShouldBeNil)
			text := out.String()
			convey.So(text, convey.ShouldStartWith, "Itinerary for Kabir (advanced)")
			convey.So(text, convey.ShouldContainSubstring, "2026-02-18 Wednesday - Research & Innovation")
			convey.So(text, convey.ShouldContainSubstring, "1. Alignment and Evaluation Methods")
			convey.So(text, convey.ShouldContainSubstring, "  2. ")
			convey.So(text, convey.ShouldNotContainSubstring, "  3. ")
		})
	})

	convey.Convey("Given a profile file", t, func() {
		path := filepath.Join(t.TempDir(), "profile.yaml")
		convey.So(os.WriteFile(path, []byte(researcherProfile), 0o600), convey.ShouldBeNil)

		var out bytes.Buffer
		err := run([]string{"-profile", path}, strings.NewReader(""), &out)
		convey.So(err, convey.ShouldBeNil)
		convey.So(out.String(), convey.ShouldContainSubstring, "Kabir")
	})

	convey.Convey("Given an empty profile", t, func() {
		var out bytes.Buffer
		err := run(nil, strings.NewReader(""), &out)

		convey.Convey("Then every day is planned with defaults", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(out.String(), convey.ShouldStartWith, "Itinerary for attendee (intermediate)")
			for _, day := range []string{"2026-02-16", "2026-02-17", "2026-02-18", "2026-02-19", "2026-02-20"} {
				convey.So(out.String(), convey.ShouldContainSubstring, day)
			}
		})
	})

	convey.Convey("Given bad input", t, func() {
		var out bytes.Buffer

		convey.Convey("Then an invalid profile is rejected", func() {
			err := run(nil, strings.NewReader("proficiency: expert\n"), &out)
			convey.So(errors.Is(err, profile.ErrInvalidProfile), convey.ShouldBeTrue)
		})

		convey.Convey("Then malformed yaml is rejected", func() {
			err := run(nil, strings.NewReader("days: [unclosed\n"), &out)
			convey.So(err, convey.ShouldNotBeNil)
		})

		convey.Convey("Then a missing profile file is rejected", func() {
			err := run([]string{"-profile", "/non/existent.yaml"}, strings.NewReader(""), &out)
			convey.So(err, convey.ShouldNotBeNil)
		})

		convey.Convey("Then a missing catalog is rejected", func() {
			err := run([]string{"-catalog", "/non/existent.json"}, strings.NewReader(""), &out)
			convey.So(err, convey.ShouldNotBeNil)
		})

		convey.Convey("Then unknown flags are rejected", func() {
			err := run([]string{"-nope"}, strings.NewReader(""), &out)
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}
