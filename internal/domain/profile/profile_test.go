package profile_test

import (
	"errors"
	"testing"

	"github.com/okian/summit/internal/domain/model"
	"github.com/okian/summit/internal/domain/profile"
	"github.com/okian/summit/internal/domain/registry"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBuilder(t *testing.T) {
	Convey("Given a new builder", t, func() {
		b := profile.NewBuilder()
		So(b.Step(), ShouldEqual, profile.StepAbout)

		Convey("When building before finishing", func() {
			_, err := b.Build()
			So(errors.Is(err, profile.ErrIncomplete), ShouldBeTrue)
		})

		Convey("When answering out of order", func() {
			So(errors.Is(b.SetDays([]string{"2026-02-16"}), profile.ErrStepOrder), ShouldBeTrue)
			So(errors.Is(b.SetInterests(nil, nil, nil), profile.ErrStepOrder), ShouldBeTrue)
		})

		Convey("When the name is blank", func() {
			So(errors.Is(b.SetAbout(profile.About{Name: "  "}), profile.ErrNameRequired), ShouldBeTrue)
			So(b.Step(), ShouldEqual, profile.StepAbout)
		})

		Convey("When every step is answered", func() {
			So(b.SetAbout(profile.About{Name: " Asha ", Role: "engineer", Proficiency: model.LevelAdvanced}), ShouldBeNil)
			So(b.Step(), ShouldEqual, profile.StepInterests)
			So(b.SetInterests([]string{"Generative AI & LLMs"}, []string{"llm", "robotics"}, []string{"networking"}), ShouldBeNil)
			So(b.Step(), ShouldEqual, profile.StepDays)
			So(b.SetDays([]string{"2026-02-19"}), ShouldBeNil)
			So(b.Step().String(), ShouldEqual, "done")

			p, err := b.Build()

			Convey("Then the profile is frozen with flattened interests", func() {
				So(err, ShouldBeNil)
				So(p.Name, ShouldEqual, "Asha")
				So(p.Proficiency, ShouldEqual, model.LevelAdvanced)
				So(p.Interests, ShouldResemble, []string{"genai", "llm", "foundation-models", "chatgpt", "robotics"})
				So(p.Goals, ShouldResemble, []string{"networking"})
				So(p.Days, ShouldResemble, []string{"2026-02-19"})
			})

			Convey("And going back keeps earlier answers", func() {
				b.Back()
				So(b.Step(), ShouldEqual, profile.StepDays)
				So(b.SetDays(nil), ShouldBeNil)
				p, err := b.Build()
				So(err, ShouldBeNil)
				So(p.Name, ShouldEqual, "Asha")
				So(p.Days, ShouldResemble, registry.DayIDs())
			})

			Convey("And reset starts over", func() {
				b.Reset()
				So(b.Step(), ShouldEqual, profile.StepAbout)
			})
		})
	})
}

func TestNormalize(t *testing.T) {
	Convey("Given an empty profile", t, func() {
		p := profile.Normalize(model.Profile{})

		Convey("Then sentinel defaults are substituted", func() {
			So(p.Proficiency, ShouldEqual, model.LevelIntermediate)
			So(p.Interests, ShouldResemble, []string{"general"})
			So(p.Goals, ShouldResemble, []string{"learning"})
			So(p.Days, ShouldResemble, registry.DayIDs())
		})
	})

	Convey("Given a profile with duplicates and mixed case proficiency", t, func() {
		p := profile.Normalize(model.Profile{
			Proficiency: "Advanced",
			Goals:       []string{"learning", "learning", " "},
			Days:        []string{"2026-02-16", "2026-02-16"},
		})
		So(p.Proficiency, ShouldEqual, model.LevelAdvanced)
		So(p.Goals, ShouldResemble, []string{"learning"})
		So(p.Days, ShouldResemble, []string{"2026-02-16"})
	})
}

func TestRequest(t *testing.T) {
	Convey("Given a valid request", t, func() {
		req := profile.Request{
			Name:               "Ravi",
			Role:               "product-manager",
			Proficiency:        "beginner",
			InterestCategories: []string{"Healthcare AI"},
			Goals:              []string{"networking"},
			Days:               []string{"2026-02-20"},
		}

		Convey("Then it converts into a normalized profile", func() {
			p, err := req.Profile()
			So(err, ShouldBeNil)
			So(p.Role, ShouldEqual, "product-manager")
			So(p.Proficiency, ShouldEqual, model.LevelBeginner)
			So(p.Interests, ShouldContain, "healthcare")
			So(p.Days, ShouldResemble, []string{"2026-02-20"})
		})
	})

	Convey("Given invalid requests", t, func() {
		cases := map[string]profile.Request{
			"proficiency": {Proficiency: "expert"},
			"role":        {Role: "astronaut"},
			"category":    {InterestCategories: []string{"Cooking"}},
			"day":         {Days: []string{"Feb 16"}},
			"empty tag":   {Interests: []string{""}},
		}
		for name, req := range cases {
			Convey("Then an invalid "+name+" is rejected", func() {
				So(errors.Is(req.Validate(), profile.ErrInvalidProfile), ShouldBeTrue)
			})
		}

		Convey("Then messages name the json field", func() {
			err := profile.Request{Proficiency: "expert"}.Validate()
			So(err.Error(), ShouldContainSubstring, "proficiency must be one of")
		})
	})

	Convey("Given a request with unknown goals or days", t, func() {
		p, err := profile.Request{Goals: []string{"sightseeing"}, Days: []string{"2026-03-01"}}.Profile()

		Convey("Then the engine receives them unchanged", func() {
			So(err, ShouldBeNil)
			So(p.Goals, ShouldResemble, []string{"sightseeing"})
			So(p.Days, ShouldResemble, []string{"2026-03-01"})
		})
	})
}

func TestValidator(t *testing.T) {
	Convey("Given the shared validator", t, func() {
		v := profile.Validator()

		Convey("Then it is built once with the registry tags", func() {
			So(v, ShouldNotBeNil)
			So(profile.Validator(), ShouldEqual, v)
			So(v.Var("product-manager", "role"), ShouldBeNil)
			So(v.Var("astronaut", "role"), ShouldNotBeNil)
			So(v.Var("Healthcare AI", "interest_category"), ShouldBeNil)
			So(v.Var("Cooking", "interest_category"), ShouldNotBeNil)
		})
	})
}
