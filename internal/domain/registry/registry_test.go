package registry_test

import (
	"testing"

	"github.com/okian/summit/internal/domain/registry"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDays(t *testing.T) {
	Convey("Given the event day registry", t, func() {
		ids := registry.DayIDs()

		Convey("Then it lists five days in calendar order", func() {
			So(ids, ShouldResemble, []string{"2026-02-16", "2026-02-17", "2026-02-18", "2026-02-19", "2026-02-20"})
		})

		Convey("And known days resolve with their theme", func() {
			d, ok := registry.LookupDay("2026-02-19")
			So(ok, ShouldBeTrue)
			So(d.Name, ShouldEqual, "Thursday")
			So(d.Theme, ShouldEqual, "Summit Opening & CEOs")
		})

		Convey("And unknown days do not", func() {
			_, ok := registry.LookupDay("2026-03-01")
			So(ok, ShouldBeFalse)
		})

		Convey("And callers cannot mutate the registry", func() {
			d := registry.Days()
			d[0].Theme = "changed"
			info, _ := registry.LookupDay("2026-02-16")
			So(info.Theme, ShouldEqual, "Expo Launch & Inauguration")
		})
	})
}

func TestRoles(t *testing.T) {
	Convey("Given the role registry", t, func() {
		Convey("Then every role has keywords and a category", func() {
			for _, r := range registry.Roles() {
				So(r.Keywords, ShouldNotBeEmpty)
				So(r.Category, ShouldBeIn, []registry.RoleCategory{
					registry.CategoryProduct, registry.CategoryTechnical, registry.CategoryGeneral,
				})
			}
		})

		Convey("And lookups distinguish known roles", func() {
			r, ok := registry.LookupRole("product-manager")
			So(ok, ShouldBeTrue)
			So(r.Category, ShouldEqual, registry.CategoryProduct)

			_, ok = registry.LookupRole("astronaut")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestFlattenInterests(t *testing.T) {
	Convey("Given interest categories", t, func() {
		Convey("When flattening two categories", func() {
			tags := registry.FlattenInterests([]string{"Generative AI & LLMs", "AI Safety & Ethics"})

			Convey("Then all tags appear in category order", func() {
				So(tags, ShouldResemble, []string{
					"genai", "llm", "foundation-models", "chatgpt",
					"ai-safety", "alignment", "responsible-ai", "ethics",
				})
			})
		})

		Convey("When a category repeats or is unknown", func() {
			tags := registry.FlattenInterests([]string{"Healthcare AI", "Nope", "Healthcare AI"})

			Convey("Then duplicates collapse and unknowns are skipped", func() {
				So(tags, ShouldResemble, []string{"healthcare", "diagnostics", "drug-discovery", "health-equity"})
			})
		})

		Convey("When nothing is selected", func() {
			So(registry.FlattenInterests(nil), ShouldBeEmpty)
		})
	})
}

func TestGoals(t *testing.T) {
	Convey("Given the goal vocabulary", t, func() {
		So(registry.IsGoal(registry.GoalNetworking), ShouldBeTrue)
		So(registry.IsGoal(registry.GoalLearning), ShouldBeTrue)
		So(registry.IsGoal("partnerships"), ShouldBeTrue)
		So(registry.IsGoal("sightseeing"), ShouldBeFalse)
		So(len(registry.Goals()), ShouldBeGreaterThanOrEqualTo, 6)
	})
}
