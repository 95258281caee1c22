package config_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/okian/summit/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.ItineraryLimit, convey.ShouldEqual, 5)
				convey.So(cfg.VIPStructuralRule, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("SUMMIT_ADDR", ":8080")
			_ = os.Setenv("SUMMIT_ITINERARY_LIMIT", "3")
			_ = os.Setenv("SUMMIT_SPEAKER_BONUS", "2.0")
			_ = os.Setenv("SUMMIT_FUZZY_TOPIC_MATCH", "true")
			_ = os.Setenv("SUMMIT_VIP_STRUCTURAL_RULE", "false")
			_ = os.Setenv("SUMMIT_SHUTDOWN_TIMEOUT", "5s")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.ItineraryLimit, convey.ShouldEqual, 3)
				convey.So(cfg.SpeakerBonus, convey.ShouldEqual, 2.0)
				convey.So(cfg.FuzzyTopicMatch, convey.ShouldBeTrue)
				convey.So(cfg.VIPStructuralRule, convey.ShouldBeFalse)
				convey.So(cfg.ShutdownTimeout, convey.ShouldEqual, 5*time.Second)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
# community board on disk
addr: ":9090"
catalog_path: "/etc/summit/event_data.json"
community_db_path: "/var/lib/summit/community.db"
community_list_limit: 20
goal_rules:
  - name: hiring
    goal: hiring
    keywords: [talent, hiring, careers]
    score: 2
    side: 1
    accumulator: networking_roi
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("SUMMIT_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.CatalogPath, convey.ShouldEqual, "/etc/summit/event_data.json")
				convey.So(cfg.CommunityDBPath, convey.ShouldEqual, "/var/lib/summit/community.db")
				convey.So(cfg.CommunityListLimit, convey.ShouldEqual, 20)
				convey.So(len(cfg.GoalRules), convey.ShouldEqual, 1)
				convey.So(cfg.GoalRules[0].Keywords, convey.ShouldResemble, []string{"talent", "hiring", "careers"})
				convey.So(cfg.GoalRules[0].Accumulator, convey.ShouldEqual, "networking_roi")
			})

			convey.Convey("And the defaults fill missing fields", func() {
				convey.So(cfg.ItineraryLimit, convey.ShouldEqual, 5)
				convey.So(cfg.SpeakerBonus, convey.ShouldEqual, 1.5)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile("addr: \":9090\"\nitinerary_limit: 4\n")
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("SUMMIT_CONFIG", tmpFile)
			_ = os.Setenv("SUMMIT_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.ItineraryLimit, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("SUMMIT_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("SUMMIT_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("SUMMIT_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("SUMMIT_ITINERARY_LIMIT", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"SUMMIT_CONFIG",
		"SUMMIT_ADDR",
		"SUMMIT_ITINERARY_LIMIT",
		"SUMMIT_SPEAKER_BONUS",
		"SUMMIT_FUZZY_TOPIC_MATCH",
		"SUMMIT_VIP_STRUCTURAL_RULE",
		"SUMMIT_SHUTDOWN_TIMEOUT",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "summit-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
