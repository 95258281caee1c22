package service_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/okian/summit/internal/adapters/catalog"
	service "github.com/okian/summit/internal/app"
	"github.com/okian/summit/internal/domain/model"
	"github.com/okian/summit/internal/domain/scoring"
	"github.com/okian/summit/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithOutput(io.Discard)); err != nil {
		panic(err)
	}
}

func startedService(opts ...service.Option) (*service.Service, context.Context) {
	ctx := context.Background()
	svc := service.New(opts...)
	So(svc.Start(ctx), ShouldBeNil)
	return svc, ctx
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New()
		ctx := context.Background()

		Convey("Then calls before Start fail", func() {
			_, err := svc.Itinerary(ctx, model.Profile{})
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			_, err = svc.Days(ctx)
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			So(svc.GetStats()["started"], ShouldEqual, false)
			So(svc.Size(), ShouldEqual, 0)
		})

		Convey("When starting and stopping it", func() {
			So(svc.Start(ctx), ShouldBeNil)
			So(svc.Start(ctx), ShouldBeNil)
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, true)
			So(stats["catalogDays"], ShouldEqual, 5)

			svc.Stop()
			svc.Stop()
			So(svc.GetStats()["started"], ShouldEqual, false)
		})
	})

	Convey("Given a missing catalog file", t, func() {
		svc := service.New(service.WithCatalogPath("/non/existent/catalog.json"))
		err := svc.Start(context.Background())
		So(errors.Is(err, catalog.ErrLoadCatalog), ShouldBeTrue)
	})
}

func TestService_Itinerary(t *testing.T) {
	Convey("Given a started service with the bundled catalog", t, func() {
		svc, ctx := startedService()
		defer svc.Stop()

		Convey("When planning the CEO day for a networker", func() {
			it, err := svc.Itinerary(ctx, model.Profile{
				Interests: []string{"genai"},
				Goals:     []string{"networking"},
				Days:      []string{"2026-02-19"},
			})
			So(err, ShouldBeNil)
			sessions := it.Day("2026-02-19")

			Convey("Then the day is capped and ranked", func() {
				So(len(it.Days), ShouldEqual, 1)
				So(len(sessions), ShouldEqual, 5)
				for i := 1; i < len(sessions); i++ {
					So(sessions[i-1].Score, ShouldBeGreaterThanOrEqualTo, sessions[i].Score)
				}
				So(sessions[0].IsVIP, ShouldBeTrue)
				So(it.Days[0].Theme, ShouldEqual, "Summit Opening & CEOs")
			})
		})

		Convey("When no days are requested", func() {
			it, err := svc.Itinerary(ctx, model.Profile{})
			So(err, ShouldBeNil)
			So(len(it.Days), ShouldEqual, 5)
		})

		Convey("When an unknown day is requested", func() {
			it, err := svc.Itinerary(ctx, model.Profile{Days: []string{"2026-03-01"}})
			So(err, ShouldBeNil)
			So(it.Day("2026-03-01"), ShouldBeEmpty)
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := svc.Itinerary(cctx, model.Profile{})
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})

	Convey("Given a service with a smaller cap", t, func() {
		svc, ctx := startedService(service.WithItineraryLimit(2))
		defer svc.Stop()

		it, err := svc.Itinerary(ctx, model.Profile{})
		So(err, ShouldBeNil)
		for _, d := range it.Days {
			So(len(d.Sessions), ShouldBeLessThanOrEqualTo, 2)
		}
		So(svc.ItineraryLimit(), ShouldEqual, 2)
	})
}

func TestService_BatchItineraries(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc, ctx := startedService(service.WithBatchLimits(3, 2))
		defer svc.Stop()

		Convey("When planning several profiles", func() {
			profiles := []model.Profile{
				{Name: "a", Days: []string{"2026-02-16"}},
				{Name: "b", Days: []string{"2026-02-17", "2026-02-18"}},
				{Name: "c"},
			}
			out, err := svc.BatchItineraries(ctx, profiles)

			Convey("Then results keep the input order", func() {
				So(err, ShouldBeNil)
				So(len(out), ShouldEqual, 3)
				So(len(out[0].Days), ShouldEqual, 1)
				So(len(out[1].Days), ShouldEqual, 2)
				So(len(out[2].Days), ShouldEqual, 5)
			})
		})

		Convey("When the batch is too large", func() {
			_, err := svc.BatchItineraries(ctx, make([]model.Profile, 4))
			So(errors.Is(err, service.ErrBatchTooLarge), ShouldBeTrue)
		})

		Convey("When the batch is empty", func() {
			out, err := svc.BatchItineraries(ctx, nil)
			So(err, ShouldBeNil)
			So(out, ShouldBeEmpty)
		})
	})
}

func TestService_ScoreSession(t *testing.T) {
	Convey("Given a service with a larger speaker bonus", t, func() {
		svc, ctx := startedService(service.WithScorerOptions(scoring.WithSpeakerBonus(2.0)))
		defer svc.Stop()

		s, err := svc.ScoreSession(ctx, model.Session{Title: "Chat", Speakers: []string{"Sam Altman"}}, model.Profile{})
		So(err, ShouldBeNil)
		So(s.Score, ShouldEqual, 10.0)
		So(s.IsVIP, ShouldBeTrue)
	})
}

func TestService_Catalog(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc, ctx := startedService()
		defer svc.Stop()

		Convey("Then days are summarized", func() {
			days, err := svc.Days(ctx)
			So(err, ShouldBeNil)
			So(len(days), ShouldEqual, 5)
			So(days[0].ID, ShouldEqual, "2026-02-16")
			So(days[0].SessionCount, ShouldBeGreaterThan, 0)
		})

		Convey("And a known day is returned", func() {
			d, err := svc.Day(ctx, "2026-02-18")
			So(err, ShouldBeNil)
			So(d.Name, ShouldEqual, "Wednesday")
		})

		Convey("And an unknown day is an error", func() {
			_, err := svc.Day(ctx, "2026-03-01")
			So(errors.Is(err, catalog.ErrDayNotFound), ShouldBeTrue)
		})

		Convey("And speakers and pavilions are listed", func() {
			sp, err := svc.Speakers(ctx)
			So(err, ShouldBeNil)
			So(sp, ShouldNotBeEmpty)
			pv, err := svc.Pavilions(ctx)
			So(err, ShouldBeNil)
			So(len(pv), ShouldEqual, 10)
		})
	})
}

func TestService_Share(t *testing.T) {
	Convey("Given a started service with a fixed clock", t, func() {
		now := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)
		svc, ctx := startedService(service.WithClock(func() time.Time { return now }))
		defer svc.Stop()

		profile := model.Profile{
			Name:        "Meera",
			Bio:         "PM at a health startup",
			Proficiency: model.LevelBeginner,
			Interests:   []string{"healthcare", "llm", "llm", "genai", "ethics", "education", "climate"},
			Goals:       []string{"networking", "learning", "demos", "policy"},
			Days:        []string{"2026-02-16", "2026-02-17"},
		}

		Convey("When sharing an itinerary", func() {
			share, dup, err := svc.Share(ctx, service.ShareRequest{Profile: profile})

			Convey("Then a trimmed public copy is stored", func() {
				So(err, ShouldBeNil)
				So(dup, ShouldBeFalse)
				So(len(share.ID), ShouldEqual, 8)
				So(share.Name, ShouldEqual, "Meera")
				So(share.Bio, ShouldEqual, "PM at a health startup")
				So(share.Proficiency, ShouldEqual, "beginner")
				So(share.Interests, ShouldResemble, []string{"healthcare", "llm", "genai", "ethics", "education"})
				So(share.Goals, ShouldResemble, []string{"networking", "learning", "demos"})
				So(len(share.Days), ShouldEqual, 2)
				for _, d := range share.Days {
					So(len(d.Sessions), ShouldBeLessThanOrEqualTo, 3)
					for _, s := range d.Sessions {
						So(s.Time, ShouldNotBeEmpty)
					}
				}
				So(share.SharedAt, ShouldEqual, now)
			})

			Convey("And it can be fetched and listed", func() {
				got, err := svc.SharedItinerary(ctx, share.ID)
				So(err, ShouldBeNil)
				So(got.Name, ShouldEqual, "Meera")

				list, err := svc.Community(ctx, 0, "BEGINNER")
				So(err, ShouldBeNil)
				So(len(list), ShouldEqual, 1)

				list, err = svc.Community(ctx, 0, "advanced")
				So(err, ShouldBeNil)
				So(list, ShouldBeEmpty)
			})
		})

		Convey("When the display name is overridden", func() {
			share, _, err := svc.Share(ctx, service.ShareRequest{Profile: profile, Name: "M.", Bio: "anon"})
			So(err, ShouldBeNil)
			So(share.Name, ShouldEqual, "M.")
			So(share.Bio, ShouldEqual, "anon")
		})

		Convey("When no name is available", func() {
			_, _, err := svc.Share(ctx, service.ShareRequest{Profile: model.Profile{}})
			So(errors.Is(err, service.ErrInvalidShare), ShouldBeTrue)
		})

		Convey("When the same idempotency key is retried", func() {
			first, dup, err := svc.Share(ctx, service.ShareRequest{Profile: profile, IdempotencyKey: "retry-1"})
			So(err, ShouldBeNil)
			So(dup, ShouldBeFalse)

			second, dup, err := svc.Share(ctx, service.ShareRequest{Profile: profile, IdempotencyKey: "retry-1"})

			Convey("Then the first share is returned and nothing new is stored", func() {
				So(err, ShouldBeNil)
				So(dup, ShouldBeTrue)
				So(second.ID, ShouldEqual, first.ID)
				So(svc.GetStats()["communityEntries"], ShouldEqual, 1)
				So(svc.Size(), ShouldEqual, 1)
			})
		})

		Convey("When listing with limits out of range", func() {
			_, err := svc.Community(ctx, 1000, "")
			So(err, ShouldNotBeNil)
			_, err = svc.Community(ctx, -1, "")
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given a board that keeps a single share", t, func() {
		svc, ctx := startedService(service.WithCommunityMaxEntries(1))
		defer svc.Stop()

		profile := model.Profile{Name: "Ira", Days: []string{"2026-02-16"}}
		first, _, err := svc.Share(ctx, service.ShareRequest{Profile: profile, IdempotencyKey: "k1"})
		So(err, ShouldBeNil)
		_, _, err = svc.Share(ctx, service.ShareRequest{Profile: profile, IdempotencyKey: "k2"})
		So(err, ShouldBeNil)

		Convey("When a key whose share was evicted is retried", func() {
			again, dup, err := svc.Share(ctx, service.ShareRequest{Profile: profile, IdempotencyKey: "k1"})

			Convey("Then a fresh share is stored under the key", func() {
				So(err, ShouldBeNil)
				So(dup, ShouldBeFalse)
				So(again.ID, ShouldNotEqual, first.ID)

				got, err := svc.SharedItinerary(ctx, again.ID)
				So(err, ShouldBeNil)
				So(got.Name, ShouldEqual, "Ira")
			})

			Convey("And the next retry is a duplicate of it", func() {
				retry, dup, err := svc.Share(ctx, service.ShareRequest{Profile: profile, IdempotencyKey: "k1"})
				So(err, ShouldBeNil)
				So(dup, ShouldBeTrue)
				So(retry.ID, ShouldEqual, again.ID)
			})
		})
	})

	Convey("Given a generator that collides once", t, func() {
		ids := []string{"same0000", "same0000", "other000"}
		next := 0
		gen := func() string {
			id := ids[next]
			next++
			return id
		}
		svc, ctx := startedService(service.WithIDGenerator(gen))
		defer svc.Stop()

		profile := model.Profile{Name: "x"}
		_, _, err := svc.Share(ctx, service.ShareRequest{Profile: profile})
		So(err, ShouldBeNil)

		share, _, err := svc.Share(ctx, service.ShareRequest{Profile: profile})

		Convey("Then a new code is drawn", func() {
			So(err, ShouldBeNil)
			So(share.ID, ShouldEqual, "other000")
		})
	})
}
