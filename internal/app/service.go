// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/okian/summit/internal/adapters/catalog"
	"github.com/okian/summit/internal/adapters/repository"
	"github.com/okian/summit/internal/domain/dedupe"
	"github.com/okian/summit/internal/domain/itinerary"
	"github.com/okian/summit/internal/domain/model"
	"github.com/okian/summit/internal/domain/scoring"
	"github.com/okian/summit/internal/domain/types"
	"github.com/okian/summit/pkg/logger"
	"github.com/okian/summit/pkg/metrics"
)

const (
	shareIDLength    = 8
	shareIDAttempts  = 3
	defaultShareTime = "TBA"
)

// scoringAdapter records scoring metrics around the domain scorer.
type scoringAdapter struct {
	scorer *scoring.Scorer
}

func (a *scoringAdapter) Score(session model.Session, profile model.Profile) model.ScoredSession {
	out := a.scorer.Score(session, profile)
	metrics.ObserveSessionScore(out.Score)
	if out.IsVIP {
		metrics.RecordVIPSession()
	}
	return out
}

// ShareRequest publishes an itinerary to the community board.
type ShareRequest struct {
	Profile model.Profile
	// Name and Bio override the profile's when set.
	Name string
	Bio  string
	// IdempotencyKey makes retried submissions return the first share.
	IdempotencyKey string
}

// Service implements the API dependencies for the planner.
type Service struct {
	mu sync.RWMutex
	// shareMu orders idempotent shares so a retry never observes a key whose
	// share is not saved yet.
	shareMu sync.Mutex

	// Core components
	catalog *catalog.Catalog
	store   repository.Store
	deduper dedupe.Deduper
	scorer  *scoringAdapter
	planner *itinerary.Planner

	// Configuration
	catalogPath         string
	communityDBPath     string
	communityMaxEntries int
	communityListLimit  int
	maxCommunityLimit   int
	dedupeSize          int
	itineraryLimit      int
	maxBatchProfiles    int
	batchConcurrency    int
	scorerOpts          []scoring.Option

	now   func() time.Time
	newID func() string

	// State
	started   bool
	ownsStore bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCatalog uses an already loaded catalog instead of reading one on Start.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Service) { s.catalog = c }
}

// WithCatalogPath sets the catalog file read on Start. Empty uses the bundled catalog.
func WithCatalogPath(path string) Option {
	return func(s *Service) { s.catalogPath = path }
}

// WithStore uses a custom community store.
func WithStore(store repository.Store) Option {
	return func(s *Service) { s.store = store }
}

// WithCommunityDBPath stores shares in SQLite at path.
func WithCommunityDBPath(path string) Option {
	return func(s *Service) { s.communityDBPath = path }
}

// WithCommunityMaxEntries caps the in-memory community board.
func WithCommunityMaxEntries(n int) Option {
	return func(s *Service) { s.communityMaxEntries = n }
}

// WithCommunityLimits sets the default and maximum community page sizes.
func WithCommunityLimits(defaultLimit, maxLimit int) Option {
	return func(s *Service) {
		if defaultLimit > 0 && maxLimit >= defaultLimit {
			s.communityListLimit = defaultLimit
			s.maxCommunityLimit = maxLimit
		}
	}
}

// WithDedupeSize sets how many idempotency keys are remembered.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithItineraryLimit sets the number of sessions kept per day.
func WithItineraryLimit(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.itineraryLimit = k
		}
	}
}

// WithBatchLimits bounds batch itinerary requests.
func WithBatchLimits(maxProfiles, concurrency int) Option {
	return func(s *Service) {
		if maxProfiles > 0 {
			s.maxBatchProfiles = maxProfiles
		}
		if concurrency > 0 {
			s.batchConcurrency = concurrency
		}
	}
}

// WithScorerOptions passes options to the session scorer.
func WithScorerOptions(opts ...scoring.Option) Option {
	return func(s *Service) {
		s.scorerOpts = append(s.scorerOpts, opts...)
	}
}

// WithClock overrides the time source used for share timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides share code generation.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		communityMaxEntries: 10_000,
		communityListLimit:  repository.DefaultRecentLimit,
		maxCommunityLimit:   100,
		dedupeSize:          10_000,
		itineraryLimit:      itinerary.DefaultLimit,
		maxBatchProfiles:    50,
		batchConcurrency:    8,
		now:                 time.Now,
		newID:               newShareID,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the catalog, opens the community store and builds the engine.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	log := s.logger.Named("service")
	log.Info(ctx, "starting planner service...")

	if s.catalog == nil {
		c, err := catalog.Load(s.catalogPath)
		if err != nil {
			metrics.RecordErrorByComponent("catalog", "load")
			return fmt.Errorf("start: %w", err)
		}
		s.catalog = c
	}
	metrics.UpdateCatalogSize(len(s.catalog.DayIDs()), s.catalog.SessionCount())
	log.Info(ctx, "catalog loaded",
		logger.String("path", s.catalogPath),
		logger.Int("days", len(s.catalog.DayIDs())),
		logger.Int("sessions", s.catalog.SessionCount()),
	)

	if s.store == nil {
		if s.communityDBPath != "" {
			store, err := repository.NewSQLiteStore(s.communityDBPath)
			if err != nil {
				metrics.RecordErrorByComponent("community", "open")
				return fmt.Errorf("start: %w", err)
			}
			s.store = store
			log.Info(ctx, "using sqlite community store", logger.String("path", s.communityDBPath))
		} else {
			s.store = repository.NewMemoryStore(repository.WithMaxEntries(s.communityMaxEntries))
			log.Info(ctx, "using in-memory community store")
		}
		s.ownsStore = true
	}
	metrics.UpdateCommunityEntries(s.store.Count(ctx))

	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.scorer = &scoringAdapter{scorer: scoring.New(s.scorerOpts...)}
	s.planner = itinerary.New(s.catalog, s.scorer, itinerary.WithLimit(s.itineraryLimit))

	s.started = true
	log.Info(ctx, "planner service started",
		logger.Int("itineraryLimit", s.itineraryLimit),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Int("maxBatchProfiles", s.maxBatchProfiles),
	)
	return nil
}

// Stop closes the community store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping planner service...")

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn(ctx, "closing community store", logger.Error(err))
		}
		if s.ownsStore {
			s.store = nil
			s.ownsStore = false
		}
	}

	s.started = false
	s.logger.Info(ctx, "planner service stopped")
}

func (s *Service) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

// Itinerary builds the ranked daily plan for a profile.
func (s *Service) Itinerary(ctx context.Context, p model.Profile) (model.Itinerary, error) {
	if err := s.ready(); err != nil {
		return model.Itinerary{}, err
	}
	if err := ctx.Err(); err != nil {
		return model.Itinerary{}, err
	}

	start := time.Now()
	it := s.planner.Generate(p)
	metrics.RecordItinerary(float64(time.Since(start).Microseconds()) / 1000)
	metrics.RecordSessionsScored(s.sessionsFor(it))
	for _, d := range it.Days {
		if len(d.Sessions) == 0 {
			metrics.RecordEmptyDay()
		}
	}

	s.logger.Debug(ctx, "itinerary generated",
		logger.String("name", p.Name),
		logger.Int("days", len(it.Days)),
		logger.Int("sessions", it.SessionCount()),
	)
	return it, nil
}

func (s *Service) sessionsFor(it model.Itinerary) int {
	n := 0
	for _, d := range it.Days {
		if day, ok := s.catalog.Day(d.Day); ok {
			n += len(day.Sessions)
		}
	}
	return n
}

// BatchItineraries builds itineraries for many profiles concurrently.
// Results keep the order of the input.
func (s *Service) BatchItineraries(ctx context.Context, profiles []model.Profile) ([]model.Itinerary, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if len(profiles) > s.maxBatchProfiles {
		return nil, fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, len(profiles), s.maxBatchProfiles)
	}

	out := make([]model.Itinerary, len(profiles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchConcurrency)
	for i, p := range profiles {
		g.Go(func() error {
			it, err := s.Itinerary(gctx, p)
			if err != nil {
				return fmt.Errorf("profile %d: %w", i, err)
			}
			out[i] = it
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ScoreSession scores a single session for a profile.
func (s *Service) ScoreSession(ctx context.Context, session model.Session, p model.Profile) (model.ScoredSession, error) {
	if err := s.ready(); err != nil {
		return model.ScoredSession{}, err
	}
	metrics.RecordSessionsScored(1)
	return s.scorer.Score(session, p), nil
}

// Days lists the catalog days.
func (s *Service) Days(_ context.Context) ([]types.DaySummary, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	days := s.catalog.Days()
	out := make([]types.DaySummary, 0, len(days))
	for _, d := range days {
		out = append(out, types.DaySummary{ID: d.ID, Name: d.Name, Theme: d.Theme, SessionCount: len(d.Sessions)})
	}
	return out, nil
}

// Day returns the sessions of one catalog day.
func (s *Service) Day(_ context.Context, id string) (model.Day, error) {
	if err := s.ready(); err != nil {
		return model.Day{}, err
	}
	d, ok := s.catalog.Day(id)
	if !ok {
		return model.Day{}, fmt.Errorf("%w: %s", catalog.ErrDayNotFound, id)
	}
	return d, nil
}

// Speakers returns the featured speakers.
func (s *Service) Speakers(_ context.Context) ([]catalog.Speaker, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.catalog.Speakers(), nil
}

// Pavilions returns the expo pavilions.
func (s *Service) Pavilions(_ context.Context) ([]catalog.Pavilion, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.catalog.Pavilions(), nil
}

// Share generates the itinerary of a profile and publishes it. duplicate is
// true when the idempotency key was already used; the first share is returned.
func (s *Service) Share(ctx context.Context, req ShareRequest) (share repository.Share, duplicate bool, err error) {
	if err := s.ready(); err != nil {
		return repository.Share{}, false, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = strings.TrimSpace(req.Profile.Name)
	}
	if name == "" {
		return repository.Share{}, false, fmt.Errorf("%w: name is required", ErrInvalidShare)
	}
	bio := req.Bio
	if bio == "" {
		bio = req.Profile.Bio
	}

	it, err := s.Itinerary(ctx, req.Profile)
	if err != nil {
		return repository.Share{}, false, err
	}
	share = newShare(req.Profile, it)
	share.Name = name
	share.Bio = bio
	share.SharedAt = s.now()

	if req.IdempotencyKey != "" {
		s.shareMu.Lock()
		defer s.shareMu.Unlock()
	}

	for attempt := 0; attempt < shareIDAttempts; attempt++ {
		share.ID = s.newID()

		if req.IdempotencyKey != "" {
			if existing, seen := s.deduper.Remember(ctx, req.IdempotencyKey, share.ID); seen {
				prev, err := s.store.Get(ctx, existing)
				switch {
				case err == nil:
					metrics.RecordCommunityDuplicate()
					return prev, true, nil
				case !errors.Is(err, repository.ErrNotFound):
					return repository.Share{}, true, err
				}
				// The first share was evicted from the board; the key now names this one.
				s.deduper.Forget(ctx, req.IdempotencyKey)
				s.deduper.Remember(ctx, req.IdempotencyKey, share.ID)
			}
		}

		err = s.store.Save(ctx, share)
		if err == nil {
			metrics.RecordCommunityShare()
			s.logger.Info(ctx, "itinerary shared",
				logger.String("id", share.ID),
				logger.String("proficiency", share.Proficiency),
				logger.Int("days", len(share.Days)),
			)
			return share, false, nil
		}

		if req.IdempotencyKey != "" {
			s.deduper.Forget(ctx, req.IdempotencyKey)
		}
		if !errors.Is(err, repository.ErrDuplicateID) {
			break
		}
	}

	metrics.RecordErrorByComponent("community", "save")
	return repository.Share{}, false, fmt.Errorf("share: %w", err)
}

// Community returns recent shares, newest first. A zero limit uses the default.
func (s *Service) Community(ctx context.Context, limit int, proficiency string) ([]repository.Share, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if limit == 0 {
		limit = s.communityListLimit
	}
	if limit < 0 || limit > s.maxCommunityLimit {
		return nil, fmt.Errorf("%w: %d", repository.ErrInvalidLimit, limit)
	}
	return s.store.Recent(ctx, limit, strings.TrimSpace(proficiency))
}

// SharedItinerary returns one share by its code.
func (s *Service) SharedItinerary(ctx context.Context, id string) (repository.Share, error) {
	if err := s.ready(); err != nil {
		return repository.Share{}, err
	}
	return s.store.Get(ctx, id)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"itineraryLimit": s.itineraryLimit,
		"dedupeSize":     s.dedupeSize,
		"maxBatch":       s.maxBatchProfiles,
	}

	if s.started {
		ctx := context.Background()
		entries := s.store.Count(ctx)
		stats["catalogDays"] = len(s.catalog.DayIDs())
		stats["catalogSessions"] = s.catalog.SessionCount()
		stats["communityEntries"] = entries
		stats["idempotencyKeys"] = s.deduper.Size()

		metrics.UpdateCommunityEntries(entries)
	}

	return stats
}

// Size returns the current number of remembered idempotency keys.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}

// ItineraryLimit returns the configured per-day cap.
func (s *Service) ItineraryLimit() int { return s.itineraryLimit }

func newShare(p model.Profile, it model.Itinerary) repository.Share {
	share := repository.Share{
		Proficiency: string(p.EffectiveProficiency()),
		Interests:   firstUnique(p.Interests, repository.MaxSharedInterests),
		Goals:       firstUnique(p.Goals, repository.MaxSharedGoals),
		Days:        make([]repository.SharedDay, 0, len(it.Days)),
	}
	for _, d := range it.Days {
		day := repository.SharedDay{Day: d.Day, Sessions: make([]repository.SharedSession, 0, repository.MaxSharedSessionsDay)}
		for i, sess := range d.Sessions {
			if i == repository.MaxSharedSessionsDay {
				break
			}
			t := sess.Time
			if t == "" {
				t = defaultShareTime
			}
			day.Sessions = append(day.Sessions, repository.SharedSession{Title: sess.Title, Time: t})
		}
		share.Days = append(share.Days, day)
	}
	return share
}

func firstUnique(in []string, n int) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, n)
	for _, v := range in {
		if len(out) == n {
			break
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func newShareID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:shareIDLength]
}
