package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/okian/summit/pkg/metrics"
)

// MemoryStore keeps shares in insertion order in memory.
type MemoryStore struct {
	mu         sync.RWMutex
	shares     []Share
	byID       map[string]int
	maxEntries int
	closed     bool
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{byID: make(map[string]int)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save appends a share.
func (s *MemoryStore) Save(_ context.Context, share Share) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	if _, ok := s.byID[share.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, share.ID)
	}

	s.shares = append(s.shares, cloneShare(share))
	if s.maxEntries > 0 && len(s.shares) > s.maxEntries {
		s.shares = slices.Delete(s.shares, 0, len(s.shares)-s.maxEntries)
		s.reindex()
	} else {
		s.byID[share.ID] = len(s.shares) - 1
	}
	metrics.UpdateCommunityEntries(len(s.shares))
	return nil
}

// Get returns a share by id.
func (s *MemoryStore) Get(_ context.Context, id string) (Share, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return Share{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return cloneShare(s.shares[i]), nil
}

// Recent returns up to n shares newest first.
func (s *MemoryStore) Recent(_ context.Context, n int, proficiency string) ([]Share, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, n)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Share, 0, min(n, len(s.shares)))
	for i := len(s.shares) - 1; i >= 0 && len(out) < n; i-- {
		if proficiency != "" && !strings.EqualFold(s.shares[i].Proficiency, proficiency) {
			continue
		}
		out = append(out, cloneShare(s.shares[i]))
	}
	return out, nil
}

// Count returns the number of stored shares.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.shares)
}

// Close marks the store closed. Reads keep working.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *MemoryStore) reindex() {
	clear(s.byID)
	for i, sh := range s.shares {
		s.byID[sh.ID] = i
	}
}

func cloneShare(s Share) Share {
	s.Interests = slices.Clone(s.Interests)
	s.Goals = slices.Clone(s.Goals)
	days := make([]SharedDay, len(s.Days))
	for i, d := range s.Days {
		days[i] = SharedDay{Day: d.Day, Sessions: slices.Clone(d.Sessions)}
	}
	s.Days = days
	return s
}
