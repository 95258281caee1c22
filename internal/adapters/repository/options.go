package repository

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithMaxEntries caps how many shares are retained; the oldest are dropped
// first. Zero or less keeps everything.
func WithMaxEntries(n int) Option {
	return func(s *MemoryStore) {
		s.maxEntries = n
	}
}
