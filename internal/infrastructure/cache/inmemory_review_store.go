package cache

import (
	"context"
	"sync"
	"time"

	"github.com/pricebook/backend/internal/domain/pricebook"
)

type reviewEntry struct {
	review    *pricebook.Review
	expiresAt time.Time
}

// InMemoryReviewStore keeps open reviews in a map.
// This is suitable for single-instance deployments and testing
type InMemoryReviewStore struct {
	mu        sync.Mutex
	entries   map[string]reviewEntry
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

var _ pricebook.ReviewStore = (*InMemoryReviewStore)(nil)

// NewInMemoryReviewStore creates the store and starts a background goroutine
// that evicts expired reviews every cleanupInterval.
func NewInMemoryReviewStore(cleanupInterval time.Duration) *InMemoryReviewStore {
	if cleanupInterval <= 0 {
		cleanupInterval = 5 * time.Minute
	}
	store := &InMemoryReviewStore{
		entries:  make(map[string]reviewEntry),
		now:      time.Now,
		stopChan: make(chan struct{}),
	}

	store.wg.Add(1)
	go store.cleanupLoop(cleanupInterval)

	return store
}

// Put stores a copy of the review. A ttl of zero keeps it until it is taken.
func (s *InMemoryReviewStore) Put(_ context.Context, review *pricebook.Review, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := reviewEntry{review: review.Clone()}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.entries[review.ID] = e
	return nil
}

// live returns the entry for id, dropping it when expired. Caller holds mu.
func (s *InMemoryReviewStore) live(id string) (reviewEntry, bool) {
	e, ok := s.entries[id]
	if !ok {
		return reviewEntry{}, false
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		delete(s.entries, id)
		return reviewEntry{}, false
	}
	return e, true
}

// Get returns a copy of the review
func (s *InMemoryReviewStore) Get(_ context.Context, id string) (*pricebook.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.live(id)
	if !ok {
		return nil, pricebook.ErrReviewNotFound
	}
	return e.review.Clone(), nil
}

// Take removes the review and returns it
func (s *InMemoryReviewStore) Take(_ context.Context, id string) (*pricebook.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.live(id)
	if !ok {
		return nil, pricebook.ErrReviewNotFound
	}
	delete(s.entries, id)
	return e.review, nil
}

// Delete reports whether a live review was removed
func (s *InMemoryReviewStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.live(id); !ok {
		return false, nil
	}
	delete(s.entries, id)
	return true, nil
}

// Close stops the cleanup goroutine and releases resources
// Safe to call multiple times
func (s *InMemoryReviewStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

func (s *InMemoryReviewStore) cleanupLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *InMemoryReviewStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range s.entries {
		s.live(id)
	}
}

// Size returns the number of entries in the store (for testing/monitoring)
func (s *InMemoryReviewStore) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
