package flash

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a process-local Store, used in tests and when Redis is
// unavailable. Messages expire after ttl like the Redis store.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	msgs      []Message
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Add(_ context.Context, sessionID string, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictExpired(now)

	entry := s.entries[sessionID]
	entry.msgs = append(entry.msgs, msg)
	entry.expiresAt = now.Add(s.ttl)
	s.entries[sessionID] = entry
	return nil
}

func (s *MemoryStore) Pop(_ context.Context, sessionID string) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[sessionID]
	delete(s.entries, sessionID)
	if !ok || s.now().After(entry.expiresAt) {
		return nil, nil
	}
	return entry.msgs, nil
}

func (s *MemoryStore) evictExpired(now time.Time) {
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
}
