package memory

import (
	"context"
	"sync"
	"time"

	"petclinic/internal/ports/flash"
)

type flashEntry struct {
	msg       flash.Message
	expiresAt time.Time
}

// FlashStore es la versión en proceso del store de flashes (sin REDIS_ADDR).
type FlashStore struct {
	mu      sync.Mutex
	entries map[string]flashEntry
	now     func() time.Time
}

func NewFlashStore() *FlashStore {
	return &FlashStore{
		entries: make(map[string]flashEntry),
		now:     time.Now,
	}
}

func (s *FlashStore) Put(ctx context.Context, key string, m flash.Message, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictExpired()
	s.entries[key] = flashEntry{msg: m, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *FlashStore) Take(ctx context.Context, key string) (flash.Message, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return flash.Message{}, false, nil
	}
	delete(s.entries, key)

	if !s.now().Before(e.expiresAt) {
		return flash.Message{}, false, nil
	}
	return e.msg, true, nil
}

func (s *FlashStore) evictExpired() {
	now := s.now()
	for k, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, k)
		}
	}
}
