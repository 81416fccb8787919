package idempotency

import (
	"context"
	"log"
	"sync"
	"time"
)

type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*Entry
	ttl     time.Duration
	done    chan struct{}
	once    sync.Once
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &MemoryStore{
		entries: make(map[string]*Entry),
		ttl:     ttl,
		done:    make(chan struct{}),
	}
}

func (s *MemoryStore) Begin(ctx context.Context, key string) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.entries[key]; ok {
		if entry.State == StateProcessing {
			return nil, ErrInProgress
		}
		cached := *entry
		return &cached, nil
	}
	s.entries[key] = &Entry{State: StateProcessing, CreatedAt: time.Now().UTC()}
	return nil, nil
}

func (s *MemoryStore) Complete(ctx context.Context, key string, statusCode int, response []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = &Entry{
		State:      StateComplete,
		StatusCode: statusCode,
		Response:   append([]byte(nil), response...),
		CreatedAt:  time.Now().UTC(),
	}
	return nil
}

func (s *MemoryStore) Abandon(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// StartSweeper evicts expired keys on a ticker; without it every key ever
// used would stay resident forever.
func (s *MemoryStore) StartSweeper(interval time.Duration) {
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-s.done:
				return
			case <-t.C:
				s.sweep(time.Now().UTC())
			}
		}
	}()
}

func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *MemoryStore) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for key, entry := range s.entries {
		if now.Sub(entry.CreatedAt) > s.ttl {
			delete(s.entries, key)
			evicted++
		}
	}
	if evicted > 0 {
		log.Printf("layer=store component=idempotency method=sweep evicted=%d", evicted)
	}
}
