package state

import (
	"context"
	"sync"
)

// MemoryStore keeps conversations in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	items map[Key]Conversation
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[Key]Conversation)}
}

func (s *MemoryStore) Get(_ context.Context, key Key) (Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[key], nil
}

func (s *MemoryStore) Save(_ context.Context, key Key, c Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = c
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}
