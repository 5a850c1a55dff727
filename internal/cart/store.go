package cart

import (
	"context"
	"sync"
)

// Store persists carts keyed by client session ID.
type Store interface {
	// Get returns the cart for the session. A session without a cart gets
	// an empty cart, not an error.
	Get(ctx context.Context, sessionID string) (Cart, error)

	// Save replaces the cart for the session.
	Save(ctx context.Context, sessionID string, c Cart) error

	// Clear removes the cart for the session.
	Clear(ctx context.Context, sessionID string) error
}

// memoryStore implements Store with an in-process map.
type memoryStore struct {
	mu    sync.RWMutex
	carts map[string]Cart
}

// NewMemoryStore creates an in-memory cart store.
func NewMemoryStore() Store {
	return &memoryStore{
		carts: make(map[string]Cart),
	}
}

func (s *memoryStore) Get(ctx context.Context, sessionID string) (Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.carts[sessionID]
	if !ok {
		return Cart{}, nil
	}
	// Hand out a copy so callers cannot mutate the stored slice.
	return c.clone(), nil
}

func (s *memoryStore) Save(ctx context.Context, sessionID string, c Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[sessionID] = c.clone()
	return nil
}

func (s *memoryStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
	return nil
}
