package cart

import (
	"context"
	"sync"
	"time"
)

// Store persists carts between requests.
type Store interface {
	Get(ctx context.Context, token string) (*Cart, error)
	Put(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, token string) error
}

type memoryEntry struct {
	cart      Cart
	expiresAt time.Time
}

// MemoryStore keeps carts in process memory with a sliding TTL. Carts are
// scoped to a single API instance, which matches a single-location storefront.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore builds an in-memory cart store. A non-positive ttl disables
// expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: map[string]memoryEntry{},
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns a copy of the cart stored at token, or nil when absent or expired.
func (s *MemoryStore) Get(_ context.Context, token string) (*Cart, error) {
	if token == "" {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[token]
	if !ok {
		return nil, nil
	}
	if s.ttl > 0 && s.now().After(entry.expiresAt) {
		delete(s.entries, token)
		return nil, nil
	}

	copied := cloneCart(entry.cart)
	return &copied, nil
}

// Put stores a copy of the cart and refreshes its TTL.
func (s *MemoryStore) Put(_ context.Context, cart *Cart) error {
	if cart == nil || cart.Token == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[cart.Token] = memoryEntry{
		cart:      cloneCart(*cart),
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}

// Delete removes the cart stored at token.
func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}

func cloneCart(cart Cart) Cart {
	copied := cart
	copied.Lines = make([]Line, len(cart.Lines))
	copy(copied.Lines, cart.Lines)
	for i := range copied.Lines {
		if len(copied.Lines[i].AddOns) > 0 {
			addOns := make([]LineAddOn, len(copied.Lines[i].AddOns))
			copy(addOns, copied.Lines[i].AddOns)
			copied.Lines[i].AddOns = addOns
		}
	}
	return copied
}
