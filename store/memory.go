package store

import (
	"context"
	"sync"
	"time"

	"github.com/Edumoretti/chatbot-llm/models"
)

// MemoryCartStore keeps carts in a process-local map.
type MemoryCartStore struct {
	mu    sync.RWMutex
	carts map[string]*models.Cart
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{carts: make(map[string]*models.Cart)}
}

func (s *MemoryCartStore) Get(_ context.Context, userID string) (*models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[userID]
	if !ok {
		return nil, nil
	}
	return copyCart(cart), nil
}

func (s *MemoryCartStore) Put(_ context.Context, cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[cart.UserID] = copyCart(cart)
	return nil
}

func (s *MemoryCartStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)
	return nil
}

// copyCart detaches the items slice so callers cannot mutate stored state.
func copyCart(cart *models.Cart) *models.Cart {
	out := *cart
	out.Items = append([]models.CartItem(nil), cart.Items...)
	return &out
}

type sessionEntry struct {
	session  *models.CheckoutSession
	storedAt time.Time
}

// MemorySessionStore keeps checkout sessions in a process-local map.
// A ttl of zero keeps sessions for the process lifetime; a positive ttl
// evicts expired sessions lazily on read.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]sessionEntry
	ttl      time.Duration
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]sessionEntry),
		ttl:      ttl,
	}
}

func (s *MemorySessionStore) Get(_ context.Context, orderID string) (*models.CheckoutSession, error) {
	s.mu.RLock()
	entry, ok := s.sessions[orderID]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if s.ttl > 0 && time.Since(entry.storedAt) > s.ttl {
		s.mu.Lock()
		delete(s.sessions, orderID)
		s.mu.Unlock()
		return nil, nil
	}

	out := *entry.session
	out.Items = append([]models.CartItem(nil), entry.session.Items...)
	return &out, nil
}

func (s *MemorySessionStore) Put(_ context.Context, session *models.CheckoutSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *session
	stored.Items = append([]models.CartItem(nil), session.Items...)
	s.sessions[session.OrderID] = sessionEntry{session: &stored, storedAt: time.Now()}
	return nil
}

func (s *MemorySessionStore) Delete(_ context.Context, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, orderID)
	return nil
}
