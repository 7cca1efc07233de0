package cart

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// SessionStore holds live carts in memory, keyed by owner and terminal.
// Carts are working state, not records; losing them on restart is
// acceptable and sales are the durable artifact.
type SessionStore struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

// NewSessionStore builds an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{carts: make(map[string]*Cart)}
}

func cartKey(ownerID uuid.UUID, terminalID string) string {
	return fmt.Sprintf("%s|%s", ownerID, terminalID)
}

// Mutate runs fn against the terminal's cart under the store lock,
// creating the cart on first touch. The cart must not escape fn.
func (s *SessionStore) Mutate(ownerID uuid.UUID, terminalID string, fn func(*Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := cartKey(ownerID, terminalID)
	cart, ok := s.carts[key]
	if !ok {
		cart = &Cart{OwnerID: ownerID, TerminalID: terminalID}
		s.carts[key] = cart
	}
	return fn(cart)
}

// Snapshot returns a deep copy of the terminal's cart.
func (s *SessionStore) Snapshot(ownerID uuid.UUID, terminalID string) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := cartKey(ownerID, terminalID)
	cart, ok := s.carts[key]
	if !ok {
		return Cart{OwnerID: ownerID, TerminalID: terminalID}
	}
	out := *cart
	out.Lines = append([]Line(nil), cart.Lines...)
	return out
}

// Drop discards the terminal's cart entirely.
func (s *SessionStore) Drop(ownerID uuid.UUID, terminalID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, cartKey(ownerID, terminalID))
}
