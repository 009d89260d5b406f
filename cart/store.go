package cart

import "sync"

// Store keeps one cart per logged-in user for the lifetime of the process.
// Carts are session state: they are deliberately not persisted, a restart
// starts everyone from an empty cart.
//
// State has a single-writer design, so the store serializes all cart access
// behind one mutex rather than trusting callers to coordinate.
type Store struct {
	mu    sync.Mutex
	carts map[string]*State
}

func NewStore() *Store {
	return &Store{carts: make(map[string]*State)}
}

// With runs fn against the user's cart, creating an empty cart on first use.
// fn runs under the store lock; keep it short and free of I/O.
func (st *Store) With(userID string, fn func(*State)) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.carts[userID]
	if !ok {
		s = NewState()
		st.carts[userID] = s
	}
	fn(s)
}

// Drop discards the user's cart entirely (logout, order placed).
func (st *Store) Drop(userID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.carts, userID)
}
