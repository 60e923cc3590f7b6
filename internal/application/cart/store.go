package cart

import "sync"

// Store mantiene un carrito por visitante, identificado por el client ID de la
// cookie. Solo memoria de proceso: un reinicio vacía todos los carritos.
type Store struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

// NewStore crea el almacén de carritos.
func NewStore() *Store {
	return &Store{carts: make(map[string]*Cart)}
}

// For devuelve el carrito del visitante, creándolo si no existe.
func (s *Store) For(clientID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[clientID]
	if !ok {
		c = New()
		s.carts[clientID] = c
	}
	return c
}

// Drop descarta el carrito del visitante (si existe).
func (s *Store) Drop(clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, clientID)
}
