package session

import (
	"context"
	"sync"

	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// ProviderFactory crea un AuthProvider nuevo, con su propio estado de sesión,
// para cada cliente conectado (como el cliente de auth que cada navegador
// instancia por su cuenta).
type ProviderFactory func() repository.AuthProvider

// Registry mantiene un Manager por cliente conectado, identificado por el
// client ID de la cookie. Crea managers de forma perezosa y los cierra en
// Drop/Close para no fugar suscripciones.
type Registry struct {
	newProvider ProviderFactory
	profiles    repository.ProfileRepository
	log         *logger.Logger

	mu       sync.Mutex
	managers map[string]*Manager
}

// NewRegistry construye el registro.
func NewRegistry(newProvider ProviderFactory, profiles repository.ProfileRepository, log *logger.Logger) *Registry {
	return &Registry{
		newProvider: newProvider,
		profiles:    profiles,
		log:         log,
		managers:    make(map[string]*Manager),
	}
}

// For devuelve el manager del cliente, creándolo (y arrancándolo) si no existe.
func (r *Registry) For(ctx context.Context, clientID string) *Manager {
	r.mu.Lock()
	m, ok := r.managers[clientID]
	if ok {
		r.mu.Unlock()
		return m
	}
	m = NewManager(r.newProvider(), r.profiles, NewMemRoleCache(), r.log)
	r.managers[clientID] = m
	r.mu.Unlock()

	// Start fuera del lock: hace I/O contra el colaborador.
	m.Start(ctx)
	return m
}

// Drop cierra y descarta el manager del cliente (si existe).
func (r *Registry) Drop(clientID string) {
	r.mu.Lock()
	m, ok := r.managers[clientID]
	if ok {
		delete(r.managers, clientID)
	}
	r.mu.Unlock()
	if ok {
		m.Close()
	}
}

// Close cierra todos los managers (apagado de la aplicación).
func (r *Registry) Close() {
	r.mu.Lock()
	managers := make([]*Manager, 0, len(r.managers))
	for _, m := range r.managers {
		managers = append(managers, m)
	}
	r.managers = make(map[string]*Manager)
	r.mu.Unlock()
	for _, m := range managers {
		m.Close()
	}
}
