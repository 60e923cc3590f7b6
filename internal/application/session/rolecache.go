package session

import "sync"

// RoleCache es el espejo local del rol, análogo a la clave persistida que el
// sistema original guardaba para decidir el redirect post-login. Es solo
// conveniencia: jamás se lee para control de acceso (IsAdmin se deriva del
// estado de sesión vigente).
type RoleCache interface {
	Set(role string)
	Get() string
	Clear()
}

// MemRoleCache implementación en memoria de RoleCache.
type MemRoleCache struct {
	mu   sync.Mutex
	role string
}

// NewMemRoleCache crea el cache vacío.
func NewMemRoleCache() *MemRoleCache { return &MemRoleCache{} }

func (c *MemRoleCache) Set(role string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.role = role
}

func (c *MemRoleCache) Get() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.role
}

func (c *MemRoleCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.role = ""
}
