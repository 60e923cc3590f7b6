// Package auth implementa los colaboradores de autenticación: uno local
// (bcrypt + tokens propios, para desarrollo) y uno contra el servicio
// gestionado. Ambos notifican cambios de sesión con el mismo emitter.
package auth

import (
	"sync"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// emitter mantiene los handlers suscritos a cambios de auth de un proveedor.
// La emisión es síncrona: el evento se entrega antes de que retorne la
// operación que lo causó, igual que hace el SDK del servicio gestionado.
type emitter struct {
	mu       sync.Mutex
	nextID   int
	handlers map[int]repository.AuthChangeHandler
}

func newEmitter() *emitter {
	return &emitter{handlers: make(map[int]repository.AuthChangeHandler)}
}

// subscribe registra el handler y devuelve la función para desregistrarlo.
func (e *emitter) subscribe(fn repository.AuthChangeHandler) (unsubscribe func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextID
	e.nextID++
	e.handlers[id] = fn
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.handlers, id)
	}
}

// emit entrega el evento a todos los handlers vigentes.
func (e *emitter) emit(event entity.AuthEvent, sess *entity.Session) {
	e.mu.Lock()
	handlers := make([]repository.AuthChangeHandler, 0, len(e.handlers))
	for _, fn := range e.handlers {
		handlers = append(handlers, fn)
	}
	e.mu.Unlock()
	for _, fn := range handlers {
		fn(event, sess)
	}
}
