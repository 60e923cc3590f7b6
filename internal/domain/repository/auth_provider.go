package repository

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// AuthChangeHandler recibe las notificaciones asíncronas de cambio de sesión.
// session es nil cuando la sesión terminó (sign-out, expiración).
type AuthChangeHandler func(event entity.AuthEvent, session *entity.Session)

// AuthProvider es el contrato del colaborador externo de autenticación.
// La aplicación nunca guarda credenciales: delega la verificación y consume
// las notificaciones de cambio de sesión que el proveedor emite.
type AuthProvider interface {
	// GetSession devuelve la sesión vigente o (nil, nil) si no hay ninguna.
	GetSession(ctx context.Context) (*entity.Session, error)
	// SignUp crea la cuenta de auth y devuelve el ID de usuario asignado.
	SignUp(ctx context.Context, email, password string) (userID string, err error)
	// SignInWithPassword verifica credenciales y abre sesión.
	SignInWithPassword(ctx context.Context, email, password string) (*entity.Session, error)
	// SignOut cierra la sesión vigente.
	SignOut(ctx context.Context) error
	// OnAuthStateChange registra un handler y devuelve la función para
	// desregistrarlo. El handler queda activo hasta que se llame unsubscribe.
	OnAuthStateChange(fn AuthChangeHandler) (unsubscribe func())
}
