package entity

import (
	"strings"
	"time"
)

// Roles válidos para Identity.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Identity es el usuario autenticado tal como lo conoce esta aplicación.
// Es un valor derivado: se arma al establecer sesión y se reemplaza con cada
// notificación de cambio de auth; nunca es fuente autoritativa.
type Identity struct {
	ID    string
	Email string
	Role  string // user | admin
	Name  string
}

// IsAdmin indica si la identidad tiene rol de administrador.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// DefaultIdentity sintetiza la identidad por defecto cuando la cuenta de auth
// existe pero no hay fila de perfil (ventana de registro parcial): rol user y
// nombre derivado de la parte local del email.
func DefaultIdentity(authUserID, email string) Identity {
	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}
	return Identity{ID: authUserID, Email: email, Role: RoleUser, Name: name}
}

// Profile es la fila de perfil en el almacén remoto (tabla users).
type Profile struct {
	ID           string
	Email        string
	Name         string
	Role         string // user | admin
	PasswordHash string // solo la usa el proveedor de auth local; el hosted no la lee
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity convierte la fila de perfil en la identidad derivada.
func (p *Profile) Identity() Identity {
	name := p.Name
	if name == "" {
		name = DefaultIdentity(p.ID, p.Email).Name
	}
	return Identity{ID: p.ID, Email: p.Email, Role: p.Role, Name: name}
}
