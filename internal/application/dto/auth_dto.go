package dto

// RegisterRequest entrada para registro: la cuenta se crea en el colaborador de
// auth y el perfil se inserta siempre con rol user.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"omitempty,max=200"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// IdentityResponse identidad derivada del usuario autenticado.
type IdentityResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name"`
}

// LoginResponse salida del login. RedirectTarget viaja explícito en el
// resultado en lugar del viejo par "escribir clave persistida / leerla después".
type LoginResponse struct {
	Token          string           `json:"token"`
	User           IdentityResponse `json:"user"`
	RedirectTarget string           `json:"redirect_target"`
}

// SessionResponse estado de sesión actual del cliente.
type SessionResponse struct {
	State   string            `json:"state"` // unknown | authenticated | anonymous
	User    *IdentityResponse `json:"user,omitempty"`
	IsAdmin bool              `json:"is_admin"`
}
