// Package session implementa la máquina de estados de sesión/identidad.
//
// Estados: Unknown (arranque, consulta de sesión en vuelo) → Authenticated | Anonymous.
// La identidad solo la escribe el handler de notificaciones de cambio de auth;
// Login no la toca, así no hay carrera entre el set explícito post-login y el
// set disparado por la notificación. Cada resolución asíncrona toma un token
// monotónico y se descarta si al completar ya se aplicó una más nueva.
package session

import (
	"context"
	"strings"
	"sync"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// State es el estado de la máquina de sesión.
type State int

const (
	StateUnknown State = iota
	StateAuthenticated
	StateAnonymous
)

// String para logs.
func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	}
	return "unknown"
}

// LoginResult es el resultado de un login exitoso. RedirectTarget reemplaza al
// viejo canal lateral de "leer el rol cacheado después de escribirlo": la
// decisión de redirección viaja explícita en el resultado.
type LoginResult struct {
	RedirectTarget string // "/admin" para administradores, "/" para el resto
}

// Manager es el contenedor de estado de sesión de un cliente conectado.
// Se construye al iniciar esa sesión de cliente y se cierra con Close, que
// desregistra la suscripción a cambios de auth para no fugarla.
type Manager struct {
	provider repository.AuthProvider
	profiles repository.ProfileRepository
	roles    RoleCache
	log      *logger.Logger

	mu       sync.Mutex
	state    State
	identity entity.Identity
	seq      uint64 // último token emitido
	applied  uint64 // último token aplicado
	unsub    func()
	closed   bool
}

// NewManager construye el manager en estado Unknown y registra el listener de
// cambios de auth, que queda vivo hasta Close.
func NewManager(provider repository.AuthProvider, profiles repository.ProfileRepository, roles RoleCache, log *logger.Logger) *Manager {
	if roles == nil {
		roles = NewMemRoleCache()
	}
	m := &Manager{
		provider: provider,
		profiles: profiles,
		roles:    roles,
		log:      log,
		state:    StateUnknown,
	}
	m.unsub = provider.OnAuthStateChange(m.handleAuthChange)
	return m
}

// Start hace la consulta inicial de sesión. Con sesión válida resuelve el
// perfil y pasa a Authenticated; sin sesión o con fallo del colaborador pasa a
// Anonymous (el fallo se registra, nunca se propaga).
func (m *Manager) Start(ctx context.Context) {
	tok := m.nextToken()
	sess, err := m.provider.GetSession(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("consulta inicial de sesión falló, se asume anónimo")
		m.apply(tok, StateAnonymous, entity.Identity{})
		return
	}
	if sess == nil || sess.Expired() {
		m.apply(tok, StateAnonymous, entity.Identity{})
		return
	}
	ident := m.resolveProfile(sess.UserID, sess.Email)
	if m.apply(tok, StateAuthenticated, ident) {
		m.roles.Set(ident.Role)
	}
}

// Close desregistra la suscripción a cambios de auth. Idempotente.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	if m.unsub != nil {
		m.unsub()
	}
}

// Snapshot devuelve el estado actual y la identidad (vacía si no Authenticated).
func (m *Manager) Snapshot() (State, entity.Identity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.identity
}

// IsAdmin se deriva siempre del estado actual: Authenticated y rol admin.
// Nunca se responde desde el cache de rol, que es solo conveniencia de redirect.
func (m *Manager) IsAdmin() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == StateAuthenticated && m.identity.IsAdmin()
}

// Token devuelve el access token de la sesión vigente del colaborador, o ""
// si no hay sesión o la consulta falla.
func (m *Manager) Token(ctx context.Context) string {
	sess, err := m.provider.GetSession(ctx)
	if err != nil || sess == nil || sess.Expired() {
		return ""
	}
	return sess.AccessToken
}

// Login delega la verificación de credenciales al colaborador. No muta la
// identidad: eso lo hace la notificación de cambio de auth. El error devuelto
// es recuperable y lleva un mensaje apto para mostrar inline.
func (m *Manager) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.E(domain.KindValidation, "Email and password are required")
	}
	if _, err := m.provider.SignInWithPassword(ctx, email, password); err != nil {
		m.log.Debug().Err(err).Str("email", email).Msg("login rechazado")
		return nil, domain.Wrap(domain.KindUnauthorized, "Invalid email or password", err)
	}
	// Resolución de solo lectura para decidir el destino del redirect; la
	// identidad del manager la fija el evento SIGNED_IN que emite el proveedor.
	ident := m.resolveProfile("", email)
	m.roles.Set(ident.Role)
	target := "/"
	if ident.IsAdmin() {
		target = "/admin"
	}
	return &LoginResult{RedirectTarget: target}, nil
}

// MinPasswordLen y su mensaje de rechazo (validación local, sin llamar al colaborador).
const (
	MinPasswordLen      = 6
	msgPasswordTooShort = "Password must be at least 6 characters"
)

// Register crea la cuenta en el colaborador de auth y luego inserta la fila de
// perfil con rol fijo "user".
//
// Ventana de fallo parcial conocida: si el insert de perfil falla después de
// crear la cuenta de auth, queda una cuenta huérfana sin perfil. El fallback de
// identidad por defecto la enmascara en el siguiente login. Se hereda del
// sistema original a propósito; no intentar "arreglarla" acá sin decidir qué
// hacer con las cuentas ya huérfanas.
func (m *Manager) Register(ctx context.Context, email, password, name string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.E(domain.KindValidation, "Email is required")
	}
	if len(password) < MinPasswordLen {
		return domain.E(domain.KindValidation, msgPasswordTooShort)
	}
	userID, err := m.provider.SignUp(ctx, email, password)
	if err != nil {
		m.log.Debug().Err(err).Str("email", email).Msg("registro rechazado por el colaborador")
		return domain.Wrap(domain.KindCollaborator, err.Error(), err)
	}
	profile := &entity.Profile{
		ID:    userID,
		Email: email,
		Name:  name,
		Role:  entity.RoleUser,
	}
	if err := m.profiles.Create(profile); err != nil {
		m.log.Error().Err(err).Str("email", email).Msg("cuenta de auth creada pero insert de perfil falló")
		return domain.Wrap(domain.KindCollaborator, "Registration failed", err)
	}
	return nil
}

// Logout pide el sign-out al colaborador y limpia la identidad a Anonymous
// incondicionalmente, responda lo que responda el colaborador.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.provider.SignOut(ctx); err != nil {
		m.log.Warn().Err(err).Msg("sign-out remoto falló; se limpia la sesión local igual")
	}
	tok := m.nextToken()
	m.apply(tok, StateAnonymous, entity.Identity{})
	m.roles.Clear()
}

// handleAuthChange procesa la notificación asíncrona del colaborador.
// session nil (sign-out, expiración) → Anonymous y cache de rol borrado.
func (m *Manager) handleAuthChange(event entity.AuthEvent, sess *entity.Session) {
	tok := m.nextToken()
	if sess == nil {
		if m.apply(tok, StateAnonymous, entity.Identity{}) {
			m.roles.Clear()
		}
		m.log.Debug().Str("event", string(event)).Msg("cambio de auth sin sesión")
		return
	}
	ident := m.resolveProfile(sess.UserID, sess.Email)
	if m.apply(tok, StateAuthenticated, ident) {
		m.roles.Set(ident.Role)
	}
	m.log.Debug().Str("event", string(event)).Str("role", ident.Role).Msg("cambio de auth aplicado")
}

// resolveProfile busca la fila de perfil por email. Si no existe o la consulta
// falla, sintetiza la identidad por defecto (rol user, nombre = parte local del
// email): esto cubre la cuenta huérfana del registro parcial.
func (m *Manager) resolveProfile(authUserID, email string) entity.Identity {
	p, err := m.profiles.GetByEmail(email)
	if err != nil {
		m.log.Warn().Err(err).Str("email", email).Msg("resolución de perfil falló, identidad por defecto")
		return entity.DefaultIdentity(authUserID, email)
	}
	if p == nil {
		return entity.DefaultIdentity(authUserID, email)
	}
	return p.Identity()
}

// nextToken emite el siguiente token monotónico de resolución.
func (m *Manager) nextToken() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	return m.seq
}

// apply aplica una transición si su token sigue siendo vigente. Devuelve false
// si una resolución más nueva ya se aplicó (resultado obsoleto, se descarta).
func (m *Manager) apply(tok uint64, state State, ident entity.Identity) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if tok <= m.applied {
		m.log.Debug().Uint64("token", tok).Uint64("applied", m.applied).Msg("resolución obsoleta descartada")
		return false
	}
	m.applied = tok
	m.state = state
	m.identity = ident
	return true
}
