package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/session"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de colaboradores
// ──────────────────────────────────────────────────────────────────────────────

// fakeAuthProvider simula el colaborador de auth: verifica credenciales contra
// un mapa y emite las notificaciones de cambio de sesión de forma síncrona.
type fakeAuthProvider struct {
	mu          sync.Mutex
	session     *entity.Session
	passwords   map[string]string // email -> password válida
	signUpErr   error
	sessionErr  error
	signOutErr  error
	signUpCalls int
	signInCalls int
	handlers    map[int]repository.AuthChangeHandler
	nextHandler int
}

func newFakeAuth() *fakeAuthProvider {
	return &fakeAuthProvider{
		passwords: make(map[string]string),
		handlers:  make(map[int]repository.AuthChangeHandler),
	}
}

func (f *fakeAuthProvider) GetSession(context.Context) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sessionErr != nil {
		return nil, f.sessionErr
	}
	return f.session, nil
}

func (f *fakeAuthProvider) SignUp(_ context.Context, email, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signUpCalls++
	if f.signUpErr != nil {
		return "", f.signUpErr
	}
	return "auth-" + email, nil
}

func (f *fakeAuthProvider) SignInWithPassword(_ context.Context, email, password string) (*entity.Session, error) {
	f.mu.Lock()
	f.signInCalls++
	valid := f.passwords[email] == password && password != ""
	if !valid {
		f.mu.Unlock()
		return nil, errors.New("invalid_grant")
	}
	sess := &entity.Session{
		AccessToken: "tok-" + email,
		UserID:      "auth-" + email,
		Email:       email,
		ExpiresAt:   time.Now().Add(time.Hour),
	}
	f.session = sess
	f.mu.Unlock()
	f.emit(entity.AuthEventSignedIn, sess)
	return sess, nil
}

func (f *fakeAuthProvider) SignOut(context.Context) error {
	f.mu.Lock()
	err := f.signOutErr
	f.session = nil
	f.mu.Unlock()
	f.emit(entity.AuthEventSignedOut, nil)
	return err
}

func (f *fakeAuthProvider) OnAuthStateChange(fn repository.AuthChangeHandler) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextHandler
	f.nextHandler++
	f.handlers[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.handlers, id)
	}
}

func (f *fakeAuthProvider) emit(ev entity.AuthEvent, sess *entity.Session) {
	f.mu.Lock()
	fns := make([]repository.AuthChangeHandler, 0, len(f.handlers))
	for _, fn := range f.handlers {
		fns = append(fns, fn)
	}
	f.mu.Unlock()
	for _, fn := range fns {
		fn(ev, sess)
	}
}

// fakeProfiles simula la tabla de perfiles. beforeGet permite bloquear una
// resolución para probar el descarte de resultados obsoletos.
type fakeProfiles struct {
	mu        sync.Mutex
	byEmail   map[string]*entity.Profile
	getErr    error
	createErr error
	beforeGet func(email string)
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{byEmail: make(map[string]*entity.Profile)}
}

func (f *fakeProfiles) Create(p *entity.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	cp := *p
	f.byEmail[p.Email] = &cp
	return nil
}

func (f *fakeProfiles) GetByID(string) (*entity.Profile, error) { return nil, nil }

func (f *fakeProfiles) GetByEmail(email string) (*entity.Profile, error) {
	if f.beforeGet != nil {
		f.beforeGet(email)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.byEmail[email], nil
}

func (f *fakeProfiles) Update(*entity.Profile) error { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func perfil(email, role string) *entity.Profile {
	return &entity.Profile{ID: "auth-" + email, Email: email, Name: "Test", Role: role}
}

func newManager(t *testing.T, auth *fakeAuthProvider, profiles *fakeProfiles) *session.Manager {
	t.Helper()
	m := session.NewManager(auth, profiles, session.NewMemRoleCache(), logger.Nop())
	t.Cleanup(m.Close)
	return m
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de arranque (Unknown → Authenticated | Anonymous)
// ──────────────────────────────────────────────────────────────────────────────

func TestManager_ArrancaEnUnknown(t *testing.T) {
	m := newManager(t, newFakeAuth(), newFakeProfiles())
	st, _ := m.Snapshot()
	assert.Equal(t, session.StateUnknown, st)
}

func TestManager_SinSesion_PasaAAnonymous(t *testing.T) {
	m := newManager(t, newFakeAuth(), newFakeProfiles())
	m.Start(context.Background())

	st, _ := m.Snapshot()
	assert.Equal(t, session.StateAnonymous, st)
	assert.False(t, m.IsAdmin())
}

func TestManager_ConSesionYPerfil_PasaAAuthenticated(t *testing.T) {
	auth := newFakeAuth()
	auth.session = &entity.Session{UserID: "auth-ana@tienda.co", Email: "ana@tienda.co", ExpiresAt: time.Now().Add(time.Hour)}
	profiles := newFakeProfiles()
	require.NoError(t, profiles.Create(perfil("ana@tienda.co", entity.RoleAdmin)))

	m := newManager(t, auth, profiles)
	m.Start(context.Background())

	st, ident := m.Snapshot()
	assert.Equal(t, session.StateAuthenticated, st)
	assert.Equal(t, "ana@tienda.co", ident.Email)
	assert.True(t, m.IsAdmin())
}

// Sin fila de perfil: identidad por defecto con rol user y nombre = parte local del email.
func TestManager_SinPerfil_IdentidadPorDefecto(t *testing.T) {
	auth := newFakeAuth()
	auth.session = &entity.Session{UserID: "auth-1", Email: "carlos@tienda.co", ExpiresAt: time.Now().Add(time.Hour)}

	m := newManager(t, auth, newFakeProfiles())
	m.Start(context.Background())

	st, ident := m.Snapshot()
	assert.Equal(t, session.StateAuthenticated, st)
	assert.Equal(t, entity.RoleUser, ident.Role)
	assert.Equal(t, "carlos", ident.Name, "el nombre se deriva de la parte local del email")
	assert.False(t, m.IsAdmin())
}

// Fallo del colaborador en la consulta inicial: se resuelve a Anonymous, nunca se propaga.
func TestManager_FalloDeColaborador_ResuelveAnonymous(t *testing.T) {
	auth := newFakeAuth()
	auth.sessionErr = errors.New("network timeout")

	m := newManager(t, auth, newFakeProfiles())
	m.Start(context.Background())

	st, _ := m.Snapshot()
	assert.Equal(t, session.StateAnonymous, st)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Login
// ──────────────────────────────────────────────────────────────────────────────

// La identidad la escribe la notificación SIGNED_IN, no Login; isAdmin refleja
// el rol del perfil resuelto.
func TestManager_Login_AdminRecibeRedirectAdmin(t *testing.T) {
	auth := newFakeAuth()
	auth.passwords["ana@tienda.co"] = "secreta123"
	profiles := newFakeProfiles()
	require.NoError(t, profiles.Create(perfil("ana@tienda.co", entity.RoleAdmin)))

	m := newManager(t, auth, profiles)
	m.Start(context.Background())

	res, err := m.Login(context.Background(), "ana@tienda.co", "secreta123")
	require.NoError(t, err)
	assert.Equal(t, "/admin", res.RedirectTarget)

	st, ident := m.Snapshot()
	assert.Equal(t, session.StateAuthenticated, st)
	assert.Equal(t, entity.RoleAdmin, ident.Role)
	assert.True(t, m.IsAdmin())
}

func TestManager_Login_UsuarioComunRedirigeARaiz(t *testing.T) {
	auth := newFakeAuth()
	auth.passwords["carlos@tienda.co"] = "secreta123"
	profiles := newFakeProfiles()
	require.NoError(t, profiles.Create(perfil("carlos@tienda.co", entity.RoleUser)))

	m := newManager(t, auth, profiles)
	m.Start(context.Background())

	res, err := m.Login(context.Background(), "carlos@tienda.co", "secreta123")
	require.NoError(t, err)
	assert.Equal(t, "/", res.RedirectTarget)
	assert.False(t, m.IsAdmin(), "rol user nunca es admin")
}

// Credenciales inválidas: error recuperable etiquetado, no excepción; el estado no cambia.
func TestManager_Login_CredencialesInvalidas(t *testing.T) {
	auth := newFakeAuth()
	m := newManager(t, auth, newFakeProfiles())
	m.Start(context.Background())

	res, err := m.Login(context.Background(), "ana@tienda.co", "incorrecta")
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
	assert.Equal(t, "Invalid email or password", err.Error())

	st, _ := m.Snapshot()
	assert.Equal(t, session.StateAnonymous, st)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Register
// ──────────────────────────────────────────────────────────────────────────────

// Password de 5 caracteres: rechazo local con el mensaje exacto y sin llamada al colaborador.
func TestManager_Register_PasswordCorta_SinLlamadaRemota(t *testing.T) {
	auth := newFakeAuth()
	m := newManager(t, auth, newFakeProfiles())

	err := m.Register(context.Background(), "ana@tienda.co", "12345", "Ana")
	require.Error(t, err)
	assert.Equal(t, "Password must be at least 6 characters", err.Error())
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Zero(t, auth.signUpCalls, "la validación local no debe emitir llamada de red")
}

func TestManager_Register_CreaPerfilConRolUser(t *testing.T) {
	auth := newFakeAuth()
	profiles := newFakeProfiles()
	m := newManager(t, auth, profiles)

	require.NoError(t, m.Register(context.Background(), "ana@tienda.co", "secreta123", "Ana"))

	p, err := profiles.GetByEmail("ana@tienda.co")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, entity.RoleUser, p.Role, "el registro siempre fija rol user")
	assert.Equal(t, "auth-ana@tienda.co", p.ID, "el perfil usa el ID asignado por auth")
}

// Insert de perfil falla después de crear la cuenta de auth: el fallo se
// reporta (la cuenta huérfana queda enmascarada por el fallback en el login).
func TestManager_Register_FalloDePerfil_SeReporta(t *testing.T) {
	auth := newFakeAuth()
	profiles := newFakeProfiles()
	profiles.createErr = errors.New("insert failed")
	m := newManager(t, auth, profiles)

	err := m.Register(context.Background(), "ana@tienda.co", "secreta123", "Ana")
	require.Error(t, err)
	assert.Equal(t, 1, auth.signUpCalls)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Logout y notificaciones
// ──────────────────────────────────────────────────────────────────────────────

// Logout limpia a Anonymous aunque el sign-out remoto falle.
func TestManager_Logout_IncondicionalAnteFalloRemoto(t *testing.T) {
	auth := newFakeAuth()
	auth.passwords["ana@tienda.co"] = "secreta123"
	profiles := newFakeProfiles()
	require.NoError(t, profiles.Create(perfil("ana@tienda.co", entity.RoleAdmin)))

	m := newManager(t, auth, profiles)
	m.Start(context.Background())
	_, err := m.Login(context.Background(), "ana@tienda.co", "secreta123")
	require.NoError(t, err)
	require.True(t, m.IsAdmin())

	auth.signOutErr = errors.New("service unavailable")
	m.Logout(context.Background())

	st, _ := m.Snapshot()
	assert.Equal(t, session.StateAnonymous, st)
	assert.False(t, m.IsAdmin())
}

// Evento de auth con sesión nil: transición a Anonymous y cache de rol borrado.
func TestManager_EventoSinSesion_LimpiaRolCacheado(t *testing.T) {
	auth := newFakeAuth()
	auth.passwords["ana@tienda.co"] = "secreta123"
	profiles := newFakeProfiles()
	require.NoError(t, profiles.Create(perfil("ana@tienda.co", entity.RoleAdmin)))
	roles := session.NewMemRoleCache()

	m := session.NewManager(auth, profiles, roles, logger.Nop())
	defer m.Close()
	m.Start(context.Background())
	_, err := m.Login(context.Background(), "ana@tienda.co", "secreta123")
	require.NoError(t, err)
	require.Equal(t, entity.RoleAdmin, roles.Get())

	// Sign-out iniciado en otro lado: llega solo la notificación.
	auth.emit(entity.AuthEventSignedOut, nil)

	st, _ := m.Snapshot()
	assert.Equal(t, session.StateAnonymous, st)
	assert.Empty(t, roles.Get(), "el rol espejado debe borrarse con la sesión")
}

// Tras Close, los eventos del colaborador ya no tocan al manager.
func TestManager_Close_DesregistraSuscripcion(t *testing.T) {
	auth := newFakeAuth()
	auth.passwords["ana@tienda.co"] = "secreta123"
	profiles := newFakeProfiles()
	require.NoError(t, profiles.Create(perfil("ana@tienda.co", entity.RoleUser)))

	m := session.NewManager(auth, profiles, session.NewMemRoleCache(), logger.Nop())
	m.Start(context.Background())
	m.Close()

	auth.emit(entity.AuthEventSignedIn, &entity.Session{UserID: "auth-x", Email: "ana@tienda.co"})

	st, _ := m.Snapshot()
	assert.Equal(t, session.StateAnonymous, st, "un manager cerrado no debe recibir eventos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Test de ordenamiento: una resolución lenta que completa tarde se descarta
// ──────────────────────────────────────────────────────────────────────────────

func TestManager_ResolucionObsoleta_SeDescarta(t *testing.T) {
	auth := newFakeAuth()
	profiles := newFakeProfiles()
	require.NoError(t, profiles.Create(perfil("ana@tienda.co", entity.RoleAdmin)))

	entroLaLenta := make(chan struct{})
	soltarLaLenta := make(chan struct{})
	var una sync.Once
	profiles.beforeGet = func(string) {
		una.Do(func() {
			close(entroLaLenta)
			<-soltarLaLenta
		})
	}

	m := newManager(t, auth, profiles)

	// Resolución A: SIGNED_IN que queda bloqueada dentro de la consulta de perfil.
	done := make(chan struct{})
	go func() {
		defer close(done)
		auth.emit(entity.AuthEventSignedIn, &entity.Session{UserID: "auth-1", Email: "ana@tienda.co"})
	}()
	<-entroLaLenta

	// Resolución B: sign-out posterior que se aplica de inmediato.
	auth.emit(entity.AuthEventSignedOut, nil)

	// A completa tarde: su token ya es obsoleto y no debe pisar a B.
	close(soltarLaLenta)
	<-done

	st, _ := m.Snapshot()
	assert.Equal(t, session.StateAnonymous, st,
		"la resolución vieja que terminó después no debe sobrescribir el estado más nuevo")
	assert.False(t, m.IsAdmin())
}
