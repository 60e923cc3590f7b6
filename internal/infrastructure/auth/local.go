package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/config"
	pkgjwt "github.com/jhoicas/Tienda-api/pkg/jwt"
)

// LocalAccounts es el registro de cuentas del proveedor local, compartido por
// todos los clientes (las cuentas son globales, la sesión es por cliente).
// Vive solo en memoria: en modo local un reinicio borra las cuentas creadas,
// salvo las que además tengan password_hash en la tabla users.
type LocalAccounts struct {
	mu       sync.Mutex
	byEmail  map[string]localAccount
	profiles repository.ProfileRepository
}

type localAccount struct {
	id   string
	hash []byte
}

// NewLocalAccounts construye el registro. profiles permite verificar usuarios
// sembrados en la tabla users con password_hash (ej. el admin de desarrollo).
func NewLocalAccounts(profiles repository.ProfileRepository) *LocalAccounts {
	return &LocalAccounts{byEmail: make(map[string]localAccount), profiles: profiles}
}

// signUp crea la cuenta y devuelve el ID asignado.
func (a *LocalAccounts) signUp(email, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.byEmail[email]; ok {
		return "", domain.E(domain.KindDuplicate, "User already registered")
	}
	if p, err := a.profiles.GetByEmail(email); err == nil && p != nil {
		return "", domain.E(domain.KindDuplicate, "User already registered")
	}
	id := uuid.New().String()
	a.byEmail[email] = localAccount{id: id, hash: hash}
	return id, nil
}

// verify compara la contraseña contra la cuenta en memoria o, si no existe,
// contra el password_hash de la fila de perfil. Devuelve el ID de la cuenta.
func (a *LocalAccounts) verify(email, password string) (string, error) {
	a.mu.Lock()
	acc, ok := a.byEmail[email]
	a.mu.Unlock()
	if ok {
		if bcrypt.CompareHashAndPassword(acc.hash, []byte(password)) != nil {
			return "", domain.ErrInvalidCredentials
		}
		return acc.id, nil
	}
	p, err := a.profiles.GetByEmail(email)
	if err != nil {
		return "", fmt.Errorf("lookup profile: %w", err)
	}
	if p == nil || p.PasswordHash == "" {
		return "", domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}
	return p.ID, nil
}

var _ repository.AuthProvider = (*LocalProvider)(nil)

// LocalProvider es el colaborador de auth en modo local: una instancia por
// cliente conectado, con su propia sesión vigente y sus propios suscriptores.
type LocalProvider struct {
	accounts *LocalAccounts
	profiles repository.ProfileRepository
	jwtCfg   config.JWTConfig
	events   *emitter

	mu   sync.Mutex
	sess *entity.Session
}

// NewLocalProvider construye el proveedor local para un cliente.
func NewLocalProvider(accounts *LocalAccounts, profiles repository.ProfileRepository, jwtCfg config.JWTConfig) *LocalProvider {
	return &LocalProvider{
		accounts: accounts,
		profiles: profiles,
		jwtCfg:   jwtCfg,
		events:   newEmitter(),
	}
}

// GetSession devuelve la sesión vigente del cliente, nil si no hay o venció.
func (p *LocalProvider) GetSession(ctx context.Context) (*entity.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sess == nil || p.sess.Expired() {
		return nil, nil
	}
	return p.sess, nil
}

// SignUp crea la cuenta. No inicia sesión: el registro y el login son pasos separados.
func (p *LocalProvider) SignUp(ctx context.Context, email, password string) (string, error) {
	return p.accounts.signUp(email, password)
}

// SignInWithPassword verifica credenciales, emite el access token y notifica
// SIGNED_IN a los suscriptores de este cliente.
func (p *LocalProvider) SignInWithPassword(ctx context.Context, email, password string) (*entity.Session, error) {
	userID, err := p.accounts.verify(email, password)
	if err != nil {
		return nil, err
	}
	role := entity.RoleUser
	if prof, err := p.profiles.GetByEmail(email); err == nil && prof != nil {
		role = prof.Role
	}
	token, err := pkgjwt.Generate(p.jwtCfg.Secret, userID, email, role, p.jwtCfg.Issuer, p.jwtCfg.Expiration)
	if err != nil {
		return nil, err
	}
	sess := &entity.Session{
		AccessToken: token,
		UserID:      userID,
		Email:       email,
		ExpiresAt:   time.Now().Add(time.Duration(p.jwtCfg.Expiration) * time.Minute),
	}
	p.mu.Lock()
	p.sess = sess
	p.mu.Unlock()
	p.events.emit(entity.AuthEventSignedIn, sess)
	return sess, nil
}

// SignOut limpia la sesión del cliente y notifica SIGNED_OUT.
func (p *LocalProvider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	p.sess = nil
	p.mu.Unlock()
	p.events.emit(entity.AuthEventSignedOut, nil)
	return nil
}

// OnAuthStateChange registra el handler de cambios de sesión de este cliente.
func (p *LocalProvider) OnAuthStateChange(fn repository.AuthChangeHandler) (unsubscribe func()) {
	return p.events.subscribe(fn)
}
