package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/config"
)

var _ repository.AuthProvider = (*HostedProvider)(nil)

// HostedProvider habla con la API REST del servicio de auth gestionado
// (endpoints /signup, /token, /logout). Usa net/http de la stdlib; el
// servicio no tiene SDK oficial de Go. Una instancia por cliente conectado.
type HostedProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	events     *emitter

	mu   sync.Mutex
	sess *entity.Session
}

// NewHostedProvider construye el proveedor contra el servicio gestionado.
func NewHostedProvider(cfg config.AuthConfig) *HostedProvider {
	return &HostedProvider{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		events:     newEmitter(),
	}
}

// Respuestas del servicio gestionado (solo los campos que usamos).

type hostedUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type hostedTokenResponse struct {
	AccessToken string     `json:"access_token"`
	ExpiresIn   int        `json:"expires_in"`
	User        hostedUser `json:"user"`
}

type hostedErrorResponse struct {
	Message          string `json:"msg"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// GetSession devuelve la sesión vigente del cliente, nil si no hay o venció.
func (p *HostedProvider) GetSession(ctx context.Context) (*entity.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sess == nil || p.sess.Expired() {
		return nil, nil
	}
	return p.sess, nil
}

// SignUp crea la cuenta en el servicio y devuelve el ID que éste asignó.
func (p *HostedProvider) SignUp(ctx context.Context, email, password string) (string, error) {
	var out hostedUser
	err := p.post(ctx, "/signup", map[string]string{"email": email, "password": password}, "", &out)
	if err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", fmt.Errorf("signup: respuesta sin id de usuario")
	}
	return out.ID, nil
}

// SignInWithPassword canjea credenciales por un access token y notifica SIGNED_IN.
func (p *HostedProvider) SignInWithPassword(ctx context.Context, email, password string) (*entity.Session, error) {
	var out hostedTokenResponse
	err := p.post(ctx, "/token?grant_type=password", map[string]string{"email": email, "password": password}, "", &out)
	if err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, fmt.Errorf("token: respuesta sin access token")
	}
	sess := &entity.Session{
		AccessToken: out.AccessToken,
		UserID:      out.User.ID,
		Email:       out.User.Email,
		ExpiresAt:   time.Now().Add(time.Duration(out.ExpiresIn) * time.Second),
	}
	p.mu.Lock()
	p.sess = sess
	p.mu.Unlock()
	p.events.emit(entity.AuthEventSignedIn, sess)
	return sess, nil
}

// SignOut revoca el token en el servicio, limpia la sesión local y notifica
// SIGNED_OUT. El error remoto se devuelve, pero la sesión local ya quedó limpia.
func (p *HostedProvider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	token := ""
	if p.sess != nil {
		token = p.sess.AccessToken
	}
	p.sess = nil
	p.mu.Unlock()

	var remoteErr error
	if token != "" {
		remoteErr = p.post(ctx, "/logout", struct{}{}, token, nil)
	}
	p.events.emit(entity.AuthEventSignedOut, nil)
	return remoteErr
}

// OnAuthStateChange registra el handler de cambios de sesión de este cliente.
func (p *HostedProvider) OnAuthStateChange(fn repository.AuthChangeHandler) (unsubscribe func()) {
	return p.events.subscribe(fn)
}

// post hace un POST JSON al servicio con la apikey y, opcionalmente, el Bearer token.
func (p *HostedProvider) post(ctx context.Context, path string, body any, bearer string, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", p.apiKey)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("auth request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return hostedError(resp.StatusCode, raw)
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// hostedError traduce la respuesta de error del servicio a un error de dominio.
func hostedError(status int, raw []byte) error {
	var body hostedErrorResponse
	_ = json.Unmarshal(raw, &body)
	msg := body.Message
	if msg == "" {
		msg = body.ErrorDescription
	}
	if msg == "" {
		msg = body.Error
	}
	if msg == "" {
		msg = fmt.Sprintf("auth service status %d", status)
	}
	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized:
		// Credenciales rechazadas (el servicio usa 400 para grant inválido).
		return domain.Wrap(domain.KindUnauthorized, msg, domain.ErrInvalidCredentials)
	case http.StatusUnprocessableEntity, http.StatusConflict:
		return domain.E(domain.KindDuplicate, msg)
	}
	return domain.E(domain.KindCollaborator, msg)
}
