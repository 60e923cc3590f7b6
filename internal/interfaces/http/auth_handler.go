package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/session"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// AuthHandler maneja registro, login, logout y consulta de sesión del visitante.
type AuthHandler struct {
	sessions *session.Registry
}

// NewAuthHandler construye el handler.
func NewAuthHandler(sessions *session.Registry) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Datos de registro"
// @Success      201   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	m := h.sessions.For(c.Context(), GetClientID(c))
	if err := m.Register(c.Context(), in.Email, in.Password, in.Name); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sessionResponse(m))
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	m := h.sessions.For(c.Context(), GetClientID(c))
	result, err := m.Login(c.Context(), in.Email, in.Password)
	if err != nil {
		return respondError(c, err)
	}
	_, ident := m.Snapshot()
	return c.JSON(dto.LoginResponse{
		Token:          m.Token(c.Context()),
		User:           identityResponse(ident),
		RedirectTarget: result.RedirectTarget,
	})
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	m := h.sessions.For(c.Context(), GetClientID(c))
	m.Logout(c.Context())
	return c.JSON(sessionResponse(m))
}

// Session godoc
// @Summary      Estado de sesión del visitante
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/auth/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	m := h.sessions.For(c.Context(), GetClientID(c))
	return c.JSON(sessionResponse(m))
}

func sessionResponse(m *session.Manager) dto.SessionResponse {
	st, ident := m.Snapshot()
	out := dto.SessionResponse{State: st.String(), IsAdmin: m.IsAdmin()}
	if st == session.StateAuthenticated {
		u := identityResponse(ident)
		out.User = &u
	}
	return out
}

func identityResponse(ident entity.Identity) dto.IdentityResponse {
	return dto.IdentityResponse{
		ID:    ident.ID,
		Email: ident.Email,
		Role:  ident.Role,
		Name:  ident.Name,
	}
}
