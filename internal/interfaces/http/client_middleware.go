package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// clientCookie identifica al visitante: su carrito y su manager de sesión
// viven bajo este ID mientras dure el proceso.
const clientCookie = "client_id"

// ClientMiddleware garantiza que cada visitante tenga cookie de client ID,
// creándola en la primera petición.
func ClientMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Cookies(clientCookie)
		if id == "" {
			id = uuid.New().String()
			c.Cookie(&fiber.Cookie{
				Name:     clientCookie,
				Value:    id,
				Expires:  time.Now().Add(365 * 24 * time.Hour),
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Locals(clientCookie, id)
		return c.Next()
	}
}

// GetClientID devuelve el client ID del visitante (después de ClientMiddleware).
func GetClientID(c *fiber.Ctx) string {
	return localString(c, clientCookie)
}
