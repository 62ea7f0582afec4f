package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// CookieToken es la cookie donde el navegador guarda el token
const CookieToken = "auth_token"

// Claims que se leen del token. La firma la verifica el backend.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

var parser = jwt.NewParser()

// TokenPassThrough toma el token del header Authorization o de la cookie
// auth_token y lo deja en Locals("token") para reenviarlo al backend.
// Un JWT expirado se rechaza sin llamar al backend; un token opaco pasa tal cual.
func TokenPassThrough() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extraerToken(c)
		if token == "" {
			return c.Next()
		}

		claims := &Claims{}
		if _, _, err := parser.ParseUnverified(token, claims); err == nil {
			if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
				LimpiarToken(c)
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error":   true,
					"message": "Token expirado",
				})
			}
			c.Locals("user_id", claims.Subject)
			c.Locals("user_email", claims.Email)
		}

		c.Locals("token", token)
		return c.Next()
	}
}

// RequireToken rechaza la petición si no trae token
func RequireToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if TokenDe(c) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   true,
				"message": "Token de autorización requerido",
			})
		}
		return c.Next()
	}
}

func extraerToken(c *fiber.Ctx) string {
	if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
		if token := strings.TrimPrefix(authHeader, "Bearer "); token != authHeader {
			return strings.TrimSpace(token)
		}
	}
	return c.Cookies(CookieToken)
}

// TokenDe devuelve el token de la petición o ""
func TokenDe(c *fiber.Ctx) string {
	token, _ := c.Locals("token").(string)
	return token
}

// LimpiarToken borra la cookie auth_token (el backend respondió 401)
func LimpiarToken(c *fiber.Ctx) {
	c.ClearCookie(CookieToken)
}
