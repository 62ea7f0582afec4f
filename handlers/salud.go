package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/German880/Front-inder/backend"
	"github.com/German880/Front-inder/historia"
)

// Salud informa el estado del servicio y si el backend responde
func Salud(c *fiber.Ctx) error {
	estado := fiber.Map{
		"status":  "ok",
		"backend": "ok",
	}
	if store := historia.GetStore(); store != nil {
		estado["sesiones"] = store.Len()
	}
	cliente := backend.GetClient()
	if cliente == nil {
		estado["backend"] = "no configurado"
		return exito(c, fiber.StatusServiceUnavailable, "F81", estado)
	}
	if err := cliente.Health(ctxDe(c)); err != nil {
		estado["status"] = "degradado"
		estado["backend"] = err.Error()
		return exito(c, fiber.StatusServiceUnavailable, "F81", estado)
	}
	return exito(c, fiber.StatusOK, "S81", estado)
}
