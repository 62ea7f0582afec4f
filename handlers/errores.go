package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorHandler responde los errores que llegan a Fiber con el formato estándar
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	mensaje := "Error interno del servidor"
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		mensaje = e.Message
	}
	if code >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
		reportar(c, err)
	}
	return fallo(c, code, "F90", mensaje)
}

// RutaNoEncontrada responde 404 a las rutas que no existen
func RutaNoEncontrada(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(StandardResponse{
		StatusCode: fiber.StatusNotFound,
		Body: BodyResponse{
			IntCode: "F91",
			Data: []interface{}{fiber.Map{
				"error":   "Ruta no encontrada",
				"message": "La ruta solicitada no existe en este servidor",
				"path":    c.Path(),
				"method":  c.Method(),
			}},
		},
	})
}
