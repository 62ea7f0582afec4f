package handlers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"

	"github.com/German880/Front-inder/backend"
	"github.com/German880/Front-inder/catalogos"
	"github.com/German880/Front-inder/middleware"
)

// Opciones de los handlers que vienen de la configuración
type Opciones struct {
	MaxUploadBytes int64
}

var (
	opciones = Opciones{MaxUploadBytes: 10 << 20}
	ahora    = time.Now
)

// Configurar fija las opciones de los handlers al arrancar
func Configurar(o Opciones) {
	opciones = o
}

// clienteDe devuelve el cliente del backend con el token de la petición
func clienteDe(c *fiber.Ctx) *backend.Client {
	return backend.GetClient().ConToken(middleware.TokenDe(c))
}

func ctxDe(c *fiber.Ctx) context.Context {
	return c.UserContext()
}

func exito(c *fiber.Ctx, status int, intCode string, data interface{}) error {
	return c.Status(status).JSON(StandardResponse{
		StatusCode: status,
		Body: BodyResponse{
			IntCode: intCode,
			Data:    []interface{}{data},
		},
	})
}

func fallo(c *fiber.Ctx, status int, intCode string, mensaje string) error {
	return c.Status(status).JSON(StandardResponse{
		StatusCode: status,
		Body: BodyResponse{
			IntCode: intCode,
			Data:    []interface{}{fiber.Map{"error": mensaje}},
		},
	})
}

func falloValidacion(c *fiber.Ctx, intCode string, campos map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(StandardResponse{
		StatusCode: fiber.StatusBadRequest,
		Body: BodyResponse{
			IntCode: intCode,
			Data:    []interface{}{fiber.Map{"error": "Datos inválidos", "campos": campos}},
		},
	})
}

// falloBackend traduce un error de una llamada al backend. Los 401 borran la
// cookie del token; los fallos de transporte son 502.
func falloBackend(c *fiber.Ctx, intCode string, err error, mensaje string) error {
	status := fiber.StatusInternalServerError
	var apiErr *backend.APIError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.Status
		mensaje = apiErr.Mensaje
		if status == fiber.StatusUnauthorized {
			middleware.LimpiarToken(c)
		}
	case errors.Is(err, backend.ErrNoDisponible):
		status = fiber.StatusBadGateway
		mensaje = "El servidor de historias clínicas no está disponible"
	case errors.Is(err, context.DeadlineExceeded):
		status = fiber.StatusGatewayTimeout
		mensaje = "El servidor de historias clínicas no respondió a tiempo"
	}
	if errors.Is(err, catalogos.ErrCarga) {
		mensaje = catalogos.ErrCarga.Error()
		// un catálogo que falta en el backend no es un 404 del recurso pedido
		if status < fiber.StatusInternalServerError && status != fiber.StatusUnauthorized {
			status = fiber.StatusBadGateway
		}
	}
	if status >= fiber.StatusInternalServerError {
		reportar(c, err)
	}
	return fallo(c, status, intCode, mensaje)
}

// reportar envía el error a Sentry con la ruta de la petición
func reportar(c *fiber.Ctx, err error) {
	hub := sentry.CurrentHub().Clone()
	if hub.Client() == nil {
		return
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("method", c.Method())
		scope.SetTag("path", c.Route().Path)
		if rid, ok := c.Locals("requestid").(string); ok {
			scope.SetTag("request_id", rid)
		}
		hub.CaptureException(err)
	})
}

// paginacion lee page (>= 1) y page_size (1..100, por defecto 10)
func paginacion(c *fiber.Ctx) (int, int, bool) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		return 0, 0, false
	}
	size, err := strconv.Atoi(c.Query("page_size", "10"))
	if err != nil || size < 1 || size > 100 {
		return 0, 0, false
	}
	return page, size, true
}
