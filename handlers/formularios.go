package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// ListarFormularios lista los formularios dinámicos, filtrando por ?modulo=
func ListarFormularios(c *fiber.Ctx) error {
	lista, err := clienteDe(c).Formularios(ctxDe(c), c.Query("modulo"))
	if err != nil {
		return falloBackend(c, "F70", err, "Error al obtener los formularios")
	}
	return exito(c, fiber.StatusOK, "S70", lista)
}

func ObtenerFormulario(c *fiber.Ctx) error {
	f, err := clienteDe(c).Formulario(ctxDe(c), c.Params("id"))
	if err != nil {
		return falloBackend(c, "F70", err, "Error al obtener el formulario")
	}
	return exito(c, fiber.StatusOK, "S70", f)
}

// ListarPlantillas lista las plantillas clínicas
func ListarPlantillas(c *fiber.Ctx) error {
	lista, err := clienteDe(c).Plantillas(ctxDe(c))
	if err != nil {
		return falloBackend(c, "F71", err, "Error al obtener las plantillas")
	}
	return exito(c, fiber.StatusOK, "S71", lista)
}

// PlantillaPorSistema devuelve la plantilla de exploración de un sistema
func PlantillaPorSistema(c *fiber.Ctx) error {
	p, err := clienteDe(c).PlantillaPorSistema(ctxDe(c), c.Params("sistema"))
	if err != nil {
		return falloBackend(c, "F71", err, "Error al obtener la plantilla")
	}
	return exito(c, fiber.StatusOK, "S71", p)
}
