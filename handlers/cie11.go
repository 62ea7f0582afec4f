package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/German880/Front-inder/cie11"
)

// BuscarCIE11PorCodigo resuelve el nombre de la enfermedad de un código CIE-11
func BuscarCIE11PorCodigo(c *fiber.Ctx) error {
	codigo := cie11.NormalizarCodigo(c.Params("codigo"))
	if codigo == "" {
		return fallo(c, fiber.StatusBadRequest, "F50", "Ingrese un código CIE-11")
	}
	nombre, ok := cie11.BuscarEnfermedadPorCodigo(codigo)
	if !ok {
		return fallo(c, fiber.StatusNotFound, "F50", "Código CIE-11 no encontrado")
	}
	return exito(c, fiber.StatusOK, "S50", cie11.Enfermedad{Codigo: codigo, Nombre: nombre})
}

// BuscarCIE11PorNombre sugiere códigos para un nombre parcial (mínimo 3 caracteres)
func BuscarCIE11PorNombre(c *fiber.Ctx) error {
	nombre := c.Query("nombre")
	sugerencias := cie11.BuscarCodigosPorNombre(nombre)
	if sugerencias == nil {
		sugerencias = []cie11.Sugerencia{}
	}
	return exito(c, fiber.StatusOK, "S51", fiber.Map{
		"nombre":      nombre,
		"sugerencias": sugerencias,
	})
}
