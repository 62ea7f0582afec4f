package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/German880/Front-inder/catalogos"
)

// ObtenerCatalogos devuelve todos los catálogos de la caché
func ObtenerCatalogos(c *fiber.Ctx) error {
	todos, err := catalogos.GetCache().Todos(ctxDe(c))
	if err != nil {
		return falloBackend(c, "F52", err, catalogos.ErrCarga.Error())
	}
	return exito(c, fiber.StatusOK, "S52", todos)
}

// ObtenerItemsCatalogo devuelve los items de un catálogo. Los catálogos que no
// están en caché se piden al backend.
func ObtenerItemsCatalogo(c *fiber.Ctx) error {
	nombre := c.Params("nombre")
	for _, n := range catalogos.Nombres {
		if n == nombre {
			items, err := catalogos.GetCache().Items(ctxDe(c), nombre)
			if err != nil {
				return falloBackend(c, "F53", err, catalogos.ErrCarga.Error())
			}
			return exito(c, fiber.StatusOK, "S53", items)
		}
	}
	items, err := clienteDe(c).ItemsCatalogo(ctxDe(c), nombre)
	if err != nil {
		return falloBackend(c, "F53", err, "Error al obtener el catálogo")
	}
	return exito(c, fiber.StatusOK, "S53", items)
}

// ListarDefinicionesCatalogo lista los catálogos definidos en el backend
func ListarDefinicionesCatalogo(c *fiber.Ctx) error {
	lista, err := clienteDe(c).Catalogos(ctxDe(c))
	if err != nil {
		return falloBackend(c, "F54", err, "Error al obtener los catálogos")
	}
	return exito(c, fiber.StatusOK, "S54", lista)
}

// ObtenerDefinicionCatalogo obtiene un catálogo por nombre
func ObtenerDefinicionCatalogo(c *fiber.Ctx) error {
	cat, err := clienteDe(c).Catalogo(ctxDe(c), c.Params("nombre"))
	if err != nil {
		return falloBackend(c, "F54", err, "Error al obtener el catálogo")
	}
	return exito(c, fiber.StatusOK, "S54", cat)
}

// RecargarCatalogos descarta la caché y vuelve a cargar los catálogos
func RecargarCatalogos(c *fiber.Ctx) error {
	cache := catalogos.GetCache()
	if err := cache.Cargar(ctxDe(c)); err != nil {
		return falloBackend(c, "F55", err, catalogos.ErrCarga.Error())
	}
	todos, err := cache.Todos(ctxDe(c))
	if err != nil {
		return falloBackend(c, "F55", err, catalogos.ErrCarga.Error())
	}
	return exito(c, fiber.StatusOK, "S55", todos)
}
