package handlers

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/German880/Front-inder/catalogos"
	"github.com/German880/Front-inder/models"
)

// vistaDeportista agrega edad y etiquetas de catálogo para mostrar
func vistaDeportista(d models.Deportista, hoy time.Time) models.DeportistaVista {
	v := models.DeportistaVista{Deportista: d, NombreCompleto: d.NombreCompleto()}
	if d.Edad == nil {
		if edad, ok := models.CalcularEdad(d.FechaNacimiento, hoy); ok {
			v.Edad = &edad
		}
	}
	if cache := catalogos.GetCache(); cache != nil {
		v.TipoDocumento = cache.Etiqueta(models.CatalogoTipoDocumento, d.TipoDocumentoID)
		v.Sexo = cache.Etiqueta(models.CatalogoSexo, d.SexoID)
		v.Estado = cache.Etiqueta(models.CatalogoEstadoDeportista, d.EstadoID)
	}
	return v
}

func vistasDeportistas(c *fiber.Ctx, lista []models.Deportista) []models.DeportistaVista {
	if cache := catalogos.GetCache(); cache != nil {
		if err := cache.Asegurar(ctxDe(c)); err != nil {
			log.Warn().Err(err).Msg("deportistas sin etiquetas de catálogo")
		}
	}
	hoy := ahora()
	res := make([]models.DeportistaVista, 0, len(lista))
	for _, d := range lista {
		res = append(res, vistaDeportista(d, hoy))
	}
	return res
}

// CrearDeportista valida y registra un deportista
func CrearDeportista(c *fiber.Ctx) error {
	var req models.DeportistaCreate
	if err := c.BodyParser(&req); err != nil {
		return fallo(c, fiber.StatusBadRequest, "F10", "Datos inválidos")
	}
	req.Nombres = strings.TrimSpace(req.Nombres)
	req.Apellidos = strings.TrimSpace(req.Apellidos)
	req.NumeroDocumento = strings.TrimSpace(req.NumeroDocumento)
	req.Email = strings.TrimSpace(req.Email)

	if errs := req.Validar(ahora()); len(errs) > 0 {
		return falloValidacion(c, "F10", errs)
	}

	d, err := clienteDe(c).CrearDeportista(ctxDe(c), req)
	if err != nil {
		return falloBackend(c, "F10", err, "Error al registrar el deportista")
	}
	return exito(c, fiber.StatusCreated, "S10", vistasDeportistas(c, []models.Deportista{*d})[0])
}

// ListarDeportistas lista deportistas paginados con edad y etiquetas
func ListarDeportistas(c *fiber.Ctx) error {
	page, size, ok := paginacion(c)
	if !ok {
		return fallo(c, fiber.StatusBadRequest, "F11", "Parámetros de paginación inválidos")
	}
	res, err := clienteDe(c).Deportistas(ctxDe(c), page, size)
	if err != nil {
		return falloBackend(c, "F11", err, "Error al obtener los deportistas")
	}
	return exito(c, fiber.StatusOK, "S11", PaginaResponse{
		Items:      vistasDeportistas(c, res.Items),
		Total:      res.Total,
		Page:       res.Page,
		PageSize:   res.PageSize,
		TotalPages: res.TotalPages,
	})
}

// ObtenerDeportista obtiene un deportista por id
func ObtenerDeportista(c *fiber.Ctx) error {
	d, err := clienteDe(c).Deportista(ctxDe(c), c.Params("id"))
	if err != nil {
		return falloBackend(c, "F11", err, "Error al obtener el deportista")
	}
	return exito(c, fiber.StatusOK, "S11", vistasDeportistas(c, []models.Deportista{*d})[0])
}

// BuscarDeportistas busca por nombre, apellido o documento
func BuscarDeportistas(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return fallo(c, fiber.StatusBadRequest, "F14", "Ingrese un texto de búsqueda")
	}
	lista, err := clienteDe(c).BuscarDeportistas(ctxDe(c), q)
	if err != nil {
		return falloBackend(c, "F14", err, "Error al buscar deportistas")
	}
	return exito(c, fiber.StatusOK, "S14", vistasDeportistas(c, lista))
}

// validarCambiosDeportista valida solo los campos presentes en la actualización
func validarCambiosDeportista(cambios map[string]interface{}) map[string]string {
	raw, _ := json.Marshal(cambios)
	var d models.DeportistaCreate
	if err := json.Unmarshal(raw, &d); err != nil {
		return map[string]string{"_": "Datos inválidos"}
	}
	errs := map[string]string{}
	for campo, msg := range d.Validar(ahora()) {
		if _, presente := cambios[campo]; presente {
			errs[campo] = msg
		}
	}
	return errs
}

// ActualizarDeportista modifica los campos enviados de un deportista
func ActualizarDeportista(c *fiber.Ctx) error {
	var cambios map[string]interface{}
	if err := c.BodyParser(&cambios); err != nil || len(cambios) == 0 {
		return fallo(c, fiber.StatusBadRequest, "F12", "Datos inválidos")
	}
	if errs := validarCambiosDeportista(cambios); len(errs) > 0 {
		return falloValidacion(c, "F12", errs)
	}
	d, err := clienteDe(c).ActualizarDeportista(ctxDe(c), c.Params("id"), cambios)
	if err != nil {
		return falloBackend(c, "F12", err, "Error al actualizar el deportista")
	}
	return exito(c, fiber.StatusOK, "S12", vistasDeportistas(c, []models.Deportista{*d})[0])
}

// EliminarDeportista elimina un deportista
func EliminarDeportista(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := clienteDe(c).EliminarDeportista(ctxDe(c), id); err != nil {
		return falloBackend(c, "F13", err, "Error al eliminar el deportista")
	}
	return exito(c, fiber.StatusOK, "S13", fiber.Map{"message": "Deportista eliminado", "id": id})
}

// HistoriasDeDeportista lista las historias clínicas de un deportista
func HistoriasDeDeportista(c *fiber.Ctx) error {
	lista, err := clienteDe(c).HistoriasDeDeportista(ctxDe(c), c.Params("id"))
	if err != nil {
		return falloBackend(c, "F15", err, "Error al obtener las historias del deportista")
	}
	return exito(c, fiber.StatusOK, "S15", lista)
}

// DeportistasConCitaHoy lista los deportistas con cita hoy, filtrando por
// nombre o documento con q
func DeportistasConCitaHoy(c *fiber.Ctx) error {
	lista, err := clienteDe(c).DeportistasConCitasHoy(ctxDe(c))
	if err != nil {
		return falloBackend(c, "F15", err, "Error al cargar deportistas")
	}
	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	if q != "" {
		filtrados := lista[:0]
		for _, d := range lista {
			texto := strings.ToLower(d.Nombres + " " + d.Apellidos + " " + d.NumeroDocumento)
			if strings.Contains(texto, q) {
				filtrados = append(filtrados, d)
			}
		}
		lista = filtrados
	}
	return exito(c, fiber.StatusOK, "S15", vistasDeportistas(c, lista))
}
