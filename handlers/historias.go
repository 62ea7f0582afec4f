package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/German880/Front-inder/models"
)

// ListarHistorias lista las historias clínicas paginadas
func ListarHistorias(c *fiber.Ctx) error {
	page, size, ok := paginacion(c)
	if !ok {
		return fallo(c, fiber.StatusBadRequest, "F21", "Parámetros de paginación inválidos")
	}
	res, err := clienteDe(c).HistoriasClinicas(ctxDe(c), page, size)
	if err != nil {
		return falloBackend(c, "F21", err, "Error al obtener las historias clínicas")
	}
	return exito(c, fiber.StatusOK, "S21", PaginaResponse{
		Items:      res.Items,
		Total:      res.Total,
		Page:       res.Page,
		PageSize:   res.PageSize,
		TotalPages: res.TotalPages,
	})
}

// ObtenerHistoria obtiene una historia clínica por id
func ObtenerHistoria(c *fiber.Ctx) error {
	h, err := clienteDe(c).HistoriaClinica(ctxDe(c), c.Params("id"))
	if err != nil {
		return falloBackend(c, "F21", err, "Error al obtener la historia clínica")
	}
	return exito(c, fiber.StatusOK, "S21", h)
}

// CrearHistoria registra una historia clínica sin pasar por el asistente
func CrearHistoria(c *fiber.Ctx) error {
	var h models.HistoriaClinica
	if err := c.BodyParser(&h); err != nil {
		return fallo(c, fiber.StatusBadRequest, "F20", "Datos inválidos")
	}
	errs := map[string]string{}
	if h.DeportistaID == "" {
		errs["deportista_id"] = "Requerido"
	}
	if h.EstadoID == "" {
		errs["estado_id"] = "Requerido"
	}
	if len(errs) > 0 {
		return falloValidacion(c, "F20", errs)
	}
	if h.FechaApertura == "" {
		h.FechaApertura = ahora().Format(models.FormatoFecha)
	}

	creada, err := clienteDe(c).CrearHistoria(ctxDe(c), h)
	if err != nil {
		return falloBackend(c, "F20", err, "Error al crear la historia clínica")
	}
	return exito(c, fiber.StatusCreated, "S20", creada)
}

// ActualizarHistoria modifica los campos enviados de una historia
func ActualizarHistoria(c *fiber.Ctx) error {
	var cambios map[string]interface{}
	if err := c.BodyParser(&cambios); err != nil || len(cambios) == 0 {
		return fallo(c, fiber.StatusBadRequest, "F22", "Datos inválidos")
	}
	h, err := clienteDe(c).ActualizarHistoria(ctxDe(c), c.Params("id"), cambios)
	if err != nil {
		return falloBackend(c, "F22", err, "Error al actualizar la historia clínica")
	}
	return exito(c, fiber.StatusOK, "S22", h)
}

// EliminarHistoria elimina una historia clínica
func EliminarHistoria(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := clienteDe(c).EliminarHistoria(ctxDe(c), id); err != nil {
		return falloBackend(c, "F23", err, "Error al eliminar la historia clínica")
	}
	return exito(c, fiber.StatusOK, "S23", fiber.Map{"message": "Historia clínica eliminada", "id": id})
}

// CrearHistoriaCompleta reenvía una historia con todos sus datos en una sola llamada
func CrearHistoriaCompleta(c *fiber.Ctx) error {
	body := c.Body()
	if !json.Valid(body) {
		return fallo(c, fiber.StatusBadRequest, "F24", "Datos inválidos")
	}
	res, err := clienteDe(c).CrearHistoriaCompleta(ctxDe(c), json.RawMessage(body))
	if err != nil {
		return falloBackend(c, "F24", err, "Error al crear la historia clínica")
	}
	return exito(c, fiber.StatusCreated, "S24", res)
}

// ObtenerHistoriaCompleta devuelve la historia con grupos, respuestas y archivos
func ObtenerHistoriaCompleta(c *fiber.Ctx) error {
	res, err := clienteDe(c).HistoriaCompleta(ctxDe(c), c.Params("id"))
	if err != nil {
		return falloBackend(c, "F24", err, "Error al obtener la historia clínica")
	}
	return exito(c, fiber.StatusOK, "S24", res)
}

func GruposDeHistoria(c *fiber.Ctx) error {
	lista, err := clienteDe(c).GruposDeHistoria(ctxDe(c), c.Params("id"))
	if err != nil {
		return falloBackend(c, "F25", err, "Error al obtener los grupos de respuestas")
	}
	return exito(c, fiber.StatusOK, "S25", lista)
}

func RespuestasDeHistoria(c *fiber.Ctx) error {
	lista, err := clienteDe(c).RespuestasDeHistoria(ctxDe(c), c.Params("id"))
	if err != nil {
		return falloBackend(c, "F25", err, "Error al obtener las respuestas")
	}
	return exito(c, fiber.StatusOK, "S25", lista)
}

func ArchivosDeHistoria(c *fiber.Ctx) error {
	lista, err := clienteDe(c).ArchivosDeHistoria(ctxDe(c), c.Params("id"))
	if err != nil {
		return falloBackend(c, "F61", err, "Error al obtener los archivos")
	}
	return exito(c, fiber.StatusOK, "S61", lista)
}

// CrearRespuestaGrupo crea el grupo que agrupa las respuestas de un paso
func CrearRespuestaGrupo(c *fiber.Ctx) error {
	var g models.RespuestaGrupo
	if err := c.BodyParser(&g); err != nil {
		return fallo(c, fiber.StatusBadRequest, "F26", "Datos inválidos")
	}
	if g.HistoriaClinicaID == "" {
		return falloValidacion(c, "F26", map[string]string{"historia_clinica_id": "Requerido"})
	}
	creado, err := clienteDe(c).CrearRespuestaGrupo(ctxDe(c), g)
	if err != nil {
		return falloBackend(c, "F26", err, "Error al crear el grupo de respuestas")
	}
	return exito(c, fiber.StatusCreated, "S26", creado)
}

func RespuestasDeGrupo(c *fiber.Ctx) error {
	lista, err := clienteDe(c).RespuestasDeGrupo(ctxDe(c), c.Params("id"))
	if err != nil {
		return falloBackend(c, "F26", err, "Error al obtener las respuestas del grupo")
	}
	return exito(c, fiber.StatusOK, "S26", lista)
}

// CrearRespuesta guarda una respuesta suelta
func CrearRespuesta(c *fiber.Ctx) error {
	var r models.FormularioRespuesta
	if err := c.BodyParser(&r); err != nil {
		return fallo(c, fiber.StatusBadRequest, "F26", "Datos inválidos")
	}
	errs := map[string]string{}
	if r.HistoriaClinicaID == "" {
		errs["historia_clinica_id"] = "Requerido"
	}
	if r.CampoID == "" {
		errs["campo_id"] = "Requerido"
	}
	if len(errs) > 0 {
		return falloValidacion(c, "F26", errs)
	}
	creada, err := clienteDe(c).CrearRespuesta(ctxDe(c), r)
	if err != nil {
		return falloBackend(c, "F26", err, "Error al guardar la respuesta")
	}
	return exito(c, fiber.StatusCreated, "S26", creada)
}

// CrearRespuestasBatch guarda pares campo/valor de un grupo
func CrearRespuestasBatch(c *fiber.Ctx) error {
	var b models.RespuestasBatch
	if err := c.BodyParser(&b); err != nil {
		return fallo(c, fiber.StatusBadRequest, "F26", "Datos inválidos")
	}
	if b.GrupoID == "" {
		return falloValidacion(c, "F26", map[string]string{"grupo_id": "Requerido"})
	}
	if len(b.Respuestas) == 0 {
		return falloValidacion(c, "F26", map[string]string{"respuestas": "Requerido"})
	}
	lista, err := clienteDe(c).CrearRespuestasBatch(ctxDe(c), b)
	if err != nil {
		return falloBackend(c, "F26", err, "Error al guardar las respuestas")
	}
	return exito(c, fiber.StatusCreated, "S26", lista)
}

// CrearRespuestasBulk guarda respuestas con la estructura completa
func CrearRespuestasBulk(c *fiber.Ctx) error {
	var b models.RespuestasBulk
	if err := c.BodyParser(&b); err != nil || len(b.Respuestas) == 0 {
		return fallo(c, fiber.StatusBadRequest, "F26", "Datos inválidos")
	}
	lista, err := clienteDe(c).CrearRespuestasBulk(ctxDe(c), b.Respuestas)
	if err != nil {
		return falloBackend(c, "F26", err, "Error al guardar las respuestas")
	}
	return exito(c, fiber.StatusCreated, "S26", lista)
}

func ActualizarRespuesta(c *fiber.Ctx) error {
	var cambios map[string]interface{}
	if err := c.BodyParser(&cambios); err != nil || len(cambios) == 0 {
		return fallo(c, fiber.StatusBadRequest, "F26", "Datos inválidos")
	}
	r, err := clienteDe(c).ActualizarRespuesta(ctxDe(c), c.Params("id"), cambios)
	if err != nil {
		return falloBackend(c, "F26", err, "Error al actualizar la respuesta")
	}
	return exito(c, fiber.StatusOK, "S26", r)
}

func EliminarRespuesta(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := clienteDe(c).EliminarRespuesta(ctxDe(c), id); err != nil {
		return falloBackend(c, "F26", err, "Error al eliminar la respuesta")
	}
	return exito(c, fiber.StatusOK, "S26", fiber.Map{"message": "Respuesta eliminada", "id": id})
}
