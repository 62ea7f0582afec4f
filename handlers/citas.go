package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/German880/Front-inder/agenda"
	"github.com/German880/Front-inder/backend"
	"github.com/German880/Front-inder/catalogos"
	"github.com/German880/Front-inder/models"
)

// Límites para recorrer todas las páginas de citas
const (
	citasPorPagina  = 100
	maxPaginasCitas = 20
)

// etiquetador devuelve la caché de catálogos, o nil si no está configurada
func etiquetador(c *fiber.Ctx) agenda.Etiquetador {
	cache := catalogos.GetCache()
	if cache == nil {
		return nil
	}
	if err := cache.Asegurar(ctxDe(c)); err != nil {
		log.Warn().Err(err).Msg("citas sin etiquetas de catálogo")
	}
	return cache
}

// todasLasCitas recorre las páginas de citas del backend
func todasLasCitas(ctx context.Context, cliente *backend.Client) ([]models.Cita, error) {
	var citas []models.Cita
	for page := 1; page <= maxPaginasCitas; page++ {
		res, err := cliente.Citas(ctx, page, citasPorPagina)
		if err != nil {
			return nil, err
		}
		citas = append(citas, res.Items...)
		if len(res.Items) < citasPorPagina || page >= res.TotalPages {
			break
		}
	}
	return citas, nil
}

// estadoCita busca el id de un estado de cita por nombre
func estadoCita(c *fiber.Ctx, nombre string) (string, bool, error) {
	cache := catalogos.GetCache()
	if cache == nil {
		return "", false, nil
	}
	item, ok, err := cache.BuscarPorNombre(ctxDe(c), models.CatalogoEstadoCita, nombre)
	if err != nil || !ok {
		return "", false, err
	}
	return item.ID, true, nil
}

// CrearCita agenda una cita. Sin estado se agenda como pendiente.
func CrearCita(c *fiber.Ctx) error {
	var cita models.Cita
	if err := c.BodyParser(&cita); err != nil {
		return fallo(c, fiber.StatusBadRequest, "F40", "Datos inválidos")
	}
	cita.DeportistaID = strings.TrimSpace(cita.DeportistaID)
	cita.Fecha = strings.TrimSpace(cita.Fecha)
	if errs := agenda.ValidarCita(&cita); len(errs) > 0 {
		return falloValidacion(c, "F40", errs)
	}

	if cita.EstadoCitaID == "" {
		id, ok, err := estadoCita(c, models.EstadoCitaPendiente)
		if err != nil {
			return falloBackend(c, "F40", err, "Error al cargar los catálogos")
		}
		if ok {
			cita.EstadoCitaID = id
		}
	}

	creada, err := clienteDe(c).CrearCita(ctxDe(c), cita)
	if err != nil {
		return falloBackend(c, "F40", err, "Error al agendar la cita")
	}
	return exito(c, fiber.StatusCreated, "S40", agenda.Vista(*creada, etiquetador(c)))
}

// ListarCitas lista las citas paginadas
func ListarCitas(c *fiber.Ctx) error {
	page, size, ok := paginacion(c)
	if !ok {
		return fallo(c, fiber.StatusBadRequest, "F41", "Parámetros de paginación inválidos")
	}
	res, err := clienteDe(c).Citas(ctxDe(c), page, size)
	if err != nil {
		return falloBackend(c, "F41", err, "Error al obtener las citas")
	}
	et := etiquetador(c)
	items := make([]models.CitaVista, 0, len(res.Items))
	for _, cita := range res.Items {
		items = append(items, agenda.Vista(cita, et))
	}
	return exito(c, fiber.StatusOK, "S41", PaginaResponse{
		Items:      items,
		Total:      res.Total,
		Page:       res.Page,
		PageSize:   res.PageSize,
		TotalPages: res.TotalPages,
	})
}

func ObtenerCita(c *fiber.Ctx) error {
	cita, err := clienteDe(c).Cita(ctxDe(c), c.Params("id"))
	if err != nil {
		return falloBackend(c, "F41", err, "Error al obtener la cita")
	}
	return exito(c, fiber.StatusOK, "S41", agenda.Vista(*cita, etiquetador(c)))
}

// ActualizarCita modifica una cita; la hora se normaliza a HH:MM:SS
func ActualizarCita(c *fiber.Ctx) error {
	var cambios map[string]interface{}
	if err := c.BodyParser(&cambios); err != nil || len(cambios) == 0 {
		return fallo(c, fiber.StatusBadRequest, "F42", "Datos inválidos")
	}
	if v, ok := cambios["hora"]; ok {
		s, _ := v.(string)
		hora, err := agenda.NormalizarHora(s)
		if err != nil {
			return falloValidacion(c, "F42", map[string]string{"hora": err.Error()})
		}
		cambios["hora"] = hora
	}
	if v, ok := cambios["fecha"]; ok {
		s, _ := v.(string)
		if _, err := time.Parse(models.FormatoFecha, s); err != nil {
			return falloValidacion(c, "F42", map[string]string{"fecha": "Fecha inválida (AAAA-MM-DD)"})
		}
	}
	cita, err := clienteDe(c).ActualizarCita(ctxDe(c), c.Params("id"), cambios)
	if err != nil {
		return falloBackend(c, "F42", err, "Error al actualizar la cita")
	}
	return exito(c, fiber.StatusOK, "S42", agenda.Vista(*cita, etiquetador(c)))
}

func EliminarCita(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := clienteDe(c).EliminarCita(ctxDe(c), id); err != nil {
		return falloBackend(c, "F43", err, "Error al eliminar la cita")
	}
	return exito(c, fiber.StatusOK, "S43", fiber.Map{"message": "Cita eliminada", "id": id})
}

// CancelarCita cambia el estado de la cita a cancelada
func CancelarCita(c *fiber.Ctx) error {
	id, ok, err := estadoCita(c, models.EstadoCitaCancelada)
	if err != nil {
		return falloBackend(c, "F44", err, "Error al cargar los catálogos")
	}
	if !ok {
		return fallo(c, fiber.StatusConflict, "F44", "Estado 'cancelada' no encontrado")
	}
	cita, err := clienteDe(c).ActualizarCita(ctxDe(c), c.Params("id"), map[string]interface{}{
		"estado_cita_id": id,
	})
	if err != nil {
		return falloBackend(c, "F44", err, "Error al cancelar la cita")
	}
	return exito(c, fiber.StatusOK, "S44", agenda.Vista(*cita, etiquetador(c)))
}

// Agenda agrupa por día las citas de [desde, desde+dias)
func Agenda(c *fiber.Ctx) error {
	hoy := ahora()
	desde := hoy
	if q := c.Query("desde"); q != "" {
		t, err := time.ParseInLocation(models.FormatoFecha, q, hoy.Location())
		if err != nil {
			return fallo(c, fiber.StatusBadRequest, "F45", "Fecha inválida (AAAA-MM-DD)")
		}
		desde = t
	}
	dias, err := agenda.LimitarDias(c.Query("dias"))
	if err != nil {
		return fallo(c, fiber.StatusBadRequest, "F45", err.Error())
	}

	citas, err := todasLasCitas(ctxDe(c), clienteDe(c))
	if err != nil {
		return falloBackend(c, "F45", err, "Error al obtener las citas")
	}
	return exito(c, fiber.StatusOK, "S45", fiber.Map{
		"desde": desde.Format(models.FormatoFecha),
		"dias":  agenda.AgruparPorDia(citas, desde, dias, etiquetador(c)),
	})
}

// CitasDeDeportista lista todas las citas de un deportista
func CitasDeDeportista(c *fiber.Ctx) error {
	lista, err := clienteDe(c).CitasDeDeportista(ctxDe(c), c.Params("id"))
	if err != nil {
		return falloBackend(c, "F46", err, "Error al obtener las citas del deportista")
	}
	et := etiquetador(c)
	res := make([]models.CitaVista, 0, len(lista))
	for _, cita := range lista {
		res = append(res, agenda.Vista(cita, et))
	}
	return exito(c, fiber.StatusOK, "S46", res)
}

// ProximasCitas lista las próximas citas no canceladas de un deportista
func ProximasCitas(c *fiber.Ctx) error {
	lista, err := clienteDe(c).ProximasCitas(ctxDe(c), c.Params("id"))
	if err != nil {
		return falloBackend(c, "F46", err, "Error al obtener las próximas citas")
	}
	res := agenda.Proximas(lista, ahora(), 0, etiquetador(c))
	if res == nil {
		res = []models.CitaVista{}
	}
	return exito(c, fiber.StatusOK, "S46", res)
}
