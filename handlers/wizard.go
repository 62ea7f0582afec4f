package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/German880/Front-inder/catalogos"
	"github.com/German880/Front-inder/historia"
	"github.com/German880/Front-inder/models"
)

// Errores de datos del asistente que se responden con 400
var erroresDeEntrada = []error{
	historia.ErrPasoInvalido,
	historia.ErrIndiceInvalido,
	historia.ErrCodigoRequerido,
	historia.ErrCodigoNoVerificado,
	historia.ErrCodigoNoEncontrado,
	historia.ErrFamiliarRequerido,
	historia.ErrVacunaDesconocida,
	historia.ErrDiagnosticoRequerido,
	historia.ErrEspecialistaRequerido,
	historia.ErrMotivoRequerido,
	historia.ErrPrioridadInvalida,
}

// falloSesion traduce los errores del asistente y delega los del backend
func falloSesion(c *fiber.Ctx, intCode string, err error, mensaje string) error {
	var campoErr *historia.CampoDesconocidoError
	var valErr *historia.ValidacionError
	switch {
	case errors.Is(err, historia.ErrSesionNoEncontrada):
		return fallo(c, fiber.StatusNotFound, intCode, err.Error())
	case errors.As(err, &valErr):
		return falloValidacion(c, intCode, valErr.Campos)
	case errors.As(err, &campoErr):
		return falloValidacion(c, intCode, map[string]string{campoErr.Campo: "Campo desconocido"})
	case errors.Is(err, historia.ErrSesionCompletada), errors.Is(err, historia.ErrHistoriaNoInicializada):
		return fallo(c, fiber.StatusConflict, intCode, err.Error())
	case errors.Is(err, historia.ErrGrupoSinID):
		reportar(c, err)
		return fallo(c, fiber.StatusBadGateway, intCode, err.Error())
	}
	for _, e := range erroresDeEntrada {
		if errors.Is(err, e) {
			return fallo(c, fiber.StatusBadRequest, intCode, err.Error())
		}
	}
	return falloBackend(c, intCode, err, mensaje)
}

// estadoAbierta busca el item "abierta" en los estados del deportista; sin
// caché o sin ese item la historia se crea sin estado
func estadoAbierta(c *fiber.Ctx) (string, error) {
	cache := catalogos.GetCache()
	if cache == nil {
		return "", nil
	}
	item, ok, err := cache.BuscarPorNombre(ctxDe(c), models.CatalogoEstadoDeportista, models.EstadoHistoriaAbierta)
	if err != nil || !ok {
		return "", err
	}
	return item.ID, nil
}

// DefinicionPasos devuelve los pasos y las listas fijas del asistente
func DefinicionPasos(c *fiber.Ctx) error {
	return exito(c, fiber.StatusOK, "S31", fiber.Map{
		"total_pasos":   historia.TotalPasos,
		"pasos":         historia.Pasos,
		"familiares":    historia.Familiares,
		"vacunas":       historia.Vacunas,
		"especialistas": historia.Especialistas,
		"prioridades":   []string{historia.PrioridadNormal, historia.PrioridadUrgente},
	})
}

// IniciarHistoria abre la historia clínica de un deportista y crea la sesión
func IniciarHistoria(c *fiber.Ctx) error {
	var req struct {
		DeportistaID string `json:"deportista_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fallo(c, fiber.StatusBadRequest, "F30", "Datos inválidos")
	}
	req.DeportistaID = strings.TrimSpace(req.DeportistaID)
	if req.DeportistaID == "" {
		return falloValidacion(c, "F30", map[string]string{"deportista_id": "Requerido"})
	}

	cliente := clienteDe(c)
	dep, err := cliente.Deportista(ctxDe(c), req.DeportistaID)
	if err != nil {
		return falloBackend(c, "F30", err, "Error al obtener el deportista")
	}
	estadoID, err := estadoAbierta(c)
	if err != nil {
		return falloBackend(c, "F30", err, "Error al cargar los catálogos")
	}

	vista, err := historia.GetStore().Iniciar(ctxDe(c), cliente, *dep, estadoID)
	if err != nil {
		return falloBackend(c, "F30", err, "Error al crear la historia clínica")
	}
	return exito(c, fiber.StatusCreated, "S30", vista)
}

// ObtenerSesion devuelve el estado de una sesión del asistente
func ObtenerSesion(c *fiber.Ctx) error {
	vista, err := historia.GetStore().Obtener(c.Params("id"))
	if err != nil {
		return falloSesion(c, "F31", err, "")
	}
	return exito(c, fiber.StatusOK, "S31", vista)
}

// EliminarSesion descarta la sesión sin tocar la historia en el backend
func EliminarSesion(c *fiber.Ctx) error {
	id := c.Params("id")
	if !historia.GetStore().Eliminar(id) {
		return fallo(c, fiber.StatusNotFound, "F33", historia.ErrSesionNoEncontrada.Error())
	}
	return exito(c, fiber.StatusOK, "S33", fiber.Map{"message": "Sesión descartada", "id": id})
}

// conSesion ejecuta fn sobre la sesión :id y responde con su vista
func conSesion(c *fiber.Ctx, intCode string, mensaje string, fn func(*historia.Sesion) error) error {
	vista, err := historia.GetStore().Con(c.Params("id"), fn)
	if err != nil {
		return falloSesion(c, "F"+intCode, err, mensaje)
	}
	return exito(c, fiber.StatusOK, "S"+intCode, vista)
}

// ActualizarPaso mezcla los campos enviados en los datos del paso :paso
func ActualizarPaso(c *fiber.Ctx) error {
	paso, err := c.ParamsInt("paso")
	if err != nil {
		return fallo(c, fiber.StatusBadRequest, "F32", historia.ErrPasoInvalido.Error())
	}
	var campos map[string]interface{}
	if err := c.BodyParser(&campos); err != nil {
		return fallo(c, fiber.StatusBadRequest, "F32", "Datos inválidos")
	}
	return conSesion(c, "32", "", func(s *historia.Sesion) error {
		return s.ActualizarCampos(paso, campos)
	})
}

// GuardarPaso guarda el paso :paso en el backend sin cambiar de paso
func GuardarPaso(c *fiber.Ctx) error {
	paso, err := c.ParamsInt("paso")
	if err != nil {
		return fallo(c, fiber.StatusBadRequest, "F32", historia.ErrPasoInvalido.Error())
	}
	be := clienteDe(c)
	return conSesion(c, "32", "Error al guardar el paso", func(s *historia.Sesion) error {
		return s.GuardarPaso(ctxDe(c), be, paso)
	})
}

// SiguientePaso guarda el paso actual y avanza
func SiguientePaso(c *fiber.Ctx) error {
	be := clienteDe(c)
	return conSesion(c, "32", "Error al guardar el paso", func(s *historia.Sesion) error {
		return s.Siguiente(ctxDe(c), be)
	})
}

func PasoAnterior(c *fiber.Ctx) error {
	return conSesion(c, "32", "", func(s *historia.Sesion) error {
		s.Anterior()
		return nil
	})
}

func IrAPaso(c *fiber.Ctx) error {
	paso, err := c.ParamsInt("paso")
	if err != nil {
		return fallo(c, fiber.StatusBadRequest, "F32", historia.ErrPasoInvalido.Error())
	}
	return conSesion(c, "32", "", func(s *historia.Sesion) error {
		return s.IrAPaso(paso)
	})
}

// CompletarHistoria guarda el paso actual y cierra la sesión
func CompletarHistoria(c *fiber.Ctx) error {
	be := clienteDe(c)
	return conSesion(c, "35", "Error al completar la historia clínica", func(s *historia.Sesion) error {
		return s.Completar(ctxDe(c), be)
	})
}

type antecedenteRequest struct {
	Codigo        string `json:"codigo"`
	Familiar      string `json:"familiar"`
	Observaciones string `json:"observaciones"`
}

func AgregarAntecedente(c *fiber.Ctx) error {
	var req antecedenteRequest
	if err := c.BodyParser(&req); err != nil {
		return fallo(c, fiber.StatusBadRequest, "F34", "Datos inválidos")
	}
	return conSesion(c, "34", "", func(s *historia.Sesion) error {
		_, err := s.AgregarAntecedente(req.Codigo, req.Observaciones)
		return err
	})
}

func AgregarAntecedenteFamiliar(c *fiber.Ctx) error {
	var req antecedenteRequest
	if err := c.BodyParser(&req); err != nil {
		return fallo(c, fiber.StatusBadRequest, "F34", "Datos inválidos")
	}
	return conSesion(c, "34", "", func(s *historia.Sesion) error {
		_, err := s.AgregarAntecedenteFamiliar(req.Codigo, req.Familiar, req.Observaciones)
		return err
	})
}

func ToggleVacuna(c *fiber.Ctx) error {
	var req struct {
		Vacuna string `json:"vacuna"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fallo(c, fiber.StatusBadRequest, "F34", "Datos inválidos")
	}
	return conSesion(c, "34", "", func(s *historia.Sesion) error {
		return s.ToggleVacuna(req.Vacuna)
	})
}

func AgregarDiagnostico(c *fiber.Ctx) error {
	var d historia.Diagnostico
	if err := c.BodyParser(&d); err != nil {
		return fallo(c, fiber.StatusBadRequest, "F34", "Datos inválidos")
	}
	return conSesion(c, "34", "", func(s *historia.Sesion) error {
		_, err := s.AgregarDiagnostico(d)
		return err
	})
}

func AgregarRemision(c *fiber.Ctx) error {
	var r historia.Remision
	if err := c.BodyParser(&r); err != nil {
		return fallo(c, fiber.StatusBadRequest, "F34", "Datos inválidos")
	}
	return conSesion(c, "34", "", func(s *historia.Sesion) error {
		_, err := s.AgregarRemision(r)
		return err
	})
}

// eliminarDeLista quita el elemento :indice de una de las listas de la sesión
func eliminarDeLista(quitar func(*historia.Sesion, int) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		i, err := c.ParamsInt("indice")
		if err != nil {
			return fallo(c, fiber.StatusBadRequest, "F34", historia.ErrIndiceInvalido.Error())
		}
		return conSesion(c, "34", "", func(s *historia.Sesion) error {
			return quitar(s, i)
		})
	}
}

var (
	EliminarAntecedente         = eliminarDeLista((*historia.Sesion).EliminarAntecedente)
	EliminarAntecedenteFamiliar = eliminarDeLista((*historia.Sesion).EliminarAntecedenteFamiliar)
	EliminarDiagnostico         = eliminarDeLista((*historia.Sesion).EliminarDiagnostico)
	EliminarRemision            = eliminarDeLista((*historia.Sesion).EliminarRemision)
)
