package handlers

import (
	"path"
	"sort"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/German880/Front-inder/agenda"
	"github.com/German880/Front-inder/models"
)

const (
	dashboardRecientes = 5
	dashboardProximas  = 5
)

var coloresActividad = map[string]string{
	models.ActividadDeportista: "bg-blue-100 text-blue-700",
	models.ActividadHistoria:   "bg-green-100 text-green-700",
	models.ActividadArchivo:    "bg-purple-100 text-purple-700",
	models.ActividadCita:       "bg-orange-100 text-orange-700",
}

func actividad(tipo, id, descripcion, fecha string) models.ActividadItem {
	return models.ActividadItem{
		ID:          id,
		Tipo:        tipo,
		Descripcion: descripcion,
		Fecha:       fecha,
		Color:       coloresActividad[tipo],
	}
}

// Dashboard arma las estadísticas del tablero. Las fuentes se consultan en
// paralelo; una fuente que falla queda en cero y se informa en
// fuentes_no_disponibles. Los archivos solo aparecen como actividad de las
// últimas historias porque el backend no ofrece un total.
func Dashboard(c *fiber.Ctx) error {
	ctx := ctxDe(c)
	cliente := clienteDe(c)
	et := etiquetador(c)
	hoy := ahora()

	stats := models.EstadisticasDashboard{FechaGeneracion: hoy}
	var (
		mu        sync.Mutex
		fallidas  []string
		recientes []models.ActividadItem
		proximas  []models.CitaVista
	)
	degradar := func(fuente string, err error) {
		log.Warn().Err(err).Str("fuente", fuente).Msg("fuente del tablero no disponible")
		mu.Lock()
		fallidas = append(fallidas, fuente)
		mu.Unlock()
	}

	var g errgroup.Group
	g.Go(func() error {
		res, err := cliente.Deportistas(ctx, 1, dashboardRecientes)
		if err != nil {
			degradar("deportistas", err)
			return nil
		}
		mu.Lock()
		defer mu.Unlock()
		stats.TotalDeportistas = res.Total
		for _, d := range res.Items {
			recientes = append(recientes, actividad(models.ActividadDeportista, d.ID,
				"Nuevo deportista registrado: "+d.NombreCompleto(), d.CreatedAt))
		}
		return nil
	})
	g.Go(func() error {
		res, err := cliente.HistoriasClinicas(ctx, 1, dashboardRecientes)
		if err != nil {
			degradar("historias", err)
			return nil
		}
		mu.Lock()
		defer mu.Unlock()
		stats.HistoriasClinicas = res.Total
		for _, h := range res.Items {
			desc := "Historia clínica abierta"
			if h.Deportista != nil {
				desc += ": " + h.Deportista.NombreCompleto()
			}
			recientes = append(recientes, actividad(models.ActividadHistoria, h.ID, desc, h.CreatedAt))
			for _, a := range h.Archivos {
				nombre := a.NombreArchivo
				if nombre == "" {
					nombre = path.Base(a.RutaArchivo)
				}
				recientes = append(recientes, actividad(models.ActividadArchivo, a.ID,
					"Archivo subido: "+nombre, a.CreatedAt))
			}
		}
		return nil
	})
	g.Go(func() error {
		citas, err := todasLasCitas(ctx, cliente)
		if err != nil {
			degradar("citas", err)
			return nil
		}
		p := agenda.Proximas(citas, hoy, 0, et)
		mu.Lock()
		defer mu.Unlock()
		stats.CitasProximas = len(p)
		proximas = p
		return nil
	})
	_ = g.Wait()

	sort.SliceStable(recientes, func(i, j int) bool {
		return recientes[i].Fecha > recientes[j].Fecha
	})
	if len(recientes) > dashboardRecientes {
		recientes = recientes[:dashboardRecientes]
	}
	stats.ActividadReciente = append([]models.ActividadItem{}, recientes...)

	stats.ProximasActividades = []models.ActividadItem{}
	for i, cv := range proximas {
		if i == dashboardProximas {
			break
		}
		desc := "Cita"
		if cv.TipoNombre != "" {
			desc = cv.TipoNombre
		}
		if cv.DeportistaNombre != "" {
			desc += ": " + cv.DeportistaNombre
		}
		stats.ProximasActividades = append(stats.ProximasActividades,
			actividad(models.ActividadCita, cv.ID, desc, cv.Fecha+" "+cv.HoraCorta))
	}

	sort.Strings(fallidas)
	stats.FuentesNoDisponibles = fallidas
	return exito(c, fiber.StatusOK, "S80", stats)
}
