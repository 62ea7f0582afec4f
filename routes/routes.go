package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"

	"github.com/German880/Front-inder/handlers"
	"github.com/German880/Front-inder/middleware"
)

// Límite para los cuerpos JSON; las subidas de archivos usan MaxUploadBytes
const maxJSONBody = 1 << 20

// Options configura el middleware global
type Options struct {
	Log            zerolog.Logger
	AccessLog      bool
	HSTS           bool
	CORSOrigins    string
	RateLimit      middleware.RateLimitConfig
	RequestTimeout time.Duration
}

// SetupRoutes configura todas las rutas de la aplicación
func SetupRoutes(app *fiber.App, opts Options) {
	// Middleware global
	app.Use(requestid.New())
	if opts.AccessLog {
		app.Use(logger.New())
	}
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     opts.CORSOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: opts.CORSOrigins != "*",
	}))
	app.Use(middleware.SecurityHeaders(opts.HSTS))
	app.Use(middleware.LoggingMiddleware(opts.Log))

	// Ruta de salud del sistema
	app.Get("/health", handlers.Salud)

	// Grupo de API
	api := app.Group("/api/v1",
		middleware.CreateRateLimiter(opts.RateLimit),
		middleware.RequestTimeout(opts.RequestTimeout),
		middleware.TokenPassThrough(),
	)
	jsonBody := middleware.BodySizeLimit(maxJSONBody)
	protegida := middleware.RequireToken()

	api.Get("/health", handlers.Salud)
	api.Get("/dashboard", handlers.Dashboard)

	// --- CIE-11 (tabla local) ---
	cie := api.Group("/cie11")
	cie.Get("/buscar", handlers.BuscarCIE11PorNombre)
	cie.Get("/codigos/:codigo", handlers.BuscarCIE11PorCodigo)

	// --- CATÁLOGOS ---
	catalogos := api.Group("/catalogos")
	catalogos.Get("/", handlers.ObtenerCatalogos)
	catalogos.Get("/definiciones", handlers.ListarDefinicionesCatalogo)
	catalogos.Get("/definiciones/:nombre", handlers.ObtenerDefinicionCatalogo)
	catalogos.Post("/recargar", protegida, handlers.RecargarCatalogos)
	catalogos.Get("/:nombre", handlers.ObtenerItemsCatalogo)

	// --- DEPORTISTAS ---
	deportistas := api.Group("/deportistas", jsonBody)
	deportistas.Get("/", handlers.ListarDeportistas)
	deportistas.Post("/", handlers.CrearDeportista)
	deportistas.Get("/search", handlers.BuscarDeportistas)
	deportistas.Get("/con-cita-hoy", handlers.DeportistasConCitaHoy)
	deportistas.Get("/:id", handlers.ObtenerDeportista)
	deportistas.Put("/:id", handlers.ActualizarDeportista)
	deportistas.Delete("/:id", protegida, handlers.EliminarDeportista)
	deportistas.Get("/:id/historias", handlers.HistoriasDeDeportista)
	deportistas.Get("/:id/citas", handlers.CitasDeDeportista)
	deportistas.Get("/:id/citas/proximas", handlers.ProximasCitas)

	// --- HISTORIAS CLÍNICAS ---
	historias := api.Group("/historias", jsonBody)
	historias.Get("/", handlers.ListarHistorias)
	historias.Post("/", handlers.CrearHistoria)
	historias.Post("/completa", handlers.CrearHistoriaCompleta)
	historias.Get("/:id", handlers.ObtenerHistoria)
	historias.Put("/:id", handlers.ActualizarHistoria)
	historias.Delete("/:id", protegida, handlers.EliminarHistoria)
	historias.Get("/:id/completa", handlers.ObtenerHistoriaCompleta)
	historias.Get("/:id/grupos", handlers.GruposDeHistoria)
	historias.Get("/:id/respuestas", handlers.RespuestasDeHistoria)
	historias.Get("/:id/archivos", handlers.ArchivosDeHistoria)
	historias.Get("/:id/pdf", handlers.HistoriaClinicaPDF)

	// --- RESPUESTAS DE FORMULARIO ---
	respuestas := api.Group("/respuestas", jsonBody)
	respuestas.Post("/", handlers.CrearRespuesta)
	respuestas.Post("/batch", handlers.CrearRespuestasBatch)
	respuestas.Post("/bulk", handlers.CrearRespuestasBulk)
	respuestas.Post("/grupos", handlers.CrearRespuestaGrupo)
	respuestas.Get("/grupos/:id", handlers.RespuestasDeGrupo)
	respuestas.Put("/:id", handlers.ActualizarRespuesta)
	respuestas.Delete("/:id", protegida, handlers.EliminarRespuesta)

	// --- ASISTENTE DE HISTORIA CLÍNICA ---
	wizard := api.Group("/wizard", jsonBody)
	wizard.Get("/definicion", handlers.DefinicionPasos)
	wizard.Post("/", handlers.IniciarHistoria)
	wizard.Get("/:id", handlers.ObtenerSesion)
	wizard.Delete("/:id", handlers.EliminarSesion)
	wizard.Put("/:id/pasos/:paso", handlers.ActualizarPaso)
	wizard.Post("/:id/pasos/:paso/guardar", handlers.GuardarPaso)
	wizard.Post("/:id/siguiente", handlers.SiguientePaso)
	wizard.Post("/:id/anterior", handlers.PasoAnterior)
	wizard.Post("/:id/ir/:paso", handlers.IrAPaso)
	wizard.Post("/:id/completar", handlers.CompletarHistoria)
	wizard.Post("/:id/antecedentes", handlers.AgregarAntecedente)
	wizard.Delete("/:id/antecedentes/:indice", handlers.EliminarAntecedente)
	wizard.Post("/:id/antecedentes-familiares", handlers.AgregarAntecedenteFamiliar)
	wizard.Delete("/:id/antecedentes-familiares/:indice", handlers.EliminarAntecedenteFamiliar)
	wizard.Post("/:id/vacunas", handlers.ToggleVacuna)
	wizard.Post("/:id/diagnosticos", handlers.AgregarDiagnostico)
	wizard.Delete("/:id/diagnosticos/:indice", handlers.EliminarDiagnostico)
	wizard.Post("/:id/remisiones", handlers.AgregarRemision)
	wizard.Delete("/:id/remisiones/:indice", handlers.EliminarRemision)

	// --- CITAS ---
	citas := api.Group("/citas", jsonBody)
	citas.Get("/", handlers.ListarCitas)
	citas.Post("/", handlers.CrearCita)
	citas.Get("/agenda", handlers.Agenda)
	citas.Get("/:id", handlers.ObtenerCita)
	citas.Put("/:id", handlers.ActualizarCita)
	citas.Delete("/:id", protegida, handlers.EliminarCita)
	citas.Post("/:id/cancelar", handlers.CancelarCita)

	// --- ARCHIVOS CLÍNICOS ---
	archivos := api.Group("/archivos")
	archivos.Post("/", middleware.CreateRateLimiter(middleware.UploadRateLimit), handlers.SubirArchivo)
	archivos.Get("/:id/descargar", handlers.DescargarArchivo)
	archivos.Delete("/:id", protegida, handlers.EliminarArchivo)

	// --- FORMULARIOS Y PLANTILLAS ---
	api.Get("/formularios", handlers.ListarFormularios)
	api.Get("/formularios/:id", handlers.ObtenerFormulario)
	api.Get("/plantillas", handlers.ListarPlantillas)
	api.Get("/plantillas/:sistema", handlers.PlantillaPorSistema)
}
