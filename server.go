package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/German880/Front-inder/backend"
	"github.com/German880/Front-inder/catalogos"
	"github.com/German880/Front-inder/cie11"
	"github.com/German880/Front-inder/config"
	"github.com/German880/Front-inder/handlers"
	"github.com/German880/Front-inder/historia"
	"github.com/German880/Front-inder/logger"
	"github.com/German880/Front-inder/middleware"
	"github.com/German880/Front-inder/routes"
)

const (
	intervaloJanitor = time.Minute
	// Margen sobre el tamaño del archivo para los campos del formulario multipart
	margenMultipart = 1 << 20
)

func runServer() error {
	// Cargar configuración (.env y entorno)
	cfg, err := config.Load()
	if err != nil {
		zlog.Error().Err(err).Msg("configuración inválida")
		return err
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	zlog.Logger = log

	sentryEnabled := initSentry(cfg, log)
	if sentryEnabled {
		defer sentry.Flush(2 * time.Second)
	}

	if cfg.CIE11File != "" {
		t, err := cie11.Cargar(cfg.CIE11File)
		if err != nil {
			log.Error().Err(err).Str("archivo", cfg.CIE11File).Msg("no se pudo cargar la tabla CIE-11")
			return err
		}
		cie11.Usar(t)
		log.Info().Int("entradas", t.Len()).Msg("tabla CIE-11 cargada")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Conectar al backend de historias clínicas
	cliente := backend.Connect(cfg.APIURL, cfg.APITimeout(), log)

	catalogos.SetCache(catalogos.New(cliente, cfg.CatalogosTTL, log))
	go func() {
		cargaCtx, cancel := context.WithTimeout(ctx, cfg.APITimeout())
		defer cancel()
		if err := catalogos.GetCache().Cargar(cargaCtx); err != nil {
			log.Warn().Err(err).Msg("catálogos no disponibles al iniciar")
		}
	}()

	store := historia.NewStore(cfg.SesionesTTL, log)
	historia.SetStore(store)
	go store.Janitor(ctx, intervaloJanitor)

	handlers.Configurar(handlers.Opciones{MaxUploadBytes: int64(cfg.MaxUploadBytes())})

	fiberCfg := fiber.Config{
		ErrorHandler:          handlers.ErrorHandler,
		AppName:               "INDER Historias Clínicas API v1.0.0",
		BodyLimit:             cfg.MaxUploadBytes() + margenMultipart,
		DisableStartupMessage: !cfg.IsDev(),
	}
	if proxies := cfg.Proxies(); len(proxies) > 0 {
		fiberCfg.ProxyHeader = fiber.HeaderXForwardedFor
		fiberCfg.EnableTrustedProxyCheck = true
		fiberCfg.TrustedProxies = proxies
	}
	app := fiber.New(fiberCfg)

	// Configurar rutas
	routes.SetupRoutes(app, routes.Options{
		Log:         log,
		AccessLog:   cfg.IsDev(),
		HSTS:        !cfg.IsDev(),
		CORSOrigins: cfg.Origins(),
		RateLimit: middleware.RateLimitConfig{
			Max:        cfg.RateLimitMax,
			Expiration: cfg.RateLimitWindow,
			Message:    middleware.DefaultRateLimit.Message,
		},
		RequestTimeout: cfg.APITimeout() * 2,
	})

	app.Use(handlers.RutaNoEncontrada)

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("api_url", cliente.BaseURL()).
			Str("environment", cfg.Environment).
			Msg("servidor iniciado")
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("el servidor se detuvo")
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("apagando el servidor")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("error al apagar el servidor")
		return err
	}
	log.Info().Msg("servidor detenido")
	return nil
}

func initSentry(cfg *config.Config, log zerolog.Logger) bool {
	if cfg.SentryDSN == "" {
		return false
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		AttachStacktrace: true,
	})
	if err != nil {
		log.Warn().Err(err).Msg("no se pudo inicializar sentry")
		return false
	}
	log.Info().Str("environment", cfg.Environment).Msg("sentry inicializado")
	return true
}
