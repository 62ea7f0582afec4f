package middleware

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// LoggingMiddleware registra cada petición HTTP con zerolog
func LoggingMiddleware(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		evento := log.WithLevel(determineLogLevel(status)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP())

		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			evento = evento.Str("request_id", rid)
		}
		if ua := c.Get(fiber.HeaderUserAgent); ua != "" {
			evento = evento.Str("user_agent", ua)
		}
		if q := string(c.Request().URI().QueryString()); q != "" {
			evento = evento.Str("query", q)
		}
		if params := c.AllParams(); len(params) > 0 {
			evento = evento.Interface("params", params)
		}
		if userID, ok := c.Locals("user_id").(string); ok && userID != "" {
			evento = evento.Str("user_id", userID)
		}
		if log.GetLevel() <= zerolog.DebugLevel {
			switch c.Method() {
			case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch:
				if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
					if body := string(c.Body()); body != "" {
						evento = evento.Str("body", filterSensitiveData(body))
					}
				}
			}
		}
		if err != nil {
			evento = evento.Err(err)
		}
		evento.Msg("petición")

		return err
	}
}

// filterSensitiveData oculta credenciales y datos personales del deportista
func filterSensitiveData(body string) string {
	sensitiveFields := []string{
		"password", "token", "secret",
		"numero_documento", "email", "telefono", "direccion",
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		if len(body) > 1000 {
			return body[:1000] + "...[truncated]"
		}
		return body
	}

	for _, field := range sensitiveFields {
		if _, exists := data[field]; exists {
			data[field] = "[FILTERED]"
		}
	}

	filteredJSON, _ := json.Marshal(data)
	filteredBody := string(filteredJSON)

	if len(filteredBody) > 1000 {
		return filteredBody[:1000] + "...[truncated]"
	}

	return filteredBody
}

// determineLogLevel determina el nivel de log basado en el status code
func determineLogLevel(statusCode int) zerolog.Level {
	switch {
	case statusCode >= 500:
		return zerolog.ErrorLevel
	case statusCode >= 400:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
