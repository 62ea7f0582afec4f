package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError es una respuesta no 2xx del backend
type APIError struct {
	Status  int
	Mensaje string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend %d: %s", e.Status, e.Mensaje)
}

func nuevoAPIError(status int, body []byte) *APIError {
	msg := mensajeDeError(body)
	if msg == "" {
		msg = http.StatusText(status)
	}
	if msg == "" {
		msg = "Error desconocido"
	}
	return &APIError{Status: status, Mensaje: msg}
}

// mensajeDeError toma el mensaje de los campos error, detail o message.
// detail puede ser una lista de errores de validación con msg.
func mensajeDeError(body []byte) string {
	var campos map[string]json.RawMessage
	if err := json.Unmarshal(body, &campos); err != nil {
		return ""
	}
	for _, clave := range []string{"error", "detail", "message"} {
		raw, ok := campos[clave]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s
		}
		var lista []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(raw, &lista); err == nil {
			var msgs []string
			for _, l := range lista {
				if l.Msg != "" {
					msgs = append(msgs, l.Msg)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, "; ")
			}
		}
	}
	return ""
}

// StatusDe devuelve el estado HTTP del error si viene del backend
func StatusDe(err error) (int, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status, true
	}
	return 0, false
}

// IsNotFound indica un 404 del backend
func IsNotFound(err error) bool {
	s, ok := StatusDe(err)
	return ok && s == http.StatusNotFound
}

// IsUnauthorized indica un 401 del backend
func IsUnauthorized(err error) bool {
	s, ok := StatusDe(err)
	return ok && s == http.StatusUnauthorized
}
