package models

import (
	"net/mail"
	"strings"
	"time"
)

// Deportista representa el registro demográfico de un deportista
type Deportista struct {
	ID              string  `json:"id"`
	TipoDocumentoID string  `json:"tipo_documento_id"`
	NumeroDocumento string  `json:"numero_documento"`
	Nombres         string  `json:"nombres"`
	Apellidos       string  `json:"apellidos"`
	FechaNacimiento string  `json:"fecha_nacimiento,omitempty"`
	Edad            *int    `json:"edad,omitempty"`
	SexoID          string  `json:"sexo_id,omitempty"`
	Email           string  `json:"email,omitempty"`
	Telefono        string  `json:"telefono,omitempty"`
	Direccion       string  `json:"direccion,omitempty"`
	TipoDeporte     string  `json:"tipo_deporte,omitempty"`
	DeporteID       string  `json:"deporte_id,omitempty"`
	Categoria       string  `json:"categoria,omitempty"`
	EstadoID        string  `json:"estado_id"`
	Foto            *string `json:"foto,omitempty"`
	CreatedAt       string  `json:"created_at,omitempty"`
	UpdatedAt       string  `json:"updated_at,omitempty"`
}

// DeportistaCreate es el cuerpo para registrar o actualizar un deportista
type DeportistaCreate struct {
	TipoDocumentoID string `json:"tipo_documento_id"`
	NumeroDocumento string `json:"numero_documento"`
	Nombres         string `json:"nombres"`
	Apellidos       string `json:"apellidos"`
	FechaNacimiento string `json:"fecha_nacimiento,omitempty"`
	SexoID          string `json:"sexo_id,omitempty"`
	Email           string `json:"email,omitempty"`
	Telefono        string `json:"telefono,omitempty"`
	Direccion       string `json:"direccion,omitempty"`
	TipoDeporte     string `json:"tipo_deporte,omitempty"`
	DeporteID       string `json:"deporte_id,omitempty"`
	Categoria       string `json:"categoria,omitempty"`
	EstadoID        string `json:"estado_id"`
}

// DeportistaVista es el deportista con las etiquetas de catálogo resueltas para mostrar
type DeportistaVista struct {
	Deportista
	NombreCompleto string `json:"nombre_completo"`
	TipoDocumento  string `json:"tipo_documento,omitempty"`
	Sexo           string `json:"sexo,omitempty"`
	Estado         string `json:"estado,omitempty"`
}

// NombreCompleto une nombres y apellidos
func (d Deportista) NombreCompleto() string {
	switch {
	case d.Nombres == "":
		return d.Apellidos
	case d.Apellidos == "":
		return d.Nombres
	}
	return d.Nombres + " " + d.Apellidos
}

// CalcularEdad devuelve la edad en años cumplidos a la fecha ref.
// fechaNacimiento debe venir en formato YYYY-MM-DD.
func CalcularEdad(fechaNacimiento string, ref time.Time) (int, bool) {
	nac, err := time.Parse(FormatoFecha, fechaNacimiento)
	if err != nil {
		return 0, false
	}
	edad := ref.Year() - nac.Year()
	if ref.Month() < nac.Month() || (ref.Month() == nac.Month() && ref.Day() < nac.Day()) {
		edad--
	}
	if edad < 0 {
		return 0, false
	}
	return edad, true
}

// Validar revisa los campos obligatorios del registro. Devuelve un mensaje por
// campo inválido; vacío si el registro es válido.
func (d DeportistaCreate) Validar(hoy time.Time) map[string]string {
	errs := map[string]string{}
	requeridos := []struct {
		campo string
		valor string
	}{
		{"tipo_documento_id", d.TipoDocumentoID},
		{"numero_documento", d.NumeroDocumento},
		{"nombres", d.Nombres},
		{"apellidos", d.Apellidos},
		{"fecha_nacimiento", d.FechaNacimiento},
		{"sexo_id", d.SexoID},
		{"estado_id", d.EstadoID},
	}
	for _, r := range requeridos {
		if strings.TrimSpace(r.valor) == "" {
			errs[r.campo] = "Requerido"
		}
	}

	if _, falta := errs["fecha_nacimiento"]; !falta {
		nac, err := time.Parse(FormatoFecha, strings.TrimSpace(d.FechaNacimiento))
		switch {
		case err != nil:
			errs["fecha_nacimiento"] = "Fecha inválida (AAAA-MM-DD)"
		case nac.After(hoy):
			errs["fecha_nacimiento"] = "La fecha de nacimiento no puede ser futura"
		}
	}

	if email := strings.TrimSpace(d.Email); email != "" {
		if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
			errs["email"] = "Correo electrónico inválido"
		}
	}
	return errs
}
