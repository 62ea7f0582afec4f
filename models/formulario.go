package models

// Formulario es la definición de un formulario dinámico
type Formulario struct {
	ID     string            `json:"id,omitempty"`
	Nombre string            `json:"nombre"`
	Modulo string            `json:"modulo"`
	Activo bool              `json:"activo"`
	Campos []FormularioCampo `json:"campos,omitempty"`
}

// FormularioCampo es un campo de un formulario dinámico
type FormularioCampo struct {
	ID           string    `json:"id,omitempty"`
	FormularioID string    `json:"formulario_id"`
	Etiqueta     string    `json:"etiqueta"`
	TipoCampo    string    `json:"tipo_campo"` // text, number, date, select, textarea
	Requerido    bool      `json:"requerido"`
	Orden        int       `json:"orden,omitempty"`
	CatalogoID   string    `json:"catalogo_id,omitempty"`
	Catalogo     *Catalogo `json:"catalogo,omitempty"`
}

// PlantillaClinica es un texto base por sistema para la exploración física
type PlantillaClinica struct {
	ID        string `json:"id,omitempty"`
	Sistema   string `json:"sistema"`
	Contenido string `json:"contenido"`
	Activo    bool   `json:"activo"`
}
