package models

// Formatos de fecha y hora que usa el backend
const (
	FormatoFecha = "2006-01-02"
	FormatoHora  = "15:04:05"
)

// HistoriaClinica es el contenedor de la historia clínica de un deportista
type HistoriaClinica struct {
	ID            string                `json:"id,omitempty"`
	DeportistaID  string                `json:"deportista_id"`
	FechaApertura string                `json:"fecha_apertura"`
	EstadoID      string                `json:"estado_id"`
	CreatedAt     string                `json:"created_at,omitempty"`
	Deportista    *Deportista           `json:"deportista,omitempty"`
	Estado        *CatalogoItem         `json:"estado,omitempty"`
	Grupos        []RespuestaGrupo      `json:"grupos,omitempty"`
	Respuestas    []FormularioRespuesta `json:"respuestas,omitempty"`
	Archivos      []ArchivoClinico      `json:"archivos,omitempty"`
}

// RespuestaGrupo agrupa las respuestas guardadas en un paso del formulario
type RespuestaGrupo struct {
	ID                string                `json:"id,omitempty"`
	HistoriaClinicaID string                `json:"historia_clinica_id"`
	FormularioID      string                `json:"formulario_id"`
	CreatedAt         string                `json:"created_at,omitempty"`
	Formulario        *Formulario           `json:"formulario,omitempty"`
	Respuestas        []FormularioRespuesta `json:"respuestas,omitempty"`
}

// FormularioRespuesta es el valor respondido para un campo
type FormularioRespuesta struct {
	ID                string           `json:"id,omitempty"`
	FormularioID      string           `json:"formulario_id"`
	HistoriaClinicaID string           `json:"historia_clinica_id"`
	CampoID           string           `json:"campo_id"`
	Valor             string           `json:"valor,omitempty"`
	CreatedAt         string           `json:"created_at,omitempty"`
	GrupoID           string           `json:"grupo_id,omitempty"`
	Campo             *FormularioCampo `json:"campo,omitempty"`
}

// RespuestaCampo es un par campo/valor dentro de un lote
type RespuestaCampo struct {
	Campo string `json:"campo"`
	Valor string `json:"valor"`
}

// RespuestasBatch guarda varias respuestas de un grupo en una sola llamada
type RespuestasBatch struct {
	GrupoID    string           `json:"grupo_id"`
	Respuestas []RespuestaCampo `json:"respuestas"`
}

// RespuestasBulk envía respuestas con la estructura completa
type RespuestasBulk struct {
	Respuestas []FormularioRespuesta `json:"respuestas"`
}
